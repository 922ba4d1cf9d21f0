package request

// Content is the body of a new comment, a new reply or an edit.
type Content struct {
	Text string `json:"text" binding:"required,max=5000"`
}

// Like toggles a like: 1 likes, 0 unlikes. Other values are rejected by the usecase.
type Like struct {
	Like *int `json:"like" binding:"required"`
}
