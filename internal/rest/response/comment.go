package response

import "github.com/Guyuepp/blog-threads/domain"

type Comment struct {
	ID          string   `json:"comment_id"`
	BlogID      string   `json:"blog_id"`
	UserID      string   `json:"user_id"`
	Text        string   `json:"text"`
	CommentedAt string   `json:"commented_at"`
	User        User     `json:"user"`
	Replies     []*Reply `json:"replies"`
}

type Reply struct {
	ID         string   `json:"reply_id"`
	ParentKind string   `json:"parent_kind"`
	ParentID   string   `json:"parent_content_id"`
	UserID     string   `json:"user_id"`
	Text       string   `json:"text"`
	RepliedAt  string   `json:"replied_at"`
	User       User     `json:"user"`
	Replies    []*Reply `json:"replies"`
}

// NewCommentFromDomain: Domain -> Response, replies included.
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:          c.ID,
		BlogID:      c.BlogID,
		UserID:      c.UserID,
		Text:        c.Text,
		CommentedAt: c.CommentedAt.Format(DateTimeFormat),
		User:        NewUserFromDomain(c.User),
		Replies:     newReplies(c.Replies),
	}
}

func NewReplyFromDomain(r *domain.Reply) *Reply {
	if r == nil {
		return nil
	}
	return &Reply{
		ID:         r.ID,
		ParentKind: r.Parent.Kind.String(),
		ParentID:   r.Parent.ID,
		UserID:     r.UserID,
		Text:       r.Text,
		RepliedAt:  r.RepliedAt.Format(DateTimeFormat),
		User:       NewUserFromDomain(r.User),
		Replies:    newReplies(r.Replies),
	}
}

func newReplies(list []*domain.Reply) []*Reply {
	res := make([]*Reply, 0, len(list))
	for _, r := range list {
		res = append(res, NewReplyFromDomain(r))
	}
	return res
}

func NewThreadFromDomain(list []*domain.Comment) []*Comment {
	res := make([]*Comment, 0, len(list))
	for _, c := range list {
		res = append(res, NewCommentFromDomain(c))
	}
	return res
}
