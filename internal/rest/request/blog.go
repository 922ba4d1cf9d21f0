package request

import "github.com/Guyuepp/blog-threads/domain"

type Blog struct {
	Title           string   `json:"title" binding:"required,max=300"`
	Content         string   `json:"content" binding:"required"`
	Tags            []string `json:"tags" binding:"omitempty,max=20,dive,tagname"`
	CommentsEnabled *bool    `json:"comments_enabled"`
	Image           string   `json:"image" binding:"omitempty,url"`
}

// ToDomain: Request -> Domain. Comments are enabled unless asked otherwise.
func (r *Blog) ToDomain() domain.BlogPost {
	enabled := true
	if r.CommentsEnabled != nil {
		enabled = *r.CommentsEnabled
	}
	return domain.BlogPost{
		Title:           r.Title,
		Content:         r.Content,
		Tags:            r.Tags,
		CommentsEnabled: enabled,
		Image:           r.Image,
	}
}

// BlogPatch only carries the fields present in the body.
type BlogPatch struct {
	Title           *string  `json:"title" binding:"omitempty,min=1,max=300"`
	Content         *string  `json:"content" binding:"omitempty,min=1"`
	Tags            []string `json:"tags" binding:"omitempty,max=20,dive,tagname"`
	CommentsEnabled *bool    `json:"comments_enabled"`
	Image           *string  `json:"image" binding:"omitempty"`
}

func (r *BlogPatch) ToDomain() domain.BlogPatch {
	return domain.BlogPatch{
		Title:           r.Title,
		Content:         r.Content,
		Tags:            r.Tags,
		CommentsEnabled: r.CommentsEnabled,
		Image:           r.Image,
	}
}
