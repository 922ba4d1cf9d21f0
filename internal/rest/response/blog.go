package response

import (
	"github.com/Guyuepp/blog-threads/domain"
)

// PreviewRunes is how much content a listing shows.
const PreviewRunes = 200

type Blog struct {
	ID              string   `json:"blog_id"`
	UserID          string   `json:"user_id"`
	Title           string   `json:"title"`
	Content         string   `json:"content,omitempty"`
	ContentPreview  string   `json:"content_preview,omitempty"`
	Tags            []string `json:"tags"`
	CommentsEnabled bool     `json:"comments_enabled"`
	Views           int64    `json:"views"`
	Likes           int64    `json:"likes"`
	Image           string   `json:"image,omitempty"`
	PostedAt        string   `json:"posted_at"`
	UpdatedAt       string   `json:"updated_at"`
	User            User     `json:"user"`
}

// NewBlogFromDomain: Domain -> Response
func NewBlogFromDomain(b *domain.BlogPost) Blog {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return Blog{
		ID:              b.ID,
		UserID:          b.UserID,
		Title:           b.Title,
		Content:         b.Content,
		Tags:            tags,
		CommentsEnabled: b.CommentsEnabled,
		Views:           b.Views,
		Likes:           b.Likes,
		Image:           b.Image,
		PostedAt:        b.PostedAt.Format(DateTimeFormat),
		UpdatedAt:       b.UpdatedAt.Format(DateTimeFormat),
		User:            NewUserFromDomain(b.User),
	}
}

// NewBlogPreviewFromDomain is the listing form: the content is cut to PreviewRunes.
func NewBlogPreviewFromDomain(b *domain.BlogPost) Blog {
	res := NewBlogFromDomain(b)
	res.Content = ""
	res.ContentPreview = Preview(b.Content, PreviewRunes)
	return res
}

func NewBlogPreviews(list []domain.BlogPost) []Blog {
	res := make([]Blog, len(list))
	for i := range list {
		res[i] = NewBlogPreviewFromDomain(&list[i])
	}
	return res
}

// Preview returns the first n runes of s.
func Preview(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
