package model

import (
	"time"

	"github.com/Guyuepp/blog-threads/domain"
)

type BlogPost struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	UserID          string    `gorm:"column:user_id;type:varchar(64);not null;index"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Content         string    `gorm:"type:longtext;not null"`
	CommentsEnabled bool      `gorm:"column:comments_enabled"`
	Views           int64     `gorm:"default:0"`
	Likes           int64     `gorm:"default:0"`
	Image           string    `gorm:"type:varchar(1024)"`
	PostedAt        time.Time `gorm:"type:datetime;index"`
	UpdatedAt       time.Time `gorm:"type:datetime"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// ToDomain leaves Tags empty; they live in blog_tags.
func (m *BlogPost) ToDomain() domain.BlogPost {
	return domain.BlogPost{
		ID:              m.ID,
		UserID:          m.UserID,
		Title:           m.Title,
		Content:         m.Content,
		CommentsEnabled: m.CommentsEnabled,
		Views:           m.Views,
		Likes:           m.Likes,
		Image:           m.Image,
		PostedAt:        m.PostedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func NewBlogPostFromDomain(b *domain.BlogPost) *BlogPost {
	return &BlogPost{
		ID:              b.ID,
		UserID:          b.UserID,
		Title:           b.Title,
		Content:         b.Content,
		CommentsEnabled: b.CommentsEnabled,
		Views:           b.Views,
		Likes:           b.Likes,
		Image:           b.Image,
		PostedAt:        b.PostedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// BlogTag is one (blog, tag) membership row.
type BlogTag struct {
	BlogID string `gorm:"primaryKey;column:blog_id;type:varchar(36)"`
	Tag    string `gorm:"primaryKey;type:varchar(64);index"`
}

func (BlogTag) TableName() string {
	return "blog_tags"
}

func NewBlogTags(blogID string, tags []string) []BlogTag {
	res := make([]BlogTag, len(tags))
	for i, t := range tags {
		res[i] = BlogTag{BlogID: blogID, Tag: t}
	}
	return res
}
