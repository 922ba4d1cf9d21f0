package model

import (
	"time"

	"github.com/Guyuepp/blog-threads/domain"
)

type Comment struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	UserID      string    `gorm:"column:user_id;type:varchar(64);not null"`
	BlogID      string    `gorm:"column:blog_id;type:varchar(36);not null;index"`
	Text        string    `gorm:"type:text;not null"`
	CommentedAt time.Time `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comments"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:          c.ID,
		UserID:      c.UserID,
		BlogID:      c.BlogID,
		Text:        c.Text,
		CommentedAt: c.CommentedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:          m.ID,
		UserID:      m.UserID,
		BlogID:      m.BlogID,
		Text:        m.Text,
		CommentedAt: m.CommentedAt,
	}
}

type Reply struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	UserID          string    `gorm:"column:user_id;type:varchar(64);not null"`
	ParentKind      string    `gorm:"column:parent_kind;type:varchar(16);not null"`
	ParentContentID string    `gorm:"column:parent_content_id;type:varchar(36);not null;index"`
	Text            string    `gorm:"type:text;not null"`
	RepliedAt       time.Time `gorm:"type:datetime"`
}

func (Reply) TableName() string {
	return "replies"
}

func NewReplyFromDomain(r *domain.Reply) *Reply {
	return &Reply{
		ID:              r.ID,
		UserID:          r.UserID,
		ParentKind:      r.Parent.Kind.String(),
		ParentContentID: r.Parent.ID,
		Text:            r.Text,
		RepliedAt:       r.RepliedAt,
	}
}

func (m *Reply) ToDomain() domain.Reply {
	kind, ok := domain.ParseParentKind(m.ParentKind)
	if !ok {
		kind = domain.ParentComment
	}
	return domain.Reply{
		ID:        m.ID,
		UserID:    m.UserID,
		Parent:    domain.ParentRef{Kind: kind, ID: m.ParentContentID},
		Text:      m.Text,
		RepliedAt: m.RepliedAt,
	}
}
