package model

import (
	"time"

	"github.com/Guyuepp/blog-threads/domain"
)

type Like struct {
	ID      string    `gorm:"primaryKey;type:varchar(36)"`
	BlogID  string    `gorm:"column:blog_id;type:varchar(36);not null;uniqueIndex:idx_likes_blog_user"`
	UserID  string    `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:idx_likes_blog_user"`
	LikedAt time.Time `gorm:"type:datetime"`
}

func (Like) TableName() string {
	return "likes"
}

func NewLikeFromDomain(l *domain.Like) *Like {
	return &Like{
		ID:      l.ID,
		BlogID:  l.BlogID,
		UserID:  l.UserID,
		LikedAt: l.LikedAt,
	}
}

func (m *Like) ToDomain() domain.Like {
	return domain.Like{
		ID:      m.ID,
		BlogID:  m.BlogID,
		UserID:  m.UserID,
		LikedAt: m.LikedAt,
	}
}
