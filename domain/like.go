package domain

import (
	"context"
	"time"
)

// Like is one user's like of one blog. At most one exists per (BlogID, UserID).
type Like struct {
	ID      string
	BlogID  string
	UserID  string
	LikedAt time.Time
}

type LikeAction int8

const (
	ActionUnlike LikeAction = 0
	ActionLike   LikeAction = 1
)

func (l LikeAction) String() string {
	switch l {
	case ActionLike:
		return "LIKE"
	case ActionUnlike:
		return "UNLIKE"
	default:
		return "UNKNOWN"
	}
}

// ParseLikeAction accepts only 0 and 1.
func ParseLikeAction(v int) (LikeAction, error) {
	switch v {
	case 0:
		return ActionUnlike, nil
	case 1:
		return ActionLike, nil
	default:
		return 0, &Error{Kind: ErrInvalidValue, Entity: EntityLike, Err: errLikeValue}
	}
}

// LikeResult is the outcome of a toggle.
type LikeResult struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

// LikeRepository defines the contract for like record persistence
type LikeRepository interface {
	Exists(ctx context.Context, blogID, userID string) (bool, error)
	// Store returns ErrConflict when the (blog, user) pair already has a like.
	Store(ctx context.Context, l *Like) error
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, blogID, userID string) (bool, error)
	CountByBlog(ctx context.Context, blogID string) (int64, error)
	DeleteByBlog(ctx context.Context, blogID string) (int64, error)
}

type LikeUsecase interface {
	Toggle(ctx context.Context, blogID, userID string, value int) (LikeResult, error)
}
