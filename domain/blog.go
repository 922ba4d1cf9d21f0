package domain

import (
	"context"
	"time"
)

// BlogPost is representing the blog post data struct
type BlogPost struct {
	ID              string    // Unique identifier (uuid)
	UserID          string    // Owner, set from the trusted caller identity
	Title           string    // Blog title
	Content         string    // Blog body content
	Tags            []string  // Tag set, no duplicates
	CommentsEnabled bool      // Whether new comments are accepted
	Views           int64     // Incremented on every read by id
	Likes           int64     // Denormalized like count, never negative
	Image           string    // Optional image url
	PostedAt        time.Time // Creation timestamp
	UpdatedAt       time.Time // Last update timestamp

	// User is the owner's display info, filled only for reads.
	User DisplayInfo
}

// BlogPatch holds the content fields an update may change.
// A nil field is left untouched.
type BlogPatch struct {
	Title           *string
	Content         *string
	Tags            []string
	CommentsEnabled *bool
	Image           *string
}

// IsEmpty reports whether the patch changes nothing.
func (p BlogPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil && p.CommentsEnabled == nil && p.Image == nil
}

// Apply copies the set fields of the patch onto b.
func (p BlogPatch) Apply(b *BlogPost) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.Tags != nil {
		b.Tags = NormalizeTags(p.Tags)
	}
	if p.CommentsEnabled != nil {
		b.CommentsEnabled = *p.CommentsEnabled
	}
	if p.Image != nil {
		b.Image = *p.Image
	}
}

// NormalizeTags drops empty and duplicate tags, keeping the first occurrence order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	res := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		res = append(res, t)
	}
	return res
}

// BlogRepository defines the contract for blog post persistence
type BlogRepository interface {
	// Fetch retrieves a page of blogs in store order.
	Fetch(ctx context.Context, skip, limit int64) ([]BlogPost, error)

	// GetByID retrieves a single blog by its ID.
	// Returns ErrNotFound if the blog doesn't exist.
	GetByID(ctx context.Context, id string) (BlogPost, error)

	// FetchByTags retrieves blogs carrying at least one of the tags.
	FetchByTags(ctx context.Context, tags []string) ([]BlogPost, error)

	// Store creates a new blog.
	Store(ctx context.Context, b *BlogPost) error

	// Update applies the patch to an existing blog.
	// Returns ErrNotFound if the blog doesn't exist.
	Update(ctx context.Context, id string, patch BlogPatch, updatedAt time.Time) error

	// Delete removes a blog by its ID.
	// Returns ErrNotFound if not exists
	Delete(ctx context.Context, id string) error

	// AddViews increments the view count of a blog.
	AddViews(ctx context.Context, id string, deltaViews int64) error

	// IncrLikes adds one to the like count as a single store-side update.
	IncrLikes(ctx context.Context, id string) error

	// DecrLikes subtracts one from the like count, never going below zero.
	DecrLikes(ctx context.Context, id string) error

	// CompareAndSwapLikes sets the like count to likes only while it still
	// equals old, as one store-side update. It reports false when the count
	// moved on or the blog is gone. Used by reconciliation only.
	CompareAndSwapLikes(ctx context.Context, id string, old, likes int64) (bool, error)

	// FetchIDs pages through blog ids greater than cursor in id order.
	FetchIDs(ctx context.Context, cursor string, limit int64) ([]string, error)
}

// BlogUsecase represents the blog flows
type BlogUsecase interface {
	Fetch(ctx context.Context, skip, limit int64) ([]BlogPost, error)
	GetByID(ctx context.Context, id string) (BlogPost, error)
	FetchByTags(ctx context.Context, tags []string) ([]BlogPost, error)
	Store(ctx context.Context, callerID string, b *BlogPost) error
	Update(ctx context.Context, callerID, id string, patch BlogPatch) (BlogPost, error)
	Delete(ctx context.Context, callerID, id string) error
}
