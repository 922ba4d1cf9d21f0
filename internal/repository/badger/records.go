package badger

import (
	"time"

	"github.com/Guyuepp/blog-threads/domain"
)

type blogRecord struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Tags            []string  `json:"tags"`
	CommentsEnabled bool      `json:"comments_enabled"`
	Views           int64     `json:"views"`
	Likes           int64     `json:"likes"`
	Image           string    `json:"image,omitempty"`
	PostedAt        time.Time `json:"posted_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newBlogRecord(b *domain.BlogPost) blogRecord {
	return blogRecord{
		ID:              b.ID,
		UserID:          b.UserID,
		Title:           b.Title,
		Content:         b.Content,
		Tags:            domain.NormalizeTags(b.Tags),
		CommentsEnabled: b.CommentsEnabled,
		Views:           b.Views,
		Likes:           b.Likes,
		Image:           b.Image,
		PostedAt:        b.PostedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (r blogRecord) toDomain() domain.BlogPost {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.BlogPost{
		ID:              r.ID,
		UserID:          r.UserID,
		Title:           r.Title,
		Content:         r.Content,
		Tags:            tags,
		CommentsEnabled: r.CommentsEnabled,
		Views:           r.Views,
		Likes:           r.Likes,
		Image:           r.Image,
		PostedAt:        r.PostedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type commentRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	BlogID      string    `json:"blog_id"`
	Text        string    `json:"text"`
	CommentedAt time.Time `json:"commented_at"`
}

func (r commentRecord) toDomain() domain.Comment {
	return domain.Comment{
		ID:          r.ID,
		UserID:      r.UserID,
		BlogID:      r.BlogID,
		Text:        r.Text,
		CommentedAt: r.CommentedAt,
	}
}

type replyRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ParentKind string    `json:"parent_kind"`
	ParentID   string    `json:"parent_id"`
	Text       string    `json:"text"`
	RepliedAt  time.Time `json:"replied_at"`
}

func (r replyRecord) toDomain() domain.Reply {
	kind, ok := domain.ParseParentKind(r.ParentKind)
	if !ok {
		kind = domain.ParentComment
	}
	return domain.Reply{
		ID:        r.ID,
		UserID:    r.UserID,
		Parent:    domain.ParentRef{Kind: kind, ID: r.ParentID},
		Text:      r.Text,
		RepliedAt: r.RepliedAt,
	}
}

type likeRecord struct {
	ID      string    `json:"id"`
	LikedAt time.Time `json:"liked_at"`
}
