package domain

import (
	"context"
	"time"
)

// Comment is a top-level remark on a blog
type Comment struct {
	ID          string    `json:"comment_id"`
	UserID      string    `json:"user_id"`
	BlogID      string    `json:"blog_id"`
	Text        string    `json:"text"`
	CommentedAt time.Time `json:"commented_at"`

	// User 评论作者信息, filled only when assembling a thread
	User DisplayInfo `json:"user"`
	// Replies 子回复列表, never persisted
	Replies []*Reply `json:"replies"`
}

// Reply answers either a comment or another reply
type Reply struct {
	ID        string    `json:"reply_id"`
	UserID    string    `json:"user_id"`
	Parent    ParentRef `json:"parent"`
	Text      string    `json:"text"`
	RepliedAt time.Time `json:"replied_at"`

	User    DisplayInfo `json:"user"`
	Replies []*Reply    `json:"replies"`
}

// ParentKind tells which collection a reply's parent lives in.
type ParentKind uint8

const (
	ParentComment ParentKind = iota + 1
	ParentReply
)

func (k ParentKind) String() string {
	switch k {
	case ParentComment:
		return "comment"
	case ParentReply:
		return "reply"
	default:
		return "unknown"
	}
}

// ParseParentKind is the inverse of ParentKind.String.
func ParseParentKind(s string) (ParentKind, bool) {
	switch s {
	case "comment":
		return ParentComment, true
	case "reply":
		return ParentReply, true
	default:
		return 0, false
	}
}

// ParentRef points at the content a reply belongs to.
type ParentRef struct {
	Kind ParentKind `json:"kind"`
	ID   string     `json:"id"`
}

// CommentRef and ReplyRef build a ParentRef of the matching kind.
func CommentRef(id string) ParentRef { return ParentRef{Kind: ParentComment, ID: id} }
func ReplyRef(id string) ParentRef   { return ParentRef{Kind: ParentReply, ID: id} }

// ContentRef is a resolved comment-or-reply id; it has the same shape as a parent pointer.
type ContentRef = ParentRef

// CommentRepository defines the contract for comment persistence
type CommentRepository interface {
	// GetByID returns ErrNotFound if the comment doesn't exist.
	GetByID(ctx context.Context, id string) (Comment, error)
	FetchByBlog(ctx context.Context, blogID string) ([]Comment, error)
	Store(ctx context.Context, c *Comment) error
	// UpdateText returns ErrNotFound if the comment doesn't exist.
	UpdateText(ctx context.Context, id string, text string) error
	// DeleteByIDs removes the given comments and reports how many were removed.
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// ReplyRepository defines the contract for reply persistence
type ReplyRepository interface {
	// GetByID returns ErrNotFound if the reply doesn't exist.
	GetByID(ctx context.Context, id string) (Reply, error)
	// FetchByParents returns every reply whose parent id is one of parentIDs.
	FetchByParents(ctx context.Context, parentIDs []string) ([]Reply, error)
	Store(ctx context.Context, r *Reply) error
	UpdateText(ctx context.Context, id string, text string) error
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// ThreadUsecase represents the comment/reply flows
type ThreadUsecase interface {
	// Assemble returns the full comment forest of a blog.
	// Returns ErrNotFound if the blog has no comments.
	Assemble(ctx context.Context, blogID string) ([]*Comment, error)
	AddComment(ctx context.Context, callerID, blogID, text string) (Comment, error)
	AddReply(ctx context.Context, callerID, parentID, text string) (Reply, error)
	EditContent(ctx context.Context, callerID, id, text string) (ContentRef, error)
	DeleteComment(ctx context.Context, callerID, id string) error
	DeleteReply(ctx context.Context, callerID, id string) error
}

// CascadeDeleter removes an entity together with everything hanging off it.
type CascadeDeleter interface {
	Blog(ctx context.Context, id string) error
	Comment(ctx context.Context, id string) error
	Reply(ctx context.Context, id string) error
}
