package mongo

import (
	"time"

	"github.com/Guyuepp/blog-threads/domain"
)

// Collection names match the ones the service has always used.
const (
	CollectionBlogs    = "Blogs"
	CollectionComments = "Comments"
	CollectionReplies  = "Replies"
	CollectionLikes    = "Likes"
)

type blogDocument struct {
	ID              string    `bson:"_id"`
	UserID          string    `bson:"user_id"`
	Title           string    `bson:"title"`
	Content         string    `bson:"content"`
	Tags            []string  `bson:"tags"`
	CommentsEnabled bool      `bson:"comments_enabled"`
	Views           int64     `bson:"number_of_views"`
	Likes           int64     `bson:"like_count"`
	Image           string    `bson:"post_image,omitempty"`
	PostedAt        time.Time `bson:"postedAt"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func newBlogDocument(b *domain.BlogPost) blogDocument {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return blogDocument{
		ID:              b.ID,
		UserID:          b.UserID,
		Title:           b.Title,
		Content:         b.Content,
		Tags:            tags,
		CommentsEnabled: b.CommentsEnabled,
		Views:           b.Views,
		Likes:           b.Likes,
		Image:           b.Image,
		PostedAt:        b.PostedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (d blogDocument) toDomain() domain.BlogPost {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.BlogPost{
		ID:              d.ID,
		UserID:          d.UserID,
		Title:           d.Title,
		Content:         d.Content,
		Tags:            tags,
		CommentsEnabled: d.CommentsEnabled,
		Views:           d.Views,
		Likes:           d.Likes,
		Image:           d.Image,
		PostedAt:        d.PostedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type commentDocument struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	BlogID      string    `bson:"blogPost_id"`
	Text        string    `bson:"text"`
	CommentedAt time.Time `bson:"commentedAt"`
}

func newCommentDocument(c *domain.Comment) commentDocument {
	return commentDocument{
		ID:          c.ID,
		UserID:      c.UserID,
		BlogID:      c.BlogID,
		Text:        c.Text,
		CommentedAt: c.CommentedAt,
	}
}

func (d commentDocument) toDomain() domain.Comment {
	return domain.Comment{
		ID:          d.ID,
		UserID:      d.UserID,
		BlogID:      d.BlogID,
		Text:        d.Text,
		CommentedAt: d.CommentedAt,
	}
}

type replyDocument struct {
	ID              string    `bson:"_id"`
	UserID          string    `bson:"user_id"`
	ParentKind      string    `bson:"parent_kind"`
	ParentContentID string    `bson:"parentContent_id"`
	Text            string    `bson:"text"`
	RepliedAt       time.Time `bson:"repliedAt"`
}

func newReplyDocument(r *domain.Reply) replyDocument {
	return replyDocument{
		ID:              r.ID,
		UserID:          r.UserID,
		ParentKind:      r.Parent.Kind.String(),
		ParentContentID: r.Parent.ID,
		Text:            r.Text,
		RepliedAt:       r.RepliedAt,
	}
}

func (d replyDocument) toDomain() domain.Reply {
	kind, ok := domain.ParseParentKind(d.ParentKind)
	if !ok {
		kind = domain.ParentComment
	}
	return domain.Reply{
		ID:        d.ID,
		UserID:    d.UserID,
		Parent:    domain.ParentRef{Kind: kind, ID: d.ParentContentID},
		Text:      d.Text,
		RepliedAt: d.RepliedAt,
	}
}

type likeDocument struct {
	ID      string    `bson:"_id"`
	BlogID  string    `bson:"blog_id"`
	UserID  string    `bson:"user_id"`
	LikedAt time.Time `bson:"likedAt"`
}
