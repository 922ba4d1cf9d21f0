package ownership

import (
	"context"
	"errors"

	"github.com/Guyuepp/blog-threads/domain"
)

type Guard struct {
	blogs    domain.BlogRepository
	comments domain.CommentRepository
	replies  domain.ReplyRepository
}

var _ domain.OwnershipGuard = (*Guard)(nil)

func NewGuard(b domain.BlogRepository, c domain.CommentRepository, r domain.ReplyRepository) *Guard {
	return &Guard{
		blogs:    b,
		comments: c,
		replies:  r,
	}
}

// Authorize allows only the owner. An entity without an owner belongs to nobody.
func Authorize(ownerID, callerID string, entity domain.Entity, id string) error {
	if ownerID == "" || ownerID != callerID {
		return domain.Denied(entity, id)
	}
	return nil
}

func (g *Guard) Blog(ctx context.Context, id, callerID string) (domain.BlogPost, error) {
	b, err := g.blogs.GetByID(ctx, id)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if err := Authorize(b.UserID, callerID, domain.EntityBlog, id); err != nil {
		return domain.BlogPost{}, err
	}
	return b, nil
}

func (g *Guard) Comment(ctx context.Context, id, callerID string) (domain.Comment, error) {
	c, err := g.comments.GetByID(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}
	if err := Authorize(c.UserID, callerID, domain.EntityComment, id); err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}

func (g *Guard) Reply(ctx context.Context, id, callerID string) (domain.Reply, error) {
	r, err := g.replies.GetByID(ctx, id)
	if err != nil {
		return domain.Reply{}, err
	}
	if err := Authorize(r.UserID, callerID, domain.EntityReply, id); err != nil {
		return domain.Reply{}, err
	}
	return r, nil
}

func (g *Guard) Content(ctx context.Context, id, callerID string) (domain.ContentRef, error) {
	ref, owner, err := g.Locate(ctx, id)
	if err != nil {
		return domain.ContentRef{}, err
	}
	entity := domain.EntityComment
	if ref.Kind == domain.ParentReply {
		entity = domain.EntityReply
	}
	if err := Authorize(owner, callerID, entity, id); err != nil {
		return domain.ContentRef{}, err
	}
	return ref, nil
}

// Locate looks in comments first. Only a not-found there falls through to replies.
func (g *Guard) Locate(ctx context.Context, id string) (domain.ContentRef, string, error) {
	c, err := g.comments.GetByID(ctx, id)
	if err == nil {
		return domain.CommentRef(c.ID), c.UserID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.ContentRef{}, "", err
	}

	r, err := g.replies.GetByID(ctx, id)
	if err == nil {
		return domain.ReplyRef(r.ID), r.UserID, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ContentRef{}, "", domain.NotFound(domain.EntityContent, id)
	}
	return domain.ContentRef{}, "", err
}
