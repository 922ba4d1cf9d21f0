package blog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-threads/domain"
)

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

type Service struct {
	blogs    domain.BlogRepository
	identity domain.IdentityClient
	guard    domain.OwnershipGuard
	cascade  domain.CascadeDeleter
	now      func() time.Time
}

var _ domain.BlogUsecase = (*Service)(nil)

// NewService will create a new blog service object
func NewService(b domain.BlogRepository, id domain.IdentityClient, g domain.OwnershipGuard, cd domain.CascadeDeleter) *Service {
	return &Service{
		blogs:    b,
		identity: id,
		guard:    g,
		cascade:  cd,
		now:      time.Now,
	}
}

func (s *Service) fillUserDetails(ctx context.Context, data []domain.BlogPost) {
	ids := make([]string, len(data))
	for i := range data {
		ids[i] = data[i].UserID
	}
	users := s.identity.LookupMany(ctx, ids)
	for i := range data {
		data[i].User = users[data[i].UserID]
	}
}

func (s *Service) Fetch(ctx context.Context, skip, limit int64) ([]domain.BlogPost, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	res, err := s.blogs.Fetch(ctx, skip, limit)
	if err != nil {
		logrus.Errorf("failed to fetch blogs: %v", err)
		return nil, err
	}
	if len(res) == 0 {
		return nil, &domain.Error{Kind: domain.ErrNotFound, Entity: domain.EntityBlog}
	}
	s.fillUserDetails(ctx, res)
	return res, nil
}

// GetByID counts the read before loading, so the returned views include it.
func (s *Service) GetByID(ctx context.Context, id string) (domain.BlogPost, error) {
	if err := s.blogs.AddViews(ctx, id, 1); err != nil {
		return domain.BlogPost{}, err
	}
	res, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return domain.BlogPost{}, err
	}
	res.User = s.identity.Lookup(ctx, res.UserID)
	return res, nil
}

func (s *Service) FetchByTags(ctx context.Context, tags []string) ([]domain.BlogPost, error) {
	tags = domain.NormalizeTags(tags)
	if len(tags) == 0 {
		return nil, &domain.Error{Kind: domain.ErrBadParamInput, Entity: domain.EntityBlog}
	}
	res, err := s.blogs.FetchByTags(ctx, tags)
	if err != nil {
		logrus.Errorf("failed to fetch blogs by tags %v: %v", tags, err)
		return nil, err
	}
	if len(res) == 0 {
		return nil, &domain.Error{Kind: domain.ErrNotFound, Entity: domain.EntityBlog}
	}
	s.fillUserDetails(ctx, res)
	return res, nil
}

// Store sets every server-owned field; whatever the caller put there is overwritten.
func (s *Service) Store(ctx context.Context, callerID string, b *domain.BlogPost) error {
	now := s.now().UTC()
	b.ID = uuid.NewString()
	b.UserID = callerID
	b.Tags = domain.NormalizeTags(b.Tags)
	b.Views = 0
	b.Likes = 0
	b.PostedAt = now
	b.UpdatedAt = now

	if err := s.blogs.Store(ctx, b); err != nil {
		logrus.Errorf("failed to store blog: %v", err)
		return domain.Failed(domain.ErrInsertionFailed, domain.EntityBlog, b.ID, err)
	}
	b.User = s.identity.Lookup(ctx, callerID)
	return nil
}

func (s *Service) Update(ctx context.Context, callerID, id string, patch domain.BlogPatch) (domain.BlogPost, error) {
	b, err := s.guard.Blog(ctx, id, callerID)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if patch.IsEmpty() {
		b.User = s.identity.Lookup(ctx, b.UserID)
		return b, nil
	}

	now := s.now().UTC()
	if err := s.blogs.Update(ctx, id, patch, now); err != nil {
		logrus.Errorf("failed to update blog %s: %v", id, err)
		return domain.BlogPost{}, domain.Failed(domain.ErrUpdateFailed, domain.EntityBlog, id, err)
	}
	patch.Apply(&b)
	b.UpdatedAt = now
	b.User = s.identity.Lookup(ctx, b.UserID)
	return b, nil
}

func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.guard.Blog(ctx, id, callerID); err != nil {
		return err
	}
	return s.cascade.Blog(ctx, id)
}
