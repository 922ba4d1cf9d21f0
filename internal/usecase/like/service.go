package like

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-threads/domain"
)

const (
	msgLiked        = "Blog liked successfully"
	msgAlreadyLiked = "Blog already liked"
	msgUnliked      = "Blog unliked successfully"
	msgNotLiked     = "Blog was not liked"
)

type Service struct {
	blogs domain.BlogRepository
	likes domain.LikeRepository
	tx    domain.Transactor
	now   func() time.Time
}

var _ domain.LikeUsecase = (*Service)(nil)

func NewService(b domain.BlogRepository, l domain.LikeRepository, tx domain.Transactor) *Service {
	return &Service{
		blogs: b,
		likes: l,
		tx:    tx,
		now:   time.Now,
	}
}

// Toggle moves the (blog, user) pair to the wanted state. Reaching a state
// the pair is already in changes nothing.
func (s *Service) Toggle(ctx context.Context, blogID, userID string, value int) (domain.LikeResult, error) {
	action, err := domain.ParseLikeAction(value)
	if err != nil {
		return domain.LikeResult{}, err
	}
	if _, err := s.blogs.GetByID(ctx, blogID); err != nil {
		return domain.LikeResult{}, err
	}

	liked, err := s.likes.Exists(ctx, blogID, userID)
	if err != nil {
		logrus.Errorf("failed to check like of blog %s by %s: %v", blogID, userID, err)
		return domain.LikeResult{}, err
	}

	switch {
	case action == domain.ActionLike && liked:
		return domain.LikeResult{Message: msgAlreadyLiked, Liked: true}, nil
	case action == domain.ActionLike:
		return s.like(ctx, blogID, userID)
	case liked:
		return s.unlike(ctx, blogID, userID)
	default:
		return domain.LikeResult{Message: msgNotLiked, Liked: false}, nil
	}
}

func (s *Service) like(ctx context.Context, blogID, userID string) (domain.LikeResult, error) {
	var storeErr, counterErr error
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// the transactor may run this more than once
		storeErr, counterErr = nil, nil
		l := &domain.Like{
			ID:      uuid.NewString(),
			BlogID:  blogID,
			UserID:  userID,
			LikedAt: s.now().UTC(),
		}
		if storeErr = s.likes.Store(ctx, l); storeErr != nil {
			return storeErr
		}
		if counterErr = s.blogs.IncrLikes(ctx, blogID); counterErr != nil {
			return counterErr
		}
		return nil
	})

	switch {
	case err == nil:
		return domain.LikeResult{Message: msgLiked, Liked: true}, nil
	case errors.Is(err, domain.ErrConflict):
		// a concurrent request stored the like first and counted it
		return domain.LikeResult{Message: msgAlreadyLiked, Liked: true}, nil
	case storeErr != nil:
		logrus.Errorf("failed to store like of blog %s by %s: %v", blogID, userID, err)
		return domain.LikeResult{}, domain.Failed(domain.ErrInsertionFailed, domain.EntityLike, blogID, err)
	case counterErr != nil:
		logrus.Errorf("failed to increment likes of blog %s: %v", blogID, err)
		return domain.LikeResult{}, domain.Failed(domain.ErrUpdateFailed, domain.EntityBlog, blogID, err)
	default:
		logrus.Errorf("failed to commit like of blog %s by %s: %v", blogID, userID, err)
		return domain.LikeResult{}, domain.Failed(domain.ErrUpdateFailed, domain.EntityLike, blogID, err)
	}
}

func (s *Service) unlike(ctx context.Context, blogID, userID string) (domain.LikeResult, error) {
	var deleteErr, counterErr error
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		deleteErr, counterErr = nil, nil
		var removed bool
		if removed, deleteErr = s.likes.Delete(ctx, blogID, userID); deleteErr != nil || !removed {
			return deleteErr
		}
		if counterErr = s.blogs.DecrLikes(ctx, blogID); counterErr != nil {
			return counterErr
		}
		return nil
	})

	switch {
	case err == nil:
		return domain.LikeResult{Message: msgUnliked, Liked: false}, nil
	case deleteErr != nil:
		logrus.Errorf("failed to delete like of blog %s by %s: %v", blogID, userID, err)
		return domain.LikeResult{}, domain.Failed(domain.ErrDeletionFailed, domain.EntityLike, blogID, err)
	case counterErr != nil:
		logrus.Errorf("failed to decrement likes of blog %s: %v", blogID, err)
		return domain.LikeResult{}, domain.Failed(domain.ErrUpdateFailed, domain.EntityBlog, blogID, err)
	default:
		logrus.Errorf("failed to commit unlike of blog %s by %s: %v", blogID, userID, err)
		return domain.LikeResult{}, domain.Failed(domain.ErrUpdateFailed, domain.EntityLike, blogID, err)
	}
}
