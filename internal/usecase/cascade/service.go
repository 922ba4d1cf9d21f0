package cascade

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-threads/domain"
)

// Service deletes an entity with all of its descendants. The whole reply
// subtree is collected first, then everything is deleted in one unit of work.
type Service struct {
	blogs    domain.BlogRepository
	comments domain.CommentRepository
	replies  domain.ReplyRepository
	likes    domain.LikeRepository
	tx       domain.Transactor
}

var _ domain.CascadeDeleter = (*Service)(nil)

func NewService(
	b domain.BlogRepository,
	c domain.CommentRepository,
	r domain.ReplyRepository,
	l domain.LikeRepository,
	tx domain.Transactor,
) *Service {
	return &Service{
		blogs:    b,
		comments: c,
		replies:  r,
		likes:    l,
		tx:       tx,
	}
}

// Blog removes the blog, its comments, every reply below them and its likes.
func (s *Service) Blog(ctx context.Context, id string) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		comments, err := s.comments.FetchByBlog(ctx, id)
		if err != nil {
			return err
		}
		commentIDs := make([]string, len(comments))
		for i := range comments {
			commentIDs[i] = comments[i].ID
		}
		replyIDs, err := s.descendants(ctx, commentIDs)
		if err != nil {
			return err
		}

		if err := s.blogs.Delete(ctx, id); err != nil {
			return err
		}
		if _, err := s.comments.DeleteByIDs(ctx, commentIDs); err != nil {
			return err
		}
		if _, err := s.replies.DeleteByIDs(ctx, replyIDs); err != nil {
			return err
		}
		_, err = s.likes.DeleteByBlog(ctx, id)
		return err
	})
	return s.failed(domain.EntityBlog, id, err)
}

// Comment removes the comment and every reply below it.
func (s *Service) Comment(ctx context.Context, id string) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		replyIDs, err := s.descendants(ctx, []string{id})
		if err != nil {
			return err
		}
		n, err := s.comments.DeleteByIDs(ctx, []string{id})
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFound(domain.EntityComment, id)
		}
		_, err = s.replies.DeleteByIDs(ctx, replyIDs)
		return err
	})
	return s.failed(domain.EntityComment, id, err)
}

// Reply removes the reply and every reply below it.
func (s *Service) Reply(ctx context.Context, id string) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		replyIDs, err := s.descendants(ctx, []string{id})
		if err != nil {
			return err
		}
		n, err := s.replies.DeleteByIDs(ctx, append(replyIDs, id))
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFound(domain.EntityReply, id)
		}
		return nil
	})
	return s.failed(domain.EntityReply, id, err)
}

// descendants walks the reply graph breadth first from roots and returns
// every reply id below them, roots excluded. Each id is visited once.
func (s *Service) descendants(ctx context.Context, roots []string) ([]string, error) {
	visited := make(map[string]struct{}, len(roots))
	for _, id := range roots {
		visited[id] = struct{}{}
	}

	var res []string
	frontier := roots
	for len(frontier) > 0 {
		replies, err := s.replies.FetchByParents(ctx, frontier)
		if err != nil {
			return nil, err
		}
		next := make([]string, 0, len(replies))
		for i := range replies {
			id := replies[i].ID
			if _, ok := visited[id]; ok {
				continue
			}
			visited[id] = struct{}{}
			res = append(res, id)
			next = append(next, id)
		}
		frontier = next
	}
	return res, nil
}

func (s *Service) failed(entity domain.Entity, id string, err error) error {
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		return err
	}
	logrus.Errorf("failed to delete %s %s: %v", entity, id, err)
	return domain.Failed(domain.ErrDeletionFailed, entity, id, err)
}
