package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/Guyuepp/blog-threads/domain"
)

type commentRepository struct {
	store
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *badger.DB) *commentRepository {
	return &commentRepository{store{db}}
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	var rec commentRecord
	err := r.view(ctx, func(txn *badger.Txn) error {
		return getEntity(txn, key(CommentKeyPrefix, id), &rec)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Comment{}, domain.NotFound(domain.EntityComment, id)
	}
	if err != nil {
		return domain.Comment{}, err
	}
	return rec.toDomain(), nil
}

func (r *commentRepository) FetchByBlog(ctx context.Context, blogID string) ([]domain.Comment, error) {
	var res []domain.Comment
	err := r.view(ctx, func(txn *badger.Txn) error {
		for _, id := range scanKeys(txn, key(BlogCommentIndexPrefix, blogID, "")) {
			var rec commentRecord
			if err := getEntity(txn, key(CommentKeyPrefix, id), &rec); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			res = append(res, rec.toDomain())
		}
		return nil
	})
	return res, err
}

func (r *commentRepository) Store(ctx context.Context, c *domain.Comment) error {
	rec := commentRecord{
		ID:          c.ID,
		UserID:      c.UserID,
		BlogID:      c.BlogID,
		Text:        c.Text,
		CommentedAt: c.CommentedAt,
	}
	return r.update(ctx, func(txn *badger.Txn) error {
		if err := setEntity(txn, key(CommentKeyPrefix, rec.ID), rec); err != nil {
			return err
		}
		return txn.Set(key(BlogCommentIndexPrefix, rec.BlogID, rec.ID), nil)
	})
}

func (r *commentRepository) UpdateText(ctx context.Context, id string, text string) error {
	return r.update(ctx, func(txn *badger.Txn) error {
		var rec commentRecord
		if err := getEntity(txn, key(CommentKeyPrefix, id), &rec); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.NotFound(domain.EntityComment, id)
			}
			return err
		}
		rec.Text = text
		return setEntity(txn, key(CommentKeyPrefix, id), rec)
	})
}

func (r *commentRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	var n int64
	err := r.update(ctx, func(txn *badger.Txn) error {
		n = 0
		for _, id := range ids {
			var rec commentRecord
			if err := getEntity(txn, key(CommentKeyPrefix, id), &rec); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			if err := txn.Delete(key(BlogCommentIndexPrefix, rec.BlogID, id)); err != nil {
				return err
			}
			if err := txn.Delete(key(CommentKeyPrefix, id)); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}
