package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/Guyuepp/blog-threads/domain"
)

type likeRepository struct {
	store
}

var _ domain.LikeRepository = (*likeRepository)(nil)

func NewLikeRepository(db *badger.DB) *likeRepository {
	return &likeRepository{store{db}}
}

func (r *likeRepository) Exists(ctx context.Context, blogID, userID string) (bool, error) {
	var found bool
	err := r.view(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get(key(LikeKeyPrefix, blogID, userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		found = err == nil
		return err
	})
	return found, err
}

// Store keys the record by (blog, user), which makes the pair unique.
func (r *likeRepository) Store(ctx context.Context, l *domain.Like) error {
	return r.update(ctx, func(txn *badger.Txn) error {
		k := key(LikeKeyPrefix, l.BlogID, l.UserID)
		if _, err := txn.Get(k); err == nil {
			return domain.ErrConflict
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return setEntity(txn, k, likeRecord{ID: l.ID, LikedAt: l.LikedAt})
	})
}

func (r *likeRepository) Delete(ctx context.Context, blogID, userID string) (bool, error) {
	var removed bool
	err := r.update(ctx, func(txn *badger.Txn) error {
		removed = false
		k := key(LikeKeyPrefix, blogID, userID)
		if _, err := txn.Get(k); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		removed = true
		return txn.Delete(k)
	})
	return removed, err
}

func (r *likeRepository) CountByBlog(ctx context.Context, blogID string) (int64, error) {
	var n int64
	err := r.view(ctx, func(txn *badger.Txn) error {
		n = int64(len(scanKeys(txn, key(LikeKeyPrefix, blogID, ""))))
		return nil
	})
	return n, err
}

func (r *likeRepository) DeleteByBlog(ctx context.Context, blogID string) (int64, error) {
	var n int64
	err := r.update(ctx, func(txn *badger.Txn) error {
		n = 0
		prefix := key(LikeKeyPrefix, blogID, "")
		for _, userID := range scanKeys(txn, prefix) {
			if err := txn.Delete(key(LikeKeyPrefix, blogID, userID)); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}
