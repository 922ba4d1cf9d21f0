package workers

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-threads/domain"
)

const (
	reconcileBatchSize = 100
	// maxSwapAttempts bounds the recounts of a blog whose likes keep moving,
	// the next run picks it up again
	maxSwapAttempts = 5
)

type likeReconciler struct {
	blogs     domain.BlogRepository
	likes     domain.LikeRepository
	batchSize int64
}

var _ domain.LikeReconciler = (*likeReconciler)(nil)

func NewLikeReconciler(b domain.BlogRepository, l domain.LikeRepository) *likeReconciler {
	return &likeReconciler{
		blogs:     b,
		likes:     l,
		batchSize: reconcileBatchSize,
	}
}

// Reconcile pages through every blog and overwrites its like count with the
// number of like records. Blogs deleted while the walk runs are skipped.
func (r *likeReconciler) Reconcile(ctx context.Context) (int, error) {
	fixed := 0
	cursor := ""
	for {
		ids, err := r.blogs.FetchIDs(ctx, cursor, r.batchSize)
		if err != nil {
			return fixed, err
		}
		if len(ids) == 0 {
			return fixed, nil
		}

		for _, id := range ids {
			changed, err := r.reconcileOne(ctx, id)
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return fixed, err
			}
			if changed {
				fixed++
			}
		}
		cursor = ids[len(ids)-1]
	}
}

// reconcileOne reads the stored count before counting records and swaps only
// if the stored count did not move in between. A like commits its record and
// its increment together, so a like landing anywhere in the window makes the
// swap miss and the blog is recounted.
func (r *likeReconciler) reconcileOne(ctx context.Context, id string) (bool, error) {
	for range maxSwapAttempts {
		b, err := r.blogs.GetByID(ctx, id)
		if err != nil {
			return false, err
		}
		n, err := r.likes.CountByBlog(ctx, id)
		if err != nil {
			return false, err
		}
		if b.Likes == n {
			return false, nil
		}
		swapped, err := r.blogs.CompareAndSwapLikes(ctx, id, b.Likes, n)
		if err != nil {
			return false, err
		}
		if swapped {
			logrus.Warnf("like count of blog %s drifted: stored %d, records %d", id, b.Likes, n)
			return true, nil
		}
	}
	logrus.Infof("like count of blog %s kept moving, leaving it to the next run", id)
	return false, nil
}
