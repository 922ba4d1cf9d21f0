package domain

import "context"

// LikeReconciler recomputes denormalized like counts from like records.
type LikeReconciler interface {
	// Reconcile walks every blog and returns how many counters were corrected.
	Reconcile(ctx context.Context) (int, error)
}
