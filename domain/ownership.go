package domain

import "context"

// OwnershipGuard loads an entity and checks that the caller owns it.
// The order is fixed: a missing entity is ErrNotFound, a foreign one is
// ErrOwnershipDenied. The guard never writes.
type OwnershipGuard interface {
	Blog(ctx context.Context, id, callerID string) (BlogPost, error)
	Comment(ctx context.Context, id, callerID string) (Comment, error)
	Reply(ctx context.Context, id, callerID string) (Reply, error)
	// Content resolves id as a comment first, then as a reply.
	Content(ctx context.Context, id, callerID string) (ContentRef, error)
	// Locate resolves id like Content without the ownership check and
	// returns the owner alongside.
	Locate(ctx context.Context, id string) (ContentRef, string, error)
}
