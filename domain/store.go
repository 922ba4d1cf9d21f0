package domain

import (
	"context"
	"errors"
	"time"
)

var errLikeValue = errors.New("use 0 to unlike or 1 to like")

// Transactor runs fn as one unit of work where the store supports it.
// Repositories called with the ctx passed to fn join the unit of work.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ServiceInfo is created once at startup and never changes.
type ServiceInfo struct {
	Name      string
	StartedAt time.Time
}

// Uptime returns how long the service has been running at now.
func (s ServiceInfo) Uptime(now time.Time) time.Duration {
	return now.Sub(s.StartedAt)
}
