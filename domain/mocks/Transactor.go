package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Transactor is a mock type for the Transactor type. Unless a return value
// is set it runs fn directly.
type Transactor struct {
	mock.Mock
}

func (_m *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ret := _m.Called(ctx, fn)
	if len(ret) > 0 && ret.Get(0) != nil {
		return ret.Error(0)
	}
	return fn(ctx)
}
