package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// CascadeDeleter is a mock type for the CascadeDeleter type
type CascadeDeleter struct {
	mock.Mock
}

func (_m *CascadeDeleter) Blog(ctx context.Context, id string) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *CascadeDeleter) Comment(ctx context.Context, id string) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *CascadeDeleter) Reply(ctx context.Context, id string) error {
	return _m.Called(ctx, id).Error(0)
}
