package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/blog-threads/domain"
)

// IdentityClient is a mock type for the IdentityClient type
type IdentityClient struct {
	mock.Mock
}

func (_m *IdentityClient) Lookup(ctx context.Context, userID string) domain.DisplayInfo {
	return _m.Called(ctx, userID).Get(0).(domain.DisplayInfo)
}

func (_m *IdentityClient) LookupMany(ctx context.Context, userIDs []string) map[string]domain.DisplayInfo {
	res, _ := _m.Called(ctx, userIDs).Get(0).(map[string]domain.DisplayInfo)
	return res
}
