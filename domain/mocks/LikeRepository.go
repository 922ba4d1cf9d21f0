package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/blog-threads/domain"
)

// LikeRepository is a mock type for the LikeRepository type
type LikeRepository struct {
	mock.Mock
}

func (_m *LikeRepository) Exists(ctx context.Context, blogID, userID string) (bool, error) {
	ret := _m.Called(ctx, blogID, userID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *LikeRepository) Store(ctx context.Context, l *domain.Like) error {
	return _m.Called(ctx, l).Error(0)
}

func (_m *LikeRepository) Delete(ctx context.Context, blogID, userID string) (bool, error) {
	ret := _m.Called(ctx, blogID, userID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *LikeRepository) CountByBlog(ctx context.Context, blogID string) (int64, error) {
	ret := _m.Called(ctx, blogID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *LikeRepository) DeleteByBlog(ctx context.Context, blogID string) (int64, error) {
	ret := _m.Called(ctx, blogID)
	return ret.Get(0).(int64), ret.Error(1)
}
