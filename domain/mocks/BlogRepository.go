package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/blog-threads/domain"
)

// BlogRepository is a mock type for the BlogRepository type
type BlogRepository struct {
	mock.Mock
}

func (_m *BlogRepository) Fetch(ctx context.Context, skip, limit int64) ([]domain.BlogPost, error) {
	ret := _m.Called(ctx, skip, limit)
	res, _ := ret.Get(0).([]domain.BlogPost)
	return res, ret.Error(1)
}

func (_m *BlogRepository) GetByID(ctx context.Context, id string) (domain.BlogPost, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(domain.BlogPost), ret.Error(1)
}

func (_m *BlogRepository) FetchByTags(ctx context.Context, tags []string) ([]domain.BlogPost, error) {
	ret := _m.Called(ctx, tags)
	res, _ := ret.Get(0).([]domain.BlogPost)
	return res, ret.Error(1)
}

func (_m *BlogRepository) Store(ctx context.Context, b *domain.BlogPost) error {
	return _m.Called(ctx, b).Error(0)
}

func (_m *BlogRepository) Update(ctx context.Context, id string, patch domain.BlogPatch, updatedAt time.Time) error {
	return _m.Called(ctx, id, patch, updatedAt).Error(0)
}

func (_m *BlogRepository) Delete(ctx context.Context, id string) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *BlogRepository) AddViews(ctx context.Context, id string, deltaViews int64) error {
	return _m.Called(ctx, id, deltaViews).Error(0)
}

func (_m *BlogRepository) IncrLikes(ctx context.Context, id string) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *BlogRepository) DecrLikes(ctx context.Context, id string) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *BlogRepository) CompareAndSwapLikes(ctx context.Context, id string, old, likes int64) (bool, error) {
	ret := _m.Called(ctx, id, old, likes)
	return ret.Bool(0), ret.Error(1)
}

func (_m *BlogRepository) FetchIDs(ctx context.Context, cursor string, limit int64) ([]string, error) {
	ret := _m.Called(ctx, cursor, limit)
	res, _ := ret.Get(0).([]string)
	return res, ret.Error(1)
}
