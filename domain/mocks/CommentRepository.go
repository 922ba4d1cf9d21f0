package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/blog-threads/domain"
)

// CommentRepository is a mock type for the CommentRepository type
type CommentRepository struct {
	mock.Mock
}

func (_m *CommentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(domain.Comment), ret.Error(1)
}

func (_m *CommentRepository) FetchByBlog(ctx context.Context, blogID string) ([]domain.Comment, error) {
	ret := _m.Called(ctx, blogID)
	res, _ := ret.Get(0).([]domain.Comment)
	return res, ret.Error(1)
}

func (_m *CommentRepository) Store(ctx context.Context, c *domain.Comment) error {
	return _m.Called(ctx, c).Error(0)
}

func (_m *CommentRepository) UpdateText(ctx context.Context, id string, text string) error {
	return _m.Called(ctx, id, text).Error(0)
}

func (_m *CommentRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	ret := _m.Called(ctx, ids)
	return ret.Get(0).(int64), ret.Error(1)
}

// ReplyRepository is a mock type for the ReplyRepository type
type ReplyRepository struct {
	mock.Mock
}

func (_m *ReplyRepository) GetByID(ctx context.Context, id string) (domain.Reply, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(domain.Reply), ret.Error(1)
}

func (_m *ReplyRepository) FetchByParents(ctx context.Context, parentIDs []string) ([]domain.Reply, error) {
	ret := _m.Called(ctx, parentIDs)
	res, _ := ret.Get(0).([]domain.Reply)
	return res, ret.Error(1)
}

func (_m *ReplyRepository) Store(ctx context.Context, r *domain.Reply) error {
	return _m.Called(ctx, r).Error(0)
}

func (_m *ReplyRepository) UpdateText(ctx context.Context, id string, text string) error {
	return _m.Called(ctx, id, text).Error(0)
}

func (_m *ReplyRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	ret := _m.Called(ctx, ids)
	return ret.Get(0).(int64), ret.Error(1)
}
