package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/blog-threads/domain"
)

// BlogUsecase is a mock type for the BlogUsecase type
type BlogUsecase struct {
	mock.Mock
}

func (_m *BlogUsecase) Fetch(ctx context.Context, skip, limit int64) ([]domain.BlogPost, error) {
	ret := _m.Called(ctx, skip, limit)
	res, _ := ret.Get(0).([]domain.BlogPost)
	return res, ret.Error(1)
}

func (_m *BlogUsecase) GetByID(ctx context.Context, id string) (domain.BlogPost, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(domain.BlogPost), ret.Error(1)
}

func (_m *BlogUsecase) FetchByTags(ctx context.Context, tags []string) ([]domain.BlogPost, error) {
	ret := _m.Called(ctx, tags)
	res, _ := ret.Get(0).([]domain.BlogPost)
	return res, ret.Error(1)
}

func (_m *BlogUsecase) Store(ctx context.Context, callerID string, b *domain.BlogPost) error {
	return _m.Called(ctx, callerID, b).Error(0)
}

func (_m *BlogUsecase) Update(ctx context.Context, callerID, id string, patch domain.BlogPatch) (domain.BlogPost, error) {
	ret := _m.Called(ctx, callerID, id, patch)
	return ret.Get(0).(domain.BlogPost), ret.Error(1)
}

func (_m *BlogUsecase) Delete(ctx context.Context, callerID, id string) error {
	return _m.Called(ctx, callerID, id).Error(0)
}

// ThreadUsecase is a mock type for the ThreadUsecase type
type ThreadUsecase struct {
	mock.Mock
}

func (_m *ThreadUsecase) Assemble(ctx context.Context, blogID string) ([]*domain.Comment, error) {
	ret := _m.Called(ctx, blogID)
	res, _ := ret.Get(0).([]*domain.Comment)
	return res, ret.Error(1)
}

func (_m *ThreadUsecase) AddComment(ctx context.Context, callerID, blogID, text string) (domain.Comment, error) {
	ret := _m.Called(ctx, callerID, blogID, text)
	return ret.Get(0).(domain.Comment), ret.Error(1)
}

func (_m *ThreadUsecase) AddReply(ctx context.Context, callerID, parentID, text string) (domain.Reply, error) {
	ret := _m.Called(ctx, callerID, parentID, text)
	return ret.Get(0).(domain.Reply), ret.Error(1)
}

func (_m *ThreadUsecase) EditContent(ctx context.Context, callerID, id, text string) (domain.ContentRef, error) {
	ret := _m.Called(ctx, callerID, id, text)
	return ret.Get(0).(domain.ContentRef), ret.Error(1)
}

func (_m *ThreadUsecase) DeleteComment(ctx context.Context, callerID, id string) error {
	return _m.Called(ctx, callerID, id).Error(0)
}

func (_m *ThreadUsecase) DeleteReply(ctx context.Context, callerID, id string) error {
	return _m.Called(ctx, callerID, id).Error(0)
}

// LikeUsecase is a mock type for the LikeUsecase type
type LikeUsecase struct {
	mock.Mock
}

func (_m *LikeUsecase) Toggle(ctx context.Context, blogID, userID string, value int) (domain.LikeResult, error) {
	ret := _m.Called(ctx, blogID, userID, value)
	return ret.Get(0).(domain.LikeResult), ret.Error(1)
}
