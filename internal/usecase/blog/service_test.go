package blog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-threads/domain"
	"github.com/Guyuepp/blog-threads/domain/mocks"
	badgerrepo "github.com/Guyuepp/blog-threads/internal/repository/badger"
	"github.com/Guyuepp/blog-threads/internal/usecase/blog"
	"github.com/Guyuepp/blog-threads/internal/usecase/cascade"
	"github.com/Guyuepp/blog-threads/internal/usecase/ownership"
)

type fixture struct {
	blogs    domain.BlogRepository
	comments domain.CommentRepository
	identity *mocks.IdentityClient
	svc      *blog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := badgerrepo.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &fixture{
		blogs:    badgerrepo.NewBlogRepository(db),
		comments: badgerrepo.NewCommentRepository(db),
		identity: new(mocks.IdentityClient),
	}
	replies := badgerrepo.NewReplyRepository(db)
	guard := ownership.NewGuard(f.blogs, f.comments, replies)
	cd := cascade.NewService(f.blogs, f.comments, replies, badgerrepo.NewLikeRepository(db), badgerrepo.NewTransactor(db))
	f.svc = blog.NewService(f.blogs, f.identity, guard, cd)

	f.identity.On("Lookup", mock.Anything, mock.Anything).Return(domain.DisplayInfo{Username: "someone"}).Maybe()
	return f
}

func fakePost(t *testing.T) *domain.BlogPost {
	t.Helper()
	return &domain.BlogPost{
		Title:           faker.Sentence(),
		Content:         faker.Paragraph(),
		Tags:            []string{"go", "systems", "go"},
		CommentsEnabled: true,
	}
}

func TestStore(t *testing.T) {
	f := newFixture(t)
	b := fakePost(t)
	b.ID = "client-chosen"
	b.UserID = "impostor"
	b.Likes = 99
	b.Views = 99

	require.NoError(t, f.svc.Store(context.TODO(), "u1", b))
	assert.NotEqual(t, "client-chosen", b.ID)
	assert.Equal(t, "u1", b.UserID)
	assert.Equal(t, []string{"go", "systems"}, b.Tags)
	assert.Zero(t, b.Likes)
	assert.Zero(t, b.Views)
	assert.WithinDuration(t, time.Now(), b.PostedAt, time.Minute)
	assert.Equal(t, "someone", b.User.Username)

	got, err := f.blogs.GetByID(context.TODO(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Title, got.Title)
}

func TestStoreFailure(t *testing.T) {
	blogs := new(mocks.BlogRepository)
	svc := blog.NewService(blogs, new(mocks.IdentityClient), nil, nil)
	blogs.On("Store", mock.Anything, mock.Anything).Return(errors.New("boom"))

	err := svc.Store(context.TODO(), "u1", fakePost(t))
	assert.ErrorIs(t, err, domain.ErrInsertionFailed)
}

func TestGetByIDCountsViews(t *testing.T) {
	f := newFixture(t)
	b := fakePost(t)
	require.NoError(t, f.svc.Store(context.TODO(), "u1", b))

	first, err := f.svc.GetByID(context.TODO(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	second, err := f.svc.GetByID(context.TODO(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Views)

	_, err = f.svc.GetByID(context.TODO(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetch(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Fetch(context.TODO(), 0, 10)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("enriches each distinct owner", func(t *testing.T) {
		f := newFixture(t)
		for _, owner := range []string{"u1", "u2", "u1"} {
			require.NoError(t, f.svc.Store(context.TODO(), owner, fakePost(t)))
		}
		f.identity.On("LookupMany", mock.Anything, mock.Anything).Return(map[string]domain.DisplayInfo{
			"u1": {Username: "alice"},
			"u2": {Username: "bob"},
		}).Once()

		res, err := f.svc.Fetch(context.TODO(), 0, 0)
		require.NoError(t, err)
		require.Len(t, res, 3)
		for _, b := range res {
			want := map[string]string{"u1": "alice", "u2": "bob"}[b.UserID]
			assert.Equal(t, want, b.User.Username)
		}
	})

	t.Run("limit is clamped", func(t *testing.T) {
		blogs := new(mocks.BlogRepository)
		identity := new(mocks.IdentityClient)
		svc := blog.NewService(blogs, identity, nil, nil)
		blogs.On("Fetch", mock.Anything, int64(0), int64(blog.MaxLimit)).Return([]domain.BlogPost{{ID: "b1"}}, nil)
		identity.On("LookupMany", mock.Anything, mock.Anything).Return(map[string]domain.DisplayInfo{})

		_, err := svc.Fetch(context.TODO(), -5, 5000)
		require.NoError(t, err)
		blogs.AssertExpectations(t)
	})
}

func TestFetchByTags(t *testing.T) {
	f := newFixture(t)
	b := fakePost(t)
	require.NoError(t, f.svc.Store(context.TODO(), "u1", b))
	f.identity.On("LookupMany", mock.Anything, mock.Anything).Return(map[string]domain.DisplayInfo{})

	res, err := f.svc.FetchByTags(context.TODO(), []string{"go"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, b.ID, res[0].ID)

	_, err = f.svc.FetchByTags(context.TODO(), []string{"rust"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.FetchByTags(context.TODO(), nil)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestUpdate(t *testing.T) {
	ctx := context.TODO()
	f := newFixture(t)
	b := fakePost(t)
	require.NoError(t, f.svc.Store(ctx, "u1", b))

	title := "changed"
	disabled := false
	got, err := f.svc.Update(ctx, "u1", b.ID, domain.BlogPatch{Title: &title, CommentsEnabled: &disabled})
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Title)
	assert.False(t, got.CommentsEnabled)
	assert.Equal(t, b.Content, got.Content)
	assert.Equal(t, "u1", got.UserID)

	stored, err := f.blogs.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", stored.Title)
	assert.Equal(t, b.PostedAt.Unix(), stored.PostedAt.Unix())

	_, err = f.svc.Update(ctx, "u2", b.ID, domain.BlogPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrOwnershipDenied)

	_, err = f.svc.Update(ctx, "u1", "nope", domain.BlogPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.TODO()
	f := newFixture(t)
	b := fakePost(t)
	require.NoError(t, f.svc.Store(ctx, "u1", b))
	require.NoError(t, f.comments.Store(ctx, &domain.Comment{ID: "c1", BlogID: b.ID, UserID: "u2"}))

	assert.ErrorIs(t, f.svc.Delete(ctx, "u2", b.ID), domain.ErrOwnershipDenied)
	require.NoError(t, f.svc.Delete(ctx, "u1", b.ID))

	_, err := f.blogs.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.comments.GetByID(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, "u1", b.ID), domain.ErrNotFound)
}
