package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-threads/domain"
	"github.com/Guyuepp/blog-threads/domain/mocks"
	"github.com/Guyuepp/blog-threads/internal/rest"
	"github.com/Guyuepp/blog-threads/internal/rest/middleware"
	"github.com/Guyuepp/blog-threads/internal/rest/request"
	"github.com/Guyuepp/blog-threads/internal/rest/response"
)

type fixture struct {
	router  *gin.Engine
	blogs   *mocks.BlogUsecase
	threads *mocks.ThreadUsecase
	likes   *mocks.LikeUsecase
}

func newFixture(t *testing.T, db, identity rest.PingFunc) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, request.RegisterValidations())

	f := &fixture{
		router:  gin.New(),
		blogs:   new(mocks.BlogUsecase),
		threads: new(mocks.ThreadUsecase),
		likes:   new(mocks.LikeUsecase),
	}
	if db == nil {
		db = func(context.Context) error { return nil }
	}
	var idProbe *rest.Probe
	if identity != nil {
		idProbe = &rest.Probe{Name: "keycloak", Pinger: identity}
	}
	info := domain.ServiceInfo{Name: "blog-threads", StartedAt: time.Now().Add(-90 * time.Minute)}
	rest.Register(f.router, rest.Handlers{
		Blog:   rest.NewBlogHandler(f.blogs, f.likes),
		Thread: rest.NewThreadHandler(f.threads),
		Health: rest.NewHealthHandler(info, rest.Probe{Name: "mysql", Pinger: db}, idProbe),
	})
	t.Cleanup(func() {
		f.blogs.AssertExpectations(t)
		f.threads.AssertExpectations(t)
		f.likes.AssertExpectations(t)
	})
	return f
}

func (f *fixture) do(method, target, body, user string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if user != "" {
		req.Header.Set(middleware.UserIDHeader, user)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestFetchBlogs(t *testing.T) {
	f := newFixture(t, nil, nil)
	var b domain.BlogPost
	require.NoError(t, faker.FakeData(&b))
	b.Content = strings.Repeat("x", response.PreviewRunes+10)
	f.blogs.On("Fetch", mock.Anything, int64(5), int64(10)).Return([]domain.BlogPost{b}, nil).Once()

	w := f.do(http.MethodGet, "/api/v1/blogs?skip=5&limit=10", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	var res []response.Blog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res, 1)
	assert.Equal(t, b.ID, res[0].ID)
	assert.Empty(t, res[0].Content)
	assert.Len(t, res[0].ContentPreview, response.PreviewRunes)
}

func TestFetchBlogsBadParamsUseDefaults(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.blogs.On("Fetch", mock.Anything, int64(0), int64(rest.DefaultLimit)).
		Return(nil, domain.NotFound(domain.EntityBlog, "")).Once()

	w := f.do(http.MethodGet, "/api/v1/blogs?skip=abc&limit=x", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFetchByTags(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.blogs.On("FetchByTags", mock.Anything, []string{"go", "web", "db"}).
		Return([]domain.BlogPost{{ID: "b1"}}, nil).Once()

	w := f.do(http.MethodGet, "/api/v1/blogs/tags?tags=go,web&tags=db", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"blog_id":"b1"`)
}

func TestGetBlogByID(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.blogs.On("GetByID", mock.Anything, "b1").
		Return(domain.BlogPost{ID: "b1", Content: "full body", User: domain.DisplayInfo{Username: "alice"}}, nil).Once()
	f.blogs.On("GetByID", mock.Anything, "missing").
		Return(domain.BlogPost{}, domain.NotFound(domain.EntityBlog, "missing")).Once()

	w := f.do(http.MethodGet, "/api/v1/blogs/b1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res response.Blog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "full body", res.Content)
	assert.Equal(t, "alice", res.User.Username)

	w = f.do(http.MethodGet, "/api/v1/blogs/missing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "blog with id missing not found")
}

func TestStoreBlog(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		f := newFixture(t, nil, nil)
		w := f.do(http.MethodPost, "/api/v1/blogs", `{"title":"t","content":"c"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		f := newFixture(t, nil, nil)
		w := f.do(http.MethodPost, "/api/v1/blogs", `{"title":"t"}`, "u1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid tag", func(t *testing.T) {
		f := newFixture(t, nil, nil)
		w := f.do(http.MethodPost, "/api/v1/blogs", `{"title":"t","content":"c","tags":["a:b"]}`, "u1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("created", func(t *testing.T) {
		f := newFixture(t, nil, nil)
		f.blogs.On("Store", mock.Anything, "u1", mock.MatchedBy(func(b *domain.BlogPost) bool {
			return b.Title == "t" && b.CommentsEnabled && len(b.Tags) == 2
		})).Run(func(args mock.Arguments) {
			b := args.Get(2).(*domain.BlogPost)
			b.ID = "new-id"
			b.UserID = "u1"
		}).Return(nil).Once()

		w := f.do(http.MethodPost, "/api/v1/blogs", `{"title":"t","content":"c","tags":["go","web"]}`, "u1")

		require.Equal(t, http.StatusCreated, w.Code)
		var res response.Blog
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "new-id", res.ID)
		assert.Equal(t, "u1", res.UserID)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t, nil, nil)
		f.blogs.On("Store", mock.Anything, "u1", mock.Anything).
			Return(domain.Failed(domain.ErrInsertionFailed, domain.EntityBlog, "x", errors.New("db down"))).Once()

		w := f.do(http.MethodPost, "/api/v1/blogs", `{"title":"t","content":"c"}`, "u1")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUpdateBlog(t *testing.T) {
	f := newFixture(t, nil, nil)
	title := "renamed"
	f.blogs.On("Update", mock.Anything, "u1", "b1", domain.BlogPatch{Title: &title}).
		Return(domain.BlogPost{ID: "b1", Title: title}, nil).Once()
	f.blogs.On("Update", mock.Anything, "u2", "b1", domain.BlogPatch{Title: &title}).
		Return(domain.BlogPost{}, domain.Denied(domain.EntityBlog, "b1")).Once()

	w := f.do(http.MethodPut, "/api/v1/blogs/b1", `{"title":"renamed"}`, "u1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"renamed"`)

	w = f.do(http.MethodPut, "/api/v1/blogs/b1", `{"title":"renamed"}`, "u2")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteBlog(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.blogs.On("Delete", mock.Anything, "u1", "b1").Return(nil).Once()
	f.blogs.On("Delete", mock.Anything, "u1", "b2").
		Return(domain.Failed(domain.ErrDeletionFailed, domain.EntityBlog, "b2", errors.New("boom"))).Once()

	w := f.do(http.MethodDelete, "/api/v1/blogs/b1", "", "u1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Blog deleted successfully")

	w = f.do(http.MethodDelete, "/api/v1/blogs/b2", "", "u1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLikeBlog(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.likes.On("Toggle", mock.Anything, "b1", "u1", 1).
		Return(domain.LikeResult{Message: "Blog liked successfully", Liked: true}, nil).Once()
	f.likes.On("Toggle", mock.Anything, "b1", "u1", 0).
		Return(domain.LikeResult{Message: "Blog unliked successfully"}, nil).Once()
	f.likes.On("Toggle", mock.Anything, "b1", "u1", 2).
		Return(domain.LikeResult{}, &domain.Error{Kind: domain.ErrInvalidValue, Entity: domain.EntityLike}).Once()

	w := f.do(http.MethodPost, "/api/v1/blogs/b1/like", `{"like":1}`, "u1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Blog liked successfully","liked":true}`, w.Body.String())

	w = f.do(http.MethodPost, "/api/v1/blogs/b1/like", `{"like":0}`, "u1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Blog unliked successfully","liked":false}`, w.Body.String())

	w = f.do(http.MethodPost, "/api/v1/blogs/b1/like", `{"like":2}`, "u1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/api/v1/blogs/b1/like", `{}`, "u1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFetchThread(t *testing.T) {
	f := newFixture(t, nil, nil)
	thread := []*domain.Comment{{
		ID:     "c1",
		BlogID: "b1",
		Replies: []*domain.Reply{{
			ID:      "r1",
			Parent:  domain.CommentRef("c1"),
			Replies: []*domain.Reply{{ID: "r2", Parent: domain.ReplyRef("r1")}},
		}},
	}}
	f.threads.On("Assemble", mock.Anything, "b1").Return(thread, nil).Once()
	f.threads.On("Assemble", mock.Anything, "b2").
		Return(nil, &domain.Error{Kind: domain.ErrNotFound, Entity: domain.EntityComment}).Once()

	w := f.do(http.MethodGet, "/api/v1/blogs/b1/comments", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res []*response.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res, 1)
	assert.Equal(t, "r2", res[0].Replies[0].Replies[0].ID)

	w = f.do(http.MethodGet, "/api/v1/blogs/b2/comments", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateComment(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.threads.On("AddComment", mock.Anything, "u1", "b1", "nice").
		Return(domain.Comment{ID: "c1", BlogID: "b1", UserID: "u1", Text: "nice"}, nil).Once()
	f.threads.On("AddComment", mock.Anything, "u1", "b2", "nice").
		Return(domain.Comment{}, &domain.Error{Kind: domain.ErrCommentsDisabled, Entity: domain.EntityBlog, ID: "b2"}).Once()

	w := f.do(http.MethodPost, "/api/v1/blogs/b1/comments", `{"text":"nice"}`, "u1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"comment_id":"c1"`)

	w = f.do(http.MethodPost, "/api/v1/blogs/b2/comments", `{"text":"nice"}`, "u1")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(http.MethodPost, "/api/v1/blogs/b1/comments", `{"text":""}`, "u1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReply(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.threads.On("AddReply", mock.Anything, "u1", "r1", "agreed").
		Return(domain.Reply{ID: "r2", Parent: domain.ReplyRef("r1"), Text: "agreed"}, nil).Once()

	w := f.do(http.MethodPost, "/api/v1/contents/r1/replies", `{"text":"agreed"}`, "u1")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"parent_kind":"reply"`)
	assert.Contains(t, w.Body.String(), `"parent_content_id":"r1"`)
}

func TestEditContent(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.threads.On("EditContent", mock.Anything, "u1", "r1", "fixed").Return(domain.ReplyRef("r1"), nil).Once()
	f.threads.On("EditContent", mock.Anything, "u1", "c1", "fixed").Return(domain.CommentRef("c1"), nil).Once()
	f.threads.On("EditContent", mock.Anything, "u2", "c1", "fixed").
		Return(domain.ContentRef{}, domain.Denied(domain.EntityComment, "c1")).Once()

	w := f.do(http.MethodPut, "/api/v1/contents/r1", `{"text":"fixed"}`, "u1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Reply updated successfully")

	w = f.do(http.MethodPut, "/api/v1/contents/c1", `{"text":"fixed"}`, "u1")
	assert.Contains(t, w.Body.String(), "Comment updated successfully")

	w = f.do(http.MethodPut, "/api/v1/contents/c1", `{"text":"fixed"}`, "u2")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteCommentAndReply(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.threads.On("DeleteComment", mock.Anything, "u1", "c1").Return(nil).Once()
	f.threads.On("DeleteReply", mock.Anything, "u1", "r1").Return(domain.NotFound(domain.EntityReply, "r1")).Once()

	w := f.do(http.MethodDelete, "/api/v1/comments/c1", "", "u1")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodDelete, "/api/v1/replies/r1", "", "u1")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodDelete, "/api/v1/replies/r1", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name     string
		db       rest.PingFunc
		identity rest.PingFunc
		code     int
		status   string
	}{
		{"all healthy", up, up, http.StatusOK, "healthy"},
		{"no identity probe", up, nil, http.StatusOK, "healthy"},
		{"identity down", up, down, http.StatusOK, "degraded"},
		{"database down", down, up, http.StatusServiceUnavailable, "unhealthy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.db, tc.identity)

			w := f.do(http.MethodGet, "/api/v1/health", "", "")

			assert.Equal(t, tc.code, w.Code)
			var res map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tc.status, res["status"])
			assert.Equal(t, "blog-threads", res["service"])
			assert.Equal(t, "1h 30m 0s", res["uptime_formatted"])
			assert.InDelta(t, 5400, res["uptime_seconds"], 5)
		})
	}
}
