package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-threads/domain"
	"github.com/Guyuepp/blog-threads/internal/rest/middleware"
	"github.com/Guyuepp/blog-threads/internal/rest/request"
	"github.com/Guyuepp/blog-threads/internal/rest/response"
)

// BlogHandler represent the httphandler for blogs
type BlogHandler struct {
	Service domain.BlogUsecase
	Likes   domain.LikeUsecase
}

const DefaultLimit = 100

func NewBlogHandler(svc domain.BlogUsecase, likes domain.LikeUsecase) *BlogHandler {
	return &BlogHandler{
		Service: svc,
		Likes:   likes,
	}
}

// Fetch will fetch a page of blogs based on skip and limit
func (h *BlogHandler) Fetch(c *gin.Context) {
	skip, err := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	if err != nil {
		logrus.Warn("Invalid param 'skip'")
		skip = 0
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)), 10, 64)
	if err != nil {
		logrus.Warn("Invalid param 'limit'")
		limit = DefaultLimit
	}

	list, err := h.Service.Fetch(c.Request.Context(), skip, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewBlogPreviews(list))
}

// FetchByTags accepts repeated and comma separated tags
func (h *BlogHandler) FetchByTags(c *gin.Context) {
	var tags []string
	for _, v := range c.QueryArray("tags") {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	list, err := h.Service.FetchByTags(c.Request.Context(), tags)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewBlogPreviews(list))
}

// GetByID will get blog by given id, counting a view
func (h *BlogHandler) GetByID(c *gin.Context) {
	b, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewBlogFromDomain(&b))
}

// Store will store the blog by given request body
func (h *BlogHandler) Store(c *gin.Context) {
	var req request.Blog
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, _ := middleware.UserID(c)

	b := req.ToDomain()
	if err := h.Service.Store(c.Request.Context(), uid, &b); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewBlogFromDomain(&b))
}

func (h *BlogHandler) Update(c *gin.Context) {
	var req request.BlogPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, _ := middleware.UserID(c)

	b, err := h.Service.Update(c.Request.Context(), uid, c.Param("id"), req.ToDomain())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewBlogFromDomain(&b))
}

// Delete removes the blog with its whole discussion
func (h *BlogHandler) Delete(c *gin.Context) {
	uid, _ := middleware.UserID(c)
	if err := h.Service.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully"})
}

// Like toggles the caller's like on the blog
func (h *BlogHandler) Like(c *gin.Context) {
	var req request.Like
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, _ := middleware.UserID(c)

	res, err := h.Likes.Toggle(c.Request.Context(), c.Param("id"), uid, *req.Like)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
