package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/blog-threads/domain"
	"github.com/Guyuepp/blog-threads/internal/rest/middleware"
	"github.com/Guyuepp/blog-threads/internal/rest/request"
	"github.com/Guyuepp/blog-threads/internal/rest/response"
)

type threadHandler struct {
	Service domain.ThreadUsecase
}

func NewThreadHandler(svc domain.ThreadUsecase) *threadHandler {
	return &threadHandler{
		Service: svc,
	}
}

// FetchByBlog returns every comment of the blog with its nested replies
func (h *threadHandler) FetchByBlog(c *gin.Context) {
	thread, err := h.Service.Assemble(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewThreadFromDomain(thread))
}

func (h *threadHandler) CreateComment(c *gin.Context) {
	var req request.Content
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, _ := middleware.UserID(c)

	comment, err := h.Service.AddComment(c.Request.Context(), uid, c.Param("id"), req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewCommentFromDomain(&comment))
}

// CreateReply answers the comment or reply with the given id
func (h *threadHandler) CreateReply(c *gin.Context) {
	var req request.Content
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, _ := middleware.UserID(c)

	reply, err := h.Service.AddReply(c.Request.Context(), uid, c.Param("id"), req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewReplyFromDomain(&reply))
}

// EditContent changes the text of a comment or a reply
func (h *threadHandler) EditContent(c *gin.Context) {
	var req request.Content
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, _ := middleware.UserID(c)

	ref, err := h.Service.EditContent(c.Request.Context(), uid, c.Param("id"), req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	msg := "Comment updated successfully"
	if ref.Kind == domain.ParentReply {
		msg = "Reply updated successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "id": ref.ID, "kind": ref.Kind.String()})
}

func (h *threadHandler) DeleteComment(c *gin.Context) {
	uid, _ := middleware.UserID(c)
	if err := h.Service.DeleteComment(c.Request.Context(), uid, c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

func (h *threadHandler) DeleteReply(c *gin.Context) {
	uid, _ := middleware.UserID(c)
	if err := h.Service.DeleteReply(c.Request.Context(), uid, c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted successfully"})
}
