package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/blog-threads/internal/rest/middleware"
)

// Handlers groups everything served under /api/v1.
type Handlers struct {
	Blog   *BlogHandler
	Thread *threadHandler
	Health *HealthHandler
}

// Register mounts the public and the authenticated routes.
func Register(route gin.IRouter, h Handlers) {
	v1 := route.Group("/api/v1")

	v1.GET("/health", h.Health.Health)

	v1.GET("/blogs", h.Blog.Fetch)
	v1.GET("/blogs/tags", h.Blog.FetchByTags)
	v1.GET("/blogs/:id", h.Blog.GetByID)
	v1.GET("/blogs/:id/comments", h.Thread.FetchByBlog)

	authorized := v1.Group("/")
	authorized.Use(middleware.RequireUser())
	{
		authorized.POST("/blogs", h.Blog.Store)
		authorized.PUT("/blogs/:id", h.Blog.Update)
		authorized.DELETE("/blogs/:id", h.Blog.Delete)
		authorized.POST("/blogs/:id/like", h.Blog.Like)
		authorized.POST("/blogs/:id/comments", h.Thread.CreateComment)
		authorized.POST("/contents/:id/replies", h.Thread.CreateReply)
		authorized.PUT("/contents/:id", h.Thread.EditContent)
		authorized.DELETE("/comments/:id", h.Thread.DeleteComment)
		authorized.DELETE("/replies/:id", h.Thread.DeleteReply)
	}
}
