package discussion

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up discussion endpoints under /forums/:forumId/discussions.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authRequired gin.HandlerFunc) {
	discussions := router.Group("/forums/:forumId/discussions")
	{
		discussions.GET("", handler.List)
		discussions.POST("", authRequired, handler.Create)
		discussions.GET("/:discussionId", handler.GetByID)
		discussions.POST("/:discussionId/replies", authRequired, handler.Reply)
	}
}
