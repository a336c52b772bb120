package topic

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up topic endpoints under /forums/:forumId/topics.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authRequired gin.HandlerFunc) {
	topics := router.Group("/forums/:forumId/topics")
	{
		topics.GET("", handler.List)
		topics.POST("", authRequired, handler.Create)
		topics.GET("/:topicId", handler.GetByID)
		topics.POST("/:topicId/answers", authRequired, handler.Answer)
	}
}
