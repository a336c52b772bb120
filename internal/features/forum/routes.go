package forum

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up forum endpoints. Catalog reads take an optional
// viewer so isFollowing can be annotated when a token is present; writes
// and the engagement ranking require authentication.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authRequired, authOptional gin.HandlerFunc) {
	forums := router.Group("/forums")
	{
		forums.POST("", authRequired, handler.Create)
		forums.GET("", authOptional, handler.ListAll)
		forums.GET("/engagement", authRequired, handler.Engagement)
		forums.GET("/:forumId", authOptional, handler.GetOne)
		forums.POST("/follow", authRequired, handler.Follow)
		forums.POST("/unfollow", authRequired, handler.Unfollow)
	}
}
