package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up auth endpoints under /auth.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
	}
}
