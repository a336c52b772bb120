package user

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up user endpoints under /users.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authRequired gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.GET("/me", authRequired, handler.Me)
		users.PATCH("/me", authRequired, handler.UpdateMe)
		users.GET("/:userId", handler.GetByID)
	}
}
