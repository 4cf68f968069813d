package routes

import (
	"net/http"

	"agentchat/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authRoutes "agentchat/routes/auth"
	chatRoutes "agentchat/routes/chat"
	convRoutes "agentchat/routes/conversation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "agent chat backend running"})
	})

	authRoutes.RegisterPublic(r, db)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	authRoutes.RegisterProtected(protected, db)
	chatRoutes.Register(protected, db)
	convRoutes.Register(protected, db)
}
