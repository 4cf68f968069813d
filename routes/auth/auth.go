package auth

import (
	"agentchat/controllers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterPublic registers public auth routes: /api/register, /api/login
func RegisterPublic(r *gin.Engine, db *gorm.DB) {
	r.POST("/api/register", controllers.Register(db))
	r.POST("/api/login", controllers.Login(db))
}

// RegisterProtected registers protected auth routes (logout, current user)
func RegisterProtected(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/api/logout", controllers.Logout())
	g.GET("/api/me", controllers.Me(db))
}
