package conversation

import (
	"agentchat/controllers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers conversation read routes (protected)
func Register(g *gin.RouterGroup, db *gorm.DB) {
	g.GET("/api/conversations", controllers.ListConversations(db))
	g.GET("/api/conversations/:conversation_id", controllers.GetConversation(db))
}
