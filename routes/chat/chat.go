package chat

import (
	"agentchat/controllers"
	svc "agentchat/pkg/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers the chat-turn route (protected)
func Register(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/api/chat", controllers.Chat(db, svc.NewOpenAIService()))
}
