package controllers

import (
	"net/http"
	"strconv"

	"agentchat/middleware"
	"agentchat/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ListConversations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr, _ := c.Get(middleware.ContextUserIDKey)
		uidStr, _ := userIDStr.(string)
		uid, _ := strconv.Atoi(uidStr)

		var convs []models.Conversation
		if err := db.Where("user_id = ?", uid).Order("created_at asc").Find(&convs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "db error"})
			return
		}

		result := make([]gin.H, 0, len(convs))
		for _, conv := range convs {
			result = append(result, gin.H{
				"id":         conv.ID,
				"title":      conv.Title,
				"created_at": conv.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"conversations": result})
	}
}

func GetConversation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr, _ := c.Get(middleware.ContextUserIDKey)
		uidStr, _ := userIDStr.(string)
		uid, _ := strconv.Atoi(uidStr)

		convIDStr := c.Param("conversation_id")
		cid, _ := strconv.Atoi(convIDStr)

		var conv models.Conversation
		if err := db.Where("id = ? AND user_id = ?", cid, uid).First(&conv).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
			return
		}

		// timestamp order with id as the tie-breaker for same-batch writes
		var msgs []models.Message
		if err := db.Where("conversation_id = ?", conv.ID).Order("timestamp asc, id asc").Find(&msgs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "db error"})
			return
		}

		messages := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			messages = append(messages, gin.H{
				"role":      m.Role,
				"content":   m.Content,
				"timestamp": m.Timestamp,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"messages":     messages,
			"conversation": gin.H{"id": conv.ID, "title": conv.Title},
		})
	}
}
