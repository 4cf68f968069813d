package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"agentchat/middleware"
	"agentchat/models"
	"agentchat/pkg/prompt"
	svc "agentchat/pkg/services"
	utils "agentchat/pkg/utills"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const titleMaxRunes = 50

type incomingMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat runs one chat turn: validate and filter the incoming messages, resolve
// or create the conversation, persist the new turns, obtain the model reply,
// persist it, and return it with the conversation id.
func Chat(db *gorm.DB, llm svc.Completer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr, _ := c.Get(middleware.ContextUserIDKey)
		uidStr, _ := userIDStr.(string)
		uid, _ := strconv.Atoi(uidStr)

		var body struct {
			Messages       []incomingMessage `json:"messages"`
			ConversationID *uint             `json:"conversation_id"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || len(body.Messages) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "messages required"})
			return
		}

		for _, m := range body.Messages {
			switch m.Role {
			case svc.RoleUser, svc.RoleAssistant, svc.RoleSystem:
			default:
				c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("unknown role %q", m.Role)})
				return
			}
		}

		// Client-supplied system prompts are discarded; the backend owns
		// agent behavior.
		chatMessages := make([]svc.ChatMessage, 0, len(body.Messages))
		for _, m := range body.Messages {
			if m.Role == svc.RoleSystem {
				continue
			}
			chatMessages = append(chatMessages, svc.ChatMessage{Role: m.Role, Content: m.Content})
		}
		if len(chatMessages) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "at least one non-system message required"})
			return
		}

		// resolve conversation: reuse the supplied id or create a new thread
		var convID uint
		if body.ConversationID != nil {
			// TODO: confirm whether appending should verify conversation
			// ownership; the current contract writes against whatever id
			// the caller supplies.
			convID = *body.ConversationID
		} else {
			title := "New"
			for _, m := range chatMessages {
				if m.Role == svc.RoleUser && m.Content != "" {
					title = utils.TruncateRunes(m.Content, titleMaxRunes)
					break
				}
			}
			conv := models.Conversation{UserID: uint(uid), Title: title}
			if err := db.Create(&conv).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create conversation"})
				return
			}
			convID = conv.ID
		}

		// persist the incoming turns in one batch, input order preserved
		now := time.Now()
		rows := make([]models.Message, 0, len(chatMessages))
		for _, m := range chatMessages {
			rows = append(rows, models.Message{
				ConversationID: convID,
				Role:           m.Role,
				Content:        m.Content,
				Timestamp:      now,
			})
		}
		if err := db.Create(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to save messages"})
			return
		}

		reply, err := llm.Complete(c.Request.Context(), prompt.BuildModelMessages(chatMessages))
		if err != nil {
			// the user's turns stay persisted; no rollback, no retry
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}

		assistant := models.Message{
			ConversationID: convID,
			Role:           svc.RoleAssistant,
			Content:        reply,
			Timestamp:      time.Now(),
		}
		if err := db.Create(&assistant).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to save reply"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reply": reply, "conversation_id": convID})
	}
}
