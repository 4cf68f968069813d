package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is one turn entry in a conversation. Rows are append-only: never
// updated or deleted by the chat flow. Role is "user" or "assistant";
// system entries are filtered out at the API boundary and never stored.
type Message struct {
	gorm.Model
	ConversationID uint      `gorm:"index;not null"`
	Role           string    `gorm:"size:20;not null"`
	Content        string    `gorm:"type:text;not null"`
	Timestamp      time.Time `gorm:"autoCreateTime;index"`
}
