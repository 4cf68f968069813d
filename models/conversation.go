package models

import "gorm.io/gorm"

// Conversation is a message thread owned by exactly one user. The owner is
// fixed at creation and never reassigned.
type Conversation struct {
	gorm.Model
	UserID   uint      `gorm:"not null;index"`
	Title    string    `gorm:"size:200"`
	Messages []Message `gorm:"constraint:OnDelete:CASCADE"`
}
