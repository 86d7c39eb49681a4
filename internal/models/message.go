package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a direct message between two users. Conversations are not
// stored; they are derived from the set of messages involving a user.
type Message struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	SenderID   uint           `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint           `gorm:"not null;index" json:"receiver_id"`
	Sender     User           `gorm:"foreignKey:SenderID" json:"sender"`
	Receiver   User           `gorm:"foreignKey:ReceiverID" json:"receiver"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	File       string         `json:"file"`
	IsRead     bool           `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
