package models

import (
	"time"

	"gorm.io/gorm"
)

// StoryWindow is how long a story stays visible after creation.
// Expiry is a query-time filter; stories are never deleted by the system.
const StoryWindow = 24 * time.Hour

// Story is an ephemeral media post owned by a user.
type Story struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	File      string         `gorm:"not null" json:"file"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
