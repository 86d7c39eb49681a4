package models

import (
	"time"

	"gorm.io/gorm"
)

// Post visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Post represents a post in the Ripple feed. A share is a Post whose
// SharedPostID points at the original post; chains of shares are always
// flattened so the reference never targets another share.
type Post struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Content      string `gorm:"type:text" json:"content"`
	Image        string `json:"image"`
	Video        string `json:"video"`
	Visibility   string `gorm:"type:varchar(20);default:'public';index" json:"visibility"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	User         User   `gorm:"foreignKey:UserID" json:"user"`
	SharedPostID *uint  `gorm:"index" json:"shared_post_id,omitempty"`
	SharedPost   *Post  `gorm:"foreignKey:SharedPostID" json:"shared_post,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
	Post Post `gorm:"foreignKey:PostID" json:"post"`
}
