// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// FriendRequest is a directed, transient request from one user to another.
// It exists only while pending: accepting it creates a FriendEdge and
// deletes the request, rejecting it just deletes the request.
type FriendRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FromUserID uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"from_user_id"`
	ToUserID   uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"to_user_id"`
	CreatedAt  time.Time `json:"created_at"`

	FromUser User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendRequest) TableName() string {
	return "friend_requests"
}

// FriendEdge is the canonical undirected friendship between two users,
// stored once per unordered pair with UserLowID < UserHighID. Mutuality
// therefore holds by construction rather than by procedure.
type FriendEdge struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserLowID  uint      `gorm:"not null;uniqueIndex:idx_friend_edge_pair" json:"user_low_id"`
	UserHighID uint      `gorm:"not null;uniqueIndex:idx_friend_edge_pair" json:"user_high_id"`
	CreatedAt  time.Time `json:"created_at"`

	UserLow  User `gorm:"foreignKey:UserLowID" json:"-"`
	UserHigh User `gorm:"foreignKey:UserHighID" json:"-"`
}

// TableName specifies the table name for GORM
func (FriendEdge) TableName() string {
	return "friend_edges"
}

// BeforeCreate normalizes the pair ordering so the low/high invariant
// cannot be bypassed by callers constructing the edge by hand.
func (e *FriendEdge) BeforeCreate(_ *gorm.DB) error {
	if e.UserLowID > e.UserHighID {
		e.UserLowID, e.UserHighID = e.UserHighID, e.UserLowID
	}
	return nil
}

// NewFriendEdge builds the canonical edge for two user IDs in either order.
func NewFriendEdge(userID1, userID2 uint) *FriendEdge {
	if userID1 > userID2 {
		userID1, userID2 = userID2, userID1
	}
	return &FriendEdge{UserLowID: userID1, UserHighID: userID2}
}

// Other returns the peer user ID on this edge.
func (e *FriendEdge) Other(userID uint) uint {
	if e.UserLowID == userID {
		return e.UserHighID
	}
	return e.UserLowID
}
