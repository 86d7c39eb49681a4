package repository

import (
	"context"
	"errors"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	History(ctx context.Context, userID, peerID uint, limit, offset int) ([]models.Message, error)
	ConversationPartners(ctx context.Context, userID uint) ([]models.User, error)
	MarkRead(ctx context.Context, receiverID, senderID uint) (int64, error)
	Mine(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		First(message, message.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := readDB(r.db).WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

// History returns messages exchanged between two users in either direction,
// oldest first.
func (r *messageRepository) History(ctx context.Context, userID, peerID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if err := readDB(r.db).WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Preload("Sender").
		Preload("Receiver").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// ConversationPartners returns the distinct set of users the given user has
// exchanged at least one message with, in either direction.
func (r *messageRepository) ConversationPartners(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := readDB(r.db).WithContext(ctx).
		Table("users").
		Distinct("users.*").
		Joins("JOIN messages m ON (users.id = m.sender_id AND m.receiver_id = ?) OR (users.id = m.receiver_id AND m.sender_id = ?)",
			userID, userID).
		Where("m.deleted_at IS NULL").
		Order("users.username ASC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// MarkRead flags every unread message from sender to receiver as read and
// returns the number of rows updated.
func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

// Mine returns every message the user sent or received, oldest first.
func (r *messageRepository) Mine(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if err := readDB(r.db).WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Preload("Sender").
		Preload("Receiver").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
