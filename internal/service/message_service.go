package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// MessageService provides direct-messaging business logic. Messaging is
// restricted to users who are friends.
type MessageService struct {
	messageRepo repository.MessageRepository
	friendRepo  repository.FriendRepository
	userRepo    repository.UserRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, friendRepo repository.FriendRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		friendRepo:  friendRepo,
		userRepo:    userRepo,
	}
}

// Send delivers a message from userID to receiverID.
func (s *MessageService) Send(ctx context.Context, userID, receiverID uint, content, file string) (*models.Message, error) {
	if userID == receiverID {
		return nil, models.NewInvalidTargetError("cannot message yourself")
	}

	content = strings.TrimSpace(content)
	if content == "" && file == "" {
		return nil, models.NewValidationError("message content is required")
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	friends, err := s.friendRepo.AreFriends(ctx, userID, receiverID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, models.NewForbiddenError("you can only message your friends")
	}

	message := &models.Message{
		SenderID:   userID,
		ReceiverID: receiverID,
		Content:    content,
		File:       file,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	observability.MessagesSent.Inc()
	return message, nil
}

// History returns the messages exchanged between userID and peerID, oldest
// first. Reading history marks the peer's messages as read.
func (s *MessageService) History(ctx context.Context, userID, peerID uint, limit, offset int) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, peerID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.History(ctx, userID, peerID, limit, offset)
	if err != nil {
		return nil, err
	}

	if _, err := s.messageRepo.MarkRead(ctx, userID, peerID); err != nil {
		return nil, err
	}

	return messages, nil
}

// Conversations returns the distinct users the given user has exchanged
// messages with.
func (s *MessageService) Conversations(ctx context.Context, userID uint) ([]models.User, error) {
	return s.messageRepo.ConversationPartners(ctx, userID)
}

// MarkRead marks all unread messages from senderID to userID as read and
// returns the number updated.
func (s *MessageService) MarkRead(ctx context.Context, userID, senderID uint) (int64, error) {
	return s.messageRepo.MarkRead(ctx, userID, senderID)
}

// Mine returns every message involving the user, sent or received, oldest
// first.
func (s *MessageService) Mine(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.messageRepo.Mine(ctx, userID, limit, offset)
}
