// Package service implements the business logic layer between handlers and
// repositories.
package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// Friendship status values reported by Status.
const (
	FriendStatusNone            = "none"
	FriendStatusFriends         = "friends"
	FriendStatusPendingSent     = "pending_sent"
	FriendStatusPendingReceived = "pending_received"
)

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendRequest creates a pending friend request from userID to targetUserID.
func (s *FriendService) SendRequest(ctx context.Context, userID, targetUserID uint) (*models.FriendRequest, error) {
	if userID == targetUserID {
		return nil, models.NewInvalidTargetError("cannot send a friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	friends, err := s.friendRepo.AreFriends(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, models.NewDuplicateRequestError("you are already friends")
	}

	existing, err := s.friendRepo.GetRequestBetween(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateRequestError("friend request already sent")
	}

	req := &models.FriendRequest{
		FromUserID: userID,
		ToUserID:   targetUserID,
	}
	if err := s.friendRepo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	observability.FriendRequestOutcomes.WithLabelValues("sent").Inc()

	return s.friendRepo.GetRequestByID(ctx, req.ID)
}

// Incoming returns pending friend requests addressed to the user.
func (s *FriendService) Incoming(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.IncomingRequests(ctx, userID)
}

// Outgoing returns pending friend requests the user has sent.
func (s *FriendService) Outgoing(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.OutgoingRequests(ctx, userID)
}

// AcceptRequest accepts a pending friend request addressed to userID. The
// request is consumed and an undirected friendship edge takes its place.
func (s *FriendService) AcceptRequest(ctx context.Context, userID, requestID uint) (*models.FriendRequest, error) {
	req, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.ToUserID != userID {
		return nil, models.NewForbiddenError("you can only accept friend requests sent to you")
	}

	if err := s.friendRepo.AcceptRequest(ctx, req); err != nil {
		return nil, err
	}
	observability.FriendRequestOutcomes.WithLabelValues("accepted").Inc()

	return req, nil
}

// RejectRequest removes a pending request. The addressee rejects it; the
// sender cancels it. Either way it is deleted without creating an edge.
func (s *FriendService) RejectRequest(ctx context.Context, userID, requestID uint) (*models.FriendRequest, error) {
	req, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.ToUserID != userID && req.FromUserID != userID {
		return nil, models.NewForbiddenError("you can only reject or cancel your own pending requests")
	}

	if err := s.friendRepo.DeleteRequest(ctx, req.ID); err != nil {
		return nil, err
	}
	outcome := "rejected"
	if req.FromUserID == userID {
		outcome = "cancelled"
	}
	observability.FriendRequestOutcomes.WithLabelValues(outcome).Inc()

	return req, nil
}

// Friends returns the user's friends.
func (s *FriendService) Friends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.GetFriends(ctx, userID)
}

// Unfriend removes the friendship edge between two users.
func (s *FriendService) Unfriend(ctx context.Context, userID, targetUserID uint) error {
	if userID == targetUserID {
		return models.NewInvalidTargetError("cannot unfriend yourself")
	}

	friends, err := s.friendRepo.AreFriends(ctx, userID, targetUserID)
	if err != nil {
		return err
	}
	if !friends {
		return models.NewNotFoundError("Friendship", targetUserID)
	}

	return s.friendRepo.RemoveEdge(ctx, userID, targetUserID)
}

// Status reports the relationship between userID and targetUserID along with
// the pending request ID when one exists.
func (s *FriendService) Status(ctx context.Context, userID, targetUserID uint) (string, uint, error) {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return "", 0, err
	}

	friends, err := s.friendRepo.AreFriends(ctx, userID, targetUserID)
	if err != nil {
		return "", 0, err
	}
	if friends {
		return FriendStatusFriends, 0, nil
	}

	if sent, err := s.friendRepo.GetRequestBetween(ctx, userID, targetUserID); err != nil {
		return "", 0, err
	} else if sent != nil {
		return FriendStatusPendingSent, sent.ID, nil
	}

	if received, err := s.friendRepo.GetRequestBetween(ctx, targetUserID, userID); err != nil {
		return "", 0, err
	} else if received != nil {
		return FriendStatusPendingReceived, received.ID, nil
	}

	return FriendStatusNone, 0, nil
}

// AreFriends reports whether the two users share a friendship edge.
func (s *FriendService) AreFriends(ctx context.Context, userID, targetUserID uint) (bool, error) {
	return s.friendRepo.AreFriends(ctx, userID, targetUserID)
}
