package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines persistence operations for friend requests and
// the undirected friendship edges they resolve into.
type FriendRepository interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	GetRequestBetween(ctx context.Context, fromID, toID uint) (*models.FriendRequest, error)
	DeleteRequest(ctx context.Context, id uint) error
	IncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	OutgoingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	AcceptRequest(ctx context.Context, req *models.FriendRequest) error
	AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error)
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	RemoveEdge(ctx context.Context, userID1, userID2 uint) error
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateRequestError("friend request already sent")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := readDB(r.db).WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("FriendRequest", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

// GetRequestBetween looks up a pending request in the given direction only.
// Returns (nil, nil) when no request exists.
func (r *friendRepository) GetRequestBetween(ctx context.Context, fromID, toID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := readDB(r.db).WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *friendRepository) DeleteRequest(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.FriendRequest{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	// Zero rows means someone else consumed the request first.
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("FriendRequest", id)
	}
	return nil
}

func (r *friendRepository) IncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	if err := readDB(r.db).WithContext(ctx).
		Where("to_user_id = ?", userID).
		Preload("FromUser").
		Preload("ToUser").
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *friendRepository) OutgoingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	if err := readDB(r.db).WithContext(ctx).
		Where("from_user_id = ?", userID).
		Preload("FromUser").
		Preload("ToUser").
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

// AcceptRequest deletes the request and creates the friendship edge in a
// single transaction so a crash cannot leave both or neither.
func (r *friendRepository) AcceptRequest(ctx context.Context, req *models.FriendRequest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.FriendRequest{}, req.ID)
		if result.Error != nil {
			return result.Error
		}
		// A concurrent accept already consumed the request; without this
		// check the edge insert would surface a duplicate error instead.
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("FriendRequest", req.ID)
		}
		edge := models.NewFriendEdge(req.FromUserID, req.ToUserID)
		if err := tx.Create(edge).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		if isUniqueConstraintError(err) {
			return models.NewDuplicateRequestError("already friends")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateFriendship(ctx, req.FromUserID, req.ToUserID)
	return nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	edge := models.NewFriendEdge(userID1, userID2)
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.FriendEdge{}).
		Where("user_low_id = ? AND user_high_id = ?", edge.UserLowID, edge.UserHighID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := readDB(r.db).WithContext(ctx).
		Table("users").
		Joins("JOIN friend_edges fe ON (users.id = fe.user_low_id AND fe.user_high_id = ?) OR (users.id = fe.user_high_id AND fe.user_low_id = ?)",
			userID, userID).
		Order("users.username ASC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *friendRepository) RemoveEdge(ctx context.Context, userID1, userID2 uint) error {
	edge := models.NewFriendEdge(userID1, userID2)
	if err := r.db.WithContext(ctx).
		Where("user_low_id = ? AND user_high_id = ?", edge.UserLowID, edge.UserHighID).
		Delete(&models.FriendEdge{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFriendship(ctx, userID1, userID2)
	return nil
}
