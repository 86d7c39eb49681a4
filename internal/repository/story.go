package repository

import (
	"context"
	"errors"
	"time"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// StoryRepository defines persistence operations for ephemeral stories.
// Expiry is purely read-side: queries take a cutoff instant and rows older
// than it are simply never returned.
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id uint) (*models.Story, error)
	ActiveSince(ctx context.Context, cutoff time.Time) ([]models.Story, error)
	ActiveByUserSince(ctx context.Context, userID uint, cutoff time.Time) ([]models.Story, error)
	Delete(ctx context.Context, id uint) error
}

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	if err := r.db.WithContext(ctx).Create(story).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Preload("User").First(story, story.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *storyRepository) GetByID(ctx context.Context, id uint) (*models.Story, error) {
	var story models.Story
	if err := readDB(r.db).WithContext(ctx).Preload("User").First(&story, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Story", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &story, nil
}

func (r *storyRepository) ActiveSince(ctx context.Context, cutoff time.Time) ([]models.Story, error) {
	var stories []models.Story
	if err := readDB(r.db).WithContext(ctx).
		Where("is_active = ? AND created_at >= ?", true, cutoff).
		Preload("User").
		Order("created_at DESC").
		Find(&stories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stories, nil
}

func (r *storyRepository) ActiveByUserSince(ctx context.Context, userID uint, cutoff time.Time) ([]models.Story, error) {
	var stories []models.Story
	if err := readDB(r.db).WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND created_at >= ?", userID, true, cutoff).
		Preload("User").
		Order("created_at DESC").
		Find(&stories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stories, nil
}

func (r *storyRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Story{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
