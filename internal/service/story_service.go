package service

import (
	"context"
	"strings"
	"time"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// StoryService provides story business logic. Stories disappear from all
// listings once they are older than models.StoryWindow; the rows themselves
// are left in place.
type StoryService struct {
	storyRepo repository.StoryRepository
	now       func() time.Time
}

// NewStoryService returns a new StoryService using wall-clock time.
func NewStoryService(storyRepo repository.StoryRepository) *StoryService {
	return NewStoryServiceWithClock(storyRepo, time.Now)
}

// NewStoryServiceWithClock returns a StoryService with an injected clock.
func NewStoryServiceWithClock(storyRepo repository.StoryRepository, now func() time.Time) *StoryService {
	return &StoryService{
		storyRepo: storyRepo,
		now:       now,
	}
}

func (s *StoryService) cutoff() time.Time {
	return s.now().Add(-models.StoryWindow)
}

// Create posts a new story for userID.
func (s *StoryService) Create(ctx context.Context, userID uint, file string) (*models.Story, error) {
	file = strings.TrimSpace(file)
	if file == "" {
		return nil, models.NewValidationError("story file is required")
	}

	story := &models.Story{
		UserID:   userID,
		File:     file,
		IsActive: true,
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	observability.StoriesPosted.Inc()
	return story, nil
}

// Active returns all stories still inside the visibility window.
func (s *StoryService) Active(ctx context.Context) ([]models.Story, error) {
	return s.storyRepo.ActiveSince(ctx, s.cutoff())
}

// ActiveByUser returns a user's stories still inside the visibility window.
func (s *StoryService) ActiveByUser(ctx context.Context, userID uint) ([]models.Story, error) {
	return s.storyRepo.ActiveByUserSince(ctx, userID, s.cutoff())
}

// Get returns a single story if it is still visible to the viewer.
func (s *StoryService) Get(ctx context.Context, storyID uint) (*models.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if !story.IsActive || story.CreatedAt.Before(s.cutoff()) {
		return nil, models.NewNotFoundError("Story", storyID)
	}
	return story, nil
}

// Delete removes a story. Only the owner may delete.
func (s *StoryService) Delete(ctx context.Context, userID, storyID uint) error {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story.UserID != userID {
		return models.NewForbiddenError("you can only delete your own stories")
	}
	return s.storyRepo.Delete(ctx, storyID)
}
