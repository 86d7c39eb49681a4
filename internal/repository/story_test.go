package repository

import (
	"context"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryRepository_ActiveSince(t *testing.T) {
	db := newTestDB(t)
	repo := NewStoryRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	now := time.Now()

	fresh := &models.Story{UserID: alice.ID, File: "fresh.jpg", IsActive: true}
	require.NoError(t, repo.Create(ctx, fresh))

	stale := &models.Story{UserID: bob.ID, File: "stale.jpg", IsActive: true}
	require.NoError(t, repo.Create(ctx, stale))
	// Backdate past the visibility window
	require.NoError(t, db.Model(&models.Story{}).
		Where("id = ?", stale.ID).
		Update("created_at", now.Add(-models.StoryWindow-time.Hour)).Error)

	inactive := &models.Story{UserID: alice.ID, File: "inactive.jpg", IsActive: true}
	require.NoError(t, db.Create(inactive).Error)
	require.NoError(t, db.Model(&models.Story{}).
		Where("id = ?", inactive.ID).
		Update("is_active", false).Error)

	cutoff := now.Add(-models.StoryWindow)

	t.Run("expired and inactive stories are invisible", func(t *testing.T) {
		stories, err := repo.ActiveSince(ctx, cutoff)
		require.NoError(t, err)
		require.Len(t, stories, 1)
		assert.Equal(t, "fresh.jpg", stories[0].File)
		assert.Equal(t, "alice", stories[0].User.Username)
	})

	t.Run("expired story row still exists", func(t *testing.T) {
		got, err := repo.GetByID(ctx, stale.ID)
		require.NoError(t, err)
		assert.Equal(t, "stale.jpg", got.File)
	})

	t.Run("per user filter", func(t *testing.T) {
		stories, err := repo.ActiveByUserSince(ctx, alice.ID, cutoff)
		require.NoError(t, err)
		require.Len(t, stories, 1)
		assert.Equal(t, "fresh.jpg", stories[0].File)

		stories, err = repo.ActiveByUserSince(ctx, bob.ID, cutoff)
		require.NoError(t, err)
		assert.Empty(t, stories)
	})
}

func TestStoryRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewStoryRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	story := &models.Story{UserID: alice.ID, File: "bye.jpg", IsActive: true}
	require.NoError(t, repo.Create(ctx, story))

	require.NoError(t, repo.Delete(ctx, story.ID))

	_, err := repo.GetByID(ctx, story.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}
