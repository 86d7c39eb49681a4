package repository

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post := &models.Post{Content: "hello", UserID: alice.ID, Visibility: models.VisibilityPublic}
	require.NoError(t, postRepo.Create(ctx, post))

	t.Run("create reloads the author", func(t *testing.T) {
		comment := &models.Comment{Content: "nice", UserID: bob.ID, PostID: post.ID}
		require.NoError(t, repo.Create(ctx, comment))
		require.NotZero(t, comment.ID)
		assert.Equal(t, "bob", comment.User.Username)
	})

	t.Run("list by post oldest first", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Comment{Content: "later", UserID: alice.ID, PostID: post.ID}))

		comments, err := repo.GetByPostID(ctx, post.ID, 50, 0)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "nice", comments[0].Content)
		assert.Equal(t, "later", comments[1].Content)
	})

	t.Run("update persists new content", func(t *testing.T) {
		comments, err := repo.GetByPostID(ctx, post.ID, 50, 0)
		require.NoError(t, err)
		require.NotEmpty(t, comments)

		comments[0].Content = "edited"
		require.NoError(t, repo.Update(ctx, &comments[0]))

		got, err := repo.GetByID(ctx, comments[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Content)
	})

	t.Run("delete hides from listings and lowers the count", func(t *testing.T) {
		comments, err := repo.GetByPostID(ctx, post.ID, 50, 0)
		require.NoError(t, err)
		require.NotEmpty(t, comments)

		require.NoError(t, repo.Delete(ctx, comments[0].ID))

		remaining, err := repo.GetByPostID(ctx, post.ID, 50, 0)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)

		got, err := postRepo.GetByID(ctx, post.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, got.CommentsCount)
	})

	t.Run("get missing comment", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
	})
}
