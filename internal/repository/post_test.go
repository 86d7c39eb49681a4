package repository

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Feed(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	posts := []*models.Post{
		{Content: "alice public", UserID: alice.ID, Visibility: models.VisibilityPublic},
		{Content: "alice private", UserID: alice.ID, Visibility: models.VisibilityPrivate},
		{Content: "bob public", UserID: bob.ID, Visibility: models.VisibilityPublic},
		{Content: "bob private", UserID: bob.ID, Visibility: models.VisibilityPrivate},
	}
	for _, p := range posts {
		require.NoError(t, repo.Create(ctx, p))
	}

	t.Run("viewer sees public posts plus own private", func(t *testing.T) {
		feed, err := repo.Feed(ctx, alice.ID, 50, 0)
		require.NoError(t, err)
		require.Len(t, feed, 3)

		contents := make([]string, 0, len(feed))
		for _, p := range feed {
			contents = append(contents, p.Content)
		}
		assert.Contains(t, contents, "alice public")
		assert.Contains(t, contents, "alice private")
		assert.Contains(t, contents, "bob public")
		assert.NotContains(t, contents, "bob private")
	})

	t.Run("own public post appears exactly once", func(t *testing.T) {
		feed, err := repo.Feed(ctx, alice.ID, 50, 0)
		require.NoError(t, err)

		count := 0
		for _, p := range feed {
			if p.Content == "alice public" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("pagination applies", func(t *testing.T) {
		feed, err := repo.Feed(ctx, alice.ID, 2, 0)
		require.NoError(t, err)
		assert.Len(t, feed, 2)

		rest, err := repo.Feed(ctx, alice.ID, 2, 2)
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})
}

func TestPostRepository_Likes(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post := &models.Post{Content: "hello", UserID: alice.ID, Visibility: models.VisibilityPublic}
	require.NoError(t, repo.Create(ctx, post))

	t.Run("like is idempotent", func(t *testing.T) {
		require.NoError(t, repo.Like(ctx, bob.ID, post.ID))
		require.NoError(t, repo.Like(ctx, bob.ID, post.ID))

		count, err := repo.CountLikes(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("liked flag reflects the viewer", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, got.Liked)
		assert.Equal(t, 1, got.LikesCount)

		got, err = repo.GetByID(ctx, post.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, got.Liked)
	})

	t.Run("unlike removes the row", func(t *testing.T) {
		require.NoError(t, repo.Unlike(ctx, bob.ID, post.ID))

		count, err := repo.CountLikes(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		liked, err := repo.IsLiked(ctx, bob.ID, post.ID)
		require.NoError(t, err)
		assert.False(t, liked)
	})
}

func TestPostRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999, alice.ID)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
	})

	t.Run("share preloads the original", func(t *testing.T) {
		original := &models.Post{Content: "original", UserID: alice.ID, Visibility: models.VisibilityPublic}
		require.NoError(t, repo.Create(ctx, original))

		share := &models.Post{UserID: alice.ID, Visibility: models.VisibilityPublic, SharedPostID: &original.ID}
		require.NoError(t, repo.Create(ctx, share))

		got, err := repo.GetByID(ctx, share.ID, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, got.SharedPost)
		assert.Equal(t, "original", got.SharedPost.Content)
		assert.Equal(t, "alice", got.SharedPost.User.Username)
	})

	t.Run("comments preloaded oldest first", func(t *testing.T) {
		post := &models.Post{Content: "with comments", UserID: alice.ID, Visibility: models.VisibilityPublic}
		require.NoError(t, repo.Create(ctx, post))
		require.NoError(t, db.Create(&models.Comment{Content: "first", UserID: alice.ID, PostID: post.ID}).Error)
		require.NoError(t, db.Create(&models.Comment{Content: "second", UserID: alice.ID, PostID: post.ID}).Error)

		got, err := repo.GetByID(ctx, post.ID, 0)
		require.NoError(t, err)
		require.Len(t, got.Comments, 2)
		assert.Equal(t, "first", got.Comments[0].Content)
		assert.Equal(t, 2, got.CommentsCount)
	})
}

func TestPostRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	post := &models.Post{Content: "bye", UserID: alice.ID, Visibility: models.VisibilityPublic}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID, alice.ID)
	require.Error(t, err)

	feed, err := repo.Feed(ctx, alice.ID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, feed)
}
