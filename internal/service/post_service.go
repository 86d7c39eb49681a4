package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// PostService provides post, like, and share business logic.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// CreatePostInput carries the fields for creating a post.
type CreatePostInput struct {
	Content    string
	Image      string
	Video      string
	Visibility string
}

// UpdatePostInput carries the mutable fields of a post.
type UpdatePostInput struct {
	Content    *string
	Visibility *string
}

func normalizeVisibility(v string) (string, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	switch v {
	case "":
		return models.VisibilityPublic, nil
	case models.VisibilityPublic, models.VisibilityPrivate:
		return v, nil
	default:
		return "", models.NewValidationError("visibility must be public or private")
	}
}

// Create creates a post owned by userID. A post needs at least one of
// content, image, or video.
func (s *PostService) Create(ctx context.Context, userID uint, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" && in.Image == "" && in.Video == "" {
		return nil, models.NewValidationError("post must have content, an image, or a video")
	}

	visibility, err := normalizeVisibility(in.Visibility)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Content:    content,
		Image:      in.Image,
		Video:      in.Video,
		Visibility: visibility,
		UserID:     userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsCreated.WithLabelValues(visibility).Inc()
	return s.postRepo.GetByID(ctx, post.ID, userID)
}

// Get returns a single post as seen by viewerID. Private posts are only
// visible to their owner.
func (s *PostService) Get(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if post.Visibility == models.VisibilityPrivate && post.UserID != viewerID {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, nil
}

// Feed returns public posts plus the viewer's own posts, newest first.
func (s *PostService) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.Feed(ctx, viewerID, limit, offset)
}

// ByUsername returns the posts of the named user as seen by the viewer.
// Private posts appear only when the viewer is the owner.
func (s *PostService) ByUsername(ctx context.Context, viewerID uint, username string, limit, offset int) ([]*models.Post, error) {
	owner, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	posts, err := s.postRepo.GetByUserID(ctx, owner.ID, limit, offset, viewerID)
	if err != nil {
		return nil, err
	}

	if owner.ID == viewerID {
		return posts, nil
	}

	visible := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if p.Visibility == models.VisibilityPublic {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// Update edits a post. Only the owner may edit.
func (s *PostService) Update(ctx context.Context, userID, postID uint, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewForbiddenError("you can only edit your own posts")
	}

	if in.Content != nil {
		post.Content = strings.TrimSpace(*in.Content)
	}
	if in.Visibility != nil {
		visibility, err := normalizeVisibility(*in.Visibility)
		if err != nil {
			return nil, err
		}
		post.Visibility = visibility
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}

// Delete removes a post. Only the owner may delete.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("you can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike likes the post if the user has not liked it, unlikes otherwise.
// It returns the resulting liked state and the post's like count.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return false, 0, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, 0, err
	}

	if liked {
		err = s.postRepo.Unlike(ctx, userID, postID)
	} else {
		err = s.postRepo.Like(ctx, userID, postID)
	}
	if err != nil {
		return false, 0, err
	}

	count, err := s.postRepo.CountLikes(ctx, postID)
	if err != nil {
		return false, 0, err
	}
	return !liked, count, nil
}

// Share creates a new post referencing an existing one. Sharing a share is
// flattened: the new post always points at the root original.
func (s *PostService) Share(ctx context.Context, userID, postID uint, content string) (*models.Post, error) {
	target, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if target.Visibility == models.VisibilityPrivate && target.UserID != userID {
		return nil, models.NewNotFoundError("Post", postID)
	}

	originalID := target.ID
	if target.SharedPostID != nil {
		originalID = *target.SharedPostID
	}

	share := &models.Post{
		Content:      strings.TrimSpace(content),
		Visibility:   models.VisibilityPublic,
		UserID:       userID,
		SharedPostID: &originalID,
	}
	if err := s.postRepo.Create(ctx, share); err != nil {
		return nil, err
	}

	observability.PostsCreated.WithLabelValues(share.Visibility).Inc()
	return s.postRepo.GetByID(ctx, share.ID, userID)
}
