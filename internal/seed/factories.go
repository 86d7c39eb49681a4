// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng}
}

// CreateUser constructs and persists a sample `models.User` with an
// attached Profile. Optional override functions may modify the generated
// user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
	user := &models.User{
		Username: username,
		Email:    gofakeit.Email(),
		Profile: &models.Profile{
			Bio:      gofakeit.Sentence(10),
			Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			Cover:    fmt.Sprintf("https://picsum.photos/seed/cover-%s/1200/400", gofakeit.UUID()),
		},
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post struct without persisting it. Useful for
// batching.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Content:    gofakeit.Paragraph(1, 3, 5, "\n"),
		UserID:     user.ID,
		Visibility: models.VisibilityPublic,
	}

	if f.rng.Float32() < 0.4 {
		post.Image = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}
	if f.rng.Float32() < 0.25 {
		post.Visibility = models.VisibilityPrivate
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample `models.Post` for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateShare persists a share of the given post. When the target is
// itself a share the new post points at the root original.
func (f *Factory) CreateShare(user *models.User, target *models.Post) (*models.Post, error) {
	rootID := target.ID
	if target.SharedPostID != nil {
		rootID = *target.SharedPostID
	}
	share := &models.Post{
		Content:      gofakeit.Sentence(8),
		UserID:       user.ID,
		SharedPostID: &rootID,
		Visibility:   models.VisibilityPublic,
	}
	if err := f.db.Create(share).Error; err != nil {
		return nil, err
	}
	return share, nil
}

// CreateComment persists a comment by the user on the post.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(f.rng.Intn(12) + 3),
		UserID:  user.ID,
		PostID:  post.ID,
	}
	for _, override := range overrides {
		override(comment)
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like; duplicate pairs are silently skipped so
// random seeding does not trip the unique index.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	var existing int64
	f.db.Model(&models.Like{}).Where("user_id = ? AND post_id = ?", user.ID, post.ID).Count(&existing)
	if existing > 0 {
		return nil
	}
	return f.db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}

// CreateFriendship persists the canonical edge between two users.
func (f *Factory) CreateFriendship(a, b *models.User) error {
	if a.ID == b.ID {
		return fmt.Errorf("cannot befriend self")
	}
	edge := models.NewFriendEdge(a.ID, b.ID)
	var existing int64
	f.db.Model(&models.FriendEdge{}).
		Where("user_low_id = ? AND user_high_id = ?", edge.UserLowID, edge.UserHighID).
		Count(&existing)
	if existing > 0 {
		return nil
	}
	return f.db.Create(edge).Error
}

// CreateFriendRequest persists a pending request from one user to another.
func (f *Factory) CreateFriendRequest(from, to *models.User) (*models.FriendRequest, error) {
	req := &models.FriendRequest{FromUserID: from.ID, ToUserID: to.ID}
	if err := f.db.Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// CreateMessage persists a direct message between two users.
func (f *Factory) CreateMessage(sender, receiver *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	message := &models.Message{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Content:    gofakeit.Sentence(f.rng.Intn(10) + 2),
		IsRead:     f.rng.Float32() < 0.6,
	}
	for _, override := range overrides {
		override(message)
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// CreateStory persists a story for the user. Roughly a third are
// backdated beyond the visibility window so expiry paths get data too.
func (f *Factory) CreateStory(user *models.User, overrides ...func(*models.Story)) (*models.Story, error) {
	story := &models.Story{
		UserID:   user.ID,
		File:     fmt.Sprintf("https://picsum.photos/seed/story-%s/720/1280", gofakeit.UUID()),
		IsActive: true,
	}
	if f.rng.Float32() < 0.3 {
		story.CreatedAt = time.Now().Add(-models.StoryWindow - time.Duration(f.rng.Intn(48))*time.Hour)
	} else {
		story.CreatedAt = time.Now().Add(-time.Duration(f.rng.Intn(23)) * time.Hour)
	}
	for _, override := range overrides {
		override(story)
	}
	if err := f.db.Create(story).Error; err != nil {
		return nil, err
	}
	return story, nil
}

// logProgress prints batch progress every `every` items.
func logProgress(what string, i, every int) {
	if every > 0 && i > 0 && i%every == 0 {
		log.Printf("Created %d %s...", i, what)
	}
}
