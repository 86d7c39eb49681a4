// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"ripple/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// SkipBcrypt stores plaintext demo passwords for faster seeding.
	// Never use outside local development.
	SkipBcrypt bool
	// MaxDays bounds how far back generated posts are dated.
	MaxDays int
}

// Seed populates the database with demo data: users with profiles, a
// friendship mesh with some pending requests, posts with likes, comments
// and shares, direct messages between friends, and stories.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	edges, err := createFriendships(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}
	log.Printf("✓ %d friendships created", edges)

	requests, err := createPendingRequests(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create friend requests: %w", err)
	}
	log.Printf("✓ %d pending friend requests created", requests)

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	likes, comments, shares, err := createEngagement(factory, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Printf("✓ %d likes, %d comments, %d shares created", likes, comments, shares)

	messages, err := createMessages(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}
	log.Printf("✓ %d messages created", messages)

	stories, err := createStories(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create stories: %w", err)
	}
	log.Printf("✓ %d stories created", stories)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE stories, messages, likes, comments, posts, friend_edges, friend_requests, profiles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a few fixed accounts so demo logins stay stable.
	if count >= 3 {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		for _, name := range []string{"ada", "grace", "test"} {
			name := name
			user, err := f.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Password = string(hashedPassword)
				u.Profile.Bio = "One of the OGs."
				u.Profile.Avatar = fmt.Sprintf("https://i.pravatar.cc/150?u=%s", name)
			})
			if err != nil {
				// fixed accounts may already exist from a previous run
				continue
			}
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)
		logProgress("users", i, 100)
	}

	return users, nil
}

// createFriendships links each user to a handful of peers. The canonical
// edge model dedupes pairs regardless of insertion order.
func createFriendships(f *Factory, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}
	created := 0
	for i, user := range users {
		degree := f.rng.Intn(4) + 1
		for j := 0; j < degree; j++ {
			peer := users[f.rng.Intn(len(users))]
			if peer.ID == user.ID {
				continue
			}
			if err := f.CreateFriendship(user, peer); err != nil {
				return created, err
			}
			created++
		}
		logProgress("friendships", i, 200)
	}
	return created, nil
}

// createPendingRequests leaves some requests unanswered so the requests
// inbox has content. Pairs that are already friends are skipped.
func createPendingRequests(f *Factory, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}
	target := len(users) / 4
	created := 0
	for attempts := 0; created < target && attempts < target*5; attempts++ {
		from := users[f.rng.Intn(len(users))]
		to := users[f.rng.Intn(len(users))]
		if from.ID == to.ID {
			continue
		}
		edge := models.NewFriendEdge(from.ID, to.ID)
		var friends int64
		f.db.Model(&models.FriendEdge{}).
			Where("user_low_id = ? AND user_high_id = ?", edge.UserLowID, edge.UserHighID).
			Count(&friends)
		if friends > 0 {
			continue
		}
		if _, err := f.CreateFriendRequest(from, to); err != nil {
			// duplicate pair, try another
			continue
		}
		created++
	}
	return created, nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	batch := make([]*models.Post, 0, 100)

	for i := 0; i < count; i++ {
		user := users[f.rng.Intn(len(users))]
		batch = append(batch, f.BuildPost(user))

		if len(batch) == cap(batch) {
			if err := f.CreatePostsBatch(batch); err != nil {
				return posts, err
			}
			posts = append(posts, batch...)
			batch = batch[:0]
		}
		logProgress("posts", i, 500)
	}
	if len(batch) > 0 {
		if err := f.CreatePostsBatch(batch); err != nil {
			return posts, err
		}
		posts = append(posts, batch...)
	}
	return posts, nil
}

func createEngagement(f *Factory, users []*models.User, posts []*models.Post) (likes, comments, shares int, err error) {
	if len(posts) == 0 {
		return 0, 0, 0, nil
	}
	for _, post := range posts {
		likers := f.rng.Intn(5)
		for j := 0; j < likers; j++ {
			user := users[f.rng.Intn(len(users))]
			if err := f.CreateLike(user, post); err != nil {
				return likes, comments, shares, err
			}
			likes++
		}

		commenters := f.rng.Intn(3)
		for j := 0; j < commenters; j++ {
			user := users[f.rng.Intn(len(users))]
			if _, err := f.CreateComment(user, post); err != nil {
				return likes, comments, shares, err
			}
			comments++
		}

		if post.Visibility == models.VisibilityPublic && f.rng.Float32() < 0.1 {
			user := users[f.rng.Intn(len(users))]
			if _, err := f.CreateShare(user, post); err != nil {
				return likes, comments, shares, err
			}
			shares++
		}
	}
	return likes, comments, shares, nil
}

// createMessages exchanges a few messages along each friendship edge.
func createMessages(f *Factory, users []*models.User) (int, error) {
	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	var edges []models.FriendEdge
	if err := f.db.Find(&edges).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, edge := range edges {
		low, high := byID[edge.UserLowID], byID[edge.UserHighID]
		if low == nil || high == nil {
			continue
		}
		exchanges := f.rng.Intn(6)
		for j := 0; j < exchanges; j++ {
			sender, receiver := low, high
			if j%2 == 1 {
				sender, receiver = high, low
			}
			if _, err := f.CreateMessage(sender, receiver); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func createStories(f *Factory, users []*models.User) (int, error) {
	created := 0
	for _, user := range users {
		if f.rng.Float32() > 0.4 {
			continue
		}
		n := f.rng.Intn(3) + 1
		for j := 0; j < n; j++ {
			if _, err := f.CreateStory(user); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
