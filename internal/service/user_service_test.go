package service

import (
	"context"
	"strings"
	"testing"

	"ripple/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Str0ng!Passw0rd"

func TestUserServiceRegisterValidation(t *testing.T) {
	svc := NewUserService(noopUserRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"short username", RegisterInput{Username: "ab", Email: "a@example.com", Password: testPassword}},
		{"bad email", RegisterInput{Username: "ada", Email: "not-an-email", Password: testPassword}},
		{"weak password", RegisterInput{Username: "ada", Email: "a@example.com", Password: "password"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.in)
			assertErrCode(t, err, models.ErrCodeValidation)
		})
	}
}

func TestUserServiceRegisterDuplicateUsername(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(ctx context.Context, username string) (*models.User, error) {
		return &models.User{ID: 1, Username: username}, nil
	}
	svc := NewUserService(users)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "ada", Email: "a@example.com", Password: testPassword})
	assertErrCode(t, err, models.ErrCodeValidation)
}

func TestUserServiceRegisterDuplicateEmail(t *testing.T) {
	users := noopUserRepo()
	users.getByEmailFn = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{ID: 1, Email: email}, nil
	}
	svc := NewUserService(users)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "ada", Email: "a@example.com", Password: testPassword})
	assertErrCode(t, err, models.ErrCodeValidation)
}

func TestUserServiceRegisterHashesPasswordAndAttachesProfile(t *testing.T) {
	var created *models.User
	users := noopUserRepo()
	users.createFn = func(ctx context.Context, user *models.User) error {
		user.ID = 1
		created = user
		return nil
	}
	svc := NewUserService(users)

	user, err := svc.Register(context.Background(), RegisterInput{Username: "ada", Email: "Ada@Example.COM", Password: testPassword})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("user was not persisted")
	}
	if created.Email != "ada@example.com" {
		t.Fatalf("email should be lowercased, got %q", created.Email)
	}
	if created.Password == testPassword || !strings.HasPrefix(created.Password, "$2") {
		t.Fatalf("password does not look hashed: %q", created.Password)
	}
	if bcrypt.CompareHashAndPassword([]byte(created.Password), []byte(testPassword)) != nil {
		t.Fatal("stored hash does not verify against the original password")
	}
	if user.Profile == nil {
		t.Fatal("registration should attach an empty profile")
	}
}

func TestUserServiceAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	users := noopUserRepo()
	users.getByEmailFn = func(ctx context.Context, email string) (*models.User, error) {
		if email == "ada@example.com" {
			return &models.User{ID: 1, Email: email, Password: string(hash)}, nil
		}
		return nil, nil
	}
	svc := NewUserService(users)
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, " Ada@Example.com ", testPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("unexpected user: %+v", user)
	}

	_, err = svc.Authenticate(ctx, "ada@example.com", "wrong-password")
	assertErrCode(t, err, models.ErrCodeUnauthorized)

	_, err = svc.Authenticate(ctx, "ghost@example.com", testPassword)
	assertErrCode(t, err, models.ErrCodeUnauthorized)
}

func TestUserServiceGetByUsernameMissing(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	_, err := svc.GetByUsername(context.Background(), "ghost")
	assertErrCode(t, err, models.ErrCodeNotFound)
}

func TestUserServiceSearchRequiresQuery(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	_, err := svc.SearchUsers(context.Background(), "   ", 20, 0)
	assertErrCode(t, err, models.ErrCodeValidation)
}

func TestUserServiceUpdateProfile(t *testing.T) {
	users := noopUserRepo()
	users.getProfileFn = func(ctx context.Context, userID uint) (*models.Profile, error) {
		return &models.Profile{ID: 1, UserID: userID, Bio: "old"}, nil
	}
	var updated *models.Profile
	users.updateProfileFn = func(ctx context.Context, profile *models.Profile) error {
		updated = profile
		return nil
	}
	svc := NewUserService(users)

	bio := "new bio"
	location := "London"
	profile, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{Bio: &bio, Location: &location})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || updated.Bio != "new bio" || updated.Location != "London" {
		t.Fatalf("profile not updated: %+v", updated)
	}
	if profile.Bio != "new bio" {
		t.Fatalf("unexpected returned profile: %+v", profile)
	}

	long := strings.Repeat("x", 501)
	_, err = svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{Bio: &long})
	assertErrCode(t, err, models.ErrCodeValidation)
}
