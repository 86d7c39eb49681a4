package bootstrap

import (
	"testing"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestEnsureDevRootAccountDisabled(t *testing.T) {
	db := newTestDB(t)

	cfg := &config.Config{Env: "development"}
	require.NoError(t, ensureDevRootAccount(cfg, db))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)

	cfg = &config.Config{Env: "production", DevBootstrapRoot: true, DevRootPassword: "hunter2hunter2"}
	require.NoError(t, ensureDevRootAccount(cfg, db))
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestEnsureDevRootAccountRequiresPassword(t *testing.T) {
	db := newTestDB(t)

	cfg := &config.Config{Env: "development", DevBootstrapRoot: true}
	require.Error(t, ensureDevRootAccount(cfg, db))
}

func TestEnsureDevRootAccountCreatesAndRefreshes(t *testing.T) {
	db := newTestDB(t)

	cfg := &config.Config{
		Env:              "development",
		DevBootstrapRoot: true,
		DevRootPassword:  "first-password",
	}
	require.NoError(t, ensureDevRootAccount(cfg, db))

	var root models.User
	require.NoError(t, db.Preload("Profile").First(&root, 1).Error)
	require.Equal(t, "ripple_root", root.Username)
	require.Equal(t, "root@ripple.local", root.Email)
	require.NotNil(t, root.Profile)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(root.Password), []byte("first-password")))

	cfg.DevRootUsername = "root"
	cfg.DevRootEmail = "Root@Example.Com"
	cfg.DevRootPassword = "second-password"
	require.NoError(t, ensureDevRootAccount(cfg, db))

	require.NoError(t, db.First(&root, 1).Error)
	require.Equal(t, "root", root.Username)
	require.Equal(t, "root@example.com", root.Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(root.Password), []byte("second-password")))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
