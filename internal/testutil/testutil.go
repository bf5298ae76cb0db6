// Package testutil builds migrated SQLite databases and fixtures for tests.
package testutil

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/logger"
	"github.com/stwalsh4118/vidhub/internal/models"
)

// MigrationsURL returns the file:// URL of the SQLite migrations directory
func MigrationsURL() string {
	_, file, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(file), "..", "..")
	return "file://" + filepath.ToSlash(filepath.Join(root, "migrations", db.DriverSQLite))
}

// NewDB opens a fresh SQLite database in a temp directory with all migrations applied.
// The database is closed when the test finishes.
func NewDB(t *testing.T) (*db.DB, *db.Repositories) {
	t.Helper()

	logger.Init("error", false)

	database, err := db.New(db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(sqlDB, db.DriverSQLite, MigrationsURL()))

	return database, db.NewRepositories(database)
}

// CreateUser inserts an active user named username with a placeholder password hash
func CreateUser(t *testing.T, repos *db.Repositories, username string) *models.User {
	t.Helper()

	user := models.NewUser(username+"@example.com", username, "not-a-real-hash")
	require.NoError(t, repos.Users.Create(context.Background(), user))
	return user
}

// VideoOption customizes a fixture video before it is inserted
type VideoOption func(*models.Video)

// WithVisibility sets the fixture video's visibility
func WithVisibility(visibility string) VideoOption {
	return func(v *models.Video) { v.Visibility = visibility }
}

// WithTags sets the fixture video's tags
func WithTags(tags ...string) VideoOption {
	return func(v *models.Video) { v.Tags = models.NormalizeTags(tags) }
}

// WithCategory sets the fixture video's category
func WithCategory(category string) VideoOption {
	return func(v *models.Video) { v.Category = category }
}

// WithViews sets the fixture video's view count
func WithViews(views int64) VideoOption {
	return func(v *models.Video) { v.Views = views }
}

// WithDuration sets the fixture video's duration in seconds
func WithDuration(seconds int64) VideoOption {
	return func(v *models.Video) { v.Duration = seconds }
}

// WithDescription sets the fixture video's description
func WithDescription(description string) VideoOption {
	return func(v *models.Video) { v.Description = description }
}

// CreatedAgo backdates the fixture video
func CreatedAgo(d time.Duration) VideoOption {
	return func(v *models.Video) {
		v.CreatedAt = time.Now().UTC().Add(-d)
		v.UpdatedAt = v.CreatedAt
	}
}

// CreateVideo inserts a public, published video owned by owner
func CreateVideo(t *testing.T, repos *db.Repositories, owner *models.User, title string, opts ...VideoOption) *models.Video {
	t.Helper()

	video := models.NewVideo(owner.ID, title, "https://cdn.example.com/"+title+".jpg",
		"https://cdn.example.com/"+title+".mp4", "education")
	for _, opt := range opts {
		opt(video)
	}
	require.NoError(t, repos.Videos.Create(context.Background(), video))
	return video
}

// ReloadUser reads a user back from the database
func ReloadUser(t *testing.T, repos *db.Repositories, id uuid.UUID) *models.User {
	t.Helper()

	user, err := repos.Users.GetByID(context.Background(), id)
	require.NoError(t, err)
	return user
}

// ReloadVideo reads a video back from the database
func ReloadVideo(t *testing.T, repos *db.Repositories, id uuid.UUID) *models.Video {
	t.Helper()

	video, err := repos.Videos.GetByID(context.Background(), id)
	require.NoError(t, err)
	return video
}
