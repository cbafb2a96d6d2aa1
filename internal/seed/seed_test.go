package seed

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/microblog-app/internal/constants"
	"github.com/yukikurage/microblog-app/internal/models"
)

func openSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Message{}, &models.Follow{}, &models.Like{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestSeederUsersAndMessages(t *testing.T) {
	db := openSeedTestDB(t)
	s := NewSeeder(db)

	users, err := s.Users(5)
	require.NoError(t, err)
	require.Len(t, users, 5)

	messages, err := s.Messages(users, 20)
	require.NoError(t, err)
	require.Len(t, messages, 20)

	for _, m := range messages {
		require.LessOrEqual(t, len(m.Text), constants.MaxMessageLength)
	}
}

func TestSeederLikesWithNoMessages(t *testing.T) {
	db := openSeedTestDB(t)
	s := NewSeeder(db)

	users, err := s.Users(3)
	require.NoError(t, err)

	// Seeding likes over an empty message set is a no-op, not a panic
	require.NoError(t, s.Likes(users, nil))

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSeederClearAll(t *testing.T) {
	db := openSeedTestDB(t)
	s := NewSeeder(db)

	users, err := s.Users(3)
	require.NoError(t, err)
	messages, err := s.Messages(users, 10)
	require.NoError(t, err)
	require.NoError(t, s.FollowMesh(users))
	require.NoError(t, s.Likes(users, messages))

	require.NoError(t, s.ClearAll())

	for _, model := range []interface{}{&models.Like{}, &models.Follow{}, &models.Message{}, &models.User{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		require.Zero(t, count)
	}
}
