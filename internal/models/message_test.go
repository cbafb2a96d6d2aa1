package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openModelTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Message{}, &Follow{}, &Like{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// Writing straight through gorm, with no form or service in the way, must
// still reject out-of-bounds text.
func TestMessageTextBoundsAtPersistence(t *testing.T) {
	db := openModelTestDB(t)

	user := User{Username: "testing", Email: "testing@test.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	err := db.Create(&Message{Text: strings.Repeat("a", 141), UserID: user.ID}).Error
	require.ErrorIs(t, err, ErrMessageTextTooLong)

	err = db.Create(&Message{Text: "", UserID: user.ID}).Error
	require.ErrorIs(t, err, ErrMessageTextEmpty)

	var count int64
	require.NoError(t, db.Model(&Message{}).Count(&count).Error)
	require.Zero(t, count)

	require.NoError(t, db.Create(&Message{Text: "text", UserID: user.ID}).Error)
}

func TestFollowCompositeKey(t *testing.T) {
	db := openModelTestDB(t)

	u1 := User{Username: "u1", Email: "u1@email.com", PasswordHash: "x"}
	u2 := User{Username: "u2", Email: "u2@email.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&u1).Error)
	require.NoError(t, db.Create(&u2).Error)

	require.NoError(t, db.Create(&Follow{FollowerID: u1.ID, FollowedID: u2.ID}).Error)

	// Same directed pair again is rejected by the store
	err := db.Create(&Follow{FollowerID: u1.ID, FollowedID: u2.ID}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The reverse direction is a distinct edge
	require.NoError(t, db.Create(&Follow{FollowerID: u2.ID, FollowedID: u1.ID}).Error)
}

func TestLikeCompositeKey(t *testing.T) {
	db := openModelTestDB(t)

	u1 := User{Username: "u1", Email: "u1@email.com", PasswordHash: "x"}
	u2 := User{Username: "u2", Email: "u2@email.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&u1).Error)
	require.NoError(t, db.Create(&u2).Error)

	message := Message{Text: "text", UserID: u1.ID}
	require.NoError(t, db.Create(&message).Error)

	require.NoError(t, db.Create(&Like{UserID: u2.ID, MessageID: message.ID}).Error)

	err := db.Create(&Like{UserID: u2.ID, MessageID: message.ID}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserUniqueConstraints(t *testing.T) {
	db := openModelTestDB(t)

	require.NoError(t, db.Create(&User{Username: "u1", Email: "u1@email.com", PasswordHash: "x"}).Error)

	err := db.Create(&User{Username: "u1", Email: "other@email.com", PasswordHash: "x"}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = db.Create(&User{Username: "other", Email: "u1@email.com", PasswordHash: "x"}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
