package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/yukikurage/microblog-app/internal/constants"
)

var (
	// ErrMessageTextEmpty is returned when a message is persisted with no text.
	ErrMessageTextEmpty = errors.New("message text cannot be empty")
	// ErrMessageTextTooLong is returned when message text exceeds the column width.
	ErrMessageTextTooLong = errors.New("message text exceeds maximum length")
)

type Message struct {
	ID        uint64 `gorm:"primarykey"`
	Text      string `gorm:"type:varchar(140);not null"`
	UserID    uint64 `gorm:"not null;index"`
	CreatedAt time.Time

	// Relations
	User  User   `gorm:"foreignKey:UserID"`
	Likes []Like `gorm:"foreignKey:MessageID"`
}

// BeforeSave enforces the text bounds at the persistence boundary. The column
// width guarantees this on Postgres/MySQL; the hook makes the invariant hold
// on every driver and for every write path, including ones that skip form
// validation.
func (m *Message) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(m.Text) == "" {
		return ErrMessageTextEmpty
	}
	if utf8.RuneCountInString(m.Text) > constants.MaxMessageLength {
		return ErrMessageTextTooLong
	}
	return nil
}
