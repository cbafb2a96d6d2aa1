package models

import "time"

// Like is an edge between a user and a message. The composite primary key
// means a user can like a given message at most once.
type Like struct {
	UserID    uint64 `gorm:"primarykey"`
	MessageID uint64 `gorm:"primarykey"`
	CreatedAt time.Time

	// Relations
	User    User    `gorm:"foreignKey:UserID"`
	Message Message `gorm:"foreignKey:MessageID"`
}
