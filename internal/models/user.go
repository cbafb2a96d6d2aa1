package models

import "time"

type User struct {
	ID             uint64 `gorm:"primarykey"`
	Username       string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email          string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash   string `gorm:"type:varchar(255);not null"`
	ImageURL       string `gorm:"type:varchar(255)"`
	HeaderImageURL string `gorm:"type:varchar(255)"`
	Bio            string `gorm:"type:text"`
	Location       string `gorm:"type:varchar(100)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Relations
	Messages  []Message `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Following []Follow  `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Followers []Follow  `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
	Likes     []Like    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
