package models

import "time"

// Follow is a directed edge: FollowerID follows FollowedID. The composite
// primary key stores a given pair at most once.
type Follow struct {
	FollowerID uint64 `gorm:"primarykey"`
	FollowedID uint64 `gorm:"primarykey"`
	CreatedAt  time.Time

	// Relations
	Follower User `gorm:"foreignKey:FollowerID"`
	Followed User `gorm:"foreignKey:FollowedID"`
}
