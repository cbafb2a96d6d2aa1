package dto

import (
	"time"

	"github.com/yukikurage/microblog-app/internal/models"
)

// MessageView is the template view of a message, with its author and
// whether the current viewer has liked it.
type MessageView struct {
	ID        uint64
	Text      string
	CreatedAt time.Time
	Author    UserCard
	Liked     bool
}

// ToMessageView converts a message (with preloaded author) to its view.
// likedIDs is the set of message IDs the viewer has liked.
func ToMessageView(message models.Message, likedIDs map[uint64]bool) MessageView {
	return MessageView{
		ID:        message.ID,
		Text:      message.Text,
		CreatedAt: message.CreatedAt,
		Author:    ToUserCard(message.User),
		Liked:     likedIDs[message.ID],
	}
}

// ToMessageViews converts a slice of messages to views
func ToMessageViews(messages []models.Message, likedIDs map[uint64]bool) []MessageView {
	views := make([]MessageView, len(messages))
	for i, m := range messages {
		views[i] = ToMessageView(m, likedIDs)
	}
	return views
}

// LikedIDSet builds the liked-message lookup used by the views
func LikedIDSet(ids []uint64) map[uint64]bool {
	set := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
