package repository

import (
	"github.com/yukikurage/microblog-app/internal/models"
	"github.com/yukikurage/microblog-app/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Search lists users whose username contains the given substring,
	// paginated. An empty query lists everyone.
	Search(query string, params utils.PaginationParams) ([]models.User, error)

	// Update persists changes to an existing user
	Update(user *models.User) error

	// Delete removes a user together with their messages and edges
	Delete(id uint64) error
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// Create creates a new message
	Create(message *models.Message) error

	// FindByID finds a message by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Message, error)

	// ListByUser lists a user's messages, newest first
	ListByUser(userID uint64) ([]models.Message, error)

	// Timeline lists messages authored by any of the given users, newest
	// first, capped at limit
	Timeline(userIDs []uint64, limit int) ([]models.Message, error)

	// Delete removes a message and its likes atomically
	Delete(id uint64) error

	// CountByUser counts messages owned by a user
	CountByUser(userID uint64) (int64, error)
}

// FollowRepository defines the interface for follow-edge data access
type FollowRepository interface {
	// Create inserts a directed follow edge; the composite key rejects
	// duplicates at the store
	Create(follow *models.Follow) error

	// Delete removes a directed follow edge if present
	Delete(followerID, followedID uint64) error

	// Exists reports whether followerID follows followedID
	Exists(followerID, followedID uint64) (bool, error)

	// ListFollowing lists the users a user follows
	ListFollowing(userID uint64) ([]models.User, error)

	// ListFollowers lists the users following a user
	ListFollowers(userID uint64) ([]models.User, error)

	// ListFollowingIDs lists the IDs of users a user follows
	ListFollowingIDs(userID uint64) ([]uint64, error)

	// CountFollowing counts outgoing edges for a user
	CountFollowing(userID uint64) (int64, error)

	// CountFollowers counts incoming edges for a user
	CountFollowers(userID uint64) (int64, error)
}

// LikeRepository defines the interface for like-edge data access
type LikeRepository interface {
	// Create inserts a like edge; the composite key rejects duplicates at
	// the store
	Create(like *models.Like) error

	// Delete removes a like edge if present
	Delete(userID, messageID uint64) error

	// Exists reports whether the user has liked the message
	Exists(userID, messageID uint64) (bool, error)

	// ListLikedMessages lists the messages a user has liked, newest first
	ListLikedMessages(userID uint64) ([]models.Message, error)

	// ListLikedMessageIDs lists the IDs of messages a user has liked
	ListLikedMessageIDs(userID uint64) ([]uint64, error)

	// CountByMessage counts likes on a message
	CountByMessage(messageID uint64) (int64, error)

	// CountByUser counts likes made by a user
	CountByUser(userID uint64) (int64, error)
}
