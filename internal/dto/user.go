package dto

import "github.com/yukikurage/microblog-app/internal/models"

// UserCard is the compact user view used in lists and navigation.
type UserCard struct {
	ID       uint64
	Username string
	ImageURL string
	Bio      string
}

// UserProfile is the full profile-page view, counts included. Counts are
// derived from the edge tables when the page is built.
type UserProfile struct {
	UserCard
	Email          string
	HeaderImageURL string
	Location       string
	MessageCount   int64
	FollowingCount int64
	FollowerCount  int64
	LikeCount      int64
}

// ToUserCard converts a user model to its list view
func ToUserCard(user models.User) UserCard {
	return UserCard{
		ID:       user.ID,
		Username: user.Username,
		ImageURL: user.ImageURL,
		Bio:      user.Bio,
	}
}

// ToUserCards converts a slice of user models to list views
func ToUserCards(users []models.User) []UserCard {
	cards := make([]UserCard, len(users))
	for i, u := range users {
		cards[i] = ToUserCard(u)
	}
	return cards
}
