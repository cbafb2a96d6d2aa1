package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/microblog-app/internal/models"
	"github.com/yukikurage/microblog-app/internal/repository"
	"github.com/yukikurage/microblog-app/internal/utils"
)

var (
	ErrSelfFollow = errors.New("users cannot follow themselves")
)

// UserService handles user listings, profile management, and follow edges.
type UserService struct {
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	likeRepo    repository.LikeRepository
	messageRepo repository.MessageRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, likeRepo repository.LikeRepository, messageRepo repository.MessageRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
		messageRepo: messageRepo,
	}
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers lists users, optionally filtered by a username substring.
func (s *UserService) ListUsers(query string, params utils.PaginationParams) ([]models.User, error) {
	users, err := s.userRepo.Search(strings.TrimSpace(query), params)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Follow creates the follow edge if absent. A duplicate attempt, racing or
// repeated, is absorbed: the store rejects the second row and the action
// stays idempotent.
func (s *UserService) Follow(followerID, followedID uint64) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	if _, err := s.GetUser(followedID); err != nil {
		return err
	}

	err := s.followRepo.Create(&models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	})
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("failed to follow user: %w", err)
	}
	return nil
}

// Unfollow deletes the follow edge if present.
func (s *UserService) Unfollow(followerID, followedID uint64) error {
	if err := s.followRepo.Delete(followerID, followedID); err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}
	return nil
}

// IsFollowing reports whether user a follows user b.
func (s *UserService) IsFollowing(a, b uint64) (bool, error) {
	return s.followRepo.Exists(a, b)
}

// IsFollowedBy reports whether user a is followed by user b.
func (s *UserService) IsFollowedBy(a, b uint64) (bool, error) {
	return s.followRepo.Exists(b, a)
}

// ListFollowing lists the users a user follows.
func (s *UserService) ListFollowing(userID uint64) ([]models.User, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(userID)
}

// ListFollowers lists the users following a user.
func (s *UserService) ListFollowers(userID uint64) ([]models.User, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(userID)
}

// Counts holds the derived relationship counts shown on a profile. They are
// counted from the edge tables at render time, never denormalized.
type Counts struct {
	Messages  int64
	Following int64
	Followers int64
	Likes     int64
}

// GetCounts derives a user's profile counts from the edge tables.
func (s *UserService) GetCounts(userID uint64) (Counts, error) {
	var c Counts
	var err error
	if c.Messages, err = s.messageRepo.CountByUser(userID); err != nil {
		return c, err
	}
	if c.Following, err = s.followRepo.CountFollowing(userID); err != nil {
		return c, err
	}
	if c.Followers, err = s.followRepo.CountFollowers(userID); err != nil {
		return c, err
	}
	if c.Likes, err = s.likeRepo.CountByUser(userID); err != nil {
		return c, err
	}
	return c, nil
}

// UpdateProfileInput represents the editable profile fields. Password is the
// user's current password and must verify before anything changes.
type UpdateProfileInput struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
	Password       string
}

// UpdateProfile applies profile changes after re-verifying the password.
func (s *UserService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if username := strings.TrimSpace(input.Username); username != "" {
		user.Username = username
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		user.Email = email
	}
	if input.ImageURL != "" {
		user.ImageURL = input.ImageURL
	}
	if input.HeaderImageURL != "" {
		user.HeaderImageURL = input.HeaderImageURL
	}
	user.Bio = input.Bio
	user.Location = input.Location

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCredentialsTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user with their messages and edges.
func (s *UserService) DeleteUser(userID uint64) error {
	if _, err := s.GetUser(userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
