package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/microblog-app/internal/constants"
	"github.com/yukikurage/microblog-app/internal/models"
	"github.com/yukikurage/microblog-app/internal/repository"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotMessageOwner = errors.New("only the message owner can perform this action")
	ErrOwnMessageLike  = errors.New("users cannot like their own messages")
)

// MessageService handles message creation, deletion, and like toggles.
type MessageService struct {
	messageRepo repository.MessageRepository
	likeRepo    repository.LikeRepository
	followRepo  repository.FollowRepository
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, likeRepo repository.LikeRepository, followRepo repository.FollowRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		likeRepo:    likeRepo,
		followRepo:  followRepo,
	}
}

// Create posts a new message for a user. Text bounds are enforced at the
// persistence boundary; the hook errors come back unchanged.
func (s *MessageService) Create(userID uint64, text string) (*models.Message, error) {
	message := &models.Message{
		Text:   text,
		UserID: userID,
	}

	if err := s.messageRepo.Create(message); err != nil {
		if errors.Is(err, models.ErrMessageTextEmpty) || errors.Is(err, models.ErrMessageTextTooLong) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return message, nil
}

// Get returns a message with its author.
func (s *MessageService) Get(id uint64) (*models.Message, error) {
	message, err := s.messageRepo.FindByID(id, "User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return message, nil
}

// Delete removes a message if the actor owns it. Likes on the message go
// with it.
func (s *MessageService) Delete(id, actorID uint64) error {
	message, err := s.messageRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to find message: %w", err)
	}

	if message.UserID != actorID {
		return ErrNotMessageOwner
	}

	if err := s.messageRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}

// ToggleLike flips the like edge for (userID, messageID): present edges are
// removed, absent ones created. Returns whether the message is liked after
// the flip. A racing duplicate insert is rejected by the store and treated
// as already-liked.
func (s *MessageService) ToggleLike(userID, messageID uint64) (bool, error) {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrMessageNotFound
		}
		return false, fmt.Errorf("failed to find message: %w", err)
	}

	if message.UserID == userID {
		return false, ErrOwnMessageLike
	}

	liked, err := s.likeRepo.Exists(userID, messageID)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	if liked {
		if err := s.likeRepo.Delete(userID, messageID); err != nil {
			return false, fmt.Errorf("failed to unlike message: %w", err)
		}
		return false, nil
	}

	err = s.likeRepo.Create(&models.Like{UserID: userID, MessageID: messageID})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, fmt.Errorf("failed to like message: %w", err)
	}
	return true, nil
}

// Timeline lists the most recent messages from the users someone follows,
// plus their own, newest first.
func (s *MessageService) Timeline(userID uint64) ([]models.Message, error) {
	followingIDs, err := s.followRepo.ListFollowingIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve following: %w", err)
	}

	return s.messageRepo.Timeline(append(followingIDs, userID), constants.HomeTimelineLimit)
}

// ListByUser lists a user's messages, newest first.
func (s *MessageService) ListByUser(userID uint64) ([]models.Message, error) {
	return s.messageRepo.ListByUser(userID)
}

// ListLiked lists the messages a user has liked, newest first.
func (s *MessageService) ListLiked(userID uint64) ([]models.Message, error) {
	return s.likeRepo.ListLikedMessages(userID)
}

// LikeCount counts likes on a message, derived from the edge rows.
func (s *MessageService) LikeCount(messageID uint64) (int64, error) {
	return s.likeRepo.CountByMessage(messageID)
}

// ListLikedIDs lists the IDs of messages a user has liked.
func (s *MessageService) ListLikedIDs(userID uint64) ([]uint64, error) {
	return s.likeRepo.ListLikedMessageIDs(userID)
}
