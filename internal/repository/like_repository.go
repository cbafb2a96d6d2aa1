package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/microblog-app/internal/models"
)

// GormLikeRepository is a GORM implementation of LikeRepository
type GormLikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &GormLikeRepository{db: db}
}

// Create inserts a like edge. A concurrent duplicate attempt fails with
// gorm.ErrDuplicatedKey rather than inserting a second row.
func (r *GormLikeRepository) Create(like *models.Like) error {
	return r.db.Create(like).Error
}

// Delete removes a like edge if present
func (r *GormLikeRepository) Delete(userID, messageID uint64) error {
	return r.db.Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error
}

// Exists reports whether the user has liked the message
func (r *GormLikeRepository) Exists(userID, messageID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListLikedMessages lists the messages a user has liked, newest first
func (r *GormLikeRepository) ListLikedMessages(userID uint64) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("User").
		Where("id IN (?)",
			r.db.Model(&models.Like{}).Select("message_id").Where("user_id = ?", userID),
		).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListLikedMessageIDs lists the IDs of messages a user has liked
func (r *GormLikeRepository) ListLikedMessageIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("message_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountByMessage counts likes on a message
func (r *GormLikeRepository) CountByMessage(messageID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("message_id = ?", messageID).Count(&count).Error
	return count, err
}

// CountByUser counts likes made by a user
func (r *GormLikeRepository) CountByUser(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
