package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/microblog-app/internal/models"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindByID finds a message by ID with optional preloading
func (r *GormMessageRepository) FindByID(id uint64, preload ...string) (*models.Message, error) {
	var message models.Message
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByUser lists a user's messages, newest first
func (r *GormMessageRepository) ListByUser(userID uint64) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Timeline lists messages authored by any of the given users, newest first
func (r *GormMessageRepository) Timeline(userIDs []uint64, limit int) ([]models.Message, error) {
	if len(userIDs) == 0 {
		return []models.Message{}, nil
	}

	var messages []models.Message
	err := r.db.Preload("User").
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Delete removes the message and its likes in one transaction so no
// orphaned like rows survive
func (r *GormMessageRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
}

// CountByUser counts messages owned by a user
func (r *GormMessageRepository) CountByUser(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
