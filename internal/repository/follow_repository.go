package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/microblog-app/internal/models"
)

// GormFollowRepository is a GORM implementation of FollowRepository
type GormFollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &GormFollowRepository{db: db}
}

// Create inserts a directed follow edge. A concurrent duplicate attempt
// fails with gorm.ErrDuplicatedKey rather than inserting a second row.
func (r *GormFollowRepository) Create(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

// Delete removes a directed follow edge if present
func (r *GormFollowRepository) Delete(followerID, followedID uint64) error {
	return r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

// Exists reports whether followerID follows followedID
func (r *GormFollowRepository) Exists(followerID, followedID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFollowing lists the users a user follows
func (r *GormFollowRepository) ListFollowing(userID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID),
	).Order("username").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListFollowers lists the users following a user
func (r *GormFollowRepository) ListFollowers(userID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("follower_id").Where("followed_id = ?", userID),
	).Order("username").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListFollowingIDs lists the IDs of users a user follows
func (r *GormFollowRepository) ListFollowingIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountFollowing counts outgoing edges for a user
func (r *GormFollowRepository) CountFollowing(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowers counts incoming edges for a user
func (r *GormFollowRepository) CountFollowers(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}
