package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/microblog-app/internal/database"
	"github.com/yukikurage/microblog-app/internal/models"
	"github.com/yukikurage/microblog-app/internal/utils"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Search lists users whose username contains the query substring, ignoring
// case. LOWER on both sides behaves the same on Postgres, MySQL, and sqlite;
// a bare LIKE is case-sensitive on Postgres only.
func (r *GormUserRepository) Search(query string, params utils.PaginationParams) ([]models.User, error) {
	var users []models.User
	q := r.db.Scopes(database.Paginate(params)).Order("username")
	if query != "" {
		q = q.Where("LOWER(username) LIKE LOWER(?)", "%"+query+"%")
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists changes to an existing user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes the user and everything hanging off them in one
// transaction: likes on their messages, their own likes, follow edges in
// both directions, their messages, then the row itself. SQLite runs with
// foreign-key cascades off, so the cleanup is explicit.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		messageIDs := tx.Model(&models.Message{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}
