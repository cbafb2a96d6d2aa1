// Package seed fills the database with fake users, messages, and edges for
// local development.
package seed

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/microblog-app/internal/constants"
	"github.com/yukikurage/microblog-app/internal/models"
)

// SeedPassword is the password every seeded user gets.
const SeedPassword = "password"

type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// ClearAll wipes all seeded data, edges first.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{&models.Like{}, &models.Follow{}, &models.Message{}, &models.User{}} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
	}
	return nil
}

// Users creates n users with unique usernames and emails.
func (s *Seeder) Users(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username:       fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:          fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			PasswordHash:   string(hash),
			ImageURL:       fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			HeaderImageURL: constants.DefaultHeaderImageURL,
			Bio:            gofakeit.Sentence(8),
			Location:       gofakeit.City(),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}

	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// Messages creates n messages spread across the given users.
func (s *Seeder) Messages(users []models.User, n int) ([]models.Message, error) {
	if len(users) == 0 {
		return nil, nil
	}

	messages := make([]models.Message, 0, n)
	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		message := models.Message{
			Text:   messageText(),
			UserID: author.ID,
		}
		if err := s.db.Create(&message).Error; err != nil {
			return nil, fmt.Errorf("failed to seed message: %w", err)
		}
		messages = append(messages, message)
	}

	log.Printf("Seeded %d messages", len(messages))
	return messages, nil
}

// FollowMesh gives every user a handful of random follows. Duplicate pairs
// are rejected by the composite key and skipped.
func (s *Seeder) FollowMesh(users []models.User) error {
	var edges int
	for _, follower := range users {
		for i := 0; i < rand.Intn(6); i++ {
			followed := users[rand.Intn(len(users))]
			if followed.ID == follower.ID {
				continue
			}
			err := s.db.Create(&models.Follow{
				FollowerID: follower.ID,
				FollowedID: followed.ID,
			}).Error
			if err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					continue
				}
				return fmt.Errorf("failed to seed follow: %w", err)
			}
			edges++
		}
	}

	log.Printf("Seeded %d follow edges", edges)
	return nil
}

// Likes scatters random likes over the messages, skipping self-likes and
// duplicates.
func (s *Seeder) Likes(users []models.User, messages []models.Message) error {
	if len(messages) == 0 {
		return nil
	}

	var likes int
	for _, user := range users {
		for i := 0; i < rand.Intn(8); i++ {
			message := messages[rand.Intn(len(messages))]
			if message.UserID == user.ID {
				continue
			}
			err := s.db.Create(&models.Like{
				UserID:    user.ID,
				MessageID: message.ID,
			}).Error
			if err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					continue
				}
				return fmt.Errorf("failed to seed like: %w", err)
			}
			likes++
		}
	}

	log.Printf("Seeded %d likes", likes)
	return nil
}

// messageText produces fake text that always fits the column.
func messageText() string {
	text := gofakeit.Sentence(gofakeit.Number(3, 12))
	if len(text) > constants.MaxMessageLength {
		text = text[:constants.MaxMessageLength]
	}
	return text
}
