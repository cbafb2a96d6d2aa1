package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond what AutoMigrate
// creates. Only runs on Postgres; the pg_indexes lookup has no MySQL
// equivalent and the secondary indexes matter most in production.
func AddIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Timeline queries filter by author and sort by recency
		{"messages", "idx_messages_user_id_created_at", "user_id, created_at DESC"},
		{"messages", "idx_messages_created_at", "created_at"},

		// Reverse lookups on edge tables; the composite PKs already cover
		// the forward direction
		{"follows", "idx_follows_followed_id", "followed_id"},
		{"likes", "idx_likes_message_id", "message_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
