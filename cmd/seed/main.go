// Command seed fills the configured database with fake users, messages,
// follows, and likes for local development.
package main

import (
	"flag"
	"log"

	"github.com/yukikurage/microblog-app/internal/config"
	"github.com/yukikurage/microblog-app/internal/database"
	"github.com/yukikurage/microblog-app/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 30, "Number of users to create")
	numMessages := flag.Int("messages", 150, "Number of messages to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	s := seed.NewSeeder(database.GetDB())

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.Users(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}

	messages, err := s.Messages(users, *numMessages)
	if err != nil {
		log.Fatalf("Message seeding failed: %v", err)
	}

	if err := s.FollowMesh(users); err != nil {
		log.Fatalf("Follow seeding failed: %v", err)
	}
	if err := s.Likes(users, messages); err != nil {
		log.Fatalf("Like seeding failed: %v", err)
	}

	log.Printf("Seeding complete. Every user's password is %q.", seed.SeedPassword)
}
