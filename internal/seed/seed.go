// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	BcryptCost  int
}

// DefaultPassword is the password shared by every seeded account.
const DefaultPassword = "Password123!"

// Run populates the database with fake users and posts.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		log.Println("Cleaning existing data...")
		if err := db.Exec("DELETE FROM posts").Error; err != nil {
			return fmt.Errorf("failed to clean posts: %w", err)
		}
		if err := db.Exec("DELETE FROM users").Error; err != nil {
			return fmt.Errorf("failed to clean users: %w", err)
		}
	}

	hashed, err := auth.HashPassword(DefaultPassword, opts.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		username := strings.ToLower(gofakeit.Username())
		if len(username) > 20 {
			username = username[:20]
		}
		users = append(users, &models.User{
			Username:      username,
			Email:         models.NormalizeEmail(fmt.Sprintf("%s%d@%s", username, i, gofakeit.DomainName())),
			Password:      hashed,
			ProfileImgURL: models.DefaultProfileImageURL,
			Role:          models.RoleUser,
		})
	}
	if len(users) > 0 {
		if err := db.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
	}
	log.Printf("Created %d users", len(users))

	if opts.NumPosts > 0 && len(users) == 0 {
		return fmt.Errorf("cannot seed posts without users")
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[r.Intn(len(users))]
		post := &models.Post{
			Title:     clampTitle(gofakeit.Sentence(6)),
			Body:      gofakeit.Paragraph(2, 4, 8, "\n\n"),
			AuthorID:  author.ID,
			Published: true,
			ViewCount: int64(r.Intn(500)),
		}
		// realistic created_at spread over the last 90 days
		daysBack := r.Intn(90)
		hoursBack := r.Intn(24)
		post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
		posts = append(posts, post)
	}
	if len(posts) > 0 {
		if err := db.Create(&posts).Error; err != nil {
			return fmt.Errorf("failed to create posts: %w", err)
		}
	}
	log.Printf("Created %d posts", len(posts))

	return nil
}

// clampTitle keeps a generated sentence within the canonical title bounds.
func clampTitle(s string) string {
	s = strings.TrimSuffix(s, ".")
	if len(s) > 100 {
		s = s[:100]
	}
	for len(s) < 5 {
		s += "!"
	}
	return s
}
