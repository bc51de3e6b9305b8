// Package seed populates the database with realistic development data.
package seed

import (
	"context"
	"fmt"
	"strings"

	"pinboard/internal/middleware"
	"pinboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account gets.
const DefaultPassword = "passw0rd1"

var tagPool = []string{
	"nature", "travel", "food", "architecture", "diy",
	"fashion", "art", "photography", "interior", "fitness",
}

// Options controls how much data Run generates.
type Options struct {
	Users       int
	PinsPerUser int
	Seed        int64
}

// Run inserts users, pins and engagement edges. It is idempotent enough for
// development use: rerunning adds more data rather than failing.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	if opts.Users <= 0 {
		opts.Users = 10
	}
	if opts.PinsPerUser <= 0 {
		opts.PinsPerUser = 5
	}

	faker := gofakeit.New(opts.Seed)

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		username := strings.ToLower(faker.Username()) + faker.DigitN(3)
		visibility := models.ProfileVisibilityPublic
		// Roughly a quarter of seeded accounts are private so feed
		// redaction paths get exercised in development.
		if faker.Number(0, 3) == 0 {
			visibility = models.ProfileVisibilityPrivate
		}

		user := &models.User{
			Username:            username,
			Email:               username + "@" + faker.DomainName(),
			Password:            string(hash),
			Name:                faker.Name(),
			Bio:                 faker.Sentence(8),
			ProfileVisibility:   visibility,
			SearchVisibility:    faker.Number(0, 9) != 0,
			ActivityVisibility:  true,
			EmailNotifications:  true,
			PushNotifications:   faker.Bool(),
			LikeNotifications:   true,
			FollowNotifications: true,
		}
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			return fmt.Errorf("failed to create seed user: %w", err)
		}
		users = append(users, user)
	}

	var pins []*models.Pin
	for _, user := range users {
		for i := 0; i < opts.PinsPerUser; i++ {
			tags := models.Tags{}
			for _, tag := range tagPool {
				if faker.Number(0, 4) == 0 {
					tags = append(tags, tag)
				}
			}

			pin := &models.Pin{
				Title:       faker.Sentence(4),
				Description: faker.Paragraph(1, 2, 8, " "),
				ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", faker.LetterN(8)),
				Link:        faker.URL(),
				Tags:        tags,
				CreatorID:   user.ID,
			}
			if err := db.WithContext(ctx).Create(pin).Error; err != nil {
				return fmt.Errorf("failed to create seed pin: %w", err)
			}
			pins = append(pins, pin)
		}
	}

	// Follow edges between distinct users.
	for _, follower := range users {
		for _, target := range users {
			if follower.ID == target.ID || faker.Number(0, 3) != 0 {
				continue
			}
			edge := &models.Follow{FollowerID: follower.ID, FollowingID: target.ID}
			if err := db.WithContext(ctx).Create(edge).Error; err != nil {
				return fmt.Errorf("failed to create seed follow: %w", err)
			}
		}
	}

	// Likes and saves.
	for _, user := range users {
		for _, pin := range pins {
			if faker.Number(0, 4) == 0 {
				like := &models.Like{UserID: user.ID, PinID: pin.ID}
				if err := db.WithContext(ctx).Create(like).Error; err != nil {
					return fmt.Errorf("failed to create seed like: %w", err)
				}
			}
			if faker.Number(0, 9) == 0 {
				save := &models.Save{UserID: user.ID, PinID: pin.ID}
				if err := db.WithContext(ctx).Create(save).Error; err != nil {
					return fmt.Errorf("failed to create seed save: %w", err)
				}
			}
		}
	}

	middleware.Logger.InfoContext(ctx, "seeding complete",
		"users", len(users),
		"pins", len(pins),
	)
	return nil
}
