// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"agora/internal/cache"
	"agora/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	NumComments int
	// MaxDays bounds how far back generated created_at values reach.
	MaxDays int
	// DeletedRatio is the share of posts soft-deleted after creation.
	DeletedRatio float64
	ShouldClean  bool
}

// DefaultOptions returns the settings used by cmd/seed.
func DefaultOptions() Options {
	return Options{
		NumUsers:     20,
		NumPosts:     100,
		NumComments:  300,
		MaxDays:      90,
		DeletedRatio: 0.05,
		ShouldClean:  true,
	}
}

// Seeder fills the database with fake users, posts and comments.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
}

// NewSeeder creates a Seeder bound to db. A zero seed picks a time-based one.
func NewSeeder(db *gorm.DB, opts Options, seed int64) *Seeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Seeder{db: db, opts: opts, rnd: rand.New(rand.NewSource(seed))}
}

// Run clears the tables when configured and then seeds every entity kind.
func (s *Seeder) Run() error {
	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.SeedUsers(s.opts.NumUsers)
	if err != nil {
		return err
	}
	posts, err := s.SeedPosts(users, s.opts.NumPosts)
	if err != nil {
		return err
	}
	_, err = s.SeedComments(users, posts, s.opts.NumComments)
	return err
}

// ClearAll hard-deletes every comment, post and user and drops their cached
// user entries.
func (s *Seeder) ClearAll() error {
	log.Println("🧹 Clearing existing data...")

	var userIDs []string
	if err := s.db.Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, id := range userIDs {
		cache.InvalidateUser(context.Background(), id)
	}

	for _, model := range []any{&models.Comment{}, &models.Post{}, &models.User{}} {
		if err := s.db.Unscoped().Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// SeedUsers creates n users with unique usernames.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	seen := make(map[string]struct{}, n)
	for len(users) < n {
		name := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999))
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		users = append(users, models.User{Username: name, CreatedAt: s.pastTime()})
	}
	if n == 0 {
		return users, nil
	}

	if err := s.db.CreateInBatches(&users, 100).Error; err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	log.Printf("👤 Created %d users", len(users))
	return users, nil
}

// SeedPosts creates n posts owned by random users and spread over every
// community. A share of them is soft-deleted according to DeletedRatio.
func (s *Seeder) SeedPosts(users []models.User, n int) ([]models.Post, error) {
	if len(users) == 0 || n == 0 {
		return nil, nil
	}

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.rnd.Intn(len(users))]
		posts = append(posts, models.Post{
			Title:       strings.TrimSuffix(gofakeit.Sentence(s.rnd.Intn(5)+3), "."),
			Description: gofakeit.Paragraph(1, 3, 12, " "),
			Community:   models.Communities[i%len(models.Communities)],
			UserID:      owner.ID,
			CreatedAt:   s.pastTime(),
		})
	}

	if err := s.db.Omit(clause.Associations).CreateInBatches(&posts, 100).Error; err != nil {
		return nil, fmt.Errorf("seed posts: %w", err)
	}

	deleted := 0
	for i := range posts {
		if s.rnd.Float64() >= s.opts.DeletedRatio {
			continue
		}
		if err := s.db.Delete(&posts[i]).Error; err != nil {
			return nil, fmt.Errorf("soft delete post %s: %w", posts[i].ID, err)
		}
		posts[i].DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		deleted++
	}

	log.Printf("📝 Created %d posts (%d soft-deleted)", len(posts), deleted)
	return posts, nil
}

// SeedComments creates n comments by random users on random live posts.
func (s *Seeder) SeedComments(users []models.User, posts []models.Post, n int) ([]models.Comment, error) {
	live := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if !p.IsDeleted() {
			live = append(live, p)
		}
	}
	if len(users) == 0 || len(live) == 0 || n == 0 {
		return nil, nil
	}

	comments := make([]models.Comment, 0, n)
	for i := 0; i < n; i++ {
		post := live[s.rnd.Intn(len(live))]
		author := users[s.rnd.Intn(len(users))]
		createdAt := post.CreatedAt.Add(time.Duration(s.rnd.Intn(72*60)) * time.Minute)
		if createdAt.After(time.Now()) {
			createdAt = time.Now()
		}
		comments = append(comments, models.Comment{
			Description: gofakeit.Sentence(s.rnd.Intn(12) + 4),
			UserID:      author.ID,
			PostID:      post.ID,
			CreatedAt:   createdAt,
		})
	}

	if err := s.db.Omit(clause.Associations).CreateInBatches(&comments, 100).Error; err != nil {
		return nil, fmt.Errorf("seed comments: %w", err)
	}
	log.Printf("💬 Created %d comments", len(comments))
	return comments, nil
}

func (s *Seeder) pastTime() time.Time {
	back := time.Duration(s.rnd.Intn(s.opts.MaxDays))*24*time.Hour +
		time.Duration(s.rnd.Intn(24))*time.Hour +
		time.Duration(s.rnd.Intn(60))*time.Minute
	return time.Now().Add(-back)
}
