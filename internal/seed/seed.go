package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"tastebook/internal/models"

	"gorm.io/gorm"
)

// Seeder populates a development database with a realistic mesh of users,
// posts, recipes, comments and reviews.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder over db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes every seeded row. Deletion order follows the dependency
// graph so foreign keys never block.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Review{},
		&models.Comment{},
		&models.Recipe{},
		&models.Post{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	slog.Info("cleared existing data")
	return nil
}

// Seed creates numUsers accounts, each with a handful of posts and recipes,
// then scatters comments and reviews across other users' content.
func (s *Seeder) Seed(numUsers, postsPerUser, recipesPerUser int) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}
	slog.Info("seeded users", "count", len(users))

	var posts []*models.Post
	var recipes []*models.Recipe
	for _, user := range users {
		for i := 0; i < postsPerUser; i++ {
			post, err := s.factory.CreatePost(user)
			if err != nil {
				return nil, fmt.Errorf("seeding post for user %d: %w", user.ID, err)
			}
			posts = append(posts, post)
		}
		for i := 0; i < recipesPerUser; i++ {
			recipe, err := s.factory.CreateRecipe(user)
			if err != nil {
				return nil, fmt.Errorf("seeding recipe for user %d: %w", user.ID, err)
			}
			recipes = append(recipes, recipe)
		}
	}
	slog.Info("seeded content", "posts", len(posts), "recipes", len(recipes))

	// Engagement: each post gets 0-3 comments, each recipe 0-2 reviews,
	// authored by random users.
	comments, reviews := 0, 0
	for _, post := range posts {
		for i := 0; i < s.rng.Intn(4); i++ {
			commenter := users[s.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return nil, fmt.Errorf("seeding comment on post %d: %w", post.ID, err)
			}
			comments++
		}
	}
	for _, recipe := range recipes {
		for i := 0; i < s.rng.Intn(3); i++ {
			reviewer := users[s.rng.Intn(len(users))]
			if _, err := s.factory.CreateReview(reviewer, recipe); err != nil {
				return nil, fmt.Errorf("seeding review on recipe %d: %w", recipe.ID, err)
			}
			reviews++
		}
	}
	slog.Info("seeded engagement", "comments", comments, "reviews", reviews)

	return users, nil
}
