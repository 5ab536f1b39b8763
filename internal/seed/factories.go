// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"tastebook/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the login password shared by all seeded users.
const DefaultPassword = "password123"

// Options tunes factory behavior.
type Options struct {
	// SkipBcrypt stores the plaintext password instead of hashing it.
	// Much faster for large seeds; never use outside development.
	SkipBcrypt bool
	// MaxDays spreads created_at timestamps back this many days (default 90).
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// spreadCreatedAt returns a timestamp scattered over the seed window so
// listings don't all share one creation instant.
func (f *Factory) spreadCreatedAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// CreateUser persists a fake user. All users share DefaultPassword.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Phone:     gofakeit.Phone(),
		ImageURL:  fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.Password = DefaultPassword
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a fake blog post owned by user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 3, 5, "\n"),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		UserID:      user.ID,
		CreatedAt:   f.spreadCreatedAt(),
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateRecipe persists a fake recipe owned by user.
func (f *Factory) CreateRecipe(user *models.User, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	ingredients := []string{
		gofakeit.Vegetable(),
		gofakeit.Vegetable(),
		gofakeit.Fruit(),
		gofakeit.Vegetable(),
	}

	recipe := &models.Recipe{
		FoodName:    gofakeit.Dinner(),
		Description: gofakeit.Sentence(12),
		Ingredients: strings.Join(ingredients, ", "),
		Preparation: gofakeit.Paragraph(1, 4, 8, "\n"),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		UserID:      user.ID,
		CreatedAt:   f.spreadCreatedAt(),
	}

	for _, override := range overrides {
		override(recipe)
	}

	if err := f.db.Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// CreateComment persists a fake comment by user on post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Comment: gofakeit.Sentence(8),
		UserID:  user.ID,
		PostID:  post.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReview persists a fake review by user on recipe.
func (f *Factory) CreateReview(user *models.User, recipe *models.Recipe) (*models.Review, error) {
	review := &models.Review{
		Description: gofakeit.Sentence(10),
		Rate:        f.rng.Intn(6),
		UserID:      user.ID,
		RecipeID:    recipe.ID,
	}
	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}
