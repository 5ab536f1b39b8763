package seed

import (
	"testing"

	"tastebook/internal/config"
	"tastebook/internal/database"
	"tastebook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func seedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(&config.Config{
		JWTSecret: "test-secret",
		Port:      "3000",
		DBDriver:  "sqlite",
		DBName:    ":memory:",
		Env:       config.Test,
	})
	require.NoError(t, err)
	return db
}

func TestFactory_CreateUser(t *testing.T) {
	db := seedDB(t)
	f := NewFactory(db, Options{})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Email)

	// Password must be stored hashed and verify against DefaultPassword.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DefaultPassword)))
}

func TestFactory_CreateUser_SkipBcrypt(t *testing.T) {
	db := seedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.Equal(t, DefaultPassword, user.Password)
}

func TestFactory_Overrides(t *testing.T) {
	db := seedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser(func(u *models.User) {
		u.Email = "fixed@example.com"
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed@example.com", user.Email)

	post, err := f.CreatePost(user, func(p *models.Post) {
		p.Title = "Fixed title"
	})
	require.NoError(t, err)
	assert.Equal(t, "Fixed title", post.Title)
	assert.Equal(t, user.ID, post.UserID)
}

func TestSeeder_SeedAndClear(t *testing.T) {
	db := seedDB(t)
	s := NewSeeder(db, Options{SkipBcrypt: true})

	users, err := s.Seed(3, 2, 1)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	var postCount, recipeCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipeCount).Error)
	assert.EqualValues(t, 6, postCount)
	assert.EqualValues(t, 3, recipeCount)

	require.NoError(t, s.ClearAll())
	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Zero(t, userCount)
}
