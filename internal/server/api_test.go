package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tastebook/internal/config"
	"tastebook/internal/database"
	"tastebook/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAPI spins up the full route surface over an in-memory database.
func setupAPI(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	cfg := &config.Config{
		JWTSecret: "test-secret",
		Port:      "3000",
		DBDriver:  "sqlite",
		DBName:    ":memory:",
		UploadDir: t.TempDir(),
		Env:       config.Test,
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)

	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// registerAndLogin creates an account and returns its id and a bearer token.
func registerAndLogin(t *testing.T, app *fiber.App, email string) (uint, string) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/users", "", map[string]string{
		"email":      email,
		"first_name": "Test",
		"last_name":  "User",
		"phone":      "08098765432",
		"password":   "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var user struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &user)

	resp = doJSON(t, app, http.MethodPost, "/token", "", map[string]string{
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payload struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &payload)
	require.NotEmpty(t, payload.Token)

	return user.ID, payload.Token
}

func TestAPI_RegistrationAndProfile(t *testing.T) {
	app, _ := setupAPI(t)

	userID, token := registerAndLogin(t, app, "ada@example.com")

	t.Run("duplicate email is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/users", "", map[string]string{
			"email":      "ada@example.com",
			"first_name": "Other",
			"last_name":  "Person",
			"phone":      "08098765433",
			"password":   "secret2",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
	})

	t.Run("registration without a phone is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/users", "", map[string]string{
			"email":      "nophone@example.com",
			"first_name": "No",
			"last_name":  "Phone",
			"password":   "secret1",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
	})

	t.Run("profile requires auth", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/user", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("profile returns the caller with their content", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/posts", token, map[string]string{
			"title":       "First post",
			"description": "Hello",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, "/user", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var profile struct {
			ID    uint `json:"id"`
			Posts []struct {
				Title  string `json:"title"`
				UserID uint   `json:"user_id"`
			} `json:"posts"`
		}
		decodeJSON(t, resp, &profile)
		assert.Equal(t, userID, profile.ID)
		require.Len(t, profile.Posts, 1)
		assert.Equal(t, "First post", profile.Posts[0].Title)
		assert.Equal(t, userID, profile.Posts[0].UserID)
	})

	t.Run("profile update", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/user", token, map[string]string{
			"first_name": "Grace",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestAPI_OwnershipGuard(t *testing.T) {
	app, s := setupAPI(t)

	ownerID, ownerToken := registerAndLogin(t, app, "owner@example.com")
	_, otherToken := registerAndLogin(t, app, "other@example.com")

	// Owner creates a post; any user_id in the body must be ignored.
	resp := doJSON(t, app, http.MethodPost, "/posts", ownerToken, map[string]any{
		"title":       "Mine",
		"description": "Owned",
		"user_id":     99999,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post struct {
		ID     uint `json:"id"`
		UserID uint `json:"user_id"`
	}
	decodeJSON(t, resp, &post)
	assert.Equal(t, ownerID, post.UserID, "author must come from the token")

	postPath := fmt.Sprintf("/posts/%d", post.ID)

	t.Run("anonymous mutation is rejected before any write", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, postPath, "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-owner delete reads as not found and leaves the row", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, postPath, otherToken, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var count int64
		require.NoError(t, s.db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("non-owner update reads as not found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, postPath, otherToken, map[string]string{
			"title": "Hijacked",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing and foreign rows are indistinguishable", func(t *testing.T) {
		foreign := doJSON(t, app, http.MethodDelete, postPath, otherToken, nil)
		missing := doJSON(t, app, http.MethodDelete, "/posts/424242", otherToken, nil)

		var foreignBody, missingBody models.ErrorResponse
		decodeJSON(t, foreign, &foreignBody)
		decodeJSON(t, missing, &missingBody)
		assert.Equal(t, foreign.StatusCode, missing.StatusCode)
		assert.Equal(t, foreignBody.Code, missingBody.Code)
	})

	t.Run("owner can update and delete", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, postPath, ownerToken, map[string]string{
			"title": "Renamed",
		})
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, app, http.MethodDelete, postPath, ownerToken, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, postPath, "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAPI_CommentsLifecycle(t *testing.T) {
	app, s := setupAPI(t)

	_, authorToken := registerAndLogin(t, app, "author@example.com")
	commenterID, commenterToken := registerAndLogin(t, app, "commenter@example.com")

	resp := doJSON(t, app, http.MethodPost, "/posts", authorToken, map[string]string{
		"title":       "Discuss",
		"description": "Open thread",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &post)

	commentsPath := fmt.Sprintf("/posts/%d/comments", post.ID)

	resp = doJSON(t, app, http.MethodPost, commentsPath, commenterToken, map[string]string{
		"comment": "Great write-up",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var comment struct {
		ID     uint `json:"id"`
		UserID uint `json:"user_id"`
	}
	decodeJSON(t, resp, &comment)
	assert.Equal(t, commenterID, comment.UserID)

	t.Run("comments are publicly readable", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, commentsPath, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var comments []struct {
			Comment string `json:"comment"`
		}
		decodeJSON(t, resp, &comments)
		require.Len(t, comments, 1)
		assert.Equal(t, "Great write-up", comments[0].Comment)
	})

	t.Run("only the comment author may delete it", func(t *testing.T) {
		commentPath := fmt.Sprintf("/comments/%d", comment.ID)

		resp := doJSON(t, app, http.MethodDelete, commentPath, authorToken, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = doJSON(t, app, http.MethodDelete, commentPath, commenterToken, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("deleting the post removes its comments", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, commentsPath, commenterToken, map[string]string{
			"comment": "Another one",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/posts/%d", post.ID), authorToken, nil)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		var count int64
		require.NoError(t, s.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestAPI_RecipesAndReviews(t *testing.T) {
	app, _ := setupAPI(t)

	_, chefToken := registerAndLogin(t, app, "chef@example.com")
	reviewerID, reviewerToken := registerAndLogin(t, app, "reviewer@example.com")

	resp := doJSON(t, app, http.MethodPost, "/recipes", chefToken, map[string]string{
		"food_name":   "Jollof rice",
		"description": "Party style",
		"ingredients": "rice, tomatoes, peppers",
		"preparation": "cook over open flame",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var recipe struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &recipe)

	t.Run("missing required field is a 412", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/recipes", chefToken, map[string]string{
			"food_name": "Incomplete",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
	})

	t.Run("search wraps results under recipes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/recipes/search?query=jollof", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var payload struct {
			Recipes []struct {
				FoodName string `json:"food_name"`
			} `json:"recipes"`
		}
		decodeJSON(t, resp, &payload)
		require.Len(t, payload.Recipes, 1)
		assert.Equal(t, "Jollof rice", payload.Recipes[0].FoodName)
	})

	t.Run("search without query matches everything", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/recipes/search", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var payload struct {
			Recipes []json.RawMessage `json:"recipes"`
		}
		decodeJSON(t, resp, &payload)
		assert.Len(t, payload.Recipes, 1)
	})

	t.Run("review lifecycle", func(t *testing.T) {
		reviewsPath := fmt.Sprintf("/recipes/%d/reviews", recipe.ID)

		resp := doJSON(t, app, http.MethodPost, reviewsPath, reviewerToken, map[string]any{
			"description": "Cooked it twice already",
			"rate":        5,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var review struct {
			ID     uint `json:"id"`
			UserID uint `json:"user_id"`
			Rate   int  `json:"rate"`
		}
		decodeJSON(t, resp, &review)
		assert.Equal(t, reviewerID, review.UserID)
		assert.Equal(t, 5, review.Rate)

		resp = doJSON(t, app, http.MethodGet, reviewsPath, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var reviews []json.RawMessage
		decodeJSON(t, resp, &reviews)
		assert.Len(t, reviews, 1)

		resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/reviews/%d", review.ID), chefToken, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "recipe author does not own the review")

		resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/reviews/%d", review.ID), reviewerToken, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestAPI_HealthEndpoints(t *testing.T) {
	app, _ := setupAPI(t)

	resp := doJSON(t, app, http.MethodGet, "/health/live", "", nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payload struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
			Redis    string `json:"redis"`
		} `json:"checks"`
	}
	decodeJSON(t, resp, &payload)
	assert.Equal(t, "healthy", payload.Status)
	assert.Equal(t, "healthy", payload.Checks.Database)
	assert.Equal(t, "unavailable", payload.Checks.Redis)
}
