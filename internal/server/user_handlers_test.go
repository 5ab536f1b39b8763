package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tastebook/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	validBody := map[string]string{
		"email":      "cook@example.com",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"phone":      "08098765432",
		"password":   "secret1",
	}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(repo *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "success",
			body: validBody,
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			body: validBody,
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Create", mock.Anything, mock.Anything).
					Return(models.NewValidationError("Email already in use"))
			},
			expectedStatus: http.StatusPreconditionFailed,
		},
		{
			name:           "missing fields",
			body:           map[string]string{"email": "cook@example.com"},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusPreconditionFailed,
		},
		{
			name: "malformed email",
			body: map[string]string{
				"email":      "not-an-email",
				"first_name": "Ada",
				"last_name":  "Lovelace",
				"phone":      "08098765432",
				"password":   "secret1",
			},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusPreconditionFailed,
		},
		{
			name: "missing phone",
			body: map[string]string{
				"email":      "cook@example.com",
				"first_name": "Ada",
				"last_name":  "Lovelace",
				"password":   "secret1",
			},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusPreconditionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.mockSetup(repo)

			app := fiber.New()
			s := newTestServer(repo)
			app.Post("/users", s.CreateUser)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var payload map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
				assert.Equal(t, "cook@example.com", payload["email"])
				assert.NotContains(t, payload, "password", "password hash must never be serialized")
			}
		})
	}
}

func TestGetProfile(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByIDWithContent", mock.Anything, uint(1)).Return(&models.User{
		ID:    1,
		Email: "cook@example.com",
		Posts: []models.Post{{ID: 3, Title: "My post", UserID: 1}},
	}, nil)

	app := fiber.New()
	s := newTestServer(repo)
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Get("/user", s.GetProfile)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		ID    uint          `json:"id"`
		Email string        `json:"email"`
		Posts []models.Post `json:"posts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, uint(1), payload.ID)
	require.Len(t, payload.Posts, 1)
	assert.Equal(t, "My post", payload.Posts[0].Title)
}

func TestUpdateProfile(t *testing.T) {
	t.Run("partial update returns 204", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("Update", mock.Anything, uint(1), mock.MatchedBy(func(fields map[string]interface{}) bool {
			_, hasFirst := fields["first_name"]
			return hasFirst && len(fields) == 1
		})).Return(nil)

		app := fiber.New()
		s := newTestServer(repo)
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", uint(1))
			return c.Next()
		})
		app.Put("/user", s.UpdateProfile)

		body, _ := json.Marshal(map[string]string{"first_name": "Grace"})
		req := httptest.NewRequest(http.MethodPut, "/user", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		repo.AssertExpectations(t)
	})

	t.Run("empty body is a validation failure", func(t *testing.T) {
		repo := new(MockUserRepository)

		app := fiber.New()
		s := newTestServer(repo)
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", uint(1))
			return c.Next()
		})
		app.Put("/user", s.UpdateProfile)

		req := httptest.NewRequest(http.MethodPut, "/user", bytes.NewReader([]byte("{}")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
	})
}
