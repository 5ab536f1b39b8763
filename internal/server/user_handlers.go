package server

import (
	"tastebook/internal/models"
	"tastebook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateUser handles POST /users. Accepts JSON or multipart form data; a
// multipart "image" field becomes the user's profile image.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Email     string `json:"email" form:"email"`
		FirstName string `json:"first_name" form:"first_name"`
		LastName  string `json:"last_name" form:"last_name"`
		Password  string `json:"password" form:"password"`
		Phone     string `json:"phone" form:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusPreconditionFailed,
			models.NewValidationError("Invalid request body"))
	}

	imageURL, err := s.saveOptionalImage(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Phone:     req.Phone,
		ImageURL:  imageURL,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetProfile handles GET /user, returning the caller's account with their
// posts and recipes preloaded.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userService.Profile(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(user)
}

// UpdateProfile handles PUT /user. Only the supplied fields change; an
// uploaded "image" replaces the profile image.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		FirstName string `json:"first_name" form:"first_name"`
		LastName  string `json:"last_name" form:"last_name"`
		Phone     string `json:"phone" form:"phone"`
		Password  string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusPreconditionFailed,
			models.NewValidationError("Invalid request body"))
	}

	imageURL, err := s.saveOptionalImage(c)
	if err != nil {
		return nil
	}

	err = s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:    currentUserID(c),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Password:  req.Password,
		ImageURL:  imageURL,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
