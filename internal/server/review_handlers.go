package server

import (
	"tastebook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetReviews handles GET /recipes/:recipe_id/reviews
func (s *Server) GetReviews(c *fiber.Ctx) error {
	recipeID, err := s.parseID(c, "recipe_id")
	if err != nil {
		return nil
	}

	reviews, err := s.reviewService.ListReviews(c.UserContext(), recipeID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(reviews)
}

// CreateReview handles POST /recipes/:recipe_id/reviews. The author is the
// authenticated caller and the recipe comes from the route, never the body.
func (s *Server) CreateReview(c *fiber.Ctx) error {
	recipeID, err := s.parseID(c, "recipe_id")
	if err != nil {
		return nil
	}

	var req struct {
		Description string `json:"description" form:"description"`
		Rate        int    `json:"rate" form:"rate"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusPreconditionFailed,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(c.UserContext(), recipeID, currentUserID(c), req.Description, req.Rate)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// DeleteReview handles DELETE /reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reviewService.DeleteReview(c.UserContext(), id, currentUserID(c)); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
