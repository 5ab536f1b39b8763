package server

import (
	"tastebook/internal/models"
	"tastebook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRecipes handles GET /recipes
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	recipes, err := s.recipeService.ListRecipes(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(recipes)
}

// SearchRecipes handles GET /recipes/search?query=. A missing query matches
// every recipe.
func (s *Server) SearchRecipes(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	recipes, err := s.recipeService.SearchRecipes(c.UserContext(), c.Query("query"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{
		"recipes": recipes,
	})
}

// GetRecipe handles GET /recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, err := s.recipeService.GetRecipe(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(recipe)
}

// CreateRecipe handles POST /recipes. The author is always the
// authenticated caller; any user_id in the body is ignored.
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	var req struct {
		FoodName    string `json:"food_name" form:"food_name"`
		Description string `json:"description" form:"description"`
		Ingredients string `json:"ingredients" form:"ingredients"`
		Preparation string `json:"preparation" form:"preparation"`
		VideoURL    string `json:"video_url" form:"video_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusPreconditionFailed,
			models.NewValidationError("Invalid request body"))
	}

	imageURL, err := s.saveOptionalImage(c)
	if err != nil {
		return nil
	}

	recipe, err := s.recipeService.CreateRecipe(c.UserContext(), service.CreateRecipeInput{
		UserID:      currentUserID(c),
		FoodName:    req.FoodName,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Preparation: req.Preparation,
		ImageURL:    imageURL,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// UpdateRecipe handles PUT /recipes/:id
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		FoodName    string `json:"food_name" form:"food_name"`
		Description string `json:"description" form:"description"`
		Ingredients string `json:"ingredients" form:"ingredients"`
		Preparation string `json:"preparation" form:"preparation"`
		VideoURL    string `json:"video_url" form:"video_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusPreconditionFailed,
			models.NewValidationError("Invalid request body"))
	}

	imageURL, err := s.saveOptionalImage(c)
	if err != nil {
		return nil
	}

	err = s.recipeService.UpdateRecipe(c.UserContext(), service.UpdateRecipeInput{
		ID:          id,
		UserID:      currentUserID(c),
		FoodName:    req.FoodName,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Preparation: req.Preparation,
		ImageURL:    imageURL,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteRecipe handles DELETE /recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.DeleteRecipe(c.UserContext(), id, currentUserID(c)); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
