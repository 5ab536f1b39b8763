package service

import (
	"context"

	"tastebook/internal/models"
	"tastebook/internal/repository"
)

// RecipeService implements recipe management and search.
type RecipeService struct {
	recipeRepo repository.RecipeRepository
}

// CreateRecipeInput carries the fields accepted when creating a recipe.
type CreateRecipeInput struct {
	UserID      uint
	FoodName    string
	Description string
	Ingredients string
	Preparation string
	ImageURL    string
	VideoURL    string
}

// UpdateRecipeInput carries the fields accepted when updating an owned recipe.
type UpdateRecipeInput struct {
	ID          uint
	UserID      uint
	FoodName    string
	Description string
	Ingredients string
	Preparation string
	ImageURL    string
	VideoURL    string
}

func NewRecipeService(recipeRepo repository.RecipeRepository) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo}
}

// CreateRecipe persists a new recipe owned by the caller.
func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	if in.FoodName == "" {
		return nil, models.NewValidationError("Food name is required")
	}
	if in.Description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if in.Ingredients == "" {
		return nil, models.NewValidationError("Ingredients are required")
	}
	if in.Preparation == "" {
		return nil, models.NewValidationError("Preparation is required")
	}

	recipe := &models.Recipe{
		FoodName:    in.FoodName,
		Description: in.Description,
		Ingredients: in.Ingredients,
		Preparation: in.Preparation,
		ImageURL:    in.ImageURL,
		VideoURL:    in.VideoURL,
		UserID:      in.UserID,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe returns a single recipe with its author and reviews.
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id)
}

// ListRecipes returns a page of recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, limit, offset int) ([]*models.Recipe, error) {
	return s.recipeRepo.List(ctx, limit, offset)
}

// SearchRecipes returns recipes whose food name contains the query substring.
// An empty query matches everything.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string, limit, offset int) ([]*models.Recipe, error) {
	return s.recipeRepo.Search(ctx, query, limit, offset)
}

// UpdateRecipe applies the non-empty fields to a recipe the caller owns.
func (s *RecipeService) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) error {
	fields := map[string]interface{}{}
	if in.FoodName != "" {
		fields["food_name"] = in.FoodName
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.Ingredients != "" {
		fields["ingredients"] = in.Ingredients
	}
	if in.Preparation != "" {
		fields["preparation"] = in.Preparation
	}
	if in.ImageURL != "" {
		fields["image_url"] = in.ImageURL
	}
	if in.VideoURL != "" {
		fields["video_url"] = in.VideoURL
	}
	if len(fields) == 0 {
		return models.NewValidationError("No fields to update")
	}
	return s.recipeRepo.UpdateOwned(ctx, in.ID, in.UserID, fields)
}

// DeleteRecipe removes a recipe the caller owns, along with its reviews.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uint) error {
	return s.recipeRepo.DeleteOwned(ctx, id, userID)
}
