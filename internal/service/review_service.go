package service

import (
	"context"

	"tastebook/internal/models"
	"tastebook/internal/repository"
)

// ReviewService implements reviews attached to recipes.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

// CreateReview attaches a review to the given recipe. The author is taken
// from the authenticated identity. The description is optional.
func (s *ReviewService) CreateReview(ctx context.Context, recipeID, userID uint, description string, rate int) (*models.Review, error) {
	if rate < 0 || rate > 5 {
		return nil, models.NewValidationError("Rate must be between 0 and 5")
	}
	review := &models.Review{
		Description: description,
		Rate:        rate,
		UserID:      userID,
		RecipeID:    recipeID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews returns the reviews on a recipe, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, recipeID uint) ([]*models.Review, error) {
	return s.reviewRepo.ListByRecipe(ctx, recipeID)
}

// DeleteReview removes a review the caller owns.
func (s *ReviewService) DeleteReview(ctx context.Context, id, userID uint) error {
	return s.reviewRepo.DeleteOwned(ctx, id, userID)
}
