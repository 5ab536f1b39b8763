package service

import (
	"context"
	"testing"

	"tastebook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reviewRepoStub is a stub for repository.ReviewRepository.
type reviewRepoStub struct {
	createFn       func(context.Context, *models.Review) error
	listByRecipeFn func(context.Context, uint) ([]*models.Review, error)
	deleteOwnedFn  func(context.Context, uint, uint) error
}

func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) ListByRecipe(ctx context.Context, recipeID uint) ([]*models.Review, error) {
	return s.listByRecipeFn(ctx, recipeID)
}
func (s *reviewRepoStub) DeleteOwned(ctx context.Context, id, userID uint) error {
	return s.deleteOwnedFn(ctx, id, userID)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn:       func(_ context.Context, _ *models.Review) error { return nil },
		listByRecipeFn: func(_ context.Context, _ uint) ([]*models.Review, error) { return nil, nil },
		deleteOwnedFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

func TestReviewService_CreateReview(t *testing.T) {
	t.Parallel()

	t.Run("rate outside range is invalid", func(t *testing.T) {
		t.Parallel()
		svc := NewReviewService(noopReviewRepo())
		_, err := svc.CreateReview(context.Background(), 1, 1, "", 6)
		assertValidationError(t, err)
	})

	t.Run("description is optional", func(t *testing.T) {
		t.Parallel()
		var saved *models.Review
		repo := noopReviewRepo()
		repo.createFn = func(_ context.Context, r *models.Review) error {
			r.ID = 4
			saved = r
			return nil
		}
		svc := NewReviewService(repo)

		review, err := svc.CreateReview(context.Background(), 2, 8, "", 5)
		require.NoError(t, err)
		assert.Equal(t, uint(4), review.ID)
		assert.Equal(t, uint(2), saved.RecipeID)
		assert.Equal(t, uint(8), saved.UserID)
		assert.Equal(t, 5, saved.Rate)
		assert.Empty(t, saved.Description)
	})
}

func TestReviewService_DeleteReview_Scoped(t *testing.T) {
	t.Parallel()

	var gotID, gotUserID uint
	repo := noopReviewRepo()
	repo.deleteOwnedFn = func(_ context.Context, id, userID uint) error {
		gotID, gotUserID = id, userID
		return nil
	}
	svc := NewReviewService(repo)

	require.NoError(t, svc.DeleteReview(context.Background(), 6, 2))
	assert.Equal(t, uint(6), gotID)
	assert.Equal(t, uint(2), gotUserID)
}
