package service

import (
	"context"
	"testing"

	"tastebook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recipeRepoStub is a stub for repository.RecipeRepository.
type recipeRepoStub struct {
	createFn      func(context.Context, *models.Recipe) error
	getByIDFn     func(context.Context, uint) (*models.Recipe, error)
	listFn        func(context.Context, int, int) ([]*models.Recipe, error)
	searchFn      func(context.Context, string, int, int) ([]*models.Recipe, error)
	updateOwnedFn func(context.Context, uint, uint, map[string]interface{}) error
	deleteOwnedFn func(context.Context, uint, uint) error
}

func (s *recipeRepoStub) Create(ctx context.Context, recipe *models.Recipe) error {
	return s.createFn(ctx, recipe)
}
func (s *recipeRepoStub) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.getByIDFn(ctx, id)
}
func (s *recipeRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Recipe, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *recipeRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Recipe, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *recipeRepoStub) UpdateOwned(ctx context.Context, id, userID uint, fields map[string]interface{}) error {
	return s.updateOwnedFn(ctx, id, userID, fields)
}
func (s *recipeRepoStub) DeleteOwned(ctx context.Context, id, userID uint) error {
	return s.deleteOwnedFn(ctx, id, userID)
}

func noopRecipeRepo() *recipeRepoStub {
	return &recipeRepoStub{
		createFn:      func(_ context.Context, _ *models.Recipe) error { return nil },
		getByIDFn:     func(_ context.Context, id uint) (*models.Recipe, error) { return &models.Recipe{ID: id}, nil },
		listFn:        func(_ context.Context, _, _ int) ([]*models.Recipe, error) { return nil, nil },
		searchFn:      func(_ context.Context, _ string, _, _ int) ([]*models.Recipe, error) { return nil, nil },
		updateOwnedFn: func(_ context.Context, _, _ uint, _ map[string]interface{}) error { return nil },
		deleteOwnedFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

func TestRecipeService_CreateRecipe_Validation(t *testing.T) {
	t.Parallel()

	svc := NewRecipeService(noopRecipeRepo())
	ctx := context.Background()

	valid := CreateRecipeInput{
		UserID:      1,
		FoodName:    "Jollof rice",
		Description: "Party style",
		Ingredients: "rice, tomatoes, peppers",
		Preparation: "cook it",
	}

	tests := []struct {
		name   string
		mutate func(in *CreateRecipeInput)
	}{
		{"missing food name", func(in *CreateRecipeInput) { in.FoodName = "" }},
		{"missing description", func(in *CreateRecipeInput) { in.Description = "" }},
		{"missing ingredients", func(in *CreateRecipeInput) { in.Ingredients = "" }},
		{"missing preparation", func(in *CreateRecipeInput) { in.Preparation = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := valid
			tt.mutate(&in)
			_, err := svc.CreateRecipe(ctx, in)
			assertValidationError(t, err)
		})
	}
}

func TestRecipeService_CreateRecipe_AssignsOwner(t *testing.T) {
	t.Parallel()

	var saved *models.Recipe
	repo := noopRecipeRepo()
	repo.createFn = func(_ context.Context, r *models.Recipe) error {
		r.ID = 11
		saved = r
		return nil
	}

	svc := NewRecipeService(repo)
	recipe, err := svc.CreateRecipe(context.Background(), CreateRecipeInput{
		UserID:      6,
		FoodName:    "Jollof rice",
		Description: "Party style",
		Ingredients: "rice, tomatoes, peppers",
		Preparation: "cook it",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(11), recipe.ID)
	assert.Equal(t, uint(6), saved.UserID)
}

func TestRecipeService_SearchRecipes(t *testing.T) {
	t.Parallel()

	var gotQuery string
	repo := noopRecipeRepo()
	repo.searchFn = func(_ context.Context, query string, _, _ int) ([]*models.Recipe, error) {
		gotQuery = query
		return []*models.Recipe{{ID: 1, FoodName: "Jollof rice"}}, nil
	}
	svc := NewRecipeService(repo)

	recipes, err := svc.SearchRecipes(context.Background(), "jollof", 20, 0)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "jollof", gotQuery)

	// An empty query is passed through; the repository matches everything.
	_, err = svc.SearchRecipes(context.Background(), "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, "", gotQuery)
}

func TestRecipeService_UpdateRecipe(t *testing.T) {
	t.Parallel()

	t.Run("no fields is invalid", func(t *testing.T) {
		t.Parallel()
		svc := NewRecipeService(noopRecipeRepo())
		err := svc.UpdateRecipe(context.Background(), UpdateRecipeInput{ID: 1, UserID: 1})
		assertValidationError(t, err)
	})

	t.Run("scoped update passes owner id through", func(t *testing.T) {
		t.Parallel()
		var gotID, gotUserID uint
		repo := noopRecipeRepo()
		repo.updateOwnedFn = func(_ context.Context, id, userID uint, _ map[string]interface{}) error {
			gotID, gotUserID = id, userID
			return nil
		}
		svc := NewRecipeService(repo)

		err := svc.UpdateRecipe(context.Background(), UpdateRecipeInput{ID: 7, UserID: 3, FoodName: "Fried rice"})
		require.NoError(t, err)
		assert.Equal(t, uint(7), gotID)
		assert.Equal(t, uint(3), gotUserID)
	})
}
