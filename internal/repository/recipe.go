// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"tastebook/internal/models"

	"gorm.io/gorm"
)

// RecipeRepository defines persistence operations for recipes.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	List(ctx context.Context, limit, offset int) ([]*models.Recipe, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Recipe, error)
	UpdateOwned(ctx context.Context, id, userID uint, fields map[string]interface{}) error
	DeleteOwned(ctx context.Context, id, userID uint) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository returns a new RecipeRepository implementation.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return models.NewConstraintError(err)
	}
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Reviews").
		First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, limit, offset int) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

// Search matches the query anywhere inside food_name. Case sensitivity follows
// the database collation (LIKE is case-sensitive on PostgreSQL).
func (r *recipeRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	like := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("food_name LIKE ?", like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) UpdateOwned(ctx context.Context, id, userID uint, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return models.NewConstraintError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Recipe", id)
	}
	return nil
}

func (r *recipeRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Recipe{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Recipe", id)
	}
	return nil
}
