// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Review represents a rating with optional text left on a recipe.
type Review struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"type:text" json:"description"`
	Rate        int       `gorm:"default:0" json:"rate"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	RecipeID    uint      `gorm:"not null;index" json:"recipe_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
