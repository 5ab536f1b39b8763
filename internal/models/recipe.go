// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Recipe represents a shared recipe in the Tastebook application.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FoodName    string    `gorm:"not null" json:"food_name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Ingredients string    `gorm:"type:text;not null" json:"ingredients"`
	Preparation string    `gorm:"type:text;not null" json:"preparation"`
	ImageURL    string    `json:"image_url"`
	VideoURL    string    `json:"video_url"`
	Views       int       `gorm:"default:0" json:"views"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Reviews     []Review  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
