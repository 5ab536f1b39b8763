// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account in the Tastebook application.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Password  string    `gorm:"not null" json:"-"`
	Phone     string    `gorm:"not null" json:"phone"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	Recipes   []Recipe  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"recipes,omitempty"`
}
