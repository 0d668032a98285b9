package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a customer profile
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Img       *string   `json:"img,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Favorite links a user to a food they saved
type Favorite struct {
	UserID    uuid.UUID `json:"user_id"`
	FoodID    uuid.UUID `json:"food_id"`
	CreatedAt time.Time `json:"created_at"`
}
