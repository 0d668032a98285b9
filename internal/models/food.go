package models

import (
	"time"

	"github.com/google/uuid"
)

// Price holds a food's selling price, list price and discount percentage
type Price struct {
	Org float64 `json:"org" validate:"gte=0"`
	Mrp float64 `json:"mrp" validate:"gte=0"`
	Off int     `json:"off" validate:"gte=0,lte=100"`
}

// Food represents a menu item
type Food struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Desc        string    `json:"desc"`
	Img         *string   `json:"img,omitempty"`
	Price       Price     `json:"price"`
	Category    []string  `json:"category"`
	Ingredients []string  `json:"ingredients"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FoodFilter narrows a food listing. Zero values mean "no constraint".
type FoodFilter struct {
	Categories  []string
	Ingredients []string
	MinPrice    *float64
	MaxPrice    *float64
	Search      string
}
