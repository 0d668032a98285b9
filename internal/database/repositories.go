package database

import (
	"context"

	"github.com/benvon/food-delivery/internal/models"
	"github.com/google/uuid"
)

// UserRepositoryInterface defines the user operations the user routes need
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	AddFavorite(ctx context.Context, userID, foodID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, foodID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*models.Food, error)
}

// FoodRepositoryInterface defines the food operations the food routes need
type FoodRepositoryInterface interface {
	CreateMany(ctx context.Context, foods []*models.Food) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Food, error)
	List(ctx context.Context, filter models.FoodFilter) ([]*models.Food, error)
}

// Ensure concrete types implement the interfaces
var (
	_ UserRepositoryInterface = (*UserRepository)(nil)
	_ FoodRepositoryInterface = (*FoodRepository)(nil)
)
