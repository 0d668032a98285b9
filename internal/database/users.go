package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benvon/food-delivery/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a looked-up row does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("already exists")
)

// UserRepository handles user database operations
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, img, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Img,
		now,
		now,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if IsUniqueViolation(err) {
		return fmt.Errorf("user with email %q: %w", user.Email, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, img, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Img,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// AddFavorite records foodID as a favorite of userID. Adding an existing favorite is a no-op.
func (r *UserRepository) AddFavorite(ctx context.Context, userID, foodID uuid.UUID) error {
	query := `
		INSERT INTO user_favorites (user_id, food_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, food_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, userID, foodID, time.Now())
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("favorite %s/%s: %w", userID, foodID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

// RemoveFavorite deletes a favorite
func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, foodID uuid.UUID) error {
	query := `DELETE FROM user_favorites WHERE user_id = $1 AND food_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, foodID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("favorite %s/%s: %w", userID, foodID, ErrNotFound)
	}

	return nil
}

// ListFavorites returns the foods a user saved, most recent first
func (r *UserRepository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*models.Food, error) {
	query := `
		SELECT ` + foodColumns("f") + `
		FROM user_favorites uf
		JOIN foods f ON f.id = uf.food_id
		WHERE uf.user_id = $1
		ORDER BY uf.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	foods, err := scanFoods(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan favorites: %w", err)
	}
	return foods, nil
}
