package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/benvon/food-delivery/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// FoodRepository handles food database operations
type FoodRepository struct {
	db *DB
}

// NewFoodRepository creates a new food repository
func NewFoodRepository(db *DB) *FoodRepository {
	return &FoodRepository{db: db}
}

func foodColumns(alias string) string {
	cols := []string{"id", "name", "description", "img", "price_org", "price_mrp", "price_off", "category", "ingredients", "created_at", "updated_at"}
	if alias != "" {
		for i, c := range cols {
			cols[i] = alias + "." + c
		}
	}
	return strings.Join(cols, ", ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (*models.Food, error) {
	food := &models.Food{}
	err := row.Scan(
		&food.ID,
		&food.Name,
		&food.Desc,
		&food.Img,
		&food.Price.Org,
		&food.Price.Mrp,
		&food.Price.Off,
		pq.Array(&food.Category),
		pq.Array(&food.Ingredients),
		&food.CreatedAt,
		&food.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return food, nil
}

func scanFoods(rows *sql.Rows) ([]*models.Food, error) {
	foods := []*models.Food{}
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, food)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foods: %w", err)
	}
	return foods, nil
}

// CreateMany inserts all foods in a single transaction. Either every food is stored or none is.
func (r *FoodRepository) CreateMany(ctx context.Context, foods []*models.Food) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO foods (id, name, description, img, price_org, price_mrp, price_off, category, ingredients, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	now := time.Now()
	for _, food := range foods {
		if food.ID == uuid.Nil {
			food.ID = uuid.New()
		}
		err := tx.QueryRowContext(ctx, query,
			food.ID,
			food.Name,
			food.Desc,
			food.Img,
			food.Price.Org,
			food.Price.Mrp,
			food.Price.Off,
			pq.Array(nonNil(food.Category)),
			pq.Array(nonNil(food.Ingredients)),
			now,
			now,
		).Scan(&food.CreatedAt, &food.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create food %q: %w", food.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit foods: %w", err)
	}
	return nil
}

// GetByID retrieves a food by ID
func (r *FoodRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	query := `SELECT ` + foodColumns("") + ` FROM foods WHERE id = $1`

	food, err := scanFood(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("food %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get food: %w", err)
	}
	return food, nil
}

// List returns foods matching filter, newest first
func (r *FoodRepository) List(ctx context.Context, filter models.FoodFilter) ([]*models.Food, error) {
	query, args := buildFoodListQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	return scanFoods(rows)
}

func buildFoodListQuery(filter models.FoodFilter) (string, []any) {
	query := `SELECT ` + foodColumns("") + ` FROM foods WHERE 1=1`
	var args []any
	argIndex := 1

	if len(filter.Categories) > 0 {
		query += fmt.Sprintf(" AND category && $%d::text[]", argIndex)
		args = append(args, pq.Array(filter.Categories))
		argIndex++
	}

	if len(filter.Ingredients) > 0 {
		query += fmt.Sprintf(" AND ingredients && $%d::text[]", argIndex)
		args = append(args, pq.Array(filter.Ingredients))
		argIndex++
	}

	if filter.MinPrice != nil {
		query += fmt.Sprintf(" AND price_org >= $%d", argIndex)
		args = append(args, *filter.MinPrice)
		argIndex++
	}

	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND price_org <= $%d", argIndex)
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
	}

	query += " ORDER BY created_at DESC"
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
