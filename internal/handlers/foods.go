package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/benvon/food-delivery/internal/apperror"
	"github.com/benvon/food-delivery/internal/cache"
	"github.com/benvon/food-delivery/internal/database"
	"github.com/benvon/food-delivery/internal/middleware"
	"github.com/benvon/food-delivery/internal/models"
	"github.com/benvon/food-delivery/internal/validation"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	// MaxFoodsPerRequest bounds how many foods a single add request may carry
	MaxFoodsPerRequest = 100
	// MaxSearchLength is the maximum length of the search filter
	MaxSearchLength = 100
)

// FoodHandler handles food catalog requests
type FoodHandler struct {
	foods  database.FoodRepositoryInterface
	cache  cache.FoodCache
	logger *zap.Logger
}

// NewFoodHandler creates a new food handler. foodCache may be nil to disable caching.
func NewFoodHandler(foods database.FoodRepositoryInterface, foodCache cache.FoodCache, logger *zap.Logger) *FoodHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FoodHandler{foods: foods, cache: foodCache, logger: logger}
}

// RegisterRoutes registers food routes on the given router
// The router should already have the /api/food prefix
func (h *FoodHandler) RegisterRoutes(r *mux.Router) {
	r.Handle("/add", middleware.Route(h.AddFoods)).Methods(http.MethodPost)
	r.Handle("", middleware.Route(h.ListFoods)).Methods(http.MethodGet)
	r.Handle("/", middleware.Route(h.ListFoods)).Methods(http.MethodGet)
	r.Handle("/{id}", middleware.Route(h.GetFood)).Methods(http.MethodGet)
}

// PriceRequest is the price block of a food in an add request
type PriceRequest struct {
	Org float64 `json:"org" validate:"gte=0"`
	Mrp float64 `json:"mrp" validate:"gte=0,gtefield=Org"`
	Off int     `json:"off" validate:"gte=0,lte=100"`
}

// FoodRequest is one food in an add request
type FoodRequest struct {
	Name        string       `json:"name" validate:"required,notblank,max=200"`
	Desc        string       `json:"desc" validate:"max=2000"`
	Img         *string      `json:"img" validate:"omitempty,url"`
	Price       PriceRequest `json:"price"`
	Category    []string     `json:"category" validate:"min=1,max=20,dive,food_tag"`
	Ingredients []string     `json:"ingredients" validate:"max=50,dive,food_tag"`
}

// AddFoodsRequest accepts either a JSON array of foods or a single food object
type AddFoodsRequest []FoodRequest

// UnmarshalJSON implements json.Unmarshaler
func (a *AddFoodsRequest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []FoodRequest
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*a = items
		return nil
	}

	var item FoodRequest
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return err
	}
	*a = AddFoodsRequest{item}
	return nil
}

// AddFoods validates and stores a batch of foods atomically
func (h *FoodHandler) AddFoods(w http.ResponseWriter, r *http.Request) error {
	var req AddFoodsRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	if len(req) == 0 {
		return apperror.BadRequest("At least one food is required")
	}
	if len(req) > MaxFoodsPerRequest {
		return apperror.BadRequest(fmt.Sprintf("At most %d foods can be added at once", MaxFoodsPerRequest))
	}

	foods := make([]*models.Food, 0, len(req))
	for i, item := range req {
		if err := validation.Struct(item); err != nil {
			return apperror.Wrap(err, http.StatusBadRequest, fmt.Sprintf("foods[%d]: %s", i, err))
		}
		foods = append(foods, item.toModel())
	}

	if err := h.foods.CreateMany(r.Context(), foods); err != nil {
		return fmt.Errorf("failed to add foods: %w", err)
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(r.Context()); err != nil {
			h.logger.Warn("food_cache_invalidate_failed", zap.Error(err))
		}
	}

	return respondJSON(w, http.StatusCreated, foods)
}

func (f FoodRequest) toModel() *models.Food {
	food := &models.Food{
		Name: validation.SanitizeText(f.Name),
		Desc: validation.SanitizeText(f.Desc),
		Price: models.Price{
			Org: f.Price.Org,
			Mrp: f.Price.Mrp,
			Off: f.Price.Off,
		},
		Category:    validation.SanitizeList(f.Category),
		Ingredients: validation.SanitizeList(f.Ingredients),
	}
	if f.Img != nil {
		img := strings.TrimSpace(*f.Img)
		food.Img = &img
	}
	return food
}

// ListFoods lists foods matching the query filters
func (h *FoodHandler) ListFoods(w http.ResponseWriter, r *http.Request) error {
	filter, err := parseFoodFilter(r)
	if err != nil {
		return err
	}

	ctx := r.Context()
	var key string
	if h.cache != nil {
		key = cache.FilterKey(filter)
		foods, ok, err := h.cache.GetFoods(ctx, key)
		if err != nil {
			h.logger.Warn("food_cache_read_failed", zap.Error(err))
		} else if ok {
			return respondJSON(w, http.StatusOK, foods)
		}
	}

	foods, err := h.foods.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list foods: %w", err)
	}

	if h.cache != nil {
		if err := h.cache.SetFoods(ctx, key, foods); err != nil {
			h.logger.Warn("food_cache_write_failed", zap.Error(err))
		}
	}

	return respondJSON(w, http.StatusOK, foods)
}

// GetFood returns a single food
func (h *FoodHandler) GetFood(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id", "food")
	if err != nil {
		return err
	}

	food, err := h.foods.GetByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		return apperror.Wrap(err, http.StatusNotFound, "Food not found")
	}
	if err != nil {
		return fmt.Errorf("failed to get food: %w", err)
	}

	return respondJSON(w, http.StatusOK, food)
}

func parseFoodFilter(r *http.Request) (models.FoodFilter, error) {
	q := r.URL.Query()
	filter := models.FoodFilter{
		Categories:  validation.SanitizeList(splitList(q.Get("categories"))),
		Ingredients: validation.SanitizeList(splitList(q.Get("ingredients"))),
		Search:      validation.SanitizeText(q.Get("search")),
	}

	if len([]rune(filter.Search)) > MaxSearchLength {
		return filter, apperror.BadRequest(fmt.Sprintf("search must be at most %d characters", MaxSearchLength))
	}

	var err error
	if filter.MinPrice, err = parsePrice(q.Get("minPrice"), "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parsePrice(q.Get("maxPrice"), "maxPrice"); err != nil {
		return filter, err
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return filter, apperror.BadRequest("minPrice must not be greater than maxPrice")
	}

	return filter, nil
}

func parsePrice(raw, name string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperror.BadRequest(name + " must be a non-negative number")
	}
	return &v, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
