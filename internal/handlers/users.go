package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/benvon/food-delivery/internal/apperror"
	"github.com/benvon/food-delivery/internal/database"
	"github.com/benvon/food-delivery/internal/middleware"
	"github.com/benvon/food-delivery/internal/models"
	"github.com/benvon/food-delivery/internal/validation"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// UserHandler handles user profile and favorites requests
type UserHandler struct {
	users database.UserRepositoryInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(users database.UserRepositoryInterface) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes registers user routes on the given router
// The router should already have the /api/user prefix
func (h *UserHandler) RegisterRoutes(r *mux.Router) {
	r.Handle("", middleware.Route(h.CreateUser)).Methods(http.MethodPost)
	r.Handle("/", middleware.Route(h.CreateUser)).Methods(http.MethodPost)
	r.Handle("/{id}", middleware.Route(h.GetUser)).Methods(http.MethodGet)
	r.Handle("/{id}/favorites", middleware.Route(h.ListFavorites)).Methods(http.MethodGet)
	r.Handle("/{id}/favorites", middleware.Route(h.AddFavorite)).Methods(http.MethodPost)
	r.Handle("/{id}/favorites/{foodId}", middleware.Route(h.RemoveFavorite)).Methods(http.MethodDelete)
}

// CreateUserRequest represents a create user request
type CreateUserRequest struct {
	Name  string  `json:"name" validate:"required,notblank,max=100"`
	Email string  `json:"email" validate:"required,email,max=254"`
	Img   *string `json:"img" validate:"omitempty,url"`
}

// AddFavoriteRequest represents an add favorite request
type AddFavoriteRequest struct {
	FoodID string `json:"foodId" validate:"required,uuid"`
}

// CreateUser creates a user profile
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) error {
	var req CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.Struct(req); err != nil {
		return apperror.Wrap(err, http.StatusBadRequest, err.Error())
	}

	user := &models.User{
		ID:    uuid.New(),
		Name:  validation.SanitizeText(req.Name),
		Email: req.Email,
	}
	if req.Img != nil {
		img := strings.TrimSpace(*req.Img)
		user.Img = &img
	}

	err := h.users.Create(r.Context(), user)
	if errors.Is(err, database.ErrDuplicate) {
		return apperror.Wrap(err, http.StatusConflict, "Email is already in use")
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return respondJSON(w, http.StatusCreated, user)
}

// GetUser returns a user profile
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) error {
	user, err := h.loadUser(r)
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, user)
}

// AddFavorite saves a food to the user's favorites
func (h *UserHandler) AddFavorite(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "id", "user")
	if err != nil {
		return err
	}

	var req AddFavoriteRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return apperror.Wrap(err, http.StatusBadRequest, err.Error())
	}
	foodID := uuid.MustParse(req.FoodID)

	err = h.users.AddFavorite(r.Context(), userID, foodID)
	if errors.Is(err, database.ErrNotFound) {
		return apperror.Wrap(err, http.StatusNotFound, "User or food not found")
	}
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return respondJSON(w, http.StatusCreated, models.Favorite{
		UserID:    userID,
		FoodID:    foodID,
		CreatedAt: time.Now().UTC(),
	})
}

// RemoveFavorite removes a food from the user's favorites
func (h *UserHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathID(r, "id", "user")
	if err != nil {
		return err
	}
	foodID, err := pathID(r, "foodId", "food")
	if err != nil {
		return err
	}

	err = h.users.RemoveFavorite(r.Context(), userID, foodID)
	if errors.Is(err, database.ErrNotFound) {
		return apperror.Wrap(err, http.StatusNotFound, "Favorite not found")
	}
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ListFavorites lists the user's favorite foods
func (h *UserHandler) ListFavorites(w http.ResponseWriter, r *http.Request) error {
	user, err := h.loadUser(r)
	if err != nil {
		return err
	}

	foods, err := h.users.ListFavorites(r.Context(), user.ID)
	if err != nil {
		return fmt.Errorf("failed to list favorites: %w", err)
	}

	return respondJSON(w, http.StatusOK, foods)
}

func (h *UserHandler) loadUser(r *http.Request) (*models.User, error) {
	id, err := pathID(r, "id", "user")
	if err != nil {
		return nil, err
	}

	user, err := h.users.GetByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperror.Wrap(err, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
