package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/benvon/food-delivery/internal/database"
	"github.com/benvon/food-delivery/internal/models"
	"github.com/google/uuid"
)

type fakeFoodRepo struct {
	mu        sync.Mutex
	foods     map[uuid.UUID]*models.Food
	listCalls int
	lastList  models.FoodFilter
	failWith  error
}

func newFakeFoodRepo(foods ...*models.Food) *fakeFoodRepo {
	repo := &fakeFoodRepo{foods: make(map[uuid.UUID]*models.Food)}
	for _, f := range foods {
		repo.foods[f.ID] = f
	}
	return repo
}

func (f *fakeFoodRepo) CreateMany(_ context.Context, foods []*models.Food) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for _, food := range foods {
		food.ID = uuid.New()
		f.foods[food.ID] = food
	}
	return nil
}

func (f *fakeFoodRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Food, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	food, ok := f.foods[id]
	if !ok {
		return nil, fmt.Errorf("food %s: %w", id, database.ErrNotFound)
	}
	return food, nil
}

func (f *fakeFoodRepo) List(_ context.Context, filter models.FoodFilter) ([]*models.Food, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.lastList = filter
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]*models.Food, 0, len(f.foods))
	for _, food := range f.foods {
		out = append(out, food)
	}
	return out, nil
}

type fakeFoodCache struct {
	mu          sync.Mutex
	entries     map[string][]*models.Food
	invalidated int
	readErr     error
}

func newFakeFoodCache() *fakeFoodCache {
	return &fakeFoodCache{entries: make(map[string][]*models.Food)}
}

func (c *fakeFoodCache) GetFoods(_ context.Context, key string) ([]*models.Food, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return nil, false, c.readErr
	}
	foods, ok := c.entries[key]
	return foods, ok, nil
}

func (c *fakeFoodCache) SetFoods(_ context.Context, key string, foods []*models.Food) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = foods
	return nil
}

func (c *fakeFoodCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.entries = make(map[string][]*models.Food)
	return nil
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*models.User
	foods     map[uuid.UUID]*models.Food
	favorites map[uuid.UUID][]uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     make(map[uuid.UUID]*models.User),
		foods:     make(map[uuid.UUID]*models.Food),
		favorites: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %q: %w", user.Email, database.ErrDuplicate)
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, database.ErrNotFound)
	}
	return user, nil
}

func (f *fakeUserRepo) AddFavorite(_ context.Context, userID, foodID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[userID]; !ok {
		return database.ErrNotFound
	}
	if _, ok := f.foods[foodID]; !ok {
		return database.ErrNotFound
	}
	for _, id := range f.favorites[userID] {
		if id == foodID {
			return nil
		}
	}
	f.favorites[userID] = append(f.favorites[userID], foodID)
	return nil
}

func (f *fakeUserRepo) RemoveFavorite(_ context.Context, userID, foodID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	favs := f.favorites[userID]
	for i, id := range favs {
		if id == foodID {
			f.favorites[userID] = append(favs[:i], favs[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeUserRepo) ListFavorites(_ context.Context, userID uuid.UUID) ([]*models.Food, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Food{}
	for _, id := range f.favorites[userID] {
		out = append(out, f.foods[id])
	}
	return out, nil
}

var errBoom = errors.New("boom")

var (
	_ database.FoodRepositoryInterface = (*fakeFoodRepo)(nil)
	_ database.UserRepositoryInterface = (*fakeUserRepo)(nil)
)
