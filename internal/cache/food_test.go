package cache

import (
	"testing"

	"github.com/benvon/food-delivery/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestFilterKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    models.FoodFilter
		b    models.FoodFilter
		same bool
	}{
		{
			name: "empty filters",
			a:    models.FoodFilter{},
			b:    models.FoodFilter{},
			same: true,
		},
		{
			name: "category order and duplicates do not matter",
			a:    models.FoodFilter{Categories: []string{"veg", "spicy"}},
			b:    models.FoodFilter{Categories: []string{"spicy", "veg", "veg"}},
			same: true,
		},
		{
			name: "category case is significant",
			a:    models.FoodFilter{Categories: []string{"Pizza"}},
			b:    models.FoodFilter{Categories: []string{"pizza"}},
			same: false,
		},
		{
			name: "ingredient case is significant",
			a:    models.FoodFilter{Ingredients: []string{"Cheese"}},
			b:    models.FoodFilter{Ingredients: []string{"cheese"}},
			same: false,
		},
		{
			name: "search is case-insensitive",
			a:    models.FoodFilter{Search: "Pizza"},
			b:    models.FoodFilter{Search: "pizza"},
			same: true,
		},
		{
			name: "min and max price are distinct",
			a:    models.FoodFilter{MinPrice: floatPtr(10)},
			b:    models.FoodFilter{MaxPrice: floatPtr(10)},
			same: false,
		},
		{
			name: "categories and ingredients are distinct",
			a:    models.FoodFilter{Categories: []string{"cheese"}},
			b:    models.FoodFilter{Ingredients: []string{"cheese"}},
			same: false,
		},
		{
			name: "different prices",
			a:    models.FoodFilter{MinPrice: floatPtr(10)},
			b:    models.FoodFilter{MinPrice: floatPtr(10.5)},
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ka, kb := FilterKey(tt.a), FilterKey(tt.b)
			if (ka == kb) != tt.same {
				t.Errorf("FilterKey() = %q and %q, expected same=%v", ka, kb, tt.same)
			}
		})
	}
}

func TestFilterKey_Empty(t *testing.T) {
	t.Parallel()

	if got := FilterKey(models.FoodFilter{}); got != "all" {
		t.Errorf("Expected %q for an empty filter, got %q", "all", got)
	}
}

func TestEntryKey(t *testing.T) {
	t.Parallel()

	if got := entryKey(3, "all"); got != "food-delivery:foods:v3:all" {
		t.Errorf("Unexpected entry key %q", got)
	}
}

func TestNewRedisFoodCache_InvalidURL(t *testing.T) {
	t.Parallel()

	if _, err := NewRedisFoodCache("not-a-redis-url", 0); err == nil {
		t.Error("Expected error for an invalid Redis URL")
	}
}
