package openfoodfacts

import (
	"testing"

	"github.com/macrolens/bakecalc/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapToProduct(t *testing.T) {
	tests := []struct {
		name    string
		product *domain.OFFProduct
		check   func(t *testing.T, got domain.Product)
	}{
		{
			name: "complete product",
			product: &domain.OFFProduct{
				Code:        "5998817311123",
				ProductName: "BL80 finomliszt",
				Brands:      "Gyermelyi, Store brand",
				Nutriments: map[string]any{
					"energy-kj_100g":     1470.0,
					"energy-kcal_100g":   347.0,
					"carbohydrates_100g": 70.6,
					"proteins_100g":      "10.1",
					"salt_100g":          0.01,
					"sodium_100g":        0.004,
					"iron_100g":          0.0013,
					"vitamin-b12_100g":   0.0000013,
				},
			},
			check: func(t *testing.T, got domain.Product) {
				assert.Equal(t, "5998817311123", got.Code)
				assert.Equal(t, "BL80 finomliszt", got.Name)
				assert.Equal(t, "Gyermelyi", got.Brand)
				assert.Equal(t, 1470.0, got.Profile.Get(domain.EnergyKJ))
				assert.Equal(t, 347.0, got.Profile.Get(domain.EnergyKcal))
				assert.Equal(t, 70.6, got.Profile.Get(domain.Carbs))
				assert.Equal(t, 10.1, got.Profile.Get(domain.Protein))
				assert.Equal(t, 0.01, got.Profile.Get(domain.Salt))
				assert.InDelta(t, 4.0, got.Profile.Get(domain.Sodium), 1e-9)
				assert.InDelta(t, 1.3, got.Profile.Get(domain.Iron), 1e-9)
				assert.InDelta(t, 1.3, got.Profile.Get(domain.VitaminB12), 1e-9)
			},
		},
		{
			name: "missing nutrients default to zero",
			product: &domain.OFFProduct{
				Code:        "1",
				ProductName: "Mystery bar",
				Nutriments: map[string]any{
					"sugars_100g": 30.0,
				},
			},
			check: func(t *testing.T, got domain.Product) {
				assert.Equal(t, 30.0, got.Profile.Get(domain.Sugar))
				assert.Equal(t, 0.0, got.Profile.Get(domain.Fat))
				assert.Equal(t, 0.0, got.Profile.Get(domain.Protein))
			},
		},
		{
			name: "unusable values are ignored",
			product: &domain.OFFProduct{
				Code:        "2",
				ProductName: "Broken record",
				Nutriments: map[string]any{
					"fat_100g":      -3.0,
					"proteins_100g": "n/a",
					"fiber_100g":    true,
				},
			},
			check: func(t *testing.T, got domain.Product) {
				assert.True(t, got.Profile.IsZero())
			},
		},
		{
			name: "falls back to generic name",
			product: &domain.OFFProduct{
				Code:        "3",
				ProductName: "  ",
				GenericName: "Wheat flour",
			},
			check: func(t *testing.T, got domain.Product) {
				assert.Equal(t, "Wheat flour", got.Name)
				assert.True(t, got.Profile.IsZero())
			},
		},
		{
			name:    "unnamed product",
			product: &domain.OFFProduct{Code: "4"},
			check: func(t *testing.T, got domain.Product) {
				assert.Equal(t, UnknownProductName, got.Name)
			},
		},
		{
			name: "energy falls back to generic energy field",
			product: &domain.OFFProduct{
				Code:        "5",
				ProductName: "Honey",
				Nutriments:  map[string]any{"energy_100g": 1272.0},
			},
			check: func(t *testing.T, got domain.Product) {
				assert.Equal(t, 1272.0, got.Profile.Get(domain.EnergyKJ))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, MapToProduct(tt.product))
		})
	}
}

func TestFindNutrimentValue(t *testing.T) {
	nutriments := map[string]any{
		"fat_100g":      1.5,
		"sugars_100g":   " 2.25 ",
		"proteins_100g": "",
	}

	v, ok := FindNutrimentValue(nutriments, "fat_100g")
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	v, ok = FindNutrimentValue(nutriments, "sugars_100g")
	assert.True(t, ok)
	assert.Equal(t, 2.25, v)

	_, ok = FindNutrimentValue(nutriments, "proteins_100g")
	assert.False(t, ok)

	_, ok = FindNutrimentValue(nutriments, "salt_100g")
	assert.False(t, ok)
}
