package usecase

import (
	"errors"
	"math"
	"testing"

	"github.com/macrolens/bakecalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockIngredientDatabase is a map-backed domain.IngredientDatabase
type MockIngredientDatabase struct {
	entries         map[string]domain.Profile
	lookupCalled    int
	lookupAllCalled int
}

func NewMockIngredientDatabase(entries map[string]domain.Profile) *MockIngredientDatabase {
	if entries == nil {
		entries = make(map[string]domain.Profile)
	}
	return &MockIngredientDatabase{entries: entries}
}

func (m *MockIngredientDatabase) Lookup(name string) (domain.Profile, bool) {
	m.lookupCalled++
	p, ok := m.entries[name]
	return p, ok
}

func (m *MockIngredientDatabase) LookupAll(names []string) ([]domain.Profile, error) {
	m.lookupAllCalled++
	profiles := make([]domain.Profile, 0, len(names))
	for _, name := range names {
		p, ok := m.entries[name]
		if !ok {
			return nil, &domain.MissingIngredientError{Name: name}
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (m *MockIngredientDatabase) ListNames() []string {
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	return names
}

func (m *MockIngredientDatabase) InsertOrReplace(name string, profile domain.Profile) {
	m.entries[name] = profile
}

func (m *MockIngredientDatabase) Remove(name string) {
	delete(m.entries, name)
}

func breadDatabase() *MockIngredientDatabase {
	return NewMockIngredientDatabase(map[string]domain.Profile{
		"Flour": domain.MustProfile(map[domain.Nutrient]float64{
			domain.Carbs:      70,
			domain.Protein:    10,
			domain.EnergyKcal: 340,
		}),
		"Water": {},
		"Butter": domain.MustProfile(map[domain.Nutrient]float64{
			domain.Fat:         81,
			domain.EnergyKcal:  735,
			domain.Cholesterol: 215,
			domain.VitaminA:    750,
		}),
	})
}

func mustRecipe(t *testing.T, name string, weights ...any) *domain.Recipe {
	t.Helper()
	r := domain.NewRecipe(name)
	for i := 0; i < len(weights); i += 2 {
		var w float64
		switch v := weights[i+1].(type) {
		case int:
			w = float64(v)
		case float64:
			w = v
		default:
			t.Fatalf("unsupported weight type %T", v)
		}
		require.NoError(t, r.AddIngredient(weights[i].(string), w))
	}
	return r
}

func TestAggregate(t *testing.T) {
	t.Run("flour and water example", func(t *testing.T) {
		db := breadDatabase()
		recipe := mustRecipe(t, "bread", "Flour", 200, "Water", 100)

		got, err := Aggregate(recipe, db)

		require.NoError(t, err)
		assert.InDelta(t, 46.67, got.Get(domain.Carbs), 0.01)
		assert.InDelta(t, 6.67, got.Get(domain.Protein), 0.01)
		assert.InDelta(t, 226.67, got.Get(domain.EnergyKcal), 0.01)
		assert.Equal(t, 0.0, got.Get(domain.Fat))
	})

	t.Run("matches direct recomputation for every nutrient", func(t *testing.T) {
		db := breadDatabase()
		recipe := mustRecipe(t, "brioche", "Flour", 500, "Water", 180, "Butter", 250)

		got, err := Aggregate(recipe, db)
		require.NoError(t, err)

		total := recipe.TotalWeight()
		for _, n := range domain.AllNutrients() {
			sum := 0.0
			for name, w := range recipe.Ingredients() {
				p, _ := db.Lookup(name)
				sum += p.Get(n) * w / 100
			}
			assert.InDelta(t, sum*100/total, got.Get(n), 1e-9, "nutrient %s", n)
		}
	})

	t.Run("single 100g ingredient is the identity", func(t *testing.T) {
		db := breadDatabase()
		recipe := mustRecipe(t, "plain butter", "Butter", 100)

		got, err := Aggregate(recipe, db)
		require.NoError(t, err)

		want, _ := db.Lookup("Butter")
		for _, n := range domain.AllNutrients() {
			assert.InDelta(t, want.Get(n), got.Get(n), 1e-9, "nutrient %s", n)
		}
	})

	t.Run("fails with the missing ingredient name", func(t *testing.T) {
		db := breadDatabase()
		recipe := mustRecipe(t, "rye", "Flour", 200, "Rye flour", 100)

		got, err := Aggregate(recipe, db)

		assert.ErrorIs(t, err, domain.ErrMissingIngredient)
		var missing *domain.MissingIngredientError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "Rye flour", missing.Name)
		assert.True(t, got.IsZero())
	})

	t.Run("fails for an empty recipe", func(t *testing.T) {
		_, err := Aggregate(domain.NewRecipe("empty"), breadDatabase())
		assert.ErrorIs(t, err, domain.ErrEmptyRecipe)
	})

	t.Run("fails when total weight is zero", func(t *testing.T) {
		recipe := mustRecipe(t, "zero", "Flour", 0, "Water", 0)
		_, err := Aggregate(recipe, breadDatabase())
		assert.ErrorIs(t, err, domain.ErrEmptyRecipe)
	})

	t.Run("fails when one ingredient weighs nothing", func(t *testing.T) {
		recipe := mustRecipe(t, "bread", "Flour", 200, "Water", 0)
		_, err := Aggregate(recipe, breadDatabase())
		assert.ErrorIs(t, err, domain.ErrEmptyRecipe)
	})

	t.Run("reads the database in one snapshot", func(t *testing.T) {
		db := breadDatabase()
		recipe := mustRecipe(t, "brioche", "Flour", 500, "Water", 180, "Butter", 250)

		_, err := Aggregate(recipe, db)

		require.NoError(t, err)
		assert.Equal(t, 1, db.lookupAllCalled)
		assert.Equal(t, 0, db.lookupCalled)
	})

	t.Run("handles a single huge weight", func(t *testing.T) {
		db := breadDatabase()
		recipe := mustRecipe(t, "silo", "Flour", 1e308)

		got, err := Aggregate(recipe, db)

		require.NoError(t, err)
		assert.InDelta(t, 70.0, got.Get(domain.Carbs), 1e-9)
		assert.InDelta(t, 340.0, got.Get(domain.EnergyKcal), 1e-9)
	})

	t.Run("rejects a total weight that overflows", func(t *testing.T) {
		recipe := mustRecipe(t, "silo", "Flour", 1e308, "Butter", 1e308)

		got, err := Aggregate(recipe, breadDatabase())

		assert.ErrorIs(t, err, domain.ErrMalformedInput)
		assert.True(t, got.IsZero())
	})

	t.Run("rejects a total weight too small to scale", func(t *testing.T) {
		recipe := mustRecipe(t, "speck", "Butter", 1e-320)

		got, err := Aggregate(recipe, breadDatabase())

		assert.ErrorIs(t, err, domain.ErrMalformedInput)
		assert.True(t, got.IsZero())
	})

	t.Run("fails for a nil recipe", func(t *testing.T) {
		_, err := Aggregate(nil, breadDatabase())
		assert.ErrorIs(t, err, domain.ErrEmptyRecipe)
	})

	t.Run("does not mutate inputs", func(t *testing.T) {
		db := breadDatabase()
		recipe := mustRecipe(t, "bread", "Flour", 200, "Water", 100)
		flourBefore, _ := db.Lookup("Flour")
		before := recipe.Clone()

		_, err := Aggregate(recipe, db)
		require.NoError(t, err)

		flourAfter, _ := db.Lookup("Flour")
		assert.Equal(t, flourBefore, flourAfter)
		assert.True(t, before.Equal(recipe))
	})
}

func TestApplyWeightLossCorrection(t *testing.T) {
	profile := domain.MustProfile(map[domain.Nutrient]float64{
		domain.Carbs:      46.6,
		domain.Protein:    6.7,
		domain.EnergyKcal: 226.7,
		domain.Iron:       0.87,
		domain.Folate:     12,
	})

	t.Run("scales every nutrient by raw over baked", func(t *testing.T) {
		got, err := ApplyWeightLossCorrection(profile, 500, 400)

		require.NoError(t, err)
		for _, n := range domain.AllNutrients() {
			assert.Equal(t, profile.Get(n)*1.25, got.Get(n), "nutrient %s", n)
		}
	})

	t.Run("no loss keeps values", func(t *testing.T) {
		got, err := ApplyWeightLossCorrection(profile, 500, 500)
		require.NoError(t, err)
		assert.Equal(t, profile, got)
	})

	tests := []struct {
		name  string
		raw   float64
		baked float64
	}{
		{"baked heavier than raw", 500, 600},
		{"zero baked weight", 500, 0},
		{"negative baked weight", 500, -10},
		{"NaN baked weight", 500, math.NaN()},
		{"infinite raw weight", math.Inf(1), 400},
		{"factor that overflows", 1e308, 1e-10},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			original := profile

			got, err := ApplyWeightLossCorrection(profile, tt.raw, tt.baked)

			assert.ErrorIs(t, err, domain.ErrInvalidBakedWeight)
			assert.True(t, got.IsZero())
			assert.Equal(t, original, profile)
		})
	}
}

func TestWeightLossFactor(t *testing.T) {
	factor, err := WeightLossFactor(1000, 800)
	require.NoError(t, err)
	assert.Equal(t, 1.25, factor)
	assert.GreaterOrEqual(t, factor, 1.0)

	factor, err = WeightLossFactor(1e308, 1e-10)
	assert.ErrorIs(t, err, domain.ErrInvalidBakedWeight)
	assert.Equal(t, 0.0, factor)
}
