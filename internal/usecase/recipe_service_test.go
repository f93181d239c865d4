package usecase

import (
	"testing"

	"github.com/macrolens/bakecalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 {
	return &v
}

func TestNewRecipeService(t *testing.T) {
	svc := NewRecipeService(breadDatabase(), RecipeServiceConfig{})

	recipe := svc.Recipe()
	assert.Equal(t, domain.DefaultRecipeName, recipe.Name())
	assert.Equal(t, 0, recipe.Len())
}

func TestRecipeServiceEditing(t *testing.T) {
	svc := NewRecipeService(breadDatabase(), RecipeServiceConfig{InitialName: "Loaf"})

	_, err := svc.AddIngredient("Flour", 500)
	require.NoError(t, err)
	_, err = svc.AddIngredient("Water", 350)
	require.NoError(t, err)

	_, err = svc.AddIngredient("Water", -1)
	assert.ErrorIs(t, err, domain.ErrMalformedInput)

	recipe := svc.SetName("Country loaf")
	assert.Equal(t, "Country loaf", recipe.Name())
	assert.Equal(t, map[string]float64{"Flour": 500, "Water": 350}, recipe.Ingredients())

	recipe = svc.RemoveIngredient("Water")
	assert.Equal(t, []string{"Flour"}, recipe.IngredientNames())

	recipe = svc.ClearIngredients()
	assert.Equal(t, 0, recipe.Len())
	assert.Equal(t, "Country loaf", recipe.Name())
}

func TestRecipeServiceRecipeIsACopy(t *testing.T) {
	svc := NewRecipeService(breadDatabase(), RecipeServiceConfig{})
	_, err := svc.AddIngredient("Flour", 500)
	require.NoError(t, err)

	copied := svc.Recipe()
	require.NoError(t, copied.AddIngredient("Butter", 100))

	assert.Equal(t, 1, svc.Recipe().Len())
}

func TestRecipeServiceCalculate(t *testing.T) {
	newService := func(t *testing.T) *RecipeService {
		svc := NewRecipeService(breadDatabase(), RecipeServiceConfig{InitialName: "Bread"})
		_, err := svc.AddIngredient("Flour", 200)
		require.NoError(t, err)
		_, err = svc.AddIngredient("Water", 100)
		require.NoError(t, err)
		return svc
	}

	t.Run("raw profile only", func(t *testing.T) {
		calc, err := newService(t).Calculate(nil)

		require.NoError(t, err)
		assert.Equal(t, "Bread", calc.RecipeName)
		assert.Equal(t, 2, calc.Ingredients)
		assert.Equal(t, 300.0, calc.TotalWeight)
		assert.InDelta(t, 46.67, calc.Raw.Get(domain.Carbs), 0.01)
		assert.Nil(t, calc.Baked)
	})

	t.Run("with baking correction", func(t *testing.T) {
		calc, err := newService(t).Calculate(float(240))

		require.NoError(t, err)
		require.NotNil(t, calc.Baked)
		assert.Equal(t, 1.25, calc.Factor)
		assert.Equal(t, 240.0, calc.BakedWeight)
		assert.Equal(t, calc.Raw.Get(domain.Carbs)*1.25, calc.Baked.Get(domain.Carbs))
		assert.InDelta(t, 58.33, calc.Baked.Get(domain.Carbs), 0.01)
	})

	t.Run("invalid baked weight keeps raw profile", func(t *testing.T) {
		calc, err := newService(t).Calculate(float(400))

		assert.ErrorIs(t, err, domain.ErrInvalidBakedWeight)
		require.NotNil(t, calc)
		assert.Nil(t, calc.Baked)
		assert.InDelta(t, 46.67, calc.Raw.Get(domain.Carbs), 0.01)
	})

	t.Run("overflowing correction keeps raw profile", func(t *testing.T) {
		svc := NewRecipeService(breadDatabase(), RecipeServiceConfig{})
		_, err := svc.AddIngredient("Flour", 1e308)
		require.NoError(t, err)

		calc, err := svc.Calculate(float(1e-10))

		assert.ErrorIs(t, err, domain.ErrInvalidBakedWeight)
		require.NotNil(t, calc)
		assert.Nil(t, calc.Baked)
		assert.InDelta(t, 70.0, calc.Raw.Get(domain.Carbs), 1e-9)
	})

	t.Run("missing ingredient fails", func(t *testing.T) {
		svc := newService(t)
		_, err := svc.AddIngredient("Chia seeds", 20)
		require.NoError(t, err)

		calc, err := svc.Calculate(nil)

		assert.Nil(t, calc)
		assert.ErrorIs(t, err, domain.ErrMissingIngredient)
	})

	t.Run("empty recipe fails", func(t *testing.T) {
		svc := NewRecipeService(breadDatabase(), RecipeServiceConfig{})

		_, err := svc.Calculate(nil)
		assert.ErrorIs(t, err, domain.ErrEmptyRecipe)
	})
}

func TestRecipeServiceExportImport(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		source := NewRecipeService(breadDatabase(), RecipeServiceConfig{InitialName: "Brioche"})
		_, _ = source.AddIngredient("Flour", 500)
		_, _ = source.AddIngredient("Butter", 250)
		_, _ = source.AddIngredient("Water", 120.5)

		data, err := source.Export()
		require.NoError(t, err)

		target := NewRecipeService(breadDatabase(), RecipeServiceConfig{})
		loaded, err := target.Import(data)

		require.NoError(t, err)
		assert.True(t, source.Recipe().Equal(loaded))
		assert.True(t, source.Recipe().Equal(target.Recipe()))
	})

	t.Run("failed import keeps active recipe", func(t *testing.T) {
		svc := NewRecipeService(breadDatabase(), RecipeServiceConfig{InitialName: "Keep me"})
		_, _ = svc.AddIngredient("Flour", 100)
		before := svc.Recipe()

		_, err := svc.Import([]byte("name: Other\ningredients:\n  Saffron: 1\n"))

		assert.ErrorIs(t, err, domain.ErrUnresolvedIngredients)
		assert.True(t, before.Equal(svc.Recipe()))
	})
}
