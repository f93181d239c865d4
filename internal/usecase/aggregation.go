package usecase

import (
	"fmt"
	"math"

	"github.com/macrolens/bakecalc/internal/domain"
)

// resolvedIngredient is one recipe line with its per-100g profile looked up
type resolvedIngredient struct {
	name    string
	weight  float64
	profile domain.Profile
}

// Aggregate combines the recipe's ingredients into a profile for 100g of the mixture.
//
// Every ingredient must resolve in db; the first unknown name aborts with a
// *domain.MissingIngredientError and no partial profile. All profiles are read
// in one db.LookupAll call so the result reflects a single database state. The
// weighted sum is computed first and scaled to 100g afterwards. Neither input
// is modified.
func Aggregate(recipe *domain.Recipe, db domain.IngredientDatabase) (domain.Profile, error) {
	if recipe == nil {
		return domain.Profile{}, domain.ErrEmptyRecipe
	}

	resolved, err := resolveIngredients(recipe, db)
	if err != nil {
		return domain.Profile{}, err
	}

	totalWeight := 0.0
	for _, ing := range resolved {
		totalWeight += ing.weight
	}
	if math.IsInf(totalWeight, 0) {
		return domain.Profile{}, fmt.Errorf("%w: total weight overflows", domain.ErrMalformedInput)
	}
	if !(totalWeight > 0) {
		return domain.Profile{}, domain.ErrEmptyRecipe
	}
	for _, ing := range resolved {
		if !(ing.weight > 0) {
			return domain.Profile{}, fmt.Errorf("%w: %q weighs %v g", domain.ErrEmptyRecipe, ing.name, ing.weight)
		}
	}

	var raw [domain.NutrientCount]float64
	for _, ing := range resolved {
		ing.profile.Each(func(n domain.Nutrient, v float64) {
			raw[n] += v * (ing.weight / 100.0)
		})
	}

	scale := 100.0 / totalWeight
	if math.IsInf(scale, 0) {
		return domain.Profile{}, fmt.Errorf("%w: total weight %v g is too small", domain.ErrMalformedInput, totalWeight)
	}

	var normalized domain.Profile
	for i, v := range raw {
		if err := normalized.Set(domain.Nutrient(i), v*scale); err != nil {
			return domain.Profile{}, err
		}
	}
	return normalized, nil
}

func resolveIngredients(recipe *domain.Recipe, db domain.IngredientDatabase) ([]resolvedIngredient, error) {
	names := recipe.IngredientNames()
	profiles, err := db.LookupAll(names)
	if err != nil {
		return nil, err
	}

	resolved := make([]resolvedIngredient, 0, len(names))
	for i, name := range names {
		weight, _ := recipe.Weight(name)
		resolved = append(resolved, resolvedIngredient{
			name:    name,
			weight:  weight,
			profile: profiles[i],
		})
	}
	return resolved, nil
}

// ApplyWeightLossCorrection concentrates a per-100g profile to account for mass
// lost while baking. The factor rawWeight/bakedWeight is applied to every nutrient
// alike, including ones baking does not actually concentrate.
//
// bakedWeight must be in (0, rawWeight]; otherwise domain.ErrInvalidBakedWeight is
// returned. The input profile is never modified.
func ApplyWeightLossCorrection(profile domain.Profile, rawWeight, bakedWeight float64) (domain.Profile, error) {
	factor, err := WeightLossFactor(rawWeight, bakedWeight)
	if err != nil {
		return domain.Profile{}, err
	}
	corrected, err := profile.Scale(factor)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %v", domain.ErrInvalidBakedWeight, err)
	}
	return corrected, nil
}

// WeightLossFactor returns rawWeight/bakedWeight after validating both weights.
func WeightLossFactor(rawWeight, bakedWeight float64) (float64, error) {
	if math.IsNaN(rawWeight) || math.IsInf(rawWeight, 0) || math.IsNaN(bakedWeight) || math.IsInf(bakedWeight, 0) {
		return 0, fmt.Errorf("%w: weights must be finite", domain.ErrInvalidBakedWeight)
	}
	if bakedWeight <= 0 || bakedWeight > rawWeight {
		return 0, fmt.Errorf("%w: baked %v g, raw %v g", domain.ErrInvalidBakedWeight, bakedWeight, rawWeight)
	}
	factor := rawWeight / bakedWeight
	if math.IsInf(factor, 0) {
		return 0, fmt.Errorf("%w: raw %v g over baked %v g overflows", domain.ErrInvalidBakedWeight, rawWeight, bakedWeight)
	}
	return factor, nil
}
