package domain

import (
	"fmt"
	"math"
	"strings"
)

// DefaultRecipeName is used when a recipe is created without a name
const DefaultRecipeName = "New recipe"

// Recipe is a named set of ingredient weights in grams.
// Each ingredient appears at most once; adding it again replaces the weight.
type Recipe struct {
	name    string
	weights map[string]float64
	order   []string
}

// NewRecipe creates an empty recipe
func NewRecipe(name string) *Recipe {
	r := &Recipe{weights: make(map[string]float64)}
	r.SetName(name)
	return r
}

// Name returns the display name
func (r *Recipe) Name() string {
	return r.name
}

// SetName renames the recipe. A blank name falls back to DefaultRecipeName.
func (r *Recipe) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultRecipeName
	}
	r.name = name
}

// AddIngredient sets the weight of an ingredient, replacing any earlier weight.
// Zero is accepted here; whether the recipe as a whole is usable is decided at aggregation.
func (r *Recipe) AddIngredient(name string, weightGrams float64) error {
	if name == "" {
		return fmt.Errorf("%w: ingredient name is empty", ErrMalformedInput)
	}
	if math.IsNaN(weightGrams) || math.IsInf(weightGrams, 0) {
		return fmt.Errorf("%w: weight of %q must be finite", ErrMalformedInput, name)
	}
	if weightGrams < 0 {
		return fmt.Errorf("%w: weight of %q must not be negative, got %v", ErrMalformedInput, name, weightGrams)
	}

	if _, exists := r.weights[name]; !exists {
		r.order = append(r.order, name)
	}
	r.weights[name] = weightGrams
	return nil
}

// RemoveIngredient drops an ingredient; unknown names are ignored
func (r *Recipe) RemoveIngredient(name string) {
	if _, exists := r.weights[name]; !exists {
		return
	}
	delete(r.weights, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// ClearIngredients removes every ingredient but keeps the name
func (r *Recipe) ClearIngredients() {
	r.weights = make(map[string]float64)
	r.order = nil
}

// Ingredients returns a copy of the name to weight mapping
func (r *Recipe) Ingredients() map[string]float64 {
	out := make(map[string]float64, len(r.weights))
	for name, w := range r.weights {
		out[name] = w
	}
	return out
}

// IngredientNames returns the ingredient names in the order they were first added
func (r *Recipe) IngredientNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Weight returns the weight of one ingredient
func (r *Recipe) Weight(name string) (float64, bool) {
	w, ok := r.weights[name]
	return w, ok
}

// Len returns the number of ingredients
func (r *Recipe) Len() int {
	return len(r.order)
}

// TotalWeight is the sum of all ingredient weights in grams
func (r *Recipe) TotalWeight() float64 {
	total := 0.0
	for _, name := range r.order {
		total += r.weights[name]
	}
	return total
}

// Clone returns an independent copy of the recipe
func (r *Recipe) Clone() *Recipe {
	out := &Recipe{
		name:    r.name,
		weights: r.Ingredients(),
		order:   r.IngredientNames(),
	}
	return out
}

// Equal reports whether two recipes have the same name and ingredient weights.
// Ingredient order is not compared.
func (r *Recipe) Equal(other *Recipe) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.name != other.name || len(r.weights) != len(other.weights) {
		return false
	}
	for name, w := range r.weights {
		ow, ok := other.weights[name]
		if !ok || ow != w {
			return false
		}
	}
	return true
}
