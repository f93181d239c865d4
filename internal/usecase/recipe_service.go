package usecase

import (
	"log"
	"sync"

	"github.com/macrolens/bakecalc/internal/domain"
	"github.com/macrolens/bakecalc/internal/infrastructure/recipefile"
)

// RecipeServiceConfig holds configuration for the recipe service
type RecipeServiceConfig struct {
	InitialName        string
	EnableDebugLogging bool
}

// Calculation is the nutrient profile of the active recipe per 100g.
// Baked is set only when a baked weight was supplied and accepted.
type Calculation struct {
	RecipeName  string          `json:"recipeName"`
	Ingredients int             `json:"ingredients"`
	TotalWeight float64         `json:"totalWeight"`
	Raw         domain.Profile  `json:"raw"`
	BakedWeight float64         `json:"bakedWeight,omitempty"`
	Factor      float64         `json:"factor,omitempty"`
	Baked       *domain.Profile `json:"baked,omitempty"`
}

// RecipeService owns the single active recipe being edited and computes its
// nutrition against the shared ingredient database.
type RecipeService struct {
	db     domain.IngredientDatabase
	recipe *domain.Recipe
	mutex  sync.Mutex
	debug  bool
}

// NewRecipeService creates a recipe service with an empty active recipe
func NewRecipeService(db domain.IngredientDatabase, config RecipeServiceConfig) *RecipeService {
	return &RecipeService{
		db:     db,
		recipe: domain.NewRecipe(config.InitialName),
		debug:  config.EnableDebugLogging,
	}
}

// Recipe returns a copy of the active recipe
func (s *RecipeService) Recipe() *domain.Recipe {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.recipe.Clone()
}

// SetName renames the active recipe
func (s *RecipeService) SetName(name string) *domain.Recipe {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.recipe.SetName(name)
	return s.recipe.Clone()
}

// AddIngredient sets an ingredient weight in the active recipe
func (s *RecipeService) AddIngredient(name string, weightGrams float64) (*domain.Recipe, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.recipe.AddIngredient(name, weightGrams); err != nil {
		return nil, err
	}
	if s.debug {
		log.Printf("[RECIPE] %q: %s = %.2fg", s.recipe.Name(), name, weightGrams)
	}
	return s.recipe.Clone(), nil
}

// RemoveIngredient drops an ingredient from the active recipe
func (s *RecipeService) RemoveIngredient(name string) *domain.Recipe {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.recipe.RemoveIngredient(name)
	return s.recipe.Clone()
}

// ClearIngredients empties the active recipe
func (s *RecipeService) ClearIngredients() *domain.Recipe {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.recipe.ClearIngredients()
	return s.recipe.Clone()
}

// Calculate aggregates the active recipe to a 100g profile. When bakedWeight is
// given, the weight-loss correction is applied using the recipe's total weight
// as the raw weight. If only the correction fails, the calculation is returned
// together with the error so the uncorrected profile is not lost.
func (s *RecipeService) Calculate(bakedWeight *float64) (*Calculation, error) {
	s.mutex.Lock()
	recipe := s.recipe.Clone()
	s.mutex.Unlock()

	raw, err := Aggregate(recipe, s.db)
	if err != nil {
		return nil, err
	}

	calc := &Calculation{
		RecipeName:  recipe.Name(),
		Ingredients: recipe.Len(),
		TotalWeight: recipe.TotalWeight(),
		Raw:         raw,
	}

	if bakedWeight == nil {
		return calc, nil
	}

	factor, err := WeightLossFactor(calc.TotalWeight, *bakedWeight)
	if err != nil {
		return calc, err
	}
	baked, err := ApplyWeightLossCorrection(raw, calc.TotalWeight, *bakedWeight)
	if err != nil {
		return calc, err
	}
	calc.BakedWeight = *bakedWeight
	calc.Factor = factor
	calc.Baked = &baked

	if s.debug {
		log.Printf("[RECIPE] %q: %.1fg raw, %.1fg baked, factor %.3f", calc.RecipeName, calc.TotalWeight, *bakedWeight, factor)
	}
	return calc, nil
}

// Export serializes the active recipe
func (s *RecipeService) Export() ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return recipefile.Encode(s.recipe)
}

// Import replaces the active recipe with a serialized one. On any error the
// active recipe is left untouched.
func (s *RecipeService) Import(data []byte) (*domain.Recipe, error) {
	recipe, err := recipefile.Decode(data, s.db)
	if err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.recipe = recipe
	log.Printf("[RECIPE] Loaded %q with %d ingredients", recipe.Name(), recipe.Len())
	return recipe.Clone(), nil
}
