// Package recipefile reads and writes recipes as YAML documents:
//
//	name: Sourdough loaf
//	ingredients:
//	  Flour: 500
//	  Water: 350
//	  Salt: 10
package recipefile

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/macrolens/bakecalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// document is the on-disk shape. Ingredients stay a node so key order,
// null weights and non-numeric weights can be checked individually.
type document struct {
	Name        *string   `yaml:"name"`
	Ingredients yaml.Node `yaml:"ingredients"`
}

// Encode serializes the recipe name and every ingredient weight, in recipe order.
func Encode(recipe *domain.Recipe) ([]byte, error) {
	if recipe == nil {
		return nil, fmt.Errorf("%w: recipe is nil", domain.ErrInvalidRequest)
	}

	ingredients := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range recipe.IngredientNames() {
		weight, _ := recipe.Weight(name)
		key := &yaml.Node{}
		if err := key.Encode(name); err != nil {
			return nil, fmt.Errorf("failed to encode ingredient name: %w", err)
		}
		value := &yaml.Node{}
		if err := value.Encode(weight); err != nil {
			return nil, fmt.Errorf("failed to encode weight of %q: %w", name, err)
		}
		ingredients.Content = append(ingredients.Content, key, value)
	}

	name := recipe.Name()
	doc := document{Name: &name, Ingredients: *ingredients}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode recipe: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode recipe: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a recipe and checks every ingredient against db.
//
// Absent, non-numeric, non-finite and negative weights are domain.ErrMalformedInput.
// If any ingredient is unknown to db, a *domain.UnresolvedIngredientsError naming
// all of them is returned and no recipe is produced.
func Decode(data []byte, db domain.IngredientDatabase) (*domain.Recipe, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	if doc.Name == nil {
		return nil, fmt.Errorf("%w: recipe has no name", domain.ErrMalformedInput)
	}

	recipe := domain.NewRecipe(*doc.Name)
	if err := decodeIngredients(&doc.Ingredients, recipe); err != nil {
		return nil, err
	}

	if err := validateIngredients(recipe, db); err != nil {
		return nil, err
	}
	return recipe, nil
}

func decodeIngredients(node *yaml.Node, recipe *domain.Recipe) error {
	switch {
	case node.Kind == 0, node.ShortTag() == "!!null":
		return fmt.Errorf("%w: recipe has no ingredients section", domain.ErrMalformedInput)
	case node.Kind != yaml.MappingNode:
		return fmt.Errorf("%w: ingredients must be a mapping (line %d)", domain.ErrMalformedInput, node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var name string
		if err := keyNode.Decode(&name); err != nil {
			return fmt.Errorf("%w: ingredient name on line %d: %v", domain.ErrMalformedInput, keyNode.Line, err)
		}
		if _, exists := recipe.Weight(name); exists {
			return fmt.Errorf("%w: ingredient %q listed twice", domain.ErrMalformedInput, name)
		}
		if valueNode.ShortTag() == "!!null" {
			return fmt.Errorf("%w: ingredient %q has no weight", domain.ErrMalformedInput, name)
		}

		var weight float64
		if err := valueNode.Decode(&weight); err != nil {
			return fmt.Errorf("%w: weight of %q on line %d: %v", domain.ErrMalformedInput, name, valueNode.Line, err)
		}
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return fmt.Errorf("%w: weight of %q is not finite", domain.ErrMalformedInput, name)
		}
		if err := recipe.AddIngredient(name, weight); err != nil {
			return err
		}
	}
	return nil
}

func validateIngredients(recipe *domain.Recipe, db domain.IngredientDatabase) error {
	known := make(map[string]struct{})
	for _, name := range db.ListNames() {
		known[name] = struct{}{}
	}

	var missing []string
	for _, name := range recipe.IngredientNames() {
		if _, ok := known[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &domain.UnresolvedIngredientsError{Names: missing}
	}
	return nil
}
