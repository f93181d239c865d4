package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingIngredient is returned when a recipe references a name absent from the database
	ErrMissingIngredient = errors.New("ingredient not found in database")

	// ErrEmptyRecipe is returned when the recipe has no positive total weight
	// or an ingredient weight is not positive
	ErrEmptyRecipe = errors.New("recipe is empty or has an invalid weight")

	// ErrInvalidBakedWeight is returned when the baked weight is not in (0, raw weight]
	ErrInvalidBakedWeight = errors.New("baked weight must be positive and not exceed the raw weight")

	// ErrUnresolvedIngredients is returned when a loaded recipe references unknown ingredients
	ErrUnresolvedIngredients = errors.New("recipe references unknown ingredients")

	// ErrMalformedInput is returned for non-finite or negative numbers and unparsable data
	ErrMalformedInput = errors.New("malformed input")

	// ErrProductNotFound is returned when the remote product search has no results
	ErrProductNotFound = errors.New("product not found in Open Food Facts")

	// ErrUpstreamFailure is returned when the remote product search fails
	ErrUpstreamFailure = errors.New("Open Food Facts request failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// MissingIngredientError names the ingredient aggregation could not resolve.
type MissingIngredientError struct {
	Name string
}

func (e *MissingIngredientError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingIngredient, e.Name)
}

func (e *MissingIngredientError) Is(target error) bool {
	return target == ErrMissingIngredient
}

// UnresolvedIngredientsError lists every unknown ingredient found while loading a recipe.
type UnresolvedIngredientsError struct {
	Names []string
}

func (e *UnresolvedIngredientsError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, n := range e.Names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return fmt.Sprintf("%s: %s", ErrUnresolvedIngredients, strings.Join(quoted, ", "))
}

func (e *UnresolvedIngredientsError) Is(target error) bool {
	return target == ErrUnresolvedIngredients
}
