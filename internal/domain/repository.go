package domain

import (
	"context"
	"time"
)

// IngredientDatabase maps ingredient names to their per-100g nutrient profiles.
// Names are case-sensitive and matched exactly.
type IngredientDatabase interface {
	// Lookup returns the profile for name and false when it is unknown.
	Lookup(name string) (Profile, bool)
	// LookupAll resolves every name against one consistent view of the database,
	// returning profiles in the order of names. The first unknown name yields a
	// *MissingIngredientError.
	LookupAll(names []string) ([]Profile, error)
	// ListNames returns a snapshot of known names in a stable order.
	ListNames() []string
	// InsertOrReplace stores profile under name, discarding any previous entry.
	InsertOrReplace(name string, profile Profile)
	// Remove deletes name; unknown names are ignored.
	Remove(name string)
}

// CacheRepository defines the interface for caching product search results
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]Product, error)
	Set(ctx context.Context, key string, products []Product, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductSearcher defines the interface for the remote product lookup
type ProductSearcher interface {
	SearchProducts(ctx context.Context, query string) ([]Product, error)
}
