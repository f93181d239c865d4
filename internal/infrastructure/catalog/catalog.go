package catalog

import (
	"sort"
	"sync"

	"github.com/macrolens/bakecalc/internal/domain"
)

// Catalog is an in-memory ingredient database keyed by exact, case-sensitive name.
// Listing is sorted by name so it is stable across calls.
type Catalog struct {
	entries map[string]domain.Profile
	mutex   sync.RWMutex
}

var _ domain.IngredientDatabase = (*Catalog)(nil)

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		entries: make(map[string]domain.Profile),
	}
}

// NewDefault creates a catalog seeded with the built-in reference ingredients
func NewDefault() *Catalog {
	c := New()
	for _, entry := range Builtin() {
		c.entries[entry.Name] = entry.Profile
	}
	return c
}

// Lookup returns the profile stored under name
func (c *Catalog) Lookup(name string) (domain.Profile, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	p, ok := c.entries[name]
	return p, ok
}

// LookupAll resolves names under a single read lock, so a concurrent
// InsertOrReplace is seen either entirely or not at all.
func (c *Catalog) LookupAll(names []string) ([]domain.Profile, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	profiles := make([]domain.Profile, 0, len(names))
	for _, name := range names {
		p, ok := c.entries[name]
		if !ok {
			return nil, &domain.MissingIngredientError{Name: name}
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// ListNames returns the known ingredient names in sorted order
func (c *Catalog) ListNames() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InsertOrReplace stores profile under name, discarding any previous profile
func (c *Catalog) InsertOrReplace(name string, profile domain.Profile) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[name] = profile
}

// Remove deletes an ingredient; unknown names are a no-op
func (c *Catalog) Remove(name string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, name)
}

// Size returns the number of ingredients
func (c *Catalog) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}
