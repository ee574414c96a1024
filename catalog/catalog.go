// Package catalog stores catalogued celestial objects and ships an embedded
// bright-star list for mount alignment. The pointing engine only ever sees
// the Source interface, so a host application can substitute its own
// catalogue (NGC files, planetarium databases) without touching the core.
package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/signalsfoundry/altaz-pointing/model"
)

// Source supplies celestial object records to the engine.
type Source interface {
	// Objects returns a snapshot of all records.
	Objects() []model.CelestialObject
	// Lookup returns the record with the given name (case-insensitive).
	Lookup(name string) (model.CelestialObject, bool)
}

// Catalog is an in-memory, thread-safe object store implementing Source.
type Catalog struct {
	mu      sync.RWMutex
	byName  map[string]model.CelestialObject
	ordered []string
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{byName: make(map[string]model.CelestialObject)}
}

// Add inserts a record. It returns an error if the name is empty or already
// present.
func (c *Catalog) Add(obj model.CelestialObject) error {
	if obj.Name == "" {
		return fmt.Errorf("object has no name")
	}
	key := strings.ToLower(obj.Name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byName[key]; exists {
		return fmt.Errorf("object %q already exists", obj.Name)
	}
	c.byName[key] = obj
	c.ordered = append(c.ordered, key)
	return nil
}

// Lookup returns the record with the given name, case-insensitively.
func (c *Catalog) Lookup(name string) (model.CelestialObject, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	obj, ok := c.byName[strings.ToLower(name)]
	return obj, ok
}

// Objects returns a snapshot slice of all records in insertion order.
func (c *Catalog) Objects() []model.CelestialObject {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]model.CelestialObject, 0, len(c.ordered))
	for _, key := range c.ordered {
		res = append(res, c.byName[key])
	}
	return res
}

// Len returns the number of stored records.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ordered)
}
