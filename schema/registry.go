package schema

import (
	"fmt"
	"sort"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]*Schema)
)

// Register adds a schema to the global name registry, which editor and
// pipeline tooling query by name. Call it from an init function or a
// package var so registration completes before any lookup:
//
//	var MonsterSchema = schema.MustRegister(schema.MustNew[Monster]("Monster", ...))
func Register(s *Schema) error {
	if s == nil {
		return fmt.Errorf("cannot register nil schema")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[s.name]; exists {
		return fmt.Errorf("schema %q already registered", s.name)
	}

	registry[s.name] = s
	return nil
}

// MustRegister registers s and returns it, panicking on a duplicate
// name.
func MustRegister(s *Schema) *Schema {
	if err := Register(s); err != nil {
		panic(err)
	}
	return s
}

// Lookup looks up a schema by name.
func Lookup(name string) *Schema {
	mu.RLock()
	defer mu.RUnlock()
	s := registry[name]
	return s
}

// All returns all registered schemas, sorted by name.
func All() []*Schema {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]*Schema, 0, len(registry))
	for _, s := range registry {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].name < result[j].name
	})
	return result
}
