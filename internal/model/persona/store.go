package persona

import "math/rand"

// Store exposes persona retrieval for the simulator and HTTP handlers.
type Store interface {
	List() []Persona
	Pick(r *rand.Rand) Persona
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Persona
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied personas.
func NewMemoryStore(items []Persona) *MemoryStore {
	return &MemoryStore{items: append([]Persona(nil), items...)}
}

// List returns the predefined persona list.
func (s *MemoryStore) List() []Persona {
	return append([]Persona(nil), s.items...)
}

// Pick draws one persona uniformly at random, with replacement. The caller
// supplies the randomness source so selection is reproducible in tests.
func (s *MemoryStore) Pick(r *rand.Rand) Persona {
	return s.items[r.Intn(len(s.items))]
}
