package persona

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickIsDeterministicForFixedSeed(t *testing.T) {
	store := NewMemoryStore(Seed())

	first := store.Pick(rand.New(rand.NewSource(7)))
	second := store.Pick(rand.New(rand.NewSource(7)))

	assert.Equal(t, first, second)
}

func TestPickCoversCatalog(t *testing.T) {
	store := NewMemoryStore(Seed())
	r := rand.New(rand.NewSource(1))

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		seen[store.Pick(r).Name] = true
	}

	assert.Len(t, seen, len(Seed()), "uniform draw should reach every persona")
}

func TestListReturnsCopy(t *testing.T) {
	store := NewMemoryStore(Seed())

	list := store.List()
	list[0].Name = "mutated"

	assert.NotEqual(t, "mutated", store.List()[0].Name)
}
