package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator(t *testing.T) {
	t.Parallel()

	g := NewUUIDGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := g.NewID()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("Expected a valid UUID, got %q: %v", id, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("Duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}
