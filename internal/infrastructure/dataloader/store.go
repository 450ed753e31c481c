package dataloader

import (
	"sync/atomic"

	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
)

// Store holds the current snapshot behind an atomic pointer.  Readers always
// see a complete snapshot; reloads swap the whole pointer at once.
type Store struct {
	current atomic.Pointer[taxonomy.Snapshot]
}

// NewStore creates a Store, optionally seeded with an initial snapshot.
func NewStore(initial *taxonomy.Snapshot) *Store {
	s := &Store{}
	if initial != nil {
		s.current.Store(initial)
	}
	return s
}

// Snapshot returns the current snapshot, or nil before the first load.
func (s *Store) Snapshot() *taxonomy.Snapshot {
	return s.current.Load()
}

// Swap replaces the current snapshot.
func (s *Store) Swap(snap *taxonomy.Snapshot) {
	s.current.Store(snap)
}
