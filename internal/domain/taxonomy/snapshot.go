package taxonomy

import (
	"time"

	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// Snapshot is the immutable set of datasets a resolution runs against:
// per-taxonomy lookup tables and tree indexes, the curated concordance, the
// precomputed fuzzy table, and the optional environmental overlays.
//
// A Snapshot is built whole by the data loader and swapped in atomically;
// resolvers hold a single snapshot for the duration of one call and never
// see a half-reloaded state.
type Snapshot struct {
	Lookups     map[ttypes.ID]ttypes.Lookup
	Trees       map[ttypes.ID]*Index
	Concordance ttypes.ConcordanceData
	Fuzzy       ttypes.FuzzyData

	Emission  map[string]ttypes.EmissionFactor
	Exiobase  map[string]ttypes.ExiobaseFactor
	USLCI     map[string]ttypes.USLCICoverage
	Ecoinvent ttypes.EcoinventData

	LoadedAt time.Time
}

// Lookup returns the lookup table for a taxonomy.
func (s *Snapshot) Lookup(id ttypes.ID) (ttypes.Lookup, bool) {
	l, ok := s.Lookups[id]
	return l, ok
}

// Tree returns the tree index for a taxonomy.
func (s *Snapshot) Tree(id ttypes.ID) (*Index, bool) {
	ix, ok := s.Trees[id]
	return ix, ok
}
