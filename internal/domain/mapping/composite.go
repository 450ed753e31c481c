package mapping

import (
	"strings"

	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// Origin names the real taxonomy a synthetic-taxonomy entry was composed
// from, with the code as written in that origin taxonomy.
type Origin struct {
	Taxonomy ttypes.ID
	Code     string
}

// ResolveOrigin determines where a synthetic-taxonomy entry came from.  A
// grafted secondary-source entry is recognized either by its node identifier
// carrying the secondary node prefix or by its lookup key carrying the
// reserved secondary key prefix; everything else belongs to the primary
// backbone.  Returns nil for non-synthetic descriptors and for codes absent
// from the lookup.
func ResolveOrigin(nodeID, code string, d *taxonomy.Descriptor, lookup ttypes.Lookup) *Origin {
	if d == nil || d.Kind != ttypes.KindSynthetic {
		return nil
	}
	norm := taxonomy.Normalize(code)
	if norm == "" {
		return nil
	}

	if nodeID != "" && strings.HasPrefix(nodeID, d.SecondaryNodePrefix) {
		return secondaryOrigin(norm, code, d, lookup)
	}
	if entry, ok := lookup[d.SecondaryKeyPrefix+norm]; ok {
		return originFromEntry(entry, code, d.Secondary)
	}
	if entry, ok := lookup[norm]; ok {
		origin := entry.Origin
		if origin == "" {
			origin = d.Primary
		}
		return originFromEntry(entry, code, origin)
	}
	return nil
}

func secondaryOrigin(norm, code string, d *taxonomy.Descriptor, lookup ttypes.Lookup) *Origin {
	if entry, ok := lookup[d.SecondaryKeyPrefix+norm]; ok {
		return originFromEntry(entry, code, d.Secondary)
	}
	return &Origin{Taxonomy: d.Secondary, Code: code}
}

func originFromEntry(entry ttypes.LookupEntry, fallbackCode string, origin ttypes.ID) *Origin {
	code := entry.OriginalCode
	if code == "" {
		code = fallbackCode
	}
	return &Origin{Taxonomy: origin, Code: code}
}
