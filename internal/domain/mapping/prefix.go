// Package mapping implements the cross-taxonomy resolution engine: the four
// resolution strategies (shared-prefix match, curated concordance, precomputed
// fuzzy table, composite-origin redirection) and the orchestrator that applies
// the right strategy per source/target pair.
//
// Absence of a mapping is a normal outcome everywhere in this package:
// resolvers return nil or empty slices, never errors.  The only error the
// orchestrator produces is an unknown source taxonomy, which is a contract
// violation by the caller.
package mapping

import (
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// prefixLengths are the base-key prefix widths the shared-family matcher
// tries, longest first: subheading, heading, chapter.
var prefixLengths = [...]int{6, 4, 2}

// ResolvePrefix resolves a shared-family base key into the closest code of a
// target taxonomy by walking prefixes longest-first and, within each prefix
// length, the target's key formats in priority order.  Returns nil when no
// prefix of any length keys an entry.
func ResolvePrefix(baseKey string, target *taxonomy.Descriptor, lookup ttypes.Lookup) *ttypes.MatchResult {
	if baseKey == "" || target == nil || len(lookup) == 0 {
		return nil
	}
	for _, plen := range prefixLengths {
		if plen > len(baseKey) {
			continue
		}
		prefix := baseKey[:plen]
		for _, format := range target.KeyFormats {
			for _, key := range taxonomy.CandidateKeys(format, prefix) {
				entry, ok := lookup[key]
				if !ok {
					continue
				}
				return &ttypes.MatchResult{
					Taxonomy:    target.ID,
					Code:        entry.Code,
					Description: entry.Description,
					NodeID:      target.NodeID(entry.Code),
				}
			}
		}
	}
	return nil
}
