package mapping

import (
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// minFuzzyKeyLen is the shortest code prefix probed against the precomputed
// fuzzy table.
const minFuzzyKeyLen = 2

// fuzzyTable selects the direction-appropriate side of the fuzzy table.
func fuzzyTable(dir ttypes.Direction, data ttypes.FuzzyData) map[string][]ttypes.FuzzyCandidate {
	if dir == ttypes.Backward {
		return data.BToA
	}
	return data.AToB
}

// ResolveFuzzy resolves a code through the precomputed fuzzy table.  The code
// is shortened two digits at a time until a keyed prefix is found; that
// prefix's candidate list is consumed as stored, in its precomputed ranking,
// with dangling target codes skipped.  Candidates are tagged as fuzzy matches
// carrying their stored similarity.
func ResolveFuzzy(code string, dir ttypes.Direction, data ttypes.FuzzyData, targetLookup ttypes.Lookup, target *taxonomy.Descriptor) []ttypes.MatchResult {
	norm := taxonomy.Normalize(code)
	if !taxonomy.IsNumeric(norm) || target == nil {
		return nil
	}
	table := fuzzyTable(dir, data)
	if len(table) == 0 {
		return nil
	}
	for klen := len(norm); klen >= minFuzzyKeyLen; klen -= 2 {
		candidates, ok := table[norm[:klen]]
		if !ok || len(candidates) == 0 {
			continue
		}
		results := make([]ttypes.MatchResult, 0, len(candidates))
		for _, c := range candidates {
			var desc string
			if targetLookup != nil {
				entry, ok := targetLookup[taxonomy.Normalize(c.Code)]
				if !ok {
					continue
				}
				desc = entry.Description
			}
			results = append(results, ttypes.MatchResult{
				Taxonomy:    target.ID,
				Code:        c.Code,
				Description: desc,
				NodeID:      target.NodeID(c.Code),
				Fuzzy:       true,
				Similarity:  c.Similarity,
			})
		}
		if len(results) > 0 {
			return results
		}
	}
	return nil
}
