package mapping

import (
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// minConcordanceKeyLen is the shortest code prefix the curated concordance is
// keyed at.  Shorter prefixes carry no curated entries and are not probed.
const minConcordanceKeyLen = 4

// concordanceTable selects the direction-appropriate side of the curated
// concordance.
func concordanceTable(dir ttypes.Direction, data ttypes.ConcordanceData) map[string][]ttypes.ConcordanceEntry {
	if dir == ttypes.Backward {
		return data.Backward
	}
	return data.Forward
}

// ResolveConcordanceAll returns every curated candidate for a code, taken
// from the longest keyed prefix that has entries.  The code is shortened two
// digits at a time down to the minimum key length.  Candidates whose target
// code is absent from targetLookup are skipped as dangling; pass a nil
// targetLookup to skip that validation.  Within the result, exact (non-
// partial) entries precede partial ones and curation order is preserved
// otherwise.
func ResolveConcordanceAll(code string, dir ttypes.Direction, data ttypes.ConcordanceData, targetLookup ttypes.Lookup, target *taxonomy.Descriptor) []ttypes.MatchResult {
	norm := taxonomy.Normalize(code)
	if !taxonomy.IsNumeric(norm) || target == nil {
		return nil
	}
	table := concordanceTable(dir, data)
	if len(table) == 0 {
		return nil
	}
	for klen := len(norm); klen >= minConcordanceKeyLen; klen -= 2 {
		key := norm[:klen]
		entries, ok := table[key]
		if !ok || len(entries) == 0 {
			continue
		}
		results := collectConcordance(key, entries, data, targetLookup, target)
		if len(results) > 0 {
			return results
		}
	}
	return nil
}

// ResolveConcordance returns the single best curated candidate, or nil.
func ResolveConcordance(code string, dir ttypes.Direction, data ttypes.ConcordanceData, targetLookup ttypes.Lookup, target *taxonomy.Descriptor) *ttypes.MatchResult {
	all := ResolveConcordanceAll(code, dir, data, targetLookup, target)
	if len(all) == 0 {
		return nil
	}
	return &all[0]
}

func collectConcordance(key string, entries []ttypes.ConcordanceEntry, data ttypes.ConcordanceData, targetLookup ttypes.Lookup, target *taxonomy.Descriptor) []ttypes.MatchResult {
	exact := make([]ttypes.MatchResult, 0, len(entries))
	var partial []ttypes.MatchResult
	for _, e := range entries {
		var desc string
		if targetLookup != nil {
			entry, ok := targetLookup[taxonomy.Normalize(e.Code)]
			if !ok {
				continue // dangling reference
			}
			desc = entry.Description
		}
		m := ttypes.MatchResult{
			Taxonomy:      target.ID,
			Code:          e.Code,
			Description:   desc,
			NodeID:        target.NodeID(e.Code),
			SourcePartial: e.SourcePartial,
			TargetPartial: e.TargetPartial,
		}
		if info, ok := data.Cardinality[key]; ok {
			m.Cardinality = info.Kind
		}
		if e.SourcePartial || e.TargetPartial {
			partial = append(partial, m)
		} else {
			exact = append(exact, m)
		}
	}
	return append(exact, partial...)
}
