// Package fuzzygen builds the precomputed text-similarity tables offline.
// The runtime engine never scores descriptions itself; it consumes the
// tables this builder emits.
package fuzzygen

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/logging"
	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// Options tune table construction.
type Options struct {
	// Floor is the minimum similarity a candidate needs to be stored.
	Floor float64
	// ForwardCap limits candidates per shared-family code.
	ForwardCap int
	// BackwardCap limits candidates per counterpart code.
	BackwardCap int
}

// DefaultOptions returns the shipped build parameters.
func DefaultOptions() Options {
	return Options{Floor: 0.3, ForwardCap: 5, BackwardCap: 3}
}

// Builder constructs fuzzy tables from two lookup tables.
type Builder struct {
	opts   Options
	logger logging.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if opts.Floor <= 0 {
		opts.Floor = DefaultOptions().Floor
	}
	if opts.ForwardCap <= 0 {
		opts.ForwardCap = DefaultOptions().ForwardCap
	}
	if opts.BackwardCap <= 0 {
		opts.BackwardCap = DefaultOptions().BackwardCap
	}
	return &Builder{opts: opts, logger: logger.Named("fuzzygen")}
}

// Build scores every description pair between the two lookups and assembles
// both table directions.  Non-numeric codes (section labels) are skipped on
// both sides, and counterpart codes must carry a valid NAICS sector prefix.
// This is quadratic in the table sizes and meant for offline use only.
func (b *Builder) Build(a, counterpart ttypes.Lookup) (*ttypes.FuzzyData, error) {
	if len(a) == 0 || len(counterpart) == 0 {
		return nil, errors.New(errors.ErrCodeFuzzyInputInvalid, "both lookup tables must be non-empty")
	}

	aCodes, aTexts := prepare(a, nil)
	bCodes, bTexts := prepare(counterpart, ValidNAICSCode)
	if len(aCodes) == 0 || len(bCodes) == 0 {
		return nil, errors.New(errors.ErrCodeFuzzyInputInvalid, "no scorable entries in lookup tables")
	}

	data := &ttypes.FuzzyData{
		AToB: make(map[string][]ttypes.FuzzyCandidate, len(aCodes)),
		BToA: make(map[string][]ttypes.FuzzyCandidate, len(bCodes)),
	}
	for i, ac := range aCodes {
		for j, bc := range bCodes {
			score := Similarity(aTexts[i], bTexts[j])
			if score < b.opts.Floor {
				continue
			}
			data.AToB[ac] = append(data.AToB[ac], ttypes.FuzzyCandidate{Code: bc, Similarity: score})
			data.BToA[bc] = append(data.BToA[bc], ttypes.FuzzyCandidate{Code: ac, Similarity: score})
		}
	}

	trim(data.AToB, b.opts.ForwardCap)
	trim(data.BToA, b.opts.BackwardCap)

	b.logger.Info("fuzzy tables built",
		logging.Int("forward_keys", len(data.AToB)),
		logging.Int("backward_keys", len(data.BToA)))
	return data, nil
}

// prepare filters a lookup down to scorable entries in deterministic order.
// accept, when non-nil, additionally gates the normalized code.
func prepare(lookup ttypes.Lookup, accept func(string) bool) (codes []string, texts []string) {
	codes = make([]string, 0, len(lookup))
	for key := range lookup {
		codes = append(codes, key)
	}
	sort.Strings(codes)

	kept := codes[:0]
	for _, key := range codes {
		entry := lookup[key]
		norm := taxonomy.Normalize(entry.Code)
		if !taxonomy.IsNumeric(norm) || entry.Description == "" {
			continue
		}
		if accept != nil && !accept(norm) {
			continue
		}
		kept = append(kept, key)
		texts = append(texts, normalizeText(entry.Description))
	}
	return kept, texts
}

// trim sorts each candidate list by descending similarity (ascending code on
// ties, so output is reproducible) and caps its length.
func trim(table map[string][]ttypes.FuzzyCandidate, limit int) {
	for key, candidates := range table {
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].Similarity != candidates[j].Similarity {
				return candidates[i].Similarity > candidates[j].Similarity
			}
			return candidates[i].Code < candidates[j].Code
		})
		if len(candidates) > limit {
			candidates = candidates[:limit]
		}
		table[key] = candidates
	}
}

// Similarity blends an edit-distance ratio with trigram overlap, both over
// normalized text, into a [0,1] score.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return 0.5*editRatio(a, b) + 0.5*trigramDice(a, b)
}

func editRatio(a, b string) float64 {
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

func trigramDice(a, b string) float64 {
	ta := trigrams(a)
	tb := trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(ta)+len(tb))
}

func trigrams(s string) map[string]struct{} {
	runes := []rune(" " + s + " ")
	grams := make(map[string]struct{})
	for i := 0; i+3 <= len(runes); i++ {
		grams[string(runes[i:i+3])] = struct{}{}
	}
	return grams
}

// normalizeText lowercases and collapses non-alphanumeric runs to single
// spaces so punctuation differences never dominate the score.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
