// Package taxonomy holds the immutable value objects of the resolution
// engine: the taxonomy registry (which classification systems exist and how
// each one participates in cross-system resolution), code normalization and
// base-key extraction, per-taxonomy tree indexes, and the dataset snapshot
// the resolvers operate on.
//
// Everything in this package is a pure function of its inputs.  Nothing here
// performs I/O, and no structure is mutated after construction.
package taxonomy

import (
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// SharedDigitWidth is the number of leading digits the shared-numbering
// family agrees on.  Base keys never exceed this width.
const SharedDigitWidth = 6

// KeyFormat enumerates the lookup-key syntaxes a taxonomy uses for its codes.
// The prefix matcher tries a target's formats in declared order, so each
// descriptor lists the exact normalized key first and fallback syntaxes after.
type KeyFormat int

const (
	// FormatPlain is the normalized digit string itself ("010121", "0101", "01").
	FormatPlain KeyFormat = iota

	// FormatPadded8 extends a six-digit base with a trailing "00" group for
	// taxonomies whose leaf level adds an extra subdivision ("01012100").
	FormatPadded8

	// FormatDotted joins digit groups with the 4.2.2 dot syntax:
	// "0101.21" for six digits.
	FormatDotted

	// FormatDottedPadded8 pads a six-digit base to eight digits and dots it:
	// "0101.21.00".
	FormatDottedPadded8

	// FormatDottedHeading renders four-digit headings as "01.01"
	// (Canadian Customs Tariff heading syntax).
	FormatDottedHeading
)

// Descriptor declares how one taxonomy participates in resolution.  The
// orchestrator never branches on taxonomy identifiers directly; every
// per-taxonomy difference is expressed through descriptor fields.
type Descriptor struct {
	ID   ttypes.ID
	Name string
	Kind ttypes.Kind

	// NodeIDPrefix builds tree node identifiers from normalized codes
	// ("hs-" + "010121" → "hs-010121").
	NodeIDPrefix string

	// SectionIDPrefix builds identifiers for non-numeric section roots
	// ("hs-section-" + "I").
	SectionIDPrefix string

	// KeyFormats lists the lookup-key syntaxes for shared-family members and
	// synthetic taxonomies, in match priority order.
	KeyFormats []KeyFormat

	// Synthetic composition; set only when Kind == KindSynthetic.
	Primary             ttypes.ID
	Secondary           ttypes.ID
	SecondaryKeyPrefix  string // reserved lookup-key prefix for grafted entries ("cpc:")
	SecondaryNodePrefix string // node-id prefix marking grafted nodes ("cpc-")
}

// NodeID builds the descriptor's tree node identifier for a code.
func (d *Descriptor) NodeID(code string) string {
	return d.NodeIDPrefix + Normalize(code)
}

// SharedFamily reports whether the taxonomy is a member of the
// shared-numbering family.
func (d *Descriptor) SharedFamily() bool {
	return d.Kind == ttypes.KindShared
}

// Registry is the strategy table driving the orchestrator: one Descriptor
// per taxonomy, plus the fixed evaluation order that keeps MapAll output
// deterministic across calls.
type Registry struct {
	order []ttypes.ID
	byID  map[ttypes.ID]*Descriptor
}

// NewRegistry builds a Registry from descriptors.  The declaration order of
// the arguments becomes the target evaluation order.
func NewRegistry(descriptors ...*Descriptor) *Registry {
	r := &Registry{byID: make(map[ttypes.ID]*Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if _, dup := r.byID[d.ID]; dup {
			continue
		}
		r.order = append(r.order, d.ID)
		r.byID[d.ID] = d
	}
	return r
}

// Get returns the descriptor for id.
func (r *Registry) Get(id ttypes.ID) (*Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Order returns the fixed target evaluation order.  Callers must not mutate
// the returned slice.
func (r *Registry) Order() []ttypes.ID {
	return r.order
}

// Anchor returns the shared-family member whose codes key the concordance and
// fuzzy tables: the first shared taxonomy in declaration order.
func (r *Registry) Anchor() *Descriptor {
	for _, id := range r.order {
		if d := r.byID[id]; d.SharedFamily() {
			return d
		}
	}
	return nil
}

// Default returns the registry of the seven shipped taxonomies.
//
// HS anchors the shared family; CN adds one eight-digit subdivision level;
// HTS and CA use dotted code syntax with eight- and ten-digit leaves.  CPC is
// reachable only through the curated concordance, NAICS only through the
// precomputed fuzzy table.  The synthetic "combined" taxonomy grafts CPC
// subtrees onto an HS backbone, marking grafted entries with the reserved
// "cpc:" lookup prefix and "cpc-" node-id prefix.
func Default() *Registry {
	return NewRegistry(
		&Descriptor{
			ID:              ttypes.HS,
			Name:            "Harmonized System",
			Kind:            ttypes.KindShared,
			NodeIDPrefix:    "hs-",
			SectionIDPrefix: "hs-section-",
			KeyFormats:      []KeyFormat{FormatPlain},
		},
		&Descriptor{
			ID:              ttypes.CN,
			Name:            "EU Combined Nomenclature",
			Kind:            ttypes.KindShared,
			NodeIDPrefix:    "cn-",
			SectionIDPrefix: "cn-section-",
			KeyFormats:      []KeyFormat{FormatPlain, FormatPadded8},
		},
		&Descriptor{
			ID:              ttypes.HTS,
			Name:            "US Harmonized Tariff Schedule",
			Kind:            ttypes.KindShared,
			NodeIDPrefix:    "hts-",
			SectionIDPrefix: "hts-section-",
			KeyFormats:      []KeyFormat{FormatPlain, FormatDottedPadded8, FormatDotted},
		},
		&Descriptor{
			ID:              ttypes.CA,
			Name:            "Canadian Customs Tariff",
			Kind:            ttypes.KindShared,
			NodeIDPrefix:    "ca-",
			SectionIDPrefix: "ca-section-",
			KeyFormats:      []KeyFormat{FormatPlain, FormatDottedPadded8, FormatDotted, FormatDottedHeading},
		},
		&Descriptor{
			ID:           ttypes.CPC,
			Name:         "Central Product Classification",
			Kind:         ttypes.KindConcordance,
			NodeIDPrefix: "cpc-",
		},
		&Descriptor{
			ID:           ttypes.NAICS,
			Name:         "North American Industry Classification System",
			Kind:         ttypes.KindFuzzy,
			NodeIDPrefix: "naics-",
		},
		&Descriptor{
			ID:                  ttypes.Combined,
			Name:                "Combined Goods and Services",
			Kind:                ttypes.KindSynthetic,
			NodeIDPrefix:        "hs-",
			KeyFormats:          []KeyFormat{FormatPlain, FormatPadded8},
			Primary:             ttypes.HS,
			Secondary:           ttypes.CPC,
			SecondaryKeyPrefix:  "cpc:",
			SecondaryNodePrefix: "cpc-",
		},
	)
}
