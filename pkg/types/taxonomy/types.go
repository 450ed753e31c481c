// Package taxonomy defines the wire-level data types shared by the resolution
// engine, the HTTP interface, and external callers: taxonomy identifiers,
// classification nodes, lookup entries, concordance and fuzzy mapping tables,
// and resolution results.
//
// All instances are immutable after loading; the resolution engine never
// mutates them (see the snapshot lifecycle in internal/infrastructure/dataloader).
package taxonomy

// ID identifies one classification system.
type ID string

// The taxonomies shipped with the service.  HS, CN, HTS and CA form the
// shared-numbering family: their codes agree on the leading six digits.
// CPC relates to the family only through a curated concordance table, NAICS
// only through a precomputed fuzzy mapping, and Combined is a synthetic
// taxonomy grafting CPC subtrees onto an HS backbone.
const (
	HS       ID = "hs"
	CN       ID = "cn"
	HTS      ID = "hts"
	CA       ID = "ca"
	CPC      ID = "cpc"
	NAICS    ID = "naics"
	Combined ID = "combined"
)

func (id ID) String() string { return string(id) }

// Kind classifies how a taxonomy relates to the shared-numbering family and
// therefore which resolution strategy applies to it.
type Kind string

const (
	// KindShared marks a member of the shared-numbering family; resolved by
	// prefix matching on the six-digit base key.
	KindShared Kind = "shared"
	// KindConcordance marks a taxonomy reachable only through a curated
	// many-to-many concordance table.
	KindConcordance Kind = "concordance"
	// KindFuzzy marks a taxonomy reachable only through a precomputed
	// text-similarity table.
	KindFuzzy Kind = "fuzzy"
	// KindSynthetic marks a taxonomy assembled from subtrees of two source
	// taxonomies; resolved by recovering each node's origin first.
	KindSynthetic Kind = "synthetic"
)

// Node is one entry of a classification tree.  A nil or absent Children slice
// marks a leaf.  IDs follow per-taxonomy conventions ("hs-0101",
// "cn-01012100", "hs-section-I", ...) which the composite origin resolver
// relies on to infer provenance inside synthetic taxonomies.
type Node struct {
	ID       string  `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Children []*Node `json:"children,omitempty"`
}

// LookupEntry holds the flat per-code metadata for one classification code.
// Origin and OriginalCode are populated only for entries of a synthetic
// taxonomy's grafted subtree, recording which source taxonomy and original
// code produced the entry.
type LookupEntry struct {
	Code         string `json:"code"`
	Description  string `json:"description"`
	Section      string `json:"section,omitempty"`
	SectionName  string `json:"sectionName,omitempty"`
	Level        int    `json:"level"`
	Type         string `json:"type"`
	Origin       ID     `json:"origin,omitempty"`
	OriginalCode string `json:"originalCode,omitempty"`
}

// Lookup is a read-only code table for one taxonomy, keyed by the taxonomy's
// native key format (plain digits for HS/CN, dotted groups for HTS/CA, a
// reserved "cpc:" prefix for the synthetic taxonomy's grafted entries).
type Lookup map[string]LookupEntry

// ConcordanceEntry is one candidate mapping inside a concordance table.  The
// partial flags record that the relationship is a subset match rather than an
// exact equivalence; they must be surfaced to the caller, never silently
// treated as exact.
type ConcordanceEntry struct {
	Code          string `json:"code"`
	SourcePartial bool   `json:"sourcePartial"`
	TargetPartial bool   `json:"targetPartial"`
}

// CardinalityInfo records how many counterpart codes a source code maps to.
type CardinalityInfo struct {
	Count int    `json:"count"`
	Kind  string `json:"kind"` // "1:1" | "1:N"
}

// ConcordanceData is the bidirectional curated mapping between the shared
// family (keyed by six-digit HS base codes) and CPC.
type ConcordanceData struct {
	Forward     map[string][]ConcordanceEntry `json:"hsToCpc"`
	Backward    map[string][]ConcordanceEntry `json:"cpcToHs"`
	Cardinality map[string]CardinalityInfo    `json:"mappingInfo"`
}

// FuzzyCandidate is one precomputed nearest-neighbor candidate.
// Similarity is in [0,1]; tables are built offline with a 0.3 floor.
type FuzzyCandidate struct {
	Code       string  `json:"code"`
	Similarity float64 `json:"similarity"`
}

// FuzzyData holds the precomputed text-similarity tables between the shared
// family (HS base codes) and NAICS.  Candidate lists are already
// similarity-sorted and capped at build time; the engine consumes them as-is.
type FuzzyData struct {
	AToB map[string][]FuzzyCandidate `json:"hsToNaics"`
	BToA map[string][]FuzzyCandidate `json:"naicsToHs"`
}

// Direction selects which side of a bidirectional table is the source.
type Direction string

const (
	// Forward reads shared-family → counterpart (hsToCpc / hsToNaics).
	Forward Direction = "forward"
	// Backward reads counterpart → shared-family (cpcToHs / naicsToHs).
	Backward Direction = "backward"
)

// MatchResult is one resolved counterpart code in a target taxonomy.
type MatchResult struct {
	Taxonomy    ID      `json:"taxonomy"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	NodeID      string  `json:"nodeId"`

	// Fuzzy marks results produced from the precomputed similarity table;
	// the presentation layer must render them visibly distinct and include
	// the similarity percentage.
	Fuzzy      bool    `json:"fuzzy,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`

	// SourcePartial / TargetPartial carry the concordance subset flags.
	SourcePartial bool `json:"sourcePartial,omitempty"`
	TargetPartial bool `json:"targetPartial,omitempty"`

	// Cardinality is the concordance cardinality kind ("1:1" | "1:N") when
	// the result came from the concordance table.
	Cardinality string `json:"cardinality,omitempty"`

	// AncestorPath lists the node IDs from the target tree's root down to the
	// matched node's parent, in expansion order.  The engine produces the
	// path; how and when to apply it is a presentation concern.
	AncestorPath []string `json:"ancestorPath,omitempty"`
}

// Method names the resolver that produced a target's matches.
type Method string

const (
	MethodPrefix      Method = "prefix"
	MethodConcordance Method = "concordance"
	MethodFuzzy       Method = "fuzzy"
	MethodComposite   Method = "composite"
	MethodNone        Method = "none"
)

// TargetResolution groups the matches for one target taxonomy.  An empty
// Matches slice is the expected "no mapping at this level" outcome, distinct
// from any error.
type TargetResolution struct {
	Taxonomy ID            `json:"taxonomy"`
	Method   Method        `json:"method"`
	Matches  []MatchResult `json:"matches"`
}

// Resolution is the full output of a MapAll call.
type Resolution struct {
	Source     ID                 `json:"source"`
	SourceCode string             `json:"sourceCode"`
	Targets    []TargetResolution `json:"targets"`
}

// Provenance ties a builder-authored node back to the taxonomy and code it
// was cloned from.  The engine resolves authored nodes purely through this
// record; it knows nothing about authoring itself.
type Provenance struct {
	SourceTaxonomy ID     `json:"sourceTaxonomy"`
	SourceCode     string `json:"sourceCode"`
}

// EmissionFactor is the EPA supply-chain greenhouse-gas factor attached to an
// HS six-digit code through the HTS→NAICS concordance chain.
type EmissionFactor struct {
	Factor               float64 `json:"factor"`
	Unit                 string  `json:"unit"`
	NAICSCode            string  `json:"naicsCode"`
	NAICSDescription     string  `json:"naicsDescription"`
	FactorWithoutMargins float64 `json:"factorWithoutMargins"`
	Margins              float64 `json:"margins"`
	Source               string  `json:"source"`
}

// ExiobaseFactor is the sector-average emission intensity attached to an HS
// two-digit chapter.
type ExiobaseFactor struct {
	Factor  float64  `json:"factor"`
	Unit    string   `json:"unit"`
	Sectors []string `json:"sectors"`
	Source  string   `json:"source"`
}

// USLCICoverage records which life-cycle-inventory processes cover an HS
// six-digit code.
type USLCICoverage struct {
	NAICSCodes   []string `json:"naicsCodes"`
	ProcessCount int      `json:"processCount"`
}

// EcoinventEntry lists the ecoinvent reference products classified under one
// CPC or HS code.
type EcoinventEntry struct {
	Products    []string `json:"products"`
	Count       int      `json:"count"`
	MappingType string   `json:"mappingType"`
}

// EcoinventData is the product-to-classification mapping extracted from the
// ecoinvent database overview, keyed by CPC code and by HS six-digit code.
type EcoinventData struct {
	CPC map[string]EcoinventEntry `json:"cpc"`
	HS  map[string]EcoinventEntry `json:"hs"`
}
