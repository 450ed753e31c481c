package testutil

import (
	"time"

	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// NewSnapshot builds a small in-memory dataset exercising every resolution
// strategy: a shared-family slice around live horses (chapter 01) and fish
// (chapter 03), a curated concordance into CPC with exact, partial and
// dangling entries, a fuzzy table into NAICS, and a combined taxonomy with
// an HS backbone plus grafted CPC entries.
func NewSnapshot() *taxonomy.Snapshot {
	return &taxonomy.Snapshot{
		Lookups: map[ttypes.ID]ttypes.Lookup{
			ttypes.HS: {
				"01":     {Code: "01", Description: "Live animals", Level: 1, Type: "chapter"},
				"0101":   {Code: "0101", Description: "Live horses, asses, mules and hinnies", Level: 2, Type: "heading"},
				"010121": {Code: "010121", Description: "Pure-bred breeding horses", Level: 3, Type: "subheading"},
				"010129": {Code: "010129", Description: "Horses, other than pure-bred", Level: 3, Type: "subheading"},
				"03":     {Code: "03", Description: "Fish and crustaceans", Level: 1, Type: "chapter"},
				"0302":   {Code: "0302", Description: "Fish, fresh or chilled", Level: 2, Type: "heading"},
				"030211": {Code: "030211", Description: "Trout, fresh or chilled", Level: 3, Type: "subheading"},
			},
			// CN stores its leaf level at eight digits; the six-digit
			// subheading for pure-bred horses is deliberately absent so the
			// padded fallback is exercised.
			ttypes.CN: {
				"01":       {Code: "01", Description: "Live animals", Level: 1, Type: "chapter"},
				"0101":     {Code: "0101", Description: "Live horses, asses, mules and hinnies", Level: 2, Type: "heading"},
				"01012100": {Code: "01012100", Description: "Pure-bred breeding horses", Level: 4, Type: "subdivision"},
				"010129":   {Code: "010129", Description: "Horses, other than pure-bred", Level: 3, Type: "subheading"},
			},
			// HTS keys its rate lines with dotted syntax only.
			ttypes.HTS: {
				"0101":       {Code: "0101", Description: "Live horses, asses, mules and hinnies", Level: 2, Type: "heading"},
				"0101.21.00": {Code: "0101.21.00", Description: "Purebred breeding horses", Level: 4, Type: "rate line"},
				"0302.11":    {Code: "0302.11", Description: "Trout", Level: 3, Type: "subheading"},
			},
			// CA keys headings in the two-dot "01.01" syntax.
			ttypes.CA: {
				"01.01":      {Code: "01.01", Description: "Live horses, asses, mules and hinnies", Level: 2, Type: "heading"},
				"0101.21.00": {Code: "0101.21.00", Description: "Pure-bred breeding animals", Level: 4, Type: "tariff item"},
			},
			ttypes.CPC: {
				"02112": {Code: "02112", Description: "Horses and other equines, pure-bred breeding", Level: 5, Type: "subclass"},
				"02113": {Code: "02113", Description: "Horses and other equines, other", Level: 5, Type: "subclass"},
				"02119": {Code: "02119", Description: "Other live animals n.e.c.", Level: 5, Type: "subclass"},
				"21221": {Code: "21221", Description: "Fish fillets, fresh or chilled", Level: 5, Type: "subclass"},
				"97120": {Code: "97120", Description: "Dry-cleaning services", Level: 5, Type: "subclass"},
			},
			ttypes.NAICS: {
				"112920": {Code: "112920", Description: "Horses and other equine production", Level: 4, Type: "national industry"},
				"112990": {Code: "112990", Description: "All other animal production", Level: 4, Type: "national industry"},
			},
			ttypes.Combined: {
				"01":       {Code: "01", Description: "Live animals", Level: 1, Type: "chapter"},
				"0101":     {Code: "0101", Description: "Live horses, asses, mules and hinnies", Level: 2, Type: "heading"},
				"010121":   {Code: "010121", Description: "Pure-bred breeding horses", Level: 3, Type: "subheading"},
				"01012900": {Code: "01012900", Description: "Horses, other than pure-bred", Level: 4, Type: "subdivision"},
				"cpc:21221": {
					Code: "21221", Description: "Fish fillets, fresh or chilled",
					Type: "subclass", Origin: ttypes.CPC, OriginalCode: "21221",
				},
				"cpc:97120": {
					Code: "97120", Description: "Dry-cleaning services",
					Type: "subclass", Origin: ttypes.CPC, OriginalCode: "97120",
				},
			},
		},
		Trees: map[ttypes.ID]*taxonomy.Index{
			ttypes.HS: taxonomy.NewIndex([]*ttypes.Node{
				node("hs-section-I", "I", "Live animals; animal products", "section",
					node("hs-01", "01", "Live animals", "chapter",
						node("hs-0101", "0101", "Live horses, asses, mules and hinnies", "heading",
							node("hs-010121", "010121", "Pure-bred breeding horses", "subheading"),
							node("hs-010129", "010129", "Horses, other than pure-bred", "subheading")))),
			}),
			ttypes.CN: taxonomy.NewIndex([]*ttypes.Node{
				node("cn-section-I", "I", "Live animals; animal products", "section",
					node("cn-01", "01", "Live animals", "chapter",
						node("cn-0101", "0101", "Live horses, asses, mules and hinnies", "heading",
							node("cn-01012100", "01012100", "Pure-bred breeding horses", "subdivision")))),
			}),
			ttypes.NAICS: taxonomy.NewIndex([]*ttypes.Node{
				node("naics-11", "11", "Agriculture, forestry, fishing and hunting", "sector",
					node("naics-1129", "1129", "Other animal production", "industry group",
						node("naics-112920", "112920", "Horses and other equine production", "national industry"))),
			}),
			ttypes.Combined: taxonomy.NewIndex([]*ttypes.Node{
				node("hs-section-I", "I", "Live animals; animal products", "section",
					node("hs-01", "01", "Live animals", "chapter",
						node("hs-0101", "0101", "Live horses, asses, mules and hinnies", "heading",
							node("hs-010121", "010121", "Pure-bred breeding horses", "subheading")))),
				node("cpc-971", "971", "Washing, cleaning and dyeing services", "group",
					node("cpc-97120", "97120", "Dry-cleaning services", "subclass")),
			}),
		},
		Concordance: ttypes.ConcordanceData{
			Forward: map[string][]ttypes.ConcordanceEntry{
				"010121": {{Code: "02112"}},
				// Curation order lists a partial entry first; resolution must
				// still prefer the exact one.
				"010129": {
					{Code: "02119", SourcePartial: true},
					{Code: "02113"},
				},
				"0302": {{Code: "21221", TargetPartial: true}},
				// Dangling: no such CPC code exists.
				"0303": {{Code: "99999"}},
			},
			Backward: map[string][]ttypes.ConcordanceEntry{
				"02112": {{Code: "010121"}},
				"02113": {{Code: "010129"}},
				"21221": {{Code: "030211", TargetPartial: true}},
			},
			Cardinality: map[string]ttypes.CardinalityInfo{
				"010121": {Count: 1, Kind: "1:1"},
				"010129": {Count: 2, Kind: "1:N"},
				"0302":   {Count: 1, Kind: "1:1"},
			},
		},
		Fuzzy: ttypes.FuzzyData{
			AToB: map[string][]ttypes.FuzzyCandidate{
				"010121": {
					{Code: "112920", Similarity: 0.82},
					{Code: "112990", Similarity: 0.45},
				},
				"0101": {{Code: "112920", Similarity: 0.6}},
				// First candidate dangles; consumers must skip it.
				"010129": {
					{Code: "999999", Similarity: 0.9},
					{Code: "112990", Similarity: 0.5},
				},
			},
			BToA: map[string][]ttypes.FuzzyCandidate{
				"112920": {{Code: "010121", Similarity: 0.82}},
			},
		},
		Emission: map[string]ttypes.EmissionFactor{
			"010121": {
				Factor: 1.54, Unit: "kg CO2e/2022 USD",
				NAICSCode: "112920", NAICSDescription: "Horses and other equine production",
				FactorWithoutMargins: 1.31, Margins: 0.23, Source: "EPA",
			},
		},
		Exiobase: map[string]ttypes.ExiobaseFactor{
			"01": {Factor: 2.1, Unit: "kg CO2e/EUR", Sectors: []string{"Cattle farming"}, Source: "Exiobase"},
		},
		USLCI: map[string]ttypes.USLCICoverage{
			"010121": {NAICSCodes: []string{"112920"}, ProcessCount: 3},
		},
		Ecoinvent: ttypes.EcoinventData{
			CPC: map[string]ttypes.EcoinventEntry{
				"21221": {Products: []string{"trout, farmed"}, Count: 1, MappingType: "1:1"},
			},
			HS: map[string]ttypes.EcoinventEntry{
				"010121": {Products: []string{"horse, breeding", "horse, live"}, Count: 2, MappingType: "2:1"},
			},
		},
		LoadedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func node(id, code, name, typ string, children ...*ttypes.Node) *ttypes.Node {
	return &ttypes.Node{ID: id, Code: code, Name: name, Type: typ, Children: children}
}
