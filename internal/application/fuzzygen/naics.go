package fuzzygen

// validNAICSSectors contains all valid 2-digit NAICS sector codes.
var validNAICSSectors = map[string]bool{
	"11": true, // Agriculture, Forestry, Fishing and Hunting
	"21": true, // Mining, Quarrying, and Oil and Gas Extraction
	"22": true, // Utilities
	"23": true, // Construction
	"31": true, // Manufacturing
	"32": true, // Manufacturing
	"33": true, // Manufacturing
	"42": true, // Wholesale Trade
	"44": true, // Retail Trade
	"45": true, // Retail Trade
	"48": true, // Transportation and Warehousing
	"49": true, // Transportation and Warehousing
	"51": true, // Information
	"52": true, // Finance and Insurance
	"53": true, // Real Estate and Rental and Leasing
	"54": true, // Professional, Scientific, and Technical Services
	"55": true, // Management of Companies and Enterprises
	"56": true, // Administrative and Support
	"61": true, // Educational Services
	"62": true, // Health Care and Social Assistance
	"71": true, // Arts, Entertainment, and Recreation
	"72": true, // Accommodation and Food Services
	"81": true, // Other Services (except Public Administration)
	"92": true, // Public Administration
}

// ValidNAICSCode reports whether a normalized code is a plausible NAICS code:
// two to six digits under a recognized sector.  Codes failing this check are
// excluded from table construction so typos in the counterpart lookup never
// become fuzzy candidates.
func ValidNAICSCode(code string) bool {
	if len(code) < 2 || len(code) > 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return validNAICSSectors[code[:2]]
}
