package taxonomy

import "strings"

// Normalize reduces a classification code to its bare digit form: dots,
// slashes, hyphens and spaces are stripped, everything else is kept verbatim.
// "0101.21.00" and "01012100" normalize identically.
func Normalize(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		switch r {
		case '.', '/', '-', ' ':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsNumeric reports whether s is non-empty and consists solely of ASCII
// digits.  Section labels ("I", "XVI") and lettered statistical suffixes
// fail this check and are excluded from cross-taxonomy resolution.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// BaseKey extracts the shared-family base key of a code: the first
// SharedDigitWidth digits of its normalized form, or the whole normalized
// form when shorter.  The second return is false when the descriptor is not
// a shared-family member or the normalized code is not purely numeric.
func BaseKey(code string, d *Descriptor) (string, bool) {
	if d == nil || !d.SharedFamily() {
		return "", false
	}
	norm := Normalize(code)
	if !IsNumeric(norm) {
		return "", false
	}
	if len(norm) > SharedDigitWidth {
		norm = norm[:SharedDigitWidth]
	}
	return norm, true
}

// CandidateKeys renders a normalized digit prefix into the lookup keys a
// given format would store it under.  Formats that cannot express the prefix
// length return nil.
func CandidateKeys(f KeyFormat, prefix string) []string {
	switch f {
	case FormatPlain:
		return []string{prefix}
	case FormatPadded8:
		if len(prefix) == 6 {
			return []string{prefix + "00"}
		}
	case FormatDotted:
		if len(prefix) == 6 {
			return []string{prefix[:4] + "." + prefix[4:6]}
		}
	case FormatDottedPadded8:
		if len(prefix) == 6 {
			return []string{prefix[:4] + "." + prefix[4:6] + ".00"}
		}
	case FormatDottedHeading:
		if len(prefix) == 4 {
			return []string{prefix[:2] + "." + prefix[2:4]}
		}
	}
	return nil
}
