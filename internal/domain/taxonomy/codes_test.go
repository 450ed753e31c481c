package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain digits untouched", "010121", "010121"},
		{"dotted groups stripped", "0101.21.00", "01012100"},
		{"heading dots stripped", "01.01", "0101"},
		{"hyphen and slash stripped", "0101-21/00", "01012100"},
		{"spaces stripped", " 0101 21 ", "010121"},
		{"section label kept", "XVI", "XVI"},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("010121"))
	assert.True(t, IsNumeric("0"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("I"))
	assert.False(t, IsNumeric("0101.21"))
	assert.False(t, IsNumeric("0101a"))
}

func TestBaseKey(t *testing.T) {
	reg := Default()
	hs, ok := reg.Get(ttypes.HS)
	require.True(t, ok)
	cn, ok := reg.Get(ttypes.CN)
	require.True(t, ok)
	cpc, ok := reg.Get(ttypes.CPC)
	require.True(t, ok)

	t.Run("six digits pass through", func(t *testing.T) {
		base, ok := BaseKey("010121", hs)
		require.True(t, ok)
		assert.Equal(t, "010121", base)
	})

	t.Run("longer codes truncate to the shared width", func(t *testing.T) {
		base, ok := BaseKey("0101.21.00.10", cn)
		require.True(t, ok)
		assert.Equal(t, "010121", base)
	})

	t.Run("shorter codes stay whole", func(t *testing.T) {
		base, ok := BaseKey("0101", hs)
		require.True(t, ok)
		assert.Equal(t, "0101", base)
	})

	t.Run("section labels are excluded", func(t *testing.T) {
		_, ok := BaseKey("XVI", hs)
		assert.False(t, ok)
	})

	t.Run("non-family taxonomies have no base key", func(t *testing.T) {
		_, ok := BaseKey("02112", cpc)
		assert.False(t, ok)
	})
}

func TestCandidateKeys(t *testing.T) {
	assert.Equal(t, []string{"010121"}, CandidateKeys(FormatPlain, "010121"))
	assert.Equal(t, []string{"01012100"}, CandidateKeys(FormatPadded8, "010121"))
	assert.Equal(t, []string{"0101.21"}, CandidateKeys(FormatDotted, "010121"))
	assert.Equal(t, []string{"0101.21.00"}, CandidateKeys(FormatDottedPadded8, "010121"))
	assert.Equal(t, []string{"01.01"}, CandidateKeys(FormatDottedHeading, "0101"))

	// Formats that cannot express the prefix length yield nothing.
	assert.Nil(t, CandidateKeys(FormatPadded8, "0101"))
	assert.Nil(t, CandidateKeys(FormatDotted, "01"))
	assert.Nil(t, CandidateKeys(FormatDottedHeading, "010121"))
}
