package fuzzygen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrabowski5/TaxonomyViewing/internal/testutil"
	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("live horses", "live horses"))
	assert.Equal(t, 0.0, Similarity("", "live horses"))

	near := Similarity("horses and other equines", "horses and other equine production")
	far := Similarity("horses and other equines", "semiconductor manufacturing")
	assert.Greater(t, near, far)
	assert.Greater(t, near, 0.5)
	assert.Less(t, far, 0.3)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "live horses pure bred", normalizeText("  Live horses; (pure-bred) "))
	assert.Equal(t, "fish 0302", normalizeText("Fish & 0302!"))
}

func TestBuildTables(t *testing.T) {
	hs := ttypes.Lookup{
		"010121": {Code: "010121", Description: "Horses and other equines, pure-bred breeding"},
		"030211": {Code: "030211", Description: "Trout, fresh or chilled"},
		"I":      {Code: "I", Description: "Live animals; animal products"}, // skipped
	}
	naics := ttypes.Lookup{
		"112920": {Code: "112920", Description: "Horses and other equine production"},
		"112990": {Code: "112990", Description: "All other animal production"},
		"114111": {Code: "114111", Description: "Finfish fishing, fresh or chilled catch"},
	}
	b := NewBuilder(DefaultOptions(), testutil.NewMockLogger())

	data, err := b.Build(hs, naics)
	require.NoError(t, err)

	// The horse subheading ranks the equine industry first.
	candidates := data.AToB["010121"]
	require.NotEmpty(t, candidates)
	assert.Equal(t, "112920", candidates[0].Code)
	assert.GreaterOrEqual(t, candidates[0].Similarity, DefaultOptions().Floor)

	// Section labels never enter the tables.
	_, ok := data.AToB["I"]
	assert.False(t, ok)

	for _, list := range data.AToB {
		assert.LessOrEqual(t, len(list), DefaultOptions().ForwardCap)
		for i := 1; i < len(list); i++ {
			assert.GreaterOrEqual(t, list[i-1].Similarity, list[i].Similarity)
		}
	}
	for _, list := range data.BToA {
		assert.LessOrEqual(t, len(list), DefaultOptions().BackwardCap)
	}
}

func TestValidNAICSCode(t *testing.T) {
	assert.True(t, ValidNAICSCode("11"))
	assert.True(t, ValidNAICSCode("112920"))
	assert.True(t, ValidNAICSCode("4523"))

	assert.False(t, ValidNAICSCode("99"))      // no such sector
	assert.False(t, ValidNAICSCode("990001"))  // no such sector
	assert.False(t, ValidNAICSCode("1"))       // too short
	assert.False(t, ValidNAICSCode("1129201")) // too long
	assert.False(t, ValidNAICSCode("11A920"))
	assert.False(t, ValidNAICSCode(""))
}

func TestBuildSkipsInvalidNAICSSectors(t *testing.T) {
	hs := ttypes.Lookup{
		"010121": {Code: "010121", Description: "Horses and other equines, pure-bred breeding"},
	}
	naics := ttypes.Lookup{
		"112920": {Code: "112920", Description: "Horses and other equine production"},
		"990001": {Code: "990001", Description: "Horses and other equine production"}, // bad sector
	}
	b := NewBuilder(DefaultOptions(), testutil.NewMockLogger())

	data, err := b.Build(hs, naics)
	require.NoError(t, err)

	_, ok := data.BToA["990001"]
	assert.False(t, ok)
	for _, list := range data.AToB {
		for _, c := range list {
			assert.NotEqual(t, "990001", c.Code)
		}
	}
	require.NotEmpty(t, data.AToB["010121"])
	assert.Equal(t, "112920", data.AToB["010121"][0].Code)
}

func TestBuildRejectsEmptyInput(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)

	_, err := b.Build(nil, ttypes.Lookup{"11": {Code: "11", Description: "x"}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFuzzyInputInvalid))
}
