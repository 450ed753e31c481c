package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrabowski5/TaxonomyViewing/internal/domain/mapping"
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/testutil"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

func TestResolveOriginBackboneEntry(t *testing.T) {
	snap := testutil.NewSnapshot()
	reg := taxonomy.Default()
	combined := descriptor(t, reg, ttypes.Combined)

	origin := mapping.ResolveOrigin("hs-010121", "010121", combined, snap.Lookups[ttypes.Combined])
	require.NotNil(t, origin)
	assert.Equal(t, ttypes.HS, origin.Taxonomy)
	assert.Equal(t, "010121", origin.Code)
}

func TestResolveOriginGraftedByNodeID(t *testing.T) {
	snap := testutil.NewSnapshot()
	reg := taxonomy.Default()
	combined := descriptor(t, reg, ttypes.Combined)

	origin := mapping.ResolveOrigin("cpc-97120", "97120", combined, snap.Lookups[ttypes.Combined])
	require.NotNil(t, origin)
	assert.Equal(t, ttypes.CPC, origin.Taxonomy)
	assert.Equal(t, "97120", origin.Code)
}

func TestResolveOriginGraftedByKeyWithoutNodeID(t *testing.T) {
	// No node identifier supplied; the reserved key prefix alone must
	// classify the entry as grafted.
	snap := testutil.NewSnapshot()
	reg := taxonomy.Default()
	combined := descriptor(t, reg, ttypes.Combined)

	origin := mapping.ResolveOrigin("", "97120", combined, snap.Lookups[ttypes.Combined])
	require.NotNil(t, origin)
	assert.Equal(t, ttypes.CPC, origin.Taxonomy)
	assert.Equal(t, "97120", origin.Code)
}

func TestResolveOriginUnknownCode(t *testing.T) {
	snap := testutil.NewSnapshot()
	reg := taxonomy.Default()
	combined := descriptor(t, reg, ttypes.Combined)

	assert.Nil(t, mapping.ResolveOrigin("", "999999", combined, snap.Lookups[ttypes.Combined]))
	assert.Nil(t, mapping.ResolveOrigin("", "", combined, snap.Lookups[ttypes.Combined]))
}

func TestResolveOriginNonSynthetic(t *testing.T) {
	snap := testutil.NewSnapshot()
	reg := taxonomy.Default()
	hs := descriptor(t, reg, ttypes.HS)

	assert.Nil(t, mapping.ResolveOrigin("hs-010121", "010121", hs, snap.Lookups[ttypes.HS]))
}
