package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrabowski5/TaxonomyViewing/internal/domain/mapping"
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/testutil"
	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

func newOrchestrator() *mapping.Orchestrator {
	return mapping.NewOrchestrator(taxonomy.Default(), nil)
}

func targetFor(t *testing.T, res *ttypes.Resolution, id ttypes.ID) ttypes.TargetResolution {
	t.Helper()
	for _, tr := range res.Targets {
		if tr.Taxonomy == id {
			return tr
		}
	}
	t.Fatalf("no target resolution for %s", id)
	return ttypes.TargetResolution{}
}

func TestMapAllFromSharedSource(t *testing.T) {
	snap := testutil.NewSnapshot()
	o := newOrchestrator()

	res, err := o.MapAll(snap, ttypes.HS, "010121", "")
	require.NoError(t, err)
	assert.Equal(t, ttypes.HS, res.Source)
	assert.Equal(t, "010121", res.SourceCode)

	// One entry per non-source taxonomy, in registry order.
	wantOrder := []ttypes.ID{ttypes.CN, ttypes.HTS, ttypes.CA, ttypes.CPC, ttypes.NAICS, ttypes.Combined}
	require.Len(t, res.Targets, len(wantOrder))
	for i, id := range wantOrder {
		assert.Equal(t, id, res.Targets[i].Taxonomy)
	}

	cn := targetFor(t, res, ttypes.CN)
	assert.Equal(t, ttypes.MethodPrefix, cn.Method)
	require.Len(t, cn.Matches, 1)
	assert.Equal(t, "01012100", cn.Matches[0].Code)

	hts := targetFor(t, res, ttypes.HTS)
	require.Len(t, hts.Matches, 1)
	assert.Equal(t, "0101.21.00", hts.Matches[0].Code)

	ca := targetFor(t, res, ttypes.CA)
	require.Len(t, ca.Matches, 1)
	assert.Equal(t, "0101.21.00", ca.Matches[0].Code)

	cpc := targetFor(t, res, ttypes.CPC)
	assert.Equal(t, ttypes.MethodConcordance, cpc.Method)
	require.Len(t, cpc.Matches, 1)
	assert.Equal(t, "02112", cpc.Matches[0].Code)

	naics := targetFor(t, res, ttypes.NAICS)
	assert.Equal(t, ttypes.MethodFuzzy, naics.Method)
	require.Len(t, naics.Matches, 2)
	assert.True(t, naics.Matches[0].Fuzzy)

	combined := targetFor(t, res, ttypes.Combined)
	assert.Equal(t, ttypes.MethodComposite, combined.Method)
	require.Len(t, combined.Matches, 1)
	assert.Equal(t, "010121", combined.Matches[0].Code)
}

func TestMapAllExcludesSource(t *testing.T) {
	snap := testutil.NewSnapshot()
	o := newOrchestrator()

	res, err := o.MapAll(snap, ttypes.CN, "01012100", "")
	require.NoError(t, err)
	for _, tr := range res.Targets {
		assert.NotEqual(t, ttypes.CN, tr.Taxonomy)
	}
}

func TestMapAllSectionLabelYieldsEmptyTargets(t *testing.T) {
	snap := testutil.NewSnapshot()
	o := newOrchestrator()

	res, err := o.MapAll(snap, ttypes.HS, "XVI", "")
	require.NoError(t, err)
	require.Len(t, res.Targets, 6)
	for _, tr := range res.Targets {
		assert.Equal(t, ttypes.MethodNone, tr.Method)
		assert.NotNil(t, tr.Matches)
		assert.Empty(t, tr.Matches)
	}
}

func TestMapAllFromConcordanceSource(t *testing.T) {
	snap := testutil.NewSnapshot()
	o := newOrchestrator()

	res, err := o.MapAll(snap, ttypes.CPC, "02112", "")
	require.NoError(t, err)

	hs := targetFor(t, res, ttypes.HS)
	assert.Equal(t, ttypes.MethodPrefix, hs.Method)
	require.Len(t, hs.Matches, 1)
	assert.Equal(t, "010121", hs.Matches[0].Code)

	cn := targetFor(t, res, ttypes.CN)
	require.Len(t, cn.Matches, 1)
	assert.Equal(t, "01012100", cn.Matches[0].Code)

	naics := targetFor(t, res, ttypes.NAICS)
	require.NotEmpty(t, naics.Matches)
	assert.Equal(t, "112920", naics.Matches[0].Code)
}

func TestMapAllFromFuzzySource(t *testing.T) {
	snap := testutil.NewSnapshot()
	o := newOrchestrator()

	res, err := o.MapAll(snap, ttypes.NAICS, "112920", "")
	require.NoError(t, err)

	hs := targetFor(t, res, ttypes.HS)
	require.Len(t, hs.Matches, 1)
	assert.Equal(t, "010121", hs.Matches[0].Code)

	cpc := targetFor(t, res, ttypes.CPC)
	require.Len(t, cpc.Matches, 1)
	assert.Equal(t, "02112", cpc.Matches[0].Code)
}

func TestMapAllSyntheticTargetGrafted(t *testing.T) {
	// 030211 has no backbone entry in the combined taxonomy; the grafted
	// CPC subtree catches it through the concordance.
	snap := testutil.NewSnapshot()
	o := newOrchestrator()

	res, err := o.MapAll(snap, ttypes.HS, "030211", "")
	require.NoError(t, err)

	combined := targetFor(t, res, ttypes.Combined)
	assert.Equal(t, ttypes.MethodComposite, combined.Method)
	require.Len(t, combined.Matches, 1)
	assert.Equal(t, "21221", combined.Matches[0].Code)
	assert.Equal(t, "cpc-21221", combined.Matches[0].NodeID)
}

func TestMapAllFromSyntheticBackbone(t *testing.T) {
	snap := testutil.NewSnapshot()
	o := newOrchestrator()

	res, err := o.MapAll(snap, ttypes.Combined, "010121", "hs-010121")
	require.NoError(t, err)
	assert.Equal(t, ttypes.Combined, res.Source)

	// Matches a plain HS-sourced resolution, with the HS slot standing in
	// for the combined one.
	wantOrder := []ttypes.ID{ttypes.HS, ttypes.CN, ttypes.HTS, ttypes.CA, ttypes.CPC, ttypes.NAICS}
	require.Len(t, res.Targets, len(wantOrder))
	for i, id := range wantOrder {
		assert.Equal(t, id, res.Targets[i].Taxonomy)
	}

	hs := targetFor(t, res, ttypes.HS)
	assert.Equal(t, ttypes.MethodComposite, hs.Method)
	require.Len(t, hs.Matches, 1)
	assert.Equal(t, "010121", hs.Matches[0].Code)
	assert.Equal(t, "Pure-bred breeding horses", hs.Matches[0].Description)

	cpc := targetFor(t, res, ttypes.CPC)
	require.Len(t, cpc.Matches, 1)
	assert.Equal(t, "02112", cpc.Matches[0].Code)
}

func TestMapAllFromSyntheticGrafted(t *testing.T) {
	snap := testutil.NewSnapshot()
	o := newOrchestrator()

	res, err := o.MapAll(snap, ttypes.Combined, "97120", "cpc-97120")
	require.NoError(t, err)

	cpc := targetFor(t, res, ttypes.CPC)
	assert.Equal(t, ttypes.MethodComposite, cpc.Method)
	require.Len(t, cpc.Matches, 1)
	assert.Equal(t, "97120", cpc.Matches[0].Code)
	assert.Equal(t, "Dry-cleaning services", cpc.Matches[0].Description)

	// Dry-cleaning has no goods counterpart anywhere in the shared family.
	for _, id := range []ttypes.ID{ttypes.HS, ttypes.CN, ttypes.HTS, ttypes.CA, ttypes.NAICS} {
		tr := targetFor(t, res, id)
		assert.Empty(t, tr.Matches, "unexpected matches in %s", id)
	}
}

func TestMapAllSyntheticRoundTrip(t *testing.T) {
	// Resolving a combined backbone entry must agree with resolving the
	// same code directly in its origin taxonomy.
	snap := testutil.NewSnapshot()
	o := newOrchestrator()

	fromCombined, err := o.MapAll(snap, ttypes.Combined, "010121", "hs-010121")
	require.NoError(t, err)
	fromHS, err := o.MapAll(snap, ttypes.HS, "010121", "")
	require.NoError(t, err)

	for _, id := range []ttypes.ID{ttypes.CN, ttypes.HTS, ttypes.CA, ttypes.CPC, ttypes.NAICS} {
		assert.Equal(t, targetFor(t, fromHS, id), targetFor(t, fromCombined, id), "target %s diverges", id)
	}
}

func TestMapAllUnknownTaxonomy(t *testing.T) {
	snap := testutil.NewSnapshot()
	o := newOrchestrator()

	res, err := o.MapAll(snap, "sitc", "010121", "")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTaxonomyUnknown))
}

func TestMapAllUnmappedSharedCode(t *testing.T) {
	snap := testutil.NewSnapshot()
	o := newOrchestrator()

	res, err := o.MapAll(snap, ttypes.HS, "970110", "")
	require.NoError(t, err)
	for _, tr := range res.Targets {
		assert.Empty(t, tr.Matches)
	}
}
