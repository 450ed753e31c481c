package dataloader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/testutil"
	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

func writeJSON(t *testing.T, dir, name string, v interface{}) {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), raw, 0o644))
}

// writeDataset materializes the in-memory fixture as dataset files.
func writeDataset(t *testing.T, dir string) {
	t.Helper()
	snap := testutil.NewSnapshot()
	for id, lookup := range snap.Lookups {
		writeJSON(t, dir, string(id)+"-lookup.json", lookup)
	}
	for id, tree := range snap.Trees {
		writeJSON(t, dir, string(id)+"-tree.json", tree.Roots())
	}
	writeJSON(t, dir, concordanceFile, snap.Concordance)
	writeJSON(t, dir, fuzzyFile, snap.Fuzzy)
	writeJSON(t, dir, emissionFile, snap.Emission)
	writeJSON(t, dir, exiobaseFile, snap.Exiobase)
	writeJSON(t, dir, uslciFile, snap.USLCI)
	writeJSON(t, dir, ecoinventFile, snap.Ecoinvent)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir)

	loader := NewLoader(dir, taxonomy.Default(), testutil.NewMockLogger())
	snap, err := loader.Load()
	require.NoError(t, err)

	assert.Len(t, snap.Lookups, 7)
	assert.Len(t, snap.Trees, 4)
	assert.False(t, snap.LoadedAt.IsZero())

	entry, ok := snap.Lookups[ttypes.HS]["010121"]
	require.True(t, ok)
	assert.Equal(t, "Pure-bred breeding horses", entry.Description)

	// Grafted entries keep their reserved key.
	grafted, ok := snap.Lookups[ttypes.Combined]["cpc:97120"]
	require.True(t, ok)
	assert.Equal(t, ttypes.CPC, grafted.Origin)

	tree, ok := snap.Tree(ttypes.HS)
	require.True(t, ok)
	assert.Equal(t, []string{"hs-section-I", "hs-01", "hs-0101"}, tree.AncestorPath("hs-010121"))

	require.Contains(t, snap.Emission, "010121")
	require.Contains(t, snap.Exiobase, "01")
	require.Contains(t, snap.Ecoinvent.HS, "010121")
	require.Contains(t, snap.Ecoinvent.CPC, "21221")
}

func TestLoadMissingRequiredFile(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "hs-lookup.json")))

	_, err := NewLoader(dir, taxonomy.Default(), testutil.NewMockLogger()).Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetMissing))
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, concordanceFile), []byte("{nope"), 0o644))

	_, err := NewLoader(dir, taxonomy.Default(), testutil.NewMockLogger()).Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetParse))
}

func TestLoadWithoutOverlays(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, emissionFile)))
	require.NoError(t, os.Remove(filepath.Join(dir, exiobaseFile)))
	require.NoError(t, os.Remove(filepath.Join(dir, uslciFile)))
	require.NoError(t, os.Remove(filepath.Join(dir, ecoinventFile)))

	snap, err := NewLoader(dir, taxonomy.Default(), testutil.NewMockLogger()).Load()
	require.NoError(t, err)
	assert.Empty(t, snap.Emission)
	assert.Empty(t, snap.Exiobase)
	assert.Empty(t, snap.USLCI)
	assert.Empty(t, snap.Ecoinvent.HS)
	assert.Empty(t, snap.Ecoinvent.CPC)
}

func TestValidateCountsDanglingReferences(t *testing.T) {
	loader := NewLoader(t.TempDir(), taxonomy.Default(), testutil.NewMockLogger())
	report := loader.Validate(testutil.NewSnapshot())

	// The fixture deliberately carries one dangling concordance entry
	// ("99999") and one dangling fuzzy candidate ("999999").
	assert.Equal(t, 1, report.DanglingConcordance)
	assert.Equal(t, 1, report.DanglingFuzzy)
	// Interior grouping nodes without lookup entries count as orphans.
	assert.Equal(t, 3, report.OrphanTreeNodes)
	assert.False(t, report.Clean())
}

func TestStoreSwap(t *testing.T) {
	store := NewStore(nil)
	assert.Nil(t, store.Snapshot())

	snap := testutil.NewSnapshot()
	store.Swap(snap)
	assert.Same(t, snap, store.Snapshot())
}
