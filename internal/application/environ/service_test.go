package environ_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appenviron "github.com/agrabowski5/TaxonomyViewing/internal/application/environ"
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/testutil"
	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

type staticProvider struct {
	snap *taxonomy.Snapshot
}

func (p *staticProvider) Snapshot() *taxonomy.Snapshot { return p.snap }

func newService(snap *taxonomy.Snapshot) appenviron.Service {
	return appenviron.NewService(taxonomy.Default(), &staticProvider{snap: snap}, testutil.NewMockLogger())
}

func TestFactorsForSharedCode(t *testing.T) {
	svc := newService(testutil.NewSnapshot())

	f, err := svc.FactorsFor(context.Background(), ttypes.HS, "010121")
	require.NoError(t, err)
	assert.Equal(t, "010121", f.HS6)
	assert.Equal(t, "01", f.Chapter)
	require.NotNil(t, f.Emission)
	assert.InDelta(t, 1.54, f.Emission.Factor, 1e-9)
	require.NotNil(t, f.Exiobase)
	require.NotNil(t, f.USLCI)
	assert.Equal(t, 3, f.USLCI.ProcessCount)
	require.NotNil(t, f.Ecoinvent)
	assert.Equal(t, []string{"horse, breeding", "horse, live"}, f.Ecoinvent.Products)
	assert.Equal(t, "2:1", f.Ecoinvent.MappingType)
}

func TestEcoinventForCPCSource(t *testing.T) {
	// A CPC code reads the product mapping on the CPC side directly, even
	// though the rest of the overlays go through the shared-family base.
	svc := newService(testutil.NewSnapshot())

	f, err := svc.FactorsFor(context.Background(), ttypes.CPC, "21221")
	require.NoError(t, err)
	require.NotNil(t, f.Ecoinvent)
	assert.Equal(t, []string{"trout, farmed"}, f.Ecoinvent.Products)
	assert.Equal(t, "1:1", f.Ecoinvent.MappingType)
	// Its concordance match 030211 carries no six-digit overlays of its own.
	assert.Equal(t, "030211", f.HS6)
	assert.Nil(t, f.USLCI)
}

func TestFactorsForDottedFamilyCode(t *testing.T) {
	// A ten-digit Canadian tariff item reduces to the same HS-6 base.
	svc := newService(testutil.NewSnapshot())

	f, err := svc.FactorsFor(context.Background(), ttypes.CA, "0101.21.00.00")
	require.NoError(t, err)
	assert.Equal(t, "010121", f.HS6)
	require.NotNil(t, f.Emission)
}

func TestFactorsForHeadingOnlyChapterData(t *testing.T) {
	// A heading resolves the chapter overlay but no six-digit factors.
	svc := newService(testutil.NewSnapshot())

	f, err := svc.FactorsFor(context.Background(), ttypes.HS, "0101")
	require.NoError(t, err)
	assert.Empty(t, f.HS6)
	assert.Equal(t, "01", f.Chapter)
	assert.Nil(t, f.Emission)
	require.NotNil(t, f.Exiobase)
}

func TestEmissionFallsBackToShorterPrefix(t *testing.T) {
	// No factor exists at 030211; the chapter-level entry fills in.
	snap := testutil.NewSnapshot()
	snap.Emission["03"] = ttypes.EmissionFactor{Factor: 2.75, Unit: "kgCO2e/USD"}
	svc := newService(snap)

	f, err := svc.FactorsFor(context.Background(), ttypes.HS, "030211")
	require.NoError(t, err)
	assert.Equal(t, "030211", f.HS6)
	require.NotNil(t, f.Emission)
	assert.InDelta(t, 2.75, f.Emission.Factor, 1e-9)
}

func TestFactorsForNonFamilySource(t *testing.T) {
	// A NAICS code reaches the overlays through its fuzzy representative.
	svc := newService(testutil.NewSnapshot())

	f, err := svc.FactorsFor(context.Background(), ttypes.NAICS, "112920")
	require.NoError(t, err)
	assert.Equal(t, "010121", f.HS6)
	require.NotNil(t, f.Emission)
}

func TestFactorsForSectionLabel(t *testing.T) {
	svc := newService(testutil.NewSnapshot())

	f, err := svc.FactorsFor(context.Background(), ttypes.HS, "XVI")
	require.NoError(t, err)
	assert.Empty(t, f.HS6)
	assert.Nil(t, f.Emission)
	assert.Nil(t, f.Exiobase)
}

func TestFactorsForValidation(t *testing.T) {
	svc := newService(testutil.NewSnapshot())

	_, err := svc.FactorsFor(context.Background(), "sitc", "0101")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTaxonomyUnknown))

	_, err = svc.FactorsFor(context.Background(), ttypes.HS, "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}
