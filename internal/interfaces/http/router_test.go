package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbuilder "github.com/agrabowski5/TaxonomyViewing/internal/application/builder"
	appenviron "github.com/agrabowski5/TaxonomyViewing/internal/application/environ"
	appmapping "github.com/agrabowski5/TaxonomyViewing/internal/application/mapping"
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/persistence/sqlite"
	"github.com/agrabowski5/TaxonomyViewing/internal/interfaces/http/handlers"
	"github.com/agrabowski5/TaxonomyViewing/internal/testutil"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

type staticProvider struct {
	snap *taxonomy.Snapshot
}

func (p *staticProvider) Snapshot() *taxonomy.Snapshot { return p.snap }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	registry := taxonomy.Default()
	provider := &staticProvider{snap: testutil.NewSnapshot()}
	logger := testutil.NewMockLogger()

	store, err := sqlite.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	mappingSvc := appmapping.NewService(registry, provider, nil, logger)
	environSvc := appenviron.NewService(registry, provider, logger)
	builderSvc := appbuilder.NewService(store, mappingSvc, logger)

	return NewRouter(RouterConfig{
		TaxonomyHandler: handlers.NewTaxonomyHandler(mappingSvc),
		MappingHandler:  handlers.NewMappingHandler(mappingSvc),
		EnvironHandler:  handlers.NewEnvironHandler(environSvc),
		BuilderHandler:  handlers.NewBuilderHandler(builderSvc),
		HealthHandler:   handlers.NewHealthHandler(provider, "test"),
		Logger:          logger,
		Mode:            gin.TestMode,
	})
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetMappings(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/taxonomies/hs/codes/010121/mappings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res ttypes.Resolution
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, ttypes.HS, res.Source)
	assert.Len(t, res.Targets, 6)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/taxonomies/sitc/codes/0101/mappings", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetConcordance(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/taxonomies/hs/codes/010129/concordance", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Candidates []ttypes.MatchResult `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Candidates, 2)
	assert.Equal(t, "02113", body.Candidates[0].Code)
}

func TestGetTaxonomiesAndTree(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/taxonomies", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/taxonomies/hs/tree", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/taxonomies/hs/nodes/hs-010121/ancestors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		AncestorPath []string `json:"ancestorPath"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"hs-section-I", "hs-01", "hs-0101"}, body.AncestorPath)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/taxonomies/hs/nodes/hs-999999/ancestors", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFactors(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/taxonomies/hs/codes/010121/factors", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var factors appenviron.Factors
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &factors))
	assert.Equal(t, "010121", factors.HS6)
	require.NotNil(t, factors.Emission)
}

func TestBuilderLifecycle(t *testing.T) {
	router := newTestRouter(t)

	create := map[string]interface{}{
		"name": "sourcing",
		"roots": []map[string]interface{}{
			{
				"id":   "n-1",
				"name": "Breeding horses",
				"provenance": map[string]string{
					"sourceTaxonomy": "hs",
					"sourceCode":     "010121",
				},
			},
		},
	}
	rec := doRequest(t, router, http.MethodPost, "/api/v1/builder/trees", create)
	require.Equal(t, http.StatusCreated, rec.Code)

	var tree struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tree))
	require.NotEmpty(t, tree.ID)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/builder/trees", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/builder/trees/"+tree.ID+"/nodes/n-1/mappings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res ttypes.Resolution
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, ttypes.HS, res.Source)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/taxonomies/hs/codes/010121/trees", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var referencing struct {
		Trees []struct {
			ID string `json:"id"`
		} `json:"trees"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &referencing))
	require.Len(t, referencing.Trees, 1)
	assert.Equal(t, tree.ID, referencing.Trees[0].ID)

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/builder/trees/"+tree.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/builder/trees/"+tree.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
