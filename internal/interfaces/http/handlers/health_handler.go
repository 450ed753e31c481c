package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appmapping "github.com/agrabowski5/TaxonomyViewing/internal/application/mapping"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	provider appmapping.SnapshotProvider
	version  string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(provider appmapping.SnapshotProvider, version string) *HealthHandler {
	return &HealthHandler{provider: provider, version: version}
}

// Healthz handles GET /healthz: process liveness.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// Readyz handles GET /readyz: ready once a dataset snapshot is loaded.
func (h *HealthHandler) Readyz(c *gin.Context) {
	snap := h.provider.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"loadedAt": snap.LoadedAt.UTC().Format(time.RFC3339),
	})
}
