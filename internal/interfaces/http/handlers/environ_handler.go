package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appenviron "github.com/agrabowski5/TaxonomyViewing/internal/application/environ"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// EnvironHandler serves the environmental-factor overlays.
type EnvironHandler struct {
	environ appenviron.Service
}

// NewEnvironHandler creates an EnvironHandler.
func NewEnvironHandler(environ appenviron.Service) *EnvironHandler {
	return &EnvironHandler{environ: environ}
}

// Factors handles GET /api/v1/taxonomies/:taxonomy/codes/:code/factors.
func (h *EnvironHandler) Factors(c *gin.Context) {
	tax := ttypes.ID(c.Param("taxonomy"))
	code := c.Param("code")
	factors, err := h.environ.FactorsFor(c.Request.Context(), tax, code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, factors)
}
