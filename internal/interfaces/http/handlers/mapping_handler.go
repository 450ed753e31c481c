package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appmapping "github.com/agrabowski5/TaxonomyViewing/internal/application/mapping"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// MappingHandler serves cross-taxonomy resolution requests.
type MappingHandler struct {
	mapping appmapping.Service
}

// NewMappingHandler creates a MappingHandler.
func NewMappingHandler(mapping appmapping.Service) *MappingHandler {
	return &MappingHandler{mapping: mapping}
}

// Resolve handles GET /api/v1/taxonomies/:taxonomy/codes/:code/mappings.
// The optional nodeId query parameter disambiguates grafted entries of
// synthetic taxonomies.
func (h *MappingHandler) Resolve(c *gin.Context) {
	input := &appmapping.ResolveInput{
		Source: ttypes.ID(c.Param("taxonomy")),
		Code:   c.Param("code"),
		NodeID: c.Query("nodeId"),
	}
	res, err := h.mapping.Resolve(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Concordance handles GET /api/v1/taxonomies/:taxonomy/codes/:code/concordance:
// the full curated candidate list, not just the best match.
func (h *MappingHandler) Concordance(c *gin.Context) {
	tax := ttypes.ID(c.Param("taxonomy"))
	code := c.Param("code")
	candidates, err := h.mapping.ConcordanceCandidates(c.Request.Context(), tax, code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"taxonomy": tax, "code": code, "candidates": candidates})
}
