package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appmapping "github.com/agrabowski5/TaxonomyViewing/internal/application/mapping"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// TaxonomyHandler serves taxonomy listings, trees and ancestor paths.
type TaxonomyHandler struct {
	mapping appmapping.Service
}

// NewTaxonomyHandler creates a TaxonomyHandler.
func NewTaxonomyHandler(mapping appmapping.Service) *TaxonomyHandler {
	return &TaxonomyHandler{mapping: mapping}
}

// List handles GET /api/v1/taxonomies.
func (h *TaxonomyHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"taxonomies": h.mapping.Taxonomies(c.Request.Context())})
}

// Tree handles GET /api/v1/taxonomies/:taxonomy/tree.
func (h *TaxonomyHandler) Tree(c *gin.Context) {
	tax := ttypes.ID(c.Param("taxonomy"))
	roots, err := h.mapping.Tree(c.Request.Context(), tax)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"taxonomy": tax, "roots": roots})
}

// Ancestors handles GET /api/v1/taxonomies/:taxonomy/nodes/:nodeId/ancestors.
func (h *TaxonomyHandler) Ancestors(c *gin.Context) {
	tax := ttypes.ID(c.Param("taxonomy"))
	nodeID := c.Param("nodeId")
	path, err := h.mapping.AncestorPath(c.Request.Context(), tax, nodeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"taxonomy": tax, "nodeId": nodeID, "ancestorPath": path})
}
