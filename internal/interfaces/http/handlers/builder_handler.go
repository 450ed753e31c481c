package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appbuilder "github.com/agrabowski5/TaxonomyViewing/internal/application/builder"
	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// BuilderHandler serves the authored-tree library.
type BuilderHandler struct {
	builder appbuilder.Service
}

// NewBuilderHandler creates a BuilderHandler.
func NewBuilderHandler(builder appbuilder.Service) *BuilderHandler {
	return &BuilderHandler{builder: builder}
}

// Create handles POST /api/v1/builder/trees.
func (h *BuilderHandler) Create(c *gin.Context) {
	var input appbuilder.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	tree, err := h.builder.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tree)
}

// List handles GET /api/v1/builder/trees.
func (h *BuilderHandler) List(c *gin.Context) {
	summaries, err := h.builder.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trees": summaries})
}

// Get handles GET /api/v1/builder/trees/:treeId.
func (h *BuilderHandler) Get(c *gin.Context) {
	tree, err := h.builder.Get(c.Request.Context(), c.Param("treeId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// Update handles PUT /api/v1/builder/trees/:treeId.
func (h *BuilderHandler) Update(c *gin.Context) {
	var input appbuilder.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	input.ID = c.Param("treeId")
	tree, err := h.builder.Update(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// Delete handles DELETE /api/v1/builder/trees/:treeId.
func (h *BuilderHandler) Delete(c *gin.Context) {
	if err := h.builder.Delete(c.Request.Context(), c.Param("treeId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResolveNode handles GET /api/v1/builder/trees/:treeId/nodes/:nodeId/mappings.
func (h *BuilderHandler) ResolveNode(c *gin.Context) {
	res, err := h.builder.ResolveNode(c.Request.Context(), c.Param("treeId"), c.Param("nodeId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Referencing handles GET /api/v1/taxonomies/:taxonomy/codes/:code/trees,
// listing every authored tree with a node cloned from that classification.
func (h *BuilderHandler) Referencing(c *gin.Context) {
	tax := ttypes.ID(c.Param("taxonomy"))
	code := c.Param("code")
	summaries, err := h.builder.TreesReferencing(c.Request.Context(), tax, code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"taxonomy": tax, "code": code, "trees": summaries})
}
