// Package builder provides the application service for authored trees:
// library CRUD plus cross-taxonomy resolution of authored nodes through
// their provenance records.
package builder

import (
	"context"

	appmapping "github.com/agrabowski5/TaxonomyViewing/internal/application/mapping"
	domainBld "github.com/agrabowski5/TaxonomyViewing/internal/domain/builder"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/logging"
	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// Service defines operations over the builder library.
type Service interface {
	Create(ctx context.Context, input *CreateInput) (*domainBld.Tree, error)
	Get(ctx context.Context, id string) (*domainBld.Tree, error)
	List(ctx context.Context) ([]domainBld.Summary, error)
	Update(ctx context.Context, input *UpdateInput) (*domainBld.Tree, error)
	Delete(ctx context.Context, id string) error
	// ResolveNode maps an authored node into every taxonomy through its
	// provenance record.
	ResolveNode(ctx context.Context, treeID, nodeID string) (*ttypes.Resolution, error)
	// TreesReferencing lists the stored trees containing at least one node
	// cloned from the given classification.
	TreesReferencing(ctx context.Context, tax ttypes.ID, code string) ([]domainBld.Summary, error)
}

// CreateInput carries a new authored tree.
type CreateInput struct {
	Name  string            `json:"name"`
	Roots []*domainBld.Node `json:"roots"`
}

// UpdateInput replaces a stored tree's name and structure.
type UpdateInput struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Roots []*domainBld.Node `json:"roots"`
}

type serviceImpl struct {
	repo    domainBld.Repository
	mapping appmapping.Service
	logger  logging.Logger
}

// NewService creates the builder application service.
func NewService(repo domainBld.Repository, mapping appmapping.Service, logger logging.Logger) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{repo: repo, mapping: mapping, logger: logger.Named("builder")}
}

func (s *serviceImpl) Create(ctx context.Context, input *CreateInput) (*domainBld.Tree, error) {
	if input == nil {
		return nil, errors.InvalidParam("request body is required")
	}
	tree, err := domainBld.NewTree(input.Name, input.Roots)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, tree); err != nil {
		s.logger.Error("failed to save authored tree", logging.Err(err))
		return nil, err
	}
	return tree, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (*domainBld.Tree, error) {
	if id == "" {
		return nil, errors.InvalidParam("tree id is required")
	}
	return s.repo.Get(ctx, id)
}

func (s *serviceImpl) List(ctx context.Context) ([]domainBld.Summary, error) {
	return s.repo.List(ctx)
}

func (s *serviceImpl) Update(ctx context.Context, input *UpdateInput) (*domainBld.Tree, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidParam("tree id is required")
	}
	tree, err := s.repo.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		tree.Name = input.Name
	}
	if input.Roots != nil {
		tree.Roots = input.Roots
	}
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	tree.Touch()
	if err := s.repo.Save(ctx, tree); err != nil {
		s.logger.Error("failed to update authored tree", logging.Err(err))
		return nil, err
	}
	return tree, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.InvalidParam("tree id is required")
	}
	return s.repo.Delete(ctx, id)
}

func (s *serviceImpl) TreesReferencing(ctx context.Context, tax ttypes.ID, code string) ([]domainBld.Summary, error) {
	if tax == "" || code == "" {
		return nil, errors.InvalidParam("taxonomy and code are required")
	}
	ids, err := s.repo.TreesReferencing(ctx, tax, code)
	if err != nil {
		return nil, err
	}
	summaries := make([]domainBld.Summary, 0, len(ids))
	for _, id := range ids {
		tree, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, domainBld.Summary{
			ID:        tree.ID,
			Name:      tree.Name,
			CreatedAt: tree.CreatedAt,
			UpdatedAt: tree.UpdatedAt,
			NodeCount: tree.NodeCount(),
		})
	}
	return summaries, nil
}

func (s *serviceImpl) ResolveNode(ctx context.Context, treeID, nodeID string) (*ttypes.Resolution, error) {
	tree, err := s.Get(ctx, treeID)
	if err != nil {
		return nil, err
	}
	node, ok := tree.Node(nodeID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "authored node not found").WithDetail(nodeID)
	}
	if node.Provenance == nil {
		return nil, errors.New(errors.ErrCodeProvenanceEmpty, "node has no provenance record").WithDetail(nodeID)
	}
	return s.mapping.ResolveProvenance(ctx, node.Provenance)
}
