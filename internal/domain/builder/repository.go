package builder

import (
	"context"

	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// Repository persists authored trees.  Implementations return
// ErrCodeTreeNotFound for missing identifiers and ErrCodeStoreError for
// storage failures.
type Repository interface {
	Save(ctx context.Context, tree *Tree) error
	Get(ctx context.Context, id string) (*Tree, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error

	// TreesReferencing lists the identifiers of trees containing at least
	// one node cloned from the given taxonomy and code.
	TreesReferencing(ctx context.Context, tax ttypes.ID, code string) ([]string, error)
}
