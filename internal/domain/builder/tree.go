// Package builder models user-authored classification trees.  Authored nodes
// are clones of nodes from the loaded taxonomies; each clone carries a
// provenance record naming the taxonomy and code it came from, which is all
// the resolution engine needs to map an authored node across taxonomies.
package builder

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// Node is one entry of an authored tree.  Provenance is nil for purely
// organizational nodes the user created from scratch; those cannot be
// resolved across taxonomies.
type Node struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Provenance *ttypes.Provenance `json:"provenance,omitempty"`
	Children   []*Node            `json:"children,omitempty"`
}

// Tree is a named, persisted authored hierarchy.
type Tree struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Roots     []*Node   `json:"roots"`
}

// Summary is the listing view of a persisted tree.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	NodeCount int       `json:"nodeCount"`
}

// NewTree creates an authored tree with a fresh identifier.
func NewTree(name string, roots []*Node) (*Tree, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New(errors.ErrCodeTreeInvalid, "tree name is required")
	}
	now := time.Now().UTC()
	t := &Tree{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Roots:     roots,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Touch bumps the modification timestamp.
func (t *Tree) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// Validate checks structural integrity: every node needs an identifier and a
// name, identifiers must be unique within the tree, and provenance records
// must be complete when present.
func (t *Tree) Validate() error {
	seen := make(map[string]struct{})
	for _, root := range t.Roots {
		if err := validateNode(root, seen); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n *Node, seen map[string]struct{}) error {
	if n == nil {
		return errors.New(errors.ErrCodeTreeInvalid, "nil node in authored tree")
	}
	if n.ID == "" || n.Name == "" {
		return errors.New(errors.ErrCodeTreeInvalid, "authored node requires an id and a name")
	}
	if _, dup := seen[n.ID]; dup {
		return errors.New(errors.ErrCodeTreeInvalid, "duplicate node id").WithDetail(n.ID)
	}
	seen[n.ID] = struct{}{}
	if p := n.Provenance; p != nil && (p.SourceTaxonomy == "" || p.SourceCode == "") {
		return errors.New(errors.ErrCodeProvenanceEmpty, "incomplete provenance record").WithDetail(n.ID)
	}
	for _, child := range n.Children {
		if err := validateNode(child, seen); err != nil {
			return err
		}
	}
	return nil
}

// Node finds an authored node by identifier.
func (t *Tree) Node(id string) (*Node, bool) {
	for _, root := range t.Roots {
		if n := findNode(root, id); n != nil {
			return n, true
		}
	}
	return nil, false
}

func findNode(n *Node, id string) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := findNode(child, id); found != nil {
			return found
		}
	}
	return nil
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int {
	count := 0
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		count++
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, root := range t.Roots {
		walk(root)
	}
	return count
}
