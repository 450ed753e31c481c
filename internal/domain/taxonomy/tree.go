package taxonomy

import (
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

// Index is a flattened view over one taxonomy's tree: node lookup by
// identifier plus parent links for ancestor-path reconstruction.  An Index
// is built once per dataset load and read concurrently afterwards.
type Index struct {
	roots   []*ttypes.Node
	nodes   map[string]*ttypes.Node
	parents map[string]string
}

// NewIndex walks the root forest and records every node and its parent.
// Duplicate identifiers keep the first occurrence.
func NewIndex(roots []*ttypes.Node) *Index {
	ix := &Index{
		roots:   roots,
		nodes:   make(map[string]*ttypes.Node),
		parents: make(map[string]string),
	}
	for _, root := range roots {
		ix.walk(root, "")
	}
	return ix
}

func (ix *Index) walk(n *ttypes.Node, parentID string) {
	if n == nil || n.ID == "" {
		return
	}
	if _, seen := ix.nodes[n.ID]; !seen {
		ix.nodes[n.ID] = n
		if parentID != "" {
			ix.parents[n.ID] = parentID
		}
	}
	for _, child := range n.Children {
		ix.walk(child, n.ID)
	}
}

// Node returns the node with the given identifier.
func (ix *Index) Node(id string) (*ttypes.Node, bool) {
	n, ok := ix.nodes[id]
	return n, ok
}

// Roots returns the root forest.  Callers must not mutate it.
func (ix *Index) Roots() []*ttypes.Node {
	return ix.roots
}

// Len returns the number of indexed nodes.
func (ix *Index) Len() int {
	return len(ix.nodes)
}

// AncestorPath returns the chain of node identifiers from the tree root down
// to, and excluding, the given node.  A root yields an empty path; an unknown
// identifier yields nil.
func (ix *Index) AncestorPath(id string) []string {
	if _, ok := ix.nodes[id]; !ok {
		return nil
	}
	var rev []string
	for cur := ix.parents[id]; cur != ""; cur = ix.parents[cur] {
		rev = append(rev, cur)
	}
	path := make([]string, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}
