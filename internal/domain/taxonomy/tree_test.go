package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

func testTree() *Index {
	return NewIndex([]*ttypes.Node{
		{
			ID: "hs-section-I", Code: "I", Name: "Live animals; animal products", Type: "section",
			Children: []*ttypes.Node{
				{
					ID: "hs-01", Code: "01", Name: "Live animals", Type: "chapter",
					Children: []*ttypes.Node{
						{
							ID: "hs-0101", Code: "0101", Name: "Live horses", Type: "heading",
							Children: []*ttypes.Node{
								{ID: "hs-010121", Code: "010121", Name: "Pure-bred breeding horses", Type: "subheading"},
							},
						},
					},
				},
			},
		},
	})
}

func TestIndexNode(t *testing.T) {
	ix := testTree()
	assert.Equal(t, 4, ix.Len())

	n, ok := ix.Node("hs-0101")
	require.True(t, ok)
	assert.Equal(t, "0101", n.Code)

	_, ok = ix.Node("hs-9999")
	assert.False(t, ok)
}

func TestAncestorPath(t *testing.T) {
	ix := testTree()

	t.Run("leaf walks up to the root", func(t *testing.T) {
		path := ix.AncestorPath("hs-010121")
		assert.Equal(t, []string{"hs-section-I", "hs-01", "hs-0101"}, path)
	})

	t.Run("root has an empty path", func(t *testing.T) {
		path := ix.AncestorPath("hs-section-I")
		assert.Empty(t, path)
		assert.NotNil(t, path)
	})

	t.Run("unknown node yields nil", func(t *testing.T) {
		assert.Nil(t, ix.AncestorPath("hs-9999"))
	})
}

func TestIndexEmptyForest(t *testing.T) {
	ix := NewIndex(nil)
	assert.Zero(t, ix.Len())
	assert.Nil(t, ix.AncestorPath("anything"))
}
