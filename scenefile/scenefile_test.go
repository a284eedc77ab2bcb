package scenefile

import (
	"testing"

	"github.com/phanxgames/canopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTree(t *testing.T) {
	tree, err := LoadTree("testdata/card.yaml")
	require.NoError(t, err)

	assert.Equal(t, canopy.ViewportSize{Width: 800, Height: 600}, tree.Viewport)
	require.NotNil(t, tree.Root)
	assert.Equal(t, "root", tree.Root.Name)
	assert.Len(t, tree.Nodes, 3)

	card := tree.Visual("card")
	require.NotNil(t, card)
	assert.Equal(t, canopy.AlignCenter, card.Alignment())
	assert.Equal(t, canopy.JustifyCenter, card.Justification())
	assert.True(t, card.Focusable)
	assert.Equal(t, 2.0, card.BorderWidth(canopy.EdgeLeft))
	assert.Equal(t, 8.0, card.BorderRadius(canopy.CornerTopLeft))
	assert.Equal(t, 0.0, card.BorderRadius(canopy.CornerTopRight))
	assert.Equal(t, canopy.ColorWhite, card.Background())

	badge := tree.Visual("badge")
	require.NotNil(t, badge)
	assert.Equal(t, canopy.NodeTypeEllipse, badge.Type)
	assert.Equal(t, canopy.HitEllipse{Width: 40, Height: 40}, badge.HitShape)
	assert.Same(t, card.AsNode(), badge.Parent())
}

func TestBuiltTreeLaysOut(t *testing.T) {
	tree, err := LoadTree("testdata/card.yaml")
	require.NoError(t, err)

	root := tree.Root.AsVisual()
	root.CalculateLayout(tree.Viewport.Width, tree.Viewport.Height, 0, 0)

	card := tree.Visual("card")
	assert.InDelta(t, 230, card.Left(), 1e-9)
	assert.InDelta(t, 180, card.Top(), 1e-9)
	assert.InDelta(t, 300, card.Width(), 1e-9)

	badge := tree.Visual("badge")
	assert.InDelta(t, 260, badge.Left(), 1e-9)
	assert.InDelta(t, 0, badge.Top(), 1e-9)
}

func TestEdgeSpecScalarAndMapping(t *testing.T) {
	doc, err := Parse([]byte(`
root:
  name: r
  padding: {left: 1, top: 2}
  margin: 5
`))
	require.NoError(t, err)
	tree, err := doc.Build()
	require.NoError(t, err)

	r := tree.Visual("r")
	assert.Equal(t, 1.0, r.Padding(canopy.EdgeLeft))
	assert.Equal(t, 2.0, r.Padding(canopy.EdgeTop))
	assert.Equal(t, 0.0, r.Padding(canopy.EdgeRight))
	for _, e := range []canopy.Edge{canopy.EdgeLeft, canopy.EdgeTop, canopy.EdgeRight, canopy.EdgeBottom} {
		assert.Equal(t, 5.0, r.Margin(e))
	}
}

func TestTransformDegrees(t *testing.T) {
	doc, err := Parse([]byte(`
root:
  name: r
  transform: {rotation: 90, offset_x: 10}
`))
	require.NoError(t, err)
	tree, err := doc.Build()
	require.NoError(t, err)

	p := tree.Visual("r").TransformProps()
	assert.InDelta(t, 1.5707963, p.Rotation, 1e-6)
	assert.Equal(t, 10.0, p.OffsetX)
	assert.Equal(t, 1.0, p.ScaleX)
}

func TestGroupNode(t *testing.T) {
	doc, err := Parse([]byte(`
root:
  name: g
  type: group
  children:
    - name: a
`))
	require.NoError(t, err)
	tree, err := doc.Build()
	require.NoError(t, err)

	assert.Nil(t, tree.Root.AsVisual())
	assert.NotNil(t, tree.Visual("a"))
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "unknown type",
			yaml: "root: {name: r, type: triangle}",
			want: ErrUnknownNodeType,
		},
		{
			name: "bad color",
			yaml: "root: {name: r, background: 'not-a-color'}",
			want: ErrInvalidColor,
		},
		{
			name: "duplicate name",
			yaml: "root: {name: r, children: [{name: a}, {name: a}]}",
			want: ErrDuplicateName,
		},
		{
			name: "bad alignment",
			yaml: "root: {name: r, alignment: sideways}",
			want: ErrInvalidValue,
		},
		{
			name: "child error",
			yaml: "root: {name: r, children: [{name: a, type: blob}]}",
			want: ErrUnknownNodeType,
		},
		{
			name: "circle without radius",
			yaml: "root: {name: r, hit_shape: {kind: circle}}",
			want: ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			tree, err := doc.Build()
			assert.Nil(t, tree)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseError(t *testing.T) {
	_, err := Parse([]byte("root: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scene")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load scene")
}
