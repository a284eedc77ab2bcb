// Package scenefile reads YAML scene documents and builds canopy trees
// from them.
//
// A document looks like:
//
//	viewport: {width: 800, height: 600}
//	root:
//	  name: root
//	  type: box
//	  padding: 20
//	  background: "#202030"
//	  children:
//	    - name: card
//	      width: 300
//	      height: 200
//	      alignment: center
//	      justification: center
//	      border_radius: {top_left: 8, top_right: 8}
//
// Edge and corner values accept either a scalar, applied to every edge, or
// a mapping of individual edges.
package scenefile

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/phanxgames/canopy"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownNodeType is returned for a type other than group, box or ellipse.
	ErrUnknownNodeType = errors.New("unknown node type")
	// ErrInvalidColor is returned for a color that is not #RGB, #RRGGBB or #RRGGBBAA.
	ErrInvalidColor = errors.New("invalid color")
	// ErrDuplicateName is returned when two nodes share a non-empty name.
	ErrDuplicateName = errors.New("duplicate node name")
	// ErrInvalidValue is returned for out-of-range or unparseable values.
	ErrInvalidValue = errors.New("invalid value")
)

// Document is the top level of a scene file.
type Document struct {
	Viewport ViewportSpec `yaml:"viewport"`
	Root     NodeSpec     `yaml:"root"`
}

// ViewportSpec is the size the root is laid out in.
type ViewportSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// NodeSpec describes one node and its children.
type NodeSpec struct {
	Name          string         `yaml:"name"`
	Type          string         `yaml:"type"`
	Width         float64        `yaml:"width"`
	Height        float64        `yaml:"height"`
	Margin        EdgeSpec       `yaml:"margin"`
	Padding       EdgeSpec       `yaml:"padding"`
	BorderWidth   EdgeSpec       `yaml:"border_width"`
	BorderRadius  CornerSpec     `yaml:"border_radius"`
	BorderColor   string         `yaml:"border_color"`
	Background    string         `yaml:"background"`
	Foreground    string         `yaml:"foreground"`
	Alignment     string         `yaml:"alignment"`
	Justification string         `yaml:"justification"`
	Opacity       *float64       `yaml:"opacity"`
	Visible       *bool          `yaml:"visible"`
	Focusable     bool           `yaml:"focusable"`
	Transform     *TransformSpec `yaml:"transform"`
	HitShape      *HitShapeSpec  `yaml:"hit_shape"`
	Children      []NodeSpec     `yaml:"children"`
}

// TransformSpec is a component transform. Angles are in degrees.
type TransformSpec struct {
	OffsetX  float64  `yaml:"offset_x"`
	OffsetY  float64  `yaml:"offset_y"`
	ScaleX   *float64 `yaml:"scale_x"`
	ScaleY   *float64 `yaml:"scale_y"`
	Rotation float64  `yaml:"rotation"`
	SkewX    float64  `yaml:"skew_x"`
	SkewY    float64  `yaml:"skew_y"`
	PivotX   float64  `yaml:"pivot_x"`
	PivotY   float64  `yaml:"pivot_y"`
}

// HitShapeSpec overrides the hit region: "ellipse" (inscribed in the
// requested size), "circle" or "polygon".
type HitShapeSpec struct {
	Kind    string       `yaml:"kind"`
	CenterX float64      `yaml:"center_x"`
	CenterY float64      `yaml:"center_y"`
	Radius  float64      `yaml:"radius"`
	Points  [][2]float64 `yaml:"points"`
}

// EdgeSpec is a per-edge value. A scalar sets All.
type EdgeSpec struct {
	All    *float64 `yaml:"all"`
	Left   *float64 `yaml:"left"`
	Top    *float64 `yaml:"top"`
	Right  *float64 `yaml:"right"`
	Bottom *float64 `yaml:"bottom"`
}

// UnmarshalYAML accepts a scalar or a mapping.
func (e *EdgeSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v float64
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w: %v", value.Line, ErrInvalidValue, err)
		}
		*e = EdgeSpec{All: &v}
		return nil
	}
	type plain EdgeSpec
	return value.Decode((*plain)(e))
}

func (e EdgeSpec) apply(set func(canopy.Edge, float64)) {
	if e.All != nil {
		set(canopy.EdgeAll, *e.All)
	}
	for _, it := range []struct {
		edge canopy.Edge
		v    *float64
	}{
		{canopy.EdgeLeft, e.Left},
		{canopy.EdgeTop, e.Top},
		{canopy.EdgeRight, e.Right},
		{canopy.EdgeBottom, e.Bottom},
	} {
		if it.v != nil {
			set(it.edge, *it.v)
		}
	}
}

// CornerSpec is a per-corner radius. A scalar sets All.
type CornerSpec struct {
	All         *float64 `yaml:"all"`
	TopLeft     *float64 `yaml:"top_left"`
	TopRight    *float64 `yaml:"top_right"`
	BottomRight *float64 `yaml:"bottom_right"`
	BottomLeft  *float64 `yaml:"bottom_left"`
}

// UnmarshalYAML accepts a scalar or a mapping.
func (c *CornerSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v float64
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w: %v", value.Line, ErrInvalidValue, err)
		}
		*c = CornerSpec{All: &v}
		return nil
	}
	type plain CornerSpec
	return value.Decode((*plain)(c))
}

func (c CornerSpec) apply(v *canopy.VisualNode) {
	if c.All != nil {
		v.SetBorderRadius(canopy.CornerAll, *c.All)
	}
	for _, it := range []struct {
		corner canopy.Corner
		r      *float64
	}{
		{canopy.CornerTopLeft, c.TopLeft},
		{canopy.CornerTopRight, c.TopRight},
		{canopy.CornerBottomRight, c.BottomRight},
		{canopy.CornerBottomLeft, c.BottomLeft},
	} {
		if it.r != nil {
			v.SetBorderRadius(it.corner, *it.r)
		}
	}
}

// Parse decodes a YAML document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &doc, nil
}

// Load reads and parses the scene file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", path, err)
	}
	return doc, nil
}

// Tree is a built scene.
type Tree struct {
	Root     *canopy.Node
	Nodes    map[string]*canopy.Node
	Viewport canopy.ViewportSize
}

// Node returns the node named name, or nil.
func (t *Tree) Node(name string) *canopy.Node {
	return t.Nodes[name]
}

// Visual returns the visual node named name, or nil.
func (t *Tree) Visual(name string) *canopy.VisualNode {
	return t.Nodes[name].AsVisual()
}

// Build creates the node tree described by doc. On error no partially built
// tree is returned and every node created so far is disposed.
func (doc *Document) Build() (*Tree, error) {
	t := &Tree{
		Nodes:    make(map[string]*canopy.Node),
		Viewport: canopy.ViewportSize{Width: doc.Viewport.Width, Height: doc.Viewport.Height},
	}
	root, err := t.build(&doc.Root, "root")
	if err != nil {
		if root != nil {
			root.Dispose()
		}
		return nil, err
	}
	t.Root = root
	return t, nil
}

// build returns the node built so far even on error so the caller can
// dispose it.
func (t *Tree) build(spec *NodeSpec, path string) (*canopy.Node, error) {
	if spec.Name != "" {
		path = spec.Name
	}
	n, err := newNode(spec)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", path, err)
	}
	if spec.Name != "" {
		if _, dup := t.Nodes[spec.Name]; dup {
			n.Dispose()
			return nil, fmt.Errorf("node %s: %w", path, ErrDuplicateName)
		}
		t.Nodes[spec.Name] = n
	}
	if v := n.AsVisual(); v != nil {
		if err := applyVisual(v, spec); err != nil {
			return n, fmt.Errorf("node %s: %w", path, err)
		}
	}
	for i := range spec.Children {
		child, err := t.build(&spec.Children[i], fmt.Sprintf("%s/%d", path, i))
		if child != nil {
			n.AddChild(child)
		}
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func newNode(spec *NodeSpec) (*canopy.Node, error) {
	switch strings.ToLower(spec.Type) {
	case "group":
		return canopy.NewGroup(spec.Name), nil
	case "box", "":
		return canopy.NewBox(spec.Name).AsNode(), nil
	case "ellipse":
		return canopy.NewEllipse(spec.Name).AsNode(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, spec.Type)
}

func applyVisual(v *canopy.VisualNode, spec *NodeSpec) error {
	v.SetSize(spec.Width, spec.Height)
	spec.Margin.apply(v.SetMargin)
	spec.Padding.apply(v.SetPadding)
	spec.BorderWidth.apply(v.SetBorderWidth)
	spec.BorderRadius.apply(v)

	for _, c := range []struct {
		field string
		value string
		set   func(canopy.Color)
	}{
		{"background", spec.Background, v.SetBackground},
		{"foreground", spec.Foreground, v.SetForeground},
		{"border_color", spec.BorderColor, v.SetBorderColor},
	} {
		if c.value == "" {
			continue
		}
		col, err := canopy.ParseHexColor(c.value)
		if err != nil {
			return fmt.Errorf("%s: %w: %v", c.field, ErrInvalidColor, err)
		}
		c.set(col)
	}

	a, ok := canopy.ParseAlignment(spec.Alignment)
	if !ok {
		return fmt.Errorf("alignment %q: %w", spec.Alignment, ErrInvalidValue)
	}
	v.SetAlignment(a)
	j, ok := canopy.ParseJustification(spec.Justification)
	if !ok {
		return fmt.Errorf("justification %q: %w", spec.Justification, ErrInvalidValue)
	}
	v.SetJustification(j)

	if spec.Opacity != nil {
		v.SetOpacity(*spec.Opacity)
	}
	if spec.Visible != nil {
		v.SetVisible(*spec.Visible)
	}
	v.Focusable = spec.Focusable

	if tr := spec.Transform; tr != nil {
		p := canopy.DefaultTransformProps()
		p.OffsetX, p.OffsetY = tr.OffsetX, tr.OffsetY
		if tr.ScaleX != nil {
			p.ScaleX = *tr.ScaleX
		}
		if tr.ScaleY != nil {
			p.ScaleY = *tr.ScaleY
		}
		p.Rotation = tr.Rotation * math.Pi / 180
		p.SkewX = tr.SkewX * math.Pi / 180
		p.SkewY = tr.SkewY * math.Pi / 180
		p.PivotX, p.PivotY = tr.PivotX, tr.PivotY
		v.SetTransformProps(p)
	}

	if hs := spec.HitShape; hs != nil {
		shape, err := hitShape(hs, spec)
		if err != nil {
			return err
		}
		v.HitShape = shape
	}
	return nil
}

func hitShape(hs *HitShapeSpec, spec *NodeSpec) (canopy.HitShape, error) {
	switch strings.ToLower(hs.Kind) {
	case "ellipse":
		return canopy.HitEllipse{Width: spec.Width, Height: spec.Height}, nil
	case "circle":
		if hs.Radius <= 0 {
			return nil, fmt.Errorf("hit_shape radius %v: %w", hs.Radius, ErrInvalidValue)
		}
		return canopy.HitCircle{CenterX: hs.CenterX, CenterY: hs.CenterY, Radius: hs.Radius}, nil
	case "polygon":
		if len(hs.Points) < 3 {
			return nil, fmt.Errorf("hit_shape polygon needs 3 points: %w", ErrInvalidValue)
		}
		pts := make([]canopy.Vec2, len(hs.Points))
		for i, p := range hs.Points {
			pts[i] = canopy.Vec2{X: p[0], Y: p[1]}
		}
		return canopy.HitPolygon{Points: pts}, nil
	}
	return nil, fmt.Errorf("hit_shape kind %q: %w", hs.Kind, ErrInvalidValue)
}

// LoadTree loads path and builds it.
func LoadTree(path string) (*Tree, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}
