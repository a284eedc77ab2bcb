package canopy

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication, if any, happens inside the Canvas implementation.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorTransparent is the default background of a visual node.
	ColorTransparent = Color{}
	// ColorBlack is the default foreground and border color.
	ColorBlack = Color{0, 0, 0, 1}
	// ColorWhite is opaque white.
	ColorWhite = Color{1, 1, 1, 1}
)

// RGBA returns the color as an 8-bit, non-premultiplied color.NRGBA.
func (c Color) RGBA() color.NRGBA {
	return color.NRGBA{
		R: clampByte(c.R),
		G: clampByte(c.G),
		B: clampByte(c.B),
		A: clampByte(c.A),
	}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// IsTransparent reports whether the color contributes nothing when painted.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// NodeType distinguishes painting and hit-testing behavior for a Node.
type NodeType uint8

const (
	NodeTypeGroup   NodeType = iota // plain tree node with no geometry
	NodeTypeBox                     // rectangle or rounded rectangle
	NodeTypeEllipse                 // ellipse inscribed in the node bounds
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeGroup:
		return "group"
	case NodeTypeBox:
		return "box"
	case NodeTypeEllipse:
		return "ellipse"
	default:
		return "NodeType(" + strconv.Itoa(int(t)) + ")"
	}
}

// Edge selects one side of the box model. EdgeAll addresses all four.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom
	EdgeAll
)

// Corner selects one corner for border radii. CornerAll addresses all four.
type Corner uint8

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
	CornerAll
)

// Insets holds a value per edge.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// Horizontal returns Left + Right.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }

// Vertical returns Top + Bottom.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }

func (in *Insets) set(edge Edge, v float64) {
	switch edge {
	case EdgeLeft:
		in.Left = v
	case EdgeTop:
		in.Top = v
	case EdgeRight:
		in.Right = v
	case EdgeBottom:
		in.Bottom = v
	case EdgeAll:
		*in = Insets{v, v, v, v}
	}
}

func (in Insets) get(edge Edge) float64 {
	switch edge {
	case EdgeLeft:
		return in.Left
	case EdgeTop:
		return in.Top
	case EdgeRight:
		return in.Right
	case EdgeBottom:
		return in.Bottom
	default:
		return 0
	}
}

// CornerRadii holds a border radius per corner.
type CornerRadii struct {
	TopLeft, TopRight, BottomRight, BottomLeft float64
}

// IsZero reports whether every radius is zero or negative.
func (r CornerRadii) IsZero() bool {
	return r.TopLeft <= 0 && r.TopRight <= 0 && r.BottomRight <= 0 && r.BottomLeft <= 0
}

// Clamp limits every radius to [0, min(w, h)/2].
func (r CornerRadii) Clamp(w, h float64) CornerRadii {
	limit := min(w, h) / 2
	c := func(v float64) float64 { return max(0, min(v, limit)) }
	return CornerRadii{c(r.TopLeft), c(r.TopRight), c(r.BottomRight), c(r.BottomLeft)}
}

func (r *CornerRadii) set(corner Corner, v float64) {
	switch corner {
	case CornerTopLeft:
		r.TopLeft = v
	case CornerTopRight:
		r.TopRight = v
	case CornerBottomRight:
		r.BottomRight = v
	case CornerBottomLeft:
		r.BottomLeft = v
	case CornerAll:
		*r = CornerRadii{v, v, v, v}
	}
}

func (r CornerRadii) get(corner Corner) float64 {
	switch corner {
	case CornerTopLeft:
		return r.TopLeft
	case CornerTopRight:
		return r.TopRight
	case CornerBottomRight:
		return r.BottomRight
	case CornerBottomLeft:
		return r.BottomLeft
	default:
		return 0
	}
}

// Alignment places a node along its parent's cross axis (horizontal).
type Alignment uint8

const (
	AlignStretch Alignment = iota // fill the parent's content width (default)
	AlignStart                    // hug the left edge
	AlignCenter                   // center horizontally
	AlignEnd                      // hug the right edge
)

// Justification places a node along its parent's main axis (vertical).
type Justification uint8

const (
	JustifyStart   Justification = iota // hug the top edge (default)
	JustifyCenter                       // center vertically
	JustifyEnd                          // hug the bottom edge
	JustifyStretch                      // explicit margins only
)

// ParseAlignment maps "start", "center", "end" and "stretch" to an Alignment.
func ParseAlignment(s string) (Alignment, bool) {
	switch strings.ToLower(s) {
	case "start":
		return AlignStart, true
	case "center":
		return AlignCenter, true
	case "end":
		return AlignEnd, true
	case "stretch", "":
		return AlignStretch, true
	}
	return AlignStretch, false
}

// ParseJustification maps "start", "center", "end" and "stretch" to a Justification.
func ParseJustification(s string) (Justification, bool) {
	switch strings.ToLower(s) {
	case "start", "":
		return JustifyStart, true
	case "center":
		return JustifyCenter, true
	case "end":
		return JustifyEnd, true
	case "stretch":
		return JustifyStretch, true
	}
	return JustifyStart, false
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
