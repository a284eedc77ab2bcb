package canopy

import "math"

// segmentsPerCorner is the number of line segments used to approximate a
// quarter circle when a canvas tessellates rounded corners.
const segmentsPerCorner = 8

// ellipseSegments is the number of line segments for a full ellipse.
const ellipseSegments = 48

// RoundedRectPath returns the clockwise outline of r with the given corner
// radii. Radii are clamped to half the shorter side; zero radii produce a
// four-point rectangle.
func RoundedRectPath(r Rect, radii CornerRadii) []Vec2 {
	if r.Empty() {
		return nil
	}
	radii = radii.Clamp(r.Width, r.Height)
	if radii.IsZero() {
		return []Vec2{
			{r.X, r.Y},
			{r.X + r.Width, r.Y},
			{r.X + r.Width, r.Y + r.Height},
			{r.X, r.Y + r.Height},
		}
	}
	pts := make([]Vec2, 0, 4*(segmentsPerCorner+1))
	// Corner centers and start angles, clockwise from top-left.
	corners := [4]struct {
		cx, cy, rad, start float64
	}{
		{r.X + radii.TopLeft, r.Y + radii.TopLeft, radii.TopLeft, math.Pi},
		{r.X + r.Width - radii.TopRight, r.Y + radii.TopRight, radii.TopRight, 1.5 * math.Pi},
		{r.X + r.Width - radii.BottomRight, r.Y + r.Height - radii.BottomRight, radii.BottomRight, 0},
		{r.X + radii.BottomLeft, r.Y + r.Height - radii.BottomLeft, radii.BottomLeft, 0.5 * math.Pi},
	}
	for _, c := range corners {
		if c.rad <= 0 {
			pts = append(pts, Vec2{c.cx, c.cy})
			continue
		}
		for i := 0; i <= segmentsPerCorner; i++ {
			a := c.start + float64(i)/segmentsPerCorner*(math.Pi/2)
			sin, cos := math.Sincos(a)
			pts = append(pts, Vec2{c.cx + cos*c.rad, c.cy + sin*c.rad})
		}
	}
	return pts
}

// EllipsePath returns the clockwise outline of the ellipse inscribed in r.
func EllipsePath(r Rect) []Vec2 {
	if r.Empty() {
		return nil
	}
	rx, ry := r.Width/2, r.Height/2
	cx, cy := r.X+rx, r.Y+ry
	pts := make([]Vec2, ellipseSegments)
	for i := range pts {
		sin, cos := math.Sincos(float64(i) / ellipseSegments * 2 * math.Pi)
		pts[i] = Vec2{cx + cos*rx, cy + sin*ry}
	}
	return pts
}
