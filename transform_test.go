package canopy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func assertMatrix(t *testing.T, want, got Matrix) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], epsilon)
}

func assertPoint(t *testing.T, wantX, wantY, gotX, gotY float64) {
	t.Helper()
	assert.InDelta(t, wantX, gotX, epsilon, "x")
	assert.InDelta(t, wantY, gotY, epsilon, "y")
}

func TestDefaultPropsComposeIdentity(t *testing.T) {
	assertMatrix(t, Identity, DefaultTransformProps().Matrix())
}

func TestPropsTranslation(t *testing.T) {
	p := DefaultTransformProps()
	p.OffsetX, p.OffsetY = 10, 20
	assertMatrix(t, Matrix{1, 0, 0, 1, 10, 20}, p.Matrix())
}

func TestPropsScale(t *testing.T) {
	p := DefaultTransformProps()
	p.ScaleX, p.ScaleY = 2, 3
	assertMatrix(t, Matrix{2, 0, 0, 3, 0, 0}, p.Matrix())
}

func TestPropsRotationClockwise(t *testing.T) {
	p := DefaultTransformProps()
	p.Rotation = math.Pi / 2
	x, y := p.Matrix().Apply(1, 0)
	assertPoint(t, 0, 1, x, y)
}

func TestPropsPivot(t *testing.T) {
	p := DefaultTransformProps()
	p.PivotX, p.PivotY = 50, 50
	p.Rotation = math.Pi
	m := p.Matrix()

	// The pivot maps to itself.
	x, y := m.Apply(50, 50)
	assertPoint(t, 50, 50, x, y)
	x, y = m.Apply(0, 0)
	assertPoint(t, 100, 100, x, y)

	p.Rotation = 0
	p.ScaleX, p.ScaleY = 2, 2
	x, y = p.Matrix().Apply(50, 50)
	assertPoint(t, 50, 50, x, y)
	x, y = p.Matrix().Apply(60, 50)
	assertPoint(t, 70, 50, x, y)
}

func TestPropsSkew(t *testing.T) {
	p := DefaultTransformProps()
	p.SkewX = math.Pi / 4
	x, y := p.Matrix().Apply(0, 10)
	assertPoint(t, 10, 10, x, y)
}

func TestMultiplyOrder(t *testing.T) {
	// Scale first, then translate.
	m := TranslateMatrix(10, 0).Multiply(ScaleMatrix(2, 2))
	x, y := m.Apply(1, 1)
	assertPoint(t, 12, 2, x, y)
}

func TestInvert(t *testing.T) {
	m := TranslateMatrix(5, -3).Multiply(RotateMatrix(0.7)).Multiply(ScaleMatrix(2, 0.5))
	inv, ok := m.Invert()
	assert.True(t, ok)
	assertMatrix(t, Identity, m.Multiply(inv))
	assertMatrix(t, Identity, inv.Multiply(m))
}

func TestInvertSingular(t *testing.T) {
	for _, m := range []Matrix{
		ScaleMatrix(0, 1),
		ScaleMatrix(1e-13, 1),
		{1, 2, 2, 4, 0, 0},
		{math.NaN(), 0, 0, 1, 0, 0},
	} {
		inv, ok := m.Invert()
		assert.False(t, ok, "%v", m)
		assert.Equal(t, Identity, inv)
		assert.False(t, m.Invertible())
	}
}

func TestDeterminant(t *testing.T) {
	assert.InDelta(t, 6, ScaleMatrix(2, 3).Determinant(), epsilon)
	assert.InDelta(t, 1, RotateMatrix(1.2).Determinant(), epsilon)
}

func TestDecomposeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity},
		{"translate", TranslateMatrix(3, 4)},
		{"scale", ScaleMatrix(2, -3)},
		{"rotate", RotateMatrix(1.1)},
		{"props", TransformProps{OffsetX: 7, OffsetY: -2, ScaleX: 1.5, ScaleY: 0.5, Rotation: -0.4, SkewX: 0.3, SkewY: 0.1, PivotX: 10, PivotY: 5}.Matrix()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, ty, rot, shear, sx, sy := tt.m.Decompose()
			got := TranslateMatrix(tx, ty).
				Multiply(RotateMatrix(rot)).
				Multiply(Matrix{1, 0, shear, 1, 0, 0}).
				Multiply(ScaleMatrix(sx, sy))
			assertMatrix(t, tt.m, got)
		})
	}
}

func TestLocalTransformIncludesPosition(t *testing.T) {
	v := placed("v", 10, 20, 30, 30)
	assertMatrix(t, TranslateMatrix(10, 20), v.LocalTransform())

	v.SetOffset(5, 5)
	x, y := v.LocalTransform().Apply(0, 0)
	assertPoint(t, 15, 25, x, y)
	assert.Equal(t, 5.0, v.TransformProps().OffsetX)
}

func TestSetTransformPropsRecomposes(t *testing.T) {
	v := NewBox("v")
	v.SetTransform(ScaleMatrix(3, 3))
	assertMatrix(t, ScaleMatrix(3, 3), v.Transform())

	v.SetSkew(0, 0)
	assertMatrix(t, Identity, v.Transform())

	v.SetPivot(10, 10)
	v.SetRotation(math.Pi / 2)
	x, y := v.Transform().Apply(10, 10)
	assertPoint(t, 10, 10, x, y)
}
