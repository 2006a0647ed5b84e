package curve3d

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpiral() *Spiral {
	return NewSpiral(Vec(10, 20, 5), 0, 100, 200)
}

// fresnelPoint evaluates the spiral from its power series.
func fresnelPoint(sp *Spiral, s float64) r3.Vector {
	a := 1 / (2 * sp.EndRadius * sp.Length)
	var x, y float64
	fact := 1.0 // (2n)!
	for n := range 10 {
		if n > 0 {
			fact *= float64(2*n) * float64(2*n-1)
		}
		sign := 1.0
		if n%2 == 1 {
			sign = -1
		}
		x += sign * math.Pow(a, float64(2*n)) * math.Pow(s, float64(4*n+1)) / (fact * float64(4*n+1))
		y += sign * math.Pow(a, float64(2*n+1)) * math.Pow(s, float64(4*n+3)) / (fact * float64(2*n+1) * float64(4*n+3))
	}
	return sp.Origin.Add(Vec(x, y, 0))
}

func TestSpiralEval(t *testing.T) {
	sp := testSpiral()
	diff(t, sp.Origin, StartPoint(sp))
	for _, f := range []float64{0.1, 0.5, 0.9, 1} {
		want := fresnelPoint(sp, f*sp.Length)
		got := sp.FractionToPoint(f)
		assert.True(t, near(want, got, 1e-9), "at %g: got %v, want %v", f, got, want)
	}

	// Arc length parametrization: unit speed times length.
	ray := sp.FractionToPointAndDerivative(0.3)
	assert.InDelta(t, 100, ray.Direction.Norm(), 1e-12)
	tangent := UnitTangent(sp, 1)
	diff(t, Vec(math.Cos(0.25), math.Sin(0.25), 0), tangent.Direction, approx(1e-15))
}

func TestSpiralFrenetFrame(t *testing.T) {
	sp := testSpiral()
	fr, ok := FrenetFrame(sp, 1)
	require.True(t, ok)
	diff(t, Vec(math.Cos(0.25), math.Sin(0.25), 0), fr.X, approx(1e-14))
	diff(t, Vec(-math.Sin(0.25), math.Cos(0.25), 0), fr.Y, approx(1e-14))
	diff(t, Vec(0, 0, 1), fr.Z, approx(1e-14))

	// The start has no curvature, so the frame falls back to the heads-up
	// perpendicular, which agrees here.
	fr, ok = FrenetFrame(sp, 0)
	require.True(t, ok)
	diff(t, Vec(0, 1, 0), fr.Y, approx(1e-14))
}

func TestSpiralLength(t *testing.T) {
	sp := testSpiral()
	assert.Equal(t, 100.0, Length(sp))
	assert.InDelta(t, 25, LengthBetweenFractions(sp, 0.5, 0.25), 1e-12)

	// Integrated over the proxy strokes, the spiral itself is measured, not
	// the shorter chords.
	assert.InDelta(t, 100, IntegrateLength(sp, 0, 1, DefaultGaussOrder), 1e-10)
	assert.InDelta(t, 40, IntegrateLength(sp, 0.3, 0.7, DefaultGaussOrder), 1e-10)
	chords := sp.proxy(nil).Length()
	assert.Less(t, chords, 100.0)
}

func TestSpiralClosestPoint(t *testing.T) {
	sp := testSpiral()
	const f = 0.37
	d := sp.FractionToPointAnd2Derivatives(f)
	normal := d.D2.Normalize()
	// On the concave side, where the chords are nearer than the curve.
	pt := d.Point.Add(normal.Mul(5))

	loc := ClosestPoint(sp, pt, ExtendNone, nil)
	require.True(t, loc.IsSuccess())
	assert.InDelta(t, f, loc.Fraction, 1e-9)
	assert.InDelta(t, 5, loc.A, 1e-8)
	assert.True(t, near(sp.FractionToPoint(loc.Fraction), loc.Point, 0))
	assert.Same(t, sp, loc.Curve)

	// And from the convex side.
	pt = d.Point.Sub(normal.Mul(5))
	loc = ClosestPoint(sp, pt, ExtendNone, nil)
	assert.InDelta(t, f, loc.Fraction, 1e-9)
	assert.InDelta(t, 5, loc.A, 1e-8)
}

func TestSpiralPlaneIntersection(t *testing.T) {
	sp := testSpiral()
	want := sp.FractionToPoint(0.6)
	locs, n := AppendPlaneIntersections(nil, sp, NewPlane(want, Vec(1, 0, 0)))
	require.Equal(t, 1, n)
	assert.InDelta(t, 0.6, locs[0].Fraction, 1e-10)
	assert.Same(t, sp, locs[0].Curve)
	assert.True(t, near(want, locs[0].Point, 1e-8))

	// The spiral's plane.
	assert.True(t, sp.IsInPlane(NewPlane(Vec(0, 0, 5), Vec(0, 0, 1))))
	assert.False(t, sp.IsInPlane(NewPlane(Vec(0, 0, 5), Vec(0, 1, 1))))
	_, n = AppendPlaneIntersections(nil, sp, NewPlane(Vec(0, 0, 5), Vec(0, 0, 1)))
	assert.Equal(t, 0, n)
}

func TestSpiralMove(t *testing.T) {
	sp := testSpiral()
	loc := MoveSignedDistance(sp, 0.2, 30, false, nil)
	assert.Equal(t, Success, loc.Status)
	assert.InDelta(t, 0.5, loc.Fraction, 1e-15)

	loc = MoveSignedDistance(sp, 0.9, 30, false, nil)
	assert.Equal(t, StoppedAtBoundary, loc.Status)
	assert.InDelta(t, 10, loc.A, 1e-12)
}

func TestSpiralReverse(t *testing.T) {
	sp := testSpiral()
	start, end := StartPoint(sp), EndPoint(sp)
	mid := sp.FractionToPoint(0.3)
	// Populate the stroke cache before reversing.
	ClosestPoint(sp, mid, ExtendNone, nil)

	sp.ReverseInPlace()
	assert.True(t, near(end, StartPoint(sp), 1e-12))
	assert.True(t, near(start, EndPoint(sp), 1e-12))
	assert.True(t, near(mid, sp.FractionToPoint(0.7), 1e-12))

	loc := ClosestPoint(sp, mid, ExtendNone, nil)
	assert.InDelta(t, 0.7, loc.Fraction, 1e-9)
	assert.InDelta(t, 0, loc.A, 1e-8)

	// Reversal flips the tangent.
	before := UnitTangent(sp, 0.7).Direction
	sp.ReverseInPlace()
	after := UnitTangent(sp, 0.3).Direction
	diff(t, after.Mul(-1), before, approx(1e-15))
}

func TestSpiralEmit(t *testing.T) {
	var h recordingHandler
	sp := testSpiral()
	sp.EmitStrokableParts(&h, &StrokeOptions{MinStrokesPerPrimitive: 3})
	// The proxy has the default eight segments, more than requested.
	require.Len(t, h.events, 12)
	assert.Equal(t, "startParent", h.events[0])
	assert.Equal(t, "start", h.events[1])
	assert.Equal(t, "end", h.events[10])
	assert.Equal(t, "endParent", h.events[11])
	assert.Equal(t, [2]float64{0.875, 1}, h.fractions[7])
}

func TestSpiralMutate(t *testing.T) {
	sp := NewSpiral(Vec(0, 0, 0), 0, 100, 200)
	_, n := AppendPlaneIntersections(nil, sp, NewPlane(Vec(50, 0, 0), Vec(1, 0, 0)))
	require.Equal(t, 1, n)

	// The proxy built for the longer spiral must not be reused.
	sp.Length = 20
	locs, n := AppendPlaneIntersections(nil, sp, NewPlane(Vec(15, 0, 0), Vec(1, 0, 0)))
	require.Equal(t, 1, n)
	assert.InDelta(t, 0.75, locs[0].Fraction, 1e-3)
	assert.InDelta(t, 15, locs[0].Point.X, 1e-9)
	assert.True(t, near(sp.FractionToPoint(locs[0].Fraction), locs[0].Point, 0))

	proxy := sp.proxy(nil)
	assert.True(t, near(EndPoint(sp), proxy.Points[len(proxy.Points)-1], 0))

	sp.Origin = Vec(0, 0, 7)
	loc := ClosestPoint(sp, Vec(10, 0, 7), ExtendNone, nil)
	assert.InDelta(t, 0.5, loc.Fraction, 1e-3)
	assert.Less(t, loc.A, 0.1)
}

func TestSpiralStraight(t *testing.T) {
	sp := NewSpiral(Vec(1, 2, 3), math.Pi/2, 10, math.Inf(1))
	assert.True(t, near(Vec(1, 12, 3), EndPoint(sp), 1e-14))
	assert.True(t, near(Vec(1, 7, 3), sp.FractionToPoint(0.5), 1e-14))
	assert.Equal(t, 10.0, Length(sp))
}

func TestNewSpiralPanics(t *testing.T) {
	assert.Panics(t, func() { NewSpiral(Vec(0, 0, 0), 0, 100, 0) }, "zero radius")
	assert.Panics(t, func() { NewSpiral(Vec(0, 0, 0), 0, 0, 200) }, "zero length")
	assert.Panics(t, func() { NewSpiral(Vec(0, 0, 0), 0, math.NaN(), 200) }, "NaN length")
}
