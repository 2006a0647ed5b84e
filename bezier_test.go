package curve3d

import (
	"fmt"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuad() *QuadBez {
	return &QuadBez{Vec(0, 0, 0), Vec(1, 2, 0), Vec(2, 0, 1)}
}

// S-shaped, crossing the x axis at its ends and its middle.
func testCubic() *CubicBez {
	return &CubicBez{Vec(0, 0, 0), Vec(1, 1, 0), Vec(2, -1, 0), Vec(3, 0, 0)}
}

func TestCubicBezDeriv(t *testing.T) {
	c := testCubic()
	const n = 10
	const delta = 1e-6
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		d := c.FractionToPointAnd2Derivatives(ts)
		d1 := c.FractionToPointAnd2Derivatives(ts + delta)
		approxD1 := d1.Point.Sub(d.Point).Mul(1 / delta)
		approxD2 := d1.D1.Sub(d.D1).Mul(1 / delta)
		if l := d.D1.Sub(approxD1).Norm(); l >= delta*20 {
			t.Errorf("first derivative off by %g at %g", l, ts)
		}
		if l := d.D2.Sub(approxD2).Norm(); l >= delta*200 {
			t.Errorf("second derivative off by %g at %g", l, ts)
		}
	}
}

func TestQuadBezDeriv(t *testing.T) {
	q := testQuad()
	const delta = 1e-6
	for _, ts := range []float64{0, 0.25, 0.5, 1} {
		d := q.FractionToPointAnd2Derivatives(ts)
		approxD1 := q.FractionToPoint(ts + delta).Sub(d.Point).Mul(1 / delta)
		if l := d.D1.Sub(approxD1).Norm(); l >= delta*20 {
			t.Errorf("derivative off by %g at %g", l, ts)
		}
	}
}

func TestQuadBezClosestPoint(t *testing.T) {
	q := testQuad()
	for _, pt := range []r3.Vector{
		Vec(1, 1.5, 2),
		Vec(-1, 0, 0),
		Vec(3, 1, 1),
		Vec(1, -1, 0.3),
		Vec(1, 1, 0.25),
	} {
		t.Run(fmt.Sprint(pt), func(t *testing.T) {
			exact := ClosestPoint(q, pt, ExtendNone, nil)
			generic := closestPointGeneric(q, pt, ExtendNone, nil)
			require.True(t, exact.IsSuccess())
			require.True(t, generic.IsSuccess())
			assert.InDelta(t, exact.A, generic.A, 1e-10)
			assert.InDelta(t, exact.Fraction, generic.Fraction, 1e-6)
			assert.InDelta(t, exact.Point.Distance(pt), exact.A, 1e-14)
		})
	}
}

func TestQuadBezClosestPointDegenerate(t *testing.T) {
	// A straight quadratic with uniform speed.
	q := &QuadBez{Vec(0, 0, 0), Vec(1, 0, 0), Vec(2, 0, 0)}
	loc := ClosestPoint(q, Vec(0.5, 1, 0), ExtendNone, nil)
	assert.InDelta(t, 0.25, loc.Fraction, 1e-14)
	assert.InDelta(t, 1, loc.A, 1e-14)
	assert.InDelta(t, 2, Length(q), 1e-14)
}

func TestQuadBezPlaneIntersections(t *testing.T) {
	q := testQuad()
	plane := NewPlane(Vec(0, 0.5, 0), Vec(0, 1, 0))
	exact, n := AppendPlaneIntersections(nil, q, plane)
	require.Equal(t, 2, n)
	generic, n := appendPlaneIntersectionsGeneric(nil, q, plane)
	require.Equal(t, 2, n)
	// 4t(1-t) = 0.5
	want := []float64{(1 - math.Sqrt(0.5)) / 2, (1 + math.Sqrt(0.5)) / 2}
	for i := range want {
		assert.InDelta(t, want[i], exact[i].Fraction, 1e-14)
		assert.InDelta(t, want[i], generic[i].Fraction, 1e-12)
		assert.InDelta(t, 0.5, exact[i].Point.Y, 1e-14)
	}

	_, n = AppendPlaneIntersections(nil, q, NewPlane(Vec(0, 5, 0), Vec(0, 1, 0)))
	assert.Equal(t, 0, n)
}

func TestCubicBezPlaneIntersections(t *testing.T) {
	c := testCubic()
	plane := NewPlane(Vec(0, 0, 0), Vec(0, 1, 0))
	exact, n := AppendPlaneIntersections(nil, c, plane)
	require.Equal(t, 3, n)
	generic, n := appendPlaneIntersectionsGeneric(nil, c, plane)
	require.Equal(t, 3, n)
	for i, want := range []float64{0, 0.5, 1} {
		assert.InDelta(t, want, exact[i].Fraction, 1e-12)
		assert.InDelta(t, want, generic[i].Fraction, 1e-12)
	}
	diff(t, exact, generic, ignoreCurve, approx(1e-12))

	// The plane of the curve.
	_, n = AppendPlaneIntersections(nil, c, NewPlane(Vec(0, 0, 0), Vec(0, 0, 1)))
	assert.Equal(t, 0, n)
	_, n = appendPlaneIntersectionsGeneric(nil, c, NewPlane(Vec(0, 0, 0), Vec(0, 0, 1)))
	assert.Equal(t, 0, n)
}

func TestCubicBezLength(t *testing.T) {
	c := testCubic()
	want := polylineLength(c, 0, 1, 100000)
	got := Length(c)
	assert.InDelta(t, want, got, 1e-7)
	assert.GreaterOrEqual(t, c.QuickLength(), got)

	assert.Equal(t, LengthBetweenFractions(c, 0.2, 0.7), LengthBetweenFractions(c, 0.7, 0.2))
	assert.InDelta(t, polylineLength(c, 0.2, 0.7, 100000), LengthBetweenFractions(c, 0.2, 0.7), 1e-7)

	// Lower orders converge on the same length.
	assert.InDelta(t, got, IntegrateLength(c, 0, 1, 3), 1e-4)
}

func TestCubicBezMove(t *testing.T) {
	c := testCubic()
	d := LengthBetweenFractions(c, 0.2, 0.7)

	loc := MoveSignedDistance(c, 0.2, d, false, nil)
	require.Equal(t, Success, loc.Status)
	assert.InDelta(t, 0.7, loc.Fraction, 1e-7)
	assert.Equal(t, d, loc.A)
	assert.True(t, near(c.FractionToPoint(loc.Fraction), loc.Point, 0))

	loc = MoveSignedDistance(c, 0.7, -d, false, nil)
	require.Equal(t, Success, loc.Status)
	assert.InDelta(t, 0.2, loc.Fraction, 1e-7)

	// Stopping at the boundaries.
	length := Length(c)
	loc = MoveSignedDistance(c, 0.5, 2*length, false, nil)
	assert.Equal(t, StoppedAtBoundary, loc.Status)
	assert.Equal(t, 1.0, loc.Fraction)
	assert.InDelta(t, LengthBetweenFractions(c, 0.5, 1), loc.A, 1e-12)

	loc = MoveSignedDistance(c, 0.5, -2*length, false, nil)
	assert.Equal(t, StoppedAtBoundary, loc.Status)
	assert.Equal(t, 0.0, loc.Fraction)
	assert.InDelta(t, -LengthBetweenFractions(c, 0, 0.5), loc.A, 1e-12)

	// Extension past the end.
	beyond := LengthBetweenFractions(c, 0.9, 1) + 0.5
	loc = MoveSignedDistance(c, 0.9, beyond, true, nil)
	require.Equal(t, Success, loc.Status)
	assert.Greater(t, loc.Fraction, 1.0)
	assert.InDelta(t, beyond, lengthBetweenExtended(c, 0.9, loc.Fraction), 1e-7)
}

func TestBezierReverse(t *testing.T) {
	for _, c := range []Primitive{testQuad(), testCubic()} {
		start, end := StartPoint(c), EndPoint(c)
		mid := c.FractionToPoint(0.3)
		c.ReverseInPlace()
		assert.True(t, near(end, StartPoint(c), 1e-15))
		assert.True(t, near(start, EndPoint(c), 1e-15))
		assert.True(t, near(mid, c.FractionToPoint(0.7), 1e-14))
	}
}
