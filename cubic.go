package curve3d

import (
	"math"

	"github.com/golang/geo/r3"
)

// CubicBez is a cubic Bézier curve.
type CubicBez struct {
	P0 r3.Vector
	P1 r3.Vector
	P2 r3.Vector
	P3 r3.Vector
}

var _ Primitive = (*CubicBez)(nil)
var _ PlaneIntersecter = (*CubicBez)(nil)

func (cb *CubicBez) FractionToPoint(t float64) r3.Vector {
	mt := 1.0 - t
	a := cb.P0.Mul(mt * mt * mt)
	b := cb.P1.Mul(mt * mt * 3.0)
	c := cb.P2.Mul(mt * 3.0)
	d := cb.P3
	return a.Add(b.Add(c.Add(d.Mul(t)).Mul(t)).Mul(t))
}

// Differentiate returns the derivative curve, scaled down by 3.
func (cb *CubicBez) Differentiate() QuadBez {
	return QuadBez{
		cb.P1.Sub(cb.P0),
		cb.P2.Sub(cb.P1),
		cb.P3.Sub(cb.P2),
	}
}

func (cb *CubicBez) FractionToPointAndDerivative(t float64) Ray {
	d := cb.Differentiate()
	return Ray{
		Origin:    cb.FractionToPoint(t),
		Direction: d.FractionToPoint(t).Mul(3),
	}
}

func (cb *CubicBez) FractionToPointAnd2Derivatives(t float64) Derivatives {
	d := cb.Differentiate()
	dd := d.FractionToPointAndDerivative(t)
	return Derivatives{
		Point: cb.FractionToPoint(t),
		D1:    dd.Origin.Mul(3),
		D2:    dd.Direction.Mul(3),
	}
}

// turn bounds the turning of the curve by the turning of its control
// polygon.
func (cb *CubicBez) turn() float64 {
	d := cb.Differentiate()
	var sum float64
	if d.P0.Norm2() > 0 && d.P1.Norm2() > 0 {
		sum += float64(d.P0.Angle(d.P1))
	}
	if d.P1.Norm2() > 0 && d.P2.Norm2() > 0 {
		sum += float64(d.P1.Angle(d.P2))
	}
	if d.P1.Norm2() == 0 && d.P0.Norm2() > 0 && d.P2.Norm2() > 0 {
		sum += float64(d.P0.Angle(d.P2))
	}
	return sum
}

func (cb *CubicBez) EmitStrokableParts(h StrokeHandler, opts *StrokeOptions) {
	n := opts.applyAngleTol(4, cb.turn())
	n = opts.applyMaxEdgeLength(n, cb.QuickLength())
	n = opts.applyMinStrokes(n)
	h.StartCurvePrimitive(cb)
	h.AnnounceIntervalForUniformStepStrokes(cb, n, 0, 1)
	h.EndCurvePrimitive(cb)
}

// QuickLength returns the length of the control polygon.
func (cb *CubicBez) QuickLength() float64 {
	return cb.P0.Distance(cb.P1) + cb.P1.Distance(cb.P2) + cb.P2.Distance(cb.P3)
}

func (cb *CubicBez) IsInPlane(p Plane) bool {
	tol := smallAngle * (1 + cb.QuickLength() + p.Origin.Norm())
	for _, pt := range [...]r3.Vector{cb.P0, cb.P1, cb.P2, cb.P3} {
		if math.Abs(p.Altitude(pt)) > tol {
			return false
		}
	}
	return true
}

func (cb *CubicBez) ReverseInPlace() {
	cb.P0, cb.P1, cb.P2, cb.P3 = cb.P3, cb.P2, cb.P1, cb.P0
}

// AppendPlaneIntersections solves the cubic altitude of the curve.
func (cb *CubicBez) AppendPlaneIntersections(dst []Location, plane Plane) ([]Location, int) {
	h0 := plane.Altitude(cb.P0)
	h1 := plane.Altitude(cb.P1)
	h2 := plane.Altitude(cb.P2)
	h3 := plane.Altitude(cb.P3)
	if allZero(h0, h1, h2, h3) {
		return dst, 0
	}
	// Bernstein to power basis.
	c0 := h0
	c1 := 3 * (h1 - h0)
	c2 := 3 * (h2 - 2*h1 + h0)
	c3 := h3 - 3*h2 + 3*h1 - h0
	roots, n := SolveCubic(c0, c1, c2, c3)
	n0 := len(dst)
	for _, t := range rootsInUnitInterval(roots[:n]) {
		dst = append(dst, *evaluatedLocation(cb, t, nil))
	}
	return dst, len(dst) - n0
}
