package curve3d

import (
	"math"

	"github.com/golang/geo/r3"
)

// QuadBez is a quadratic Bézier curve.
type QuadBez struct {
	P0 r3.Vector
	P1 r3.Vector
	P2 r3.Vector
}

var _ Primitive = (*QuadBez)(nil)
var _ ClosestPointer = (*QuadBez)(nil)
var _ PlaneIntersecter = (*QuadBez)(nil)

func (q *QuadBez) FractionToPoint(t float64) r3.Vector {
	mt := 1.0 - t
	a := q.P0.Mul(mt * mt)
	b := q.P1.Mul(mt * 2.0)
	c := q.P2.Mul(t)
	d := b.Add(c)
	return a.Add(d.Mul(t))
}

func (q *QuadBez) FractionToPointAndDerivative(t float64) Ray {
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	return Ray{
		Origin:    q.FractionToPoint(t),
		Direction: lerp(d0, t, d1).Mul(2),
	}
}

func (q *QuadBez) FractionToPointAnd2Derivatives(t float64) Derivatives {
	ray := q.FractionToPointAndDerivative(t)
	return Derivatives{
		Point: ray.Origin,
		D1:    ray.Direction,
		D2:    q.P0.Sub(q.P1.Mul(2)).Add(q.P2).Mul(2),
	}
}

// turn returns the angle between the first and last legs of the control
// polygon, which bounds the turning of the curve.
func (q *QuadBez) turn() float64 {
	return float64(q.P1.Sub(q.P0).Angle(q.P2.Sub(q.P1)))
}

func (q *QuadBez) EmitStrokableParts(h StrokeHandler, opts *StrokeOptions) {
	n := opts.applyAngleTol(2, q.turn())
	n = opts.applyMaxEdgeLength(n, q.QuickLength())
	n = opts.applyMinStrokes(n)
	h.StartCurvePrimitive(q)
	h.AnnounceIntervalForUniformStepStrokes(q, n, 0, 1)
	h.EndCurvePrimitive(q)
}

// QuickLength returns the length of the control polygon.
func (q *QuadBez) QuickLength() float64 {
	return q.P0.Distance(q.P1) + q.P1.Distance(q.P2)
}

func (q *QuadBez) IsInPlane(p Plane) bool {
	tol := smallAngle * (1 + q.QuickLength() + p.Origin.Norm())
	return math.Abs(p.Altitude(q.P0)) <= tol &&
		math.Abs(p.Altitude(q.P1)) <= tol &&
		math.Abs(p.Altitude(q.P2)) <= tol
}

func (q *QuadBez) ReverseInPlace() {
	q.P0, q.P2 = q.P2, q.P0
}

// powerBasis returns the coefficients of X(t) = a + b t + c t².
func (q *QuadBez) powerBasis() (a, b, c r3.Vector) {
	a = q.P0
	b = q.P1.Sub(q.P0).Mul(2)
	c = q.P0.Sub(q.P1.Mul(2)).Add(q.P2)
	return a, b, c
}

// ClosestPoint solves the cubic (X(t) - pt) · X'(t) = 0 exactly and compares
// its roots with the end points.
func (q *QuadBez) ClosestPoint(pt r3.Vector, extend Extend, result *Location) *Location {
	a, b, c := q.powerBasis()
	a = a.Sub(pt)
	// (a + b t + c t²) · (b + 2c t)
	c0 := a.Dot(b)
	c1 := b.Dot(b) + 2*a.Dot(c)
	c2 := 3 * b.Dot(c)
	c3 := 2 * c.Dot(c)
	roots, n := SolveCubic(c0, c1, c2, c3)

	candidates := [5]float64{0, 1}
	nc := 2
	for _, t := range roots[:n] {
		candidates[nc] = extend.correctFraction(t)
		nc++
	}
	best := 0.0
	bestDist := math.Inf(1)
	for _, t := range candidates[:nc] {
		if d := q.FractionToPoint(t).Distance(pt); d < bestDist {
			best, bestDist = t, d
		}
	}
	result = evaluatedLocation(q, best, result)
	result.A = bestDist
	return result
}

// AppendPlaneIntersections solves the quadratic altitude of the curve.
func (q *QuadBez) AppendPlaneIntersections(dst []Location, plane Plane) ([]Location, int) {
	a, b, c := q.powerBasis()
	roots, n := SolveQuadratic(plane.Altitude(a), plane.Velocity(b), plane.Velocity(c))
	if allZero(plane.Altitude(q.P0), plane.Altitude(q.P1), plane.Altitude(q.P2)) {
		// The curve lies in the plane.
		return dst, 0
	}
	n0 := len(dst)
	for _, t := range rootsInUnitInterval(roots[:n]) {
		dst = append(dst, *evaluatedLocation(q, t, nil))
	}
	return dst, len(dst) - n0
}

func allZero(vs ...float64) bool {
	for _, v := range vs {
		if v != 0 {
			return false
		}
	}
	return true
}
