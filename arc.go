package curve3d

import (
	"math"

	"github.com/golang/geo/r3"
)

// Arc is an elliptical arc
//
//	X(θ) = Center + cos(θ) Vector0 + sin(θ) Vector90
//
// for θ from StartAngle to StartAngle+SweepAngle. When Vector0 and Vector90
// are perpendicular and of equal length, the arc is circular.
type Arc struct {
	Center     r3.Vector
	Vector0    r3.Vector
	Vector90   r3.Vector
	StartAngle float64
	SweepAngle float64
}

var _ Primitive = (*Arc)(nil)
var _ DistanceScaler = (*Arc)(nil)

// NewCircularArc returns an arc in the plane parallel to XY through center.
// Angles are in radians, measured from the positive x axis.
func NewCircularArc(center r3.Vector, radius, startAngle, sweepAngle float64) *Arc {
	return &Arc{
		Center:     center,
		Vector0:    Vec(radius, 0, 0),
		Vector90:   Vec(0, radius, 0),
		StartAngle: startAngle,
		SweepAngle: sweepAngle,
	}
}

// NewArcThroughPoints returns the circular arc from p0 through p1 to p2. It
// reports false if the points are collinear.
func NewArcThroughPoints(p0, p1, p2 r3.Vector) (*Arc, bool) {
	u := p1.Sub(p0)
	v := p2.Sub(p0)
	n := u.Cross(v)
	n2 := n.Norm2()
	if n2 <= smallAngle*smallAngle*u.Norm2()*v.Norm2() {
		return nil, false
	}
	// Circumcenter of the triangle.
	center := p0.Add(v.Cross(n).Mul(u.Norm2()).Add(n.Cross(u).Mul(v.Norm2())).Mul(1 / (2 * n2)))
	vector0 := p0.Sub(center)
	radius := vector0.Norm()
	vector90 := n.Normalize().Cross(vector0).Normalize().Mul(radius)
	a := &Arc{Center: center, Vector0: vector0, Vector90: vector90}
	a.SweepAngle = a.angleOf(p2)
	if a.SweepAngle <= 0 {
		a.SweepAngle += 2 * math.Pi
	}
	return a, true
}

// angleOf returns the angle in (-π, π] of the projection of pt onto the
// arc's plane, for circular arcs.
func (a *Arc) angleOf(pt r3.Vector) float64 {
	d := pt.Sub(a.Center)
	return math.Atan2(d.Dot(a.Vector90)/a.Vector90.Norm2(), d.Dot(a.Vector0)/a.Vector0.Norm2())
}

// IsCircular reports whether the arc is a circular arc.
func (a *Arc) IsCircular() bool {
	r0 := a.Vector0.Norm()
	r90 := a.Vector90.Norm()
	return math.Abs(r0-r90) <= smallAngle*max(r0, r90) &&
		math.Abs(a.Vector0.Dot(a.Vector90)) <= smallAngle*r0*r90
}

func (a *Arc) FractionToDistanceScale() (float64, bool) {
	if !a.IsCircular() {
		return 0, false
	}
	return a.Vector0.Norm() * math.Abs(a.SweepAngle), true
}

func (a *Arc) angle(f float64) float64 {
	return a.StartAngle + f*a.SweepAngle
}

func (a *Arc) FractionToPoint(f float64) r3.Vector {
	s, c := math.Sincos(a.angle(f))
	return a.Center.Add(a.Vector0.Mul(c)).Add(a.Vector90.Mul(s))
}

func (a *Arc) FractionToPointAndDerivative(f float64) Ray {
	s, c := math.Sincos(a.angle(f))
	return Ray{
		Origin:    a.Center.Add(a.Vector0.Mul(c)).Add(a.Vector90.Mul(s)),
		Direction: a.Vector0.Mul(-s * a.SweepAngle).Add(a.Vector90.Mul(c * a.SweepAngle)),
	}
}

func (a *Arc) FractionToPointAnd2Derivatives(f float64) Derivatives {
	s, c := math.Sincos(a.angle(f))
	radial := a.Vector0.Mul(c).Add(a.Vector90.Mul(s))
	return Derivatives{
		Point: a.Center.Add(radial),
		D1:    a.Vector0.Mul(-s * a.SweepAngle).Add(a.Vector90.Mul(c * a.SweepAngle)),
		D2:    radial.Mul(-a.SweepAngle * a.SweepAngle),
	}
}

func (a *Arc) EmitStrokableParts(h StrokeHandler, opts *StrokeOptions) {
	radius := max(a.Vector0.Norm(), a.Vector90.Norm())
	n := opts.applyAngleTol(1, a.SweepAngle)
	n = opts.applyChordTol(n, radius, a.SweepAngle)
	n = opts.applyMaxEdgeLength(n, a.QuickLength())
	n = opts.applyMinStrokes(n)
	h.StartCurvePrimitive(a)
	h.AnnounceIntervalForUniformStepStrokes(a, n, 0, 1)
	h.EndCurvePrimitive(a)
}

// QuickLength returns the exact length of circular arcs, and the length of
// the circular arc of the larger radius otherwise.
func (a *Arc) QuickLength() float64 {
	return max(a.Vector0.Norm(), a.Vector90.Norm()) * math.Abs(a.SweepAngle)
}

func (a *Arc) IsInPlane(p Plane) bool {
	scale := 1 + a.QuickLength() + a.Center.Norm()
	return math.Abs(p.Altitude(a.Center)) <= smallAngle*scale &&
		math.Abs(p.Velocity(a.Vector0)) <= smallAngle*scale &&
		math.Abs(p.Velocity(a.Vector90)) <= smallAngle*scale
}

func (a *Arc) ReverseInPlace() {
	a.StartAngle += a.SweepAngle
	a.SweepAngle = -a.SweepAngle
}
