package curve3d

import (
	"math"

	"github.com/golang/geo/r3"
)

// LineSegment represents a straight line segment.
type LineSegment struct {
	// The segment's start point.
	P0 r3.Vector
	// The segment's end point.
	P1 r3.Vector
}

var _ Primitive = (*LineSegment)(nil)
var _ DistanceScaler = (*LineSegment)(nil)
var _ ClosestPointer = (*LineSegment)(nil)
var _ PlaneIntersecter = (*LineSegment)(nil)

// NewLineSegment returns the segment from p0 to p1.
func NewLineSegment(p0, p1 r3.Vector) *LineSegment {
	return &LineSegment{P0: p0, P1: p1}
}

// Length returns the length of the segment.
func (l *LineSegment) Length() float64 {
	return l.P0.Distance(l.P1)
}

func (l *LineSegment) FractionToDistanceScale() (float64, bool) {
	return l.Length(), true
}

func (l *LineSegment) FractionToPoint(f float64) r3.Vector {
	return lerp(l.P0, f, l.P1)
}

func (l *LineSegment) FractionToPointAndDerivative(f float64) Ray {
	return Ray{Origin: l.FractionToPoint(f), Direction: l.P1.Sub(l.P0)}
}

func (l *LineSegment) FractionToPointAnd2Derivatives(f float64) Derivatives {
	return Derivatives{Point: l.FractionToPoint(f), D1: l.P1.Sub(l.P0)}
}

func (l *LineSegment) EmitStrokableParts(h StrokeHandler, opts *StrokeOptions) {
	h.StartCurvePrimitive(l)
	n := opts.applyMaxEdgeLength(1, l.Length())
	h.AnnounceSegmentInterval(l, l.P0, l.P1, n, 0, 1)
	h.EndCurvePrimitive(l)
}

// QuickLength returns the exact length.
func (l *LineSegment) QuickLength() float64 {
	return l.Length()
}

func (l *LineSegment) IsInPlane(p Plane) bool {
	tol := smallAngle * (1 + l.QuickLength() + p.Origin.Norm())
	return math.Abs(p.Altitude(l.P0)) <= tol && math.Abs(p.Altitude(l.P1)) <= tol
}

func (l *LineSegment) ReverseInPlace() {
	l.P0, l.P1 = l.P1, l.P0
}

// ClosestPoint projects pt onto the segment.
func (l *LineSegment) ClosestPoint(pt r3.Vector, extend Extend, result *Location) *Location {
	f := extend.correctFraction(fractionOfProjection(pt, l.P0, l.P1, 0))
	result = evaluatedLocation(l, f, result)
	result.A = result.Point.Distance(pt)
	return result
}

// CrossingPlane returns the fraction at which the infinite line through the
// segment crosses p. It reports false if the segment is parallel to p.
func (l *LineSegment) CrossingPlane(p Plane) (float64, bool) {
	h0 := p.Altitude(l.P0)
	h1 := p.Altitude(l.P1)
	return inverseInterpolate(0, h0, 1, h1, 0)
}

// AppendPlaneIntersections appends the crossing of the segment with p, if
// there is one. End points within tolerance of p count as crossings.
func (l *LineSegment) AppendPlaneIntersections(dst []Location, p Plane) ([]Location, int) {
	if l.IsInPlane(p) {
		return dst, 0
	}
	tol := planeTolerance(l)
	h0 := snapAltitude(p.Altitude(l.P0), tol)
	h1 := snapAltitude(p.Altitude(l.P1), tol)
	if h0*h1 > 0 {
		return dst, 0
	}
	var f float64
	switch {
	case h0 == 0:
		f = 0
	case h1 == 0:
		f = 1
	default:
		var ok bool
		if f, ok = l.CrossingPlane(p); !ok {
			return dst, 0
		}
		f = clamp(f, 0, 1)
	}
	loc := evaluatedLocation(l, f, nil)
	loc.Status = Success
	return append(dst, *loc), 1
}
