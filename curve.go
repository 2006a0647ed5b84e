package curve3d

import (
	"math"

	"github.com/golang/geo/r3"
)

// Primitive describes a curve parametrized by a fraction. Fractions in
// [0, 1] map to the curve proper; curves also evaluate fractions outside of
// that range, extending the curve naturally.
//
// Distance along the curve is generally not proportional to fraction. The
// derived operations of this package ([Length], [ClosestPoint],
// [AppendPlaneIntersections], [MoveSignedDistance], ...) work for any
// Primitive by driving EmitStrokableParts. Types can implement the optional
// interfaces in this file to substitute exact or faster computations.
//
// Queries treat a curve as immutable; ReverseInPlace and other mutators
// mustn't run concurrently with them.
type Primitive interface {
	// FractionToPoint evaluates the curve at fraction f.
	FractionToPoint(f float64) r3.Vector
	// FractionToPointAndDerivative returns the point at f and the derivative
	// of position with respect to fraction. The derivative isn't normalized.
	FractionToPointAndDerivative(f float64) Ray
	// FractionToPointAnd2Derivatives returns the point at f and the first
	// and second derivatives with respect to fraction.
	FractionToPointAnd2Derivatives(f float64) Derivatives
	// EmitStrokableParts announces the curve to h. Every curve must announce
	// at least its two end points.
	EmitStrokableParts(h StrokeHandler, opts *StrokeOptions)
	// QuickLength returns a fast estimate of the length that is never much
	// smaller than the true length (at most by a factor of π/2).
	QuickLength() float64
	// IsInPlane reports whether the entire curve lies in p.
	IsInPlane(p Plane) bool
	// ReverseInPlace reverses the direction of the curve.
	ReverseInPlace()
}

// DistanceScaler describes curves whose arc length is proportional to
// fraction, such as lines and circular arcs.
type DistanceScaler interface {
	// FractionToDistanceScale returns the distance per unit fraction, and
	// false if distance isn't proportional to fraction.
	FractionToDistanceScale() (float64, bool)
}

// Arclener can be implemented by curves that compute their length directly.
type Arclener interface {
	Length() float64
}

// PartialArclener can be implemented by curves that compute the length of a
// fraction interval directly.
type PartialArclener interface {
	LengthBetweenFractions(f0, f1 float64) float64
}

// UnitTangenter can be implemented by curves with a better way of computing
// the unit tangent than normalizing the derivative.
type UnitTangenter interface {
	UnitTangent(f float64) Ray
}

// FrenetFramer can be implemented by curves that compute their Frenet frame
// directly.
type FrenetFramer interface {
	FrenetFrame(f float64) (Frame, bool)
}

// ClosestPointer can be implemented by curves that solve for the closest
// point directly. The result must satisfy the contract of [ClosestPoint].
type ClosestPointer interface {
	ClosestPoint(pt r3.Vector, extend Extend, result *Location) *Location
}

// PlaneIntersecter can be implemented by curves that intersect planes
// directly. The contract is that of [AppendPlaneIntersections].
type PlaneIntersecter interface {
	AppendPlaneIntersections(dst []Location, plane Plane) ([]Location, int)
}

// DistanceMover can be implemented by curves that move along themselves by
// a distance directly. The contract is that of [MoveSignedDistance].
type DistanceMover interface {
	MoveSignedDistance(startFraction, distance float64, allowExtension bool, result *Location) *Location
}

// StartPoint returns the point at fraction 0.
func StartPoint(c Primitive) r3.Vector { return c.FractionToPoint(0) }

// EndPoint returns the point at fraction 1.
func EndPoint(c Primitive) r3.Vector { return c.FractionToPoint(1) }

// DistanceScale returns the distance per unit fraction of curves whose arc
// length is proportional to fraction. It reports false for all other curves.
func DistanceScale(c Primitive) (float64, bool) {
	if c, ok := c.(DistanceScaler); ok {
		return c.FractionToDistanceScale()
	}
	return 0, false
}

// UnitTangent returns the point at f and the normalized derivative. Where
// the curve's speed is zero, the direction is unreliable.
func UnitTangent(c Primitive, f float64) Ray {
	if c, ok := c.(UnitTangenter); ok {
		return c.UnitTangent(f)
	}
	ray := c.FractionToPointAndDerivative(f)
	ray.Direction = ray.Direction.Normalize()
	return ray
}

// FrenetFrame returns the Frenet frame at f: X is the tangent, Y points
// towards the center of curvature, and Z is the binormal.
//
// Where the second derivative is parallel to the first (as on lines), Y is
// chosen perpendicular to X in the XY plane if possible. FrenetFrame reports
// false if the first derivative vanishes.
func FrenetFrame(c Primitive, f float64) (Frame, bool) {
	if c, ok := c.(FrenetFramer); ok {
		return c.FrenetFrame(f)
	}
	d := c.FractionToPointAnd2Derivatives(f)
	return frenetFrameFromDerivatives(d)
}

func frenetFrameFromDerivatives(d Derivatives) (Frame, bool) {
	speed := d.D1.Norm()
	if speed == 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return Frame{}, false
	}
	x := d.D1.Mul(1 / speed)
	// Gram-Schmidt the second derivative against the tangent.
	w := d.D2.Sub(x.Mul(d.D2.Dot(x)))
	var y r3.Vector
	if w.Norm() <= smallAngle*math.Max(d.D2.Norm(), speed) {
		y = headsUpPerpendicular(x)
	} else {
		y = w.Normalize()
	}
	z := x.Cross(y)
	if z.Norm() < 0.5 {
		return Frame{}, false
	}
	return Frame{Origin: d.Point, X: x, Y: y, Z: z.Normalize()}, true
}

// Length returns the length of the curve.
func Length(c Primitive) float64 {
	if c, ok := c.(Arclener); ok {
		return c.Length()
	}
	return LengthBetweenFractions(c, 0, 1)
}

// LengthBetweenFractions returns the unsigned length of the curve between
// fractions f0 and f1. The fractions may be in either order.
//
// Curves with a distance scale are measured in constant time; all others
// are integrated over their strokes, see [IntegrateLength].
func LengthBetweenFractions(c Primitive, f0, f1 float64) float64 {
	if f0 == f1 {
		return 0
	}
	if c, ok := c.(PartialArclener); ok {
		return c.LengthBetweenFractions(f0, f1)
	}
	if scale, ok := DistanceScale(c); ok {
		return math.Abs((f1 - f0) * scale)
	}
	return IntegrateLength(c, f0, f1, DefaultGaussOrder)
}

// ClosestPoint returns the point on the curve nearest to pt. A of the result
// is the distance between the two points.
//
// The extend flags allow the search to extend the curve beyond its start
// and end. The result is written to result if it is non-nil.
//
// ClosestPoint reports Error only if the curve violates its contract by not
// emitting any strokes.
func ClosestPoint(c Primitive, pt r3.Vector, extend Extend, result *Location) *Location {
	if c, ok := c.(ClosestPointer); ok {
		return c.ClosestPoint(pt, extend, result)
	}
	return closestPointGeneric(c, pt, extend, result)
}

// AppendPlaneIntersections appends the points where the curve crosses plane
// to dst, returning the extended slice and the number of points appended.
//
// Crossings found from adjacent strokes aren't merged, so a crossing exactly
// at a stroke boundary may be reported twice. Curves that lie in the plane
// have no crossings.
func AppendPlaneIntersections(dst []Location, c Primitive, plane Plane) ([]Location, int) {
	if c, ok := c.(PlaneIntersecter); ok {
		return c.AppendPlaneIntersections(dst, plane)
	}
	return appendPlaneIntersectionsGeneric(dst, c, plane)
}

// MoveSignedDistance returns the location reached by moving distance along
// the curve from startFraction; negative distances move towards the start.
//
// If allowExtension is false and the curve ends first, the result stops at
// the end with Status StoppedAtBoundary, and A holds the signed distance
// actually moved. Otherwise A is the requested distance. If the iteration
// fails to converge, the result is the start location with Status Error.
func MoveSignedDistance(c Primitive, startFraction, distance float64, allowExtension bool, result *Location) *Location {
	if c, ok := c.(DistanceMover); ok {
		return c.MoveSignedDistance(startFraction, distance, allowExtension, result)
	}
	return moveSignedDistanceGeneric(c, startFraction, distance, allowExtension, result)
}
