package curve3d

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Vec returns the vector ⟨x, y, z⟩.
func Vec(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}

// Ray is a point together with a direction. Curves use it to report a point
// and its (unnormalized) derivative.
type Ray struct {
	Origin    r3.Vector
	Direction r3.Vector
}

func (r Ray) String() string {
	return fmt.Sprintf("%v → %v", r.Origin, r.Direction)
}

// Derivatives holds a point on a curve and the first two derivatives of
// position with respect to fraction.
type Derivatives struct {
	Point r3.Vector
	D1    r3.Vector
	D2    r3.Vector
}

// Frame is a right-handed orthonormal frame.
type Frame struct {
	Origin r3.Vector
	X      r3.Vector
	Y      r3.Vector
	Z      r3.Vector
}

// Plane is a plane given by a point on it and a unit normal. Points on the
// side the normal points to have positive altitude.
type Plane struct {
	Origin r3.Vector
	Normal r3.Vector
}

// NewPlane returns the plane through origin with the given normal. The
// normal is normalized; a zero normal yields a plane for which every
// altitude is 0.
func NewPlane(origin, normal r3.Vector) Plane {
	return Plane{Origin: origin, Normal: normal.Normalize()}
}

// Altitude returns the signed distance of pt from the plane.
func (p Plane) Altitude(pt r3.Vector) float64 {
	return pt.Sub(p.Origin).Dot(p.Normal)
}

// Velocity returns the rate of change of altitude along v.
func (p Plane) Velocity(v r3.Vector) float64 {
	return v.Dot(p.Normal)
}

// ProjectPoint returns the point on the plane closest to pt.
func (p Plane) ProjectPoint(pt r3.Vector) r3.Vector {
	return pt.Sub(p.Normal.Mul(p.Altitude(pt)))
}

// interpolate returns a + f(b-a) in a form that is exact at both ends.
func interpolate(a, f, b float64) float64 {
	return (1-f)*a + f*b
}

// lerp linearly interpolates between two points. It returns a and b exactly
// for f = 0 and f = 1.
func lerp(a r3.Vector, f float64, b r3.Vector) r3.Vector {
	return r3.Vector{
		X: interpolate(a.X, f, b.X),
		Y: interpolate(a.Y, f, b.Y),
		Z: interpolate(a.Z, f, b.Z),
	}
}

// fractionOfProjection returns the fraction along p0→p1 of the projection of
// pt onto the line through them. A degenerate line yields defaultFraction.
func fractionOfProjection(pt, p0, p1 r3.Vector, defaultFraction float64) float64 {
	d := p1.Sub(p0)
	d2 := d.Norm2()
	if d2 == 0 {
		return defaultFraction
	}
	return pt.Sub(p0).Dot(d) / d2
}

// inverseInterpolate returns the x at which the line through (x0, f0) and
// (x1, f1) crosses fTarget. It reports false if f0 == f1.
func inverseInterpolate(x0, f0, x1, f1, fTarget float64) (float64, bool) {
	df := f1 - f0
	if df == 0 {
		return 0, false
	}
	return x0 + (x1-x0)*(fTarget-f0)/df, true
}

func clamp(x, lo, hi float64) float64 {
	return max(lo, min(hi, x))
}

// isSmallRelative reports whether x is negligible compared to scale.
func isSmallRelative(x, scale float64) bool {
	return math.Abs(x) <= smallAngle*(1+math.Abs(scale))
}

// smallAngle is the relative tolerance below which quantities are treated as
// zero, and the tolerance for geometric comparisons of unit vectors.
const smallAngle = 1e-12

// headsUpPerpendicular returns a unit vector perpendicular to the unit
// vector x, chosen so that it lies in the global XY plane whenever x is not
// (nearly) vertical.
func headsUpPerpendicular(x r3.Vector) r3.Vector {
	const verticalTolerance = 1.0e-4
	z := Vec(0, 0, 1)
	if math.Hypot(x.X, x.Y) < verticalTolerance {
		// x is nearly vertical, so favor the XZ plane instead.
		return x.Cross(Vec(0, 1, 0)).Normalize()
	}
	return z.Cross(x).Normalize()
}
