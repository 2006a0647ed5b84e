package curve3d

import (
	"math"

	"github.com/golang/geo/r3"
)

// Spiral is a clothoid transition curve in the plane parallel to XY through
// Origin. Its curvature grows linearly with distance, from zero at the start
// to 1/EndRadius at the end; a negative EndRadius turns clockwise, and an
// infinite one is straight.
//
// The spiral is parametrized by arc length, so its distance scale is its
// length. It has no closed form; points are evaluated by integrating the
// bearing, and the spiral strokes itself through a polyline proxy that is
// refined against the spiral by the searches.
type Spiral struct {
	Origin       r3.Vector
	StartBearing float64
	Length       float64
	EndRadius    float64

	reversed bool
	// strokes caches the polyline proxy built for strokesKey.
	strokes    *LineString
	strokesKey spiralKey
}

// spiralKey identifies the geometry a stroke proxy was built for.
type spiralKey struct {
	origin                          r3.Vector
	startBearing, length, endRadius float64
	reversed                        bool
	numStrokes                      int
}

var _ Primitive = (*Spiral)(nil)
var _ DistanceScaler = (*Spiral)(nil)
var _ UnitTangenter = (*Spiral)(nil)

// NewSpiral returns a clothoid of the given length that starts at origin
// heading along startBearing (radians from the x axis). It panics if length
// isn't positive or endRadius is zero.
func NewSpiral(origin r3.Vector, startBearing, length, endRadius float64) *Spiral {
	if !(length > 0) {
		panic("spiral needs a positive length")
	}
	if endRadius == 0 {
		panic("spiral needs a non-zero end radius")
	}
	return &Spiral{
		Origin:       origin,
		StartBearing: startBearing,
		Length:       length,
		EndRadius:    endRadius,
	}
}

// bearing returns the heading at distance s from the origin.
func (sp *Spiral) bearing(s float64) float64 {
	return sp.StartBearing + s*s/(2*sp.EndRadius*sp.Length)
}

// curvature returns the signed curvature at distance s from the origin.
func (sp *Spiral) curvature(s float64) float64 {
	return s / (sp.EndRadius * sp.Length)
}

// totalTurn returns the absolute change of bearing over the spiral.
func (sp *Spiral) totalTurn() float64 {
	return math.Abs(sp.Length / (2 * sp.EndRadius))
}

// distance maps a fraction to the distance from the origin, taking
// reversal into account.
func (sp *Spiral) distance(f float64) float64 {
	if sp.reversed {
		f = 1 - f
	}
	return f * sp.Length
}

// pointAtDistance integrates the unit tangent from the origin to s.
func (sp *Spiral) pointAtDistance(s float64) r3.Vector {
	if s == 0 {
		return sp.Origin
	}
	turn := math.Abs(s * s / (2 * sp.EndRadius * sp.Length))
	n := int(math.Ceil(math.Abs(s)/sp.Length*16)) + int(math.Ceil(turn/0.05))
	g := newGaussMapper(MaxGaussOrder)
	x := g.integrateSteps(func(u float64) float64 { return math.Cos(sp.bearing(u)) }, 0, s, n)
	y := g.integrateSteps(func(u float64) float64 { return math.Sin(sp.bearing(u)) }, 0, s, n)
	return sp.Origin.Add(Vec(x, y, 0))
}

func (sp *Spiral) FractionToDistanceScale() (float64, bool) {
	return sp.Length, true
}

func (sp *Spiral) FractionToPoint(f float64) r3.Vector {
	return sp.pointAtDistance(sp.distance(f))
}

func (sp *Spiral) tangent(s float64) r3.Vector {
	sin, cos := math.Sincos(sp.bearing(s))
	if sp.reversed {
		return Vec(-cos, -sin, 0)
	}
	return Vec(cos, sin, 0)
}

func (sp *Spiral) FractionToPointAndDerivative(f float64) Ray {
	s := sp.distance(f)
	return Ray{
		Origin:    sp.pointAtDistance(s),
		Direction: sp.tangent(s).Mul(sp.Length),
	}
}

func (sp *Spiral) FractionToPointAnd2Derivatives(f float64) Derivatives {
	s := sp.distance(f)
	t := sp.tangent(s)
	// The left normal of the unreversed tangent; reversal flips both the
	// tangent and the direction of travel, so the second derivative keeps
	// its sign.
	sin, cos := math.Sincos(sp.bearing(s))
	normal := Vec(-sin, cos, 0)
	return Derivatives{
		Point: sp.pointAtDistance(s),
		D1:    t.Mul(sp.Length),
		D2:    normal.Mul(sp.curvature(s) * sp.Length * sp.Length),
	}
}

// UnitTangent returns the exact unit tangent, which is defined even where
// evaluation of the derivative would be costly.
func (sp *Spiral) UnitTangent(f float64) Ray {
	s := sp.distance(f)
	return Ray{Origin: sp.pointAtDistance(s), Direction: sp.tangent(s)}
}

// strokeCount returns the number of proxy strokes for the given options.
func (sp *Spiral) strokeCount(opts *StrokeOptions) int {
	n := opts.applyAngleTol(8, sp.totalTurn())
	n = opts.applyMaxEdgeLength(n, sp.Length)
	return opts.applyMinStrokes(n)
}

// proxy returns the polyline proxy, rebuilding it if the geometry or the
// stroke count changed since it was built.
func (sp *Spiral) proxy(opts *StrokeOptions) *LineString {
	key := spiralKey{
		origin:       sp.Origin,
		startBearing: sp.StartBearing,
		length:       sp.Length,
		endRadius:    sp.EndRadius,
		reversed:     sp.reversed,
		numStrokes:   sp.strokeCount(opts),
	}
	if sp.strokes != nil && sp.strokesKey == key {
		return sp.strokes
	}
	n := key.numStrokes
	pts := make([]r3.Vector, n+1)
	for i := range pts {
		pts[i] = sp.FractionToPoint(float64(i) / float64(n))
	}
	sp.strokes = &LineString{Points: pts}
	sp.strokesKey = key
	return sp.strokes
}

// EmitStrokableParts emits the polyline proxy inside a parent scope, so
// that searches refine their results against the spiral itself. The
// proxy's fractions are the spiral's fractions.
func (sp *Spiral) EmitStrokableParts(h StrokeHandler, opts *StrokeOptions) {
	h.StartParentCurvePrimitive(sp)
	sp.proxy(opts).EmitStrokableParts(h, opts)
	h.EndParentCurvePrimitive(sp)
}

// QuickLength returns the exact length.
func (sp *Spiral) QuickLength() float64 {
	return sp.Length
}

func (sp *Spiral) IsInPlane(p Plane) bool {
	tol := smallAngle * (1 + sp.Length + sp.Origin.Norm())
	horizontal := math.Abs(math.Abs(p.Normal.Z)-1) <= smallAngle
	return horizontal && math.Abs(p.Altitude(sp.Origin)) <= tol
}

// ReverseInPlace reverses the direction of travel. The geometry, and thus
// Origin, is unchanged; fraction 0 becomes the far end.
func (sp *Spiral) ReverseInPlace() {
	sp.reversed = !sp.reversed
	sp.strokes = nil
}
