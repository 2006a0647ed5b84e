package curve3d

import (
	"math"

	"github.com/golang/geo/r3"
)

func closestPointGeneric(c Primitive, pt r3.Vector, extend Extend, result *Location) *Location {
	h := newClosestPointHandler(pt, extend)
	c.EmitStrokableParts(h, nil)
	return h.claimResult(c, result)
}

// closestPointHandler searches the announced strokes for the point nearest
// to a space point.
//
// For sampled intervals it looks for sign changes of
//
//	f(fraction) = (X(fraction) - spacePoint) · X'(fraction)
//
// which vanishes where the curve is perpendicular to the direction to the
// space point. Every sample and every chord end is also a candidate, so the
// search always has an answer for curves that announce their ends.
type closestPointHandler struct {
	strokeScope
	spacePoint r3.Vector
	extend     Extend
	newton     NewtonSolver

	best  Location
	found bool

	// The previous sample of the current sampled run.
	fractionA float64
	functionA float64
	// The sample just announced.
	fractionB    float64
	functionB    float64
	numThisCurve int
}

var _ StrokeHandler = (*closestPointHandler)(nil)

func newClosestPointHandler(pt r3.Vector, extend Extend) *closestPointHandler {
	return &closestPointHandler{
		spacePoint: pt,
		extend:     extend,
		newton:     DefaultNewtonSolver(),
	}
}

func (h *closestPointHandler) claimResult(c Primitive, result *Location) *Location {
	result = reuseLocation(result)
	if !h.found {
		tracer().Debugf("closest point: %T announced no strokes", c)
		result.Curve = c
		result.Status = Error
		return result
	}
	*result = h.best
	result.Status = Success
	return result
}

func (h *closestPointHandler) StartCurvePrimitive(c Primitive) {
	h.curve = c
	h.numThisCurve = 0
	h.fractionA, h.functionA = 0, 0
	h.fractionB, h.functionB = 0, 0
}

func (h *closestPointHandler) EndCurvePrimitive(c Primitive) {}

// EndParentCurvePrimitive polishes the winning fraction against the exact
// parent curve before the proxy scope ends.
func (h *closestPointHandler) EndParentCurvePrimitive(c Primitive) {
	if h.found && h.best.Curve == c {
		// Chord candidates carry chord points, which may be nearer than
		// the curve. Move the record onto the curve before comparing.
		h.best.Point = c.FractionToPoint(h.best.Fraction)
		h.best.A = h.best.Point.Distance(h.spacePoint)
		fraction, ok := h.newton.SolveApprox(h.perpendicularity(c), h.best.Fraction)
		if ok {
			fraction = h.extend.correctFraction(fraction)
			point := c.FractionToPoint(fraction)
			if d := point.Distance(h.spacePoint); d <= h.best.A {
				h.best.Fraction = fraction
				h.best.Point = point
				h.best.A = d
			}
		}
	}
	h.strokeScope.EndParentCurvePrimitive(c)
}

// perpendicularity returns the function whose roots are the fractions at
// which c is perpendicular to the direction to the space point.
func (h *closestPointHandler) perpendicularity(c Primitive) func(float64) float64 {
	return func(f float64) float64 {
		ray := c.FractionToPointAndDerivative(f)
		return ray.Origin.Sub(h.spacePoint).Dot(ray.Direction)
	}
}

// announceCandidate records point if it is strictly nearer than the best so
// far.
func (h *closestPointHandler) announceCandidate(c Primitive, fraction float64, point r3.Vector) {
	d := point.Distance(h.spacePoint)
	if h.found && d >= h.best.A {
		return
	}
	h.found = true
	h.best = Location{
		Curve:    h.effective(c),
		Fraction: fraction,
		Point:    point,
		A:        d,
	}
}

func (h *closestPointHandler) announceSolutionFraction(c Primitive, fraction float64) {
	fraction = h.extend.correctFraction(fraction)
	h.announceCandidate(c, fraction, h.effective(c).FractionToPoint(fraction))
}

func (h *closestPointHandler) AnnounceIntervalForUniformStepStrokes(c Primitive, numStrokes int, f0, f1 float64) {
	h.StartCurvePrimitive(c)
	numStrokes = max(numStrokes, 1)
	for i := 0; i <= numStrokes; i++ {
		fraction := interpolate(f0, float64(i)/float64(numStrokes), f1)
		ray := h.effective(c).FractionToPointAndDerivative(fraction)
		h.announceRay(c, fraction, ray)
	}
}

func (h *closestPointHandler) AnnounceSegmentInterval(c Primitive, p0, p1 r3.Vector, numStrokes int, f0, f1 float64) {
	local := fractionOfProjection(h.spacePoint, p0, p1, 0)
	// Only the true ends of the curve extend; interior segments never do.
	if local < 0 && !(f0 == 0 && h.extend&ExtendStart != 0) {
		local = 0
	}
	if local > 1 && !(f1 == 1 && h.extend&ExtendEnd != 0) {
		local = 1
	}
	h.announceCandidate(c, interpolate(f0, local, f1), lerp(p0, local, p1))
}

func (h *closestPointHandler) AnnouncePointTangent(pt r3.Vector, fraction float64, tangent r3.Vector) {
	h.announceRay(h.curve, fraction, Ray{Origin: pt, Direction: tangent})
}

// announceRay processes one sample. Consecutive samples of a curve bracket
// roots of the perpendicularity function.
func (h *closestPointHandler) announceRay(c Primitive, fraction float64, ray Ray) {
	h.announceCandidate(c, fraction, ray.Origin)
	h.fractionB = fraction
	h.functionB = ray.Origin.Sub(h.spacePoint).Dot(ray.Direction)
	if h.numThisCurve > 0 && c != nil {
		if h.functionB == 0 {
			// The sample itself is the root and is already a candidate.
		} else if h.functionA*h.functionB <= 0 {
			h.searchInterval(c)
		}
	}
	h.numThisCurve++
	h.fractionA = h.fractionB
	h.functionA = h.functionB
}

// searchInterval refines the root bracketed by samples A and B.
func (h *closestPointHandler) searchInterval(c Primitive) {
	seed, ok := inverseInterpolate(h.fractionA, h.functionA, h.fractionB, h.functionB, 0)
	if !ok {
		return
	}
	f := h.perpendicularity(h.effective(c))
	fraction, ok := h.newton.SolveApprox(f, seed)
	if !ok || math.IsNaN(fraction) {
		tracer().Debugf("closest point: newton failed near %g, bracketing", seed)
		fraction = solveBracketed(f, h.fractionA, h.fractionB, h.functionA, h.functionB)
	}
	h.announceSolutionFraction(c, fraction)
}
