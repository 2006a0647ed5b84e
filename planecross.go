package curve3d

import (
	"math"

	"github.com/golang/geo/r3"
)

func appendPlaneIntersectionsGeneric(dst []Location, c Primitive, plane Plane) ([]Location, int) {
	if c.IsInPlane(plane) {
		// Touching the plane everywhere, the curve crosses it nowhere.
		return dst, 0
	}
	h := &planeCrossHandler{
		plane:  plane,
		newton: DefaultNewtonSolver(),
		out:    dst,
	}
	n0 := len(dst)
	c.EmitStrokableParts(h, nil)
	return h.out, len(h.out) - n0
}

// planeCrossHandler finds the fractions at which the announced strokes
// cross a plane, refining every bracketed crossing against the true curve.
type planeCrossHandler struct {
	strokeScope
	plane  Plane
	newton NewtonSolver
	out    []Location

	fractionA, functionA float64
	fractionB, functionB float64
	numThisCurve         int
	// Altitudes within tol of zero count as on the plane.
	tol float64
}

// planeTolerance returns the altitude below which a point of c counts as
// lying on a plane.
func planeTolerance(c Primitive) float64 {
	return smallAngle * (1 + c.QuickLength())
}

// snapAltitude returns zero for altitudes within tol of zero.
func snapAltitude(altitude, tol float64) float64 {
	if math.Abs(altitude) <= tol {
		return 0
	}
	return altitude
}

var _ StrokeHandler = (*planeCrossHandler)(nil)

func (h *planeCrossHandler) StartCurvePrimitive(c Primitive) {
	h.curve = c
	h.tol = planeTolerance(h.effective(c))
	h.numThisCurve = 0
	h.fractionA, h.functionA = 0, 0
	h.fractionB, h.functionB = 0, 0
}

func (h *planeCrossHandler) EndCurvePrimitive(c Primitive) {}

// altitude returns the altitude of c above the plane and its derivative
// with respect to fraction.
func (h *planeCrossHandler) altitude(c Primitive) func(float64) (float64, float64) {
	return func(f float64) (float64, float64) {
		ray := c.FractionToPointAndDerivative(f)
		return h.plane.Altitude(ray.Origin), h.plane.Velocity(ray.Direction)
	}
}

func (h *planeCrossHandler) announceSolutionFraction(c Primitive, fraction float64) {
	c = h.effective(c)
	h.out = append(h.out, Location{
		Curve:    c,
		Fraction: fraction,
		Point:    c.FractionToPoint(fraction),
		Status:   Success,
	})
}

// refine polishes a seed fraction known to lie in the bracket [fa, fb] of
// the altitude function and announces the result.
func (h *planeCrossHandler) refine(c Primitive, seed, fa, fb, ha, hb float64) {
	eval := h.altitude(h.effective(c))
	fraction, ok := h.newton.Solve(eval, seed)
	if !ok || math.IsNaN(fraction) {
		tracer().Debugf("plane intersection: newton failed near %g, bracketing", seed)
		fraction = solveBracketed(func(f float64) float64 {
			a, _ := eval(f)
			return a
		}, fa, fb, ha, hb)
	}
	h.announceSolutionFraction(c, fraction)
}

func (h *planeCrossHandler) AnnounceSegmentInterval(c Primitive, p0, p1 r3.Vector, numStrokes int, f0, f1 float64) {
	h0 := snapAltitude(h.plane.Altitude(p0), h.tol)
	h1 := snapAltitude(h.plane.Altitude(p1), h.tol)
	if h0*h1 > 0 {
		return
	}
	if h0 == 0 && h1 == 0 {
		// The chord lies in the plane; report its ends.
		h.announceSolutionFraction(c, f0)
		h.announceSolutionFraction(c, f1)
		return
	}
	// Altitude along the chord in Bernstein form, solved in power basis.
	roots, n := SolveQuadratic(h0, h1-h0, 0)
	for _, local := range rootsInUnitInterval(roots[:n]) {
		seed := interpolate(f0, local, f1)
		h.refine(c, seed, f0, f1, h0, h1)
	}
}

func (h *planeCrossHandler) AnnounceIntervalForUniformStepStrokes(c Primitive, numStrokes int, f0, f1 float64) {
	h.StartCurvePrimitive(c)
	numStrokes = max(numStrokes, 1)
	eval := h.effective(c)
	for i := 0; i <= numStrokes; i++ {
		fraction := interpolate(f0, float64(i)/float64(numStrokes), f1)
		h.evaluateB(c, fraction, snapAltitude(h.plane.Altitude(eval.FractionToPoint(fraction)), h.tol))
	}
}

func (h *planeCrossHandler) AnnouncePointTangent(pt r3.Vector, fraction float64, tangent r3.Vector) {
	h.evaluateB(h.curve, fraction, snapAltitude(h.plane.Altitude(pt), h.tol))
}

// evaluateB records a new sample and searches the interval it closes.
func (h *planeCrossHandler) evaluateB(c Primitive, fraction, altitude float64) {
	h.fractionA, h.functionA = h.fractionB, h.functionB
	h.fractionB, h.functionB = fraction, altitude
	if h.numThisCurve == 0 && h.functionB == 0 && c != nil {
		// The first sample of a run has no interval to close.
		h.announceSolutionFraction(c, h.fractionB)
	}
	if h.numThisCurve > 0 && c != nil {
		h.searchInterval(c)
	}
	h.numThisCurve++
}

func (h *planeCrossHandler) searchInterval(c Primitive) {
	switch {
	case h.functionA*h.functionB > 0:
	case h.functionB == 0:
		h.announceSolutionFraction(c, h.fractionB)
	case h.functionA == 0:
		// Announced when it closed the previous interval.
	default:
		seed, ok := inverseInterpolate(h.fractionA, h.functionA, h.fractionB, h.functionB, 0)
		if !ok {
			return
		}
		h.refine(c, seed, h.fractionA, h.fractionB, h.functionA, h.functionB)
	}
}
