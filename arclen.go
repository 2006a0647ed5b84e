package curve3d

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
)

// IntegrateLength measures the length of c between f0 and f1 by driving the
// curve's strokes, without consulting any fast path.
//
// Exact segments contribute their chord length, prorated to the part that
// overlaps [f0, f1]. Uniformly stepped intervals are clipped to [f0, f1] and
// integrated with Gauss-Legendre quadrature of the given order (1 to 5) per
// step, which is exact for speeds that are polynomials of degree up to
// 2·order-1.
//
// Only the part of [f0, f1] that the curve announces is measured, which
// normally means the part within [0, 1].
func IntegrateLength(c Primitive, f0, f1 float64, order int) float64 {
	if f0 == f1 {
		return 0
	}
	h := newArclenHandler(f0, f1, order)
	c.EmitStrokableParts(h, nil)
	return h.sum
}

// arclenHandler sums the length of the announced strokes over a target
// interval.
type arclenHandler struct {
	strokeScope
	target r1.Interval
	gauss  gaussMapper
	sum    float64
}

var _ StrokeHandler = (*arclenHandler)(nil)

func newArclenHandler(f0, f1 float64, order int) *arclenHandler {
	return &arclenHandler{
		target: r1.IntervalFromPoint(f0).AddPoint(f1),
		gauss:  newGaussMapper(order),
	}
}

func (h *arclenHandler) speed(c Primitive) func(float64) float64 {
	return func(f float64) float64 {
		return c.FractionToPointAndDerivative(f).Direction.Norm()
	}
}

func (h *arclenHandler) StartCurvePrimitive(c Primitive) { h.curve = c }
func (h *arclenHandler) EndCurvePrimitive(c Primitive)   {}

func (h *arclenHandler) AnnounceIntervalForUniformStepStrokes(c Primitive, numStrokes int, f0, f1 float64) {
	clipped := h.target.Intersection(r1.IntervalFromPoint(f0).AddPoint(f1))
	if clipped.Length() <= 0 {
		return
	}
	h.StartCurvePrimitive(c)
	h.sum += h.gauss.integrateSteps(h.speed(h.effective(c)), clipped.Lo, clipped.Hi, numStrokes)
}

func (h *arclenHandler) AnnounceSegmentInterval(c Primitive, p0, p1 r3.Vector, numStrokes int, f0, f1 float64) {
	seg := r1.IntervalFromPoint(f0).AddPoint(f1)
	clipped := h.target.Intersection(seg)
	if clipped.IsEmpty() || clipped.Length() <= 0 {
		return
	}
	if h.parent != nil {
		// The chord is a proxy. Measure the parent over the same fractions.
		h.sum += h.gauss.integrate(h.speed(h.parent), clipped.Lo, clipped.Hi)
		return
	}
	chord := p0.Distance(p1)
	if h.target.ContainsInterval(seg) {
		h.sum += chord
		return
	}
	h.sum += chord * clipped.Length() / seg.Length()
}

// AnnouncePointTangent doesn't contribute to length.
func (h *arclenHandler) AnnouncePointTangent(pt r3.Vector, fraction float64, tangent r3.Vector) {}

// lengthBetweenExtended is like LengthBetweenFractions, but also measures
// the parts of [f0, f1] outside of [0, 1] by integrating the extrapolated
// speed of the curve.
func lengthBetweenExtended(c Primitive, f0, f1 float64) float64 {
	lo, hi := math.Min(f0, f1), math.Max(f0, f1)
	if lo >= 0 && hi <= 1 {
		return LengthBetweenFractions(c, lo, hi)
	}
	if scale, ok := DistanceScale(c); ok {
		return (hi - lo) * math.Abs(scale)
	}
	g := newGaussMapper(DefaultGaussOrder)
	speed := func(f float64) float64 {
		return c.FractionToPointAndDerivative(f).Direction.Norm()
	}
	// Extension is measured in steps of at most 1/8 fraction.
	outside := func(a, b float64) float64 {
		n := int(math.Ceil((b - a) * 8))
		return g.integrateSteps(speed, a, b, n)
	}
	var sum float64
	if lo < 0 {
		sum += outside(lo, math.Min(hi, 0))
	}
	if hi > 1 {
		sum += outside(math.Max(lo, 1), hi)
	}
	if inside := (r1.Interval{Lo: lo, Hi: hi}).Intersection(r1.Interval{Lo: 0, Hi: 1}); inside.Length() > 0 {
		sum += LengthBetweenFractions(c, inside.Lo, inside.Hi)
	}
	return sum
}
