package curve3d

import (
	"math"
	"slices"

	"github.com/golang/geo/r3"
)

// Path is a chain of primitives, each of which spans an equal share of the
// fraction range. Consecutive children are expected, but not required, to
// join end to start.
type Path struct {
	Children []Primitive
}

var _ Primitive = (*Path)(nil)
var _ DistanceScaler = (*Path)(nil)

// NewPath returns the chain of the given children. It panics if there are
// none.
func NewPath(children ...Primitive) *Path {
	if len(children) == 0 {
		panic("called with empty path")
	}
	return &Path{Children: children}
}

// child returns the index of the child containing fraction f and the
// fraction within that child. Fractions outside [0, 1] extend the first and
// last child.
func (p *Path) child(f float64) (int, float64) {
	n := len(p.Children)
	scaled := f * float64(n)
	i := int(math.Floor(scaled))
	i = min(max(i, 0), n-1)
	return i, scaled - float64(i)
}

// childInterval returns the fraction interval of child i.
func (p *Path) childInterval(i int) (float64, float64) {
	n := float64(len(p.Children))
	f1 := 1.0
	if i < len(p.Children)-1 {
		f1 = float64(i+1) / n
	}
	return float64(i) / n, f1
}

func (p *Path) FractionToPoint(f float64) r3.Vector {
	i, local := p.child(f)
	return p.Children[i].FractionToPoint(local)
}

func (p *Path) FractionToPointAndDerivative(f float64) Ray {
	i, local := p.child(f)
	ray := p.Children[i].FractionToPointAndDerivative(local)
	ray.Direction = ray.Direction.Mul(float64(len(p.Children)))
	return ray
}

func (p *Path) FractionToPointAnd2Derivatives(f float64) Derivatives {
	i, local := p.child(f)
	n := float64(len(p.Children))
	d := p.Children[i].FractionToPointAnd2Derivatives(local)
	d.D1 = d.D1.Mul(n)
	d.D2 = d.D2.Mul(n * n)
	return d
}

// FractionToDistanceScale reports a scale if every child is proportional
// with the same length.
func (p *Path) FractionToDistanceScale() (float64, bool) {
	var s0 float64
	for i, c := range p.Children {
		s, ok := DistanceScale(c)
		if !ok {
			return 0, false
		}
		if i == 0 {
			s0 = s
		} else if math.Abs(s-s0) > smallAngle*max(s, s0) {
			return 0, false
		}
	}
	return s0 * float64(len(p.Children)), true
}

// EmitStrokableParts emits each child, translating the child's fractions to
// fractions of the path. The path takes the place of its children in every
// announcement, so handlers evaluate it, not the children.
func (p *Path) EmitStrokableParts(h StrokeHandler, opts *StrokeOptions) {
	for i, c := range p.Children {
		f0, f1 := p.childInterval(i)
		c.EmitStrokableParts(&pathStrokeHandler{
			path:  p,
			inner: h,
			f0:    f0,
			f1:    f1,
			scale: float64(len(p.Children)),
		}, opts)
	}
}

func (p *Path) QuickLength() float64 {
	var sum float64
	for _, c := range p.Children {
		sum += c.QuickLength()
	}
	return sum
}

func (p *Path) IsInPlane(pl Plane) bool {
	for _, c := range p.Children {
		if !c.IsInPlane(pl) {
			return false
		}
	}
	return true
}

func (p *Path) ReverseInPlace() {
	slices.Reverse(p.Children)
	for _, c := range p.Children {
		c.ReverseInPlace()
	}
}

// pathStrokeHandler forwards the strokes of one child of a path to the
// path's handler.
type pathStrokeHandler struct {
	path   *Path
	inner  StrokeHandler
	f0, f1 float64
	// scale is the derivative of child fraction by path fraction.
	scale float64
}

var _ StrokeHandler = (*pathStrokeHandler)(nil)

func (h *pathStrokeHandler) fraction(f float64) float64 {
	return interpolate(h.f0, f, h.f1)
}

func (h *pathStrokeHandler) StartCurvePrimitive(c Primitive) { h.inner.StartCurvePrimitive(h.path) }
func (h *pathStrokeHandler) EndCurvePrimitive(c Primitive)   { h.inner.EndCurvePrimitive(h.path) }

func (h *pathStrokeHandler) StartParentCurvePrimitive(c Primitive) {
	h.inner.StartParentCurvePrimitive(h.path)
}

func (h *pathStrokeHandler) EndParentCurvePrimitive(c Primitive) {
	h.inner.EndParentCurvePrimitive(h.path)
}

func (h *pathStrokeHandler) AnnounceIntervalForUniformStepStrokes(c Primitive, numStrokes int, f0, f1 float64) {
	h.inner.AnnounceIntervalForUniformStepStrokes(h.path, numStrokes, h.fraction(f0), h.fraction(f1))
}

func (h *pathStrokeHandler) AnnounceSegmentInterval(c Primitive, p0, p1 r3.Vector, numStrokes int, f0, f1 float64) {
	h.inner.AnnounceSegmentInterval(h.path, p0, p1, numStrokes, h.fraction(f0), h.fraction(f1))
}

func (h *pathStrokeHandler) AnnouncePointTangent(pt r3.Vector, fraction float64, tangent r3.Vector) {
	h.inner.AnnouncePointTangent(pt, h.fraction(fraction), tangent.Mul(h.scale))
}
