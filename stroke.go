package curve3d

import (
	"math"

	"github.com/golang/geo/r3"
)

// StrokeHandler receives the strokes a curve emits from
// [Primitive.EmitStrokableParts]. Every generic query is a StrokeHandler, so
// a curve type implements emission once and gets length, closest point,
// plane intersection and repositioning for free.
//
// A handler is created for a single call and may keep state between
// announcements of that call only.
type StrokeHandler interface {
	// StartCurvePrimitive and EndCurvePrimitive bracket the announcements
	// belonging to one constituent curve. Composite curves call them once
	// per constituent.
	StartCurvePrimitive(c Primitive)
	EndCurvePrimitive(c Primitive)

	// StartParentCurvePrimitive and EndParentCurvePrimitive wrap the
	// announcements of a curve that strokes itself through a proxy, such
	// as a polyline approximation. While the scope is active, handlers
	// evaluate and refine against the parent instead of the proxy.
	StartParentCurvePrimitive(c Primitive)
	EndParentCurvePrimitive(c Primitive)

	// AnnounceIntervalForUniformStepStrokes asks the handler to sample c at
	// numStrokes uniform steps over [f0, f1].
	AnnounceIntervalForUniformStepStrokes(c Primitive, numStrokes int, f0, f1 float64)

	// AnnounceSegmentInterval announces an exact straight chord from p0 to
	// p1 that spans [f0, f1] of c.
	AnnounceSegmentInterval(c Primitive, p0, p1 r3.Vector, numStrokes int, f0, f1 float64)

	// AnnouncePointTangent announces one exact sample of the current curve.
	// Successive samples define the intervals searched for sign changes.
	AnnouncePointTangent(pt r3.Vector, fraction float64, tangent r3.Vector)
}

// StrokeOptions controls how finely curves stroke themselves. A nil
// *StrokeOptions selects the defaults.
type StrokeOptions struct {
	// AngleTol is the maximum turn, in radians, of a single stroke. Zero
	// selects DefaultAngleTol.
	AngleTol float64
	// ChordTol is the maximum distance between a stroke and the curve. Zero
	// means no chord tolerance.
	ChordTol float64
	// MaxEdgeLength is the maximum length of a stroke. Zero means no limit.
	MaxEdgeLength float64
	// MinStrokesPerPrimitive is the minimum number of strokes of every
	// primitive.
	MinStrokesPerPrimitive int
}

// DefaultAngleTol is the default maximum turn of a single stroke.
const DefaultAngleTol = math.Pi / 12

// maxStrokesPerPrimitive bounds the stroke counts options can request.
const maxStrokesPerPrimitive = 4096

func (opts *StrokeOptions) angleTol() float64 {
	if opts == nil || opts.AngleTol <= 0 {
		return DefaultAngleTol
	}
	return opts.AngleTol
}

// applyAngleTol returns the stroke count needed to turn through sweep
// radians, but at least minCount.
func (opts *StrokeOptions) applyAngleTol(minCount int, sweep float64) int {
	n := int(math.Ceil(math.Abs(sweep) / opts.angleTol()))
	return opts.clampCount(max(n, minCount))
}

// applyMaxEdgeLength raises count so that no stroke of a curve of the given
// length is longer than MaxEdgeLength.
func (opts *StrokeOptions) applyMaxEdgeLength(count int, length float64) int {
	if opts == nil || opts.MaxEdgeLength <= 0 {
		return count
	}
	n := int(math.Ceil(length / opts.MaxEdgeLength))
	return opts.clampCount(max(n, count))
}

// applyChordTol raises count so that an arc of the given radius and sweep
// deviates from its chords by less than ChordTol.
func (opts *StrokeOptions) applyChordTol(count int, radius, sweep float64) int {
	if opts == nil || opts.ChordTol <= 0 || opts.ChordTol >= radius {
		return count
	}
	// sagitta = r (1 - cos(θ/2))
	maxStep := 2 * math.Acos(1-opts.ChordTol/radius)
	n := int(math.Ceil(math.Abs(sweep) / maxStep))
	return opts.clampCount(max(n, count))
}

// applyMinStrokes raises count to MinStrokesPerPrimitive.
func (opts *StrokeOptions) applyMinStrokes(count int) int {
	if opts == nil {
		return max(count, 1)
	}
	return opts.clampCount(max(count, opts.MinStrokesPerPrimitive, 1))
}

func (opts *StrokeOptions) clampCount(n int) int {
	return min(max(n, 1), maxStrokesPerPrimitive)
}

// strokeScope tracks the constituent curve and the optional parent proxy
// scope of a stroke session. Handlers embed it.
type strokeScope struct {
	// curve is the constituent announced by StartCurvePrimitive.
	curve Primitive
	// parent is the curve announced by StartParentCurvePrimitive, if any.
	parent Primitive
}

// effective returns the curve used for evaluation and refinement: the parent
// if a proxy scope is active, c otherwise.
func (s *strokeScope) effective(c Primitive) Primitive {
	if s.parent != nil {
		return s.parent
	}
	return c
}

func (s *strokeScope) StartParentCurvePrimitive(c Primitive) { s.parent = c }
func (s *strokeScope) EndParentCurvePrimitive(c Primitive)   { s.parent = nil }
