package curve3d

import (
	"math"
	"slices"

	"github.com/golang/geo/r3"
)

// LineString is a polyline. Each of its segments spans an equal share of
// the fraction range, regardless of the segment's length.
type LineString struct {
	Points []r3.Vector
}

var _ Primitive = (*LineString)(nil)
var _ DistanceMover = (*LineString)(nil)

// NewLineString returns a polyline through pts. It panics if there are fewer
// than two points.
func NewLineString(pts ...r3.Vector) *LineString {
	if len(pts) < 2 {
		panic("line string needs at least two points")
	}
	return &LineString{Points: pts}
}

func (ls *LineString) numSegments() int {
	return len(ls.Points) - 1
}

// segment returns the index of the segment containing fraction f and the
// fraction within that segment. Fractions outside [0, 1] extend the first
// and last segment.
func (ls *LineString) segment(f float64) (int, float64) {
	n := ls.numSegments()
	if n <= 0 {
		return 0, 0
	}
	scaled := f * float64(n)
	i := int(math.Floor(scaled))
	i = min(max(i, 0), n-1)
	return i, scaled - float64(i)
}

func (ls *LineString) FractionToPoint(f float64) r3.Vector {
	if len(ls.Points) == 1 {
		return ls.Points[0]
	}
	i, local := ls.segment(f)
	return lerp(ls.Points[i], local, ls.Points[i+1])
}

func (ls *LineString) FractionToPointAndDerivative(f float64) Ray {
	if len(ls.Points) == 1 {
		return Ray{Origin: ls.Points[0]}
	}
	i, local := ls.segment(f)
	p0, p1 := ls.Points[i], ls.Points[i+1]
	return Ray{
		Origin:    lerp(p0, local, p1),
		Direction: p1.Sub(p0).Mul(float64(ls.numSegments())),
	}
}

func (ls *LineString) FractionToPointAnd2Derivatives(f float64) Derivatives {
	ray := ls.FractionToPointAndDerivative(f)
	return Derivatives{Point: ray.Origin, D1: ray.Direction}
}

func (ls *LineString) EmitStrokableParts(h StrokeHandler, opts *StrokeOptions) {
	h.StartCurvePrimitive(ls)
	n := ls.numSegments()
	switch {
	case n < 0:
	case n == 0:
		h.AnnouncePointTangent(ls.Points[0], 0, r3.Vector{})
	default:
		df := 1 / float64(n)
		for i := range n {
			f0 := float64(i) * df
			f1 := 1.0
			if i < n-1 {
				f1 = float64(i+1) * df
			}
			p0, p1 := ls.Points[i], ls.Points[i+1]
			h.AnnounceSegmentInterval(ls, p0, p1, opts.applyMaxEdgeLength(1, p0.Distance(p1)), f0, f1)
		}
	}
	h.EndCurvePrimitive(ls)
}

// QuickLength returns the exact length.
func (ls *LineString) QuickLength() float64 {
	return ls.Length()
}

// Length returns the sum of the segment lengths.
func (ls *LineString) Length() float64 {
	var sum float64
	for i := 1; i < len(ls.Points); i++ {
		sum += ls.Points[i-1].Distance(ls.Points[i])
	}
	return sum
}

func (ls *LineString) IsInPlane(p Plane) bool {
	tol := smallAngle * (1 + ls.QuickLength() + p.Origin.Norm())
	for _, pt := range ls.Points {
		if math.Abs(p.Altitude(pt)) > tol {
			return false
		}
	}
	return true
}

func (ls *LineString) ReverseInPlace() {
	slices.Reverse(ls.Points)
}

// MoveSignedDistance walks the segments from startFraction. Extension
// continues along the first or last segment.
func (ls *LineString) MoveSignedDistance(startFraction, distance float64, allowExtension bool, result *Location) *Location {
	n := ls.numSegments()
	if n < 1 || distance == 0 {
		return moveSignedDistanceGeneric(ls, startFraction, distance, allowExtension, result)
	}
	// Positions are in segment units: segment i spans [i, i+1].
	pos := startFraction * float64(n)
	remaining := math.Abs(distance)
	dir := 1.0
	i := int(math.Floor(pos))
	if distance < 0 {
		dir = -1
		i = int(math.Ceil(pos)) - 1
	}
	i = min(max(i, 0), n-1)
	for {
		segLen := ls.Points[i].Distance(ls.Points[i+1])
		last := (dir > 0 && i == n-1) || (dir < 0 && i == 0)
		if last && allowExtension && segLen > 0 {
			pos += dir * remaining / segLen
			remaining = 0
			break
		}
		bound := float64(i)
		if dir > 0 {
			bound = float64(i + 1)
		}
		available := max((bound-pos)*dir, 0) * segLen
		if segLen > 0 && available >= remaining {
			pos += dir * remaining / segLen
			remaining = 0
			break
		}
		remaining -= available
		pos = bound
		if last {
			break
		}
		i += int(dir)
	}

	result = evaluatedLocation(ls, pos/float64(n), result)
	if remaining > 0 {
		result.A = math.Copysign(math.Abs(distance)-remaining, distance)
		result.Status = StoppedAtBoundary
		return result
	}
	result.A = distance
	result.Status = Success
	return result
}
