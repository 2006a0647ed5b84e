package curve3d

import (
	"slices"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
)

// Clipper describes regions of space that curves can be clipped against.
type Clipper interface {
	// AppendCrossings appends the fractions at which c crosses the boundary
	// of the region.
	AppendCrossings(dst []float64, c Primitive) []float64
	// IsPointOnOrInside reports whether pt is inside the region or on its
	// boundary.
	IsPointOnOrInside(pt r3.Vector) bool
}

// ClipPlane is the half space on the positive side of a plane, including
// the plane itself.
type ClipPlane struct {
	Plane Plane
}

var _ Clipper = ClipPlane{}

func (cp ClipPlane) AppendCrossings(dst []float64, c Primitive) []float64 {
	var buf [8]Location
	locs, _ := AppendPlaneIntersections(buf[:0], c, cp.Plane)
	for _, loc := range locs {
		dst = append(dst, loc.Fraction)
	}
	return dst
}

func (cp ClipPlane) IsPointOnOrInside(pt r3.Vector) bool {
	return cp.Plane.Altitude(pt) >= -clipTolerance
}

// ConvexClipPlaneSet is the intersection of half spaces.
type ConvexClipPlaneSet []ClipPlane

var _ Clipper = ConvexClipPlaneSet(nil)

func (cs ConvexClipPlaneSet) AppendCrossings(dst []float64, c Primitive) []float64 {
	for _, cp := range cs {
		dst = cp.AppendCrossings(dst, c)
	}
	return dst
}

func (cs ConvexClipPlaneSet) IsPointOnOrInside(pt r3.Vector) bool {
	for _, cp := range cs {
		if !cp.IsPointOnOrInside(pt) {
			return false
		}
	}
	return true
}

// clipTolerance is the altitude below which points still count as on a
// clip plane.
const clipTolerance = 1e-10

// AnnounceClipIntervals calls announce for every maximal fraction interval
// of c that lies inside clipper, in increasing order. It reports whether any
// interval was announced.
func AnnounceClipIntervals(c Primitive, clipper Clipper, announce func(interval r1.Interval, c Primitive)) bool {
	breaks := []float64{0, 1}
	for _, f := range clipper.AppendCrossings(nil, c) {
		if f > 0 && f < 1 {
			breaks = append(breaks, f)
		}
	}
	slices.Sort(breaks)
	breaks = slices.CompactFunc(breaks, func(a, b float64) bool {
		return b-a < smallAngle
	})
	breaks[len(breaks)-1] = 1

	var intervals []r1.Interval
	for i := range len(breaks) - 1 {
		f0, f1 := breaks[i], breaks[i+1]
		if !clipper.IsPointOnOrInside(c.FractionToPoint(0.5 * (f0 + f1))) {
			continue
		}
		if n := len(intervals); n > 0 && intervals[n-1].Hi == f0 {
			intervals[n-1].Hi = f1
			continue
		}
		intervals = append(intervals, r1.Interval{Lo: f0, Hi: f1})
	}
	for _, interval := range intervals {
		announce(interval, c)
	}
	return len(intervals) > 0
}
