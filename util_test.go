package curve3d

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats, and vectors componentwise, to an absolute
// tolerance.
func approx(tol float64) cmp.Option {
	return cmpopts.EquateApprox(0, tol)
}

// ignoreCurve drops the non-owning curve reference from Location
// comparisons.
var ignoreCurve = cmpopts.IgnoreFields(Location{}, "Curve")

// near reports whether a and b are within tol of each other.
func near(a, b r3.Vector, tol float64) bool {
	return a.Distance(b) <= tol
}

// recordingHandler records every announcement, for testing emitters.
type recordingHandler struct {
	events []string
	// Calls of AnnouncePointTangent, AnnounceSegmentInterval and
	// AnnounceIntervalForUniformStepStrokes, in order.
	fractions [][2]float64
}

func (h *recordingHandler) StartCurvePrimitive(c Primitive) {
	h.events = append(h.events, "start")
}

func (h *recordingHandler) EndCurvePrimitive(c Primitive) {
	h.events = append(h.events, "end")
}

func (h *recordingHandler) StartParentCurvePrimitive(c Primitive) {
	h.events = append(h.events, "startParent")
}

func (h *recordingHandler) EndParentCurvePrimitive(c Primitive) {
	h.events = append(h.events, "endParent")
}

func (h *recordingHandler) AnnounceIntervalForUniformStepStrokes(c Primitive, numStrokes int, f0, f1 float64) {
	h.events = append(h.events, "uniform")
	h.fractions = append(h.fractions, [2]float64{f0, f1})
}

func (h *recordingHandler) AnnounceSegmentInterval(c Primitive, p0, p1 r3.Vector, numStrokes int, f0, f1 float64) {
	h.events = append(h.events, "segment")
	h.fractions = append(h.fractions, [2]float64{f0, f1})
}

func (h *recordingHandler) AnnouncePointTangent(pt r3.Vector, fraction float64, tangent r3.Vector) {
	h.events = append(h.events, "point")
	h.fractions = append(h.fractions, [2]float64{fraction, fraction})
}
