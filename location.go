package curve3d

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Status describes the outcome of a query that produced a [Location].
type Status int

const (
	// Success means the query converged and Point is on the curve at Fraction.
	Success Status = iota
	// StoppedAtBoundary means the query hit an end of the curve before it
	// could finish, and extension wasn't allowed.
	StoppedAtBoundary
	// Error means the query failed. The Location describes the starting
	// state of the query.
	Error
)

func (s Status) String() string {
	switch s {
	case Success:
		return "Success"
	case StoppedAtBoundary:
		return "StoppedAtBoundary"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Extend selects the ends of a curve beyond which a search may extend it.
type Extend uint8

const (
	ExtendStart Extend = 1 << iota
	ExtendEnd

	ExtendNone Extend = 0
	ExtendBoth        = ExtendStart | ExtendEnd
)

// ExtendIf returns ExtendBoth if b is true and ExtendNone otherwise.
func ExtendIf(b bool) Extend {
	if b {
		return ExtendBoth
	}
	return ExtendNone
}

// correctFraction clamps f to [0, 1] at every end that mustn't be extended.
func (e Extend) correctFraction(f float64) float64 {
	if f < 0 && e&ExtendStart == 0 {
		return 0
	}
	if f > 1 && e&ExtendEnd == 0 {
		return 1
	}
	return f
}

// Location is the result of a query against a curve.
type Location struct {
	// Curve is the curve that Fraction refers to. It doesn't own the curve.
	Curve Primitive
	// Fraction is the curve parameter of the result.
	Fraction float64
	// Point is the point on Curve at Fraction.
	Point r3.Vector
	// A is a query specific signed scalar: the distance moved by
	// [MoveSignedDistance], or the distance to the space point for
	// [ClosestPoint].
	A float64
	// Status is the outcome of the query.
	Status Status
}

func (loc Location) String() string {
	return fmt.Sprintf("{%g %v a=%g %v}", loc.Fraction, loc.Point, loc.A, loc.Status)
}

// IsSuccess reports whether loc describes a successful query.
func (loc *Location) IsSuccess() bool {
	return loc.Status == Success
}

// reuseLocation returns result if it is non-nil and a new Location otherwise.
// The returned location is reset.
func reuseLocation(result *Location) *Location {
	if result == nil {
		return new(Location)
	}
	*result = Location{}
	return result
}

// evaluatedLocation fills result with c evaluated at fraction.
func evaluatedLocation(c Primitive, fraction float64, result *Location) *Location {
	result = reuseLocation(result)
	result.Curve = c
	result.Fraction = fraction
	result.Point = c.FractionToPoint(fraction)
	return result
}
