// Package curve3d provides parametric 3D curve primitives and a numeric
// engine that answers geometric queries about any of them.
//
// # Curves and fractions
//
// A [Primitive] maps a fraction, nominally in [0, 1], to a point in space.
// Fraction isn't distance: a cubic Bézier moves faster in some places than
// in others, and a [LineString] gives every segment the same share of the
// fraction range regardless of its length. Primitives also evaluate
// fractions outside [0, 1], which extends the curve past its ends.
//
// # Derived operations
//
// Given only evaluation and stroke emission, this package computes for any
// curve
//
//   - its length, in total or between two fractions (see [Length] and
//     [LengthBetweenFractions])
//   - the point nearest to a point in space (see [ClosestPoint])
//   - the points where it crosses a plane (see [AppendPlaneIntersections])
//   - the fraction reached by moving a signed distance along it (see
//     [MoveSignedDistance])
//   - its unit tangent and Frenet frame (see [UnitTangent] and [FrenetFrame])
//
// Curves with a better way of answering one of these queries implement the
// matching optional interface, such as [ClosestPointer] or [Arclener], and
// the package-level function defers to it. Curves whose length is
// proportional to fraction implement [DistanceScaler], which turns length
// and repositioning into constant time arithmetic.
//
// # Strokes
//
// Every curve describes itself to a [StrokeHandler] from
// [Primitive.EmitStrokableParts]: as exact straight chords, as fraction
// intervals to be sampled uniformly, or as individual samples. The generic
// queries are stroke handlers. They bracket solutions between samples and
// refine them with Newton iteration on the true curve, falling back to the
// bracketing ITP method when Newton fails.
//
// A curve that can only describe itself approximately, such as the
// [Spiral], emits a polyline proxy inside
// [StrokeHandler.StartParentCurvePrimitive] and
// [StrokeHandler.EndParentCurvePrimitive]. The queries then use the proxy
// to find solutions but measure and refine them against the parent.
//
// # Results
//
// Queries that produce a single result return a [Location], which records
// the curve, the fraction, the point and a query specific scalar, together
// with a [Status]. These functions accept an optional *Location to fill,
// so that hot loops can avoid allocation.
package curve3d
