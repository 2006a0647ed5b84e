package curve3d_test

import (
	"fmt"
	"math"

	"github.com/golang/geo/r1"

	"honnef.co/go/curve3d"
)

func ExampleLength() {
	l := curve3d.NewLineSegment(curve3d.Vec(1, 2, 0), curve3d.Vec(6, 3, 1))
	fmt.Printf("%.4f\n", curve3d.Length(l))

	c := &curve3d.CubicBez{
		P0: curve3d.Vec(0, 0, 0),
		P1: curve3d.Vec(1, 1, 0),
		P2: curve3d.Vec(2, 1, 0),
		P3: curve3d.Vec(3, 0, 0),
	}
	fmt.Printf("%.4f\n", curve3d.LengthBetweenFractions(c, 0.5, 0))
	// Output:
	// 5.1962
	// 1.7217
}

func ExampleMoveSignedDistance() {
	// Legs of length 3 and 4. Each leg spans half of the fraction range.
	ls := curve3d.NewLineString(
		curve3d.Vec(0, 0, 0),
		curve3d.Vec(3, 0, 0),
		curve3d.Vec(3, 4, 0),
	)
	loc := curve3d.MoveSignedDistance(ls, 0, 5, false, nil)
	fmt.Printf("%v: fraction %.2f at (%.1f, %.1f)\n", loc.Status, loc.Fraction, loc.Point.X, loc.Point.Y)

	loc = curve3d.MoveSignedDistance(ls, 0, 10, false, loc)
	fmt.Printf("%v: fraction %.2f after %.1f\n", loc.Status, loc.Fraction, loc.A)
	// Output:
	// Success: fraction 0.75 at (3.0, 2.0)
	// StoppedAtBoundary: fraction 1.00 after 7.0
}

func ExampleClosestPoint() {
	a := curve3d.NewCircularArc(curve3d.Vec(0, 0, 0), 1, 0, math.Pi/2)
	loc := curve3d.ClosestPoint(a, curve3d.Vec(2, 2, 0), curve3d.ExtendNone, nil)
	fmt.Printf("fraction %.4f, distance %.4f\n", loc.Fraction, loc.A)
	// Output:
	// fraction 0.5000, distance 1.8284
}

func ExampleAppendPlaneIntersections() {
	circle := curve3d.NewCircularArc(curve3d.Vec(0, 0, 0), 1, 0, 2*math.Pi)
	plane := curve3d.NewPlane(curve3d.Vec(0.5, 0, 0), curve3d.Vec(1, 0, 0))
	locs, n := curve3d.AppendPlaneIntersections(nil, circle, plane)
	fmt.Println(n, "crossings")
	for _, loc := range locs {
		fmt.Printf("fraction %.4f at (%.4f, %.4f)\n", loc.Fraction, loc.Point.X, loc.Point.Y)
	}
	// Output:
	// 2 crossings
	// fraction 0.1667 at (0.5000, 0.8660)
	// fraction 0.8333 at (0.5000, -0.8660)
}

func ExampleAnnounceClipIntervals() {
	l := curve3d.NewLineSegment(curve3d.Vec(0, 0, 0), curve3d.Vec(10, 0, 0))
	slab := curve3d.ConvexClipPlaneSet{
		{Plane: curve3d.NewPlane(curve3d.Vec(4, 0, 0), curve3d.Vec(1, 0, 0))},
		{Plane: curve3d.NewPlane(curve3d.Vec(7, 0, 0), curve3d.Vec(-1, 0, 0))},
	}
	curve3d.AnnounceClipIntervals(l, slab, func(interval r1.Interval, c curve3d.Primitive) {
		fmt.Printf("[%.2f, %.2f]\n", interval.Lo, interval.Hi)
	})
	// Output:
	// [0.40, 0.70]
}
