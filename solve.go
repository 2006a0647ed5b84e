package curve3d

import (
	"math"
	"slices"
)

// NewtonSolver holds the tuning of the bounded Newton iteration shared by all
// searches.
type NewtonSolver struct {
	// MaxIterations bounds the number of steps taken.
	MaxIterations int
	// StepTolerance is the step size below which a step counts as converged.
	StepTolerance float64
	// ConvergedSteps is the number of successive converged steps required.
	ConvergedSteps int
	// DerivativeStep is the offset used for finite difference derivatives.
	DerivativeStep float64
}

// DefaultNewtonSolver returns the solver settings used by the searchers.
func DefaultNewtonSolver() NewtonSolver {
	return NewtonSolver{
		MaxIterations:  15,
		StepTolerance:  1e-11,
		ConvergedSteps: 2,
		DerivativeStep: 1e-8,
	}
}

// Solve finds a root of f near x0, where df computes f and its derivative.
//
// It returns the final estimate and whether it converged. Convergence
// requires ConvergedSteps successive steps smaller than StepTolerance; a step
// that can't be computed (zero derivative, non-finite value) ends the
// iteration unsuccessfully.
func (s NewtonSolver) Solve(fdf func(x float64) (f, df float64), x0 float64) (float64, bool) {
	x := x0
	numConverged := 0
	for range s.MaxIterations {
		f, df := fdf(x)
		dx := f / df
		if df == 0 || math.IsNaN(dx) || math.IsInf(dx, 0) {
			return x, false
		}
		if math.Abs(dx) < s.StepTolerance {
			numConverged++
			if numConverged >= s.ConvergedSteps {
				return x - dx, true
			}
		} else {
			numConverged = 0
		}
		x -= dx
	}
	return x, false
}

// SolveApprox is like [NewtonSolver.Solve], but approximates the derivative of
// f by a forward difference.
func (s NewtonSolver) SolveApprox(f func(x float64) float64, x0 float64) (float64, bool) {
	h := s.DerivativeStep
	return s.Solve(func(x float64) (float64, float64) {
		fa := f(x)
		fb := f(x + h)
		return fa, (fb - fa) / h
	}, x0)
}

// solveBracketed refines a root of f known to lie in [a, b], where fa and fb
// have opposite signs (or one of them is zero). It is used when Newton
// iteration fails, and never leaves the bracket.
func solveBracketed(f func(float64) float64, a, b, fa, fb float64) float64 {
	if fa == 0 {
		return a
	}
	if fb == 0 {
		return b
	}
	if a > b {
		a, b = b, a
		fa, fb = fb, fa
	}
	if fa > 0 {
		// SolveITP expects an increasing function.
		g := f
		f = func(x float64) float64 { return -g(x) }
		fa, fb = -fa, -fb
	}
	width := b - a
	if width == 0 {
		return a
	}
	epsilon := max(width*1e-14, 1e-15)
	return SolveITP(f, a, b, epsilon, 1, 0.2/width, fa, fb)
}

// SolveITP finds a zero of f in the bracket [a, b] with the [ITP method].
// The searchers fall back to it when Newton iteration fails, and
// [solveBracketed] prepares its arguments.
//
// ya and yb are f(a) and f(b), which callers already have from sampling;
// ya must be negative and yb positive. The result is within epsilon of a
// zero, and epsilon must exceed 2⁻⁶³·(b-a). n0 weighs the secant step
// against bisection and k1 is usually 0.2/(b-a); k2 is fixed at 2.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
func SolveITP(f func(float64) float64, a, b, epsilon float64, n0 int, k1, ya, yb float64) float64 {
	nHalf := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1, 0))
	// The projection radius, halved every step.
	radius := epsilon * float64(uint64(1)<<(n0+nHalf))
	for b-a > 2*epsilon {
		mid := 0.5 * (a + b)
		r := radius - 0.5*(b-a)
		// Interpolate with regula falsi, then truncate towards the middle.
		falsi := (yb*a - ya*b) / (yb - ya)
		sigma := mid - falsi
		delta := k1 * (b - a) * (b - a)
		truncated := mid
		if delta <= math.Abs(mid-falsi) {
			truncated = falsi + math.Copysign(delta, sigma)
		}
		// Project into the minmax interval around the middle.
		x := truncated
		if math.Abs(truncated-mid) > r {
			x = mid - math.Copysign(r, sigma)
		}
		switch y := f(x); {
		case y > 0:
			b, yb = x, y
		case y < 0:
			a, ya = x, y
		default:
			return x
		}
		radius *= 0.5
	}
	return 0.5 * (a + b)
}

// SolveQuadratic returns the real roots of c0 + c1·x + c2·x² in ascending
// order, and their number. Plane crossings of quadratic Béziers and of
// chords are solved with it.
//
// A nearly linear equation yields only the root of its linear part. If all
// coefficients are zero, every x is a root and a single 0 is returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) || math.IsNaN(sc0) || math.IsNaN(sc1) {
		// Linear.
		root := -c0 / c1
		switch {
		case !math.IsInf(root, 0) && !math.IsNaN(root):
			return [2]float64{root}, 1
		case c0 == 0 && c1 == 0:
			return [2]float64{0}, 1
		default:
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// sc1² overflowed; the large root is -sc1 and the product of the
		// roots is sc0.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// The root without cancellation; see
		// https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) || math.IsNaN(root2) {
		return [2]float64{root1}, 1
	}
	return [2]float64{min(root1, root2), max(root1, root2)}, 2
}

// SolveCubic returns the real roots of c0 + c1·x + c2·x² + c3·x³, and their
// number. It solves the closest point of quadratic Béziers and the plane
// crossings of cubic ones. A vanishing c3 falls back to [SolveQuadratic].
// The roots aren't sorted.
//
// The method follows https://momentsingraphics.de/CubicRoots.html.
func SolveCubic(c0, c1, c2, c3 float64) ([3]float64, int) {
	c3Recip := 1.0 / c3
	scaledC2 := c2 * (1.0 / 3.0 * c3Recip)
	scaledC1 := c1 * (1.0 / 3.0 * c3Recip)
	scaledC0 := c0 * c3Recip
	if math.IsInf(scaledC0, 0) || math.IsInf(scaledC1, 0) || math.IsInf(scaledC2, 0) ||
		math.IsNaN(scaledC0) || math.IsNaN(scaledC1) || math.IsNaN(scaledC2) {
		roots, n := SolveQuadratic(c0, c1, c2)
		return [3]float64{roots[0], roots[1]}, n
	}
	c0, c1, c2 = scaledC0, scaledC1, scaledC2
	// Coefficients of the depressed cubic.
	d0 := math.FMA(-c2, c2, c1)
	d1 := math.FMA(-c1, c2, c0)
	d2 := c2*c0 - c1*c1
	d := 4.0*d0*d2 - d1*d1
	de := math.FMA(-2.0*c2, d0, d1)
	switch {
	case d < 0:
		// One real root, by Cardano.
		sq := math.Sqrt(-0.25 * d)
		r := -0.5 * de
		t := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return [3]float64{t - c2}, 1
	case d == 0:
		t := math.Copysign(math.Sqrt(-d0), de)
		return [3]float64{t - c2, -2*t - c2}, 2
	default:
		// Three real roots, by the trigonometric method.
		sin, cos := math.Sincos(math.Atan2(math.Sqrt(d), -de) / 3)
		ss3 := sin * math.Sqrt(3)
		scale := 2 * math.Sqrt(-d0)
		return [3]float64{
			math.FMA(scale, cos, -c2),
			math.FMA(scale, 0.5*(-cos+ss3), -c2),
			math.FMA(scale, 0.5*(-cos-ss3), -c2),
		}, 3
	}
}

// rootsInUnitInterval keeps the roots in [-eps, 1+eps], clamped to [0, 1]
// and sorted. It reuses the storage of roots.
func rootsInUnitInterval(roots []float64) []float64 {
	const eps = 1e-12
	out := roots[:0]
	for _, r := range roots {
		if r >= -eps && r <= 1+eps {
			out = append(out, clamp(r, 0, 1))
		}
	}
	slices.Sort(out)
	return out
}
