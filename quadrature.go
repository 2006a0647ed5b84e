package curve3d

// DefaultGaussOrder is the number of Gauss-Legendre points used per stroke
// interval when integrating arc length.
const DefaultGaussOrder = 5

// MaxGaussOrder is the largest supported Gauss-Legendre order.
const MaxGaussOrder = 5

// Tables of Legendre-Gauss quadrature coefficients on [-1, 1], as (weight,
// abscissa) pairs. An n point rule integrates polynomials up to degree 2n-1
// exactly.

var gaussLegendreCoeffs1 = [...][2]float64{
	{2.0, 0.0},
}

var gaussLegendreCoeffs2 = [...][2]float64{
	{1.0, -0.5773502691896257},
	{1.0, 0.5773502691896257},
}

var gaussLegendreCoeffs3 = [...][2]float64{
	{0.5555555555555556, -0.7745966692414834},
	{0.8888888888888888, 0.0},
	{0.5555555555555556, 0.7745966692414834},
}

var gaussLegendreCoeffs4 = [...][2]float64{
	{0.3478548451374538, -0.8611363115940526},
	{0.6521451548625461, -0.3399810435848563},
	{0.6521451548625461, 0.3399810435848563},
	{0.3478548451374538, 0.8611363115940526},
}

var gaussLegendreCoeffs5 = [...][2]float64{
	{0.2369268850561891, -0.9061798459386640},
	{0.4786286704993665, -0.5384693101056831},
	{0.5688888888888889, 0.0},
	{0.4786286704993665, 0.5384693101056831},
	{0.2369268850561891, 0.9061798459386640},
}

// gaussLegendreCoeffs returns the table for the given order. Orders outside
// [1, MaxGaussOrder] are clamped into that range.
func gaussLegendreCoeffs(order int) [][2]float64 {
	switch {
	case order <= 1:
		return gaussLegendreCoeffs1[:]
	case order == 2:
		return gaussLegendreCoeffs2[:]
	case order == 3:
		return gaussLegendreCoeffs3[:]
	case order == 4:
		return gaussLegendreCoeffs4[:]
	default:
		return gaussLegendreCoeffs5[:]
	}
}

// gaussMapper maps a fixed Gauss-Legendre rule onto arbitrary intervals.
type gaussMapper struct {
	coeffs [][2]float64
}

func newGaussMapper(order int) gaussMapper {
	return gaussMapper{coeffs: gaussLegendreCoeffs(order)}
}

// integrate approximates the integral of f over [a, b]. The interval may be
// reversed, in which case the result changes sign.
func (g gaussMapper) integrate(f func(float64) float64, a, b float64) float64 {
	c := 0.5 * (b - a)
	d := 0.5 * (a + b)
	var sum float64
	for _, coeff := range g.coeffs {
		wi, xi := coeff[0], coeff[1]
		sum += wi * f(d+c*xi)
	}
	return c * sum
}

// integrateSteps applies the rule to each of n uniform steps of [a, b].
func (g gaussMapper) integrateSteps(f func(float64) float64, a, b float64, n int) float64 {
	n = max(n, 1)
	var sum float64
	x0 := a
	for i := 1; i <= n; i++ {
		x1 := b
		if i < n {
			x1 = interpolate(a, float64(i)/float64(n), b)
		}
		sum += g.integrate(f, x0, x1)
		x0 = x1
	}
	return sum
}
