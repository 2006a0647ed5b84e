package curve3d

import "math"

// maxMoveIterations bounds the Newton iteration of moveSignedDistanceGeneric.
const maxMoveIterations = 10

// conditionalMove fills result with the location at endFraction reached by
// moving distance from startFraction. If extension isn't allowed and
// endFraction is outside [0, 1], the location is clamped to the curve and
// reports the distance actually moved.
func conditionalMove(c Primitive, startFraction, endFraction, distance float64, allowExtension bool, result *Location) *Location {
	status := Success
	const snap = 1e-12
	if !allowExtension && endFraction < 0 && endFraction > -snap {
		endFraction = 0
	} else if !allowExtension && endFraction > 1 && endFraction < 1+snap {
		endFraction = 1
	}
	if !allowExtension && (endFraction < 0 || endFraction > 1) {
		limitFraction := clamp(endFraction, 0, 1)
		status = StoppedAtBoundary
		if (startFraction-limitFraction)*(endFraction-startFraction) > 0 {
			// Already past the end we're moving towards.
			distance = 0
		} else {
			distance = math.Copysign(LengthBetweenFractions(c, startFraction, limitFraction), endFraction-startFraction)
		}
		endFraction = limitFraction
	}
	result = evaluatedLocation(c, endFraction, result)
	result.A = distance
	result.Status = status
	return result
}

// moveSignedDistanceGeneric inverts the arc length function of c.
//
// Curves with a distance scale are handled in constant time. For all others,
// the fraction is first estimated assuming uniform speed, and then improved
// by Newton steps: the derivative of arc length with respect to fraction is
// the speed, so the error in distance divided by the speed at the current
// estimate is the next fraction step.
func moveSignedDistanceGeneric(c Primitive, startFraction, distance float64, allowExtension bool, result *Location) *Location {
	if distance == 0 {
		result = evaluatedLocation(c, startFraction, result)
		result.Status = Success
		return result
	}
	if scale, ok := DistanceScale(c); ok && scale != 0 {
		endFraction := startFraction + distance/scale
		return conditionalMove(c, startFraction, endFraction, distance, allowExtension, result)
	}

	limitFraction := 0.0
	direction := -1.0
	if distance > 0 {
		limitFraction = 1.0
		direction = 1.0
	}
	absDistance := math.Abs(distance)
	availableLength := lengthBetweenExtended(c, startFraction, limitFraction)
	if (startFraction-limitFraction)*direction > 0 {
		// Already past the end we're moving towards.
		availableLength = 0
	}
	if availableLength < absDistance && !allowExtension {
		result = evaluatedLocation(c, limitFraction, result)
		result.A = math.Copysign(availableLength, distance)
		result.Status = StoppedAtBoundary
		return result
	}

	// Seed the iteration assuming uniform speed.
	var fractionB float64
	if availableLength > 0 {
		fractionB = interpolate(startFraction, absDistance/availableLength, limitFraction)
	} else {
		speed := c.FractionToPointAndDerivative(startFraction).Direction.Norm()
		if speed == 0 {
			return moveFailed(c, startFraction, result)
		}
		fractionB = startFraction + direction*absDistance/speed
	}

	// On each loop entry, fractionA is the previous estimate, distanceA the
	// distance moved to reach it, and fractionB the next candidate.
	fractionA := startFraction
	distanceA := 0.0
	tol := smallAngle * math.Max(availableLength, absDistance)
	numConverged := 0
	converged := false
	for range maxMoveIterations {
		distanceAB := lengthBetweenExtended(c, fractionA, fractionB)
		directionAB := math.Copysign(1, fractionB-fractionA)
		if fractionB == fractionA {
			directionAB = 0
		}
		distance0B := distanceA + direction*directionAB*distanceAB
		distanceError := absDistance - distance0B
		if math.Abs(distanceError) < tol {
			numConverged++
			if numConverged > 1 {
				converged = true
				break
			}
		} else {
			numConverged = 0
		}
		speed := c.FractionToPointAndDerivative(fractionB).Direction.Norm()
		if speed == 0 || math.IsNaN(speed) {
			break
		}
		fractionA = fractionB
		fractionB = fractionA + direction*distanceError/speed
		if fractionA == fractionB {
			converged = true
			break
		}
		distanceA = distance0B
	}
	if !converged && availableLength >= absDistance {
		// Newton can oscillate where the speed jumps. The target lies
		// between the start and the limit, so bracket it there.
		tracer().Debugf("move signed distance: newton failed on %T from fraction %g, bracketing", c, startFraction)
		fractionB = solveBracketed(func(f float64) float64 {
			return lengthBetweenExtended(c, startFraction, f) - absDistance
		}, startFraction, limitFraction, -absDistance, availableLength-absDistance)
		converged = true
	}
	if !converged {
		return moveFailed(c, startFraction, result)
	}
	return conditionalMove(c, startFraction, fractionB, distance, allowExtension, result)
}

func moveFailed(c Primitive, startFraction float64, result *Location) *Location {
	tracer().Debugf("move signed distance: no convergence on %T from fraction %g", c, startFraction)
	result = evaluatedLocation(c, startFraction, result)
	result.A = 0
	result.Status = Error
	return result
}
