// Package common holds small math helpers shared across systems.
package common

import "math"

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle normalizes an angle in radians to (-pi, pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// TurnToward rotates current toward target by at most maxDelta radians,
// taking the shorter way around.
func TurnToward(current, target, maxDelta float64) float64 {
	diff := WrapAngle(target - current)
	if math.Abs(diff) <= maxDelta {
		return WrapAngle(target)
	}
	if diff > 0 {
		return WrapAngle(current + maxDelta)
	}
	return WrapAngle(current - maxDelta)
}
