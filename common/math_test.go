package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	assert.InDelta(t, 0.0, Lerp(0, 10, 0), 1e-12)
	assert.InDelta(t, 10.0, Lerp(0, 10, 1), 1e-12)
	assert.InDelta(t, 2.5, Lerp(0, 10, 0.25), 1e-12)
	assert.InDelta(t, -5.0, Lerp(0, -10, 0.5), 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(5, 0, 1))
	assert.Equal(t, 0.0, Clamp(-5, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, 0.0, WrapAngle(2*math.Pi), 1e-12)
	assert.InDelta(t, math.Pi, WrapAngle(math.Pi), 1e-12)
	assert.InDelta(t, -math.Pi/2, WrapAngle(3*math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi/2, WrapAngle(-3*math.Pi/2), 1e-12)
}

func TestTurnTowardTakesShorterWay(t *testing.T) {
	// From just below +pi to just above -pi is a short hop across the
	// seam, not a full turn.
	got := TurnToward(math.Pi-0.1, -math.Pi+0.1, 0.3)
	assert.InDelta(t, WrapAngle(-math.Pi+0.1), got, 1e-12)

	// Clamped by maxDelta when the gap is wider.
	got = TurnToward(0, math.Pi/2, 0.25)
	assert.InDelta(t, 0.25, got, 1e-12)

	got = TurnToward(0, -math.Pi/2, 0.25)
	assert.InDelta(t, -0.25, got, 1e-12)

	// Within range snaps exactly onto the target.
	got = TurnToward(1.0, 1.2, 0.5)
	assert.InDelta(t, 1.2, got, 1e-12)
}
