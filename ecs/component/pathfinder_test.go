package component

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gridnav/nav"
)

func TestSetTargetForcesRecalculation(t *testing.T) {
	p := NewPathfinder(2, 5, 0.4)
	p.State = NavNavigating
	p.Path = []nav.Cell{{X: 1, Y: 1}, {X: 2, Y: 1}}
	p.Index = 1
	p.StuckTimer = 0.3
	p.BudgetMisses = 2

	p.SetTarget(nav.Cell{X: 5, Y: 5})

	assert.Equal(t, NavRecalculating, p.State)
	assert.True(t, p.HasTarget)
	assert.Equal(t, nav.Cell{X: 5, Y: 5}, p.Target)
	assert.Empty(t, p.Path)
	assert.Zero(t, p.Index)
	assert.Zero(t, p.StuckTimer)
	assert.Zero(t, p.BudgetMisses)
}

func TestSetTargetIgnoredWhenDisabled(t *testing.T) {
	p := NewPathfinder(2, 5, 0.4)
	p.Enabled = false

	p.SetTarget(nav.Cell{X: 5, Y: 5})

	assert.Equal(t, NavIdle, p.State)
	assert.False(t, p.HasTarget)
}

func TestCurrentWaypoint(t *testing.T) {
	p := NewPathfinder(2, 5, 0.4)
	_, ok := p.CurrentWaypoint()
	assert.False(t, ok)

	p.Path = []nav.Cell{{X: 1, Y: 1}, {X: 2, Y: 2}}
	p.Index = 1
	wp, ok := p.CurrentWaypoint()
	assert.True(t, ok)
	assert.Equal(t, nav.Cell{X: 2, Y: 2}, wp)

	p.Index = 2
	_, ok = p.CurrentWaypoint()
	assert.False(t, ok)
}

func TestTickCountsDownOnlyWhenStuck(t *testing.T) {
	p := NewPathfinder(2, 5, 0.4)
	p.State = NavStuck
	p.RetryTimer = 0.25

	p.Tick(0.1)
	assert.InDelta(t, 0.15, p.RetryTimer, 1e-9)
	p.Tick(0.2)
	assert.Zero(t, p.RetryTimer, "timer clamps at zero")

	p.State = NavNavigating
	p.RetryTimer = 0.25
	p.Tick(0.1)
	assert.InDelta(t, 0.25, p.RetryTimer, 1e-9)
}

func TestPatrolWrapsAndCountsLaps(t *testing.T) {
	p := NewPatrol([]nav.Cell{{X: 1, Y: 1}, {X: 2, Y: 2}})

	wp, ok := p.CurrentTarget()
	assert.True(t, ok)
	assert.Equal(t, nav.Cell{X: 1, Y: 1}, wp)

	p.Advance()
	p.Advance()
	assert.Equal(t, 0, p.Current)
	assert.Equal(t, 1, p.Laps)

	wp, ok = p.CurrentTarget()
	assert.True(t, ok)
	assert.Equal(t, nav.Cell{X: 1, Y: 1}, wp)
}

func TestPatrolWithoutLoopExhausts(t *testing.T) {
	p := NewPatrol([]nav.Cell{{X: 1, Y: 1}})
	p.Loop = false

	p.Advance()
	_, ok := p.CurrentTarget()
	assert.False(t, ok)
	assert.Zero(t, p.Laps)
}

func TestNewPatrolCopiesWaypoints(t *testing.T) {
	src := []nav.Cell{{X: 1, Y: 1}}
	p := NewPatrol(src)
	src[0] = nav.Cell{X: 9, Y: 9}

	wp, ok := p.CurrentTarget()
	assert.True(t, ok)
	assert.Equal(t, nav.Cell{X: 1, Y: 1}, wp)
}
