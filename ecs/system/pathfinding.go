// Package system holds the simulation systems run by the scheduler.
package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"gridnav/common"
	"gridnav/config"
	"gridnav/ecs"
	"gridnav/ecs/component"
	"gridnav/nav"
)

// EventArrived is pushed when a pathfinder reaches its final waypoint.
const EventArrived = "nav.arrived"

// Arrival is the payload of an EventArrived event.
type Arrival struct {
	Entity ecs.Entity
	Cell   nav.Cell
}

// PathfindingSystem drives every Pathfinder through its navigation
// lifecycle: it runs searches for recalculating entities, advances
// navigating entities along their routes, detects stalls, and emits
// MoveIntent for the movement system to resolve.
//
// The update is two-phase. The collection pass reads component copies
// and computes each entity's next state without touching the world; the
// apply pass then writes the results back through exclusive references.
type PathfindingSystem struct {
	grid   *nav.GridMap
	tuning config.Tuning
	logger *zap.Logger
}

func NewPathfindingSystem(grid *nav.GridMap, tuning config.Tuning, logger *zap.Logger) *PathfindingSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PathfindingSystem{grid: grid, tuning: tuning, logger: logger}
}

// SetTuning swaps the tuning knobs, typically after a hot reload. Takes
// effect on the next update.
func (ps *PathfindingSystem) SetTuning(t config.Tuning) {
	ps.tuning = t
}

// vecXZ projects a transform onto the navigation plane. World Z rides
// in the vector's Y, matching GridMap's convention.
func vecXZ(tr component.Transform) cp.Vector {
	return cp.Vector{X: tr.X, Y: tr.Z}
}

type navPlan struct {
	entity    ecs.Entity
	pf        component.Pathfinder
	intent    component.MoveIntent
	writePF   bool
	arrived   bool
	arrivedAt nav.Cell
}

func (ps *PathfindingSystem) Update(w *ecs.World, dt float64) {
	entities := w.Query(
		component.PathfinderComponent.Kind().ID(),
		component.TransformComponent.Kind().ID(),
	)

	plans := make([]navPlan, 0, len(entities))
	for _, e := range entities {
		if !w.Enabled(e) {
			continue
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok || !tr.Enabled {
			continue
		}
		pf, ok := ecs.Get(w, e, component.PathfinderComponent)
		if !ok {
			continue
		}
		if !pf.Enabled {
			// A disabled pathfinder must not keep the integrator moving
			// the entity on a stale intent.
			plans = append(plans, navPlan{entity: e})
			continue
		}

		plan := navPlan{entity: e, writePF: true}
		plan.intent, plan.arrived, plan.arrivedAt = ps.step(e, &pf, tr, dt)
		plan.pf = pf
		plans = append(plans, plan)
	}

	for _, plan := range plans {
		if plan.writePF {
			if p, ok := ecs.Mut(w, plan.entity, component.PathfinderComponent); ok {
				*p = plan.pf
			}
		}
		_ = ecs.Set(w, plan.entity, component.MoveIntentComponent, plan.intent)
		if plan.arrived {
			w.Events().Push(ecs.Event{
				Type: EventArrived,
				Data: Arrival{Entity: plan.entity, Cell: plan.arrivedAt},
			})
		}
	}
}

// step advances one pathfinder copy by one tick and returns the intent
// it should emit. It mutates only the copy.
func (ps *PathfindingSystem) step(e ecs.Entity, pf *component.Pathfinder, tr component.Transform, dt float64) (component.MoveIntent, bool, nav.Cell) {
	switch pf.State {
	case component.NavIdle:
		if pf.HasTarget {
			pf.State = component.NavRecalculating
		}
	case component.NavStuck:
		if !pf.HasTarget {
			pf.State = component.NavIdle
		} else if pf.RetryTimer <= 0 {
			pf.State = component.NavRecalculating
		}
	}

	if pf.State == component.NavRecalculating {
		ps.recalculate(e, pf, tr)
	}
	if pf.State == component.NavNavigating {
		return ps.follow(e, pf, tr, dt)
	}
	return component.MoveIntent{}, false, nav.Cell{}
}

func (ps *PathfindingSystem) recalculate(e ecs.Entity, pf *component.Pathfinder, tr component.Transform) {
	if !pf.HasTarget {
		pf.State = component.NavIdle
		return
	}
	if ps.grid.CellState(pf.Target.X, pf.Target.Y) != nav.Walkable {
		ps.logger.Warn("navigation target unreachable",
			zap.Stringer("entity", e),
			zap.Stringer("target", pf.Target),
			zap.Stringer("state", ps.grid.CellState(pf.Target.X, pf.Target.Y)))
		ps.fail(pf)
		return
	}

	start := ps.grid.WorldToCell(vecXZ(tr))
	res := nav.Find(ps.grid, start, pf.Target, ps.tuning.SearchBudget)
	switch res.Status {
	case nav.Found:
		pf.Path = res.Path
		pf.Explored = res.Explored
		pf.Index = 0
		pf.BudgetMisses = 0
		pf.StuckTimer = 0
		pf.HasLast = false
		pf.State = component.NavNavigating
	case nav.BudgetExhausted:
		// Retry next tick with a fresh budget rather than resuming the
		// partial search; give up after too many misses in a row.
		pf.BudgetMisses++
		if pf.BudgetMisses >= ps.tuning.MaxBudgetMisses {
			ps.logger.Warn("search budget exhausted repeatedly",
				zap.Stringer("entity", e),
				zap.Stringer("target", pf.Target),
				zap.Int("misses", pf.BudgetMisses))
			ps.fail(pf)
		}
	case nav.NoPath:
		ps.logger.Warn("no route to target",
			zap.Stringer("entity", e),
			zap.Stringer("start", start),
			zap.Stringer("target", pf.Target))
		ps.fail(pf)
	}
}

// fail parks the pathfinder in Stuck until the retry cooldown elapses.
// The target is kept so the retry can attempt the same goal.
func (ps *PathfindingSystem) fail(pf *component.Pathfinder) {
	pf.ClearPath()
	pf.State = component.NavStuck
	pf.RetryTimer = ps.tuning.RetryCooldown
	pf.BudgetMisses = 0
	pf.StuckTimer = 0
	pf.HasLast = false
}

func (ps *PathfindingSystem) follow(e ecs.Entity, pf *component.Pathfinder, tr component.Transform, dt float64) (component.MoveIntent, bool, nav.Cell) {
	pos := vecXZ(tr)
	arriveRadius := pf.ArriveRadius
	if arriveRadius <= 0 {
		arriveRadius = ps.tuning.ArriveRadius
	}

	// Consume every waypoint already reached. The final waypoint also
	// counts as reached from anywhere inside the goal cell, so a target
	// in the entity's own cell completes immediately.
	for {
		wp, ok := pf.CurrentWaypoint()
		if !ok {
			return ps.arrive(pf)
		}
		final := pf.Index == len(pf.Path)-1
		reached := pos.Distance(ps.grid.CellToWorld(wp)) <= arriveRadius ||
			(final && ps.grid.WorldToCell(pos) == wp)
		if !reached {
			break
		}
		pf.Index++
		if pf.Index >= len(pf.Path) {
			return ps.arrive(pf)
		}
	}

	wp, _ := pf.CurrentWaypoint()
	dir := ps.grid.CellToWorld(wp).Sub(pos).Normalize()
	yaw := common.TurnToward(tr.Yaw, math.Atan2(dir.Y, dir.X), pf.TurnSpeed*dt)
	intent := component.MoveIntent{
		Velocity: dir.Mult(pf.MoveSpeed),
		Yaw:      yaw,
		Active:   true,
	}

	if pf.HasLast {
		if math.Hypot(tr.X-pf.LastX, tr.Z-pf.LastZ) < ps.tuning.MinProgress*dt {
			pf.StuckTimer += dt
		} else {
			pf.StuckTimer = 0
		}
		if pf.StuckTimer > ps.tuning.StuckTimeout {
			ps.logger.Debug("stall detected, recalculating route",
				zap.Stringer("entity", e),
				zap.Stringer("target", pf.Target))
			pf.State = component.NavRecalculating
			pf.StuckTimer = 0
			pf.HasLast = false
			pf.ClearPath()
			return component.MoveIntent{}, false, nav.Cell{}
		}
	}
	pf.LastX, pf.LastZ = tr.X, tr.Z
	pf.HasLast = true

	return intent, false, nav.Cell{}
}

func (ps *PathfindingSystem) arrive(pf *component.Pathfinder) (component.MoveIntent, bool, nav.Cell) {
	at := pf.Target
	pf.State = component.NavIdle
	pf.HasTarget = false
	pf.ClearPath()
	pf.StuckTimer = 0
	pf.HasLast = false
	return component.MoveIntent{}, true, at
}

// NavDebug is a read-only snapshot of one entity's navigation state for
// overlays and diagnostics.
type NavDebug struct {
	Entity    ecs.Entity
	State     component.NavState
	Target    nav.Cell
	HasTarget bool
	Path      []nav.Cell
	Index     int
	Explored  []nav.Cell
}

// DebugPaths snapshots every pathfinder in the world, copying the route
// and explored slices so callers cannot alias live component data.
func DebugPaths(w *ecs.World) []NavDebug {
	var out []NavDebug
	for _, e := range w.Query(component.PathfinderComponent.Kind().ID()) {
		pf, ok := ecs.Get(w, e, component.PathfinderComponent)
		if !ok {
			continue
		}
		out = append(out, NavDebug{
			Entity:    e,
			State:     pf.State,
			Target:    pf.Target,
			HasTarget: pf.HasTarget,
			Path:      append([]nav.Cell(nil), pf.Path...),
			Index:     pf.Index,
			Explored:  append([]nav.Cell(nil), pf.Explored...),
		})
	}
	return out
}
