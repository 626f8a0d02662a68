package component

import "gridnav/nav"

// NavState is the navigation lifecycle of a Pathfinder. Transitions are
// owned by the pathfinding system; the legal set is:
//
//	Idle          -> Recalculating  (target set)
//	Recalculating -> Navigating     (search found a path)
//	Recalculating -> Stuck          (no path / invalid target / budget misses)
//	Navigating    -> Idle           (final waypoint reached)
//	Navigating    -> Recalculating  (stall detected)
//	Stuck         -> Recalculating  (retry cooldown elapsed)
type NavState int

const (
	NavIdle NavState = iota
	NavRecalculating
	NavNavigating
	NavStuck
)

func (s NavState) String() string {
	switch s {
	case NavIdle:
		return "idle"
	case NavRecalculating:
		return "recalculating"
	case NavNavigating:
		return "navigating"
	case NavStuck:
		return "stuck"
	}
	return "unknown"
}

// Pathfinder holds per-entity navigation state: the goal, the computed
// route, progress through it, and the timers driving stall detection
// and stuck retries. Mutated exclusively by the pathfinding system;
// Path, Explored and Target are the read-only debug-overlay surface.
type Pathfinder struct {
	State     NavState
	Target    nav.Cell
	HasTarget bool

	Path     []nav.Cell
	Index    int
	Explored []nav.Cell

	MoveSpeed    float64
	TurnSpeed    float64
	ArriveRadius float64

	// StuckTimer accumulates time without meaningful displacement while
	// navigating. RetryTimer counts down the cooldown before a Stuck
	// pathfinder tries again. RetryTimer ticks in the component's
	// registered self-update; everything else belongs to the system.
	StuckTimer   float64
	RetryTimer   float64
	BudgetMisses int

	LastX   float64
	LastZ   float64
	HasLast bool

	Enabled bool
}

var PathfinderComponent = NewComponent[Pathfinder]()

// NewPathfinder creates an idle pathfinder with the given speeds.
func NewPathfinder(moveSpeed, turnSpeed, arriveRadius float64) Pathfinder {
	return Pathfinder{
		State:        NavIdle,
		MoveSpeed:    moveSpeed,
		TurnSpeed:    turnSpeed,
		ArriveRadius: arriveRadius,
		Enabled:      true,
	}
}

// SetTarget points the pathfinder at a new goal cell. Any in-flight
// route is cancelled implicitly by forcing a recalculation.
func (p *Pathfinder) SetTarget(c nav.Cell) {
	if !p.Enabled {
		return
	}
	p.Target = c
	p.HasTarget = true
	p.State = NavRecalculating
	p.ClearPath()
	p.StuckTimer = 0
	p.RetryTimer = 0
	p.BudgetMisses = 0
	p.HasLast = false
}

// ClearPath drops the computed route and progress, keeping the target.
func (p *Pathfinder) ClearPath() {
	p.Path = nil
	p.Index = 0
	p.Explored = nil
}

// CurrentWaypoint returns the cell the entity is moving toward.
func (p *Pathfinder) CurrentWaypoint() (nav.Cell, bool) {
	if p.Index < 0 || p.Index >= len(p.Path) {
		return nav.Cell{}, false
	}
	return p.Path[p.Index], true
}

// Tick is the registered self-update: it only advances this component's
// own timers and never touches other components or entities.
func (p *Pathfinder) Tick(dt float64) {
	if p.State == NavStuck && p.RetryTimer > 0 {
		p.RetryTimer -= dt
		if p.RetryTimer < 0 {
			p.RetryTimer = 0
		}
	}
}
