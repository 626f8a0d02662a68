package component

import "gridnav/nav"

// Patrol cycles an entity through a fixed waypoint list. The bot system
// feeds the next waypoint to the entity's Pathfinder whenever
// navigation goes idle.
type Patrol struct {
	Waypoints []nav.Cell
	Current   int
	Loop      bool
	Laps      int
	Elapsed   float64
	Enabled   bool
}

var PatrolComponent = NewComponent[Patrol]()

// NewPatrol creates an enabled looping patrol over the given cells.
func NewPatrol(waypoints []nav.Cell) Patrol {
	return Patrol{
		Waypoints: append([]nav.Cell(nil), waypoints...),
		Loop:      true,
		Enabled:   true,
	}
}

// CurrentTarget returns the waypoint the patrol is heading for, or
// false when the route is exhausted.
func (p *Patrol) CurrentTarget() (nav.Cell, bool) {
	if len(p.Waypoints) == 0 {
		return nav.Cell{}, false
	}
	if p.Current >= len(p.Waypoints) {
		return nav.Cell{}, false
	}
	return p.Waypoints[p.Current], true
}

// Advance steps to the next waypoint, wrapping when looping.
func (p *Patrol) Advance() {
	if len(p.Waypoints) == 0 {
		return
	}
	p.Current++
	if p.Current >= len(p.Waypoints) && p.Loop {
		p.Current = 0
		p.Laps++
	}
}

// Tick is the registered self-update; it only tracks elapsed run time.
func (p *Patrol) Tick(dt float64) {
	p.Elapsed += dt
}

// BotScript drives target selection from a tengo script instead of a
// fixed waypoint list. The bot system compiles Source once per entity.
type BotScript struct {
	Source  string
	Step    int
	Enabled bool
}

var BotScriptComponent = NewComponent[BotScript]()
