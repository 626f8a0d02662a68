package ecs

// System is a unit of per-tick logic operating over components.
type System interface {
	Update(w *World, dt float64)
}

// Phase is a fixed slot in the per-tick execution order.
type Phase int

const (
	// PhaseInput runs first: external command ingestion.
	PhaseInput Phase = iota
	// PhaseIntent runs spawner/bot logic that picks navigation targets.
	PhaseIntent
	// PhaseNavigation runs path searches and waypoint following.
	PhaseNavigation
	// PhasePhysics integrates movement intents subject to collision.
	PhasePhysics
	// PhasePresent hands read-only state to the renderer boundary.
	PhasePresent

	numPhases
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseIntent:
		return "intent"
	case PhaseNavigation:
		return "navigation"
	case PhasePhysics:
		return "physics"
	case PhasePresent:
		return "present"
	}
	return "unknown"
}

// Scheduler runs systems in fixed phase order once per tick. There is no
// preemption: every system runs to completion synchronously.
type Scheduler struct {
	phases [numPhases][]System
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add appends a system to a phase. Within a phase, systems run in
// insertion order.
func (s *Scheduler) Add(p Phase, system System) {
	if system == nil || p < 0 || p >= numPhases {
		return
	}
	s.phases[p] = append(s.phases[p], system)
}

// Tick runs registered component self-updates, then every phase's
// systems in order, then flushes the event queue to subscribers.
func (s *Scheduler) Tick(w *World, dt float64) {
	if s == nil || w == nil {
		return
	}
	w.UpdateRegistered(dt)
	for p := Phase(0); p < numPhases; p++ {
		for _, system := range s.phases[p] {
			system.Update(w, dt)
		}
	}
	w.events.flush()
}
