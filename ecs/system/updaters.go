package system

import (
	"gridnav/ecs"
	"gridnav/ecs/component"
)

// RegisterComponentUpdates installs the per-component self-updates the
// scheduler sweeps before running any system. Each update is
// self-contained: it advances the component's own timers and never
// reaches into other components or entities. Registration is idempotent
// and replaces by name, so calling this more than once is harmless.
func RegisterComponentUpdates() {
	ecs.RegisterUpdate(ecs.Registration{
		Name: "pathfinder",
		Update: func(w *ecs.World, dt float64) {
			ecs.ForEach(w, component.PathfinderComponent, func(e ecs.Entity, p *component.Pathfinder) {
				if !w.Enabled(e) || !p.Enabled {
					return
				}
				p.Tick(dt)
			})
		},
	})
	ecs.RegisterUpdate(ecs.Registration{
		Name: "patrol",
		Update: func(w *ecs.World, dt float64) {
			ecs.ForEach(w, component.PatrolComponent, func(e ecs.Entity, p *component.Patrol) {
				if !w.Enabled(e) || !p.Enabled {
					return
				}
				p.Tick(dt)
			})
		},
	})
}
