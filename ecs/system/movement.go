package system

import (
	"github.com/jakecoffman/cp"

	"gridnav/ecs"
	"gridnav/ecs/component"
	"gridnav/nav"
)

// MovementSystem resolves MoveIntent into Transform updates. Entities
// with a PhysicsBody move through the Chipmunk collision space, where
// blocked grid cells are static box colliders; entities without one
// integrate their intent directly.
type MovementSystem struct {
	space  *cp.Space
	grid   *nav.GridMap
	bodies map[ecs.Entity]*component.PhysicsBody
}

func NewMovementSystem(grid *nav.GridMap) *MovementSystem {
	space := cp.NewSpace()
	space.Iterations = 10

	if grid != nil {
		cs := grid.CellSize()
		for y := 0; y < grid.Height(); y++ {
			for x := 0; x < grid.Width(); x++ {
				if grid.CellState(x, y) != nav.Blocked {
					continue
				}
				bb := cp.BB{
					L: float64(x) * cs,
					B: float64(y) * cs,
					R: float64(x+1) * cs,
					T: float64(y+1) * cs,
				}
				shape := cp.NewBox2(space.StaticBody, bb, 0)
				shape.SetFriction(0)
				shape.SetElasticity(0)
				space.AddShape(shape)
			}
		}
	}

	return &MovementSystem{
		space:  space,
		grid:   grid,
		bodies: make(map[ecs.Entity]*component.PhysicsBody),
	}
}

// Space exposes the collision space for spawners that add extra
// colliders.
func (ms *MovementSystem) Space() *cp.Space {
	return ms.space
}

type moveTarget struct {
	entity ecs.Entity
	body   *cp.Body
	vel    cp.Vector
	yaw    float64
	active bool
}

func (ms *MovementSystem) Update(w *ecs.World, dt float64) {
	if dt <= 0 {
		return
	}
	ms.reapDead(w)

	// Bodies default to rest each tick; only entities processed below
	// get a velocity. Skipped entities therefore stay frozen.
	for _, pb := range ms.bodies {
		if pb.Body != nil {
			pb.Body.SetVelocity(0, 0)
		}
	}

	entities := w.Query(
		component.MoveIntentComponent.Kind().ID(),
		component.TransformComponent.Kind().ID(),
	)

	targets := make([]moveTarget, 0, len(entities))
	for _, e := range entities {
		if !w.Enabled(e) {
			continue
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok || !tr.Enabled {
			continue
		}
		intent, ok := ecs.Get(w, e, component.MoveIntentComponent)
		if !ok {
			continue
		}

		body := ms.ensureBody(w, e, tr)
		if body != nil && intent.Active {
			body.SetVelocity(intent.Velocity.X, intent.Velocity.Y)
		}
		targets = append(targets, moveTarget{
			entity: e,
			body:   body,
			vel:    intent.Velocity,
			yaw:    intent.Yaw,
			active: intent.Active,
		})
	}

	ms.space.Step(dt)

	for _, t := range targets {
		tr, ok := ecs.Mut(w, t.entity, component.TransformComponent)
		if !ok {
			continue
		}
		if t.body != nil {
			pos := t.body.Position()
			tr.X = pos.X
			tr.Z = pos.Y
		} else if t.active {
			tr.X += t.vel.X * dt
			tr.Z += t.vel.Y * dt
		}
		if t.active {
			tr.Yaw = t.yaw
		}
	}
}

// ensureBody creates the entity's Chipmunk body and collider on first
// sight. Entities without a PhysicsBody component return nil and fall
// back to direct integration.
func (ms *MovementSystem) ensureBody(w *ecs.World, e ecs.Entity, tr component.Transform) *cp.Body {
	pb, ok := ecs.Mut(w, e, component.PhysicsBodyComponent)
	if !ok {
		return nil
	}
	if pb.Body == nil {
		mass := pb.Mass
		if mass <= 0 {
			mass = 1
		}
		radius := pb.Radius
		if radius <= 0 {
			radius = 0.3
			if ms.grid != nil {
				radius = ms.grid.CellSize() * 0.3
			}
		}
		body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
		body.SetPosition(vecXZ(tr))
		shape := cp.NewCircle(body, radius, cp.Vector{})
		shape.SetFriction(0)
		shape.SetElasticity(0)
		ms.space.AddBody(body)
		ms.space.AddShape(shape)
		pb.Body = body
		pb.Shape = shape
		pb.Radius = radius
		pb.Mass = mass
	}
	ms.bodies[e] = pb
	return pb.Body
}

// reapDead removes bodies whose entity was destroyed so the space does
// not accumulate orphaned colliders.
func (ms *MovementSystem) reapDead(w *ecs.World) {
	for e, pb := range ms.bodies {
		if w.IsAlive(e) {
			continue
		}
		if pb.Shape != nil {
			ms.space.RemoveShape(pb.Shape)
		}
		if pb.Body != nil {
			ms.space.RemoveBody(pb.Body)
		}
		delete(ms.bodies, e)
	}
}
