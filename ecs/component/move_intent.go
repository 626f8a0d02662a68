package component

import "github.com/jakecoffman/cp"

// MoveIntent is the pathfinding system's per-tick output for the
// movement integrator: a desired ground-plane velocity and yaw. The
// integrator owns the actual Transform mutation, subject to collision.
// Velocity.Y carries the world Z axis, matching the nav ground plane.
type MoveIntent struct {
	Velocity cp.Vector
	Yaw      float64
	Active   bool
}

var MoveIntentComponent = NewComponent[MoveIntent]()
