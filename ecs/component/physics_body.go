package component

import "github.com/jakecoffman/cp"

// PhysicsBody holds Chipmunk2D runtime data for entities whose movement
// resolves through the collision space. Body and Shape are created by
// the movement system on first sight; spawners only fill the collider
// configuration.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
	Mass   float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
