package component

// Transform is an entity's placement in continuous world space. X/Z is
// the ground plane navigation moves on; Y is vertical. Yaw rotates
// about the vertical axis.
type Transform struct {
	X       float64
	Y       float64
	Z       float64
	Yaw     float64
	Scale   float64
	Enabled bool
}

var TransformComponent = NewComponent[Transform]()

// NewTransform places an entity at a ground position with unit scale.
func NewTransform(x, y, z float64) Transform {
	return Transform{X: x, Y: y, Z: z, Scale: 1, Enabled: true}
}
