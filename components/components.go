// Package components defines ECS components for physical bodies.
package components

// Label tags a body for collision dispatch.
type Label uint8

const (
	LabelNone Label = iota
	LabelPet
	LabelFood
	LabelBall
)

// String returns the label name used in logs.
func (l Label) String() string {
	switch l {
	case LabelPet:
		return "Pet"
	case LabelFood:
		return "Food"
	case LabelBall:
		return "Ball"
	default:
		return "None"
	}
}

// Position represents a body's world position in pixels.
type Position struct {
	X, Y float64
}

// PrevPosition is the position at the start of the current step.
// Velocities are rebuilt from it after constraints move the body.
type PrevPosition struct {
	X, Y float64
}

// Velocity represents a body's velocity in pixels per second.
type Velocity struct {
	X, Y float64
}

// Force accumulates forces until the world clears them.
type Force struct {
	X, Y float64
}

// Body holds the material of a circular body.
type Body struct {
	Radius      float64
	Mass        float64
	InvMass     float64 // 0 when massless
	Restitution float64
	Friction    float64
	FrictionAir float64 // Fraction of velocity lost per second
	Group       int     // Bodies sharing a non-zero group never collide
	Label       Label
}
