// Package physics defines the world the pet lives in and a solver backed by
// an ark ECS world.
package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mochi/components"
)

// Label tags a body for collision dispatch.
type Label = components.Label

const (
	LabelNone = components.LabelNone
	LabelPet  = components.LabelPet
	LabelFood = components.LabelFood
	LabelBall = components.LabelBall
)

// BodyDef describes a circular body to add to the world.
type BodyDef struct {
	Position    r2.Vec
	Velocity    r2.Vec
	Radius      float64
	Density     float64 // Mass is density times area
	Restitution float64
	Friction    float64
	FrictionAir float64
	Group       int // Bodies sharing a non-zero group never collide
	Label       Label
}

// Contact is a pair of bodies that started touching during a step.
type Contact struct {
	A, B           Handle
	LabelA, LabelB Label
	PosA, PosB     r2.Vec
}

// Involves reports whether the contact joins the two labels, in either order.
func (c Contact) Involves(a, b Label) bool {
	return (c.LabelA == a && c.LabelB == b) || (c.LabelA == b && c.LabelB == a)
}

// Oriented returns the contact with label a first. ok is false when the
// contact does not join a and b.
func (c Contact) Oriented(a, b Label) (Contact, bool) {
	switch {
	case c.LabelA == a && c.LabelB == b:
		return c, true
	case c.LabelA == b && c.LabelB == a:
		return Contact{A: c.B, B: c.A, LabelA: c.LabelB, LabelB: c.LabelA, PosA: c.PosB, PosB: c.PosA}, true
	default:
		return Contact{}, false
	}
}

// SpringID identifies a spring inside a world.
type SpringID int

// World is everything the simulation needs from a physics engine.
// Step reports contacts instead of firing callbacks.
type World interface {
	AddBody(def BodyDef) Handle
	RemoveBody(h Handle)
	Exists(h Handle) bool
	Label(h Handle) Label
	Position(h Handle) r2.Vec
	Velocity(h Handle) r2.Vec
	SetVelocity(h Handle, v r2.Vec)
	ApplyForce(h Handle, f r2.Vec)
	ApplyImpulse(h Handle, j r2.Vec)

	AddSpring(a, b Handle, length, stiffness float64) SpringID
	SetSpringLength(id SpringID, length float64)
	SpringLength(id SpringID) float64

	Step(dt float64) []Contact
	ClearForces()
}
