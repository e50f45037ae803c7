// Package systems contains the noise generator and the ECS systems that make
// up the position-based physics solver.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/mochi/components"
)

// Bounds represents the walled canvas. Walls sit just outside it.
type Bounds struct {
	Width, Height float64
}

// IntegrationSystem advances bodies under gravity and accumulated forces.
type IntegrationSystem struct {
	filter  ecs.Filter5[components.Position, components.PrevPosition, components.Velocity, components.Force, components.Body]
	gravity float64
}

// NewIntegrationSystem creates a new integration system.
func NewIntegrationSystem(w *ecs.World, gravity float64) *IntegrationSystem {
	return &IntegrationSystem{
		filter:  *ecs.NewFilter5[components.Position, components.PrevPosition, components.Velocity, components.Force, components.Body](w),
		gravity: gravity,
	}
}

// Integrate applies forces to velocities and moves every body,
// remembering where it started.
func (s *IntegrationSystem) Integrate(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		pos, prev, vel, force, body := query.Get()
		prev.X, prev.Y = pos.X, pos.Y

		vel.X += force.X * body.InvMass * dt
		vel.Y += (s.gravity + force.Y*body.InvMass) * dt

		damp := 1 - body.FrictionAir*dt
		if damp < 0 {
			damp = 0
		}
		vel.X *= damp
		vel.Y *= damp

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
	}
}

// Finalize rebuilds velocities from the displacement over the step, so
// spring and contact corrections show up as motion.
func (s *IntegrationSystem) Finalize(dt float64) {
	if dt <= 0 {
		return
	}
	query := s.filter.Query()
	for query.Next() {
		pos, prev, vel, _, _ := query.Get()
		vel.X = (pos.X - prev.X) / dt
		vel.Y = (pos.Y - prev.Y) / dt
	}
}

// ClearForces zeroes every force accumulator.
func (s *IntegrationSystem) ClearForces() {
	query := s.filter.Query()
	for query.Next() {
		_, _, _, force, _ := query.Get()
		force.X, force.Y = 0, 0
	}
}
