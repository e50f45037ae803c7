package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/mochi/components"
)

// Spring pulls two bodies toward a rest length.
type Spring struct {
	A, B      ecs.Entity
	Length    float64
	Stiffness float64 // Fraction of the error corrected per pass, 0..1
	Damping   float64 // Fraction of the stretch speed removed per step
	Removed   bool
}

// SpringSystem solves distance constraints by moving positions directly.
type SpringSystem struct {
	posMap  *ecs.Map[components.Position]
	velMap  *ecs.Map[components.Velocity]
	bodyMap *ecs.Map[components.Body]
	world   *ecs.World
	springs []Spring
}

// NewSpringSystem creates a new spring system.
func NewSpringSystem(w *ecs.World) *SpringSystem {
	return &SpringSystem{
		posMap:  ecs.NewMap[components.Position](w),
		velMap:  ecs.NewMap[components.Velocity](w),
		bodyMap: ecs.NewMap[components.Body](w),
		world:   w,
	}
}

// Add registers a spring and returns its index.
func (s *SpringSystem) Add(sp Spring) int {
	s.springs = append(s.springs, sp)
	return len(s.springs) - 1
}

// Get returns the spring at index i, or nil if out of range.
func (s *SpringSystem) Get(i int) *Spring {
	if i < 0 || i >= len(s.springs) {
		return nil
	}
	return &s.springs[i]
}

// DetachEntity drops every spring touching e. Indices stay stable.
func (s *SpringSystem) DetachEntity(e ecs.Entity) {
	for i := range s.springs {
		sp := &s.springs[i]
		if sp.A == e || sp.B == e {
			sp.Removed = true
		}
	}
}

// Solve runs one correction pass over every live spring.
func (s *SpringSystem) Solve() {
	for i := range s.springs {
		sp := &s.springs[i]
		if sp.Removed || !s.world.Alive(sp.A) || !s.world.Alive(sp.B) {
			continue
		}

		pa := s.posMap.Get(sp.A)
		pb := s.posMap.Get(sp.B)
		ba := s.bodyMap.Get(sp.A)
		bb := s.bodyMap.Get(sp.B)

		wsum := ba.InvMass + bb.InvMass
		if wsum == 0 {
			continue
		}

		dx := pb.X - pa.X
		dy := pb.Y - pa.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < 1e-9 {
			continue
		}

		// Positive when stretched
		diff := (dist - sp.Length) / dist * sp.Stiffness
		cx := dx * diff
		cy := dy * diff

		shareA := ba.InvMass / wsum
		shareB := bb.InvMass / wsum
		pa.X += cx * shareA
		pa.Y += cy * shareA
		pb.X -= cx * shareB
		pb.Y -= cy * shareB
	}
}

// Damp removes part of the relative speed along each spring axis.
// Rigid motion of the pair is untouched.
func (s *SpringSystem) Damp() {
	for i := range s.springs {
		sp := &s.springs[i]
		if sp.Removed || sp.Damping <= 0 || !s.world.Alive(sp.A) || !s.world.Alive(sp.B) {
			continue
		}

		ba := s.bodyMap.Get(sp.A)
		bb := s.bodyMap.Get(sp.B)
		wsum := ba.InvMass + bb.InvMass
		if wsum == 0 {
			continue
		}

		pa := s.posMap.Get(sp.A)
		pb := s.posMap.Get(sp.B)
		dx := pb.X - pa.X
		dy := pb.Y - pa.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < 1e-9 {
			continue
		}
		nx, ny := dx/dist, dy/dist

		va := s.velMap.Get(sp.A)
		vb := s.velMap.Get(sp.B)
		rel := (vb.X-va.X)*nx + (vb.Y-va.Y)*ny
		j := rel * sp.Damping / wsum

		va.X += nx * j * ba.InvMass
		va.Y += ny * j * ba.InvMass
		vb.X -= nx * j * bb.InvMass
		vb.Y -= ny * j * bb.InvMass
	}
}
