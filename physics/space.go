package physics

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mochi/components"
	"github.com/pthm-cable/mochi/config"
	"github.com/pthm-cable/mochi/systems"
)

// Handle is an opaque reference to a body. The zero Handle is never live.
type Handle ecs.Entity

func (h Handle) entity() ecs.Entity { return ecs.Entity(h) }

// IsZero reports whether the handle was never assigned.
func (h Handle) IsZero() bool { return ecs.Entity(h).IsZero() }

var _ World = (*Space)(nil)

// Settings holds solver parameters.
type Settings struct {
	Gravity       float64 // px/s^2, positive is down
	Position      int     // Contact position passes per step
	Velocity      int     // Contact velocity passes per step
	Constraint    int     // Spring passes per step
	RestingSpeed  float64 // Slower approaches do not bounce
	SpringDamping float64 // Fraction of stretch speed removed per step
}

// SettingsFromConfig reads solver settings from the physics section.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Gravity:       cfg.Physics.Gravity,
		Position:      cfg.Physics.PositionIterations,
		Velocity:      cfg.Physics.VelocityIterations,
		Constraint:    cfg.Physics.ConstraintIterations,
		RestingSpeed:  cfg.Physics.RestingSpeed,
		SpringDamping: cfg.Physics.SpringDamping,
	}
}

// Space is a World backed by an ark ECS world.
type Space struct {
	world  *ecs.World
	bounds systems.Bounds

	bodyMapper *ecs.Map5[components.Position, components.PrevPosition, components.Velocity, components.Force, components.Body]
	posMap     *ecs.Map[components.Position]
	velMap     *ecs.Map[components.Velocity]
	forceMap   *ecs.Map[components.Force]
	bodyMap    *ecs.Map[components.Body]
	bodyFilter *ecs.Filter1[components.Body]

	integrator *systems.IntegrationSystem
	springs    *systems.SpringSystem
	collider   *systems.CollisionSystem

	settings Settings
}

// NewSpace creates an empty walled space of the given size.
func NewSpace(bounds systems.Bounds, settings Settings) *Space {
	w := ecs.NewWorld()
	return &Space{
		world:  w,
		bounds: bounds,
		bodyMapper: ecs.NewMap5[
			components.Position,
			components.PrevPosition,
			components.Velocity,
			components.Force,
			components.Body,
		](w),
		posMap:     ecs.NewMap[components.Position](w),
		velMap:     ecs.NewMap[components.Velocity](w),
		forceMap:   ecs.NewMap[components.Force](w),
		bodyMap:    ecs.NewMap[components.Body](w),
		bodyFilter: ecs.NewFilter1[components.Body](w),
		integrator: systems.NewIntegrationSystem(w, settings.Gravity),
		springs:    systems.NewSpringSystem(w),
		collider:   systems.NewCollisionSystem(w, bounds, settings.RestingSpeed),
		settings:   settings,
	}
}

// NewSpaceFromConfig creates a space covering the screen.
func NewSpaceFromConfig(cfg *config.Config) *Space {
	bounds := systems.Bounds{Width: float64(cfg.Screen.Width), Height: float64(cfg.Screen.Height)}
	return NewSpace(bounds, SettingsFromConfig(cfg))
}

// AddBody creates a body and returns its handle.
func (s *Space) AddBody(def BodyDef) Handle {
	mass := def.Density * math.Pi * def.Radius * def.Radius
	invMass := 0.0
	if mass > 0 {
		invMass = 1 / mass
	}

	// Walls are solid: nothing starts inside one
	at := def.Position
	at.X = clamp(at.X, def.Radius, s.bounds.Width-def.Radius)
	at.Y = clamp(at.Y, def.Radius, s.bounds.Height-def.Radius)

	pos := components.Position{X: at.X, Y: at.Y}
	prev := components.PrevPosition{X: at.X, Y: at.Y}
	vel := components.Velocity{X: def.Velocity.X, Y: def.Velocity.Y}
	force := components.Force{}
	body := components.Body{
		Radius:      def.Radius,
		Mass:        mass,
		InvMass:     invMass,
		Restitution: def.Restitution,
		Friction:    def.Friction,
		FrictionAir: def.FrictionAir,
		Group:       def.Group,
		Label:       def.Label,
	}
	return Handle(s.bodyMapper.NewEntity(&pos, &prev, &vel, &force, &body))
}

// RemoveBody deletes a body and any springs attached to it.
// Removing a missing body is a no-op.
func (s *Space) RemoveBody(h Handle) {
	if !s.Exists(h) {
		return
	}
	e := h.entity()
	s.springs.DetachEntity(e)
	s.collider.Forget(e)
	s.world.RemoveEntity(e)
}

// Exists reports whether h refers to a live body.
func (s *Space) Exists(h Handle) bool {
	return !h.IsZero() && s.world.Alive(h.entity())
}

// Label returns the body's label, or LabelNone for stale handles.
func (s *Space) Label(h Handle) Label {
	if !s.Exists(h) {
		return LabelNone
	}
	return s.bodyMap.Get(h.entity()).Label
}

// Position returns the body's position, or the zero vector for stale handles.
func (s *Space) Position(h Handle) r2.Vec {
	if !s.Exists(h) {
		return r2.Vec{}
	}
	p := s.posMap.Get(h.entity())
	return r2.Vec{X: p.X, Y: p.Y}
}

// Velocity returns the body's velocity in pixels per second.
func (s *Space) Velocity(h Handle) r2.Vec {
	if !s.Exists(h) {
		return r2.Vec{}
	}
	v := s.velMap.Get(h.entity())
	return r2.Vec{X: v.X, Y: v.Y}
}

// SetVelocity overwrites the body's velocity.
func (s *Space) SetVelocity(h Handle, v r2.Vec) {
	if !s.Exists(h) {
		return
	}
	vel := s.velMap.Get(h.entity())
	vel.X, vel.Y = v.X, v.Y
}

// ApplyForce adds a force that acts until ClearForces.
func (s *Space) ApplyForce(h Handle, f r2.Vec) {
	if !s.Exists(h) {
		return
	}
	force := s.forceMap.Get(h.entity())
	force.X += f.X
	force.Y += f.Y
}

// ApplyImpulse changes the body's velocity by j / mass at once.
func (s *Space) ApplyImpulse(h Handle, j r2.Vec) {
	if !s.Exists(h) {
		return
	}
	e := h.entity()
	body := s.bodyMap.Get(e)
	vel := s.velMap.Get(e)
	vel.X += j.X * body.InvMass
	vel.Y += j.Y * body.InvMass
}

// Mass returns the body's mass, 0 for stale bodies.
func (s *Space) Mass(h Handle) float64 {
	if !s.Exists(h) {
		return 0
	}
	return s.bodyMap.Get(h.entity()).Mass
}

// AddSpring connects two bodies.
func (s *Space) AddSpring(a, b Handle, length, stiffness float64) SpringID {
	return SpringID(s.springs.Add(systems.Spring{
		A:         a.entity(),
		B:         b.entity(),
		Length:    length,
		Stiffness: stiffness,
		Damping:   s.settings.SpringDamping,
	}))
}

// SetSpringLength changes a spring's rest length.
func (s *Space) SetSpringLength(id SpringID, length float64) {
	if sp := s.springs.Get(int(id)); sp != nil {
		sp.Length = length
	}
}

// SpringLength returns a spring's rest length, or 0 for unknown ids.
func (s *Space) SpringLength(id SpringID) float64 {
	if sp := s.springs.Get(int(id)); sp != nil {
		return sp.Length
	}
	return 0
}

// Step advances the world by dt seconds and returns contacts that began.
func (s *Space) Step(dt float64) []Contact {
	if dt <= 0 {
		return nil
	}

	// 1. Forces, gravity, drag, tentative positions
	s.integrator.Integrate(dt)

	// 2. Springs
	for i := 0; i < s.settings.Constraint; i++ {
		s.springs.Solve()
	}

	// 3. Contacts: positions, then velocities rebuilt and corrected
	s.collider.Gather()
	for i := 0; i < s.settings.Position; i++ {
		s.collider.SolvePositions()
	}
	s.integrator.Finalize(dt)
	s.springs.Damp()
	for i := 0; i < s.settings.Velocity; i++ {
		s.collider.SolveVelocities()
	}

	// 4. Report new pairs
	pairs := s.collider.Begun()
	if len(pairs) == 0 {
		return nil
	}
	contacts := make([]Contact, 0, len(pairs))
	for _, p := range pairs {
		a, b := Handle(p.A), Handle(p.B)
		contacts = append(contacts, Contact{
			A:      a,
			B:      b,
			LabelA: s.Label(a),
			LabelB: s.Label(b),
			PosA:   s.Position(a),
			PosB:   s.Position(b),
		})
	}
	return contacts
}

// ClearForces zeroes all accumulated forces.
func (s *Space) ClearForces() {
	s.integrator.ClearForces()
}

// BodyCount returns the number of live bodies.
func (s *Space) BodyCount() int {
	n := 0
	query := s.bodyFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}
