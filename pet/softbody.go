package pet

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mochi/config"
	"github.com/pthm-cable/mochi/physics"
)

// SoftBody is a center body ringed by particles. Radial springs tie each
// particle to the center; ring springs tie neighbours together.
type SoftBody struct {
	world physics.World

	Center    physics.Handle
	Particles []physics.Handle

	radial []physics.SpringID
	ring   []physics.SpringID

	baseDistance float64
	minScale     float64
	maxScale     float64
	scale        float64
}

// NewSoftBody builds the pet's body around (x, y).
func NewSoftBody(world physics.World, x, y float64, cfg config.PetConfig) *SoftBody {
	s := &SoftBody{
		world:        world,
		baseDistance: cfg.BaseDistance,
		minScale:     cfg.MinScale,
		maxScale:     cfg.MaxScale,
		scale:        1,
	}

	s.Center = world.AddBody(physics.BodyDef{
		Position:    r2.Vec{X: x, Y: y},
		Radius:      cfg.CenterRadius,
		Density:     cfg.Density,
		Friction:    cfg.Friction,
		Restitution: cfg.Restitution,
		FrictionAir: cfg.FrictionAir,
		Group:       cfg.CollisionGroup,
		Label:       physics.LabelPet,
	})

	n := cfg.Particles
	s.Particles = make([]physics.Handle, n)
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		s.Particles[i] = world.AddBody(physics.BodyDef{
			Position: r2.Vec{
				X: x + cfg.BaseDistance*math.Cos(angle),
				Y: y + cfg.BaseDistance*math.Sin(angle),
			},
			Radius:      cfg.ParticleRadius,
			Density:     cfg.Density,
			Friction:    cfg.Friction,
			Restitution: cfg.Restitution,
			FrictionAir: cfg.FrictionAir,
			Group:       cfg.CollisionGroup,
			Label:       physics.LabelPet,
		})
	}

	chord := ChordLength(cfg.BaseDistance, n)
	s.radial = make([]physics.SpringID, n)
	s.ring = make([]physics.SpringID, n)
	for i := 0; i < n; i++ {
		s.radial[i] = world.AddSpring(s.Center, s.Particles[i], cfg.BaseDistance, cfg.RadialStiffness)
		s.ring[i] = world.AddSpring(s.Particles[i], s.Particles[(i+1)%n], chord, cfg.RingStiffness)
	}

	return s
}

// ChordLength is the side of a regular n-gon with the given circumradius.
func ChordLength(radius float64, n int) float64 {
	return 2 * radius * math.Sin(math.Pi/float64(n))
}

// ScaleFactor maps fullness to a body scale between min and max.
func ScaleFactor(fullness, minScale, maxScale float64) float64 {
	s := minScale + (maxScale-minScale)*(fullness/100)
	return math.Max(minScale, math.Min(maxScale, s))
}

// ApplyScale resizes every spring to match fullness.
func (s *SoftBody) ApplyScale(fullness float64) {
	s.scale = ScaleFactor(fullness, s.minScale, s.maxScale)
	radial := s.baseDistance * s.scale
	chord := ChordLength(radial, len(s.Particles))
	for _, id := range s.radial {
		s.world.SetSpringLength(id, radial)
	}
	for _, id := range s.ring {
		s.world.SetSpringLength(id, chord)
	}
}

// Scale returns the last applied scale factor.
func (s *SoftBody) Scale() float64 { return s.scale }

// RadialLength returns the shared radial rest length.
func (s *SoftBody) RadialLength() float64 {
	return s.world.SpringLength(s.radial[0])
}

// RingLength returns the shared ring rest length.
func (s *SoftBody) RingLength() float64 {
	return s.world.SpringLength(s.ring[0])
}

// DrawScale is the current radial length relative to the base distance.
func (s *SoftBody) DrawScale() float64 {
	return s.RadialLength() / s.baseDistance
}

// CenterPosition returns where the center body is.
func (s *SoftBody) CenterPosition() r2.Vec {
	return s.world.Position(s.Center)
}

// Outline returns particle positions sorted by angle around the center.
func (s *SoftBody) Outline() []r2.Vec {
	c := s.CenterPosition()
	pts := make([]r2.Vec, len(s.Particles))
	for i, h := range s.Particles {
		pts[i] = s.world.Position(h)
	}
	slices.SortFunc(pts, func(a, b r2.Vec) int {
		aa := math.Atan2(a.Y-c.Y, a.X-c.X)
		ab := math.Atan2(b.Y-c.Y, b.X-c.X)
		switch {
		case aa < ab:
			return -1
		case aa > ab:
			return 1
		default:
			return 0
		}
	})
	return pts
}

// Owns reports whether h is one of the body's parts.
func (s *SoftBody) Owns(h physics.Handle) bool {
	return h == s.Center || slices.Contains(s.Particles, h)
}

// Remove takes every part out of the world.
func (s *SoftBody) Remove() {
	for _, h := range s.Particles {
		s.world.RemoveBody(h)
	}
	s.world.RemoveBody(s.Center)
}
