package pet

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mochi/config"
	"github.com/pthm-cable/mochi/physics"
	"github.com/pthm-cable/mochi/systems"
)

// Pet ties the soft body, the mood and the behavior controller together.
type Pet struct {
	world physics.World

	Body     *SoftBody
	Mood     Mood
	Behavior *Behavior

	// Texture parameters
	Perm           *systems.PermutationTable
	NoiseOffset    float64
	NoiseScale     float64
	ColorVariation float64

	IdleTime float64
	Blinking bool

	blinkTimer    float64
	blinkInterval float64
	blinkDuration float64

	ballTarget *r2.Vec
	foodTarget *r2.Vec
}

// New creates a pet centered at (x, y).
func New(world physics.World, x, y float64, cfg *config.Config, rng *rand.Rand) *Pet {
	return &Pet{
		world:          world,
		Body:           NewSoftBody(world, x, y, cfg.Pet),
		Mood:           NewMood(cfg.Mood),
		Behavior:       NewBehavior(cfg.Behavior, rng),
		Perm:           systems.BuildPermutationTable(rng),
		NoiseOffset:    rng.Float64() * 1000,
		NoiseScale:     cfg.Pet.NoiseScale,
		ColorVariation: cfg.Pet.ColorVariation,
		blinkInterval:  cfg.Pet.BlinkInterval,
		blinkDuration:  cfg.Pet.BlinkDuration,
	}
}

// Update advances the blink timer and the mood, then resizes the body to
// match the new fullness. A dead pet is frozen.
func (p *Pet) Update(dt float64) {
	if p.Mood.Dead {
		return
	}

	p.IdleTime += dt
	p.blinkTimer += dt
	if !p.Blinking && p.blinkTimer >= p.blinkInterval {
		p.Blinking = true
		p.blinkTimer = 0
	} else if p.Blinking && p.blinkTimer >= p.blinkDuration {
		p.Blinking = false
		p.blinkTimer = 0
	}

	p.Mood.Update(dt)
	if p.Mood.Dead {
		return
	}
	p.Body.ApplyScale(p.Mood.Fullness)
}

// Dead reports whether the pet has died.
func (p *Pet) Dead() bool { return p.Mood.Dead }

// SetBallTarget records where the ball is; nil clears it.
func (p *Pet) SetBallTarget(pos *r2.Vec) { p.ballTarget = copyVec(pos) }

// SetFoodTarget records the food being chased; nil clears it.
func (p *Pet) SetFoodTarget(pos *r2.Vec) { p.foodTarget = copyVec(pos) }

// BallTarget returns the ball position the face leans toward, or nil.
func (p *Pet) BallTarget() *r2.Vec { return p.ballTarget }

// FoodTarget returns the food position the pet is chasing, or nil.
func (p *Pet) FoodTarget() *r2.Vec { return p.foodTarget }

// GazeTarget is where the pupils look: the ball, the food, or halfway
// between them when both are set.
func (p *Pet) GazeTarget() *r2.Vec {
	switch {
	case p.ballTarget != nil && p.foodTarget != nil:
		mid := r2.Scale(0.5, r2.Add(*p.ballTarget, *p.foodTarget))
		return &mid
	case p.ballTarget != nil:
		return p.ballTarget
	default:
		return p.foodTarget
	}
}

func copyVec(v *r2.Vec) *r2.Vec {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
