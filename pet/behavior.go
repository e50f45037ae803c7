package pet

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mochi/config"
)

// Behavior decides when and where the pet moves.
type Behavior struct {
	cfg config.BehaviorConfig
	rng *rand.Rand

	foodTimer     float64
	foodThreshold float64 // 0 until rolled

	ballTimer     float64
	ballThreshold float64 // 0 until rolled
}

// NewBehavior creates a controller with its own random source.
func NewBehavior(cfg config.BehaviorConfig, rng *rand.Rand) *Behavior {
	return &Behavior{cfg: cfg, rng: rng}
}

func (b *Behavior) between(r [2]float64) float64 {
	return r[0] + b.rng.Float64()*(r[1]-r[0])
}

// Jump kicks the center body. A nil direction jumps up with a small random
// tilt; a zero direction jumps straight up.
func (b *Behavior) Jump(p *Pet, dir *r2.Vec) {
	var impulse r2.Vec
	switch {
	case dir == nil:
		angle := -math.Pi/2 + (b.rng.Float64()*2-1)*b.cfg.JumpSpread
		impulse = r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
	case r2.Norm(*dir) == 0:
		impulse = r2.Vec{X: 0, Y: -1}
	default:
		impulse = r2.Unit(*dir)
	}
	p.world.ApplyImpulse(p.Body.Center, r2.Scale(b.cfg.JumpImpulse, impulse))
}

// PlayWithBall runs ball mode: the pet cheers up and hops at the ball on a
// timer that runs faster when it is excited.
func (b *Behavior) PlayWithBall(p *Pet, ball r2.Vec, dt float64) {
	p.Mood.Cheer(p.Mood.cfg.PlayHappinessSec * dt)
	p.SetBallTarget(&ball)

	excited := p.Mood.Happiness > b.cfg.ExcitedAbove
	if b.ballThreshold == 0 {
		if excited {
			b.ballThreshold = b.between(b.cfg.BallFirstExcited)
		} else {
			b.ballThreshold = b.between(b.cfg.BallFirstCalm)
		}
	}

	b.ballTimer += dt
	if b.ballTimer < b.ballThreshold {
		return
	}

	dir := r2.Sub(ball, p.Body.CenterPosition())
	b.Jump(p, &dir)
	b.ballTimer = 0
	if excited {
		b.ballThreshold = b.between(b.cfg.BallNextExcited)
	} else {
		b.ballThreshold = b.between(b.cfg.BallNextCalm)
	}
}

// SeekFood runs idle mode. With food around the pet steers toward the
// nearest piece and hops at it; without food it fidgets.
func (b *Behavior) SeekFood(p *Pet, foods []r2.Vec) {
	// Leaving ball mode forgets its timer: the next ball gets a first-jump wait
	b.ballTimer = 0
	b.ballThreshold = 0
	p.SetBallTarget(nil)

	if len(foods) == 0 {
		p.SetFoodTarget(nil)
		b.foodTimer = 0
		b.foodThreshold = 0
		jitter := r2.Vec{
			X: (b.rng.Float64() - 0.5) * b.cfg.IdleJitterForce,
			Y: (b.rng.Float64() - 0.5) * b.cfg.IdleJitterForce,
		}
		p.world.ApplyForce(p.Body.Center, jitter)
		return
	}

	c := p.Body.CenterPosition()
	closest := foods[0]
	best := r2.Norm(r2.Sub(closest, c))
	for _, f := range foods[1:] {
		if d := r2.Norm(r2.Sub(f, c)); d < best {
			closest, best = f, d
		}
	}
	p.SetFoodTarget(&closest)

	delta := r2.Sub(closest, c)
	if b.cfg.LegacyFoodDelta {
		delta.Y = closest.Y - c.X
	}
	dist := r2.Norm(delta)

	if b.foodThreshold == 0 {
		b.foodThreshold = b.between([2]float64{b.cfg.FoodJumpMin, b.cfg.FoodJumpMax})
	}
	b.foodTimer += b.cfg.FoodTimerStep
	if b.foodTimer >= b.foodThreshold && dist > b.cfg.FoodJumpDistance {
		b.Jump(p, &delta)
		b.foodTimer = 0
		b.foodThreshold = b.between([2]float64{b.cfg.FoodJumpMin, b.cfg.FoodJumpMax})
	}

	if dist > 0 {
		pull := (100-p.Mood.Fullness)/100 + 0.5
		p.world.ApplyForce(p.Body.Center, r2.Scale(b.cfg.FoodSteerForce*pull/dist, delta))
	}
}
