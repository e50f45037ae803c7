package game

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mochi/physics"
	"github.com/pthm-cable/mochi/systems"
	"github.com/pthm-cable/mochi/telemetry"
)

var (
	foodColor = color.RGBA{R: 255, A: 255}
	ballColor = color.RGBA{R: 135, G: 206, B: 250, A: 255} // light sky blue
)

// Food is an apple. It bounces off the pet until it has been in play for
// the ready delay, then the next touch eats it.
type Food struct {
	Handle physics.Handle
	Age    float64 // Seconds since spawn
	Edible bool    // Latches once Age reaches the ready delay
	Angle  float64 // Rolling angle in radians

	Perm   *systems.PermutationTable
	Offset float64
}

// Ball is the toy. It disappears when Remaining runs out.
type Ball struct {
	Handle    physics.Handle
	Remaining float64 // Seconds left in play

	Perm   *systems.PermutationTable
	Offset float64
}

// Feed drops an apple in from the left or right edge. It is rejected while
// an apple is already in play or the game is not running.
func (g *Game) Feed() bool {
	if g.phase != PhaseRunning || len(g.foods) > 0 {
		return false
	}
	fc := g.cfg.Food

	x, vx := fc.Radius, fc.SpawnSpeed
	if g.rng.Float64() >= 0.5 {
		x, vx = float64(g.cfg.Screen.Width)-fc.Radius, -fc.SpawnSpeed
	}

	h := g.space.AddBody(physics.BodyDef{
		Position:    r2.Vec{X: x, Y: fc.SpawnY},
		Velocity:    r2.Vec{X: vx},
		Radius:      fc.Radius,
		Density:     fc.Density,
		Restitution: fc.Restitution,
		Friction:    fc.Friction,
		FrictionAir: fc.FrictionAir,
		Label:       physics.LabelFood,
	})
	g.foods = append(g.foods, &Food{
		Handle: h,
		Perm:   systems.BuildPermutationTable(g.rng),
		Offset: g.rng.Float64() * 1000,
	})

	g.logEvent(telemetry.EventFeed, "")
	return true
}

// Play drops the ball in from the top at a random x. It is rejected while
// a ball is in play or the game is not running.
func (g *Game) Play() bool {
	if g.phase != PhaseRunning || g.ball != nil {
		return false
	}
	bc := g.cfg.Ball

	x := g.rng.Float64()*(float64(g.cfg.Screen.Width)-2*bc.SpawnMargin) + bc.SpawnMargin
	vx := (g.rng.Float64() - 0.5) * bc.SpawnSpreadVX

	h := g.space.AddBody(physics.BodyDef{
		Position:    r2.Vec{X: x, Y: bc.SpawnY},
		Velocity:    r2.Vec{X: vx, Y: bc.SpawnVY},
		Radius:      bc.Radius,
		Density:     bc.Density,
		Restitution: bc.Restitution,
		Friction:    bc.Friction,
		FrictionAir: bc.FrictionAir,
		Label:       physics.LabelBall,
	})
	g.ball = &Ball{
		Handle:    h,
		Remaining: bc.Lifetime,
		Perm:      systems.BuildPermutationTable(g.rng),
		Offset:    g.rng.Float64() * 1000,
	}

	g.logEvent(telemetry.EventPlay, "")
	return true
}

// findFood returns the apple owning h, or nil.
func (g *Game) findFood(h physics.Handle) *Food {
	for _, f := range g.foods {
		if f.Handle == h {
			return f
		}
	}
	return nil
}

// removeFood takes an apple out of play. Feeding is possible again once the
// last one is gone.
func (g *Game) removeFood(food *Food) {
	for i, f := range g.foods {
		if f == food {
			g.foods = append(g.foods[:i], g.foods[i+1:]...)
			break
		}
	}
	if g.space.Exists(food.Handle) {
		g.space.RemoveBody(food.Handle)
	}
}

// removeBall takes the ball out of play and clears the pet's interest in it.
func (g *Game) removeBall() {
	if g.ball == nil {
		return
	}
	if g.space.Exists(g.ball.Handle) {
		g.space.RemoveBody(g.ball.Handle)
	}
	g.ball = nil
	g.pet.SetBallTarget(nil)
}

// updateProps ages the apples and counts the ball down.
func (g *Game) updateProps(dt float64) {
	for _, f := range g.foods {
		f.Age += dt
		if !f.Edible && f.Age >= g.cfg.Food.ReadyDelay {
			f.Edible = true
		}
		if g.space.Exists(f.Handle) {
			// Rolling without slipping
			f.Angle = math.Mod(f.Angle+g.space.Velocity(f.Handle).X*dt/g.cfg.Food.Radius, 2*math.Pi)
		}
	}

	if g.ball != nil {
		g.ball.Remaining -= dt
		if g.ball.Remaining <= 0 {
			g.removeBall()
			g.logEvent(telemetry.EventBallExpired, "")
		}
	}
}
