package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mochi/audio"
	"github.com/pthm-cable/mochi/pet"
	"github.com/pthm-cable/mochi/physics"
	"github.com/pthm-cable/mochi/telemetry"
)

// EffectKind is what a contact does to the game.
type EffectKind int

const (
	EffectFoodContact EffectKind = iota + 1
	EffectBallContact
)

// Effect is a contact that matters to the game, naming the prop involved.
type Effect struct {
	Kind EffectKind
	Prop physics.Handle
}

// ClassifyContacts turns the contacts of one frame into effects. Each prop
// yields at most one effect per frame however many pet parts it touched.
func ClassifyContacts(contacts []physics.Contact) []Effect {
	var effects []Effect
	seen := make(map[physics.Handle]bool)
	for _, c := range contacts {
		var kind EffectKind
		var prop physics.Handle
		if oc, ok := c.Oriented(physics.LabelFood, physics.LabelPet); ok {
			kind, prop = EffectFoodContact, oc.A
		} else if oc, ok := c.Oriented(physics.LabelBall, physics.LabelPet); ok {
			kind, prop = EffectBallContact, oc.A
		} else {
			continue
		}
		if seen[prop] {
			continue
		}
		seen[prop] = true
		effects = append(effects, Effect{Kind: kind, Prop: prop})
	}
	return effects
}

// Update advances the game by one frame of dt seconds. Nothing moves
// outside the running phase.
func (g *Game) Update(dt float64) {
	if g.phase != PhaseRunning {
		return
	}
	dt = clampDT(dt, g.cfg.Physics.MaxFrameDT)
	if dt <= 0 {
		return
	}

	g.runCaretaker()

	g.tick++
	g.simTime += dt
	g.frameTimer += dt
	g.perfCollector.StartTick()

	// Physics
	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	substeps := g.cfg.Physics.Substeps
	sub := dt / float64(substeps)
	var contacts []physics.Contact
	for i := 0; i < substeps; i++ {
		contacts = append(contacts, g.space.Step(sub)...)
	}
	g.space.ClearForces()

	// Contacts
	g.perfCollector.StartPhase(telemetry.PhaseContacts)
	g.applyEffects(ClassifyContacts(contacts))

	// Mood, blink and size
	g.perfCollector.StartPhase(telemetry.PhaseMood)
	g.pet.Update(dt)

	// Movement
	g.perfCollector.StartPhase(telemetry.PhaseBehavior)
	if !g.pet.Dead() {
		if g.ball != nil && g.space.Exists(g.ball.Handle) {
			g.pet.Behavior.PlayWithBall(g.pet, g.space.Position(g.ball.Handle), dt)
		} else {
			g.pet.Behavior.SeekFood(g.pet, g.FoodPositions())
		}
	}

	// Props
	g.perfCollector.StartPhase(telemetry.PhaseProps)
	g.updateProps(dt)

	// Prompt
	g.perfCollector.StartPhase(telemetry.PhasePrompt)
	g.refreshPrompt()

	if g.pet.Dead() {
		g.gameOver()
	}

	// Telemetry
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Sample(g.pet.Mood.Fullness, g.pet.Mood.Happiness)
	g.flushTelemetry(g.phase == PhaseGameOver)

	g.perfCollector.EndTick()
}

// UpdateHeadless runs StepsPerUpdate frames at the target frame rate,
// starting the game if needed.
func (g *Game) UpdateHeadless() {
	if g.phase == PhaseStartMenu {
		g.Start()
	}
	dt := 1 / float64(max(1, g.cfg.Screen.TargetFPS))
	for i := 0; i < g.stepsPerUpdate && g.phase == PhaseRunning; i++ {
		g.Update(dt)
	}
	if g.frameSink != nil {
		g.Render()
	}
}

// applyEffects carries out contact effects on props that still exist.
func (g *Game) applyEffects(effects []Effect) {
	center := g.pet.Body.CenterPosition()
	for _, e := range effects {
		if !g.space.Exists(e.Prop) {
			continue
		}
		switch e.Kind {
		case EffectFoodContact:
			food := g.findFood(e.Prop)
			if food == nil {
				continue
			}
			if food.Edible {
				g.pet.Mood.EatFood()
				g.audio.Play(audio.EffectEat)
				g.removeFood(food)
				g.logEvent(telemetry.EventEat, "")
				continue
			}
			delta := r2.Sub(g.space.Position(food.Handle), center)
			if r2.Norm(delta) > 0 {
				g.space.ApplyImpulse(food.Handle, r2.Scale(g.cfg.Food.BounceFactor, delta))
			}
			g.logEvent(telemetry.EventBounce, "")

		case EffectBallContact:
			if g.ball == nil || g.ball.Handle != e.Prop {
				continue
			}
			g.pet.Mood.Cheer(g.cfg.Mood.BallHappiness)
			delta := r2.Sub(g.space.Position(g.ball.Handle), center)
			if r2.Norm(delta) > 0 {
				g.space.ApplyImpulse(g.ball.Handle, r2.Scale(g.cfg.Ball.KickImpulse, r2.Unit(delta)))
				g.pet.Behavior.Jump(g.pet, &delta)
			}
			g.audio.Play(audio.EffectKick)
			g.logEvent(telemetry.EventKick, "")
		}
	}
}

// refreshPrompt recomposes the prompt and sends it only when it changed.
func (g *Game) refreshPrompt() {
	p := pet.ComposePrompt(&g.pet.Mood, g.ball != nil, len(g.foods) > 0)
	if p == g.prompt {
		return
	}
	g.prompt = p
	if g.promptSink != nil {
		g.promptSink.SendPrompt(p)
	}
	g.logEvent(telemetry.EventPrompt, p)
}

// gameOver moves to the game-over phase. The music stops and the game-over
// sound plays exactly once.
func (g *Game) gameOver() {
	if g.phase == PhaseGameOver {
		return
	}
	g.phase = PhaseGameOver
	if !g.musicStopped {
		g.audio.StopMusic()
		g.musicStopped = true
		g.audio.Play(audio.EffectGameOver)
	}
	g.logEvent(telemetry.EventDeath, string(g.pet.Mood.Color))
}

// runCaretaker feeds a hungry pet and plays with a sad one.
func (g *Game) runCaretaker() {
	if !g.caretaker || g.pet.Dead() {
		return
	}
	if g.pet.Mood.Fullness < g.cfg.Caretaker.FeedBelow {
		g.Feed()
	}
	if g.pet.Mood.Happiness < g.cfg.Caretaker.PlayBelow {
		g.Play()
	}
}

// clampDT bounds a frame time so a stall does not explode the solver.
func clampDT(dt, maxDT float64) float64 {
	if dt < 0 {
		return 0
	}
	if maxDT > 0 && dt > maxDT {
		return maxDT
	}
	return dt
}
