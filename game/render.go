package game

import (
	"image"

	"github.com/pthm-cable/mochi/renderer"
)

// Scene describes the current frame for the rasterizer.
func (g *Game) Scene() renderer.Scene {
	p := g.pet
	pv := renderer.PetView{
		Outline: p.Body.Outline(),
		Center:  p.Body.CenterPosition(),
		Scale:   p.Body.DrawScale(),
		Texture: renderer.Texture{
			Perm:      p.Perm,
			Offset:    p.NoiseOffset,
			Scale:     p.NoiseScale,
			Variation: p.ColorVariation,
			Base:      p.Mood.Color.RGB(),
		},
		IdleTime:  p.IdleTime,
		Blinking:  p.Blinking,
		Happiness: p.Mood.Happiness,
		Ball:      p.BallTarget(),
		Gaze:      p.GazeTarget(),
	}

	s := renderer.Scene{Pet: &pv, Time: g.simTime}
	for _, f := range g.foods {
		if !g.space.Exists(f.Handle) {
			continue
		}
		s.Foods = append(s.Foods, renderer.PropView{
			Position: g.space.Position(f.Handle),
			Radius:   g.cfg.Food.Radius,
			Angle:    f.Angle,
			Edible:   f.Edible,
			Stem:     true,
			Texture: renderer.Texture{
				Perm:      f.Perm,
				Offset:    f.Offset,
				Scale:     g.cfg.Food.NoiseScale,
				Variation: g.cfg.Food.ColorVariation,
				Base:      foodColor,
			},
		})
	}
	if g.ball != nil && g.space.Exists(g.ball.Handle) {
		s.Ball = &renderer.PropView{
			Position: g.space.Position(g.ball.Handle),
			Radius:   g.cfg.Ball.Radius,
			Texture: renderer.Texture{
				Perm:      g.ball.Perm,
				Offset:    g.ball.Offset,
				Scale:     g.cfg.Ball.NoiseScale,
				Variation: g.cfg.Ball.ColorVariation,
				Base:      ballColor,
			},
		}
	}
	return s
}

// Render rasterizes the current frame and hands it to the frame sink at
// most once per frame interval of simulated time. The image is reused by
// the next call.
func (g *Game) Render() *image.RGBA {
	img := g.canvas.Render(g.Scene(), g.renderOpts)
	if g.frameSink != nil && g.phase != PhaseStartMenu && g.frameTimer >= g.cfg.Derived.FrameEvery {
		g.frameTimer = 0
		g.frameSink.SendFrame(img)
	}
	return img
}

// BorderBlur reports whether the soft outline is on.
func (g *Game) BorderBlur() bool { return g.renderOpts.BorderBlur }

// ToggleBorderBlur switches between the thin and the soft outline.
func (g *Game) ToggleBorderBlur() {
	g.renderOpts.BorderBlur = !g.renderOpts.BorderBlur
}
