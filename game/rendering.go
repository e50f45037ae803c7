package game

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mochi/camera"
	"github.com/pthm-cable/mochi/ui"
)

// initGPU creates the canvas texture and uploads the HUD. It runs on the
// first Draw, once the window exists.
func (g *Game) initGPU() {
	if g.gpuReady || g.headless {
		return
	}
	w, h := g.cfg.Screen.Width, g.cfg.Screen.Height

	img := rl.GenImageColor(w, h, rl.White)
	g.frameTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(g.frameTex, rl.FilterBilinear)
	g.texPixels = make([]rl.Color, w*h)

	g.camera = camera.New(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()), float32(w), float32(h))
	g.hud.Load()
	g.gpuReady = true
}

func (g *Game) unloadGPU() {
	if !g.gpuReady {
		return
	}
	rl.UnloadTexture(g.frameTex)
	g.hud.Unload()
	g.gpuReady = false
}

// uploadFrame copies the rendered canvas into the window texture.
func (g *Game) uploadFrame(img *image.RGBA) {
	for i := range g.texPixels {
		o := i * 4
		g.texPixels[i] = rl.Color{R: img.Pix[o], G: img.Pix[o+1], B: img.Pix[o+2], A: img.Pix[o+3]}
	}
	rl.UpdateTexture(g.frameTex, g.texPixels)
}

// Draw renders the frame: the canvas through the camera, then the HUD in
// canvas coordinates, then the controls unless presenting.
func (g *Game) Draw() {
	g.initGPU()
	if !g.gpuReady {
		return
	}

	cw, ch := int32(g.cfg.Screen.Width), int32(g.cfg.Screen.Height)
	view := g.camera.View()
	cam := rl.Camera2D{Offset: rl.Vector2{X: view.X, Y: view.Y}, Zoom: view.Scale}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	if g.phase == PhaseStartMenu {
		rl.BeginMode2D(cam)
		g.hud.DrawStartBanner(cw, ch)
		rl.EndMode2D()
	} else {
		g.uploadFrame(g.Render())
		src := rl.Rectangle{Width: float32(cw), Height: float32(ch)}
		dst := rl.Rectangle{X: view.X, Y: view.Y, Width: view.W, Height: view.H}
		rl.DrawTexturePro(g.frameTex, src, dst, rl.Vector2{}, 0, rl.White)

		rl.BeginMode2D(cam)
		g.hud.DrawGauges(g.pet.Mood.Fullness, g.pet.Mood.Happiness)
		if g.phase == PhaseGameOver {
			g.hud.DrawGameOver(cw, ch)
		}
		rl.EndMode2D()
	}

	if !g.camera.Presentation {
		actions := g.controls.Draw(ui.ControlsData{
			Fullness:     g.pet.Mood.Fullness,
			Happiness:    g.pet.Mood.Happiness,
			Prompt:       g.prompt,
			FoodPresent:  len(g.foods) > 0,
			BallActive:   g.ball != nil,
			BorderBlur:   g.renderOpts.BorderBlur,
			FPS:          rl.GetFPS(),
			ScreenWidth:  int32(rl.GetScreenWidth()),
			ScreenHeight: int32(rl.GetScreenHeight()),
		})
		if actions.Feed {
			g.Feed()
		}
		if actions.Play {
			g.Play()
		}
	}

	rl.EndDrawing()
}
