package game

import rl "github.com/gen2brain/raylib-go/raylib"

// HandleInput processes keyboard input.
func (g *Game) HandleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyB) {
		g.Start()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		g.Feed()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.Play()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		g.ToggleBorderBlur()
	}

	// Presentation mode hides the cursor and the controls
	if rl.IsKeyPressed(rl.KeyD) && g.camera != nil {
		g.camera.Toggle()
		if g.camera.Presentation {
			rl.HideCursor()
		} else {
			rl.ShowCursor()
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if g.camera == nil || !rl.IsWindowResized() {
		return
	}
	g.camera.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
}
