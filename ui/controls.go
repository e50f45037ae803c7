package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsData holds what the controls panel shows.
type ControlsData struct {
	Fullness    float64
	Happiness   float64
	Prompt      string
	FoodPresent bool // Feed is disabled while an apple is in play
	BallActive  bool // Play is disabled while the ball is in play
	BorderBlur  bool
	FPS         int32

	ScreenWidth  int32
	ScreenHeight int32
}

// Actions are the buttons pressed this frame.
type Actions struct {
	Feed bool
	Play bool
}

// Controls renders the stats line and the Feed/Play buttons along the
// bottom of the window.
type Controls struct {
	renderer *Renderer
}

// NewControls creates the controls panel.
func NewControls() *Controls {
	return &Controls{renderer: NewRenderer()}
}

// StatsText formats the mood line, truncating both values.
func StatsText(fullness, happiness float64) string {
	return fmt.Sprintf("Fullness: %d | Happiness: %d", int(math.Floor(fullness)), int(math.Floor(happiness)))
}

// Draw renders the panel and reports which buttons were clicked.
func (c *Controls) Draw(d ControlsData) Actions {
	r := c.renderer
	t := r.Theme

	height := t.Padding*3 + int32(t.ButtonHeight) + t.LineHeight*2
	y := d.ScreenHeight - height
	r.DrawPanel(0, y, d.ScreenWidth, height)

	x := t.Padding
	ty := y + t.Padding
	rl.DrawText(StatsText(d.Fullness, d.Happiness), x, ty, t.FontSize, t.ValueColor)
	blur := "off"
	if d.BorderBlur {
		blur = "on"
	}
	status := fmt.Sprintf("FPS: %d | Blur: %s", d.FPS, blur)
	rl.DrawText(status, d.ScreenWidth-t.Padding-rl.MeasureText(status, t.FontSize), ty, t.FontSize, t.LabelColor)
	ty += t.LineHeight
	if d.Prompt != "" {
		rl.DrawText(d.Prompt, x, ty, t.FontSize-4, t.LabelColor)
	}
	ty += t.LineHeight + t.Padding

	var a Actions
	feed := rl.Rectangle{X: float32(x), Y: float32(ty), Width: t.ButtonWidth, Height: t.ButtonHeight}
	play := rl.Rectangle{X: feed.X + t.ButtonWidth + float32(t.Padding), Y: feed.Y, Width: t.ButtonWidth, Height: t.ButtonHeight}

	a.Feed = button(feed, "Feed", d.FoodPresent)
	a.Play = button(play, "Play", d.BallActive)

	rl.DrawText("[F] feed  [P] play  [D] present  [1] blur", int32(play.X+play.Width)+t.Padding*2, ty+8, t.FontSize-4, t.LabelColor)
	return a
}

// button draws a raygui button that ignores clicks while disabled.
func button(bounds rl.Rectangle, text string, disabled bool) bool {
	if disabled {
		gui.Disable()
		defer gui.Enable()
	}
	return gui.Button(bounds, text) && !disabled
}
