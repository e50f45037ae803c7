package ui

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawLabelValue draws a label and value on the same line and returns the
// next Y position.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	text := label + ": "
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+rl.MeasureText(text, r.Theme.FontSize), y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawCenteredText draws text centered on (cx, cy) with a drop shadow and
// a dark outline.
func (r *Renderer) DrawCenteredText(text string, cx, cy, size int32) {
	w := rl.MeasureText(text, size)
	x, y := cx-w/2, cy-size/2

	rl.DrawText(text, x+5, y+5, size, rl.Color{A: 128})
	for _, o := range [][2]int32{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
		rl.DrawText(text, x+o[0], y+o[1], size, rl.Black)
	}
	rl.DrawText(text, x, y, size, rl.White)
}

// loadRoundedTexture uploads an opaque image with its corners cut to the
// given radius. A window must be open.
func loadRoundedTexture(img *image.RGBA, radius float32) rl.Texture2D {
	b := img.Bounds()
	src := rl.NewImageFromImage(img)
	mask := roundedMask(int32(b.Dx()), int32(b.Dy()), int32(radius))
	rl.ImageAlphaMask(src, mask)
	rl.UnloadImage(mask)

	tex := rl.LoadTextureFromImage(src)
	rl.UnloadImage(src)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}
