package ui

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mochi/systems"
)

// HUDSeeds fixes the gauge and banner textures for one game.
type HUDSeeds struct {
	Perm      *systems.PermutationTable
	Fullness  float64
	Happiness float64
}

// HUDImages are the noise fills of the HUD, baked on the CPU. Corners,
// borders and flourishes are added by raylib.
type HUDImages struct {
	Fullness  *image.RGBA
	Happiness *image.RGBA
	Start     *image.RGBA
	GameOver  *image.RGBA
}

// Banner decoration widths.
const (
	bannerBorder   = 10
	bannerInner    = 5
	bannerFlourish = 6
	bannerInset    = 15
	cornerSegments = 16
)

type bannerStyle struct {
	border, inner, flourish color.RGBA
}

// BuildHUDImages samples the gauge fills at uiScale and both banners at
// bannerScale, with seeds offset by 100 (start) and 200 (game over) from
// the fullness seed.
func BuildHUDImages(t Theme, seeds HUDSeeds, uiScale, bannerScale float64) HUDImages {
	gw, gh := t.GaugeWidth, t.GaugeHeight
	bw, bh := t.BannerWidth, t.BannerHeight
	return HUDImages{
		Fullness:  NoisePattern(seeds.Perm, gw, gh, uiScale, seeds.Fullness, t.GaugeVariation, t.FullnessBase),
		Happiness: NoisePattern(seeds.Perm, gw, gh, uiScale, seeds.Happiness, t.GaugeVariation, t.HappinessBase),
		Start:     NoisePattern(seeds.Perm, bw, bh, bannerScale, seeds.Fullness+100, t.BannerVariation, t.StartBase),
		GameOver:  NoisePattern(seeds.Perm, bw, bh, bannerScale, seeds.Fullness+200, t.BannerVariation, t.GameOverBase),
	}
}

// strokeRounded draws a rounded outline of the given thickness centered on
// rec's edge.
func strokeRounded(rec rl.Rectangle, radius, thick float32, col color.RGBA) {
	inner := insetRect(rec, thick/2)
	rl.DrawRectangleRoundedLinesEx(inner, roundness(inner, radius-thick/2), cornerSegments, thick, col)
}

// HUD draws the gauges and banners in canvas coordinates.
type HUD struct {
	renderer *Renderer
	images   HUDImages

	full, happy, start, over rl.Texture2D
	loaded                   bool
}

// NewHUD builds the HUD textures on the CPU. Load uploads them.
func NewHUD(seeds HUDSeeds, uiScale, bannerScale float64) *HUD {
	r := NewRenderer()
	return &HUD{
		renderer: r,
		images:   BuildHUDImages(r.Theme, seeds, uiScale, bannerScale),
	}
}

// Load uploads the textures. It needs an open window.
func (h *HUD) Load() {
	if h.loaded {
		return
	}
	t := h.renderer.Theme
	h.full = loadRoundedTexture(h.images.Fullness, t.GaugeRadius)
	h.happy = loadRoundedTexture(h.images.Happiness, t.GaugeRadius)
	h.start = loadRoundedTexture(h.images.Start, t.BannerRadius)
	h.over = loadRoundedTexture(h.images.GameOver, t.BannerRadius)
	h.loaded = true
}

// Unload frees the textures.
func (h *HUD) Unload() {
	if !h.loaded {
		return
	}
	for _, tex := range []rl.Texture2D{h.full, h.happy, h.start, h.over} {
		rl.UnloadTexture(tex)
	}
	h.loaded = false
}

// GaugeFill is the width in pixels of a gauge showing value out of 100.
func GaugeFill(value float64, width int) float32 {
	return float32(max(0, min(1, value/100)) * float64(width))
}

// DrawGauges draws the fullness gauge in the top left corner and the
// happiness gauge below it.
func (h *HUD) DrawGauges(fullness, happiness float64) {
	if !h.loaded {
		return
	}
	t := h.renderer.Theme
	pad := float32(t.Padding)
	h.drawGauge(h.full, pad, pad, fullness)
	h.drawGauge(h.happy, pad, pad+float32(t.GaugeHeight)+pad, happiness)
}

func (h *HUD) drawGauge(fill rl.Texture2D, x, y float32, value float64) {
	t := h.renderer.Theme
	src := rl.Rectangle{Width: GaugeFill(value, t.GaugeWidth), Height: float32(t.GaugeHeight)}
	if src.Width > 0 {
		rl.DrawTextureRec(fill, src, rl.Vector2{X: x, Y: y}, rl.White)
	}
	frame := rl.Rectangle{X: x, Y: y, Width: float32(t.GaugeWidth), Height: float32(t.GaugeHeight)}
	strokeRounded(frame, t.GaugeRadius, t.GaugeStroke, t.GaugeBorder)
}

// DrawStartBanner draws the "Press any key to start" banner over a white
// canvas of the given size.
func (h *HUD) DrawStartBanner(w, ht int32) {
	if !h.loaded {
		return
	}
	rl.DrawRectangle(0, 0, w, ht, rl.White)
	t := h.renderer.Theme
	h.drawBanner(h.start, w, ht, bannerStyle{t.StartBorder, t.StartInner, t.StartFlourish})

	cx, cy := w/2, ht/2
	const lineHeight = 80
	h.renderer.DrawCenteredText("Press any key", cx, cy-lineHeight/2, 60)
	h.renderer.DrawCenteredText("to start", cx, cy+lineHeight/2, 60)
}

// DrawGameOver darkens the canvas and draws the game-over banner.
func (h *HUD) DrawGameOver(w, ht int32) {
	if !h.loaded {
		return
	}
	t := h.renderer.Theme
	rl.DrawRectangle(0, 0, w, ht, t.GameOverShade)
	h.drawBanner(h.over, w, ht, bannerStyle{t.GameOverBorder, t.GameOverInner, t.GameOverFlourish})
	h.renderer.DrawCenteredText("Game Over", w/2, ht/2, 70)
}

// drawBanner centers a banner, raised by 20 pixels, and decorates it with
// an outer border, a lighter inner border and four corner curls.
func (h *HUD) drawBanner(tex rl.Texture2D, w, ht int32, s bannerStyle) {
	t := h.renderer.Theme
	rec := rl.Rectangle{
		X:      (float32(w) - float32(tex.Width)) / 2,
		Y:      (float32(ht)-float32(tex.Height))/2 - 20,
		Width:  float32(tex.Width),
		Height: float32(tex.Height),
	}
	rl.DrawTextureV(tex, rl.Vector2{X: rec.X, Y: rec.Y}, rl.White)

	strokeRounded(rec, t.BannerRadius, bannerBorder, s.border)
	strokeRounded(insetRect(rec, bannerInset), t.BannerRadius/2, bannerInner, s.inner)
	for _, c := range bannerCurls(rec) {
		rl.DrawSplineSegmentBezierCubic(c[0], c[1], c[2], c[3], bannerFlourish, s.flourish)
	}
}
