package ui

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mochi/systems"
)

func testSeeds() HUDSeeds {
	return HUDSeeds{
		Perm:      systems.BuildPermutationTable(rand.New(rand.NewSource(11))),
		Fullness:  412.5,
		Happiness: 77.25,
	}
}

func TestNoisePattern(t *testing.T) {
	perm := systems.BuildPermutationTable(rand.New(rand.NewSource(1)))
	base := color.RGBA{R: 102, G: 255, B: 102, A: 255}
	img := NoisePattern(perm, 30, 20, 0.1, 5, 20, base)

	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Fatalf("bounds = %v, want 30x20", b)
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			c := img.RGBAAt(x, y)
			// Noise lies in [-1, 1], so each channel moves by at most 20
			if int(c.R) < 82 || int(c.R) > 122 || c.G < 235 {
				t.Fatalf("pixel (%d,%d) = %v, too far from %v", x, y, c, base)
			}
			if c.R != c.B || c.A != 255 {
				t.Fatalf("pixel (%d,%d) = %v", x, y, c)
			}
		}
	}
}

func TestNoisePatternWithoutTable(t *testing.T) {
	base := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	img := NoisePattern(nil, 4, 4, 0.1, 0, 20, base)
	if got := img.RGBAAt(2, 2); got != base {
		t.Errorf("pixel = %v, want %v", got, base)
	}
}

func TestRoundness(t *testing.T) {
	tests := []struct {
		name   string
		rec    rl.Rectangle
		radius float32
		want   float32
	}{
		{"gauge", rl.Rectangle{Width: 150, Height: 40}, 10, 0.5},
		{"banner", rl.Rectangle{Width: 460, Height: 300}, 20, 20.0 / 150},
		{"pill", rl.Rectangle{Width: 100, Height: 20}, 50, 1},
		{"negative radius", rl.Rectangle{Width: 100, Height: 20}, -3, 0},
		{"empty", rl.Rectangle{}, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roundness(tt.rec, tt.radius); math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("roundness = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsetRect(t *testing.T) {
	got := insetRect(rl.Rectangle{X: 10, Y: 20, Width: 100, Height: 50}, 5)
	want := rl.Rectangle{X: 15, Y: 25, Width: 90, Height: 40}
	if got != want {
		t.Errorf("insetRect = %v, want %v", got, want)
	}
}

func TestBuildHUDImages(t *testing.T) {
	th := DefaultTheme()
	imgs := BuildHUDImages(th, testSeeds(), 0.1, 0.01)

	t.Run("sizes", func(t *testing.T) {
		for name, tt := range map[string]struct {
			img  *image.RGBA
			w, h int
		}{
			"fullness":  {imgs.Fullness, th.GaugeWidth, th.GaugeHeight},
			"happiness": {imgs.Happiness, th.GaugeWidth, th.GaugeHeight},
			"start":     {imgs.Start, th.BannerWidth, th.BannerHeight},
			"game over": {imgs.GameOver, th.BannerWidth, th.BannerHeight},
		} {
			if b := tt.img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("%s bounds = %v, want %dx%d", name, b, tt.w, tt.h)
			}
		}
	})

	t.Run("colors", func(t *testing.T) {
		if c := imgs.Fullness.RGBAAt(75, 20); c.R < c.G {
			t.Errorf("fullness gauge = %v, want red", c)
		}
		if c := imgs.Happiness.RGBAAt(75, 20); c.G < c.R {
			t.Errorf("happiness gauge = %v, want green", c)
		}
		if c := imgs.Start.RGBAAt(230, 150); c.R < 200 || c.B > 40 {
			t.Errorf("start banner = %v, want gold", c)
		}
		if c := imgs.GameOver.RGBAAt(230, 150); c.R < 140 || c.G > 70 {
			t.Errorf("game over banner = %v, want dark red", c)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		again := BuildHUDImages(th, testSeeds(), 0.1, 0.01)
		if string(again.Start.Pix) != string(imgs.Start.Pix) {
			t.Error("start banner differs between builds")
		}
	})
}

func TestBannerCurls(t *testing.T) {
	rec := rl.Rectangle{X: 10, Y: 20, Width: 460, Height: 300}
	curls := bannerCurls(rec)

	if got := curls[0][0]; got != (rl.Vector2{X: 40, Y: 50}) {
		t.Errorf("top left start = %v, want {40 50}", got)
	}
	// The other corners mirror the top left one
	for i, c := range curls[0] {
		dx, dy := c.X-rec.X, c.Y-rec.Y
		if got := curls[1][i]; got != (rl.Vector2{X: rec.X + rec.Width - dx, Y: c.Y}) {
			t.Errorf("top right[%d] = %v", i, got)
		}
		if got := curls[3][i]; got != (rl.Vector2{X: rec.X + rec.Width - dx, Y: rec.Y + rec.Height - dy}) {
			t.Errorf("bottom right[%d] = %v", i, got)
		}
	}
}

func TestGaugeFill(t *testing.T) {
	tests := []struct {
		value float64
		want  float32
	}{
		{-5, 0},
		{0, 0},
		{50, 75},
		{100, 150},
		{130, 150},
	}
	for _, tt := range tests {
		if got := GaugeFill(tt.value, 150); got != tt.want {
			t.Errorf("GaugeFill(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestStatsText(t *testing.T) {
	if got := StatsText(89.9, 45.01); got != "Fullness: 89 | Happiness: 45" {
		t.Errorf("StatsText = %q", got)
	}
}
