package ui

import (
	"image"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mochi/systems"
)

// NoisePattern fills a w x h image with base darkened by coherent noise.
// Each channel drops by floor(noise*variation), sampled at
// (i*scale+seed, j*scale+seed), and is clamped to [0, 255].
func NoisePattern(perm *systems.PermutationTable, w, h int, scale, seed, variation float64, base color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			off := 0
			if perm != nil {
				n := systems.Noise(float64(i)*scale+seed, float64(j)*scale+seed, perm)
				off = int(math.Floor(n * variation))
			}
			img.SetRGBA(i, j, color.RGBA{
				R: channel(int(base.R) - off),
				G: channel(int(base.G) - off),
				B: channel(int(base.B) - off),
				A: 255,
			})
		}
	}
	return img
}

func channel(v int) uint8 {
	return uint8(max(0, min(255, v)))
}

// roundness converts a corner radius into raylib's ratio of the shorter side.
func roundness(rec rl.Rectangle, radius float32) float32 {
	short := min(rec.Width, rec.Height)
	if short <= 0 {
		return 0
	}
	return max(0, min(1, 2*radius/short))
}

// insetRect shrinks rec by d on every side.
func insetRect(rec rl.Rectangle, d float32) rl.Rectangle {
	return rl.Rectangle{X: rec.X + d, Y: rec.Y + d, Width: rec.Width - 2*d, Height: rec.Height - 2*d}
}

// bannerCurls returns the four corner flourishes of a banner as cubic
// Bezier points: start, two controls, end.
func bannerCurls(rec rl.Rectangle) [4][4]rl.Vector2 {
	curl := func(sx, sy, dx, dy float32) [4]rl.Vector2 {
		return [4]rl.Vector2{
			{X: sx + 30*dx, Y: sy + 30*dy},
			{X: sx + 70*dx, Y: sy + 20*dy},
			{X: sx + 20*dx, Y: sy + 70*dy},
			{X: sx + 100*dx, Y: sy + 50*dy},
		}
	}
	x0, y0 := rec.X, rec.Y
	x1, y1 := rec.X+rec.Width, rec.Y+rec.Height
	return [4][4]rl.Vector2{
		curl(x0, y0, 1, 1),
		curl(x1, y0, -1, 1),
		curl(x0, y1, 1, -1),
		curl(x1, y1, -1, -1),
	}
}

// roundedMask builds a white-on-black rounded rectangle the size of the
// image, for rl.ImageAlphaMask.
func roundedMask(w, h, radius int32) *rl.Image {
	mask := rl.GenImageColor(int(w), int(h), rl.Black)
	rl.ImageDrawRectangle(mask, radius, 0, w-2*radius, h, rl.White)
	rl.ImageDrawRectangle(mask, 0, radius, w, h-2*radius, rl.White)
	for _, c := range [][2]int32{
		{radius, radius},
		{w - 1 - radius, radius},
		{radius, h - 1 - radius},
		{w - 1 - radius, h - 1 - radius},
	} {
		rl.ImageDrawCircle(mask, c[0], c[1], radius, rl.White)
	}
	return mask
}
