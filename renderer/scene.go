// Package renderer rasterizes the pet, its food and its ball into an RGBA
// image. The same image is shown in the window and sent to the frame sink.
package renderer

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mochi/systems"
)

// Options are per-frame render toggles.
type Options struct {
	BorderBlur bool // Soft wide outline on the pet instead of a thin line
}

// Scene is everything drawn in one frame.
type Scene struct {
	Pet   *PetView
	Foods []PropView
	Ball  *PropView
	Time  float64 // Seconds, drives the edible food pulse
}

// Texture is a coherent-noise fill. Each channel is darkened by
// floor(noise*Variation) and clamped.
type Texture struct {
	Perm      *systems.PermutationTable
	Offset    float64
	Scale     float64
	Variation float64
	Base      color.RGBA
}

// At returns the texture color for a pixel at (lx, ly) relative to the
// texture origin, for a body centered at anchor.
func (t Texture) At(lx, ly float64, anchor r2.Vec, multiplier float64) color.RGBA {
	if t.Perm == nil {
		return t.Base
	}
	n := systems.Noise(
		(lx+t.Offset+anchor.X)*t.Scale,
		(ly+t.Offset+anchor.Y)*t.Scale,
		t.Perm,
	)
	off := math.Floor(n*t.Variation) * multiplier
	return color.RGBA{
		R: clampByte(float64(t.Base.R) - off),
		G: clampByte(float64(t.Base.G) - off),
		B: clampByte(float64(t.Base.B) - off),
		A: 255,
	}
}

// PetView is the pet as the renderer sees it.
type PetView struct {
	Outline   []r2.Vec // Particle positions sorted by angle
	Center    r2.Vec
	Scale     float64 // Current radial length over the base length
	Texture   Texture
	IdleTime  float64
	Blinking  bool
	Happiness float64
	Ball      *r2.Vec // The face leans toward it
	Gaze      *r2.Vec // The pupils look at it
}

// PropView is a food or ball.
type PropView struct {
	Position r2.Vec
	Radius   float64
	Angle    float64 // Rolling angle, turns the stem
	Texture  Texture
	Edible   bool
	Stem     bool
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
