package renderer

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Canvas owns the frame buffer. It is reused across frames.
type Canvas struct {
	img *image.RGBA
	dc  *gg.Context
}

// NewCanvas creates a white canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := &Canvas{img: img, dc: gg.NewContextForRGBA(img)}
	c.Clear()
	return c
}

// Image returns the frame buffer. It is overwritten by the next Render.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear paints the canvas white.
func (c *Canvas) Clear() {
	c.dc.SetColor(color.White)
	c.dc.Clear()
}

// Render draws the scene: pet first, then food, then the ball.
func (c *Canvas) Render(s Scene, opts Options) *image.RGBA {
	c.Clear()

	if s.Pet != nil {
		c.drawPet(*s.Pet, opts)
	}
	for _, f := range s.Foods {
		c.drawFood(f, s.Time)
	}
	if s.Ball != nil {
		c.drawBall(*s.Ball)
	}

	return c.img
}
