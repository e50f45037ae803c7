package renderer

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var stemColor = color.RGBA{R: 165, G: 42, B: 42, A: 255} // CSS brown

const (
	stemLength = 20
	stemWidth  = 4
	propEdge   = 5 // Soft outline width
)

// propTexture returns the fill for a round prop. The texture origin sits
// five pixels outside the circle's bounding box.
func propTexture(p PropView, multiplier float64) texturePattern {
	return texturePattern{
		tex: p.Texture,
		origin: r2.Vec{
			X: math.Floor(p.Position.X - p.Radius - 5),
			Y: math.Floor(p.Position.Y - p.Radius - 5),
		},
		anchor:     p.Position,
		multiplier: multiplier,
		alpha:      255,
	}
}

func (c *Canvas) drawFood(p PropView, t float64) {
	multiplier := 1.0
	if p.Edible {
		multiplier = 0.8 // lighter once it can be eaten
	}
	tex := propTexture(p, multiplier)
	c.fillCircle(p.Position, p.Radius, tex)

	if p.Stem {
		dir := r2.Vec{X: math.Sin(p.Angle), Y: -math.Cos(p.Angle)}
		c.strokeLine(
			r2.Add(p.Position, r2.Scale(p.Radius, dir)),
			r2.Add(p.Position, r2.Scale(p.Radius+stemLength, dir)),
			stemWidth, stemColor,
		)
	}

	width := float64(propEdge)
	if p.Edible {
		width += math.Sin(t*5) * 2 // pulse
	}
	c.edge(p, width, tex)
}

func (c *Canvas) drawBall(p PropView) {
	tex := propTexture(p, 1)
	c.fillCircle(p.Position, p.Radius, tex)
	c.edge(p, propEdge, tex)
}

// edge softens the rim of a round prop.
func (c *Canvas) edge(p PropView, width float64, tex texturePattern) {
	c.dc.DrawCircle(p.Position.X, p.Position.Y, p.Radius)
	c.softStrokePreserve(width, tex)
	c.dc.ClearPath()
}
