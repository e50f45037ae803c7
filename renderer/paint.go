package renderer

import (
	"image/color"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r2"
)

// Soft strokes are stacked thinner and thinner so coverage fades toward
// the edges.
const (
	softLayers = 6
	softAlpha  = 0.3
)

// texturePattern paints a noise texture whose origin sits at origin, for a
// body centered at anchor.
type texturePattern struct {
	tex        Texture
	origin     r2.Vec
	anchor     r2.Vec
	multiplier float64
	alpha      uint8
}

var _ gg.Pattern = texturePattern{}

// ColorAt implements gg.Pattern.
func (p texturePattern) ColorAt(x, y int) color.Color {
	c := p.tex.At(float64(x)-p.origin.X, float64(y)-p.origin.Y, p.anchor, p.multiplier)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: p.alpha}
}

func (p texturePattern) withAlpha(a float64) texturePattern {
	p.alpha = uint8(a*255 + 0.5)
	return p
}

// fillCircle fills a disc with pat.
func (c *Canvas) fillCircle(center r2.Vec, r float64, pat gg.Pattern) {
	if r <= 0 {
		return
	}
	c.dc.DrawCircle(center.X, center.Y, r)
	c.dc.SetFillStyle(pat)
	c.dc.Fill()
}

// strokeLine draws a straight segment with flat ends.
func (c *Canvas) strokeLine(a, b r2.Vec, width float64, col color.Color) {
	c.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	c.dc.SetLineCapButt()
	c.dc.SetLineWidth(width)
	c.dc.SetStrokeStyle(gg.NewSolidPattern(col))
	c.dc.Stroke()
}

// strokeArc draws a circular arc from a0 to a1 (radians, y down).
func (c *Canvas) strokeArc(center r2.Vec, r, a0, a1, width float64, col color.Color) {
	c.dc.NewSubPath()
	c.dc.DrawArc(center.X, center.Y, r, a0, a1)
	c.dc.SetLineCapButt()
	c.dc.SetLineWidth(width)
	c.dc.SetStrokeStyle(gg.NewSolidPattern(col))
	c.dc.Stroke()
}

// softStrokePreserve strokes the current path with a blurred edge of the
// given width and keeps the path.
func (c *Canvas) softStrokePreserve(width float64, pat texturePattern) {
	if width <= 0 {
		return
	}
	c.dc.SetLineCapRound()
	c.dc.SetLineJoinRound()
	c.dc.SetStrokeStyle(pat.withAlpha(softAlpha))
	for i := 0; i < softLayers; i++ {
		c.dc.SetLineWidth(width * float64(softLayers-i) / softLayers)
		c.dc.StrokePreserve()
	}
}
