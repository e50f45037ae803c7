package renderer

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	eyeFill    = color.RGBA{A: 128}
	pupilFill  = color.RGBA{A: 255}
	mouthColor = color.RGBA{A: 255}
	blinkColor = color.RGBA{A: 204}
)

// Quad is one quadratic Bezier segment.
type Quad struct {
	Start, Ctrl, End r2.Vec
}

// At evaluates the segment at t in [0, 1].
func (q Quad) At(t float64) r2.Vec {
	u := 1 - t
	return r2.Add(
		r2.Add(r2.Scale(u*u, q.Start), r2.Scale(2*u*t, q.Ctrl)),
		r2.Scale(t*t, q.End),
	)
}

// SmoothOutline turns sorted outline points into a closed curve. Each point
// is the control of a quadratic running between the midpoints of its
// neighbouring edges.
func SmoothOutline(pts []r2.Vec) []Quad {
	n := len(pts)
	if n < 3 {
		return nil
	}
	mid := func(a, b r2.Vec) r2.Vec { return r2.Scale(0.5, r2.Add(a, b)) }

	out := make([]Quad, n)
	start := mid(pts[n-1], pts[0])
	for i := 0; i < n; i++ {
		end := mid(pts[i], pts[(i+1)%n])
		out[i] = Quad{Start: start, Ctrl: pts[i], End: end}
		start = end
	}
	return out
}

// Face is where the features go for one frame.
type Face struct {
	LeftEye, RightEye r2.Vec
	EyeRadius         float64
	Pupil             r2.Vec // Offset added to both eyes
	PupilRadius       float64
	Mouth             r2.Vec
	MouthRadius       float64
	MouthWidth        float64
	Smile             bool
}

// Layout places the eyes and mouth. The face bobs with the idle timer,
// drops a little when sad, leans toward the ball and points the pupils at
// the gaze target.
func Layout(p PetView) Face {
	s := p.Scale
	eyeX := 24 * s
	eyeY := -6*s + math.Sin(p.IdleTime*3)*1.5 + (50-p.Happiness)/50*2*s

	f := Face{
		LeftEye:     r2.Vec{X: p.Center.X - eyeX, Y: p.Center.Y + eyeY},
		RightEye:    r2.Vec{X: p.Center.X + eyeX, Y: p.Center.Y + eyeY},
		EyeRadius:   20 * s,
		PupilRadius: 10 * s,
		Mouth:       r2.Vec{X: p.Center.X, Y: p.Center.Y + 24*s + math.Sin(p.IdleTime*2)*2*s},
		MouthRadius: 12 * s,
		MouthWidth:  5 * s,
		Smile:       p.Happiness > 50,
	}

	if p.Ball != nil {
		if d := r2.Sub(*p.Ball, p.Center); r2.Norm(d) > 0 {
			lean := r2.Scale(40*s, r2.Unit(d))
			f.LeftEye = r2.Add(f.LeftEye, lean)
			f.RightEye = r2.Add(f.RightEye, lean)
			f.Mouth = r2.Add(f.Mouth, lean)
		}
	}
	if p.Gaze != nil {
		if d := r2.Sub(*p.Gaze, p.Center); r2.Norm(d) > 0 {
			f.Pupil = r2.Scale(0.4*f.EyeRadius, r2.Unit(d))
		}
	}
	return f
}

func (c *Canvas) drawPet(p PetView, opts Options) {
	curve := SmoothOutline(p.Outline)
	if curve == nil {
		return
	}

	// The texture is anchored at the outline's bounding box
	minX, minY := math.Inf(1), math.Inf(1)
	for _, pt := range p.Outline {
		minX, minY = math.Min(minX, pt.X), math.Min(minY, pt.Y)
	}
	tex := texturePattern{
		tex:        p.Texture,
		origin:     r2.Vec{X: math.Floor(minX), Y: math.Floor(minY)},
		anchor:     p.Center,
		multiplier: 1,
		alpha:      255,
	}

	c.dc.MoveTo(curve[0].Start.X, curve[0].Start.Y)
	for _, q := range curve {
		c.dc.QuadraticTo(q.Ctrl.X, q.Ctrl.Y, q.End.X, q.End.Y)
	}
	c.dc.ClosePath()
	c.dc.SetFillStyle(tex)
	c.dc.FillPreserve()

	if opts.BorderBlur {
		c.softStrokePreserve(20*p.Scale, tex)
	} else {
		base := p.Texture.Base
		c.dc.SetLineJoinRound()
		c.dc.SetLineWidth(3 * p.Scale)
		c.dc.SetStrokeStyle(gg.NewSolidPattern(color.NRGBA{R: base.R, G: base.G, B: base.B, A: 204}))
		c.dc.StrokePreserve()
	}
	c.dc.ClearPath()

	f := Layout(p)
	if p.Blinking {
		for _, eye := range []r2.Vec{f.LeftEye, f.RightEye} {
			c.strokeLine(
				r2.Vec{X: eye.X - f.EyeRadius, Y: eye.Y},
				r2.Vec{X: eye.X + f.EyeRadius, Y: eye.Y},
				3*p.Scale, blinkColor,
			)
		}
	} else {
		eye, pupil := gg.NewSolidPattern(eyeFill), gg.NewSolidPattern(pupilFill)
		c.fillCircle(f.LeftEye, f.EyeRadius, eye)
		c.fillCircle(f.RightEye, f.EyeRadius, eye)
		c.fillCircle(r2.Add(f.LeftEye, f.Pupil), f.PupilRadius, pupil)
		c.fillCircle(r2.Add(f.RightEye, f.Pupil), f.PupilRadius, pupil)
	}

	// Canvas angles run clockwise with y down: 0..pi is the lower half
	a0, a1 := math.Pi, 2*math.Pi
	if f.Smile {
		a0, a1 = 0, math.Pi
	}
	c.strokeArc(f.Mouth, f.MouthRadius, a0, a1, f.MouthWidth, mouthColor)
}
