// Package camera maps the fixed-size canvas into the window.
package camera

// Rect is a screen rectangle with the scale applied to the canvas inside it.
type Rect struct {
	X, Y, W, H float32
	Scale      float32
}

// Camera controls where the canvas lands in the window.
// In presentation mode the canvas is letterboxed to fill the window;
// otherwise it is centered and never enlarged.
type Camera struct {
	// Viewport dimensions (window size)
	ViewportW, ViewportH float32

	// World dimensions (canvas size)
	WorldW, WorldH float32

	Presentation bool
}

// New creates a camera in normal mode.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	return &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
	}
}

// Fit scales a src-sized box into dst, keeping its aspect ratio, and
// centers it. The unused strips are the letterbox bars.
func Fit(srcW, srcH, dstW, dstH float32) Rect {
	if srcW <= 0 || srcH <= 0 {
		return Rect{W: dstW, H: dstH, Scale: 1}
	}
	scale := min(dstW/srcW, dstH/srcH)
	w, h := srcW*scale, srcH*scale
	return Rect{
		X:     (dstW - w) / 2,
		Y:     (dstH - h) / 2,
		W:     w,
		H:     h,
		Scale: scale,
	}
}

// View returns where the canvas is drawn on screen.
func (c *Camera) View() Rect {
	r := Fit(c.WorldW, c.WorldH, c.ViewportW, c.ViewportH)
	if c.Presentation || r.Scale <= 1 {
		return r
	}
	return Rect{
		X:     (c.ViewportW - c.WorldW) / 2,
		Y:     (c.ViewportH - c.WorldH) / 2,
		W:     c.WorldW,
		H:     c.WorldH,
		Scale: 1,
	}
}

// Toggle switches presentation mode.
func (c *Camera) Toggle() {
	c.Presentation = !c.Presentation
}

// WorldToScreen converts canvas coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	v := c.View()
	return v.X + wx*v.Scale, v.Y + wy*v.Scale
}

// ScreenToWorld converts screen coordinates to canvas coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	v := c.View()
	return (sx - v.X) / v.Scale, (sy - v.Y) / v.Scale
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}
