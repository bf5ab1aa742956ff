// Package camera provides pan and zoom over the wrapping flow viewport.
package camera

import "math"

// Camera maps screen pixels to frame pixels. The frame is toroidal, matching
// the particle wrap, so panning past an edge continues on the other side.
type Camera struct {
	// Centre of the view in frame coordinates
	X, Y float32

	// Zoom level (1.0 = one frame pixel per screen pixel)
	Zoom float32

	// Frame dimensions; the screen shows the frame at the same size
	FrameW, FrameH float32

	MinZoom, MaxZoom float32
}

// New creates a camera showing the whole w x h frame.
func New(w, h float32) *Camera {
	return &Camera{
		X:       w / 2,
		Y:       h / 2,
		Zoom:    1.0,
		FrameW:  w,
		FrameH:  h,
		MinZoom: 1.0,
		MaxZoom: 8.0,
	}
}

// FrameToScreen converts frame coordinates to screen coordinates using the
// shortest wrapped offset from the view centre.
func (c *Camera) FrameToScreen(fx, fy float32) (sx, sy float32) {
	dx := toroidalDelta(fx, c.X, c.FrameW)
	dy := toroidalDelta(fy, c.Y, c.FrameH)
	return c.FrameW/2 + dx*c.Zoom, c.FrameH/2 + dy*c.Zoom
}

// ScreenToFrame converts screen coordinates to wrapped frame coordinates.
func (c *Camera) ScreenToFrame(sx, sy float32) (fx, fy float32) {
	dx := (sx - c.FrameW/2) / c.Zoom
	dy := (sy - c.FrameH/2) / c.Zoom
	return mod(c.X+dx, c.FrameW), mod(c.Y+dy, c.FrameH)
}

// SourceRect returns the frame region shown on screen. The region may
// extend past the frame edges; callers sample it with repeat wrapping.
func (c *Camera) SourceRect() (x, y, w, h float32) {
	w = c.FrameW / c.Zoom
	h = c.FrameH / c.Zoom
	return c.X - w/2, c.Y - h/2, w, h
}

// Resize adopts a new frame size. The view centre keeps its relative position.
func (c *Camera) Resize(w, h float32) {
	if w == c.FrameW && h == c.FrameH {
		return
	}
	if c.FrameW > 0 && c.FrameH > 0 {
		c.X = c.X / c.FrameW * w
		c.Y = c.Y / c.FrameH * h
	} else {
		c.X, c.Y = w/2, h/2
	}
	c.FrameW, c.FrameH = w, h
}

// Pan moves the view by a screen-pixel delta.
func (c *Camera) Pan(dx, dy float32) {
	c.X = mod(c.X+dx/c.Zoom, c.FrameW)
	c.Y = mod(c.Y+dy/c.Zoom, c.FrameH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomAt multiplies the zoom by factor keeping the frame point under the
// screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	fx, fy := c.ScreenToFrame(sx, sy)
	c.SetZoom(c.Zoom * factor)
	nx, ny := c.ScreenToFrame(sx, sy)
	c.X = mod(c.X+toroidalDelta(fx, nx, c.FrameW), c.FrameW)
	c.Y = mod(c.Y+toroidalDelta(fy, ny, c.FrameH), c.FrameH)
}

// Zoomed reports whether the view differs from the plain frame.
func (c *Camera) Zoomed() bool {
	return c.Zoom != 1.0 || c.X != c.FrameW/2 || c.Y != c.FrameH/2
}

// Reset shows the whole frame again.
func (c *Camera) Reset() {
	c.X = c.FrameW / 2
	c.Y = c.FrameH / 2
	c.Zoom = 1.0
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// in a toroidal space of the given size.
func toroidalDelta(to, from, size float32) float32 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	if m <= 0 {
		return 0
	}
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

func clamp(x, lo, hi float32) float32 {
	return max(lo, min(hi, x))
}
