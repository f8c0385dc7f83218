package sprite

import (
	"image"
)

// DrawCall is one captured Draw invocation.
type DrawCall struct {
	Sprite    Sprite
	Transform Transform
}

// Rect returns the destination rectangle of the call.
func (c DrawCall) Rect() Rect {
	return c.Transform.Rect(c.Sprite.Origin, c.Sprite.Size)
}

// Recorder is a Renderer that keeps every draw call in order.
type Recorder struct {
	Calls []DrawCall
}

// Draw implements Renderer.
func (r *Recorder) Draw(s Sprite, t Transform) {
	r.Calls = append(r.Calls, DrawCall{Sprite: s, Transform: t})
}

// Reset drops all captured calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Paths returns the sprite paths in draw order.
func (r *Recorder) Paths() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Sprite.Path
	}
	return out
}

// Replay forwards the captured calls to another renderer.
func (r *Recorder) Replay(to Renderer) {
	for _, c := range r.Calls {
		to.Draw(c.Sprite, c.Transform)
	}
}

// Bounds returns the union of all destination rectangles.
func (r *Recorder) Bounds() image.Rectangle {
	var b image.Rectangle
	for _, c := range r.Calls {
		rc := c.Rect()
		x0, x1 := int(rc.Left), int(rc.Right)
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		y0, y1 := int(rc.Top), int(rc.Bottom)
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		b = b.Union(image.Rect(x0, y0, x1, y1))
	}
	return b
}
