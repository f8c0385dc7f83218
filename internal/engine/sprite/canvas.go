package sprite

import (
	"image"
	"image/color"
	gomath "math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Canvas is a software Renderer that composites sprites into one RGBA image.
// Sprite space (0,0) maps to Origin inside the image.
type Canvas struct {
	img    *image.RGBA
	origin image.Point
	images ImageSource

	// Misses counts sprites skipped because their image could not be loaded.
	Misses int
}

// NewCanvas creates a canvas covering bounds (in sprite space).
func NewCanvas(bounds image.Rectangle, images ImageSource) *Canvas {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	return &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		origin: image.Pt(-bounds.Min.X, -bounds.Min.Y),
		images: images,
	}
}

// Image returns the composited image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear resets every pixel to transparent.
func (c *Canvas) Clear() {
	for i := range c.img.Pix {
		c.img.Pix[i] = 0
	}
}

// Draw implements Renderer.
func (c *Canvas) Draw(s Sprite, t Transform) {
	if c.images == nil {
		c.Misses++
		return
	}
	src, err := c.images.Image(s.Path)
	if err != nil || src == nil {
		c.Misses++
		return
	}

	sb := src.Bounds()
	if s.Size.IsZero() {
		s.Size.X = int16(sb.Dx())
		s.Size.Y = int16(sb.Dy())
	}
	if s.Size.X == 0 || s.Size.Y == 0 {
		return
	}

	opacity := t.Opacity()
	if opacity <= 0 {
		return
	}

	xdraw.NearestNeighbor.Transform(c.img, c.affine(s, t, sb), src, sb, xdraw.Over, c.options(opacity))
}

// affine maps source pixels onto the destination rectangle of t, then
// rotates about t.Center.
func (c *Canvas) affine(s Sprite, t Transform, sb image.Rectangle) f64.Aff3 {
	r := t.Rect(s.Origin, s.Size)

	sx := float64(int(r.Right)-int(r.Left)) / float64(sb.Dx())
	sy := float64(int(r.Bottom)-int(r.Top)) / float64(sb.Dy())
	left := float64(int(r.Left) + c.origin.X)
	top := float64(int(r.Top) + c.origin.Y)
	// Source rectangles need not start at (0,0).
	left -= sx * float64(sb.Min.X)
	top -= sy * float64(sb.Min.Y)

	if t.Angle == 0 {
		return f64.Aff3{sx, 0, left, 0, sy, top}
	}

	rad := float64(t.Angle) * gomath.Pi / 180
	sin, cos := gomath.Sincos(rad)
	cx := float64(int(t.Center.X) + c.origin.X)
	cy := float64(int(t.Center.Y) + c.origin.Y)
	return f64.Aff3{
		cos * sx, -sin * sy, cos*(left-cx) - sin*(top-cy) + cx,
		sin * sx, cos * sy, sin*(left-cx) + cos*(top-cy) + cy,
	}
}

func (c *Canvas) options(opacity float32) *xdraw.Options {
	if opacity >= 1 {
		return nil
	}
	return &xdraw.Options{
		SrcMask: image.NewUniform(color.Alpha16{A: uint16(opacity * 0xffff)}),
	}
}
