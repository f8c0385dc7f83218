package sprite

import (
	"github.com/Faultbox/charlook/pkg/math"
)

// Color is a normalized RGBA tint.
type Color struct {
	R, G, B, A float32
}

// White is the neutral tint.
var White = Color{1, 1, 1, 1}

// Mul multiplies two tints component-wise.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Rect is an axis-aligned screen rectangle. Left may exceed Right when the
// transform mirrors horizontally.
type Rect struct {
	Left, Right, Top, Bottom int16
}

// Transform positions a sprite: translation, mirroring/scaling about Center,
// optional stretch to a fixed size, rotation in degrees and tint.
type Transform struct {
	Pos     math.Point
	Center  math.Point
	Stretch math.Point
	XScale  float32
	YScale  float32
	Color   Color
	Angle   float32
}

// At returns an identity transform translated to p.
func At(p math.Point) Transform {
	return Transform{Pos: p, Center: p, XScale: 1, YScale: 1, Color: White}
}

// Flipped returns a transform at p, mirrored horizontally about p when flip is set.
func Flipped(p math.Point, flip bool) Transform {
	t := At(p)
	if flip {
		t.XScale = -1
	}
	return t
}

// Shifted returns a transform that only translates by p. Its center stays at
// the origin, so composing it never moves the mirror axis.
func Shifted(p math.Point) Transform {
	t := At(p)
	t.Center = math.Point{}
	return t
}

// Scaled returns a transform at p scaled about p with the given opacity.
func Scaled(p math.Point, xs, ys, opacity float32) Transform {
	t := At(p)
	t.XScale = xs
	t.YScale = ys
	t.Color.A = opacity
	return t
}

// Tinted returns a transform at p with tint c.
func Tinted(p math.Point, c Color) Transform {
	t := At(p)
	t.Color = c
	return t
}

// Compose combines t with o: translations add, scales and tints multiply,
// angles add.
func (t Transform) Compose(o Transform) Transform {
	return Transform{
		Pos:     t.Pos.Add(o.Pos),
		Center:  t.Center.Add(o.Center),
		Stretch: t.Stretch.Add(o.Stretch),
		XScale:  t.XScale * o.XScale,
		YScale:  t.YScale * o.YScale,
		Color:   t.Color.Mul(o.Color),
		Angle:   t.Angle + o.Angle,
	}
}

// Opacity returns the alpha component of the tint.
func (t Transform) Opacity() float32 {
	return t.Color.A
}

// Rect returns the destination rectangle of a sprite with the given origin
// and dimensions.
func (t Transform) Rect(origin, dims math.Point) Rect {
	w := t.Stretch.X
	if w == 0 {
		w = dims.X
	}
	h := t.Stretch.Y
	if h == 0 {
		h = dims.Y
	}

	rlt := t.Pos.Sub(t.Center).Sub(origin)
	rl := rlt.X
	rr := rlt.X + w
	rt := rlt.Y
	rb := rlt.Y + h
	cx := t.Center.X
	cy := t.Center.Y

	return Rect{
		Left:   cx + int16(t.XScale*float32(rl)),
		Right:  cx + int16(t.XScale*float32(rr)),
		Top:    cy + int16(t.YScale*float32(rt)),
		Bottom: cy + int16(t.YScale*float32(rb)),
	}
}
