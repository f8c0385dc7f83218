// Package sprite provides sprite handles, draw transforms and the renderer
// primitives the look compositor draws through.
package sprite

import (
	"image"

	"github.com/Faultbox/charlook/pkg/math"
	"github.com/Faultbox/charlook/pkg/node"
)

// Sprite is a handle to an image plus the point inside it that lands on the
// draw position.
type Sprite struct {
	Path   string
	Origin math.Point
	Size   math.Point
}

// FromNode builds a sprite from a bitmap node. Non-bitmap nodes yield an
// empty sprite.
func FromNode(n node.Node) Sprite {
	bm := n.Bitmap()
	if bm.Path == "" {
		return Sprite{}
	}
	return Sprite{
		Path:   bm.Path,
		Origin: n.Get("origin").Vector(),
		Size:   math.Pt(int16(bm.Width), int16(bm.Height)),
	}
}

// Valid reports whether the sprite references an image.
func (s Sprite) Valid() bool {
	return s.Path != ""
}

// Shift moves the sprite by p relative to its draw position.
func (s Sprite) Shift(p math.Point) Sprite {
	s.Origin = s.Origin.Sub(p)
	return s
}

// Draw hands the sprite to r. Empty sprites are skipped.
func (s Sprite) Draw(r Renderer, t Transform) {
	if !s.Valid() || r == nil {
		return
	}
	r.Draw(s, t)
}

// Renderer rasterizes a sprite with a transform.
type Renderer interface {
	Draw(s Sprite, t Transform)
}

// ImageSource resolves sprite paths to decoded images.
type ImageSource interface {
	Image(path string) (image.Image, error)
}
