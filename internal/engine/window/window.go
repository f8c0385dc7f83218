// Package window shows an animated scene in an ebiten window.
package window

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	gomath "math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/charlook/internal/engine/sprite"
	"github.com/Faultbox/charlook/pkg/math"
)

// Config holds window configuration.
type Config struct {
	Title  string
	Width  int
	Height int
	// TickMs is the fixed simulation step in milliseconds.
	TickMs     int
	Fullscreen bool
	VSync      bool
	Background color.RGBA
}

// Scene is a fixed-step animated object.
type Scene interface {
	Update() bool
	Draw(r sprite.Renderer, pos math.Point, alpha float32)
}

// Screen renders sprites onto an ebiten image. Sprite space (0,0) maps to
// Origin on the target.
type Screen struct {
	target *ebiten.Image
	origin image.Point
	images sprite.ImageSource
	cache  map[string]*ebiten.Image

	// Misses counts sprites skipped because their image could not be loaded.
	Misses int
}

// NewScreen creates a screen that decodes sprites through images.
func NewScreen(images sprite.ImageSource) *Screen {
	return &Screen{images: images, cache: make(map[string]*ebiten.Image)}
}

// Begin directs subsequent draws to target.
func (s *Screen) Begin(target *ebiten.Image, origin image.Point) {
	s.target = target
	s.origin = origin
}

func (s *Screen) image(path string) *ebiten.Image {
	if img, ok := s.cache[path]; ok {
		return img
	}
	var img *ebiten.Image
	if s.images != nil {
		if src, err := s.images.Image(path); err == nil && src != nil {
			img = ebiten.NewImageFromImage(src)
		}
	}
	s.cache[path] = img
	return img
}

// Draw implements sprite.Renderer.
func (s *Screen) Draw(sp sprite.Sprite, t sprite.Transform) {
	if s.target == nil || t.Opacity() <= 0 {
		return
	}
	img := s.image(sp.Path)
	if img == nil {
		s.Misses++
		return
	}

	b := img.Bounds()
	if sp.Size.IsZero() {
		sp.Size = math.Point{X: int16(b.Dx()), Y: int16(b.Dy())}
	}
	if sp.Size.X == 0 || sp.Size.Y == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM(sp, t, b, s.origin)
	op.ColorScale.Scale(t.Color.R, t.Color.G, t.Color.B, 1)
	op.ColorScale.ScaleAlpha(t.Opacity())
	s.target.DrawImage(img, op)
}

// geoM maps an image with bounds b onto the destination rectangle of t and
// rotates it about t.Center.
func geoM(sp sprite.Sprite, t sprite.Transform, b image.Rectangle, origin image.Point) ebiten.GeoM {
	r := t.Rect(sp.Origin, sp.Size)

	var g ebiten.GeoM
	g.Scale(
		float64(int(r.Right)-int(r.Left))/float64(b.Dx()),
		float64(int(r.Bottom)-int(r.Top))/float64(b.Dy()),
	)
	g.Translate(float64(int(r.Left)+origin.X), float64(int(r.Top)+origin.Y))

	if t.Angle != 0 {
		cx := float64(int(t.Center.X) + origin.X)
		cy := float64(int(t.Center.Y) + origin.Y)
		g.Translate(-cx, -cy)
		g.Rotate(float64(t.Angle) * gomath.Pi / 180)
		g.Translate(cx, cy)
	}
	return g
}

// Game drives a scene at a fixed tick and draws it blended between ticks.
type Game struct {
	cfg    Config
	scene  Scene
	screen *Screen
	log    *zap.Logger

	tick     time.Duration
	lastTick time.Time
	now      func() time.Time
}

// NewGame creates a game showing scene.
func NewGame(cfg Config, scene Scene, images sprite.ImageSource, log *zap.Logger) *Game {
	if cfg.TickMs <= 0 {
		cfg.TickMs = 8
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		cfg:    cfg,
		scene:  scene,
		screen: NewScreen(images),
		log:    log,
		tick:   time.Duration(cfg.TickMs) * time.Millisecond,
		now:    time.Now,
	}
}

// TPS returns the ticks per second of the configured step.
func (g *Game) TPS() int {
	return 1000 / g.cfg.TickMs
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.scene.Update()
	g.lastTick = g.now()
	return nil
}

// alpha returns how far the frame lies between the last tick and the next.
func (g *Game) alpha() float32 {
	if g.lastTick.IsZero() {
		return 1
	}
	a := float32(g.now().Sub(g.lastTick)) / float32(g.tick)
	if a > 1 {
		return 1
	}
	return a
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)
	g.screen.Begin(screen, image.Pt(g.cfg.Width/2, g.cfg.Height*3/4))
	g.scene.Draw(g.screen, math.Point{}, g.alpha())
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens the window and blocks until it is closed.
func Run(cfg Config, scene Scene, images sprite.ImageSource, log *zap.Logger) error {
	g := NewGame(cfg, scene, images, log)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetFullscreen(cfg.Fullscreen)
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetTPS(g.TPS())

	g.log.Info("opening window",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("tps", g.TPS()))

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
