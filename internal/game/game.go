// Package game wires assets, the character look and its outputs into the
// viewer application.
package game

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/charlook/internal/assets"
	"github.com/Faultbox/charlook/internal/config"
	"github.com/Faultbox/charlook/internal/engine/audio"
	"github.com/Faultbox/charlook/internal/engine/character"
	"github.com/Faultbox/charlook/internal/engine/sprite"
	"github.com/Faultbox/charlook/internal/engine/window"
	"github.com/Faultbox/charlook/internal/game/entity"
	"github.com/Faultbox/charlook/pkg/math"
)

// ErrUnknownPose is returned for pose names the archives do not define.
var ErrUnknownPose = errors.New("unknown pose")

// Viewer shows one configured character.
type Viewer struct {
	cfg    *config.Config
	log    *zap.Logger
	assets *assets.Manager
	ctx    *character.Context
	sounds *audio.Manager
	char   *entity.Character
}

// New loads the configured archives and builds the character.
func New(cfg *config.Config, log *zap.Logger) (*Viewer, error) {
	m := assets.NewManager(cfg.Data.ImageRoot, cfg.Data.SoundRoot)
	for _, path := range cfg.Data.Archives {
		if err := m.AddArchive(path); err != nil {
			m.Close()
			return nil, fmt.Errorf("loading archives: %w", err)
		}
		log.Debug("archive mounted", zap.String("path", path))
	}
	return NewWithAssets(cfg, m, log), nil
}

// NewWithAssets builds the character from already mounted archives.
func NewWithAssets(cfg *config.Config, m *assets.Manager, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}

	v := &Viewer{
		cfg:    cfg,
		log:    log,
		assets: m,
		ctx:    character.NewContext(m.Root(), character.WithLogger(log.Named("character"))),
		sounds: audio.New(m.Load, log.Named("audio")),
	}
	v.sounds.SetMasterVolume(cfg.Audio.MasterVolume)
	v.sounds.SetSFXVolume(cfg.Audio.SFXVolume)
	v.sounds.SetMuted(cfg.Audio.Muted)

	seed := cfg.Look.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	look := character.NewLook(v.ctx, character.Entry{
		Skin:   cfg.Look.Skin,
		Hair:   cfg.Look.Hair,
		Face:   cfg.Look.Face,
		Equips: cfg.Look.Equips,
	}, character.WithRand(rand.New(rand.NewSource(seed))),
		character.WithTick(uint16(cfg.Look.TickMs)),
		character.WithSounds(v.sounds))

	v.char = entity.NewCharacter(entity.NewEntity(0, "viewer", math.Point{}), look)
	v.log.Info("character ready",
		zap.Int32("skin", cfg.Look.Skin),
		zap.Int32("hair", cfg.Look.Hair),
		zap.Int32("face", cfg.Look.Face),
		zap.Int32s("equips", look.Equips().IDs()),
		zap.Int64("seed", seed),
		zap.Uint16("tick_ms", look.Tick()))
	return v
}

// Character returns the shown character.
func (v *Viewer) Character() *entity.Character {
	return v.char
}

// SetPose switches to a pose by archive name.
func (v *Viewer) SetPose(name string) error {
	p := character.PoseByName(name)
	if p == character.PoseNone {
		return fmt.Errorf("%w: %s", ErrUnknownPose, name)
	}
	v.char.Look().SetPose(p)
	return nil
}

// Play starts an action. "attack" and "attack2" swing the weapon normally
// and degenerately; other names are meta actions or poses.
func (v *Viewer) Play(action string) {
	switch action {
	case "":
	case "attack":
		v.char.Attack(false)
	case "attack2":
		v.char.Attack(true)
	default:
		v.char.AttackAction(action)
	}
	v.log.Debug("action started",
		zap.String("action", action),
		zap.Stringer("pose", v.char.Look().Pose()))
}

// Step advances ticks updates and returns how many animation cycles ended.
func (v *Viewer) Step(ticks int) int {
	ends := 0
	for i := 0; i < ticks; i++ {
		if v.char.Update() {
			ends++
		}
	}
	return ends
}

// Record captures the draw calls of the current frame.
func (v *Viewer) Record() *sprite.Recorder {
	rec := &sprite.Recorder{}
	v.char.Draw(rec, v.char.Position, 1)
	return rec
}

// Dump writes the timeline state and the draw calls of the current frame.
func (v *Viewer) Dump(w io.Writer) error {
	look := v.char.Look()
	if _, err := fmt.Fprintf(w, "pose=%s frame=%d expression=%s expframe=%d action=%q\n",
		look.Pose(), look.Frame(), look.Expression(), look.ExpressionFrame(), look.Action()); err != nil {
		return err
	}
	for _, c := range v.Record().Calls {
		r := c.Rect()
		if _, err := fmt.Fprintf(w, "%s\t%d,%d\t%d,%d\n", c.Sprite.Path, r.Left, r.Top, r.Right, r.Bottom); err != nil {
			return err
		}
	}
	return nil
}

// SavePNG composites the current frame into a PNG file.
func (v *Viewer) SavePNG(path string) error {
	rec := v.Record()
	canvas := sprite.NewCanvas(rec.Bounds(), v.assets)
	rec.Replay(canvas)
	if canvas.Misses > 0 {
		v.log.Warn("sprites missing from frame", zap.Int("count", canvas.Misses))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, canvas.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// RunWindow shows the animated character until the window closes.
func (v *Viewer) RunWindow() error {
	if err := v.sounds.Init(); err != nil {
		v.log.Warn("audio disabled", zap.Error(err))
	}

	return window.Run(window.Config{
		Title:      v.cfg.Window.Title,
		Width:      v.cfg.Window.Width,
		Height:     v.cfg.Window.Height,
		TickMs:     v.cfg.Look.TickMs,
		Fullscreen: v.cfg.Window.Fullscreen,
		VSync:      v.cfg.Window.VSync,
	}, v.char, v.assets, v.log.Named("window"))
}

// Close releases sounds, cached providers and archives.
func (v *Viewer) Close() {
	stats := v.ctx.Stats()
	hits, misses := v.assets.CacheStats()
	v.log.Debug("viewer closing",
		zap.Int("bodies", stats.Bodies),
		zap.Int("hairs", stats.Hairs),
		zap.Int("faces", stats.Faces),
		zap.Int("clothes", stats.Clothes),
		zap.Int("weapons", stats.Weapons),
		zap.Int("file_hits", hits),
		zap.Int("file_misses", misses))

	v.sounds.Close()
	v.ctx.Close()
	v.assets.Close()
}
