// Package audio plays sound effects from asset archives.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Loader reads the raw bytes of a sound path.
type Loader func(path string) ([]byte, error)

// Manager decodes, caches and mixes sound effects.
type Manager struct {
	mu sync.RWMutex

	log  *zap.Logger
	load Loader

	// State
	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	// Mixer for concurrent sound effects
	mixer   *beep.Mixer
	buffers map[string]*beep.Buffer
}

// New creates a sound manager reading sounds through load.
func New(load Loader, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:          log,
		load:         load,
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		mixer:        &beep.Mixer{},
		buffers:      make(map[string]*beep.Buffer),
	}
}

// Init initializes the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close stops playback and drops decoded sounds.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
	m.buffers = make(map[string]*beep.Buffer)
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the sound effect volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences all sounds.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// SFXVolume returns the sound effect volume.
func (m *Manager) SFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// Muted reports whether sounds are silenced.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// volume returns the effective effect volume. Callers hold the lock.
func (m *Manager) volume() float64 {
	if m.muted {
		return 0
	}
	return m.masterVolume * m.sfxVolLevel
}

// volumeToDb converts a 0-1 volume to a base 2 exponent for effects.Volume.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Load decodes the WAV sound at path, caching the samples.
func (m *Manager) Load(path string) (*beep.Buffer, error) {
	m.mu.RLock()
	buf, ok := m.buffers[path]
	m.mu.RUnlock()
	if ok {
		return buf, nil
	}

	data, err := m.load(path)
	if err != nil {
		return nil, fmt.Errorf("load sound %s: %w", path, err)
	}

	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode wav %s: %w", path, err)
	}
	defer streamer.Close()

	buf = beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read wav %s: %w", path, err)
	}

	m.mu.Lock()
	m.buffers[path] = buf
	m.mu.Unlock()
	return buf, nil
}

// PlaySFX mixes the sound at path into the output.
func (m *Manager) PlaySFX(path string) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.volume()
	rate := m.sampleRate
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if vol <= 0 {
		return nil
	}

	buf, err := m.Load(path)
	if err != nil {
		return err
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if buf.Format().SampleRate != rate {
		s = beep.Resample(4, buf.Format().SampleRate, rate, s)
	}

	speaker.Lock()
	m.mixer.Add(&effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToDb(vol),
	})
	speaker.Unlock()
	return nil
}

// Play plays the sound at path, logging failures. Nothing happens before
// Init.
func (m *Manager) Play(path string) {
	err := m.PlaySFX(path)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotInitialized):
		m.log.Debug("sound skipped", zap.String("path", path))
	default:
		m.log.Warn("sound failed", zap.String("path", path), zap.Error(err))
	}
}
