// Package entity implements map objects driven by gameplay: characters and
// their movement state.
package entity

import (
	"github.com/Faultbox/charlook/pkg/math"
)

// Entity is a map object: an id, a position and the speeds reported by
// physics.
type Entity struct {
	ID       int32
	Name     string
	Position math.Point

	// Speeds in pixels per tick, as integrated by physics.
	HSpeed float64
	VSpeed float64

	Visible bool
}

// NewEntity creates a visible entity at pos.
func NewEntity(id int32, name string, pos math.Point) Entity {
	return Entity{
		ID:       id,
		Name:     name,
		Position: pos,
		Visible:  true,
	}
}

// SetPosition moves the entity.
func (e *Entity) SetPosition(p math.Point) {
	e.Position = p
}

// SetSpeed sets the horizontal and vertical speeds.
func (e *Entity) SetSpeed(h, v float64) {
	e.HSpeed = h
	e.VSpeed = v
}

// timer is a flag that stays set for a number of milliseconds, counted down
// in fixed ticks.
type timer struct {
	remaining int64
	total     int64
}

func (t *timer) setFor(ms int64) {
	t.remaining = ms
	t.total = ms
}

func (t *timer) update(step int64) {
	if t.remaining <= 0 {
		return
	}
	t.remaining -= step
	if t.remaining < 0 {
		t.remaining = 0
	}
}

func (t *timer) active() bool {
	return t.remaining > 0
}

// alpha returns the elapsed fraction of the timer in [0,1].
func (t *timer) alpha() float64 {
	if t.total <= 0 {
		return 1
	}
	return 1 - float64(t.remaining)/float64(t.total)
}
