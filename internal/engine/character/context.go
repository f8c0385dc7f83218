package character

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/charlook/pkg/node"
)

// Context owns the assets shared by every Look: the pose table and the body,
// hair, face and equipment caches.
//
// Caches are insert-only. An entry is fully built before it becomes visible
// and is never replaced, so the pointers handed out stay valid until Close.
type Context struct {
	character node.Node
	strings   node.Node
	sound     node.Node
	table     *PoseTable
	log       *zap.Logger

	mu      sync.RWMutex
	bodies  map[int32]*Body
	hairs   map[int32]*Hair
	faces   map[int32]*Face
	clothes map[int32]*Clothing
	weapons map[int32]*WeaponData
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) ContextOption {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// NewContext builds the pose table from root, which must hold the
// Character, String and Sound archives.
func NewContext(root node.Node, opts ...ContextOption) *Context {
	c := &Context{
		character: root.Get("Character"),
		strings:   root.Get("String"),
		sound:     root.Get("Sound"),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.table = NewPoseTable(c.character, c.log)
	c.reset()
	return c
}

func (c *Context) reset() {
	c.bodies = make(map[int32]*Body)
	c.hairs = make(map[int32]*Hair)
	c.faces = make(map[int32]*Face)
	c.clothes = make(map[int32]*Clothing)
	c.weapons = make(map[int32]*WeaponData)
}

// Close drops every cached provider. Looks built from the context must not
// be used afterwards.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Table returns the pose table.
func (c *Context) Table() *PoseTable {
	return c.table
}

// Logger returns the diagnostic logger.
func (c *Context) Logger() *zap.Logger {
	return c.log
}

// cached returns m[id], building it under the write lock on first use.
func cached[T any](c *Context, m func() map[int32]*T, id int32, build func() *T) *T {
	c.mu.RLock()
	v, ok := m()[id]
	c.mu.RUnlock()
	if ok {
		return v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := m()[id]; ok {
		return v
	}
	v = build()
	m()[id] = v
	return v
}

// Body returns the body of a skin id.
func (c *Context) Body(skin int32) *Body {
	return cached(c, func() map[int32]*Body { return c.bodies }, skin, func() *Body {
		c.log.Debug("loading body", zap.Int32("skin", skin))
		return newBody(skin, c.character, c.table, c.log)
	})
}

// Hair returns a hair style.
func (c *Context) Hair(id int32) *Hair {
	return cached(c, func() map[int32]*Hair { return c.hairs }, id, func() *Hair {
		c.log.Debug("loading hair", zap.Int32("id", id))
		return newHair(id, c.character, c.strings, c.table, c.log)
	})
}

// Face returns a face.
func (c *Context) Face(id int32) *Face {
	return cached(c, func() map[int32]*Face { return c.faces }, id, func() *Face {
		c.log.Debug("loading face", zap.Int32("id", id))
		return newFace(id, c.character, c.strings)
	})
}

// Weapon returns the weapon data of an item id.
func (c *Context) Weapon(id int32) *WeaponData {
	return cached(c, func() map[int32]*WeaponData { return c.weapons }, id, func() *WeaponData {
		w := NewWeaponData(id, c.character, c.strings, c.sound)
		return &w
	})
}

// Equip returns the equip data of an item id.
func (c *Context) Equip(id int32) EquipData {
	return NewEquipData(id, c.character, c.strings)
}

// Clothing returns the equipment sprites of an item id.
func (c *Context) Clothing(id int32) *Clothing {
	c.mu.RLock()
	cl, ok := c.clothes[id]
	c.mu.RUnlock()
	if ok {
		return cl
	}

	// Weapon data is resolved first; it takes the lock itself.
	data := NewEquipData(id, c.character, c.strings)
	var weapon *WeaponData
	if data.Slot == SlotWeapon {
		weapon = c.Weapon(id)
	}
	return cached(c, func() map[int32]*Clothing { return c.clothes }, id, func() *Clothing {
		return newClothing(id, data, weapon, c.character, c.table, c.log)
	})
}

// CacheStats counts cached providers.
type CacheStats struct {
	Bodies, Hairs, Faces, Clothes, Weapons int
}

// Stats returns the number of cached providers of each kind.
func (c *Context) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{
		Bodies:  len(c.bodies),
		Hairs:   len(c.hairs),
		Faces:   len(c.faces),
		Clothes: len(c.clothes),
		Weapons: len(c.weapons),
	}
}
