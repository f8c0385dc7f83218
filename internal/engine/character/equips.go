package character

import (
	"github.com/Faultbox/charlook/internal/engine/sprite"
)

// CapType is the headwear category. It decides how hair is drawn around the
// cap.
type CapType uint8

// Headwear categories.
const (
	CapNone CapType = iota
	CapHeadband
	CapHairPin
	CapHalfCover
	CapFullCover

	NumCapTypes
)

var capTypeNames = [NumCapTypes]string{"none", "headband", "hairpin", "halfcover", "fullcover"}

func (c CapType) String() string {
	if c >= NumCapTypes {
		return ""
	}
	return capTypeNames[c]
}

// Cap vslot strings.
const (
	vslotHalfCover = "CpH1H5"
	vslotFullCover = "CpH1H5AyAs"
	vslotHeadband  = "CpH5"
)

// Overalls (Longcoat) share the top slot.
const overallCategory = 105

// Equips is the set of items a character wears, one per slot. It resolves the
// flags the draw order depends on.
type Equips struct {
	slots [NumSlots]*Clothing
}

// Add wears c in its slot, replacing the previous item.
func (e *Equips) Add(c *Clothing) {
	if c == nil || c.Slot() >= NumSlots {
		return
	}
	e.slots[c.Slot()] = c
}

// Remove takes off the item in slot.
func (e *Equips) Remove(slot EquipSlot) {
	if slot < NumSlots {
		e.slots[slot] = nil
	}
}

// Get returns the item in slot, or nil.
func (e *Equips) Get(slot EquipSlot) *Clothing {
	if slot >= NumSlots {
		return nil
	}
	return e.slots[slot]
}

// IDs returns the worn item ids in slot order.
func (e *Equips) IDs() []int32 {
	var ids []int32
	for _, c := range e.slots {
		if c != nil {
			ids = append(ids, c.ID())
		}
	}
	return ids
}

// Draw draws the item in slot. Empty slots are skipped.
func (e *Equips) Draw(slot EquipSlot, p Pose, l Layer, f uint8, r sprite.Renderer, t sprite.Transform) {
	e.Get(slot).Draw(p, l, f, r, t)
}

// HasWeapon reports whether a weapon is worn.
func (e *Equips) HasWeapon() bool {
	return e.slots[SlotWeapon] != nil
}

// Weapon returns the weapon id, 0 if none.
func (e *Equips) Weapon() int32 {
	if w := e.slots[SlotWeapon]; w != nil {
		return w.ID()
	}
	return 0
}

// IsTwoHanded reports whether the worn weapon is two-handed.
func (e *Equips) IsTwoHanded() bool {
	w := e.slots[SlotWeapon]
	return w != nil && w.TwoHanded()
}

// HasOverall reports whether the top slot holds a one-piece overall.
func (e *Equips) HasOverall() bool {
	t := e.slots[SlotTop]
	return t != nil && t.ID()/10000 == overallCategory
}

// CapType returns the headwear category of the worn cap.
func (e *Equips) CapType() CapType {
	hat := e.slots[SlotCap]
	if hat == nil {
		return CapNone
	}
	switch hat.VSlot() {
	case vslotHalfCover:
		return CapHalfCover
	case vslotFullCover:
		return CapFullCover
	case vslotHeadband:
		return CapHeadband
	default:
		return CapNone
	}
}

// AdjustPose applies the weapon's stand and walk overrides to p.
func (e *Equips) AdjustPose(p Pose) Pose {
	w := e.slots[SlotWeapon]
	if w == nil {
		return p
	}
	switch p {
	case PoseStand1, PoseStand2:
		return w.Stand()
	case PoseWalk1, PoseWalk2:
		return w.Walk()
	default:
		return p
	}
}
