package character

import (
	"fmt"
	"strconv"

	"github.com/Faultbox/charlook/pkg/node"
)

// EquipSlot is the logical slot an item is worn in.
type EquipSlot uint8

// Equip slots.
const (
	SlotNone EquipSlot = iota
	SlotCap
	SlotFaceAcc
	SlotEyeAcc
	SlotEarrings
	SlotTop
	SlotPants
	SlotShoes
	SlotGloves
	SlotCape
	SlotShield
	SlotWeapon
	SlotRing
	SlotPendant
	SlotBelt
	SlotMedal

	NumSlots
)

var slotNames = [NumSlots]string{
	"none", "cap", "faceacc", "eyeacc", "earrings", "top", "pants", "shoes",
	"gloves", "cape", "shield", "weapon", "ring", "pendant", "belt", "medal",
}

func (s EquipSlot) String() string {
	if s >= NumSlots {
		return "slot(" + strconv.Itoa(int(s)) + ")"
	}
	return slotNames[s]
}

// Item id categories are id/10000 - 100. Non-weapon equips occupy the first
// block, weapons a block further on.
const (
	nonWeaponTypes = 15
	weaponOffset   = nonWeaponTypes + 15
	weaponTypes    = 20
)

func categoryIndex(id int32) int {
	return int(id/10000) - 100
}

var equipTypeNames = [nonWeaponTypes]string{
	"HAT", "FACE ACCESSORY", "EYE ACCESSORY", "EARRINGS", "TOP", "OVERALL",
	"BOTTOM", "SHOES", "GLOVES", "SHIELD", "CAPE", "RING", "PENDANT", "BELT",
	"MEDAL",
}

var equipSlots = [nonWeaponTypes]EquipSlot{
	SlotCap, SlotFaceAcc, SlotEyeAcc, SlotEarrings, SlotTop, SlotTop,
	SlotPants, SlotShoes, SlotGloves, SlotShield, SlotCape, SlotRing,
	SlotPendant, SlotBelt, SlotMedal,
}

var weaponTypeNames = [weaponTypes]string{
	"ONE-HANDED SWORD", "ONE-HANDED AXE", "ONE-HANDED MACE", "DAGGER",
	"", "", "", "WAND", "STAFF", "",
	"TWO-HANDED SWORD", "TWO-HANDED AXE", "TWO-HANDED MACE", "SPEAR",
	"POLEARM", "BOW", "CROSSBOW", "CLAW", "KNUCKLE", "GUN",
}

var equipCategories = [nonWeaponTypes]string{
	"Cap", "Accessory", "Accessory", "Accessory", "Coat", "Longcoat", "Pants",
	"Shoes", "Glove", "Shield", "Cape", "Ring", "Accessory", "Accessory",
	"Accessory",
}

// EquipCategory returns the Character archive directory of an equip id, or
// "" if the id is not an equip.
func EquipCategory(id int32) string {
	idx := categoryIndex(id)
	switch {
	case idx >= 0 && idx < nonWeaponTypes:
		return equipCategories[idx]
	case idx >= weaponOffset && idx <= 70:
		return "Weapon"
	default:
		return ""
	}
}

// equipImage returns the archive image name of an equip id ("01302000.img").
func equipImage(id int32) string {
	return fmt.Sprintf("0%d.img", id)
}

// EquipData describes an equip item: where it is worn and its requirements.
type EquipData struct {
	ID       int32
	Category string
	Type     string
	Slot     EquipSlot
	Name     string
	Cash     bool
	ReqLevel int16
	Slots    int16
	Valid    bool
}

// NewEquipData reads the info of an equip id.
func NewEquipData(id int32, character, strings node.Node) EquipData {
	d := EquipData{ID: id, Category: EquipCategory(id)}

	idx := categoryIndex(id)
	switch {
	case idx >= 0 && idx < nonWeaponTypes:
		d.Type = equipTypeNames[idx]
		d.Slot = equipSlots[idx]
	case idx >= weaponOffset && idx < weaponOffset+weaponTypes:
		d.Type = weaponTypeNames[idx-weaponOffset]
		d.Slot = SlotWeapon
	default:
		d.Type = "CASH"
		d.Slot = SlotNone
	}

	if d.Category == "" {
		return d
	}
	info := node.Path(character, d.Category, equipImage(id), "info")
	d.Valid = info.Exists()
	d.Cash = info.Get("cash").Int() != 0
	d.ReqLevel = node.Int16(info.Get("reqLevel"))
	d.Slots = node.Int16(info.Get("tuc"))
	d.Name = node.Path(strings, "Eqp.img", "Eqp", d.Category, strconv.Itoa(int(id)), "name").String()
	return d
}

// IsWeapon reports whether the item is worn in the weapon slot.
func (d EquipData) IsWeapon() bool {
	return d.Slot == SlotWeapon
}

// WeaponType is the weapon family, equal to id/10000.
type WeaponType int32

// Weapon types.
const (
	WeaponNone     WeaponType = 0
	WeaponSword1H  WeaponType = 130
	WeaponAxe1H    WeaponType = 131
	WeaponMace1H   WeaponType = 132
	WeaponDagger   WeaponType = 133
	WeaponWand     WeaponType = 137
	WeaponStaff    WeaponType = 138
	WeaponSword2H  WeaponType = 140
	WeaponAxe2H    WeaponType = 141
	WeaponMace2H   WeaponType = 142
	WeaponSpear    WeaponType = 143
	WeaponPolearm  WeaponType = 144
	WeaponBow      WeaponType = 145
	WeaponCrossbow WeaponType = 146
	WeaponClaw     WeaponType = 147
	WeaponKnuckle  WeaponType = 148
	WeaponGun      WeaponType = 149
	WeaponCash     WeaponType = 170
)

// WeaponTypeOf returns the weapon type of an item id, WeaponNone if the id
// prefix is not a weapon family.
func WeaponTypeOf(id int32) WeaponType {
	t := WeaponType(id / 10000)
	switch {
	case t >= WeaponSword1H && t <= WeaponDagger,
		t == WeaponWand, t == WeaponStaff,
		t >= WeaponSword2H && t <= WeaponGun,
		t == WeaponCash:
		return t
	default:
		return WeaponNone
	}
}

// TwoHanded reports whether the weapon family is held with both hands.
func (t WeaponType) TwoHanded() bool {
	return t == WeaponStaff || (t >= WeaponSword2H && t <= WeaponPolearm) || t == WeaponCrossbow
}

// WeaponData describes a weapon: family, speed, attack table and sounds.
type WeaponData struct {
	EquipData

	Type       WeaponType
	TwoHanded  bool
	Speed      uint8
	Attack     uint8
	Afterimage string

	sounds [2]string
}

// NewWeaponData reads the weapon info of an equip id.
func NewWeaponData(id int32, character, strings, sound node.Node) WeaponData {
	w := WeaponData{
		EquipData: NewEquipData(id, character, strings),
		Type:      WeaponTypeOf(id),
	}
	w.TwoHanded = WeaponType(id / 10000).TwoHanded()

	info := node.Path(character, "Weapon", equipImage(id), "info")
	w.Speed = uint8(info.Get("attackSpeed").Int())
	w.Attack = uint8(info.Get("attack").Int())
	w.Afterimage = info.Get("afterImage").String()

	sfx := sound.Get("Weapon.img").Get(info.Get("sfx").String())
	w.sounds[0] = sfx.Get("Attack").Audio()
	w.sounds[1] = w.sounds[0]
	if alt := sfx.Get("Attack2"); alt.Kind() == node.KindAudio {
		w.sounds[1] = alt.Audio()
	}
	return w
}

// UseSound returns the audio path played when the weapon is swung.
func (w WeaponData) UseSound(degenerate bool) string {
	if degenerate {
		return w.sounds[1]
	}
	return w.sounds[0]
}

// AttackDelay returns the weapon's base attack delay.
func (w WeaponData) AttackDelay() uint8 {
	if w.Type == WeaponNone || w.Speed == 0 {
		return 0
	}
	return 50 - 25/w.Speed
}

// SpeedString describes the attack speed.
func (w WeaponData) SpeedString() string {
	switch {
	case w.Speed >= 1 && w.Speed <= 4:
		return fmt.Sprintf("FAST (%d)", w.Speed)
	case w.Speed == 5 || w.Speed == 6:
		return fmt.Sprintf("NORMAL (%d)", w.Speed)
	case w.Speed >= 7 && w.Speed <= 9:
		return fmt.Sprintf("SLOW (%d)", w.Speed)
	default:
		return ""
	}
}
