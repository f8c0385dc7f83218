package character

import (
	"go.uber.org/zap"

	"github.com/Faultbox/charlook/internal/engine/sprite"
	"github.com/Faultbox/charlook/pkg/math"
	"github.com/Faultbox/charlook/pkg/node"
)

// Layer is a z bucket of equipment sprites.
type Layer uint8

// Equipment layers.
const (
	LayerCape Layer = iota
	LayerShoes
	LayerPants
	LayerTop
	LayerMail
	LayerMailArm
	LayerEarrings
	LayerFaceAcc
	LayerEyeAcc
	LayerPendant
	LayerBelt
	LayerMedal
	LayerRing
	LayerCap
	LayerCapBelowBody
	LayerCapOverHair
	LayerGlove
	LayerWrist
	LayerGloveOverHair
	LayerWristOverHair
	LayerGloveOverBody
	LayerWristOverBody
	LayerShield
	LayerBackShield
	LayerShieldBelowBody
	LayerShieldOverHair
	LayerWeapon
	LayerBackWeapon
	LayerWeaponBelowArm
	LayerWeaponBelowBody
	LayerWeaponOverHand
	LayerWeaponOverBody
	LayerWeaponOverGlove

	NumLayers
)

var layerNames = [NumLayers]string{
	"cape", "shoes", "pants", "top", "mail", "mailArm", "earrings", "faceAcc",
	"eyeAcc", "pendant", "belt", "medal", "ring", "cap", "capBelowBody",
	"capOverHair", "glove", "wrist", "gloveOverHair", "wristOverHair",
	"gloveOverBody", "wristOverBody", "shield", "backShield", "shieldBelowBody",
	"shieldOverHair", "weapon", "backWeapon", "weaponBelowArm",
	"weaponBelowBody", "weaponOverHand", "weaponOverBody", "weaponOverGlove",
}

func (l Layer) String() string {
	if l >= NumLayers {
		return ""
	}
	return layerNames[l]
}

var categoryLayers = [nonWeaponTypes]Layer{
	LayerCap, LayerFaceAcc, LayerEyeAcc, LayerEarrings, LayerTop, LayerMail,
	LayerPants, LayerShoes, LayerGlove, LayerShield, LayerCape, LayerRing,
	LayerPendant, LayerBelt, LayerMedal,
}

// sublayers maps a part's z name to the layer it overrides.
var sublayers = map[string]Layer{
	"weaponOverHand":       LayerWeaponOverHand,
	"weaponOverGlove":      LayerWeaponOverGlove,
	"weaponOverBody":       LayerWeaponOverBody,
	"weaponBelowArm":       LayerWeaponBelowArm,
	"weaponBelowBody":      LayerWeaponBelowBody,
	"backWeaponOverShield": LayerBackWeapon,

	"shieldOverHair":  LayerShieldOverHair,
	"shieldBelowBody": LayerShieldBelowBody,
	"backShield":      LayerBackShield,

	"gloveWrist":         LayerWrist,
	"gloveOverHair":      LayerGloveOverHair,
	"gloveOverBody":      LayerGloveOverBody,
	"gloveWristOverHair": LayerWristOverHair,
	"gloveWristOverBody": LayerWristOverBody,

	"capOverHair":  LayerCapOverHair,
	"capBelowBody": LayerCapBelowBody,
}

// Items drawn without a visible sprite of their own.
var transparentItems = map[int32]bool{
	1002186: true,
}

// LayerOf returns the canonical layer of an item id.
func LayerOf(id int32) Layer {
	idx := categoryIndex(id)
	switch {
	case idx >= 0 && idx < nonWeaponTypes:
		return categoryLayers[idx]
	case idx >= weaponOffset && idx < weaponOffset+weaponTypes:
		return LayerWeapon
	default:
		return LayerCape
	}
}

// Clothing holds the sprites of one equip id, keyed by pose, layer and frame.
type Clothing struct {
	id          int32
	slot        EquipSlot
	layer       Layer
	twoHanded   bool
	transparent bool
	vslot       string
	stand       Pose
	walk        Pose
	layers      [NumPoses][NumLayers]frames
}

func newClothing(id int32, data EquipData, weapon *WeaponData, character node.Node, table *PoseTable, log *zap.Logger) *Clothing {
	c := &Clothing{
		id:          id,
		slot:        data.Slot,
		layer:       LayerOf(id),
		transparent: transparentItems[id],
	}
	if c.slot == SlotWeapon && weapon != nil {
		c.twoHanded = weapon.TwoHanded
	}

	src := node.Path(character, data.Category, equipImage(id))
	info := src.Get("info")
	c.vslot = info.Get("vslot").String()

	c.stand = PoseStand1
	c.walk = PoseWalk1
	if c.twoHanded {
		c.stand = PoseStand2
		c.walk = PoseWalk2
	}
	switch info.Get("stand").Int() {
	case 1:
		c.stand = PoseStand1
	case 2:
		c.stand = PoseStand2
	}
	switch info.Get("walk").Int() {
	case 1:
		c.walk = PoseWalk1
	case 2:
		c.walk = PoseWalk2
	}

	parts := 0
	for _, pose := range Poses() {
		poseNode := src.Get(pose.String())
		if !poseNode.Exists() {
			continue
		}

		for i := 0; i < 256; i++ {
			frameNode := poseNode.Index(i)
			if !frameNode.Exists() {
				break
			}
			frame := uint8(i)

			for _, part := range frameNode.Children() {
				if part.Kind() != node.KindBitmap {
					continue
				}

				z := c.layer
				if part.Name() == "mailArm" {
					z = LayerMailArm
				} else if sub, ok := sublayers[part.Get("z").String()]; ok {
					z = sub
				}

				var parent string
				var parentPos math.Point
				for _, m := range part.Get("map").Children() {
					if m.Kind() == node.KindVector {
						parent = m.Name()
						parentPos = m.Vector()
					}
				}

				shift := c.shift(table, pose, frame, parent, parentPos)
				if c.layers[pose][z] == nil {
					c.layers[pose][z] = make(frames)
				}
				c.layers[pose][z][frame] = append(c.layers[pose][z][frame], sprite.FromNode(part).Shift(shift))
				parts++
			}
		}
	}

	log.Debug("clothing loaded",
		zap.Int32("id", id),
		zap.Stringer("slot", c.slot),
		zap.Stringer("layer", c.layer),
		zap.Int("parts", parts))
	return c
}

// shift aligns a part declaring parent point parentPos with the anchor its
// slot follows.
func (c *Clothing) shift(table *PoseTable, p Pose, f uint8, parent string, parentPos math.Point) math.Point {
	switch c.slot {
	case SlotFaceAcc:
		return parentPos.Neg()
	case SlotShoes, SlotGloves, SlotTop, SlotPants, SlotCape:
		return table.BodyPos(p, f).Sub(parentPos)
	case SlotCap, SlotEarrings, SlotEyeAcc:
		return table.FacePos(p, f).Sub(parentPos)
	case SlotShield, SlotWeapon:
		var anchor math.Point
		switch parent {
		case "handMove":
			anchor = table.HandPos(p, f)
		case "hand":
			anchor = table.ArmPos(p, f)
		case "navel":
			anchor = table.BodyPos(p, f)
		}
		return anchor.Sub(parentPos)
	default:
		return math.Point{}
	}
}

// Draw draws every fragment registered for the key. Missing keys are skipped.
func (c *Clothing) Draw(p Pose, l Layer, f uint8, r sprite.Renderer, t sprite.Transform) {
	if c == nil || p >= NumPoses || l >= NumLayers {
		return
	}
	c.layers[p][l].draw(f, r, t)
}

// ContainsLayer reports whether any frame of p has a fragment in l.
func (c *Clothing) ContainsLayer(p Pose, l Layer) bool {
	if c == nil || p >= NumPoses || l >= NumLayers {
		return false
	}
	return len(c.layers[p][l]) > 0
}

// ID returns the item id.
func (c *Clothing) ID() int32 { return c.id }

// Slot returns the slot the item is worn in.
func (c *Clothing) Slot() EquipSlot { return c.slot }

// Layer returns the canonical layer of the item.
func (c *Clothing) Layer() Layer { return c.layer }

// TwoHanded reports whether the item is a two-handed weapon.
func (c *Clothing) TwoHanded() bool { return c.twoHanded }

// Transparent reports whether the item hides its own sprite.
func (c *Clothing) Transparent() bool { return c.transparent }

// VSlot returns the slot disambiguation string used by equip conflict checks.
func (c *Clothing) VSlot() string { return c.vslot }

// Stand returns the stand pose the item forces.
func (c *Clothing) Stand() Pose { return c.stand }

// Walk returns the walk pose the item forces.
func (c *Clothing) Walk() Pose { return c.walk }
