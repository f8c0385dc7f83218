package character

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/charlook/internal/engine/sprite"
	"github.com/Faultbox/charlook/pkg/math"
	"github.com/Faultbox/charlook/pkg/node"
)

// BodyLayer is a z bucket of the body sprites.
type BodyLayer uint8

// Body layers.
const (
	BodyLayerNone BodyLayer = iota
	BodyLayerBody
	BodyLayerArm
	BodyLayerArmBelowHead
	BodyLayerArmBelowHeadOverMail
	BodyLayerArmOverHair
	BodyLayerArmOverHairBelowWeapon
	BodyLayerHandBelowWeapon
	BodyLayerHandOverHair
	BodyLayerHandOverWeapon
	BodyLayerHead

	NumBodyLayers
)

var bodyLayersByName = map[string]BodyLayer{
	"body":                      BodyLayerBody,
	"backBody":                  BodyLayerBody,
	"arm":                       BodyLayerArm,
	"armBelowHead":              BodyLayerArmBelowHead,
	"armBelowHeadOverMailChest": BodyLayerArmBelowHeadOverMail,
	"armOverHair":               BodyLayerArmOverHair,
	"armOverHairBelowWeapon":    BodyLayerArmOverHairBelowWeapon,
	"handBelowWeapon":           BodyLayerHandBelowWeapon,
	"handOverHair":              BodyLayerHandOverHair,
	"handOverWeapon":            BodyLayerHandOverWeapon,
	"head":                      BodyLayerHead,
}

// BodyLayerByName maps a z name to a body layer.
func BodyLayerByName(name string) (BodyLayer, bool) {
	l, ok := bodyLayersByName[name]
	return l, ok
}

var skinNames = [...]string{
	"Light", "Tan", "Dark", "Pale", "Blue", "Green",
	"", "", "", "Grey", "Pink", "Red",
}

// frames maps a frame index to its sprites. A key may hold several
// fragments (equipment parts sharing a layer).
type frames map[uint8][]sprite.Sprite

func (f frames) draw(frame uint8, r sprite.Renderer, t sprite.Transform) {
	for _, s := range f[frame] {
		s.Draw(r, t)
	}
}

// Body holds the skin sprites of one skin id.
type Body struct {
	skin   int32
	name   string
	layers [NumPoses][NumBodyLayers]frames
}

func newBody(skin int32, character node.Node, table *PoseTable, log *zap.Logger) *Body {
	b := &Body{skin: skin}
	if skin >= 0 && int(skin) < len(skinNames) {
		b.name = skinNames[skin]
	}

	bodyNode := character.Get(fmt.Sprintf("000020%02d.img", skin))
	headNode := character.Get(fmt.Sprintf("000120%02d.img", skin))

	for _, pose := range Poses() {
		poseNode := bodyNode.Get(pose.String())
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
				if part.Name() == "delay" || part.Name() == "face" {
					continue
				}
				z := part.Get("z").String()
				layer, ok := BodyLayerByName(z)
				if !ok {
					log.Warn("unhandled body layer", zap.String("layer", z), zap.Int32("skin", skin))
					continue
				}

				var shift math.Point
				if layer == BodyLayerHandBelowWeapon {
					shift = table.HandPos(pose, frame).Sub(part.Get("map").Get("handMove").Vector())
				} else {
					shift = table.BodyPos(pose, frame).Sub(part.Get("map").Get("navel").Vector())
				}
				b.add(pose, layer, frame, sprite.FromNode(part).Shift(shift))
			}

			if head := headNode.Get(pose.String()).Index(i).Get("head"); head.Exists() {
				b.add(pose, BodyLayerHead, frame, sprite.FromNode(head).Shift(table.HeadPos(pose, frame)))
			}
		}
	}
	return b
}

// add keeps the first sprite registered for a key.
func (b *Body) add(p Pose, l BodyLayer, f uint8, s sprite.Sprite) {
	if b.layers[p][l] == nil {
		b.layers[p][l] = make(frames)
	}
	if _, ok := b.layers[p][l][f]; !ok {
		b.layers[p][l][f] = []sprite.Sprite{s}
	}
}

// Draw draws one layer of the body. Missing frames are skipped.
func (b *Body) Draw(p Pose, l BodyLayer, f uint8, r sprite.Renderer, t sprite.Transform) {
	if b == nil || p >= NumPoses || l >= NumBodyLayers {
		return
	}
	b.layers[p][l].draw(f, r, t)
}

// Skin returns the skin id.
func (b *Body) Skin() int32 { return b.skin }

// Name returns the skin display name.
func (b *Body) Name() string { return b.name }
