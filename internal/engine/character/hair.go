package character

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/charlook/internal/engine/sprite"
	"github.com/Faultbox/charlook/pkg/node"
)

// HairLayer is a z bucket of the hair sprites.
type HairLayer uint8

// Hair layers.
const (
	HairDefault HairLayer = iota
	HairBelowBody
	HairOverHead
	HairShade
	HairBack
	HairBelowCap

	NumHairLayers
)

var hairLayersByName = map[string]HairLayer{
	"hair":             HairDefault,
	"hairBelowBody":    HairBelowBody,
	"hairOverHead":     HairOverHead,
	"hairShade":        HairShade,
	"backHair":         HairBack,
	"backHairBelowCap": HairBelowCap,
}

var hairColors = [...]string{
	"Black", "Red", "Orange", "Blonde", "Green", "Blue", "Violet", "Brown",
}

// Hair holds the sprites of one hair style.
type Hair struct {
	id     int32
	name   string
	color  string
	layers [NumPoses][NumHairLayers]frames
}

func newHair(id int32, character, strings node.Node, table *PoseTable, log *zap.Logger) *Hair {
	h := &Hair{id: id}
	if c := int(id % 10); c >= 0 && c < len(hairColors) {
		h.color = hairColors[c]
	}
	idStr := strconv.Itoa(int(id))
	h.name = node.Path(strings, "Eqp.img", "Eqp", "Hair", idStr, "name").String()

	hairNode := character.Get("Hair").Get(fmt.Sprintf("000%d.img", id))
	for _, pose := range Poses() {
		poseNode := hairNode.Get(pose.String())
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
				layer, ok := hairLayersByName[part.Name()]
				if !ok {
					log.Warn("unhandled hair layer", zap.String("layer", part.Name()), zap.Int32("hair", id))
					continue
				}
				brow := part.Get("map").Get("brow").Vector()
				shift := table.HairPos(pose, frame).Sub(brow)

				if h.layers[pose][layer] == nil {
					h.layers[pose][layer] = make(frames)
				}
				if _, ok := h.layers[pose][layer][frame]; !ok {
					h.layers[pose][layer][frame] = []sprite.Sprite{sprite.FromNode(part).Shift(shift)}
				}
			}
		}
	}
	return h
}

// Draw draws one layer of the hair. Missing frames are skipped.
func (h *Hair) Draw(p Pose, l HairLayer, f uint8, r sprite.Renderer, t sprite.Transform) {
	if h == nil || p >= NumPoses || l >= NumHairLayers {
		return
	}
	h.layers[p][l].draw(f, r, t)
}

// ID returns the hair style id.
func (h *Hair) ID() int32 { return h.id }

// Name returns the style name from the string archive.
func (h *Hair) Name() string { return h.name }

// Color returns the color name, derived from the last digit of the id.
func (h *Hair) Color() string { return h.color }
