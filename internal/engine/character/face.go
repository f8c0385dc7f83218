package character

import (
	"fmt"
	"strconv"

	"github.com/Faultbox/charlook/internal/engine/sprite"
	"github.com/Faultbox/charlook/pkg/node"
)

// Default delay of a face frame with no delay recorded.
const faceFrameDelay = 2500

type faceFrame struct {
	sprite sprite.Sprite
	delay  uint16
}

func newFaceFrame(n node.Node) faceFrame {
	f := faceFrame{
		sprite: sprite.FromNode(n.Get("face")),
		delay:  uint16(n.Get("delay").Int()),
	}
	f.sprite = f.sprite.Shift(n.Get("face").Get("map").Get("brow").Vector().Neg())
	if f.delay == 0 {
		f.delay = faceFrameDelay
	}
	return f
}

// Face holds the expression frames of one face id.
type Face struct {
	id          int32
	name        string
	expressions [NumExpressions][]faceFrame
}

func newFace(id int32, character, strings node.Node) *Face {
	f := &Face{id: id}
	idStr := strconv.Itoa(int(id))
	f.name = node.Path(strings, "Eqp.img", "Eqp", "Face", idStr, "name").String()

	faceNode := character.Get("Face").Get(fmt.Sprintf("000%d.img", id))
	for e := ExprDefault; e < NumExpressions; e++ {
		if e == ExprDefault {
			f.expressions[e] = []faceFrame{newFaceFrame(faceNode.Get("default"))}
			continue
		}
		expNode := faceNode.Get(e.String())
		for i := 0; i < 256; i++ {
			frameNode := expNode.Index(i)
			if !frameNode.Exists() {
				break
			}
			f.expressions[e] = append(f.expressions[e], newFaceFrame(frameNode))
		}
	}
	return f
}

// Draw draws a frame of an expression. Missing frames are skipped.
func (f *Face) Draw(e Expression, frame uint8, r sprite.Renderer, t sprite.Transform) {
	if f == nil || e >= NumExpressions || int(frame) >= len(f.expressions[e]) {
		return
	}
	f.expressions[e][frame].sprite.Draw(r, t)
}

// NextFrame returns frame+1 if the expression has it, otherwise 0.
func (f *Face) NextFrame(e Expression, frame uint8) uint8 {
	if f != nil && e < NumExpressions && int(frame)+1 < len(f.expressions[e]) {
		return frame + 1
	}
	return 0
}

// Delay returns the frame delay in milliseconds, DefaultDelay if unknown.
func (f *Face) Delay(e Expression, frame uint8) uint16 {
	if f == nil || e >= NumExpressions || int(frame) >= len(f.expressions[e]) {
		return DefaultDelay
	}
	return f.expressions[e][frame].delay
}

// Frames returns the number of frames of an expression.
func (f *Face) Frames(e Expression) int {
	if f == nil || e >= NumExpressions {
		return 0
	}
	return len(f.expressions[e])
}

// ID returns the face id.
func (f *Face) ID() int32 { return f.id }

// Name returns the face name from the string archive.
func (f *Face) Name() string { return f.name }
