package character

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/charlook/pkg/math"
	"github.com/Faultbox/charlook/pkg/node"
)

// Archives holding the pose metadata.
const (
	bodyMetaArchive = "00002000.img"
	headMetaArchive = "00012000.img"
)

// DefaultDelay is the frame delay used when none is recorded.
const DefaultDelay = 100

// MetaAction is one step of a named action: it redirects the pose timeline to
// a pose and frame for Delay milliseconds, displaced by Move.
type MetaAction struct {
	Pose   Pose
	Frame  uint8
	Move   math.Point
	Delay  uint16
	Attack bool
}

func newMetaAction(n node.Node) MetaAction {
	a := MetaAction{
		Pose:  PoseByName(n.Get("action").String()),
		Frame: uint8(n.Get("frame").Int()),
		Move:  n.Get("move").Vector(),
	}

	d := node.Int16(n.Get("delay"))
	if d == 0 {
		d = DefaultDelay
	}
	if d > 0 {
		a.Delay = uint16(d)
		a.Attack = true
	} else {
		a.Delay = uint16(-int32(d))
	}
	return a
}

// anchors holds the alignment offsets of one pose frame.
type anchors struct {
	delay uint16
	body  math.Point
	arm   math.Point
	hand  math.Point
	head  math.Point
	face  math.Point
	hair  math.Point
}

// PoseTable holds per pose frame delays and anchor offsets, plus the named
// meta actions. It is immutable once built.
type PoseTable struct {
	poses        [NumPoses][]anchors
	actions      map[string][]MetaAction
	attackDelays map[string][]uint16
}

// NewPoseTable builds the table from the Character archive.
func NewPoseTable(character node.Node, log *zap.Logger) *PoseTable {
	if log == nil {
		log = zap.NewNop()
	}

	t := &PoseTable{
		actions:      make(map[string][]MetaAction),
		attackDelays: make(map[string][]uint16),
	}

	bodyNode := character.Get(bodyMetaArchive)
	headNode := character.Get(headMetaArchive)

	for _, poseNode := range bodyNode.Children() {
		name := poseNode.Name()
		pose := PoseByName(name)

		var attackDelay uint16
		for frame := 0; frame < 256; frame++ {
			frameNode := poseNode.Index(frame)
			if !frameNode.Exists() {
				break
			}

			if frameNode.Get("action").Kind() == node.KindString {
				action := newMetaAction(frameNode)
				t.actions[name] = append(t.actions[name], action)
				if action.Attack {
					t.attackDelays[name] = append(t.attackDelays[name], attackDelay)
				}
				attackDelay += action.Delay
				continue
			}

			if pose == PoseNone {
				log.Debug("skipping frame of unknown pose", zap.String("pose", name), zap.Int("frame", frame))
				continue
			}

			a := readAnchors(frameNode, headNode.Get(name).Index(frame).Get("head").Get("map"), log)
			// Frames are contiguous from 0.
			if len(t.poses[pose]) == frame {
				t.poses[pose] = append(t.poses[pose], a)
			}
		}
	}

	log.Debug("pose table built",
		zap.Int("actions", len(t.actions)),
		zap.Int("attack_actions", len(t.attackDelays)))
	return t
}

// readAnchors combines the map points of a body frame and its head.
func readAnchors(frameNode, headMap node.Node, log *zap.Logger) anchors {
	a := anchors{delay: uint16(DefaultDelay)}
	if d := node.Int16(frameNode.Get("delay")); d > 0 {
		a.delay = uint16(d)
	}

	points := make(map[BodyLayer]map[string]math.Point)
	add := func(layer BodyLayer, m node.Node) {
		if points[layer] == nil {
			points[layer] = make(map[string]math.Point)
		}
		for _, p := range m.Children() {
			if _, ok := points[layer][p.Name()]; !ok {
				points[layer][p.Name()] = p.Vector()
			}
		}
	}

	for _, part := range frameNode.Children() {
		if part.Name() == "delay" || part.Name() == "face" {
			continue
		}
		z := part.Get("z").String()
		layer, ok := BodyLayerByName(z)
		if !ok {
			log.Debug("unhandled body layer in pose metadata", zap.String("layer", z))
		}
		add(layer, part.Get("map"))
	}
	add(BodyLayerHead, headMap)

	get := func(layer BodyLayer, name string) math.Point {
		return points[layer][name]
	}

	navel := get(BodyLayerBody, "navel")
	neck := get(BodyLayerBody, "neck")
	headNeck := get(BodyLayerHead, "neck")
	brow := get(BodyLayerHead, "brow")

	a.body = navel
	armLayer := BodyLayerArm
	if _, ok := points[BodyLayerArm]; !ok {
		armLayer = BodyLayerArmOverHair
	}
	a.arm = get(armLayer, "hand").Sub(get(armLayer, "navel")).Add(navel)
	a.hand = get(BodyLayerHandBelowWeapon, "handMove")
	a.head = neck.Sub(headNeck)
	a.face = neck.Sub(headNeck).Add(brow)
	a.hair = brow.Sub(headNeck).Add(neck)
	return a
}

func (t *PoseTable) frame(p Pose, f uint8) (anchors, bool) {
	if p >= NumPoses || int(f) >= len(t.poses[p]) {
		return anchors{}, false
	}
	return t.poses[p][f], true
}

// BodyPos returns the navel position.
func (t *PoseTable) BodyPos(p Pose, f uint8) math.Point {
	a, _ := t.frame(p, f)
	return a.body
}

// ArmPos returns the hand position of the arm relative to the navel.
func (t *PoseTable) ArmPos(p Pose, f uint8) math.Point {
	a, _ := t.frame(p, f)
	return a.arm
}

// HandPos returns the hand-move point.
func (t *PoseTable) HandPos(p Pose, f uint8) math.Point {
	a, _ := t.frame(p, f)
	return a.hand
}

// HeadPos returns the head offset.
func (t *PoseTable) HeadPos(p Pose, f uint8) math.Point {
	a, _ := t.frame(p, f)
	return a.head
}

// HairPos returns the hair offset.
func (t *PoseTable) HairPos(p Pose, f uint8) math.Point {
	a, _ := t.frame(p, f)
	return a.hair
}

// FacePos returns the face offset.
func (t *PoseTable) FacePos(p Pose, f uint8) math.Point {
	a, _ := t.frame(p, f)
	return a.face
}

// Delay returns the frame delay in milliseconds, DefaultDelay if unknown.
func (t *PoseTable) Delay(p Pose, f uint8) uint16 {
	a, ok := t.frame(p, f)
	if !ok {
		return DefaultDelay
	}
	return a.delay
}

// NextFrame returns f+1 if that frame exists, otherwise 0.
func (t *PoseTable) NextFrame(p Pose, f uint8) uint8 {
	if _, ok := t.frame(p, f+1); ok && f < 255 {
		return f + 1
	}
	return 0
}

// Frames returns the number of frames recorded for p.
func (t *PoseTable) Frames(p Pose) int {
	if p >= NumPoses {
		return 0
	}
	return len(t.poses[p])
}

// Action returns step of the named meta action.
func (t *PoseTable) Action(name string, step uint8) (*MetaAction, bool) {
	steps := t.actions[name]
	if int(step) >= len(steps) {
		return nil, false
	}
	return &steps[step], true
}

// HasAction reports whether a meta action is named name.
func (t *PoseTable) HasAction(name string) bool {
	return len(t.actions[name]) > 0
}

// NextActionStep returns step+1 if the action has it, otherwise 0.
func (t *PoseTable) NextActionStep(name string, step uint8) uint8 {
	if int(step)+1 < len(t.actions[name]) {
		return step + 1
	}
	return 0
}

// AttackDelay returns the time from the start of the action until its no-th
// attack frame, or 0.
func (t *PoseTable) AttackDelay(name string, no int) uint16 {
	delays := t.attackDelays[name]
	if no < 0 || no >= len(delays) {
		return 0
	}
	return delays[no]
}

// AttackDelays returns the attack frame delays of the action in step order.
func (t *PoseTable) AttackDelays(name string) []uint16 {
	return append([]uint16(nil), t.attackDelays[name]...)
}

// Actions returns the sorted meta action names.
func (t *PoseTable) Actions() []string {
	names := make([]string, 0, len(t.actions))
	for name := range t.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
