// Package character composes a character's look: body, hair, face and
// equipment fragments aligned per pose and frame, advanced by a pose timeline
// and an expression timeline, and drawn in a fixed layer order.
package character

// Pose is a discrete body stance. Each pose has its own cyclic frame sequence.
type Pose uint8

// Poses, in archive name order.
const (
	PoseNone Pose = iota
	PoseAlert
	PoseDead
	PoseFly
	PoseHeal
	PoseJump
	PoseLadder
	PoseProne
	PoseProneStab
	PoseRope
	PoseShot
	PoseShoot1
	PoseShoot2
	PoseShootF
	PoseSit
	PoseStabO1
	PoseStabO2
	PoseStabOF
	PoseStabT1
	PoseStabT2
	PoseStabTF
	PoseStand1
	PoseStand2
	PoseSwingO1
	PoseSwingO2
	PoseSwingO3
	PoseSwingOF
	PoseSwingP1
	PoseSwingP2
	PoseSwingPF
	PoseSwingT1
	PoseSwingT2
	PoseSwingT3
	PoseSwingTF
	PoseWalk1
	PoseWalk2

	NumPoses
)

var poseNames = [NumPoses]string{
	"",
	"alert",
	"dead",
	"fly",
	"heal",
	"jump",
	"ladder",
	"prone",
	"proneStab",
	"rope",
	"shot",
	"shoot1",
	"shoot2",
	"shootF",
	"sit",
	"stabO1",
	"stabO2",
	"stabOF",
	"stabT1",
	"stabT2",
	"stabTF",
	"stand1",
	"stand2",
	"swingO1",
	"swingO2",
	"swingO3",
	"swingOF",
	"swingP1",
	"swingP2",
	"swingPF",
	"swingT1",
	"swingT2",
	"swingT3",
	"swingTF",
	"walk1",
	"walk2",
}

var posesByName = func() map[string]Pose {
	m := make(map[string]Pose, NumPoses)
	for p := PoseNone + 1; p < NumPoses; p++ {
		m[poseNames[p]] = p
	}
	return m
}()

// String returns the archive name of the pose ("" for PoseNone).
func (p Pose) String() string {
	if p >= NumPoses {
		return ""
	}
	return poseNames[p]
}

// PoseByName returns the pose stored under name, or PoseNone.
func PoseByName(name string) Pose {
	return posesByName[name]
}

// Base maps the alternate stand/walk bucket to its base form.
func (p Pose) Base() Pose {
	switch p {
	case PoseStand2:
		return PoseStand1
	case PoseWalk2:
		return PoseWalk1
	default:
		return p
	}
}

// IsClimbing reports whether p is drawn with the climbing layer order.
func (p Pose) IsClimbing() bool {
	return p == PoseLadder || p == PoseRope
}

// Poses returns every real pose, PoseNone excluded.
func Poses() []Pose {
	out := make([]Pose, 0, NumPoses-1)
	for p := PoseNone + 1; p < NumPoses; p++ {
		out = append(out, p)
	}
	return out
}
