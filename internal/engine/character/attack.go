package character

import (
	"math/rand"
)

// Weapon attack types, as stored in a weapon's info/attack.
const (
	AttackNone     = 0
	AttackS1A1M1D  = 1
	AttackSpear    = 2
	AttackBow      = 3
	AttackCrossbow = 4
	AttackS2A2M2   = 5
	AttackWand     = 6
	AttackClaw     = 7
	AttackGun      = 9

	NumAttackTypes = 10
)

// HandgunAction is the meta action a gun starts on a normal attack.
const HandgunAction = "handgun"

// AttackPoses lists the candidate poses of a normal attack per attack type.
var AttackPoses = [NumAttackTypes][]Pose{
	{PoseNone},
	{PoseStabO1, PoseStabO2, PoseSwingO1, PoseSwingO2, PoseSwingO3},
	{PoseStabT1, PoseSwingP1},
	{PoseShoot1},
	{PoseShoot2},
	{PoseStabO1, PoseStabO2, PoseSwingT1, PoseSwingT2, PoseSwingT3},
	{PoseSwingO1, PoseSwingO2},
	{PoseSwingO1, PoseSwingO2},
	{PoseNone},
	{PoseShot},
}

// DegenerateAttackPoses lists the candidate poses of a degenerate attack per
// attack type.
var DegenerateAttackPoses = [NumAttackTypes][]Pose{
	{PoseNone},
	{PoseNone},
	{PoseNone},
	{PoseSwingT1, PoseSwingT3},
	{PoseSwingT1, PoseStabT1},
	{PoseNone},
	{PoseNone},
	{PoseSwingT1, PoseStabT1},
	{PoseNone},
	{PoseSwingP1, PoseStabT2},
}

// attackPose picks a pose for an attack of type attack. A prone character
// always stabs from the ground; unknown types fall back to standing.
func attackPose(rng *rand.Rand, current Pose, attack uint8, degenerate bool) Pose {
	if current == PoseProne {
		return PoseProneStab
	}
	if attack <= AttackNone || attack >= NumAttackTypes {
		return PoseStand1
	}

	candidates := AttackPoses[attack]
	if degenerate {
		candidates = DegenerateAttackPoses[attack]
	}
	switch len(candidates) {
	case 0:
		return PoseStand1
	case 1:
		return candidates[0]
	default:
		return candidates[rng.Intn(len(candidates))]
	}
}
