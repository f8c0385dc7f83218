package character

import (
	"fmt"
)

// Source selects which provider a draw step reads from.
type Source uint8

// Draw step sources.
const (
	SourceBody Source = iota
	SourceHair
	SourceFace
	SourceEquip
)

// DrawStep is one entry of a draw plan.
type DrawStep struct {
	Source    Source
	BodyLayer BodyLayer
	HairLayer HairLayer
	Slot      EquipSlot
	Layer     Layer
	// FaceRelative steps are drawn with the face offset applied.
	FaceRelative bool
	// FrameZero steps always draw frame 0 of the pose.
	FrameZero bool
}

func (s DrawStep) String() string {
	switch s.Source {
	case SourceBody:
		return fmt.Sprintf("body/%d", s.BodyLayer)
	case SourceHair:
		return fmt.Sprintf("hair/%d", s.HairLayer)
	case SourceFace:
		return "face"
	default:
		return fmt.Sprintf("%s/%s", s.Slot, s.Layer)
	}
}

// PlanKey selects a draw plan.
type PlanKey struct {
	Climbing  bool
	Cap       CapType
	TwoHanded bool
	Overall   bool
}

var plans = buildPlans()

// Plan returns the ordered draw steps for key. The slice is shared and must
// not be modified.
func Plan(key PlanKey) []DrawStep {
	return plans[key]
}

func buildPlans() map[PlanKey][]DrawStep {
	m := make(map[PlanKey][]DrawStep)
	for _, climbing := range []bool{false, true} {
		for c := CapNone; c < NumCapTypes; c++ {
			for _, twoHanded := range []bool{false, true} {
				for _, overall := range []bool{false, true} {
					key := PlanKey{Climbing: climbing, Cap: c, TwoHanded: twoHanded, Overall: overall}
					if climbing {
						m[key] = climbingPlan(c)
					} else {
						m[key] = standingPlan(c, twoHanded, overall)
					}
				}
			}
		}
	}
	return m
}

func bodyStep(l BodyLayer) DrawStep {
	return DrawStep{Source: SourceBody, BodyLayer: l}
}

func hairStep(l HairLayer) DrawStep {
	return DrawStep{Source: SourceHair, HairLayer: l}
}

func equipStep(slot EquipSlot, l Layer) DrawStep {
	return DrawStep{Source: SourceEquip, Slot: slot, Layer: l}
}

func climbingPlan(c CapType) []DrawStep {
	steps := []DrawStep{
		bodyStep(BodyLayerBody),
		equipStep(SlotGloves, LayerGlove),
		equipStep(SlotShoes, LayerShoes),
		equipStep(SlotPants, LayerPants),
		equipStep(SlotTop, LayerTop),
		equipStep(SlotTop, LayerMail),
		equipStep(SlotCape, LayerCape),
		bodyStep(BodyLayerHead),
		equipStep(SlotEarrings, LayerEarrings),
	}

	switch c {
	case CapNone:
		steps = append(steps, hairStep(HairBack))
	case CapHeadband:
		steps = append(steps,
			equipStep(SlotCap, LayerCap),
			hairStep(HairBack))
	case CapHalfCover:
		steps = append(steps,
			hairStep(HairBelowCap),
			equipStep(SlotCap, LayerCap))
	case CapFullCover:
		steps = append(steps, equipStep(SlotCap, LayerCap))
	}

	return append(steps,
		equipStep(SlotShield, LayerBackShield),
		equipStep(SlotWeapon, LayerBackWeapon))
}

func standingPlan(c CapType, twoHanded, overall bool) []DrawStep {
	steps := []DrawStep{
		hairStep(HairBelowBody),
		equipStep(SlotCape, LayerCape),
		equipStep(SlotShield, LayerShieldBelowBody),
		equipStep(SlotWeapon, LayerWeaponBelowBody),
		equipStep(SlotCap, LayerCapBelowBody),
		bodyStep(BodyLayerBody),
		equipStep(SlotGloves, LayerWristOverBody),
		equipStep(SlotGloves, LayerGloveOverBody),
		equipStep(SlotShoes, LayerShoes),
		bodyStep(BodyLayerArmBelowHead),
	}

	if overall {
		steps = append(steps, equipStep(SlotTop, LayerMail))
	} else {
		steps = append(steps,
			equipStep(SlotPants, LayerPants),
			equipStep(SlotTop, LayerTop))
	}

	faceAcc := equipStep(SlotFaceAcc, LayerFaceAcc)
	faceAcc.FaceRelative = true
	faceAcc.FrameZero = true

	steps = append(steps,
		bodyStep(BodyLayerArmBelowHeadOverMail),
		hairStep(HairDefault),
		equipStep(SlotShield, LayerShieldOverHair),
		equipStep(SlotEarrings, LayerEarrings),
		bodyStep(BodyLayerHead),
		hairStep(HairShade),
		DrawStep{Source: SourceFace, FaceRelative: true},
		faceAcc,
		equipStep(SlotEyeAcc, LayerEyeAcc),
		equipStep(SlotShield, LayerShield),
	)

	switch c {
	case CapNone:
		steps = append(steps, hairStep(HairOverHead))
	case CapHeadband:
		steps = append(steps,
			equipStep(SlotCap, LayerCap),
			hairStep(HairDefault),
			hairStep(HairOverHead),
			equipStep(SlotCap, LayerCapOverHair))
	case CapHalfCover:
		steps = append(steps,
			hairStep(HairDefault),
			equipStep(SlotCap, LayerCap))
	case CapFullCover:
		steps = append(steps, equipStep(SlotCap, LayerCap))
	}

	steps = append(steps, equipStep(SlotWeapon, LayerWeaponBelowArm))
	if twoHanded {
		steps = append(steps,
			equipStep(SlotTop, LayerMailArm),
			bodyStep(BodyLayerArm),
			equipStep(SlotWeapon, LayerWeapon))
	} else {
		steps = append(steps,
			equipStep(SlotWeapon, LayerWeapon),
			bodyStep(BodyLayerArm),
			equipStep(SlotTop, LayerMailArm))
	}

	return append(steps,
		equipStep(SlotGloves, LayerWrist),
		equipStep(SlotGloves, LayerGlove),
		equipStep(SlotWeapon, LayerWeaponOverGlove),
		bodyStep(BodyLayerHandBelowWeapon),
		bodyStep(BodyLayerArmOverHair),
		bodyStep(BodyLayerArmOverHairBelowWeapon),
		equipStep(SlotWeapon, LayerWeaponOverHand),
		equipStep(SlotWeapon, LayerWeaponOverBody),
		bodyStep(BodyLayerHandOverHair),
		bodyStep(BodyLayerHandOverWeapon),
		equipStep(SlotGloves, LayerWristOverHair),
		equipStep(SlotGloves, LayerGloveOverHair),
	)
}
