package character

import (
	"reflect"
	"testing"

	"github.com/Faultbox/charlook/internal/engine/sprite"
	"github.com/Faultbox/charlook/pkg/math"
)

func allPlanKeys() []PlanKey {
	var keys []PlanKey
	for _, climbing := range []bool{false, true} {
		for c := CapNone; c < NumCapTypes; c++ {
			for _, twoHanded := range []bool{false, true} {
				for _, overall := range []bool{false, true} {
					keys = append(keys, PlanKey{climbing, c, twoHanded, overall})
				}
			}
		}
	}
	return keys
}

func indexOf(steps []DrawStep, want DrawStep) int {
	for i, s := range steps {
		if s == want {
			return i
		}
	}
	return -1
}

func TestEveryPlanIsPrecomputed(t *testing.T) {
	for _, key := range allPlanKeys() {
		if len(Plan(key)) == 0 {
			t.Errorf("no plan for %+v", key)
		}
	}
}

func TestClimbingPlanExcludesFrontLayers(t *testing.T) {
	excluded := []Layer{LayerWeaponOverBody, LayerMailArm, LayerWeaponBelowArm, LayerWeaponOverHand, LayerWeapon}
	for _, key := range allPlanKeys() {
		if !key.Climbing {
			continue
		}
		for _, s := range Plan(key) {
			if s.Source != SourceEquip {
				continue
			}
			for _, l := range excluded {
				if s.Layer == l {
					t.Errorf("%+v: climbing plan draws %v", key, l)
				}
			}
		}
		if indexOf(Plan(key), DrawStep{Source: SourceFace, FaceRelative: true}) >= 0 {
			t.Errorf("%+v: climbing plan draws the face", key)
		}
	}
}

func TestHalfCoverOrdering(t *testing.T) {
	climbing := Plan(PlanKey{Climbing: true, Cap: CapHalfCover})
	belowCap := indexOf(climbing, hairStep(HairBelowCap))
	capStep := indexOf(climbing, equipStep(SlotCap, LayerCap))
	if belowCap < 0 || capStep < 0 || belowCap >= capStep {
		t.Errorf("climbing: below-cap hair at %d, cap at %d", belowCap, capStep)
	}
	if indexOf(climbing, hairStep(HairBack)) >= 0 {
		t.Error("climbing half-cover plan should not draw the back hair")
	}

	standing := Plan(PlanKey{Cap: CapHalfCover})
	capStep = indexOf(standing, equipStep(SlotCap, LayerCap))
	lastHair := -1
	for i, s := range standing {
		if s == hairStep(HairDefault) {
			lastHair = i
		}
	}
	if lastHair < 0 || capStep != lastHair+1 {
		t.Errorf("standing: default hair at %d, cap at %d", lastHair, capStep)
	}
	if indexOf(standing, hairStep(HairOverHead)) >= 0 {
		t.Error("half-cover standing plan should not draw the over-head hair")
	}
}

func TestCapTypeBranches(t *testing.T) {
	tests := []struct {
		cap  CapType
		tail []DrawStep
	}{
		{CapNone, []DrawStep{hairStep(HairOverHead)}},
		{CapHeadband, []DrawStep{
			equipStep(SlotCap, LayerCap),
			hairStep(HairDefault),
			hairStep(HairOverHead),
			equipStep(SlotCap, LayerCapOverHair),
		}},
		{CapHalfCover, []DrawStep{hairStep(HairDefault), equipStep(SlotCap, LayerCap)}},
		{CapFullCover, []DrawStep{equipStep(SlotCap, LayerCap)}},
		{CapHairPin, nil},
	}
	for _, tt := range tests {
		t.Run(tt.cap.String(), func(t *testing.T) {
			steps := Plan(PlanKey{Cap: tt.cap})
			start := indexOf(steps, equipStep(SlotShield, LayerShield)) + 1
			end := indexOf(steps, equipStep(SlotWeapon, LayerWeaponBelowArm))
			got := steps[start:end]
			if len(got) != len(tt.tail) || (len(got) > 0 && !reflect.DeepEqual(got, tt.tail)) {
				t.Errorf("got %v, want %v", got, tt.tail)
			}
		})
	}
}

func TestHandednessInterleaving(t *testing.T) {
	one := Plan(PlanKey{})
	two := Plan(PlanKey{TwoHanded: true})

	order := func(steps []DrawStep) []int {
		return []int{
			indexOf(steps, equipStep(SlotTop, LayerMailArm)),
			indexOf(steps, bodyStep(BodyLayerArm)),
			indexOf(steps, equipStep(SlotWeapon, LayerWeapon)),
		}
	}

	o := order(one)
	if !(o[2] < o[1] && o[1] < o[0]) {
		t.Errorf("one-handed should draw weapon, arm, mail arm; got indices %v", o)
	}
	w := order(two)
	if !(w[0] < w[1] && w[1] < w[2]) {
		t.Errorf("two-handed should draw mail arm, arm, weapon; got indices %v", w)
	}
}

func TestStandingDrawOrder(t *testing.T) {
	l := newTestLook(t,
		testHeadband, testFaceAcc, testEyeAcc, testEarrings, testCoat, testPants,
		testShoes, testGloves, testShield, testCape, testSword)

	var rec sprite.Recorder
	l.Draw(&rec, sprite.At(math.Point{}), 1)

	want := []string{
		"hair:hairBelowBody",
		"cape:cape",
		"shield:shieldBelowBody",
		"weapon:weaponBelowBody",
		"cap:capBelowBody",
		"body:body",
		"gloves:gloveWristOverBody",
		"gloves:gloveOverBody",
		"shoes:shoes",
		"body:armBelowHead",
		"pants:pants",
		"coat:mail",
		"body:armBelowHeadOverMailChest",
		"hair:hair",
		"shield:shieldOverHair",
		"earrings:accessoryEar",
		"body:head",
		"hair:hairShade",
		"face:default",
		"faceacc:accessoryFace",
		"eyeacc:accessoryEye",
		"shield:shield",
		"cap:cap",
		"hair:hair",
		"hair:hairOverHead",
		"cap:capOverHair",
		"weapon:weaponBelowArm",
		"weapon:weapon",
		"body:arm",
		"coat:mailArm",
		"gloves:gloveWrist",
		"gloves:glove",
		"weapon:weaponOverGlove",
		"body:handBelowWeapon",
		"body:armOverHair",
		"body:armOverHairBelowWeapon",
		"weapon:weaponOverHand",
		"weapon:weaponOverBody",
		"body:handOverHair",
		"body:handOverWeapon",
		"gloves:gloveWristOverHair",
		"gloves:gloveOverHair",
	}
	if got := rec.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("draw order mismatch\n got: %v\nwant: %v", got, want)
	}

	// The face and its accessory are offset by the face anchor.
	for _, c := range rec.Calls {
		if c.Sprite.Path == "face:default" && c.Transform.Pos != math.Pt(1, -36) {
			t.Errorf("face drawn at %v, want (1,-36)", c.Transform.Pos)
		}
	}
}

func TestOverallReplacesTopAndPants(t *testing.T) {
	l := newTestLook(t, testOverall, testPants)

	var rec sprite.Recorder
	l.Draw(&rec, sprite.At(math.Point{}), 1)
	paths := rec.Paths()
	if !containsPath(paths, "overall:mail") {
		t.Error("expected the overall")
	}
	if containsPath(paths, "pants:pants") {
		t.Error("pants are hidden under an overall")
	}
}

func TestClimbingDrawOrder(t *testing.T) {
	l := newTestLook(t,
		testHalfCap, testEarrings, testCoat, testPants, testShoes, testGloves,
		testShield, testCape, testSword)
	l.SetPose(PoseLadder)

	var rec sprite.Recorder
	l.Draw(&rec, sprite.At(math.Point{}), 1)

	want := []string{
		"body:body",
		"gloves:glove",
		"shoes:shoes",
		"pants:pants",
		"coat:mail",
		"cape:cape",
		"body:head",
		"earrings:accessoryEar",
		"hair:backHairBelowCap",
		"cap:cap",
		"shield:backShield",
		"weapon:backWeapon",
	}
	if got := rec.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("draw order mismatch\n got: %v\nwant: %v", got, want)
	}
}
