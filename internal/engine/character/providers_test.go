package character

import (
	"testing"

	"github.com/Faultbox/charlook/internal/engine/sprite"
	"github.com/Faultbox/charlook/pkg/math"
)

// drawn returns the sprites a draw call emitted.
func drawn(draw func(r sprite.Renderer)) []sprite.Sprite {
	var rec sprite.Recorder
	draw(&rec)
	out := make([]sprite.Sprite, len(rec.Calls))
	for i, c := range rec.Calls {
		out[i] = c.Sprite
	}
	return out
}

func TestBodyShifts(t *testing.T) {
	ctx := newTestContext(t)
	body := ctx.Body(testSkin)
	at := sprite.At(math.Point{})

	tests := []struct {
		layer  BodyLayer
		path   string
		origin math.Point
	}{
		{BodyLayerBody, "body:body", math.Pt(0, 0)},
		{BodyLayerArm, "body:arm", math.Pt(3, 2)},
		{BodyLayerHandBelowWeapon, "body:handBelowWeapon", math.Pt(0, 0)},
		{BodyLayerHead, "body:head", math.Pt(-1, 24)},
	}
	for _, tt := range tests {
		got := drawn(func(r sprite.Renderer) { body.Draw(PoseStand1, tt.layer, 0, r, at) })
		if len(got) != 1 {
			t.Fatalf("layer %d: expected 1 sprite, got %d", tt.layer, len(got))
		}
		if got[0].Path != tt.path || got[0].Origin != tt.origin {
			t.Errorf("layer %d: got %s %v, want %s %v", tt.layer, got[0].Path, got[0].Origin, tt.path, tt.origin)
		}
	}

	if got := drawn(func(r sprite.Renderer) { body.Draw(PoseStand1, BodyLayerArm, 1, r, at) }); len(got) != 0 {
		t.Errorf("expected no arm on frame 1, got %d sprites", len(got))
	}
	if body.Name() != "Light" {
		t.Errorf("skin name = %q, want Light", body.Name())
	}
}

func TestHairAndFace(t *testing.T) {
	ctx := newTestContext(t)
	at := sprite.At(math.Point{})

	hair := ctx.Hair(testHair)
	got := drawn(func(r sprite.Renderer) { hair.Draw(PoseStand1, HairShade, 0, r, at) })
	if len(got) != 1 || got[0].Path != "hair:hairShade" || got[0].Origin != math.Pt(-1, 31) {
		t.Errorf("hair shade = %+v", got)
	}
	if hair.Name() != "Toben" || hair.Color() != "Black" {
		t.Errorf("hair name/color = %q/%q", hair.Name(), hair.Color())
	}

	face := ctx.Face(testFace)
	got = drawn(func(r sprite.Renderer) { face.Draw(ExprDefault, 0, r, at) })
	if len(got) != 1 || got[0].Origin != math.Pt(1, 1) {
		t.Errorf("default face = %+v", got)
	}
	if face.Delay(ExprDefault, 0) != faceFrameDelay {
		t.Errorf("default face delay = %d, want %d", face.Delay(ExprDefault, 0), faceFrameDelay)
	}
	if face.Delay(ExprBlink, 1) != 60 || face.Delay(ExprBlink, 2) != DefaultDelay {
		t.Errorf("blink delays = %d, %d", face.Delay(ExprBlink, 1), face.Delay(ExprBlink, 2))
	}
	if face.NextFrame(ExprBlink, 0) != 1 || face.NextFrame(ExprBlink, 1) != 0 {
		t.Error("blink frames should cycle 0, 1, 0")
	}
	if face.Frames(ExprSmile) != 0 {
		t.Error("expected no smile frames")
	}
	if face.Name() != "Motivated Look" {
		t.Errorf("face name = %q", face.Name())
	}
}

func TestUnknownIDsYieldEmptyProviders(t *testing.T) {
	ctx := newTestContext(t)
	at := sprite.At(math.Point{})

	got := drawn(func(r sprite.Renderer) {
		ctx.Body(7).Draw(PoseStand1, BodyLayerBody, 0, r, at)
		ctx.Hair(99999).Draw(PoseStand1, HairDefault, 0, r, at)
		ctx.Face(99999).Draw(ExprDefault, 0, r, at)
		ctx.Clothing(1999999).Draw(PoseStand1, LayerCape, 0, r, at)
	})
	if len(got) != 0 {
		t.Errorf("expected nothing drawn, got %d sprites", len(got))
	}
}

func TestClothingLayersAndShifts(t *testing.T) {
	ctx := newTestContext(t)
	at := sprite.At(math.Point{})

	tests := []struct {
		name   string
		id     int32
		layer  Layer
		path   string
		origin math.Point
	}{
		{"cap follows face", testHeadband, LayerCap, "cap:cap", math.Pt(-1, 31)},
		{"cap sublayer", testHeadband, LayerCapOverHair, "cap:capOverHair", math.Pt(-1, 31)},
		{"face accessory", testFaceAcc, LayerFaceAcc, "faceacc:accessoryFace", math.Pt(0, -5)},
		{"top follows body", testCoat, LayerTop, "coat:mail", math.Pt(-2, -3)},
		{"mail arm part", testCoat, LayerMailArm, "coat:mailArm", math.Pt(-2, -3)},
		{"overall", testOverall, LayerMail, "overall:mail", math.Pt(-2, -3)},
		{"glove wrist", testGloves, LayerWrist, "gloves:gloveWrist", math.Pt(-2, -3)},
		{"shield follows arm", testShield, LayerShield, "shield:shield", math.Pt(-3, -5)},
		{"weapon follows arm", testSword, LayerWeapon, "weapon:weapon", math.Pt(-4, -6)},
		{"back weapon", testSword, LayerBackWeapon, "weapon:backWeapon", math.Pt(-4, -6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ctx.Clothing(tt.id)
			got := drawn(func(r sprite.Renderer) { c.Draw(PoseStand1, tt.layer, 0, r, at) })
			if len(got) != 1 {
				t.Fatalf("expected 1 sprite, got %d", len(got))
			}
			if got[0].Path != tt.path || got[0].Origin != tt.origin {
				t.Errorf("got %s %v, want %s %v", got[0].Path, got[0].Origin, tt.path, tt.origin)
			}
		})
	}
}

func TestClothingMetadata(t *testing.T) {
	ctx := newTestContext(t)

	tests := []struct {
		id        int32
		slot      EquipSlot
		layer     Layer
		twoHanded bool
		stand     Pose
		walk      Pose
	}{
		{testHeadband, SlotCap, LayerCap, false, PoseStand1, PoseWalk1},
		{testOverall, SlotTop, LayerMail, false, PoseStand1, PoseWalk1},
		{testGloves, SlotGloves, LayerGlove, false, PoseStand1, PoseWalk1},
		{testSword, SlotWeapon, LayerWeapon, false, PoseStand1, PoseWalk1},
		{testTwoHanded, SlotWeapon, LayerWeapon, true, PoseStand2, PoseWalk2},
		{1992000, SlotNone, LayerCape, false, PoseStand1, PoseWalk1},
	}
	for _, tt := range tests {
		c := ctx.Clothing(tt.id)
		if c.Slot() != tt.slot || c.Layer() != tt.layer || c.TwoHanded() != tt.twoHanded ||
			c.Stand() != tt.stand || c.Walk() != tt.walk {
			t.Errorf("%d: got slot=%v layer=%v 2h=%v stand=%v walk=%v", tt.id,
				c.Slot(), c.Layer(), c.TwoHanded(), c.Stand(), c.Walk())
		}
	}

	if !ctx.Clothing(testSword).ContainsLayer(PoseStand1, LayerWeaponOverHand) {
		t.Error("expected sword to occupy weaponOverHand")
	}
	if ctx.Clothing(testSword).ContainsLayer(PoseStand2, LayerWeapon) {
		t.Error("sword has no stand2 sprites")
	}
	if ctx.Clothing(testHalfCap).VSlot() != vslotHalfCover {
		t.Errorf("vslot = %q", ctx.Clothing(testHalfCap).VSlot())
	}
	if !ctx.Clothing(1002186).Transparent() || ctx.Clothing(testHeadband).Transparent() {
		t.Error("transparent flag mismatch")
	}
}

func TestEquipAndWeaponData(t *testing.T) {
	ctx := newTestContext(t)

	bow := ctx.Weapon(testBow)
	if bow.Type != WeaponBow || bow.TwoHanded || bow.Attack != AttackBow {
		t.Errorf("bow = %+v", bow)
	}
	if bow.Name != "War Bow" || bow.EquipData.Type != "BOW" || bow.Category != "Weapon" {
		t.Errorf("bow equip data = %+v", bow.EquipData)
	}
	if bow.UseSound(false) != "weapon/bow/attack.wav" || bow.UseSound(true) != "weapon/bow/attack2.wav" {
		t.Errorf("bow sounds = %q, %q", bow.UseSound(false), bow.UseSound(true))
	}
	if bow.AttackDelay() != 46 || bow.SpeedString() != "NORMAL (6)" {
		t.Errorf("bow delay/speed = %d, %q", bow.AttackDelay(), bow.SpeedString())
	}

	sword := ctx.Weapon(testSword)
	if sword.UseSound(true) != sword.UseSound(false) {
		t.Error("degenerate sound should fall back to Attack")
	}

	twoHanded := []WeaponType{WeaponStaff, WeaponSword2H, WeaponAxe2H, WeaponMace2H, WeaponSpear, WeaponPolearm, WeaponCrossbow}
	for _, w := range twoHanded {
		if !w.TwoHanded() {
			t.Errorf("%d should be two-handed", w)
		}
	}
	for _, w := range []WeaponType{WeaponSword1H, WeaponBow, WeaponClaw, WeaponGun, WeaponWand} {
		if w.TwoHanded() {
			t.Errorf("%d should be one-handed", w)
		}
	}

	tests := []struct {
		id       int32
		slot     EquipSlot
		typ      string
		category string
	}{
		{testHeadband, SlotCap, "HAT", "Cap"},
		{testOverall, SlotTop, "OVERALL", "Longcoat"},
		{testEarrings, SlotEarrings, "EARRINGS", "Accessory"},
		{1142000, SlotMedal, "MEDAL", "Accessory"},
		{1342000, SlotWeapon, "", "Weapon"},
		{1702000, SlotNone, "CASH", "Weapon"},
		{1992000, SlotNone, "CASH", ""},
	}
	for _, tt := range tests {
		d := ctx.Equip(tt.id)
		if d.Slot != tt.slot || d.Type != tt.typ || d.Category != tt.category {
			t.Errorf("%d: got %v %q %q", tt.id, d.Slot, d.Type, d.Category)
		}
	}
}

func TestContextCachesAreStable(t *testing.T) {
	ctx := newTestContext(t)

	if ctx.Hair(testHair) != ctx.Hair(testHair) {
		t.Error("expected the same hair pointer")
	}
	if ctx.Clothing(testSword) != ctx.Clothing(testSword) {
		t.Error("expected the same clothing pointer")
	}
	ctx.Body(testSkin)
	ctx.Face(testFace)

	stats := ctx.Stats()
	want := CacheStats{Bodies: 1, Hairs: 1, Faces: 1, Clothes: 1, Weapons: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	ctx.Close()
	if ctx.Stats() != (CacheStats{}) {
		t.Error("expected empty caches after Close")
	}
}
