package character

import (
	"encoding/json"
	"testing"

	"github.com/Faultbox/charlook/pkg/node"
)

// Item ids used by the fixture archives.
const (
	testSkin      = 0
	testHair      = 30000
	testFace      = 20000
	testHeadband  = 1002000
	testHalfCap   = 1002001
	testFullCap   = 1002002
	testFaceAcc   = 1012000
	testEyeAcc    = 1022000
	testEarrings  = 1032000
	testCoat      = 1040000
	testOverall   = 1050000
	testPants     = 1060000
	testShoes     = 1070000
	testGloves    = 1080000
	testShield    = 1092000
	testCape      = 1102000
	testSword     = 1302000
	testTwoHanded = 1402000
	testBow       = 1452000
	testGun       = 1492000
)

type obj = map[string]any

func vec(x, y int) []int { return []int{x, y} }

// part builds a bitmap node named path with a z name and map points.
func part(path, z string, points obj) obj {
	p := obj{"$bitmap": path, "$size": vec(4, 4), "origin": vec(0, 0)}
	if z != "" {
		p["z"] = z
	}
	if points != nil {
		p["map"] = points
	}
	return p
}

// parts builds a frame holding one bitmap per name, z equal to the name.
func parts(owner string, points obj, names ...string) obj {
	f := obj{}
	for _, n := range names {
		f[n] = part(owner+":"+n, n, points)
	}
	return f
}

func bodyFrame(delay int, extra obj) obj {
	f := obj{
		"delay": delay,
		"body":  part("body:body", "body", obj{"navel": vec(2, 3), "neck": vec(1, -20)}),
	}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func singleFrame(delay int) obj {
	return obj{"0": bodyFrame(delay, nil)}
}

func fixtureCharacter() obj {
	stand1Extra := obj{
		"arm":                       part("body:arm", "arm", obj{"navel": vec(5, 5), "hand": vec(8, 9)}),
		"armBelowHead":              part("body:armBelowHead", "armBelowHead", nil),
		"armBelowHeadOverMailChest": part("body:armBelowHeadOverMailChest", "armBelowHeadOverMailChest", nil),
		"armOverHair":               part("body:armOverHair", "armOverHair", obj{"navel": vec(0, 0), "hand": vec(1, 1)}),
		"armOverHairBelowWeapon":    part("body:armOverHairBelowWeapon", "armOverHairBelowWeapon", nil),
		"lHand":                     part("body:handBelowWeapon", "handBelowWeapon", obj{"handMove": vec(-3, 4)}),
		"handOverHair":              part("body:handOverHair", "handOverHair", nil),
		"handOverWeapon":            part("body:handOverWeapon", "handOverWeapon", nil),
	}

	body := obj{
		"stand1": obj{
			"0": bodyFrame(100, stand1Extra),
			"1": bodyFrame(200, nil),
			"2": bodyFrame(300, nil),
		},
		"stand2":  obj{"0": bodyFrame(150, nil), "1": bodyFrame(150, nil)},
		"walk1":   singleFrame(100),
		"walk2":   singleFrame(100),
		"alert":   singleFrame(100),
		"ladder":  obj{"0": bodyFrame(0, nil)},
		"prone":   singleFrame(100),
		"shoot1":  singleFrame(100),
		"swingT1": singleFrame(100),
		"swingT3": singleFrame(100),
		"stabO1":  singleFrame(100),
		"shot":    obj{"0": bodyFrame(100, nil), "1": bodyFrame(100, nil)},
		"handgun": obj{
			"0": obj{"action": "shot", "frame": 0, "delay": -100, "move": vec(5, 0)},
			"1": obj{"action": "shot", "frame": 1, "delay": 200},
			"2": obj{"action": "shot", "frame": 0, "delay": 0},
		},
	}

	headPart := func() obj {
		return obj{"head": part("body:head", "head", obj{"neck": vec(0, 4), "brow": vec(0, -12)})}
	}
	head := obj{
		"stand1": obj{"0": headPart()},
		"ladder": obj{"0": headPart()},
	}

	brow := obj{"brow": vec(0, -5)}
	hair := obj{
		"stand1": obj{"0": parts("hair", brow, "hair", "hairBelowBody", "hairOverHead", "hairShade", "backHair", "backHairBelowCap")},
		"ladder": obj{"0": parts("hair", brow, "backHair", "backHairBelowCap")},
	}

	face := obj{
		"default": obj{"face": part("face:default", "", obj{"brow": vec(1, 1)})},
		"blink": obj{
			"0": obj{"face": part("face:blink0", "", nil), "delay": 60},
			"1": obj{"face": part("face:blink1", "", nil), "delay": 60},
		},
	}

	capItem := func(vslot string) obj {
		return obj{
			"info":   obj{"vslot": vslot},
			"stand1": obj{"0": obj{"default": part("cap:cap", "cap", brow), "capOverHair": part("cap:capOverHair", "capOverHair", brow), "capBelowBody": part("cap:capBelowBody", "capBelowBody", brow)}},
			"ladder": obj{"0": obj{"default": part("cap:cap", "cap", brow)}},
		}
	}

	navel := obj{"navel": vec(0, 0)}
	simple := func(owner, z string, points obj) obj {
		return obj{
			"stand1": obj{"0": obj{"default": part(owner+":"+z, z, points)}},
			"ladder": obj{"0": obj{"default": part(owner+":"+z, z, points)}},
		}
	}

	top := func(owner string) obj {
		return obj{
			"stand1": obj{"0": obj{"mail": part(owner+":mail", "mailChest", navel), "mailArm": part(owner+":mailArm", "mailArm", navel)}},
			"ladder": obj{"0": obj{"mail": part(owner+":mail", "mailChest", navel)}},
		}
	}

	hand := obj{"hand": vec(1, 1)}
	weaponParts := obj{
		"weapon":          part("weapon:weapon", "weapon", hand),
		"weaponBelowArm":  part("weapon:weaponBelowArm", "weaponBelowArm", hand),
		"weaponBelowBody": part("weapon:weaponBelowBody", "weaponBelowBody", hand),
		"weaponOverHand":  part("weapon:weaponOverHand", "weaponOverHand", hand),
		"weaponOverBody":  part("weapon:weaponOverBody", "weaponOverBody", hand),
		"weaponOverGlove": part("weapon:weaponOverGlove", "weaponOverGlove", hand),
		"backWeapon":      part("weapon:backWeapon", "backWeaponOverShield", hand),
	}

	return obj{
		"00002000.img": body,
		"00012000.img": head,
		"Hair":         obj{"00030000.img": hair},
		"Face":         obj{"00020000.img": face},
		"Cap": obj{
			"01002000.img": capItem(vslotHeadband),
			"01002001.img": capItem(vslotHalfCover),
			"01002002.img": capItem(vslotFullCover),
		},
		"Accessory": obj{
			"01012000.img": simple("faceacc", "accessoryFace", brow),
			"01022000.img": simple("eyeacc", "accessoryEye", brow),
			"01032000.img": simple("earrings", "accessoryEar", brow),
		},
		"Coat":     obj{"01040000.img": top("coat")},
		"Longcoat": obj{"01050000.img": top("overall")},
		"Pants":    obj{"01060000.img": simple("pants", "pants", navel)},
		"Shoes":    obj{"01070000.img": simple("shoes", "shoes", navel)},
		"Glove": obj{"01080000.img": obj{
			"stand1": obj{"0": parts("gloves", navel, "glove", "gloveWrist", "gloveOverHair", "gloveWristOverHair", "gloveOverBody", "gloveWristOverBody")},
			"ladder": obj{"0": parts("gloves", navel, "glove")},
		}},
		"Shield": obj{"01092000.img": obj{
			"stand1": obj{"0": parts("shield", obj{"hand": vec(2, 2)}, "shield", "shieldOverHair", "shieldBelowBody", "backShield")},
			"ladder": obj{"0": parts("shield", obj{"hand": vec(2, 2)}, "backShield")},
		}},
		"Cape": obj{"01102000.img": simple("cape", "cape", navel)},
		"Weapon": obj{
			"01302000.img": obj{
				"info":   obj{"attack": 1, "attackSpeed": 4, "sfx": "swordS"},
				"stand1": obj{"0": weaponParts},
				"ladder": obj{"0": obj{"backWeapon": weaponParts["backWeapon"]}},
			},
			"01402000.img": obj{
				"info":   obj{"attack": 5, "attackSpeed": 6, "sfx": "swordL"},
				"stand2": obj{"0": obj{"weapon": part("weapon2h:weapon", "weapon", hand)}},
			},
			"01452000.img": obj{
				"info":   obj{"attack": 3, "attackSpeed": 6, "sfx": "bow"},
				"stand1": obj{"0": obj{"weapon": part("bow:weapon", "weapon", hand)}},
			},
			"01492000.img": obj{
				"info": obj{"attack": 9, "attackSpeed": 4, "sfx": "gun"},
			},
		},
	}
}

func fixtureSound() obj {
	audio := func(p string) obj { return obj{"$audio": p} }
	return obj{"Weapon.img": obj{
		"swordS": obj{"Attack": audio("weapon/swordS/attack.wav")},
		"bow":    obj{"Attack": audio("weapon/bow/attack.wav"), "Attack2": audio("weapon/bow/attack2.wav")},
		"gun":    obj{"Attack": audio("weapon/gun/attack.wav")},
	}}
}

func fixtureString() obj {
	return obj{"Eqp.img": obj{"Eqp": obj{
		"Hair":   obj{"30000": obj{"name": "Toben"}},
		"Face":   obj{"20000": obj{"name": "Motivated Look"}},
		"Weapon": obj{"1452000": obj{"name": "War Bow"}},
	}}}
}

func parseArchive(t *testing.T, name string, v obj) node.Node {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	n, err := node.Parse(name, data)
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return n
}

func fixtureRoot(t *testing.T) node.Node {
	t.Helper()
	return node.NewDir("",
		parseArchive(t, "Character", fixtureCharacter()),
		parseArchive(t, "String", fixtureString()),
		parseArchive(t, "Sound", fixtureSound()),
	)
}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	ctx := NewContext(fixtureRoot(t))
	t.Cleanup(ctx.Close)
	return ctx
}

// soundLog records played sounds.
type soundLog []string

func (s *soundLog) Play(path string) { *s = append(*s, path) }
