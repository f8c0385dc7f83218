package node

import (
	"errors"
	"testing"

	"github.com/Faultbox/charlook/pkg/math"
)

const fixture = `{
	"00002000.img": {
		"stand1": {
			"0": {
				"body": {
					"$bitmap": "body/stand1.0.png",
					"$size": [21, 31],
					"origin": [11, 31],
					"z": "body",
					"map": {"navel": [-4, -15], "neck": [-3, -31]}
				},
				"delay": 500
			},
			"1": {"delay": "200"}
		},
		"scale": 1.5,
		"flag": true
	},
	"frames": [{"delay": 90}, {"delay": 120}],
	"attack": {"$audio": "sound/attack.wav"}
}`

func TestParseLookups(t *testing.T) {
	root := MustParse("Character", fixture)

	body := Path(root, "00002000.img", "stand1", "0", "body")
	if !body.Exists() {
		t.Fatal("expected body node to exist")
	}
	if body.Kind() != KindBitmap {
		t.Errorf("expected bitmap kind, got %v", body.Kind())
	}
	bm := body.Bitmap()
	if bm.Path != "body/stand1.0.png" || bm.Width != 21 || bm.Height != 31 {
		t.Errorf("unexpected bitmap %+v", bm)
	}
	if got := body.Get("origin").Vector(); got != math.Pt(11, 31) {
		t.Errorf("origin = %v, want (11,31)", got)
	}
	if got := body.Get("z").String(); got != "body" {
		t.Errorf("z = %q, want body", got)
	}
	if got := Path(body, "map", "navel").Vector(); got != math.Pt(-4, -15) {
		t.Errorf("navel = %v, want (-4,-15)", got)
	}

	stance := Path(root, "00002000.img", "stand1")
	if got := stance.Index(0).Get("delay").Int(); got != 500 {
		t.Errorf("delay = %d, want 500", got)
	}
	if got := stance.Index(1).Get("delay").Int(); got != 200 {
		t.Errorf("string delay = %d, want 200", got)
	}
	if stance.Index(2).Exists() {
		t.Error("expected frame 2 to be missing")
	}
}

func TestKeysMatchLiterally(t *testing.T) {
	root := MustParse("Item", `{
		"01302000.img": {"info": {"attackSpeed": 4}},
		"01302000": {"info": {"attackSpeed": 9}},
		"a*": 1, "ab": 2, "q?": 3, "x|y": 4, "#": 5, "@this": 6,
		"list": [[1, 2], {"id": 7}, 8]
	}`)

	tests := []struct {
		path []string
		want int64
	}{
		{[]string{"01302000.img", "info", "attackSpeed"}, 4},
		{[]string{"01302000", "info", "attackSpeed"}, 9},
		{[]string{"a*"}, 1},
		{[]string{"ab"}, 2},
		{[]string{"q?"}, 3},
		{[]string{"x|y"}, 4},
		{[]string{"#"}, 5},
		{[]string{"@this"}, 6},
		{[]string{"list", "1", "id"}, 7},
		{[]string{"list", "2"}, 8},
	}

	for _, tt := range tests {
		n := Path(root, tt.path...)
		if !n.Exists() {
			t.Errorf("%v missing", tt.path)
			continue
		}
		if got := n.Int(); got != tt.want {
			t.Errorf("%v = %d, want %d", tt.path, got, tt.want)
		}
	}

	if got := Path(root, "list", "0").Vector(); got != math.Pt(1, 2) {
		t.Errorf("list/0 = %v, want (1,2)", got)
	}
	// Pattern characters in a lookup are not wildcards.
	for _, name := range []string{"a?", "a*b", "x"} {
		if root.Get(name).Exists() {
			t.Errorf("%s should be missing", name)
		}
	}
	for _, name := range []string{"3", "-1", "#"} {
		if root.Get("list").Get(name).Exists() {
			t.Errorf("list/%s should be missing", name)
		}
	}
}

func TestBitmapChildrenSkipReservedKeys(t *testing.T) {
	root := MustParse("Character", fixture)
	body := Path(root, "00002000.img", "stand1", "0", "body")

	var names []string
	for _, c := range body.Children() {
		names = append(names, c.Name())
	}
	want := []string{"origin", "z", "map"}
	if len(names) != len(want) {
		t.Fatalf("children = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("child %d = %q, want %q", i, names[i], want[i])
		}
	}
	if body.Get("$bitmap").Exists() {
		t.Error("reserved key must not be reachable as a child")
	}
}

func TestScalarKinds(t *testing.T) {
	root := MustParse("Character", fixture)
	img := root.Get("00002000.img")

	tests := []struct {
		name string
		node Node
		want Kind
	}{
		{"container", img, KindContainer},
		{"real", img.Get("scale"), KindReal},
		{"bool", img.Get("flag"), KindBool},
		{"vector", Path(img, "stand1", "0", "body", "origin"), KindVector},
		{"audio", root.Get("attack"), KindAudio},
		{"missing", root.Get("nope"), KindNone},
	}
	for _, tt := range tests {
		if got := tt.node.Kind(); got != tt.want {
			t.Errorf("%s: kind = %v, want %v", tt.name, got, tt.want)
		}
	}

	if got := img.Get("scale").Float(); got != 1.5 {
		t.Errorf("scale = %v, want 1.5", got)
	}
	if !img.Get("flag").Bool() {
		t.Error("expected flag to be true")
	}
	if got := root.Get("attack").Audio(); got != "sound/attack.wav" {
		t.Errorf("audio = %q", got)
	}
}

func TestArrayChildren(t *testing.T) {
	root := MustParse("Character", fixture)
	frames := root.Get("frames")

	if got := frames.Index(1).Get("delay").Int(); got != 120 {
		t.Errorf("frames[1].delay = %d, want 120", got)
	}
	if n := len(frames.Children()); n != 2 {
		t.Errorf("expected 2 children, got %d", n)
	}
	if frames.Index(2).Exists() {
		t.Error("expected out of range index to be missing")
	}
}

func TestMissingChains(t *testing.T) {
	root := MustParse("Character", fixture)
	n := Path(root, "a", "b", "c").Index(3)

	if n.Exists() {
		t.Error("expected missing chain")
	}
	if n.Int() != 0 || n.String() != "" || n.Vector() != (math.Point{}) || n.Children() != nil {
		t.Error("expected zero values from missing node")
	}
	if n.Name() != "3" {
		t.Errorf("missing node name = %q, want 3", n.Name())
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("bad", []byte(`{"a":`)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}
	if _, err := Parse("arr", []byte(`[1,2,3]`)); !errors.Is(err, ErrNotObject) {
		t.Errorf("expected ErrNotObject, got %v", err)
	}
}

func TestDirShadowing(t *testing.T) {
	base := MustParse("Character", `{"a": 1}`)
	patch := MustParse("Character", `{"a": 2}`)
	sound := MustParse("Sound", `{}`)

	root := NewDir("root", base, sound)
	root.Mount(patch)

	if got := Path(root, "Character", "a").Int(); got != 2 {
		t.Errorf("expected later archive to shadow earlier, got %d", got)
	}
	if !root.Get("Sound").Exists() {
		t.Error("expected Sound to be mounted")
	}
	if root.Get("Map").Exists() {
		t.Error("expected Map to be missing")
	}
	if n := len(root.Children()); n != 3 {
		t.Errorf("expected 3 children, got %d", n)
	}
}

func TestWalk(t *testing.T) {
	root := MustParse("Character", `{"a": {"b": 1, "c": {"d": "x"}}, "e": [1, 2]}`)

	var paths []string
	Walk(root, func(path string, n Node) bool {
		paths = append(paths, path)
		return n.Name() != "c"
	})

	want := []string{"Character", "Character/a", "Character/a/b", "Character/a/c", "Character/e"}
	if len(paths) != len(want) {
		t.Fatalf("visited %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path %d = %s, want %s", i, paths[i], want[i])
		}
	}
}
