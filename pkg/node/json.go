package node

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Faultbox/charlook/pkg/math"
)

// JSON archive errors.
var (
	ErrInvalidJSON = errors.New("invalid JSON archive")
	ErrNotObject   = errors.New("archive root is not an object")
)

// Reserved keys marking leaf payloads inside JSON objects.
const (
	keyBitmap = "$bitmap"
	keySize   = "$size"
	keyAudio  = "$audio"
)

// Parse builds a tree from a JSON archive. The root must be an object.
//
// Encoding: objects are containers, numbers/strings/bools are scalar leaves,
// a two-element numeric array is a vector leaf, an object with a "$bitmap"
// key is a bitmap leaf (its other keys are its children) and an object with
// an "$audio" key is an audio leaf. Keys starting with '$' are not children.
func Parse(name string, data []byte) (Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, name)
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return nil, fmt.Errorf("%w: %s", ErrNotObject, name)
	}
	return jsonNode{name: name, res: res}, nil
}

// MustParse is like Parse but panics on error. Intended for fixtures.
func MustParse(name, data string) Node {
	n, err := Parse(name, []byte(data))
	if err != nil {
		panic(err)
	}
	return n
}

type jsonNode struct {
	name string
	res  gjson.Result
}

func (n jsonNode) Name() string { return n.name }
func (n jsonNode) Exists() bool { return true }

func (n jsonNode) Kind() Kind {
	switch n.res.Type {
	case gjson.Number:
		if strings.ContainsAny(n.res.Raw, ".eE") {
			return KindReal
		}
		return KindInteger
	case gjson.String:
		return KindString
	case gjson.True, gjson.False:
		return KindBool
	case gjson.JSON:
		if isVector(n.res) {
			return KindVector
		}
		if n.res.IsObject() {
			if field(n.res, keyBitmap).Exists() {
				return KindBitmap
			}
			if field(n.res, keyAudio).Exists() {
				return KindAudio
			}
		}
		return KindContainer
	default:
		return KindNone
	}
}

func (n jsonNode) Get(name string) Node {
	if n.res.Type != gjson.JSON || isVector(n.res) {
		return missing(name)
	}
	var found gjson.Result
	if n.res.IsArray() {
		idx, err := strconv.Atoi(name)
		if err != nil || idx < 0 {
			return missing(name)
		}
		found = n.res.Get(strconv.Itoa(idx))
	} else if !strings.HasPrefix(name, "$") {
		found = field(n.res, name)
	}
	if !found.Exists() || found.Type == gjson.Null {
		return missing(name)
	}
	return jsonNode{name: name, res: found}
}

func (n jsonNode) Index(i int) Node {
	return n.Get(strconv.Itoa(i))
}

func (n jsonNode) Children() []Node {
	if n.res.Type != gjson.JSON || isVector(n.res) {
		return nil
	}
	var out []Node
	if n.res.IsArray() {
		for i, v := range n.res.Array() {
			out = append(out, jsonNode{name: strconv.Itoa(i), res: v})
		}
		return out
	}
	n.res.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if !strings.HasPrefix(k, "$") && value.Type != gjson.Null {
			out = append(out, jsonNode{name: k, res: value})
		}
		return true
	})
	return out
}

func (n jsonNode) Int() int64 {
	if n.res.Type == gjson.JSON {
		return 0
	}
	return n.res.Int()
}

func (n jsonNode) Float() float64 {
	if n.res.Type == gjson.JSON {
		return 0
	}
	return n.res.Float()
}

func (n jsonNode) String() string {
	switch n.res.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return n.res.String()
	default:
		return ""
	}
}

func (n jsonNode) Bool() bool {
	if n.res.Type == gjson.JSON {
		return false
	}
	return n.res.Bool()
}

func (n jsonNode) Vector() math.Point {
	if !isVector(n.res) {
		return math.Point{}
	}
	arr := n.res.Array()
	return math.Pt(int16(arr[0].Int()), int16(arr[1].Int()))
}

func (n jsonNode) Bitmap() Bitmap {
	if !n.res.IsObject() {
		return Bitmap{}
	}
	path := field(n.res, keyBitmap)
	if !path.Exists() {
		return Bitmap{}
	}
	bm := Bitmap{Path: path.String()}
	if size := field(n.res, keySize); isVector(size) {
		arr := size.Array()
		bm.Width = int(arr[0].Int())
		bm.Height = int(arr[1].Int())
	}
	return bm
}

func (n jsonNode) Audio() string {
	if !n.res.IsObject() {
		return ""
	}
	return field(n.res, keyAudio).String()
}

// isVector reports whether r is a two-element numeric array.
func isVector(r gjson.Result) bool {
	if !r.IsArray() || r.Get("#").Int() != 2 {
		return false
	}
	arr := r.Array()
	return arr[0].Type == gjson.Number && arr[1].Type == gjson.Number
}

// field returns the value stored under key in object r. The key is escaped,
// so archive names containing '.' or wildcards match literally.
func field(r gjson.Result, key string) gjson.Result {
	return r.Get(gjson.Escape(key))
}
