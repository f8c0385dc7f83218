// Package node provides the read-only, string-keyed asset tree consumed by the
// look compositor.
//
// The tree mirrors the layout of the game's packed archives: containers hold
// ordered children, leaves hold numbers, strings, 2D vectors, bitmaps or audio.
// Lookups on absent keys never fail; they return a node whose Exists reports
// false and whose accessors return zero values, so callers can chain lookups
// freely (n.Get("stand1").Index(0).Get("body")).
package node

import (
	"strconv"

	"github.com/Faultbox/charlook/pkg/math"
)

// Kind identifies the payload of a node.
type Kind int

// Node kinds.
const (
	KindNone Kind = iota
	KindContainer
	KindInteger
	KindReal
	KindString
	KindBool
	KindVector
	KindBitmap
	KindAudio
)

var kindNames = [...]string{
	KindNone:      "none",
	KindContainer: "container",
	KindInteger:   "integer",
	KindReal:      "real",
	KindString:    "string",
	KindBool:      "bool",
	KindVector:    "vector",
	KindBitmap:    "bitmap",
	KindAudio:     "audio",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Bitmap references an image stored outside the tree.
type Bitmap struct {
	Path   string
	Width  int
	Height int
}

// Node is one entry of the asset tree.
type Node interface {
	// Name returns the key under which the node is stored in its parent.
	Name() string
	// Exists reports whether the node was found.
	Exists() bool
	// Kind returns the payload kind (KindNone for missing nodes).
	Kind() Kind
	// Get returns the named child.
	Get(name string) Node
	// Index returns the child named by the decimal form of i.
	Index(i int) Node
	// Children returns the children in storage order.
	Children() []Node

	Int() int64
	Float() float64
	String() string
	Bool() bool
	// Vector returns the point payload of a vector leaf, zero otherwise.
	Vector() math.Point
	// Bitmap returns the bitmap payload of a bitmap leaf, zero otherwise.
	Bitmap() Bitmap
	// Audio returns the audio path of an audio leaf, "" otherwise.
	Audio() string
}

// Missing returns a node that does not exist.
func Missing(name string) Node {
	return missing(name)
}

type missing string

func (m missing) Name() string { return string(m) }
func (missing) Exists() bool { return false }
func (missing) Kind() Kind { return KindNone }
func (missing) Get(name string) Node { return missing(name) }
func (missing) Index(i int) Node { return missing(strconv.Itoa(i)) }
func (missing) Children() []Node { return nil }
func (missing) Int() int64 { return 0 }
func (missing) Float() float64 { return 0 }
func (missing) String() string { return "" }
func (missing) Bool() bool { return false }
func (missing) Vector() math.Point { return math.Point{} }
func (missing) Bitmap() Bitmap { return Bitmap{} }
func (missing) Audio() string { return "" }

// Int16 narrows n.Int() to int16.
func Int16(n Node) int16 {
	return int16(n.Int())
}

// Path follows a sequence of keys from n.
func Path(n Node, keys ...string) Node {
	for _, k := range keys {
		n = n.Get(k)
	}
	return n
}

// WalkFunc is called for each node visited by Walk with its slash separated
// path. Returning false skips the node's children.
type WalkFunc func(path string, n Node) bool

// Walk visits n and its descendants depth first, in child order.
func Walk(n Node, fn WalkFunc) {
	walk(n.Name(), n, fn)
}

func walk(path string, n Node, fn WalkFunc) {
	if !fn(path, n) {
		return
	}
	for _, c := range n.Children() {
		walk(path+"/"+c.Name(), c, fn)
	}
}
