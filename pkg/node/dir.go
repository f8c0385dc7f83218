package node

import (
	"strconv"

	"github.com/Faultbox/charlook/pkg/math"
)

// Dir is a container assembled in memory, used to mount several archives
// under one root (Character, String, Sound, ...).
type Dir struct {
	name     string
	children []Node
}

// NewDir returns a container holding children in the given order.
// Later children shadow earlier ones with the same name.
func NewDir(name string, children ...Node) *Dir {
	return &Dir{name: name, children: children}
}

// Mount appends a child.
func (d *Dir) Mount(child Node) {
	d.children = append(d.children, child)
}

func (d *Dir) Name() string { return d.name }
func (d *Dir) Exists() bool { return true }
func (d *Dir) Kind() Kind { return KindContainer }

func (d *Dir) Get(name string) Node {
	for i := len(d.children) - 1; i >= 0; i-- {
		if d.children[i].Name() == name {
			return d.children[i]
		}
	}
	return missing(name)
}

func (d *Dir) Index(i int) Node { return d.Get(strconv.Itoa(i)) }

func (d *Dir) Children() []Node {
	out := make([]Node, len(d.children))
	copy(out, d.children)
	return out
}

func (d *Dir) Int() int64 { return 0 }
func (d *Dir) Float() float64 { return 0 }
func (d *Dir) String() string { return "" }
func (d *Dir) Bool() bool { return false }
func (d *Dir) Vector() math.Point { return math.Point{} }
func (d *Dir) Bitmap() Bitmap { return Bitmap{} }
func (d *Dir) Audio() string { return "" }
