// Package math provides small geometry types shared by the look compositor.
package math

import "fmt"

// Point is an integer 2D point in sprite space. Y grows downwards.
type Point struct {
	X, Y int16
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int16) Point {
	return Point{X: x, Y: y}
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y}
}

// IsZero reports whether both coordinates are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
