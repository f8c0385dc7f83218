// Package anim provides the discrete timeline primitive used by the look
// compositor to blend committed state between logic ticks.
package anim

// Nominal holds a discrete value that changes on logic ticks.
//
// Besides the committed value it remembers the previous one and the fraction
// of the last tick at which the change happened, so a renderer running between
// ticks can pick the value that was current at its interpolation point. The
// blend is cosmetic; logic always reads Get.
type Nominal[T comparable] struct {
	now       T
	before    T
	threshold float32
}

// NewNominal returns a timeline committed to v.
func NewNominal[T comparable](v T) Nominal[T] {
	return Nominal[T]{now: v, before: v}
}

// Get returns the committed value.
func (n *Nominal[T]) Get() T {
	return n.now
}

// Last returns the value before the most recent change.
func (n *Nominal[T]) Last() T {
	return n.before
}

// Blend returns the value visible at interpolation fraction alpha in [0,1].
func (n *Nominal[T]) Blend(alpha float32) T {
	if alpha >= n.threshold {
		return n.now
	}
	return n.before
}

// Set commits v without any blend.
func (n *Nominal[T]) Set(v T) {
	n.now = v
	n.before = v
	n.threshold = 0
}

// Next commits v, switching at fraction threshold of the current tick.
func (n *Nominal[T]) Next(v T, threshold float32) {
	n.before = n.now
	n.now = v
	n.threshold = threshold
}

// Normalize drops the pending blend so Blend returns the committed value.
func (n *Nominal[T]) Normalize() {
	n.before = n.now
}

// Normalized reports whether no blend is pending.
func (n *Nominal[T]) Normalized() bool {
	return n.before == n.now
}
