package bpg

import (
	"maps"
	"slices"
)

// ColorSet is a set of genome names.
type ColorSet map[string]struct{}

// NewColorSet returns a set holding colors.
func NewColorSet(colors ...string) ColorSet {
	s := make(ColorSet, len(colors))
	for _, c := range colors {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts c.
func (s ColorSet) Add(c string) { s[c] = struct{}{} }

// Has reports whether c is in the set.
func (s ColorSet) Has(c string) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of colors.
func (s ColorSet) Len() int { return len(s) }

// Intersects reports whether s and t share at least one color.
func (s ColorSet) Intersects(t ColorSet) bool {
	a, b := s, t
	if len(b) < len(a) {
		a, b = b, a
	}
	for c := range a {
		if b.Has(c) {
			return true
		}
	}
	return false
}

// Intersect returns the colors present in both s and t.
func (s ColorSet) Intersect(t ColorSet) ColorSet {
	out := make(ColorSet)
	for c := range s {
		if t.Has(c) {
			out.Add(c)
		}
	}
	return out
}

// Equal reports whether s and t hold the same colors.
func (s ColorSet) Equal(t ColorSet) bool {
	if len(s) != len(t) {
		return false
	}
	for c := range s {
		if !t.Has(c) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s ColorSet) Clone() ColorSet { return maps.Clone(s) }

// Sorted returns the colors in ascending order.
func (s ColorSet) Sorted() []string { return slices.Sorted(maps.Keys(s)) }
