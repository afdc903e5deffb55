package split

import "github.com/gi-bielefeld/carp/pkg/bpg"

// Compatible reports whether two split sides are disjoint or nested.
func Compatible(a, b bpg.ColorSet) bool {
	if !a.Intersects(b) {
		return true
	}
	return subset(a, b) || subset(b, a)
}

func subset(a, b bpg.ColorSet) bool {
	if a.Len() > b.Len() {
		return false
	}
	for c := range a {
		if !b.Has(c) {
			return false
		}
	}
	return true
}

// TreeFilter walks the splits of s by descending support and keeps each one
// that is compatible with every split kept so far. The result is ranked like
// Ranked. Lower-support splits that conflict are discarded.
func TreeFilter(s Support) []Entry {
	var kept []Entry
	var sides []bpg.ColorSet
	for _, e := range Ranked(s) {
		side := bpg.NewColorSet(e.Side...)
		ok := true
		for _, other := range sides {
			if !Compatible(side, other) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, e)
			sides = append(sides, side)
		}
	}
	return kept
}
