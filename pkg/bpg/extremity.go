package bpg

import (
	"cmp"
	"fmt"
	"strings"
)

// End identifies which end of a marker an extremity is.
type End uint8

const (
	// EndTail is the 5' end: forward markers are entered through it.
	EndTail End = iota
	// EndHead is the 3' end: forward markers are left through it.
	EndHead
	// EndTelomere is reserved for the sentinel node.
	EndTelomere
)

// Tags used when extremities are rendered as text.
const (
	TagTail     = 't'
	TagHead     = 'h'
	TagTelomere = 'o'
)

// Tag returns the single-character tag for e.
func (e End) Tag() byte {
	switch e {
	case EndHead:
		return TagHead
	case EndTelomere:
		return TagTelomere
	}
	return TagTail
}

// String returns "tail", "head" or "telomere".
func (e End) String() string {
	switch e {
	case EndHead:
		return "head"
	case EndTelomere:
		return "telomere"
	}
	return "tail"
}

// ParseEnd maps a tag character back to an End.
func ParseEnd(tag byte) (End, error) {
	switch tag {
	case TagTail:
		return EndTail, nil
	case TagHead:
		return EndHead, nil
	case TagTelomere:
		return EndTelomere, nil
	}
	return 0, fmt.Errorf("unknown extremity tag %q", tag)
}

// Extremity is a node of the breakpoint graph. It is a small comparable
// value usable as a map key. The telomere sentinel has End == EndTelomere and
// an empty Marker; no other extremity has End == EndTelomere.
type Extremity struct {
	Marker string
	End    End
}

// Telo is the telomere sentinel shared by all linear chromosome ends.
var Telo = Extremity{End: EndTelomere}

// Head returns the head extremity of marker id.
func Head(id string) Extremity { return Extremity{Marker: id, End: EndHead} }

// Tail returns the tail extremity of marker id.
func Tail(id string) Extremity { return Extremity{Marker: id, End: EndTail} }

// IsTelomere reports whether x is the sentinel.
func (x Extremity) IsTelomere() bool { return x.End == EndTelomere }

// Other returns the opposite extremity of the same marker.
// The sentinel is its own opposite.
func (x Extremity) Other() Extremity {
	switch x.End {
	case EndHead:
		return Tail(x.Marker)
	case EndTail:
		return Head(x.Marker)
	}
	return x
}

// String renders x as marker ID followed by its tag ("7h", "7t"), or "oo"
// for the sentinel.
func (x Extremity) String() string {
	if x.IsTelomere() {
		return string([]byte{TagTelomere, TagTelomere})
	}
	return x.Marker + string(x.End.Tag())
}

// Compare orders extremities by marker ID, then tail before head. The
// sentinel sorts first.
func (x Extremity) Compare(y Extremity) int {
	if c := cmp.Compare(x.Marker, y.Marker); c != 0 {
		return c
	}
	// EndTelomere is numerically largest; force it to the front.
	return cmp.Compare(endRank(x.End), endRank(y.End))
}

func endRank(e End) int {
	if e == EndTelomere {
		return -1
	}
	return int(e)
}

// Pair is an unordered pair of extremities in canonical order (U ≤ V).
// Always construct with NewPair so equal adjacencies compare equal.
type Pair struct {
	U, V Extremity
}

// NewPair returns the canonical pair {a, b}.
func NewPair(a, b Extremity) Pair {
	if a.Compare(b) > 0 {
		a, b = b, a
	}
	return Pair{U: a, V: b}
}

// IsSelfLoop reports whether both ends are the same extremity.
func (p Pair) IsSelfLoop() bool { return p.U == p.V }

// TouchesTelomere reports whether either end is the sentinel.
func (p Pair) TouchesTelomere() bool { return p.U.IsTelomere() || p.V.IsTelomere() }

// Compare orders pairs lexicographically by (U, V).
func (p Pair) Compare(q Pair) int {
	if c := p.U.Compare(q.U); c != 0 {
		return c
	}
	return p.V.Compare(q.V)
}

// String renders the pair as "u,v".
func (p Pair) String() string { return p.U.String() + "," + p.V.String() }

// ParseExtremity parses the String form of an extremity.
func ParseExtremity(s string) (Extremity, error) {
	if s == Telo.String() {
		return Telo, nil
	}
	if len(s) < 2 {
		return Extremity{}, fmt.Errorf("invalid extremity %q", s)
	}
	end, err := ParseEnd(s[len(s)-1])
	if err != nil || end == EndTelomere {
		return Extremity{}, fmt.Errorf("invalid extremity %q", s)
	}
	return Extremity{Marker: s[:len(s)-1], End: end}, nil
}

// ParsePair parses the String form of a pair. Marker IDs may contain
// commas, so every comma is tried as the separator.
func ParsePair(s string) (Pair, error) {
	for i := strings.IndexByte(s, ','); i >= 0; {
		u, errU := ParseExtremity(s[:i])
		v, errV := ParseExtremity(s[i+1:])
		if errU == nil && errV == nil {
			return NewPair(u, v), nil
		}
		j := strings.IndexByte(s[i+1:], ',')
		if j < 0 {
			break
		}
		i += j + 1
	}
	return Pair{}, fmt.Errorf("invalid pair %q", s)
}

// MarshalText encodes p as "u,v" so pairs serialize as JSON strings.
func (p Pair) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes the form written by MarshalText.
func (p *Pair) UnmarshalText(b []byte) error {
	q, err := ParsePair(string(b))
	if err != nil {
		return err
	}
	*p = q
	return nil
}
