package ll1k

import "strings"

// Lookahead is the tagged union spec.md §9 calls for in place of the
// source's isinstance dispatch between bare terminal strings and terminal
// tuples: Single(Terminal) | Tuple(Seq<Terminal>). The zero value is not
// meaningful; build values with Single, Tuple, or use EpsilonLookahead.
type Lookahead struct {
	terms []string
}

// EpsilonLookahead is the lookahead produced when an entire derivation
// normalizes to nothing (every symbol was ε).
var EpsilonLookahead = Lookahead{terms: nil}

// Single builds a one-terminal Lookahead.
func Single(t string) Lookahead { return Lookahead{terms: []string{t}} }

// Tuple builds a multi-terminal Lookahead. A single-element slice yields a
// value identical to Single of that element: IsTuple reports false for it
// and its Key is the same.
func Tuple(ts []string) Lookahead {
	cp := make([]string, len(ts))
	copy(cp, ts)
	return Lookahead{terms: cp}
}

// IsEpsilon reports whether l represents the empty lookahead.
func (l Lookahead) IsEpsilon() bool { return len(l.terms) == 0 }

// IsTuple reports whether l carries more than one terminal.
func (l Lookahead) IsTuple() bool { return len(l.terms) > 1 }

// Terms returns the underlying terminal sequence (empty for epsilon).
func (l Lookahead) Terms() []string { return l.terms }

// Prefix returns the first n terms of l, used by the reference parser's
// (package parser) progressive lookahead-tuple shrink (spec.md §6 step 5).
func (l Lookahead) Prefix(n int) Lookahead {
	if n >= len(l.terms) {
		return l
	}
	return Tuple(l.terms[:n])
}

// Len returns the number of terminals l carries.
func (l Lookahead) Len() int { return len(l.terms) }

// Key returns a canonical string for l, suitable as a map key.
func (l Lookahead) Key() string {
	if l.IsEpsilon() {
		return "ε"
	}
	return strings.Join(l.terms, "\x1f")
}

func (l Lookahead) String() string {
	if l.IsEpsilon() {
		return "ε"
	}
	if !l.IsTuple() {
		return l.terms[0]
	}
	return "(" + strings.Join(l.terms, ", ") + ")"
}

// LookaheadSet is an insertion-order-independent set of Lookahead values,
// keyed by their canonical Key().
type LookaheadSet struct {
	members map[string]Lookahead
}

// NewLookaheadSet returns an empty LookaheadSet.
func NewLookaheadSet() *LookaheadSet {
	return &LookaheadSet{members: make(map[string]Lookahead)}
}

// Add inserts l into the set.
func (s *LookaheadSet) Add(l Lookahead) {
	s.members[l.Key()] = l
}

// Contains reports whether l is already a member.
func (s *LookaheadSet) Contains(l Lookahead) bool {
	_, ok := s.members[l.Key()]
	return ok
}

// Members returns the set's elements. Order is not significant; callers
// that need deterministic output should sort by Key().
func (s *LookaheadSet) Members() []Lookahead {
	out := make([]Lookahead, 0, len(s.members))
	for _, l := range s.members {
		out = append(out, l)
	}
	return out
}

func (s *LookaheadSet) Len() int { return len(s.members) }
