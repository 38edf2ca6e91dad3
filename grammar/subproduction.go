package grammar

import "strings"

// SubProduction is an ordered sequence of symbols, typically a suffix of
// some production's RHS. It is the unit the FIRST_k/FOLLOW_k engines
// enumerate and cache (spec.md §3).
type SubProduction []Symbol

// InitialTerminals splits sp into its leading terminal-only prefix and the
// remaining suffix, stopping at the first nonterminal. Up to k actual
// terminals are consumed; leading/interior epsilon symbols are always
// absorbed into the prefix for free, uncounted against k - this is why a
// sequence beginning with ε can yield more than k terms when k=0 (the FIRST_k
// engine's k=0 call on a sole-ε production must still recognize it).
func (sp SubProduction) InitialTerminals(k int) (terms SubProduction, rest SubProduction) {
	i := 0
	count := 0
	for i < len(sp) && !sp[i].IsNonterm() {
		if sp[i].IsEpsilon() {
			i++
			continue
		}
		if count >= k {
			break
		}
		count++
		i++
	}
	return sp[:i], sp[i:]
}

// Head splits sp into its first symbol and the remainder. Returns (nil, nil)
// for an empty sequence.
func (sp SubProduction) Head() (*Symbol, SubProduction) {
	if len(sp) == 0 {
		return nil, nil
	}
	head := sp[0]
	return &head, sp[1:]
}

// Concat returns sp followed by other, without normalization.
func (sp SubProduction) Concat(other SubProduction) SubProduction {
	out := make(SubProduction, 0, len(sp)+len(other))
	out = append(out, sp...)
	out = append(out, other...)
	return out
}

// Normalized collapses epsilon symbols out of sp. A fully-epsilon sequence
// normalizes to the empty sequence; the caller is responsible for mapping
// that back to an explicit "ε" member when presenting results, per
// spec.md §4.2 ("leading/interior ε symbols are dropped during
// normalization, not during the raw computation").
func (sp SubProduction) Normalized() SubProduction {
	out := make(SubProduction, 0, len(sp))
	for _, s := range sp {
		if s.IsEpsilon() {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (sp SubProduction) Equal(other SubProduction) bool {
	if len(sp) != len(other) {
		return false
	}
	for i := range sp {
		if !sp[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (sp SubProduction) Len() int { return len(sp) }

// Key returns a canonical, hashable string for sp, used as a memoization
// key component by the FIRST_k engine.
func (sp SubProduction) Key() string {
	var b strings.Builder
	for i, s := range sp {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(s.Key())
	}
	return b.String()
}

// Strings renders sp as the literal terminal strings it contains, for
// building Lookahead/table output. Callers must only call this once sp is
// known to contain terminals only (post-normalization, length >= 1).
func (sp SubProduction) Strings() []string {
	out := make([]string, 0, len(sp))
	for _, s := range sp {
		out = append(out, s.Name)
	}
	return out
}
