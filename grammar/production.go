package grammar

import "strings"

// Production is a single rule lhs -> rhs. The grammar is an ordered
// multiset of these; order is preserved for deterministic output but is not
// semantically significant otherwise (spec.md §3).
type Production struct {
	LHS string
	RHS SubProduction
}

func (p Production) String() string {
	parts := make([]string, len(p.RHS))
	for i, s := range p.RHS {
		parts[i] = s.String()
	}
	return p.LHS + " -> " + strings.Join(parts, " ")
}

func (p Production) Equal(o Production) bool {
	return p.LHS == o.LHS && p.RHS.Equal(o.RHS)
}
