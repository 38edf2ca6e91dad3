package ll1k

import (
	"sort"

	"github.com/shadowCow/llkgen/grammar"
)

// ParseTable is the LL(k) table from spec.md §4.5/§6:
// Map<Nonterm, Map<Lookahead, Production>>.
type ParseTable struct {
	Start string
	K     int
	cells map[string]map[string]cell
}

type cell struct {
	lookahead  Lookahead
	production grammar.Production
}

// NewParseTable returns an empty table for the given start symbol and k.
func NewParseTable(start string, k int) *ParseTable {
	return &ParseTable{Start: start, K: k, cells: make(map[string]map[string]cell)}
}

// Get looks up the production for an exact (nonterm, lookahead) cell. It
// does not perform the emitted runtime's progressive lookahead-tuple
// shrink (spec.md §6 step 5) - that belongs to the parser package, which
// calls Get repeatedly with shrinking Lookahead.Prefix values (the emitted
// runtime shrinks its own string keys instead).
func (t *ParseTable) Get(nonterm string, lookahead Lookahead) (grammar.Production, bool) {
	row, ok := t.cells[nonterm]
	if !ok {
		return grammar.Production{}, false
	}
	c, ok := row[lookahead.Key()]
	if !ok {
		return grammar.Production{}, false
	}
	return c.production, true
}

// Nonterminals returns the nonterminals that have at least one table row,
// sorted for deterministic iteration.
func (t *ParseTable) Nonterminals() []string {
	out := make([]string, 0, len(t.cells))
	for n := range t.cells {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Row returns the sorted (by lookahead key) cells for one nonterminal, for
// deterministic emission.
func (t *ParseTable) Row(nonterm string) []struct {
	Lookahead  Lookahead
	Production grammar.Production
} {
	row := t.cells[nonterm]
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]struct {
		Lookahead  Lookahead
		Production grammar.Production
	}, 0, len(keys))
	for _, k := range keys {
		c := row[k]
		out = append(out, struct {
			Lookahead  Lookahead
			Production grammar.Production
		}{Lookahead: c.lookahead, Production: c.production})
	}
	return out
}

// setIfAbsentOrEqual records production at [nonterm][lookahead] unless a
// different production already occupies that cell, in which case it
// reports the conflict.
func (t *ParseTable) setIfAbsentOrEqual(nonterm string, lookahead Lookahead, production grammar.Production) (conflict *grammar.Production) {
	row, ok := t.cells[nonterm]
	if !ok {
		row = make(map[string]cell)
		t.cells[nonterm] = row
	}
	key := lookahead.Key()
	existing, ok := row[key]
	if ok && !existing.production.Equal(production) {
		p := existing.production
		return &p
	}
	row[key] = cell{lookahead: lookahead, production: production}
	return nil
}

// BuildTable assembles the LL(k) parse table from FIRST_k and FOLLOW_k
// (spec.md §4.5). Every (nonterm, lookahead) cell is resolved to the
// unique production whose rhs can derive that lookahead; ties are reported
// as AmbiguousGrammarError, except that a lookahead shorter than k gets no
// cell when every tied production is chosen by some longer lookahead that
// extends it.
func BuildTable(e *Engine, first, follow map[string]*LookaheadSet, k int) (*ParseTable, error) {
	table := NewParseTable(e.G.Start, k)

	for _, nonterm := range e.G.Nonterminals() {
		lookaheads := first[nonterm].Members()
		sort.Slice(lookaheads, func(i, j int) bool { return lookaheads[i].Key() < lookaheads[j].Key() })

		for _, la := range lookaheads {
			candidates := e.GetProductionLeadingToTerminal(nonterm, la)
			if len(candidates) > 1 {
				// Below k, a lookahead shared by several productions is left
				// to the longer lookaheads extending it, as long as each
				// candidate is chosen by at least one of them.
				deferred := la.Len() > 0 && la.Len() < k
				for _, c := range candidates {
					extended := false
					for _, longer := range lookaheads {
						extended = extended || (longer.Len() > la.Len() && longer.Prefix(la.Len()).Key() == la.Key() && e.Matches(c.RHS, longer.Terms()))
					}
					deferred = deferred && extended
				}
				if deferred {
					continue
				}
				return nil, &AmbiguousGrammarError{Nonterm: nonterm, Lookahead: la, Candidates: candidates}
			}
			if len(candidates) == 0 {
				continue
			}
			production := candidates[0]

			if la.IsEpsilon() {
				followLookaheads := follow[nonterm].Members()
				sort.Slice(followLookaheads, func(i, j int) bool { return followLookaheads[i].Key() < followLookaheads[j].Key() })
				for _, fla := range followLookaheads {
					table.setIfAbsentOrEqual(nonterm, fla, production)
				}
				continue
			}

			if conflict := table.setIfAbsentOrEqual(nonterm, la, production); conflict != nil {
				return nil, &AmbiguousGrammarError{
					Nonterm:    nonterm,
					Lookahead:  la,
					Candidates: []grammar.Production{*conflict, production},
				}
			}
		}
	}

	return table, nil
}
