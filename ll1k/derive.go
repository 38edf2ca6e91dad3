package ll1k

import "github.com/shadowCow/llkgen/grammar"

const maxMatchesIterations = 2000

type matchState struct {
	children  grammar.SubProduction
	remaining []string
}

func comparableText(s grammar.Symbol) string {
	if s.IsEpsilon() {
		return grammar.EpsilonLiteral
	}
	return s.Name
}

// Matches implements spec.md §4.4's `_matches`: tests whether the grammar
// can derive a string starting with lookahead from the sequence rhs. A
// bounded BFS peels matching terminal prefixes and expands leading
// nonterminals, substituting an epsilon production with just its rest
// rather than ever re-inserting a literal epsilon symbol into the
// sequence being matched - so a lookahead of "ε" only matches a production
// whose rhs is literally the sole epsilon symbol, not a transitively
// nullable chain of nonterminals. This mirrors the original's behavior
// exactly (see DESIGN.md); all non-true outcomes, including running out of
// search budget, are treated as false (spec.md §9).
func (e *Engine) Matches(rhs grammar.SubProduction, lookahead []string) bool {
	queue := []matchState{{children: rhs, remaining: lookahead}}
	iterations := 0
	for len(queue) > 0 {
		iterations++
		if iterations > maxMatchesIterations {
			return false
		}
		cur := queue[0]
		queue = queue[1:]

		children, remaining := cur.children, cur.remaining
		if len(children) == 0 || len(remaining) == 0 {
			continue
		}

		i := 0
		skip := false
		for i < len(children) && i < len(remaining) && !children[i].IsNonterm() {
			if comparableText(children[i]) != remaining[i] {
				skip = true
				break
			}
			i++
		}
		if skip {
			continue
		}
		children, remaining = children[i:], remaining[i:]

		if len(remaining) == 0 {
			return true
		}
		if len(children) == 0 {
			continue
		}
		if !children[0].IsNonterm() {
			return false
		}

		head, rest := children[0], children[1:]
		for _, prhs := range e.G.RHSsOf(head.Name) {
			if len(prhs) > 0 && prhs[0].IsEpsilon() {
				queue = append(queue, matchState{children: rest, remaining: remaining})
			} else {
				queue = append(queue, matchState{children: prhs.Concat(rest), remaining: remaining})
			}
		}
	}
	return false
}

// GetProductionLeadingToTerminal returns every production `nonterm -> α`
// whose α can derive a prefix matching lookahead (spec.md §4.4). An
// epsilon lookahead is translated to the literal "ε" token, per Matches's
// documented behavior.
func (e *Engine) GetProductionLeadingToTerminal(nonterm string, lookahead Lookahead) []grammar.Production {
	var terms []string
	if lookahead.IsEpsilon() {
		terms = []string{grammar.EpsilonLiteral}
	} else {
		terms = lookahead.Terms()
	}

	var out []grammar.Production
	for _, rhs := range e.G.RHSsOf(nonterm) {
		if e.Matches(rhs, terms) {
			out = append(out, grammar.Production{LHS: nonterm, RHS: rhs})
		}
	}
	return out
}
