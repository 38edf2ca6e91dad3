package grammar

import "fmt"

// Grammar is the production list plus derived views: by_lhs and start,
// per spec.md §3.
type Grammar struct {
	Productions []Production
	Start       string

	byLHS map[string][]Production
}

// New builds a Grammar from an ordered production list, validating the
// invariant that every symbol appearing on an rhs is a terminal, epsilon,
// or a nonterminal that is some production's lhs (spec.md §3).
func New(productions []Production, start string) (*Grammar, error) {
	g := &Grammar{Productions: productions, Start: start}
	g.byLHS = make(map[string][]Production, len(productions))
	for _, p := range productions {
		g.byLHS[p.LHS] = append(g.byLHS[p.LHS], p)
	}
	if _, ok := g.byLHS[start]; !ok {
		return nil, &MalformedGrammarError{Reason: fmt.Sprintf("start symbol %q has no productions", start)}
	}
	for _, p := range productions {
		for _, s := range p.RHS {
			if s.IsNonterm() {
				if _, ok := g.byLHS[s.Name]; !ok {
					return nil, &MalformedGrammarError{Reason: fmt.Sprintf("nonterminal %q used in production for %q has no productions of its own", s.Name, p.LHS)}
				}
			}
		}
	}
	return g, nil
}

// MalformedGrammarError reports a grammar that fails the well-formedness
// invariants from spec.md §3 (unknown symbol on an rhs, missing start
// marker).
type MalformedGrammarError struct {
	Reason string
}

func (e *MalformedGrammarError) Error() string {
	return "malformed grammar: " + e.Reason
}

// ByLHS returns the ordered list of productions for a nonterminal name.
func (g *Grammar) ByLHS(name string) []Production {
	return g.byLHS[name]
}

// RHSsOf returns just the right-hand sides of a nonterminal's productions.
func (g *Grammar) RHSsOf(name string) []SubProduction {
	prods := g.byLHS[name]
	out := make([]SubProduction, len(prods))
	for i, p := range prods {
		out[i] = p.RHS
	}
	return out
}

// Nonterminals returns every nonterminal name defined in the grammar, in
// first-definition order.
func (g *Grammar) Nonterminals() []string {
	seen := make(map[string]bool, len(g.byLHS))
	out := make([]string, 0, len(g.byLHS))
	for _, p := range g.Productions {
		if !seen[p.LHS] {
			seen[p.LHS] = true
			out = append(out, p.LHS)
		}
	}
	return out
}

// Terminals returns every distinct terminal literal appearing anywhere on
// an rhs, in first-occurrence order.
func (g *Grammar) Terminals() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range g.Productions {
		for _, s := range p.RHS {
			if s.IsTerminal() && !seen[s.Name] {
				seen[s.Name] = true
				out = append(out, s.Name)
			}
		}
	}
	return out
}

// GetExact enumerates all derivations of symbol that yield exactly n
// terminals (spec.md §4.1). Terminals contribute length 1; epsilon
// contributes length 0. Unresolved branches (those that cannot reach
// length n within the search guard) are dropped silently, never surfaced
// as an error - they simply cannot contribute an exact-length terminal
// string.
func (g *Grammar) GetExact(symbol Symbol, n int) []SubProduction {
	if n < 0 {
		return nil
	}
	budget := (n+1)*len(g.Productions)*8 + 64
	visited := 0
	return g.getExactSymbol(symbol, n, &visited, budget)
}

func (g *Grammar) getExactSymbol(sym Symbol, n int, visited *int, budget int) []SubProduction {
	if *visited > budget {
		return nil
	}
	*visited++

	switch sym.Kind {
	case KindTerminal:
		if n == 1 {
			return []SubProduction{{sym}}
		}
		return nil
	case KindEpsilon:
		if n == 0 {
			return []SubProduction{{}}
		}
		return nil
	default:
		var out []SubProduction
		for _, p := range g.byLHS[sym.Name] {
			out = append(out, g.getExactSeq(p.RHS, n, visited, budget)...)
		}
		return out
	}
}

// getExactSeq enumerates derivations of an entire rhs sequence that yield
// exactly n terminals, splitting n across the sequence's symbols.
func (g *Grammar) getExactSeq(seq SubProduction, n int, visited *int, budget int) []SubProduction {
	if *visited > budget {
		return nil
	}
	*visited++

	if len(seq) == 0 {
		if n == 0 {
			return []SubProduction{{}}
		}
		return nil
	}

	head, rest := seq.Head()
	var out []SubProduction
	for length := 0; length <= n; length++ {
		headOpts := g.getExactSymbol(*head, length, visited, budget)
		if len(headOpts) == 0 {
			continue
		}
		restOpts := g.getExactSeq(rest, n-length, visited, budget)
		for _, h := range headOpts {
			for _, r := range restOpts {
				out = append(out, h.Concat(r))
			}
		}
	}
	return out
}
