package ll1k

import (
	"testing"

	"github.com/shadowCow/llkgen/grammar"
)

func buildTable(t *testing.T, g *grammar.Grammar, k int) *ParseTable {
	t.Helper()
	e := NewEngine(g)
	first := e.KFirst(k)
	follow, err := e.KFollow(k)
	if err != nil {
		t.Fatalf("KFollow: %v", err)
	}
	table, err := BuildTable(e, first, follow, k)
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}
	return table
}

// TestBuildTableTrivial grounds spec.md §8.1.
func TestBuildTableTrivial(t *testing.T) {
	g := mustGrammar(t, []grammar.Production{
		{LHS: "S", RHS: grammar.SubProduction{grammar.Terminal("a")}},
	}, "S")
	table := buildTable(t, g, 1)

	prod, ok := table.Get("S", Single("a"))
	if !ok {
		t.Fatal("expected table[S][a] to be set")
	}
	if prod.LHS != "S" || len(prod.RHS) != 1 || prod.RHS[0].Name != "a" {
		t.Errorf("table[S][a] = %v, want S -> a", prod)
	}
}

// TestBuildTableAlternation grounds spec.md §8.3.
func TestBuildTableAlternation(t *testing.T) {
	g := mustGrammar(t, []grammar.Production{
		{LHS: "S", RHS: grammar.SubProduction{grammar.Nonterm("A")}},
		{LHS: "S", RHS: grammar.SubProduction{grammar.Nonterm("B")}},
		{LHS: "A", RHS: grammar.SubProduction{grammar.Terminal("a")}},
		{LHS: "B", RHS: grammar.SubProduction{grammar.Terminal("b")}},
	}, "S")
	table := buildTable(t, g, 1)

	prod, ok := table.Get("S", Single("b"))
	if !ok {
		t.Fatal("expected table[S][b] to be set")
	}
	if prod.RHS[0].Name != "B" {
		t.Errorf("table[S][b] = %v, want S -> B", prod)
	}
}

// TestBuildTableNullable grounds spec.md §8.4.
func TestBuildTableNullable(t *testing.T) {
	g := mustGrammar(t, []grammar.Production{
		{LHS: "S", RHS: grammar.SubProduction{grammar.Nonterm("A"), grammar.Terminal("b")}},
		{LHS: "A", RHS: grammar.SubProduction{grammar.Terminal("a")}},
		{LHS: "A", RHS: grammar.SubProduction{grammar.Eps}},
	}, "S")
	table := buildTable(t, g, 1)

	prod, ok := table.Get("A", Single("b"))
	if !ok {
		t.Fatal("expected table[A][b] to be set via FOLLOW(A)")
	}
	if len(prod.RHS) != 1 || !prod.RHS[0].IsEpsilon() {
		t.Errorf("table[A][b] = %v, want A -> ε", prod)
	}
}

// TestBuildTableAmbiguousAtK1 grounds spec.md §8.5: k=1 must fail.
func TestBuildTableAmbiguousAtK1(t *testing.T) {
	g := mustGrammar(t, []grammar.Production{
		{LHS: "S", RHS: grammar.SubProduction{grammar.Terminal("a"), grammar.Terminal("b")}},
		{LHS: "S", RHS: grammar.SubProduction{grammar.Terminal("a"), grammar.Terminal("c")}},
	}, "S")
	e := NewEngine(g)
	first := e.KFirst(1)
	follow, err := e.KFollow(1)
	if err != nil {
		t.Fatalf("KFollow: %v", err)
	}
	_, err = BuildTable(e, first, follow, 1)
	if err == nil {
		t.Fatal("expected AmbiguousGrammarError at k=1")
	}
	if _, ok := err.(*AmbiguousGrammarError); !ok {
		t.Fatalf("expected *AmbiguousGrammarError, got %T", err)
	}
}

// TestBuildTableDisambiguatesAtK2 grounds spec.md §8.5: k=2 must succeed.
func TestBuildTableDisambiguatesAtK2(t *testing.T) {
	g := mustGrammar(t, []grammar.Production{
		{LHS: "S", RHS: grammar.SubProduction{grammar.Terminal("a"), grammar.Terminal("b")}},
		{LHS: "S", RHS: grammar.SubProduction{grammar.Terminal("a"), grammar.Terminal("c")}},
	}, "S")
	table := buildTable(t, g, 2)

	prod, ok := table.Get("S", Tuple([]string{"a", "b"}))
	if !ok {
		t.Fatal("expected table[S][(a,b)] to be set")
	}
	if prod.RHS[1].Name != "b" {
		t.Errorf("table[S][(a,b)] = %v, want S -> a b", prod)
	}
}

// TestBuildTableRecursiveList grounds spec.md §8.6.
func TestBuildTableRecursiveList(t *testing.T) {
	g := mustGrammar(t, []grammar.Production{
		{LHS: "L", RHS: grammar.SubProduction{grammar.Terminal("x"), grammar.Nonterm("L")}},
		{LHS: "L", RHS: grammar.SubProduction{grammar.Eps}},
	}, "L")
	table := buildTable(t, g, 1)

	prod, ok := table.Get("L", Single("x"))
	if !ok || len(prod.RHS) != 2 {
		t.Fatalf("table[L][x] = %v, want L -> x L", prod)
	}
	prod, ok = table.Get("L", Single(grammar.EndOfInput))
	if !ok || !prod.RHS[0].IsEpsilon() {
		t.Fatalf("table[L][$] = %v, want L -> ε", prod)
	}
}
