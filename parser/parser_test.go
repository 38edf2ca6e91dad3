package parser

import (
	"testing"

	"github.com/shadowCow/llkgen/grammar"
	"github.com/shadowCow/llkgen/lexer"
	"github.com/shadowCow/llkgen/ll1k"
	"github.com/shadowCow/llkgen/parsetree"
)

func buildParser(t *testing.T, productions []grammar.Production, start string, k int) *Parser {
	t.Helper()
	g, err := grammar.New(productions, start)
	if err != nil {
		t.Fatalf("grammar.New: %v", err)
	}
	e := ll1k.NewEngine(g)
	first := e.KFirst(k)
	follow, err := e.KFollow(k)
	if err != nil {
		t.Fatalf("KFollow: %v", err)
	}
	table, err := ll1k.BuildTable(e, first, follow, k)
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}
	return New(table, k)
}

func toks(types ...string) []lexer.Token {
	out := make([]lexer.Token, len(types))
	for i, ty := range types {
		out[i] = lexer.Token{Type: ty, Value: ty}
	}
	return out
}

// TestParseTrivial grounds spec.md §8.1.
func TestParseTrivial(t *testing.T) {
	p := buildParser(t, []grammar.Production{
		{LHS: "S", RHS: grammar.SubProduction{grammar.Terminal("a")}},
	}, "S", 1)

	tree, err := p.Parse(toks("a"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	leaves := parsetree.Leaves(tree)
	if len(leaves) != 1 || leaves[0].Type != "a" {
		t.Errorf("leaves = %v, want [a]", leaves)
	}
}

// TestParseRejectsWrongToken grounds spec.md §8's Rejection property.
func TestParseRejectsWrongToken(t *testing.T) {
	p := buildParser(t, []grammar.Production{
		{LHS: "S", RHS: grammar.SubProduction{grammar.Terminal("a")}},
	}, "S", 1)

	_, err := p.Parse(toks("b"))
	if err == nil {
		t.Fatal("expected ParseException for wrong token")
	}
	if _, ok := err.(*ParseException); !ok {
		t.Fatalf("expected *ParseException, got %T", err)
	}
}

// TestParseSequence grounds spec.md §8.2.
func TestParseSequence(t *testing.T) {
	p := buildParser(t, []grammar.Production{
		{LHS: "S", RHS: grammar.SubProduction{grammar.Nonterm("A"), grammar.Nonterm("B")}},
		{LHS: "A", RHS: grammar.SubProduction{grammar.Terminal("a")}},
		{LHS: "B", RHS: grammar.SubProduction{grammar.Terminal("b")}},
	}, "S", 1)

	tree, err := p.Parse(toks("a", "b"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	leaves := parsetree.Leaves(tree)
	if len(leaves) != 2 || leaves[0].Type != "a" || leaves[1].Type != "b" {
		t.Errorf("leaves = %v, want [a b]", leaves)
	}
}

// TestParseAlternation grounds spec.md §8.3.
func TestParseAlternation(t *testing.T) {
	p := buildParser(t, []grammar.Production{
		{LHS: "S", RHS: grammar.SubProduction{grammar.Nonterm("A")}},
		{LHS: "S", RHS: grammar.SubProduction{grammar.Nonterm("B")}},
		{LHS: "A", RHS: grammar.SubProduction{grammar.Terminal("a")}},
		{LHS: "B", RHS: grammar.SubProduction{grammar.Terminal("b")}},
	}, "S", 1)

	tree, err := p.Parse(toks("b"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	leaves := parsetree.Leaves(tree)
	if len(leaves) != 1 || leaves[0].Type != "b" {
		t.Errorf("leaves = %v, want [b]", leaves)
	}
}

// TestParseNullable grounds spec.md §8.4: both the epsilon branch and the
// non-epsilon branch of A must round-trip.
func TestParseNullable(t *testing.T) {
	p := buildParser(t, []grammar.Production{
		{LHS: "S", RHS: grammar.SubProduction{grammar.Nonterm("A"), grammar.Terminal("b")}},
		{LHS: "A", RHS: grammar.SubProduction{grammar.Terminal("a")}},
		{LHS: "A", RHS: grammar.SubProduction{grammar.Eps}},
	}, "S", 1)

	tree, err := p.Parse(toks("a", "b"))
	if err != nil {
		t.Fatalf("Parse(a b): %v", err)
	}
	if leaves := parsetree.Leaves(tree); len(leaves) != 2 {
		t.Errorf("leaves = %v, want [a b]", leaves)
	}

	tree, err = p.Parse(toks("b"))
	if err != nil {
		t.Fatalf("Parse(b): %v", err)
	}
	if leaves := parsetree.Leaves(tree); len(leaves) != 1 || leaves[0].Type != "b" {
		t.Errorf("leaves = %v, want [b]", leaves)
	}
}

// TestParseK2Disambiguation grounds spec.md §8.5.
func TestParseK2Disambiguation(t *testing.T) {
	p := buildParser(t, []grammar.Production{
		{LHS: "S", RHS: grammar.SubProduction{grammar.Terminal("a"), grammar.Terminal("b")}},
		{LHS: "S", RHS: grammar.SubProduction{grammar.Terminal("a"), grammar.Terminal("c")}},
	}, "S", 2)

	tree, err := p.Parse(toks("a", "c"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	leaves := parsetree.Leaves(tree)
	if len(leaves) != 2 || leaves[1].Type != "c" {
		t.Errorf("leaves = %v, want [a c]", leaves)
	}
}

// TestParseRecursiveList grounds spec.md §8.6.
func TestParseRecursiveList(t *testing.T) {
	p := buildParser(t, []grammar.Production{
		{LHS: "L", RHS: grammar.SubProduction{grammar.Terminal("x"), grammar.Nonterm("L")}},
		{LHS: "L", RHS: grammar.SubProduction{grammar.Eps}},
	}, "L", 1)

	tree, err := p.Parse(toks("x", "x", "x"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	leaves := parsetree.Leaves(tree)
	if len(leaves) != 3 {
		t.Errorf("leaves = %v, want 3 x's", leaves)
	}

	tree, err = p.Parse(toks())
	if err != nil {
		t.Fatalf("Parse(empty): %v", err)
	}
	if leaves := parsetree.Leaves(tree); len(leaves) != 0 {
		t.Errorf("leaves = %v, want none", leaves)
	}
}

// TestParseRejectsTrailingInput rejects a sentence with unconsumed tokens
// remaining after the start symbol is fully reduced.
func TestParseRejectsTrailingInput(t *testing.T) {
	p := buildParser(t, []grammar.Production{
		{LHS: "S", RHS: grammar.SubProduction{grammar.Terminal("a")}},
	}, "S", 1)

	_, err := p.Parse(toks("a", "a"))
	if err == nil {
		t.Fatal("expected ParseException for trailing input")
	}
	if _, ok := err.(*ParseException); !ok {
		t.Fatalf("expected *ParseException, got %T", err)
	}
}
