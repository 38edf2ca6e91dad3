// Package parser implements the in-memory reference recognizer used to
// exercise a built ll1k.ParseTable directly, without going through
// emit.Generate and compiling the result. It mirrors the emitted runtime's
// contract exactly (spec.md §6): a left-to-right parse stack, a token
// buffer of size k, and progressive lookahead-tuple shrink on a table miss.
package parser

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/shadowCow/llkgen/grammar"
	"github.com/shadowCow/llkgen/lexer"
	"github.com/shadowCow/llkgen/ll1k"
	"github.com/shadowCow/llkgen/parsetree"
)

// ParseException is raised at parse time when the token stream does not
// belong to the language the table was built for - it is never returned by
// table construction, only by Parse itself (spec.md §7).
type ParseException struct {
	Reason string
}

func (e *ParseException) Error() string { return "parse exception: " + e.Reason }

// Parser drives table over a token stream.
type Parser struct {
	table *ll1k.ParseTable
	k     int
}

// New returns a Parser for the given table, built for lookahead k.
func New(table *ll1k.ParseTable, k int) *Parser {
	return &Parser{table: table, k: k}
}

// Parse consumes tokens and returns the parse tree rooted at the table's
// start symbol, or a *ParseException if tokens is not a sentence of the
// grammar the table was built for.
func (p *Parser) Parse(tokens []lexer.Token) (parsetree.Tree, error) {
	buf := newTokenBuffer(tokens, p.k)

	var out parsetree.Tree

	// frame is an entry on the parse stack: a pending symbol and the slot
	// its resolved tree node should be written into once processed.
	type frame struct {
		symbol grammar.Symbol
		slot   func(parsetree.Tree)
	}
	stack := arraystack.New()
	stack.Push(frame{
		symbol: grammar.Nonterm(p.table.Start),
		slot:   func(t parsetree.Tree) { out = t },
	})

	for !stack.Empty() {
		raw, _ := stack.Pop()
		top := raw.(frame)

		if top.symbol.IsEpsilon() {
			top.slot(&parsetree.EpsilonNode{Symbol: top.symbol})
			continue
		}

		if top.symbol.IsTerminal() {
			tok, ok := buf.peek(0)
			if !ok || tok.Type != top.symbol.Name {
				return nil, &ParseException{Reason: fmt.Sprintf(
					"expected terminal %q, got %v", top.symbol.Name, tokenOrEOF(tok, ok))}
			}
			buf.advance()
			top.slot(&parsetree.TerminalNode{Token: tok})
			continue
		}

		// Nonterminal: look up the production via the buffered lookahead,
		// shrinking the tuple from the right on a miss.
		la := buf.lookahead()
		prod, found := lookupWithShrink(p.table, top.symbol.Name, la)
		if !found {
			return nil, &ParseException{Reason: fmt.Sprintf(
				"no production for %s with lookahead %v", top.symbol.Name, la)}
		}

		node := &parsetree.NonTerminalNode{Symbol: top.symbol}
		top.slot(node)

		if len(prod.RHS) == 1 && prod.RHS[0].IsEpsilon() {
			node.Children = []parsetree.Tree{&parsetree.EpsilonNode{Symbol: grammar.Eps}}
			continue
		}

		node.Children = make([]parsetree.Tree, len(prod.RHS))
		// push in reverse order so the leftmost child is processed first
		for i := len(prod.RHS) - 1; i >= 0; i-- {
			idx := i
			stack.Push(frame{
				symbol: prod.RHS[idx],
				slot:   func(t parsetree.Tree) { node.Children[idx] = t },
			})
		}
	}

	if tok, ok := buf.peek(0); ok {
		return nil, &ParseException{Reason: fmt.Sprintf("unexpected trailing token %v", tok)}
	}
	return out, nil
}

func tokenOrEOF(tok lexer.Token, ok bool) interface{} {
	if !ok {
		return "EOF"
	}
	return tok
}

// lookupWithShrink implements spec.md §6 step 5: on a table miss, drop the
// rightmost element of the lookahead tuple until a hit or the tuple empties.
func lookupWithShrink(table *ll1k.ParseTable, nonterm string, la ll1k.Lookahead) (grammar.Production, bool) {
	for n := la.Len(); n >= 1; n-- {
		if prod, ok := table.Get(nonterm, la.Prefix(n)); ok {
			return prod, true
		}
	}
	return grammar.Production{}, false
}
