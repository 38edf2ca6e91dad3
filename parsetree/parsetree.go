// Package parsetree defines the generic parse tree structures produced by
// the in-memory reference parser. A parse tree mirrors the grammatical
// structure of the input exactly as the LL(k) table drove it; it carries no
// language-specific semantics of its own.
package parsetree

import (
	"fmt"
	"strings"

	"github.com/shadowCow/llkgen/grammar"
	"github.com/shadowCow/llkgen/lexer"
)

// Tree is the interface implemented by every parse tree node.
type Tree interface {
	// NodeKind returns a short string describing the node's kind, for
	// debugging and pretty-printing.
	NodeKind() string
	String() string
}

// TerminalNode is a leaf: a single matched token.
type TerminalNode struct {
	Token lexer.Token
}

func (t *TerminalNode) NodeKind() string { return "Terminal" }

func (t *TerminalNode) String() string {
	return fmt.Sprintf("Terminal{%s:%q}", t.Token.Type, t.Token.Value)
}

// NonTerminalNode is an interior node: the nonterminal the table expanded,
// and the children produced by its chosen production, left to right.
type NonTerminalNode struct {
	Symbol   grammar.Symbol
	Children []Tree
}

func (n *NonTerminalNode) NodeKind() string { return "NonTerminal" }

func (n *NonTerminalNode) String() string {
	if len(n.Children) == 0 {
		return fmt.Sprintf("NonTerminal{%s}", n.Symbol)
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("NonTerminal{%s: [%s]}", n.Symbol, strings.Join(parts, ", "))
}

// EpsilonNode marks a production that derived ε; it has no children and
// consumes no input.
type EpsilonNode struct {
	Symbol grammar.Symbol
}

func (e *EpsilonNode) NodeKind() string { return "Epsilon" }

func (e *EpsilonNode) String() string {
	return fmt.Sprintf("Epsilon{%s}", e.Symbol)
}

// Leaves returns the sequence of terminal tokens at the leaves of tree, left
// to right - the "leaf terminal sequence" spec.md §8's round-trip property
// is stated in terms of.
func Leaves(tree Tree) []lexer.Token {
	var out []lexer.Token
	collectLeaves(tree, &out)
	return out
}

func collectLeaves(tree Tree, out *[]lexer.Token) {
	switch n := tree.(type) {
	case *TerminalNode:
		*out = append(*out, n.Token)
	case *NonTerminalNode:
		for _, c := range n.Children {
			collectLeaves(c, out)
		}
	case *EpsilonNode:
		// contributes nothing to the leaf sequence
	}
}
