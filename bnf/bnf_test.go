package bnf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTrivial(t *testing.T) {
	ast, err := Parse(`<S> ::= "a"`)
	require.NoError(t, err)
	require.Equal(t, "S", ast.Start)
	require.Len(t, ast.Productions, 1)
	require.Len(t, ast.Productions[0].Expression.Sequences, 1)
}

func TestParseAlternationAcrossLines(t *testing.T) {
	src := `
<S> ::= <A>
    | <A> <B>
<A> ::= "a"
<B> ::= "b"
`
	ast, err := Parse(src)
	require.NoError(t, err)
	require.Equal(t, "S", ast.Start)
	require.Len(t, ast.Productions, 3)
	require.Len(t, ast.Productions[0].Expression.Sequences, 2)
}

func TestParseEpsilon(t *testing.T) {
	ast, err := Parse(`<A> ::= "a" | ε`)
	require.NoError(t, err)
	seqs := ast.Productions[0].Expression.Sequences
	require.Len(t, seqs, 2)
	require.Equal(t, NodeEpsilon, seqs[1].Symbols[0].Kind)
}

func TestParseRejectsEmptyAlternative(t *testing.T) {
	_, err := Parse(`<S> ::= "a" | `)
	require.Error(t, err)
}

func TestParseRejectsMalformedRule(t *testing.T) {
	_, err := Parse(`<S> "a"`)
	require.Error(t, err)
}

func TestBuildProducesGrammar(t *testing.T) {
	g, err := ParseGrammar(`
<S> ::= <A> <B>
<A> ::= "a" | ε
<B> ::= "b"
`)
	require.NoError(t, err)
	require.Equal(t, "S", g.Start)
	require.Len(t, g.ByLHS("A"), 2)
	require.Equal(t, []string{"a", "b"}, g.Terminals())
}

func TestBuildUnescapesTerminals(t *testing.T) {
	g, err := ParseGrammar(`<S> ::= "a\"b"`)
	require.NoError(t, err)
	// UnquoteTerminal strips every backslash unconditionally: the
	// escaped quote loses its backslash, not just its quoting role.
	require.Equal(t, []string{"a\"b"}, g.Terminals())
}

func TestBuildRejectsUndefinedNonterminal(t *testing.T) {
	_, err := ParseGrammar(`<S> ::= <Ghost>`)
	require.Error(t, err)
}
