// Package lexer defines the token representation used by the reference
// parser and the parse tree; the emitted runtime's Token interface asks
// for the same TokenType method. The BNF reader has its own token type.
package lexer

// Token is a single lexical token handed to a parser. Type is matched
// literally against terminal symbols in a grammar.
type Token struct {
	Type   string // token type, e.g. "IDENT", "NUMBER"
	Value  string // actual text matched
	Line   int    // line number (1-indexed)
	Column int    // column number (1-indexed)
	Offset int    // byte offset in source (0-indexed)
}

// TokenType returns the token's type, satisfying the `token_type` attribute
// the emitted runtime contract expects of each buffered token.
func (t Token) TokenType() string {
	return t.Type
}
