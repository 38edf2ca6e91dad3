package parser

import (
	"github.com/shadowCow/llkgen/grammar"
	"github.com/shadowCow/llkgen/lexer"
	"github.com/shadowCow/llkgen/ll1k"
)

// tokenBuffer is the k-token lookahead window spec.md §6 step 2 describes:
// padded conceptually with EOF once the underlying stream runs out.
type tokenBuffer struct {
	tokens []lexer.Token
	pos    int
	k      int
}

func newTokenBuffer(tokens []lexer.Token, k int) *tokenBuffer {
	return &tokenBuffer{tokens: tokens, k: k}
}

// peek returns the token n positions ahead of the cursor, or false if that
// position is at or past EOF.
func (b *tokenBuffer) peek(n int) (lexer.Token, bool) {
	i := b.pos + n
	if i < 0 || i >= len(b.tokens) {
		return lexer.Token{}, false
	}
	return b.tokens[i], true
}

func (b *tokenBuffer) advance() {
	b.pos++
}

// lookahead builds the current k-token lookahead as an ll1k.Lookahead. Once
// the underlying stream is exhausted a single "$" sentinel is appended and
// the buffer stops growing - it never pads with more than one end-of-input
// marker, matching FOLLOW(start) holding exactly one trailing "$".
func (b *tokenBuffer) lookahead() ll1k.Lookahead {
	terms := make([]string, 0, b.k)
	for i := 0; i < b.k; i++ {
		tok, ok := b.peek(i)
		if !ok {
			terms = append(terms, grammar.EndOfInput)
			break
		}
		terms = append(terms, tok.Type)
	}
	if len(terms) == 1 {
		return ll1k.Single(terms[0])
	}
	return ll1k.Tuple(terms)
}
