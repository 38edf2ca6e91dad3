package bnf

import "fmt"

// ParseError reports a syntax error in the BNF source text.
type ParseError struct {
	Line, Col int
	Reason    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bnf: %s (line %d, column %d)", e.Reason, e.Line, e.Col)
}

// Parse reads BNF source text into an AST. The start symbol is the lhs of
// the first production.
func Parse(src string) (*AST, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	ast := &AST{}
	for !p.atEOF() {
		prod, err := p.parseProduction()
		if err != nil {
			return nil, err
		}
		ast.Productions = append(ast.Productions, prod)
	}
	if len(ast.Productions) == 0 {
		return nil, &ParseError{Line: 1, Col: 1, Reason: "grammar has no productions"}
	}
	ast.Start = ast.Productions[0].LHS
	return ast, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token    { return p.toks[p.pos] }
func (p *parser) atEOF() bool   { return p.cur().kind == tokEOF }
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k tokenKind, what string) (token, error) {
	if p.cur().kind != k {
		return token{}, &ParseError{Line: p.cur().line, Col: p.cur().col, Reason: "expected " + what}
	}
	return p.advance(), nil
}

// parseProduction consumes `<IDENT>` `::=` alternation.
func (p *parser) parseProduction() (*ProductionNode, error) {
	if _, err := p.expect(tokLAngle, "'<'"); err != nil {
		return nil, err
	}
	ident, err := p.expect(tokIdent, "nonterminal name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRAngle, "'>'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokDefine, "'::='"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ProductionNode{LHS: ident.text, Expression: expr}, nil
}

func (p *parser) parseExpression() (*ExpressionNode, error) {
	expr := &ExpressionNode{}
	for {
		seq, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		expr.Sequences = append(expr.Sequences, seq)
		if p.cur().kind == tokPipe {
			p.advance()
			continue
		}
		return expr, nil
	}
}

// parseSequence consumes symbols until a `|`, the start of a new
// production (`<ident> ::=`), or EOF.
func (p *parser) parseSequence() (*SequenceNode, error) {
	seq := &SequenceNode{}
	for {
		switch p.cur().kind {
		case tokPipe, tokEOF:
			return p.finishSequence(seq)
		case tokLAngle:
			if p.looksLikeNextProduction() {
				return p.finishSequence(seq)
			}
			sym, err := p.parseNonterminal()
			if err != nil {
				return nil, err
			}
			seq.Symbols = append(seq.Symbols, sym)
		case tokString:
			tok := p.advance()
			seq.Symbols = append(seq.Symbols, &SymbolNode{Kind: NodeTerminal, Name: tok.text})
		case tokEpsilon:
			p.advance()
			seq.Symbols = append(seq.Symbols, &SymbolNode{Kind: NodeEpsilon})
		default:
			return nil, &ParseError{Line: p.cur().line, Col: p.cur().col, Reason: "expected a symbol, '|', or end of grammar"}
		}
	}
}

func (p *parser) finishSequence(seq *SequenceNode) (*SequenceNode, error) {
	if len(seq.Symbols) == 0 {
		return nil, &ParseError{Line: p.cur().line, Col: p.cur().col, Reason: "empty alternative; use ε to mark an explicit empty derivation"}
	}
	return seq, nil
}

// looksLikeNextProduction peeks past `<` `IDENT` `>` to see whether
// `::=` follows, which marks the boundary of the next production rather
// than a nonterminal reference within the current sequence.
func (p *parser) looksLikeNextProduction() bool {
	i := p.pos
	if i >= len(p.toks) || p.toks[i].kind != tokLAngle {
		return false
	}
	i++
	if i >= len(p.toks) || p.toks[i].kind != tokIdent {
		return false
	}
	i++
	if i >= len(p.toks) || p.toks[i].kind != tokRAngle {
		return false
	}
	i++
	return i < len(p.toks) && p.toks[i].kind == tokDefine
}

func (p *parser) parseNonterminal() (*SymbolNode, error) {
	if _, err := p.expect(tokLAngle, "'<'"); err != nil {
		return nil, err
	}
	ident, err := p.expect(tokIdent, "nonterminal name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRAngle, "'>'"); err != nil {
		return nil, err
	}
	return &SymbolNode{Kind: NodeSymbol, Name: ident.text}, nil
}
