package bnf

import "github.com/shadowCow/llkgen/grammar"

// Build converts a parsed AST into a grammar.Grammar, unquoting and
// unescaping terminal literals along the way (grammar.UnquoteTerminal).
func Build(ast *AST) (*grammar.Grammar, error) {
	var productions []grammar.Production
	for _, prod := range ast.Productions {
		for _, seq := range prod.Expression.Sequences {
			rhs := make(grammar.SubProduction, 0, len(seq.Symbols))
			for _, sym := range seq.Symbols {
				switch sym.Kind {
				case NodeSymbol:
					rhs = append(rhs, grammar.Nonterm(sym.Name))
				case NodeTerminal:
					rhs = append(rhs, grammar.Terminal(grammar.UnquoteTerminal(sym.Name)))
				case NodeEpsilon:
					rhs = append(rhs, grammar.Eps)
				}
			}
			productions = append(productions, grammar.Production{LHS: prod.LHS, RHS: rhs})
		}
	}
	return grammar.New(productions, ast.Start)
}

// ParseGrammar is the convenience entry point: parse BNF text straight
// into a grammar.Grammar.
func ParseGrammar(src string) (*grammar.Grammar, error) {
	ast, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Build(ast)
}
