package ll1k

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/shadowCow/llkgen/grammar"
)

const errWrapWidth = 88

// AmbiguousGrammarError is raised by BuildTable when more than one
// production resolves the same (nonterminal, lookahead) table cell
// (spec.md §4.5, §7).
type AmbiguousGrammarError struct {
	Nonterm    string
	Lookahead  Lookahead
	Candidates []grammar.Production
}

func (e *AmbiguousGrammarError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, p := range e.Candidates {
		names[i] = p.String()
	}
	msg := fmt.Sprintf(
		"ambiguous grammar: cell [%s, %s] matches %d productions: %s",
		e.Nonterm, e.Lookahead, len(e.Candidates), strings.Join(names, "; "),
	)
	return rosed.Edit(msg).Wrap(errWrapWidth).String()
}

// FixpointDivergedError is raised when the FOLLOW_k fixpoint pass exceeds
// its iteration bound without converging (spec.md §4.3, §7).
type FixpointDivergedError struct {
	Symbol     string
	Iterations int
}

func (e *FixpointDivergedError) Error() string {
	msg := fmt.Sprintf(
		"FOLLOW fixpoint did not converge for %q after %d iterations; the grammar may have a dependency cycle the fixpoint cannot resolve",
		e.Symbol, e.Iterations,
	)
	return rosed.Edit(msg).Wrap(errWrapWidth).String()
}

// EnumerationOverflowError is raised when the FOLLOW permutation enumerator
// exceeds its iteration bound (spec.md §4.3, §7).
type EnumerationOverflowError struct {
	Production grammar.Production
	Iterations int
}

func (e *EnumerationOverflowError) Error() string {
	msg := fmt.Sprintf(
		"permutation enumeration for production %q exceeded %d iterations without terminating",
		e.Production.String(), e.Iterations,
	)
	return rosed.Edit(msg).Wrap(errWrapWidth).String()
}

// ParseException describes a parse-time failure: an unexpected token, an
// unknown nonterminal, or a table miss (spec.md §6, §7). It is a runtime
// error, not a generation-time error. The reference parser (package parser)
// and the emitted runtime each define and return their own ParseException
// type; nothing returns this one.
type ParseException struct {
	Reason string
}

func (e *ParseException) Error() string {
	return "parse error: " + e.Reason
}
