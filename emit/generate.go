// Package emit renders a built ll1k.ParseTable as a self-contained Go
// source file: a nested table literal plus the fixed stack-driven runtime
// spec.md §4.6/§6 describes. The emitted file depends on nothing from this
// module at runtime - only a host-supplied Token interface.
package emit

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/shadowCow/llkgen/grammar"
	"github.com/shadowCow/llkgen/ll1k"
)

var tmpl = template.Must(template.New("runtime").Parse(runtimeTemplate))

type cellData struct {
	Key        string
	LHS        string
	RHSLiteral string
}

type rowData struct {
	Nonterm string
	Cells   []cellData
}

type templateData struct {
	Package string
	Imports string
	K       int
	Start   string
	Rows    []rowData
}

// Generate renders table as Go source in package pkg, with an optional
// extra imports block (raw import-statement text, already parenthesized or
// not) inserted into the template; imports.Process then removes any of
// those imports the generated code does not use. It is a pure function of its inputs: no
// timestamps or other nondeterministic content reach the output (spec.md
// §5: "no mutable state escapes a generate call").
func Generate(g *grammar.Grammar, table *ll1k.ParseTable, k int, pkg string, importsText string) (string, error) {
	if pkg == "" {
		pkg = "llkparser"
	}

	data := templateData{
		Package: pkg,
		Imports: strings.TrimSpace(importsText),
		K:       k,
		Start:   table.Start,
	}

	nonterms := table.Nonterminals()
	for _, nt := range nonterms {
		var cells []cellData
		for _, c := range table.Row(nt) {
			cells = append(cells, cellData{
				Key:        lookaheadKey(c.Lookahead),
				LHS:        c.Production.LHS,
				RHSLiteral: rhsLiteral(c.Production.RHS),
			})
		}
		sort.Slice(cells, func(i, j int) bool { return cells[i].Key < cells[j].Key })
		data.Rows = append(data.Rows, rowData{Nonterm: nt, Cells: cells})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("emit: rendering template: %w", err)
	}

	formatted, err := imports.Process("generated_parser.go", buf.Bytes(), nil)
	if err != nil {
		return "", fmt.Errorf("emit: formatting generated source: %w", err)
	}

	return string(formatted), nil
}

// lookaheadKey renders la as the literal text that will sit between quotes
// in the emitted table - using the four-character escape `\x1f`, not the
// raw control byte, so the generated source stays readable and the Go
// compiler reconstructs the same separator joinLookahead produces at
// runtime.
func lookaheadKey(la ll1k.Lookahead) string {
	terms := la.Terms()
	if len(terms) == 0 {
		return grammar.EpsilonLiteral
	}
	return strings.Join(terms, `\x1f`)
}

func rhsLiteral(rhs grammar.SubProduction) string {
	if len(rhs) == 1 && rhs[0].IsEpsilon() {
		return `"` + grammar.EpsilonLiteral + `"`
	}
	parts := make([]string, 0, len(rhs))
	for _, s := range rhs {
		if s.IsEpsilon() {
			continue
		}
		parts = append(parts, strconv.Quote(s.Name))
	}
	return strings.Join(parts, ", ")
}
