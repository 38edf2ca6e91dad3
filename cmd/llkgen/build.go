package main

import (
	"fmt"
	"os"

	"github.com/shadowCow/llkgen/bnf"
	"github.com/shadowCow/llkgen/grammar"
	"github.com/shadowCow/llkgen/ll1k"
)

// built bundles everything derived from a grammar file at a fixed k, so
// generate/inspect/repl can share the same construction path.
type built struct {
	Grammar *grammar.Grammar
	Engine  *ll1k.Engine
	First   map[string]*ll1k.LookaheadSet
	Follow  map[string]*ll1k.LookaheadSet
	Table   *ll1k.ParseTable
}

func buildFromFile(path string, k int) (*built, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar file: %w", err)
	}

	g, err := bnf.ParseGrammar(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	e := ll1k.NewEngine(g)
	first := e.KFirst(k)
	follow, err := e.KFollow(k)
	if err != nil {
		return nil, fmt.Errorf("compute FOLLOW_%d: %w", k, err)
	}
	table, err := ll1k.BuildTable(e, first, follow, k)
	if err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}

	return &built{Grammar: g, Engine: e, First: first, Follow: follow, Table: table}, nil
}
