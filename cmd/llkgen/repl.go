package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/shadowCow/llkgen/ll1k"
)

// replSession holds the grammar currently loaded into the REPL, so a user
// can swap grammars or lookahead depths mid-session without restarting.
type replSession struct {
	path string
	k    int
	b    *built
}

func newReplCmd() *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "repl [grammar.bnf]",
		Short: "Interactively explore FIRST_k, FOLLOW_k and the parse table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.New("llkgen> ")
			if err != nil {
				return fmt.Errorf("repl: %w", err)
			}
			defer rl.Close()

			sess := &replSession{k: k}
			if len(args) == 1 {
				if err := sess.load(args[0], k); err != nil {
					pterm.Error.Println(err.Error())
				}
			}

			pterm.Info.Println(`commands: load <file>  k <n>  first  follow  table  quit`)
			for {
				line, err := rl.Readline()
				if err != nil {
					break
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if sess.dispatch(line) {
					break
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", 1, "initial lookahead depth")
	return cmd
}

func (s *replSession) load(path string, k int) error {
	b, err := buildFromFile(path, k)
	if err != nil {
		return err
	}
	s.path, s.k, s.b = path, k, b
	pterm.Success.Printfln("loaded %s (k=%d, start=%s)", path, k, b.Table.Start)
	return nil
}

// dispatch runs one REPL command line and reports whether the session
// should exit.
func (s *replSession) dispatch(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "quit", "exit":
		return true
	case "load":
		if len(fields) != 2 {
			pterm.Error.Println("usage: load <grammar-file>")
			return false
		}
		if err := s.load(fields[1], s.k); err != nil {
			pterm.Error.Println(err.Error())
		}
	case "k":
		if len(fields) != 2 {
			pterm.Error.Println("usage: k <n>")
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			pterm.Error.Println("k must be a positive integer")
			return false
		}
		if s.path == "" {
			s.k = n
			return false
		}
		if err := s.load(s.path, n); err != nil {
			pterm.Error.Println(err.Error())
		}
	case "first":
		if !s.requireLoaded() {
			return false
		}
		ll1k.PrintFirstSets(s.b.First)
	case "follow":
		if !s.requireLoaded() {
			return false
		}
		ll1k.PrintFollowSets(s.b.Follow)
	case "table":
		if !s.requireLoaded() {
			return false
		}
		ll1k.PrintParseTable(s.b.Table)
	default:
		pterm.Error.Printfln("unknown command %q", fields[0])
	}
	return false
}

func (s *replSession) requireLoaded() bool {
	if s.b == nil {
		pterm.Error.Println("no grammar loaded, try: load <grammar-file>")
		return false
	}
	return true
}
