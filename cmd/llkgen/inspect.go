package main

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/shadowCow/llkgen/ll1k"
)

func newInspectCmd() *cobra.Command {
	var k int
	var showFirst bool
	var showFollow bool
	var showTable bool

	cmd := &cobra.Command{
		Use:   "inspect <grammar.bnf>",
		Short: "Print FIRST_k, FOLLOW_k and the parse table for a grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := buildFromFile(args[0], k)
			if err != nil {
				return err
			}

			if !showFirst && !showFollow && !showTable {
				showFirst, showFollow, showTable = true, true, true
			}

			if showFirst {
				pterm.DefaultSection.Println("FIRST_" + strconv.Itoa(k))
				ll1k.PrintFirstSets(b.First)
			}
			if showFollow {
				pterm.DefaultSection.Println("FOLLOW_" + strconv.Itoa(k))
				ll1k.PrintFollowSets(b.Follow)
			}
			if showTable {
				pterm.DefaultSection.Println("parse table")
				ll1k.PrintParseTable(b.Table)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", 1, "lookahead depth")
	cmd.Flags().BoolVar(&showFirst, "first", false, "show FIRST_k sets")
	cmd.Flags().BoolVar(&showFollow, "follow", false, "show FOLLOW_k sets")
	cmd.Flags().BoolVar(&showTable, "table", false, "show the parse table")

	return cmd
}
