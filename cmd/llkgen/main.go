package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "llkgen",
		Short: "Generate LL(k) parser tables and runtimes from a BNF grammar",
	}

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newReplCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
