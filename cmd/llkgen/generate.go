package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shadowCow/llkgen/emit"
)

func newGenerateCmd() *cobra.Command {
	var k int
	var imports string
	var outDir string
	var pkg string
	var configPath string

	cmd := &cobra.Command{
		Use:   "generate <grammar.bnf>",
		Short: "Generate an LL(k) parser table and runtime from a BNF grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("k") {
				k = cfg.K
			}
			if !cmd.Flags().Changed("imports") {
				imports = cfg.Imports
			}
			if !cmd.Flags().Changed("out") {
				outDir = cfg.OutDir
			}

			b, err := buildFromFile(args[0], k)
			if err != nil {
				return err
			}

			src, err := emit.Generate(b.Grammar, b.Table, k, pkg, imports)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			outPath := filepath.Join(outDir, "generated_parser.go")
			if err := os.WriteFile(outPath, []byte(src), 0644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Printf("wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", 1, "lookahead depth")
	cmd.Flags().StringVar(&imports, "imports", "", "extra import statement(s) to embed verbatim")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&pkg, "package", "llkparser", "package name for the generated file")
	cmd.Flags().StringVar(&configPath, "config", ".llkgen.toml", "project config file")

	return cmd
}
