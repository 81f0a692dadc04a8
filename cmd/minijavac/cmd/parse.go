package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Mini-Java program and dump its AST",
	Long: `Parse a Mini-Java source file, run semantic analysis, and print the AST
along with the symbol table. Intended as a debugging aid.`,
	Args: cobra.ExactArgs(1),
	RunE: parseProgram,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseProgram(_ *cobra.Command, args []string) error {
	filename := args[0]

	cfg, err := loadConfig(filename)
	if err != nil {
		return err
	}
	// Diagnostics only; the generated object program is discarded.
	artifacts, err := compileSource(filename, cfg)
	if err != nil {
		return err
	}

	fmt.Println(artifacts.AST.String())
	fmt.Println()
	fmt.Println("Symbol table:")
	for addr, name := range artifacts.Symbols.Names() {
		fmt.Printf("%4d  %s\n", addr, name)
	}
	return nil
}
