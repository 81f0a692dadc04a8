package cmd

import (
	"fmt"
	"os"

	"github.com/mjc-lang/minijavac/internal/lexer"
	"github.com/mjc-lang/minijavac/pkg/token"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Dump the token stream of a Mini-Java program",
	Long: `Tokenize a Mini-Java source file and print one token per line with its
type, literal, and position. Intended as a debugging aid.`,
	Args: cobra.ExactArgs(1),
	RunE: lexProgram,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func lexProgram(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	l := lexer.New(string(content))
	for {
		tok := l.NextToken()
		if tok.Type == token.NUMBER {
			fmt.Printf("%s  %-10s %q (%v)\n", tok.Pos, tok.Type, tok.Literal, tok.Value)
		} else {
			fmt.Printf("%s  %-10s %q\n", tok.Pos, tok.Type, tok.Literal)
		}
		if tok.Type == token.EOF {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, lerr := range errs {
			fmt.Fprintln(os.Stderr, lerr)
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}
