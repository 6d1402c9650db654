package cmd

import (
	"fmt"
	"os"

	"github.com/avscript/avscript/lexer"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Dump the lexer's token stream for a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	lx := lexer.New(string(content))
	for {
		tok, err := lx.Next()
		if err != nil {
			return err
		}
		fmt.Printf("%-4d %-10s %q\n", tok.Line, tok.Kind, tok.Lexeme)
		if tok.Kind == lexer.EOF {
			break
		}
	}
	return nil
}
