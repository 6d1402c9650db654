package cmd

import (
	"fmt"
	"os"

	"github.com/avscript/avscript/ast"
	"github.com/avscript/avscript/parser"
	"github.com/spf13/cobra"
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Dump the printer's re-serialization of each top-level statement",
	Args:  cobra.ExactArgs(1),
	RunE:  runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func runAST(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	stmts, err := parser.ParseProgram(string(content))
	if err != nil {
		return err
	}
	for _, s := range stmts {
		fmt.Println(describeStmt(s))
	}
	return nil
}

// describeStmt renders one statement's re-serialized form. Only ast.Print
// (an Expr printer) ships with the natural printer, since spec §8's
// round-trip invariant is an expression-level property; statement kinds
// that carry no single top-level expression get a short structural label
// instead of a full reprint.
func describeStmt(s ast.Stmt) string {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return ast.Print(n.Expr)
	case *ast.Let:
		return "let " + n.Name + " = " + ast.Print(n.Init)
	case *ast.Return:
		if n.HasExpr {
			return "return " + ast.Print(n.Expr)
		}
		return "return"
	case *ast.Throw:
		return "throw " + ast.Print(n.Expr)
	case *ast.If:
		return "if (" + ast.Print(n.Cond) + ") { ... }"
	case *ast.While:
		return "while (" + ast.Print(n.Cond) + ") { ... }"
	case *ast.For:
		return "for ... in " + ast.Print(n.Iterable) + " { ... }"
	case *ast.Fn:
		return "fn " + n.Name + "(...) { ... }"
	case *ast.Block:
		return "{ ... }"
	case *ast.Try:
		return "try { ... }"
	case *ast.Break:
		return "break"
	case *ast.Continue:
		return "continue"
	default:
		return fmt.Sprintf("%T", s)
	}
}
