package cmd

import (
	"fmt"
	"os"

	"github.com/avscript/avscript/engine"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an AvScript file or inline expression",
	Long: `Execute an AvScript program from a file or inline expression.

Examples:
  avscript run script.av
  avscript run -e "println(1 + 2)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate an inline snippet (shorthand for `run -e`)",
	RunE: func(c *cobra.Command, args []string) error {
		if evalExpr == "" {
			return fmt.Errorf("eval requires -e \"<code>\"")
		}
		return runScript(c, nil)
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "inline code to evaluate")
}

func runScript(_ *cobra.Command, args []string) error {
	source, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	eng := engine.New(os.Stdout)
	v, err := eng.Execute(source, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return err
	}
	if v != nil {
		fmt.Println(v.Inspect())
	}
	return nil
}

// readSource resolves the script text from either -e, a file argument, or
// neither (an error — the bare-REPL case is handled by cmd/repl.go).
func readSource(inline string, args []string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("either provide a file path or use -e for inline code")
}
