package cmd

import (
	"fmt"
	"os"

	"github.com/avscript/avscript/analyzer"
	"github.com/avscript/avscript/engine"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Run the static analyzer over a file and print diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	eng := engine.New(os.Stdout)
	diags := eng.Check(string(content))

	hasError := false
	for _, d := range diags {
		fmt.Printf("[%s] line %d: %s\n", d.Severity, d.Line, d.Message)
		if d.Severity == analyzer.SeverityError {
			hasError = true
		}
	}
	if hasError {
		return fmt.Errorf("analyzer reported error-severity diagnostics")
	}
	return nil
}
