package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the CLI's reported version; overridable at build time via
// -ldflags, matching the teacher's VERSION global in main/main.go.
var Version = "v0.1.0"

var rootCmd = &cobra.Command{
	Use:     "avscript",
	Short:   "AvScript interpreter and tooling",
	Long:    "avscript runs, checks, and inspects AvScript programs: a dynamically-typed scripting language with closures, pending-execution predicates, and static analysis.",
	Version: Version,
	// No subcommand enters the REPL (spec.md §6 "no arguments enter a REPL").
	RunE: func(c *cobra.Command, args []string) error {
		return replCmd.RunE(c, args)
	},
}

// Execute runs the root command, returning any error so main can set an
// exit code without os.Exit calls scattered through the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "avscript: "+format+"\n", args...)
	os.Exit(1)
}
