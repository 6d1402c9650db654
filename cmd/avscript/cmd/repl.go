package cmd

import (
	"os"

	"github.com/avscript/avscript/repl"
	"github.com/spf13/cobra"
)

var banner = `
   ▄▄▄  ▄  ▄   ▄▄▄  ▄▄▄ ▄▄▄ ▄▄▄ ▄▄▄  ▄▄▄
  ▄▀  ▀ ▀▄▄▀   ▄▀ ▀▄ ▄▀ ▀▄▀ ▀▄▀ ▀▄▀ ▄▀  ▀
  ▀▄▄▄   █▄▄   ▀▄▄▀ ▀▄  ▄ ▀ ▄ ▀ ▄ ▀ ▀▄▄▄▀
`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	RunE: func(_ *cobra.Command, _ []string) error {
		r := repl.New(banner, Version, "avscript", "----------------------------------------------------------------", "MIT", "avscript >>> ")
		r.Start(os.Stdin, os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
