// Command avscript is the command-line front end for the AvScript engine
// (spec.md §6 "CLI surface"), restructured from go-mix's main/main.go raw
// os.Args switch onto a cobra command tree (cmd/avscript/cmd), the pattern
// CWBudde-go-dws uses for its dwscript binary.
package main

import (
	"os"

	"github.com/avscript/avscript/cmd/avscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
