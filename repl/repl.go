// Package repl implements the interactive Read-Eval-Print Loop (spec.md
// §6 "CLI surface"). Generalized from go-mix's repl/repl.go: the same
// readline + fatih/color wiring, extended to print static-analyzer
// diagnostics before running a line and to support the dot-command set
// spec.md names (`.help`, `.exit`, `.clear`, `.vars`, `.load <file>`)
// instead of the teacher's single `.exit`.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/avscript/avscript/analyzer"
	"github.com/avscript/avscript/engine"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the display configuration for one interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// New creates a Repl with the given display configuration.
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintln(w, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintf(w, "%s\n", "Welcome to AvScript!")
	cyanColor.Fprintf(w, "%s\n", "Type your code and press enter. Type '.help' for REPL commands.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

func (r *Repl) printHelp(w io.Writer) {
	cyanColor.Fprintln(w, "REPL commands:")
	yellowColor.Fprintln(w, "  .help          show this message")
	yellowColor.Fprintln(w, "  .exit          leave the REPL")
	yellowColor.Fprintln(w, "  .clear         clear the screen")
	yellowColor.Fprintln(w, "  .vars          list names bound in the global scope")
	yellowColor.Fprintln(w, "  .load <file>   read and run a script file")
}

// Start runs the main loop: reads a line, prints analyzer diagnostics for
// it, then runs it through the engine. Output goes to w; input comes from
// readline (bound to stdin regardless of the reader argument, matching
// the teacher's Start signature even though readline owns stdin itself).
func (r *Repl) Start(in io.Reader, w io.Writer) {
	r.printBanner(w)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	eng := engine.New(w)

	for {
		line, err := rl.Readline()
		if err != nil {
			w.Write([]byte("Good Bye!\n"))
			break
		}
		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if r.handleDotCommand(w, rl, eng, line) {
				break
			}
			continue
		}
		rl.SaveHistory(line)
		r.runLine(w, eng, line)
	}
}

// handleDotCommand processes a dot-prefixed REPL command and reports
// whether the session should terminate.
func (r *Repl) handleDotCommand(w io.Writer, rl *readline.Instance, eng *engine.Engine, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".exit":
		w.Write([]byte("Good Bye!\n"))
		return true
	case ".help":
		r.printHelp(w)
	case ".clear":
		fmt.Fprint(w, "\033[H\033[2J")
	case ".vars":
		for _, name := range eng.Global().Names() {
			yellowColor.Fprintln(w, name)
		}
	case ".load":
		if len(fields) < 2 {
			redColor.Fprintln(w, ".load requires a file path")
			return false
		}
		src, err := os.ReadFile(fields[1])
		if err != nil {
			redColor.Fprintf(w, "[FILE ERROR] %v\n", err)
			return false
		}
		r.runLine(w, eng, string(src))
	default:
		redColor.Fprintf(w, "unknown command %q, try .help\n", fields[0])
	}
	return false
}

// runLine prints static-analyzer diagnostics for line, then evaluates it
// and reports the result or error.
func (r *Repl) runLine(w io.Writer, eng *engine.Engine, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(w, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	for _, d := range eng.Check(line) {
		c := yellowColor
		if d.Severity == analyzer.SeverityError {
			c = redColor
		}
		c.Fprintf(w, "[%s] line %d: %s\n", d.Severity, d.Line, d.Message)
	}

	v, err := eng.Execute(line, nil)
	if err != nil {
		redColor.Fprintf(w, "%s\n", err)
		return
	}
	if v != nil {
		yellowColor.Fprintf(w, "%s\n", v.Inspect())
	}
}
