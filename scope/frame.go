// Package scope implements the environment chain (spec.md §3
// "Environment") and the closure value that captures a link in it. It
// generalizes go-mix's scope/scope.go, trading that package's
// const/let-vs-var bookkeeping (AvScript has none of those distinctions)
// for exactly the lookup/assign/declare algorithm spec.md §3 and §4.4
// describe.
package scope

import (
	"github.com/avscript/avscript/ast"
	"github.com/avscript/avscript/object"
)

// Frame is one link in the environment chain: a mapping from identifier
// to value, plus a pointer to the enclosing frame. A nil Parent marks the
// global frame.
type Frame struct {
	vars   map[string]object.Value
	Parent *Frame
}

// New creates a frame that is a child of parent (nil for the global frame).
func New(parent *Frame) *Frame {
	return &Frame{vars: make(map[string]object.Value), Parent: parent}
}

// Lookup walks this frame and its ancestors, returning the nearest
// binding. A missing binding reports ok=false — the interpreter turns
// that into object.Undefined at the call site (spec.md §3's invariant
// that undefined is diagnostic, not nil).
func (f *Frame) Lookup(name string) (object.Value, bool) {
	for fr := f; fr != nil; fr = fr.Parent {
		if v, ok := fr.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Declare creates or overwrites a binding in this frame only — used by
// `let`, `fn`, and parameter binding on function call.
func (f *Frame) Declare(name string, v object.Value) {
	f.vars[name] = v
}

// Assign mutates the nearest existing binding for name, walking the chain
// from f outward. If no binding exists anywhere, it creates one in f
// itself (spec.md §3: "assignment to an existing name mutates the nearest
// binding, otherwise creates a binding in the current frame").
func (f *Frame) Assign(name string, v object.Value) {
	for fr := f; fr != nil; fr = fr.Parent {
		if _, ok := fr.vars[name]; ok {
			fr.vars[name] = v
			return
		}
	}
	f.vars[name] = v
}

// Global walks to the terminal ancestor frame.
func (f *Frame) Global() *Frame {
	fr := f
	for fr.Parent != nil {
		fr = fr.Parent
	}
	return fr
}

// Names returns every identifier visible from f, nearest frame first, used
// by the REPL's `.vars` command.
func (f *Frame) Names() []string {
	seen := make(map[string]bool)
	var out []string
	for fr := f; fr != nil; fr = fr.Parent {
		for name := range fr.vars {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// Closure pairs a function body with the frame that was current when the
// `lambda` or `fn` was evaluated (spec.md §3 "Closure"). It implements
// object.Value structurally (Kind/String/Inspect) without object needing
// to import scope, avoiding an import cycle between the value model and
// the environment it closes over.
type Closure struct {
	Name       string
	Params     []string
	LambdaBody ast.Expr   // set when IsLambda
	FnBody     []ast.Stmt // set when !IsLambda
	IsLambda   bool
	Captured   *Frame
}

func (*Closure) Kind() object.Kind { return object.ClosureKind }

func (c *Closure) String() string {
	name := c.Name
	if name == "" {
		name = "lambda"
	}
	return "function(" + name + ")"
}

func (c *Closure) Inspect() string {
	return "<function " + c.String() + ">"
}
