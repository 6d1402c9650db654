package object

import "fmt"

// Builtin is a host-implemented callable merged into the initial
// environment (spec.md §6 "Built-in catalog contract"), mirroring
// go-mix's std.Builtin{Name, Callback} pair.
type Builtin struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (*Builtin) Kind() Kind        { return BuiltinKind }
func (b *Builtin) String() string  { return fmt.Sprintf("builtin(%s)", b.Name) }
func (b *Builtin) Inspect() string { return b.String() }

// SignalKindTag distinguishes the three control-flow signals from spec.md
// §3 "Control-flow signal".
type SignalKindTag string

const (
	SignalBreak    SignalKindTag = "break"
	SignalContinue SignalKindTag = "continue"
	SignalReturn   SignalKindTag = "return"
)

// Signal is the tagged record {kind, value?} used to unwind block
// execution for break/continue/return — a value distinct from every
// ordinary Value, propagated as an ordinary Go return value rather than
// via panic/recover, generalizing go-mix's std.ReturnValue/BreakType/
// ContinueType objects (eval/eval_controls.go, eval/eval_loops.go) into a
// single tagged type covering all three signal kinds.
type Signal struct {
	SigKind SignalKindTag
	Value   Value
}

func (*Signal) Kind() Kind { return SignalKind }
func (s *Signal) String() string {
	return fmt.Sprintf("<signal %s>", s.SigKind)
}
func (s *Signal) Inspect() string { return s.String() }
