// Package interp is the tree-walking interpreter (spec.md §4.4): it
// evaluates the expression tree and executes the statement tree against a
// scope.Frame chain, producing the "script value" spec.md defines.
//
// Grounded on go-mix's eval package (eval/evaluator.go's Evaluator struct,
// eval/eval_statements.go's block execution, eval/eval_loops.go and
// eval/eval_controls.go's tagged control-value propagation), generalized
// from GoMix's semantics to AvScript's: loose equality, string
// interpolation, flattened dotted-name call dispatch, and try/catch/finally
// over a tagged-value throw instead of a typed Error object.
package interp

import (
	"fmt"

	"github.com/avscript/avscript/object"
)

// RuntimeError covers spec.md §7's "Semantic runtime" error kind: "not a
// function", "not iterable", "invalid assignment target", type-incompatible
// operators, and similar.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at line %d: %s", e.Line, e.Message)
}

func runtimeErr(line int, format string, a ...interface{}) error {
	return &RuntimeError{Line: line, Message: fmt.Sprintf(format, a...)}
}

// ThrownValue surfaces a `throw expr` as a Go error wrapping the thrown
// value, so that ordinary Go error propagation carries it up to the
// nearest try/catch (spec.md §7's "User-thrown" kind).
type ThrownValue struct {
	Value object.Value
}

func (t *ThrownValue) Error() string {
	return "uncaught exception: " + t.Value.String()
}
