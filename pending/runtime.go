package pending

import (
	"fmt"

	"github.com/avscript/avscript/interp"
	"github.com/avscript/avscript/object"
	"github.com/avscript/avscript/parser"
	"github.com/avscript/avscript/scope"
)

// InterpRuntime is the default Runtime implementation, satisfying
// spec.md's "re-parses and evaluates a textual expression" contract by
// reentering parser.ParseExpression and the tree-walking interpreter.
type InterpRuntime struct {
	It     *interp.Interp
	Global *scope.Frame
}

func (r *InterpRuntime) Run(text string, context map[string]interface{}) (bool, error) {
	expr, err := parser.ParseExpression(text)
	if err != nil {
		return false, err
	}
	fr := scope.New(r.Global)
	for name, v := range context {
		value, ok := v.(object.Value)
		if !ok {
			return false, fmt.Errorf("pending: context value for %q is not a script value", name)
		}
		fr.Declare(name, value)
	}
	v, err := r.It.Eval(expr, fr)
	if err != nil {
		return false, err
	}
	b, ok := v.(object.Bool)
	if !ok {
		return false, fmt.Errorf("pending: %q evaluated to a %s, not a boolean", text, object.TypeName(v))
	}
	return bool(b), nil
}
