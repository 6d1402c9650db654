package builtins

import (
	"fmt"
	"math"

	"github.com/avscript/avscript/object"
)

func (c *Catalog) registerMath() {
	unary := func(name string, fn func(float64) float64) {
		c.add(name, func(args []object.Value) (object.Value, error) {
			if len(args) != 1 {
				return nil, argErr(name, 1, len(args))
			}
			f, ok := asFloat(args[0])
			if !ok {
				return nil, fmt.Errorf("%s: argument must be numeric", name)
			}
			return object.Float(fn(f)), nil
		})
	}

	c.add("math.abs", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("math.abs", 1, len(args))
		}
		switch n := args[0].(type) {
		case object.Int:
			if n < 0 {
				return -n, nil
			}
			return n, nil
		default:
			f, ok := asFloat(args[0])
			if !ok {
				return nil, fmt.Errorf("math.abs: argument must be numeric")
			}
			return object.Float(math.Abs(f)), nil
		}
	})
	unary("math.round", math.Round)
	unary("math.floor", math.Floor)
	unary("math.ceil", math.Ceil)
	unary("math.sqrt", math.Sqrt)
	unary("math.log", math.Log)
	unary("math.log10", math.Log10)
	unary("math.sin", math.Sin)
	unary("math.cos", math.Cos)
	unary("math.tan", math.Tan)
	unary("math.asin", math.Asin)
	unary("math.acos", math.Acos)
	unary("math.atan", math.Atan)

	c.add("math.pow", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("math.pow", 2, len(args))
		}
		base, ok1 := asFloat(args[0])
		exp, ok2 := asFloat(args[1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("math.pow: arguments must be numeric")
		}
		return object.Float(math.Pow(base, exp)), nil
	})
}
