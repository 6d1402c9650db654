// Package builtins implements the built-in catalog contract (spec.md §6):
// a flat, dotted-name set of host callables merged into the interpreter's
// global frame. Grounded on go-mix's std package (std/builtins.go's
// Builtin{Name, Callback} pair and the per-concern file layout — arrays.go,
// maps.go, math.go, strings.go), adapted from GoMix's writer-threaded
// CallbackFunc to plain Go closures over a single io.Writer captured at
// catalog construction time.
package builtins

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/avscript/avscript/object"
)

// Applier lets a builtin (map, filter, reduce, sort with a comparator, the
// seq.* predicate factories) call back into a user-supplied function
// without this package importing interp — the same inversion go-mix's
// Runtime.CallFunction gives its builtins.
type Applier interface {
	Apply(fn object.Value, args []object.Value) (object.Value, error)
}

// Catalog builds every entry and exposes both Install (for wiring into a
// scope.Frame-shaped target) and Names (for the static analyzer's seeded
// symbol table).
type Catalog struct {
	entries map[string]object.Value
}

// Declarer is satisfied by scope.Frame; kept as a narrow interface here so
// builtins does not need to import scope.
type Declarer interface {
	Declare(name string, v object.Value)
}

// NewCatalog constructs the full builtin set. w receives print/println/p
// output; ap services every builtin that needs to invoke a script-level
// function value.
func NewCatalog(w Writer, ap Applier) *Catalog {
	c := &Catalog{entries: make(map[string]object.Value)}
	c.registerCore(w)
	c.registerCollections(ap)
	c.registerStrings()
	c.registerMath()
	return c
}

// Writer is the narrow io.Writer-shaped interface print/println/p write to.
type Writer interface {
	Write(p []byte) (int, error)
}

func (c *Catalog) add(name string, fn func(args []object.Value) (object.Value, error)) {
	c.entries[name] = &object.Builtin{Name: name, Fn: fn}
}

// Install declares every catalog entry into fr.
func (c *Catalog) Install(fr Declarer) {
	for name, v := range c.entries {
		fr.Declare(name, v)
	}
}

// Names returns every catalog key, used by the analyzer to seed its symbol
// table and by the pending-execution engine to exclude built-ins from its
// free-identifier extraction (spec.md §4.5/§4.6).
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	return names
}

func argErr(name string, want int, got int) error {
	return fmt.Errorf("%s: expected %d argument(s), got %d", name, want, got)
}

func (c *Catalog) registerCore(w Writer) {
	c.add("print", func(args []object.Value) (object.Value, error) {
		for _, a := range args {
			fmt.Fprint(w, a.String())
		}
		return object.Nil, nil
	})
	c.add("println", func(args []object.Value) (object.Value, error) {
		for _, a := range args {
			fmt.Fprint(w, a.String())
		}
		fmt.Fprintln(w)
		return object.Nil, nil
	})
	c.add("p", func(args []object.Value) (object.Value, error) {
		for i, a := range args {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, a.Inspect())
		}
		fmt.Fprintln(w)
		return object.Nil, nil
	})
	c.add("sysdate", func(args []object.Value) (object.Value, error) {
		return object.String(time.Now().Format("2006-01-02")), nil
	})
	c.add("now", func(args []object.Value) (object.Value, error) {
		return object.Int(time.Now().UnixMilli()), nil
	})
	c.add("rand", func(args []object.Value) (object.Value, error) {
		if len(args) == 0 {
			return object.Float(rand.Float64()), nil
		}
		n, ok := asInt(args[0])
		if !ok || n <= 0 {
			return nil, fmt.Errorf("rand: argument must be a positive integer")
		}
		return object.Int(rand.Int63n(n)), nil
	})
	c.add("long", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("long", 1, len(args))
		}
		n, ok := asInt(args[0])
		if !ok {
			return nil, fmt.Errorf("long: cannot convert %s", object.TypeName(args[0]))
		}
		return object.Int(n), nil
	})
	c.add("double", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("double", 1, len(args))
		}
		f, ok := asFloat(args[0])
		if !ok {
			return nil, fmt.Errorf("double: cannot convert %s", object.TypeName(args[0]))
		}
		return object.Float(f), nil
	})
	c.add("boolean", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("boolean", 1, len(args))
		}
		return object.Bool(object.Truthy(args[0])), nil
	})
	c.add("str", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("str", 1, len(args))
		}
		return object.String(args[0].String()), nil
	})
	c.add("identity", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("identity", 1, len(args))
		}
		return args[0], nil
	})
	c.add("type", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("type", 1, len(args))
		}
		return object.String(object.TypeName(args[0])), nil
	})
	c.add("is_def", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("is_def", 1, len(args))
		}
		return object.Bool(!object.IsUndefined(args[0])), nil
	})
	c.add("cmp", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("cmp", 2, len(args))
		}
		return object.Int(compareValues(args[0], args[1])), nil
	})
}
