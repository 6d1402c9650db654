package builtins

import (
	"fmt"
	"sort"

	"github.com/avscript/avscript/object"
)

func (c *Catalog) registerCollections(ap Applier) {
	c.add("range", func(args []object.Value) (object.Value, error) {
		if len(args) < 2 || len(args) > 3 {
			return nil, fmt.Errorf("range: expected 2 or 3 arguments, got %d", len(args))
		}
		start, ok1 := asInt(args[0])
		end, ok2 := asInt(args[1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("range: start and end must be numeric")
		}
		step := int64(1)
		if len(args) == 3 {
			s, ok := asInt(args[2])
			if !ok || s == 0 {
				return nil, fmt.Errorf("range: step must be a nonzero integer")
			}
			step = s
		}
		var items []object.Value
		if step > 0 {
			for i := start; i < end; i += step {
				items = append(items, object.Int(i))
			}
		} else {
			for i := start; i > end; i += step {
				items = append(items, object.Int(i))
			}
		}
		return object.NewList(items...), nil
	})

	c.add("tuple", func(args []object.Value) (object.Value, error) {
		return object.NewList(args...), nil
	})

	c.add("min", func(args []object.Value) (object.Value, error) {
		return minMax(args, true)
	})
	c.add("max", func(args []object.Value) (object.Value, error) {
		return minMax(args, false)
	})

	c.add("count", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("count", 1, len(args))
		}
		return object.Int(lengthOf(args[0])), nil
	})
	c.add("is_empty", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("is_empty", 1, len(args))
		}
		return object.Bool(lengthOf(args[0]) == 0), nil
	})

	c.add("seq.list", func(args []object.Value) (object.Value, error) {
		return object.NewList(args...), nil
	})
	c.add("seq.set", func(args []object.Value) (object.Value, error) {
		s := object.NewSet()
		for _, a := range args {
			s.Add(a)
		}
		return s, nil
	})
	c.add("seq.map", func(args []object.Value) (object.Value, error) {
		if len(args)%2 != 0 {
			return nil, fmt.Errorf("seq.map: expected an even number of key, value arguments")
		}
		m := object.NewMap()
		for i := 0; i < len(args); i += 2 {
			m.Put(args[i].String(), args[i+1])
		}
		return m, nil
	})
	c.add("seq.add", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("seq.add", 2, len(args))
		}
		switch container := args[0].(type) {
		case *object.List:
			container.Items = append(container.Items, args[1])
			return container, nil
		case *object.Set:
			container.Add(args[1])
			return container, nil
		default:
			return nil, fmt.Errorf("seq.add: unsupported container type %s", object.TypeName(args[0]))
		}
	})
	c.add("seq.get", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("seq.get", 2, len(args))
		}
		switch container := args[0].(type) {
		case *object.List:
			idx, ok := asInt(args[1])
			if !ok {
				return object.Undefined, nil
			}
			return container.Get(int(idx)), nil
		case *object.Map:
			return container.Get(args[1].String()), nil
		default:
			return object.Undefined, nil
		}
	})
	c.add("seq.contains_key", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("seq.contains_key", 2, len(args))
		}
		m, ok := args[0].(*object.Map)
		if !ok {
			return object.Bool(false), nil
		}
		return object.Bool(m.Has(args[1].String())), nil
	})
	c.add("seq.remove", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("seq.remove", 2, len(args))
		}
		switch container := args[0].(type) {
		case *object.Map:
			container.Delete(args[1].String())
			return container, nil
		case *object.Set:
			container.Remove(args[1])
			return container, nil
		default:
			return nil, fmt.Errorf("seq.remove: unsupported container type %s", object.TypeName(args[0]))
		}
	})

	c.add("map", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("map", 2, len(args))
		}
		list, ok := asList(args[0])
		if !ok {
			return nil, fmt.Errorf("map: first argument must be a list")
		}
		out := make([]object.Value, len(list.Items))
		for i, item := range list.Items {
			v, err := ap.Apply(args[1], []object.Value{item})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return object.NewList(out...), nil
	})
	c.add("filter", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("filter", 2, len(args))
		}
		list, ok := asList(args[0])
		if !ok {
			return nil, fmt.Errorf("filter: first argument must be a list")
		}
		var out []object.Value
		for _, item := range list.Items {
			v, err := ap.Apply(args[1], []object.Value{item})
			if err != nil {
				return nil, err
			}
			if object.Truthy(v) {
				out = append(out, item)
			}
		}
		return object.NewList(out...), nil
	})
	c.add("reduce", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 && len(args) != 3 {
			return nil, fmt.Errorf("reduce: expected 2 or 3 arguments, got %d", len(args))
		}
		list, ok := asList(args[0])
		if !ok {
			return nil, fmt.Errorf("reduce: first argument must be a list")
		}
		items := list.Items
		var acc object.Value
		if len(args) == 3 {
			acc = args[2]
		} else {
			if len(items) == 0 {
				return nil, fmt.Errorf("reduce: empty list with no initial value")
			}
			acc = items[0]
			items = items[1:]
		}
		for _, item := range items {
			v, err := ap.Apply(args[1], []object.Value{acc, item})
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil
	})
	c.add("include", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("include", 2, len(args))
		}
		switch container := args[0].(type) {
		case *object.List:
			for _, item := range container.Items {
				if compareValues(item, args[1]) == 0 {
					return object.Bool(true), nil
				}
			}
			return object.Bool(false), nil
		case *object.Set:
			return object.Bool(container.Contains(args[1])), nil
		default:
			return object.Bool(false), nil
		}
	})
	c.add("sort", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 && len(args) != 2 {
			return nil, fmt.Errorf("sort: expected 1 or 2 arguments, got %d", len(args))
		}
		list, ok := asList(args[0])
		if !ok {
			return nil, fmt.Errorf("sort: argument must be a list")
		}
		out := append([]object.Value(nil), list.Items...)
		var sortErr error
		sort.SliceStable(out, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			if len(args) == 2 {
				v, err := ap.Apply(args[1], []object.Value{out[i], out[j]})
				if err != nil {
					sortErr = err
					return false
				}
				n, _ := asInt(v)
				return n < 0
			}
			return compareValues(out[i], out[j]) < 0
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return object.NewList(out...), nil
	})
	c.add("reverse", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("reverse", 1, len(args))
		}
		list, ok := asList(args[0])
		if !ok {
			return nil, fmt.Errorf("reverse: argument must be a list")
		}
		out := make([]object.Value, len(list.Items))
		for i, item := range list.Items {
			out[len(out)-1-i] = item
		}
		return object.NewList(out...), nil
	})

	registerPredicateFactory(c, "seq.eq", func(a, b object.Value) bool { return compareValues(a, b) == 0 })
	registerPredicateFactory(c, "seq.neq", func(a, b object.Value) bool { return compareValues(a, b) != 0 })
	registerPredicateFactory(c, "seq.gt", func(a, b object.Value) bool { return compareValues(a, b) > 0 })
	registerPredicateFactory(c, "seq.ge", func(a, b object.Value) bool { return compareValues(a, b) >= 0 })
	registerPredicateFactory(c, "seq.lt", func(a, b object.Value) bool { return compareValues(a, b) < 0 })
	registerPredicateFactory(c, "seq.le", func(a, b object.Value) bool { return compareValues(a, b) <= 0 })

	c.add("seq.nil", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("seq.nil", 1, len(args))
		}
		return object.Bool(object.IsNil(args[0]) || object.IsUndefined(args[0])), nil
	})
	c.add("seq.exists", func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr("seq.exists", 1, len(args))
		}
		return object.Bool(!object.IsUndefined(args[0])), nil
	})
}

// registerPredicateFactory implements spec.md §6's predicate-factory
// entries: `seq.eq(x)` returns a unary callable comparing its argument
// against x, for use with `filter`.
func registerPredicateFactory(c *Catalog, name string, pred func(a, b object.Value) bool) {
	c.add(name, func(args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, argErr(name, 1, len(args))
		}
		bound := args[0]
		return &object.Builtin{
			Name: name + "(...)",
			Fn: func(inner []object.Value) (object.Value, error) {
				if len(inner) != 1 {
					return nil, argErr(name+"(...)", 1, len(inner))
				}
				return object.Bool(pred(inner[0], bound)), nil
			},
		}, nil
	})
}

func lengthOf(v object.Value) int {
	switch c := v.(type) {
	case *object.List:
		return len(c.Items)
	case *object.Map:
		return c.Len()
	case *object.Set:
		return c.Len()
	case object.String:
		return len(string(c))
	default:
		return 0
	}
}

func minMax(args []object.Value, wantMin bool) (object.Value, error) {
	values := args
	if len(args) == 1 {
		if list, ok := asList(args[0]); ok {
			values = list.Items
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("min/max: no values given")
	}
	best := values[0]
	for _, v := range values[1:] {
		c := compareValues(v, best)
		if (wantMin && c < 0) || (!wantMin && c > 0) {
			best = v
		}
	}
	return best, nil
}
