package builtins

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/avscript/avscript/object"
)

func (c *Catalog) registerStrings() {
	c.add("string.length", func(args []object.Value) (object.Value, error) {
		s, err := str1("string.length", args)
		if err != nil {
			return nil, err
		}
		return object.Int(len(s)), nil
	})
	c.add("string.contains", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("string.contains", 2, len(args))
		}
		return object.Bool(strings.Contains(args[0].String(), args[1].String())), nil
	})
	c.add("string.startsWith", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("string.startsWith", 2, len(args))
		}
		return object.Bool(strings.HasPrefix(args[0].String(), args[1].String())), nil
	})
	c.add("string.endsWith", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("string.endsWith", 2, len(args))
		}
		return object.Bool(strings.HasSuffix(args[0].String(), args[1].String())), nil
	})
	c.add("string.substring", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 && len(args) != 3 {
			return nil, fmt.Errorf("string.substring: expected 2 or 3 arguments, got %d", len(args))
		}
		s := args[0].String()
		begin, ok := asInt(args[1])
		if !ok {
			return nil, fmt.Errorf("string.substring: begin must be an integer")
		}
		end := int64(len(s))
		if len(args) == 3 {
			e, ok := asInt(args[2])
			if !ok {
				return nil, fmt.Errorf("string.substring: end must be an integer")
			}
			end = e
		}
		if begin < 0 || end > int64(len(s)) || begin > end {
			return nil, fmt.Errorf("string.substring: index out of range")
		}
		return object.String(s[begin:end]), nil
	})
	c.add("string.indexOf", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("string.indexOf", 2, len(args))
		}
		return object.Int(strings.Index(args[0].String(), args[1].String())), nil
	})
	c.add("string.split", func(args []object.Value) (object.Value, error) {
		if len(args) < 2 || len(args) > 3 {
			return nil, fmt.Errorf("string.split: expected 2 or 3 arguments, got %d", len(args))
		}
		s := args[0].String()
		re, err := regexp.Compile(args[1].String())
		if err != nil {
			return nil, fmt.Errorf("string.split: invalid pattern: %s", err)
		}
		limit := -1
		if len(args) == 3 {
			n, ok := asInt(args[2])
			if !ok {
				return nil, fmt.Errorf("string.split: limit must be an integer")
			}
			limit = int(n)
		}
		parts := re.Split(s, limit)
		items := make([]object.Value, len(parts))
		for i, p := range parts {
			items[i] = object.String(p)
		}
		return object.NewList(items...), nil
	})
	c.add("string.join", func(args []object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, argErr("string.join", 2, len(args))
		}
		list, ok := asList(args[0])
		if !ok {
			return nil, fmt.Errorf("string.join: first argument must be a list")
		}
		parts := make([]string, len(list.Items))
		for i, v := range list.Items {
			parts[i] = v.String()
		}
		return object.String(strings.Join(parts, args[1].String())), nil
	})
	c.add("string.replace_first", func(args []object.Value) (object.Value, error) {
		if len(args) != 3 {
			return nil, argErr("string.replace_first", 3, len(args))
		}
		re, err := regexp.Compile(args[1].String())
		if err != nil {
			return nil, fmt.Errorf("string.replace_first: invalid pattern: %s", err)
		}
		s := args[0].String()
		done := false
		out := re.ReplaceAllStringFunc(s, func(m string) string {
			if done {
				return m
			}
			done = true
			return args[2].String()
		})
		return object.String(out), nil
	})
	c.add("string.replace_all", func(args []object.Value) (object.Value, error) {
		if len(args) != 3 {
			return nil, argErr("string.replace_all", 3, len(args))
		}
		re, err := regexp.Compile(args[1].String())
		if err != nil {
			return nil, fmt.Errorf("string.replace_all: invalid pattern: %s", err)
		}
		return object.String(re.ReplaceAllString(args[0].String(), args[2].String())), nil
	})
}

func str1(name string, args []object.Value) (string, error) {
	if len(args) != 1 {
		return "", argErr(name, 1, len(args))
	}
	return args[0].String(), nil
}
