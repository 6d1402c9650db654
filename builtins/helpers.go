package builtins

import (
	"math/big"
	"strconv"

	"github.com/avscript/avscript/object"
)

func parseFloatString(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func asInt(v object.Value) (int64, bool) {
	switch n := v.(type) {
	case object.Int:
		return int64(n), true
	case object.Float:
		return int64(n), true
	case object.BigInt:
		if n.V.IsInt64() {
			return n.V.Int64(), true
		}
	case object.String:
		var i big.Int
		if _, ok := i.SetString(string(n), 10); ok && i.IsInt64() {
			return i.Int64(), true
		}
	}
	return 0, false
}

func asFloat(v object.Value) (float64, bool) {
	switch n := v.(type) {
	case object.Int:
		return float64(n), true
	case object.Float:
		return float64(n), true
	case object.BigInt:
		f := new(big.Float).SetInt(n.V)
		r, _ := f.Float64()
		return r, true
	case object.String:
		f, ok := parseFloatString(string(n))
		return f, ok
	}
	return 0, false
}

// compareValues returns -1/0/1, ordering numerics by value and everything
// else by String() form — the catalog's `cmp` and the `sort`/`seq.*`
// comparison predicates all reduce to this one routine.
func compareValues(a, b object.Value) int {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok && isNumeric(a) && isNumeric(b) {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as, bs := a.String(), b.String()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func isNumeric(v object.Value) bool {
	switch v.(type) {
	case object.Int, object.Float, object.BigInt:
		return true
	}
	return false
}

func asList(v object.Value) (*object.List, bool) {
	l, ok := v.(*object.List)
	return l, ok
}
