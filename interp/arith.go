package interp

import (
	"math/big"
	"regexp"
	"strconv"

	"github.com/avscript/avscript/lexer"
	"github.com/avscript/avscript/object"
)

// parseNumericString mirrors builtins.parseFloatString, which is unexported
// there; pending.dottedName likewise duplicates the unexported
// interp.foldDottedName.
func parseNumericString(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func compileRegex(pattern string) (object.Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return object.Regex{}, err
	}
	return object.Regex{Source: pattern, Re: re}, nil
}

// fullMatch implements `=~`'s "tests a full match" rule: the pattern must
// consume the entire string, not merely appear somewhere in it.
func fullMatch(re object.Regex, s string) bool {
	anchored, err := regexp.Compile(`^(?:` + re.Re.String() + `)$`)
	if err != nil {
		return false
	}
	return anchored.MatchString(s)
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
	}
	return 0, false
}

func negate(v object.Value, line int) (object.Value, error) {
	switch n := v.(type) {
	case object.Int:
		return object.Int(-n), nil
	case object.Float:
		return object.Float(-n), nil
	case object.BigInt:
		return object.BigInt{V: new(big.Int).Neg(n.V)}, nil
	default:
		return nil, runtimeErr(line, "'-' requires a numeric operand, got %s", object.TypeName(v))
	}
}

func isNumeric(v object.Value) bool {
	switch v.(type) {
	case object.Int, object.Float, object.BigInt:
		return true
	}
	return false
}

func toFloat(v object.Value) float64 {
	switch n := v.(type) {
	case object.Int:
		return float64(n)
	case object.Float:
		return float64(n)
	case object.BigInt:
		f := new(big.Float).SetInt(n.V)
		r, _ := f.Float64()
		return r
	}
	return 0
}

func toBig(v object.Value) *big.Int {
	switch n := v.(type) {
	case object.Int:
		return big.NewInt(int64(n))
	case object.BigInt:
		return n.V
	}
	return nil
}

// applyBinary implements spec.md §4.4's arithmetic, bitwise, comparison,
// and equality operators. Numeric promotion: bigint with int yields bigint,
// float with int or float yields float, int with int stays int, and mixing
// bigint with float is a runtime error. '+' is overloaded for string
// concatenation whenever either operand is a string.
func applyBinary(op lexer.Kind, left, right object.Value, line int) (object.Value, error) {
	switch op {
	case lexer.PLUS:
		if _, ok := left.(object.String); ok {
			return object.String(left.String() + right.String()), nil
		}
		if _, ok := right.(object.String); ok {
			return object.String(left.String() + right.String()), nil
		}
		return arith(op, left, right, line)
	case lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PCT, lexer.POW:
		return arith(op, left, right, line)
	case lexer.AMP, lexer.PIPE, lexer.CARET, lexer.SHL, lexer.SHR, lexer.USHR:
		return bitwise(op, left, right, line)
	case lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		return compareOrdered(op, left, right, line)
	case lexer.EQ:
		return object.Bool(looseEquals(left, right)), nil
	case lexer.NEQ:
		return object.Bool(!looseEquals(left, right)), nil
	default:
		return nil, runtimeErr(line, "unhandled binary operator %s", op)
	}
}

func arith(op lexer.Kind, left, right object.Value, line int) (object.Value, error) {
	if !isNumeric(left) || !isNumeric(right) {
		return nil, runtimeErr(line, "'%s' requires numeric operands, got %s and %s",
			op, object.TypeName(left), object.TypeName(right))
	}
	_, lBig := left.(object.BigInt)
	_, rBig := right.(object.BigInt)
	_, lFloat := left.(object.Float)
	_, rFloat := right.(object.Float)

	if lBig || rBig {
		if lFloat || rFloat {
			return nil, runtimeErr(line, "cannot mix bigint and double in '%s'", op)
		}
		a, b := toBig(left), toBig(right)
		res := new(big.Int)
		switch op {
		case lexer.PLUS:
			res.Add(a, b)
		case lexer.MINUS:
			res.Sub(a, b)
		case lexer.STAR:
			res.Mul(a, b)
		case lexer.SLASH:
			if b.Sign() == 0 {
				return nil, runtimeErr(line, "division by zero")
			}
			res.Div(a, b)
		case lexer.PCT:
			if b.Sign() == 0 {
				return nil, runtimeErr(line, "division by zero")
			}
			res.Mod(a, b)
		case lexer.POW:
			res.Exp(a, b, nil)
		}
		return object.BigInt{V: res}, nil
	}

	if lFloat || rFloat {
		a, b := toFloat(left), toFloat(right)
		switch op {
		case lexer.PLUS:
			return object.Float(a + b), nil
		case lexer.MINUS:
			return object.Float(a - b), nil
		case lexer.STAR:
			return object.Float(a * b), nil
		case lexer.SLASH:
			return object.Float(a / b), nil
		case lexer.PCT:
			return object.Float(floatMod(a, b)), nil
		case lexer.POW:
			return object.Float(floatPow(a, b)), nil
		}
	}

	a, b := int64(left.(object.Int)), int64(right.(object.Int))
	switch op {
	case lexer.PLUS:
		return object.Int(a + b), nil
	case lexer.MINUS:
		return object.Int(a - b), nil
	case lexer.STAR:
		return object.Int(a * b), nil
	case lexer.SLASH:
		if b == 0 {
			return nil, runtimeErr(line, "division by zero")
		}
		return object.Int(a / b), nil
	case lexer.PCT:
		if b == 0 {
			return nil, runtimeErr(line, "division by zero")
		}
		return object.Int(a % b), nil
	case lexer.POW:
		return object.Int(intPow(a, b)), nil
	}
	return nil, runtimeErr(line, "unhandled arithmetic operator %s", op)
}

func intPow(base, exp int64) int64 {
	if exp < 0 {
		return 0
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func floatPow(base, exp float64) float64 {
	result := 1.0
	neg := exp < 0
	if neg {
		exp = -exp
	}
	for i := 0.0; i < exp; i++ {
		result *= base
	}
	if neg {
		return 1 / result
	}
	return result
}

func floatMod(a, b float64) float64 {
	for a >= b {
		a -= b
	}
	return a
}

func bitwise(op lexer.Kind, left, right object.Value, line int) (object.Value, error) {
	a, aok := asInt(left)
	b, bok := asInt(right)
	if !aok || !bok {
		return nil, runtimeErr(line, "'%s' requires integer operands", op)
	}
	switch op {
	case lexer.AMP:
		return object.Int(a & b), nil
	case lexer.PIPE:
		return object.Int(a | b), nil
	case lexer.CARET:
		return object.Int(a ^ b), nil
	case lexer.SHL:
		return object.Int(a << uint(b)), nil
	case lexer.SHR:
		return object.Int(a >> uint(b)), nil
	case lexer.USHR:
		return object.Int(int64(uint64(a) >> uint(b))), nil
	default:
		return nil, runtimeErr(line, "unhandled bitwise operator %s", op)
	}
}

func compareOrdered(op lexer.Kind, left, right object.Value, line int) (object.Value, error) {
	var cmp int
	switch {
	case isNumeric(left) && isNumeric(right):
		a, b := toFloat(left), toFloat(right)
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		default:
			cmp = 0
		}
	case left.Kind() == object.StringKind && right.Kind() == object.StringKind:
		ls, rs := left.String(), right.String()
		switch {
		case ls < rs:
			cmp = -1
		case ls > rs:
			cmp = 1
		default:
			cmp = 0
		}
	default:
		return nil, runtimeErr(line, "'%s' cannot compare %s and %s", op, object.TypeName(left), object.TypeName(right))
	}
	switch op {
	case lexer.LT:
		return object.Bool(cmp < 0), nil
	case lexer.LE:
		return object.Bool(cmp <= 0), nil
	case lexer.GT:
		return object.Bool(cmp > 0), nil
	case lexer.GE:
		return object.Bool(cmp >= 0), nil
	default:
		return nil, runtimeErr(line, "unhandled comparison operator %s", op)
	}
}

// looseEquals is a type-coercing equality: numerics compare by value across
// int/float/bigint, a numeric and a parseable string compare by value, nil
// and undefined are each equal only to themselves (spec.md §3's invariant
// that the two stay distinct), and everything else falls back to the host
// value's own identity.
func looseEquals(a, b object.Value) bool {
	if object.IsNil(a) || object.IsNil(b) {
		return object.IsNil(a) && object.IsNil(b)
	}
	if object.IsUndefined(a) || object.IsUndefined(b) {
		return object.IsUndefined(a) && object.IsUndefined(b)
	}
	if isNumeric(a) && isNumeric(b) {
		return toFloat(a) == toFloat(b)
	}
	if as, ok := a.(object.String); ok {
		if isNumeric(b) {
			f, ok := parseNumericString(as.String())
			return ok && f == toFloat(b)
		}
	}
	if bs, ok := b.(object.String); ok {
		if isNumeric(a) {
			f, ok := parseNumericString(bs.String())
			return ok && f == toFloat(a)
		}
	}
	if ab, ok := a.(object.Bool); ok {
		if bb, ok := b.(object.Bool); ok {
			return ab == bb
		}
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if as, ok := a.(object.String); ok {
		bs := b.(object.String)
		return as == bs
	}
	return a == b
}
