// Package object defines the runtime value model shared by the
// interpreter, pending-execution engine, and built-in catalog (spec.md
// §3 "Values"). It generalizes go-mix's objects.GoMixObject interface
// (GetType/ToString/ToObject) into Value (Kind/String/Inspect), and adds
// the value kinds spec.md names that go-mix never needed: arbitrary
// precision integers, compiled regular expressions, and a first-class
// `undefined` distinct from nil.
package object

import (
	"math/big"
	"regexp"
	"strconv"
)

// Kind identifies a Value's runtime type, mirroring go-mix's GoMixType.
type Kind string

const (
	IntKind      Kind = "long"
	FloatKind    Kind = "double"
	BigIntKind   Kind = "bigint"
	StringKind   Kind = "string"
	BoolKind     Kind = "boolean"
	NilKind      Kind = "nil"
	UndefKind    Kind = "undefined"
	RegexKind    Kind = "pattern"
	ListKind     Kind = "list"
	MapKind      Kind = "map"
	SetKind      Kind = "set"
	ClosureKind  Kind = "function"
	BuiltinKind  Kind = "function"
	SignalKind   Kind = "signal"
)

// Value is implemented by every runtime value.
type Value interface {
	Kind() Kind
	String() string  // human-readable form, used by string concatenation/print
	Inspect() string // debug form, used by the REPL's result echo
}

// Int is a 64-bit integer (spec.md's "Integers").
type Int int64

func (Int) Kind() Kind         { return IntKind }
func (v Int) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Int) Inspect() string  { return v.String() }

// Float is a 64-bit floating point number, also used for the `M`-suffixed
// decimal literals since the engine has no distinct runtime decimal
// representation (spec.md §9 Open Questions).
type Float float64

func (Float) Kind() Kind        { return FloatKind }
func (v Float) String() string  { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Float) Inspect() string { return v.String() }

// BigInt is an arbitrary-precision integer from an `N`-suffixed literal.
type BigInt struct{ V *big.Int }

func (BigInt) Kind() Kind        { return BigIntKind }
func (v BigInt) String() string  { return v.V.String() }
func (v BigInt) Inspect() string { return v.V.String() + "N" }

// String is a text value.
type String string

func (String) Kind() Kind        { return StringKind }
func (v String) String() string  { return string(v) }
func (v String) Inspect() string { return strconv.Quote(string(v)) }

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind        { return BoolKind }
func (v Bool) String() string  { return strconv.FormatBool(bool(v)) }
func (v Bool) Inspect() string { return v.String() }

// nilValue and undefValue are the two singleton non-values spec.md §3
// requires to stay distinct: nil is a first-class value, undefined marks
// an identifier with no binding anywhere in the frame chain.
type nilValue struct{}

func (nilValue) Kind() Kind        { return NilKind }
func (nilValue) String() string    { return "nil" }
func (nilValue) Inspect() string   { return "nil" }

type undefValue struct{}

func (undefValue) Kind() Kind      { return UndefKind }
func (undefValue) String() string  { return "undefined" }
func (undefValue) Inspect() string { return "undefined" }

// Nil and Undefined are the two singletons above, exported for comparison
// and construction.
var (
	Nil       Value = nilValue{}
	Undefined Value = undefValue{}
)

// IsNil and IsUndefined test for the two singletons by identity of kind,
// since both are empty structs and compare equal to themselves.
func IsNil(v Value) bool       { _, ok := v.(nilValue); return ok }
func IsUndefined(v Value) bool { _, ok := v.(undefValue); return ok }

// Regex wraps a compiled pattern for `=~` matching and /pattern/ literals.
type Regex struct {
	Source string
	Re     *regexp.Regexp
}

func (Regex) Kind() Kind        { return RegexKind }
func (v Regex) String() string  { return v.Source }
func (v Regex) Inspect() string { return "/" + v.Source + "/" }

// Truthy implements the engine's single notion of "truth" used by `if`,
// `while`, `&&`, `||`, and `!`: only boolean false and the two "no value"
// singletons are false; everything else, including 0 and "", is true.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case nilValue, undefValue:
		return false
	default:
		return true
	}
}

// TypeName renders a Value's Kind the way `type(x)` (builtins catalog)
// reports it to scripts.
func TypeName(v Value) string { return string(v.Kind()) }
