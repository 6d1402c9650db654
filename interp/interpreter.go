package interp

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/avscript/avscript/ast"
	"github.com/avscript/avscript/lexer"
	"github.com/avscript/avscript/object"
	"github.com/avscript/avscript/scope"
)

// Interp walks the AST against a scope.Frame chain. It carries no mutable
// state of its own beyond what the frames hold, so a single Interp can
// evaluate many independent programs concurrently as long as each uses its
// own global frame — the same statelessness go-mix's Evaluator has.
type Interp struct{}

// New returns a ready-to-use interpreter.
func New() *Interp { return &Interp{} }

// Eval evaluates an expression node against fr.
func (it *Interp) Eval(e ast.Expr, fr *scope.Frame) (object.Value, error) {
	switch n := e.(type) {
	case *ast.Leaf:
		return it.evalLeaf(n, fr)
	case *ast.Node:
		return it.evalNode(n, fr)
	case *ast.Call:
		return it.evalCall(n, fr)
	case *ast.Lambda:
		return &scope.Closure{Params: n.Params, LambdaBody: n.Body, IsLambda: true, Captured: fr}, nil
	default:
		return nil, runtimeErr(e.Line(), "unhandled expression node %T", e)
	}
}

func (it *Interp) evalLeaf(l *ast.Leaf, fr *scope.Frame) (object.Value, error) {
	tok := l.Tok
	switch tok.Kind {
	case lexer.NUMBER:
		return parseNumber(tok)
	case lexer.STRING:
		return it.evalStringLiteral(tok, fr)
	case lexer.REGEX:
		re, err := compileRegex(tok.Lexeme)
		if err != nil {
			return nil, runtimeErr(tok.Line, "invalid pattern /%s/: %s", tok.Lexeme, err)
		}
		return re, nil
	case lexer.TRUE:
		return object.Bool(true), nil
	case lexer.FALSE:
		return object.Bool(false), nil
	case lexer.NIL:
		return object.Nil, nil
	case lexer.IDENT:
		if v, ok := fr.Lookup(tok.Lexeme); ok {
			return v, nil
		}
		return object.Undefined, nil
	default:
		return nil, runtimeErr(tok.Line, "unhandled literal kind %s", tok.Kind)
	}
}

func (it *Interp) evalNode(n *ast.Node, fr *scope.Frame) (object.Value, error) {
	switch len(n.Operands) {
	case 1:
		return it.evalUnary(n, fr)
	case 2:
		return it.evalBinary(n, fr)
	case 3:
		return it.evalTernary(n, fr)
	default:
		return nil, runtimeErr(n.Line(), "malformed operator node")
	}
}

func (it *Interp) evalUnary(n *ast.Node, fr *scope.Frame) (object.Value, error) {
	v, err := it.Eval(n.Operands[0], fr)
	if err != nil {
		return nil, err
	}
	switch n.Op.Kind {
	case lexer.MINUS:
		return negate(v, n.Line())
	case lexer.NOT:
		return object.Bool(!object.Truthy(v)), nil
	case lexer.TILDE:
		i, ok := asInt(v)
		if !ok {
			return nil, runtimeErr(n.Line(), "'~' requires an integer operand")
		}
		return object.Int(^i), nil
	default:
		return nil, runtimeErr(n.Line(), "unhandled unary operator %s", n.Op.Kind)
	}
}

func (it *Interp) evalTernary(n *ast.Node, fr *scope.Frame) (object.Value, error) {
	cond, err := it.Eval(n.Operands[0], fr)
	if err != nil {
		return nil, err
	}
	if object.Truthy(cond) {
		return it.Eval(n.Operands[1], fr)
	}
	return it.Eval(n.Operands[2], fr)
}

func (it *Interp) evalBinary(n *ast.Node, fr *scope.Frame) (object.Value, error) {
	switch n.Op.Kind {
	case lexer.ASSIGN:
		return it.evalAssign(n.Operands[0], n.Operands[1], fr)
	case lexer.DOT:
		left, err := it.Eval(n.Operands[0], fr)
		if err != nil {
			return nil, err
		}
		name := identName(n.Operands[1])
		return propertyGet(left, name), nil
	case lexer.LBRACKET:
		left, err := it.Eval(n.Operands[0], fr)
		if err != nil {
			return nil, err
		}
		idx, err := it.Eval(n.Operands[1], fr)
		if err != nil {
			return nil, err
		}
		return subscriptGet(left, idx), nil
	case lexer.AND:
		left, err := it.Eval(n.Operands[0], fr)
		if err != nil {
			return nil, err
		}
		if !object.Truthy(left) {
			return object.Bool(false), nil
		}
		right, err := it.Eval(n.Operands[1], fr)
		if err != nil {
			return nil, err
		}
		return object.Bool(object.Truthy(right)), nil
	case lexer.OR:
		left, err := it.Eval(n.Operands[0], fr)
		if err != nil {
			return nil, err
		}
		if object.Truthy(left) {
			return object.Bool(true), nil
		}
		right, err := it.Eval(n.Operands[1], fr)
		if err != nil {
			return nil, err
		}
		return object.Bool(object.Truthy(right)), nil
	case lexer.MATCH:
		left, err := it.Eval(n.Operands[0], fr)
		if err != nil {
			return nil, err
		}
		right, err := it.Eval(n.Operands[1], fr)
		if err != nil {
			return nil, err
		}
		re, ok := right.(object.Regex)
		if !ok {
			return nil, runtimeErr(n.Line(), "'=~' requires a pattern on the right")
		}
		return object.Bool(fullMatch(re, left.String())), nil
	}

	left, err := it.Eval(n.Operands[0], fr)
	if err != nil {
		return nil, err
	}
	right, err := it.Eval(n.Operands[1], fr)
	if err != nil {
		return nil, err
	}
	return applyBinary(n.Op.Kind, left, right, n.Line())
}

// identName reads the bare identifier name out of a Leaf produced by
// parser.dotName; the grammar guarantees operands[1] of a DOT node is
// always such a Leaf.
func identName(e ast.Expr) string {
	if leaf, ok := e.(*ast.Leaf); ok {
		return leaf.Tok.Lexeme
	}
	return ""
}

// propertyGet implements spec.md §4.4's property-access rule: only defined
// over mapping-like values, undefined otherwise.
func propertyGet(left object.Value, name string) object.Value {
	if m, ok := left.(*object.Map); ok {
		return m.Get(name)
	}
	return object.Undefined
}

// subscriptGet implements spec.md §4.4's indexed-read rule over lists and
// maps; any other container, or an out-of-range index, reads as undefined.
func subscriptGet(left, idx object.Value) object.Value {
	switch c := left.(type) {
	case *object.List:
		i, ok := asInt(idx)
		if !ok {
			return object.Undefined
		}
		return c.Get(int(i))
	case *object.Map:
		return c.Get(idx.String())
	default:
		return object.Undefined
	}
}

// foldDottedName flattens a chain of DOT nodes over bare identifiers into a
// single dotted name, e.g. `seq.list` -> "seq.list" — spec.md §4.4's
// flattened-name call-lookup rule, applied only to callee position.
func foldDottedName(e ast.Expr) (string, bool) {
	switch n := e.(type) {
	case *ast.Leaf:
		if n.Tok.Kind == lexer.IDENT {
			return n.Tok.Lexeme, true
		}
		return "", false
	case *ast.Node:
		if n.Op.Kind != lexer.DOT || len(n.Operands) != 2 {
			return "", false
		}
		left, ok := foldDottedName(n.Operands[0])
		if !ok {
			return "", false
		}
		right := identName(n.Operands[1])
		if right == "" {
			return "", false
		}
		return left + "." + right, true
	default:
		return "", false
	}
}

func (it *Interp) evalCall(c *ast.Call, fr *scope.Frame) (object.Value, error) {
	var callee object.Value
	if name, ok := foldDottedName(c.Callee); ok {
		if v, found := fr.Lookup(name); found {
			callee = v
		}
	}
	if callee == nil {
		v, err := it.Eval(c.Callee, fr)
		if err != nil {
			return nil, err
		}
		callee = v
	}

	args := make([]object.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := it.Eval(a, fr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return it.applyCall(callee, args, c.CallLine)
}

// Apply implements builtins.Applier, letting catalog entries like `map`,
// `filter`, `reduce`, and `sort`'s comparator form call back into a
// script-level function value without the builtins package importing interp.
func (it *Interp) Apply(fn object.Value, args []object.Value) (object.Value, error) {
	return it.applyCall(fn, args, 0)
}

func (it *Interp) applyCall(callee object.Value, args []object.Value, line int) (object.Value, error) {
	switch fn := callee.(type) {
	case *object.Builtin:
		v, err := fn.Fn(args)
		if err != nil {
			return nil, err
		}
		return v, nil
	case *scope.Closure:
		return it.invokeClosure(fn, args, line)
	default:
		return nil, runtimeErr(line, "value is not callable")
	}
}

func (it *Interp) invokeClosure(fn *scope.Closure, args []object.Value, line int) (object.Value, error) {
	callFrame := scope.New(fn.Captured)
	for i, p := range fn.Params {
		if i < len(args) {
			callFrame.Declare(p, args[i])
		} else {
			callFrame.Declare(p, object.Undefined)
		}
	}
	if fn.IsLambda {
		return it.Eval(fn.LambdaBody, callFrame)
	}
	result, err := it.ExecStmts(fn.FnBody, callFrame)
	if err != nil {
		return nil, err
	}
	if sig, ok := result.(*object.Signal); ok {
		switch sig.SigKind {
		case object.SignalReturn:
			return sig.Value, nil
		case object.SignalBreak:
			return nil, runtimeErr(line, "'break' used outside of a loop")
		case object.SignalContinue:
			return nil, runtimeErr(line, "'continue' used outside of a loop")
		}
	}
	return result, nil
}

func (it *Interp) evalAssign(target, rhs ast.Expr, fr *scope.Frame) (object.Value, error) {
	value, err := it.Eval(rhs, fr)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *ast.Leaf:
		if t.Tok.Kind != lexer.IDENT {
			return nil, runtimeErr(target.Line(), "invalid assignment target")
		}
		fr.Assign(t.Tok.Lexeme, value)
		return value, nil
	case *ast.Node:
		switch t.Op.Kind {
		case lexer.DOT:
			container, err := it.Eval(t.Operands[0], fr)
			if err != nil {
				return nil, err
			}
			m, ok := container.(*object.Map)
			if !ok {
				return nil, runtimeErr(target.Line(), "cannot assign a property on a %s", object.TypeName(container))
			}
			m.Put(identName(t.Operands[1]), value)
			return value, nil
		case lexer.LBRACKET:
			container, err := it.Eval(t.Operands[0], fr)
			if err != nil {
				return nil, err
			}
			idx, err := it.Eval(t.Operands[1], fr)
			if err != nil {
				return nil, err
			}
			switch c := container.(type) {
			case *object.List:
				i, ok := asInt(idx)
				if !ok || !c.Set(int(i), value) {
					return nil, runtimeErr(target.Line(), "list index out of range")
				}
				return value, nil
			case *object.Map:
				c.Put(idx.String(), value)
				return value, nil
			default:
				return nil, runtimeErr(target.Line(), "cannot index-assign a %s", object.TypeName(container))
			}
		}
	}
	return nil, runtimeErr(target.Line(), "invalid assignment target")
}

// ExecStmts executes a statement list in fr, returning either the value of
// the last statement that contributes one (spec.md §4.4's script-value
// rule) or a propagating *object.Signal.
func (it *Interp) ExecStmts(stmts []ast.Stmt, fr *scope.Frame) (object.Value, error) {
	var result object.Value = object.Nil
	for _, s := range stmts {
		v, err := it.execStmt(s, fr)
		if err != nil {
			return nil, err
		}
		if sig, ok := v.(*object.Signal); ok {
			return sig, nil
		}
		result = v
	}
	return result, nil
}

func (it *Interp) execStmt(s ast.Stmt, fr *scope.Frame) (object.Value, error) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		v, err := it.Eval(n.Expr, fr)
		if err != nil {
			return nil, err
		}
		if n.HadSemicolon {
			return object.Nil, nil
		}
		return v, nil
	case *ast.Let:
		v, err := it.Eval(n.Init, fr)
		if err != nil {
			return nil, err
		}
		fr.Declare(n.Name, v)
		return object.Nil, nil
	case *ast.Fn:
		fr.Declare(n.Name, &scope.Closure{Name: n.Name, Params: n.Params, FnBody: n.Body, Captured: fr})
		return object.Nil, nil
	case *ast.If:
		return it.execIf(n, fr)
	case *ast.While:
		return it.execWhile(n, fr)
	case *ast.For:
		return it.execFor(n, fr)
	case *ast.Return:
		if !n.HasExpr {
			return &object.Signal{SigKind: object.SignalReturn, Value: object.Nil}, nil
		}
		v, err := it.Eval(n.Expr, fr)
		if err != nil {
			return nil, err
		}
		return &object.Signal{SigKind: object.SignalReturn, Value: v}, nil
	case *ast.Break:
		return &object.Signal{SigKind: object.SignalBreak}, nil
	case *ast.Continue:
		return &object.Signal{SigKind: object.SignalContinue}, nil
	case *ast.Block:
		return it.ExecStmts(n.Stmts, scope.New(fr))
	case *ast.Try:
		return it.execTry(n, fr)
	case *ast.Throw:
		v, err := it.Eval(n.Expr, fr)
		if err != nil {
			return nil, err
		}
		return nil, &ThrownValue{Value: v}
	default:
		return nil, runtimeErr(s.Line(), "unhandled statement %T", s)
	}
}

func (it *Interp) execIf(n *ast.If, fr *scope.Frame) (object.Value, error) {
	cond, err := it.Eval(n.Cond, fr)
	if err != nil {
		return nil, err
	}
	if object.Truthy(cond) {
		return it.ExecStmts(n.Then, scope.New(fr))
	}
	for _, ei := range n.Elsifs {
		c, err := it.Eval(ei.Cond, fr)
		if err != nil {
			return nil, err
		}
		if object.Truthy(c) {
			return it.ExecStmts(ei.Body, scope.New(fr))
		}
	}
	if n.HasElse {
		return it.ExecStmts(n.Else, scope.New(fr))
	}
	return object.Nil, nil
}

func (it *Interp) execWhile(n *ast.While, fr *scope.Frame) (object.Value, error) {
	var result object.Value = object.Nil
	for {
		cond, err := it.Eval(n.Cond, fr)
		if err != nil {
			return nil, err
		}
		if !object.Truthy(cond) {
			return result, nil
		}
		v, err := it.ExecStmts(n.Body, scope.New(fr))
		if err != nil {
			return nil, err
		}
		if sig, ok := v.(*object.Signal); ok {
			switch sig.SigKind {
			case object.SignalBreak:
				return result, nil
			case object.SignalContinue:
				continue
			default: // return
				return sig, nil
			}
		}
		result = v
	}
}

func (it *Interp) execFor(n *ast.For, fr *scope.Frame) (object.Value, error) {
	iterable, err := it.Eval(n.Iterable, fr)
	if err != nil {
		return nil, err
	}

	var result object.Value = object.Nil
	runBody := func(index object.Value, item object.Value) (object.Value, bool, error) {
		bodyFrame := scope.New(fr)
		if n.HasIndex {
			bodyFrame.Declare(n.IndexName, index)
		}
		bodyFrame.Declare(n.ItemName, item)
		v, err := it.ExecStmts(n.Body, bodyFrame)
		if err != nil {
			return nil, false, err
		}
		if sig, ok := v.(*object.Signal); ok {
			switch sig.SigKind {
			case object.SignalBreak:
				return nil, true, nil
			case object.SignalContinue:
				return nil, false, nil
			default:
				return sig, true, nil
			}
		}
		return v, false, nil
	}

	switch c := iterable.(type) {
	case *object.List:
		for i, item := range c.Items {
			v, stop, err := runBody(object.Int(i), item)
			if err != nil {
				return nil, err
			}
			if v != nil {
				result = v
			}
			if stop {
				return result, nil
			}
		}
	case *object.Map:
		for _, k := range c.Keys() {
			item := c.Get(k)
			if !n.HasIndex {
				entry := object.NewMap()
				entry.Put("key", object.String(k))
				entry.Put("value", item)
				item = entry
			}
			v, stop, err := runBody(object.String(k), item)
			if err != nil {
				return nil, err
			}
			if v != nil {
				result = v
			}
			if stop {
				return result, nil
			}
		}
	case *object.Set:
		for i, item := range c.Values() {
			v, stop, err := runBody(object.Int(i), item)
			if err != nil {
				return nil, err
			}
			if v != nil {
				result = v
			}
			if stop {
				return result, nil
			}
		}
	default:
		return nil, runtimeErr(n.Line(), "value of type %s is not iterable", object.TypeName(iterable))
	}
	return result, nil
}

func (it *Interp) execTry(n *ast.Try, fr *scope.Frame) (object.Value, error) {
	runFinally := func() (object.Value, error) {
		if !n.HasFinally {
			return nil, nil
		}
		return it.ExecStmts(n.Finally, scope.New(fr))
	}

	tryVal, tryErr := it.ExecStmts(n.TryBody, scope.New(fr))
	if tryErr != nil {
		thrown, isThrown := tryErr.(*ThrownValue)
		if isThrown && n.HasCatch {
			catchFrame := scope.New(fr)
			catchFrame.Declare(n.CatchName, thrown.Value)
			catchVal, catchErr := it.ExecStmts(n.CatchBody, catchFrame)
			finVal, finErr := runFinally()
			if finErr != nil {
				return nil, finErr
			}
			if sig, ok := finVal.(*object.Signal); ok {
				return sig, nil
			}
			return catchVal, catchErr
		}
		if _, finErr := runFinally(); finErr != nil {
			return nil, finErr
		}
		return nil, tryErr
	}

	finVal, finErr := runFinally()
	if finErr != nil {
		return nil, finErr
	}
	if sig, ok := finVal.(*object.Signal); ok {
		return sig, nil
	}
	return tryVal, nil
}

// parseNumber turns a lexer.NUMBER token into the appropriate Value kind
// per spec.md §3's literal-suffix rules.
func parseNumber(tok lexer.Token) (object.Value, error) {
	text := tok.Lexeme
	switch tok.Suffix {
	case lexer.BigSuffix:
		digits := text[:len(text)-1]
		i, ok := new(big.Int).SetString(digits, 0)
		if !ok {
			return nil, runtimeErr(tok.Line, "invalid bigint literal %s", text)
		}
		return object.BigInt{V: i}, nil
	case lexer.DecSuffix:
		digits := text[:len(text)-1]
		f, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return nil, runtimeErr(tok.Line, "invalid decimal literal %s", text)
		}
		return object.Float(f), nil
	}

	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		i, err := strconv.ParseInt(text[2:], 16, 64)
		if err != nil {
			return nil, runtimeErr(tok.Line, "invalid hex literal %s", text)
		}
		return object.Int(i), nil
	}
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, runtimeErr(tok.Line, "invalid number literal %s", text)
		}
		return object.Float(f), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, runtimeErr(tok.Line, "invalid number literal %s", text)
	}
	return object.Int(i), nil
}
