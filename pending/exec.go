// Package pending implements the pending-execution engine (spec.md §4.5):
// given a boolean expression tree, it computes the result lazily as free
// variables are supplied, short-circuiting `&&`/`||` the moment a result is
// determined without needing every operand bound. No teacher example
// implements partial/lazy boolean evaluation; this package is grounded on
// the teacher's dispatch style instead — a switch over ast.Node kind, one
// case per combinator, the same shape go-mix's evaluator uses to dispatch
// operators — generalized into a tree of small stateful combinator types.
package pending

import "fmt"

// Runtime is the host hook spec.md's "Pending-execution runtime contract"
// names: re-parse and re-evaluate a subtree's textual form against a
// name->value context, asserting the result is boolean.
type Runtime interface {
	Run(exprText string, context map[string]interface{}) (bool, error)
}

// Exec is implemented by every node of a built pending-execution tree.
type Exec interface {
	// Provide stores value for name if this node (or one of its
	// descendants) has it as a free identifier.
	Provide(name string, value interface{})
	// CanExecute reports whether enough has been provided to produce a
	// result without error, per spec.md §4.5's short-circuit truth table.
	CanExecute() bool
	// Execute returns the memoized boolean result, computing it on first
	// call. Calling Execute before CanExecute reports true is an error.
	Execute() (bool, error)
}

// ValueExec wraps a leaf subtree (anything that isn't &&, ||, !, or ?:) and
// defers to the host Runtime once every free identifier has a value.
type ValueExec struct {
	text      string
	free      map[string]bool
	values    map[string]interface{}
	rt        Runtime
	hasCached bool
	cached    bool
	err       error
}

func newValueExec(text string, free map[string]bool, rt Runtime) *ValueExec {
	return &ValueExec{text: text, free: free, values: make(map[string]interface{}), rt: rt}
}

func (v *ValueExec) Provide(name string, value interface{}) {
	if v.free[name] {
		v.values[name] = value
	}
}

func (v *ValueExec) CanExecute() bool {
	for name := range v.free {
		if _, ok := v.values[name]; !ok {
			return false
		}
	}
	return true
}

func (v *ValueExec) Execute() (bool, error) {
	if v.hasCached {
		return v.cached, v.err
	}
	if !v.CanExecute() {
		v.hasCached = true
		v.err = fmt.Errorf("pending: not every free identifier of %q has been provided", v.text)
		return false, v.err
	}
	result, err := v.rt.Run(v.text, v.values)
	v.hasCached = true
	v.cached = result
	v.err = err
	return v.cached, v.err
}

// AndExec implements spec.md §4.5's short-circuit truth table for `&&`:
// executable once both children are, or as soon as one child executes to
// false.
type AndExec struct {
	l, r      Exec
	hasCached bool
	cached    bool
	err       error
}

func (n *AndExec) Provide(name string, value interface{}) {
	n.l.Provide(name, value)
	n.r.Provide(name, value)
}

func (n *AndExec) CanExecute() bool {
	if n.l.CanExecute() && n.r.CanExecute() {
		return true
	}
	if n.l.CanExecute() {
		if v, err := n.l.Execute(); err == nil && !v {
			return true
		}
	}
	if n.r.CanExecute() {
		if v, err := n.r.Execute(); err == nil && !v {
			return true
		}
	}
	return false
}

func (n *AndExec) Execute() (bool, error) {
	if n.hasCached {
		return n.cached, n.err
	}
	if !n.CanExecute() {
		n.hasCached, n.err = true, fmt.Errorf("pending: 'and' node is not yet executable")
		return false, n.err
	}
	if n.l.CanExecute() {
		if v, err := n.l.Execute(); err == nil && !v {
			n.hasCached, n.cached = true, false
			return false, nil
		}
	}
	if n.r.CanExecute() {
		if v, err := n.r.Execute(); err == nil && !v {
			n.hasCached, n.cached = true, false
			return false, nil
		}
	}
	lv, err := n.l.Execute()
	if err != nil {
		n.hasCached, n.err = true, err
		return false, err
	}
	rv, err := n.r.Execute()
	if err != nil {
		n.hasCached, n.err = true, err
		return false, err
	}
	n.hasCached, n.cached = true, lv && rv
	return n.cached, nil
}

// OrExec mirrors AndExec for `||`.
type OrExec struct {
	l, r      Exec
	hasCached bool
	cached    bool
	err       error
}

func (n *OrExec) Provide(name string, value interface{}) {
	n.l.Provide(name, value)
	n.r.Provide(name, value)
}

func (n *OrExec) CanExecute() bool {
	if n.l.CanExecute() && n.r.CanExecute() {
		return true
	}
	if n.l.CanExecute() {
		if v, err := n.l.Execute(); err == nil && v {
			return true
		}
	}
	if n.r.CanExecute() {
		if v, err := n.r.Execute(); err == nil && v {
			return true
		}
	}
	return false
}

func (n *OrExec) Execute() (bool, error) {
	if n.hasCached {
		return n.cached, n.err
	}
	if !n.CanExecute() {
		n.hasCached, n.err = true, fmt.Errorf("pending: 'or' node is not yet executable")
		return false, n.err
	}
	if n.l.CanExecute() {
		if v, err := n.l.Execute(); err == nil && v {
			n.hasCached, n.cached = true, true
			return true, nil
		}
	}
	if n.r.CanExecute() {
		if v, err := n.r.Execute(); err == nil && v {
			n.hasCached, n.cached = true, true
			return true, nil
		}
	}
	lv, err := n.l.Execute()
	if err != nil {
		n.hasCached, n.err = true, err
		return false, err
	}
	rv, err := n.r.Execute()
	if err != nil {
		n.hasCached, n.err = true, err
		return false, err
	}
	n.hasCached, n.cached = true, lv || rv
	return n.cached, nil
}

// NotExec mirrors its single child.
type NotExec struct {
	child     Exec
	hasCached bool
	cached    bool
	err       error
}

func (n *NotExec) Provide(name string, value interface{}) { n.child.Provide(name, value) }
func (n *NotExec) CanExecute() bool                        { return n.child.CanExecute() }
func (n *NotExec) Execute() (bool, error) {
	if n.hasCached {
		return n.cached, n.err
	}
	v, err := n.child.Execute()
	n.hasCached, n.cached, n.err = true, !v, err
	return n.cached, n.err
}

// CondExec implements `cond ? then : else`: the condition must be
// executable; the result defers entirely to whichever branch it selects.
type CondExec struct {
	cond, then, alt Exec
	hasCached       bool
	cached          bool
	err             error
}

func (n *CondExec) Provide(name string, value interface{}) {
	n.cond.Provide(name, value)
	n.then.Provide(name, value)
	n.alt.Provide(name, value)
}

func (n *CondExec) CanExecute() bool {
	if !n.cond.CanExecute() {
		return false
	}
	v, err := n.cond.Execute()
	if err != nil {
		return false
	}
	if v {
		return n.then.CanExecute()
	}
	return n.alt.CanExecute()
}

func (n *CondExec) Execute() (bool, error) {
	if n.hasCached {
		return n.cached, n.err
	}
	if !n.cond.CanExecute() {
		n.hasCached, n.err = true, fmt.Errorf("pending: conditional's condition is not yet executable")
		return false, n.err
	}
	cv, err := n.cond.Execute()
	if err != nil {
		n.hasCached, n.err = true, err
		return false, err
	}
	branch := n.alt
	if cv {
		branch = n.then
	}
	v, err := branch.Execute()
	n.hasCached, n.cached, n.err = true, v, err
	return n.cached, n.err
}
