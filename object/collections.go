package object

import "strings"

// List is a mutable, ordered, heterogeneous collection — spec.md's
// "ordered lists". Backed by a plain slice, generalizing go-mix's
// objects.Array.
type List struct {
	Items []Value
}

func NewList(items ...Value) *List { return &List{Items: items} }

func (*List) Kind() Kind { return ListKind }

func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, v := range l.Items {
		parts[i] = v.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) Inspect() string { return l.String() }

// Get returns the element at idx, or Undefined for an out-of-range read
// (spec.md §4.4 "Property access").
func (l *List) Get(idx int) Value {
	if idx < 0 || idx >= len(l.Items) {
		return Undefined
	}
	return l.Items[idx]
}

// Set mutates the element at idx, or appends v if idx is exactly one past
// the end (a common scripting convenience); a negative idx or one further
// out of range leaves the list unchanged and returns false.
func (l *List) Set(idx int, v Value) bool {
	if idx < 0 {
		return false
	}
	if idx < len(l.Items) {
		l.Items[idx] = v
		return true
	}
	if idx == len(l.Items) {
		l.Items = append(l.Items, v)
		return true
	}
	return false
}

// Map is an insertion-ordered key/value collection — spec.md's "ordered
// maps". Keys are always strings at the language level (dotted-name and
// property lookups key on a string); the order slice generalizes
// go-mix's std/map.go, which used an unordered Go map.
type Map struct {
	order []string
	data  map[string]Value
}

func NewMap() *Map { return &Map{data: make(map[string]Value)} }

func (*Map) Kind() Kind { return MapKind }

func (m *Map) String() string {
	parts := make([]string, 0, len(m.order))
	for _, k := range m.order {
		parts = append(parts, k+": "+m.data[k].Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (m *Map) Inspect() string { return m.String() }

// Get returns the value bound to key, or Undefined if absent.
func (m *Map) Get(key string) Value {
	if v, ok := m.data[key]; ok {
		return v
	}
	return Undefined
}

// Put inserts or updates key, preserving first-insertion order.
func (m *Map) Put(key string, v Value) {
	if _, ok := m.data[key]; !ok {
		m.order = append(m.order, key)
	}
	m.data[key] = v
}

// Delete removes key if present.
func (m *Map) Delete(key string) {
	if _, ok := m.data[key]; !ok {
		return
	}
	delete(m.data, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *Map) Has(key string) bool { _, ok := m.data[key]; return ok }

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string { return append([]string(nil), m.order...) }

func (m *Map) Len() int { return len(m.order) }

// Set is an insertion-ordered collection of unique values, keyed by each
// value's Inspect() form (good enough for the scalar values the language
// expects sets of).
type Set struct {
	order []string
	repr  map[string]Value
}

func NewSet() *Set { return &Set{repr: make(map[string]Value)} }

func (*Set) Kind() Kind { return SetKind }

func (s *Set) String() string {
	parts := make([]string, 0, len(s.order))
	for _, k := range s.order {
		parts = append(parts, s.repr[k].Inspect())
	}
	return "set{" + strings.Join(parts, ", ") + "}"
}
func (s *Set) Inspect() string { return s.String() }

func (s *Set) Add(v Value) {
	key := v.Inspect()
	if _, ok := s.repr[key]; ok {
		return
	}
	s.order = append(s.order, key)
	s.repr[key] = v
}

func (s *Set) Contains(v Value) bool {
	_, ok := s.repr[v.Inspect()]
	return ok
}

func (s *Set) Remove(v Value) {
	key := v.Inspect()
	if _, ok := s.repr[key]; !ok {
		return
	}
	delete(s.repr, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Set) Values() []Value {
	out := make([]Value, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.repr[k])
	}
	return out
}

func (s *Set) Len() int { return len(s.order) }
