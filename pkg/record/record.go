// Package record provides an ordered value tree and a deterministic text
// rendering of it for diffing decoder output.
//
// The rendering is not JSON: strings are single-quoted without escaping and
// booleans render as True and False.
package record

import (
	"math"
	"strconv"
	"strings"
)

// Value is a node of a record tree.
type Value interface {
	emit(b *strings.Builder, depth int)
}

type (
	Int    int64
	Float  float64
	Bool   bool
	String string
	List   []Value
)

type entry struct {
	key   Value
	value Value
}

// Map is an insertion-ordered mapping. Setting an existing key replaces its
// value in place.
type Map struct {
	entries []entry
	index   map[string]int
}

// NewMap creates an empty map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// Set stores v under a string key.
func (m *Map) Set(key string, v Value) *Map {
	return m.Put(String(key), v)
}

// Put stores v under an arbitrary key. Keys are compared by their rendering.
func (m *Map) Put(key, v Value) *Map {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	k := Emit(key)
	if i, ok := m.index[k]; ok {
		m.entries[i].value = v
		return m
	}
	m.index[k] = len(m.entries)
	m.entries = append(m.entries, entry{key: key, value: v})
	return m
}

// Get returns the value stored under a string key.
func (m *Map) Get(key string) (Value, bool) {
	i, ok := m.index[Emit(String(key))]
	if !ok {
		return nil, false
	}
	return m.entries[i].value, true
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []Value {
	keys := make([]Value, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return keys
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Emit renders v. Nested maps and lists put one entry per line, indented
// with one tab per level, each followed by a comma.
func Emit(v Value) string {
	var b strings.Builder
	v.emit(&b, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteByte('\n')
	for range depth {
		b.WriteByte('\t')
	}
}

func (m *Map) emit(b *strings.Builder, depth int) {
	b.WriteByte('{')
	for _, e := range m.entries {
		indent(b, depth+1)
		e.key.emit(b, depth+1)
		b.WriteString(": ")
		e.value.emit(b, depth+1)
		b.WriteByte(',')
	}
	indent(b, depth)
	b.WriteByte('}')
}

func (l List) emit(b *strings.Builder, depth int) {
	b.WriteByte('[')
	for _, v := range l {
		indent(b, depth+1)
		v.emit(b, depth+1)
		b.WriteByte(',')
	}
	indent(b, depth)
	b.WriteByte(']')
}

func (i Int) emit(b *strings.Builder, _ int) {
	b.WriteString(strconv.FormatInt(int64(i), 10))
}

func (s String) emit(b *strings.Builder, _ int) {
	b.WriteByte('\'')
	b.WriteString(string(s))
	b.WriteByte('\'')
}

func (v Bool) emit(b *strings.Builder, _ int) {
	if v {
		b.WriteString("True")
	} else {
		b.WriteString("False")
	}
}

func (f Float) emit(b *strings.Builder, _ int) {
	b.WriteString(FormatFloat(float64(f)))
}

// FormatFloat renders integral values without a fractional part and other
// finite values in their shortest round-tripping form, switching to exponent
// notation below 1e-4 and from 1e16 up.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		return "0"
	case f == math.Trunc(f):
		return strconv.FormatFloat(f, 'f', 0, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if err == nil && exp >= -4 && exp < 16 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}
