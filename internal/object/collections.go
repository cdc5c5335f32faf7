package object

import "strings"

// List is the reference Sequence implementation and the collection type
// produced for rest-positional slots.
type List struct {
	Elements []Object
}

// NewList creates a List from a slice of Objects. The slice is not copied.
func NewList(elements []Object) *List {
	return &List{Elements: elements}
}

func (l *List) Type() ObjectType { return LIST_OBJ }

func (l *List) Len() int { return len(l.Elements) }

func (l *List) Get(i int) Object { return l.Elements[i] }

func (l *List) Inspect() string {
	var out strings.Builder
	out.WriteString("[")
	for i, el := range l.Elements {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(el.Inspect())
	}
	out.WriteString("]")
	return out.String()
}

func (l *List) Hash() uint32 {
	h := uint32(1)
	for _, el := range l.Elements {
		h = 31*h + el.Hash()
	}
	return h
}

// Map is the reference Mapping implementation and the collection type
// produced for rest-keyword slots. Keys keep insertion order so Inspect
// output and residual-key diagnostics are stable across runs.
type Map struct {
	keys    []string
	entries map[string]Object
}

func NewMap() *Map {
	return &Map{entries: make(map[string]Object)}
}

func (m *Map) Type() ObjectType { return MAP_OBJ }

func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not mutate it.
func (m *Map) Keys() []string { return m.keys }

func (m *Map) Get(name string) (Object, bool) {
	v, ok := m.entries[name]
	return v, ok
}

// Set inserts or overwrites a key. Overwriting keeps the original position.
func (m *Map) Set(name string, value Object) {
	if _, ok := m.entries[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.entries[name] = value
}

func (m *Map) Inspect() string {
	var out strings.Builder
	out.WriteString("{")
	for i, k := range m.keys {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(k)
		out.WriteString(": ")
		out.WriteString(m.entries[k].Inspect())
	}
	out.WriteString("}")
	return out.String()
}

func (m *Map) Hash() uint32 {
	h := uint32(1)
	for _, k := range m.keys {
		h = 31*h + hashString(k)
		h = 31*h + m.entries[k].Hash()
	}
	return h
}
