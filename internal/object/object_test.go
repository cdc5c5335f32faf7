package object

import "testing"

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("b", &Integer{Value: 1})
	m.Set("a", &Integer{Value: 2})
	m.Set("c", &Integer{Value: 3})

	keys := m.Keys()
	if len(keys) != 3 || keys[0] != "b" || keys[1] != "a" || keys[2] != "c" {
		t.Fatalf("keys %v, want [b a c]", keys)
	}

	// Overwriting keeps the original position.
	m.Set("a", &Integer{Value: 9})
	if m.Len() != 3 {
		t.Fatalf("len %d after overwrite, want 3", m.Len())
	}
	if v, _ := m.Get("a"); v.(*Integer).Value != 9 {
		t.Fatalf("a = %s, want 9", v.Inspect())
	}
	if m.Keys()[1] != "a" {
		t.Fatalf("overwrite moved key: %v", m.Keys())
	}

	if m.Inspect() != "{b: 1, a: 9, c: 3}" {
		t.Fatalf("inspect %q", m.Inspect())
	}
}

func TestListSequence(t *testing.T) {
	l := NewList([]Object{&Integer{Value: 1}, &String{Value: "x"}})
	if l.Len() != 2 {
		t.Fatalf("len %d, want 2", l.Len())
	}
	if l.Get(1).Inspect() != `"x"` {
		t.Fatalf("element 1 is %s", l.Get(1).Inspect())
	}
	if l.Inspect() != `[1, "x"]` {
		t.Fatalf("inspect %q", l.Inspect())
	}

	empty := NewList(nil)
	if empty.Len() != 0 || empty.Inspect() != "[]" {
		t.Fatalf("empty list: len=%d inspect=%q", empty.Len(), empty.Inspect())
	}
}

func TestHashStability(t *testing.T) {
	a := &String{Value: "hello"}
	b := &String{Value: "hello"}
	if a.Hash() != b.Hash() {
		t.Fatalf("equal strings hash differently")
	}

	l1 := NewList([]Object{&Integer{Value: 1}, &Integer{Value: 2}})
	l2 := NewList([]Object{&Integer{Value: 1}, &Integer{Value: 2}})
	if l1.Hash() != l2.Hash() {
		t.Fatalf("equal lists hash differently")
	}
}

func TestPrimitiveInspect(t *testing.T) {
	tests := []struct {
		obj  Object
		want string
	}{
		{&Integer{Value: -3}, "-3"},
		{&Float{Value: 1.5}, "1.5"},
		{&Boolean{Value: true}, "true"},
		{&Nil{}, "nil"},
		{&String{Value: "a b"}, `"a b"`},
	}
	for _, tt := range tests {
		if got := tt.obj.Inspect(); got != tt.want {
			t.Fatalf("%T inspect %q, want %q", tt.obj, got, tt.want)
		}
	}
}
