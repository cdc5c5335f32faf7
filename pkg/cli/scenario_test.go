package cli

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/dyncall/internal/object"
)

func TestInferValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, "nil"},
		{true, "true"},
		{3, "3"},
		{int64(4), "4"},
		{2.5, "2.5"},
		{3.0, "3"}, // whole floats collapse to integers, like the yaml builtin
		{"hi", `"hi"`},
		{[]interface{}{1, "x"}, `[1, "x"]`},
	}
	for _, tt := range tests {
		obj, err := inferValue(tt.in)
		if err != nil {
			t.Fatalf("%v: %s", tt.in, err)
		}
		if obj.Inspect() != tt.want {
			t.Fatalf("%v inferred as %s, want %s", tt.in, obj.Inspect(), tt.want)
		}
	}

	if _, err := inferValue(struct{}{}); err == nil {
		t.Fatalf("expected error for unsupported value")
	}
}

func TestBuildCallPreservesKeywordOrder(t *testing.T) {
	src := `
callee: f
positional: [1]
named: {zed: 1, alpha: 2}
splatMap: {beta: 3, aaa: 4}
`
	var spec CallSpec
	if err := yaml.Unmarshal([]byte(src), &spec); err != nil {
		t.Fatalf("yaml error: %s", err)
	}
	call, err := spec.BuildCall()
	if err != nil {
		t.Fatalf("build error: %s", err)
	}

	if len(call.Named) != 2 || call.Named[0].Name != "zed" || call.Named[1].Name != "alpha" {
		t.Fatalf("named order lost: %+v", call.Named)
	}
	m := call.SplatMapping.(*object.Map)
	if keys := m.Keys(); keys[0] != "beta" || keys[1] != "aaa" {
		t.Fatalf("mapping order lost: %v", keys)
	}
}

func TestBuildCallSplatPresence(t *testing.T) {
	var spec CallSpec
	if err := yaml.Unmarshal([]byte("callee: f\npositional: [1]\n"), &spec); err != nil {
		t.Fatalf("yaml error: %s", err)
	}
	call, err := spec.BuildCall()
	if err != nil {
		t.Fatalf("build error: %s", err)
	}
	if call.SplatSequence != nil || call.SplatMapping != nil {
		t.Fatalf("absent splats decoded as present")
	}

	// An explicitly empty splat still changes the shape.
	if err := yaml.Unmarshal([]byte("callee: f\nsplat: []\n"), &spec); err != nil {
		t.Fatalf("yaml error: %s", err)
	}
	call, err = spec.BuildCall()
	if err != nil {
		t.Fatalf("build error: %s", err)
	}
	if call.SplatSequence == nil {
		t.Fatalf("empty splat decoded as absent")
	}
	if !call.Shape().HasSplatSequence {
		t.Fatalf("shape missing splat flag")
	}
}
