package dyncall

import (
	"errors"
	"testing"

	"github.com/funvibe/dyncall/internal/binding"
	"github.com/funvibe/dyncall/internal/diagnostics"
	"github.com/funvibe/dyncall/internal/object"
)

func defineAdd(t *testing.T, rt *Runtime) {
	t.Helper()
	_, err := rt.Define("add", []string{"a", "b"}, nil, false, false,
		func(_ object.Object, args []object.Object) object.Object {
			return &object.Integer{Value: args[0].(*object.Integer).Value + args[1].(*object.Integer).Value}
		})
	if err != nil {
		t.Fatalf("define error: %s", err)
	}
}

func TestRuntimeCall(t *testing.T) {
	rt := New()
	defineAdd(t, rt)

	out, err := rt.Call("add", &binding.Call{
		Positional: []object.Object{&object.Integer{Value: 1}, &object.Integer{Value: 2}},
	})
	if err != nil {
		t.Fatalf("call error: %s", err)
	}
	if out.(*object.Integer).Value != 3 {
		t.Fatalf("add returned %s, want 3", out.Inspect())
	}

	if _, err := rt.Call("missing", &binding.Call{}); err == nil {
		t.Fatalf("expected unknown-callee error")
	}
}

func TestRuntimeDiagnosticPropagation(t *testing.T) {
	rt := New()
	defineAdd(t, rt)

	_, err := rt.Call("add", &binding.Call{
		Positional: []object.Object{&object.Integer{Value: 1}},
	})
	var diag *diagnostics.Diagnostic
	if !errors.As(err, &diag) {
		t.Fatalf("error is %T, want *diagnostics.Diagnostic", err)
	}
	if diag.Code != diagnostics.CodeTooFewArguments {
		t.Fatalf("got %s, want TooFewArguments", diag.Code)
	}
}

func TestRuntimeOwnedSites(t *testing.T) {
	rt := New()
	defineAdd(t, rt)

	site := rt.NewSite()
	call := &binding.Call{
		Positional: []object.Object{&object.Integer{Value: 4}, &object.Integer{Value: 5}},
	}
	for i := 0; i < 5; i++ {
		out, err := rt.CallAt(site, "add", call)
		if err != nil {
			t.Fatalf("call error: %s", err)
		}
		if out.(*object.Integer).Value != 9 {
			t.Fatalf("add returned %s, want 9", out.Inspect())
		}
	}
	if site.Rebinds() != 1 {
		t.Fatalf("site rebound %d times, want 1", site.Rebinds())
	}
}

func TestRuntimePerNameSiteReuse(t *testing.T) {
	rt := New()
	defineAdd(t, rt)

	call := &binding.Call{
		Positional: []object.Object{&object.Integer{Value: 1}, &object.Integer{Value: 2}},
	}
	for i := 0; i < 5; i++ {
		if _, err := rt.Call("add", call); err != nil {
			t.Fatalf("call error: %s", err)
		}
	}

	rt.mu.Lock()
	site := rt.sites["add"]
	rt.mu.Unlock()
	if site == nil {
		t.Fatalf("no site cached for add")
	}
	if site.Rebinds() != 1 {
		t.Fatalf("per-name site rebound %d times, want 1", site.Rebinds())
	}
}

func TestRuntimeReceiver(t *testing.T) {
	rt := New()
	_, err := rt.Define("self", nil, nil, false, false,
		func(recv object.Object, _ []object.Object) object.Object {
			if recv == nil {
				return &object.Nil{}
			}
			return recv
		})
	if err != nil {
		t.Fatalf("define error: %s", err)
	}

	recv := &object.String{Value: "obj"}
	out, err := rt.Call("self", &binding.Call{Instance: recv})
	if err != nil {
		t.Fatalf("call error: %s", err)
	}
	if out != recv {
		t.Fatalf("receiver not passed through: got %s", out.Inspect())
	}
}
