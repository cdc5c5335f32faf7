// Package registry owns callee definitions: signatures paired with compiled
// targets. It is injected wherever callees are resolved; there is no
// package-level state.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/funvibe/dyncall/internal/binding"
	"github.com/funvibe/dyncall/internal/object"
)

// Target is a callee's compiled body. recv is the bound-instance argument,
// nil for plain functions; args is the bound parameter vector in declaration
// order, rest collections included.
type Target func(recv object.Object, args []object.Object) object.Object

// Callee pairs a signature with its target. The signature pointer is
// replaced wholesale on mutation, so a fresh identity token reaches guards
// on the next call.
type Callee struct {
	mu     sync.RWMutex
	sig    *binding.Signature
	target Target
}

// Signature returns the current immutable signature instance.
func (c *Callee) Signature() *binding.Signature {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sig
}

// Invoke runs the target against an already-bound argument vector.
func (c *Callee) Invoke(recv object.Object, args []object.Object) object.Object {
	c.mu.RLock()
	t := c.target
	c.mu.RUnlock()
	if t == nil {
		return &object.Nil{}
	}
	return t(recv, args)
}

// SetDefaults installs new default values and rotates the identity token.
// Cached plans guarded on the old token or instance stop matching.
func (c *Callee) SetDefaults(defaults []object.Object) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	sig, err := binding.NewSignature(c.sig.Name, c.sig.Params, defaults, c.sig.HasRestPositional(), c.sig.HasRestKeyword())
	if err != nil {
		return err
	}
	c.sig = sig
	return nil
}

// SetTarget installs a new compiled body and rotates the identity token.
func (c *Callee) SetTarget(target Target) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	sig, err := binding.NewSignature(c.sig.Name, c.sig.Params, c.sig.Defaults, c.sig.HasRestPositional(), c.sig.HasRestKeyword())
	if err != nil {
		return err
	}
	c.sig = sig
	c.target = target
	return nil
}

type Registry struct {
	mu      sync.RWMutex
	callees map[string]*Callee
}

func New() *Registry {
	return &Registry{callees: make(map[string]*Callee)}
}

// Define validates and registers a callee. Redefining a name is an error;
// use SetDefaults/SetTarget to mutate an existing callee.
func (r *Registry) Define(name string, params []string, defaults []object.Object, restPositional, restKeyword bool, target Target) (*Callee, error) {
	sig, err := binding.NewSignature(name, params, defaults, restPositional, restKeyword)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.callees[name]; ok {
		return nil, fmt.Errorf("callee %q already defined", name)
	}
	c := &Callee{sig: sig, target: target}
	r.callees[name] = c
	return c, nil
}

func (r *Registry) Lookup(name string) (*Callee, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.callees[name]
	return c, ok
}

// Names lists registered callees in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.callees))
	for n := range r.callees {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
