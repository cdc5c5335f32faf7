// Package dyncall (pkg/embed) is the high-level embedding API: hosts define
// callees, create call sites, and invoke them without touching the internal
// packages directly.
package dyncall

import (
	"fmt"
	"sync"

	"github.com/funvibe/dyncall/internal/binding"
	"github.com/funvibe/dyncall/internal/callsite"
	"github.com/funvibe/dyncall/internal/object"
	"github.com/funvibe/dyncall/internal/registry"
)

// Runtime wraps a callee registry and hands out call sites bound to it.
type Runtime struct {
	reg *registry.Registry

	mu    sync.Mutex
	sites map[string]*callsite.Site // convenience per-name sites
}

func New() *Runtime {
	return &Runtime{
		reg:   registry.New(),
		sites: make(map[string]*callsite.Site),
	}
}

// Registry exposes the underlying registry for direct callee management.
func (r *Runtime) Registry() *registry.Registry { return r.reg }

// Define registers a callee. defaults align to the trailing params.
func (r *Runtime) Define(name string, params []string, defaults []object.Object, restPositional, restKeyword bool, target registry.Target) (*registry.Callee, error) {
	return r.reg.Define(name, params, defaults, restPositional, restKeyword, target)
}

// NewSite creates an independent call site. Hosts should create one per
// lexical call location so monomorphic caching pays off.
func (r *Runtime) NewSite() *callsite.Site { return callsite.New() }

// CallAt binds a call through the given site and invokes the named callee's
// target with the bound vector.
func (r *Runtime) CallAt(site *callsite.Site, name string, call *binding.Call) (object.Object, error) {
	c, ok := r.reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown callee %q", name)
	}
	sig := c.Signature()
	bound, diag := site.Call(sig, call)
	if diag != nil {
		return nil, diag
	}
	return c.Invoke(call.Instance, bound), nil
}

// Call is CallAt against a runtime-managed site keyed by callee name.
// Fine for scripting-style hosts; anything hot should own its sites.
func (r *Runtime) Call(name string, call *binding.Call) (object.Object, error) {
	r.mu.Lock()
	site, ok := r.sites[name]
	if !ok {
		site = callsite.New()
		r.sites[name] = site
	}
	r.mu.Unlock()
	return r.CallAt(site, name, call)
}
