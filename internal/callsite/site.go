// Package callsite caches guarded binding plans per call site: bind once,
// reuse while the guard holds, rebind and chain when it fails.
package callsite

import (
	"sync/atomic"

	"github.com/funvibe/dyncall/internal/binding"
	"github.com/funvibe/dyncall/internal/config"
	"github.com/funvibe/dyncall/internal/diagnostics"
	"github.com/funvibe/dyncall/internal/object"
)

// rule is one guarded entry in a site's chain: either a reusable thunk or a
// memoized shape-level failure.
type rule struct {
	guard binding.Guard
	plan  *binding.Plan
	thunk binding.Thunk
	fail  *diagnostics.Diagnostic
}

type ruleChain struct {
	rules []*rule
}

// Site is the per-call-site cache. The read path is lock-free: one atomic
// load plus a short guard walk. Writers publish by replacing the whole
// chain; concurrent rebinds may race and both compute, the later Store wins
// and the loser's work is discarded, which is safe because binding is pure.
type Site struct {
	state   atomic.Pointer[ruleChain]
	rebinds atomic.Uint64
}

func New() *Site {
	s := &Site{}
	s.state.Store(&ruleChain{})
	return s
}

// Rebinds reports how many times the binder ran for this site.
func (s *Site) Rebinds() uint64 { return s.rebinds.Load() }

// Call routes one call through the site: guard hit reuses the cached plan
// directly, a miss re-runs the binder from scratch and publishes the result.
func (s *Site) Call(sig *binding.Signature, call *binding.Call) ([]object.Object, *diagnostics.Diagnostic) {
	shape := call.Shape()
	key := shape.Key()

	chain := s.state.Load()
	for _, r := range chain.rules {
		if r.guard.Holds(sig, key) {
			if r.fail != nil {
				return nil, r.fail
			}
			return r.thunk(sig, call)
		}
	}
	return s.rebind(chain, sig, call, shape, key)
}

func (s *Site) rebind(prev *ruleChain, sig *binding.Signature, call *binding.Call, shape binding.Shape, key string) ([]object.Object, *diagnostics.Diagnostic) {
	s.rebinds.Add(1)

	res, diag := binding.Bind(sig, shape)
	if diag != nil {
		if shapePermanent(shape, diag) {
			// The shape can never bind against this compiled form, whatever
			// instance shows up: memoize under the token so the failure is
			// not re-derived, while a token change still forces a rebind.
			s.publish(prev, &rule{
				guard: binding.Guard{Kind: binding.GuardToken, Token: sig.Identity, ShapeKey: key},
				fail:  diag,
			})
		}
		return nil, diag
	}

	s.publish(prev, &rule{guard: res.Guard, plan: res.Plan, thunk: res.Thunk})
	return res.Thunk(sig, call)
}

func (s *Site) publish(prev *ruleChain, r *rule) {
	rules := make([]*rule, 0, len(prev.rules)+1)
	rules = append(rules, r)
	for _, old := range prev.rules {
		if len(rules) >= config.MaxSiteRules {
			break
		}
		rules = append(rules, old)
	}
	s.state.Store(&ruleChain{rules: rules})
}

// shapePermanent reports whether a failure follows from the shape and the
// callee's compiled form alone. Keyword and splat failures depend on
// instance data and are re-derived instead.
func shapePermanent(shape binding.Shape, d *diagnostics.Diagnostic) bool {
	if !shape.IsSimple() {
		return false
	}
	return d.Code == diagnostics.CodeTooFewArguments || d.Code == diagnostics.CodeTooManyPositional
}

// RuleInfo is a read-only snapshot of one cached rule, for tooling.
type RuleInfo struct {
	ShapeKey  string
	Guard     binding.GuardKind
	Permanent bool
	Plan      *binding.Plan // nil for failure rules
}

// Rules snapshots the current chain, most recent first.
func (s *Site) Rules() []RuleInfo {
	chain := s.state.Load()
	out := make([]RuleInfo, len(chain.rules))
	for i, r := range chain.rules {
		out[i] = RuleInfo{
			ShapeKey:  r.guard.ShapeKey,
			Guard:     r.guard.Kind,
			Permanent: r.fail != nil,
			Plan:      r.plan,
		}
	}
	return out
}
