// Package binding implements the call-site binding core: classifying call
// shapes, matching them against callee signatures, and compiling the match
// into a guarded, reusable execution plan.
package binding

import (
	"github.com/funvibe/dyncall/internal/diagnostics"
)

// Result is a successful bind: the plan, its compiled thunk, and the guard
// under which the thunk may be reused without re-binding.
type Result struct {
	Plan  *Plan
	Thunk Thunk
	Guard Guard
}

// Bind matches a call shape against a signature. It is a pure function of
// its inputs: no retries, no shared state, and it never inspects argument
// values. Failures come back as typed diagnostics, never as panics.
func Bind(sig *Signature, shape Shape) (*Result, *diagnostics.Diagnostic) {
	at := newAttempt(sig, shape)
	if d := at.assignDirect(); d != nil {
		return nil, d
	}
	if d := at.fillRemaining(); d != nil {
		return nil, d
	}
	plan := at.plan()
	return &Result{
		Plan:  plan,
		Thunk: plan.Compile(),
		Guard: BuildGuard(sig, shape),
	}, nil
}
