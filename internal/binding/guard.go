package binding

import "github.com/google/uuid"

type GuardKind uint8

const (
	// GuardToken admits any signature instance carrying the same identity
	// token. Cheap, and valid only for purely positional shapes: routing
	// there depends on parameter count alone, which the token covers.
	GuardToken GuardKind = iota
	// GuardInstance pins the exact signature instance. Required once
	// keywords or splats were exercised, since parameter names and defaults
	// are instance data.
	GuardInstance
)

func (k GuardKind) String() string {
	if k == GuardInstance {
		return "instance"
	}
	return "token"
}

// Guard is the predicate under which a cached plan stays valid for the next
// call: shape equality plus callee identity at the chosen strictness.
type Guard struct {
	Kind     GuardKind
	Token    uuid.UUID
	Instance *Signature // set for GuardInstance
	ShapeKey string
}

// BuildGuard picks the weakest sound guard for a bind.
func BuildGuard(sig *Signature, shape Shape) Guard {
	g := Guard{Token: sig.Identity, ShapeKey: shape.Key()}
	if shape.IsSimple() {
		g.Kind = GuardToken
		return g
	}
	g.Kind = GuardInstance
	g.Instance = sig
	return g
}

// Holds runs on every call; it must stay branch-cheap and allocation-free.
func (g Guard) Holds(sig *Signature, shapeKey string) bool {
	if shapeKey != g.ShapeKey {
		return false
	}
	if g.Kind == GuardInstance {
		return sig == g.Instance
	}
	return sig.Identity == g.Token
}
