package binding

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/funvibe/dyncall/internal/object"
)

// Signature describes a callee's parameter list. Instances are immutable:
// changing defaults or the compiled target means building a new Signature,
// which carries a fresh identity token. Guards rely on that, so Params and
// Defaults are read-only after construction; mutating them in place bypasses
// token rotation.
type Signature struct {
	Name     string
	Params   []string
	Defaults []object.Object // aligned to the trailing len(Defaults) params

	restPositional bool
	restKeyword    bool

	// Identity changes exactly when defaults or the compiled target change.
	Identity uuid.UUID
}

// NewSignature validates and builds a signature. Defaults cover the trailing
// parameters; rest slots sit past the normal parameter range. The input
// slices are copied, so callers may reuse them afterwards.
func NewSignature(name string, params []string, defaults []object.Object, restPositional, restKeyword bool) (*Signature, error) {
	if len(defaults) > len(params) {
		return nil, fmt.Errorf("signature %s: %d defaults for %d parameters", name, len(defaults), len(params))
	}
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if p == "" {
			return nil, fmt.Errorf("signature %s: empty parameter name", name)
		}
		if seen[p] {
			return nil, fmt.Errorf("signature %s: duplicate parameter %q", name, p)
		}
		seen[p] = true
	}
	return &Signature{
		Name:           name,
		Params:         append([]string(nil), params...),
		Defaults:       append([]object.Object(nil), defaults...),
		restPositional: restPositional,
		restKeyword:    restKeyword,
		Identity:       uuid.New(),
	}, nil
}

// NormalCount is the number of declared (non-rest) parameters.
func (s *Signature) NormalCount() int { return len(s.Params) }

// SlotCount includes the rest slots, if declared.
func (s *Signature) SlotCount() int {
	n := len(s.Params)
	if s.restPositional {
		n++
	}
	if s.restKeyword {
		n++
	}
	return n
}

// RestPositionalIndex returns the rest-positional slot index, or -1.
// The slot always follows the normal parameters.
func (s *Signature) RestPositionalIndex() int {
	if !s.restPositional {
		return -1
	}
	return len(s.Params)
}

// RestKeywordIndex returns the rest-keyword slot index, or -1. It is the
// last slot.
func (s *Signature) RestKeywordIndex() int {
	if !s.restKeyword {
		return -1
	}
	n := len(s.Params)
	if s.restPositional {
		n++
	}
	return n
}

func (s *Signature) HasRestPositional() bool { return s.restPositional }
func (s *Signature) HasRestKeyword() bool    { return s.restKeyword }

// ParamIndex returns the declared position of a parameter name, or -1.
func (s *Signature) ParamIndex(name string) int {
	for i, p := range s.Params {
		if p == name {
			return i
		}
	}
	return -1
}

// defaultIndex maps a parameter position to its index in Defaults, or -1
// when the parameter has no default.
func (s *Signature) defaultIndex(p int) int {
	d := p - (len(s.Params) - len(s.Defaults))
	if d < 0 || d >= len(s.Defaults) {
		return -1
	}
	return d
}

// MinPositional is the number of parameters without defaults.
func (s *Signature) MinPositional() int { return len(s.Params) - len(s.Defaults) }

// MaxPositional is the most positional arguments the callee accepts, or -1
// when a rest-positional slot makes it unbounded.
func (s *Signature) MaxPositional() int {
	if s.restPositional {
		return -1
	}
	return len(s.Params)
}

func (s *Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteByte('(')
	firstDefault := len(s.Params) - len(s.Defaults)
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p)
		if i >= firstDefault {
			b.WriteByte('=')
			b.WriteString(s.Defaults[i-firstDefault].Inspect())
		}
	}
	if s.restPositional {
		if len(s.Params) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("*rest")
	}
	if s.restKeyword {
		if len(s.Params) > 0 || s.restPositional {
			b.WriteString(", ")
		}
		b.WriteString("**kw")
	}
	b.WriteByte(')')
	return b.String()
}
