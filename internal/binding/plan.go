package binding

import (
	"github.com/funvibe/dyncall/internal/diagnostics"
	"github.com/funvibe/dyncall/internal/object"
)

// SourceKind says where a parameter slot's value comes from.
type SourceKind uint8

const (
	SourceUnbound SourceKind = iota // transient: slot not yet assigned
	FromPositional
	FromNamed
	FromSplatSequence
	FromSplatMapping
	FromDefault
	CollectRestPositional
	CollectRestMapping
	// ResolvedAtCall marks a slot whose tier (splat-sequence position,
	// splat-mapping key, or default) depends on per-call splat contents.
	// The shape pins that splats exist, not how long they are.
	ResolvedAtCall
)

func (k SourceKind) String() string {
	switch k {
	case SourceUnbound:
		return "unbound"
	case FromPositional:
		return "positional"
	case FromNamed:
		return "named"
	case FromSplatSequence:
		return "splat-sequence"
	case FromSplatMapping:
		return "splat-mapping"
	case FromDefault:
		return "default"
	case CollectRestPositional:
		return "rest-positional"
	case CollectRestMapping:
		return "rest-keyword"
	case ResolvedAtCall:
		return "per-call"
	default:
		return "unknown"
	}
}

// ParameterSource routes one slot. Index is a positional argument index
// (FromPositional), a named argument index (FromNamed), or a default index
// (FromDefault). Name is the parameter name, kept for mapping lookups and
// diagnostics.
type ParameterSource struct {
	Kind  SourceKind
	Index int
	Name  string
}

// Thunk executes a compiled plan against one call. The signature passed in
// is whatever the guard admitted: for token guards that may be a different
// instance than the one bound against, which is sound because equal tokens
// imply equal defaults.
type Thunk func(sig *Signature, call *Call) ([]object.Object, *diagnostics.Diagnostic)

// Plan is the reusable outcome of binding one shape against one signature:
// one source per declared slot, rest slots included.
type Plan struct {
	Callee  string
	Shape   Shape
	Sources []ParameterSource

	normal     int
	restPos    int // slot index or -1
	restKey    int
	restNamed  []int // named argument indices collected into the rest-keyword slot
	defaultIdx []int // per normal slot: default index or -1
	dynamic    bool  // any splat present
}

// Compile turns the plan into a callable thunk. Splat-free shapes get a
// fully static routine that cannot fail; shapes with splats get the general
// resolver, which re-checks value-level routing every call.
func (p *Plan) Compile() Thunk {
	if p.dynamic {
		return p.runDynamic
	}
	return func(sig *Signature, call *Call) ([]object.Object, *diagnostics.Diagnostic) {
		return p.runStatic(sig, call), nil
	}
}

func (p *Plan) runStatic(sig *Signature, call *Call) []object.Object {
	out := make([]object.Object, len(p.Sources))
	for i, src := range p.Sources {
		switch src.Kind {
		case FromPositional:
			out[i] = call.Positional[src.Index]
		case FromNamed:
			out[i] = call.Named[src.Index].Value
		case FromDefault:
			out[i] = sig.Defaults[src.Index]
		case CollectRestPositional:
			var extras []object.Object
			if len(call.Positional) > p.normal {
				extras = append(extras, call.Positional[p.normal:]...)
			}
			out[i] = object.NewList(extras)
		case CollectRestMapping:
			m := object.NewMap()
			for _, j := range p.restNamed {
				m.Set(call.Named[j].Name, call.Named[j].Value)
			}
			out[i] = m
		}
	}
	return out
}

// streamValue reads position j of the positional stream: literal positionals
// followed by the splatted sequence.
func streamValue(call *Call, j int) object.Object {
	if j < len(call.Positional) {
		return call.Positional[j]
	}
	return call.SplatSequence.Get(j - len(call.Positional))
}

// runDynamic resolves slots whose sources depend on per-call splat data.
// Order is deterministic: declaration order, then residual sequence, then
// residual mapping, so repeated malformed calls classify identically.
func (p *Plan) runDynamic(sig *Signature, call *Call) ([]object.Object, *diagnostics.Diagnostic) {
	out := make([]object.Object, len(p.Sources))
	litCount := len(call.Positional)
	streamLen := litCount
	if call.SplatSequence != nil {
		streamLen += call.SplatSequence.Len()
	}
	mp := call.SplatMapping
	var usedKeys map[string]bool
	if mp != nil {
		usedKeys = make(map[string]bool, mp.Len())
	}

	for i := 0; i < p.normal; i++ {
		src := p.Sources[i]
		param := src.Name
		switch src.Kind {
		case FromPositional:
			if mp != nil {
				if _, ok := mp.Get(param); ok {
					return nil, diagnostics.NewDuplicateBinding(p.Callee, param)
				}
			}
			out[i] = call.Positional[src.Index]
		case FromNamed:
			// A splatted sequence long enough to reach this slot supplies a
			// second value for it.
			if i < streamLen {
				return nil, diagnostics.NewDuplicateBinding(p.Callee, param)
			}
			if mp != nil {
				if _, ok := mp.Get(param); ok {
					return nil, diagnostics.NewDuplicateBinding(p.Callee, param)
				}
			}
			out[i] = call.Named[src.Index].Value
		case ResolvedAtCall:
			if i < streamLen {
				out[i] = streamValue(call, i)
				if mp != nil {
					if _, ok := mp.Get(param); ok {
						return nil, diagnostics.NewDuplicateBinding(p.Callee, param)
					}
				}
				continue
			}
			if mp != nil {
				if v, ok := mp.Get(param); ok {
					out[i] = v
					usedKeys[param] = true
					continue
				}
			}
			if di := p.defaultIdx[i]; di >= 0 {
				out[i] = sig.Defaults[di]
				continue
			}
			given := streamLen + len(call.Named)
			if mp != nil {
				given += mp.Len()
			}
			return nil, diagnostics.NewTooFewArguments(p.Callee, param, sig.MinPositional(), sig.MaxPositional(), given)
		}
	}

	if p.restPos >= 0 {
		var rest []object.Object
		if streamLen > p.normal {
			rest = make([]object.Object, 0, streamLen-p.normal)
			for j := p.normal; j < streamLen; j++ {
				rest = append(rest, streamValue(call, j))
			}
		}
		out[p.restPos] = object.NewList(rest)
	} else if streamLen > p.normal {
		// Literal overflow was rejected at bind time, so the excess arrived
		// via the splatted sequence.
		return nil, diagnostics.NewUnconsumedSplatSequence(p.Callee, streamLen-p.normal)
	}

	if p.restKey >= 0 {
		m := object.NewMap()
		if mp != nil {
			for _, k := range mp.Keys() {
				if usedKeys[k] {
					continue
				}
				v, _ := mp.Get(k)
				m.Set(k, v)
			}
		}
		// Literal named arguments are the most specific source and win over
		// mapping keys of the same name.
		for _, j := range p.restNamed {
			m.Set(call.Named[j].Name, call.Named[j].Value)
		}
		out[p.restKey] = m
	} else if mp != nil {
		var residual []string
		for _, k := range mp.Keys() {
			if !usedKeys[k] {
				residual = append(residual, k)
			}
		}
		if len(residual) > 0 {
			return nil, diagnostics.NewUnconsumedSplatMapping(p.Callee, residual)
		}
	}

	return out, nil
}
