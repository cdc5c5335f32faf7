package binding

import (
	"github.com/funvibe/dyncall/internal/diagnostics"
)

// attempt holds the working state of one binding run. One value per Bind
// call, discarded afterwards; nothing here outlives the attempt.
type attempt struct {
	sig   *Signature
	shape Shape

	sources    []ParameterSource
	defaultIdx []int
	restNamed  []int
}

func newAttempt(sig *Signature, shape Shape) *attempt {
	normal := sig.NormalCount()
	defaultIdx := make([]int, normal)
	for i := range defaultIdx {
		defaultIdx[i] = -1
	}
	return &attempt{
		sig:        sig,
		shape:      shape,
		sources:    make([]ParameterSource, sig.SlotCount()),
		defaultIdx: defaultIdx,
	}
}

// given is the argument count reported in arity diagnostics: everything the
// call site supplied literally.
func (a *attempt) given() int {
	return a.shape.PositionalCount + len(a.shape.Names)
}

// assignDirect is pass 1: walk call-site arguments in call order and bind
// whatever matches a declared parameter outright.
func (a *attempt) assignDirect() *diagnostics.Diagnostic {
	normal := a.sig.NormalCount()

	for i := 0; i < a.shape.PositionalCount && i < normal; i++ {
		a.sources[i] = ParameterSource{Kind: FromPositional, Index: i, Name: a.sig.Params[i]}
	}
	if a.shape.PositionalCount > normal && a.sig.RestPositionalIndex() < 0 {
		// Extra literal positionals can never bind without a rest slot,
		// whatever the splats carry.
		return diagnostics.NewTooManyPositional(a.sig.Name, a.sig.MinPositional(), normal, a.shape.PositionalCount)
	}

	for j, name := range a.shape.Names {
		p := a.sig.ParamIndex(name)
		if p < 0 {
			if a.sig.RestKeywordIndex() < 0 {
				return diagnostics.NewUnexpectedKeyword(a.sig.Name, name)
			}
			a.restNamed = append(a.restNamed, j)
			continue
		}
		if a.sources[p].Kind != SourceUnbound {
			return diagnostics.NewDuplicateBinding(a.sig.Name, name)
		}
		a.sources[p] = ParameterSource{Kind: FromNamed, Index: j, Name: name}
	}
	return nil
}

// fillRemaining is pass 2: walk unbound parameters in declaration order and
// pick their source. With splats in the shape the tier choice moves to
// execution time; otherwise defaults settle here and anything still missing
// is a hard failure.
func (a *attempt) fillRemaining() *diagnostics.Diagnostic {
	normal := a.sig.NormalCount()
	dynamic := a.shape.HasSplatSequence || a.shape.HasSplatMapping

	for p := 0; p < normal; p++ {
		if a.sources[p].Kind != SourceUnbound {
			continue
		}
		di := a.sig.defaultIndex(p)
		a.defaultIdx[p] = di
		if dynamic {
			a.sources[p] = ParameterSource{Kind: ResolvedAtCall, Index: di, Name: a.sig.Params[p]}
			continue
		}
		if di < 0 {
			return diagnostics.NewTooFewArguments(a.sig.Name, a.sig.Params[p], a.sig.MinPositional(), a.sig.MaxPositional(), a.given())
		}
		a.sources[p] = ParameterSource{Kind: FromDefault, Index: di, Name: a.sig.Params[p]}
	}

	if rp := a.sig.RestPositionalIndex(); rp >= 0 {
		a.sources[rp] = ParameterSource{Kind: CollectRestPositional, Index: -1, Name: "*"}
	}
	if rk := a.sig.RestKeywordIndex(); rk >= 0 {
		a.sources[rk] = ParameterSource{Kind: CollectRestMapping, Index: -1, Name: "**"}
	}
	return nil
}

func (a *attempt) plan() *Plan {
	return &Plan{
		Callee:     a.sig.Name,
		Shape:      a.shape,
		Sources:    a.sources,
		normal:     a.sig.NormalCount(),
		restPos:    a.sig.RestPositionalIndex(),
		restKey:    a.sig.RestKeywordIndex(),
		restNamed:  a.restNamed,
		defaultIdx: a.defaultIdx,
		dynamic:    a.shape.HasSplatSequence || a.shape.HasSplatMapping,
	}
}
