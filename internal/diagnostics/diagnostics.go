// Package diagnostics defines the typed error taxonomy for call binding.
// Every failure the binder or a compiled plan can produce is one of the
// codes below; hosts render them directly or read the structured fields.
package diagnostics

import (
	"fmt"
	"strings"
)

type Code int

const (
	CodeTooFewArguments Code = iota + 1
	CodeTooManyPositional
	CodeUnexpectedKeyword
	CodeDuplicateBinding
	CodeUnconsumedSplatSequence
	CodeUnconsumedSplatMapping
)

func (c Code) String() string {
	switch c {
	case CodeTooFewArguments:
		return "TooFewArguments"
	case CodeTooManyPositional:
		return "TooManyPositional"
	case CodeUnexpectedKeyword:
		return "UnexpectedKeyword"
	case CodeDuplicateBinding:
		return "DuplicateBinding"
	case CodeUnconsumedSplatSequence:
		return "UnconsumedSplatSequence"
	case CodeUnconsumedSplatMapping:
		return "UnconsumedSplatMapping"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Diagnostic is a call-time, recoverable-by-caller binding failure.
// Which fields are populated depends on Code; Error renders a message
// matching the usual dynamic-language phrasing.
type Diagnostic struct {
	Code      Code
	Callee    string
	Parameter string   // TooFewArguments, DuplicateBinding
	Keyword   string   // UnexpectedKeyword
	Given     int      // arguments supplied (TooFew/TooMany)
	Required  int      // minimum accepted (TooFew/TooMany)
	Max       int      // maximum accepted (TooFew/TooMany)
	Count     int      // UnconsumedSplatSequence
	Keys      []string // UnconsumedSplatMapping, in mapping order
}

func (d *Diagnostic) Error() string {
	name := d.Callee
	if name == "" {
		name = "<anonymous>"
	}
	switch d.Code {
	case CodeTooFewArguments:
		if d.Required == d.Max {
			return fmt.Sprintf("%s() takes exactly %d arguments (%d given)", name, d.Required, d.Given)
		}
		return fmt.Sprintf("%s() takes at least %d arguments (%d given)", name, d.Required, d.Given)
	case CodeTooManyPositional:
		if d.Required == d.Max {
			return fmt.Sprintf("%s() takes exactly %d arguments (%d given)", name, d.Max, d.Given)
		}
		return fmt.Sprintf("%s() takes at most %d arguments (%d given)", name, d.Max, d.Given)
	case CodeUnexpectedKeyword:
		return fmt.Sprintf("%s() got an unexpected keyword argument '%s'", name, d.Keyword)
	case CodeDuplicateBinding:
		return fmt.Sprintf("%s() got multiple values for argument '%s'", name, d.Parameter)
	case CodeUnconsumedSplatSequence:
		return fmt.Sprintf("%s() got %d extra arguments from sequence expansion", name, d.Count)
	case CodeUnconsumedSplatMapping:
		quoted := make([]string, len(d.Keys))
		for i, k := range d.Keys {
			quoted[i] = "'" + k + "'"
		}
		return fmt.Sprintf("%s() got unexpected keyword arguments from mapping expansion: %s", name, strings.Join(quoted, ", "))
	default:
		return fmt.Sprintf("%s() binding failed (%s)", name, d.Code)
	}
}

func NewTooFewArguments(callee, parameter string, required, max, given int) *Diagnostic {
	return &Diagnostic{
		Code:      CodeTooFewArguments,
		Callee:    callee,
		Parameter: parameter,
		Required:  required,
		Max:       max,
		Given:     given,
	}
}

func NewTooManyPositional(callee string, required, max, given int) *Diagnostic {
	return &Diagnostic{
		Code:     CodeTooManyPositional,
		Callee:   callee,
		Required: required,
		Max:      max,
		Given:    given,
	}
}

func NewUnexpectedKeyword(callee, keyword string) *Diagnostic {
	return &Diagnostic{Code: CodeUnexpectedKeyword, Callee: callee, Keyword: keyword}
}

func NewDuplicateBinding(callee, parameter string) *Diagnostic {
	return &Diagnostic{Code: CodeDuplicateBinding, Callee: callee, Parameter: parameter}
}

func NewUnconsumedSplatSequence(callee string, count int) *Diagnostic {
	return &Diagnostic{Code: CodeUnconsumedSplatSequence, Callee: callee, Count: count}
}

func NewUnconsumedSplatMapping(callee string, keys []string) *Diagnostic {
	return &Diagnostic{Code: CodeUnconsumedSplatMapping, Callee: callee, Keys: keys}
}
