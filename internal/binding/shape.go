package binding

import (
	"strconv"
	"strings"

	"github.com/funvibe/dyncall/internal/object"
)

// ArgumentKind tags a call-site argument. The set is closed; ShapeOf and the
// binder switch over it exhaustively.
type ArgumentKind uint8

const (
	ArgPositional ArgumentKind = iota
	ArgNamed
	ArgSplatSequence
	ArgSplatMapping
	ArgInstance
)

// Argument is the shape-level description of one call-site argument.
// Name is set only for ArgNamed. No value is attached: shapes must be
// computable without evaluating anything.
type Argument struct {
	Kind ArgumentKind
	Name string
}

// Shape classifies a call structurally: how many positionals, which names,
// whether splats are present, whether a bound-instance argument was stripped.
// Two calls with equal shapes route arguments identically (modulo splat
// contents, which are per-call data).
type Shape struct {
	PositionalCount  int
	Names            []string // call-site order, no duplicates (enforced upstream)
	HasSplatSequence bool
	HasSplatMapping  bool
	HasInstance      bool
}

// ShapeOf classifies a tagged argument list in one linear pass.
// An ArgInstance tag is only recognized in the leading position.
func ShapeOf(args []Argument) Shape {
	var s Shape
	for i, a := range args {
		switch a.Kind {
		case ArgPositional:
			s.PositionalCount++
		case ArgNamed:
			s.Names = append(s.Names, a.Name)
		case ArgSplatSequence:
			s.HasSplatSequence = true
		case ArgSplatMapping:
			s.HasSplatMapping = true
		case ArgInstance:
			if i == 0 {
				s.HasInstance = true
			}
		}
	}
	return s
}

func (s Shape) NamedCount() int { return len(s.Names) }

// IsSimple reports whether the call is purely positional. Simple shapes
// qualify for the cheap token guard; anything touching names or splats
// depends on instance data.
func (s Shape) IsSimple() bool {
	return len(s.Names) == 0 && !s.HasSplatSequence && !s.HasSplatMapping
}

// Key renders the shape as a comparable string for guard checks. Names are
// length-prefixed so the encoding stays injective even when a name contains
// a delimiter character.
func (s Shape) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.PositionalCount))
	b.WriteByte('|')
	for _, n := range s.Names {
		b.WriteString(strconv.Itoa(len(n)))
		b.WriteByte(':')
		b.WriteString(n)
	}
	if s.HasSplatSequence {
		b.WriteString("|*")
	}
	if s.HasSplatMapping {
		b.WriteString("|**")
	}
	if s.HasInstance {
		b.WriteString("|@")
	}
	return b.String()
}

// NamedArg pairs a call-site keyword with its value.
type NamedArg struct {
	Name  string
	Value object.Object
}

// Call carries one concrete call: the runtime values behind a Shape.
// Instance, SplatSequence and SplatMapping are nil when absent.
type Call struct {
	Instance      object.Object
	Positional    []object.Object
	Named         []NamedArg
	SplatSequence object.Sequence
	SplatMapping  object.Mapping
}

// Shape derives the structural classification of the call.
func (c *Call) Shape() Shape {
	s := Shape{
		PositionalCount:  len(c.Positional),
		HasSplatSequence: c.SplatSequence != nil,
		HasSplatMapping:  c.SplatMapping != nil,
		HasInstance:      c.Instance != nil,
	}
	if len(c.Named) > 0 {
		s.Names = make([]string, len(c.Named))
		for i, n := range c.Named {
			s.Names[i] = n.Name
		}
	}
	return s
}
