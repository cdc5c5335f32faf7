package object

import (
	"fmt"
	"hash/fnv"
	"strconv"
)

type ObjectType string

const (
	INTEGER_OBJ = "INTEGER"
	FLOAT_OBJ   = "FLOAT"
	BOOLEAN_OBJ = "BOOLEAN"
	STRING_OBJ  = "STRING"
	NIL_OBJ     = "NIL"
	LIST_OBJ    = "LIST"
	MAP_OBJ     = "MAP"
)

// Object is the minimal value contract the binding engine needs from a host.
// The engine routes values without interpreting them; Inspect and Hash exist
// for diagnostics and tooling only.
type Object interface {
	Type() ObjectType
	Inspect() string
	Hash() uint32
}

// Sequence is what a splat-sequence argument must support: indexed access
// without copying. Rest-positional slots collect into a List.
type Sequence interface {
	Len() int
	Get(i int) Object
}

// Mapping is what a splat-mapping argument must support: key lookup plus
// ordered key listing, so residual-key diagnostics stay deterministic.
type Mapping interface {
	Len() int
	Keys() []string
	Get(name string) (Object, bool)
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) Hash() uint32     { return uint32(i.Value) ^ uint32(i.Value>>32) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return strconv.FormatFloat(f.Value, 'g', -1, 64) }
func (f *Float) Hash() uint32     { return hashString(f.Inspect()) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return fmt.Sprintf("%q", s.Value) }
func (s *String) Hash() uint32     { return hashString(s.Value) }

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }
func (n *Nil) Hash() uint32     { return 7 }
