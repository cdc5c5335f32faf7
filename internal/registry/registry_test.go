package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/dyncall/internal/object"
)

func sum(_ object.Object, args []object.Object) object.Object {
	total := int64(0)
	for _, a := range args {
		total += a.(*object.Integer).Value
	}
	return &object.Integer{Value: total}
}

func TestDefineAndLookup(t *testing.T) {
	reg := New()
	c, err := reg.Define("add", []string{"a", "b"}, nil, false, false, sum)
	require.NoError(t, err)
	require.NotNil(t, c)

	got, ok := reg.Lookup("add")
	require.True(t, ok)
	assert.Same(t, c, got)

	_, err = reg.Define("add", []string{"x"}, nil, false, false, nil)
	assert.Error(t, err, "redefining a name must fail")

	_, err = reg.Define("bad", []string{"a", "a"}, nil, false, false, nil)
	assert.Error(t, err, "invalid signatures must be rejected")

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestNamesSorted(t *testing.T) {
	reg := New()
	reg.Define("zed", nil, nil, false, false, nil)
	reg.Define("add", nil, nil, false, false, nil)
	assert.Equal(t, []string{"add", "zed"}, reg.Names())
}

func TestSetDefaultsRotatesToken(t *testing.T) {
	reg := New()
	c, err := reg.Define("f", []string{"a", "b"}, []object.Object{&object.Integer{Value: 1}}, false, false, nil)
	require.NoError(t, err)

	before := c.Signature()
	require.NoError(t, c.SetDefaults([]object.Object{&object.Integer{Value: 2}}))
	after := c.Signature()

	assert.NotSame(t, before, after)
	assert.NotEqual(t, before.Identity, after.Identity, "defaults change must rotate the token")
	assert.EqualValues(t, 2, after.Defaults[0].(*object.Integer).Value)

	assert.Error(t, c.SetDefaults(make([]object.Object, 3)), "too many defaults must be rejected")
}

func TestSetTargetRotatesToken(t *testing.T) {
	reg := New()
	c, err := reg.Define("f", []string{"a"}, nil, false, false, nil)
	require.NoError(t, err)

	before := c.Signature().Identity
	require.NoError(t, c.SetTarget(sum))
	assert.NotEqual(t, before, c.Signature().Identity)

	out := c.Invoke(nil, []object.Object{&object.Integer{Value: 7}})
	assert.EqualValues(t, 7, out.(*object.Integer).Value)
}

func TestInvokeWithoutTarget(t *testing.T) {
	reg := New()
	c, err := reg.Define("f", nil, nil, false, false, nil)
	require.NoError(t, err)
	_, ok := c.Invoke(nil, nil).(*object.Nil)
	assert.True(t, ok, "nil target should yield nil object")
}
