package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pup/internal/ast"
	"pup/internal/types"
)

func TestTypeCache(t *testing.T) {
	c := NewTypeCache()
	lit := &ast.LiteralExpr{Kind: ast.NUMBER, Value: "1"}

	_, ok := c.Get(lit)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Misses())

	c.Put(lit, types.I32)
	got, ok := c.Get(lit)
	require.True(t, ok)
	assert.True(t, got.Equal(types.I32))
	assert.Equal(t, 1, c.Hits())
	assert.Equal(t, 1, c.Len())

	// identity, not structure
	other := &ast.LiteralExpr{Kind: ast.NUMBER, Value: "1"}
	assert.Equal(t, types.KindUnknown, c.TypeOf(other).Kind)

	c.Reset()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Hits())
	assert.Zero(t, c.Misses())
}

func TestTypeCacheIsPerPass(t *testing.T) {
	first := parseScript(t, `extends Node
struct A { x: int = 1 }
struct B extends A { y: int = 2 }
`)
	second := parseScript(t, "extends Node\nvar n = 4\n")

	a := NewAnalyzer(nil)
	info1, errs := a.Analyze(first)
	require.Empty(t, errs)
	info2, errs := a.Analyze(second)
	require.Empty(t, errs)

	require.NotSame(t, info1.Types, info2.Types)

	// B shares A's default expression, so typing it again is a hit
	assert.GreaterOrEqual(t, info1.Types.Hits(), 1)

	def := info1.Struct("A").Fields[0].Default
	assert.True(t, info1.TypeOf(def).Equal(types.I32))
	assert.Equal(t, types.KindUnknown, info2.TypeOf(def).Kind)
	assert.True(t, info2.TypeOf(second.Variables[0].Value).Equal(types.I32))
}
