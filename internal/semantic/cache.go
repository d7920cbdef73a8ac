package semantic

import (
	"pup/internal/ast"
	"pup/internal/types"
)

// TypeCache memoizes inferred expression types by node identity. A cache
// belongs to one analysis pass; it is reset before the next script.
type TypeCache struct {
	entries map[ast.Expr]types.Type
	hits    int
	misses  int
}

func NewTypeCache() *TypeCache {
	return &TypeCache{entries: make(map[ast.Expr]types.Type)}
}

// Get returns the cached type of e and counts the lookup.
func (c *TypeCache) Get(e ast.Expr) (types.Type, bool) {
	t, ok := c.entries[e]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return t, ok
}

// TypeOf returns the cached type without touching the counters.
func (c *TypeCache) TypeOf(e ast.Expr) types.Type {
	if t, ok := c.entries[e]; ok {
		return t
	}
	return types.Unknown
}

func (c *TypeCache) Put(e ast.Expr, t types.Type) {
	c.entries[e] = t
}

func (c *TypeCache) Reset() {
	c.entries = make(map[ast.Expr]types.Type)
	c.hits = 0
	c.misses = 0
}

func (c *TypeCache) Len() int    { return len(c.entries) }
func (c *TypeCache) Hits() int   { return c.hits }
func (c *TypeCache) Misses() int { return c.misses }
