package schema

// Chain is the explicit inheritance path of a schema-bearing type: a
// linear, acyclic linked extension of schemas, base-most furthest from
// the head. A derived type names its parent's chain and appends its own
// schema; nothing is discovered from the type system:
//
//	var ActorChain   = schema.Root().Extend(ActorSchema)
//	var MonsterChain = ActorChain.Extend(MonsterSchema)
//
// Chains are immutable; Extend shares the receiver's links.
type Chain struct {
	prev   *Chain
	schema *Schema
}

var emptyRoot = &Chain{}

// Root returns the sentinel chain with no schemas, the top of every
// inheritance path.
func Root() *Chain {
	return emptyRoot
}

// Extend returns a new chain with s appended as the most-derived
// schema.
func (c *Chain) Extend(s *Schema) *Chain {
	if s == nil {
		panic("schema: Extend with nil schema")
	}
	return &Chain{prev: c, schema: s}
}

// Schemas returns the chain's members, base-most first.
func (c *Chain) Schemas() []*Schema {
	n := c.Len()
	res := make([]*Schema, n)
	for at := c; at.schema != nil; at = at.prev {
		n--
		res[n] = at.schema
	}
	return res
}

// Len returns the number of schemas in the chain.
func (c *Chain) Len() int {
	n := 0
	for at := c; at.schema != nil; at = at.prev {
		n++
	}
	return n
}
