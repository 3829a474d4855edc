package cst

import "github.com/leapstack-labs/pylower/pkg/token"

// Consumer is a movable cursor over a node's children, used to match
// grammar productions whose shape varies by optional punctuation.
//
// The consumer never fails: a mismatch leaves the cursor untouched and
// returns nil. Callers that require a child decide what absence means.
type Consumer struct {
	children []Node
	index    int
}

// NewConsumer returns a consumer over the given children.
func NewConsumer(children []Node) *Consumer {
	return &Consumer{children: children}
}

// Consume returns the current child and advances past it, or nil at the end.
func (c *Consumer) Consume() Node {
	if c.index >= len(c.children) {
		return nil
	}
	node := c.children[c.index]
	c.index++
	return node
}

// ConsumeKind returns the current child and advances past it only if the
// child exists and has the given kind; otherwise it returns nil and leaves
// the cursor in place.
func (c *Consumer) ConsumeKind(k token.Kind) Node {
	if c.index >= len(c.children) || c.children[c.index].Kind() != k {
		return nil
	}
	node := c.children[c.index]
	c.index++
	return node
}

// Done reports whether every child has been consumed.
func (c *Consumer) Done() bool {
	return c.index >= len(c.children)
}
