package cst

import (
	"strings"

	"github.com/leapstack-labs/pylower/pkg/token"
)

// RangeOf computes the source span covered by a node.
//
// For a leaf the start is its recorded position; the end accounts for
// newlines embedded in the literal text (block strings). For a branch the
// span is the union of the first child's start and the last child's end.
// Spans always derive from literal leaf positions, never synthesized.
func RangeOf(node Node) token.Span {
	switch n := node.(type) {
	case *Leaf:
		return leafRange(n)
	case *Branch:
		begin := RangeOf(n.Children[0])
		end := RangeOf(n.Children[len(n.Children)-1])
		return token.Union(begin, end)
	}
	return token.Span{}
}

func leafRange(leaf *Leaf) token.Span {
	newlines := strings.Count(leaf.Value, "\n")
	endCol := leaf.Col + len(leaf.Value)
	if newlines > 0 {
		endCol = len(leaf.Value) - strings.LastIndexByte(leaf.Value, '\n') - 1
	}
	return token.Span{
		Start: token.Position{Line: leaf.Line, Column: leaf.Col},
		End:   token.Position{Line: leaf.Line + newlines, Column: endCol},
	}
}
