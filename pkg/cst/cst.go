// Package cst models the parse tree produced by the external grammar engine.
//
// A tree is either a Leaf (terminal token with literal text and a source
// position) or a Branch (grammar production with ordered children). Trees are
// read-only input to the lowering engine: nothing in this module mutates a
// node after construction.
package cst

import "github.com/leapstack-labs/pylower/pkg/token"

// Node is a parse-tree node: a *Leaf or a *Branch.
type Node interface {
	// Kind reports the terminal token kind for leaves and the grammar
	// production kind for branches.
	Kind() token.Kind
}

// Leaf is a terminal token with its literal source text and position.
type Leaf struct {
	Tok   token.Kind
	Value string
	Line  int // 1-based line of the first character
	Col   int // 0-based byte offset within the line
}

// Kind returns the leaf's terminal token kind.
func (l *Leaf) Kind() token.Kind { return l.Tok }

// Branch is an interior node for a grammar production.
type Branch struct {
	Sym      token.Kind
	Children []Node
}

// Kind returns the branch's grammar production kind.
func (b *Branch) Kind() token.Kind { return b.Sym }

// NewLeaf constructs a leaf node.
func NewLeaf(tok token.Kind, value string, line, col int) *Leaf {
	return &Leaf{Tok: tok, Value: value, Line: line, Col: col}
}

// NewBranch constructs a branch node.
func NewBranch(sym token.Kind, children ...Node) *Branch {
	return &Branch{Sym: sym, Children: children}
}
