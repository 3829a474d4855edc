package lower

import (
	"github.com/leapstack-labs/pylower/pkg/ast"
	"github.com/leapstack-labs/pylower/pkg/cst"
)

// lowerFileInput assembles the module root: every top-level child except
// the trailing end-of-input marker, in order. The per-file diagnostics
// structure stays empty for a later stage to fill.
func (l *lowerer) lowerFileInput(n *cst.Branch) (ast.Node, error) {
	body := make([]ast.Stmt, 0, len(n.Children)-1)
	for _, child := range n.Children[:len(n.Children)-1] {
		lowered, err := l.lower(child)
		if err != nil {
			return nil, err
		}
		stmt, ok := lowered.(ast.Stmt)
		if !ok {
			return nil, malformed(child.Kind(), "top-level node does not lower to a statement")
		}
		body = append(body, stmt)
	}
	return &ast.Module{
		NodeInfo:    info(n),
		Body:        body,
		TypeIgnores: []ast.TypeIgnore{},
	}, nil
}

// lowerSimpleStmt rewrites a simple statement holding a bare expression as
// an expression statement spanning the expression child; anything already
// lowered to a statement passes through unchanged.
func (l *lowerer) lowerSimpleStmt(n *cst.Branch) (ast.Node, error) {
	lowered, err := l.lower(n.Children[0])
	if err != nil {
		return nil, err
	}
	if expr, ok := lowered.(ast.Expr); ok {
		return &ast.ExprStmt{NodeInfo: info(n.Children[0]), Value: expr}, nil
	}
	return lowered, nil
}
