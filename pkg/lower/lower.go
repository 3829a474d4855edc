// Package lower rewrites parse trees into the reference front end's AST.
//
// # Usage
//
//	mod, err := lower.Module(root, version.New(3, 12))
//	if err != nil {
//	    // handle error
//	}
//
// A pass never mutates its input tree and builds a fresh AST each time, so
// lowering independent trees concurrently needs no synchronization. Failures
// surface as one of three catchable error kinds: *UnsupportedSyntaxError,
// *UnimplementedError, or *MalformedTreeError.
package lower

import (
	"github.com/leapstack-labs/pylower/pkg/ast"
	"github.com/leapstack-labs/pylower/pkg/cst"
	"github.com/leapstack-labs/pylower/pkg/literal"
	"github.com/leapstack-labs/pylower/pkg/token"
	"github.com/leapstack-labs/pylower/pkg/version"
)

// Parser produces a parse tree from source text. The external grammar
// engine satisfies this; the lowering engine treats it as a black box.
type Parser interface {
	Parse(source string) (cst.Node, error)
}

// Option configures a lowering pass.
type Option func(*lowerer)

// WithEvaluator substitutes the literal-evaluation capability used for
// NUMBER and STRING leaves. The default is literal.Python.
func WithEvaluator(e literal.Evaluator) Option {
	return func(l *lowerer) { l.literals = e }
}

// Module lowers a whole-file parse tree rooted at a file_input node into a
// Module. The target version gates version-sensitive productions for the
// duration of the pass.
func Module(root cst.Node, target version.Version, opts ...Option) (*ast.Module, error) {
	node, err := newLowerer(target, opts).lower(root)
	if err != nil {
		return nil, err
	}
	mod, ok := node.(*ast.Module)
	if !ok {
		return nil, malformed(root.Kind(), "root does not lower to a module")
	}
	return mod, nil
}

// Expr lowers a single expression subtree under Load context.
func Expr(node cst.Node, target version.Version, opts ...Option) (ast.Expr, error) {
	return newLowerer(target, opts).expr(node)
}

// Source parses source text with the given parser and lowers the result.
func Source(p Parser, source string, target version.Version, opts ...Option) (*ast.Module, error) {
	root, err := p.Parse(source)
	if err != nil {
		return nil, err
	}
	return Module(root, target, opts...)
}

// lowerer is the per-pass state: the immutable target version, the injected
// literal evaluator, and the ambient expression context.
type lowerer struct {
	target   version.Version
	literals literal.Evaluator
	ctx      ast.ExprContext
}

func newLowerer(target version.Version, opts []Option) *lowerer {
	l := &lowerer{
		target:   target,
		literals: literal.Python{},
		ctx:      ast.Load,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// withContext runs fn with the ambient expression context overridden,
// restoring the previous value on every exit path.
func (l *lowerer) withContext(ctx ast.ExprContext, fn func() error) error {
	prev := l.ctx
	l.ctx = ctx
	defer func() { l.ctx = prev }()
	return fn()
}

// lower dispatches a node to the routine registered for its kind. The
// switch is the dispatch table: one arm per supported grammar production or
// terminal token, with unhandled kinds reported by name.
func (l *lowerer) lower(node cst.Node) (ast.Node, error) {
	switch n := node.(type) {
	case *cst.Leaf:
		switch n.Tok {
		case token.NAME:
			return l.lowerName(n)
		case token.NUMBER:
			return l.lowerNumber(n)
		case token.STRING:
			return l.lowerString(n)
		case token.COLON:
			// A bare colon subscript is a full open slice.
			return &ast.Slice{NodeInfo: info(n)}, nil
		}
		return nil, &UnimplementedError{Kind: n.Tok}
	case *cst.Branch:
		switch n.Sym {
		case token.FileInput:
			return l.lowerFileInput(n)
		case token.SimpleStmt:
			return l.lowerSimpleStmt(n)
		case token.Atom:
			return l.lowerAtom(n)
		case token.Expr, token.XorExpr, token.AndExpr, token.ShiftExpr,
			token.ArithExpr, token.Term:
			return l.lowerBinOpChain(n)
		case token.Comparison:
			return l.lowerComparison(n)
		case token.StarExpr:
			return l.lowerStarExpr(n)
		case token.NotTest:
			return l.lowerNotTest(n)
		case token.AndTest:
			return l.lowerBoolOpChain(n, ast.And)
		case token.OrTest:
			return l.lowerBoolOpChain(n, ast.Or)
		case token.Test:
			return l.lowerTest(n)
		case token.Factor:
			return l.lowerFactor(n)
		case token.Power:
			return l.lowerPower(n)
		case token.TestlistGexp:
			return l.lowerTestlistGexp(n, n)
		case token.ExprList:
			return l.lowerExprList(n)
		case token.NamedExprTest:
			return l.lowerNamedExpr(n.Sym, n.Children)
		case token.Subscript:
			return l.lowerSubscript(n)
		case token.SubscriptList:
			return l.lowerSubscriptList(n)
		case token.TypeParam:
			return l.lower(n.Children[0])
		case token.TypeVar:
			return l.lowerTypeVar(n)
		case token.ParamSpec:
			return l.lowerParamSpec(n)
		case token.TypeVarTuple:
			return l.lowerTypeVarTuple(n)
		}
		return nil, &UnimplementedError{Kind: n.Sym}
	}
	return nil, malformed(node.Kind(), "unknown node representation %T", node)
}

// expr lowers a node and requires the result to be an expression.
func (l *lowerer) expr(node cst.Node) (ast.Expr, error) {
	lowered, err := l.lower(node)
	if err != nil {
		return nil, err
	}
	expr, ok := lowered.(ast.Expr)
	if !ok {
		return nil, malformed(node.Kind(), "expected an expression")
	}
	return expr, nil
}

// info builds the NodeInfo for a lowered node from its parse-tree span.
func info(node cst.Node) ast.NodeInfo {
	return ast.NodeInfo{Span: cst.RangeOf(node)}
}

// spanned builds a NodeInfo from an already-computed span.
func spanned(s token.Span) ast.NodeInfo {
	return ast.NodeInfo{Span: s}
}
