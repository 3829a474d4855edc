package lower

import (
	"github.com/leapstack-labs/pylower/pkg/ast"
	"github.com/leapstack-labs/pylower/pkg/cst"
	"github.com/leapstack-labs/pylower/pkg/token"
)

// lowerAtom lowers parenthesized forms, collection displays and their
// comprehension variants, ellipsis dot-triples, and the legacy backtick
// form.
func (l *lowerer) lowerAtom(n *cst.Branch) (ast.Node, error) {
	switch n.Children[0].Kind() {
	case token.LPAR:
		if len(n.Children) == 2 {
			return &ast.Tuple{NodeInfo: info(n), Ctx: l.ctx}, nil
		}
		if inner, ok := n.Children[1].(*cst.Branch); ok && inner.Sym == token.TestlistGexp {
			// Tuples and parenthesized generator expressions span the
			// enclosing parentheses.
			return l.lowerTestlistGexp(inner, n)
		}
		// A parenthesized expression keeps the inner node's span.
		return l.lower(n.Children[1])
	case token.LSQB:
		return l.lowerListAtom(n)
	case token.LBRACE:
		return l.lowerBraceAtom(n)
	case token.DOT:
		if len(n.Children) != 3 || n.Children[1].Kind() != token.DOT || n.Children[2].Kind() != token.DOT {
			return nil, malformed(n.Sym, "dotted atom is not an ellipsis")
		}
		return &ast.Constant{NodeInfo: info(n), Value: ast.EllipsisValue}, nil
	case token.BACKQUOTE:
		// Legacy backtick expression: lower to a call of the repr builtin.
		callee := &ast.Name{NodeInfo: info(n), ID: "repr", Ctx: ast.Load}
		arg, err := l.expr(n.Children[1])
		if err != nil {
			return nil, err
		}
		return &ast.Call{NodeInfo: info(n), Func: callee, Args: []ast.Expr{arg}}, nil
	}
	return nil, &UnimplementedError{Kind: n.Sym}
}

// lowerTestlistGexp lowers a comma-separated expression list, or a
// generator expression when a comprehension clause follows the first
// element. The parent node supplies the span when the list sits inside
// parentheses.
func (l *lowerer) lowerTestlistGexp(n *cst.Branch, parent cst.Node) (ast.Node, error) {
	if n.Children[1].Kind() == token.OldCompFor {
		elt, err := l.expr(n.Children[0])
		if err != nil {
			return nil, err
		}
		comps, err := l.lowerComprehensionClauses(n.Children[1])
		if err != nil {
			return nil, err
		}
		return &ast.GeneratorExp{NodeInfo: info(parent), Elt: elt, Generators: comps}, nil
	}
	elts, err := l.exprsAtEvenIndexes(n.Children)
	if err != nil {
		return nil, err
	}
	return &ast.Tuple{NodeInfo: info(parent), Elts: elts, Ctx: l.ctx}, nil
}

// lowerExprList lowers a comma-separated target list (e.g. "for x, y in z")
// into a tuple under the ambient context.
func (l *lowerer) lowerExprList(n *cst.Branch) (ast.Node, error) {
	elts, err := l.exprsAtEvenIndexes(n.Children)
	if err != nil {
		return nil, err
	}
	return &ast.Tuple{NodeInfo: info(n), Elts: elts, Ctx: l.ctx}, nil
}

// lowerListAtom lowers [...] displays and list comprehensions.
func (l *lowerer) lowerListAtom(n *cst.Branch) (ast.Node, error) {
	if len(n.Children) == 2 {
		return &ast.List{NodeInfo: info(n), Ctx: l.ctx}, nil
	}
	inner, ok := n.Children[1].(*cst.Branch)
	if !ok || inner.Sym != token.ListMaker {
		elt, err := l.expr(n.Children[1])
		if err != nil {
			return nil, err
		}
		return &ast.List{NodeInfo: info(n), Elts: []ast.Expr{elt}, Ctx: l.ctx}, nil
	}
	if inner.Children[1].Kind() == token.OldCompFor {
		elt, err := l.expr(inner.Children[0])
		if err != nil {
			return nil, err
		}
		comps, err := l.lowerComprehensionClauses(inner.Children[1])
		if err != nil {
			return nil, err
		}
		return &ast.ListComp{NodeInfo: info(n), Elt: elt, Generators: comps}, nil
	}
	elts, err := l.exprsAtEvenIndexes(inner.Children)
	if err != nil {
		return nil, err
	}
	return &ast.List{NodeInfo: info(n), Elts: elts, Ctx: l.ctx}, nil
}

// lowerBraceAtom lowers {...} displays: sets, dicts, and their
// comprehension variants. Plain elements, starred elements, double-starred
// merges, and key:value pairs are separated with the consumer; a
// comprehension clause after exactly one accumulated element (or pair)
// converts the whole display in place.
func (l *lowerer) lowerBraceAtom(n *cst.Branch) (ast.Node, error) {
	if len(n.Children) == 2 {
		return &ast.Dict{NodeInfo: info(n)}, nil
	}
	inner, ok := n.Children[1].(*cst.Branch)
	if !ok || inner.Sym != token.DictSetMaker {
		elt, err := l.expr(n.Children[1])
		if err != nil {
			return nil, err
		}
		return &ast.Set{NodeInfo: info(n), Elts: []ast.Expr{elt}}, nil
	}
	consumer := cst.NewConsumer(inner.Children)
	isDict := false
	var keys []ast.Expr
	var values []ast.Expr
	var elts []ast.Expr
	for !consumer.Done() {
		if consumer.ConsumeKind(token.DOUBLESTAR) != nil {
			isDict = true
			valueNode := consumer.Consume()
			if valueNode == nil {
				return nil, malformed(inner.Sym, "missing value after double star")
			}
			value, err := l.expr(valueNode)
			if err != nil {
				return nil, err
			}
			keys = append(keys, nil)
			values = append(values, value)
		} else if starExpr := consumer.ConsumeKind(token.StarExpr); starExpr != nil {
			value, err := l.expr(starExpr.(*cst.Branch).Children[1])
			if err != nil {
				return nil, err
			}
			elts = append(elts, &ast.Starred{NodeInfo: info(starExpr), Value: value, Ctx: l.ctx})
		} else {
			keyNode := consumer.Consume()
			if keyNode == nil {
				return nil, malformed(inner.Sym, "missing element")
			}
			if walrus := consumer.ConsumeKind(token.COLONEQUAL); walrus != nil {
				valueNode := consumer.Consume()
				if valueNode == nil {
					return nil, malformed(inner.Sym, "missing assignment expression value")
				}
				elt, err := l.lowerNamedExpr(inner.Sym, []cst.Node{keyNode, walrus, valueNode})
				if err != nil {
					return nil, err
				}
				elts = append(elts, elt)
			} else if consumer.ConsumeKind(token.COLON) != nil {
				key, err := l.expr(keyNode)
				if err != nil {
					return nil, err
				}
				valueNode := consumer.Consume()
				if valueNode == nil {
					return nil, malformed(inner.Sym, "missing dict value")
				}
				value, err := l.expr(valueNode)
				if err != nil {
					return nil, err
				}
				keys = append(keys, key)
				values = append(values, value)
				isDict = true
			} else {
				elt, err := l.expr(keyNode)
				if err != nil {
					return nil, err
				}
				elts = append(elts, elt)
			}
			if compFor := consumer.ConsumeKind(token.CompFor); compFor != nil {
				comps, err := l.lowerComprehensionClauses(compFor)
				if err != nil {
					return nil, err
				}
				if isDict {
					if len(keys) != 1 || len(values) != 1 || len(elts) != 0 {
						return nil, malformed(inner.Sym, "comprehension clause after %d dict entries", len(keys))
					}
					return &ast.DictComp{
						NodeInfo:   info(n),
						Key:        keys[0],
						Value:      values[0],
						Generators: comps,
					}, nil
				}
				if len(elts) != 1 || len(keys) != 0 || len(values) != 0 {
					return nil, malformed(inner.Sym, "comprehension clause after %d set elements", len(elts))
				}
				return &ast.SetComp{NodeInfo: info(n), Elt: elts[0], Generators: comps}, nil
			}
		}
		if !consumer.Done() {
			if consumer.ConsumeKind(token.COMMA) == nil {
				return nil, malformed(inner.Sym, "missing comma between elements")
			}
		}
	}
	if isDict {
		if len(elts) != 0 {
			return nil, malformed(inner.Sym, "dict display with bare elements")
		}
		return &ast.Dict{NodeInfo: info(n), Keys: keys, Values: values}, nil
	}
	if len(keys) != 0 || len(values) != 0 {
		return nil, malformed(inner.Sym, "set display with key/value pairs")
	}
	return &ast.Set{NodeInfo: info(n), Elts: elts}, nil
}

// exprsAtEvenIndexes lowers every even-indexed child, skipping the
// separating punctuation between them.
func (l *lowerer) exprsAtEvenIndexes(children []cst.Node) ([]ast.Expr, error) {
	var elts []ast.Expr
	for i := 0; i < len(children); i += 2 {
		elt, err := l.expr(children[i])
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	return elts, nil
}
