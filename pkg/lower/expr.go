package lower

import (
	"github.com/leapstack-labs/pylower/pkg/ast"
	"github.com/leapstack-labs/pylower/pkg/cst"
	"github.com/leapstack-labs/pylower/pkg/token"
)

// binaryOps maps operator tokens to binary operators.
var binaryOps = map[token.Kind]ast.Operator{
	token.PLUS:        ast.Add,
	token.MINUS:       ast.Sub,
	token.STAR:        ast.Mult,
	token.SLASH:       ast.Div,
	token.AT:          ast.MatMult,
	token.DOUBLESLASH: ast.FloorDiv,
	token.PERCENT:     ast.Mod,
	token.DOUBLESTAR:  ast.Pow,
	token.LEFTSHIFT:   ast.LShift,
	token.RIGHTSHIFT:  ast.RShift,
	token.AMPER:       ast.BitAnd,
	token.VBAR:        ast.BitOr,
	token.CIRCUMFLEX:  ast.BitXor,
}

// compareOps maps symbolic comparison tokens to comparison operators.
// Keyword comparisons (is, in, and their negations) resolve by text.
var compareOps = map[token.Kind]ast.CmpOp{
	token.EQEQUAL:      ast.Eq,
	token.NOTEQUAL:     ast.NotEq,
	token.LESS:         ast.Lt,
	token.GREATER:      ast.Gt,
	token.LESSEQUAL:    ast.LtE,
	token.GREATEREQUAL: ast.GtE,
}

// unaryOps maps factor sign tokens to unary operators.
var unaryOps = map[token.Kind]ast.UnaryOperator{
	token.PLUS:  ast.UAdd,
	token.MINUS: ast.USub,
	token.TILDE: ast.Invert,
}

// ---------- Operator chains ----------

// lowerBinOpChain left-folds an alternating operand/operator child sequence.
// Each fold step's span unions the running left span with the new right
// operand's span, which reproduces left-associativity.
func (l *lowerer) lowerBinOpChain(n *cst.Branch) (ast.Node, error) {
	left, err := l.expr(n.Children[0])
	if err != nil {
		return nil, err
	}
	begin := cst.RangeOf(n.Children[0])
	for i := 2; i < len(n.Children); i += 2 {
		operator := n.Children[i-1]
		op, ok := binaryOps[operator.Kind()]
		if !ok {
			return nil, malformed(n.Sym, "unexpected binary operator %s", operator.Kind())
		}
		right, err := l.expr(n.Children[i])
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{
			NodeInfo: spanned(token.Union(begin, cst.RangeOf(n.Children[i]))),
			Left:     left,
			Op:       op,
			Right:    right,
		}
	}
	return left, nil
}

// lowerComparison lowers a chained comparison into a single node with
// parallel operator and comparator lists.
func (l *lowerer) lowerComparison(n *cst.Branch) (ast.Node, error) {
	left, err := l.expr(n.Children[0])
	if err != nil {
		return nil, err
	}
	var ops []ast.CmpOp
	var comparators []ast.Expr
	for i := 2; i < len(n.Children); i += 2 {
		op, err := l.comparisonOp(n.Children[i-1])
		if err != nil {
			return nil, err
		}
		right, err := l.expr(n.Children[i])
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}
	return &ast.Compare{
		NodeInfo:    info(n),
		Left:        left,
		Ops:         ops,
		Comparators: comparators,
	}, nil
}

// comparisonOp resolves a comparison operator node: a symbolic token, a
// keyword leaf (is, in), or a two-leaf composite (is not, not in).
func (l *lowerer) comparisonOp(node cst.Node) (ast.CmpOp, error) {
	switch op := node.(type) {
	case *cst.Leaf:
		if op.Tok == token.NAME {
			switch op.Value {
			case "is":
				return ast.Is, nil
			case "in":
				return ast.In, nil
			}
			return 0, malformed(token.Comparison, "unexpected comparison keyword %q", op.Value)
		}
		if cmp, ok := compareOps[op.Tok]; ok {
			return cmp, nil
		}
		return 0, malformed(token.Comparison, "unexpected comparison operator %s", op.Tok)
	case *cst.Branch:
		if len(op.Children) != 2 {
			return 0, malformed(op.Sym, "composite comparison operator with %d children", len(op.Children))
		}
		first, ok1 := op.Children[0].(*cst.Leaf)
		second, ok2 := op.Children[1].(*cst.Leaf)
		if !ok1 || !ok2 {
			return 0, malformed(op.Sym, "composite comparison operator is not two tokens")
		}
		if first.Value == "not" && second.Value == "in" {
			return ast.NotIn, nil
		}
		if first.Value == "is" && second.Value == "not" {
			return ast.IsNot, nil
		}
		return 0, malformed(op.Sym, "unexpected composite comparison %q %q", first.Value, second.Value)
	}
	return 0, malformed(node.Kind(), "unexpected comparison operator node")
}

// lowerBoolOpChain lowers an and/or chain into one BoolOp node.
func (l *lowerer) lowerBoolOpChain(n *cst.Branch, op ast.BoolOperator) (ast.Node, error) {
	var values []ast.Expr
	for i := 0; i < len(n.Children); i += 2 {
		operand, err := l.expr(n.Children[i])
		if err != nil {
			return nil, err
		}
		values = append(values, operand)
	}
	return &ast.BoolOp{NodeInfo: info(n), Op: op, Values: values}, nil
}

func (l *lowerer) lowerNotTest(n *cst.Branch) (ast.Node, error) {
	operand, err := l.expr(n.Children[1])
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{NodeInfo: info(n), Op: ast.Not, Operand: operand}, nil
}

// lowerTest lowers a conditional expression: <body> if <test> else <orelse>.
func (l *lowerer) lowerTest(n *cst.Branch) (ast.Node, error) {
	if len(n.Children) != 5 || leafValue(n.Children[1]) != "if" || leafValue(n.Children[3]) != "else" {
		return nil, malformed(n.Sym, "conditional expression does not have if/else shape")
	}
	test, err := l.expr(n.Children[2])
	if err != nil {
		return nil, err
	}
	body, err := l.expr(n.Children[0])
	if err != nil {
		return nil, err
	}
	orElse, err := l.expr(n.Children[4])
	if err != nil {
		return nil, err
	}
	return &ast.IfExp{NodeInfo: info(n), Test: test, Body: body, OrElse: orElse}, nil
}

func (l *lowerer) lowerFactor(n *cst.Branch) (ast.Node, error) {
	op, ok := unaryOps[n.Children[0].Kind()]
	if !ok {
		return nil, malformed(n.Sym, "unexpected factor operator %s", n.Children[0].Kind())
	}
	operand, err := l.expr(n.Children[1])
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{NodeInfo: info(n), Op: op, Operand: operand}, nil
}

func (l *lowerer) lowerStarExpr(n *cst.Branch) (ast.Node, error) {
	value, err := l.expr(n.Children[1])
	if err != nil {
		return nil, err
	}
	return &ast.Starred{NodeInfo: info(n), Value: value, Ctx: l.ctx}, nil
}

// ---------- Postfix chains ----------

// lowerPower handles the power production: an optional await marker, an
// atom, trailing call/subscript/attribute suffixes, and an optional
// right-hand ** exponent.
func (l *lowerer) lowerPower(n *cst.Branch) (ast.Node, error) {
	children := n.Children
	if len(children) > 2 && children[len(children)-2].Kind() == token.DOUBLESTAR {
		left, err := l.lowerPowerBase(children[:len(children)-2])
		if err != nil {
			return nil, err
		}
		right, err := l.expr(children[len(children)-1])
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{NodeInfo: info(n), Left: left, Op: ast.Pow, Right: right}, nil
	}
	return l.lowerPowerBase(children)
}

func (l *lowerer) lowerPowerBase(children []cst.Node) (ast.Expr, error) {
	if children[0].Kind() == token.AWAIT {
		span := token.Union(cst.RangeOf(children[0]), cst.RangeOf(children[len(children)-1]))
		value, err := l.lowerTrailers(children[1:])
		if err != nil {
			return nil, err
		}
		return &ast.Await{NodeInfo: spanned(span), Value: value}, nil
	}
	return l.lowerTrailers(children)
}

// lowerTrailers threads an accumulating base expression through trailing
// call, subscript, and attribute suffixes, left to right.
func (l *lowerer) lowerTrailers(children []cst.Node) (ast.Expr, error) {
	base, err := l.expr(children[0])
	if err != nil {
		return nil, err
	}
	begin := cst.RangeOf(children[0])
	for _, child := range children[1:] {
		trailer, ok := child.(*cst.Branch)
		if !ok {
			return nil, malformed(child.Kind(), "trailer is not a branch")
		}
		switch trailer.Children[0].Kind() {
		case token.LPAR:
			var args []ast.Expr
			var keywords []ast.Keyword
			if len(trailer.Children) > 2 {
				args, keywords, err = l.lowerArgList(trailer.Children[1], trailer)
				if err != nil {
					return nil, err
				}
			}
			base = &ast.Call{
				NodeInfo: spanned(token.Union(begin, cst.RangeOf(trailer.Children[len(trailer.Children)-1]))),
				Func:     base,
				Args:     args,
				Keywords: keywords,
			}
		case token.LSQB:
			subscript, err := l.expr(trailer.Children[1])
			if err != nil {
				return nil, err
			}
			base = &ast.Subscript{
				NodeInfo: spanned(token.Union(begin, cst.RangeOf(trailer.Children[len(trailer.Children)-1]))),
				Value:    base,
				Slice:    subscript,
				Ctx:      l.ctx,
			}
		case token.DOT:
			attr, ok := trailer.Children[1].(*cst.Leaf)
			if !ok {
				return nil, malformed(trailer.Sym, "attribute name is not a token")
			}
			base = &ast.Attribute{
				NodeInfo: spanned(token.Union(begin, cst.RangeOf(attr))),
				Value:    base,
				Attr:     attr.Value,
				Ctx:      l.ctx,
			}
		default:
			return nil, &UnimplementedError{Kind: trailer.Children[0].Kind()}
		}
	}
	return base, nil
}

// ---------- Call arguments ----------

// lowerArgList classifies and lowers the arguments of a call suffix. The
// parent node supplies the span for inline generator expressions.
func (l *lowerer) lowerArgList(node cst.Node, parent cst.Node) ([]ast.Expr, []ast.Keyword, error) {
	var arguments []cst.Node
	if list, ok := node.(*cst.Branch); ok && list.Sym == token.ArgList {
		for i := 0; i < len(list.Children); i += 2 {
			arguments = append(arguments, list.Children[i])
		}
	} else {
		arguments = []cst.Node{node}
	}
	var args []ast.Expr
	var keywords []ast.Keyword
	for _, argument := range arguments {
		branch, ok := argument.(*cst.Branch)
		if !ok {
			arg, err := l.expr(argument)
			if err != nil {
				return nil, nil, err
			}
			args = append(args, arg)
			continue
		}
		switch {
		case branch.Children[0].Kind() == token.STAR:
			value, err := l.expr(branch.Children[1])
			if err != nil {
				return nil, nil, err
			}
			args = append(args, &ast.Starred{NodeInfo: info(branch), Value: value, Ctx: ast.Load})
		case branch.Children[0].Kind() == token.DOUBLESTAR:
			value, err := l.expr(branch.Children[1])
			if err != nil {
				return nil, nil, err
			}
			keywords = append(keywords, ast.Keyword{NodeInfo: info(branch), Value: value})
		case len(branch.Children) == 1:
			arg, err := l.expr(branch.Children[0])
			if err != nil {
				return nil, nil, err
			}
			args = append(args, arg)
		case len(branch.Children) == 2:
			// Generator comprehension as the sole argument.
			elt, err := l.expr(branch.Children[0])
			if err != nil {
				return nil, nil, err
			}
			comps, err := l.lowerComprehensionClauses(branch.Children[1])
			if err != nil {
				return nil, nil, err
			}
			args = append(args, &ast.GeneratorExp{NodeInfo: info(parent), Elt: elt, Generators: comps})
		case branch.Children[1].Kind() == token.COLONEQUAL:
			walrus, err := l.lowerNamedExpr(branch.Sym, branch.Children)
			if err != nil {
				return nil, nil, err
			}
			if len(branch.Children) > 3 {
				comps, err := l.lowerComprehensionClauses(branch.Children[3])
				if err != nil {
					return nil, nil, err
				}
				args = append(args, &ast.GeneratorExp{NodeInfo: info(parent), Elt: walrus, Generators: comps})
			} else {
				args = append(args, walrus)
			}
		case branch.Children[1].Kind() == token.EQUAL:
			var target ast.Expr
			err := l.withContext(ast.Store, func() error {
				var err error
				target, err = l.expr(branch.Children[0])
				return err
			})
			if err != nil {
				return nil, nil, err
			}
			name, ok := target.(*ast.Name)
			if !ok {
				return nil, nil, &UnsupportedSyntaxError{
					Construct: "keyword argument target must be a name",
					Pos:       cst.RangeOf(branch).Start,
				}
			}
			value, err := l.expr(branch.Children[2])
			if err != nil {
				return nil, nil, err
			}
			keywords = append(keywords, ast.Keyword{NodeInfo: info(branch), Arg: name.ID, Value: value})
		default:
			return nil, nil, &UnimplementedError{Kind: branch.Sym}
		}
	}
	return args, keywords, nil
}

// ---------- Comprehensions ----------

// lowerComprehensionClauses lowers a chain of "for ... in ..." segments
// interleaved with "if ..." filters into an ordered clause list. Iteration
// targets lower under Store context, iterables under Load.
func (l *lowerer) lowerComprehensionClauses(node cst.Node) ([]ast.Comprehension, error) {
	branch, ok := node.(*cst.Branch)
	if !ok || (branch.Sym != token.CompFor && branch.Sym != token.OldCompFor) {
		return nil, malformed(node.Kind(), "expected a comprehension clause")
	}
	children := branch.Children
	isAsync := false
	if children[0].Kind() == token.ASYNC {
		isAsync = true
		children = children[1:]
	}
	var ifs []ast.Expr
	var rest []ast.Comprehension
	if len(children) > 4 {
		var err error
		ifs, rest, err = l.lowerCompIter(children[4])
		if err != nil {
			return nil, err
		}
	}
	var target ast.Expr
	err := l.withContext(ast.Store, func() error {
		var err error
		target, err = l.expr(children[1])
		return err
	})
	if err != nil {
		return nil, err
	}
	iter, err := l.expr(children[3])
	if err != nil {
		return nil, err
	}
	clause := ast.Comprehension{Target: target, Iter: iter, Ifs: ifs, IsAsync: isAsync}
	return append([]ast.Comprehension{clause}, rest...), nil
}

// lowerCompIter lowers the tail of a comprehension: either a filter segment
// (collecting its condition and recursing) or a nested for segment.
func (l *lowerer) lowerCompIter(node cst.Node) ([]ast.Expr, []ast.Comprehension, error) {
	branch, ok := node.(*cst.Branch)
	if !ok {
		return nil, nil, malformed(node.Kind(), "expected a comprehension tail")
	}
	if leafValue(branch.Children[0]) == "if" {
		test, err := l.expr(branch.Children[1])
		if err != nil {
			return nil, nil, err
		}
		var ifs []ast.Expr
		var comps []ast.Comprehension
		if len(branch.Children) > 2 {
			ifs, comps, err = l.lowerCompIter(branch.Children[2])
			if err != nil {
				return nil, nil, err
			}
		}
		return append([]ast.Expr{test}, ifs...), comps, nil
	}
	comps, err := l.lowerComprehensionClauses(node)
	if err != nil {
		return nil, nil, err
	}
	return nil, comps, nil
}

// ---------- Assignment expressions ----------

// lowerNamedExpr lowers a target ':=' value triple. The target must lower
// to a bare name under Store context.
func (l *lowerer) lowerNamedExpr(kind token.Kind, children []cst.Node) (*ast.NamedExpr, error) {
	if len(children) < 3 {
		return nil, malformed(kind, "assignment expression with %d children", len(children))
	}
	var target ast.Expr
	err := l.withContext(ast.Store, func() error {
		var err error
		target, err = l.expr(children[0])
		return err
	})
	if err != nil {
		return nil, err
	}
	name, ok := target.(*ast.Name)
	if !ok {
		return nil, &UnsupportedSyntaxError{
			Construct: "walrus target must be a name",
			Pos:       cst.RangeOf(children[0]).Start,
		}
	}
	value, err := l.expr(children[2])
	if err != nil {
		return nil, err
	}
	return &ast.NamedExpr{
		NodeInfo: spanned(token.Union(cst.RangeOf(children[0]), cst.RangeOf(children[2]))),
		Target:   name,
		Value:    value,
	}, nil
}

// ---------- Subscripts & slices ----------

// lowerSubscript lowers one subscript entry: an assignment expression or a
// slice shape. Plain indexes never reach here; the grammar hands them over
// as ordinary expressions.
func (l *lowerer) lowerSubscript(n *cst.Branch) (ast.Node, error) {
	if len(n.Children) == 3 && n.Children[1].Kind() == token.COLONEQUAL {
		return l.lowerNamedExpr(n.Sym, n.Children)
	}
	consumer := cst.NewConsumer(n.Children)
	var lower, upper, step ast.Expr
	var err error
	if consumer.ConsumeKind(token.COLON) == nil {
		lowerNode := consumer.Consume()
		if lowerNode == nil {
			return nil, malformed(n.Sym, "empty subscript")
		}
		lower, err = l.expr(lowerNode)
		if err != nil {
			return nil, err
		}
		if consumer.ConsumeKind(token.COLON) == nil {
			return nil, malformed(n.Sym, "missing colon after slice lower bound")
		}
	}
	if sliceOp := consumer.ConsumeKind(token.SliceOp); sliceOp != nil {
		step, err = l.expr(sliceOp.(*cst.Branch).Children[1])
		if err != nil {
			return nil, err
		}
	} else if consumer.ConsumeKind(token.COLON) == nil {
		if upperNode := consumer.Consume(); upperNode != nil {
			upper, err = l.expr(upperNode)
			if err != nil {
				return nil, err
			}
		}
		if sliceOp := consumer.ConsumeKind(token.SliceOp); sliceOp != nil {
			step, err = l.expr(sliceOp.(*cst.Branch).Children[1])
			if err != nil {
				return nil, err
			}
		}
	}
	return &ast.Slice{NodeInfo: info(n), Lower: lower, Upper: upper, Step: step}, nil
}

// lowerSubscriptList lowers comma-separated subscript entries into a tuple
// under the ambient context.
func (l *lowerer) lowerSubscriptList(n *cst.Branch) (ast.Node, error) {
	var elts []ast.Expr
	for i := 0; i < len(n.Children); i += 2 {
		elt, err := l.expr(n.Children[i])
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	return &ast.Tuple{NodeInfo: info(n), Elts: elts, Ctx: l.ctx}, nil
}

// ---------- Leaves ----------

func (l *lowerer) lowerName(leaf *cst.Leaf) (ast.Node, error) {
	return &ast.Name{NodeInfo: info(leaf), ID: leaf.Value, Ctx: l.ctx}, nil
}

func (l *lowerer) lowerNumber(leaf *cst.Leaf) (ast.Node, error) {
	value, err := l.literals.EvalNumber(leaf.Value)
	if err != nil {
		return nil, err
	}
	return &ast.Constant{NodeInfo: info(leaf), Value: value}, nil
}

func (l *lowerer) lowerString(leaf *cst.Leaf) (ast.Node, error) {
	value, err := l.literals.EvalString(leaf.Value)
	if err != nil {
		return nil, err
	}
	return &ast.Constant{NodeInfo: info(leaf), Value: value}, nil
}

// leafValue returns a leaf's literal text, or "" for branches.
func leafValue(node cst.Node) string {
	if leaf, ok := node.(*cst.Leaf); ok {
		return leaf.Value
	}
	return ""
}
