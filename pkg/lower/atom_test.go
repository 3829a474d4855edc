package lower_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pylower/pkg/ast"
	"github.com/leapstack-labs/pylower/pkg/lower"
	"github.com/leapstack-labs/pylower/pkg/token"
)

// ---------- Parenthesized forms ----------

func TestEmptyDisplays(t *testing.T) {
	t.Run("tuple", func(t *testing.T) {
		tree := br(token.Atom, lf(token.LPAR, "(", 1, 0), lf(token.RPAR, ")", 1, 1))
		want := &ast.Tuple{NodeInfo: at(1, 0, 1, 2), Ctx: ast.Load}
		assert.Empty(t, cmp.Diff(want, requireExpr(t, tree, py312)))
	})
	t.Run("list", func(t *testing.T) {
		tree := br(token.Atom, lf(token.LSQB, "[", 1, 0), lf(token.RSQB, "]", 1, 1))
		want := &ast.List{NodeInfo: at(1, 0, 1, 2), Ctx: ast.Load}
		assert.Empty(t, cmp.Diff(want, requireExpr(t, tree, py312)))
	})
	t.Run("dict", func(t *testing.T) {
		// Empty braces always mean an empty dict, never an empty set.
		tree := br(token.Atom, lf(token.LBRACE, "{", 1, 0), lf(token.RBRACE, "}", 1, 1))
		want := &ast.Dict{NodeInfo: at(1, 0, 1, 2)}
		assert.Empty(t, cmp.Diff(want, requireExpr(t, tree, py312)))
	})
}

func TestParenthesizedExpressionKeepsInnerSpan(t *testing.T) {
	tree := br(token.Atom, lf(token.LPAR, "(", 1, 0), nm("a", 1, 1), lf(token.RPAR, ")", 1, 2))
	want := &ast.Name{NodeInfo: at(1, 1, 1, 2), ID: "a", Ctx: ast.Load}
	assert.Empty(t, cmp.Diff(want, requireExpr(t, tree, py312)))
}

func TestParenthesizedTupleSpansParentheses(t *testing.T) {
	// (a, b)
	tree := br(token.Atom,
		lf(token.LPAR, "(", 1, 0),
		br(token.TestlistGexp, nm("a", 1, 1), lf(token.COMMA, ",", 1, 2), nm("b", 1, 4)),
		lf(token.RPAR, ")", 1, 5),
	)
	got := requireExpr(t, tree, py312).(*ast.Tuple)
	assert.Equal(t, at(1, 0, 1, 6), got.NodeInfo)
	require.Len(t, got.Elts, 2)
}

func TestGeneratorExpressionInParentheses(t *testing.T) {
	// (x for x in y)
	tree := br(token.Atom,
		lf(token.LPAR, "(", 1, 0),
		br(token.TestlistGexp,
			nm("x", 1, 1),
			br(token.OldCompFor, nm("for", 1, 3), nm("x", 1, 7), nm("in", 1, 9), nm("y", 1, 12)),
		),
		lf(token.RPAR, ")", 1, 13),
	)
	got := requireExpr(t, tree, py312).(*ast.GeneratorExp)
	assert.Equal(t, at(1, 0, 1, 14), got.NodeInfo)
	assert.Equal(t, "x", got.Elt.(*ast.Name).ID)
	require.Len(t, got.Generators, 1)
}

// ---------- List displays ----------

func TestListDisplays(t *testing.T) {
	t.Run("single element", func(t *testing.T) {
		tree := br(token.Atom, lf(token.LSQB, "[", 1, 0), nm("a", 1, 1), lf(token.RSQB, "]", 1, 2))
		got := requireExpr(t, tree, py312).(*ast.List)
		require.Len(t, got.Elts, 1)
		assert.Equal(t, at(1, 0, 1, 3), got.NodeInfo)
	})
	t.Run("multiple elements", func(t *testing.T) {
		tree := br(token.Atom,
			lf(token.LSQB, "[", 1, 0),
			br(token.ListMaker, nm("a", 1, 1), lf(token.COMMA, ",", 1, 2), nm("b", 1, 4)),
			lf(token.RSQB, "]", 1, 5),
		)
		got := requireExpr(t, tree, py312).(*ast.List)
		require.Len(t, got.Elts, 2)
	})
}

func TestListComprehension(t *testing.T) {
	// [x for x in y if x]
	tree := br(token.Atom,
		lf(token.LSQB, "[", 1, 0),
		br(token.ListMaker,
			nm("x", 1, 1),
			br(token.OldCompFor,
				nm("for", 1, 3), nm("x", 1, 7), nm("in", 1, 9), nm("y", 1, 12),
				br(token.CompIf, nm("if", 1, 14), nm("x", 1, 17)),
			),
		),
		lf(token.RSQB, "]", 1, 18),
	)

	want := &ast.ListComp{
		NodeInfo: at(1, 0, 1, 19),
		Elt:      &ast.Name{NodeInfo: at(1, 1, 1, 2), ID: "x", Ctx: ast.Load},
		Generators: []ast.Comprehension{{
			Target: &ast.Name{NodeInfo: at(1, 7, 1, 8), ID: "x", Ctx: ast.Store},
			Iter:   &ast.Name{NodeInfo: at(1, 12, 1, 13), ID: "y", Ctx: ast.Load},
			Ifs:    []ast.Expr{&ast.Name{NodeInfo: at(1, 17, 1, 18), ID: "x", Ctx: ast.Load}},
		}},
	}
	assert.Empty(t, cmp.Diff(want, requireExpr(t, tree, py312)))
}

func TestNestedComprehensionClauses(t *testing.T) {
	// [x for x in y for z in x]
	tree := br(token.Atom,
		lf(token.LSQB, "[", 1, 0),
		br(token.ListMaker,
			nm("x", 1, 1),
			br(token.OldCompFor,
				nm("for", 1, 3), nm("x", 1, 7), nm("in", 1, 9), nm("y", 1, 12),
				br(token.OldCompFor, nm("for", 1, 14), nm("z", 1, 18), nm("in", 1, 20), nm("x", 1, 23)),
			),
		),
		lf(token.RSQB, "]", 1, 24),
	)
	got := requireExpr(t, tree, py312).(*ast.ListComp)
	require.Len(t, got.Generators, 2)
	assert.Equal(t, "x", got.Generators[0].Target.(*ast.Name).ID)
	assert.Equal(t, "z", got.Generators[1].Target.(*ast.Name).ID)
}

func TestAsyncComprehension(t *testing.T) {
	// [x async for x in y]
	tree := br(token.Atom,
		lf(token.LSQB, "[", 1, 0),
		br(token.ListMaker,
			nm("x", 1, 1),
			br(token.OldCompFor,
				lf(token.ASYNC, "async", 1, 3),
				nm("for", 1, 9), nm("x", 1, 13), nm("in", 1, 15), nm("y", 1, 18),
			),
		),
		lf(token.RSQB, "]", 1, 19),
	)
	got := requireExpr(t, tree, py312).(*ast.ListComp)
	require.Len(t, got.Generators, 1)
	assert.True(t, got.Generators[0].IsAsync)
}

func TestComprehensionTupleTarget(t *testing.T) {
	// [x for x, y in z]: the target list lowers to a Store-context tuple.
	tree := br(token.Atom,
		lf(token.LSQB, "[", 1, 0),
		br(token.ListMaker,
			nm("x", 1, 1),
			br(token.OldCompFor,
				nm("for", 1, 3),
				br(token.ExprList, nm("x", 1, 7), lf(token.COMMA, ",", 1, 8), nm("y", 1, 10)),
				nm("in", 1, 12),
				nm("z", 1, 15),
			),
		),
		lf(token.RSQB, "]", 1, 16),
	)
	got := requireExpr(t, tree, py312).(*ast.ListComp)
	require.Len(t, got.Generators, 1)
	target := got.Generators[0].Target.(*ast.Tuple)
	assert.Equal(t, ast.Store, target.Ctx)
	require.Len(t, target.Elts, 2)
	assert.Equal(t, ast.Store, target.Elts[0].(*ast.Name).Ctx)
	assert.Equal(t, ast.Store, target.Elts[1].(*ast.Name).Ctx)
}

// ---------- Brace displays ----------

func TestSetDisplays(t *testing.T) {
	t.Run("single element", func(t *testing.T) {
		tree := br(token.Atom, lf(token.LBRACE, "{", 1, 0), nm("a", 1, 1), lf(token.RBRACE, "}", 1, 2))
		got := requireExpr(t, tree, py312).(*ast.Set)
		require.Len(t, got.Elts, 1)
	})
	t.Run("multiple elements", func(t *testing.T) {
		tree := br(token.Atom,
			lf(token.LBRACE, "{", 1, 0),
			br(token.DictSetMaker, nm("a", 1, 1), lf(token.COMMA, ",", 1, 2), nm("b", 1, 4)),
			lf(token.RBRACE, "}", 1, 5),
		)
		got := requireExpr(t, tree, py312).(*ast.Set)
		require.Len(t, got.Elts, 2)
	})
	t.Run("starred element", func(t *testing.T) {
		// {*a, b}
		tree := br(token.Atom,
			lf(token.LBRACE, "{", 1, 0),
			br(token.DictSetMaker,
				br(token.StarExpr, lf(token.STAR, "*", 1, 1), nm("a", 1, 2)),
				lf(token.COMMA, ",", 1, 3),
				nm("b", 1, 5),
			),
			lf(token.RBRACE, "}", 1, 6),
		)
		got := requireExpr(t, tree, py312).(*ast.Set)
		require.Len(t, got.Elts, 2)
		starred, ok := got.Elts[0].(*ast.Starred)
		require.True(t, ok)
		assert.Equal(t, "a", starred.Value.(*ast.Name).ID)
	})
	t.Run("walrus element", func(t *testing.T) {
		// {x := 1}
		tree := br(token.Atom,
			lf(token.LBRACE, "{", 1, 0),
			br(token.DictSetMaker, nm("x", 1, 1), lf(token.COLONEQUAL, ":=", 1, 3), num("1", 1, 6)),
			lf(token.RBRACE, "}", 1, 7),
		)
		got := requireExpr(t, tree, py312).(*ast.Set)
		require.Len(t, got.Elts, 1)
		_, ok := got.Elts[0].(*ast.NamedExpr)
		assert.True(t, ok)
	})
}

func TestDictDisplay(t *testing.T) {
	// {1: 2, **m}
	tree := br(token.Atom,
		lf(token.LBRACE, "{", 1, 0),
		br(token.DictSetMaker,
			num("1", 1, 1), lf(token.COLON, ":", 1, 2), num("2", 1, 4),
			lf(token.COMMA, ",", 1, 5),
			lf(token.DOUBLESTAR, "**", 1, 7), nm("m", 1, 9),
		),
		lf(token.RBRACE, "}", 1, 10),
	)
	got := requireExpr(t, tree, py312).(*ast.Dict)
	require.Len(t, got.Keys, 2)
	require.Len(t, got.Values, 2)
	assert.Equal(t, int64(1), got.Keys[0].(*ast.Constant).Value)
	assert.Nil(t, got.Keys[1], "a double-star merge has no key")
	assert.Equal(t, "m", got.Values[1].(*ast.Name).ID)
}

func TestDictComprehension(t *testing.T) {
	// {k: v for k in d}
	tree := br(token.Atom,
		lf(token.LBRACE, "{", 1, 0),
		br(token.DictSetMaker,
			nm("k", 1, 1), lf(token.COLON, ":", 1, 2), nm("v", 1, 4),
			br(token.CompFor, nm("for", 1, 6), nm("k", 1, 10), nm("in", 1, 12), nm("d", 1, 15)),
		),
		lf(token.RBRACE, "}", 1, 16),
	)
	got := requireExpr(t, tree, py312).(*ast.DictComp)
	assert.Equal(t, "k", got.Key.(*ast.Name).ID)
	assert.Equal(t, "v", got.Value.(*ast.Name).ID)
	require.Len(t, got.Generators, 1)
	assert.Equal(t, ast.Store, got.Generators[0].Target.(*ast.Name).Ctx)
}

func TestSetComprehension(t *testing.T) {
	// {x for x in y}
	tree := br(token.Atom,
		lf(token.LBRACE, "{", 1, 0),
		br(token.DictSetMaker,
			nm("x", 1, 1),
			br(token.CompFor, nm("for", 1, 3), nm("x", 1, 7), nm("in", 1, 9), nm("y", 1, 12)),
		),
		lf(token.RBRACE, "}", 1, 13),
	)
	got := requireExpr(t, tree, py312).(*ast.SetComp)
	assert.Equal(t, "x", got.Elt.(*ast.Name).ID)
	require.Len(t, got.Generators, 1)
}

func TestComprehensionConversionThreshold(t *testing.T) {
	// A comprehension clause may only convert a display holding exactly one
	// accumulated element; two elements followed by a clause is drift
	// between the grammar and this engine.
	t.Run("set", func(t *testing.T) {
		tree := br(token.Atom,
			lf(token.LBRACE, "{", 1, 0),
			br(token.DictSetMaker,
				nm("a", 1, 1), lf(token.COMMA, ",", 1, 2), nm("b", 1, 4),
				br(token.CompFor, nm("for", 1, 6), nm("x", 1, 10), nm("in", 1, 12), nm("y", 1, 15)),
			),
			lf(token.RBRACE, "}", 1, 16),
		)
		_, err := lower.Expr(tree, py312)
		var malformed *lower.MalformedTreeError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, token.DictSetMaker, malformed.Kind)
	})
	t.Run("dict", func(t *testing.T) {
		tree := br(token.Atom,
			lf(token.LBRACE, "{", 1, 0),
			br(token.DictSetMaker,
				num("1", 1, 1), lf(token.COLON, ":", 1, 2), num("2", 1, 4),
				lf(token.COMMA, ",", 1, 5),
				num("3", 1, 7), lf(token.COLON, ":", 1, 8), num("4", 1, 10),
				br(token.CompFor, nm("for", 1, 12), nm("x", 1, 16), nm("in", 1, 18), nm("y", 1, 21)),
			),
			lf(token.RBRACE, "}", 1, 22),
		)
		_, err := lower.Expr(tree, py312)
		var malformed *lower.MalformedTreeError
		require.ErrorAs(t, err, &malformed)
	})
}

// ---------- Other atoms ----------

func TestEllipsis(t *testing.T) {
	tree := br(token.Atom, lf(token.DOT, ".", 1, 0), lf(token.DOT, ".", 1, 1), lf(token.DOT, ".", 1, 2))
	want := &ast.Constant{NodeInfo: at(1, 0, 1, 3), Value: ast.EllipsisValue}
	assert.Empty(t, cmp.Diff(want, requireExpr(t, tree, py312)))
}

func TestBacktickLowersToReprCall(t *testing.T) {
	tree := br(token.Atom,
		lf(token.BACKQUOTE, "`", 1, 0),
		nm("x", 1, 1),
		lf(token.BACKQUOTE, "`", 1, 2),
	)
	got := requireExpr(t, tree, py312).(*ast.Call)
	callee := got.Func.(*ast.Name)
	assert.Equal(t, "repr", callee.ID)
	assert.Equal(t, ast.Load, callee.Ctx)
	require.Len(t, got.Args, 1)
	assert.Equal(t, "x", got.Args[0].(*ast.Name).ID)
}

// ---------- Literals through the evaluator ----------

type failingEvaluator struct{}

func (failingEvaluator) EvalNumber(string) (any, error) {
	return nil, assert.AnError
}

func (failingEvaluator) EvalString(string) (any, error) {
	return nil, assert.AnError
}

func TestLiteralLeaves(t *testing.T) {
	got := requireExpr(t, num("0x_FF", 1, 0), py312).(*ast.Constant)
	assert.Equal(t, int64(255), got.Value)

	got = requireExpr(t, lf(token.STRING, `'hi'`, 1, 0), py312).(*ast.Constant)
	assert.Equal(t, "hi", got.Value)

	got = requireExpr(t, lf(token.STRING, `b'hi'`, 1, 0), py312).(*ast.Constant)
	assert.Equal(t, []byte("hi"), got.Value)
}

func TestWithEvaluator(t *testing.T) {
	_, err := lower.Expr(num("1", 1, 0), py312, lower.WithEvaluator(failingEvaluator{}))
	assert.ErrorIs(t, err, assert.AnError)
}

// ---------- Star expressions ----------

func TestStarExpr(t *testing.T) {
	tree := br(token.StarExpr, lf(token.STAR, "*", 1, 0), nm("a", 1, 1))
	got := requireExpr(t, tree, py312).(*ast.Starred)
	assert.Equal(t, "a", got.Value.(*ast.Name).ID)
	assert.Equal(t, at(1, 0, 1, 2), got.NodeInfo)
}
