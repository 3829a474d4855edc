package lower

import (
	"github.com/leapstack-labs/pylower/pkg/ast"
	"github.com/leapstack-labs/pylower/pkg/cst"
	"github.com/leapstack-labs/pylower/pkg/token"
	"github.com/leapstack-labs/pylower/pkg/version"
)

// gateBase rejects the whole construct when the target version predates
// type-parameter syntax. Checked before any child is lowered.
func (l *lowerer) gateBase(n *cst.Branch, construct string) error {
	if !l.target.Supports(version.FeatureTypeParams) {
		return &UnsupportedSyntaxError{Construct: construct, Pos: cst.RangeOf(n).Start}
	}
	return nil
}

// gateDefault rejects a declared default value when the target version
// allows the base construct but predates defaults. The sub-feature fails
// by itself rather than being silently dropped.
func (l *lowerer) gateDefault(n *cst.Branch, construct string) error {
	if !l.target.Supports(version.FeatureTypeParamDefaults) {
		return &UnsupportedSyntaxError{Construct: construct + " default", Pos: cst.RangeOf(n).Start}
	}
	return nil
}

func (l *lowerer) typeParamName(n *cst.Branch) (string, error) {
	leaf, ok := n.Children[0].(*cst.Leaf)
	if !ok {
		return "", malformed(n.Sym, "type parameter name is not a token")
	}
	return leaf.Value, nil
}

func (l *lowerer) lowerTypeVar(n *cst.Branch) (ast.Node, error) {
	if err := l.gateBase(n, "TypeVar"); err != nil {
		return nil, err
	}
	name, err := l.typeParamName(n)
	if err != nil {
		return nil, err
	}
	// The optional bound and default are recognized by the punctuation
	// present: a colon introduces a bound, an equals sign a default.
	// Either can sit at child index 1 or 3.
	var bound, deflt ast.Expr
	for _, index := range []int{1, 3} {
		if len(n.Children) <= index {
			continue
		}
		switch n.Children[index].Kind() {
		case token.COLON:
			bound, err = l.expr(n.Children[index+1])
		case token.EQUAL:
			deflt, err = l.expr(n.Children[index+1])
		}
		if err != nil {
			return nil, err
		}
	}
	if deflt != nil {
		if err := l.gateDefault(n, "TypeVar"); err != nil {
			return nil, err
		}
	}
	return &ast.TypeVar{NodeInfo: info(n), Name: name, Bound: bound, Default: deflt}, nil
}

func (l *lowerer) lowerParamSpec(n *cst.Branch) (ast.Node, error) {
	if err := l.gateBase(n, "ParamSpec"); err != nil {
		return nil, err
	}
	name, err := l.typeParamName(n)
	if err != nil {
		return nil, err
	}
	var deflt ast.Expr
	if len(n.Children) == 4 {
		if err := l.gateDefault(n, "ParamSpec"); err != nil {
			return nil, err
		}
		deflt, err = l.expr(n.Children[3])
		if err != nil {
			return nil, err
		}
	}
	return &ast.ParamSpec{NodeInfo: info(n), Name: name, Default: deflt}, nil
}

func (l *lowerer) lowerTypeVarTuple(n *cst.Branch) (ast.Node, error) {
	if err := l.gateBase(n, "TypeVarTuple"); err != nil {
		return nil, err
	}
	name, err := l.typeParamName(n)
	if err != nil {
		return nil, err
	}
	var deflt ast.Expr
	if len(n.Children) == 4 {
		if err := l.gateDefault(n, "TypeVarTuple"); err != nil {
			return nil, err
		}
		deflt, err = l.expr(n.Children[3])
		if err != nil {
			return nil, err
		}
	}
	return &ast.TypeVarTuple{NodeInfo: info(n), Name: name, Default: deflt}, nil
}
