package ast

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Dump renders a node in the reference front end's debug form, e.g.
//
//	Module(body=[Expr(value=Name(id='a', ctx=Load()))], type_ignores=[])
//
// Spans are omitted; IncludeSpans adds them as a lineno:col-end:col suffix
// on every node when set.
func Dump(node Node) string {
	var b strings.Builder
	d := dumper{b: &b}
	d.node(node)
	return b.String()
}

// DumpWithSpans renders a node like Dump with each node's source span
// appended as @line:col-line:col.
func DumpWithSpans(node Node) string {
	var b strings.Builder
	d := dumper{b: &b, spans: true}
	d.node(node)
	return b.String()
}

type dumper struct {
	b     *strings.Builder
	spans bool
}

func (d *dumper) printf(format string, args ...any) {
	fmt.Fprintf(d.b, format, args...)
}

func (d *dumper) span(n Node) {
	if !d.spans {
		return
	}
	s := n.GetSpan()
	d.printf("@%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

func (d *dumper) node(n Node) {
	switch n := n.(type) {
	case *Module:
		d.printf("Module(body=")
		d.stmts(n.Body)
		d.printf(", type_ignores=[])")
	case *ExprStmt:
		d.printf("Expr(value=")
		d.node(n.Value)
		d.printf(")")
	case *Name:
		d.printf("Name(id=%s, ctx=%s())", pyStr(n.ID), n.Ctx)
	case *Constant:
		d.printf("Constant(value=%s)", pyValue(n.Value))
	case *BinOp:
		d.printf("BinOp(left=")
		d.node(n.Left)
		d.printf(", op=%s(), right=", n.Op)
		d.node(n.Right)
		d.printf(")")
	case *BoolOp:
		d.printf("BoolOp(op=%s(), values=", n.Op)
		d.exprs(n.Values)
		d.printf(")")
	case *UnaryOp:
		d.printf("UnaryOp(op=%s(), operand=", n.Op)
		d.node(n.Operand)
		d.printf(")")
	case *Compare:
		d.printf("Compare(left=")
		d.node(n.Left)
		d.printf(", ops=[")
		for i, op := range n.Ops {
			if i > 0 {
				d.printf(", ")
			}
			d.printf("%s()", op)
		}
		d.printf("], comparators=")
		d.exprs(n.Comparators)
		d.printf(")")
	case *Call:
		d.printf("Call(func=")
		d.node(n.Func)
		d.printf(", args=")
		d.exprs(n.Args)
		d.printf(", keywords=[")
		for i := range n.Keywords {
			if i > 0 {
				d.printf(", ")
			}
			kw := &n.Keywords[i]
			if kw.Arg == "" {
				d.printf("keyword(value=")
			} else {
				d.printf("keyword(arg=%s, value=", pyStr(kw.Arg))
			}
			d.node(kw.Value)
			d.printf(")")
		}
		d.printf("])")
	case *Attribute:
		d.printf("Attribute(value=")
		d.node(n.Value)
		d.printf(", attr=%s, ctx=%s())", pyStr(n.Attr), n.Ctx)
	case *Subscript:
		d.printf("Subscript(value=")
		d.node(n.Value)
		d.printf(", slice=")
		d.node(n.Slice)
		d.printf(", ctx=%s())", n.Ctx)
	case *Slice:
		d.printf("Slice(")
		first := true
		for _, part := range []struct {
			name string
			expr Expr
		}{{"lower", n.Lower}, {"upper", n.Upper}, {"step", n.Step}} {
			if part.expr == nil {
				continue
			}
			if !first {
				d.printf(", ")
			}
			first = false
			d.printf("%s=", part.name)
			d.node(part.expr)
		}
		d.printf(")")
	case *Tuple:
		d.printf("Tuple(elts=")
		d.exprs(n.Elts)
		d.printf(", ctx=%s())", n.Ctx)
	case *List:
		d.printf("List(elts=")
		d.exprs(n.Elts)
		d.printf(", ctx=%s())", n.Ctx)
	case *Set:
		d.printf("Set(elts=")
		d.exprs(n.Elts)
		d.printf(")")
	case *Dict:
		d.printf("Dict(keys=[")
		for i, key := range n.Keys {
			if i > 0 {
				d.printf(", ")
			}
			if key == nil {
				d.printf("None")
			} else {
				d.node(key)
			}
		}
		d.printf("], values=")
		d.exprs(n.Values)
		d.printf(")")
	case *ListComp:
		d.printf("ListComp(elt=")
		d.node(n.Elt)
		d.printf(", generators=")
		d.comprehensions(n.Generators)
		d.printf(")")
	case *SetComp:
		d.printf("SetComp(elt=")
		d.node(n.Elt)
		d.printf(", generators=")
		d.comprehensions(n.Generators)
		d.printf(")")
	case *DictComp:
		d.printf("DictComp(key=")
		d.node(n.Key)
		d.printf(", value=")
		d.node(n.Value)
		d.printf(", generators=")
		d.comprehensions(n.Generators)
		d.printf(")")
	case *GeneratorExp:
		d.printf("GeneratorExp(elt=")
		d.node(n.Elt)
		d.printf(", generators=")
		d.comprehensions(n.Generators)
		d.printf(")")
	case *NamedExpr:
		d.printf("NamedExpr(target=")
		d.node(n.Target)
		d.printf(", value=")
		d.node(n.Value)
		d.printf(")")
	case *Starred:
		d.printf("Starred(value=")
		d.node(n.Value)
		d.printf(", ctx=%s())", n.Ctx)
	case *IfExp:
		d.printf("IfExp(test=")
		d.node(n.Test)
		d.printf(", body=")
		d.node(n.Body)
		d.printf(", orelse=")
		d.node(n.OrElse)
		d.printf(")")
	case *Await:
		d.printf("Await(value=")
		d.node(n.Value)
		d.printf(")")
	case *TypeVar:
		d.printf("TypeVar(name=%s", pyStr(n.Name))
		if n.Bound != nil {
			d.printf(", bound=")
			d.node(n.Bound)
		}
		if n.Default != nil {
			d.printf(", default_value=")
			d.node(n.Default)
		}
		d.printf(")")
	case *ParamSpec:
		d.printf("ParamSpec(name=%s", pyStr(n.Name))
		if n.Default != nil {
			d.printf(", default_value=")
			d.node(n.Default)
		}
		d.printf(")")
	case *TypeVarTuple:
		d.printf("TypeVarTuple(name=%s", pyStr(n.Name))
		if n.Default != nil {
			d.printf(", default_value=")
			d.node(n.Default)
		}
		d.printf(")")
	default:
		d.printf("%T(?)", n)
	}
	d.span(n)
}

func (d *dumper) stmts(stmts []Stmt) {
	d.printf("[")
	for i, s := range stmts {
		if i > 0 {
			d.printf(", ")
		}
		d.node(s)
	}
	d.printf("]")
}

func (d *dumper) exprs(exprs []Expr) {
	d.printf("[")
	for i, e := range exprs {
		if i > 0 {
			d.printf(", ")
		}
		d.node(e)
	}
	d.printf("]")
}

func (d *dumper) comprehensions(comps []Comprehension) {
	d.printf("[")
	for i := range comps {
		if i > 0 {
			d.printf(", ")
		}
		c := &comps[i]
		d.printf("comprehension(target=")
		d.node(c.Target)
		d.printf(", iter=")
		d.node(c.Iter)
		d.printf(", ifs=")
		d.exprs(c.Ifs)
		isAsync := 0
		if c.IsAsync {
			isAsync = 1
		}
		d.printf(", is_async=%d)", isAsync)
	}
	d.printf("]")
}

// pyStr renders a string the way the reference dump does, single-quoted.
func pyStr(s string) string {
	quoted := strconv.Quote(s)
	inner := quoted[1 : len(quoted)-1]
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	inner = strings.ReplaceAll(inner, `'`, `\'`)
	return "'" + inner + "'"
}

func pyValue(v any) string {
	switch v := v.(type) {
	case string:
		return pyStr(v)
	case []byte:
		return "b" + pyStr(string(v))
	case EllipsisType:
		return "Ellipsis"
	case *big.Int:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case complex128:
		return strconv.FormatComplex(v, 'g', -1, 128)
	default:
		return fmt.Sprintf("%v", v)
	}
}
