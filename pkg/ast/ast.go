// Package ast defines the abstract syntax tree the lowering engine produces.
//
// The node family is a closed set of struct variants behind the Expr and
// Stmt marker interfaces, mirroring the reference front end's schema for the
// requested target version. Every node carries a source span; expression
// nodes that the schema tags with a usage context carry an ExprContext.
package ast

import "github.com/leapstack-labs/pylower/pkg/token"

// Node is any AST node.
type Node interface {
	GetSpan() token.Span
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// NodeInfo provides the source span common to all AST nodes.
// Embed this in every node type.
type NodeInfo struct {
	Span token.Span
}

// GetSpan returns the node's source span.
func (n *NodeInfo) GetSpan() token.Span {
	return n.Span
}

// ExprContext describes how an expression position is used: read (Load),
// assigned to (Store), or deleted (Del).
type ExprContext int

// Expression contexts.
const (
	Load ExprContext = iota
	Store
	Del
)

// String returns the reference schema's name for the context.
func (c ExprContext) String() string {
	switch c {
	case Load:
		return "Load"
	case Store:
		return "Store"
	case Del:
		return "Del"
	}
	return "ExprContext(?)"
}

// ---------- Module & Statements ----------

// TypeIgnore is a per-file "type: ignore" diagnostic record. The grammar
// input this engine consumes never materializes type-comment tokens, so the
// module's TypeIgnores slice is always left empty for a later stage to fill.
type TypeIgnore struct {
	Lineno int
	Tag    string
}

// Module is the root node for a whole source file.
type Module struct {
	NodeInfo
	Body        []Stmt
	TypeIgnores []TypeIgnore
}

// ExprStmt is a statement consisting of a bare expression.
type ExprStmt struct {
	NodeInfo
	Value Expr
}

func (*ExprStmt) stmtNode() {}

// ---------- Expressions ----------

// Name is an identifier reference.
type Name struct {
	NodeInfo
	ID  string
	Ctx ExprContext
}

func (*Name) exprNode() {}

// Constant is a literal value: int64 or *big.Int, float64, complex128,
// string, []byte, or EllipsisValue.
type Constant struct {
	NodeInfo
	Value any
}

func (*Constant) exprNode() {}

// EllipsisType is the type of the ellipsis constant value.
type EllipsisType struct{}

// EllipsisValue is the value carried by an ellipsis Constant.
var EllipsisValue = EllipsisType{}

// BinOp is a binary arithmetic, shift, or bitwise operation.
type BinOp struct {
	NodeInfo
	Left  Expr
	Op    Operator
	Right Expr
}

func (*BinOp) exprNode() {}

// BoolOp is an and/or chain with two or more operands.
type BoolOp struct {
	NodeInfo
	Op     BoolOperator
	Values []Expr
}

func (*BoolOp) exprNode() {}

// UnaryOp is a unary operation (not, +, -, ~).
type UnaryOp struct {
	NodeInfo
	Op      UnaryOperator
	Operand Expr
}

func (*UnaryOp) exprNode() {}

// Compare is a chained comparison: one left operand followed by parallel
// operator and comparator lists (a < b < c stays one node).
type Compare struct {
	NodeInfo
	Left        Expr
	Ops         []CmpOp
	Comparators []Expr
}

func (*Compare) exprNode() {}

// Keyword is a keyword argument in a call. An empty Arg marks a **kwargs
// double-star argument, which has no name in the reference schema.
type Keyword struct {
	NodeInfo
	Arg   string
	Value Expr
}

// Call is a function call.
type Call struct {
	NodeInfo
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

func (*Call) exprNode() {}

// Attribute is an attribute access (value.attr).
type Attribute struct {
	NodeInfo
	Value Expr
	Attr  string
	Ctx   ExprContext
}

func (*Attribute) exprNode() {}

// Subscript is an indexing or slicing expression (value[slice]).
type Subscript struct {
	NodeInfo
	Value Expr
	Slice Expr
	Ctx   ExprContext
}

func (*Subscript) exprNode() {}

// Slice is a lower:upper:step slice; any part may be nil.
type Slice struct {
	NodeInfo
	Lower Expr
	Upper Expr
	Step  Expr
}

func (*Slice) exprNode() {}

// Tuple is a tuple display or tuple target.
type Tuple struct {
	NodeInfo
	Elts []Expr
	Ctx  ExprContext
}

func (*Tuple) exprNode() {}

// List is a list display or list target.
type List struct {
	NodeInfo
	Elts []Expr
	Ctx  ExprContext
}

func (*List) exprNode() {}

// Set is a set display.
type Set struct {
	NodeInfo
	Elts []Expr
}

func (*Set) exprNode() {}

// Dict is a dict display. A nil entry in Keys marks a **mapping merge; its
// value sits at the same index in Values.
type Dict struct {
	NodeInfo
	Keys   []Expr
	Values []Expr
}

func (*Dict) exprNode() {}

// Comprehension is one "for target in iter [if cond]..." clause of a
// comprehension. Target is lowered under Store context, Iter under Load.
type Comprehension struct {
	Target  Expr
	Iter    Expr
	Ifs     []Expr
	IsAsync bool
}

// ListComp is a list comprehension.
type ListComp struct {
	NodeInfo
	Elt        Expr
	Generators []Comprehension
}

func (*ListComp) exprNode() {}

// SetComp is a set comprehension.
type SetComp struct {
	NodeInfo
	Elt        Expr
	Generators []Comprehension
}

func (*SetComp) exprNode() {}

// DictComp is a dict comprehension.
type DictComp struct {
	NodeInfo
	Key        Expr
	Value      Expr
	Generators []Comprehension
}

func (*DictComp) exprNode() {}

// GeneratorExp is a generator expression.
type GeneratorExp struct {
	NodeInfo
	Elt        Expr
	Generators []Comprehension
}

func (*GeneratorExp) exprNode() {}

// NamedExpr is an assignment expression (target := value). The target is
// always a bare Name under Store context.
type NamedExpr struct {
	NodeInfo
	Target *Name
	Value  Expr
}

func (*NamedExpr) exprNode() {}

// Starred is a *value element in a call, display, or target.
type Starred struct {
	NodeInfo
	Value Expr
	Ctx   ExprContext
}

func (*Starred) exprNode() {}

// IfExp is a conditional expression (body if test else orelse).
type IfExp struct {
	NodeInfo
	Test   Expr
	Body   Expr
	OrElse Expr
}

func (*IfExp) exprNode() {}

// Await is an await expression.
type Await struct {
	NodeInfo
	Value Expr
}

func (*Await) exprNode() {}

// ---------- Type parameters ----------

// TypeVar is a type-variable declaration with optional bound and default.
type TypeVar struct {
	NodeInfo
	Name    string
	Bound   Expr
	Default Expr
}

func (*TypeVar) exprNode() {}

// ParamSpec is a parameter-specification declaration with optional default.
type ParamSpec struct {
	NodeInfo
	Name    string
	Default Expr
}

func (*ParamSpec) exprNode() {}

// TypeVarTuple is a variadic type-variable declaration with optional default.
type TypeVarTuple struct {
	NodeInfo
	Name    string
	Default Expr
}

func (*TypeVarTuple) exprNode() {}
