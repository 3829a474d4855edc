package ast

// Operator is a binary operator.
type Operator int

// Binary operators.
const (
	Add Operator = iota
	Sub
	Mult
	MatMult
	Div
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
	FloorDiv
)

var operatorNames = map[Operator]string{
	Add:      "Add",
	Sub:      "Sub",
	Mult:     "Mult",
	MatMult:  "MatMult",
	Div:      "Div",
	Mod:      "Mod",
	Pow:      "Pow",
	LShift:   "LShift",
	RShift:   "RShift",
	BitOr:    "BitOr",
	BitXor:   "BitXor",
	BitAnd:   "BitAnd",
	FloorDiv: "FloorDiv",
}

// String returns the reference schema's name for the operator.
func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return "Operator(?)"
}

// BoolOperator is a boolean chain operator.
type BoolOperator int

// Boolean operators.
const (
	And BoolOperator = iota
	Or
)

// String returns the reference schema's name for the operator.
func (op BoolOperator) String() string {
	if op == And {
		return "And"
	}
	return "Or"
}

// UnaryOperator is a unary operator.
type UnaryOperator int

// Unary operators.
const (
	Invert UnaryOperator = iota
	Not
	UAdd
	USub
)

var unaryOperatorNames = map[UnaryOperator]string{
	Invert: "Invert",
	Not:    "Not",
	UAdd:   "UAdd",
	USub:   "USub",
}

// String returns the reference schema's name for the operator.
func (op UnaryOperator) String() string {
	if name, ok := unaryOperatorNames[op]; ok {
		return name
	}
	return "UnaryOperator(?)"
}

// CmpOp is a comparison operator.
type CmpOp int

// Comparison operators.
const (
	Eq CmpOp = iota
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var cmpOpNames = map[CmpOp]string{
	Eq:    "Eq",
	NotEq: "NotEq",
	Lt:    "Lt",
	LtE:   "LtE",
	Gt:    "Gt",
	GtE:   "GtE",
	Is:    "Is",
	IsNot: "IsNot",
	In:    "In",
	NotIn: "NotIn",
}

// String returns the reference schema's name for the operator.
func (op CmpOp) String() string {
	if name, ok := cmpOpNames[op]; ok {
		return name
	}
	return "CmpOp(?)"
}
