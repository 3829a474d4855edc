// Package token defines the node kinds of the source grammar.
//
// Terminal tokens occupy IDs below NTOffset; grammar productions
// (nonterminal symbols) start at NTOffset. The split mirrors the external
// parser engine, which reports leaves and productions through a single
// numeric kind space.
package token

import "fmt"

// Kind identifies a parse-tree node: a terminal token for leaves,
// a grammar production for interior nodes.
type Kind int32

// NTOffset is the first nonterminal kind. Every kind below it is a
// terminal token.
const NTOffset Kind = 256

// Terminal tokens.
const (
	ENDMARKER Kind = iota
	NAME
	NUMBER
	STRING
	NEWLINE
	INDENT
	DEDENT
	LPAR
	RPAR
	LSQB
	RSQB
	COLON
	COMMA
	SEMI
	PLUS
	MINUS
	STAR
	SLASH
	VBAR
	AMPER
	LESS
	GREATER
	EQUAL
	DOT
	PERCENT
	BACKQUOTE
	LBRACE
	RBRACE
	EQEQUAL
	NOTEQUAL
	LESSEQUAL
	GREATEREQUAL
	TILDE
	CIRCUMFLEX
	LEFTSHIFT
	RIGHTSHIFT
	DOUBLESTAR
	DOUBLESLASH
	AT
	COLONEQUAL
	ASYNC
	AWAIT
)

// Grammar productions. Only the productions this engine lowers are named;
// the external grammar defines more.
const (
	FileInput Kind = NTOffset + iota
	SimpleStmt
	Atom
	Expr
	XorExpr
	AndExpr
	ShiftExpr
	ArithExpr
	Term
	Factor
	Power
	Comparison
	CompOp
	NotTest
	AndTest
	OrTest
	Test
	NamedExprTest
	TestlistGexp
	ExprList
	ListMaker
	DictSetMaker
	StarExpr
	Trailer
	ArgList
	Argument
	Subscript
	SubscriptList
	SliceOp
	CompFor
	OldCompFor
	CompIf
	CompIter
	TypeParam
	TypeVar
	TypeVarTuple
	ParamSpec
)

// IsTerminal returns true if the kind names a terminal token.
func (k Kind) IsTerminal() bool {
	return k < NTOffset
}

// String returns the grammar-facing name of the kind: the token name for
// terminals, the production name for nonterminals.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", k)
}

// kindNames maps kinds to the names used by the external grammar.
var kindNames = map[Kind]string{
	ENDMARKER:    "ENDMARKER",
	NAME:         "NAME",
	NUMBER:       "NUMBER",
	STRING:       "STRING",
	NEWLINE:      "NEWLINE",
	INDENT:       "INDENT",
	DEDENT:       "DEDENT",
	LPAR:         "LPAR",
	RPAR:         "RPAR",
	LSQB:         "LSQB",
	RSQB:         "RSQB",
	COLON:        "COLON",
	COMMA:        "COMMA",
	SEMI:         "SEMI",
	PLUS:         "PLUS",
	MINUS:        "MINUS",
	STAR:         "STAR",
	SLASH:        "SLASH",
	VBAR:         "VBAR",
	AMPER:        "AMPER",
	LESS:         "LESS",
	GREATER:      "GREATER",
	EQUAL:        "EQUAL",
	DOT:          "DOT",
	PERCENT:      "PERCENT",
	BACKQUOTE:    "BACKQUOTE",
	LBRACE:       "LBRACE",
	RBRACE:       "RBRACE",
	EQEQUAL:      "EQEQUAL",
	NOTEQUAL:     "NOTEQUAL",
	LESSEQUAL:    "LESSEQUAL",
	GREATEREQUAL: "GREATEREQUAL",
	TILDE:        "TILDE",
	CIRCUMFLEX:   "CIRCUMFLEX",
	LEFTSHIFT:    "LEFTSHIFT",
	RIGHTSHIFT:   "RIGHTSHIFT",
	DOUBLESTAR:   "DOUBLESTAR",
	DOUBLESLASH:  "DOUBLESLASH",
	AT:           "AT",
	COLONEQUAL:   "COLONEQUAL",
	ASYNC:        "ASYNC",
	AWAIT:        "AWAIT",

	FileInput:     "file_input",
	SimpleStmt:    "simple_stmt",
	Atom:          "atom",
	Expr:          "expr",
	XorExpr:       "xor_expr",
	AndExpr:       "and_expr",
	ShiftExpr:     "shift_expr",
	ArithExpr:     "arith_expr",
	Term:          "term",
	Factor:        "factor",
	Power:         "power",
	Comparison:    "comparison",
	CompOp:        "comp_op",
	NotTest:       "not_test",
	AndTest:       "and_test",
	OrTest:        "or_test",
	Test:          "test",
	NamedExprTest: "namedexpr_test",
	TestlistGexp:  "testlist_gexp",
	ExprList:      "exprlist",
	ListMaker:     "listmaker",
	DictSetMaker:  "dictsetmaker",
	StarExpr:      "star_expr",
	Trailer:       "trailer",
	ArgList:       "arglist",
	Argument:      "argument",
	Subscript:     "subscript",
	SubscriptList: "subscriptlist",
	SliceOp:       "sliceop",
	CompFor:       "comp_for",
	OldCompFor:    "old_comp_for",
	CompIf:        "comp_if",
	CompIter:      "comp_iter",
	TypeParam:     "typeparam",
	TypeVar:       "typevar",
	TypeVarTuple:  "typevartuple",
	ParamSpec:     "paramspec",
}

// namesToKinds is the inverse of kindNames, built once at init.
var namesToKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// Lookup returns the kind with the given grammar-facing name.
func Lookup(name string) (Kind, bool) {
	k, ok := namesToKinds[name]
	return k, ok
}
