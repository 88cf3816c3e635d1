/*
File    : trill/ast/expr.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package ast

import (
	"github.com/akashmaji946/trill/source"
	"github.com/akashmaji946/trill/token"
	"github.com/akashmaji946/trill/types"
)

// IntLiteralExpr is an integer literal: 42, 0xFF (negation is a separate
// PrefixExpr, not folded into the literal). Value is unsigned so the
// UInt64 boundary literal 2^64-1 is representable without aliasing a
// negative int64.
type IntLiteralExpr struct {
	ExprBase
	Tok   token.Token
	Value uint64
	Radix int
}

// FloatLiteralExpr is a floating-point literal: 3.14, 2.5e10.
type FloatLiteralExpr struct {
	ExprBase
	Tok   token.Token
	Value float64
}

// CharLiteralExpr is a character literal: 'a'.
type CharLiteralExpr struct {
	ExprBase
	Tok   token.Token
	Value string
}

// BoolLiteralExpr is `true` or `false`.
type BoolLiteralExpr struct {
	ExprBase
	Tok   token.Token
	Value bool
}

// StringLiteralExpr is a plain "..." with no interpolation.
type StringLiteralExpr struct {
	ExprBase
	Tok   token.Token
	Value string
}

// StringInterpolationExpr is a "...\(expr)..." literal: alternating plain
// text segments and parsed sub-expressions (spec §3, §4.1).
type StringInterpolationExpr struct {
	ExprBase
	Tok      token.Token
	Segments []InterpSegment
}

// InterpSegment is one piece of a StringInterpolationExpr: either plain
// text or a parsed expression.
type InterpSegment struct {
	Text string // set when Expr == nil
	Expr Expr   // set when this segment came from \( ... )
}

// NilLiteralExpr is the `nil` literal.
type NilLiteralExpr struct {
	ExprBase
	Tok token.Token
}

// VoidLiteralExpr is the `()` void literal.
type VoidLiteralExpr struct {
	ExprBase
	Tok token.Token
}

// DirectiveKind distinguishes the #file/#line/#function directive
// literals.
type DirectiveKind int

const (
	DirectiveFile DirectiveKind = iota
	DirectiveLine
	DirectiveFunction
)

// DirectiveLiteralExpr is a #file, #line, or #function literal expression
// (spec §3; #warning/#error are statements, see PoundDiagnosticStmt).
type DirectiveLiteralExpr struct {
	ExprBase
	Tok  token.Token
	Kind DirectiveKind
}

// VariableRefExpr references a variable, parameter, global, or function
// by name. ResolvedDecl is nil until sema resolves it (spec §3 "Reference
// expressions hold resolved declaration handles... nil before sema").
type VariableRefExpr struct {
	ExprBase
	Name         string
	ResolvedDecl Decl
}

// PropertyRefExpr is `base.name` property/method access.
type PropertyRefExpr struct {
	ExprBase
	Base         Expr
	Name         string
	NameRange    source.Range // the member name's own range, narrower
	ResolvedDecl Decl
}

// TupleExpr is a tuple literal `(a, b, label: c)`.
type TupleExpr struct {
	ExprBase
	Elements []Expr
	Labels   []string // "" where unlabeled; same length as Elements
}

// ArrayExpr is an array literal `[1, 2, 3]`.
type ArrayExpr struct {
	ExprBase
	Elements []Expr
}

// TupleFieldExpr is `.0`, `.1` tuple-field indexing.
type TupleFieldExpr struct {
	ExprBase
	Base  Expr
	Index int
}

// ParenExpr is a parenthesized expression `(e)`, kept as its own node so
// the printer can round-trip user-written parens.
type ParenExpr struct {
	ExprBase
	Inner Expr
}

// SubscriptExpr is `base[index]`.
type SubscriptExpr struct {
	ExprBase
	Base         Expr
	Index        Expr
	ResolvedDecl Decl // the subscript decl chosen by overload resolution
}

// CallArg is one labeled-or-unlabeled call argument.
type CallArg struct {
	Label string // "" if unlabeled
	Value Expr
}

// CallExpr is a function call `f(a, label: b)`.
type CallExpr struct {
	ExprBase
	Callee       Expr
	Args         []CallArg
	ResolvedDecl Decl
}

// ClosureExpr is an anonymous function literal. Captures is populated by
// sema with the set of outer decls the closure body references (spec §3
// "ClosureExpr holds a set of captured decls").
type ClosureExpr struct {
	ExprBase
	Params     []*ParamDecl
	ReturnType *types.DataType // nil if omitted (inferred)
	Body       *BlockStmt
	Captures   []Decl
}

// PrefixExpr is a prefix operator application: `!x`, `~x`, `-x`, `&e`, `*p`.
type PrefixExpr struct {
	ExprBase
	Op           token.Token
	Operand      Expr
	ResolvedDecl Decl // the operator overload chosen, nil for &/*
}

// InfixExpr is a binary operator application, including assignment
// (see spec §4.2 "Assignment is parsed as an infix operator but lowered
// semantically to an assignment statement"). The parser lowers an
// assignment to an AssignStmt only at statement level; an assignment
// nested inside an expression (a call argument, a variable initializer,
// a ternary branch) stays an InfixExpr whose Op is the assignment
// operator.
type InfixExpr struct {
	ExprBase
	Op           token.Token
	Left, Right  Expr
	ResolvedDecl Decl
}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	ExprBase
	Cond, Then, Else Expr
}

// CoercionExpr is `e as T`.
type CoercionExpr struct {
	ExprBase
	Value      Expr
	TargetType *types.DataType
}

// IsExpr is `e is T`.
type IsExpr struct {
	ExprBase
	Value      Expr
	TargetType *types.DataType
}

// SizeofExpr is `sizeof(T)`.
type SizeofExpr struct {
	ExprBase
	TargetType *types.DataType
}
