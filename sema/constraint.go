/*
File    : trill/sema/constraint.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import (
	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/types"
)

// ConstraintKind discriminates the constraint-system tagged variant
// (spec §4.4 "Constraint kinds").
type ConstraintKind int

const (
	Equal ConstraintKind = iota
	Conversion
	Conforms
)

// Constraint is one relation between types recorded while walking an
// expression, later resolved by a Solver (spec §4.4-§4.5). Protocol is
// only meaningful for a Conforms constraint, in which case T2 is unused.
type Constraint struct {
	Kind     ConstraintKind
	T1, T2   *types.DataType
	Protocol string

	Node     ast.Node // originating node, attached to any failure diagnostic
	Label    string    // originating call-site label, for diagnostics
	Explicit bool      // true if a mentioned type variable was written by the programmer, not freshly synthesized
}

// Literal pseudo-types stand in for a literal expression's type until the
// solver or final reification narrows it to a concrete DataType (spec
// §4.4 "a literal pseudo-type such as integerLiteral, stringLiteral").
// Trill's DataType variant set is closed (spec §9 "discriminated-union
// expression tree... small closed set"), so these are folded into Custom
// by reserved name, the same trick used for generic instantiations
// (Array<Int>) — documented in DESIGN.md.
const (
	IntegerLiteralType  = "$IntegerLiteral"
	FloatingLiteralType = "$FloatingLiteral"
	StringLiteralType   = "$StringLiteral"
	NilLiteralType      = "$NilLiteral"
)

func isLiteralPseudoType(t *types.DataType) bool {
	return t != nil && t.Kind == types.Custom && len(t.Name) > 0 && t.Name[0] == '$'
}

func litInt() *types.DataType   { return types.NewCustom(IntegerLiteralType) }
func litFloat() *types.DataType { return types.NewCustom(FloatingLiteralType) }
func litString() *types.DataType { return types.NewCustom(StringLiteralType) }
func litNil() *types.DataType   { return types.NewCustom(NilLiteralType) }

func eq(t1, t2 *types.DataType, node ast.Node) Constraint {
	return Constraint{Kind: Equal, T1: t1, T2: t2, Node: node}
}

func conv(t1, t2 *types.DataType, node ast.Node) Constraint {
	return Constraint{Kind: Conversion, T1: t1, T2: t2, Node: node}
}

func conforms(t *types.DataType, protocol string, node ast.Node) Constraint {
	return Constraint{Kind: Conforms, T1: t, Protocol: protocol, Node: node}
}
