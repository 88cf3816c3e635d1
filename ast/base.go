/*
File    : trill/ast/base.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package ast defines Trill's node hierarchy. Every node is created by the
// parser and lives for the compilation unit's duration (spec §3
// "Lifecycles"); the tree itself never changes shape after parsing, only
// the mutable fields sema writes (Type, resolved decl handles, HasReturn
// flags) change.
//
// The teacher models its AST as a closed interface (NodeVisitor) with one
// Visit method per concrete node and an Accept method per node — true
// double-dispatch. Trill keeps the same "small closed set of
// implementers" shape (spec §9 design notes) but drops the Visitor
// interface itself: Go type switches over the concrete *XxxExpr types
// give the same exhaustiveness checking a linter can verify, without a
// vtable-sized interface that every new node variant has to extend.
// The printer dispatches with type switches too; it keeps only the
// one-method-per-node-kind layout of main/print_visitor.go, not a Visitor.
package ast

import (
	"github.com/akashmaji946/trill/source"
	"github.com/akashmaji946/trill/types"
)

// Node is the base of every AST node: it has a source range.
type Node interface {
	Range() source.Range
}

// Expr is any expression node. Every expression carries a mutable Type,
// initialized to types.ErrorType by the parser and overwritten by sema
// once its constraint is solved (spec §3 "Expression nodes... type:
// DataType initialized to error").
type Expr interface {
	Node
	isExpr()
	GetType() *types.DataType
	SetType(*types.DataType)
}

// ExprBase is embedded by every expression node.
type ExprBase struct {
	SrcRange source.Range
	Type     *types.DataType
}

func (e *ExprBase) Range() source.Range       { return e.SrcRange }
func (e *ExprBase) GetType() *types.DataType  { return e.Type }
func (e *ExprBase) SetType(t *types.DataType) { e.Type = t }
func (e *ExprBase) isExpr()                   {}

// NewExprBase seeds a fresh expression's Type with types.ErrorType, the
// parser's default per spec §3.
func NewExprBase(r source.Range) ExprBase {
	return ExprBase{SrcRange: r, Type: types.ErrorType}
}

// Stmt is any statement node.
type Stmt interface {
	Node
	isStmt()
}

// StmtBase is embedded by every statement node.
type StmtBase struct {
	SrcRange source.Range
}

func (s *StmtBase) Range() source.Range { return s.SrcRange }
func (s *StmtBase) isStmt()             {}

// Decl is any declaration node — also usable as a Stmt via DeclStmt, and
// as the referent of a resolved reference expression's weak handle.
type Decl interface {
	Node
	isDecl()
	DeclName() string
}

// DeclBase is embedded by every declaration node.
type DeclBase struct {
	SrcRange source.Range
	Name     string
}

func (d *DeclBase) Range() source.Range { return d.SrcRange }
func (d *DeclBase) isDecl()             {}
func (d *DeclBase) DeclName() string    { return d.Name }

// Modifier is one of the declaration modifiers validated by the parser's
// modifier matrix (spec §4.2).
type Modifier string

const (
	ModForeign  Modifier = "foreign"
	ModStatic   Modifier = "static"
	ModMutating Modifier = "mutating"
	ModIndirect Modifier = "indirect"
	ModNoreturn Modifier = "noreturn"
	ModImplicit Modifier = "implicit"
)

// ModifierSet is a small fixed set of modifiers attached to a declaration.
type ModifierSet map[Modifier]bool

func (m ModifierSet) Has(mod Modifier) bool { return m[mod] }
