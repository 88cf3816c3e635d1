/*
File    : trill/ast/stmt.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package ast

import "github.com/akashmaji946/trill/token"

// BlockStmt is a `{ ... }` compound statement. HasReturn is set by sema
// (spec §4.7 step 7) once every control path through the block is known
// to return/break/continue/call a noreturn function.
type BlockStmt struct {
	StmtBase
	Statements []Stmt
	HasReturn  bool
}

// IfStmt is `if cond { ... } else ...`. Else is nil, a *BlockStmt, or
// another *IfStmt (an else-if chain).
type IfStmt struct {
	StmtBase
	Cond Expr
	Then *BlockStmt
	Else Stmt
}

// WhileStmt is `while cond { ... }`.
type WhileStmt struct {
	StmtBase
	Cond Expr
	Body *BlockStmt
}

// ForStmt is a C-style `for init; cond; post { ... }`. Any of Init/Cond/
// Post may be nil.
type ForStmt struct {
	StmtBase
	Init Stmt
	Cond Expr
	Post Stmt
	Body *BlockStmt
}

// CaseClause is one `case v1, v2:` or `default:` arm of a SwitchStmt.
type CaseClause struct {
	StmtBase
	Values    []Expr // empty when IsDefault
	Body      *BlockStmt
	IsDefault bool
}

// SwitchStmt is `switch subject { case ...: ... default: ... }`.
type SwitchStmt struct {
	StmtBase
	Subject Expr
	Cases   []*CaseClause
}

// BreakStmt is `break`.
type BreakStmt struct{ StmtBase }

// ContinueStmt is `continue`.
type ContinueStmt struct{ StmtBase }

// ReturnStmt is `return` or `return value`.
type ReturnStmt struct {
	StmtBase
	Value Expr // nil for a bare `return`
}

// AssignStmt is the lowered form of an infix `=`-family operator (spec
// §4.2): `lhs op= rhs` including plain `=`. Op.Text is the original
// operator token text ("=", "+=", ...).
type AssignStmt struct {
	StmtBase
	Op    token.Token
	LHS   Expr
	RHS   Expr
}

// ExprStmt wraps a bare expression used as a statement.
type ExprStmt struct {
	StmtBase
	X Expr
}

// DeclStmt wraps a local declaration (var/let) used as a statement.
type DeclStmt struct {
	StmtBase
	D Decl
}

// PoundDiagnosticStmt is `#warning "..."` or `#error "..."`.
type PoundDiagnosticStmt struct {
	StmtBase
	IsError bool
	Message string
}
