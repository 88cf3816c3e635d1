/*
File    : trill/sema/mutability.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import "github.com/akashmaji946/trill/ast"

// isLvalue reports whether e may be the operand of `&` (spec §4.7 step
// 9 "address-of requires e be an lvalue").
func isLvalue(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.VariableRefExpr, *ast.PropertyRefExpr, *ast.SubscriptExpr, *ast.TupleFieldExpr:
		return true
	case *ast.ParenExpr:
		return isLvalue(n.Inner)
	case *ast.PrefixExpr:
		return n.Op.Text == "*"
	}
	return false
}

// isMutable walks an lvalue expression and reports whether assigning
// through it is allowed, following spec §4.3's mutability rule: `var` is
// mutable, `let` is immutable, a property access inherits its base's
// mutability, a pointer dereference is always mutable, anything else is
// immutable. culprit names the identifier to blame in a diagnostic.
func (env *Env) isMutable(ctx *Context, e ast.Expr) (mutable bool, culprit string) {
	switch n := e.(type) {
	case *ast.VariableRefExpr:
		if d, ok := env.Scope.Lookup(n.Name); ok {
			return mutableDecl(d), n.Name
		}
		if v, ok := ctx.LookupGlobal(n.Name); ok {
			return v.Kind == ast.VarMutable, n.Name
		}
		return false, n.Name
	case *ast.PropertyRefExpr:
		baseMutable, culprit := env.isMutable(ctx, n.Base)
		if !baseMutable {
			return false, culprit
		}
		if pd, ok := n.ResolvedDecl.(*ast.PropertyDecl); ok {
			return pd.Kind == ast.VarMutable, n.Name
		}
		return false, n.Name
	case *ast.SubscriptExpr:
		return env.isMutable(ctx, n.Base)
	case *ast.TupleFieldExpr:
		return env.isMutable(ctx, n.Base)
	case *ast.ParenExpr:
		return env.isMutable(ctx, n.Inner)
	case *ast.PrefixExpr:
		if n.Op.Text == "*" {
			return true, "*"
		}
	}
	return false, ""
}

func mutableDecl(d ast.Decl) bool {
	switch v := d.(type) {
	case *ast.VarDecl:
		return v.Kind == ast.VarMutable
	case *ast.ParamDecl:
		return false
	}
	return false
}
