/*
File    : trill/sema/scope.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import "github.com/akashmaji946/trill/ast"

// Scope is a lexical scope boundary for name resolution during semantic
// analysis, generalized from the teacher's scope.Scope: instead of
// binding a name to a runtime value, a Trill Scope binds a name to the
// declaration (ast.Decl) that introduces it — a VarDecl, ParamDecl, or
// GenericParamDecl — since sema never executes anything (spec §5). The
// scope chain itself is the same parent-pointer design: one Scope per
// function body, block, and loop header, searched outward on lookup.
type Scope struct {
	// Bindings maps a name to the declaration that introduced it in this
	// scope.
	Bindings map[string]ast.Decl

	// Parent is the enclosing scope; nil for the file-level scope holding
	// globals and top-level functions.
	Parent *Scope
}

// NewScope creates a child of parent, or a root scope if parent is nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{Bindings: make(map[string]ast.Decl), Parent: parent}
}

// Lookup searches this scope and every enclosing scope for name,
// returning the nearest (innermost) binding — the standard shadowing
// rule.
func (s *Scope) Lookup(name string) (ast.Decl, bool) {
	if s.Bindings == nil {
		s.Bindings = make(map[string]ast.Decl)
	}
	if d, ok := s.Bindings[name]; ok {
		return d, true
	}
	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil, false
}

// Bind introduces name into this scope only, returning whether it was
// already bound in this exact scope (a same-scope redeclaration; the new
// binding replaces the old one). Shadowing an outer scope is not
// reported here. The Analyzer ignores the result, so a local
// redeclaration produces no diagnostic.
func (s *Scope) Bind(name string, d ast.Decl) bool {
	if s.Bindings == nil {
		s.Bindings = make(map[string]ast.Decl)
	}
	_, had := s.Bindings[name]
	s.Bindings[name] = d
	return had
}

// IsMutable reports whether the declaration bound to name (searched up
// the chain, same as Lookup) was introduced with `var` rather than
// `let`. Parameters always report false here (writing through a pointer
// parameter is decided by the caller via the expression's type). Returns
// false if name is unresolved.
func (s *Scope) IsMutable(name string) bool {
	d, ok := s.Lookup(name)
	if !ok {
		return false
	}
	switch decl := d.(type) {
	case *ast.VarDecl:
		return decl.Kind == ast.VarMutable
	case *ast.ParamDecl:
		return false
	default:
		return false
	}
}
