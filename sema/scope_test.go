/*
File    : trill/sema/scope_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/trill/ast"
)

func TestScope_LookupShadowsOuter(t *testing.T) {
	outer := NewScope(nil)
	outer.Bind("x", &ast.VarDecl{DeclBase: ast.DeclBase{Name: "x"}, Kind: ast.VarImmutable})
	inner := NewScope(outer)
	inner.Bind("x", &ast.VarDecl{DeclBase: ast.DeclBase{Name: "x"}, Kind: ast.VarMutable})

	d, ok := inner.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, ast.VarMutable, d.(*ast.VarDecl).Kind)

	d, ok = outer.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, ast.VarImmutable, d.(*ast.VarDecl).Kind)
}

func TestScope_LookupMissingReturnsFalse(t *testing.T) {
	s := NewScope(nil)
	_, ok := s.Lookup("nope")
	assert.False(t, ok)
}

func TestScope_BindReportsRedeclaration(t *testing.T) {
	s := NewScope(nil)
	had := s.Bind("x", &ast.VarDecl{DeclBase: ast.DeclBase{Name: "x"}})
	assert.False(t, had)
	had = s.Bind("x", &ast.VarDecl{DeclBase: ast.DeclBase{Name: "x"}})
	assert.True(t, had)
}

func TestScope_IsMutable(t *testing.T) {
	s := NewScope(nil)
	s.Bind("v", &ast.VarDecl{DeclBase: ast.DeclBase{Name: "v"}, Kind: ast.VarMutable})
	s.Bind("l", &ast.VarDecl{DeclBase: ast.DeclBase{Name: "l"}, Kind: ast.VarImmutable})
	s.Bind("p", &ast.ParamDecl{DeclBase: ast.DeclBase{Name: "p"}})

	assert.True(t, s.IsMutable("v"))
	assert.False(t, s.IsMutable("l"))
	assert.False(t, s.IsMutable("p"))
	assert.False(t, s.IsMutable("missing"))
}
