/*
File    : trill/sema/conformance_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/types"
)

func TestMissingConformance_InheritedRequirementChecked(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	base := &ast.ProtocolDecl{DeclBase: ast.DeclBase{Name: "Base"}, Requirements: []*ast.FunctionDecl{
		{DeclBase: ast.DeclBase{Name: "id"}, ReturnType: types.NewInt(64, true)},
	}}
	derived := &ast.ProtocolDecl{DeclBase: ast.DeclBase{Name: "Derived"}, Inherits: []*types.DataType{types.NewCustom("Base")}}
	ctx.AddProtocol(base)
	ctx.AddProtocol(derived)

	td := &ast.TypeDecl{DeclBase: ast.DeclBase{Name: "Impl"}}
	ctx.AddType(td)

	missing := ctx.MissingConformance(td, "Derived", map[string]bool{})
	assert.Contains(t, missing, "id")
}

func TestMissingConformance_SatisfiedWhenSignatureMatches(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	p := &ast.ProtocolDecl{DeclBase: ast.DeclBase{Name: "Greeter"}, Requirements: []*ast.FunctionDecl{
		{DeclBase: ast.DeclBase{Name: "greet"}, ReturnType: types.NewInt(64, true)},
	}}
	ctx.AddProtocol(p)

	greet := &ast.FunctionDecl{DeclBase: ast.DeclBase{Name: "greet"}, ReturnType: types.NewInt(64, true)}
	td := &ast.TypeDecl{DeclBase: ast.DeclBase{Name: "Impl"}, Methods: []*ast.FunctionDecl{greet}}
	ctx.AddType(td)

	missing := ctx.MissingConformance(td, "Greeter", map[string]bool{})
	assert.Empty(t, missing)
	assert.True(t, ctx.Conforms(types.NewCustom("Impl"), "Greeter"))
}

func TestConforms_AnyAlwaysConforms(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	assert.True(t, ctx.Conforms(types.AnyType, "AnythingAtAll"))
}

func TestMissingConformance_CyclicInheritanceDoesNotLoop(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	a := &ast.ProtocolDecl{DeclBase: ast.DeclBase{Name: "A"}, Inherits: []*types.DataType{types.NewCustom("B")}}
	b := &ast.ProtocolDecl{DeclBase: ast.DeclBase{Name: "B"}, Inherits: []*types.DataType{types.NewCustom("A")}}
	ctx.AddProtocol(a)
	ctx.AddProtocol(b)

	td := &ast.TypeDecl{DeclBase: ast.DeclBase{Name: "Impl"}}
	ctx.AddType(td)

	assert.NotPanics(t, func() {
		ctx.MissingConformance(td, "A", map[string]bool{})
	})
}
