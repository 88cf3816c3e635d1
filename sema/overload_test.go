/*
File    : trill/sema/overload_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/types"
)

func intLit(v int64) *ast.IntLiteralExpr {
	lit := &ast.IntLiteralExpr{Value: uint64(v)}
	lit.SetType(litInt())
	return lit
}

func TestResolve_PicksExactArityMatch(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	a := &ast.FunctionDecl{DeclBase: ast.DeclBase{Name: "f"}, Params: []*ast.ParamDecl{{DeclBase: ast.DeclBase{Name: "x"}, Type: types.NewInt(64, true)}}, ReturnType: types.NewInt(64, true)}
	a.Mangled = Mangle("f", a.Params, nil)

	outcome := ctx.Resolve([]*ast.FunctionDecl{a}, []ast.CallArg{{Value: intLit(1)}}, a)
	require.Equal(t, Resolved, outcome.Kind)
	assert.Equal(t, a, outcome.Decl)
}

func TestResolve_NoCandidatesWhenListEmpty(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	outcome := ctx.Resolve(nil, nil, (*ast.FunctionDecl)(nil))
	assert.Equal(t, NoCandidates, outcome.Kind)
}

func TestResolve_ArityMismatchRejected(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	a := &ast.FunctionDecl{DeclBase: ast.DeclBase{Name: "f"}, Params: []*ast.ParamDecl{{DeclBase: ast.DeclBase{Name: "x"}, Type: types.NewInt(64, true)}}}
	outcome := ctx.Resolve([]*ast.FunctionDecl{a}, []ast.CallArg{{Value: intLit(1)}, {Value: intLit(2)}}, a)
	assert.Equal(t, NoMatchingCandidates, outcome.Kind)
}

func TestResolve_PrefersExactOverPromoted(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	exact := &ast.FunctionDecl{DeclBase: ast.DeclBase{Name: "f"}, Params: []*ast.ParamDecl{{DeclBase: ast.DeclBase{Name: "x"}, Type: types.NewInt(64, true)}}, ReturnType: types.NewInt(64, true)}
	exact.Mangled = "f(Int64)"
	narrow := &ast.FunctionDecl{DeclBase: ast.DeclBase{Name: "f"}, Params: []*ast.ParamDecl{{DeclBase: ast.DeclBase{Name: "x"}, Type: types.NewInt(8, true)}}, ReturnType: types.NewInt(8, true)}
	narrow.Mangled = "f(Int8)"

	outcome := ctx.Resolve([]*ast.FunctionDecl{narrow, exact}, []ast.CallArg{{Value: intLit(1)}}, exact)
	require.Equal(t, Resolved, outcome.Kind)
	assert.Equal(t, exact, outcome.Decl)
}

func TestResolve_AmbiguousWhenTied(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	a := &ast.FunctionDecl{DeclBase: ast.DeclBase{Name: "f"}, Params: []*ast.ParamDecl{{DeclBase: ast.DeclBase{Name: "x"}, Type: types.NewInt(8, true)}}, ReturnType: types.NewInt(8, true)}
	a.Mangled = "f(Int8)"
	b := &ast.FunctionDecl{DeclBase: ast.DeclBase{Name: "f"}, Params: []*ast.ParamDecl{{DeclBase: ast.DeclBase{Name: "x"}, Type: types.NewFloat(types.Double)}}, ReturnType: types.NewFloat(types.Double)}
	b.Mangled = "f(Double)"

	outcome := ctx.Resolve([]*ast.FunctionDecl{a, b}, []ast.CallArg{{Value: intLit(1)}}, a)
	assert.Equal(t, Ambiguity, outcome.Kind)
}

func TestInstantiateGenerics_SubstitutesThroughPointer(t *testing.T) {
	subst := map[string]*types.DataType{"T": types.NewInt(64, true)}
	result := instantiateGenerics(types.NewPointer(types.NewCustom("T")), subst)
	assert.Equal(t, types.Pointer, result.Kind)
	assert.True(t, types.Equal(result.Elem, types.NewInt(64, true)))
}

func TestRejectByShape_OperatorsSkipLabelChecking(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	plus := ctx.LookupOperator("+")
	require.NotEmpty(t, plus)
	_, rejected := ctx.rejectByShape(plus[0], []ast.CallArg{{}, {}})
	assert.False(t, rejected)
}
