/*
File    : trill/sema/context_test.go
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

func TestNewContext_PreloadsBuiltinArithmeticOperators(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	ops := ctx.LookupOperator("+")
	require.NotEmpty(t, ops)
	found := false
	for _, op := range ops {
		if len(op.Params) == 2 && op.Params[0].Type.Kind == types.Int && op.Params[0].Type.IntWidth == 64 {
			found = true
		}
	}
	assert.True(t, found, "expected a builtin Int64 + Int64 overload")
}

func TestNewContext_PreloadsTypeOfIntrinsic(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	fns := ctx.LookupFunctions("typeOf")
	require.Len(t, fns, 1)
	assert.Equal(t, types.Any, fns[0].Params[0].Type.Kind)
}

func TestMangle_DiffersByParamType(t *testing.T) {
	a := Mangle("f", []*ast.ParamDecl{{Type: types.NewInt(64, true)}}, nil)
	b := Mangle("f", []*ast.ParamDecl{{Type: types.NewFloat(types.Double)}}, nil)
	assert.NotEqual(t, a, b)
}

func TestContext_CanonicalTypeResolvesAlias(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	target := types.NewInt(32, true)
	ctx.AddAlias(&ast.TypeAliasDecl{DeclBase: ast.DeclBase{Name: "MyInt"}, Target: target})

	canon := ctx.CanonicalType(types.NewCustom("MyInt"))
	assert.Equal(t, types.Int, canon.Kind)
	assert.Equal(t, 32, canon.IntWidth)
}

func TestContext_IsIndirectReflectsModifier(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	assert.False(t, ctx.IsIndirect(types.NewCustom("Int")))
}
