/*
File    : trill/ast/base_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/trill/source"
	"github.com/akashmaji946/trill/types"
)

func TestNewExprBase_DefaultsToErrorType(t *testing.T) {
	lit := &IntLiteralExpr{ExprBase: NewExprBase(source.Range{})}
	assert.Same(t, types.ErrorType, lit.GetType())
	lit.SetType(types.NewInt(64, true))
	assert.True(t, types.Equal(lit.GetType(), types.NewInt(64, true)))
}

func TestTypeDecl_MemberLookup(t *testing.T) {
	td := &TypeDecl{DeclBase: DeclBase{Name: "Point"}}
	td.Properties = append(td.Properties, &PropertyDecl{DeclBase: DeclBase{Name: "x"}})
	td.RebuildMemberTable()
	m, ok := td.Member("x")
	assert.True(t, ok)
	assert.Equal(t, "x", m.DeclName())
	_, ok = td.Member("missing")
	assert.False(t, ok)
}

func TestFunctionDecl_IsForeign(t *testing.T) {
	f := &FunctionDecl{DeclBase: DeclBase{Name: "puts"}, Modifiers: ModifierSet{ModForeign: true}}
	assert.True(t, f.IsForeign())
	g := &FunctionDecl{DeclBase: DeclBase{Name: "main"}, Modifiers: ModifierSet{}}
	assert.False(t, g.IsForeign())
}
