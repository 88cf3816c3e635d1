/*
File    : trill/sema/builtins.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import (
	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/types"
)

// intWidths enumerates every sized integer Trill exposes (spec §4.3
// "Int, Int8..Int64, UInt...").
var intWidths = []struct {
	width  int
	signed bool
}{
	{8, true}, {16, true}, {32, true}, {64, true},
	{8, false}, {16, false}, {32, false}, {64, false},
}

var floatWidths = []types.FloatWidth{types.Half, types.Single, types.Double, types.Extended80}

var arithmeticAndBitwiseOps = []string{"+", "-", "*", "/", "%", "&", "|", "^", "<<", ">>"}
var arithmeticOnlyOps = []string{"+", "-", "*", "/"}
var comparisonOps = []string{"==", "!=", "<", "<=", ">", ">="}

// loadBuiltins preloads the primitive type decls and builtin operator set
// spec §4.3 requires every Context to start with, before a single user
// file is registered.
func (c *Context) loadBuiltins() {
	c.loadBuiltinTypeDecls()
	c.loadBuiltinArithmetic()
	c.loadBuiltinComparisons()
	c.loadBuiltinLogical()
	c.loadBuiltinIntrinsics()
}

func (c *Context) loadBuiltinTypeDecls() {
	names := []string{"Bool", "Void"}
	for _, w := range intWidths {
		names = append(names, types.NewInt(w.width, w.signed).String())
	}
	for _, fw := range floatWidths {
		names = append(names, types.NewFloat(fw).String())
	}
	for _, n := range names {
		td := &ast.TypeDecl{DeclBase: ast.DeclBase{Name: n}}
		c.typesByName[n] = td
		c.Types = append(c.Types, td)
	}
}

func builtinParam(name string, t *types.DataType) *ast.ParamDecl {
	return &ast.ParamDecl{DeclBase: ast.DeclBase{Name: name}, Type: t}
}

func (c *Context) addBuiltinOperator(op string, operand, result *types.DataType) {
	fn := &ast.FunctionDecl{
		DeclBase:      ast.DeclBase{Name: op},
		Kind:          ast.FuncOperator,
		OperatorToken: op,
		Modifiers:     ast.ModifierSet{ast.ModImplicit: true},
		Params:        []*ast.ParamDecl{builtinParam("lhs", operand), builtinParam("rhs", operand)},
		ReturnType:    result,
	}
	c.AddOperator(fn)
}

func (c *Context) loadBuiltinArithmetic() {
	for _, w := range intWidths {
		t := types.NewInt(w.width, w.signed)
		for _, op := range arithmeticAndBitwiseOps {
			c.addBuiltinOperator(op, t, t)
		}
	}
	for _, fw := range floatWidths {
		t := types.NewFloat(fw)
		for _, op := range arithmeticOnlyOps {
			c.addBuiltinOperator(op, t, t)
		}
	}
}

func (c *Context) loadBuiltinComparisons() {
	for _, w := range intWidths {
		t := types.NewInt(w.width, w.signed)
		for _, op := range comparisonOps {
			c.addBuiltinOperator(op, t, types.BoolType)
		}
	}
	for _, fw := range floatWidths {
		t := types.NewFloat(fw)
		for _, op := range comparisonOps {
			c.addBuiltinOperator(op, t, types.BoolType)
		}
	}
}

func (c *Context) loadBuiltinLogical() {
	c.addBuiltinOperator("&&", types.BoolType, types.BoolType)
	c.addBuiltinOperator("||", types.BoolType, types.BoolType)
	not := &ast.FunctionDecl{
		DeclBase:      ast.DeclBase{Name: "!"},
		Kind:          ast.FuncOperator,
		OperatorToken: "!",
		Modifiers:     ast.ModifierSet{ast.ModImplicit: true},
		Params:        []*ast.ParamDecl{builtinParam("operand", types.BoolType)},
		ReturnType:    types.BoolType,
	}
	c.AddOperator(not)
}

// loadBuiltinIntrinsics registers typeOf(Any) -> *Void (spec §4.3
// "intrinsic typeOf(Any) -> *Void").
func (c *Context) loadBuiltinIntrinsics() {
	fn := &ast.FunctionDecl{
		DeclBase:   ast.DeclBase{Name: "typeOf"},
		Kind:       ast.FuncFree,
		Modifiers:  ast.ModifierSet{ast.ModImplicit: true},
		Params:     []*ast.ParamDecl{builtinParam("value", types.AnyType)},
		ReturnType: types.NewPointer(types.VoidType),
	}
	c.AddFunction(fn)
}
