/*
File    : trill/parser/parser_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/source"
)

func parse(t *testing.T, src string) (*ast.File, *diag.Engine) {
	t.Helper()
	mgr := source.NewManager()
	f := mgr.AddFile("<test>", src)
	d := diag.NewEngine()
	return ParseFile(f, d), d
}

func TestParseFile_BinaryPrecedence(t *testing.T) {
	file, d := parse(t, "var x = 1 + 2 * 3")
	require.False(t, d.HasErrors())
	require.Len(t, file.Items, 1)
	v, ok := file.Items[0].Decl.(*ast.VarDecl)
	require.True(t, ok)
	add, ok := v.Init.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, "+", add.Op.Text)
	mul, ok := add.Right.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op.Text)
}

func TestParseFile_ShiftBindsTighterThanMul(t *testing.T) {
	file, d := parse(t, "var x = 1 << 2 * 3")
	require.False(t, d.HasErrors())
	v := file.Items[0].Decl.(*ast.VarDecl)
	mul, ok := v.Init.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op.Text)
	shift, ok := mul.Left.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, "<<", shift.Op.Text)
}

func TestParseFile_AssignmentLoweredToStatement(t *testing.T) {
	file, d := parse(t, "func f() {\n  x = 1\n}")
	require.False(t, d.HasErrors())
	fn := file.Items[0].Decl.(*ast.FunctionDecl)
	require.Len(t, fn.Body.Statements, 1)
	assign, ok := fn.Body.Statements[0].(*ast.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "=", assign.Op.Text)
	ref, ok := assign.LHS.(*ast.VariableRefExpr)
	require.True(t, ok)
	assert.Equal(t, "x", ref.Name)
}

func TestParseFile_TernaryAndCoercion(t *testing.T) {
	file, d := parse(t, "var x = (a as Int) ? 1 : 2")
	require.False(t, d.HasErrors())
	v := file.Items[0].Decl.(*ast.VarDecl)
	tern, ok := v.Init.(*ast.TernaryExpr)
	require.True(t, ok)
	paren, ok := tern.Cond.(*ast.ParenExpr)
	require.True(t, ok)
	coerce, ok := paren.Inner.(*ast.CoercionExpr)
	require.True(t, ok)
	assert.Equal(t, "Int", coerce.TargetType.String())
}

func TestParseFile_FunctionDecl(t *testing.T) {
	file, d := parse(t, "func add(a: Int, b: Int) -> Int {\n  return a + b\n}")
	require.False(t, d.HasErrors())
	fn := file.Items[0].Decl.(*ast.FunctionDecl)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "Int", fn.Params[0].Type.String())
	assert.Equal(t, "Int", fn.ReturnType.String())
	require.Len(t, fn.Body.Statements, 1)
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.NotNil(t, ret.Value)
}

func TestParseFile_OperatorOverload(t *testing.T) {
	file, d := parse(t, "func +(lhs: Int, rhs: Int) -> Int { return lhs }")
	require.False(t, d.HasErrors())
	fn := file.Items[0].Decl.(*ast.FunctionDecl)
	assert.Equal(t, ast.FuncOperator, fn.Kind)
	assert.Equal(t, "+", fn.OperatorToken)
}

func TestParseFile_TypeDeclWithMembersAndConformance(t *testing.T) {
	src := `
type Point: Equatable {
  var x: Int
  var y: Int = 0
  func length() -> Int {
    return x
  }
}`
	file, d := parse(t, src)
	require.False(t, d.HasErrors())
	td := file.Items[0].Decl.(*ast.TypeDecl)
	assert.Equal(t, "Point", td.Name)
	require.Len(t, td.Conformances, 1)
	assert.Equal(t, "Equatable", td.Conformances[0].String())
	require.Len(t, td.Properties, 2)
	require.Len(t, td.Methods, 1)
	_, ok := td.Member("x")
	assert.True(t, ok)
}

func TestParseFile_GenericNestedClosingBrackets(t *testing.T) {
	file, d := parse(t, "var m: Map<Int, Array<Int>> = nil")
	require.False(t, d.HasErrors())
	v := file.Items[0].Decl.(*ast.VarDecl)
	assert.Equal(t, "Map<Int, Array<Int>>", v.Type.String())
}

func TestParseFile_InvalidModifierOnKind(t *testing.T) {
	_, d := parse(t, "indirect func f() {}")
	assert.True(t, d.HasErrors())
}

func TestParseFile_DuplicateDefaultInSwitch(t *testing.T) {
	src := `
func f() {
  switch 1 {
  case 1:
    break
  default:
    break
  default:
    break
  }
}`
	_, d := parse(t, src)
	assert.True(t, d.HasErrors())
}

func TestParseFile_ComputedPropertyRequiresExplicitType(t *testing.T) {
	src := `
type T {
  var x {
    get { return 1 }
  }
}`
	_, d := parse(t, src)
	assert.True(t, d.HasErrors())
}

func TestParseFile_StringInterpolationNestedExpr(t *testing.T) {
	file, d := parse(t, `var s = "hi \(a + b) there"`)
	require.False(t, d.HasErrors())
	v := file.Items[0].Decl.(*ast.VarDecl)
	interp, ok := v.Init.(*ast.StringInterpolationExpr)
	require.True(t, ok)
	var found bool
	for _, seg := range interp.Segments {
		if seg.Expr != nil {
			found = true
			infix, ok := seg.Expr.(*ast.InfixExpr)
			require.True(t, ok)
			assert.Equal(t, "+", infix.Op.Text)
		}
	}
	assert.True(t, found)
}

func TestParseFile_ExtensionAndProtocol(t *testing.T) {
	src := `
protocol Greeter {
  func greet() -> Int
}
extension Point {
  func greet() -> Int {
    return 0
  }
}`
	file, d := parse(t, src)
	require.False(t, d.HasErrors())
	require.Len(t, file.Items, 2)
	proto := file.Items[0].Decl.(*ast.ProtocolDecl)
	require.Len(t, proto.Requirements, 1)
	ext := file.Items[1].Decl.(*ast.ExtensionDecl)
	require.Len(t, ext.Methods, 1)
}

func TestParseFile_ClosureLiteral(t *testing.T) {
	file, d := parse(t, "var f = { (x: Int) -> Int in return x }")
	require.False(t, d.HasErrors())
	v := file.Items[0].Decl.(*ast.VarDecl)
	cl, ok := v.Init.(*ast.ClosureExpr)
	require.True(t, ok)
	require.Len(t, cl.Params, 1)
	assert.Equal(t, "Int", cl.ReturnType.String())
}

func TestParseFile_ForLoopAndWhile(t *testing.T) {
	src := `
func f() {
  for var i = 0; i < 10; i = i + 1 {
    break
  }
  while true {
    continue
  }
}`
	_, d := parse(t, src)
	assert.False(t, d.HasErrors())
}

func kinds(d *diag.Engine) []string {
	var out []string
	for _, diagnostic := range d.All() {
		out = append(out, string(diagnostic.Kind))
	}
	return out
}

func TestParseFile_IndirectTypeDeclParses(t *testing.T) {
	src := `
indirect type Node {
  var next: Node
}`
	file, d := parse(t, src)
	require.False(t, d.HasErrors())
	require.Len(t, file.Items, 1)
	td, ok := file.Items[0].Decl.(*ast.TypeDecl)
	require.True(t, ok)
	assert.True(t, td.Modifiers.Has(ast.ModIndirect))
}

func TestParseFile_IndirectTypeDeclWithConformanceParses(t *testing.T) {
	src := `
indirect type Node: Equatable {
  var next: Node
}`
	file, d := parse(t, src)
	require.False(t, d.HasErrors())
	td := file.Items[0].Decl.(*ast.TypeDecl)
	require.Len(t, td.Conformances, 1)
	assert.Equal(t, "Equatable", td.Conformances[0].String())
}

func TestParseFile_ForeignModifierRejectedOnProperty(t *testing.T) {
	src := `
type T {
  foreign var x: Int
}`
	_, d := parse(t, src)
	assert.True(t, d.HasErrors())
	assert.Contains(t, kinds(d), "invalid-modifier")
}

func TestParseFile_StaticModifierAllowedOnProperty(t *testing.T) {
	src := `
type T {
  static var x: Int = 0
}`
	_, d := parse(t, src)
	assert.False(t, d.HasErrors())
}

func TestParseFile_GlobalSubscriptRejected(t *testing.T) {
	src := `
subscript(i: Int) -> Int {
  return i
}`
	file, d := parse(t, src)
	assert.True(t, d.HasErrors())
	assert.Contains(t, kinds(d), "GlobalSubscript")
	require.Len(t, file.Items, 1)
	assert.Nil(t, file.Items[0].Decl)
}

func TestParseFile_ComputedPropertyMustBeMutableRejectsLetSetter(t *testing.T) {
	src := `
type T {
  let x: Int {
    get { return 1 }
    set { }
  }
}`
	_, d := parse(t, src)
	assert.True(t, d.HasErrors())
	assert.Contains(t, kinds(d), "ComputedPropertyMustBeMutable")
}

func TestParseFile_ComputedPropertyRequiresTypeKind(t *testing.T) {
	src := `
type T {
  var x {
    get { return 1 }
  }
}`
	_, d := parse(t, src)
	assert.True(t, d.HasErrors())
	assert.Contains(t, kinds(d), "ComputedPropertyRequiresType")
}
