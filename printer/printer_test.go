/*
File    : trill/printer/printer_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/parser"
	"github.com/akashmaji946/trill/source"
)

func parseSrc(t *testing.T, src string) (*ast.File, *diag.Engine) {
	t.Helper()
	mgr := source.NewManager()
	f := mgr.AddFile("<test>", src)
	d := diag.NewEngine()
	return parser.ParseFile(f, d), d
}

// roundTrip parses src, prints it, and reparses the printed text,
// failing the test if either parse reported errors. It returns both
// trees so callers can compare shape (spec §8's round-trip property).
func roundTrip(t *testing.T, src string) (orig, reprinted *ast.File, printedText string) {
	t.Helper()
	orig, d := parseSrc(t, src)
	require.False(t, d.HasErrors(), "original parse errors: %v", d.All())

	printedText = Print(orig)
	reprinted, d2 := parseSrc(t, printedText)
	require.False(t, d2.HasErrors(), "printed text failed to reparse:\n%s\nerrors: %v", printedText, d2.All())
	return orig, reprinted, printedText
}

func TestPrint_SimpleFunctionRoundTrips(t *testing.T) {
	_, reprinted, _ := roundTrip(t, `
func add(a: Int, b: Int) -> Int {
  return a + b
}
`)
	require.Len(t, reprinted.Items, 1)
	fn, ok := reprinted.Items[0].Decl.(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Params, 2)
}

func TestPrint_TypeDeclRoundTrips(t *testing.T) {
	_, reprinted, _ := roundTrip(t, `
type Point {
  var x: Int = 0
  var y: Int = 0

  func sum() -> Int {
    return self.x + self.y
  }
}
`)
	require.Len(t, reprinted.Items, 1)
	td, ok := reprinted.Items[0].Decl.(*ast.TypeDecl)
	require.True(t, ok)
	assert.Equal(t, "Point", td.Name)
	assert.Len(t, td.Properties, 2)
	assert.Len(t, td.Methods, 1)
}

func TestPrint_ProtocolAndConformanceRoundTrips(t *testing.T) {
	_, reprinted, _ := roundTrip(t, `
protocol Greeter {
  func greet() -> Int
}

type Loud: Greeter {
  func greet() -> Int {
    return 1
  }
}
`)
	require.Len(t, reprinted.Items, 2)
	proto, ok := reprinted.Items[0].Decl.(*ast.ProtocolDecl)
	require.True(t, ok)
	assert.Len(t, proto.Requirements, 1)
	td, ok := reprinted.Items[1].Decl.(*ast.TypeDecl)
	require.True(t, ok)
	require.Len(t, td.Conformances, 1)
	assert.Equal(t, "Greeter", td.Conformances[0].String())
}

func TestPrint_ControlFlowRoundTrips(t *testing.T) {
	_, reprinted, _ := roundTrip(t, `
func classify(x: Int) -> Int {
  if x < 0 {
    return -1
  } else {
    return 1
  }
  while x < 10 {
    break
  }
  for var i = 0; i < 3; i = i + 1 {
    continue
  }
  switch x {
  case 1, 2:
    break
  default:
    break
  }
  return 0
}
`)
	fn := reprinted.Items[0].Decl.(*ast.FunctionDecl)
	assert.Equal(t, "classify", fn.Name)
	assert.Len(t, fn.Body.Statements, 5)
}

func TestPrint_ExpressionFormsRoundTrip(t *testing.T) {
	_, reprinted, _ := roundTrip(t, `
func f(p: (Int, Int)) -> Int {
  let arr = [1, 2, 3]
  let t = (1, label: 2)
  let s = arr[0]
  let c = (p.0 as Int)
  return t.1 + s + c
}
`)
	fn := reprinted.Items[0].Decl.(*ast.FunctionDecl)
	assert.Equal(t, "f", fn.Name)
}

func TestPrint_OperatorOverloadRoundTrips(t *testing.T) {
	_, reprinted, _ := roundTrip(t, `
type Vec {
  var x: Int = 0
}

func +(lhs: Vec, rhs: Vec) -> Vec {
  return lhs
}
`)
	require.Len(t, reprinted.Items, 2)
	fn, ok := reprinted.Items[1].Decl.(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, ast.FuncOperator, fn.Kind)
	assert.Equal(t, "+", fn.OperatorToken)
}

func TestPrint_ForeignFunctionHasNoBody(t *testing.T) {
	orig, d := parseSrc(t, `
foreign func puts(s: *Int8) -> Int
`)
	require.False(t, d.HasErrors())
	text := Print(orig)
	assert.Contains(t, text, "foreign func puts")
	assert.NotContains(t, text, "{")
}

func TestPrint_IsIdempotentOnItsOwnOutput(t *testing.T) {
	_, _, text1 := roundTrip(t, `
func f(a: Int) -> Int {
  var x = a
  x = x + 1
  return x
}
`)
	file2, d2 := parseSrc(t, text1)
	require.False(t, d2.HasErrors())
	text2 := Print(file2)
	assert.Equal(t, text1, text2)
}
