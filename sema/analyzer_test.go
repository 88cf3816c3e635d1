/*
File    : trill/sema/analyzer_test.go
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
	"github.com/akashmaji946/trill/parser"
	"github.com/akashmaji946/trill/source"
)

// analyze parses src and runs the full analysis pipeline over it,
// returning the populated Context and diagnostic engine.
func analyze(t *testing.T, src string) (*Context, *diag.Engine) {
	t.Helper()
	mgr := source.NewManager()
	f := mgr.AddFile("<test>", src)
	d := diag.NewEngine()
	file := parser.ParseFile(f, d)
	require.False(t, d.HasErrors(), "parse errors: %v", d.All())
	ctx := NewContext(d)
	NewAnalyzer(ctx).AnalyzeFiles([]*ast.File{file})
	return ctx, d
}

func kinds(d *diag.Engine) []string {
	out := make([]string, 0, len(d.All()))
	for _, diagn := range d.All() {
		out = append(out, string(diagn.Kind))
	}
	return out
}

func TestAnalyzeFiles_SimpleFunctionTypeChecks(t *testing.T) {
	_, d := analyze(t, `
func add(a: Int, b: Int) -> Int {
  return a + b
}
`)
	assert.False(t, d.HasErrors())
}

func TestAnalyzeFiles_ReturnTypeMismatch(t *testing.T) {
	_, d := analyze(t, `
func f() -> Int {
  return true
}
`)
	assert.Contains(t, kinds(d), "TypeMismatch")
}

func TestAnalyzeFiles_AssignToLetRejected(t *testing.T) {
	_, d := analyze(t, `
func f() {
  let x = 1
  x = 2
}
`)
	assert.Contains(t, kinds(d), "AssignToConstant")
}

func TestAnalyzeFiles_AssignToVarAllowed(t *testing.T) {
	_, d := analyze(t, `
func f() {
  var x = 1
  x = 2
}
`)
	assert.False(t, d.HasErrors())
}

func TestAnalyzeFiles_NotAllPathsReturn(t *testing.T) {
	_, d := analyze(t, `
func f(flag: Bool) -> Int {
  if flag {
    return 1
  }
}
`)
	assert.Contains(t, kinds(d), "NotAllPathsReturn")
}

func TestAnalyzeFiles_AllPathsReturnViaElse(t *testing.T) {
	_, d := analyze(t, `
func f(flag: Bool) -> Int {
  if flag {
    return 1
  } else {
    return 0
  }
}
`)
	assert.False(t, d.HasErrors())
}

func TestAnalyzeFiles_BreakOutsideLoopRejected(t *testing.T) {
	_, d := analyze(t, `
func f() {
  break
}
`)
	assert.Contains(t, kinds(d), "BreakNotAllowed")
}

func TestAnalyzeFiles_BreakInsideWhileAllowed(t *testing.T) {
	_, d := analyze(t, `
func f() {
  while true {
    break
  }
}
`)
	assert.False(t, d.HasErrors())
}

func TestAnalyzeFiles_DuplicateMainRejected(t *testing.T) {
	_, d := analyze(t, `
func main() {}
func main() {}
`)
	assert.Contains(t, kinds(d), "DuplicateMain")
}

func TestAnalyzeFiles_DuplicateFunctionSignatureRejected(t *testing.T) {
	_, d := analyze(t, `
func f(a: Int) -> Int { return a }
func f(a: Int) -> Int { return a }
`)
	assert.Contains(t, kinds(d), "DuplicateFunction")
}

func TestAnalyzeFiles_OverloadBySignatureAllowed(t *testing.T) {
	_, d := analyze(t, `
func f(a: Int) -> Int { return a }
func f(a: Double) -> Double { return a }
`)
	assert.False(t, d.HasErrors())
}

func TestAnalyzeFiles_CircularAliasRejected(t *testing.T) {
	_, d := analyze(t, `
type A = B
type B = A
`)
	assert.Contains(t, kinds(d), "CircularAlias")
}

func TestAnalyzeFiles_UnknownVariableRejected(t *testing.T) {
	_, d := analyze(t, `
func f() -> Int {
  return y
}
`)
	assert.Contains(t, kinds(d), "UnknownVariableName")
}

func TestAnalyzeFiles_IntegerLiteralOverflowRejected(t *testing.T) {
	_, d := analyze(t, `
func f() -> Int8 {
  return 200
}
`)
	assert.Contains(t, kinds(d), "Overflow")
}

func TestAnalyzeFiles_UInt64MaxLiteralAccepted(t *testing.T) {
	_, d := analyze(t, `
func f() -> UInt64 {
  return 18446744073709551615
}
`)
	assert.NotContains(t, kinds(d), "Overflow")
	assert.NotContains(t, kinds(d), "Underflow")
}

func TestAnalyzeFiles_NegativeLiteralIntoUnsignedRejected(t *testing.T) {
	_, d := analyze(t, `
func f() -> UInt8 {
  return -1
}
`)
	assert.Contains(t, kinds(d), "Underflow")
}

func TestAnalyzeFiles_ShiftPastBitWidthRejected(t *testing.T) {
	_, d := analyze(t, `
func f(x: Int8) -> Int8 {
  return x << 9
}
`)
	assert.Contains(t, kinds(d), "ShiftPastBitWidth")
}

func TestAnalyzeFiles_AddressOfRValueRejected(t *testing.T) {
	_, d := analyze(t, `
func f() -> *Int {
  return &1
}
`)
	assert.Contains(t, kinds(d), "AddressOfRValue")
}

func TestAnalyzeFiles_AddressOfLvalueAllowed(t *testing.T) {
	_, d := analyze(t, `
func f() -> *Int {
  var x = 1
  return &x
}
`)
	assert.False(t, d.HasErrors())
}

func TestAnalyzeFiles_MethodCallResolvesOverload(t *testing.T) {
	_, d := analyze(t, `
type Point {
  var x: Int = 0
  var y: Int = 0

  func sum() -> Int {
    return self.x + self.y
  }
}

func f(p: Point) -> Int {
  return p.sum()
}
`)
	assert.False(t, d.HasErrors())
}

func TestAnalyzeFiles_ProtocolConformanceMissingRejected(t *testing.T) {
	_, d := analyze(t, `
protocol Greeter {
  func greet() -> Int
}

type Mute: Greeter {
}
`)
	assert.Contains(t, kinds(d), "TypeDoesNotConform")
	assert.Contains(t, kinds(d), "MissingImplementation")
}

func TestAnalyzeFiles_ProtocolConformanceSatisfied(t *testing.T) {
	_, d := analyze(t, `
protocol Greeter {
  func greet() -> Int
}

type Loud: Greeter {
  func greet() -> Int {
    return 1
  }
}
`)
	assert.False(t, d.HasErrors())
}

func TestAnalyzeFiles_ForeignFunctionWithBodyRejected(t *testing.T) {
	_, d := analyze(t, `
foreign func f() -> Int {
  return 1
}
`)
	assert.Contains(t, kinds(d), "ForeignFunctionWithBody")
}

func TestAnalyzeFiles_CannotSwitchOnTupleRejected(t *testing.T) {
	_, d := analyze(t, `
func f(p: (Int, Int)) {
  switch p {
  default:
    break
  }
}
`)
	assert.Contains(t, kinds(d), "CannotSwitch")
}

func TestAnalyzeFiles_SwitchOnIntAllowed(t *testing.T) {
	_, d := analyze(t, `
func f(x: Int) {
  switch x {
  case 1:
    break
  default:
    break
  }
}
`)
	assert.False(t, d.HasErrors())
}
