/*
File    : trill/sema/generator.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// The constraint generator and its eager solving strategy (spec §4.4).
// The spec describes two separate components, a Generator that emits a
// constraint system and a Solver that resolves it against one global
// substitution map. Trill has no let-polymorphism or deferred generic
// inference across statements — every place a type variable appears is
// scoped to a single call site or a single expression's own subtree — so
// this Generator solves each expression's constraints immediately with
// its own short-lived Solver rather than accumulating one program-wide
// substitution (recorded as a deliberate simplification in DESIGN.md).
package sema

import (
	"fmt"

	"github.com/akashmaji946/trill/diag"

	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/types"
)

// Env bundles the lexical scope and enclosing-function context an
// expression is inferred under.
type Env struct {
	Scope      *Scope
	FuncName   string          // "" outside any function/closure body
	ReturnType *types.DataType // enclosing function's declared return type, nil if FuncName == ""
}

// Generator infers and writes back the type of every expression node it
// visits (spec §4.7 step 4 "builds a constraint system, solves it,
// substitutes, and writes the result back onto the node").
type Generator struct {
	ctx   *Context
	fresh int
}

// NewGenerator creates a Generator bound to ctx.
func NewGenerator(ctx *Context) *Generator { return &Generator{ctx: ctx} }

func (g *Generator) freshVar() *types.DataType {
	g.fresh++
	return types.NewTypeVar(fmt.Sprintf("$t%d", g.fresh))
}

func (g *Generator) errorAt(e ast.Expr, kind string, format string, a ...interface{}) *types.DataType {
	g.ctx.Diags.Errorf(diag.Kind(kind), e.Range().Start, format, a...)
	e.SetType(types.ErrorType)
	return types.ErrorType
}

// Infer computes, writes back, and returns e's type.
func (g *Generator) Infer(env *Env, e ast.Expr) *types.DataType {
	t := g.infer(env, e)
	e.SetType(t)
	return t
}

func (g *Generator) infer(env *Env, e ast.Expr) *types.DataType {
	switch n := e.(type) {
	case *ast.IntLiteralExpr:
		return litInt()
	case *ast.FloatLiteralExpr:
		return litFloat()
	case *ast.CharLiteralExpr:
		return types.NewInt(8, true)
	case *ast.BoolLiteralExpr:
		return types.BoolType
	case *ast.StringLiteralExpr:
		return litString()
	case *ast.StringInterpolationExpr:
		for _, seg := range n.Segments {
			if seg.Expr != nil {
				g.Infer(env, seg.Expr)
			}
		}
		return litString()
	case *ast.NilLiteralExpr:
		return litNil()
	case *ast.VoidLiteralExpr:
		return types.VoidType
	case *ast.DirectiveLiteralExpr:
		return g.inferDirective(env, n)
	case *ast.VariableRefExpr:
		return g.inferVariableRef(env, n)
	case *ast.PropertyRefExpr:
		return g.inferPropertyRef(env, n)
	case *ast.TupleFieldExpr:
		return g.inferTupleField(env, n)
	case *ast.ParenExpr:
		return g.Infer(env, n.Inner)
	case *ast.TupleExpr:
		fields := make([]*types.DataType, len(n.Elements))
		for i, el := range n.Elements {
			fields[i] = g.Infer(env, el)
		}
		return types.NewTuple(fields)
	case *ast.ArrayExpr:
		return g.inferArray(env, n)
	case *ast.SubscriptExpr:
		return g.inferSubscript(env, n)
	case *ast.CallExpr:
		return g.inferCall(env, n)
	case *ast.ClosureExpr:
		return g.inferClosure(env, n)
	case *ast.PrefixExpr:
		return g.inferPrefix(env, n)
	case *ast.InfixExpr:
		return g.inferInfix(env, n)
	case *ast.TernaryExpr:
		return g.inferTernary(env, n)
	case *ast.CoercionExpr:
		return g.inferCoercion(env, n)
	case *ast.IsExpr:
		g.Infer(env, n.Value)
		return types.BoolType
	case *ast.SizeofExpr:
		return types.NewInt(64, false)
	}
	return types.ErrorType
}

func (g *Generator) inferDirective(env *Env, n *ast.DirectiveLiteralExpr) *types.DataType {
	if n.Kind == ast.DirectiveFunction && env.FuncName == "" {
		return g.errorAt(n, "PoundFunctionOutsideFunction", "#function used outside a function body")
	}
	if n.Kind == ast.DirectiveLine {
		return litInt()
	}
	return litString()
}

func (g *Generator) inferVariableRef(env *Env, n *ast.VariableRefExpr) *types.DataType {
	if d, ok := env.Scope.Lookup(n.Name); ok {
		n.ResolvedDecl = d
		return declType(d)
	}
	if v, ok := g.ctx.LookupGlobal(n.Name); ok {
		n.ResolvedDecl = v
		return declType(v)
	}
	fns := g.ctx.LookupFunctions(n.Name)
	if len(fns) == 1 {
		n.ResolvedDecl = fns[0]
		return functionType(fns[0])
	}
	if len(fns) > 1 {
		return g.errorAt(n, "AmbiguousReference", "%q refers to multiple overloads", n.Name)
	}
	return g.errorAt(n, "UnknownVariableName", "unknown name %q", n.Name)
}

func declType(d ast.Decl) *types.DataType {
	switch v := d.(type) {
	case *ast.VarDecl:
		return v.Type
	case *ast.ParamDecl:
		return v.Type
	case *ast.PropertyDecl:
		return v.Type
	case *ast.GenericParamDecl:
		return types.NewCustom(v.Name)
	case *ast.FunctionDecl:
		return functionType(v)
	}
	return types.ErrorType
}

func functionType(fn *ast.FunctionDecl) *types.DataType {
	params := make([]*types.DataType, len(fn.Params))
	varargs := false
	for i, p := range fn.Params {
		params[i] = p.Type
		varargs = varargs || p.IsVararg
	}
	return types.NewFunction(params, fn.ReturnType, varargs)
}

func (g *Generator) inferPropertyRef(env *Env, n *ast.PropertyRefExpr) *types.DataType {
	baseType := g.Infer(env, n.Base)
	if baseType == types.ErrorType {
		return types.ErrorType
	}
	canon := g.ctx.CanonicalType(baseType)
	if n.Name == "deinit" {
		return g.errorAt(n, "DeinitOnStruct", "deinit cannot be called explicitly")
	}
	switch canon.Kind {
	case types.Pointer:
		return g.errorAt(n, "PointerPropertyAccess", "cannot access a property directly through a pointer; dereference first")
	case types.Tuple:
		return g.errorAt(n, "TuplePropertyAccess", "cannot access a named property on a tuple; use .0, .1, ...")
	case types.Function:
		return g.errorAt(n, "FieldOfFunctionType", "cannot access a property of a function value")
	}
	td, ok := g.ctx.TypeDeclFor(canon)
	if !ok {
		return g.errorAt(n, "IncompleteTypeAccess", "type %s has no accessible members", canon)
	}
	d, ok := td.Member(n.Name)
	if !ok {
		return g.errorAt(n, "UnknownFunction", "%s has no member %q", td.Name, n.Name)
	}
	n.ResolvedDecl = d
	return declType(d)
}

func (g *Generator) inferTupleField(env *Env, n *ast.TupleFieldExpr) *types.DataType {
	baseType := g.Infer(env, n.Base)
	canon := g.ctx.CanonicalType(baseType)
	if canon.Kind != types.Tuple {
		return g.errorAt(n, "IndexIntoNonTuple", "cannot index a non-tuple value with .%d", n.Index)
	}
	if n.Index < 0 || n.Index >= len(canon.Fields) {
		return g.errorAt(n, "OutOfBoundsTupleField", "tuple field .%d out of range (tuple has %d fields)", n.Index, len(canon.Fields))
	}
	return canon.Fields[n.Index]
}

func (g *Generator) inferArray(env *Env, n *ast.ArrayExpr) *types.DataType {
	if len(n.Elements) == 0 {
		return types.NewArray(g.freshVar(), nil)
	}
	elem := g.Infer(env, n.Elements[0])
	for _, el := range n.Elements[1:] {
		t := g.Infer(env, el)
		solver := NewSolver(g.ctx, nil)
		solver.Solve(conv(t, elem, n))
	}
	length := len(n.Elements)
	return types.NewArray(elem, &length)
}

func (g *Generator) inferSubscript(env *Env, n *ast.SubscriptExpr) *types.DataType {
	baseType := g.Infer(env, n.Base)
	idxType := g.Infer(env, n.Index)
	canon := g.ctx.CanonicalType(baseType)
	if canon.Kind == types.Array {
		return canon.Elem
	}
	td, ok := g.ctx.TypeDeclFor(canon)
	if !ok || len(td.Subscripts) == 0 {
		return g.errorAt(n, "CannotSubscript", "%s has no subscript operator", canon)
	}
	outcome := g.ctx.Resolve(td.Subscripts, []ast.CallArg{{Value: &typedPlaceholder{ExprBase: ast.ExprBase{Type: idxType}}}}, n)
	return g.finishResolution(n, outcome, func(d ast.Decl) { n.ResolvedDecl = d })
}

// typedPlaceholder lets the overload resolver read an already-known type
// without re-inferring an expression (used for subscript indices and any
// other site where only the type, not the original node, is needed).
type typedPlaceholder struct{ ast.ExprBase }

func (g *Generator) inferCall(env *Env, n *ast.CallExpr) *types.DataType {
	for i := range n.Args {
		g.Infer(env, n.Args[i].Value)
	}
	switch callee := n.Callee.(type) {
	case *ast.VariableRefExpr:
		if _, ok := env.Scope.Lookup(callee.Name); !ok {
			if _, ok := g.ctx.LookupGlobal(callee.Name); !ok {
				candidates := g.ctx.LookupFunctions(callee.Name)
				if len(candidates) == 0 {
					return g.errorAt(n, "UnknownFunction", "unknown function %q", callee.Name)
				}
				outcome := g.ctx.Resolve(candidates, n.Args, n)
				return g.finishResolution(n, outcome, func(d ast.Decl) {
					n.ResolvedDecl = d
					callee.ResolvedDecl = d
				})
			}
		}
	case *ast.PropertyRefExpr:
		baseType := g.Infer(env, callee.Base)
		canon := g.ctx.CanonicalType(baseType)
		td, ok := g.ctx.TypeDeclFor(canon)
		if !ok {
			return g.errorAt(n, "UnknownFunction", "%s has no method %q", canon, callee.Name)
		}
		var candidates []*ast.FunctionDecl
		for _, m := range td.Methods {
			if m.Name == callee.Name {
				candidates = append(candidates, m)
			}
		}
		if len(candidates) == 0 {
			return g.errorAt(n, "UnknownFunction", "%s has no method %q", td.Name, callee.Name)
		}
		outcome := g.ctx.Resolve(candidates, n.Args, n)
		return g.finishResolution(n, outcome, func(d ast.Decl) {
			n.ResolvedDecl = d
			callee.ResolvedDecl = d
		})
	}
	calleeType := g.Infer(env, n.Callee)
	canon := g.ctx.CanonicalType(calleeType)
	if canon.Kind != types.Function {
		return g.errorAt(n, "CallNonFunction", "cannot call a value of type %s", canon)
	}
	if len(n.Args) != len(canon.Params) && !canon.HasVarargs {
		return g.errorAt(n, "ArityMismatch", "expected %d arguments, got %d", len(canon.Params), len(n.Args))
	}
	solver := NewSolver(g.ctx, nil)
	for i, a := range n.Args {
		if i >= len(canon.Params) {
			break
		}
		solver.Solve(conv(a.Value.GetType(), canon.Params[i], n))
	}
	if !solver.OK() {
		return types.ErrorType
	}
	return canon.Result
}

func (g *Generator) finishResolution(node ast.Node, outcome Outcome, bind func(ast.Decl)) *types.DataType {
	switch outcome.Kind {
	case Resolved:
		bind(outcome.Decl)
		ret := outcome.Decl.ReturnType
		if len(outcome.Subst) > 0 {
			ret = instantiateGenerics(ret, outcome.Subst)
		}
		return ret
	case NoCandidates:
		g.ctx.Diags.Errorf("NoViableOverload", node.Range().Start, "no matching function found")
	case NoMatchingCandidates:
		g.ctx.Diags.Errorf("NoViableOverload", node.Range().Start, "no candidate matches the given arguments")
		for _, r := range outcome.Reasons {
			g.ctx.Diags.Errorf(diag.Kind(diagKind(r.Reason)), node.Range().Start, "candidate %s rejected: %s", r.Candidate.Name, r.Reason)
		}
	case Ambiguity:
		g.ctx.Diags.Errorf("AmbiguousReference", node.Range().Start, "call is ambiguous among %d candidates", len(outcome.Candidates))
	}
	return types.ErrorType
}

func diagKind(reason string) string {
	for i, r := range reason {
		if r == '(' {
			return reason[:i]
		}
	}
	return "NoViableOverload"
}

func (g *Generator) inferClosure(env *Env, n *ast.ClosureExpr) *types.DataType {
	inner := NewScope(env.Scope)
	for _, p := range n.Params {
		inner.Bind(p.Name, p)
	}
	ret := n.ReturnType
	if ret == nil {
		ret = types.VoidType
	}
	innerEnv := &Env{Scope: inner, FuncName: env.FuncName, ReturnType: ret}
	analyzeBlock(g, innerEnv, n.Body)
	params := make([]*types.DataType, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Type
	}
	return types.NewFunction(params, ret, false)
}

func (g *Generator) inferPrefix(env *Env, n *ast.PrefixExpr) *types.DataType {
	operandType := g.Infer(env, n.Operand)
	switch n.Op.Text {
	case "&":
		if !isLvalue(n.Operand) {
			return g.errorAt(n, "AddressOfRValue", "cannot take the address of a non-lvalue expression")
		}
		return types.NewPointer(operandType)
	case "*":
		canon := g.ctx.CanonicalType(operandType)
		if canon.Kind != types.Pointer {
			return g.errorAt(n, "DereferenceNonPointer", "cannot dereference a non-pointer value")
		}
		return canon.Elem
	default:
		candidates := g.ctx.LookupOperator(n.Op.Text)
		outcome := g.ctx.Resolve(candidates, []ast.CallArg{{Value: n.Operand}}, n)
		return g.finishResolution(n, outcome, func(d ast.Decl) { n.ResolvedDecl = d })
	}
}

func (g *Generator) inferInfix(env *Env, n *ast.InfixExpr) *types.DataType {
	lhs := g.Infer(env, n.Left)
	rhs := g.Infer(env, n.Right)
	candidates := g.ctx.LookupOperator(n.Op.Text)
	outcome := g.ctx.Resolve(candidates, []ast.CallArg{{Value: n.Left}, {Value: n.Right}}, n)
	result := g.finishResolution(n, outcome, func(d ast.Decl) { n.ResolvedDecl = d })
	if (n.Op.Text == "<<" || n.Op.Text == ">>") && result != types.ErrorType {
		g.checkShiftAmount(n, lhs)
	}
	_ = rhs
	return result
}

// checkShiftAmount rejects a shift whose right operand is a literal
// amount at or past the left operand's bit width (spec §4.8 "shift
// amounts >= bit width").
func (g *Generator) checkShiftAmount(n *ast.InfixExpr, lhsType *types.DataType) {
	lit, ok := n.Right.(*ast.IntLiteralExpr)
	if !ok {
		return
	}
	canon := g.ctx.CanonicalType(lhsType)
	if canon.Kind != types.Int {
		return
	}
	if lit.Value >= uint64(canon.IntWidth) {
		g.ctx.Diags.Errorf("ShiftPastBitWidth", n.Range().Start, "shift amount %d is >= the %d-bit operand width", lit.Value, canon.IntWidth)
	}
}

func (g *Generator) inferTernary(env *Env, n *ast.TernaryExpr) *types.DataType {
	condType := g.Infer(env, n.Cond)
	if g.ctx.CanonicalType(condType).Kind != types.Bool {
		g.ctx.Diags.Errorf("NonBooleanTernary", n.Cond.Range().Start, "ternary condition must be Bool")
	}
	thenType := g.Infer(env, n.Then)
	elseType := g.Infer(env, n.Else)
	ct, ce := g.ctx.CanonicalType(thenType), g.ctx.CanonicalType(elseType)
	if types.Equal(ct, ce) {
		return thenType
	}
	if g.ctx.CanCoerce(ce, ct) {
		return thenType
	}
	if g.ctx.CanCoerce(ct, ce) {
		return elseType
	}
	return g.errorAt(n, "TypeMismatch", "ternary branches have incompatible types %s and %s", ct, ce)
}

func (g *Generator) inferCoercion(env *Env, n *ast.CoercionExpr) *types.DataType {
	valueType := g.Infer(env, n.Value)
	checkIntLiteralFits(g.ctx, n.Value, n.TargetType, n)
	if valueType == types.ErrorType {
		return n.TargetType
	}
	if g.ctx.CanonicalType(valueType).Kind == types.Any {
		return n.TargetType
	}
	if !g.ctx.CanCoerce(valueType, n.TargetType) && !types.Equal(g.ctx.CanonicalType(valueType), g.ctx.CanonicalType(n.TargetType)) {
		if !isLiteralPseudoType(valueType) {
			g.ctx.Diags.Errorf("CannotCoerce", n.Range().Start, "cannot coerce %s to %s", valueType, n.TargetType)
		}
	}
	return n.TargetType
}

// intLiteralMagnitude reports whether value is an integer literal, or one
// negated by a leading unary '-' (the grammar never folds negation into the
// literal token itself — see ast.IntLiteralExpr), returning its unsigned
// magnitude and sign separately so a literal at the UInt64 boundary
// (2^64-1) can never be confused with a negative value.
func intLiteralMagnitude(value ast.Expr) (magnitude uint64, negative bool, ok bool) {
	switch n := value.(type) {
	case *ast.IntLiteralExpr:
		return n.Value, false, true
	case *ast.PrefixExpr:
		if n.Op.Text != "-" {
			return 0, false, false
		}
		lit, ok := n.Operand.(*ast.IntLiteralExpr)
		if !ok {
			return 0, false, false
		}
		return lit.Value, true, true
	default:
		return 0, false, false
	}
}

// signedBound returns 2^(width-1), the one-past-max magnitude a signed
// integer of the given width can hold.
func signedBound(width int) uint64 {
	if width >= 64 {
		return uint64(1) << 63
	}
	return uint64(1) << uint(width-1)
}

// checkIntLiteralFits rejects an integer literal — or a literal negated by
// a leading unary '-' — that over/underflows target's signed/unsigned
// bounds (spec §4.8, §8 boundary behaviours). value may be any expression;
// it is a no-op unless value has literal shape.
func checkIntLiteralFits(ctx *Context, value ast.Expr, target *types.DataType, node ast.Node) {
	magnitude, negative, ok := intLiteralMagnitude(value)
	if !ok {
		return
	}
	canon := ctx.CanonicalType(target)
	if canon.Kind != types.Int {
		return
	}
	if !canon.IntSigned {
		if negative {
			ctx.Diags.Errorf("Underflow", node.Range().Start, "negative literal -%d assigned to unsigned type %s", magnitude, canon)
			return
		}
		if canon.IntWidth >= 64 {
			return // every lexable uint64 literal fits in an unsigned 64-bit type
		}
		if bound := uint64(1) << uint(canon.IntWidth); magnitude >= bound {
			ctx.Diags.Errorf("Overflow", node.Range().Start, "literal %d overflows %s", magnitude, canon)
		}
		return
	}
	bound := signedBound(canon.IntWidth)
	if negative {
		if magnitude > bound {
			ctx.Diags.Errorf("Overflow", node.Range().Start, "literal -%d overflows %s", magnitude, canon)
		}
		return
	}
	if magnitude >= bound {
		ctx.Diags.Errorf("Overflow", node.Range().Start, "literal %d overflows %s", magnitude, canon)
	}
}
