/*
File    : trill/sema/analyzer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Analyzer drives the nine-step semantic analysis pipeline (spec §4.7),
// generalized from the teacher's eval.Evaluator tree-walk: where the
// teacher walks the AST to produce runtime objects.GoMixObject values,
// Analyzer walks it to produce types and resolved declaration handles,
// using the same recursive-descent-over-the-tree shape.
package sema

import (
	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/types"
)

// MainFlags records which optional main() signature was registered
// (spec §8 end-to-end scenarios 1-2: `mainFlags = {}` vs `{args,
// exitCode}`).
type MainFlags struct {
	HasArgs     bool
	HasExitCode bool
}

// Analyzer owns one Context plus the Generator used to type every
// expression reachable from it.
type Analyzer struct {
	ctx *Context
	gen *Generator

	// MainFlags is populated once AnalyzeFiles' main-signature check runs.
	MainFlags MainFlags
}

// NewAnalyzer creates an Analyzer bound to ctx.
func NewAnalyzer(ctx *Context) *Analyzer {
	return &Analyzer{ctx: ctx, gen: NewGenerator(ctx)}
}

// Result bundles the outcome of a full Check run: the diagnostic engine
// holding every reported problem, and whether the run was error-free
// (spec §7 "exit status non-zero iff at least one error").
type Result struct {
	Diags *diag.Engine
	OK    bool
}

// Check runs AnalyzeFiles and reports whether the result is error-free,
// the entry point cmd/trillc drives (mirrors the teacher's main.go
// exit-status pattern).
func (a *Analyzer) Check(files []*ast.File) Result {
	a.AnalyzeFiles(files)
	return Result{Diags: a.ctx.Diags, OK: !a.ctx.Diags.HasErrors()}
}

// loopCtx tracks how many enclosing loop/switch constructs a statement
// is nested in, so break/continue can be validated (spec §4.7 "Detects
// unreachable statements... BreakNotAllowed / ContinueNotAllowed").
type loopCtx struct {
	loopDepth   int
	switchDepth int
}

// AnalyzeFiles runs the full pipeline over files: registration, circular
// layout and alias-cycle detection, main-signature validation, then a
// dependency-ordered body walk (globals, types, functions, operators,
// extensions) that types every expression and resolves every reference
// (spec §4.7 steps 1-9).
func (a *Analyzer) AnalyzeFiles(files []*ast.File) {
	for _, f := range files {
		a.ctx.RegisterFile(f)
	}
	a.ctx.CheckAliasCycles()
	a.checkCircularLayouts()
	a.checkMain()

	root := NewScope(nil)
	for _, v := range a.ctx.Globals {
		root.Bind(v.Name, v)
	}
	for _, v := range a.ctx.Globals {
		if v.Init != nil {
			a.gen.Infer(&Env{Scope: root}, v.Init)
			if v.Type == nil {
				v.Type = reify(v.Init.GetType())
			}
		}
	}
	for _, td := range a.ctx.Types {
		a.analyzeType(root, td)
	}
	for _, fn := range a.ctx.Functions {
		a.analyzeFunction(root, fn)
	}
	for _, op := range a.ctx.Operators {
		a.analyzeFunction(root, op)
	}
	for _, ext := range a.ctx.Extensions {
		for _, m := range ext.Methods {
			a.analyzeFunction(root, m)
		}
		for _, s := range ext.Subscripts {
			a.analyzeFunction(root, s)
		}
	}
	a.checkConformances()
}

// reify lowers a literal pseudo-type to its default concrete type (spec
// §4.8 "Lowers literal pseudo-types to concrete defaults").
func reify(t *types.DataType) *types.DataType {
	if t == nil {
		return nil
	}
	switch t.Name {
	case IntegerLiteralType:
		return types.NewInt(64, true)
	case FloatingLiteralType:
		return types.NewFloat(types.Double)
	case StringLiteralType:
		return types.NewPointer(types.NewInt(8, true))
	}
	return t
}

func (a *Analyzer) checkCircularLayouts() {
	for _, td := range a.ctx.Types {
		if td.IsIndirect() {
			continue
		}
		if a.containsSelf(td, td.Name, map[string]bool{}) {
			a.ctx.Diags.Errorf("ReferenceSelfInProp", td.Range().Start, "type %q has a circular stored-property layout", td.Name)
		}
	}
}

func (a *Analyzer) containsSelf(td *ast.TypeDecl, root string, visiting map[string]bool) bool {
	if visiting[td.Name] {
		return false
	}
	visiting[td.Name] = true
	for _, p := range td.Properties {
		if p.IsComputed() || p.Type == nil {
			continue
		}
		canon := a.ctx.CanonicalType(p.Type)
		if canon.Kind != types.Custom {
			continue
		}
		if canon.Name == root {
			return true
		}
		other, ok := a.ctx.TypeDeclFor(canon)
		if !ok || other.IsIndirect() {
			continue
		}
		if a.containsSelf(other, root, visiting) {
			return true
		}
	}
	return false
}

func (a *Analyzer) checkMain() {
	fn, ok := a.ctx.MainFunc()
	if !ok {
		return
	}
	ret := a.ctx.CanonicalType(fn.ReturnType)
	switch {
	case len(fn.Params) == 0 && ret.Kind == types.Void:
		a.MainFlags = MainFlags{}
	case len(fn.Params) == 2 && isInt64(a.ctx.CanonicalType(fn.Params[0].Type)) &&
		isDoublePointerToInt8(a.ctx.CanonicalType(fn.Params[1].Type)) &&
		isInt64(ret):
		a.MainFlags = MainFlags{HasArgs: true, HasExitCode: true}
	default:
		a.ctx.Diags.Errorf("InvalidMain", fn.Range().Start, "main must be `() -> Void` or `(argc: Int, argv: **Int8) -> Int`")
	}
}

func isInt64(t *types.DataType) bool { return t.Kind == types.Int && t.IntWidth == 64 && t.IntSigned }

func isDoublePointerToInt8(t *types.DataType) bool {
	return t.Kind == types.Pointer && t.Elem != nil && t.Elem.Kind == types.Pointer &&
		t.Elem.Elem != nil && t.Elem.Elem.Kind == types.Int && t.Elem.Elem.IntWidth == 8
}

func (a *Analyzer) checkConformances() {
	for _, td := range a.ctx.Types {
		for _, conf := range td.Conformances {
			if conf.Kind != types.Custom {
				continue
			}
			missing := a.ctx.MissingConformance(td, conf.Name, map[string]bool{})
			if len(missing) == 0 {
				continue
			}
			a.ctx.Diags.Errorf("TypeDoesNotConform", td.Range().Start, "%q does not conform to %q", td.Name, conf.Name)
			for _, m := range missing {
				a.ctx.Diags.Errorf("MissingImplementation", td.Range().Start, "missing implementation of %q", m)
			}
		}
	}
}

func (a *Analyzer) analyzeType(outer *Scope, td *ast.TypeDecl) {
	for _, p := range td.Properties {
		if p.IsComputed() {
			a.analyzeFunction(outer, p.Getter)
			if p.Setter != nil {
				a.analyzeFunction(outer, p.Setter)
			}
			continue
		}
		if p.Init != nil {
			env := &Env{Scope: NewScope(outer)}
			a.bindSelf(env.Scope, td, false)
			a.gen.Infer(env, p.Init)
			if p.Type == nil {
				p.Type = reify(p.Init.GetType())
			} else {
				checkIntLiteralFits(a.ctx, p.Init, p.Type, p)
			}
		}
	}
	for _, m := range td.Methods {
		a.analyzeFunction(outer, m)
	}
	for _, i := range td.Initializers {
		a.analyzeFunction(outer, i)
	}
	if td.Deinitializer != nil {
		a.analyzeFunction(outer, td.Deinitializer)
	}
	for _, s := range td.Subscripts {
		a.analyzeFunction(outer, s)
	}
}

// bindSelf introduces `self` into scope as an immutable-unless-mutating
// binding of the owner's nominal type.
func (a *Analyzer) bindSelf(scope *Scope, owner *ast.TypeDecl, mutating bool) {
	kind := ast.VarImmutable
	if mutating {
		kind = ast.VarMutable
	}
	self := &ast.VarDecl{DeclBase: ast.DeclBase{Name: "self"}, Kind: kind, Type: types.NewCustom(owner.Name)}
	scope.Bind("self", self)
}

func (a *Analyzer) analyzeFunction(outer *Scope, fn *ast.FunctionDecl) {
	if fn.Modifiers.Has(ast.ModForeign) {
		if fn.Body != nil {
			a.ctx.Diags.Errorf("ForeignFunctionWithBody", fn.Range().Start, "foreign function %q must not have a body", fn.Name)
		}
		a.checkVarargPlacement(fn)
		return
	}
	if fn.Modifiers.Has(ast.ModImplicit) && fn.Body == nil {
		return
	}
	if fn.Body == nil {
		a.ctx.Diags.Errorf("NonForeignFunctionWithoutBody", fn.Range().Start, "function %q must have a body", fn.Name)
		return
	}
	for _, p := range fn.Params {
		if p.IsVararg {
			a.ctx.Diags.Errorf("VarArgsInNonForeignDecl", p.Range().Start, "varargs are only permitted on foreign declarations")
		}
	}
	fnScope := NewScope(outer)
	if fn.Owner != nil {
		a.bindSelf(fnScope, fn.Owner, fn.Modifiers.Has(ast.ModMutating))
	}
	for _, g := range fn.GenericParams {
		fnScope.Bind(g.Name, g)
	}
	for _, p := range fn.Params {
		fnScope.Bind(p.Name, p)
	}
	env := &Env{Scope: fnScope, FuncName: fn.Name, ReturnType: fn.ReturnType}
	a.analyzeBlock(env, fn.Body, loopCtx{})
	if a.ctx.CanonicalType(fn.ReturnType).Kind != types.Void && !fn.Body.HasReturn {
		a.ctx.Diags.Errorf("NotAllPathsReturn", fn.Range().Start, "function %q does not return a value on all paths", fn.Name)
	}
}

func (a *Analyzer) checkVarargPlacement(fn *ast.FunctionDecl) {
	for i, p := range fn.Params {
		if p.IsVararg && i != len(fn.Params)-1 {
			a.ctx.Diags.Errorf("VarArgsInNonForeignDecl", p.Range().Start, "a vararg parameter must be the last parameter")
		}
	}
}

// analyzeBlock types every statement in b, threading scope and loop
// context, and sets b.HasReturn once every statement is visited (spec
// §4.7 step 7).
func (a *Analyzer) analyzeBlock(env *Env, b *ast.BlockStmt, lc loopCtx) {
	inner := &Env{Scope: NewScope(env.Scope), FuncName: env.FuncName, ReturnType: env.ReturnType}
	hasReturn := false
	for _, s := range b.Statements {
		a.analyzeStmt(inner, s, lc)
		if stmtAlwaysReturns(s) {
			hasReturn = true
		}
	}
	b.HasReturn = hasReturn
}

// analyzeBlock is also reachable from the Generator (closure bodies),
// which only has a *Generator, not an *Analyzer — this package-level
// function adapts that call without exposing Analyzer internals.
func analyzeBlock(g *Generator, env *Env, b *ast.BlockStmt) {
	(&Analyzer{ctx: g.ctx, gen: g}).analyzeBlock(env, b, loopCtx{})
}

func stmtAlwaysReturns(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return true
	case *ast.BlockStmt:
		return n.HasReturn
	case *ast.IfStmt:
		if n.Else == nil {
			return false
		}
		return stmtAlwaysReturns(n.Then) && stmtAlwaysReturns(n.Else)
	case *ast.SwitchStmt:
		sawDefault := false
		for _, c := range n.Cases {
			if !stmtAlwaysReturns(c.Body) {
				return false
			}
			if c.IsDefault {
				sawDefault = true
			}
		}
		return sawDefault
	}
	return false
}

func (a *Analyzer) analyzeStmt(env *Env, s ast.Stmt, lc loopCtx) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		a.analyzeBlock(env, n, lc)
	case *ast.IfStmt:
		a.gen.Infer(env, n.Cond)
		if a.ctx.CanonicalType(n.Cond.GetType()).Kind != types.Bool {
			a.ctx.Diags.Errorf("NonBoolCondition", n.Cond.Range().Start, "if condition must be Bool")
		}
		a.analyzeBlock(env, n.Then, lc)
		if n.Else != nil {
			a.analyzeStmt(env, n.Else, lc)
		}
	case *ast.WhileStmt:
		a.gen.Infer(env, n.Cond)
		if a.ctx.CanonicalType(n.Cond.GetType()).Kind != types.Bool {
			a.ctx.Diags.Errorf("NonBoolCondition", n.Cond.Range().Start, "while condition must be Bool")
		}
		a.analyzeBlock(env, n.Body, loopCtx{loopDepth: lc.loopDepth + 1, switchDepth: lc.switchDepth})
	case *ast.ForStmt:
		inner := &Env{Scope: NewScope(env.Scope), FuncName: env.FuncName, ReturnType: env.ReturnType}
		if n.Init != nil {
			a.analyzeStmt(inner, n.Init, lc)
		}
		if n.Cond != nil {
			a.gen.Infer(inner, n.Cond)
			if a.ctx.CanonicalType(n.Cond.GetType()).Kind != types.Bool {
				a.ctx.Diags.Errorf("NonBoolCondition", n.Cond.Range().Start, "for condition must be Bool")
			}
		}
		if n.Post != nil {
			a.analyzeStmt(inner, n.Post, lc)
		}
		a.analyzeBlock(inner, n.Body, loopCtx{loopDepth: lc.loopDepth + 1, switchDepth: lc.switchDepth})
	case *ast.SwitchStmt:
		a.analyzeSwitch(env, n, lc)
	case *ast.BreakStmt:
		if lc.loopDepth == 0 && lc.switchDepth == 0 {
			a.ctx.Diags.Errorf("BreakNotAllowed", n.Range().Start, "break used outside a loop or switch")
		}
	case *ast.ContinueStmt:
		if lc.loopDepth == 0 {
			a.ctx.Diags.Errorf("ContinueNotAllowed", n.Range().Start, "continue used outside a loop")
		}
	case *ast.ReturnStmt:
		if n.Value != nil {
			a.gen.Infer(env, n.Value)
			checkIntLiteralFits(a.ctx, n.Value, env.ReturnType, n)
			solver := NewSolver(a.ctx, nil)
			solver.Solve(eq(n.Value.GetType(), env.ReturnType, n))
			if !solver.OK() {
				a.ctx.Diags.Errorf("TypeMismatch", n.Range().Start, "return value does not match declared return type %s", env.ReturnType)
			}
		} else if a.ctx.CanonicalType(env.ReturnType).Kind != types.Void {
			a.ctx.Diags.Errorf("TypeMismatch", n.Range().Start, "missing return value for non-Void function")
		}
	case *ast.AssignStmt:
		a.analyzeAssign(env, n)
	case *ast.ExprStmt:
		a.gen.Infer(env, n.X)
	case *ast.DeclStmt:
		a.analyzeLocalDecl(env, n)
	case *ast.PoundDiagnosticStmt:
		sev := diag.Warning
		if n.IsError {
			sev = diag.Error
		}
		a.ctx.Diags.Report(diag.Diagnostic{Severity: sev, Kind: "PoundDiagnostic", Message: n.Message, Location: n.Range().Start})
	}
}

func (a *Analyzer) analyzeLocalDecl(env *Env, n *ast.DeclStmt) {
	v, ok := n.D.(*ast.VarDecl)
	if !ok {
		return
	}
	if v.Init != nil {
		a.gen.Infer(env, v.Init)
		if v.Type == nil {
			v.Type = reify(v.Init.GetType())
		} else {
			checkIntLiteralFits(a.ctx, v.Init, v.Type, v)
			solver := NewSolver(a.ctx, nil)
			solver.Solve(conv(v.Init.GetType(), v.Type, v))
			if !solver.OK() {
				a.ctx.Diags.Errorf("TypeMismatch", v.Range().Start, "initializer does not match declared type of %q", v.Name)
			}
		}
	}
	env.Scope.Bind(v.Name, v)
}

func (a *Analyzer) analyzeAssign(env *Env, n *ast.AssignStmt) {
	lhsType := a.gen.Infer(env, n.LHS)
	rhsType := a.gen.Infer(env, n.RHS)
	mutable, culprit := env.isMutable(a.ctx, n.LHS)
	if !mutable {
		a.ctx.Diags.Errorf("AssignToConstant", n.Range().Start, "cannot assign to %q: not mutable", culprit)
	}
	if n.Op.Text != "=" {
		// compound assignment (`+=` etc.) is sugar for the binary operator
		// followed by a plain assignment; resolve against the operator set
		// for diagnostics but keep the declared LHS type as the goal.
		op := n.Op.Text[:len(n.Op.Text)-1]
		candidates := a.ctx.LookupOperator(op)
		a.ctx.Resolve(candidates, []ast.CallArg{{Value: n.LHS}, {Value: n.RHS}}, n)
	}
	checkIntLiteralFits(a.ctx, n.RHS, lhsType, n)
	solver := NewSolver(a.ctx, nil)
	solver.Solve(conv(rhsType, lhsType, n))
	if !solver.OK() {
		a.ctx.Diags.Errorf("TypeMismatch", n.Range().Start, "cannot assign a value of type %s", rhsType)
	}
}

func (a *Analyzer) analyzeSwitch(env *Env, n *ast.SwitchStmt, lc loopCtx) {
	subjType := a.gen.Infer(env, n.Subject)
	canon := a.ctx.CanonicalType(subjType)
	switch canon.Kind {
	case types.Tuple, types.Function, types.Array, types.Void, types.Any:
		a.ctx.Diags.Errorf("CannotSwitch", n.Subject.Range().Start, "cannot switch over a value of type %s", canon)
	}
	inner := loopCtx{loopDepth: lc.loopDepth, switchDepth: lc.switchDepth + 1}
	for _, c := range n.Cases {
		for _, v := range c.Values {
			if !isConstantExpr(v) {
				a.ctx.Diags.Errorf("CaseMustBeConstant", v.Range().Start, "case value must be a constant expression")
				continue
			}
			vt := a.gen.Infer(env, v)
			solver := NewSolver(a.ctx, nil)
			solver.Solve(conv(vt, subjType, v))
			if !solver.OK() {
				a.ctx.Diags.Errorf("TypeMismatch", v.Range().Start, "case value type does not match switch subject")
			}
		}
		a.analyzeBlock(env, c.Body, inner)
	}
}

// isConstantExpr reports whether e is a literal, or a unary minus
// applied to a numeric literal (spec §4.7 "case values must be
// constant").
func isConstantExpr(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.IntLiteralExpr, *ast.FloatLiteralExpr, *ast.CharLiteralExpr, *ast.BoolLiteralExpr, *ast.StringLiteralExpr:
		return true
	case *ast.PrefixExpr:
		if n.Op.Text == "-" {
			switch n.Operand.(type) {
			case *ast.IntLiteralExpr, *ast.FloatLiteralExpr:
				return true
			}
		}
	}
	return false
}
