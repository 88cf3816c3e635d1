/*
File    : trill/sema/solver.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import (
	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/types"
)

// Solver holds one constraint-solving attempt's substitution map and
// punishment score (spec §4.5). A Solver is scoped to a single call site
// or expression resolution attempt, not the whole program — Trill has no
// let-polymorphism that would need a single program-wide unifier, so each
// attempt gets its own fresh substitution (see DESIGN.md, "Constraint
// solving is eager and per-call-site").
type Solver struct {
	ctx   *Context
	Subst map[string]*types.DataType

	// Punishment accumulates over every constraint this Solver resolves.
	Punishment types.Punishment

	// constrained marks which type-variable names correspond to a
	// generic parameter carrying protocol bounds; binding one of these
	// records GenericPromotion (spec §9 "punishment score... enum of
	// penalty kinds").
	constrained map[string]bool

	failed bool
}

// NewSolver creates a Solver bound to ctx for resolving constraints
// against constrainedVars (may be nil).
func NewSolver(ctx *Context, constrainedVars map[string]bool) *Solver {
	return &Solver{ctx: ctx, Subst: map[string]*types.DataType{}, constrained: constrainedVars}
}

// OK reports whether every constraint solved so far has succeeded.
func (s *Solver) OK() bool { return !s.failed }

// apply substitutes every bound type variable reachable from t.
func (s *Solver) apply(t *types.DataType) *types.DataType {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case types.TypeVariable:
		if bound, ok := s.Subst[t.VarName]; ok {
			return s.apply(bound)
		}
		return t
	case types.Pointer:
		return types.NewPointer(s.apply(t.Elem))
	case types.Array:
		return types.NewArray(s.apply(t.Elem), t.ArrayLen)
	case types.Tuple:
		fields := make([]*types.DataType, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = s.apply(f)
		}
		return types.NewTuple(fields)
	case types.Function:
		params := make([]*types.DataType, len(t.Params))
		for i, p := range t.Params {
			params[i] = s.apply(p)
		}
		return types.NewFunction(params, s.apply(t.Result), t.HasVarargs)
	default:
		return t
	}
}

// occurs reports whether varName appears free anywhere in t, the check
// the solver runs before binding a type variable (spec §4.5 "occurs
// check") to reject an infinite type.
func occurs(varName string, t *types.DataType) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case types.TypeVariable:
		return t.VarName == varName
	case types.Pointer, types.Array:
		return occurs(varName, t.Elem)
	case types.Tuple:
		for _, f := range t.Fields {
			if occurs(varName, f) {
				return true
			}
		}
		return false
	case types.Function:
		for _, p := range t.Params {
			if occurs(varName, p) {
				return true
			}
		}
		return occurs(varName, t.Result)
	default:
		return false
	}
}

func (s *Solver) bind(varName string, t *types.DataType, node ast.Node) bool {
	if occurs(varName, t) {
		s.fail(node)
		return false
	}
	s.Subst[varName] = t
	if s.constrained[varName] {
		s.Punishment.Add(types.GenericPromotion)
	}
	return true
}

func (s *Solver) fail(node ast.Node) {
	s.failed = true
	if node != nil {
		s.ctx.Diags.Errorf("CannotConvert", node.Range().Start, "cannot convert between incompatible types")
	}
}

// Solve dispatches c to the matching per-kind solving rule and folds the
// result's punishment into s.Punishment (spec §4.5 "Per-constraint
// solving").
func (s *Solver) Solve(c Constraint) bool {
	switch c.Kind {
	case Equal:
		return s.solveEqual(c)
	case Conversion:
		return s.solveConversion(c)
	case Conforms:
		return s.solveConforms(c)
	}
	return false
}

func (s *Solver) solveEqual(c Constraint) bool {
	t1, t2 := s.apply(c.T1), s.apply(c.T2)
	if types.Equal(t1, t2) {
		return true
	}
	if t1.Kind == types.TypeVariable {
		return s.bind(t1.VarName, t2, c.Node)
	}
	if t2.Kind == types.TypeVariable {
		return s.bind(t2.VarName, t1, c.Node)
	}
	if t1.Kind == types.Function && t2.Kind == types.Function {
		if len(t1.Params) != len(t2.Params) && !t1.HasVarargs && !t2.HasVarargs {
			s.fail(c.Node)
			return false
		}
		n := len(t1.Params)
		if len(t2.Params) < n {
			n = len(t2.Params)
		}
		for i := 0; i < n; i++ {
			if !s.Solve(eq(t1.Params[i], t2.Params[i], c.Node)) {
				return false
			}
		}
		return s.Solve(eq(t1.Result, t2.Result, c.Node))
	}
	if t1.Kind == types.Pointer && t2.Kind == types.Pointer {
		return s.Solve(eq(t1.Elem, t2.Elem, c.Node))
	}
	if t1.Kind == types.Any || t2.Kind == types.Any {
		s.Punishment.Add(types.AnyPromotion)
		return true
	}
	if ok, handled := s.solveLiteral(t1, t2, c.Node); handled {
		return ok
	}
	if t1.Kind == types.Custom && t1.Name == NilLiteralType {
		if s.ctx.CanBeNil(t2) {
			return true
		}
		s.fail(c.Node)
		return false
	}
	if t2.Kind == types.Custom && t2.Name == NilLiteralType {
		if s.ctx.CanBeNil(t1) {
			return true
		}
		s.fail(c.Node)
		return false
	}
	s.fail(c.Node)
	return false
}

// solveLiteral handles every (literal-pseudo-type, concrete) pairing from
// spec §4.5's literal-compatibility bullet. handled is false when neither
// side is one of the numeric/string literal pseudo-types, so the caller
// falls through to the remaining Equal rules (nil literal, failure).
func (s *Solver) solveLiteral(t1, t2 *types.DataType, node ast.Node) (ok, handled bool) {
	isIntLit := func(t *types.DataType) bool { return t.Kind == types.Custom && t.Name == IntegerLiteralType }
	isFloatLit := func(t *types.DataType) bool { return t.Kind == types.Custom && t.Name == FloatingLiteralType }
	isStrLit := func(t *types.DataType) bool { return t.Kind == types.Custom && t.Name == StringLiteralType }

	if isIntLit(t1) && isIntLit(t2) {
		return true, true
	}
	if isFloatLit(t1) && isFloatLit(t2) {
		return true, true
	}
	if isStrLit(t1) && isStrLit(t2) {
		return true, true
	}

	lit, other := t1, t2
	if isIntLit(t2) || isFloatLit(t2) || isStrLit(t2) {
		lit, other = t2, t1
	} else if !isIntLit(t1) && !isFloatLit(t1) && !isStrLit(t1) {
		return false, false
	}

	switch {
	case isIntLit(lit):
		if other.Kind == types.Int {
			if other.IntWidth != 64 || !other.IntSigned {
				s.Punishment.Add(types.NumericLiteralPromotion)
			}
			return true, true
		}
		if other.Kind == types.Floating {
			s.Punishment.Add(types.NumericLiteralPromotion)
			return true, true
		}
	case isFloatLit(lit):
		if other.Kind == types.Floating {
			if other.Float != types.Double {
				s.Punishment.Add(types.NumericLiteralPromotion)
			}
			return true, true
		}
	case isStrLit(lit):
		if other.Kind == types.Custom && other.Name == "String" {
			return true, true
		}
		if other.Kind == types.Pointer && other.Elem != nil && other.Elem.Kind == types.Int && other.Elem.IntWidth == 8 {
			s.Punishment.Add(types.StringLiteralPromotion)
			return true, true
		}
	}
	s.fail(node)
	return false, true
}

// solveConversion tries Equal first, then falls back to the coercion
// lattice (spec §4.5 "Conversion(t1, t2): try Equal; if that fails,
// accept if canCoerce(t1, t2)").
func (s *Solver) solveConversion(c Constraint) bool {
	snapshot := make(map[string]*types.DataType, len(s.Subst))
	for k, v := range s.Subst {
		snapshot[k] = v
	}
	savedFailed := s.failed
	savedPunishment := s.Punishment
	probe := c
	probe.Node = nil // a failed Equal probe is not reported; coercion may still accept
	if s.solveEqual(probe) {
		return true
	}
	s.Subst = snapshot
	s.failed = savedFailed
	s.Punishment = savedPunishment
	t1, t2 := s.apply(c.T1), s.apply(c.T2)
	if s.ctx.CanCoerce(t1, t2) {
		return true
	}
	s.fail(c.Node)
	return false
}

// solveConforms walks P's inherited-protocol DAG (visited-set guarded)
// and requires every requirement to have a signature-matching
// implementation on t's decl (spec §4.5 "Conforms(t, P)").
func (s *Solver) solveConforms(c Constraint) bool {
	t := s.apply(c.T1)
	if t.Kind == types.Any {
		s.Punishment.Add(types.ExistentialPromotion)
		return true
	}
	canon := s.ctx.CanonicalType(t)
	td, ok := s.ctx.TypeDeclFor(canon)
	if !ok {
		s.ctx.Diags.Errorf("TypeDoesNotConform", c.Node.Range().Start, "%s does not conform to %s", canon, c.Protocol)
		s.failed = true
		return false
	}
	missing := s.ctx.MissingConformance(td, c.Protocol, map[string]bool{})
	if len(missing) == 0 {
		return true
	}
	s.ctx.Diags.Errorf("TypeDoesNotConform", c.Node.Range().Start, "%s does not conform to %s", td.Name, c.Protocol)
	for _, m := range missing {
		s.ctx.Diags.Errorf("MissingImplementation", c.Node.Range().Start, "missing implementation of %s", m)
	}
	s.failed = true
	return false
}
