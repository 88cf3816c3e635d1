/*
File    : trill/sema/overload.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import (
	"fmt"

	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/types"
)

// OutcomeKind discriminates the overload resolver's four possible
// results (spec §4.6).
type OutcomeKind int

const (
	Resolved OutcomeKind = iota
	NoCandidates
	NoMatchingCandidates
	Ambiguity
)

// CandidateReason explains why one candidate was rejected, attached to a
// NoMatchingCandidates outcome for user-facing diagnostics (spec §4.6
// "Overload rejection diagnostics carry each rejected candidate plus the
// first failing constraint").
type CandidateReason struct {
	Candidate *ast.FunctionDecl
	Reason    string
}

// Outcome is the overload resolver's result (spec §4.6).
type Outcome struct {
	Kind       OutcomeKind
	Decl       *ast.FunctionDecl // set iff Kind == Resolved
	Candidates []*ast.FunctionDecl
	Reasons    []CandidateReason
	Subst      map[string]*types.DataType // generic bindings chosen for Decl, if any
}

type scoredCandidate struct {
	decl       *ast.FunctionDecl
	punishment types.Punishment
	subst      map[string]*types.DataType
}

// Resolve runs the algorithm from spec §4.6 against candidates for a call
// site whose argument expressions have already had Infer run on them
// (so each argExprs[i].GetType() is meaningful).
func (c *Context) Resolve(candidates []*ast.FunctionDecl, args []ast.CallArg, node ast.Node) Outcome {
	if len(candidates) == 0 {
		return Outcome{Kind: NoCandidates}
	}
	// Candidate solving reports into a scratch engine; a rejected
	// candidate is described by Outcome.Reasons instead.
	realDiags := c.Diags
	c.Diags = diag.NewEngine()
	defer func() { c.Diags = realDiags }()
	var reasons []CandidateReason
	var matches []scoredCandidate

	for _, cand := range candidates {
		if reason, ok := c.rejectByShape(cand, args); ok {
			reasons = append(reasons, CandidateReason{Candidate: cand, Reason: reason})
			continue
		}
		subst := map[string]*types.DataType{}
		constrainedVars := map[string]bool{}
		for _, g := range cand.GenericParams {
			fresh := types.NewTypeVar("$" + cand.Mangled + "." + g.Name)
			subst[g.Name] = fresh
			if len(g.Constraints) > 0 {
				constrainedVars[fresh.VarName] = true
			}
		}
		solver := NewSolver(c, constrainedVars)
		ok := true
		for i, p := range cand.Params {
			if i >= len(args) {
				break
			}
			paramType := instantiateGenerics(p.Type, subst)
			if !solver.Solve(eq(args[i].Value.GetType(), paramType, node)) {
				ok = false
				break
			}
		}
		if ok {
			for _, g := range cand.GenericParams {
				tv := subst[g.Name]
				for _, bound := range g.Constraints {
					if bound.Kind != types.Custom {
						continue
					}
					if !solver.Solve(conforms(solver.apply(tv), bound.Name, node)) {
						ok = false
						break
					}
				}
				if !ok {
					break
				}
			}
		}
		if !ok {
			reasons = append(reasons, CandidateReason{Candidate: cand, Reason: "argument types do not match parameter types"})
			continue
		}
		matches = append(matches, scoredCandidate{decl: cand, punishment: solver.Punishment, subst: solver.Subst})
	}

	if len(matches) == 0 {
		return Outcome{Kind: NoMatchingCandidates, Candidates: candidates, Reasons: reasons}
	}
	best := matches[0]
	var tied []scoredCandidate
	tied = append(tied, best)
	for _, m := range matches[1:] {
		switch {
		case m.punishment.Less(best.punishment):
			best = m
			tied = []scoredCandidate{m}
		case m.punishment.Equal(best.punishment):
			tied = append(tied, m)
		}
	}
	if len(tied) > 1 {
		decls := make([]*ast.FunctionDecl, len(tied))
		for i, t := range tied {
			decls[i] = t.decl
		}
		return Outcome{Kind: Ambiguity, Candidates: decls}
	}
	return Outcome{Kind: Resolved, Decl: best.decl, Subst: best.subst}
}

// rejectByShape implements §4.6 steps 2-3: arity and argument-label
// matching, before any type constraint is even generated.
func (c *Context) rejectByShape(cand *ast.FunctionDecl, args []ast.CallArg) (string, bool) {
	if len(args) != len(cand.Params) {
		if !(cand.Params != nil && len(cand.Params) > 0 && cand.Params[len(cand.Params)-1].IsVararg && len(args) >= len(cand.Params)-1) {
			return fmt.Sprintf("ArityMismatch(gotCount: %d, expectedCount: %d)", len(args), len(cand.Params)), true
		}
	}
	if cand.Kind == ast.FuncOperator {
		// Operators are always called positionally (`a + b`); declared
		// parameter labels never apply at the call site.
		return "", false
	}
	for i, p := range cand.Params {
		if i >= len(args) {
			break
		}
		a := args[i]
		switch {
		case p.ExternalLabel != "" && a.Label != p.ExternalLabel:
			if a.Label == "" {
				return "MissingArgumentLabel", true
			}
			return "IncorrectArgumentLabel", true
		case p.ExternalLabel == "" && a.Label != "":
			return "ExtraArgumentLabel", true
		}
	}
	return "", false
}

// instantiateGenerics substitutes every Custom(name) matching a key in
// subst with its fresh type variable, recursing through compound types —
// the same traversal shape as canonicalization, but driven by a per-call
// substitution instead of the alias table.
func instantiateGenerics(t *types.DataType, subst map[string]*types.DataType) *types.DataType {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case types.Custom:
		if fresh, ok := subst[t.Name]; ok {
			return fresh
		}
		return t
	case types.Pointer:
		return types.NewPointer(instantiateGenerics(t.Elem, subst))
	case types.Array:
		return types.NewArray(instantiateGenerics(t.Elem, subst), t.ArrayLen)
	case types.Tuple:
		fields := make([]*types.DataType, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = instantiateGenerics(f, subst)
		}
		return types.NewTuple(fields)
	case types.Function:
		params := make([]*types.DataType, len(t.Params))
		for i, p := range t.Params {
			params[i] = instantiateGenerics(p, subst)
		}
		return types.NewFunction(params, instantiateGenerics(t.Result, subst), t.HasVarargs)
	default:
		return t
	}
}
