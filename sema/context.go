/*
File    : trill/sema/context.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package sema implements Trill's semantic analysis: the central
// declaration registry, the constraint generator/solver pair, overload
// resolution, and the driving Analyzer (spec §4.3-§4.8). Context plays
// the role the teacher's eval.Evaluator plays for execution — a single
// owner of all resolvable state — except Context is append-only during
// parsing and read/written only by sema, never by a runtime (spec §5).
package sema

import (
	"strings"

	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/types"
)

// Context is the single registry every phase of the pipeline consults
// (spec §4.3 "Central registry"). It implements types.AliasResolver and
// types.IndirectChecker so the types package can canonicalize/coerce
// without importing sema.
type Context struct {
	Files      []*ast.File
	Functions  []*ast.FunctionDecl
	Operators  []*ast.FunctionDecl
	Types      []*ast.TypeDecl
	Extensions []*ast.ExtensionDecl
	Protocols  []*ast.ProtocolDecl
	Globals    []*ast.VarDecl
	Aliases    []*ast.TypeAliasDecl
	Diags      *diag.Engine

	funcsByName     map[string][]*ast.FunctionDecl
	operatorsByTok  map[string][]*ast.FunctionDecl
	protocolsByName map[string]*ast.ProtocolDecl
	typesByName     map[string]*ast.TypeDecl
	globalsByName   map[string]*ast.VarDecl
	aliasesByName   map[string]*ast.TypeAliasDecl

	mangled map[string]bool
	mainFn  *ast.FunctionDecl
}

// NewContext creates a registry preloaded with Trill's builtin primitive
// types and operators (spec §4.3 "Builtins preloaded").
func NewContext(diags *diag.Engine) *Context {
	c := &Context{
		Diags:           diags,
		funcsByName:     map[string][]*ast.FunctionDecl{},
		operatorsByTok:  map[string][]*ast.FunctionDecl{},
		protocolsByName: map[string]*ast.ProtocolDecl{},
		typesByName:     map[string]*ast.TypeDecl{},
		globalsByName:   map[string]*ast.VarDecl{},
		aliasesByName:   map[string]*ast.TypeAliasDecl{},
		mangled:         map[string]bool{},
	}
	c.loadBuiltins()
	return c
}

// Mangle computes a declaration's uniqueness key: name plus parameter
// types in stable textual form plus generic parameter names (spec §4.3
// "Mangling includes name + parameter types... + generic params").
func Mangle(name string, params []*ast.ParamDecl, generics []*ast.GenericParamDecl) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type.String()
	}
	sig := name + "(" + strings.Join(parts, ",") + ")"
	if len(generics) > 0 {
		gparts := make([]string, len(generics))
		for i, g := range generics {
			gparts[i] = g.Name
		}
		sig += "<" + strings.Join(gparts, ",") + ">"
	}
	return sig
}

// MangleFunction is Mangle exposed under the name a compiler's own
// tooling (and its tests) reach for directly — a stable textual
// signature key independent of any particular Context instance.
func MangleFunction(name string, params []*ast.ParamDecl, generics []*ast.GenericParamDecl) string {
	return Mangle(name, params, generics)
}

// RegisterFile walks one parsed file's top-level items into the registry,
// routing each decl to the matching Add* method and forwarding top-level
// #warning/#error directives straight to the diagnostic engine.
func (c *Context) RegisterFile(f *ast.File) {
	c.Files = append(c.Files, f)
	for _, item := range f.Items {
		if item.Diagnostic != nil {
			c.registerPoundDiagnostic(item.Diagnostic)
			continue
		}
		c.registerDecl(item.Decl)
	}
}

func (c *Context) registerPoundDiagnostic(d *ast.PoundDiagnosticStmt) {
	sev := diag.Warning
	if d.IsError {
		sev = diag.Error
	}
	c.Diags.Report(diag.Diagnostic{Severity: sev, Kind: "PoundDiagnostic", Message: d.Message, Location: d.Range().Start})
}

func (c *Context) registerDecl(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FunctionDecl:
		if decl.Kind == ast.FuncOperator {
			c.AddOperator(decl)
		} else {
			c.AddFunction(decl)
		}
	case *ast.TypeDecl:
		c.AddType(decl)
	case *ast.ProtocolDecl:
		c.AddProtocol(decl)
	case *ast.ExtensionDecl:
		c.AddExtension(decl)
	case *ast.VarDecl:
		c.AddGlobal(decl)
	case *ast.TypeAliasDecl:
		c.AddAlias(decl)
	}
}

// AddFunction registers a free/method/static/initializer/deinitializer/
// subscript function, enforcing mangled-signature uniqueness and the
// exactly-one-main invariant (spec §4.3).
func (c *Context) AddFunction(fn *ast.FunctionDecl) {
	fn.Mangled = Mangle(fn.Name, fn.Params, fn.GenericParams)
	isMain := fn.Name == "main" && fn.Owner == nil
	if isMain && c.mainFn != nil {
		c.Diags.Errorf("DuplicateMain", fn.Range().Start, "main already declared")
		return
	}
	if c.mangled[fn.Mangled] {
		c.Diags.Errorf("DuplicateFunction", fn.Range().Start, "function %q already declared with this signature", fn.Name)
		return
	}
	c.mangled[fn.Mangled] = true
	c.Functions = append(c.Functions, fn)
	c.funcsByName[fn.Name] = append(c.funcsByName[fn.Name], fn)
	if isMain {
		c.mainFn = fn
	}
}

// AddOperator registers an operator overload, checked against both
// existing user overloads and the preloaded builtins (spec §4.3 "must not
// clash with existing overloads or builtins").
func (c *Context) AddOperator(fn *ast.FunctionDecl) {
	fn.Mangled = Mangle(fn.OperatorToken, fn.Params, fn.GenericParams)
	if c.mangled[fn.Mangled] {
		c.Diags.Errorf("DuplicateOperatorOverload", fn.Range().Start, "operator %q already declared for these operand types", fn.OperatorToken)
		return
	}
	c.mangled[fn.Mangled] = true
	c.Operators = append(c.Operators, fn)
	c.operatorsByTok[fn.OperatorToken] = append(c.operatorsByTok[fn.OperatorToken], fn)
}

// AddType registers a nominal type, rejecting a second decl for the same
// canonical name (spec §4.3 "canonical DataType must not already have a
// decl").
func (c *Context) AddType(td *ast.TypeDecl) {
	if _, ok := c.typesByName[td.Name]; ok {
		c.Diags.Errorf("DuplicateType", td.Range().Start, "type %q already declared", td.Name)
		return
	}
	td.RebuildMemberTable()
	c.typesByName[td.Name] = td
	c.Types = append(c.Types, td)
}

// AddProtocol registers a protocol decl.
func (c *Context) AddProtocol(p *ast.ProtocolDecl) {
	if _, ok := c.protocolsByName[p.Name]; ok {
		c.Diags.Errorf("DuplicateProtocol", p.Range().Start, "protocol %q already declared", p.Name)
		return
	}
	c.protocolsByName[p.Name] = p
	c.Protocols = append(c.Protocols, p)
}

// AddExtension registers an extension and folds its methods/subscripts
// into the target type's member table, so later lookups see extension
// members the same as decl-owned ones.
func (c *Context) AddExtension(ext *ast.ExtensionDecl) {
	c.Extensions = append(c.Extensions, ext)
	if ext.TargetType == nil || ext.TargetType.Kind != types.Custom {
		return
	}
	td, ok := c.typesByName[ext.TargetType.Name]
	if !ok {
		return
	}
	td.Methods = append(td.Methods, ext.Methods...)
	td.Subscripts = append(td.Subscripts, ext.Subscripts...)
	td.RebuildMemberTable()
}

// AddGlobal registers a top-level var/let binding.
func (c *Context) AddGlobal(v *ast.VarDecl) {
	if _, ok := c.globalsByName[v.Name]; ok {
		c.Diags.Errorf("DuplicateVar", v.Range().Start, "global %q already declared", v.Name)
		return
	}
	c.globalsByName[v.Name] = v
	c.Globals = append(c.Globals, v)
}

// AddAlias registers a type alias. Cycle detection runs as a separate
// whole-graph pass (CheckAliasCycles) once every file is registered,
// since an alias may legally reference one declared later in the same
// file or a later file.
func (c *Context) AddAlias(a *ast.TypeAliasDecl) {
	c.aliasesByName[a.Name] = a
	c.Aliases = append(c.Aliases, a)
}

// CheckAliasCycles walks the alias graph and reports CircularAlias on the
// first alias seen in each cycle (spec §4.3, end-to-end scenario 4).
func (c *Context) CheckAliasCycles() {
	reported := map[string]bool{}
	for _, a := range c.Aliases {
		if reported[a.Name] {
			continue
		}
		visiting := map[string]bool{}
		if c.aliasCycleFrom(a.Name, a.Target, visiting) {
			c.Diags.Errorf("CircularAlias", a.Range().Start, "type alias %q forms a cycle", a.Name)
			for _, b := range c.Aliases {
				if c.aliasCycleFrom(a.Name, b.Target, map[string]bool{}) && c.aliasCycleFrom(b.Name, a.Target, map[string]bool{}) {
					reported[b.Name] = true
				}
			}
		}
	}
}

func (c *Context) aliasCycleFrom(root string, t *types.DataType, visiting map[string]bool) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case types.Custom:
		if t.Name == root {
			return true
		}
		if visiting[t.Name] {
			return false
		}
		a, ok := c.aliasesByName[t.Name]
		if !ok {
			return false
		}
		visiting[t.Name] = true
		return c.aliasCycleFrom(root, a.Target, visiting)
	case types.Pointer, types.Array:
		return c.aliasCycleFrom(root, t.Elem, visiting)
	case types.Tuple:
		for _, f := range t.Fields {
			if c.aliasCycleFrom(root, f, visiting) {
				return true
			}
		}
	case types.Function:
		for _, p := range t.Params {
			if c.aliasCycleFrom(root, p, visiting) {
				return true
			}
		}
		return c.aliasCycleFrom(root, t.Result, visiting)
	}
	return false
}

// ResolveAlias implements types.AliasResolver.
func (c *Context) ResolveAlias(name string) (*types.DataType, bool) {
	a, ok := c.aliasesByName[name]
	if !ok {
		return nil, false
	}
	return a.Target, true
}

// IsIndirect implements types.IndirectChecker.
func (c *Context) IsIndirect(t *types.DataType) bool {
	if t == nil || t.Kind != types.Custom {
		return false
	}
	td, ok := c.typesByName[t.Name]
	return ok && td.IsIndirect()
}

// CanonicalType expands every alias reachable from t (spec §3).
func (c *Context) CanonicalType(t *types.DataType) *types.DataType {
	return types.Canonicalize(c, t)
}

// CanBeNil reports whether t's canonical form accepts `nil` (spec §4.3).
func (c *Context) CanBeNil(t *types.DataType) bool {
	return types.CanBeNil(c, c.CanonicalType(t))
}

// CanCoerce reports whether `from` may be converted to `to` under the
// coercion lattice (spec §4.3).
func (c *Context) CanCoerce(from, to *types.DataType) bool {
	return types.CanCoerce(c, c.CanonicalType(from), c.CanonicalType(to))
}

// TypeDeclFor looks up the decl owning a canonical Custom type, if any.
func (c *Context) TypeDeclFor(t *types.DataType) (*ast.TypeDecl, bool) {
	if t == nil || t.Kind != types.Custom {
		return nil, false
	}
	td, ok := c.typesByName[t.Name]
	return td, ok
}

// ProtocolDeclFor looks up a protocol by name.
func (c *Context) ProtocolDeclFor(name string) (*ast.ProtocolDecl, bool) {
	p, ok := c.protocolsByName[name]
	return p, ok
}

// LookupFunctions returns every overload registered under name.
func (c *Context) LookupFunctions(name string) []*ast.FunctionDecl {
	return c.funcsByName[name]
}

// LookupOperator returns every overload of a given operator token,
// builtins included.
func (c *Context) LookupOperator(tok string) []*ast.FunctionDecl {
	return c.operatorsByTok[tok]
}

// LookupGlobal returns a registered global var/let binding by name.
func (c *Context) LookupGlobal(name string) (*ast.VarDecl, bool) {
	v, ok := c.globalsByName[name]
	return v, ok
}

// MainFunc returns the registered `main` function, if any.
func (c *Context) MainFunc() (*ast.FunctionDecl, bool) {
	return c.mainFn, c.mainFn != nil
}
