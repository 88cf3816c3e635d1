/*
File    : trill/ast/decl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package ast

import "github.com/akashmaji946/trill/types"

// VarKind distinguishes `var` (mutable) from `let` (immutable) bindings
// (spec §4.3 "mutability").
type VarKind int

const (
	VarMutable VarKind = iota
	VarImmutable
)

// VarDecl is a variable/global/local binding: `var x: Int = 1` or
// `let y = 2`.
type VarDecl struct {
	DeclBase
	Kind SyntacticVarKind
	Type *types.DataType // syntactic type, nil if to be inferred
	Init Expr            // nil if uninitialized
}

// SyntacticVarKind renames VarKind for clarity at VarDecl call sites,
// kept as a distinct name so "Kind" reads unambiguously next to
// FunctionDecl's unrelated Kind field.
type SyntacticVarKind = VarKind

// ParamDecl is one function parameter: an optional external label plus
// the internal name and declared type (spec §4.6 "external label").
type ParamDecl struct {
	DeclBase
	ExternalLabel string // "" if the parameter has no external label
	Type          *types.DataType
	IsVararg      bool
	DefaultValue  Expr // nil if no default
}

// PropertyDecl is a stored or computed property on a TypeDecl.
type PropertyDecl struct {
	DeclBase
	Kind      SyntacticVarKind
	Type      *types.DataType // required for computed properties (spec §4.2)
	Init      Expr            // stored-property default, nil if none
	Getter    *FunctionDecl   // non-nil for a computed property
	Setter    *FunctionDecl   // non-nil if the computed property is settable
	Modifiers ModifierSet
}

// IsComputed reports whether this property has a getter (and is
// therefore not a plain stored field).
func (p *PropertyDecl) IsComputed() bool { return p.Getter != nil }

// FunctionKind distinguishes the syntactic forms a "func"-like
// declaration can take (spec §3).
type FunctionKind int

const (
	FuncFree FunctionKind = iota
	FuncMethod
	FuncStatic
	FuncInitializer
	FuncDeinitializer
	FuncSubscript
	FuncOperator
)

// FunctionDecl is a function/method/initializer/deinitializer/subscript/
// operator-overload declaration. Body is nil for a `foreign` declaration.
type FunctionDecl struct {
	DeclBase
	Kind          FunctionKind
	OperatorToken string // set when Kind == FuncOperator, e.g. "+"
	Modifiers     ModifierSet
	GenericParams []*GenericParamDecl
	Params        []*ParamDecl
	ReturnType    *types.DataType // types.VoidType if omitted
	Body          *BlockStmt      // nil for foreign / protocol requirements

	// Owner is the TypeDecl this is a method/initializer/deinitializer/
	// subscript of, nil for a free function or operator overload.
	Owner *TypeDecl

	// Mangled is filled in by sema.Context on registration (spec §4.3
	// "Mangled name") and used as the uniqueness/lookup key.
	Mangled string
}

// IsForeign reports whether the function carries the `foreign` modifier (spec §4.7 step:
// foreign functions must lack a body, non-foreign ones must have one).
func (f *FunctionDecl) IsForeign() bool { return f.Modifiers.Has(ModForeign) }

// GenericParamDecl is one `<T: Protocol>`-style generic parameter.
type GenericParamDecl struct {
	DeclBase
	Constraints []*types.DataType // protocol bounds, may be empty
}

// TypeDecl is a `type Name { ... }` declaration: a struct-like nominal
// type owning its members (spec §3 "TypeDecl owns its property/method/
// initializer/subscript decls and holds a weak lookup table keyed by
// name").
type TypeDecl struct {
	DeclBase
	Modifiers     ModifierSet // indirect lives here
	GenericParams []*GenericParamDecl
	Conformances  []*types.DataType // supertypes/protocols this type claims

	Properties    []*PropertyDecl
	Methods       []*FunctionDecl
	Initializers  []*FunctionDecl
	Deinitializer *FunctionDecl
	Subscripts    []*FunctionDecl

	// members is the by-name lookup table over Properties and Methods
	// (subscripts are not indexed), rebuilt by RebuildMemberTable after
	// registration.
	members map[string]Decl
}

// RebuildMemberTable (re)populates the by-name lookup table. Called by
// sema.Context after all members of a type (including later extensions)
// have been attached.
func (t *TypeDecl) RebuildMemberTable() {
	t.members = make(map[string]Decl)
	for _, p := range t.Properties {
		t.members[p.Name] = p
	}
	for _, m := range t.Methods {
		t.members[m.Name] = m
	}
}

// Member looks up a property/method by name in t's member table.
func (t *TypeDecl) Member(name string) (Decl, bool) {
	if t.members == nil {
		t.RebuildMemberTable()
	}
	d, ok := t.members[name]
	return d, ok
}

// IsIndirect reports whether this type carries the `indirect` modifier
// (spec §4.3 "isIndirect").
func (t *TypeDecl) IsIndirect() bool { return t.Modifiers.Has(ModIndirect) }

// ExtensionDecl is `extension T { ... }`: adds methods/subscripts to an
// existing type without owning it (spec §3 "ext").
type ExtensionDecl struct {
	DeclBase
	TargetType *types.DataType
	Methods    []*FunctionDecl
	Subscripts []*FunctionDecl
}

// ProtocolDecl is `protocol P: Q { func f() -> Int }`: a set of method
// requirements plus inherited protocols, checked structurally by
// conformance (spec §4.5 "Conforms").
type ProtocolDecl struct {
	DeclBase
	Inherits     []*types.DataType
	Requirements []*FunctionDecl // no Body; requirement signatures only
}

// TypeAliasDecl is `type Name = Target`. Aliases form a DAG validated
// acyclic at registration (spec §3).
type TypeAliasDecl struct {
	DeclBase
	Target *types.DataType
}

