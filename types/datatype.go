/*
File    : trill/types/datatype.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package types implements Trill's DataType: a recursive, tagged-variant
// type representation, plus canonicalization, the coercion lattice, and
// overload match ranking (spec §3, §4.3). The Kind-plus-payload-fields
// shape follows the same discriminated-variant pattern the teacher uses
// for its runtime object set (GoMixType + interface), generalized to a
// recursive tree instead of a flat value set.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the DataType variant.
type Kind int

const (
	Invalid Kind = iota
	Int
	Floating
	Bool
	Void
	Any
	Custom
	TypeVariable
	Pointer
	Array
	Tuple
	Function
	Error
)

// FloatWidth distinguishes the floating-point variants.
type FloatWidth int

const (
	Half FloatWidth = iota
	Single
	Double
	Extended80
)

// DataType is Trill's recursive type representation. Only the fields
// relevant to Kind are meaningful; the rest are zero. This mirrors the
// teacher's tagged-union-by-convention style (one struct, a Kind field,
// and Kind-dependent payload), but recursive rather than flat.
type DataType struct {
	Kind Kind

	// Int
	IntWidth  int // 8, 16, 32, 64
	IntSigned bool

	// Floating
	Float FloatWidth

	// Custom — a nominal reference, resolved against decl tables owned
	// by sema.Context. Equality and canonicalization only ever compare
	// the Name; the referent is looked up, never embedded, to avoid the
	// DataType tree holding an ownership cycle back into the context.
	Name string

	// TypeVariable
	VarName string

	// Pointer / Array
	Elem     *DataType
	ArrayLen *int // nil means unspecified length

	// Tuple
	Fields []*DataType

	// Function
	Params      []*DataType
	Result      *DataType
	HasVarargs  bool
}

// Common singletons, analogous to the teacher's predefined object
// constants (IntegerType, FloatType, ...).
var (
	ErrorType = &DataType{Kind: Error}
	VoidType  = &DataType{Kind: Void}
	AnyType   = &DataType{Kind: Any}
	BoolType  = &DataType{Kind: Bool}
)

// NewInt builds a sized integer type.
func NewInt(width int, signed bool) *DataType {
	return &DataType{Kind: Int, IntWidth: width, IntSigned: signed}
}

// NewFloat builds a floating-point type of the given width.
func NewFloat(w FloatWidth) *DataType { return &DataType{Kind: Floating, Float: w} }

// NewCustom builds a nominal reference by name.
func NewCustom(name string) *DataType { return &DataType{Kind: Custom, Name: name} }

// NewTypeVar builds a fresh or user-declared generic type variable.
func NewTypeVar(name string) *DataType { return &DataType{Kind: TypeVariable, VarName: name} }

// NewPointer builds a pointer-to-inner type.
func NewPointer(inner *DataType) *DataType { return &DataType{Kind: Pointer, Elem: inner} }

// NewArray builds an array type; length is nil for an unspecified length.
func NewArray(elem *DataType, length *int) *DataType {
	return &DataType{Kind: Array, Elem: elem, ArrayLen: length}
}

// NewTuple builds a tuple type from its field types.
func NewTuple(fields []*DataType) *DataType { return &DataType{Kind: Tuple, Fields: fields} }

// NewFunction builds a function type.
func NewFunction(params []*DataType, result *DataType, varargs bool) *DataType {
	return &DataType{Kind: Function, Params: params, Result: result, HasVarargs: varargs}
}

// String renders a DataType for diagnostics and debugging — the
// equivalent of the teacher's ToString()/Literal() conventions.
func (t *DataType) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Invalid:
		return "<invalid>"
	case Error:
		return "<error>"
	case Void:
		return "Void"
	case Any:
		return "Any"
	case Bool:
		return "Bool"
	case Int:
		prefix := "Int"
		if !t.IntSigned {
			prefix = "UInt"
		}
		if t.IntWidth == 64 && t.IntSigned {
			return "Int"
		}
		return fmt.Sprintf("%s%d", prefix, t.IntWidth)
	case Floating:
		switch t.Float {
		case Half:
			return "Float16"
		case Single:
			return "Float"
		case Double:
			return "Double"
		case Extended80:
			return "Float80"
		}
	case Custom:
		return t.Name
	case TypeVariable:
		return t.VarName
	case Pointer:
		return "*" + t.Elem.String()
	case Array:
		if t.ArrayLen != nil {
			return fmt.Sprintf("[%d]%s", *t.ArrayLen, t.Elem.String())
		}
		return "[]" + t.Elem.String()
	case Tuple:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case Function:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		va := ""
		if t.HasVarargs {
			va = "..."
		}
		return fmt.Sprintf("(%s%s) -> %s", strings.Join(parts, ", "), va, t.Result.String())
	}
	return "<unknown>"
}

// FreeTypeVariables returns every type_variable name reachable from t
// (spec §3 "freeTypeVariables").
func FreeTypeVariables(t *DataType) map[string]bool {
	out := make(map[string]bool)
	collectFreeVars(t, out)
	return out
}

func collectFreeVars(t *DataType, out map[string]bool) {
	if t == nil {
		return
	}
	switch t.Kind {
	case TypeVariable:
		out[t.VarName] = true
	case Pointer, Array:
		collectFreeVars(t.Elem, out)
	case Tuple:
		for _, f := range t.Fields {
			collectFreeVars(f, out)
		}
	case Function:
		for _, p := range t.Params {
			collectFreeVars(p, out)
		}
		collectFreeVars(t.Result, out)
	}
}

// SortedFreeVars is a convenience for deterministic diagnostics/tests.
func SortedFreeVars(t *DataType) []string {
	m := FreeTypeVariables(t)
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Equal reports structural equality in canonical form. Callers are
// expected to have already canonicalized both sides (via
// Canonicalize); this function does not itself resolve aliases, so that
// it has no dependency on sema.Context and stays usable from tests.
func Equal(a, b *DataType) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind == Any && b.Kind == Any {
		return true
	}
	if a.Kind == Error && b.Kind == Error {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Int:
		return a.IntWidth == b.IntWidth && a.IntSigned == b.IntSigned
	case Floating:
		return a.Float == b.Float
	case Void, Bool, Any, Error, Invalid:
		return true
	case Custom:
		return a.Name == b.Name
	case TypeVariable:
		return a.VarName == b.VarName
	case Pointer:
		return Equal(a.Elem, b.Elem)
	case Array:
		// array equality ignores length (spec §3); length is checked
		// separately by the type checker where it matters (subscript
		// bounds, array literal arity).
		return Equal(a.Elem, b.Elem)
	case Tuple:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if !Equal(a.Fields[i], b.Fields[i]) {
				return false
			}
		}
		return true
	case Function:
		if len(a.Params) != len(b.Params) || a.HasVarargs != b.HasVarargs {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equal(a.Result, b.Result)
	}
	return false
}

// IsNumeric reports whether t is an integer or floating type.
func (t *DataType) IsNumeric() bool {
	return t != nil && (t.Kind == Int || t.Kind == Floating)
}

// IsInteger reports whether t is an integer type of any width/signedness.
func (t *DataType) IsInteger() bool { return t != nil && t.Kind == Int }
