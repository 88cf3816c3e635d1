/*
File    : trill/types/canonical.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package types

// AliasResolver is the narrow interface the types package needs from
// sema.Context to canonicalize a Custom reference — just enough to break
// the import cycle (sema depends on types, so types cannot depend back on
// sema). A type alias name resolves to its aliased DataType; a name that
// is not an alias (e.g. a real type decl, or unresolved) returns ok=false.
type AliasResolver interface {
	ResolveAlias(name string) (*DataType, bool)
}

// Canonicalize recursively substitutes any Custom(name) whose name
// resolves to a type alias, and rewrites Pointer/Array/Tuple/Function
// component-wise (spec §3 "canonical(t)"). It is idempotent:
// Canonicalize(Canonicalize(t)) == Canonicalize(t), since a resolved
// alias target is canonicalized again before being returned.
func Canonicalize(r AliasResolver, t *DataType) *DataType {
	return canonicalize(r, t, map[string]bool{})
}

func canonicalize(r AliasResolver, t *DataType, visiting map[string]bool) *DataType {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case Custom:
		if visiting[t.Name] {
			// A cycle here means registration failed to catch an alias
			// loop (see sema's alias-cycle check); fail closed rather
			// than recursing forever.
			return ErrorType
		}
		if target, ok := r.ResolveAlias(t.Name); ok {
			visiting[t.Name] = true
			resolved := canonicalize(r, target, visiting)
			delete(visiting, t.Name)
			return resolved
		}
		return t
	case Pointer:
		return &DataType{Kind: Pointer, Elem: canonicalize(r, t.Elem, visiting)}
	case Array:
		return &DataType{Kind: Array, Elem: canonicalize(r, t.Elem, visiting), ArrayLen: t.ArrayLen}
	case Tuple:
		fields := make([]*DataType, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = canonicalize(r, f, visiting)
		}
		return &DataType{Kind: Tuple, Fields: fields}
	case Function:
		params := make([]*DataType, len(t.Params))
		for i, p := range t.Params {
			params[i] = canonicalize(r, p, visiting)
		}
		return &DataType{
			Kind: Function, Params: params,
			Result: canonicalize(r, t.Result, visiting), HasVarargs: t.HasVarargs,
		}
	default:
		return t
	}
}
