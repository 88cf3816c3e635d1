/*
File    : trill/types/coerce.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package types

// IndirectChecker is the narrow sema.Context capability needed to decide
// canBeNil/canCoerce for nominal types: whether a type decl carries the
// `indirect` modifier (spec §4.3).
type IndirectChecker interface {
	IsIndirect(t *DataType) bool
}

// CanBeNil reports whether t's canonical form is a pointer or an
// indirect nominal type (spec §4.3 "canBeNil").
func CanBeNil(ic IndirectChecker, t *DataType) bool {
	if t == nil {
		return false
	}
	if t.Kind == Pointer {
		return true
	}
	return t.Kind == Custom && ic.IsIndirect(t)
}

// CanCoerce implements the coercion lattice from spec §4.3: identity,
// integer<->integer, integer<->floating, integer<->pointer,
// pointer<->pointer, indirect<->pointer (both ways, unchecked pointee —
// a recorded hole per spec §9 Open Questions), any<->anything.
func CanCoerce(ic IndirectChecker, from, to *DataType) bool {
	if from == nil || to == nil {
		return false
	}
	if Equal(from, to) {
		return true
	}
	if from.Kind == Any || to.Kind == Any {
		return true
	}
	if from.IsNumeric() && to.IsNumeric() {
		return true
	}
	if from.Kind == Int && to.Kind == Pointer {
		return true
	}
	if from.Kind == Pointer && to.Kind == Int {
		return true
	}
	if from.Kind == Pointer && to.Kind == Pointer {
		return true
	}
	fromIndirect := from.Kind == Custom && ic.IsIndirect(from)
	toIndirect := to.Kind == Custom && ic.IsIndirect(to)
	if fromIndirect && to.Kind == Pointer {
		return true
	}
	if from.Kind == Pointer && toIndirect {
		return true
	}
	return false
}

// Rank classifies how closely two (already-canonicalized) types
// align, used by overload resolution scoring (spec §4.3 "matchRank").
type Rank int

const (
	RankNone Rank = iota
	RankAny
	RankEqual
)

// MatchRank returns RankEqual for structurally equal types (recursing
// through tuples), RankAny if either side is Any, else RankNone.
func MatchRank(t1, t2 *DataType) Rank {
	if t1 == nil || t2 == nil {
		return RankNone
	}
	if t1.Kind == Any || t2.Kind == Any {
		return RankAny
	}
	if t1.Kind == Tuple && t2.Kind == Tuple {
		if len(t1.Fields) != len(t2.Fields) {
			return RankNone
		}
		best := RankEqual
		for i := range t1.Fields {
			r := MatchRank(t1.Fields[i], t2.Fields[i])
			if r == RankNone {
				return RankNone
			}
			if r < best {
				best = r
			}
		}
		return best
	}
	if Equal(t1, t2) {
		return RankEqual
	}
	return RankNone
}
