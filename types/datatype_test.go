/*
File    : trill/types/datatype_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver map[string]*DataType

func (f fakeResolver) ResolveAlias(name string) (*DataType, bool) {
	t, ok := f[name]
	return t, ok
}

func (f fakeResolver) IsIndirect(t *DataType) bool {
	return t.Kind == Custom && t.Name == "Box"
}

func TestEqual_PrimitivesAndAnyError(t *testing.T) {
	assert.True(t, Equal(AnyType, AnyType))
	assert.True(t, Equal(ErrorType, ErrorType))
	assert.True(t, Equal(NewInt(64, true), NewInt(64, true)))
	assert.False(t, Equal(NewInt(64, true), NewInt(32, true)))
}

func TestEqual_ArrayIgnoresLength(t *testing.T) {
	len3, len5 := 3, 5
	a := NewArray(NewInt(64, true), &len3)
	b := NewArray(NewInt(64, true), &len5)
	assert.True(t, Equal(a, b))
}

func TestEqual_TupleRecurses(t *testing.T) {
	a := NewTuple([]*DataType{NewInt(64, true), BoolType})
	b := NewTuple([]*DataType{NewInt(64, true), BoolType})
	c := NewTuple([]*DataType{NewInt(64, true), NewInt(32, true)})
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestCanonicalize_ExpandsAliasAndIsIdempotent(t *testing.T) {
	r := fakeResolver{"MyInt": NewInt(32, true)}
	aliased := NewCustom("MyInt")
	once := Canonicalize(r, aliased)
	twice := Canonicalize(r, once)
	assert.True(t, Equal(once, NewInt(32, true)))
	assert.True(t, Equal(once, twice))
}

func TestCanonicalize_RecursesThroughComponents(t *testing.T) {
	r := fakeResolver{"MyInt": NewInt(32, true)}
	ptr := NewPointer(NewCustom("MyInt"))
	got := Canonicalize(r, ptr)
	assert.True(t, Equal(got, NewPointer(NewInt(32, true))))
}

func TestCanCoerce_Lattice(t *testing.T) {
	r := fakeResolver{}
	assert.True(t, CanCoerce(r, NewInt(32, true), NewInt(64, true)))
	assert.True(t, CanCoerce(r, NewInt(32, true), NewFloat(Double)))
	assert.True(t, CanCoerce(r, NewInt(64, true), NewPointer(BoolType)))
	assert.True(t, CanCoerce(r, NewPointer(BoolType), NewPointer(NewInt(8, false))))
	assert.True(t, CanCoerce(r, AnyType, NewInt(8, false)))
	assert.False(t, CanCoerce(r, BoolType, NewInt(8, false)))
}

func TestCanCoerce_IndirectPointerBidirectional(t *testing.T) {
	r := fakeResolver{}
	box := NewCustom("Box")
	assert.True(t, CanCoerce(r, box, NewPointer(AnyType)))
	assert.True(t, CanCoerce(r, NewPointer(AnyType), box))
}

func TestMatchRank(t *testing.T) {
	assert.Equal(t, RankEqual, MatchRank(NewInt(64, true), NewInt(64, true)))
	assert.Equal(t, RankAny, MatchRank(AnyType, NewInt(64, true)))
	assert.Equal(t, RankNone, MatchRank(NewInt(64, true), BoolType))
	tup1 := NewTuple([]*DataType{NewInt(64, true), AnyType})
	tup2 := NewTuple([]*DataType{NewInt(64, true), BoolType})
	assert.Equal(t, RankAny, MatchRank(tup1, tup2))
}

func TestPunishment_LexicographicOrdering(t *testing.T) {
	var exact, withAny, withString Punishment
	withAny.Add(AnyPromotion)
	withString.Add(StringLiteralPromotion)

	assert.True(t, exact.Less(withAny))
	assert.True(t, exact.Less(withString))
	assert.True(t, withString.Less(withAny))
	assert.False(t, withAny.Less(withString))
	assert.True(t, exact.Equal(Punishment{}))
}

func TestFreeTypeVariables(t *testing.T) {
	fn := NewFunction([]*DataType{NewTypeVar("T"), NewArray(NewTypeVar("U"), nil)}, NewTypeVar("T"), false)
	free := SortedFreeVars(fn)
	assert.Equal(t, []string{"T", "U"}, free)
}
