/*
File    : trill/sema/solver_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/types"
)

func TestSolver_EqualIdenticalTypesSucceeds(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	s := NewSolver(ctx, nil)
	ok := s.Solve(eq(types.NewInt(32, true), types.NewInt(32, true), nil))
	assert.True(t, ok)
	assert.True(t, s.OK())
	assert.Equal(t, 0, s.Punishment.Total())
}

func TestSolver_EqualBindsTypeVariable(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	s := NewSolver(ctx, nil)
	tv := types.NewTypeVar("T")
	ok := s.Solve(eq(tv, types.BoolType, nil))
	assert.True(t, ok)
	assert.True(t, types.Equal(s.apply(tv), types.BoolType))
}

func TestSolver_EqualMismatchedPrimitivesFails(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	s := NewSolver(ctx, nil)
	ok := s.Solve(eq(types.BoolType, types.NewInt(64, true), nil))
	assert.False(t, ok)
	assert.False(t, s.OK())
}

func TestSolver_IntLiteralMatchesDefaultWidthExactly(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	s := NewSolver(ctx, nil)
	ok := s.Solve(eq(litInt(), types.NewInt(64, true), nil))
	assert.True(t, ok)
	assert.Equal(t, 0, s.Punishment.Total())
}

func TestSolver_IntLiteralNarrowedWidthIsPunished(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	s := NewSolver(ctx, nil)
	ok := s.Solve(eq(litInt(), types.NewInt(8, true), nil))
	assert.True(t, ok)
	assert.Equal(t, 1, s.Punishment.Total())
}

func TestSolver_IntLiteralToFloatIsPunished(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	s := NewSolver(ctx, nil)
	ok := s.Solve(eq(litInt(), types.NewFloat(types.Double), nil))
	assert.True(t, ok)
	assert.Equal(t, 1, s.Punishment.Total())
}

func TestSolver_NilLiteralRequiresNilableTarget(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	s := NewSolver(ctx, nil)
	ok := s.Solve(eq(litNil(), types.NewPointer(types.NewInt(8, true)), nil))
	assert.True(t, ok)

	s2 := NewSolver(ctx, nil)
	ok2 := s2.Solve(eq(litNil(), types.NewInt(64, true), nil))
	assert.False(t, ok2)
}

func TestSolver_ConversionFallsBackToCoercion(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	s := NewSolver(ctx, nil)
	ok := s.Solve(conv(types.NewInt(8, true), types.NewInt(32, true), nil))
	assert.True(t, ok)
}

func TestSolver_ConformsAnyAlwaysSucceedsWithPenalty(t *testing.T) {
	ctx := NewContext(diag.NewEngine())
	s := NewSolver(ctx, nil)
	ok := s.Solve(conforms(types.AnyType, "Whatever", nil))
	assert.True(t, ok)
	assert.Equal(t, 1, s.Punishment.Total())
}

func TestSolver_OccursCheckRejectsInfiniteType(t *testing.T) {
	assert.True(t, occurs("T", types.NewPointer(types.NewTypeVar("T"))))
	assert.False(t, occurs("T", types.NewInt(64, true)))
}
