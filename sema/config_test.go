/*
File    : trill/sema/config_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/types"
)

func TestNewContextWithConfig_NoAliasByDefault(t *testing.T) {
	ctx := NewContextWithConfig(diag.NewEngine(), BuiltinConfig{})
	canon := ctx.CanonicalType(types.NewCustom("Size"))
	assert.Equal(t, types.Custom, canon.Kind, "no alias should have been registered")
}

func TestNewContextWithConfig_RegistersNativeIntAlias(t *testing.T) {
	cfg := BuiltinConfig{NativeIntAlias: "Size", NativeIntWidth: 32, NativeIntSigned: false}
	ctx := NewContextWithConfig(diag.NewEngine(), cfg)

	canon := ctx.CanonicalType(types.NewCustom("Size"))
	require.Equal(t, types.Int, canon.Kind)
	assert.Equal(t, 32, canon.IntWidth)
	assert.False(t, canon.IntSigned)
}

func TestNewContextWithConfig_DefaultsWidthTo64WhenZero(t *testing.T) {
	cfg := BuiltinConfig{NativeIntAlias: "Size"}
	ctx := NewContextWithConfig(diag.NewEngine(), cfg)

	canon := ctx.CanonicalType(types.NewCustom("Size"))
	require.Equal(t, types.Int, canon.Kind)
	assert.Equal(t, 64, canon.IntWidth)
}
