/*
File    : trill/sema/config.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import (
	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/types"
)

// BuiltinConfig carries target-specific additions to Trill's builtin type
// registry. The sized-integer set itself (Int8..UInt64) is fixed by spec
// §4.3 and never changes, but an embedding host targeting a particular
// platform may want a named native-width alias on top of it (the way C
// headers expose `size_t` over whatever native width the target actually
// has) without editing the checker itself.
type BuiltinConfig struct {
	NativeIntAlias  string `yaml:"native_int_alias"`
	NativeIntWidth  int    `yaml:"native_int_width"`
	NativeIntSigned bool   `yaml:"native_int_signed"`
}

// DefaultBuiltinConfig is the zero-overrides configuration: no extra
// alias is registered, matching NewContext's existing behavior exactly.
func DefaultBuiltinConfig() BuiltinConfig {
	return BuiltinConfig{NativeIntWidth: 64, NativeIntSigned: true}
}

// NewContextWithConfig builds a Context the way NewContext does, then
// layers cfg's native-width alias on top if one was requested.
func NewContextWithConfig(diags *diag.Engine, cfg BuiltinConfig) *Context {
	c := NewContext(diags)
	if cfg.NativeIntAlias == "" {
		return c
	}
	width := cfg.NativeIntWidth
	if width == 0 {
		width = 64
	}
	c.AddAlias(&ast.TypeAliasDecl{
		DeclBase: ast.DeclBase{Name: cfg.NativeIntAlias},
		Target:   types.NewInt(width, cfg.NativeIntSigned),
	})
	return c
}
