/*
File    : trill/sema/conformance.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package sema

import (
	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/types"
)

// MissingConformance walks protocol's inherited-protocol DAG (visited
// guards against a cycle) and returns the name of every requirement that
// td has no signature-matching implementation for (spec §4.5 "Conforms").
func (c *Context) MissingConformance(td *ast.TypeDecl, protocol string, visited map[string]bool) []string {
	if visited[protocol] {
		return nil
	}
	visited[protocol] = true
	p, ok := c.ProtocolDeclFor(protocol)
	if !ok {
		return []string{protocol}
	}
	var missing []string
	for _, req := range p.Requirements {
		if !c.satisfiesRequirement(td, req) {
			missing = append(missing, req.Name)
		}
	}
	for _, parent := range p.Inherits {
		if parent.Kind != types.Custom {
			continue
		}
		missing = append(missing, c.MissingConformance(td, parent.Name, visited)...)
	}
	return missing
}

func (c *Context) satisfiesRequirement(td *ast.TypeDecl, req *ast.FunctionDecl) bool {
	d, ok := td.Member(req.Name)
	if !ok {
		return false
	}
	fn, ok := d.(*ast.FunctionDecl)
	if !ok {
		return false
	}
	if len(fn.Params) != len(req.Params) {
		return false
	}
	for i := range fn.Params {
		if !types.Equal(c.CanonicalType(fn.Params[i].Type), c.CanonicalType(req.Params[i].Type)) {
			return false
		}
	}
	return types.Equal(c.CanonicalType(fn.ReturnType), c.CanonicalType(req.ReturnType))
}

// Conforms reports whether t structurally conforms to protocol, per the
// same rule MissingConformance checks (spec §4.5 "Conforms").
func (c *Context) Conforms(t *types.DataType, protocol string) bool {
	canon := c.CanonicalType(t)
	if canon.Kind == types.Any {
		return true
	}
	td, ok := c.TypeDeclFor(canon)
	if !ok {
		return false
	}
	return len(c.MissingConformance(td, protocol, map[string]bool{})) == 0
}
