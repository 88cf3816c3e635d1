/*
File    : trill/ast/unit.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package ast

import "github.com/akashmaji946/trill/source"

// TopLevelItem is one entry in a File's top-level sequence: the parser's
// `top` production admits declarations and #warning/#error directives
// interleaved (spec §4.2 grammar).
type TopLevelItem struct {
	Decl       Decl                 // non-nil for func/type/ext/protocol/var
	Diagnostic *PoundDiagnosticStmt // non-nil for a top-level #warning/#error
}

// File is the parsed form of one source.File: an ordered top-level item
// list. ASTContext registers each Decl into its global tables (spec §4.3)
// while leaving this slice untouched — registration reads File, it never
// mutates it.
type File struct {
	Source *source.File
	Items  []TopLevelItem
}
