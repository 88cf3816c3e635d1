/*
File    : trill/printer/printer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package printer renders a parsed *ast.File back into Trill source text.
// Unlike the teacher's PrintingVisitor (main/print_visitor.go), which
// dumps a debug trace of the tree, this printer's job is to produce real,
// re-parseable Trill syntax: it backs the round-trip property (spec §8 —
// parse, print, re-parse, and the two trees must agree) and the -ast
// debug flag in cmd/trillc. The Indent-plus-bytes.Buffer accumulator
// shape and the one-method-per-node-kind organization are kept from the
// teacher; what each method writes is not.
package printer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/akashmaji946/trill/ast"
)

const indentSize = 2 // spaces per nesting level, matching spec.md's example source

// Printer accumulates printed Trill source into a buffer, tracking the
// current indentation depth the way PrintingVisitor tracks Indent.
type Printer struct {
	Indent int
	Buf    bytes.Buffer
}

// New returns a fresh Printer ready to print a File.
func New() *Printer { return &Printer{} }

// Print renders a whole file: its top-level items in source order,
// separated by blank lines the way a hand-written Trill file would be.
func Print(f *ast.File) string {
	p := New()
	p.file(f)
	return p.Buf.String()
}

// PrintExpr renders a single expression in isolation, used by diagnostics
// and by tests that only need one node's text.
func PrintExpr(e ast.Expr) string {
	p := New()
	return p.expr(e)
}

func (p *Printer) writeIndent() {
	p.Buf.WriteString(strings.Repeat(" ", p.Indent))
}

func (p *Printer) file(f *ast.File) {
	for i, item := range f.Items {
		if i > 0 {
			p.Buf.WriteString("\n")
		}
		if item.Diagnostic != nil {
			p.writeIndent()
			p.poundDiagnostic(item.Diagnostic)
			p.Buf.WriteString("\n")
			continue
		}
		p.decl(item.Decl)
		p.Buf.WriteString("\n")
	}
}

// ---------------------------------------------------------------- decls --

func (p *Printer) decl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.FunctionDecl:
		p.function(n)
	case *ast.TypeDecl:
		p.typeDecl(n)
	case *ast.TypeAliasDecl:
		p.writeIndent()
		fmt.Fprintf(&p.Buf, "type %s = %s", n.Name, n.Target.String())
	case *ast.ProtocolDecl:
		p.protocol(n)
	case *ast.ExtensionDecl:
		p.extension(n)
	case *ast.VarDecl:
		p.writeIndent()
		p.varDecl(n)
	default:
		p.writeIndent()
		fmt.Fprintf(&p.Buf, "/* unprintable decl %T */", d)
	}
}

var modifierOrder = []ast.Modifier{
	ast.ModForeign, ast.ModStatic, ast.ModMutating,
	ast.ModIndirect, ast.ModNoreturn, ast.ModImplicit,
}

func modifierPrefix(mods ast.ModifierSet) string {
	var parts []string
	for _, m := range modifierOrder {
		if mods.Has(m) {
			parts = append(parts, string(m))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}

func genericParamList(gps []*ast.GenericParamDecl) string {
	if len(gps) == 0 {
		return ""
	}
	parts := make([]string, len(gps))
	for i, gp := range gps {
		if len(gp.Constraints) == 0 {
			parts[i] = gp.Name
			continue
		}
		cs := make([]string, len(gp.Constraints))
		for j, c := range gp.Constraints {
			cs[j] = c.String()
		}
		parts[i] = gp.Name + ": " + strings.Join(cs, " & ")
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func paramList(params []*ast.ParamDecl) string {
	parts := make([]string, len(params))
	for i, pd := range params {
		var prefix string
		switch {
		case pd.ExternalLabel == "":
			prefix = "_ " + pd.Name
		case pd.ExternalLabel == pd.Name:
			prefix = pd.Name
		default:
			prefix = pd.ExternalLabel + " " + pd.Name
		}
		text := prefix + ": " + pd.Type.String()
		if pd.IsVararg {
			text += "..."
		}
		if pd.DefaultValue != nil {
			text += " = " + PrintExpr(pd.DefaultValue)
		}
		parts[i] = text
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *Printer) function(fn *ast.FunctionDecl) {
	p.writeIndent()
	p.Buf.WriteString(modifierPrefix(fn.Modifiers))
	switch fn.Kind {
	case ast.FuncInitializer:
		p.Buf.WriteString("init")
		p.Buf.WriteString(paramList(fn.Params))
	case ast.FuncDeinitializer:
		p.Buf.WriteString("deinit")
	case ast.FuncSubscript:
		p.Buf.WriteString("subscript")
		p.Buf.WriteString(paramList(fn.Params))
	case ast.FuncOperator:
		p.Buf.WriteString("func ")
		p.Buf.WriteString(fn.OperatorToken)
		p.Buf.WriteString(genericParamList(fn.GenericParams))
		p.Buf.WriteString(paramList(fn.Params))
	default:
		p.Buf.WriteString("func ")
		p.Buf.WriteString(fn.Name)
		p.Buf.WriteString(genericParamList(fn.GenericParams))
		p.Buf.WriteString(paramList(fn.Params))
	}
	if fn.ReturnType != nil && fn.ReturnType.String() != "Void" {
		fmt.Fprintf(&p.Buf, " -> %s", fn.ReturnType.String())
	}
	if fn.Body == nil {
		return
	}
	p.Buf.WriteString(" ")
	p.block(fn.Body)
}

func (p *Printer) typeDecl(td *ast.TypeDecl) {
	p.writeIndent()
	p.Buf.WriteString(modifierPrefix(td.Modifiers))
	fmt.Fprintf(&p.Buf, "type %s%s", td.Name, genericParamList(td.GenericParams))
	if len(td.Conformances) > 0 {
		parts := make([]string, len(td.Conformances))
		for i, c := range td.Conformances {
			parts[i] = c.String()
		}
		p.Buf.WriteString(": " + strings.Join(parts, ", "))
	}
	p.Buf.WriteString(" {\n")
	p.Indent += indentSize
	for _, prop := range td.Properties {
		p.writeIndent()
		p.property(prop)
		p.Buf.WriteString("\n")
	}
	for _, init := range td.Initializers {
		p.function(init)
		p.Buf.WriteString("\n")
	}
	if td.Deinitializer != nil {
		p.function(td.Deinitializer)
		p.Buf.WriteString("\n")
	}
	for _, sub := range td.Subscripts {
		p.function(sub)
		p.Buf.WriteString("\n")
	}
	for _, m := range td.Methods {
		p.function(m)
		p.Buf.WriteString("\n")
	}
	p.Indent -= indentSize
	p.writeIndent()
	p.Buf.WriteString("}")
}

func (p *Printer) property(pd *ast.PropertyDecl) {
	p.Buf.WriteString(modifierPrefix(pd.Modifiers))
	kw := "var"
	if pd.Kind == ast.VarImmutable {
		kw = "let"
	}
	p.Buf.WriteString(kw + " " + pd.Name)
	if pd.Type != nil {
		p.Buf.WriteString(": " + pd.Type.String())
	}
	if !pd.IsComputed() {
		if pd.Init != nil {
			p.Buf.WriteString(" = " + PrintExpr(pd.Init))
		}
		return
	}
	p.Buf.WriteString(" { ")
	p.Buf.WriteString("get ")
	p.Buf.WriteString(p.blockString(pd.Getter.Body))
	if pd.Setter != nil {
		p.Buf.WriteString(" set ")
		p.Buf.WriteString(p.blockString(pd.Setter.Body))
	}
	p.Buf.WriteString(" }")
}

func (p *Printer) protocol(pr *ast.ProtocolDecl) {
	p.writeIndent()
	fmt.Fprintf(&p.Buf, "protocol %s", pr.Name)
	if len(pr.Inherits) > 0 {
		parts := make([]string, len(pr.Inherits))
		for i, c := range pr.Inherits {
			parts[i] = c.String()
		}
		p.Buf.WriteString(": " + strings.Join(parts, ", "))
	}
	p.Buf.WriteString(" {\n")
	p.Indent += indentSize
	for _, req := range pr.Requirements {
		p.writeIndent()
		fmt.Fprintf(&p.Buf, "func %s%s", req.Name, paramList(req.Params))
		if req.ReturnType != nil && req.ReturnType.String() != "Void" {
			fmt.Fprintf(&p.Buf, " -> %s", req.ReturnType.String())
		}
		p.Buf.WriteString("\n")
	}
	p.Indent -= indentSize
	p.writeIndent()
	p.Buf.WriteString("}")
}

func (p *Printer) extension(ext *ast.ExtensionDecl) {
	p.writeIndent()
	fmt.Fprintf(&p.Buf, "extension %s {\n", ext.TargetType.String())
	p.Indent += indentSize
	for _, m := range ext.Methods {
		p.function(m)
		p.Buf.WriteString("\n")
	}
	for _, s := range ext.Subscripts {
		p.function(s)
		p.Buf.WriteString("\n")
	}
	p.Indent -= indentSize
	p.writeIndent()
	p.Buf.WriteString("}")
}

func (p *Printer) varDecl(n *ast.VarDecl) {
	kw := "var"
	if n.Kind == ast.VarImmutable {
		kw = "let"
	}
	p.Buf.WriteString(kw + " " + n.Name)
	if n.Type != nil {
		p.Buf.WriteString(": " + n.Type.String())
	}
	if n.Init != nil {
		p.Buf.WriteString(" = " + p.expr(n.Init))
	}
}

// ---------------------------------------------------------------- stmts --

func (p *Printer) blockString(b *ast.BlockStmt) string {
	saved := p.Indent
	var tmp Printer
	tmp.Indent = saved
	tmp.block(b)
	return tmp.Buf.String()
}

func (p *Printer) block(b *ast.BlockStmt) {
	p.Buf.WriteString("{\n")
	p.Indent += indentSize
	for _, s := range b.Statements {
		p.writeIndent()
		p.stmt(s)
		p.Buf.WriteString("\n")
	}
	p.Indent -= indentSize
	p.writeIndent()
	p.Buf.WriteString("}")
}

func (p *Printer) poundDiagnostic(n *ast.PoundDiagnosticStmt) {
	kw := "#warning"
	if n.IsError {
		kw = "#error"
	}
	fmt.Fprintf(&p.Buf, "%s %q", kw, n.Message)
}

func (p *Printer) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		p.block(n)
	case *ast.IfStmt:
		p.ifStmt(n)
	case *ast.WhileStmt:
		p.Buf.WriteString("while " + p.expr(n.Cond) + " ")
		p.block(n.Body)
	case *ast.ForStmt:
		p.forStmt(n)
	case *ast.SwitchStmt:
		p.switchStmt(n)
	case *ast.BreakStmt:
		p.Buf.WriteString("break")
	case *ast.ContinueStmt:
		p.Buf.WriteString("continue")
	case *ast.ReturnStmt:
		if n.Value == nil {
			p.Buf.WriteString("return")
		} else {
			p.Buf.WriteString("return " + p.expr(n.Value))
		}
	case *ast.AssignStmt:
		p.Buf.WriteString(p.expr(n.LHS) + " " + n.Op.Text + " " + p.expr(n.RHS))
	case *ast.ExprStmt:
		p.Buf.WriteString(p.expr(n.X))
	case *ast.DeclStmt:
		p.declStmt(n)
	case *ast.PoundDiagnosticStmt:
		p.poundDiagnostic(n)
	default:
		fmt.Fprintf(&p.Buf, "/* unprintable stmt %T */", s)
	}
}

func (p *Printer) declStmt(n *ast.DeclStmt) {
	switch d := n.D.(type) {
	case *ast.VarDecl:
		p.varDecl(d)
	default:
		fmt.Fprintf(&p.Buf, "/* unprintable local decl %T */", d)
	}
}

func (p *Printer) ifStmt(n *ast.IfStmt) {
	p.Buf.WriteString("if " + p.expr(n.Cond) + " ")
	p.block(n.Then)
	if n.Else == nil {
		return
	}
	p.Buf.WriteString(" else ")
	switch e := n.Else.(type) {
	case *ast.IfStmt:
		p.ifStmt(e)
	case *ast.BlockStmt:
		p.block(e)
	default:
		fmt.Fprintf(&p.Buf, "/* unprintable else %T */", e)
	}
}

func (p *Printer) forStmt(n *ast.ForStmt) {
	p.Buf.WriteString("for ")
	if n.Init != nil {
		p.stmt(n.Init)
	}
	p.Buf.WriteString("; ")
	if n.Cond != nil {
		p.Buf.WriteString(p.expr(n.Cond))
	}
	p.Buf.WriteString("; ")
	if n.Post != nil {
		p.stmt(n.Post)
	}
	p.Buf.WriteString(" ")
	p.block(n.Body)
}

func (p *Printer) switchStmt(n *ast.SwitchStmt) {
	p.Buf.WriteString("switch " + p.expr(n.Subject) + " {\n")
	p.Indent += indentSize
	for _, c := range n.Cases {
		p.writeIndent()
		if c.IsDefault {
			p.Buf.WriteString("default:\n")
		} else {
			parts := make([]string, len(c.Values))
			for i, v := range c.Values {
				parts[i] = p.expr(v)
			}
			p.Buf.WriteString("case " + strings.Join(parts, ", ") + ":\n")
		}
		p.Indent += indentSize
		for _, st := range c.Body.Statements {
			p.writeIndent()
			p.stmt(st)
			p.Buf.WriteString("\n")
		}
		p.Indent -= indentSize
	}
	p.Indent -= indentSize
	p.writeIndent()
	p.Buf.WriteString("}")
}

// ---------------------------------------------------------------- exprs --

// needsParen reports whether e must be wrapped in parens when printed as
// an operand of another expression, so that re-parsing never binds it
// differently than the original tree did. Atoms (literals, references,
// calls, subscripts, tuples, arrays, existing parens) never need it.
func needsParen(e ast.Expr) bool {
	switch e.(type) {
	case *ast.InfixExpr, *ast.PrefixExpr, *ast.TernaryExpr,
		*ast.CoercionExpr, *ast.IsExpr, *ast.ClosureExpr:
		return true
	default:
		return false
	}
}

func (p *Printer) operand(e ast.Expr) string {
	if needsParen(e) {
		return "(" + p.expr(e) + ")"
	}
	return p.expr(e)
}

func (p *Printer) expr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.IntLiteralExpr:
		return n.Tok.Text
	case *ast.FloatLiteralExpr:
		return n.Tok.Text
	case *ast.CharLiteralExpr:
		return "'" + n.Value + "'"
	case *ast.BoolLiteralExpr:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.StringLiteralExpr:
		return fmt.Sprintf("%q", n.Value)
	case *ast.StringInterpolationExpr:
		return p.stringInterp(n)
	case *ast.NilLiteralExpr:
		return "nil"
	case *ast.VoidLiteralExpr:
		return "()"
	case *ast.DirectiveLiteralExpr:
		return directiveText(n.Kind)
	case *ast.VariableRefExpr:
		return n.Name
	case *ast.PropertyRefExpr:
		return p.operand(n.Base) + "." + n.Name
	case *ast.TupleExpr:
		return p.tupleExpr(n)
	case *ast.ArrayExpr:
		return p.arrayExpr(n)
	case *ast.TupleFieldExpr:
		return fmt.Sprintf("%s.%d", p.operand(n.Base), n.Index)
	case *ast.ParenExpr:
		return "(" + p.expr(n.Inner) + ")"
	case *ast.SubscriptExpr:
		return fmt.Sprintf("%s[%s]", p.operand(n.Base), p.expr(n.Index))
	case *ast.CallExpr:
		return p.callExpr(n)
	case *ast.ClosureExpr:
		return p.closureExpr(n)
	case *ast.PrefixExpr:
		return n.Op.Text + p.operand(n.Operand)
	case *ast.InfixExpr:
		return p.operand(n.Left) + " " + n.Op.Text + " " + p.operand(n.Right)
	case *ast.TernaryExpr:
		return p.operand(n.Cond) + " ? " + p.operand(n.Then) + " : " + p.operand(n.Else)
	case *ast.CoercionExpr:
		return p.operand(n.Value) + " as " + n.TargetType.String()
	case *ast.IsExpr:
		return p.operand(n.Value) + " is " + n.TargetType.String()
	case *ast.SizeofExpr:
		return "sizeof(" + n.TargetType.String() + ")"
	default:
		return fmt.Sprintf("/* unprintable expr %T */", e)
	}
}

func directiveText(k ast.DirectiveKind) string {
	switch k {
	case ast.DirectiveFile:
		return "#file"
	case ast.DirectiveLine:
		return "#line"
	case ast.DirectiveFunction:
		return "#function"
	default:
		return "#file"
	}
}

func (p *Printer) stringInterp(n *ast.StringInterpolationExpr) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, seg := range n.Segments {
		if seg.Expr == nil {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString("\\(")
		b.WriteString(p.expr(seg.Expr))
		b.WriteString(")")
	}
	b.WriteByte('"')
	return b.String()
}

func (p *Printer) tupleExpr(n *ast.TupleExpr) string {
	parts := make([]string, len(n.Elements))
	for i, el := range n.Elements {
		text := p.expr(el)
		if i < len(n.Labels) && n.Labels[i] != "" {
			text = n.Labels[i] + ": " + text
		}
		parts[i] = text
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *Printer) arrayExpr(n *ast.ArrayExpr) string {
	parts := make([]string, len(n.Elements))
	for i, el := range n.Elements {
		parts[i] = p.expr(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (p *Printer) callExpr(n *ast.CallExpr) string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		text := p.expr(a.Value)
		if a.Label != "" {
			text = a.Label + ": " + text
		}
		parts[i] = text
	}
	return p.operand(n.Callee) + "(" + strings.Join(parts, ", ") + ")"
}

func (p *Printer) closureExpr(n *ast.ClosureExpr) string {
	var b strings.Builder
	b.WriteString("{ ")
	if len(n.Params) > 0 || n.ReturnType != nil {
		b.WriteString(paramList(n.Params))
		if n.ReturnType != nil {
			b.WriteString(" -> " + n.ReturnType.String())
		}
		b.WriteString(" in ")
	}
	parts := make([]string, len(n.Body.Statements))
	for i, st := range n.Body.Statements {
		parts[i] = p.stmtString(st)
	}
	b.WriteString(strings.Join(parts, "; "))
	b.WriteString(" }")
	return b.String()
}

// stmtString renders a single statement in isolation, for contexts (like
// a closure's inline body) that need statement text without a
// surrounding block's own braces/indentation.
func (p *Printer) stmtString(s ast.Stmt) string {
	var tmp Printer
	tmp.Indent = p.Indent
	tmp.stmt(s)
	return tmp.Buf.String()
}
