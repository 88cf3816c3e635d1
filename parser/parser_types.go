/*
File    : trill/parser/parser_types.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"strings"

	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/token"
	"github.com/akashmaji946/trill/types"
)

// builtinType maps the primitive type-name spellings to their DataType,
// per spec §3's primitive kind set.
func builtinType(name string) (*types.DataType, bool) {
	switch name {
	case "Int":
		return types.NewInt(64, true), true
	case "Int8":
		return types.NewInt(8, true), true
	case "Int16":
		return types.NewInt(16, true), true
	case "Int32":
		return types.NewInt(32, true), true
	case "Int64":
		return types.NewInt(64, true), true
	case "UInt":
		return types.NewInt(64, false), true
	case "UInt8":
		return types.NewInt(8, false), true
	case "UInt16":
		return types.NewInt(16, false), true
	case "UInt32":
		return types.NewInt(32, false), true
	case "UInt64":
		return types.NewInt(64, false), true
	case "Float16":
		return types.NewFloat(types.Half), true
	case "Float":
		return types.NewFloat(types.Single), true
	case "Double":
		return types.NewFloat(types.Double), true
	case "Float80":
		return types.NewFloat(types.Extended80), true
	case "Bool":
		return types.BoolType, true
	case "Void":
		return types.VoidType, true
	case "Any":
		return types.AnyType, true
	}
	return nil, false
}

// parseType parses one syntactic type occurrence: a primitive or nominal
// name, `*T` pointer, `[N]T`/`[]T` array, `(T1, T2)` tuple, `(T1) -> T2`
// function type, or a generic instantiation `Name<T1, T2>`. Generic
// instantiations have no dedicated DataType variant (spec §3's variant set
// is closed); Trill folds the argument list into the Custom name, the same
// way the teacher's type names are plain strings with no structure beyond
// identity (see DESIGN.md).
func (p *Parser) parseType() *types.DataType {
	switch {
	case p.at(token.OPERATOR, "*"):
		p.advance()
		return types.NewPointer(p.parseType())

	case p.at(token.PUNCT, "["):
		p.advance()
		var length *int
		if p.atKind(token.INT_LIT) {
			n := int(p.cur().IntValue)
			length = &n
			p.advance()
		}
		p.expect(token.PUNCT, "]")
		return types.NewArray(p.parseType(), length)

	case p.at(token.PUNCT, "("):
		return p.parseTupleOrFunctionType()

	case p.atKind(token.IDENT):
		return p.parseNominalType()

	default:
		p.errorf("parse-error", p.cur().Range.Start, "expected a type, got %q", p.cur().Text)
		p.advance()
		return types.ErrorType
	}
}

func (p *Parser) parseNominalType() *types.DataType {
	name := p.advance().Text
	if p.atGenericOpen() {
		args, ok := attempt(p, p.tryParseGenericArgList)
		if ok {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = a.String()
			}
			name = name + "<" + strings.Join(parts, ", ") + ">"
		}
	}
	if bt, ok := builtinType(name); ok {
		return bt
	}
	return types.NewCustom(name)
}

// atGenericOpen reports whether the current token could begin a generic
// argument list: a '<'-leading operator immediately after a type name.
func (p *Parser) atGenericOpen() bool {
	t := p.cur()
	return t.Kind == token.OPERATOR && strings.HasPrefix(t.Text, "<")
}

// tryParseGenericArgList speculatively parses `<T1, T2, ...>`, splitting a
// trailing `>>`/`>=`-shaped token as needed to find the closing bracket
// (spec §4.2 "generic closing bracket disambiguation"). Returns false
// without consuming input (via attempt's restore) if the shape doesn't
// hold together as a generic argument list.
func (p *Parser) tryParseGenericArgList() ([]*types.DataType, bool) {
	if !p.consumeLeadingAngle() {
		return nil, false
	}
	var args []*types.DataType
	for {
		if p.atCloseAngle() {
			break
		}
		args = append(args, p.parseType())
		if p.at(token.PUNCT, ",") {
			p.advance()
			continue
		}
		break
	}
	if !p.consumeClosingAngle() {
		return nil, false
	}
	return args, true
}

// consumeLeadingAngle consumes a '<'-prefixed operator token, splitting
// off any remainder (e.g. "<=" -> "<" + "=") and reinserting it at the
// current position.
func (p *Parser) consumeLeadingAngle() bool {
	t := p.cur()
	if t.Kind != token.OPERATOR || !strings.HasPrefix(t.Text, "<") {
		return false
	}
	p.splitLeadingToken(1)
	p.advance()
	return true
}

func (p *Parser) atCloseAngle() bool {
	t := p.cur()
	return t.Kind == token.OPERATOR && strings.HasPrefix(t.Text, ">")
}

// consumeClosingAngle consumes a '>'-prefixed operator token, splitting
// off any remainder (the classic `Map<K, Array<Int>>` trailing ">>" case)
// and reinserting the remainder token at the current index so the caller
// resumes parsing right after the bracket.
func (p *Parser) consumeClosingAngle() bool {
	if !p.atCloseAngle() {
		return false
	}
	p.splitLeadingToken(1)
	p.advance()
	return true
}

// splitLeadingToken splits the current operator token into its first n
// bytes and the remainder, rewriting the current slot and inserting the
// remainder immediately after it (a no-op if the token is exactly n bytes
// long already). This is the mechanism spec §4.2 calls "the remainder
// re-enters the stream at the current index".
func (p *Parser) splitLeadingToken(n int) {
	t := p.toks[p.pos]
	if len(t.Text) <= n {
		return
	}
	first := t.Text[:n]
	rest := t.Text[n:]
	mid := t.Range.Start
	mid.Offset += n
	mid.Column += n
	head := t
	head.Text = first
	head.Range.End = mid
	tail := t
	tail.Text = rest
	tail.Range.Start = mid
	rebuilt := make([]token.Token, 0, len(p.toks)+1)
	rebuilt = append(rebuilt, p.toks[:p.pos]...)
	rebuilt = append(rebuilt, head, tail)
	rebuilt = append(rebuilt, p.toks[p.pos+1:]...)
	p.toks = rebuilt
}

// parseTupleOrFunctionType parses `(T1, T2)`, optionally followed by
// `-> T3`, producing a Function DataType; without the arrow, a single
// element type is unwrapped and a multi-element list becomes a Tuple.
func (p *Parser) parseTupleOrFunctionType() *types.DataType {
	p.advance() // '('
	var elems []*types.DataType
	varargs := false
	for !p.at(token.PUNCT, ")") && !p.atKind(token.EOF) {
		if p.at(token.OPERATOR, "...") {
			p.advance()
			varargs = true
			break
		}
		elems = append(elems, p.parseType())
		if p.at(token.PUNCT, ",") {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.PUNCT, ")")

	if p.at(token.OPERATOR, "->") {
		p.advance()
		result := p.parseType()
		return types.NewFunction(elems, result, varargs)
	}
	switch len(elems) {
	case 0:
		return types.VoidType
	case 1:
		return elems[0]
	default:
		return types.NewTuple(elems)
	}
}

// parseGenericParamList parses `<T: P1, U>` generic parameter
// declarations, including optional protocol-conformance bounds.
func (p *Parser) parseGenericParamList() []*ast.GenericParamDecl {
	if !p.atGenericOpen() {
		return nil
	}
	p.consumeLeadingAngle()
	var params []*ast.GenericParamDecl
	for !p.atCloseAngle() && !p.atKind(token.EOF) {
		nameTok, _ := p.expectKind(token.IDENT, "generic parameter name")
		gp := &ast.GenericParamDecl{DeclBase: ast.DeclBase{SrcRange: nameTok.Range, Name: nameTok.Text}}
		if p.at(token.PUNCT, ":") {
			p.advance()
			gp.Constraints = append(gp.Constraints, p.parseType())
			for p.at(token.OPERATOR, "&") {
				p.advance()
				gp.Constraints = append(gp.Constraints, p.parseType())
			}
		}
		params = append(params, gp)
		if p.at(token.PUNCT, ",") {
			p.advance()
			continue
		}
		break
	}
	p.consumeClosingAngle()
	return params
}
