/*
File    : trill/parser/parser_decl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/source"
	"github.com/akashmaji946/trill/token"
	"github.com/akashmaji946/trill/types"
)

// operatorNameChars is the set of operator spellings a `func` declaration
// may use as its name to declare an operator overload (spec §4.6).
var operatorNameChars = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"&&": true, "||": true, "&": true, "|": true, "^": true,
	"<<": true, ">>": true, "!": true, "~": true,
}

func (p *Parser) isOperatorNameToken() bool {
	return p.cur().Kind == token.OPERATOR && operatorNameChars[p.cur().Text]
}

// parseFunctionDecl parses `func name(...) -> T { ... }`, an operator
// overload `func +(...) -> T { ... }`, or (with owner non-nil) a method
// attached to a TypeDecl.
func (p *Parser) parseFunctionDecl(owner *ast.TypeDecl, mods ast.ModifierSet) (ast.Decl, bool) {
	start := p.advance() // 'func'
	for k, v := range p.parseModifiers("func") {
		mods[k] = v
	}

	kind := ast.FuncFree
	if owner != nil {
		kind = ast.FuncMethod
	}
	if mods.Has(ast.ModStatic) {
		kind = ast.FuncStatic
	}

	var name, opTok string
	if p.isOperatorNameToken() {
		t := p.advance()
		name, opTok = t.Text, t.Text
		kind = ast.FuncOperator
	} else {
		nameTok, ok := p.expectKind(token.IDENT, "function name")
		if !ok {
			return nil, false
		}
		name = nameTok.Text
	}

	generics := p.parseGenericParamList()
	params := p.parseParamList()
	ret := types.VoidType
	if p.at(token.OPERATOR, "->") {
		p.advance()
		ret = p.parseType()
	}
	var body *ast.BlockStmt
	if !mods.Has(ast.ModForeign) {
		body = p.parseBlock()
	}
	end := start.Range
	if body != nil {
		end = body.Range()
	} else if ret != nil {
		end = p.toks[p.pos-1].Range
	}
	return &ast.FunctionDecl{
		DeclBase:      ast.DeclBase{SrcRange: source.Join(start.Range, end), Name: name},
		Kind:          kind,
		OperatorToken: opTok,
		Modifiers:     mods,
		GenericParams: generics,
		Params:        params,
		ReturnType:    ret,
		Body:          body,
		Owner:         owner,
	}, true
}

// parseParamList parses a parenthesized parameter list, each parameter in
// `externalLabel internalName: Type`, `name: Type` (external defaults to
// the internal name), or `_ name: Type` (no external label) form (spec
// §4.6 "external label").
func (p *Parser) parseParamList() []*ast.ParamDecl {
	p.expect(token.PUNCT, "(")
	var params []*ast.ParamDecl
	for !p.at(token.PUNCT, ")") && !p.atKind(token.EOF) {
		params = append(params, p.parseParam())
		if p.at(token.PUNCT, ",") {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.PUNCT, ")")
	return params
}

func (p *Parser) parseParam() *ast.ParamDecl {
	startTok := p.cur()
	first := p.advance()
	noExternal := first.Kind == token.KEYWORD && first.Text == "_"
	external := first.Text
	nameTok := first
	if p.atKind(token.IDENT) {
		nameTok = p.advance()
	}
	if noExternal {
		external = ""
	}
	p.expect(token.PUNCT, ":")
	typ := p.parseType()
	vararg := false
	if p.at(token.OPERATOR, "...") {
		p.advance()
		vararg = true
	}
	var def ast.Expr
	if p.at(token.OPERATOR, "=") {
		p.advance()
		def = p.parseExpression()
	}
	return &ast.ParamDecl{
		DeclBase:      ast.DeclBase{SrcRange: source.Join(startTok.Range, p.toks[p.pos-1].Range), Name: nameTok.Text},
		ExternalLabel: external,
		Type:          typ,
		IsVararg:      vararg,
		DefaultValue:  def,
	}
}

// parseVarDecl parses a top-level or local `var name: Type = init` /
// `let name = init` binding with no leading modifiers.
func (p *Parser) parseVarDecl() (ast.Decl, bool) {
	return p.parseVarDeclWithModifiers(ast.ModifierSet{})
}

func (p *Parser) parseVarDeclWithModifiers(mods ast.ModifierSet) (ast.Decl, bool) {
	start := p.cur()
	kind := ast.VarMutable
	if start.Text == "let" {
		kind = ast.VarImmutable
	}
	p.advance()
	nameTok, ok := p.expectKind(token.IDENT, "variable name")
	if !ok {
		return nil, false
	}
	var typ *types.DataType
	if p.at(token.PUNCT, ":") {
		p.advance()
		typ = p.parseType()
	}
	var init ast.Expr
	if p.at(token.OPERATOR, "=") {
		p.advance()
		init = p.parseExpression()
	}
	end := nameTok.Range
	if init != nil {
		end = init.Range()
	}
	_ = mods // reserved for `implicit`/`static` on globals (spec §4.2 matrix)
	return &ast.VarDecl{
		DeclBase: ast.DeclBase{SrcRange: source.Join(start.Range, end), Name: nameTok.Text},
		Kind:     kind, Type: typ, Init: init,
	}, true
}

// parseTypeDecl parses `[indirect] type Name<G>: Conformance, ... { ... }`
// — a nominal type owning properties, methods, initializers, a
// deinitializer, and subscripts (spec §3 "TypeDecl"). Entered either with
// the cursor directly on `type`, or on a leading `indirect` (routed here
// by parseTopLevelDecl's keywordAfterModifiers lookahead), so its own
// modifiers are consumed here rather than by a caller.
func (p *Parser) parseTypeDecl() (ast.Decl, bool) {
	rangeStart := p.cur().Range
	mods := p.parseModifiers("type")
	if _, ok := p.expect(token.KEYWORD, "type"); !ok {
		return nil, false
	}
	nameTok, ok := p.expectKind(token.IDENT, "type name")
	if !ok {
		return nil, false
	}
	td := &ast.TypeDecl{DeclBase: ast.DeclBase{Name: nameTok.Text}, Modifiers: mods}
	td.GenericParams = p.parseGenericParamList()
	if p.at(token.PUNCT, ":") {
		p.advance()
		td.Conformances = append(td.Conformances, p.parseType())
		for p.at(token.PUNCT, ",") {
			p.advance()
			td.Conformances = append(td.Conformances, p.parseType())
		}
	}
	// a bare `type Name = Target` alias, distinguished from the brace form.
	if p.at(token.OPERATOR, "=") {
		p.advance()
		target := p.parseType()
		return &ast.TypeAliasDecl{
			DeclBase: ast.DeclBase{SrcRange: source.Join(rangeStart, p.toks[p.pos-1].Range), Name: nameTok.Text},
			Target:   target,
		}, true
	}
	p.expect(token.PUNCT, "{")
	p.skipSeparators()
	for !p.at(token.PUNCT, "}") && !p.atKind(token.EOF) {
		p.parseTypeMember(td)
		p.skipSeparators()
	}
	end, _ := p.expect(token.PUNCT, "}")
	td.SrcRange = source.Join(rangeStart, end.Range)
	td.RebuildMemberTable()
	return td, true
}

// parseTypeMember parses one property/method/initializer/deinitializer/
// subscript inside a type or extension body and attaches it to owner.
func (p *Parser) parseTypeMember(owner *ast.TypeDecl) {
	target := "func"
	if kw := p.keywordAfterModifiers(); kw == "var" || kw == "let" {
		target = "property"
	}
	mods := p.parseModifiers(target)
	switch {
	case p.at(token.KEYWORD, "var") || p.at(token.KEYWORD, "let"):
		owner.Properties = append(owner.Properties, p.parsePropertyDecl(mods))
	case p.at(token.KEYWORD, "func"):
		d, ok := p.parseFunctionDecl(owner, mods)
		if ok {
			owner.Methods = append(owner.Methods, d.(*ast.FunctionDecl))
		}
	case p.at(token.KEYWORD, "init"):
		owner.Initializers = append(owner.Initializers, p.parseSpecialMethod(owner, ast.FuncInitializer, mods))
	case p.at(token.KEYWORD, "deinit"):
		if owner.Deinitializer != nil {
			p.errorf("duplicate-deinit", p.cur().Range.Start, "type %q already has a deinitializer", owner.Name)
		}
		owner.Deinitializer = p.parseSpecialMethod(owner, ast.FuncDeinitializer, mods)
	case p.at(token.KEYWORD, "subscript"):
		owner.Subscripts = append(owner.Subscripts, p.parseSpecialMethod(owner, ast.FuncSubscript, mods))
	default:
		p.errorf("parse-error", p.cur().Range.Start, "unexpected token %q in type body", p.cur().Text)
		p.advance()
	}
}

// parseSpecialMethod parses `init(...) { ... }`, `deinit { ... }`, and
// `subscript(...) -> T { ... }` — the three member forms with a keyword
// in place of a name (spec §3 FunctionKind variants).
func (p *Parser) parseSpecialMethod(owner *ast.TypeDecl, kind ast.FunctionKind, mods ast.ModifierSet) *ast.FunctionDecl {
	start := p.advance() // 'init' / 'deinit' / 'subscript'
	var params []*ast.ParamDecl
	if kind != ast.FuncDeinitializer {
		params = p.parseParamList()
	}
	ret := types.VoidType
	if p.at(token.OPERATOR, "->") {
		p.advance()
		ret = p.parseType()
	}
	body := p.parseBlock()
	return &ast.FunctionDecl{
		DeclBase:   ast.DeclBase{SrcRange: source.Join(start.Range, body.Range()), Name: start.Text},
		Kind:       kind,
		Modifiers:  mods,
		Params:     params,
		ReturnType: ret,
		Body:       body,
		Owner:      owner,
	}
}

// parseGlobalSubscript consumes a `subscript(...) -> T { ... }` written at
// top level — valid only inside a type or extension body (spec §3) — and
// reports GlobalSubscript rather than falling through to the generic
// parse-error default case. It still parses the full construct so the
// cursor lands cleanly past it, and returns ok=true with a nil Decl so the
// caller neither re-registers a dangling top-level subscript nor skips an
// extra token while resyncing.
func (p *Parser) parseGlobalSubscript() (ast.Decl, bool) {
	loc := p.cur().Range.Start
	p.parseSpecialMethod(nil, ast.FuncSubscript, ast.ModifierSet{})
	p.errorf("GlobalSubscript", loc, "subscript declarations are only valid inside a type or extension body")
	return nil, true
}

// parsePropertyDecl parses a stored property (`var x: Int = 0`) or a
// computed property (`var x: Int { get { ... } set { ... } }`).
func (p *Parser) parsePropertyDecl(mods ast.ModifierSet) *ast.PropertyDecl {
	start := p.cur()
	kind := ast.VarMutable
	if start.Text == "let" {
		kind = ast.VarImmutable
	}
	p.advance()
	nameTok, _ := p.expectKind(token.IDENT, "property name")
	var typ *types.DataType
	if p.at(token.PUNCT, ":") {
		p.advance()
		typ = p.parseType()
	}
	pd := &ast.PropertyDecl{
		DeclBase:  ast.DeclBase{Name: nameTok.Text},
		Kind:      kind,
		Type:      typ,
		Modifiers: mods,
	}
	switch {
	case p.at(token.OPERATOR, "="):
		p.advance()
		pd.Init = p.parseExpression()
		pd.SrcRange = source.Join(start.Range, pd.Init.Range())
	case p.at(token.PUNCT, "{"):
		if pd.Type == nil {
			p.errorf("ComputedPropertyRequiresType", start.Range.Start, "computed property %q needs an explicit type", pd.Name)
		}
		p.parseAccessors(pd)
		pd.SrcRange = source.Join(start.Range, p.toks[p.pos-1].Range)
	default:
		pd.SrcRange = source.Join(start.Range, nameTok.Range)
	}
	return pd
}

// parseAccessors parses the `{ get { ... } set { ... } }` body of a
// computed property.
func (p *Parser) parseAccessors(pd *ast.PropertyDecl) {
	p.advance() // '{'
	p.skipSeparators()
	for !p.at(token.PUNCT, "}") && !p.atKind(token.EOF) {
		switch {
		case p.atKind(token.IDENT) && p.cur().Text == "get":
			if pd.Getter != nil {
				p.errorf("duplicate-accessor", p.cur().Range.Start, "property %q already has a getter", pd.Name)
			}
			kwTok := p.advance()
			body := p.parseBlock()
			pd.Getter = &ast.FunctionDecl{
				DeclBase:   ast.DeclBase{SrcRange: source.Join(kwTok.Range, body.Range()), Name: "get"},
				Kind:       ast.FuncMethod,
				ReturnType: pd.Type,
				Body:       body,
			}
		case p.atKind(token.IDENT) && p.cur().Text == "set":
			if pd.Setter != nil {
				p.errorf("duplicate-accessor", p.cur().Range.Start, "property %q already has a setter", pd.Name)
			}
			if pd.Kind == ast.VarImmutable {
				p.errorf("ComputedPropertyMustBeMutable", p.cur().Range.Start, "property %q is declared with 'let' and cannot have a setter", pd.Name)
			}
			kwTok := p.advance()
			body := p.parseBlock()
			pd.Setter = &ast.FunctionDecl{
				DeclBase: ast.DeclBase{SrcRange: source.Join(kwTok.Range, body.Range()), Name: "set"},
				Kind:     ast.FuncMethod,
				Body:     body,
			}
		default:
			p.errorf("parse-error", p.cur().Range.Start, "expected get/set, got %q", p.cur().Text)
			p.advance()
		}
		p.skipSeparators()
	}
	p.expect(token.PUNCT, "}")
}

// parseProtocolDecl parses `protocol P: Q, R { func f() -> Int }`: a set
// of requirement signatures with no bodies (spec §3 "ProtocolDecl").
func (p *Parser) parseProtocolDecl() (ast.Decl, bool) {
	start := p.advance() // 'protocol'
	nameTok, ok := p.expectKind(token.IDENT, "protocol name")
	if !ok {
		return nil, false
	}
	proto := &ast.ProtocolDecl{DeclBase: ast.DeclBase{Name: nameTok.Text}}
	if p.at(token.PUNCT, ":") {
		p.advance()
		proto.Inherits = append(proto.Inherits, p.parseType())
		for p.at(token.PUNCT, ",") {
			p.advance()
			proto.Inherits = append(proto.Inherits, p.parseType())
		}
	}
	p.expect(token.PUNCT, "{")
	p.skipSeparators()
	for !p.at(token.PUNCT, "}") && !p.atKind(token.EOF) {
		req := p.parseProtocolRequirement()
		if req != nil {
			proto.Requirements = append(proto.Requirements, req)
		}
		p.skipSeparators()
	}
	end, _ := p.expect(token.PUNCT, "}")
	proto.SrcRange = source.Join(start.Range, end.Range)
	return proto, true
}

func (p *Parser) parseProtocolRequirement() *ast.FunctionDecl {
	if !p.at(token.KEYWORD, "func") {
		p.errorf("parse-error", p.cur().Range.Start, "expected a func requirement, got %q", p.cur().Text)
		p.advance()
		return nil
	}
	start := p.advance() // 'func'
	nameTok, _ := p.expectKind(token.IDENT, "requirement name")
	generics := p.parseGenericParamList()
	params := p.parseParamList()
	ret := types.VoidType
	if p.at(token.OPERATOR, "->") {
		p.advance()
		ret = p.parseType()
	}
	return &ast.FunctionDecl{
		DeclBase:      ast.DeclBase{SrcRange: source.Join(start.Range, p.toks[p.pos-1].Range), Name: nameTok.Text},
		Kind:          ast.FuncMethod,
		GenericParams: generics,
		Params:        params,
		ReturnType:    ret,
	}
}

// parseExtensionDecl parses `extension T { ... }`: methods and subscripts
// attached to an existing type without owning it (spec §3 "ExtensionDecl").
func (p *Parser) parseExtensionDecl() (ast.Decl, bool) {
	start := p.advance() // 'extension'
	target := p.parseType()
	ext := &ast.ExtensionDecl{DeclBase: ast.DeclBase{Name: target.String()}, TargetType: target}
	p.expect(token.PUNCT, "{")
	p.skipSeparators()
	// Extension members reuse the TypeDecl member parser against a
	// throwaway TypeDecl, then the methods/subscripts are copied across —
	// extensions don't own properties/initializers (spec §3).
	shadow := &ast.TypeDecl{}
	for !p.at(token.PUNCT, "}") && !p.atKind(token.EOF) {
		p.parseTypeMember(shadow)
		p.skipSeparators()
	}
	ext.Methods = shadow.Methods
	ext.Subscripts = shadow.Subscripts
	end, _ := p.expect(token.PUNCT, "}")
	ext.SrcRange = source.Join(start.Range, end.Range)
	return ext, true
}
