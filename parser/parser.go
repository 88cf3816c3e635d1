/*
File    : trill/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package parser implements Trill's recursive-descent parser: a top-level
// declaration dispatcher plus an operator-precedence expression climber
// (spec §4.2), generalized from the teacher's parser package. The teacher
// threads precedence through getPrecedence(tok)+1 recursion and collects
// errors on a bare []string; Trill keeps the same recursive-descent shape
// but drives precedence off the fixed table in spec §4.2 and reports
// through a *diag.Engine so duplicate/ordered diagnostics work the same
// way across every compiler phase.
package parser

import (
	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/diag"
	"github.com/akashmaji946/trill/lexer"
	"github.com/akashmaji946/trill/source"
	"github.com/akashmaji946/trill/token"
)

// Parser turns one source.File's token stream into an ast.File. It is not
// safe for concurrent use; create one per file.
type Parser struct {
	file  *source.File
	toks  []token.Token
	pos   int
	diags *diag.Engine
}

// New lexes f in full and returns a Parser positioned at its first token.
func New(f *source.File, diags *diag.Engine) *Parser {
	lx := lexer.New(f)
	toks := lx.NextAll()
	for _, e := range lx.Errors {
		diags.Errorf("lex-error", e.Range.Start, "%s", e.Msg)
	}
	return &Parser{file: f, toks: toks, diags: diags}
}

// checkpoint is a saved cursor position for the backtracking primitive.
type checkpoint int

func (p *Parser) save() checkpoint { return checkpoint(p.pos) }
func (p *Parser) restore(c checkpoint) { p.pos = int(c) }

// attempt runs fn from the current position; if fn reports failure the
// cursor is restored, so speculative productions (generic argument lists,
// ambiguous paren forms) can probe the grammar without side effects on
// failure (spec §4.2 "the parser backtracks to the checkpoint").
func attempt[T any](p *Parser, fn func() (T, bool)) (T, bool) {
	c := p.save()
	savedToks := p.toks
	realDiags := p.diags
	p.diags = diag.NewEngine()
	v, ok := fn()
	scratch := p.diags
	p.diags = realDiags
	if !ok {
		p.restore(c)
		p.toks = savedToks
		return v, ok
	}
	for _, d := range scratch.All() {
		realDiags.Report(d)
	}
	return v, ok
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.eofToken()
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.eofToken()
	}
	return p.toks[i]
}

func (p *Parser) eofToken() token.Token {
	loc := source.Location{File: p.file}
	if n := len(p.toks); n > 0 {
		loc = p.toks[n-1].Range.End
	}
	return token.Token{Kind: token.EOF, Range: source.Range{Start: loc, End: loc}}
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) atKind(k token.Kind) bool          { return p.cur().Kind == k }
func (p *Parser) at(k token.Kind, text string) bool { return p.cur().Is(k, text) }

// skipSeparators consumes zero or more NEWLINE/SEMI tokens — multiple
// consecutive separators are tolerated everywhere (spec §4.2).
func (p *Parser) skipSeparators() {
	for p.cur().IsSeparator() {
		p.advance()
	}
}

// expectSeparator requires exactly one statement-terminating NEWLINE/SEMI
// (or EOF/'}'), then swallows any further ones, enforcing spec §4.2's
// "exactly one separator required between statements" rule while still
// tolerating blank lines.
func (p *Parser) expectSeparator() {
	if p.cur().IsSeparator() {
		p.skipSeparators()
		return
	}
	if p.atKind(token.EOF) || p.at(token.PUNCT, "}") {
		return
	}
	p.errorf("parse-error", p.cur().Range.Start, "expected statement separator, got %q", p.cur().Text)
}

func (p *Parser) errorf(kind diag.Kind, loc source.Location, format string, a ...interface{}) {
	p.diags.Errorf(kind, loc, format, a...)
}

// expect consumes the current token if it matches (kind, text), reporting
// a diagnostic and returning a zero token otherwise. The parser does not
// panic on mismatch; it reports and keeps going so later errors in the
// same file are still surfaced (spec §5 "collect, don't abort").
func (p *Parser) expect(k token.Kind, text string) (token.Token, bool) {
	if p.at(k, text) {
		return p.advance(), true
	}
	p.errorf("parse-error", p.cur().Range.Start, "expected %q, got %q", text, p.cur().Text)
	return token.Token{}, false
}

func (p *Parser) expectKind(k token.Kind, what string) (token.Token, bool) {
	if p.atKind(k) {
		return p.advance(), true
	}
	p.errorf("parse-error", p.cur().Range.Start, "expected %s, got %q", what, p.cur().Text)
	return token.Token{}, false
}

// ParseFile parses the entire token stream into an ast.File: a sequence of
// top-level declarations and #warning/#error directives (spec §4.2 grammar
// `top := (pound-diag | func | type | ext | proto | var-decl)*`).
func ParseFile(f *source.File, diags *diag.Engine) *ast.File {
	p := New(f, diags)
	out := &ast.File{Source: f}
	p.skipSeparators()
	for !p.atKind(token.EOF) {
		item, ok := p.parseTopLevelItem()
		if !ok {
			p.advance() // avoid an infinite loop on an unrecognized token
			continue
		}
		out.Items = append(out.Items, item)
		p.skipSeparators()
	}
	return out
}

func (p *Parser) parseTopLevelItem() (ast.TopLevelItem, bool) {
	if p.atKind(token.DIRECTIVE) && (p.at(token.DIRECTIVE, "#warning") || p.at(token.DIRECTIVE, "#error")) {
		d := p.parsePoundDiagnostic()
		return ast.TopLevelItem{Diagnostic: d}, true
	}
	d, ok := p.parseTopLevelDecl()
	if !ok {
		return ast.TopLevelItem{}, false
	}
	return ast.TopLevelItem{Decl: d}, true
}

func (p *Parser) parsePoundDiagnostic() *ast.PoundDiagnosticStmt {
	tok := p.advance()
	msg := ""
	if p.atKind(token.STRING_LIT) {
		msg = p.cur().StringValue
		p.advance()
	}
	return &ast.PoundDiagnosticStmt{
		StmtBase: ast.StmtBase{SrcRange: tok.Range},
		IsError:  tok.Text == "#error",
		Message:  msg,
	}
}

func (p *Parser) parseTopLevelDecl() (ast.Decl, bool) {
	switch {
	case p.at(token.KEYWORD, "func"):
		return p.parseFunctionDecl(nil, ast.ModifierSet{})
	case p.at(token.KEYWORD, "type"):
		return p.parseTypeDecl()
	case p.at(token.KEYWORD, "protocol"):
		return p.parseProtocolDecl()
	case p.at(token.KEYWORD, "extension"):
		return p.parseExtensionDecl()
	case p.at(token.KEYWORD, "var") || p.at(token.KEYWORD, "let"):
		return p.parseVarDecl()
	case p.at(token.KEYWORD, "subscript"):
		return p.parseGlobalSubscript()
	case p.keywordAfterModifiers() == "type":
		return p.parseTypeDecl()
	case p.modifierAt() != "":
		return p.parseModifiedDecl()
	default:
		p.errorf("parse-error", p.cur().Range.Start, "unexpected token %q at top level", p.cur().Text)
		return nil, false
	}
}

// modifierAt returns the modifier keyword at the cursor, or "" if none.
func (p *Parser) modifierAt() ast.Modifier {
	if p.cur().Kind != token.KEYWORD {
		return ""
	}
	switch p.cur().Text {
	case "foreign", "static", "mutating", "indirect", "noreturn", "implicit":
		return ast.Modifier(p.cur().Text)
	}
	return ""
}

// keywordAfterModifiers looks past a run of leading modifier keywords at the
// cursor — without consuming anything — and returns the keyword that
// follows them, or "" if that position isn't a keyword at all. Shared by
// parseTopLevelDecl (to route `indirect type ...` to parseTypeDecl instead
// of the func/var-only parseModifiedDecl) and parseTypeMember (to validate
// a property's modifiers against the "property" row of the modifier
// matrix rather than "func").
func (p *Parser) keywordAfterModifiers() string {
	for i := 0; ; i++ {
		t := p.peekAt(i)
		if t.Kind != token.KEYWORD {
			return ""
		}
		switch t.Text {
		case "foreign", "static", "mutating", "indirect", "noreturn", "implicit":
			continue
		default:
			return t.Text
		}
	}
}

// parseModifiers consumes a run of modifier keywords and validates each
// against the target declaration kind via the modifier matrix (spec §4.2
// "modifier validation matrix").
func (p *Parser) parseModifiers(target string) ast.ModifierSet {
	mods := ast.ModifierSet{}
	for {
		m := p.modifierAt()
		if m == "" {
			break
		}
		tok := p.advance()
		if !modifierAllowed(m, target) {
			p.errorf("invalid-modifier", tok.Range.Start, "modifier %q is not valid on a %s", m, target)
			continue
		}
		mods[m] = true
	}
	return mods
}

// modifierAllowedTable is the modifier validation matrix: which modifiers
// may appear on which kind of declaration (spec §4.2).
var modifierAllowedTable = map[ast.Modifier]map[string]bool{
	ast.ModForeign:  {"func": true},
	ast.ModStatic:   {"func": true, "property": true},
	ast.ModMutating: {"func": true},
	ast.ModIndirect: {"type": true},
	ast.ModNoreturn: {"func": true},
	ast.ModImplicit: {"func": true, "var": true, "type": true},
}

func modifierAllowed(m ast.Modifier, target string) bool {
	return modifierAllowedTable[m][target]
}

// parseModifiedDecl parses a modifier-prefixed top-level `func` or
// `var`/`let` decl. A leading `indirect type` is routed to parseTypeDecl
// before this is ever called (see keywordAfterModifiers in
// parseTopLevelDecl), since parseTypeDecl consumes its own modifiers.
func (p *Parser) parseModifiedDecl() (ast.Decl, bool) {
	start := p.pos
	mods := p.parseModifiers("func")
	switch {
	case p.at(token.KEYWORD, "func"):
		return p.parseFunctionDecl(nil, mods)
	case p.at(token.KEYWORD, "var") || p.at(token.KEYWORD, "let"):
		p.pos = start
		mods = p.parseModifiers("var")
		return p.parseVarDeclWithModifiers(mods)
	default:
		p.errorf("parse-error", p.cur().Range.Start, "expected a declaration after modifiers")
		return nil, false
	}
}
