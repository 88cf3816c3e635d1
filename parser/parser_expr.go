/*
File    : trill/parser/parser_expr.go
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

// precedenceOf returns the binding power of the current token as an infix
// operator, or 0 if it is not one. Values follow the fixed table in spec
// §4.2: shift highest, then muls, then adds, then comparisons, then &&,
// then ||, with assignment lowest — the teacher's getPrecedence(tok)
// returns an analogous int off a flat constant table; Trill's table is
// just the one spec §4.2 names instead of the teacher's.
func precedenceOf(t token.Token) int {
	if t.Kind == token.KEYWORD && (t.Text == "as" || t.Text == "is") {
		return 130
	}
	if t.Kind != token.OPERATOR {
		return 0
	}
	switch t.Text {
	case "<<", ">>":
		return 160
	case "*", "/", "%", "&":
		return 150
	case "+", "-", "^", "|":
		return 140
	case "==", "!=", "<", "<=", ">", ">=":
		return 130
	case "&&":
		return 120
	case "||":
		return 110
	}
	if isAssignOp(t) {
		return 90
	}
	return 0
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
}

func isAssignOp(t token.Token) bool { return t.Kind == token.OPERATOR && assignOps[t.Text] }

// parseExpression is the single expression entry point: assignment (lowest)
// wrapping ternary wrapping the binary precedence climb wrapping unary
// wrapping postfix wrapping primary.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseTernary()
	if isAssignOp(p.cur()) {
		op := p.advance()
		right := p.parseAssignment() // right-associative
		return &ast.InfixExpr{
			ExprBase: ast.NewExprBase(source.Join(left.Range(), right.Range())),
			Op:       op, Left: left, Right: right,
		}
	}
	return left
}

func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseBinary(110)
	if p.at(token.PUNCT, "?") {
		p.advance()
		then := p.parseAssignment()
		p.expect(token.PUNCT, ":")
		els := p.parseAssignment()
		return &ast.TernaryExpr{
			ExprBase: ast.NewExprBase(source.Join(cond.Range(), els.Range())),
			Cond:     cond, Then: then, Else: els,
		}
	}
	return cond
}

// parseBinary is the precedence-climbing core (spec §4.2), generalized
// from the teacher's parseBinaryExpression: fold left while the next
// operator's precedence is at least minPrec, recursing at prec+1 for
// left-associative operators. `as`/`is` are folded in here too since they
// share the comparison precedence tier but take a syntactic type on the
// right instead of another expression.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		prec := precedenceOf(p.cur())
		if prec == 0 || prec < minPrec {
			return left
		}
		op := p.advance()
		if op.Kind == token.KEYWORD && op.Text == "as" {
			target := p.parseType()
			left = &ast.CoercionExpr{ExprBase: ast.NewExprBase(source.Join(left.Range(), p.toks[p.pos-1].Range)), Value: left, TargetType: target}
			continue
		}
		if op.Kind == token.KEYWORD && op.Text == "is" {
			target := p.parseType()
			left = &ast.IsExpr{ExprBase: ast.NewExprBase(source.Join(left.Range(), p.toks[p.pos-1].Range)), Value: left, TargetType: target}
			continue
		}
		right := p.parseBinary(prec + 1)
		left = &ast.InfixExpr{
			ExprBase: ast.NewExprBase(source.Join(left.Range(), right.Range())),
			Op:       op, Left: left, Right: right,
		}
	}
}

// prefixOps is the fixed unary-operator set, all parsed at precedence 999
// (spec §4.2: "unary ! ~ = 999, prefix-only"), extended with the address-of
// `&` and pointer-dereference `*` sigils the type grammar also uses.
var prefixOps = map[string]bool{"!": true, "~": true, "-": true, "&": true, "*": true}

func (p *Parser) parseUnary() ast.Expr {
	t := p.cur()
	if t.Kind == token.OPERATOR && prefixOps[t.Text] {
		op := p.advance()
		operand := p.parseUnary()
		return &ast.PrefixExpr{
			ExprBase: ast.NewExprBase(source.Join(op.Range, operand.Range())),
			Op:       op, Operand: operand,
		}
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix folds `.name`, `.N` tuple fields, `(args)` calls (including
// a speculative `<T>(` generic-call form), and `[index]` subscripts onto
// base, left to right.
func (p *Parser) parsePostfix(base ast.Expr) ast.Expr {
	for {
		switch {
		case p.at(token.PUNCT, "."):
			p.advance()
			base = p.parseMemberAccess(base)
		case p.at(token.PUNCT, "("):
			base = p.parseCall(base)
		case p.at(token.PUNCT, "["):
			base = p.parseSubscript(base)
		case p.atGenericOpen():
			// speculative generic call `f<Int>(...)`: only commit if a
			// '(' immediately follows the closing bracket, else this is
			// really `f < x` and the '<' belongs to parseBinary instead.
			save := p.save()
			savedToks := p.toks
			if _, ok := attempt(p, p.tryParseGenericArgList); ok && p.at(token.PUNCT, "(") {
				base = p.parseCall(base)
				continue
			}
			p.restore(save)
			p.toks = savedToks
			return base
		default:
			return base
		}
	}
}

func (p *Parser) parseMemberAccess(base ast.Expr) ast.Expr {
	if p.atKind(token.INT_LIT) {
		tok := p.advance()
		return &ast.TupleFieldExpr{
			ExprBase: ast.NewExprBase(source.Join(base.Range(), tok.Range)),
			Base:     base, Index: int(tok.IntValue),
		}
	}
	nameTok, _ := p.expectKind(token.IDENT, "member name")
	return &ast.PropertyRefExpr{
		ExprBase:  ast.NewExprBase(source.Join(base.Range(), nameTok.Range)),
		Base:      base, Name: nameTok.Text, NameRange: nameTok.Range,
	}
}

func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	p.advance() // '('
	var args []ast.CallArg
	for !p.at(token.PUNCT, ")") && !p.atKind(token.EOF) {
		args = append(args, p.parseCallArg())
		if p.at(token.PUNCT, ",") {
			p.advance()
			continue
		}
		break
	}
	closeTok, _ := p.expect(token.PUNCT, ")")
	return &ast.CallExpr{
		ExprBase: ast.NewExprBase(source.Join(callee.Range(), closeTok.Range)),
		Callee:   callee, Args: args,
	}
}

func (p *Parser) parseCallArg() ast.CallArg {
	if p.atKind(token.IDENT) && p.peekAt(1).Is(token.PUNCT, ":") {
		label := p.advance().Text
		p.advance() // ':'
		return ast.CallArg{Label: label, Value: p.parseExpression()}
	}
	return ast.CallArg{Value: p.parseExpression()}
}

func (p *Parser) parseSubscript(base ast.Expr) ast.Expr {
	p.advance() // '['
	idx := p.parseExpression()
	closeTok, _ := p.expect(token.PUNCT, "]")
	return &ast.SubscriptExpr{
		ExprBase: ast.NewExprBase(source.Join(base.Range(), closeTok.Range)),
		Base:     base, Index: idx,
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.INT_LIT:
		p.advance()
		return &ast.IntLiteralExpr{ExprBase: ast.NewExprBase(t.Range), Tok: t, Value: t.IntValue, Radix: t.IntRadix}
	case token.FLOAT_LIT:
		p.advance()
		return &ast.FloatLiteralExpr{ExprBase: ast.NewExprBase(t.Range), Tok: t, Value: t.FloatValue}
	case token.CHAR_LIT:
		p.advance()
		return &ast.CharLiteralExpr{ExprBase: ast.NewExprBase(t.Range), Tok: t, Value: t.StringValue}
	case token.STRING_LIT:
		p.advance()
		return &ast.StringLiteralExpr{ExprBase: ast.NewExprBase(t.Range), Tok: t, Value: t.StringValue}
	case token.INTERP_LIT:
		p.advance()
		return p.buildInterpolation(t)
	case token.DIRECTIVE:
		p.advance()
		kind, ok := directiveExprKind(t.Text)
		if !ok {
			p.errorf("parse-error", t.Range.Start, "%q is not valid in an expression", t.Text)
			return &ast.IntLiteralExpr{ExprBase: ast.NewExprBase(t.Range)}
		}
		return &ast.DirectiveLiteralExpr{ExprBase: ast.NewExprBase(t.Range), Tok: t, Kind: kind}
	case token.IDENT:
		p.advance()
		return &ast.VariableRefExpr{ExprBase: ast.NewExprBase(t.Range), Name: t.Text}
	case token.KEYWORD:
		return p.parseKeywordPrimary(t)
	case token.PUNCT:
		switch t.Text {
		case "(":
			return p.parseParenOrTuple()
		case "[":
			return p.parseArrayLiteral()
		case "{":
			return p.parseClosureLiteral()
		}
	}
	p.errorf("parse-error", t.Range.Start, "unexpected token %q in expression", t.Text)
	p.advance()
	return &ast.IntLiteralExpr{ExprBase: ast.NewExprBase(t.Range)}
}

func (p *Parser) parseKeywordPrimary(t token.Token) ast.Expr {
	switch t.Text {
	case "true":
		p.advance()
		return &ast.BoolLiteralExpr{ExprBase: ast.NewExprBase(t.Range), Tok: t, Value: true}
	case "false":
		p.advance()
		return &ast.BoolLiteralExpr{ExprBase: ast.NewExprBase(t.Range), Tok: t, Value: false}
	case "nil":
		p.advance()
		return &ast.NilLiteralExpr{ExprBase: ast.NewExprBase(t.Range), Tok: t}
	case "sizeof":
		p.advance()
		p.expect(token.PUNCT, "(")
		target := p.parseType()
		closeTok, _ := p.expect(token.PUNCT, ")")
		return &ast.SizeofExpr{ExprBase: ast.NewExprBase(source.Join(t.Range, closeTok.Range)), TargetType: target}
	default:
		p.errorf("parse-error", t.Range.Start, "unexpected keyword %q in expression", t.Text)
		p.advance()
		return &ast.IntLiteralExpr{ExprBase: ast.NewExprBase(t.Range)}
	}
}

func directiveExprKind(text string) (ast.DirectiveKind, bool) {
	switch text {
	case "#file":
		return ast.DirectiveFile, true
	case "#line":
		return ast.DirectiveLine, true
	case "#function":
		return ast.DirectiveFunction, true
	}
	return 0, false
}

// buildInterpolation re-parses each \( ... ) sub-stream of an INTERP_LIT
// token into its own expression, using a fresh Parser over just that
// token slice (spec §4.1's sub-lexing is mirrored here by sub-parsing).
func (p *Parser) buildInterpolation(t token.Token) ast.Expr {
	segs := make([]ast.InterpSegment, 0, len(t.InterpParts))
	for _, part := range t.InterpParts {
		if part.Tokens == nil {
			segs = append(segs, ast.InterpSegment{Text: part.Text})
			continue
		}
		sub := &Parser{toks: appendEOF(part.Tokens), diags: p.diags}
		segs = append(segs, ast.InterpSegment{Expr: sub.parseExpression()})
	}
	return &ast.StringInterpolationExpr{ExprBase: ast.NewExprBase(t.Range), Tok: t, Segments: segs}
}

func appendEOF(toks []token.Token) []token.Token {
	if n := len(toks); n > 0 && toks[n-1].Kind == token.EOF {
		return toks
	}
	var end source.Location
	if n := len(toks); n > 0 {
		end = toks[n-1].Range.End
	}
	return append(toks, token.Token{Kind: token.EOF, Range: source.Range{Start: end, End: end}})
}

// parseParenOrTuple parses `()` (void), `(e)` (ParenExpr), or
// `(a, b, label: c)` (TupleExpr), disambiguated purely by element count
// and the presence of a comma — no backtracking needed since the grammar
// is unambiguous once inside the parens.
func (p *Parser) parseParenOrTuple() ast.Expr {
	open := p.advance() // '('
	if p.at(token.PUNCT, ")") {
		close := p.advance()
		return &ast.VoidLiteralExpr{ExprBase: ast.NewExprBase(source.Join(open.Range, close.Range))}
	}
	var elems []ast.Expr
	var labels []string
	for {
		label := ""
		if p.atKind(token.IDENT) && p.peekAt(1).Is(token.PUNCT, ":") {
			label = p.advance().Text
			p.advance()
		}
		elems = append(elems, p.parseExpression())
		labels = append(labels, label)
		if p.at(token.PUNCT, ",") {
			p.advance()
			continue
		}
		break
	}
	close, _ := p.expect(token.PUNCT, ")")
	full := source.Join(open.Range, close.Range)
	if len(elems) == 1 && labels[0] == "" {
		return &ast.ParenExpr{ExprBase: ast.NewExprBase(full), Inner: elems[0]}
	}
	return &ast.TupleExpr{ExprBase: ast.NewExprBase(full), Elements: elems, Labels: labels}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	open := p.advance() // '['
	var elems []ast.Expr
	for !p.at(token.PUNCT, "]") && !p.atKind(token.EOF) {
		elems = append(elems, p.parseExpression())
		if p.at(token.PUNCT, ",") {
			p.advance()
			continue
		}
		break
	}
	close, _ := p.expect(token.PUNCT, "]")
	return &ast.ArrayExpr{ExprBase: ast.NewExprBase(source.Join(open.Range, close.Range)), Elements: elems}
}

// parseClosureLiteral parses `{ (params) -> T in stmts }` or the
// shorthand `{ stmts }` with no parameter list.
func (p *Parser) parseClosureLiteral() ast.Expr {
	open := p.advance() // '{'
	var params []*ast.ParamDecl
	var ret *types.DataType
	if withParams, ok := attempt(p, p.tryParseClosureHeader); ok {
		params, ret = withParams.params, withParams.ret
	}
	p.skipSeparators()
	var stmts []ast.Stmt
	for !p.at(token.PUNCT, "}") && !p.atKind(token.EOF) {
		stmts = append(stmts, p.parseStatement())
		p.expectSeparator()
	}
	close, _ := p.expect(token.PUNCT, "}")
	body := &ast.BlockStmt{StmtBase: ast.StmtBase{SrcRange: source.Join(open.Range, close.Range)}, Statements: stmts}
	return &ast.ClosureExpr{
		ExprBase:   ast.NewExprBase(source.Join(open.Range, close.Range)),
		Params:     params, ReturnType: ret, Body: body,
	}
}

type closureHeader struct {
	params []*ast.ParamDecl
	ret    *types.DataType
}

func (p *Parser) tryParseClosureHeader() (closureHeader, bool) {
	if !p.at(token.PUNCT, "(") {
		return closureHeader{}, false
	}
	params := p.parseParamList()
	var ret *types.DataType
	if p.at(token.OPERATOR, "->") {
		p.advance()
		ret = p.parseType()
	}
	if !p.at(token.KEYWORD, "in") {
		return closureHeader{}, false
	}
	p.advance()
	return closureHeader{params: params, ret: ret}, true
}
