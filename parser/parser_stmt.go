/*
File    : trill/parser/parser_stmt.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"github.com/akashmaji946/trill/ast"
	"github.com/akashmaji946/trill/source"
	"github.com/akashmaji946/trill/token"
)

// parseStatement dispatches on the current token's shape, generalizing
// the teacher's parseStatement switch to Trill's statement set (spec §3
// "statement nodes").
func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.at(token.PUNCT, "{"):
		return p.parseBlock()
	case p.at(token.KEYWORD, "if"):
		return p.parseIf()
	case p.at(token.KEYWORD, "while"):
		return p.parseWhile()
	case p.at(token.KEYWORD, "for"):
		return p.parseFor()
	case p.at(token.KEYWORD, "switch"):
		return p.parseSwitch()
	case p.at(token.KEYWORD, "break"):
		t := p.advance()
		return &ast.BreakStmt{StmtBase: ast.StmtBase{SrcRange: t.Range}}
	case p.at(token.KEYWORD, "continue"):
		t := p.advance()
		return &ast.ContinueStmt{StmtBase: ast.StmtBase{SrcRange: t.Range}}
	case p.at(token.KEYWORD, "return"):
		return p.parseReturn()
	case p.at(token.DIRECTIVE, "#warning"), p.at(token.DIRECTIVE, "#error"):
		return p.parsePoundDiagnostic()
	case p.at(token.KEYWORD, "var") || p.at(token.KEYWORD, "let"):
		d, _ := p.parseVarDecl()
		return &ast.DeclStmt{StmtBase: ast.StmtBase{SrcRange: d.Range()}, D: d}
	default:
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	open := p.advance() // '{'
	p.skipSeparators()
	var stmts []ast.Stmt
	for !p.at(token.PUNCT, "}") && !p.atKind(token.EOF) {
		stmts = append(stmts, p.parseStatement())
		p.expectSeparator()
	}
	close, _ := p.expect(token.PUNCT, "}")
	return &ast.BlockStmt{StmtBase: ast.StmtBase{SrcRange: source.Join(open.Range, close.Range)}, Statements: stmts}
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.advance() // 'if'
	cond := p.parseExpression()
	then := p.parseBlock()
	var els ast.Stmt
	if p.at(token.KEYWORD, "else") {
		p.advance()
		if p.at(token.KEYWORD, "if") {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}
	end := then.Range()
	if els != nil {
		end = els.Range()
	}
	return &ast.IfStmt{StmtBase: ast.StmtBase{SrcRange: source.Join(start.Range, end)}, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.advance() // 'while'
	cond := p.parseExpression()
	body := p.parseBlock()
	return &ast.WhileStmt{StmtBase: ast.StmtBase{SrcRange: source.Join(start.Range, body.Range())}, Cond: cond, Body: body}
}

// parseFor parses the C-style `for init; cond; post { ... }` loop (spec
// §3 "ForStmt"); any of the three clauses may be omitted but the two
// semicolons are required so the clauses stay unambiguous.
func (p *Parser) parseFor() ast.Stmt {
	start := p.advance() // 'for'
	var initStmt ast.Stmt
	if !p.at(token.SEMI, ";") {
		initStmt = p.parseSimpleOrDeclStatement()
	}
	p.expect(token.SEMI, ";")
	var cond ast.Expr
	if !p.at(token.SEMI, ";") {
		cond = p.parseExpression()
	}
	p.expect(token.SEMI, ";")
	var post ast.Stmt
	if !p.at(token.PUNCT, "{") {
		post = p.parseSimpleOrDeclStatement()
	}
	body := p.parseBlock()
	return &ast.ForStmt{
		StmtBase: ast.StmtBase{SrcRange: source.Join(start.Range, body.Range())},
		Init:     initStmt, Cond: cond, Post: post, Body: body,
	}
}

func (p *Parser) parseSimpleOrDeclStatement() ast.Stmt {
	if p.at(token.KEYWORD, "var") || p.at(token.KEYWORD, "let") {
		d, _ := p.parseVarDecl()
		return &ast.DeclStmt{StmtBase: ast.StmtBase{SrcRange: d.Range()}, D: d}
	}
	return p.parseSimpleStatement()
}

func (p *Parser) parseSwitch() ast.Stmt {
	start := p.advance() // 'switch'
	subject := p.parseExpression()
	p.expect(token.PUNCT, "{")
	p.skipSeparators()
	var cases []*ast.CaseClause
	sawDefault := false
	for p.at(token.KEYWORD, "case") || p.at(token.KEYWORD, "default") {
		clause := p.parseCaseClause()
		if clause.IsDefault {
			if sawDefault {
				p.errorf("duplicate-default", clause.Range().Start, "switch already has a default case")
			}
			sawDefault = true
		}
		cases = append(cases, clause)
		p.skipSeparators()
	}
	end, _ := p.expect(token.PUNCT, "}")
	return &ast.SwitchStmt{StmtBase: ast.StmtBase{SrcRange: source.Join(start.Range, end.Range)}, Subject: subject, Cases: cases}
}

func (p *Parser) parseCaseClause() *ast.CaseClause {
	start := p.cur()
	isDefault := start.Text == "default"
	p.advance()
	var values []ast.Expr
	if !isDefault {
		values = append(values, p.parseExpression())
		for p.at(token.PUNCT, ",") {
			p.advance()
			values = append(values, p.parseExpression())
		}
	}
	p.expect(token.PUNCT, ":")
	p.skipSeparators()
	var stmts []ast.Stmt
	for !p.at(token.KEYWORD, "case") && !p.at(token.KEYWORD, "default") && !p.at(token.PUNCT, "}") && !p.atKind(token.EOF) {
		stmts = append(stmts, p.parseStatement())
		p.expectSeparator()
	}
	body := &ast.BlockStmt{Statements: stmts}
	return &ast.CaseClause{
		StmtBase:  ast.StmtBase{SrcRange: start.Range},
		Values:    values, Body: body, IsDefault: isDefault,
	}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance() // 'return'
	var val ast.Expr
	if !p.cur().IsSeparator() && !p.at(token.PUNCT, "}") && !p.atKind(token.EOF) {
		val = p.parseExpression()
	}
	end := start.Range
	if val != nil {
		end = val.Range()
	}
	return &ast.ReturnStmt{StmtBase: ast.StmtBase{SrcRange: source.Join(start.Range, end)}, Value: val}
}

// parseSimpleStatement parses a bare expression statement, lowering a
// top-level assignment-operator expression into an AssignStmt (spec §4.2
// "Assignment is parsed as an infix operator but lowered semantically to
// an assignment statement").
func (p *Parser) parseSimpleStatement() ast.Stmt {
	expr := p.parseExpression()
	if inf, ok := expr.(*ast.InfixExpr); ok && isAssignOp(inf.Op) {
		return &ast.AssignStmt{
			StmtBase: ast.StmtBase{SrcRange: inf.Range()},
			Op:       inf.Op, LHS: inf.Left, RHS: inf.Right,
		}
	}
	return &ast.ExprStmt{StmtBase: ast.StmtBase{SrcRange: expr.Range()}, X: expr}
}
