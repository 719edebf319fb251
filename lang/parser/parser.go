// Package parser implements the recursive-descent/Pratt parser that
// transforms a token stream into an AST.
package parser

import (
	"fmt"

	"github.com/shadowbrowser/shadow.js/lang/ast"
	"github.com/shadowbrowser/shadow.js/lang/scanner"
	"github.com/shadowbrowser/shadow.js/lang/token"
)

// Parser turns a source buffer into an *ast.Chunk using two-token
// lookahead: cur is the token being examined, peek is the one after it.
type Parser struct {
	scanner scanner.Scanner
	errors  []error

	curTok  token.Token
	curVal  token.Value
	peekTok token.Token
	peekVal token.Value
}

// New creates a Parser reading from src.
func New(src []byte) *Parser {
	p := &Parser{}
	p.scanner.Init(src, func(pos token.Pos, msg string) {
		p.errors = append(p.errors, fmt.Errorf("%s: %s", pos, msg))
	})
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every error recorded while scanning or parsing, in the
// order encountered. A non-empty result does not necessarily mean parsing
// stopped early: after a failed statement the parser moves on one token and
// starts a new statement there, so that a single call surfaces as many
// problems as possible (one mistake can also produce several errors).
func (p *Parser) Errors() []error { return p.errors }

// errorf records a parse error prefixed with the current token's position.
func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Errorf("%s: %s", p.curVal.Pos, fmt.Sprintf(format, args...)))
}

func (p *Parser) nextToken() {
	p.curTok, p.curVal = p.peekTok, p.peekVal
	p.peekTok = p.scanner.Scan(&p.peekVal)
}

// ParseChunk parses the whole input and returns the resulting AST. Errors
// encountered along the way are recorded and retrievable via Errors; the
// returned chunk always contains whatever statements were successfully
// parsed.
func (p *Parser) ParseChunk() *ast.Chunk {
	ch := &ast.Chunk{}
	for p.curTok != token.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			ch.Stmts = append(ch.Stmts, stmt)
		}
		p.nextToken()
	}
	ch.EOF = p.curVal.Pos
	return ch
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.curTok {
	case token.LET:
		return p.parseLetStmt()
	case token.CONST:
		return p.parseConstStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.FUNCTION:
		return p.parseFunctionStmt()
	case token.LBRACE:
		return p.parseBlockStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseLetStmt() ast.Stmt {
	pos := p.curVal.Pos
	if p.peekTok != token.IDENT {
		p.errorf("expected identifier after 'let', found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken()
	name := p.curVal.Raw

	if p.peekTok != token.EQ {
		p.errorf("expected '=' after 'let %s', found %s", name, p.peekTok.GoString())
		return nil
	}
	p.nextToken() // consume ident
	p.nextToken() // consume '='

	value := p.parseExpr(lowest)
	if value == nil {
		return nil
	}
	end := p.curVal.Pos
	if p.peekTok == token.SEMI {
		p.nextToken()
		end = p.curVal.Pos
	}
	return &ast.LetStmt{Let: pos, Name: name, Value: value, End: end}
}

func (p *Parser) parseConstStmt() ast.Stmt {
	pos := p.curVal.Pos
	if p.peekTok != token.IDENT {
		p.errorf("expected identifier after 'const', found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken()
	name := p.curVal.Raw

	if p.peekTok != token.EQ {
		p.errorf("expected '=' after 'const %s', found %s", name, p.peekTok.GoString())
		return nil
	}
	p.nextToken() // consume ident
	p.nextToken() // consume '='

	value := p.parseExpr(lowest)
	if value == nil {
		return nil
	}
	end := p.curVal.Pos
	if p.peekTok == token.SEMI {
		p.nextToken()
		end = p.curVal.Pos
	}
	return &ast.ConstStmt{Const: pos, Name: name, Value: value, End: end}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	pos := p.curVal.Pos
	p.nextToken()

	var value ast.Expr
	if p.curTok != token.SEMI && p.curTok != token.RBRACE && p.curTok != token.EOF {
		value = p.parseExpr(lowest)
	}
	end := p.curVal.Pos
	if p.peekTok == token.SEMI {
		p.nextToken()
		end = p.curVal.Pos
	}
	return &ast.ReturnStmt{Return: pos, Value: value, End: end}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	expr := p.parseExpr(lowest)
	if expr == nil {
		return nil
	}
	end := p.curVal.Pos
	if p.peekTok == token.SEMI {
		p.nextToken()
		end = p.curVal.Pos
	}
	return &ast.ExprStmt{X: expr, End: end}
}

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	block := &ast.BlockStmt{Lbrace: p.curVal.Pos}
	p.nextToken() // consume '{'

	for p.curTok != token.RBRACE && p.curTok != token.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		p.nextToken()
	}
	block.Rbrace = p.curVal.Pos
	return block
}

func (p *Parser) parseIfStmt() ast.Stmt {
	pos := p.curVal.Pos
	if p.peekTok != token.LPAREN {
		p.errorf("expected '(' after 'if', found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken() // consume 'if'
	p.nextToken() // consume '('

	cond := p.parseExpr(lowest)
	if cond == nil {
		return nil
	}
	if p.peekTok != token.RPAREN {
		p.errorf("expected ')' to close if condition, found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken() // consume last token of cond
	p.nextToken() // consume ')'

	then := p.parseStatement()
	if then == nil {
		return nil
	}

	var alt ast.Stmt
	if p.peekTok == token.ELSE {
		p.nextToken() // consume last token of then
		p.nextToken() // consume 'else'
		alt = p.parseStatement()
	}
	return &ast.IfStmt{If: pos, Cond: cond, Then: then, Alt: alt}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	pos := p.curVal.Pos
	if p.peekTok != token.LPAREN {
		p.errorf("expected '(' after 'while', found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken()
	p.nextToken()

	cond := p.parseExpr(lowest)
	if cond == nil {
		return nil
	}
	if p.peekTok != token.RPAREN {
		p.errorf("expected ')' to close while condition, found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken()
	p.nextToken()

	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.WhileStmt{While: pos, Cond: cond, Body: body}
}

func (p *Parser) parseForStmt() ast.Stmt {
	pos := p.curVal.Pos
	if p.peekTok != token.LPAREN {
		p.errorf("expected '(' after 'for', found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken()
	p.nextToken()

	var init ast.Stmt
	if p.curTok != token.SEMI {
		init = p.parseStatement()
	}
	if p.curTok != token.SEMI {
		p.errorf("expected ';' after for-loop initializer, found %s", p.curTok.GoString())
		return nil
	}
	p.nextToken()

	var cond ast.Expr
	if p.curTok != token.SEMI {
		cond = p.parseExpr(lowest)
		p.nextToken()
	}
	if p.curTok != token.SEMI {
		p.errorf("expected ';' after for-loop condition, found %s", p.curTok.GoString())
		return nil
	}
	p.nextToken()

	var post ast.Stmt
	if p.curTok != token.RPAREN {
		post = p.parseStatement()
		p.nextToken() // move from the last token of post to the loop's ')'
	}
	if p.curTok != token.RPAREN {
		p.errorf("expected ')' to close for-loop header, found %s", p.curTok.GoString())
		return nil
	}
	p.nextToken()

	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.ForStmt{For: pos, Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseFunctionStmt() ast.Stmt {
	pos := p.curVal.Pos
	if p.peekTok != token.IDENT {
		p.errorf("expected function name, found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken()
	name := p.curVal.Raw

	if p.peekTok != token.LPAREN {
		p.errorf("expected '(' after function name, found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken() // consume name
	p.nextToken() // consume '('

	var params []string
	if p.curTok != token.RPAREN {
		if p.curTok != token.IDENT {
			p.errorf("expected parameter name, found %s", p.curTok.GoString())
			return nil
		}
		params = append(params, p.curVal.Raw)
		for p.peekTok == token.COMMA {
			p.nextToken() // consume ident
			p.nextToken() // consume ','
			if p.curTok != token.IDENT {
				p.errorf("expected parameter name, found %s", p.curTok.GoString())
				return nil
			}
			params = append(params, p.curVal.Raw)
		}
		p.nextToken()
	}
	if p.curTok != token.RPAREN {
		p.errorf("expected ')' to close parameter list, found %s", p.curTok.GoString())
		return nil
	}
	if p.peekTok != token.LBRACE {
		p.errorf("expected '{' to open function body, found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken() // consume ')'

	body := p.parseBlockStmt()
	return &ast.FunctionStmt{Function: pos, Name: name, Params: params, Body: body}
}
