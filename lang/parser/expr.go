package parser

import (
	"github.com/shadowbrowser/shadow.js/lang/ast"
	"github.com/shadowbrowser/shadow.js/lang/token"
)

// Precedence levels, higher binds tighter: `.` > call/index > `* /` >
// `+ -` > `< >` > `== !=`.
const (
	lowest = iota
	equals
	lessGreater
	sum
	product
	callIndex
	dot
)

func precedenceOf(tok token.Token) int {
	switch tok {
	case token.DOT:
		return dot
	case token.LPAREN, token.LBRACK:
		return callIndex
	case token.STAR, token.SLASH:
		return product
	case token.PLUS, token.MINUS:
		return sum
	case token.LT, token.GT:
		return lessGreater
	case token.EQEQ, token.NEQ:
		return equals
	default:
		return lowest
	}
}

// parseExpr parses an expression, consuming infix operators that bind
// tighter than precedence.
func (p *Parser) parseExpr(precedence int) ast.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for p.peekTok != token.SEMI && precedence < precedenceOf(p.peekTok) {
		p.nextToken()
		left = p.parseInfix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expr {
	switch p.curTok {
	case token.IDENT:
		return &ast.IdentExpr{NamePos: p.curVal.Pos, Name: p.curVal.Raw}
	case token.NUMBER:
		return &ast.NumberExpr{ValuePos: p.curVal.Pos, Value: p.curVal.Number, Raw: p.curVal.Raw}
	case token.STRING:
		return &ast.StringExpr{ValuePos: p.curVal.Pos, Value: p.curVal.String}
	case token.TRUE:
		return &ast.BoolExpr{ValuePos: p.curVal.Pos, Value: true}
	case token.FALSE:
		return &ast.BoolExpr{ValuePos: p.curVal.Pos, Value: false}
	case token.NULL:
		return &ast.NullExpr{ValuePos: p.curVal.Pos}
	case token.UNDEFINED:
		return &ast.UndefinedExpr{ValuePos: p.curVal.Pos}
	case token.MINUS, token.PLUS:
		return p.parsePrefixExpr()
	case token.LBRACK:
		return p.parseArrayExpr()
	case token.LBRACE:
		return p.parseObjectExpr()
	case token.LPAREN:
		return p.parseParenExpr()
	default:
		p.errorf("no prefix parse handler for %s", p.curTok.GoString())
		return nil
	}
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	op, pos := p.curTok, p.curVal.Pos
	p.nextToken()
	right := p.parseExpr(callIndex)
	if right == nil {
		return nil
	}
	return &ast.PrefixExpr{OpPos: pos, Op: op, Right: right}
}

func (p *Parser) parseParenExpr() ast.Expr {
	p.nextToken() // consume '('
	expr := p.parseExpr(lowest)
	if expr == nil {
		return nil
	}
	if p.peekTok != token.RPAREN {
		p.errorf("expected ')' to close parenthesized expression, found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken()
	return expr
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	switch p.curTok {
	case token.LPAREN:
		return p.parseCallExpr(left)
	case token.LBRACK:
		return p.parseIndexExpr(left)
	case token.DOT:
		return p.parseMemberExpr(left)
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.LT, token.GT, token.EQEQ, token.NEQ:
		op, pos := p.curTok, p.curVal.Pos
		precedence := precedenceOf(p.curTok)
		p.nextToken()
		right := p.parseExpr(precedence)
		if right == nil {
			return nil
		}
		return &ast.InfixExpr{Left: left, OpPos: pos, Op: op, Right: right}
	default:
		p.errorf("no infix parse handler for %s", p.curTok.GoString())
		return nil
	}
}

func (p *Parser) parseCallExpr(fn ast.Expr) ast.Expr {
	var args []ast.Expr
	if p.peekTok != token.RPAREN {
		p.nextToken()
		arg := p.parseExpr(lowest)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		for p.peekTok == token.COMMA {
			p.nextToken() // consume arg
			p.nextToken() // consume ','
			arg := p.parseExpr(lowest)
			if arg == nil {
				return nil
			}
			args = append(args, arg)
		}
	}
	if p.peekTok != token.RPAREN {
		p.errorf("expected ')' to close call arguments, found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken()
	return &ast.CallExpr{Fn: fn, Args: args, Rparen: p.curVal.Pos}
}

func (p *Parser) parseIndexExpr(left ast.Expr) ast.Expr {
	lbrack := p.curVal.Pos
	p.nextToken()
	index := p.parseExpr(lowest)
	if index == nil {
		return nil
	}
	if p.peekTok != token.RBRACK {
		p.errorf("expected ']' to close index expression, found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken()
	return &ast.IndexExpr{Left: left, Lbrack: lbrack, Index: index, Rbrack: p.curVal.Pos}
}

// parseMemberExpr desugars `left.name` into IndexExpr{Left: left, Index:
// StringExpr{"name"}}.
func (p *Parser) parseMemberExpr(left ast.Expr) ast.Expr {
	lbrack := p.curVal.Pos
	p.nextToken()
	if p.curTok != token.IDENT {
		p.errorf("expected identifier after '.', found %s", p.curTok.GoString())
		return nil
	}
	name := &ast.StringExpr{ValuePos: p.curVal.Pos, Value: p.curVal.Raw}
	return &ast.IndexExpr{Left: left, Lbrack: lbrack, Index: name, Rbrack: p.curVal.Pos}
}

func (p *Parser) parseArrayExpr() ast.Expr {
	lbrack := p.curVal.Pos
	var elems []ast.Expr

	if p.peekTok == token.RBRACK {
		p.nextToken()
		return &ast.ArrayExpr{Lbrack: lbrack, Elems: elems, Rbrack: p.curVal.Pos}
	}

	p.nextToken()
	elem := p.parseExpr(lowest)
	if elem == nil {
		return nil
	}
	elems = append(elems, elem)
	for p.peekTok == token.COMMA {
		p.nextToken() // consume elem
		p.nextToken() // consume ','
		elem := p.parseExpr(lowest)
		if elem == nil {
			return nil
		}
		elems = append(elems, elem)
	}

	if p.peekTok != token.RBRACK {
		p.errorf("expected ']' to close array literal, found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken()
	return &ast.ArrayExpr{Lbrack: lbrack, Elems: elems, Rbrack: p.curVal.Pos}
}

func (p *Parser) parseObjectExpr() ast.Expr {
	lbrace := p.curVal.Pos
	var keys, values []ast.Expr

	if p.peekTok == token.RBRACE {
		p.nextToken()
		return &ast.ObjectExpr{Lbrace: lbrace, Keys: keys, Values: values, Rbrace: p.curVal.Pos}
	}

	p.nextToken()
	key, val := p.parseObjectPair()
	if key == nil {
		return nil
	}
	keys, values = append(keys, key), append(values, val)
	for p.peekTok == token.COMMA {
		p.nextToken() // consume value
		p.nextToken() // consume ','
		key, val := p.parseObjectPair()
		if key == nil {
			return nil
		}
		keys, values = append(keys, key), append(values, val)
	}

	if p.peekTok != token.RBRACE {
		p.errorf("expected '}' to close object literal, found %s", p.peekTok.GoString())
		return nil
	}
	p.nextToken()
	return &ast.ObjectExpr{Lbrace: lbrace, Keys: keys, Values: values, Rbrace: p.curVal.Pos}
}

// parseObjectPair parses one `key: value` pair. Keys are either an
// identifier or a string literal; both produce a *ast.StringExpr key node.
func (p *Parser) parseObjectPair() (key, value ast.Expr) {
	var name string
	switch p.curTok {
	case token.IDENT, token.STRING:
		if p.curTok == token.STRING {
			name = p.curVal.String
		} else {
			name = p.curVal.Raw
		}
	default:
		p.errorf("expected object key, found %s", p.curTok.GoString())
		return nil, nil
	}
	key = &ast.StringExpr{ValuePos: p.curVal.Pos, Value: name}

	if p.peekTok != token.COLON {
		p.errorf("expected ':' after object key, found %s", p.peekTok.GoString())
		return nil, nil
	}
	p.nextToken() // consume key
	p.nextToken() // consume ':'

	value = p.parseExpr(lowest)
	return key, value
}
