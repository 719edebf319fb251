package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shadowbrowser/shadow.js/lang/scanner"
	"github.com/shadowbrowser/shadow.js/lang/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, []token.Value, []string) {
	t.Helper()
	var toks []token.Token
	var vals []token.Value
	var errs []string

	var s scanner.Scanner
	s.Init([]byte(src), func(pos token.Pos, msg string) {
		errs = append(errs, msg)
	})
	for {
		var v token.Value
		tok := s.Scan(&v)
		toks = append(toks, tok)
		vals = append(vals, v)
		if tok == token.EOF {
			break
		}
	}
	return toks, vals, errs
}

func TestScanPunctuationAndKeywords(t *testing.T) {
	toks, _, errs := scanAll(t, `let x = 1 + 2; if (x < 3) { return x; } else { return undefined; }`)
	require.Empty(t, errs)
	require.Equal(t, []token.Token{
		token.LET, token.IDENT, token.EQ, token.NUMBER, token.PLUS, token.NUMBER, token.SEMI,
		token.IF, token.LPAREN, token.IDENT, token.LT, token.NUMBER, token.RPAREN,
		token.LBRACE, token.RETURN, token.IDENT, token.SEMI, token.RBRACE,
		token.ELSE, token.LBRACE, token.RETURN, token.UNDEFINED, token.SEMI, token.RBRACE,
		token.EOF,
	}, toks)
}

func TestScanEqEqAndNeq(t *testing.T) {
	toks, _, errs := scanAll(t, `a == b != c`)
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.IDENT, token.EQEQ, token.IDENT, token.NEQ, token.IDENT, token.EOF}, toks)
}

func TestScanNumbers(t *testing.T) {
	toks, vals, errs := scanAll(t, `1 2.5 .5 3.`)
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.NUMBER, token.NUMBER, token.NUMBER, token.NUMBER, token.EOF}, toks)
	require.Equal(t, 1.0, vals[0].Number)
	require.Equal(t, 2.5, vals[1].Number)
	require.Equal(t, 0.5, vals[2].Number)
	require.Equal(t, 3.0, vals[3].Number)
}

func TestScanStrings(t *testing.T) {
	toks, vals, errs := scanAll(t, `"hello" 'world'`)
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.STRING, token.STRING, token.EOF}, toks)
	require.Equal(t, "hello", vals[0].String)
	require.Equal(t, "world", vals[1].String)
}

func TestScanStringNoEscapes(t *testing.T) {
	toks, vals, errs := scanAll(t, `"a\nb"`)
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.STRING, token.EOF}, toks)
	require.Equal(t, `a\nb`, vals[0].String)
}

func TestScanUnterminatedString(t *testing.T) {
	toks, _, errs := scanAll(t, `"unterminated`)
	require.NotEmpty(t, errs)
	require.Equal(t, token.ILLEGAL, toks[0])
}

func TestScanComments(t *testing.T) {
	toks, _, errs := scanAll(t, "let x = 1; // trailing\n/* block\ncomment */ let y = 2;")
	require.Empty(t, errs)
	require.Equal(t, []token.Token{
		token.LET, token.IDENT, token.EQ, token.NUMBER, token.SEMI,
		token.LET, token.IDENT, token.EQ, token.NUMBER, token.SEMI,
		token.EOF,
	}, toks)
}

func TestScanIllegalCharacter(t *testing.T) {
	_, _, errs := scanAll(t, "@")
	require.NotEmpty(t, errs)
}
