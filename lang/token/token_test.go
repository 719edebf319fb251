package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		lit  string
		want Token
	}{
		{"let", LET},
		{"const", CONST},
		{"function", FUNCTION},
		{"return", RETURN},
		{"if", IF},
		{"else", ELSE},
		{"while", WHILE},
		{"for", FOR},
		{"true", TRUE},
		{"false", FALSE},
		{"null", NULL},
		{"undefined", UNDEFINED},
		{"x", IDENT},
		{"lettuce", IDENT},
	}
	for _, c := range cases {
		require.Equal(t, c.want, LookupIdent(c.lit), c.lit)
	}
}

func TestIsBinop(t *testing.T) {
	for _, tok := range []Token{PLUS, MINUS, STAR, SLASH, LT, GT, EQEQ, NEQ} {
		require.True(t, tok.IsBinop(), tok.String())
	}
	for _, tok := range []Token{LET, IDENT, LPAREN, COMMA, EOF} {
		require.False(t, tok.IsBinop(), tok.String())
	}
}

func TestGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "let", LET.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
}
