// Package scanner tokenizes source text for the parser to consume. The
// scanning loop and error-reporting convention are adapted from the
// Go source code's go/scanner package.
package scanner

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shadowbrowser/shadow.js/lang/token"
)

// Scanner tokenizes a single source file.
type Scanner struct {
	// immutable state after Init
	src []byte
	err func(pos token.Pos, msg string)

	// mutable scanning state
	sb   strings.Builder
	cur  rune // current character, -1 at EOF
	off  int  // byte offset of cur
	roff int  // byte offset following cur
	line int  // 1-based line of cur
	col  int  // 1-based column of cur
}

// Init initializes the scanner to tokenize src. errHandler, if non-nil, is
// called for every lexical error encountered; scanning continues afterward
// so that callers can collect more than one error per pass.
func (s *Scanner) Init(src []byte, errHandler func(token.Pos, string)) {
	s.src = src
	s.err = errHandler
	s.sb.Reset()
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.line = 1
	s.col = 0
	s.advance()
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.cur == '\n' {
		s.line++
		s.col = 0
	}
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}

	s.off = s.roff
	s.col++

	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error("illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) pos() token.Pos {
	return token.MakePos(s.line, s.col)
}

func (s *Scanner) error(msg string) {
	if s.err != nil {
		s.err(s.pos(), msg)
	}
}

func (s *Scanner) errorf(format string, args ...any) {
	s.error(fmt.Sprintf(format, args...))
}

// advanceIf advances past cur and returns true if cur equals b.
func (s *Scanner) advanceIf(b byte) bool {
	if s.cur == rune(b) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source, filling tokVal with its
// position and literal value.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespaceAndComments()

	pos := s.pos()
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		tok = token.LookupIdent(lit)
		*tokVal = token.Value{Raw: lit, Pos: pos}

	case isDigit(cur) || (cur == '.' && isDigit(rune(s.peek()))):
		lit := s.number()
		tok = token.NUMBER
		*tokVal = token.Value{Raw: lit, Pos: pos, Number: numberToFloat(lit)}

	default:
		if cur == -1 {
			tok = token.EOF
			*tokVal = token.Value{Raw: "", Pos: pos}
			return tok
		}

		s.advance() // always make progress
		switch cur {
		case '"', '\'':
			lit, val, terminated := s.shortString(cur)
			tok = token.STRING
			if !terminated {
				tok = token.ILLEGAL
			}
			*tokVal = token.Value{Raw: lit, Pos: pos, String: val}
			return tok

		case '=':
			tok = token.EQ
			if s.advanceIf('=') {
				tok = token.EQEQ
			}

		case '!':
			if s.advanceIf('=') {
				tok = token.NEQ
			} else {
				s.errorf("illegal character %#U", cur)
				tok = token.ILLEGAL
			}

		case '+':
			tok = token.PLUS
		case '-':
			tok = token.MINUS
		case '*':
			tok = token.STAR
		case '/':
			tok = token.SLASH
		case '.':
			tok = token.DOT
		case ',':
			tok = token.COMMA
		case ';':
			tok = token.SEMI
		case ':':
			tok = token.COLON
		case '(':
			tok = token.LPAREN
		case ')':
			tok = token.RPAREN
		case '[':
			tok = token.LBRACK
		case ']':
			tok = token.RBRACK
		case '{':
			tok = token.LBRACE
		case '}':
			tok = token.RBRACE
		case '<':
			tok = token.LT
		case '>':
			tok = token.GT

		default:
			s.errorf("illegal character %#U", cur)
			tok = token.ILLEGAL
		}
		*tokVal = token.Value{Raw: string(s.src[start:s.off]), Pos: pos}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// number scans a run of digits with at most one decimal point. It stops
// before a second '.', so "1.2.3" scans as "1.2" followed by ".3"; parsing
// the literal to a value is the caller's job.
func (s *Scanner) number() string {
	start := s.off
	seenDot := false
	for isDigit(s.cur) || (s.cur == '.' && !seenDot) {
		if s.cur == '.' {
			seenDot = true
		}
		s.advance()
	}
	return string(s.src[start:s.off])
}

// numberToFloat parses lit as a float64. Text that strconv.ParseFloat
// rejects (e.g. a literal too large for a float64) yields 0 rather than a
// scanner error, matching the permissive numeric literal rule. A trailing
// dot is accepted: "3." parses to 3.
func numberToFloat(lit string) float64 {
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0
	}
	return v
}

// shortString scans a string literal delimited by opening (either " or ').
// No escape sequences are recognized: the text between the delimiters is
// taken verbatim. terminated is false if scanning hit a newline or EOF
// before the closing quote, in which case the caller reports token.ILLEGAL
// rather than token.STRING.
func (s *Scanner) shortString(opening rune) (lit, decoded string, terminated bool) {
	start := s.off - 1 // include the opening quote already consumed
	s.sb.Reset()
	for {
		cur := s.cur
		if cur == '\n' || cur < 0 {
			s.error("string literal not terminated")
			return string(s.src[start:s.off]), s.sb.String(), false
		}
		s.advance()
		if cur == opening {
			return string(s.src[start:s.off]), s.sb.String(), true
		}
		s.sb.WriteRune(cur)
	}
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		case s.cur == '/' && s.peek() == '*':
			s.advance()
			s.advance()
			for {
				if s.cur == -1 {
					s.error("comment not terminated")
					return
				}
				if s.cur == '*' && s.peek() == '/' {
					s.advance()
					s.advance()
					break
				}
				s.advance()
			}
		default:
			return
		}
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9'
}
