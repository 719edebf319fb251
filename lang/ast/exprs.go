package ast

import (
	"fmt"
	"strconv"

	"github.com/shadowbrowser/shadow.js/lang/token"
)

type (
	// IdentExpr represents a bare identifier, e.g. x.
	IdentExpr struct {
		NamePos token.Pos
		Name    string
	}

	// NumberExpr represents a numeric literal.
	NumberExpr struct {
		ValuePos token.Pos
		Value    float64
		Raw      string
	}

	// StringExpr represents a string literal.
	StringExpr struct {
		ValuePos token.Pos
		Value    string
	}

	// BoolExpr represents `true` or `false`.
	BoolExpr struct {
		ValuePos token.Pos
		Value    bool
	}

	// NullExpr represents the `null` literal.
	NullExpr struct {
		ValuePos token.Pos
	}

	// UndefinedExpr represents the `undefined` literal.
	UndefinedExpr struct {
		ValuePos token.Pos
	}

	// PrefixExpr represents a unary expression, e.g. -x.
	PrefixExpr struct {
		OpPos token.Pos
		Op    token.Token
		Right Expr
	}

	// InfixExpr represents a binary expression, e.g. a + b.
	InfixExpr struct {
		Left  Expr
		OpPos token.Pos
		Op    token.Token
		Right Expr
	}

	// CallExpr represents a function call, e.g. f(a, b).
	CallExpr struct {
		Fn     Expr
		Args   []Expr
		Rparen token.Pos
	}

	// ArrayExpr represents an array literal, e.g. [a, b, c].
	ArrayExpr struct {
		Lbrack token.Pos
		Elems  []Expr
		Rbrack token.Pos
	}

	// ObjectExpr represents an object literal, e.g. {a: 1, "b": 2}. Keys and
	// Values are parallel slices.
	ObjectExpr struct {
		Lbrace token.Pos
		Keys   []Expr // *StringExpr, always
		Values []Expr
		Rbrace token.Pos
	}

	// IndexExpr represents `left[index]`. Member access `left.name` is
	// desugared at parse time into IndexExpr{Left: left, Index:
	// StringExpr{Value: "name"}}.
	IndexExpr struct {
		Left   Expr
		Lbrack token.Pos
		Index  Expr
		Rbrack token.Pos
	}
)

func (*IdentExpr) expr() {}
func (*NumberExpr) expr() {}
func (*StringExpr) expr() {}
func (*BoolExpr) expr() {}
func (*NullExpr) expr() {}
func (*UndefinedExpr) expr() {}
func (*PrefixExpr) expr() {}
func (*InfixExpr) expr() {}
func (*CallExpr) expr() {}
func (*ArrayExpr) expr() {}
func (*ObjectExpr) expr() {}
func (*IndexExpr) expr() {}

func (n *IdentExpr) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name, nil) }
func (n *IdentExpr) Span() (token.Pos, token.Pos) {
	line, col := n.NamePos.LineCol()
	return n.NamePos, token.MakePos(line, col+len(n.Name))
}
func (n *IdentExpr) Walk(_ Visitor) {}

func (n *NumberExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, strconv.FormatFloat(n.Value, 'g', -1, 64), nil)
}
func (n *NumberExpr) Span() (token.Pos, token.Pos) {
	line, col := n.ValuePos.LineCol()
	return n.ValuePos, token.MakePos(line, col+len(n.Raw))
}
func (n *NumberExpr) Walk(_ Visitor) {}

func (n *StringExpr) Format(f fmt.State, verb rune) { format(f, verb, n, strconv.Quote(n.Value), nil) }
func (n *StringExpr) Span() (token.Pos, token.Pos) {
	line, col := n.ValuePos.LineCol()
	return n.ValuePos, token.MakePos(line, col+len(n.Value)+2)
}
func (n *StringExpr) Walk(_ Visitor) {}

func (n *BoolExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, strconv.FormatBool(n.Value), nil)
}
func (n *BoolExpr) Span() (token.Pos, token.Pos) { return n.ValuePos, n.ValuePos }
func (n *BoolExpr) Walk(_ Visitor) {}

func (n *NullExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "null", nil) }
func (n *NullExpr) Span() (token.Pos, token.Pos) { return n.ValuePos, n.ValuePos }
func (n *NullExpr) Walk(_ Visitor) {}

func (n *UndefinedExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "undefined", nil) }
func (n *UndefinedExpr) Span() (token.Pos, token.Pos) { return n.ValuePos, n.ValuePos }
func (n *UndefinedExpr) Walk(_ Visitor) {}

func (n *PrefixExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "prefix "+n.Op.String(), nil) }
func (n *PrefixExpr) Span() (token.Pos, token.Pos) {
	_, end := n.Right.Span()
	return n.OpPos, end
}
func (n *PrefixExpr) Walk(v Visitor) { Walk(v, n.Right) }

func (n *InfixExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "infix "+n.Op.String(), nil) }
func (n *InfixExpr) Span() (token.Pos, token.Pos) {
	start, _ := n.Left.Span()
	_, end := n.Right.Span()
	return start, end
}
func (n *InfixExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (token.Pos, token.Pos) {
	start, _ := n.Fn.Span()
	return start, n.Rparen
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, a := range n.Args {
		Walk(v, a)
	}
}

func (n *ArrayExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "array", map[string]int{"elems": len(n.Elems)})
}
func (n *ArrayExpr) Span() (token.Pos, token.Pos) { return n.Lbrack, n.Rbrack }
func (n *ArrayExpr) Walk(v Visitor) {
	for _, e := range n.Elems {
		Walk(v, e)
	}
}

func (n *ObjectExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "object", map[string]int{"pairs": len(n.Keys)})
}
func (n *ObjectExpr) Span() (token.Pos, token.Pos) { return n.Lbrace, n.Rbrace }
func (n *ObjectExpr) Walk(v Visitor) {
	for i, k := range n.Keys {
		Walk(v, k)
		Walk(v, n.Values[i])
	}
}

func (n *IndexExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "index", nil) }
func (n *IndexExpr) Span() (token.Pos, token.Pos) {
	start, _ := n.Left.Span()
	return start, n.Rbrack
}
func (n *IndexExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Index)
}
