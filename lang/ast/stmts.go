package ast

import (
	"fmt"

	"github.com/shadowbrowser/shadow.js/lang/token"
)

type (
	// LetStmt represents `let name = value;`.
	LetStmt struct {
		Let   token.Pos
		Name  string
		Value Expr
		End   token.Pos // position following the value (or the trailing ';')
	}

	// ConstStmt represents `const name = value;`.
	ConstStmt struct {
		Const token.Pos
		Name  string
		Value Expr
		End   token.Pos
	}

	// ReturnStmt represents `return value?;`.
	ReturnStmt struct {
		Return token.Pos
		Value  Expr // nil if no value
		End    token.Pos
	}

	// ExprStmt represents an expression used as a statement.
	ExprStmt struct {
		X   Expr
		End token.Pos
	}

	// BlockStmt represents a `{ ... }` block of statements.
	BlockStmt struct {
		Lbrace token.Pos
		Stmts  []Stmt
		Rbrace token.Pos
	}

	// IfStmt represents `if (cond) then else alt?`.
	IfStmt struct {
		If   token.Pos
		Cond Expr
		Then Stmt
		Alt  Stmt // nil if no else clause
	}

	// WhileStmt represents `while (cond) body`. The compiler does not emit
	// code for it; the grammar accepts it since the keyword is reserved.
	WhileStmt struct {
		While token.Pos
		Cond  Expr
		Body  Stmt
	}

	// ForStmt represents `for (init; cond; post) body`. Like WhileStmt, the
	// compiler rejects it; it is parsed for grammar completeness.
	ForStmt struct {
		For  token.Pos
		Init Stmt // may be nil
		Cond Expr // may be nil
		Post Stmt // may be nil
		Body Stmt
	}

	// FunctionStmt represents `function name(params) body`. Function values
	// can be constructed but are not callable from bytecode.
	FunctionStmt struct {
		Function token.Pos
		Name     string
		Params   []string
		Body     *BlockStmt
	}
)

func (n *LetStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "let "+n.Name, nil) }
func (n *LetStmt) Span() (token.Pos, token.Pos) { return n.Let, n.End }
func (n *LetStmt) Walk(v Visitor) { Walk(v, n.Value) }
func (n *LetStmt) BlockEnding() bool { return false }

func (n *ConstStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "const "+n.Name, nil) }
func (n *ConstStmt) Span() (token.Pos, token.Pos) { return n.Const, n.End }
func (n *ConstStmt) Walk(v Visitor) { Walk(v, n.Value) }
func (n *ConstStmt) BlockEnding() bool { return false }

func (n *ReturnStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "return", nil) }
func (n *ReturnStmt) Span() (token.Pos, token.Pos) { return n.Return, n.End }
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *ReturnStmt) BlockEnding() bool { return true }

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExprStmt) Span() (token.Pos, token.Pos) {
	start, _ := n.X.Span()
	return start, n.End
}
func (n *ExprStmt) Walk(v Visitor) { Walk(v, n.X) }
func (n *ExprStmt) BlockEnding() bool { return false }

func (n *BlockStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *BlockStmt) Span() (token.Pos, token.Pos) { return n.Lbrace, n.Rbrace }
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *BlockStmt) BlockEnding() bool { return false }

func (n *IfStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "if", nil) }
func (n *IfStmt) Span() (token.Pos, token.Pos) {
	if n.Alt != nil {
		_, end := n.Alt.Span()
		return n.If, end
	}
	_, end := n.Then.Span()
	return n.If, end
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Alt != nil {
		Walk(v, n.Alt)
	}
}
func (n *IfStmt) BlockEnding() bool { return false }

func (n *WhileStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *WhileStmt) Span() (token.Pos, token.Pos) {
	_, end := n.Body.Span()
	return n.While, end
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) BlockEnding() bool { return false }

func (n *ForStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "for", nil) }
func (n *ForStmt) Span() (token.Pos, token.Pos) {
	_, end := n.Body.Span()
	return n.For, end
}
func (n *ForStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
	if n.Cond != nil {
		Walk(v, n.Cond)
	}
	if n.Post != nil {
		Walk(v, n.Post)
	}
	Walk(v, n.Body)
}
func (n *ForStmt) BlockEnding() bool { return false }

func (n *FunctionStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "function "+n.Name, map[string]int{"params": len(n.Params)})
}
func (n *FunctionStmt) Span() (token.Pos, token.Pos) {
	_, end := n.Body.Span()
	return n.Function, end
}
func (n *FunctionStmt) Walk(v Visitor) { Walk(v, n.Body) }
func (n *FunctionStmt) BlockEnding() bool { return false }
