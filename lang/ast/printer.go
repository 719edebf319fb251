package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints an AST as an indented tree, one node per line.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// NodeFmt is the format string used to print each node. The verb must be
	// either 's' or 'v'. Defaults to "%v".
	NodeFmt string
}

// Print pretty-prints the AST rooted at n.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, nodeFmt: p.NodeFmt}
	if pp.nodeFmt == "" {
		pp.nodeFmt = "%v"
	}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w       io.Writer
	nodeFmt string
	depth   int
	err     error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}
	format := "%s" + p.nodeFmt + "\n"
	_, p.err = fmt.Fprintf(p.w, format, strings.Repeat(". ", indent), n)
}
