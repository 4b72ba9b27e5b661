package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer provides pretty-printing for expression trees.
// It outputs an indented representation suitable for debugging.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes a pretty-printed representation of the node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

// PrintFunction writes a pretty-printed representation of a function form.
func (p *Printer) PrintFunction(f *Function) error {
	p.printf("Function(%s)\n", strings.Join(f.Params, " "))
	p.indent++
	p.printNode(f.Body)
	p.indent--
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	for i := 0; i < p.indent; i++ {
		if _, p.err = io.WriteString(p.w, "    "); p.err != nil {
			return
		}
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) printNode(node Node) {
	switch n := node.(type) {
	case nil:
		p.printf("<nil>\n")
	case *Literal:
		p.printf("Literal(%s)\n", n.Text)
	case *Name:
		p.printf("Name(%s)\n", n.Ident)
	case *Application:
		p.printf("Application\n")
		p.indent++
		for _, c := range n.Children {
			p.printNode(c)
		}
		p.indent--
	default:
		p.printf("<unknown node %T>\n", node)
	}
}

// Format returns the compact s-expression rendering of a node.
func Format(node Node) string {
	var sb strings.Builder
	formatNode(&sb, node)
	return sb.String()
}

// FormatFunction returns the compact s-expression rendering of a function form.
func FormatFunction(f *Function) string {
	var sb strings.Builder
	sb.WriteString("((")
	sb.WriteString(strings.Join(f.Params, " "))
	sb.WriteString(") ")
	formatNode(&sb, f.Body)
	sb.WriteString(")")
	return sb.String()
}

func formatNode(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Literal:
		sb.WriteString(n.Text)
	case *Name:
		sb.WriteString(n.Ident)
	case *Application:
		sb.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteByte(' ')
			}
			formatNode(sb, c)
		}
		sb.WriteByte(')')
	}
}
