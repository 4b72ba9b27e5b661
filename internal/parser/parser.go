// Package parser provides a recursive descent reader for s-expressions.
package parser

import (
	"github.com/lukedodd/JitCalc/internal/ast"
	"github.com/lukedodd/JitCalc/internal/lexer"
	"github.com/lukedodd/JitCalc/internal/token"
)

// DefaultMaxDepth is the default nesting limit for parenthesized expressions.
// It guards the reader (and every recursive consumer of the tree) against
// stack exhaustion on adversarial input.
const DefaultMaxDepth = 1000

// Parse reads a complete function form
//
//	( (name1 name2 ... nameK) expr )
//
// from src and validates its shape. Parameter names must all be bare names;
// the body must be a name or a parenthesized application.
func Parse(src string) (*ast.Function, error) {
	return ParseWithLimit(src, DefaultMaxDepth)
}

// ParseWithLimit is Parse with an explicit nesting limit.
func ParseWithLimit(src string, maxDepth int) (*ast.Function, error) {
	node, err := parseExpr(src, maxDepth)
	if err != nil {
		return nil, err
	}
	return validateShape(node)
}

// ParseExpr reads a single bare expression from src with the default
// nesting limit. Used by tests and debugging tools; the public API reads
// full function forms via Parse.
func ParseExpr(src string) (ast.Node, error) {
	return parseExpr(src, DefaultMaxDepth)
}

func parseExpr(src string, maxDepth int) (ast.Node, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := &parser{lex: lexer.NewFromString(src), maxDepth: maxDepth}
	p.advance()

	if p.tok.Type == token.EOF {
		return nil, errorf(p.tok.Pos, "empty program")
	}

	node, err := p.parseNode(0)
	if err != nil {
		return nil, err
	}

	if p.tok.Type != token.EOF {
		return nil, errorf(p.tok.Pos, "unexpected %q after expression", p.tok.Value)
	}
	return node, nil
}

// parser holds reader state: the scanner and a one-token lookahead.
type parser struct {
	lex      *lexer.Lexer
	tok      lexer.Token
	maxDepth int
}

func (p *parser) advance() {
	p.tok = p.lex.Scan()
}

// parseNode reads one node: an atom, or a parenthesized list of nodes.
func (p *parser) parseNode(depth int) (ast.Node, error) {
	switch p.tok.Type {
	case token.NUMBER:
		n := &ast.Literal{
			BaseNode: ast.BaseNode{StartPos: p.tok.Pos, EndPos: p.endPos()},
			Text:     p.tok.Value,
		}
		p.advance()
		return n, nil

	case token.NAME:
		n := &ast.Name{
			BaseNode: ast.BaseNode{StartPos: p.tok.Pos, EndPos: p.endPos()},
			Ident:    p.tok.Value,
		}
		p.advance()
		return n, nil

	case token.LPAREN:
		return p.parseList(depth)

	case token.RPAREN:
		return nil, errorf(p.tok.Pos, "unexpected ')'")

	case token.ILLEGAL:
		return nil, errorf(p.tok.Pos, "%s", p.tok.Value)

	default: // token.EOF
		return nil, errorf(p.tok.Pos, "unexpected end of input")
	}
}

func (p *parser) parseList(depth int) (ast.Node, error) {
	if depth >= p.maxDepth {
		return nil, errorf(p.tok.Pos, "expression nested deeper than %d levels", p.maxDepth)
	}

	start := p.tok.Pos
	p.advance() // consume (

	var children []ast.Node
	for p.tok.Type != token.RPAREN {
		if p.tok.Type == token.EOF {
			return nil, errorf(start, "unbalanced parentheses: missing ')'")
		}
		child, err := p.parseNode(depth + 1)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	end := p.endPos()
	p.advance() // consume )

	return &ast.Application{
		BaseNode: ast.BaseNode{StartPos: start, EndPos: end},
		Children: children,
	}, nil
}

// endPos returns the position just after the current token.
func (p *parser) endPos() token.Position {
	pos := p.tok.Pos
	pos.Column += len(p.tok.Value)
	pos.Offset += len(p.tok.Value)
	return pos
}

// validateShape checks the top-level function shape: exactly two elements,
// the first a list of bare names, the second a name or an application.
func validateShape(node ast.Node) (*ast.Function, error) {
	top, ok := node.(*ast.Application)
	if !ok || len(top.Children) != 2 {
		return nil, shapeErrorf(node.Pos(), "function must be of form ((arg1 arg2 ...) (expression))")
	}

	paramList, ok := top.Children[0].(*ast.Application)
	if !ok {
		return nil, shapeErrorf(top.Children[0].Pos(), "function must be of form ((arg1 arg2 ...) (expression))")
	}
	params := make([]string, 0, len(paramList.Children))
	for _, c := range paramList.Children {
		name, ok := c.(*ast.Name)
		if !ok {
			return nil, shapeErrorf(c.Pos(), "parameter list may contain only names, got %s", ast.Format(c))
		}
		params = append(params, name.Ident)
	}

	switch top.Children[1].(type) {
	case *ast.Name, *ast.Application:
		// ok
	default:
		return nil, shapeErrorf(top.Children[1].Pos(), "function body must be a name or an application")
	}

	return &ast.Function{
		StartPos: top.Pos(),
		EndPos:   top.End(),
		Params:   params,
		Body:     top.Children[1],
	}, nil
}
