// Package ast defines the expression tree for parsed s-expressions.
//
// The tree is a strict sum type with exactly the fields each variant needs:
//
//	Node (interface)
//	├── Literal     - numeric constant in source textual form
//	├── Name        - a parameter or operator reference
//	└── Application - operator application (first child is the operator name)
//
// Nodes are immutable after construction and form a strict tree (no cycles).
// The operator position of an Application is looked up by its literal name by
// the evaluator, never evaluated as a value.
package ast

import "github.com/lukedodd/JitCalc/internal/token"

// Node is the interface implemented by all expression tree nodes.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position
	// End returns the position of the first character immediately after this node.
	End() token.Position

	node() // marker method to prevent external implementations
}

// BaseNode provides common position fields for all node types.
type BaseNode struct {
	StartPos token.Position // Position of first token
	EndPos   token.Position // Position after last token
}

func (b *BaseNode) Pos() token.Position { return b.StartPos }
func (b *BaseNode) End() token.Position { return b.EndPos }
func (b *BaseNode) node()               {}

// Literal represents a numeric constant in its original source form.
// The text is parsed lazily by the consuming evaluator's literal handler.
// Examples: 42, 10.5, -2, 1e10
type Literal struct {
	BaseNode
	Text string // Original source text
}

// Name represents a parameter or operator reference.
// Examples: x, y, +, *
type Name struct {
	BaseNode
	Ident string // Identifier text
}

// Application represents an operator application.
// The first child is the operator name; the remaining children are operand
// expressions. The child sequence is never empty in a well-formed tree.
// Example: (+ x (* y 2))
type Application struct {
	BaseNode
	Children []Node
}

// Operator returns the identifier in the application's operator position,
// or false if the application is empty or its first child is not a name.
func (a *Application) Operator() (string, bool) {
	if len(a.Children) == 0 {
		return "", false
	}
	name, ok := a.Children[0].(*Name)
	if !ok {
		return "", false
	}
	return name.Ident, true
}

// Operands returns the operand expressions (all children after the operator).
func (a *Application) Operands() []Node {
	if len(a.Children) == 0 {
		return nil
	}
	return a.Children[1:]
}

// Walk traverses a tree in depth-first order. For each node it calls
// fn(node); if fn returns false, the children of that node are not visited.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	if app, ok := node.(*Application); ok {
		for _, c := range app.Children {
			Walk(c, fn)
		}
	}
}
