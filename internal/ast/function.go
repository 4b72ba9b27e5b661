package ast

import "github.com/lukedodd/JitCalc/internal/token"

// Function represents the top-level function form
//
//	( (name1 name2 ... nameK) body )
//
// binding an expression body to an ordered list of parameter names.
// Parameter names are unique within one declaration; uniqueness is enforced
// when a parameter binding is constructed, not here.
type Function struct {
	StartPos token.Position
	EndPos   token.Position

	Params []string // Declared parameter names, in order
	Body   Node     // Expression body (a Name or an Application)
}

func (f *Function) Pos() token.Position { return f.StartPos }
func (f *Function) End() token.Position { return f.EndPos }
