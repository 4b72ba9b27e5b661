//go:build !amd64

package jit

import (
	"github.com/lukedodd/JitCalc/internal/ast"
	"github.com/lukedodd/JitCalc/internal/eval"
	"github.com/lukedodd/JitCalc/internal/exec"
)

func compile(binding *eval.Binding, body ast.Node, maxSpillSlots int) ([]byte, []string, error) {
	return nil, nil, exec.ErrUnsupported
}
