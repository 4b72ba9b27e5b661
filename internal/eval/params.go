package eval

import "fmt"

// Binding maps declared parameter names to their zero-based positions in the
// runtime argument sequence. It is built once from the declared parameter
// list, shared read-only by both backends, and never mutated afterwards.
type Binding struct {
	names   []string
	indexes map[string]int
}

// NewBinding builds a Binding from an ordered parameter-name list.
// Duplicate names are a construction-time error.
func NewBinding(names []string) (*Binding, error) {
	indexes := make(map[string]int, len(names))
	for i, name := range names {
		if _, dup := indexes[name]; dup {
			return nil, &DuplicateParamError{Name: name}
		}
		indexes[name] = i
	}
	return &Binding{
		names:   append([]string(nil), names...),
		indexes: indexes,
	}, nil
}

// Index returns the zero-based position of a parameter name.
func (b *Binding) Index(name string) (int, bool) {
	i, ok := b.indexes[name]
	return i, ok
}

// Len returns the number of declared parameters.
func (b *Binding) Len() int {
	return len(b.names)
}

// Names returns the declared parameter names in order.
// The returned slice must not be modified.
func (b *Binding) Names() []string {
	return b.names
}

// DuplicateParamError reports a parameter name declared more than once.
type DuplicateParamError struct {
	Name string
}

func (e *DuplicateParamError) Error() string {
	return fmt.Sprintf("duplicate parameter name: %s", e.Name)
}
