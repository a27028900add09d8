package scopes

import (
	"fmt"

	"github.com/reusee/stepviz/insts"
)

// Frame is one variable environment.
// Tag identifies the construct that pushed it and is compared by identity when deciding what to pop.
type Frame struct {
	Tag    any
	Source insts.Instruction
	Label  string
	names  []string
	values map[string]any
}

func NewFrame(tag any, source insts.Instruction, label string) *Frame {
	return &Frame{
		Tag:    tag,
		Source: source,
		Label:  label,
		values: make(map[string]any),
	}
}

func (f *Frame) Declare(name string, value any) error {
	if _, ok := f.values[name]; ok {
		return fmt.Errorf("%w: %s in %s", insts.ErrDuplicateDeclaration, name, f.Label)
	}
	f.names = append(f.names, name)
	f.values[name] = value
	return nil
}

func (f *Frame) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

func (f *Frame) Get(name string) (any, bool) {
	value, ok := f.values[name]
	return value, ok
}

// Names returns the declared names in declaration order.
func (f *Frame) Names() []string {
	return append([]string(nil), f.names...)
}

func (f *Frame) Len() int {
	return len(f.names)
}

type Binding struct {
	Name  string
	Value any
}

func (f *Frame) Bindings() []Binding {
	ret := make([]Binding, 0, len(f.names))
	for _, name := range f.names {
		ret = append(ret, Binding{
			Name:  name,
			Value: f.values[name],
		})
	}
	return ret
}
