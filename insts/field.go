package insts

// Field is declared into the base frame once, when the program is loaded.
type Field struct {
	Node
	name  string
	value any
}

var _ Instruction = new(Field)

func NewField(name string, value any) *Field {
	ret := &Field{
		name:  name,
		value: value,
	}
	ret.init("field " + name)
	return ret
}

func (f *Field) Kind() Kind {
	return KindField
}

func (f *Field) Nestable() bool {
	return false
}

func (f *Field) Children() []Instruction {
	return nil
}

func (f *Field) Name() string {
	return f.name
}

func (f *Field) Value() any {
	return f.value
}
