package insts

type Expr func(v *Vars) any

type Let struct {
	Node
	name  string
	value Expr
}

var _ Instruction = new(Let)

func NewLet(description string, name string, value Expr) *Let {
	ret := &Let{
		name:  name,
		value: value,
	}
	ret.init(orDefault(description, DescribeLet(name, "?")))
	return ret
}

func (l *Let) Kind() Kind {
	return KindLet
}

func (l *Let) Nestable() bool {
	return false
}

func (l *Let) Children() []Instruction {
	return nil
}

func (l *Let) Name() string {
	return l.name
}

func (l *Let) Value(v *Vars) any {
	if l.value == nil {
		return nil
	}
	return l.value(v)
}
