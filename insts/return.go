package insts

type Return struct {
	Node
	value Expr
}

var _ Instruction = new(Return)

// NewReturn builds a return; a nil value expression returns nil.
func NewReturn(value Expr) *Return {
	ret := &Return{
		value: value,
	}
	ret.init("return")
	return ret
}

func (r *Return) Kind() Kind {
	return KindReturn
}

func (r *Return) Nestable() bool {
	return false
}

func (r *Return) Children() []Instruction {
	return nil
}

func (r *Return) Value(v *Vars) any {
	if r.value == nil {
		return nil
	}
	return r.value(v)
}
