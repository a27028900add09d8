package insts

// While evaluates its condition before every iteration.
// Each iteration runs in a fresh frame, so bindings never survive into the next one.
type While struct {
	Node
	cond Predicate
	body []Instruction
}

var _ Instruction = new(While)

func NewWhile(description string, cond Predicate, body ...Instruction) *While {
	ret := &While{
		cond: cond,
		body: body,
	}
	ret.init(orDefault(description, DescribeWhile("?")))
	return ret
}

func (w *While) Kind() Kind {
	return KindWhile
}

func (w *While) Nestable() bool {
	return true
}

func (w *While) Children() []Instruction {
	return w.body
}

func (w *While) Body() []Instruction {
	return w.body
}

func (w *While) Cond(v *Vars) bool {
	return evalPredicate(w.cond, v)
}
