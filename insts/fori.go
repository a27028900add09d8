package insts

type IntExpr func(v *Vars) int

// Const is an IntExpr ignoring the scope.
func Const(n int) IntExpr {
	return func(*Vars) int {
		return n
	}
}

type IndexPredicate func(v *Vars, i int) bool

const DefaultIterator = "i"

type ForI struct {
	Node
	iterator string
	start    IntExpr
	cond     IndexPredicate
	step     IntExpr
	body     []Instruction
}

var _ Instruction = new(ForI)

func NewForI(
	description string,
	iterator string,
	start IntExpr,
	cond IndexPredicate,
	step IntExpr,
	body ...Instruction,
) *ForI {
	if iterator == "" {
		iterator = DefaultIterator
	}
	if start == nil {
		start = Const(0)
	}
	if step == nil {
		step = Const(1)
	}
	ret := &ForI{
		iterator: iterator,
		start:    start,
		cond:     cond,
		step:     step,
		body:     body,
	}
	ret.init(orDefault(description, DescribeForI(iterator, "?", "?", "?")))
	return ret
}

func (f *ForI) Kind() Kind {
	return KindForI
}

func (f *ForI) Nestable() bool {
	return true
}

func (f *ForI) Children() []Instruction {
	return f.body
}

func (f *ForI) Body() []Instruction {
	return f.body
}

func (f *ForI) Iterator() string {
	return f.iterator
}

func (f *ForI) Start(v *Vars) int {
	return f.start(v)
}

func (f *ForI) Step(v *Vars) int {
	return f.step(v)
}

func (f *ForI) Cond(v *Vars, i int) bool {
	if f.cond == nil {
		return false
	}
	return f.cond(v, i)
}

// IncrementDescription renders the scheduled step. The step size is only
// known when the increment runs, so it is not part of the text.
func (f *ForI) IncrementDescription() string {
	return f.iterator + " += step"
}
