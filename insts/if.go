package insts

type Predicate func(v *Vars) bool

// If shares the enclosing scope; its body gets no frame of its own.
type If struct {
	Node
	cond Predicate
	body []Instruction
}

var _ Instruction = new(If)

func NewIf(description string, cond Predicate, body ...Instruction) *If {
	ret := &If{
		cond: cond,
		body: body,
	}
	ret.init(orDefault(description, DescribeIf("?")))
	return ret
}

func (i *If) Kind() Kind {
	return KindIf
}

func (i *If) Nestable() bool {
	return false
}

func (i *If) Children() []Instruction {
	return i.body
}

func (i *If) Body() []Instruction {
	return i.body
}

func (i *If) Cond(v *Vars) bool {
	return evalPredicate(i.cond, v)
}

type IfElse struct {
	Node
	cond Predicate
	then []Instruction
	els  []Instruction
}

var _ Instruction = new(IfElse)

func NewIfElse(description string, cond Predicate, then []Instruction, els []Instruction) *IfElse {
	ret := &IfElse{
		cond: cond,
		then: then,
		els:  els,
	}
	ret.init(orDefault(description, DescribeIfElse("?")))
	return ret
}

func (i *IfElse) Kind() Kind {
	return KindIfElse
}

func (i *IfElse) Nestable() bool {
	return false
}

func (i *IfElse) Children() []Instruction {
	ret := make([]Instruction, 0, len(i.then)+len(i.els))
	ret = append(ret, i.then...)
	ret = append(ret, i.els...)
	return ret
}

func (i *IfElse) Then() []Instruction {
	return i.then
}

func (i *IfElse) Else() []Instruction {
	return i.els
}

func (i *IfElse) Cond(v *Vars) bool {
	return evalPredicate(i.cond, v)
}

// Branch evaluates the condition and returns the body to run.
func (i *IfElse) Branch(v *Vars) []Instruction {
	if i.Cond(v) {
		return i.then
	}
	return i.els
}

func evalPredicate(cond Predicate, v *Vars) bool {
	if cond == nil {
		return false
	}
	return cond(v)
}
