package insts

type Action func(v *Vars)

// Run is the escape hatch for primitive operations such as mutating the visualized structure.
type Run struct {
	Node
	action Action
}

var _ Instruction = new(Run)

func NewRun(description string, action Action) *Run {
	ret := &Run{
		action: action,
	}
	ret.init(orDefault(description, KindRun.String()))
	return ret
}

func (r *Run) Kind() Kind {
	return KindRun
}

func (r *Run) Nestable() bool {
	return false
}

func (r *Run) Children() []Instruction {
	return nil
}

func (r *Run) Exec(v *Vars) {
	if r.action != nil {
		r.action(v)
	}
}
