package stepvm

import (
	"github.com/reusee/stepviz/insts"
	"github.com/reusee/stepviz/scopes"
	"github.com/samber/lo"
)

// CallPath lists the currently executing nested instructions, deepest first:
// the top work item followed by every enclosing construct still in progress.
func (e *Engine) CallPath() []insts.Instruction {
	var ret []insts.Instruction
	for i := len(e.work) - 1; i >= 0; i-- {
		item := e.work[i]
		if i == len(e.work)-1 || item.entered || item.marker {
			ret = append(ret, item.inst)
		}
	}
	return ret
}

func (e *Engine) callPathDescriptions() []string {
	return lo.Map(e.CallPath(), func(inst insts.Instruction, _ int) string {
		return inst.Description()
	})
}

// Top returns the instruction that the next tick dispatches.
func (e *Engine) Top() insts.Instruction {
	if item := e.top(); item != nil {
		return item.inst
	}
	return nil
}

// Work lists pending instructions from the top of the work-stack down.
func (e *Engine) Work() []insts.Instruction {
	ret := make([]insts.Instruction, 0, len(e.work))
	for i := len(e.work) - 1; i >= 0; i-- {
		ret = append(ret, e.work[i].inst)
	}
	return ret
}

func (e *Engine) WorkDepth() int {
	return len(e.work)
}

func (e *Engine) ScopeDepth() int {
	return e.scopes.Depth()
}

// Frames returns scope frames from the base upward.
func (e *Engine) Frames() []*scopes.Frame {
	return e.scopes.Frames()
}

// Lookup resolves name against the live scope stack without failing.
func (e *Engine) Lookup(name string) (any, bool) {
	return e.scopes.Lookup(name)
}

// Methods returns registered method names in registration order.
func (e *Engine) Methods() []string {
	return append([]string(nil), e.order...)
}

func (e *Engine) Method(name string) *insts.Method {
	return e.methods[name]
}

// Runnable lists registered methods that users may invoke.
func (e *Engine) Runnable() []*insts.Method {
	return lo.Filter(
		lo.Map(e.order, func(name string, _ int) *insts.Method {
			return e.methods[name]
		}),
		func(method *insts.Method, _ int) bool {
			return method.IsPublic()
		},
	)
}

// Instruction finds a node by id in the loaded program or the pending work.
func (e *Engine) Instruction(id string) insts.Instruction {
	if e.program != nil {
		if inst := insts.Find(e.program, id); inst != nil {
			return inst
		}
	}
	item, ok := lo.Find(e.work, func(item *workItem) bool {
		return item.inst.ID() == id
	})
	if ok {
		return item.inst
	}
	return nil
}
