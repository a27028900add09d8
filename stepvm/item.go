package stepvm

import (
	"github.com/reusee/stepviz/futures"
	"github.com/reusee/stepviz/insts"
)

// workItem is one pending instruction.
// Scope frames are tagged with the item, not the instruction, so recursive
// invocations of the same Call node never share a frame tag.
type workItem struct {
	inst  insts.Instruction
	token *futures.Future[any]

	// entered is set once a Call, While or ForI has pushed its frame
	entered bool
	// marker items complete an If body; they share the If's token
	marker bool
	// transient is a one-shot halt mark
	transient bool
	// exec overrides kind dispatch for engine-built items
	exec func(*workItem) error
}

func (e *Engine) newItem(inst insts.Instruction) *workItem {
	item := &workItem{
		inst:  inst,
		token: futures.New[any](),
	}
	item.token.Then(func(any, error) {
		e.deactivate(inst)
	})
	return item
}

func (e *Engine) top() *workItem {
	if len(e.work) == 0 {
		return nil
	}
	return e.work[len(e.work)-1]
}

func (e *Engine) push(items ...*workItem) {
	e.work = append(e.work, items...)
}

// pushBody pushes body reversed, so its first instruction runs next.
func (e *Engine) pushBody(body []insts.Instruction) {
	for i := len(body) - 1; i >= 0; i-- {
		e.push(e.newItem(body[i]))
	}
}

func (e *Engine) pop() *workItem {
	item := e.top()
	if item == nil {
		return nil
	}
	e.work[len(e.work)-1] = nil
	e.work = e.work[:len(e.work)-1]
	return item
}

// enqueue inserts items below all pending work; the first item runs first.
func (e *Engine) enqueue(items ...*workItem) {
	work := make([]*workItem, 0, len(items)+len(e.work))
	for i := len(items) - 1; i >= 0; i-- {
		work = append(work, items[i])
	}
	e.work = append(work, e.work...)
}

func (e *Engine) complete(item *workItem, value any) {
	item.token.Resolve(value)
}

func (e *Engine) markTop() {
	if top := e.top(); top != nil {
		top.transient = true
	}
}
