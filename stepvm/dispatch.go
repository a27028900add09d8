package stepvm

import (
	"fmt"
	"strconv"

	"github.com/reusee/stepviz/insts"
	"github.com/reusee/stepviz/logs"
)

func (e *Engine) step(force bool) error {
	item := e.top()
	if item == nil {
		e.finish()
		return nil
	}
	if !force && e.shouldHalt(item) {
		e.halt(item)
		return nil
	}
	return e.dispatch(item)
}

func (e *Engine) shouldHalt(item *workItem) bool {
	if item.marker || e.breakpointsHidden() {
		return false
	}
	if item.transient {
		item.transient = false
		return true
	}
	switch item.inst.Kind() {
	case insts.KindField, insts.KindMethod, insts.KindProgram:
		// registration
		return false
	}
	return item.inst.Breakpoint()
}

func (e *Engine) halt(item *workItem) {
	e.halted = true
	e.logger.InfoContext(e.ctx, "halted",
		"instruction", item.inst.Description(),
		"kind", item.inst.Kind(),
	)
	e.emit(Event{
		Kind:        EventHalted,
		Instruction: item.inst,
	})
}

func (e *Engine) dispatch(item *workItem) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = e.fail(item, fmt.Errorf("%w: %v", ErrPanic, p))
		}
	}()

	e.steps++
	transient := item.transient
	item.transient = false
	item.inst.SetActive(true)

	if item.exec != nil {
		err = item.exec(item)
	} else {
		err = e.exec(item)
	}
	if err != nil {
		return e.fail(item, err)
	}

	if transient && item.marker {
		e.markTop()
	}
	if len(e.work) == 0 {
		e.finish()
	}
	return nil
}

func (e *Engine) fail(item *workItem, err error) error {
	dispatchErr := &DispatchError{
		Err:         err,
		Instruction: item.inst,
		CallPath:    e.callPathDescriptions(),
		Span:        logs.SpanOf(e.ctx),
	}
	e.failure = dispatchErr
	e.active = false
	e.halted = false
	e.logger.ErrorContext(e.ctx, "dispatch failed",
		"error", err,
		"instruction", item.inst.Description(),
		"work", len(e.work),
		"scope depth", e.scopes.Depth(),
	)
	// stacks are kept for inspection
	for _, item := range e.work {
		item.token.Reject(dispatchErr)
	}
	e.emit(Event{
		Kind:        EventFailed,
		Instruction: item.inst,
		Err:         dispatchErr,
	})
	return dispatchErr
}

func (e *Engine) vars() *insts.Vars {
	return insts.NewVars(e.scopes)
}

func (e *Engine) exec(item *workItem) error {
	if item.marker {
		e.pop()
		e.complete(item, nil)
		return nil
	}

	v := e.vars()
	switch inst := item.inst.(type) {

	case *insts.Run:
		inst.Exec(v)
		if err := v.Err(); err != nil {
			return err
		}
		e.pop()
		e.complete(item, nil)

	case *insts.Let:
		value := inst.Value(v)
		if err := v.Err(); err != nil {
			return err
		}
		if err := e.scopes.Declare(inst.Name(), value); err != nil {
			return err
		}
		e.pop()
		e.complete(item, nil)

	case *insts.If:
		cond := inst.Cond(v)
		if err := v.Err(); err != nil {
			return err
		}
		e.pop()
		if !cond {
			e.complete(item, nil)
			return nil
		}
		e.enterBlock(item, inst.Body())

	case *insts.IfElse:
		body := inst.Branch(v)
		if err := v.Err(); err != nil {
			return err
		}
		e.pop()
		e.enterBlock(item, body)

	case *insts.While:
		return e.execWhile(item, inst, v)

	case *insts.ForI:
		return e.execForI(item, inst, v)

	case *insts.Return:
		return e.execReturn(item, inst, v)

	case *insts.Call:
		if e.scopes.TopIs(item) {
			return e.returnCall(item, inst)
		}
		return e.enterCall(item, inst, v)

	case *insts.Method:
		name := inst.Name()
		if _, ok := e.methods[name]; ok {
			return fmt.Errorf("%w: method %s", insts.ErrDuplicateDeclaration, name)
		}
		e.methods[name] = inst
		e.order = append(e.order, name)
		e.pop()
		e.complete(item, nil)

	case *insts.Field:
		if err := e.scopes.DeclareBase(inst.Name(), inst.Value()); err != nil {
			return err
		}
		e.pop()
		e.complete(item, nil)

	case *insts.Program:
		e.pop()
		e.pushBody(inst.Children())
		e.complete(item, nil)

	default:
		return fmt.Errorf("%w: %s", insts.ErrNotImplemented, item.inst.Kind())
	}

	return nil
}

// enterBlock schedules an if-body in the enclosing scope, followed by a marker
// that completes the If once the body has run.
func (e *Engine) enterBlock(item *workItem, body []insts.Instruction) {
	if len(body) == 0 {
		e.complete(item, nil)
		return
	}
	e.push(&workItem{
		inst:   item.inst,
		token:  item.token,
		marker: true,
	})
	e.pushBody(body)
}

func (e *Engine) execWhile(item *workItem, inst *insts.While, v *insts.Vars) error {
	cond := inst.Cond(v)
	if err := v.Err(); err != nil {
		return err
	}
	if e.scopes.TopIs(item) {
		// previous iteration
		if _, err := e.scopes.Pop(); err != nil {
			return err
		}
	}
	if !cond {
		e.pop()
		e.complete(item, nil)
		return nil
	}
	item.entered = true
	e.scopes.Push(item, inst, inst.Description())
	e.pushBody(inst.Body())
	return nil
}

func (e *Engine) execForI(item *workItem, inst *insts.ForI, v *insts.Vars) error {
	iterator := inst.Iterator()
	if !e.scopes.TopIs(item) {
		start := inst.Start(v)
		if err := v.Err(); err != nil {
			return err
		}
		e.scopes.Push(item, inst, inst.Description())
		if err := e.scopes.Declare(iterator, start); err != nil {
			return err
		}
		item.entered = true
	}

	i := v.Int(iterator)
	cond := inst.Cond(v, i)
	if err := v.Err(); err != nil {
		return err
	}
	if !cond {
		if _, err := e.scopes.Pop(); err != nil {
			return err
		}
		e.pop()
		e.complete(item, nil)
		return nil
	}

	increment := e.newItem(insts.NewRun(inst.IncrementDescription(), nil))
	increment.exec = func(increment *workItem) error {
		if e.scopes.TopIs(increment) {
			if _, err := e.scopes.Pop(); err != nil {
				return err
			}
		}
		// step sees writes made by the body
		v := e.vars()
		step := inst.Step(v)
		v.Write(iterator, v.Int(iterator)+step)
		if err := v.Err(); err != nil {
			return err
		}
		e.pop()
		e.complete(increment, nil)
		return nil
	}
	e.push(increment)
	// body bindings live in a per-iteration frame owned by the increment
	e.scopes.Push(increment, inst, iterator+" = "+strconv.Itoa(i))
	e.pushBody(inst.Body())
	return nil
}

func (e *Engine) execReturn(item *workItem, inst *insts.Return, v *insts.Vars) error {
	value := inst.Value(v)
	if err := v.Err(); err != nil {
		return err
	}
	e.pop()

	// unwind to the enclosing invocation
	transient := false
	for {
		top := e.top()
		if top == nil {
			break
		}
		if _, ok := top.inst.(*insts.Call); ok && top.entered && !top.marker {
			break
		}
		e.pop()
		for e.scopes.TopIs(top) {
			if _, err := e.scopes.Pop(); err != nil {
				return err
			}
		}
		transient = transient || top.transient
		e.complete(top, nil)
	}
	if transient {
		e.markTop()
	}

	if err := e.scopes.Declare(insts.ReturnName, value); err != nil {
		return err
	}
	e.complete(item, value)
	return nil
}

func (e *Engine) enterCall(item *workItem, inst *insts.Call, v *insts.Vars) error {
	method, ok := e.methods[inst.Method()]
	if !ok {
		return fmt.Errorf("%w: %s", insts.ErrMethodNotFound, inst.Method())
	}
	// arguments are evaluated in the caller scope
	args := inst.Args(v)
	if err := v.Err(); err != nil {
		return err
	}
	frame := e.scopes.Push(item, inst, method.Description())
	for _, name := range method.ArgNames() {
		if err := frame.Declare(name, args[name]); err != nil {
			return err
		}
	}
	item.entered = true
	e.pushBody(method.Body())
	return nil
}

func (e *Engine) returnCall(item *workItem, inst *insts.Call) error {
	value, _ := e.scopes.Top().Get(insts.ReturnName)
	e.pop()
	if _, err := e.scopes.Pop(); err != nil {
		return err
	}
	switch into := inst.Into(); into {
	case "":
	case ImmediateReturn:
		e.immediate = value
	default:
		if err := e.scopes.Write(into, value); err != nil {
			return err
		}
	}
	e.complete(item, value)
	return nil
}
