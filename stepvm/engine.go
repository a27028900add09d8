// Package stepvm is a step-debuggable interpreter for instruction trees.
//
// An Engine owns a work-stack of pending instructions and a scope stack.
// Each Tick dispatches the top work item once, so execution can be paused,
// stepped and resumed at instruction granularity.
// An Engine is not safe for concurrent use; wrap it with a Driver.
package stepvm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/reusee/stepviz/futures"
	"github.com/reusee/stepviz/insts"
	"github.com/reusee/stepviz/logs"
	"github.com/reusee/stepviz/scopes"
	"github.com/samber/lo"
)

// ImmediateReturn is the destination name of calls issued by Engine.Call.
// Values written to it land in the engine's immediate-return slot.
const ImmediateReturn = "___IMMEDIATE_RETURN"

type Engine struct {
	config  Config
	logger  logs.Logger
	newSpan logs.NewSpan
	ctx     context.Context

	program   *insts.Program
	scopes    *scopes.Stack
	work      []*workItem
	methods   map[string]*insts.Method
	order     []string
	active    bool
	halted    bool
	failure   error
	immediate any
	steps     int

	subscribers []subscriber
	serial      int
}

// New creates an engine. logger and newSpan may be nil.
func New(config Config, logger logs.Logger, newSpan logs.NewSpan) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		config:  config,
		logger:  logger,
		newSpan: newSpan,
		ctx:     context.Background(),
		scopes:  scopes.NewStack(),
		methods: make(map[string]*insts.Method),
	}
}

func (e *Engine) State() State {
	switch {
	case e.failure != nil:
		return StateFailed
	case !e.active:
		return StateIdle
	case e.halted:
		return StateHalted
	}
	return StateRunning
}

func (e *Engine) Active() bool {
	return e.active
}

func (e *Engine) Halted() bool {
	return e.halted
}

// Err returns the failure that moved the engine to StateFailed.
func (e *Engine) Err() error {
	return e.failure
}

func (e *Engine) Program() *insts.Program {
	return e.program
}

// Load registers program, replacing any previous one.
// The returned future resolves once every field and method has been declared.
func (e *Engine) Load(program *insts.Program) *futures.Future[any] {
	e.program = program
	return e.Reset()
}

// Reset clears all state including a failure, then registers the loaded program again.
func (e *Engine) Reset() *futures.Future[any] {
	e.Terminate()
	e.failure = nil
	e.scopes.Reset()
	e.methods = make(map[string]*insts.Method)
	e.order = nil
	if e.program == nil {
		return futures.Resolved[any](nil)
	}

	program := e.program
	loaded := e.newItem(insts.NewRun("loaded "+program.Description(), nil))
	loaded.exec = func(item *workItem) error {
		e.pop()
		e.logger.InfoContext(e.ctx, "program loaded",
			"program", program.Description(),
			"methods", e.order,
		)
		e.emit(Event{
			Kind:        EventMethods,
			Instruction: program,
		})
		e.complete(item, nil)
		return nil
	}
	e.enqueue(e.newItem(program), loaded)
	e.start()
	return loaded.token
}

func (e *Engine) start() {
	if e.failure != nil || e.active {
		return
	}
	e.active = true
	if e.newSpan != nil {
		e.ctx, _ = e.newSpan(context.Background(), "")
	}
	e.logger.DebugContext(e.ctx, "run start", "work", len(e.work))
}

func (e *Engine) finish() {
	e.active = false
	e.halted = false
	e.immediate = nil
	e.logger.DebugContext(e.ctx, "run finished", "scope depth", e.scopes.Depth())
	e.ctx = context.Background()
	e.emit(Event{
		Kind: EventCompleted,
	})
}

// Terminate drops all pending work and rejects its completion tokens.
// Scope frames above the base are discarded; field values are kept.
func (e *Engine) Terminate() {
	for _, item := range e.work {
		item.token.Reject(ErrTerminated)
	}
	wasActive := e.active || len(e.work) > 0
	e.work = nil
	e.active = false
	e.halted = false
	e.immediate = nil
	for e.scopes.Depth() > 1 {
		if _, err := e.scopes.Pop(); err != nil {
			break
		}
	}
	if wasActive {
		e.logger.InfoContext(e.ctx, "terminated")
		e.ctx = context.Background()
		e.emit(Event{
			Kind: EventTerminated,
		})
	}
}

// Call invokes a registered method with arguments and returns a future of its return value.
// The call is queued after any pending work.
func (e *Engine) Call(method string, args map[string]any) *futures.Future[any] {
	if e.failure != nil {
		return futures.Rejected[any](e.failure)
	}

	call := insts.NewCall(method, func(*insts.Vars) map[string]any {
		return args
	}, ImmediateReturn)
	if m, ok := e.methods[method]; ok {
		call.Describe(describeCall(m, args))
	}

	capture := e.newItem(insts.NewRun("return "+method, nil))
	capture.exec = func(item *workItem) error {
		value := e.immediate
		e.immediate = nil
		e.pop()
		e.complete(item, value)
		return nil
	}

	e.enqueue(e.newItem(call), capture)
	e.start()
	return capture.token
}

func describeCall(method *insts.Method, args map[string]any) string {
	values := lo.Map(method.ArgNames(), func(name string, _ int) string {
		return fmt.Sprint(args[name])
	})
	return method.Name() + "(" + strings.Join(values, ", ") + ")"
}

func (e *Engine) Pause() {
	if !e.active || e.halted {
		return
	}
	e.halted = true
	if top := e.top(); top != nil {
		e.logger.InfoContext(e.ctx, "paused", "instruction", top.inst.Description())
		e.emit(Event{
			Kind:        EventHalted,
			Instruction: top.inst,
		})
	}
}

// Resume clears the halt and dispatches the top item once without checking its breakpoint.
func (e *Engine) Resume() error {
	if !e.active || !e.halted {
		return nil
	}
	e.halted = false
	e.emit(Event{
		Kind: EventResumed,
	})
	return e.step(true)
}

// StepOver dispatches the halted item once and stays halted.
func (e *Engine) StepOver() error {
	if !e.active || !e.halted {
		return nil
	}
	return e.step(true)
}

// StepNext marks the item below the halted one and resumes,
// so the engine halts again when that item reaches the top.
func (e *Engine) StepNext() error {
	if !e.active || !e.halted {
		return nil
	}
	if len(e.work) >= 2 {
		e.work[len(e.work)-2].transient = true
	}
	return e.Resume()
}

// Tick performs one dispatch when the engine is running.
// It returns the failure of the dispatch it performed, if any.
func (e *Engine) Tick() error {
	if !e.active || e.halted {
		return nil
	}
	return e.step(false)
}

// Run ticks until the engine stops. On a halt it yields StateHalted; the consumer
// may resume or step before returning true, and Run stops if it is still halted.
func (e *Engine) Run(yield func(State, error) bool) {
	for {
		switch e.State() {
		case StateIdle:
			return
		case StateFailed:
			yield(StateFailed, e.failure)
			return
		case StateHalted:
			steps := e.steps
			if !yield(StateHalted, nil) {
				return
			}
			if e.State() == StateHalted && e.steps == steps {
				// nothing dispatched while yielding
				return
			}
			continue
		}
		if err := e.Tick(); err != nil {
			yield(StateFailed, err)
			return
		}
	}
}

func (e *Engine) deactivate(inst insts.Instruction) {
	if e.config.ActiveDelay <= 0 {
		inst.SetActive(false)
		return
	}
	time.AfterFunc(e.config.ActiveDelay, func() {
		inst.SetActive(false)
	})
}

func (e *Engine) breakpointsHidden() bool {
	return e.config.Breakpoints != nil && e.config.Breakpoints.BreakpointsHidden()
}
