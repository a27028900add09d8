package stepvm

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/reusee/stepviz/insts"
)

func TestBreakpointRoundTrip(t *testing.T) {
	e := New(Config{}, nil, nil)
	var trace []string
	r1 := tracer(&trace, "r1")
	r2 := tracer(&trace, "r2")
	r3 := tracer(&trace, "r3")
	r2.SetBreakpoint(true)
	load(t, e, insts.NewMethod("m", nil, r1, r2, r3))

	var halts int
	cancel := e.Subscribe(func(ev Event) {
		if ev.Kind == EventHalted {
			halts++
			if ev.Instruction != r2 {
				t.Fatalf("got %v", ev.Instruction)
			}
		}
	})
	defer cancel()

	res := e.Call("m", nil)
	drain(t, e)
	if e.State() != StateHalted {
		t.Fatalf("got %v", e.State())
	}
	if e.Top() != r2 {
		t.Fatalf("got %v", e.Top())
	}
	if !slices.Equal(trace, []string{"r1"}) {
		t.Fatalf("got %v", trace)
	}

	// ticks do nothing while halted
	for range 10 {
		if err := e.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	if len(trace) != 1 {
		t.Fatalf("got %v", trace)
	}

	if err := e.Resume(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(trace, []string{"r1", "r2"}) {
		t.Fatalf("got %v", trace)
	}
	drain(t, e)
	if e.State() != StateIdle {
		t.Fatalf("got %v", e.State())
	}
	if !slices.Equal(trace, []string{"r1", "r2", "r3"}) {
		t.Fatalf("got %v", trace)
	}
	if !res.Settled() {
		t.Fatal("should settle")
	}
	if halts != 1 {
		t.Fatalf("got %v", halts)
	}

	// persistent
	e.Call("m", nil)
	drain(t, e)
	if e.State() != StateHalted || e.Top() != r2 {
		t.Fatalf("got %v", e.State())
	}
}

func TestStepOver(t *testing.T) {
	e := New(Config{}, nil, nil)
	var trace []string
	r1 := tracer(&trace, "r1")
	r2 := tracer(&trace, "r2")
	r3 := tracer(&trace, "r3")
	r1.SetBreakpoint(true)
	load(t, e, insts.NewMethod("m", nil, r1, r2, r3))

	res := e.Call("m", nil)
	drain(t, e)
	if e.Top() != r1 {
		t.Fatalf("got %v", e.Top())
	}

	if err := e.StepOver(); err != nil {
		t.Fatal(err)
	}
	if e.State() != StateHalted || e.Top() != r2 {
		t.Fatalf("got %v %v", e.State(), e.Top())
	}
	if err := e.StepOver(); err != nil {
		t.Fatal(err)
	}
	if e.Top() != r3 || !slices.Equal(trace, []string{"r1", "r2"}) {
		t.Fatalf("got %v", trace)
	}

	for i := 0; e.State() == StateHalted; i++ {
		if i > 10 {
			t.Fatal("too many steps")
		}
		if err := e.StepOver(); err != nil {
			t.Fatal(err)
		}
	}
	if e.State() != StateIdle {
		t.Fatalf("got %v", e.State())
	}
	if !slices.Equal(trace, []string{"r1", "r2", "r3"}) {
		t.Fatalf("got %v", trace)
	}
	if !res.Settled() {
		t.Fatal()
	}

	// no-op when not halted
	if err := e.StepOver(); err != nil {
		t.Fatal(err)
	}
}

func TestStepNext(t *testing.T) {
	e := New(Config{}, nil, nil)
	var trace []string
	a := tracer(&trace, "a")
	b := tracer(&trace, "b")
	c := tracer(&trace, "c")
	d := tracer(&trace, "d")
	a.SetBreakpoint(true)
	block := insts.NewIf("block", always, b, c)
	load(t, e, insts.NewMethod("m", nil, a, block, d))

	e.Call("m", nil)
	drain(t, e)
	if e.Top() != a {
		t.Fatalf("got %v", e.Top())
	}

	if err := e.StepNext(); err != nil {
		t.Fatal(err)
	}
	drain(t, e)
	if e.State() != StateHalted || e.Top() != block {
		t.Fatalf("got %v %v", e.State(), e.Top())
	}
	if !slices.Equal(trace, []string{"a"}) {
		t.Fatalf("got %v", trace)
	}

	// steps over the whole block
	if err := e.StepNext(); err != nil {
		t.Fatal(err)
	}
	drain(t, e)
	if e.State() != StateHalted || e.Top() != d {
		t.Fatalf("got %v %v", e.State(), e.Top())
	}
	if !slices.Equal(trace, []string{"a", "b", "c"}) {
		t.Fatalf("got %v", trace)
	}

	if err := e.Resume(); err != nil {
		t.Fatal(err)
	}
	drain(t, e)
	// transient marks are one-shot
	if e.State() != StateIdle {
		t.Fatalf("got %v", e.State())
	}
	if a.Breakpoint() != true {
		t.Fatal("breakpoint should persist")
	}
}

func TestStepNextOutOfBlock(t *testing.T) {
	e := New(Config{}, nil, nil)
	var trace []string
	b := tracer(&trace, "b")
	c := tracer(&trace, "c")
	d := tracer(&trace, "d")
	c.SetBreakpoint(true)
	load(t, e, insts.NewMethod("m", nil,
		insts.NewIf("", always, b, c),
		d,
	))
	e.Call("m", nil)
	drain(t, e)
	if e.Top() != c {
		t.Fatalf("got %v", e.Top())
	}
	if err := e.StepNext(); err != nil {
		t.Fatal(err)
	}
	drain(t, e)
	if e.State() != StateHalted || e.Top() != d {
		t.Fatalf("got %v %v", e.State(), e.Top())
	}
}

func TestHiddenBreakpoints(t *testing.T) {
	e := New(Config{
		Breakpoints: HideBreakpoints(true),
	}, nil, nil)
	var trace []string
	r := tracer(&trace, "r")
	r.SetBreakpoint(true)
	load(t, e, insts.NewMethod("m", nil, r))
	e.Call("m", nil)
	drain(t, e)
	if e.State() != StateIdle {
		t.Fatalf("got %v", e.State())
	}
	if len(trace) != 1 {
		t.Fatalf("got %v", trace)
	}
}

func TestPause(t *testing.T) {
	e := New(Config{}, nil, nil)
	n := 0
	load(t, e, insts.NewMethod("spin", nil,
		insts.NewWhile("", always,
			insts.NewRun("", func(*insts.Vars) {
				n++
			}),
		),
	))
	res := e.Call("spin", nil)
	for range 20 {
		if err := e.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	e.Pause()
	if e.State() != StateHalted {
		t.Fatalf("got %v", e.State())
	}
	count := n
	for range 20 {
		if err := e.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	if n != count {
		t.Fatalf("got %v", n)
	}

	e.Terminate()
	if e.State() != StateIdle {
		t.Fatalf("got %v", e.State())
	}
	if _, err := res.Result(); !errors.Is(err, ErrTerminated) {
		t.Fatalf("got %v", err)
	}
	if e.ScopeDepth() != 1 || e.WorkDepth() != 0 {
		t.Fatal()
	}
}

func TestRunIterator(t *testing.T) {
	e := New(Config{}, nil, nil)
	var trace []string
	r1 := tracer(&trace, "r1")
	r1.SetBreakpoint(true)
	load(t, e, insts.NewMethod("m", nil, r1, tracer(&trace, "r2")))

	e.Call("m", nil)
	halts := 0
	for state, err := range e.Run {
		if err != nil {
			t.Fatal(err)
		}
		if state == StateHalted {
			halts++
			if err := e.Resume(); err != nil {
				t.Fatal(err)
			}
		}
	}
	if halts != 1 || e.State() != StateIdle {
		t.Fatalf("got %v %v", halts, e.State())
	}

	// stops when left halted
	e.Call("m", nil)
	for range e.Run {
	}
	if e.State() != StateHalted {
		t.Fatalf("got %v", e.State())
	}
}

func TestFailureAndReset(t *testing.T) {
	e := New(Config{}, nil, nil)
	var failed []error
	e.Subscribe(func(ev Event) {
		if ev.Kind == EventFailed {
			failed = append(failed, ev.Err)
		}
	})
	load(t, e, insts.NewMethod("m", nil,
		insts.NewCall("nope", nil, ""),
	))

	res := e.Call("m", nil)
	err := tickAll(e)
	if !errors.Is(err, insts.ErrMethodNotFound) {
		t.Fatalf("got %v", err)
	}
	if e.State() != StateFailed || e.Err() != err {
		t.Fatalf("got %v", e.State())
	}
	var dispatchErr *DispatchError
	if !errors.As(err, &dispatchErr) {
		t.Fatalf("got %T", err)
	}
	if dispatchErr.Instruction.Kind() != insts.KindCall {
		t.Fatalf("got %v", dispatchErr.Instruction)
	}
	if !slices.Equal(dispatchErr.CallPath, []string{"nope(?)", "m()"}) {
		t.Fatalf("got %v", dispatchErr.CallPath)
	}
	if !strings.Contains(err.Error(), "method not found: nope") {
		t.Fatalf("got %v", err)
	}
	if len(failed) != 1 {
		t.Fatalf("got %v", failed)
	}

	// frozen for inspection
	if e.WorkDepth() == 0 || e.ScopeDepth() != 2 {
		t.Fatalf("got %v %v", e.WorkDepth(), e.ScopeDepth())
	}
	if _, err := res.Result(); !errors.Is(err, ErrFailed) {
		t.Fatalf("got %v", err)
	}
	if err := e.Tick(); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Call("m", nil).Result(); !errors.Is(err, ErrFailed) {
		t.Fatalf("got %v", err)
	}
	dump := e.Dump()
	if dump.State != "failed" || dump.Error == "" {
		t.Fatalf("got %+v", dump)
	}

	e.Reset()
	drain(t, e)
	if e.State() != StateIdle || e.Err() != nil {
		t.Fatalf("got %v", e.State())
	}
	if !slices.Equal(e.Methods(), []string{"m"}) {
		t.Fatalf("got %v", e.Methods())
	}
	if e.ScopeDepth() != 1 || e.WorkDepth() != 0 {
		t.Fatal()
	}
}

func TestCallbackErrors(t *testing.T) {
	e := New(Config{}, nil, nil)
	load(t, e,
		insts.NewMethod("panics", nil,
			insts.NewRun("", func(*insts.Vars) {
				panic("boom")
			}),
		),
		insts.NewMethod("undefined", nil,
			insts.NewRun("", func(v *insts.Vars) {
				v.Write("nope", 1)
			}),
		),
	)

	e.Call("panics", nil)
	if err := tickAll(e); !errors.Is(err, ErrPanic) {
		t.Fatalf("got %v", err)
	}
	e.Reset()
	drain(t, e)

	e.Call("undefined", nil)
	if err := tickAll(e); !errors.Is(err, insts.ErrUndefinedVariable) {
		t.Fatalf("got %v", err)
	}
}

func TestNoProgram(t *testing.T) {
	e := New(Config{}, nil, nil)
	e.Call("m", nil)
	if err := tickAll(e); !errors.Is(err, insts.ErrMethodNotFound) {
		t.Fatalf("got %v", err)
	}
	if _, err := e.CreateSnapshot(); !errors.Is(err, ErrNoProgram) {
		t.Fatalf("got %v", err)
	}
	res := e.Reset()
	if !res.Settled() || e.State() != StateIdle {
		t.Fatal()
	}
}

func TestCallPathAndDump(t *testing.T) {
	e := New(Config{}, nil, nil)
	inner := insts.NewRun("inner", nil)
	inner.SetBreakpoint(true)
	load(t, e, insts.NewMethod("f", insts.Params("x"),
		insts.NewWhile("loop", always,
			inner,
		),
	))
	res := e.Call("f", map[string]any{"x": 21})
	drain(t, e)
	if e.State() != StateHalted {
		t.Fatalf("got %v", e.State())
	}

	path := e.CallPath()
	if len(path) != 3 {
		t.Fatalf("got %v", path)
	}
	if path[0] != inner || path[1].Description() != "loop" || path[2].Description() != "f(21)" {
		t.Fatalf("got %v", path)
	}
	if !path[2].Active() {
		t.Fatal("call should be active")
	}

	dump := e.Dump()
	if dump.State != "halted" {
		t.Fatalf("got %v", dump.State)
	}
	if len(dump.Frames) != 3 {
		t.Fatalf("got %+v", dump.Frames)
	}
	callFrame := dump.Frames[1]
	if callFrame.Label != "f(x)" || len(callFrame.Vars) != 1 ||
		callFrame.Vars[0].Name != "x" || callFrame.Vars[0].Value != "21" {
		t.Fatalf("got %+v", callFrame)
	}
	if dump.Work[0] != "inner" {
		t.Fatalf("got %v", dump.Work)
	}
	if e.Instruction(path[2].ID()) != path[2] {
		t.Fatal("pending call should be found")
	}

	e.Terminate()
	if _, err := res.Result(); !errors.Is(err, ErrTerminated) {
		t.Fatalf("got %v", err)
	}
	if path[2].Active() {
		t.Fatal("call should be inactive")
	}
}

func TestEvents(t *testing.T) {
	e := New(Config{}, nil, nil)
	var kinds []EventKind
	cancel := e.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
	})
	load(t, e, insts.NewMethod("m", nil))
	e.Call("m", nil)
	drain(t, e)
	want := []EventKind{EventMethods, EventCompleted, EventCompleted}
	if !slices.Equal(kinds, want) {
		t.Fatalf("got %v", kinds)
	}
	cancel()
	e.Call("m", nil)
	drain(t, e)
	if len(kinds) != len(want) {
		t.Fatalf("got %v", kinds)
	}
}
