package stepvm

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/reusee/stepviz/insts"
)

func TestRegistration(t *testing.T) {
	e := New(Config{}, nil, nil)
	program := insts.NewProgram("test", []*insts.Field{
		insts.NewField("a", 1),
		insts.NewField("b", nil),
	}, []*insts.Method{
		insts.NewMethod("f", nil),
		insts.NewMethod("g", insts.Params("x")).Public(),
	})
	loaded := e.Load(program)
	if e.State() != StateRunning {
		t.Fatalf("got %v", e.State())
	}
	drain(t, e)

	if e.State() != StateIdle {
		t.Fatalf("got %v", e.State())
	}
	if e.WorkDepth() != 0 {
		t.Fatalf("got %v", e.WorkDepth())
	}
	if e.ScopeDepth() != 1 {
		t.Fatalf("got %v", e.ScopeDepth())
	}
	if !slices.Equal(e.Methods(), []string{"f", "g"}) {
		t.Fatalf("got %v", e.Methods())
	}
	if !loaded.Settled() {
		t.Fatal("should be loaded")
	}
	runnable := e.Runnable()
	if len(runnable) != 1 || runnable[0].Name() != "g" {
		t.Fatalf("got %v", runnable)
	}
	if v, ok := e.Lookup("a"); !ok || v != 1 {
		t.Fatalf("got %v", v)
	}
	if _, ok := e.Lookup("b"); !ok {
		t.Fatal("field should be declared")
	}
	if e.Instruction(program.Methods()[1].ID()) != program.Methods()[1] {
		t.Fatal("instruction not found")
	}
}

func TestDuplicateField(t *testing.T) {
	e := New(Config{}, nil, nil)
	e.Load(insts.NewProgram("test", []*insts.Field{
		insts.NewField("a", 1),
		insts.NewField("a", 2),
	}, nil))
	err := tickAll(e)
	if !errors.Is(err, insts.ErrDuplicateField) {
		t.Fatalf("got %v", err)
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	e := New(Config{}, nil, nil)
	second := insts.NewLet("", "x", value(2))
	load(t, e, insts.NewMethod("m", nil,
		insts.NewLet("", "x", value(1)),
		second,
	))

	res := e.Call("m", nil)
	err := tickAll(e)
	if !errors.Is(err, insts.ErrDuplicateDeclaration) {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(err, ErrFailed) {
		t.Fatalf("got %v", err)
	}
	if e.State() != StateFailed {
		t.Fatalf("got %v", e.State())
	}
	// frozen
	if e.Top() != second {
		t.Fatalf("got %v", e.Top())
	}
	if e.ScopeDepth() != 2 {
		t.Fatalf("got %v", e.ScopeDepth())
	}
	if _, err := res.Result(); !errors.Is(err, insts.ErrDuplicateDeclaration) {
		t.Fatalf("got %v", err)
	}
	if err := e.Tick(); err != nil {
		t.Fatalf("got %v", err)
	}
}

func TestRedeclareAcrossIterations(t *testing.T) {
	e := New(Config{}, nil, nil)
	var collected []int
	load(t, e, insts.NewMethod("m", nil,
		insts.NewLet("", "n", value(0)),
		insts.NewWhile("", func(v *insts.Vars) bool {
			return v.Int("n") < 3
		},
			insts.NewLet("", "x", func(v *insts.Vars) any {
				return v.Int("n") * 10
			}),
			insts.NewRun("", func(v *insts.Vars) {
				collected = append(collected, v.Int("x"))
				v.PostIncrement("n")
			}),
		),
	))
	e.Call("m", nil)
	drain(t, e)
	if str := fmt.Sprintf("%v", collected); str != "[0 10 20]" {
		t.Fatalf("got %s", str)
	}
	if e.ScopeDepth() != 1 {
		t.Fatalf("got %v", e.ScopeDepth())
	}
}

func TestForI(t *testing.T) {
	e := New(Config{}, nil, nil)
	var collected []int
	var depths []int
	recordDepth := insts.NewRun("", func(*insts.Vars) {
		depths = append(depths, e.ScopeDepth())
	})
	load(t, e, insts.NewMethod("loop", nil,
		recordDepth,
		insts.NewForI("", "i", insts.Const(0), func(v *insts.Vars, i int) bool {
			return i < 5
		}, insts.Const(1),
			insts.NewLet("", "double", func(v *insts.Vars) any {
				return v.Int("i") * 2
			}),
			insts.NewRun("", func(v *insts.Vars) {
				collected = append(collected, v.Int("i"))
			}),
		),
		recordDepth,
	))
	e.Call("loop", nil)
	drain(t, e)

	if str := fmt.Sprintf("%v", collected); str != "[0 1 2 3 4]" {
		t.Fatalf("got %s", str)
	}
	if len(depths) != 2 || depths[0] != depths[1] {
		t.Fatalf("got %v", depths)
	}
	if e.ScopeDepth() != 1 {
		t.Fatalf("got %v", e.ScopeDepth())
	}
}

func TestForIStep(t *testing.T) {
	e := New(Config{}, nil, nil)
	var collected []int
	load(t, e, insts.NewMethod("loop", insts.Params("n"),
		insts.NewForI("", "j", func(v *insts.Vars) int {
			return v.Int("n")
		}, func(v *insts.Vars, j int) bool {
			return j > 0
		}, insts.Const(-2),
			insts.NewRun("", func(v *insts.Vars) {
				collected = append(collected, v.Int("j"))
			}),
		),
	))
	e.Call("loop", map[string]any{"n": 7})
	drain(t, e)
	if str := fmt.Sprintf("%v", collected); str != "[7 5 3 1]" {
		t.Fatalf("got %s", str)
	}
}

func TestForIStepReadsBodyWrites(t *testing.T) {
	e := New(Config{}, nil, nil)
	var collected []int
	load(t, e, insts.NewMethod("loop", nil,
		insts.NewLet("", "k", value(1)),
		insts.NewForI("", "i", insts.Const(0), func(v *insts.Vars, i int) bool {
			return i < 10
		}, func(v *insts.Vars) int {
			return v.Int("k")
		},
			insts.NewRun("", func(v *insts.Vars) {
				collected = append(collected, v.Int("i"))
				v.Write("k", 3)
			}),
		),
	))
	e.Call("loop", nil)
	drain(t, e)
	if str := fmt.Sprintf("%v", collected); str != "[0 3 6 9]" {
		t.Fatalf("got %s", str)
	}
	if e.State() != StateIdle {
		t.Fatalf("got %v", e.State())
	}
}

func TestCallReturn(t *testing.T) {
	e := New(Config{}, nil, nil)
	load(t, e, insts.NewMethod("f", insts.Params("x"),
		insts.NewReturn(func(v *insts.Vars) any {
			return v.Int("x") * 2
		}),
	))
	depth := e.ScopeDepth()
	res := e.Call("f", map[string]any{"x": 21})
	drain(t, e)
	v, err := res.Result()
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Fatalf("got %v", v)
	}
	if e.ScopeDepth() != depth {
		t.Fatalf("got %v", e.ScopeDepth())
	}
	if e.State() != StateIdle {
		t.Fatalf("got %v", e.State())
	}
}

func TestFallOffEnd(t *testing.T) {
	e := New(Config{}, nil, nil)
	var got any = "not written"
	load(t, e,
		insts.NewMethod("noop", nil),
		insts.NewMethod("caller", nil,
			insts.NewLet("", "r", value(1)),
			insts.NewCall("noop", nil, "r"),
			insts.NewRun("", func(v *insts.Vars) {
				got = v.Read("r")
			}),
		),
	)
	res := e.Call("caller", nil)
	drain(t, e)
	if got != nil {
		t.Fatalf("got %v", got)
	}
	if v, err := res.Result(); err != nil || v != nil {
		t.Fatalf("got %v %v", v, err)
	}
}

func TestNestedReturn(t *testing.T) {
	e := New(Config{}, nil, nil)
	unreachable := false
	var depths []int
	var result any
	recordDepth := insts.NewRun("", func(*insts.Vars) {
		depths = append(depths, e.ScopeDepth())
	})
	load(t, e,
		insts.NewMethod("find", insts.Params("n"),
			insts.NewLet("", "i", value(0)),
			insts.NewWhile("", always,
				insts.NewRun("i++", func(v *insts.Vars) {
					v.PostIncrement("i")
				}),
				insts.NewIf("", func(v *insts.Vars) bool {
					return v.Int("i") == v.Int("n")
				},
					insts.NewWhile("", always,
						insts.NewReturn(func(v *insts.Vars) any {
							return v.Int("i") * 10
						}),
					),
				),
			),
			insts.NewRun("", func(*insts.Vars) {
				unreachable = true
			}),
		),
		insts.NewMethod("outer", nil,
			insts.NewLet("", "r", nil),
			recordDepth,
			insts.NewCall("find", insts.Bind("n", value(3)), "r"),
			recordDepth,
			insts.NewRun("", func(v *insts.Vars) {
				result = v.Read("r")
			}),
			insts.NewReturn(func(v *insts.Vars) any {
				return v.Read("r")
			}),
		),
	)

	res := e.Call("outer", nil)
	drain(t, e)
	if unreachable {
		t.Fatal("should not reach")
	}
	if result != 30 {
		t.Fatalf("got %v", result)
	}
	if v, _ := res.Result(); v != 30 {
		t.Fatalf("got %v", v)
	}
	if len(depths) != 2 || depths[0] != depths[1] || depths[0] != 2 {
		t.Fatalf("got %v", depths)
	}
	if e.ScopeDepth() != 1 || e.WorkDepth() != 0 {
		t.Fatal()
	}
}

func TestReturnSkipsPendingCall(t *testing.T) {
	e := New(Config{}, nil, nil)
	load(t, e, insts.NewMethod("h", nil,
		insts.NewIf("", always,
			insts.NewReturn(value(1)),
		),
		insts.NewCall("missing", nil, ""),
	))
	res := e.Call("h", nil)
	drain(t, e)
	if v, err := res.Result(); err != nil || v != 1 {
		t.Fatalf("got %v %v", v, err)
	}
}

func TestRecursion(t *testing.T) {
	e := New(Config{}, nil, nil)
	load(t, e, insts.NewMethod("fact", insts.Params("n"),
		insts.NewIfElse("", func(v *insts.Vars) bool {
			return v.Int("n") <= 1
		}, []insts.Instruction{
			insts.NewReturn(value(1)),
		}, []insts.Instruction{
			insts.NewLet("", "r", nil),
			insts.NewCall("fact", insts.Bind("n", func(v *insts.Vars) any {
				return v.Int("n") - 1
			}), "r"),
			insts.NewReturn(func(v *insts.Vars) any {
				return v.Int("n") * v.Int("r")
			}),
		}),
	))
	res := e.Call("fact", map[string]any{"n": 5})
	drain(t, e)
	if v, err := res.Result(); err != nil || v != 120 {
		t.Fatalf("got %v %v", v, err)
	}
	if e.ScopeDepth() != 1 {
		t.Fatalf("got %v", e.ScopeDepth())
	}
}

func TestCallsInOrder(t *testing.T) {
	e := New(Config{}, nil, nil)
	var trace []int
	load(t, e, insts.NewMethod("add", insts.Params("x"),
		insts.NewRun("", func(v *insts.Vars) {
			trace = append(trace, v.Int("x"))
		}),
	))
	e.Call("add", map[string]any{"x": 1})
	e.Call("add", map[string]any{"x": 2})
	e.Call("add", map[string]any{"x": 3})
	drain(t, e)
	if str := fmt.Sprintf("%v", trace); str != "[1 2 3]" {
		t.Fatalf("got %s", str)
	}
}
