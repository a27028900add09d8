package stepvm

import (
	"testing"

	"github.com/reusee/stepviz/insts"
)

func tickAll(e *Engine) error {
	for i := 0; e.State() == StateRunning; i++ {
		if i > 1_000_000 {
			panic("too many ticks")
		}
		if err := e.Tick(); err != nil {
			return err
		}
	}
	return nil
}

func drain(t *testing.T, e *Engine) {
	t.Helper()
	if err := tickAll(e); err != nil {
		t.Fatal(err)
	}
}

func load(t *testing.T, e *Engine, methods ...*insts.Method) {
	t.Helper()
	loaded := e.Load(insts.NewProgram("test", nil, methods))
	drain(t, e)
	if _, err := loaded.Result(); err != nil {
		t.Fatal(err)
	}
}

func tracer(trace *[]string, name string) *insts.Run {
	return insts.NewRun(name, func(*insts.Vars) {
		*trace = append(*trace, name)
	})
}

func always(*insts.Vars) bool {
	return true
}

func value(v any) insts.Expr {
	return func(*insts.Vars) any {
		return v
	}
}
