package stepvm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reusee/stepviz/futures"
	"github.com/reusee/stepviz/insts"
)

func TestDriver(t *testing.T) {
	e := New(Config{
		TickInterval: time.Millisecond,
	}, nil, nil)
	d := NewDriver(e)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- d.Loop(ctx)
	}()

	var res *futures.Future[any]
	if err := d.Do(func(e *Engine) error {
		e.Load(insts.NewProgram("test", nil, []*insts.Method{
			insts.NewMethod("f", insts.Params("x"),
				insts.NewReturn(func(v *insts.Vars) any {
					return v.Int("x") * 2
				}),
			),
		}))
		res = e.Call("f", map[string]any{"x": 21})
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	waitCtx, waitCancel := context.WithTimeout(ctx, time.Second*10)
	defer waitCancel()
	v, err := res.Wait(waitCtx)
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Fatalf("got %v", v)
	}

	var state State
	d.Do(func(e *Engine) error {
		state = e.State()
		return nil
	})
	if state != StateIdle {
		t.Fatalf("got %v", state)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}
