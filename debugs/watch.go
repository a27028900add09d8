package debugs

import (
	"context"

	"github.com/reusee/stepviz/logs"
	"github.com/reusee/stepviz/stepvm"
	"go.starlark.net/starlark"
)

// Eval evaluates a starlark expression against the engine state.
func Eval(e *stepvm.Engine, expr string) (starlark.Value, error) {
	thread := &starlark.Thread{
		Name: "watch",
	}
	return starlark.EvalOptions(fileOptions, thread, "watch", expr, toStringDict(EngineGlobals(e)))
}

type WatchResult struct {
	Expr  string
	Value starlark.Value
	Err   error
}

// Watch holds expressions re-evaluated each time the engine halts.
type Watch struct {
	exprs  []string
	logger logs.Logger
}

type NewWatch func(exprs ...string) *Watch

func (Module) NewWatch(
	logger logs.Logger,
) NewWatch {
	return func(exprs ...string) *Watch {
		return &Watch{
			exprs:  exprs,
			logger: logger,
		}
	}
}

func (w *Watch) Add(expr string) {
	w.exprs = append(w.exprs, expr)
}

func (w *Watch) Evaluate(e *stepvm.Engine) []WatchResult {
	ret := make([]WatchResult, 0, len(w.exprs))
	for _, expr := range w.exprs {
		value, err := Eval(e, expr)
		ret = append(ret, WatchResult{
			Expr:  expr,
			Value: value,
			Err:   err,
		})
	}
	return ret
}

// Attach logs every watch result when e halts.
func (w *Watch) Attach(ctx context.Context, e *stepvm.Engine) (cancel func()) {
	return e.Subscribe(func(ev stepvm.Event) {
		if ev.Kind != stepvm.EventHalted {
			return
		}
		for _, result := range w.Evaluate(e) {
			if result.Err != nil {
				w.logger.WarnContext(ctx, "watch",
					"expr", result.Expr,
					"error", result.Err,
				)
				continue
			}
			w.logger.InfoContext(ctx, "watch",
				"expr", result.Expr,
				"value", result.Value.String(),
			)
		}
	})
}
