package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/stepviz/logs"
	"github.com/reusee/stepviz/stepvm"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

// Tap opens an interactive starlark REPL on stdin with globals bound.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()
		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(fileOptions, thread, toStringDict(globals))
	}
}

// TapEngine opens a REPL over the live state of e.
type TapEngine func(ctx context.Context, e *stepvm.Engine)

func (Module) TapEngine(
	tap Tap,
) TapEngine {
	return func(ctx context.Context, e *stepvm.Engine) {
		tap(ctx, e.State().String(), EngineGlobals(e))
	}
}

// EngineGlobals exposes the engine state to starlark.
// Visible variables are bound by name, innermost frame winning; the
// reserved names below are bound last.
func EngineGlobals(e *stepvm.Engine) map[string]any {
	ret := make(map[string]any)
	frames := make([]map[string]any, 0)
	for _, frame := range e.Frames() {
		bindings := make(map[string]any)
		for _, binding := range frame.Bindings() {
			bindings[binding.Name] = binding.Value
			ret[binding.Name] = binding.Value
		}
		frames = append(frames, map[string]any{
			"label": frame.Label,
			"vars":  bindings,
		})
	}
	dump := e.Dump()
	ret["frames"] = frames
	ret["call_path"] = dump.CallPath
	ret["work"] = dump.Work
	ret["state"] = dump.State
	ret["methods"] = dump.Methods
	return ret
}

func toStringDict(globals map[string]any) starlark.StringDict {
	ret := make(starlark.StringDict, len(globals))
	for name, value := range globals {
		ret[name] = toStarlarkValue(value)
	}
	return ret
}
