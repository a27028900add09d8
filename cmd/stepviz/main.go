package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/reusee/dscope"
	"github.com/reusee/stepviz/cmds"
	"github.com/reusee/stepviz/configs"
	"github.com/reusee/stepviz/debugs"
	"github.com/reusee/stepviz/futures"
	"github.com/reusee/stepviz/logs"
	"github.com/reusee/stepviz/modes"
	"github.com/reusee/stepviz/nets"
	"github.com/reusee/stepviz/snapshots"
	"github.com/reusee/stepviz/stepvm"
	"github.com/reusee/stepviz/storages"
)

var (
	programFlag     = cmds.Var[string]("-program", "program to load: linkedlist or rbtree")
	callFlags       = cmds.Collect[string]("-call", "call a public method, as method:arg,arg")
	breakFlags      = cmds.Collect[string]("-break", "toggle a breakpoint, as method.index")
	watchFlags      = cmds.Collect[string]("-watch", "starlark expression evaluated on every halt")
	hideBreakpoints = cmds.Switch("-hide-breakpoints", "run through breakpoints without halting")
	importFlag      = cmds.Var[string]("-import", "apply a JSON snapshot file")
	exportFlag      = cmds.Var[string]("-export", "write a JSON snapshot file after all calls")
	saveFlag        = cmds.Var[string]("-save", "save the final snapshot to the database under a name")
	loadFlag        = cmds.Var[string]("-load", "apply a snapshot saved in the database")
	serveFlag       = cmds.Switch("-serve", "serve the websocket debugger protocol")
	tapFlag         = cmds.Switch("-tap", "open a starlark REPL when execution halts")
	dumpFlag        = cmds.Switch("-dump", "print the engine state as YAML on exit")
	listenFlag      = cmds.Var[string]("-listen", "debugger listen address")
	modeFlag        = cmds.Var[string]("-mode", "production or development")
)

func main() {
	if err := cmds.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(2)
	}

	mode, err := modes.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	scope := dscope.New(
		new(Module),
		modes.ForRun(mode),
	)
	var overrides []any
	if *hideBreakpoints {
		overrides = append(overrides, stepvm.HideBreakpoints(true))
	}
	if *listenFlag != "" {
		overrides = append(overrides, nets.ListenAddr(*listenFlag))
	}
	scope = configs.Override(scope, overrides...)

	scope.Call(func(
		logger logs.Logger,
		newEngine stepvm.NewEngine,
		openStore storages.OpenStore,
		serve nets.Serve,
		tapEngine debugs.TapEngine,
		newWatch debugs.NewWatch,
	) {
		name := cmp.Or(*programFlag, "linkedlist")
		program, err := newProgram(name)
		ce(err)

		e := newEngine()
		if len(*watchFlags) > 0 {
			defer newWatch(*watchFlags...).Attach(ctx, e)()
		}
		ce(wait(ctx, e, e.Load(program), tapEngine))

		for _, spec := range *breakFlags {
			inst, err := setBreakpoint(e, spec)
			ce(err)
			logger.InfoContext(ctx, "breakpoint", "spec", spec, "instruction", inst.Description())
		}

		var store *storages.Store
		if *saveFlag != "" || *loadFlag != "" {
			store, err = openStore(ctx)
			ce(err)
			defer store.Close()
		}

		if *loadFlag != "" {
			snapshot, err := store.Load(ctx, name, *loadFlag)
			ce(err)
			ce(apply(ctx, e, snapshot, tapEngine))
		}

		if *importFlag != "" {
			f, err := os.Open(*importFlag)
			ce(err)
			snapshot, err := snapshots.ReadJSON(f)
			f.Close()
			ce(err)
			ce(apply(ctx, e, snapshot, tapEngine))
		}

		for _, spec := range *callFlags {
			method, args, err := parseCall(e, spec)
			ce(err)
			res := e.Call(method, args)
			ce(wait(ctx, e, res, tapEngine))
			value, err := res.Result()
			ce(err)
			fmt.Printf("%s => %s\n", spec, stepvm.FormatValue(value))
		}

		if *exportFlag != "" || *saveFlag != "" {
			snapshot, err := e.CreateSnapshot()
			ce(err)
			if *exportFlag != "" {
				f, err := os.Create(*exportFlag)
				ce(err)
				ce(snapshots.WriteJSON(f, snapshot))
				ce(f.Close())
			}
			if *saveFlag != "" {
				ce(store.Save(ctx, name, *saveFlag, snapshot))
			}
		}

		if *dumpFlag {
			ce(debugs.WriteDump(os.Stdout, e.Dump()))
		}

		if *serveFlag {
			driver := stepvm.NewDriver(e)
			go driver.Loop(ctx)
			if err := serve(ctx, driver); err != nil && ctx.Err() == nil {
				ce(err)
			}
		}
	})
}

func apply(ctx context.Context, e *stepvm.Engine, snapshot snapshots.Snapshot, tap debugs.TapEngine) error {
	res, err := e.ApplySnapshot(snapshot)
	if err != nil {
		return err
	}
	return wait(ctx, e, res, tap)
}

// wait runs the engine until res settles. Halts open a REPL when -tap is set
// and are resumed afterwards.
func wait(ctx context.Context, e *stepvm.Engine, res *futures.Future[any], tap debugs.TapEngine) error {
	for state, err := range e.Run {
		if err != nil {
			return err
		}
		if state == stepvm.StateHalted {
			if *tapFlag {
				tap(ctx, e)
			}
			if err := e.Resume(); err != nil {
				return err
			}
		}
		if ctx.Err() != nil {
			e.Terminate()
			return ctx.Err()
		}
	}
	_, err := res.Result()
	return err
}

func ce(err error) {
	if err != nil {
		panic(err)
	}
}
