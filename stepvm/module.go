package stepvm

import (
	"fmt"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/stepviz/configs"
	"github.com/reusee/stepviz/logs"
	"github.com/reusee/stepviz/modes"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}

func (Module) HideBreakpoints(
	loader configs.Loader,
) HideBreakpoints {
	return configs.First[HideBreakpoints](loader, "hide_breakpoints")
}

func (Module) Config(
	loader configs.Loader,
	mode modes.Mode,
	hide HideBreakpoints,
) Config {
	config := DefaultConfig()
	if str := configs.First[string](loader, "tick_interval"); str != "" {
		config.TickInterval = mustParseDuration("tick_interval", str)
	}
	if str := configs.First[string](loader, "active_delay"); str != "" {
		config.ActiveDelay = mustParseDuration("active_delay", str)
	}
	if mode == modes.ModeDevelopment {
		config.ActiveDelay = 0
	}
	config.Breakpoints = hide
	return config
}

func mustParseDuration(key string, str string) time.Duration {
	d, err := time.ParseDuration(str)
	if err != nil {
		panic(fmt.Errorf("config %s: %w", key, err))
	}
	return d
}

type NewEngine func() *Engine

func (Module) NewEngine(
	config Config,
	logger logs.Logger,
	newSpan logs.NewSpan,
) NewEngine {
	return func() *Engine {
		return New(config, logger, newSpan)
	}
}
