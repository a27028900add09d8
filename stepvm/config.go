package stepvm

import (
	"time"

	"github.com/reusee/stepviz/configs"
)

// BreakpointVisibility decides whether ticks honor breakpoint flags.
type BreakpointVisibility interface {
	BreakpointsHidden() bool
}

type HideBreakpoints bool

var _ BreakpointVisibility = HideBreakpoints(false)

var _ configs.Configurable = HideBreakpoints(false)

func (h HideBreakpoints) BreakpointsHidden() bool {
	return bool(h)
}

func (h HideBreakpoints) ConfigExpr() string {
	return "HideBreakpoints"
}

type Config struct {
	// TickInterval is the period of Driver.Loop
	TickInterval time.Duration
	// ActiveDelay postpones clearing the active flag of completed instructions
	ActiveDelay time.Duration
	Breakpoints BreakpointVisibility
}

func DefaultConfig() Config {
	return Config{
		TickInterval: time.Millisecond * 10,
		ActiveDelay:  time.Millisecond * 10,
	}
}
