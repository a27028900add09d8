package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForRun provides the mode of a command line run. T is always nil.
type ModuleForRun struct {
	dscope.Module
	mode Mode
}

func ForRun(mode Mode) ModuleForRun {
	return ModuleForRun{
		mode: mode,
	}
}

func (ModuleForRun) T() *testing.T {
	return nil
}

func (m ModuleForRun) Mode() Mode {
	if m.mode == 0 {
		return ModeProduction
	}
	return m.mode
}

// ModuleForTest runs in development mode and routes logs to t.
type ModuleForTest struct {
	dscope.Module
	t *testing.T
}

func ForTest(t *testing.T) ModuleForTest {
	return ModuleForTest{
		t: t,
	}
}

func (m ModuleForTest) T() *testing.T {
	return m.t
}

func (ModuleForTest) Mode() Mode {
	return ModeDevelopment
}
