package stepvm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/stepviz/insts"
	"github.com/reusee/stepviz/logs"
)

var (
	ErrFailed     = errors.New("engine failed")
	ErrTerminated = errors.New("terminated")
	ErrNoProgram  = errors.New("no program loaded")
	ErrPanic      = errors.New("panic in instruction")
)

// DispatchError is the failure recorded when a dispatch goes wrong.
// It matches both ErrFailed and the underlying cause with errors.Is.
type DispatchError struct {
	Err         error
	Instruction insts.Instruction
	CallPath    []string
	// Span of the failed run, empty when the engine has no span factory
	Span logs.Span
}

func (d *DispatchError) Error() string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "%v", d.Err)
	if d.Instruction != nil {
		fmt.Fprintf(b, " at %s", d.Instruction.Description())
	}
	if len(d.CallPath) > 0 {
		fmt.Fprintf(b, " (%s)", strings.Join(d.CallPath, " <- "))
	}
	if d.Span != "" {
		fmt.Fprintf(b, " [span %s]", d.Span)
	}
	return b.String()
}

func (d *DispatchError) Unwrap() []error {
	return []error{ErrFailed, d.Err}
}
