package stepvm

import (
	"github.com/reusee/stepviz/futures"
	"github.com/reusee/stepviz/snapshots"
)

func (e *Engine) CreateSnapshot() (snapshots.Snapshot, error) {
	if e.program == nil {
		return snapshots.Snapshot{}, ErrNoProgram
	}
	return e.program.CreateSnapshot()
}

// ApplySnapshot queues one synchronous call per resolved invocation, in order.
// The returned future settles with the last call.
func (e *Engine) ApplySnapshot(snapshot snapshots.Snapshot) (*futures.Future[any], error) {
	if e.program == nil {
		return nil, ErrNoProgram
	}
	invocations, err := e.program.ResolveImport(snapshot)
	if err != nil {
		return nil, err
	}
	e.logger.InfoContext(e.ctx, "apply snapshot",
		"elements", snapshot.Len(),
		"calls", len(invocations),
	)
	last := futures.Resolved[any](nil)
	for _, invocation := range invocations {
		last = e.Call(invocation.Method.Name(), invocation.Args)
	}
	return last, nil
}
