package stepvm

import (
	"context"
	"time"

	"github.com/reusee/stepviz/syncs"
)

// Driver serializes access to an Engine from multiple goroutines and ticks it periodically.
type Driver struct {
	engine   *Engine
	sem      syncs.Semaphore
	interval time.Duration
}

func NewDriver(engine *Engine) *Driver {
	interval := engine.config.TickInterval
	if interval <= 0 {
		interval = DefaultConfig().TickInterval
	}
	return &Driver{
		engine:   engine,
		sem:      syncs.NewSemaphore(1),
		interval: interval,
	}
}

// Do runs fn with exclusive access to the engine.
func (d *Driver) Do(fn func(*Engine) error) error {
	return d.sem.With(func() error {
		return fn(d.engine)
	})
}

// Loop ticks the engine until ctx is done. A tick is skipped while a client
// holds the engine. Dispatch failures are logged by the engine and left in
// its failed state for clients to inspect.
func (d *Driver) Loop(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !d.sem.TryAcquire() {
				continue
			}
			_ = d.engine.Tick()
			d.sem.Release()
		}
	}
}
