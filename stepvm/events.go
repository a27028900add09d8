package stepvm

import "github.com/reusee/stepviz/insts"

type EventKind uint8

const (
	EventHalted EventKind = iota + 1
	EventResumed
	EventTerminated
	EventFailed
	EventMethods
	EventCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventHalted:
		return "halted"
	case EventResumed:
		return "resumed"
	case EventTerminated:
		return "terminated"
	case EventFailed:
		return "failed"
	case EventMethods:
		return "methods"
	case EventCompleted:
		return "completed"
	}
	return "unknown"
}

type Event struct {
	Kind        EventKind
	Instruction insts.Instruction
	Err         error
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for engine events. Handlers run synchronously on the
// goroutine driving the engine and must not call back into it.
func (e *Engine) Subscribe(fn func(Event)) (cancel func()) {
	e.serial++
	id := e.serial
	e.subscribers = append(e.subscribers, subscriber{
		id: id,
		fn: fn,
	})
	return func() {
		for i, sub := range e.subscribers {
			if sub.id == id {
				e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) emit(ev Event) {
	for _, sub := range e.subscribers {
		sub.fn(ev)
	}
}
