package stepvm

type State uint8

const (
	StateIdle State = iota
	StateRunning
	StateHalted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}
