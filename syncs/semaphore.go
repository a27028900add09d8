package syncs

// Semaphore bounds concurrent holders to its capacity.
type Semaphore chan struct{}

func NewSemaphore(n int) Semaphore {
	return make(Semaphore, n)
}

func (s Semaphore) Acquire() {
	s <- struct{}{}
}

// TryAcquire reports whether a slot was taken without blocking.
func (s Semaphore) TryAcquire() bool {
	select {
	case s <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s Semaphore) Release() {
	<-s
}

// With runs fn while holding a slot.
func (s Semaphore) With(fn func() error) error {
	s.Acquire()
	defer s.Release()
	return fn()
}
