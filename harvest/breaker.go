package harvest

import "sync"

// Breaker is a one-way latch halting all further processing once a fatal
// upstream condition (quota exhaustion, credential failure) is detected.
// It starts open and, once tripped, stays tripped for the rest of the run.
// Safe for concurrent use; reads require no locking beyond the channel.
type Breaker struct {
	once   sync.Once
	done   chan struct{}
	mu     sync.Mutex
	reason string
}

// NewBreaker returns an open Breaker.
func NewBreaker() *Breaker {
	return &Breaker{done: make(chan struct{})}
}

// Trip latches the breaker with the given reason. Only the first call's
// reason is retained; subsequent calls are no-ops.
func (b *Breaker) Trip(reason string) {
	b.once.Do(func() {
		b.mu.Lock()
		b.reason = reason
		b.mu.Unlock()
		close(b.done)
	})
}

// Tripped reports whether the breaker has latched.
func (b *Breaker) Tripped() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Reason returns the reason the breaker tripped, or "" if it is still open.
func (b *Breaker) Reason() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reason
}

// Done returns a channel closed when the breaker trips, for use in select.
func (b *Breaker) Done() <-chan struct{} {
	return b.done
}
