// Package rendezvous provides a one-shot, single-waiter signal primitive.
//
// Raymond's algorithm needs two such signals per node: one to wake a
// blocked driver when the state machine decides the node may enter its
// critical section, and one to release a driver waiting for global
// termination. Both are posted by exactly one thread (the mediator) and
// consumed by exactly one thread (the node's own driver), so a condition
// variable over a boolean flag is enough - no buffering, no fan-out.
package rendezvous

import "sync"

// Signal is a one-shot, single-waiter rendezvous. Post may be called any
// number of times; only the first call after the previous Wait unblocks
// will cause that Wait to return. Spurious wakeups are handled internally:
// callers of Wait never see one.
type Signal struct {
	mutex   sync.Mutex
	posted  *sync.Cond
	isReady bool
}

// New creates a ready-to-use Signal in the unposted state.
func New() *Signal {
	s := &Signal{}
	s.posted = sync.NewCond(&s.mutex)
	return s
}

// Post marks the signal ready and wakes at most one waiter. It is safe to
// call Post before any Wait; the next Wait returns immediately.
func (s *Signal) Post() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.isReady = true
	s.posted.Signal()
}

// Wait blocks until Post has been called, then consumes the post (resets
// to unposted) before returning, so the signal behaves as single-shot
// rather than latching.
func (s *Signal) Wait() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for !s.isReady {
		s.posted.Wait()
	}
	s.isReady = false
}
