// ABOUTME: Configurable stub surface for the checkish harness.
// ABOUTME: A Stub stands in for a collaborator with fixed or one-shot outcomes.

package checkish

import "sync"

type outcome struct {
	value any
	err   error
}

// Stub is a callable placeholder. Configuration methods record the latest
// behavior and return the same Stub so calls chain. No call history is kept;
// call-count and argument assertions are out of scope.
type Stub struct {
	mu       sync.Mutex
	once     []outcome
	standing *outcome
	impl     func(args ...any) (any, error)
}

// Fn constructs an unconfigured Stub. Calling it before configuration yields
// a nil value and nil error.
func Fn() *Stub {
	return &Stub{}
}

// ResolveWith makes every call yield v.
func (s *Stub) ResolveWith(v any) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.standing = &outcome{value: v}
	return s
}

// ResolveOnceWith queues v for a single call; the queue is consulted before
// the standing behavior.
func (s *Stub) ResolveOnceWith(v any) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.once = append(s.once, outcome{value: v})
	return s
}

// FailWith makes every call yield err.
func (s *Stub) FailWith(err error) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.standing = &outcome{err: err}
	return s
}

// FailOnceWith queues err for a single call.
func (s *Stub) FailOnceWith(err error) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.once = append(s.once, outcome{err: err})
	return s
}

// ImplementWith installs fn as the call behavior; it takes precedence over
// standing outcomes but not over the one-shot queue.
func (s *Stub) ImplementWith(fn func(args ...any) (any, error)) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.impl = fn
	return s
}

// Clear drops all configured behavior.
func (s *Stub) Clear() *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.once = nil
	s.standing = nil
	s.impl = nil
	return s
}

// Call invokes the stub with args, consulting the one-shot queue, then the
// custom implementation, then the standing outcome.
func (s *Stub) Call(args ...any) (any, error) {
	s.mu.Lock()
	if len(s.once) > 0 {
		next := s.once[0]
		s.once = s.once[1:]
		s.mu.Unlock()
		return next.value, next.err
	}
	impl := s.impl
	standing := s.standing
	s.mu.Unlock()

	if impl != nil {
		return impl(args...)
	}
	if standing != nil {
		return standing.value, standing.err
	}
	return nil, nil
}
