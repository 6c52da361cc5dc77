package eventq

import "sync"

// EventMask is a set of event flags. Producers set bits with Event.Set and
// consumers wait for combinations of bits with Event.Wait.
type EventMask uint32

// Test selects how Event.Wait combines the bits of its mask.
type Test int

const (
	// Any satisfies the wait when at least one bit of the mask is set.
	Any Test = iota

	// All satisfies the wait only when every bit of the mask is set.
	All
)

// satisfied evaluates the wait predicate against the current mask.
func (t Test) satisfied(cur, mask EventMask) bool {
	if t == All {
		return cur&mask == mask
	}
	return cur&mask != 0
}

// Action selects what Event.Wait does with the tested bits on success.
type Action int

const (
	// Clear atomically clears the tested mask bits before Wait returns,
	// consuming the event.
	Clear Action = iota

	// Keep leaves the mask untouched.
	Keep
)

// Event is a multi-bit event flag for coordinating producer and consumer
// goroutines. Producers set bits; consumers block until a chosen combination
// of bits is present, optionally consuming the bits on wake.
//
// An Event additionally supports cooperative cancellation: Reset zeroes the
// mask, wakes every blocked waiter with ErrCanceled, and holds the flag in
// that state until Unreset. All methods are safe for concurrent use.
//
// The zero value is not ready for use; construct with NewEvent.
type Event struct {
	mu      sync.Mutex
	waiters waitList
	mask    EventMask
	reset   bool
}

// NewEvent creates a new event with an empty mask.
func NewEvent() *Event {
	return &Event{}
}

// Set ORs mask into the event and wakes every blocked waiter so each can
// re-test its own predicate. A broadcast is required rather than a single
// wakeup: distinct waiters may be blocked on disjoint masks that this set
// satisfies simultaneously.
//
// While the event is reset, Set is a no-op; the mask is held at zero until
// Unreset.
func (e *Event) Set(mask EventMask) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.reset {
		return
	}
	e.mask |= mask
	e.waiters.broadcast()
}

// Clear removes mask's bits from the event. No waiter is woken: clearing
// bits can never newly satisfy a pending wait.
func (e *Event) Clear(mask EventMask) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mask &^= mask
}

// Current returns a snapshot of the event mask.
func (e *Event) Current() EventMask {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mask
}

// Wait blocks until the bits of mask satisfy test, then applies action and
// returns nil.
//
// With timeout == Poll, Wait never blocks: an unsatisfied predicate returns
// ErrTimeout immediately. With timeout == Forever, Wait blocks until the
// predicate is satisfied or the event is reset. A positive timeout bounds
// the wait to that many milliseconds, after which Wait returns ErrTimeout.
// The deadline is computed once at entry, so unrelated wakeups never extend
// it. Any other negative timeout returns ErrInvalidTimeout without touching
// the event.
//
// If the event is reset while waiting (or is already reset on entry of a
// blocking wait), Wait returns ErrCanceled. Cancellation takes priority
// over a predicate that only became satisfiable through the reset's own
// zeroing of the mask.
//
// On success with action == Clear, exactly the bits of mask are cleared:
// the set that was tested, not the full current mask.
func (e *Event) Wait(mask EventMask, test Test, action Action, timeout Timeout) error {
	if !timeout.valid() {
		return ErrInvalidTimeout
	}
	d := timeout.deadline()

	e.mu.Lock()
	defer e.mu.Unlock()

	done := test.satisfied(e.mask, mask)
	if timeout == Poll && !done {
		return ErrTimeout
	}

	for !done {
		if e.reset {
			return ErrCanceled
		}
		if !e.waiters.wait(&e.mu, d) {
			return ErrTimeout
		}
		done = test.satisfied(e.mask, mask)
		if e.reset {
			// A wake caused by Reset always reports cancellation, even if
			// the zeroed mask happens to satisfy the test.
			return ErrCanceled
		}
	}

	if action == Clear {
		e.mask &^= mask
	}
	return nil
}

// Reset zeroes the mask, blocks further Set calls, and wakes every blocked
// waiter with ErrCanceled. The event stays in this state, failing all
// blocking waits fast, until Unreset. Calling Reset on an already-reset
// event is harmless.
func (e *Event) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mask = 0
	e.reset = true
	e.waiters.broadcast()
}

// Unreset returns the event to normal operation. No waiter is woken:
// re-enabling the event cannot satisfy a predicate by itself. Calling
// Unreset on a non-reset event is harmless.
func (e *Event) Unreset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset = false
}
