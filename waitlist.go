package eventq

import (
	"sync"
	"time"
)

// waitEntry represents one goroutine blocked on a condition. Its channel is
// closed to wake it. An entry is owned by the wait list until it is removed,
// either by a notification or by its waiter after a timeout.
type waitEntry struct {
	ch chan struct{}
}

// waitList is the wait set of one monitor condition ("became not-full",
// "became not-empty", "mask changed"). All methods except the unlocked
// middle of wait must be called with the owning primitive's mutex held.
//
// Go's sync.Cond has no timed wait, so the monitor's condition variables are
// built the way concurrent Go code conventionally builds them: each waiter
// registers a channel under the lock, releases the lock, and selects on the
// channel against a timer. Closing the channel is the wakeup.
type waitList struct {
	entries []*waitEntry
}

// signal wakes the oldest waiter, if any. Waking "at least one" is the only
// guarantee callers may rely on; woken goroutines always re-check their
// predicate under the lock.
func (l *waitList) signal() {
	if len(l.entries) == 0 {
		return
	}
	e := l.entries[0]
	l.entries[0] = nil
	l.entries = l.entries[1:]
	close(e.ch)
}

// broadcast wakes every waiter.
func (l *waitList) broadcast() {
	for i, e := range l.entries {
		close(e.ch)
		l.entries[i] = nil
	}
	l.entries = l.entries[:0]
}

// remove takes e out of the wait set. It reports false when e is no longer
// queued, which means a notification already claimed it.
func (l *waitList) remove(e *waitEntry) bool {
	for i, cur := range l.entries {
		if cur == e {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// wait blocks the caller until it is signaled, broadcast, or d expires.
// It must be called with mu held; mu is released while suspended and is
// always reacquired before wait returns, so a caller's deferred unlock
// remains balanced no matter how the wait ends.
//
// wait reports true for a wakeup and false for a deadline expiry. A wakeup
// that races a deadline expiry is reported as a wakeup: the notifier has
// already consumed the entry, and the caller's predicate loop either finds
// the condition true or comes back here with an expired deadline.
func (l *waitList) wait(mu *sync.Mutex, d deadline) bool {
	e := &waitEntry{ch: make(chan struct{})}
	l.entries = append(l.entries, e)

	mu.Unlock()
	notified := false
	if d.forever() {
		<-e.ch
		notified = true
	} else if rem := d.remaining(); rem > 0 {
		t := time.NewTimer(rem)
		select {
		case <-e.ch:
			notified = true
		case <-t.C:
		}
		t.Stop()
	}
	mu.Lock()

	if !notified {
		// Deregister. If the entry is already gone, a signal or broadcast
		// won the race; report a wakeup so the notification is not lost.
		notified = !l.remove(e)
	}
	return notified
}
