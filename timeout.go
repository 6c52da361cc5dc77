package eventq

import "time"

// Timeout selects the blocking behavior of Wait, Send, and Receive.
//
// The three modes are mutually exclusive:
//   - Forever blocks until the operation completes or the primitive is reset.
//   - Poll never blocks; if the operation cannot complete immediately it
//     fails with ErrTimeout.
//   - Any positive value is a bounded wait in milliseconds.
//
// Any other negative value is rejected with ErrInvalidTimeout.
type Timeout int64

const (
	// Forever blocks indefinitely.
	Forever Timeout = -1

	// Poll returns immediately, never blocking.
	Poll Timeout = 0
)

// Millis returns a bounded Timeout of d rounded down to whole milliseconds.
// Durations under one millisecond become Poll.
func Millis(d time.Duration) Timeout {
	return Timeout(d / time.Millisecond)
}

// valid reports whether t is one of the accepted timeout modes.
func (t Timeout) valid() bool {
	return t == Forever || t >= 0
}

// deadline converts t into an absolute wake time on the monotonic clock,
// reading the clock exactly once. The zero deadline means "no deadline";
// Forever and Poll both map to it (Poll never reaches a wait).
func (t Timeout) deadline() deadline {
	if t <= 0 {
		return 0
	}
	return deadline(nowNanos() + int64(t)*int64(time.Millisecond))
}

// deadline is an absolute monotonic-clock instant in nanoseconds.
// Zero means wait forever.
type deadline int64

func (d deadline) forever() bool {
	return d == 0
}

// remaining returns the time left until d. Non-positive means the deadline
// has already passed. Must not be called on the zero deadline.
func (d deadline) remaining() time.Duration {
	return time.Duration(int64(d) - nowNanos())
}
