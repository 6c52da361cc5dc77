package eventq

import "errors"

// ErrTimeout is returned when a bounded wait reaches its deadline before the
// operation can complete, or when a Poll-mode operation finds its condition
// unmet. Timing out is a normal, expected outcome; callers own any retry
// policy.
var ErrTimeout = errors.New("eventq: timed out")

// ErrCanceled is returned when a blocked or attempted operation is denied
// because the primitive has been put into the reset state. It is
// distinguishable from ErrTimeout so shutdown/drain protocols can tell a
// cooperative cancellation apart from a deadline expiry.
var ErrCanceled = errors.New("eventq: canceled by reset")

// ErrInvalidTimeout is returned when a timeout value is negative but not the
// Forever sentinel. The operation fails before touching any state.
var ErrInvalidTimeout = errors.New("eventq: invalid timeout")

// ErrInvalidArgument is returned for out-of-range construction parameters
// and for message buffers whose length does not match the queue's fixed
// message length.
var ErrInvalidArgument = errors.New("eventq: invalid argument")

// ErrMessageTooLarge is returned by MsgQueue.Send when the encoded message
// does not fit in the queue's fixed-size slot.
var ErrMessageTooLarge = errors.New("eventq: encoded message exceeds slot size")
