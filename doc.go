// Package eventq provides in-process blocking synchronization primitives for
// coordinating producer and consumer goroutines: a multi-bit event flag and
// a bounded FIFO message queue.
//
// Both primitives are monitors built from one mutex and one or two wait
// sets, and both share the same three timeout modes and the same
// cooperative reset mechanism.
//
// # Timeouts
//
// Every blocking operation takes a Timeout selecting one of three mutually
// exclusive modes:
//
//	Forever   block until the operation completes or the primitive is reset
//	Poll      never block; fail with ErrTimeout if not immediately possible
//	N > 0     block at most N milliseconds, then fail with ErrTimeout
//
// A bounded wait's deadline is computed once at call entry against a
// monotonic clock, so unrelated wakeups never extend it and wall-clock
// adjustments never distort it.
//
// # Event flags
//
// An Event holds a 32-bit mask. Producers OR bits in with Set; consumers
// block in Wait until any (or all) bits of their chosen mask are present,
// optionally consuming those bits on wake:
//
//	ev := eventq.NewEvent()
//
//	go func() {
//		ev.Set(0b001)
//		ev.Set(0b010)
//	}()
//
//	// Block until both bits are set, then clear them.
//	err := ev.Wait(0b011, eventq.All, eventq.Clear, eventq.Forever)
//
// # Bounded queues
//
// A Queue is a fixed-capacity ring of fixed-size messages. Send blocks
// while the queue is full, Receive while it is empty; messages are
// delivered in FIFO order:
//
//	q, _ := eventq.NewQueue(8, 16)
//
//	msg := make([]byte, 16)
//	copy(msg, "hello")
//	q.Send(msg, eventq.Forever)
//
//	buf := make([]byte, 16)
//	q.Receive(buf, eventq.Millis(100*time.Millisecond))
//
// MsgQueue layers MessagePack serialization over a Queue so arbitrary Go
// values travel through the same fixed-size slots:
//
//	mq, _ := eventq.NewMsgQueue(8, 256)
//	mq.Send(map[string]int{"answer": 42}, eventq.Forever)
//
//	var out map[string]int
//	mq.Receive(&out, eventq.Forever)
//
// # Reset
//
// Reset is cooperative cancellation, not an error condition. It empties the
// primitive, wakes every blocked goroutine with ErrCanceled (distinct from
// ErrTimeout), and keeps failing operations fast until Unreset. This gives
// shutdown and drain protocols a clean way to flush every blocked worker:
//
//	q.Reset()   // all blocked senders and receivers return ErrCanceled
//	q.Unreset() // queue is empty and usable again
//
// # Concurrency model
//
// All methods are safe for concurrent use. Locks are held only across the
// check-and-mutate step, never while suspended. Goroutines woken from a
// wait always re-check their predicate, so spurious or broad wakeups are
// harmless. No fairness is guaranteed among goroutines blocked on the same
// condition. A primitive is destroyed by dropping all references to it;
// callers must ensure no goroutine is still blocked inside it, which Reset
// makes straightforward.
package eventq
