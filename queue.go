package eventq

import "sync"

// Queue is a bounded FIFO message queue: a fixed-capacity circular buffer of
// fixed-size messages with blocking send and receive. Capacity and message
// length are set at construction and never change; the queue owns a single
// contiguous buffer of capacity*msgLen bytes and never grows it.
//
// Send blocks while the queue is full and Receive blocks while it is empty,
// subject to the Timeout modes. Messages are delivered strictly in FIFO
// order. Reset empties the queue and cancels blocked and future operations
// with ErrCanceled until Unreset.
//
// All methods are safe for concurrent use by any number of producer and
// consumer goroutines. No fairness is guaranteed among goroutines blocked on
// the same condition.
type Queue struct {
	mu       sync.Mutex
	notFull  waitList
	notEmpty waitList

	buf    []byte
	head   int // slot index of the oldest message
	tail   int // slot index of the next message to insert
	count  int // occupied slots, 0..capacity
	qsize  int // capacity in messages
	msgLen int // bytes per message
	reset  bool
}

// NewQueue creates a queue holding up to capacity messages of msgLen bytes
// each. Both values must be positive or NewQueue returns ErrInvalidArgument;
// no partially constructed queue is ever returned.
func NewQueue(capacity, msgLen int) (*Queue, error) {
	if capacity <= 0 || msgLen <= 0 {
		return nil, ErrInvalidArgument
	}
	return &Queue{
		buf:    make([]byte, capacity*msgLen),
		qsize:  capacity,
		msgLen: msgLen,
	}, nil
}

// Cap returns the queue capacity in messages.
func (q *Queue) Cap() int {
	return q.qsize
}

// MsgLen returns the fixed message length in bytes.
func (q *Queue) MsgLen() int {
	return q.msgLen
}

// Len returns a snapshot of the number of queued messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Send copies msg into the queue. len(msg) must equal MsgLen().
//
// While the queue is full, Send blocks on the "became not-full" condition
// per the Timeout modes: Poll fails immediately with ErrTimeout, Forever
// blocks until space or reset, and a positive timeout bounds the wait in
// milliseconds with the deadline fixed at entry. A reset observed at entry
// or on wake returns ErrCanceled without copying anything. On success the
// consumer side is signaled.
func (q *Queue) Send(msg []byte, timeout Timeout) error {
	if !timeout.valid() {
		return ErrInvalidTimeout
	}
	if len(msg) != q.msgLen {
		return ErrInvalidArgument
	}
	d := timeout.deadline()

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.reset {
		return ErrCanceled
	}
	if timeout == Poll && q.count == q.qsize {
		return ErrTimeout
	}

	for q.count == q.qsize {
		if !q.notFull.wait(&q.mu, d) {
			return ErrTimeout
		}
		if q.reset {
			return ErrCanceled
		}
	}

	copy(q.buf[q.tail*q.msgLen:(q.tail+1)*q.msgLen], msg)
	q.count++
	q.tail++
	if q.tail == q.qsize {
		q.tail = 0
	}

	// One message became available; one receiver can consume it.
	q.notEmpty.signal()
	return nil
}

// Receive copies the oldest message into buf, which must be at least
// MsgLen() bytes long. Blocking behavior mirrors Send, waiting on the
// "became not-empty" condition while the queue is empty. On success the
// producer side is signaled.
func (q *Queue) Receive(buf []byte, timeout Timeout) error {
	if !timeout.valid() {
		return ErrInvalidTimeout
	}
	if len(buf) < q.msgLen {
		return ErrInvalidArgument
	}
	d := timeout.deadline()

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.reset {
		return ErrCanceled
	}
	if timeout == Poll && q.count == 0 {
		return ErrTimeout
	}

	for q.count == 0 {
		if !q.notEmpty.wait(&q.mu, d) {
			return ErrTimeout
		}
		if q.reset {
			return ErrCanceled
		}
	}

	copy(buf, q.buf[q.head*q.msgLen:(q.head+1)*q.msgLen])
	q.count--
	q.head++
	if q.head == q.qsize {
		q.head = 0
	}

	// One slot became free; one sender can fill it.
	q.notFull.signal()
	return nil
}

// Reset empties the queue, blocks further sends and receives with
// ErrCanceled, and wakes every blocked sender and receiver. Both wait sets
// are woken: a receiver asleep on an empty queue is released just like a
// sender asleep on a full one, so a shutdown never strands a consumer.
// The queue stays canceled until Unreset. Calling Reset twice is harmless.
func (q *Queue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.head = 0
	q.tail = 0
	q.count = 0
	q.reset = true
	q.notFull.broadcast()
	q.notEmpty.broadcast()
}

// Unreset returns the queue to normal operation, empty. No waiter is woken.
// Calling Unreset on a non-reset queue is harmless.
func (q *Queue) Unreset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.reset = false
}
