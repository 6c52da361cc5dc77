package eventq

import (
	"encoding/binary"
	"fmt"
)

// msgHeaderSize is the per-slot framing overhead: a 4-byte big-endian
// payload length, the same framing the serialized payload would carry on a
// length-prefixed wire.
const msgHeaderSize = 4

// MsgQueue is a typed view over a bounded Queue. Each slot holds one
// serialized message (MessagePack by default) behind a 4-byte big-endian
// length prefix, so messages of any encoded size up to the configured
// maximum travel through fixed-size slots.
//
// Send and Receive inherit the Queue's blocking, timeout, and reset
// semantics unchanged. Encoding scratch buffers come from an internal
// BufferPool, so steady-state traffic does not allocate per message.
type MsgQueue struct {
	q    *Queue
	s    Serializer
	pool *BufferPool
}

// NewMsgQueue creates a message queue holding up to capacity messages whose
// encoded form is at most maxMsgSize bytes. Returns ErrInvalidArgument when
// either value is not positive.
func NewMsgQueue(capacity, maxMsgSize int) (*MsgQueue, error) {
	return NewMsgQueueWithSerializer(capacity, maxMsgSize, MsgpackSerializer{})
}

// NewMsgQueueWithSerializer is NewMsgQueue with a caller-chosen encoding.
func NewMsgQueueWithSerializer(capacity, maxMsgSize int, s Serializer) (*MsgQueue, error) {
	if maxMsgSize <= 0 || s == nil {
		return nil, ErrInvalidArgument
	}
	q, err := NewQueue(capacity, msgHeaderSize+maxMsgSize)
	if err != nil {
		return nil, err
	}
	return &MsgQueue{
		q:    q,
		s:    s,
		pool: NewBufferPool(q.MsgLen(), capacity),
	}, nil
}

// Cap returns the queue capacity in messages.
func (m *MsgQueue) Cap() int {
	return m.q.Cap()
}

// MaxMsgSize returns the largest encoded message the queue accepts.
func (m *MsgQueue) MaxMsgSize() int {
	return m.q.MsgLen() - msgHeaderSize
}

// Len returns a snapshot of the number of queued messages.
func (m *MsgQueue) Len() int {
	return m.q.Len()
}

// Send encodes v and enqueues it, blocking per timeout exactly as
// Queue.Send does. An encoded message larger than MaxMsgSize returns
// ErrMessageTooLarge without enqueueing anything.
func (m *MsgQueue) Send(v interface{}, timeout Timeout) error {
	data, err := m.s.Marshal(v)
	if err != nil {
		return fmt.Errorf("eventq: marshal message: %w", err)
	}
	if len(data) > m.MaxMsgSize() {
		return ErrMessageTooLarge
	}

	slot := m.pool.Get()
	binary.BigEndian.PutUint32(slot[:msgHeaderSize], uint32(len(data)))
	copy(slot[msgHeaderSize:], data)

	err = m.q.Send(slot, timeout)
	m.pool.Put(slot)
	return err
}

// Receive dequeues the oldest message and decodes it into v, blocking per
// timeout exactly as Queue.Receive does.
func (m *MsgQueue) Receive(v interface{}, timeout Timeout) error {
	slot := m.pool.Get()
	defer m.pool.Put(slot)

	if err := m.q.Receive(slot, timeout); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(slot[:msgHeaderSize])
	if int(n) > m.MaxMsgSize() {
		return fmt.Errorf("eventq: corrupt slot header: payload length %d", n)
	}
	if err := m.s.Unmarshal(slot[msgHeaderSize:msgHeaderSize+int(n)], v); err != nil {
		return fmt.Errorf("eventq: unmarshal message: %w", err)
	}
	return nil
}

// Reset empties the queue and cancels blocked and future operations until
// Unreset. See Queue.Reset.
func (m *MsgQueue) Reset() {
	m.q.Reset()
}

// Unreset returns the queue to normal operation. See Queue.Unreset.
func (m *MsgQueue) Unreset() {
	m.q.Unreset()
}
