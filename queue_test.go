package eventq_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/eventq"
)

func TestNewQueueValidation(t *testing.T) {
	t.Parallel()

	_, err := eventq.NewQueue(0, 8)
	assert.ErrorIs(t, err, eventq.ErrInvalidArgument)

	_, err = eventq.NewQueue(4, 0)
	assert.ErrorIs(t, err, eventq.ErrInvalidArgument)

	q, err := eventq.NewQueue(4, 8)
	require.NoError(t, err)
	assert.Equal(t, 4, q.Cap())
	assert.Equal(t, 8, q.MsgLen())
	assert.Equal(t, 0, q.Len())
}

func TestQueueFIFO(t *testing.T) {
	t.Parallel()

	q, err := eventq.NewQueue(3, 4)
	require.NoError(t, err)

	for _, s := range []string{"aaaa", "bbbb", "cccc"} {
		require.NoError(t, q.Send([]byte(s), eventq.Poll))
	}

	buf := make([]byte, 4)
	for _, want := range []string{"aaaa", "bbbb", "cccc"} {
		require.NoError(t, q.Receive(buf, eventq.Poll))
		assert.Equal(t, want, string(buf))
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueueWraparound(t *testing.T) {
	t.Parallel()

	q, err := eventq.NewQueue(3, 4)
	require.NoError(t, err)

	// Interleave sends and receives so head and tail wrap several times.
	buf := make([]byte, 4)
	next, want := 0, 0
	for i := 0; i < 10; i++ {
		require.NoError(t, q.Send([]byte(fmt.Sprintf("%04d", next)), eventq.Poll))
		next++
		if i%2 == 1 {
			require.NoError(t, q.Receive(buf, eventq.Poll))
			assert.Equal(t, fmt.Sprintf("%04d", want), string(buf))
			want++
		}
	}
	for want < next {
		require.NoError(t, q.Receive(buf, eventq.Forever))
		assert.Equal(t, fmt.Sprintf("%04d", want), string(buf))
		want++
	}
}

func TestQueueCapacityBoundaryPoll(t *testing.T) {
	t.Parallel()

	q, err := eventq.NewQueue(3, 1)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, q.Send([]byte{byte(i)}, eventq.Poll))
	}

	start := time.Now()
	err = q.Send([]byte{9}, eventq.Poll)
	assert.ErrorIs(t, err, eventq.ErrTimeout)
	assert.Less(t, time.Since(start), time.Second, "poll must not block")
	assert.Equal(t, 3, q.Len())
}

func TestQueueReceivePollEmpty(t *testing.T) {
	t.Parallel()

	q, err := eventq.NewQueue(2, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, q.Receive(make([]byte, 1), eventq.Poll), eventq.ErrTimeout)
}

func TestQueueSendBlocksUntilSlotFrees(t *testing.T) {
	t.Parallel()

	q, err := eventq.NewQueue(1, 1)
	require.NoError(t, err)
	require.NoError(t, q.Send([]byte{1}, eventq.Poll))

	done := make(chan error, 1)
	go func() {
		done <- q.Send([]byte{2}, eventq.Forever)
	}()

	select {
	case err := <-done:
		t.Fatalf("send completed on a full queue: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	buf := make([]byte, 1)
	require.NoError(t, q.Receive(buf, eventq.Poll))
	assert.Equal(t, byte(1), buf[0])

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("blocked sender was not woken by receive")
	}

	require.NoError(t, q.Receive(buf, eventq.Forever))
	assert.Equal(t, byte(2), buf[0])
}

func TestQueueReceiveBoundedTimeout(t *testing.T) {
	t.Parallel()

	q, err := eventq.NewQueue(1, 1)
	require.NoError(t, err)

	start := time.Now()
	err = q.Receive(make([]byte, 1), 50)
	assert.ErrorIs(t, err, eventq.ErrTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
}

func TestQueueResetCancelsBlockedSender(t *testing.T) {
	t.Parallel()

	q, err := eventq.NewQueue(1, 1)
	require.NoError(t, err)
	require.NoError(t, q.Send([]byte{1}, eventq.Poll))

	done := make(chan error, 1)
	go func() {
		done <- q.Send([]byte{2}, eventq.Forever)
	}()
	time.Sleep(50 * time.Millisecond)

	q.Reset()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, eventq.ErrCanceled)
	case <-time.After(2 * time.Second):
		t.Fatal("reset did not wake the blocked sender")
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueueResetCancelsBlockedReceiver(t *testing.T) {
	t.Parallel()

	q, err := eventq.NewQueue(1, 1)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- q.Receive(make([]byte, 1), eventq.Forever)
	}()
	time.Sleep(50 * time.Millisecond)

	q.Reset()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, eventq.ErrCanceled)
	case <-time.After(2 * time.Second):
		t.Fatal("reset did not wake the blocked receiver")
	}
}

func TestQueueOperationsFailFastWhileReset(t *testing.T) {
	t.Parallel()

	q, err := eventq.NewQueue(2, 1)
	require.NoError(t, err)
	q.Reset()

	assert.ErrorIs(t, q.Send([]byte{1}, eventq.Poll), eventq.ErrCanceled)
	assert.ErrorIs(t, q.Send([]byte{1}, eventq.Forever), eventq.ErrCanceled)
	assert.ErrorIs(t, q.Receive(make([]byte, 1), eventq.Poll), eventq.ErrCanceled)
	assert.ErrorIs(t, q.Receive(make([]byte, 1), 10), eventq.ErrCanceled)

	q.Unreset()
	require.NoError(t, q.Send([]byte{7}, eventq.Poll))
	buf := make([]byte, 1)
	require.NoError(t, q.Receive(buf, eventq.Poll))
	assert.Equal(t, byte(7), buf[0])
}

func TestQueueResetIdempotent(t *testing.T) {
	t.Parallel()

	q, err := eventq.NewQueue(2, 1)
	require.NoError(t, err)

	q.Unreset() // no-op on an active queue
	q.Reset()
	q.Reset() // no-op on an already-reset queue
	assert.ErrorIs(t, q.Send([]byte{1}, eventq.Poll), eventq.ErrCanceled)

	q.Unreset()
	assert.NoError(t, q.Send([]byte{1}, eventq.Poll))
}

func TestQueueInvalidTimeout(t *testing.T) {
	t.Parallel()

	q, err := eventq.NewQueue(2, 1)
	require.NoError(t, err)
	require.NoError(t, q.Send([]byte{1}, eventq.Poll))

	assert.ErrorIs(t, q.Send([]byte{2}, -5), eventq.ErrInvalidTimeout)
	assert.ErrorIs(t, q.Receive(make([]byte, 1), -5), eventq.ErrInvalidTimeout)
	assert.Equal(t, 1, q.Len(), "failed validation must not mutate the queue")
}

func TestQueueBufferLengthValidation(t *testing.T) {
	t.Parallel()

	q, err := eventq.NewQueue(2, 4)
	require.NoError(t, err)

	assert.ErrorIs(t, q.Send([]byte{1, 2}, eventq.Poll), eventq.ErrInvalidArgument)
	assert.ErrorIs(t, q.Send(make([]byte, 8), eventq.Poll), eventq.ErrInvalidArgument)
	assert.ErrorIs(t, q.Receive(make([]byte, 2), eventq.Poll), eventq.ErrInvalidArgument)

	// A larger receive buffer is fine; only the first MsgLen bytes are written.
	require.NoError(t, q.Send([]byte("abcd"), eventq.Poll))
	big := make([]byte, 8)
	require.NoError(t, q.Receive(big, eventq.Poll))
	assert.Equal(t, "abcd", string(big[:4]))
}
