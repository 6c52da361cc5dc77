package eventq

// BufferPool manages reusable slot-sized byte slices. MsgQueue stages every
// encoded message in a pooled buffer before copying it into (or out of) the
// queue's ring storage, so steady-state message traffic does not allocate.
//
// BufferPool is safe for concurrent use. The channel-based design gives
// lock-free Get and Put.
type BufferPool struct {
	pool    chan []byte
	bufSize int
}

// NewBufferPool creates a pool pre-populated with count buffers of bufSize
// bytes each.
func NewBufferPool(bufSize, count int) *BufferPool {
	pool := make(chan []byte, count)
	for i := 0; i < count; i++ {
		pool <- make([]byte, bufSize)
	}
	return &BufferPool{
		pool:    pool,
		bufSize: bufSize,
	}
}

// BufSize returns the size of the buffers managed by the pool.
func (bp *BufferPool) BufSize() int {
	return bp.bufSize
}

// Get returns a buffer of length BufSize, allocating a fresh one when the
// pool is empty.
func (bp *BufferPool) Get() []byte {
	select {
	case buf := <-bp.pool:
		return buf
	default:
		return make([]byte, bp.bufSize)
	}
}

// Put returns a buffer to the pool. Buffers of the wrong capacity are
// dropped, as is any buffer arriving while the pool is already full; both
// simply become garbage.
func (bp *BufferPool) Put(buf []byte) {
	if cap(buf) != bp.bufSize {
		return
	}
	select {
	case bp.pool <- buf[:bp.bufSize]:
	default:
	}
}
