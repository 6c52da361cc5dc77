//go:build !linux && !darwin

package eventq

import "time"

// nowNanos returns nanoseconds elapsed since process start. time.Since uses
// the time package's monotonic clock reading, so deadlines are immune to
// wall-clock adjustments on every platform.
func nowNanos() int64 {
	return int64(time.Since(clockEpoch))
}

var clockEpoch = time.Now()
