//go:build linux || darwin

package eventq

import (
	"time"

	"golang.org/x/sys/unix"
)

// nowNanos returns the current reading of the monotonic clock in
// nanoseconds. Deadlines are anchored to CLOCK_MONOTONIC rather than the
// wall clock so a bounded wait is immune to clock adjustments.
func nowNanos() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		// clock_gettime on a supported clock id does not fail in practice;
		// fall back to the time package's monotonic reading.
		return int64(time.Since(clockEpoch))
	}
	return ts.Nano()
}

var clockEpoch = time.Now()
