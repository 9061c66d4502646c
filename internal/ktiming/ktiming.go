// Package ktiming takes nanosecond clock marks for timing single operations.
//
// On Linux and macOS marks come from the CPU-time clock of the process, so
// time spent descheduled does not count against a measurement. When that clock
// is unavailable the monotonic clock is used instead.
package ktiming

import "time"

// Mark is a point in time in nanoseconds. Marks are only meaningful relative
// to other marks taken from the same Clock.
type Mark uint64

// Clock produces marks.
type Clock interface {
	Now() Mark
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() Mark

// Now implements Clock.
func (f ClockFunc) Now() Mark { return f() }

// Default is the process clock used by GetMark.
var Default Clock = ClockFunc(GetMark)

// GetMark returns the current mark of the process clock.
func GetMark() Mark {
	if m, ok := cpuMark(); ok {
		return m
	}
	return monotonicMark()
}

// DiffNanos returns the number of nanoseconds from start to end.
// It is zero when end precedes start.
func DiffNanos(start, end Mark) uint64 {
	if end < start {
		return 0
	}
	return uint64(end - start)
}

// Diff returns the duration from start to end.
func Diff(start, end Mark) time.Duration {
	return time.Duration(DiffNanos(start, end))
}

// DiffSeconds returns the number of seconds from start to end.
func DiffSeconds(start, end Mark) float64 {
	return float64(DiffNanos(start, end)) / 1e9
}

var epoch = time.Now()

func monotonicMark() Mark {
	return Mark(time.Since(epoch))
}
