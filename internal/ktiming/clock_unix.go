//go:build linux || darwin

package ktiming

import "golang.org/x/sys/unix"

func cpuMark() (Mark, bool) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_PROCESS_CPUTIME_ID, &ts); err != nil {
		if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
			return 0, false
		}
	}
	return Mark(ts.Nano()), true
}
