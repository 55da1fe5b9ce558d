//go:build linux

package main

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// pinRealtime raises the calling OS thread to SCHED_FIFO and pins it
// to CPU 0, the hosted-environment equivalent of spec.md §5's "all
// interrupts disabled" real-time domain: on Linux we cannot disable
// interrupts from userspace, but we can ask the scheduler to never
// preempt this thread for anything but a higher-priority realtime
// task, and never migrate it mid-run. Must be called after
// runtime.LockOSThread so the affinity and priority apply to the
// goroutine's actual OS thread instead of whichever one happens to
// run next.
func pinRealtime() error {
	var set unix.CPUSet
	set.Zero()
	set.Set(0)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("sched_setaffinity: %w", err)
	}
	param := &unix.SchedParam{Priority: 10}
	if err := unix.SchedSetscheduler(0, unix.SCHED_FIFO, param); err != nil {
		return fmt.Errorf("sched_setscheduler: %w", err)
	}
	return nil
}
