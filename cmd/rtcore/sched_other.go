//go:build !linux

package main

// pinRealtime is a no-op off Linux; there is no SCHED_FIFO/affinity
// equivalent on other hosts this controller targets for development.
func pinRealtime() error { return nil }
