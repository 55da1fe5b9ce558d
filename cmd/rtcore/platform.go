package main

import "robotctl.dev/internal/hal"

// Platform bundles every hardware resource the real-time loop and the
// ingress goroutine need, built once per-target in platform_rpi.go or
// platform_sim.go — the same split the teacher uses in
// cmd/controller's platform_rpi.go/platform_dummy.go pair, gated on
// build tags instead of runtime detection.
type Platform interface {
	Motors() hal.Motors
	Brake() hal.GPIOOut
	WatchdogPin() hal.GPIOOut
	SPI() hal.SPIFrameReader
	Clock() hal.Clock
	Close() error
}
