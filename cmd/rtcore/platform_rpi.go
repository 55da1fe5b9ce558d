//go:build linux && arm

package main

import "robotctl.dev/internal/hal/halrpi"

// simSerial is accepted for signature parity with platform_sim.go's
// -sim-serial flag but has no meaning on real hardware, which always
// reads frames over its own SPI bus.
func openPlatform(simSerial string) (Platform, error) {
	return halrpi.Open()
}
