// Package watchdog pulses the hardware watchdog line exactly once per
// accepted-and-dispatched packet (spec.md §4.7). Absence of a strobe
// within the watchdog silicon's timeout window is the system's
// terminal fail-safe; that cutoff lives entirely in hardware and has
// no software counterpart here.
package watchdog

import "robotctl.dev/internal/hal"

// Strobe pulses pin high then low. Both edges happen before Strobe
// returns; the watchdog silicon latches the transition, not a held
// level, so there is no meaningful "duration" to the pulse beyond the
// two successive Set calls — matching the GPIO pulsing idiom seen in
// driver/wshat and lcd.go, where a strobe line is toggled rather than
// held.
func Strobe(pin hal.GPIOOut) error {
	if err := pin.Set(true); err != nil {
		return err
	}
	return pin.Set(false)
}
