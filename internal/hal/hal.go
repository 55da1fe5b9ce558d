// Package hal defines the hardware-abstraction contract this
// controller consumes, formalizing spec.md §6's "hardware abstraction
// (consumed)" list as Go interfaces. Two implementations exist:
// halrpi (periph.io on a Raspberry Pi) and halsim (an in-process or
// serial-loopback simulator for development and tests).
//
// The split mirrors the teacher's cmd/controller Platform interface,
// which is implemented once per build target (platform_rpi.go,
// platform_dummy.go) rather than threading hardware specifics through
// the rest of the program.
package hal

// GPIOOut is a single digital output line: the brake actuator, a
// motor direction pin, or the watchdog strobe pin.
type GPIOOut interface {
	Set(high bool) error
}

// PWMOut drives a motor's duty cycle. Duty is in [-1000, 1000] and
// carries the sign of the command. motor.Bank also sets the motor's
// Dir line from that sign when one is wired, so an implementation
// with a separate direction pin (halrpi) writes only the magnitude.
type PWMOut interface {
	SetDuty(duty int16) error
}

// EncoderReader reads a motor's cumulative step count. Count must be
// monotonic within a single rotation direction. The reference firmware
// reads and resets it through its hw_encoder_get_count/hw_encoder_reset
// pair; here
// a single cumulative Count() is enough since motor.Bank tracks its
// own previous-count delta (spec.md §4.6).
type EncoderReader interface {
	Count() (int32, error)
}

// SPIFrameReader reads one SPI frame: a command byte, a length, and
// up to 64 bytes of payload. Only cmd==0x01, len==64 frames are
// meaningful to the ingress domain (spec.md §6); everything else is
// ignored by the caller, not by this interface.
type SPIFrameReader interface {
	ReadFrame() (cmd byte, length byte, data [64]byte, err error)
}

// Clock is the monotonic millisecond timebase shared by the PID loop
// and the packet timestamp.
type Clock interface {
	NowMillis() uint32
}

// Motors bundles the per-wheel I/O the actuator/PID loop drives.
// Index 0 is left, index 1 is right (spec.md §3).
type Motors struct {
	PWM      [2]PWMOut
	Dir      [2]GPIOOut
	Encoders [2]EncoderReader
}
