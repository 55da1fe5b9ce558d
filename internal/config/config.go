// Package config holds the build-time constants for the robot
// controller: keys, the magic word, PID gains and the other numbers
// that firmware/src/main.c and motor_control.c carried as file-scope
// consts. There is no dynamic configuration path; changing any of
// these requires a rebuild.
package config

// MagicWord identifies a well-formed plaintext packet.
const MagicWord uint32 = 0xB0A1E1A1

// MACKey is the 128-bit SipHash-2-4 key, split into two 64-bit halves
// the way siphash24 takes k[2].
var MACKey = [2]uint64{0xA3B1C2D3E4F56789, 0x1020304050607080}

// CipherKey is the 256-bit ChaCha20 key. Bytes are little-endian per
// 32-bit key word, matching how cryptoprim reads the key into state.
var CipherKey = [32]byte{
	0x04, 0x03, 0x02, 0x01, 0x08, 0x07, 0x06, 0x05,
	0x0c, 0x0b, 0x0a, 0x09, 0x10, 0x0f, 0x0e, 0x0d,
	0x14, 0x13, 0x12, 0x11, 0x18, 0x17, 0x16, 0x15,
	0x1c, 0x1b, 0x1a, 0x19, 0x20, 0x1f, 0x1e, 0x1d,
}

// NumMotors is the number of driven wheels: left, right.
const NumMotors = 2

const (
	LeftMotor  = 0
	RightMotor = 1
)

// QueueCapacity is the number of packet-sized slots in the ingress ring.
const QueueCapacity = 8

// PID gains and loop parameters, tuned for CONTROL_HZ and left
// unchanged by packet jitter (see motor.Bank.Update).
const (
	PIDKp = 1.0
	PIDKi = 0.1
	PIDKd = 0.05

	MaxIntegral = 100.0

	// ControlHz is the nominal control rate the I/D gains are tuned
	// for; it does not have to match the actual packet arrival rate.
	ControlHz = 50

	// CountsPerRev is the encoder resolution used to convert a delta
	// count into an angular velocity.
	CountsPerRev = 1000

	// PWMMin and PWMMax bound the saturated PID output.
	PWMMin = -1000
	PWMMax = 1000

	// VelocityScale converts an int16 wire parameter into rad/s:
	// v0 / VelocityScale.
	VelocityScale = 100.0
)
