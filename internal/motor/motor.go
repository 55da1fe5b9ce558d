// Package motor implements the per-motor closed-loop PID velocity
// controller of spec.md §4.6, generalizing
// original_source/firmware/src/motor_control.c's single global
// motor_pid_t[NUM_MOTORS] array into an instance-owned Bank, the way
// the teacher prefers instance state (driver/tmc2209.Device,
// stepper.Driver) over package-level globals.
package motor

import (
	"math"

	"robotctl.dev/internal/config"
	"robotctl.dev/internal/hal"
)

// State is one motor's PID state, carried across control-loop
// invocations (spec.md §3).
type State struct {
	prevCount     int32
	Velocity      float32 // rad/s, last measured
	TargetVel     float32 // rad/s, set by actuator dispatch
	integral      float32
	prevError     float32
	lastUpdateMs  uint32
	haveLastCount bool
}

// Bank holds the state for every driven wheel. Index 0 is left,
// index 1 is right, matching config.LeftMotor/config.RightMotor.
type Bank struct {
	motors [config.NumMotors]State
}

// SetTarget sets the i'th motor's target angular velocity, in rad/s.
// Called by the actuator dispatcher (spec.md §4.5); never by the PID
// loop itself.
func (b *Bank) SetTarget(i int, radPerSec float32) {
	b.motors[i].TargetVel = radPerSec
}

// StopAll sets every motor's target velocity to zero. Brake dispatch
// does not call it: a brake action leaves the motor targets unchanged.
func (b *Bank) StopAll() {
	for i := range b.motors {
		b.motors[i].TargetVel = 0
	}
}

// Velocity returns the i'th motor's last-measured velocity, in rad/s.
func (b *Bank) Velocity(i int) float32 { return b.motors[i].Velocity }

// Integral returns the i'th motor's current integrator accumulator,
// for tests asserting IP6 (the bound on its magnitude).
func (b *Bank) Integral(i int) float32 { return b.motors[i].integral }

// Update runs one control-loop iteration for every motor: measure
// velocity from the encoder delta, run the PID controller, and write
// the saturated PWM duty. It is called once per processed packet
// (spec.md §4.6); the effective control rate is therefore the
// observed packet rate, not a fixed timer.
//
// Velocity measurement uses the actual elapsed time since the last
// update (dt), but the integral and derivative terms use the nominal
// rate config.ControlHz regardless of dt. This is intentional and
// carried unchanged from the reference design (spec.md §4.6, §9 open
// question 3): the gains are tuned for the nominal cadence, and
// packet-arrival jitter is absorbed entirely by the measurement path.
func (b *Bank) Update(now uint32, motors hal.Motors) {
	for i := range b.motors {
		b.updateOne(i, now, motors)
	}
}

func (b *Bank) updateOne(i int, now uint32, motors hal.Motors) {
	m := &b.motors[i]

	count, err := motors.Encoders[i].Count()
	if err != nil {
		// No fresh encoder reading; hold the previous velocity and
		// PWM command rather than fault, since there is no error
		// surface to the host (spec.md §7).
		return
	}

	if m.haveLastCount {
		deltaCount := count - m.prevCount
		dtMs := now - m.lastUpdateMs
		if dtMs > 0 {
			dt := float32(dtMs) / 1000
			m.Velocity = float32(deltaCount) * 2 * math.Pi / (config.CountsPerRev * dt)
		}
	}
	m.prevCount = count
	m.lastUpdateMs = now
	m.haveLastCount = true

	errVal := m.TargetVel - m.Velocity
	m.integral += errVal * (1.0 / config.ControlHz)
	m.integral = clampF(m.integral, -config.MaxIntegral, config.MaxIntegral)
	derivative := (errVal - m.prevError) * config.ControlHz
	m.prevError = errVal

	output := config.PIDKp*errVal + config.PIDKi*m.integral + config.PIDKd*derivative
	output = clampF(output, config.PWMMin, config.PWMMax)

	duty := int16(output)
	if motors.Dir[i] != nil {
		motors.Dir[i].Set(duty < 0)
	}
	if motors.PWM[i] != nil {
		motors.PWM[i].SetDuty(duty)
	}
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
