// Package actuate translates an accepted wire.Action into concrete
// hardware effects: the brake GPIO or the motor bank's velocity
// targets (spec.md §4.5). It runs only after the safety gate has
// approved the action; it does not re-validate anything itself.
package actuate

import (
	"robotctl.dev/internal/config"
	"robotctl.dev/internal/hal"
	"robotctl.dev/internal/motor"
	"robotctl.dev/internal/wire"
)

// Dispatch applies a to the motor bank and brake line. The int16
// v0 carried by move/turn actions is divided by config.VelocityScale
// to produce a float32 rad/s target; saturation to what the motors
// can actually achieve is deferred entirely to the PID clamp in
// motor.Bank.Update, per spec.md §4.5.
func Dispatch(a wire.Action, bank *motor.Bank, brake hal.GPIOOut) {
	switch a.Tag {
	case wire.ActionBrake:
		if brake != nil {
			brake.Set(a.V0 != 0)
		}
	case wire.ActionMove:
		target := float32(a.V0) / config.VelocityScale
		bank.SetTarget(config.LeftMotor, target)
		bank.SetTarget(config.RightMotor, target)
	case wire.ActionTurn:
		target := float32(a.V0) / config.VelocityScale
		bank.SetTarget(config.LeftMotor, target)
		bank.SetTarget(config.RightMotor, -target)
	default:
		// Noop and anything else: no change to motor targets or brake.
	}
}
