// Package gate implements the safety gate of spec.md §4.4: the last
// line of defense between the policy VM and actuation. It enforces
// invariants the VM cannot see — confidence, parameter bounds, and
// aux-word ranges on brake — and is pure, total, and never overruled.
package gate

import "robotctl.dev/internal/wire"

// MinMotionConfQ15 is the Q15 confidence floor below which any motion
// action (move or turn) is denied, regardless of what the VM decided.
const MinMotionConfQ15 = 8192 // 0.25 in Q15

// MaxBrakeValue bounds the raw GPIO passthrough value a brake action
// may carry; spec.md §4.4 requires the gate to reject hardware-unsafe
// parameters even if the VM approved them.
const MaxBrakeValue = 1

// Gate is the safety gate. It is stateless; the zero value is ready
// to use.
type Gate struct{}

// Allow reports whether a is safe to dispatch given the packet it was
// derived from. Allow is pure and total: it never panics and never
// blocks, and always returns a definite answer.
func (Gate) Allow(a wire.Action, p *wire.Packet) bool {
	switch a.Tag {
	case wire.ActionNoop:
		return true
	case wire.ActionBrake:
		return a.V0 >= 0 && a.V0 <= MaxBrakeValue
	case wire.ActionMove, wire.ActionTurn:
		if p.ConfQ15() < MinMotionConfQ15 {
			return false
		}
		return a.V0 >= wire.MinMotionParam && a.V0 <= wire.MaxMotionParam
	default:
		// An action tag the gate doesn't recognize is never safe.
		return false
	}
}
