package wire

// ActionTag identifies what an Action does; see spec.md §4.5.
type ActionTag uint8

const (
	ActionNoop ActionTag = iota
	ActionBrake
	ActionMove
	ActionTurn
)

// Action is the candidate/accepted action passed from the policy VM
// through the gate to the actuator dispatcher: a tag plus a signed
// parameter whose meaning depends on the tag (spec.md §3, §6).
type Action struct {
	Tag ActionTag
	V0  int16
}

// Noop is the zero-value action: no actuation, no state change.
var Noop = Action{Tag: ActionNoop}

// MinMotionParam and MaxMotionParam bound the raw int16 v0 parameter
// the gate accepts for move/turn actions, before the 1/100 scaling to
// rad/s (spec.md §4.5). ±2000 corresponds to ±20 rad/s, comfortably
// above any speed this class of differential-drive robot can reach —
// parameters beyond this are a VM bug or a malicious host, not a
// legitimate command, and the gate must reject them even though the
// PID loop's own PWM clamp would eventually saturate the output anyway
// (spec.md §4.4: the gate is the last line of defense, independent of
// downstream clamping).
const (
	MinMotionParam int16 = -2000
	MaxMotionParam int16 = 2000
)
