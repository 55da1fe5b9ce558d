// Package policy implements the intent-to-action VM of spec.md §4.3:
// a deterministic, side-effect-free, total function from an
// authenticated packet to a candidate action.
//
// The reference source carries no policy table (spec.md §9 open
// question 4); this table is supplied as the smallest set that
// exercises every wire.ActionTag, dispatching on IntentID alone and
// defaulting to noop for unknown intents, modeled on
// driver/mjolnir/sim.go's fixed command-byte switch. The VM does not
// look at confidence; the safety gate applies the confidence floor.
package policy

import "robotctl.dev/internal/wire"

// Intent IDs understood by the VM. Anything else defaults to noop.
const (
	IntentNoop         uint16 = 0
	IntentBrake        uint16 = 1
	IntentMoveForward  uint16 = 2
	IntentMoveBackward uint16 = 3
	IntentTurnLeft     uint16 = 4
	IntentTurnRight    uint16 = 5
)

// rule is one row of the fixed intent-dispatch table. The table is
// scanned once per Decide call, a fixed-size scan independent of
// packet contents, satisfying the VM's bounded-worst-case-time
// requirement.
type rule struct {
	intent uint16
	build  func(p *wire.Packet) wire.Action
}

var table = [...]rule{
	{IntentNoop, func(p *wire.Packet) wire.Action { return wire.Noop }},
	{IntentBrake, func(p *wire.Packet) wire.Action {
		return wire.Action{Tag: wire.ActionBrake, V0: p.Aux(0)}
	}},
	{IntentMoveForward, func(p *wire.Packet) wire.Action {
		return wire.Action{Tag: wire.ActionMove, V0: abs16(p.Aux(0))}
	}},
	{IntentMoveBackward, func(p *wire.Packet) wire.Action {
		return wire.Action{Tag: wire.ActionMove, V0: -abs16(p.Aux(0))}
	}},
	{IntentTurnLeft, func(p *wire.Packet) wire.Action {
		return wire.Action{Tag: wire.ActionTurn, V0: abs16(p.Aux(0))}
	}},
	{IntentTurnRight, func(p *wire.Packet) wire.Action {
		return wire.Action{Tag: wire.ActionTurn, V0: -abs16(p.Aux(0))}
	}},
}

// VM is the policy engine. It is stateless; the zero value is ready
// to use.
type VM struct{}

// Decide maps an authenticated packet to a candidate action. Decide is
// pure and total: every input yields some action, defaulting to noop
// when no rule matches the intent ID. Confidence is not the VM's
// concern — spec.md §4.4 assigns the confidence floor to the safety
// gate, which sees the action the VM produced and can veto it; the VM
// only translates intent into a candidate action.
func (VM) Decide(p *wire.Packet) wire.Action {
	for _, r := range table {
		if r.intent == p.IntentID() {
			return r.build(p)
		}
	}
	return wire.Noop
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}
