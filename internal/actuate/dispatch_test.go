package actuate

import (
	"testing"

	"robotctl.dev/internal/hal"
	"robotctl.dev/internal/motor"
	"robotctl.dev/internal/wire"
)

type fakeBrake struct {
	calls []bool
}

func (f *fakeBrake) Set(high bool) error {
	f.calls = append(f.calls, high)
	return nil
}

type stillEncoder struct{}

func (stillEncoder) Count() (int32, error) { return 0, nil }

type recordingPWM struct{ lastDuty int16 }

func (r *recordingPWM) SetDuty(d int16) error { r.lastDuty = d; return nil }

func TestMoveDrivesBothMotorsSameDirection(t *testing.T) {
	var bank motor.Bank
	Dispatch(wire.Action{Tag: wire.ActionMove, V0: 250}, &bank, nil)

	pwmL, pwmR := &recordingPWM{}, &recordingPWM{}
	motors := hal.Motors{
		PWM:      [2]hal.PWMOut{pwmL, pwmR},
		Encoders: [2]hal.EncoderReader{stillEncoder{}, stillEncoder{}},
	}
	bank.Update(20, motors)

	if pwmL.lastDuty <= 0 || pwmR.lastDuty <= 0 {
		t.Fatalf("expected both motors driven forward, got L=%d R=%d", pwmL.lastDuty, pwmR.lastDuty)
	}
}

func TestTurnDrivesMotorsOppositeDirections(t *testing.T) {
	var bank motor.Bank
	Dispatch(wire.Action{Tag: wire.ActionTurn, V0: 250}, &bank, nil)

	pwmL, pwmR := &recordingPWM{}, &recordingPWM{}
	motors := hal.Motors{
		PWM:      [2]hal.PWMOut{pwmL, pwmR},
		Encoders: [2]hal.EncoderReader{stillEncoder{}, stillEncoder{}},
	}
	bank.Update(20, motors)

	if pwmL.lastDuty <= 0 || pwmR.lastDuty >= 0 {
		t.Fatalf("expected opposite-sign duty for turn, got L=%d R=%d", pwmL.lastDuty, pwmR.lastDuty)
	}
}

func TestBrakeAssertsGPIOAndLeavesMotorTargetsUnchanged(t *testing.T) {
	var bank motor.Bank
	Dispatch(wire.Action{Tag: wire.ActionMove, V0: 250}, &bank, nil)

	b := &fakeBrake{}
	Dispatch(wire.Action{Tag: wire.ActionBrake, V0: 1}, &bank, b)

	if len(b.calls) != 1 || !b.calls[0] {
		t.Fatalf("expected brake GPIO asserted high once, got %+v", b.calls)
	}

	// spec.md §4.5/§8 scenario 6: brake only asserts the GPIO; motor
	// targets set by an earlier move/turn must survive it untouched.
	pwmL, pwmR := &recordingPWM{}, &recordingPWM{}
	motors := hal.Motors{
		PWM:      [2]hal.PWMOut{pwmL, pwmR},
		Encoders: [2]hal.EncoderReader{stillEncoder{}, stillEncoder{}},
	}
	bank.Update(20, motors)
	if pwmL.lastDuty <= 0 || pwmR.lastDuty <= 0 {
		t.Fatalf("expected move target to survive a brake dispatch, got L=%d R=%d", pwmL.lastDuty, pwmR.lastDuty)
	}
}

func TestBrakeZeroDeassertsGPIO(t *testing.T) {
	var bank motor.Bank
	b := &fakeBrake{}
	Dispatch(wire.Action{Tag: wire.ActionBrake, V0: 0}, &bank, b)

	if len(b.calls) != 1 || b.calls[0] {
		t.Fatalf("expected brake GPIO deasserted, got %+v", b.calls)
	}
}

func TestNoopLeavesBrakeUntouched(t *testing.T) {
	var bank motor.Bank
	b := &fakeBrake{}
	Dispatch(wire.Noop, &bank, b)

	if len(b.calls) != 0 {
		t.Fatalf("expected no brake GPIO calls on noop, got %+v", b.calls)
	}
}

func TestDispatchAcceptsNilBrake(t *testing.T) {
	var bank motor.Bank
	// Must not panic when no brake line is wired (e.g. a minimal sim).
	Dispatch(wire.Action{Tag: wire.ActionBrake, V0: 1}, &bank, nil)
}
