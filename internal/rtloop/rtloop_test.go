package rtloop

import (
	"testing"

	"robotctl.dev/internal/config"
	"robotctl.dev/internal/cryptoprim"
	"robotctl.dev/internal/hal"
	"robotctl.dev/internal/policy"
	"robotctl.dev/internal/wire"
)

type fakeGPIO struct{ states []bool }

func (f *fakeGPIO) Set(high bool) error {
	f.states = append(f.states, high)
	return nil
}

type fakePWM struct{ lastDuty int16 }

func (f *fakePWM) SetDuty(d int16) error { f.lastDuty = d; return nil }

type fakeEncoder struct{ count int32 }

func (f *fakeEncoder) Count() (int32, error) { return f.count, nil }

type fixedClock uint32

func (c fixedClock) NowMillis() uint32 { return uint32(c) }

func buildFrame(seq uint32, intentID uint16, confQ15 uint16, aux0 int16) [64]byte {
	var p wire.Packet
	p.SetMagic(config.MagicWord)
	p.SetSeq(seq)
	p.SetIntentID(intentID)
	p.SetConfQ15(confQ15)
	p.SetAux(0, aux0)
	cryptoprim.ChaCha20XORInPlace(&config.CipherKey, seq, p.EncryptedRegion())
	mac := cryptoprim.SipHash24(config.MACKey[0], config.MACKey[1], p.Bytes()[:wire.MACLen])
	p.SetMAC(mac)
	var out [64]byte
	copy(out[:], p.Bytes())
	return out
}

func TestProcessOneAcceptsAndStrobesWatchdog(t *testing.T) {
	l := &Loop{}
	pwmL, pwmR := &fakePWM{}, &fakePWM{}
	motors := hal.Motors{
		PWM:      [2]hal.PWMOut{pwmL, pwmR},
		Encoders: [2]hal.EncoderReader{&fakeEncoder{}, &fakeEncoder{}},
	}
	brake := &fakeGPIO{}
	wd := &fakeGPIO{}

	frame := buildFrame(1, policy.IntentMoveForward, 32768, 500)
	p := wire.Decode(frame[:])

	var stats Stats
	l.ProcessOne(&p, motors, brake, wd, fixedClock(20), &stats)

	if stats.Admitted != 1 {
		t.Fatalf("expected admitted packet, stats=%+v", stats)
	}
	if len(wd.states) != 2 || !wd.states[0] || wd.states[1] {
		t.Fatalf("expected watchdog strobe [high, low], got %+v", wd.states)
	}
	if pwmL.lastDuty <= 0 {
		t.Fatalf("expected forward motion to produce positive duty, got %d", pwmL.lastDuty)
	}
}

func TestProcessOneRejectsInvalidMACWithoutStrobe(t *testing.T) {
	l := &Loop{}
	motors := hal.Motors{
		Encoders: [2]hal.EncoderReader{&fakeEncoder{}, &fakeEncoder{}},
	}
	wd := &fakeGPIO{}

	frame := buildFrame(1, policy.IntentMoveForward, 32768, 500)
	frame[20] ^= 0xff
	p := wire.Decode(frame[:])

	var stats Stats
	l.ProcessOne(&p, motors, &fakeGPIO{}, wd, fixedClock(0), &stats)

	if stats.Rejected != 1 {
		t.Fatalf("expected rejection, stats=%+v", stats)
	}
	if len(wd.states) != 0 {
		t.Fatal("watchdog must not strobe on a rejected packet")
	}
}

func TestProcessOneDeniesLowConfidenceWithoutStrobe(t *testing.T) {
	l := &Loop{}
	motors := hal.Motors{
		Encoders: [2]hal.EncoderReader{&fakeEncoder{}, &fakeEncoder{}},
	}
	wd := &fakeGPIO{}

	frame := buildFrame(1, policy.IntentMoveForward, 0, 500)
	p := wire.Decode(frame[:])

	var stats Stats
	l.ProcessOne(&p, motors, &fakeGPIO{}, wd, fixedClock(0), &stats)

	if stats.Denied != 1 {
		t.Fatalf("expected denial, stats=%+v", stats)
	}
	if len(wd.states) != 0 {
		t.Fatal("watchdog must not strobe on a denied packet")
	}
}
