// Package halsim implements internal/hal entirely in memory, for
// development and tests without Raspberry Pi hardware. State lives in
// a single goroutine reached through request/response channels, the
// same ownership pattern driver/mjolnir.Simulator uses to serialize
// concurrent reads and writes without a mutex.
package halsim

import "robotctl.dev/internal/hal"

type opKind int

const (
	opSetGPIO opKind = iota
	opReadGPIO
	opSetPWM
	opReadPWM
	opSetEncoder
	opReadEncoder
	opPushFrame
	opReadFrame
	opNowMillis
	opAdvance
)

type request struct {
	kind  opKind
	index int
	bval  bool
	ival  int32
	i16   int16
	u32   uint32
	frame [64]byte
	reply chan response
}

type response struct {
	bval  bool
	ival  int32
	i16   int16
	u32   uint32
	frame [64]byte
	ok    bool
}

// Simulator is an in-process stand-in for a robot's GPIO, PWM,
// encoder, SPI ingress, and clock, all owned by a single goroutine.
// Tests drive it with PushFrame and SetEncoderCount and observe it
// with GPIOState/PWMDuty.
type Simulator struct {
	req chan request
}

// NewSimulator starts the simulator's owning goroutine and returns a
// ready-to-use Simulator. There is no Close: the goroutine runs for
// the lifetime of the process, matching driver/mjolnir.NewSimulator.
func NewSimulator() *Simulator {
	s := &Simulator{req: make(chan request)}
	go s.run()
	return s
}

type deviceState struct {
	gpio     map[int]bool
	pwm      map[int]int16
	encoders map[int]int32
	frames   [][64]byte
	nowMs    uint32
}

func (s *Simulator) run() {
	st := deviceState{
		gpio:     make(map[int]bool),
		pwm:      make(map[int]int16),
		encoders: make(map[int]int32),
	}
	for r := range s.req {
		switch r.kind {
		case opSetGPIO:
			st.gpio[r.index] = r.bval
			r.reply <- response{}
		case opReadGPIO:
			r.reply <- response{bval: st.gpio[r.index]}
		case opSetPWM:
			st.pwm[r.index] = r.i16
			r.reply <- response{}
		case opReadPWM:
			r.reply <- response{i16: st.pwm[r.index]}
		case opSetEncoder:
			st.encoders[r.index] = r.ival
			r.reply <- response{}
		case opReadEncoder:
			r.reply <- response{ival: st.encoders[r.index]}
		case opPushFrame:
			st.frames = append(st.frames, r.frame)
			r.reply <- response{}
		case opReadFrame:
			if len(st.frames) == 0 {
				r.reply <- response{ok: false}
				continue
			}
			f := st.frames[0]
			st.frames = st.frames[1:]
			r.reply <- response{frame: f, ok: true}
		case opNowMillis:
			r.reply <- response{u32: st.nowMs}
		case opAdvance:
			st.nowMs += r.u32
			r.reply <- response{}
		}
	}
}

func (s *Simulator) call(r request) response {
	r.reply = make(chan response, 1)
	s.req <- r
	return <-r.reply
}

// GPIOState returns the last value Set on the numbered GPIO line.
func (s *Simulator) GPIOState(index int) bool {
	return s.call(request{kind: opReadGPIO, index: index}).bval
}

// PWMDuty returns the last duty SetDuty was called with on the
// numbered PWM channel.
func (s *Simulator) PWMDuty(index int) int16 {
	return s.call(request{kind: opReadPWM, index: index}).i16
}

// SetEncoderCount sets the numbered encoder's cumulative count, as if
// the simulated wheel had physically turned.
func (s *Simulator) SetEncoderCount(index int, count int32) {
	s.call(request{kind: opSetEncoder, index: index, ival: count})
}

// PushFrame enqueues a raw 64-byte SPI frame to be returned by the
// next ReadFrame call on the SPI reader this simulator hands out,
// framed with cmd=0x01 and len=64 as the real ingress producer
// expects.
func (s *Simulator) PushFrame(payload [64]byte) {
	s.call(request{kind: opPushFrame, frame: payload})
}

// Advance moves the simulated clock forward by ms milliseconds.
func (s *Simulator) Advance(ms uint32) {
	s.call(request{kind: opAdvance, u32: ms})
}

// GPIO returns a hal.GPIOOut bound to the numbered line.
func (s *Simulator) GPIO(index int) hal.GPIOOut { return &simGPIO{s, index} }

// PWM returns a hal.PWMOut bound to the numbered channel.
func (s *Simulator) PWM(index int) hal.PWMOut { return &simPWM{s, index} }

// Encoder returns a hal.EncoderReader bound to the numbered channel.
func (s *Simulator) Encoder(index int) hal.EncoderReader { return &simEncoder{s, index} }

// Motors bundles PWM/Dir/Encoder views for wheel 0 (left) and 1 (right).
func (s *Simulator) Motors() hal.Motors {
	return hal.Motors{
		PWM:      [2]hal.PWMOut{s.PWM(0), s.PWM(1)},
		Dir:      [2]hal.GPIOOut{s.GPIO(0), s.GPIO(1)},
		Encoders: [2]hal.EncoderReader{s.Encoder(0), s.Encoder(1)},
	}
}

// Clock returns a hal.Clock driven by Advance, not wall-clock time.
func (s *Simulator) Clock() hal.Clock { return (*simClock)(s) }

// SPI returns a hal.SPIFrameReader that dequeues frames pushed with
// PushFrame, always reporting cmd=0x01, len=64.
func (s *Simulator) SPI() hal.SPIFrameReader { return (*simSPI)(s) }

type simGPIO struct {
	s     *Simulator
	index int
}

func (g *simGPIO) Set(high bool) error {
	g.s.call(request{kind: opSetGPIO, index: g.index, bval: high})
	return nil
}

type simPWM struct {
	s     *Simulator
	index int
}

func (p *simPWM) SetDuty(duty int16) error {
	p.s.call(request{kind: opSetPWM, index: p.index, i16: duty})
	return nil
}

type simEncoder struct {
	s     *Simulator
	index int
}

func (e *simEncoder) Count() (int32, error) {
	return e.s.call(request{kind: opReadEncoder, index: e.index}).ival, nil
}

type simClock Simulator

func (c *simClock) NowMillis() uint32 {
	return (*Simulator)(c).call(request{kind: opNowMillis}).u32
}

type simSPI Simulator

func (r *simSPI) ReadFrame() (cmd, length byte, data [64]byte, err error) {
	resp := (*Simulator)(r).call(request{kind: opReadFrame})
	if !resp.ok {
		return 0, 0, data, errNoFrame
	}
	return 0x01, 64, resp.frame, nil
}

type noFrameError struct{}

func (noFrameError) Error() string { return "halsim: no frame available" }

var errNoFrame = noFrameError{}
