// Package halrpi implements internal/hal against real Raspberry Pi
// silicon via periph.io, following the GPIO and SPI conventions used
// throughout the teacher's own drivers (lcd.Open, driver/wshat.Open):
// host.Init() once, pin assignments as bcm283x.GPIO constants, a
// single spireg-opened SPI connection reused across calls.
package halrpi

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/bcm283x"

	"robotctl.dev/internal/hal"
)

// Pin assignment for a two-wheel differential-drive base: one
// direction pin and one software-PWM pin per motor, plus the brake
// and watchdog strobe lines. Chosen to avoid the SPI and I2C pins
// reserved elsewhere in the teacher's pack (lcd.go, driver/wshat.go).
var (
	pinDirLeft  = bcm283x.GPIO17
	pinDirRight = bcm283x.GPIO27
	pinPWMLeft  = bcm283x.GPIO18
	pinPWMRight = bcm283x.GPIO22
	pinBrake    = bcm283x.GPIO23
	pinWatchdog = bcm283x.GPIO24

	pinEncALeft  = bcm283x.GPIO5
	pinEncBLeft  = bcm283x.GPIO6
	pinEncARight = bcm283x.GPIO13
	pinEncBRight = bcm283x.GPIO19
)

// Platform bundles every initialized HAL resource for one physical
// robot, mirroring the teacher's cmd/controller.Platform grouping of
// per-target hardware handles into a single struct the rest of the
// program depends on only through internal/hal's interfaces.
type Platform struct {
	spiPort spi.PortCloser
	spiConn spi.Conn

	dirLeft, dirRight   gpioOut
	pwmLeft, pwmRight   pwmOut
	brake               gpioOut
	watchdogPin         gpioOut
	encLeft, encRight   *quadEncoder
}

// Open initializes host drivers, claims the GPIO lines, and opens the
// SPI bus the ingress producer reads frames from. Callers must Close
// the returned Platform when done.
func Open() (*Platform, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("halrpi: %w", err)
	}

	p, err := spireg.Open("")
	if err != nil {
		return nil, fmt.Errorf("halrpi: %w", err)
	}
	c, err := p.Connect(1*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("halrpi: %w", err)
	}

	encLeft, err := newQuadEncoder(pinEncALeft, pinEncBLeft)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("halrpi: %w", err)
	}
	encRight, err := newQuadEncoder(pinEncARight, pinEncBRight)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("halrpi: %w", err)
	}

	plat := &Platform{
		spiPort: p,
		spiConn: c,
		dirLeft: gpioOut{pinDirLeft}, dirRight: gpioOut{pinDirRight},
		pwmLeft: pwmOut{pinPWMLeft}, pwmRight: pwmOut{pinPWMRight},
		brake:       gpioOut{pinBrake},
		watchdogPin: gpioOut{pinWatchdog},
		encLeft:     encLeft,
		encRight:    encRight,
	}
	for _, out := range []gpio.PinOut{pinDirLeft, pinDirRight, pinBrake, pinWatchdog} {
		if err := out.Out(gpio.Low); err != nil {
			plat.Close()
			return nil, fmt.Errorf("halrpi: %w", err)
		}
	}
	return plat, nil
}

// Close releases the SPI bus. GPIO pins are left in whatever state
// they were last set; there is no "unclaim" in periph.io.
func (p *Platform) Close() error {
	if p.spiPort == nil {
		return nil
	}
	err := p.spiPort.Close()
	p.spiPort = nil
	p.spiConn = nil
	return err
}

// Motors returns the hal.Motors view of this platform's two wheels.
func (p *Platform) Motors() hal.Motors {
	return hal.Motors{
		PWM:      [2]hal.PWMOut{&p.pwmLeft, &p.pwmRight},
		Dir:      [2]hal.GPIOOut{&p.dirLeft, &p.dirRight},
		Encoders: [2]hal.EncoderReader{p.encLeft, p.encRight},
	}
}

// Brake returns the brake actuator's GPIO line.
func (p *Platform) Brake() hal.GPIOOut { return &p.brake }

// WatchdogPin returns the hardware watchdog strobe line.
func (p *Platform) WatchdogPin() hal.GPIOOut { return &p.watchdogPin }

// SPI returns a frame reader over the platform's SPI connection.
func (p *Platform) SPI() hal.SPIFrameReader {
	return &spiFrameReader{conn: p.spiConn}
}

// Clock returns a wall-clock millisecond timebase counted from the
// moment Clock is called, so it fits uint32 for the lifetime of a run.
// Each call starts a new timebase.
func (p *Platform) Clock() hal.Clock { return wallClock{start: time.Now()} }

type wallClock struct{ start time.Time }

func (w wallClock) NowMillis() uint32 {
	return uint32(time.Since(w.start).Milliseconds())
}

type gpioOut struct {
	pin gpio.PinOut
}

func (g gpioOut) Set(high bool) error {
	level := gpio.Low
	if high {
		level = gpio.High
	}
	return g.pin.Out(level)
}

// pwmOut drives a PWM-capable pin's duty cycle directly via
// periph.io's gpio.PinOut.PWM, converting the [-1000, 1000] duty
// range of internal/hal into a physic.RelativeDuty fraction and a
// fixed PWM frequency. Direction is carried on the separate dir pin;
// only magnitude reaches the PWM line.
type pwmOut struct {
	pin gpio.PinOut
}

const pwmFrequency = 20 * physic.KiloHertz

func (w pwmOut) SetDuty(duty int16) error {
	if duty < 0 {
		duty = -duty
	}
	frac := physic.RelativeDuty(duty) * physic.DutyMax / 1000
	return w.pin.PWM(frac, pwmFrequency)
}
