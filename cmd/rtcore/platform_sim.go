//go:build !linux || !arm

package main

import (
	"fmt"
	"io"

	"robotctl.dev/internal/hal"
	"robotctl.dev/internal/hal/halsim"
)

const simSerialBaud = 115200

// simPlatform adapts halsim.Simulator to the Platform interface for
// development builds off the target hardware. GPIO, PWM, and encoders
// always come from the in-memory simulator; the SPI frame source is
// either the simulator's own in-process queue or, when simSerial names
// a device, a github.com/tarm/serial bridge reading real bytes off an
// external rig.
type simPlatform struct {
	sim    *halsim.Simulator
	spi    hal.SPIFrameReader
	closer io.Closer
}

func openPlatform(simSerial string) (Platform, error) {
	sim := halsim.NewSimulator()
	p := &simPlatform{sim: sim, spi: sim.SPI()}
	if simSerial != "" {
		bridge, closer, err := halsim.OpenSerialBridge(simSerial, simSerialBaud)
		if err != nil {
			return nil, fmt.Errorf("rtcore: -sim-serial: %w", err)
		}
		p.spi = bridge
		p.closer = closer
	}
	return p, nil
}

func (p *simPlatform) Motors() hal.Motors       { return p.sim.Motors() }
func (p *simPlatform) Brake() hal.GPIOOut       { return p.sim.GPIO(2) }
func (p *simPlatform) WatchdogPin() hal.GPIOOut { return p.sim.GPIO(3) }
func (p *simPlatform) SPI() hal.SPIFrameReader  { return p.spi }
func (p *simPlatform) Clock() hal.Clock         { return p.sim.Clock() }

func (p *simPlatform) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}
