package halsim

import (
	"fmt"
	"io"

	"github.com/tarm/serial"

	"robotctl.dev/internal/hal"
)

// OpenSerialBridge opens a serial port and returns a hal.SPIFrameReader
// that reads the same (cmd, len, 64-byte payload) shape the real SPI
// HAL produces, for driving the controller against a bench rig or a
// second process emulating the ingress hardware over a USB-serial
// link rather than the in-process Simulator. This is a development
// aid, not a production transport: the wire format has no framing
// beyond a fixed byte count, so a dropped byte desyncs the reader
// until the process restarts.
func OpenSerialBridge(name string, baud int) (hal.SPIFrameReader, io.Closer, error) {
	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, nil, fmt.Errorf("halsim: serial bridge: %w", err)
	}
	return &serialFrameReader{port: port}, port, nil
}

type serialFrameReader struct {
	port io.Reader
}

func (r *serialFrameReader) ReadFrame() (cmd, length byte, data [64]byte, err error) {
	var header [2]byte
	if _, err := io.ReadFull(r.port, header[:]); err != nil {
		return 0, 0, data, fmt.Errorf("halsim: serial bridge header: %w", err)
	}
	if _, err := io.ReadFull(r.port, data[:]); err != nil {
		return 0, 0, data, fmt.Errorf("halsim: serial bridge payload: %w", err)
	}
	return header[0], header[1], data, nil
}
