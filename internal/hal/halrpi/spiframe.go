package halrpi

import (
	"fmt"

	"periph.io/x/conn/v3/spi"
)

// spiFrameReader reads one fixed-shape frame per call: a command
// byte, a length byte, then up to 64 bytes of payload, matching the
// teacher's fixed-header SPI transactions in lcd.go's sendCommand.
// The ingress producer (internal/ingress.Run) is the only caller;
// it polls in a tight loop and discards anything that isn't
// cmd==0x01, len==64.
type spiFrameReader struct {
	conn spi.Conn
}

func (r *spiFrameReader) ReadFrame() (cmd, length byte, data [64]byte, err error) {
	var header [2]byte
	if err := r.conn.Tx(nil, header[:]); err != nil {
		return 0, 0, data, fmt.Errorf("halrpi: frame header: %w", err)
	}
	if err := r.conn.Tx(nil, data[:]); err != nil {
		return 0, 0, data, fmt.Errorf("halrpi: frame payload: %w", err)
	}
	return header[0], header[1], data, nil
}
