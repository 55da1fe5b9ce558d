package halrpi

import (
	"fmt"
	"sync/atomic"

	"periph.io/x/conn/v3/gpio"
)

// quadEncoder decodes a two-channel quadrature encoder by watching
// edges on the A channel and sampling B's level to determine
// direction, the same WaitForEdge-driven goroutine-per-input pattern
// driver/wshat.Open uses for debounced buttons. Count is read
// lock-free via atomic.Int32.
type quadEncoder struct {
	count atomic.Int32
}

func newQuadEncoder(a, b gpio.PinIn) (*quadEncoder, error) {
	if err := a.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}
	if err := b.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}
	e := &quadEncoder{}
	go e.run(a, b)
	return e, nil
}

func (e *quadEncoder) run(a, b gpio.PinIn) {
	for {
		if !a.WaitForEdge(-1) {
			continue
		}
		if b.Read() == gpio.High {
			e.count.Add(1)
		} else {
			e.count.Add(-1)
		}
	}
}

func (e *quadEncoder) Count() (int32, error) {
	return e.count.Load(), nil
}
