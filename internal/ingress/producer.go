package ingress

import "robotctl.dev/internal/hal"

// FrameCmd and FrameLen are the only (cmd, len) combination the
// ingress domain admits onto the queue; everything else is a
// different kind of SPI traffic and is ignored (spec.md §6).
const (
	FrameCmd = 0x01
	FrameLen = 64
)

// Run drains spi in a tight loop, forever, pushing admitted frames
// onto q. It never blocks the real-time domain: on a full queue it
// drops the frame and keeps polling. Run is meant to be the body of
// the ingress goroutine — the software stand-in for spec.md §6's
// "multicore launch of a second thread" (hw_multicore_launch_core1),
// following the teacher's preference for goroutines over manual
// thread plumbing (e.g. driver/wshat.Open's per-button goroutines).
//
// quit, when closed, stops the loop. The untrusted ingress domain
// tolerates arbitrary SPI read latency (spec.md §5); Run places no
// deadline on spi.ReadFrame.
func Run(spi hal.SPIFrameReader, q *Queue, quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			return
		default:
		}
		cmd, length, data, err := spi.ReadFrame()
		if err != nil {
			continue
		}
		if cmd != FrameCmd || length != FrameLen {
			continue
		}
		q.TryEnqueue(data[:])
	}
}
