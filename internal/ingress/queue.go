// Package ingress implements the lock-free single-producer/single-
// consumer frame queue between the ingress domain (draining SPI) and
// the real-time domain, and the ingress-side loop that fills it.
//
// The queue is modeled on the teacher's channel-owned ring buffers
// (driver/mjolnir.knotBuffer equivalent in stepper.knotBuffer) but
// uses plain atomics instead of channels: a channel would impose a
// scheduler round-trip on every frame, defeating the point of a
// wait-free handoff between two tight polling loops.
package ingress

import (
	"sync/atomic"

	"robotctl.dev/internal/wire"
)

// Queue is a fixed-capacity ring of raw 64-byte frames. Capacity must
// be a power of two. The zero value is not usable; use NewQueue.
type Queue struct {
	mask  uint32
	slots []frameSlot

	// head is advanced by the consumer after it finishes reading a
	// slot; tail is advanced by the producer after it finishes
	// writing one. Each is written by exactly one goroutine and only
	// read by the other.
	head atomic.Uint32
	tail atomic.Uint32
}

type frameSlot struct {
	data [wire.Size]byte
}

// NewQueue creates a ring of the given capacity, which must be a
// power of two (spec.md §4.1 uses 8).
func NewQueue(capacity int) *Queue {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic("ingress: capacity must be a power of two")
	}
	return &Queue{
		mask:  uint32(capacity - 1),
		slots: make([]frameSlot, capacity),
	}
}

// TryEnqueue copies frame into the next slot and publishes it. It is
// called only from the producer (ingress) goroutine. If the queue is
// full, the frame is dropped silently and TryEnqueue returns false —
// there is no backpressure to the SPI link (spec.md §4.1, §7
// queue-drop).
func (q *Queue) TryEnqueue(frame []byte) bool {
	tail := q.tail.Load()
	head := q.head.Load() // acquire: see consumer's published head
	if tail-head >= uint32(len(q.slots)) {
		return false
	}
	slot := &q.slots[tail&q.mask]
	copy(slot.data[:], frame)
	// Release: the payload write above must be visible to the
	// consumer before it observes the new tail.
	q.tail.Store(tail + 1)
	return true
}

// TryDequeue copies the oldest queued frame into out and advances the
// head. It is called only from the consumer (real-time) goroutine.
// Returns false if the queue is empty.
func (q *Queue) TryDequeue(out *wire.Packet) bool {
	head := q.head.Load()
	tail := q.tail.Load() // acquire: see producer's published tail
	if head == tail {
		return false
	}
	slot := &q.slots[head&q.mask]
	*out = wire.Decode(slot.data[:])
	// Release: finish reading the slot before freeing it for reuse.
	q.head.Store(head + 1)
	return true
}
