// Package rtloop runs the real-time domain of spec.md §5: a tight,
// non-preemptive loop pulling admitted frames off the ingress queue
// and driving them through authentication, policy, the safety gate,
// actuation, the PID velocity controller, and the watchdog strobe, in
// that strict order, once per packet.
package rtloop

import (
	"robotctl.dev/internal/actuate"
	"robotctl.dev/internal/auth"
	"robotctl.dev/internal/gate"
	"robotctl.dev/internal/hal"
	"robotctl.dev/internal/ingress"
	"robotctl.dev/internal/motor"
	"robotctl.dev/internal/policy"
	"robotctl.dev/internal/watchdog"
	"robotctl.dev/internal/wire"
)

// Loop holds the per-run state threaded through every iteration: the
// anti-replay authenticator and the motor bank's PID state. Both must
// persist across packets, unlike the stateless policy VM and gate.
type Loop struct {
	Auth  auth.Authenticator
	Bank  motor.Bank
	VM    policy.VM
	Gate  gate.Gate
}

// Stats counts terminal outcomes per packet, for diagnostics only —
// nothing downstream of Run reads these during normal operation.
type Stats struct {
	Admitted uint64
	Rejected uint64
	Denied   uint64
}

// Run pops queued frames and processes them until quit is closed. It
// never blocks or sleeps, matching spec.md §5's "no suspension points
// on the real-time core": it busy-polls q.TryDequeue, which returns at
// once when the queue is empty, and checks quit with a non-blocking
// select between polls.
func Run(q *ingress.Queue, motors hal.Motors, brake, watchdogPin hal.GPIOOut, clock hal.Clock, quit <-chan struct{}, stats *Stats) {
	l := &Loop{}
	var p wire.Packet
	for {
		select {
		case <-quit:
			return
		default:
		}
		if !q.TryDequeue(&p) {
			continue
		}
		l.ProcessOne(&p, motors, brake, watchdogPin, clock, stats)
	}
}

// ProcessOne runs the fixed auth → policy → gate → actuate → PID →
// watchdog sequence for a single dequeued frame. Run is ProcessOne
// called in a loop; tests call ProcessOne directly to step the
// pipeline deterministically, one packet at a time.
func (l *Loop) ProcessOne(frame *wire.Packet, motors hal.Motors, brake, watchdogPin hal.GPIOOut, clock hal.Clock, stats *Stats) {
	admitted, ok := l.Auth.TryAdmit(frame.Bytes())
	if !ok {
		if stats != nil {
			stats.Rejected++
		}
		return
	}
	action := l.VM.Decide(&admitted)
	if !l.Gate.Allow(action, &admitted) {
		if stats != nil {
			stats.Denied++
		}
		return
	}
	actuate.Dispatch(action, &l.Bank, brake)
	l.Bank.Update(clock.NowMillis(), motors)
	watchdog.Strobe(watchdogPin)
	if stats != nil {
		stats.Admitted++
	}
}
