// command rtcore runs the safety-gated real-time actuation controller
// for a differential-drive robot: an ingress goroutine drains the SPI
// link into a lock-free queue, and the main goroutine runs the
// real-time domain (authenticate, decide, gate, actuate, PID, strobe)
// pinned to its own OS thread at elevated scheduling priority.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"robotctl.dev/internal/config"
	"robotctl.dev/internal/ingress"
	"robotctl.dev/internal/rtloop"
)

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	simSerial := flag.String("sim-serial", "", "on non-hardware builds, read SPI frames from this serial device instead of the in-process simulator")
	flag.Parse()
	if err := run(*simSerial); err != nil {
		fmt.Fprintf(os.Stderr, "rtcore: %v", err)
		os.Exit(2)
	}
}

func run(simSerial string) error {
	log.Println("rtcore: starting")

	plat, err := openPlatform(simSerial)
	if err != nil {
		return fmt.Errorf("open platform: %w", err)
	}
	defer plat.Close()

	q := ingress.NewQueue(config.QueueCapacity)
	quit := make(chan struct{})

	go ingress.Run(plat.SPI(), q, quit)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if err := pinRealtime(); err != nil {
		log.Printf("rtcore: could not raise scheduling priority: %v", err)
	}

	var stats rtloop.Stats
	rtloop.Run(q, plat.Motors(), plat.Brake(), plat.WatchdogPin(), plat.Clock(), quit, &stats)
	return nil
}
