// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/qsapp/harness"
	"github.com/ezrec/qsapp/target"
)

func main() {
	var passes int
	var tick int
	var script string
	var defines bool
	var verbose bool

	flag.IntVar(&passes, "n", 0, "Number of passes to run (0 = until interrupted)")
	flag.IntVar(&tick, "t", 0, "Passes between supervisor ticks (0 = disabled)")
	flag.StringVar(&script, "x", "", ".star host script to run against the target")
	flag.BoolVar(&defines, "D", false, "Dump defines, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	tg := target.NewTarget()
	tg.Verbose = verbose
	tg.TickInterval = uint32(tick)
	tg.Probe.Verbose = verbose

	if defines {
		for key, val := range tg.Defines() {
			fmt.Printf("%v = %v\n", key, val)
		}
		return
	}

	if len(script) != 0 {
		tg.Reset()

		h := harness.New(tg)
		h.Verbose = verbose
		if _, err := h.RunScript(script); err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		return
	}

	if passes > 0 {
		tg.Reset()
		for n := 0; n < passes; n++ {
			if err := tg.Tick(); err != nil {
				log.Fatal(err)
			}
		}
		return
	}

	// The loop never terminates on its own; interruption stands in for
	// the debugger halting the target.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := tg.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
