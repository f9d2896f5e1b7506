//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"izzymon/app"
	"izzymon/hal"
	"izzymon/monitor/netclient"
)

func main() {
	var hcfg hal.HeadlessConfig
	var backend string
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&hcfg.Scripted, "scripted", false, "Drive two buttons with square waves in headless mode.")
	flag.StringVar(&backend, "backend", "", "Assistant backend root URL (empty = offline).")
	flag.Parse()

	cfg := app.DefaultConfig()
	if backend != "" {
		cfg.Backend = netclient.NewHTTP(backend, cfg.QueryTimeout)
	}

	newApp := func(h hal.HAL) func() error {
		sys, err := app.New(h, cfg)
		if err != nil {
			return func() error { return err }
		}
		sys.Start()
		return func() error { return nil }
	}

	if hcfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
