package main

import (
	"context"
	"flag"
	"io"
	"log"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"lightning/internal/app"
	"lightning/internal/core"
	_ "lightning/internal/sims/discharge"
	"lightning/internal/surface"
	"lightning/internal/termhost"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	// The terminal owns stdout and stderr while the UI runs.
	logger, closeLog, err := cfg.Logger(io.Discard)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()
	surface.SetLogger(logger)

	factory, err := core.Lookup(cfg.Sim)
	if err != nil {
		log.Fatal(err)
	}
	sim := factory(cfg.SimOptions())
	sim.Reset(cfg.Seed)
	sim.SetChargeType(cfg.Charge)

	var tone *termhost.Tone
	if cfg.Sound {
		if tone, err = termhost.NewTone(); err != nil {
			logger.Warn("sound disabled", "err", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	screen.EnableMouse()

	events := &surface.Dispatcher{}
	surf := surface.New(surface.WithCadence(cfg.Cadence), surface.WithRegistrar(events))
	surf.SetSimulation(sim)
	host := termhost.New(screen, events, app.Controls{Sim: sim, Surface: surf, Seed: cfg.Seed}, tone)

	ctx, cancel := context.WithCancel(context.Background())
	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		defer cancel()
		return host.Run(ctx)
	})
	grp.Go(func() error { return surf.Run(ctx, host) })
	grp.Go(func() error { return app.Drive(ctx, sim, surf, cfg.TPS, cfg.Seed) })

	err = grp.Wait()
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}
