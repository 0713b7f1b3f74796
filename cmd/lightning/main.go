//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"lightning/internal/app"
	"lightning/internal/core"
	_ "lightning/internal/sims/discharge"
	"lightning/internal/surface"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, closeLog, err := cfg.Logger(os.Stderr)
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

	events := &surface.Dispatcher{}
	surf := surface.New(surface.WithCadence(cfg.Cadence), surface.WithRegistrar(events))
	surf.SetSimulation(sim)
	canvas := surface.NewCanvas(surface.Width, surface.Height)

	ctx, cancel := context.WithCancel(context.Background())
	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error { return surf.Run(ctx, canvas) })
	grp.Go(func() error { return app.Drive(ctx, sim, surf, cfg.TPS, cfg.Seed) })

	game := app.New(sim, surf, events, canvas, cfg.Seed)
	size := surf.PreferredSize()

	ebiten.SetWindowTitle("lightning - " + sim.Name())
	ebiten.SetWindowSize(size.X, size.Y)

	runErr := ebiten.RunGame(game)
	cancel()
	if err := grp.Wait(); err != nil {
		log.Print(err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}
