package app

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"lightning/internal/core"
	"lightning/internal/render"
	"lightning/internal/surface"
)

// Drive steps sim at tps and paints it into the surface's offscreen buffer
// until ctx is done. The simulation holds still while the surface has a
// pause request; the sky keeps drifting.
func Drive(ctx context.Context, sim core.Sim, s *surface.Surface, tps int, seed int64) error {
	size := sim.Size()
	var palette []color.RGBA
	if p, ok := sim.(render.PaletteProvider); ok {
		palette = p.Palette()
	}
	painter := render.NewGridPainter(size.W, size.H, palette, render.NewSky(surface.Background, seed))
	return core.NewFixedStep(tps).Run(ctx, func() {
		if !s.PauseRequested() {
			sim.Step()
		}
		cells := sim.Cells()
		s.Draw(func(dst *image.RGBA) { painter.Paint(dst, cells) })
	})
}

// Controls maps host key presses onto surface and simulation actions. Hosts
// translate their native input into these calls.
type Controls struct {
	Sim     core.Sim
	Surface *surface.Surface
	Seed    int64
}

type chargeCycler interface {
	CycleChargeType() int
}

type chargeNamer interface {
	ChargeName(t int) string
}

// TogglePause requests a pause or resumes a paused surface.
func (c Controls) TogglePause() {
	if c.Surface.PauseRequested() {
		c.Surface.Resume()
		return
	}
	c.Surface.RequestPause()
}

// StepOnce wakes a paused render loop for a single frame.
func (c Controls) StepOnce() {
	c.Sim.Step()
	c.Surface.Wake()
}

// CycleCharge selects the next charge type when the simulation supports it.
func (c Controls) CycleCharge() {
	if cy, ok := c.Sim.(chargeCycler); ok {
		cy.CycleChargeType()
	}
}

// Reset reinitializes the simulation with seed, or the configured seed when
// seed is zero.
func (c Controls) Reset(seed int64) {
	if seed == 0 {
		seed = c.Seed
	}
	c.Sim.Reset(seed)
}

// ChargeLabel describes the current charge type.
func (c Controls) ChargeLabel() string {
	t := c.Sim.ChargeType()
	if n, ok := c.Sim.(chargeNamer); ok {
		return n.ChargeName(t)
	}
	return fmt.Sprint(t)
}

// Status is a one-line summary for overlays.
func (c Controls) Status() string {
	return fmt.Sprintf("%s | %s | charge: %s", c.Sim.Name(), c.Surface.State(), c.ChargeLabel())
}
