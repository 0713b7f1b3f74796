//go:build ebiten

package app

import (
	"image"
	"time"

	"lightning/internal/core"
	"lightning/internal/surface"
	"lightning/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a render surface to the ebiten.Game interface. The render
// loop blits into canvas; Draw uploads the latest frame.
type Game struct {
	controls Controls
	events   *surface.Dispatcher
	canvas   *surface.Canvas
	img      *ebiten.Image
	overlay  *ui.Overlay

	inside bool
	left   surface.Button
}

// New constructs a Game for the provided simulation and surface.
func New(sim core.Sim, s *surface.Surface, events *surface.Dispatcher, canvas *surface.Canvas, seed int64) *Game {
	size := s.PreferredSize()
	return &Game{
		controls: Controls{Sim: sim, Surface: s, Seed: seed},
		events:   events,
		canvas:   canvas,
		img:      ebiten.NewImage(size.X, size.Y),
		overlay:  ui.NewOverlay(),
	}
}

// Update handles keyboard controls and forwards pointer events.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.controls.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.controls.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.controls.CycleCharge()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.controls.Reset(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.controls.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.overlay.Toggle()
	}
	g.pointer()
	return nil
}

func (g *Game) pointer() {
	x, y := ebiten.CursorPosition()
	size := g.controls.Surface.PreferredSize()
	inside := x >= 0 && y >= 0 && x < size.X && y < size.Y
	switch {
	case inside && !g.inside:
		g.events.Dispatch(&surface.PointerEvent{Kind: surface.PointerEntered, X: x, Y: y})
	case !inside && g.inside:
		g.events.Dispatch(&surface.PointerEvent{Kind: surface.PointerExited, X: x, Y: y})
	}
	g.inside = inside

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ev := g.left.Press(x, y); ev != nil {
			g.events.Dispatch(ev)
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		released, clicked := g.left.Release(x, y)
		if released != nil {
			g.events.Dispatch(released)
		}
		if clicked != nil {
			g.events.Dispatch(clicked)
		}
	}
}

// Draw uploads the most recent frame. Until the render loop has produced
// one, the surface is asked to paint directly.
func (g *Game) Draw(screen *ebiten.Image) {
	var frames uint64
	g.canvas.Frame(func(img *image.RGBA, n uint64) {
		frames = n
		if n > 0 {
			g.img.WritePixels(img.Pix)
		}
	})
	if frames == 0 {
		g.controls.Surface.Update(surface.GraphicsFunc(func(img image.Image) {
			if rgba, ok := img.(*image.RGBA); ok {
				g.img.WritePixels(rgba.Pix)
			}
		}))
	}
	screen.DrawImage(g.img, nil)
	g.overlay.Draw(screen, g.controls.Status())
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.controls.Surface.PreferredSize()
	return size.X, size.Y
}
