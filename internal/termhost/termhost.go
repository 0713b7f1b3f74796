// Package termhost presents a render surface in a terminal. Each character
// cell shows two surface rows using a half block glyph, and mouse clicks are
// mapped back onto surface pixels.
package termhost

import (
	"context"
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"

	"lightning/internal/app"
	"lightning/internal/render"
	"lightning/internal/surface"
)

const halfBlock = '▀'

// Host adapts a tcell screen to the surface's Graphics and pointer contracts.
type Host struct {
	screen   tcell.Screen
	events   *surface.Dispatcher
	controls app.Controls
	tone     *Tone

	mu      sync.Mutex
	scratch *image.RGBA

	left surface.Button
}

// New wraps an initialized screen. tone may be nil.
func New(screen tcell.Screen, events *surface.Dispatcher, controls app.Controls, tone *Tone) *Host {
	return &Host{screen: screen, events: events, controls: controls, tone: tone}
}

// DrawImage implements surface.Graphics.
func (h *Host) DrawImage(img image.Image) {
	if img == nil {
		return
	}
	cols, rows := h.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.scratch == nil || h.scratch.Bounds().Dx() != cols || h.scratch.Bounds().Dy() != rows*2 {
		h.scratch = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	}
	render.Downsample(h.scratch, img)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := h.scratch.RGBAAt(x, 2*y)
			bottom := h.scratch.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			h.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	h.screen.Show()
}

// CellToSurface maps the centre of terminal cell (cx, cy) onto surface
// pixel coordinates for a cols x rows terminal.
func CellToSurface(cx, cy, cols, rows int) (int, int) {
	if cols <= 0 || rows <= 0 {
		return -1, -1
	}
	x := (2*cx + 1) * surface.Width / (2 * cols)
	y := (2*cy + 1) * surface.Height / (2 * rows)
	return x, y
}

// Run processes terminal events until the user quits or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()
	for {
		ev := h.screen.PollEvent()
		if ev == nil || !h.handle(ev) {
			return nil
		}
	}
}

// handle processes one event and reports whether to keep going.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		return false
	case *tcell.EventKey:
		return h.key(ev)
	case *tcell.EventMouse:
		h.mouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
		h.controls.Surface.Paint(h)
	}
	return true
}

func (h *Host) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		h.controls.TogglePause()
	case 'n':
		h.controls.StepOnce()
	case 'c':
		h.controls.CycleCharge()
	case 'r':
		h.controls.Reset(0)
	}
	return true
}

func (h *Host) mouse(ev *tcell.EventMouse) {
	cols, rows := h.screen.Size()
	cx, cy := ev.Position()
	x, y := CellToSurface(cx, cy, cols, rows)
	down := ev.Buttons()&tcell.Button1 != 0
	if down {
		if pressed := h.left.Press(x, y); pressed != nil {
			h.events.Dispatch(pressed)
		}
		return
	}
	released, clicked := h.left.Release(x, y)
	if released != nil {
		h.events.Dispatch(released)
	}
	if clicked != nil && h.events.Dispatch(clicked) {
		h.tone.Play(toneFor(h.controls.Sim.ChargeType()))
	}
}
