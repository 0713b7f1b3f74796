package termhost

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"lightning/internal/app"
	"lightning/internal/core"
	"lightning/internal/sims/discharge"
	"lightning/internal/surface"
)

func newHost(t *testing.T, cols, rows int) (*Host, *discharge.Field, *surface.Surface) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	sim := discharge.New(16, 16)
	events := &surface.Dispatcher{}
	s := surface.New(surface.WithRegistrar(events))
	s.SetSimulation(sim)
	events.Register(s)
	h := New(screen, events, app.Controls{Sim: sim, Surface: s, Seed: 1}, nil)
	return h, sim, s
}

func TestCellToSurface(t *testing.T) {
	x, y := CellToSurface(0, 0, 64, 32)
	if x != 4 || y != 8 {
		t.Fatalf("CellToSurface(0,0) = (%d,%d), want (4,8)", x, y)
	}
	x, y = CellToSurface(63, 31, 64, 32)
	if x != 508 || y != 504 {
		t.Fatalf("CellToSurface(63,31) = (%d,%d), want (508,504)", x, y)
	}
	if x, y := CellToSurface(1, 1, 0, 10); x != -1 || y != -1 {
		t.Fatal("empty terminal should map off-surface")
	}
}

func TestClickPlacesCharge(t *testing.T) {
	h, sim, _ := newHost(t, 32, 32)
	h.handle(tcell.NewEventMouse(16, 16, tcell.Button1, tcell.ModNone))
	h.handle(tcell.NewEventMouse(16, 16, tcell.ButtonNone, tcell.ModNone))

	// Cell (16,16) of 32x32 is surface pixel (264,264), grid (8,7).
	cells := sim.Cells()
	if cells[7*16+8] != discharge.StateFiring {
		t.Fatalf("click did not ignite grid cell (8,7)")
	}
}

func TestClickIgnoredWithoutPlacement(t *testing.T) {
	h, sim, _ := newHost(t, 32, 32)
	sim.SetChargeType(core.NoCharge)
	h.handle(tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone))
	h.handle(tcell.NewEventMouse(5, 5, tcell.ButtonNone, tcell.ModNone))
	for i, c := range sim.Cells() {
		if c != discharge.StateEmpty {
			t.Fatalf("cell %d changed with placement disabled", i)
		}
	}
}

func TestDragDoesNotPlaceCharge(t *testing.T) {
	h, sim, _ := newHost(t, 32, 32)
	h.handle(tcell.NewEventMouse(4, 4, tcell.Button1, tcell.ModNone))
	h.handle(tcell.NewEventMouse(20, 20, tcell.ButtonNone, tcell.ModNone))
	for i, c := range sim.Cells() {
		if c != discharge.StateEmpty {
			t.Fatalf("cell %d changed after a drag", i)
		}
	}
}

func TestKeys(t *testing.T) {
	h, sim, s := newHost(t, 10, 10)
	if !h.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) || !s.PauseRequested() {
		t.Fatal("space should request a pause")
	}
	h.handle(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	if sim.ChargeType() != discharge.ChargeGround {
		t.Fatalf("ChargeType = %d after cycling", sim.ChargeType())
	}
	if h.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}
	if h.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
	if h.handle(tcell.NewEventInterrupt(nil)) {
		t.Fatal("interrupt should stop the event loop")
	}
}

func TestDrawImageIgnoresNil(t *testing.T) {
	h, _, _ := newHost(t, 4, 4)
	h.DrawImage(nil)
	if h.scratch != nil {
		t.Fatal("nil image should not allocate a scratch buffer")
	}
}

func TestToneFor(t *testing.T) {
	if toneFor(core.NoCharge) != 0 {
		t.Fatal("disabled placement should be silent")
	}
	if toneFor(discharge.ChargeSpark) == toneFor(discharge.ChargeGround) {
		t.Fatal("charge types should sound different")
	}
	var silent *Tone
	silent.Play(440)
}
