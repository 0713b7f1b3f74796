// Package discharge is a small charge grid that lights up where clicks place
// sparks. Firing cells follow Brian's Brain rules; ground cells never fire
// and block propagation.
package discharge

import (
	"image/color"
	"sync"
	"sync/atomic"

	"lightning/internal/core"
)

// Cell states.
const (
	StateEmpty  = 0
	StateFiring = 1
	StateDying  = 2
	StateGround = 3
)

// Charge types accepted by SetChargeType.
const (
	ChargeSpark  = 0
	ChargeGround = 1
)

var chargeTypes = []int{core.NoCharge, ChargeSpark, ChargeGround}

// Field is the discharge simulation. All methods are safe for concurrent use.
type Field struct {
	cfg  Config
	w, h int

	mu   sync.Mutex
	grid *core.ByteGrid
	nxt  *core.ByteGrid

	chargeType atomic.Int64
}

// New returns a field with the provided dimensions and default settings.
func New(w, h int) *Field {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a field configured from cfg.
func NewWithConfig(cfg Config) *Field {
	f := &Field{
		cfg:  cfg,
		grid: core.NewByteGrid(cfg.Width, cfg.Height),
		nxt:  core.NewByteGrid(cfg.Width, cfg.Height),
	}
	f.w, f.h = f.grid.W, f.grid.H
	f.chargeType.Store(ChargeSpark)
	return f
}

// Name identifies the simulation.
func (f *Field) Name() string { return "discharge" }

// Size returns the grid dimensions.
func (f *Field) Size() core.Size { return core.Size{W: f.w, H: f.h} }

// XRes returns the grid width.
func (f *Field) XRes() int { return f.w }

// YRes returns the grid height.
func (f *Field) YRes() int { return f.h }

// ChargeType returns the kind of charge the next click places.
func (f *Field) ChargeType() int { return int(f.chargeType.Load()) }

// SetChargeType selects the charge placed by clicks. core.NoCharge disables
// placement. Unknown types are ignored.
func (f *Field) SetChargeType(t int) {
	for _, known := range chargeTypes {
		if known == t {
			f.chargeType.Store(int64(t))
			return
		}
	}
}

// CycleChargeType advances to the next charge type and returns it.
func (f *Field) CycleChargeType() int {
	cur := f.ChargeType()
	next := chargeTypes[0]
	for i, t := range chargeTypes {
		if t == cur {
			next = chargeTypes[(i+1)%len(chargeTypes)]
			break
		}
	}
	f.chargeType.Store(int64(next))
	return next
}

// ChargeName returns a short label for a charge type.
func (f *Field) ChargeName(t int) string {
	switch t {
	case core.NoCharge:
		return "none"
	case ChargeSpark:
		return "spark"
	case ChargeGround:
		return "ground"
	default:
		return "unknown"
	}
}

// SetCharge places the current charge type at (x, y). A spark ignites the
// cell and its right-hand neighbor, the smallest seed that keeps firing.
func (f *Field) SetCharge(x, y int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.ChargeType() {
	case ChargeSpark:
		for _, dx := range []int{0, 1} {
			if f.grid.At(x+dx, y) == StateEmpty {
				f.grid.Set(x+dx, y, StateFiring)
			}
		}
	case ChargeGround:
		f.grid.Set(x, y, StateGround)
	}
}

// Cells returns a snapshot of the grid, row 0 first.
func (f *Field) Cells() []uint8 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint8(nil), f.grid.Cells()...)
}

// Reset clears the grid and fires a random sprinkle of cells.
func (f *Field) Reset(seed int64) {
	if seed == 0 {
		seed = f.cfg.Seed
	}
	rng := core.NewRNG(seed)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.grid.Clear()
	f.nxt.Clear()
	cells := f.grid.Cells()
	for i := range cells {
		if rng.Chance(f.cfg.Density) {
			cells[i] = StateFiring
		}
	}
}

// Step advances the field by one tick.
func (f *Field) Step() {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, nxt := f.grid, f.nxt
	w, h := cur.W, cur.H
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := cur.Index(x, y)
			switch cur.Cells()[idx] {
			case StateFiring:
				nxt.Cells()[idx] = StateDying
			case StateDying:
				nxt.Cells()[idx] = StateEmpty
			case StateGround:
				nxt.Cells()[idx] = StateGround
			default:
				if firingNeighbors(cur, x, y) == 2 {
					nxt.Cells()[idx] = StateFiring
				} else {
					nxt.Cells()[idx] = StateEmpty
				}
			}
		}
	}
	f.grid, f.nxt = nxt, cur
}

func firingNeighbors(g *core.ByteGrid, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.At(x+dx, y+dy) == StateFiring {
				n++
			}
		}
	}
	return n
}

var palette = []color.RGBA{
	StateEmpty:  {R: 0, G: 0, B: 100, A: 255},
	StateFiring: {R: 235, G: 235, B: 255, A: 255},
	StateDying:  {R: 130, G: 120, B: 230, A: 255},
	StateGround: {R: 96, G: 70, B: 40, A: 255},
}

// Palette exposes the colors used for each cell state.
func (f *Field) Palette() []color.RGBA { return palette }

func init() {
	core.Register("discharge", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
