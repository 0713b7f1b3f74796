package surface

import (
	"math"
	"testing"
)

func TestScreenToGridExample(t *testing.T) {
	gx, gy, ok := ScreenToGrid(256, 256, 16, 16)
	if !ok || gx != 8 || gy != 7 {
		t.Fatalf("ScreenToGrid(256,256,16,16) = (%d,%d,%v), want (8,7,true)", gx, gy, ok)
	}
}

func TestScreenToGridMatchesFormula(t *testing.T) {
	dims := [][2]int{{16, 16}, {64, 48}, {100, 300}, {1, 1}, {513, 7}}
	for _, d := range dims {
		w, h := d[0], d[1]
		for x := 1; x < Width; x += 7 {
			for y := 1; y < Height; y += 11 {
				gx, gy, ok := ScreenToGrid(x, y, w, h)
				if !ok {
					t.Fatalf("(%d,%d) rejected for %dx%d", x, y, w, h)
				}
				wantX := int(math.Floor(float64(x) / Width * float64(w)))
				wantY := h - (int(math.Floor(float64(y)/Height*float64(h))) + 1)
				if gx != wantX || gy != wantY {
					t.Fatalf("%dx%d click (%d,%d) = (%d,%d), want (%d,%d)", w, h, x, y, gx, gy, wantX, wantY)
				}
				if gx < 0 || gx >= w || gy < 0 || gy >= h {
					t.Fatalf("%dx%d click (%d,%d) mapped outside grid: (%d,%d)", w, h, x, y, gx, gy)
				}
			}
		}
	}
}

func TestScreenToGridFlipsVerticalAxis(t *testing.T) {
	_, top, _ := ScreenToGrid(100, 1, 16, 16)
	_, bottom, _ := ScreenToGrid(100, 511, 16, 16)
	if top != 15 || bottom != 0 {
		t.Fatalf("top row = %d, bottom row = %d; want 15 and 0", top, bottom)
	}
}

func TestScreenToGridRejectsEdges(t *testing.T) {
	for _, p := range [][2]int{{0, 10}, {10, 0}, {512, 10}, {10, 512}, {-1, 5}, {5, 600}, {0, 0}, {512, 512}} {
		if _, _, ok := ScreenToGrid(p[0], p[1], 16, 16); ok {
			t.Fatalf("(%d,%d) accepted", p[0], p[1])
		}
	}
}
