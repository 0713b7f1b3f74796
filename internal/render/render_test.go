package render

import (
	"image"
	"image/color"
	"testing"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func TestFillCellColorsClampsPalette(t *testing.T) {
	dst := make([]color.RGBA, 3)
	fillCellColors(dst, []uint8{0, 1, 9}, []color.RGBA{black, white}, nil)
	if dst[0] != black || dst[1] != white || dst[2] != white {
		t.Fatalf("got %v", dst)
	}
}

func TestFillCellColorsEmptyPalette(t *testing.T) {
	dst := []color.RGBA{red}
	fillCellColors(dst, []uint8{4}, nil, nil)
	if dst[0] != (color.RGBA{}) {
		t.Fatalf("got %v, want transparent", dst[0])
	}
}

func TestFillCellColorsUsesSkyForEmptyCells(t *testing.T) {
	dst := make([]color.RGBA, 2)
	sky := []color.RGBA{red, red}
	fillCellColors(dst, []uint8{0, 1}, []color.RGBA{black, white}, sky)
	if dst[0] != red || dst[1] != white {
		t.Fatalf("got %v", dst)
	}
}

func TestGridPainterPutsRowZeroAtBottom(t *testing.T) {
	gp := NewGridPainter(2, 2, []color.RGBA{black, white}, nil)
	cells := []uint8{1, 0, 0, 0} // (0,0) lit
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	gp.Paint(dst, cells)

	if got := dst.RGBAAt(0, 7); got != white {
		t.Fatalf("bottom-left = %v, want white", got)
	}
	if got := dst.RGBAAt(0, 0); got != black {
		t.Fatalf("top-left = %v, want black", got)
	}
	if got := dst.RGBAAt(7, 7); got != black {
		t.Fatalf("bottom-right = %v, want black", got)
	}
}

func TestGridPainterIgnoresMismatchedCells(t *testing.T) {
	gp := NewGridPainter(4, 4, []color.RGBA{white}, nil)
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	gp.Paint(dst, make([]uint8, 3))
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Fatalf("painter wrote %v for a mismatched grid", got)
	}
}

func TestSkyStaysNearBase(t *testing.T) {
	base := color.RGBA{B: 100, A: 255}
	sky := NewSky(base, 7)
	dst := make([]color.RGBA, 16*16)
	sky.Fill(dst, 16, 16, 3)
	for i, c := range dst {
		if c.A != 255 {
			t.Fatalf("cell %d alpha %d", i, c.A)
		}
		if d := int(c.B) - int(base.B); d > 80 || d < -80 {
			t.Fatalf("cell %d blue drifted to %d", i, c.B)
		}
	}
}

func TestSkyDeterministic(t *testing.T) {
	a := make([]color.RGBA, 64)
	b := make([]color.RGBA, 64)
	NewSky(black, 42).Fill(a, 8, 8, 5)
	NewSky(black, 42).Fill(b, 8, 8, 5)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestDownsampleUniform(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 255, 255
	}
	dst := image.NewRGBA(image.Rect(0, 0, 8, 4))
	Downsample(dst, src)
	if got := dst.RGBAAt(3, 2); got.R < 250 || got.G != 0 || got.B != 0 {
		t.Fatalf("downsampled pixel = %v, want close to %v", got, red)
	}
	Downsample(nil, src)
	Downsample(dst, nil)
}
