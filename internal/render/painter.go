package render

import (
	"image"
	"image/color"
)

// PaletteProvider is implemented by simulations that choose their own colors.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// GridPainter scales a w*h cell grid onto an RGBA image. Grid row 0 is drawn
// at the bottom of the image.
type GridPainter struct {
	w, h    int
	palette []color.RGBA
	sky     *Sky
	colors  []color.RGBA
	skyBuf  []color.RGBA
	frame   int
}

// NewGridPainter allocates a painter for a grid of size w*h. sky may be nil.
func NewGridPainter(w, h int, palette []color.RGBA, sky *Sky) *GridPainter {
	gp := &GridPainter{w: w, h: h, palette: palette, sky: sky, colors: make([]color.RGBA, w*h)}
	if sky != nil {
		gp.skyBuf = make([]color.RGBA, w*h)
	}
	return gp
}

// Size returns the grid dimensions the painter expects.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }

// Paint draws cells onto dst, filling all of dst's bounds. Mismatched cell
// slices are ignored.
func (gp *GridPainter) Paint(dst *image.RGBA, cells []uint8) {
	if dst == nil || len(cells) != gp.w*gp.h || gp.w == 0 || gp.h == 0 {
		return
	}
	var sky []color.RGBA
	if gp.sky != nil {
		gp.sky.Fill(gp.skyBuf, gp.w, gp.h, gp.frame)
		sky = gp.skyBuf
	}
	gp.frame++
	fillCellColors(gp.colors, cells, gp.palette, sky)

	b := dst.Bounds()
	dw, dh := b.Dx(), b.Dy()
	if dw == 0 || dh == 0 {
		return
	}
	for py := 0; py < dh; py++ {
		gy := gp.h - 1 - py*gp.h/dh
		off := dst.PixOffset(b.Min.X, b.Min.Y+py)
		row := dst.Pix[off : off+dw*4]
		for px := 0; px < dw; px++ {
			gx := px * gp.w / dw
			c := gp.colors[gy*gp.w+gx]
			base := px * 4
			row[base+0] = c.R
			row[base+1] = c.G
			row[base+2] = c.B
			row[base+3] = c.A
		}
	}
}
