//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 6
	panelHeight  = 36
	lineHeight   = 14
)

const helpLine = "space pause  n step  c charge  r reset  h hide  q quit"

// Overlay draws a status strip along the top of the surface.
type Overlay struct {
	hidden bool
	pixel  *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{pixel: ebiten.NewImage(1, 1)}
	o.pixel.Fill(color.White)
	return o
}

// Toggle shows or hides the overlay.
func (o *Overlay) Toggle() { o.hidden = !o.hidden }

// Draw renders status and the key help onto screen.
func (o *Overlay) Draw(screen *ebiten.Image, status string) {
	if o.hidden {
		return
	}
	w := screen.Bounds().Dx()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), panelHeight)
	op.ColorScale.Scale(0, 0, 0, 0.55)
	screen.DrawImage(o.pixel, op)

	face := basicfont.Face7x13
	text.Draw(screen, status, face, panelPadding, panelPadding+lineHeight-2, color.RGBA{R: 220, G: 220, B: 240, A: 255})
	text.Draw(screen, helpLine, face, panelPadding, panelPadding+2*lineHeight-2, color.RGBA{R: 150, G: 150, B: 180, A: 255})
}
