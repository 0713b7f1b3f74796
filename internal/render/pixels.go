package render

import "image/color"

// fillCellColors resolves each cell to a color. Cell value 0 takes the sky
// color when a sky is present; other values index the palette, clamped to
// its last entry.
func fillCellColors(dst []color.RGBA, cells []uint8, palette []color.RGBA, sky []color.RGBA) {
	last := len(palette) - 1
	for i, c := range cells {
		if c == 0 && sky != nil {
			dst[i] = sky[i]
			continue
		}
		if last < 0 {
			dst[i] = color.RGBA{}
			continue
		}
		idx := int(c)
		if idx > last {
			idx = last
		}
		dst[i] = palette[idx]
	}
}
