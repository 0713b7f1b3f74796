package render

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales src to fill dst. Used by hosts whose visible surface is
// smaller than the render buffer.
func Downsample(dst *image.RGBA, src image.Image) {
	if dst == nil || src == nil {
		return
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}
