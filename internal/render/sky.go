package render

import (
	"image/color"

	"github.com/aquilax/go-perlin"
)

const (
	skyAlpha = 2.0
	skyBeta  = 2.0
	skyOct   = 3
)

// Sky produces a slowly drifting noise field around a base color.
type Sky struct {
	base  color.RGBA
	noise *perlin.Perlin
	scale float64
	drift float64
	depth float64
}

// NewSky returns a sky shading base with perlin noise seeded by seed.
func NewSky(base color.RGBA, seed int64) *Sky {
	return &Sky{
		base:  base,
		noise: perlin.NewPerlin(skyAlpha, skyBeta, skyOct, seed),
		scale: 0.08,
		drift: 0.01,
		depth: 40,
	}
}

// Fill writes w*h sky colors for the given frame into dst.
func (s *Sky) Fill(dst []color.RGBA, w, h, frame int) {
	t := float64(frame) * s.drift
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := s.noise.Noise3D(float64(x)*s.scale, float64(y)*s.scale, t)
			dst[y*w+x] = shade(s.base, n*s.depth)
		}
	}
}

func shade(c color.RGBA, delta float64) color.RGBA {
	return color.RGBA{R: clamp8(float64(c.R) + delta*0.3), G: clamp8(float64(c.G) + delta*0.3), B: clamp8(float64(c.B) + delta), A: c.A}
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
