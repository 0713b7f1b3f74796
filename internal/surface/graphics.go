package surface

import (
	"image"
	"sync"

	"golang.org/x/image/draw"
)

// Graphics is the visible surface a host hands to the surface. DrawImage
// copies img with its origin at the top-left corner. The render loop calls
// it even when the offscreen buffer is unset, passing nil, so
// implementations must treat a nil image as a no-op.
type Graphics interface {
	DrawImage(img image.Image)
}

// GraphicsFunc adapts a function to Graphics.
type GraphicsFunc func(img image.Image)

// DrawImage calls f(img).
func (f GraphicsFunc) DrawImage(img image.Image) { f(img) }

// Canvas is a Graphics that keeps a copy of the most recent frame, for hosts
// whose own draw callback runs on a different goroutine than the render loop.
type Canvas struct {
	mu     sync.Mutex
	img    *image.RGBA
	frames uint64
}

// NewCanvas allocates a canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// DrawImage copies img into the canvas.
func (c *Canvas) DrawImage(img image.Image) {
	if img == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	b := img.Bounds()
	draw.Draw(c.img, image.Rect(0, 0, b.Dx(), b.Dy()), img, b.Min, draw.Src)
	c.frames++
}

// Frame calls fn with the current frame and the number of frames drawn so
// far. fn must not retain img.
func (c *Canvas) Frame(fn func(img *image.RGBA, frames uint64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.img, c.frames)
}
