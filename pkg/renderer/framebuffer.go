package renderer

import (
	"image"
	"image/color"

	"github.com/mhalden/patina/pkg/core"
)

// RGBA is one accumulation cell: RGB radiance plus alpha, all float64
type RGBA struct {
	R, G, B, A float64
}

// Framebuffer holds one RGBA float cell per pixel. It lives for the whole
// render session and is blended across frames for progressive convergence;
// the caller resets it whenever the camera or scene changes. Each cell is
// only ever written by the worker that owns its row, so no locking.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []RGBA
}

// NewFramebuffer creates a zeroed framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]RGBA, width*height),
	}
}

// Reset zeroes every cell; call on camera or scene changes
func (fb *Framebuffer) Reset() {
	for i := range fb.Pixels {
		fb.Pixels[i] = RGBA{}
	}
}

// Blend folds a new sample into the cell at (x, y) with the
// exponential-moving-average weight 1/(frameCount+1). Frame zero is a
// plain overwrite, so a reset framebuffer needs no special casing.
func (fb *Framebuffer) Blend(x, y int, sample core.Vec3, frameCount int) {
	idx := y*fb.Width + x
	if frameCount == 0 {
		fb.Pixels[idx] = RGBA{R: sample.X, G: sample.Y, B: sample.Z, A: 1}
		return
	}

	weight := 1.0 / float64(frameCount+1)
	old := fb.Pixels[idx]
	fb.Pixels[idx] = RGBA{
		R: old.R*(1-weight) + sample.X*weight,
		G: old.G*(1-weight) + sample.Y*weight,
		B: old.B*(1-weight) + sample.Z*weight,
		A: 1,
	}
}

// ColorAt returns the accumulated color of the cell at (x, y)
func (fb *Framebuffer) ColorAt(x, y int) core.Vec3 {
	p := fb.Pixels[y*fb.Width+x]
	return core.NewVec3(p.R, p.G, p.B)
}

// ToImage converts the float framebuffer to an 8-bit image with the given
// gamma (2.2 for display)
func (fb *Framebuffer) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.ColorAt(x, y).Clamp(0, 1).GammaCorrect(gamma)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(c.X*255.0 + 0.5),
				G: uint8(c.Y*255.0 + 0.5),
				B: uint8(c.Z*255.0 + 0.5),
				A: 255,
			})
		}
	}
	return img
}
