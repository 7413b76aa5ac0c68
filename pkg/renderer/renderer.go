// Package renderer drives the per-pixel kernel: it emulates a 2D grid
// launch with a row worker pool, one independent path trace per pixel,
// results folded into the accumulation framebuffer.
package renderer

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/mhalden/patina/pkg/core"
	"github.com/mhalden/patina/pkg/device"
	"github.com/mhalden/patina/pkg/integrator"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains renderer configuration
type Config struct {
	NumWorkers int               // parallel row workers (0 = CPU count)
	Transport  integrator.Config // path transport settings
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		NumWorkers: 0,
		Transport:  integrator.DefaultConfig(),
	}
}

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	Frame       int           // frame index that was blended
	TotalPixels int           // pixels written
	Elapsed     time.Duration // wall time for the frame
}

// Renderer renders frames against a device's published broadcast state
type Renderer struct {
	dev    *device.Device
	tracer *integrator.PathTracer
	config Config
}

// NewRenderer creates a renderer for the given device
func NewRenderer(dev *device.Device, config Config) *Renderer {
	return &Renderer{
		dev:    dev,
		tracer: integrator.NewPathTracer(config.Transport),
		config: config,
	}
}

// Render traces one sample per pixel and blends the result into the
// framebuffer with the progressive weight for frameCount.
//
// One logical thread per pixel, no inter-pixel communication: rows are
// fanned out to workers, and each pixel gets its own sampler seeded from
// (frameCount, width, height, pixel index) so repeated frames are
// decorrelated but reproducible per run.
func (r *Renderer) Render(fb *Framebuffer, frameCount int) (RenderStats, error) {
	width, height := r.dev.Width(), r.dev.Height()
	if fb.Width != width || fb.Height != height {
		return RenderStats{}, fmt.Errorf("render: framebuffer %dx%d does not match device %dx%d",
			fb.Width, fb.Height, width, height)
	}

	numWorkers := r.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	start := time.Now()

	rows := make(chan int, height)
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				r.renderRow(fb, y, frameCount)
			}
		}()
	}

	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	return RenderStats{
		Frame:       frameCount,
		TotalPixels: width * height,
		Elapsed:     time.Since(start),
	}, nil
}

func (r *Renderer) renderRow(fb *Framebuffer, y, frameCount int) {
	width, height := r.dev.Width(), r.dev.Height()
	for x := 0; x < width; x++ {
		sampler := core.NewPixelSampler(frameCount, width, height, y*width+x)
		ray := r.dev.GenerateRay(x, y, sampler)
		radiance := r.tracer.Li(ray, r.dev, sampler)
		fb.Blend(x, y, radiance, frameCount)
	}
}
