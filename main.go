package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/mhalden/patina/pkg/device"
	"github.com/mhalden/patina/pkg/renderer"
	"github.com/mhalden/patina/pkg/scene"
)

// createScene builds a named demo scene and its matching camera
func createScene(sceneType string, width, height int) (*scene.Scene, *scene.Camera, error) {
	switch sceneType {
	case "cornell":
		return scene.NewCornellScene(), scene.NewCornellCamera(width, height), nil
	case "scrapyard":
		return scene.NewScrapyardScene(), scene.NewScrapyardCamera(width, height), nil
	default:
		return nil, nil, fmt.Errorf("unknown scene type: %s", sceneType)
	}
}

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "cornell", "Scene type: 'cornell' or 'scrapyard'")
	width := flag.Int("width", 400, "Image width in pixels")
	height := flag.Int("height", 400, "Image height in pixels")
	frames := flag.Int("frames", 64, "Number of progressive frames to accumulate")
	output := flag.String("output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Patina Path Tracer")
		fmt.Println("Usage: patina [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  cornell   - Cornell room with rusty, painted, glass and light spheres")
		fmt.Println("  scrapyard - Outdoor line-up of spheres at different stages of decay")
		return
	}

	logger := renderer.NewDefaultLogger()
	logger.Printf("Starting Patina path tracer...\n")

	sc, camera, err := createScene(*sceneType, *width, *height)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("Scene: %s (%dx%d, %d frames)\n", *sceneType, *width, *height, *frames)

	// Publish the scene to the broadcast state
	dev := device.New()
	if err := dev.InitializeScene(camera, sc); err != nil {
		fmt.Printf("Error uploading scene: %v\n", err)
		os.Exit(1)
	}

	r := renderer.NewRenderer(dev, renderer.DefaultConfig())
	fb := renderer.NewFramebuffer(*width, *height)

	// Accumulate one sample per pixel per frame
	startTime := time.Now()
	for frame := 0; frame < *frames; frame++ {
		stats, err := r.Render(fb, frame)
		if err != nil {
			fmt.Printf("Error rendering frame %d: %v\n", frame, err)
			os.Exit(1)
		}
		if frame == 0 || (frame+1)%16 == 0 || frame == *frames-1 {
			logger.Printf("Frame %d/%d: %d pixels in %v\n",
				frame+1, *frames, stats.TotalPixels, stats.Elapsed)
		}
	}
	logger.Printf("Render completed in %v\n", time.Since(startTime))

	filename := *output
	if filename == "" {
		outputDir := filepath.Join("output", *sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			fmt.Printf("Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, fb.ToImage(2.2)); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	logger.Printf("Render saved as %s\n", filename)
}
