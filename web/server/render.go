package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/mhalden/patina/pkg/device"
	"github.com/mhalden/patina/pkg/integrator"
	"github.com/mhalden/patina/pkg/renderer"
	"github.com/mhalden/patina/pkg/scene"
)

// ProgressUpdate represents a single progressive update sent via SSE
type ProgressUpdate struct {
	Frame       int    `json:"frame"`       // 1-based frame just blended
	TotalFrames int    `json:"totalFrames"` // frames requested
	ImageData   string `json:"imageData"`   // Base64 encoded PNG
	TotalPixels int    `json:"totalPixels"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// handleRender handles progressive rendering requests with SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sc, camera, err := s.createScene(req)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	// Console messages from the render are streamed interleaved with
	// progress updates; the handler drains the channel between frames
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	logger := NewWebLogger(renderID, consoleChan)

	dev := device.New()
	if err := dev.InitializeScene(camera, sc); err != nil {
		s.sendSSEError(w, fmt.Sprintf("Scene upload failed: %v", err))
		return
	}

	config := renderer.DefaultConfig()
	config.Transport = integrator.Config{
		MaxDepth:                  req.MaxDepth,
		RussianRouletteMinBounces: req.RRMinBounces,
	}
	rend := renderer.NewRenderer(dev, config)
	fb := renderer.NewFramebuffer(req.Width, req.Height)

	logger.Printf("Rendering %s at %dx%d, %d frames\n", req.Scene, req.Width, req.Height, req.Frames)

	// Use request context to detect client disconnection
	ctx := r.Context()
	startTime := time.Now()

	for frame := 0; frame < req.Frames; frame++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		stats, err := rend.Render(fb, frame)
		if err != nil {
			s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
			return
		}
		s.flushConsole(w, consoleChan)

		if !shouldStream(frame, req.Frames) {
			continue
		}

		imageData, err := imageToBase64PNG(fb.ToImage(2.2))
		if err != nil {
			s.sendSSEError(w, fmt.Sprintf("Failed to encode image: %v", err))
			return
		}

		update := ProgressUpdate{
			Frame:       frame + 1,
			TotalFrames: req.Frames,
			ImageData:   imageData,
			TotalPixels: stats.TotalPixels,
			IsComplete:  frame == req.Frames-1,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		}
		if err := s.sendSSEUpdate(w, update); err != nil {
			return
		}
	}

	logger.Printf("Render completed in %v\n", time.Since(startTime))
	s.flushConsole(w, consoleChan)
	s.sendSSEEvent(w, "complete", "Rendering completed")
}

// shouldStream reports whether the frame's accumulated image is worth
// sending. Early frames change fast, so stream each one; later frames are
// batched to keep the event stream light.
func shouldStream(frame, totalFrames int) bool {
	if frame == totalFrames-1 || frame < 8 {
		return true
	}
	return (frame+1)%8 == 0
}

// createScene builds the named demo scene and its camera
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, *scene.Camera, error) {
	switch req.Scene {
	case "cornell":
		return scene.NewCornellScene(), scene.NewCornellCamera(req.Width, req.Height), nil
	case "scrapyard":
		return scene.NewScrapyardScene(), scene.NewScrapyardCamera(req.Width, req.Height), nil
	default:
		return nil, nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}
}

// flushConsole drains pending console messages and sends them as SSE events
func (s *Server) flushConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			s.sendSSEEvent(w, "console", string(data))
		default:
			return
		}
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEUpdate sends a progress update via SSE
func (s *Server) sendSSEUpdate(w http.ResponseWriter, update ProgressUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "progress", string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
