// Package overlay draws placed detections over the current video frame.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"

	"overwatch/internal/models"
	"overwatch/internal/services/frameclock"
)

var strokeColor = color.RGBA{R: 255, G: 0, B: 0, A: 0}

// SourceInfo is what the attached video's container reports.
type SourceInfo struct {
	FrameRate float64
	Native    models.Size
}

// Renderer redraws the surface from scratch every tick: the current
// frame is blitted at surface dimensions first, then unfilled boxes on
// top. Boxes are already in surface coordinates; no scaling happens
// here.
type Renderer struct {
	mu      sync.Mutex
	surface models.Size
	capture *gocv.VideoCapture
}

// NewRenderer creates a renderer for a fixed-size surface.
func NewRenderer(surface models.Size) *Renderer {
	return &Renderer{surface: surface}
}

// Open attaches the renderer to a video file, replacing any previous
// source, and probes frame rate and native resolution from the
// container. The rate is normalized through frameclock.RateOrDefault;
// the native size may come back unknown, in which case box rescaling
// is deferred until it is.
func (r *Renderer) Open(path string) (SourceInfo, error) {
	capture, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return SourceInfo{}, fmt.Errorf("failed to open video %s: %w", path, err)
	}

	info := SourceInfo{
		FrameRate: frameclock.RateOrDefault(capture.Get(gocv.VideoCaptureFPS)),
		Native: models.Size{
			Width:  int(capture.Get(gocv.VideoCaptureFrameWidth)),
			Height: int(capture.Get(gocv.VideoCaptureFrameHeight)),
		},
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capture != nil {
		r.capture.Close()
	}
	r.capture = capture
	return info, nil
}

// Close releases the video source.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capture != nil {
		r.capture.Close()
		r.capture = nil
	}
}

// Render draws the given frame with its detections and returns the
// surface as a JPEG. A missing source or unreadable frame is a no-op
// tick: nil bytes, no error.
func (r *Renderer) Render(frameIdx int, detections []models.PlacedDetection) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capture == nil {
		return nil, nil
	}

	r.capture.Set(gocv.VideoCapturePosFrames, float64(frameIdx))

	frame := gocv.NewMat()
	defer frame.Close()
	if ok := r.capture.Read(&frame); !ok || frame.Empty() {
		return nil, nil
	}

	surface := gocv.NewMat()
	defer surface.Close()
	gocv.Resize(frame, &surface, image.Pt(r.surface.Width, r.surface.Height), 0, 0, gocv.InterpolationLinear)

	for _, det := range detections {
		rect := BoxRect(det.Box)
		if err := gocv.Rectangle(&surface, rect, strokeColor, 2); err != nil {
			return nil, fmt.Errorf("failed to draw rectangle: %w", err)
		}

		pt := image.Pt(rect.Min.X, rect.Min.Y-5)
		if err := gocv.PutText(&surface, det.Label, pt, gocv.FontHersheySimplex, 0.5, strokeColor, 1); err != nil {
			return nil, fmt.Errorf("failed to draw label: %w", err)
		}
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, surface)
	if err != nil {
		return nil, fmt.Errorf("failed to encode surface: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// BoxRect converts a surface-space box into the integer rectangle that
// gets stroked.
func BoxRect(b models.Box) image.Rectangle {
	return image.Rect(int(b.X0), int(b.Y0), int(b.X1), int(b.Y1))
}
