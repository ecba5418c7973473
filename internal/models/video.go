package models

import "time"

// VideoStatus tracks where an uploaded video is in its lifecycle.
type VideoStatus string

const (
	VideoAnalyzing VideoStatus = "analyzing"
	VideoReady     VideoStatus = "ready"
	VideoFailed    VideoStatus = "failed"
)

// Video represents one uploaded footage session.
type Video struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	FilePath   string      `json:"filepath"`
	FrameRate  float64     `json:"frame_rate"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Status     VideoStatus `json:"status"`
	UploadedAt time.Time   `json:"uploaded_at"`
}

// Size is a pixel extent, either a video's native resolution or the
// render surface.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Known reports whether the size has been discovered yet. A video's
// native resolution stays unknown until its container metadata loads.
func (s Size) Known() bool {
	return s.Width > 0 && s.Height > 0
}
