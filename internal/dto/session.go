package dto

import "overwatch/internal/models"

// ToRaw converts a channel message into the domain detection record.
func (m DetectionMessage) ToRaw() models.RawDetection {
	return models.RawDetection{
		FrameIndex: m.FrameIdx,
		Label:      m.Label,
		Box: models.Box{
			X0: m.Bbox[0][0],
			Y0: m.Bbox[0][1],
			X1: m.Bbox[1][0],
			Y1: m.Bbox[1][1],
		},
	}
}

// SessionSnapshot is the state the UI layer renders from.
type SessionSnapshot struct {
	Phase     string                `json:"phase"`
	Error     string                `json:"error,omitempty"`
	Video     *models.Video         `json:"video,omitempty"`
	Query     string                `json:"query,omitempty"`
	Seconds   float64               `json:"seconds"`
	FrameIdx  int                   `json:"frame_idx"`
	Log       []models.LogEntry     `json:"log"`
	Results   []models.SearchResult `json:"results"`
	FrameRate float64               `json:"frame_rate"`
}

// PlaybackResponse answers one playback tick: the log entry appended by
// this tick (if any) and the detections to overlay on the surface.
type PlaybackResponse struct {
	FrameIdx   int                      `json:"frame_idx"`
	LogEntry   *models.LogEntry         `json:"log_entry,omitempty"`
	Detections []models.PlacedDetection `json:"detections"`
}

// ViewerUpdate is one message pushed to viewer websockets.
type ViewerUpdate struct {
	Kind      string               `json:"kind"` // "state", "log", "result"
	Phase     string               `json:"phase,omitempty"`
	LogEntry  *models.LogEntry     `json:"log_entry,omitempty"`
	Result    *models.SearchResult `json:"result,omitempty"`
	VideoID   string               `json:"video_id,omitempty"`
	Query     string               `json:"query,omitempty"`
	ErrorText string               `json:"error,omitempty"`
}
