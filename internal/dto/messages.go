package dto

// DetectionMessage is one inbound message on the backend's detection
// channel. The bbox corners are [[x0,y0],[x1,y1]] in the source video's
// native pixel coordinates.
type DetectionMessage struct {
	Label    string        `json:"label"`
	Bbox     [2][2]float64 `json:"bbox"`
	FrameIdx int           `json:"frame_idx"`
}

// UploadResponse is the backend's answer to a footage upload.
type UploadResponse struct {
	File string `json:"file"`
}

// PlaybackRequest is a playback-time observation from the player.
type PlaybackRequest struct {
	Seconds float64 `json:"seconds"`
}

// SearchRequest starts a live search over the loaded video.
type SearchRequest struct {
	Query string `json:"query"`
}

// SeekRequest asks for the playback time of a search result.
type SeekRequest struct {
	FrameIdx int `json:"frame_idx"`
}

// SeekResponse carries the playback time to jump to.
type SeekResponse struct {
	Seconds float64 `json:"seconds"`
}

// ErrorResponse is a user-facing, dismissible error.
type ErrorResponse struct {
	Error string `json:"error"`
}
