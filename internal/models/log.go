package models

// LogEntry is one line of the compressed annotation log. Entries are
// append-only: once written for a video they are never edited.
type LogEntry struct {
	ID      int64   `json:"id"`
	VideoID string  `json:"video_id"`
	Seconds float64 `json:"seconds"`
	Text    string  `json:"text"`
}
