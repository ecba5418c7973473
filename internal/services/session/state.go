// Package session models one review session as an immutable state
// value advanced by pure reducer transitions.
package session

import (
	"overwatch/internal/models"
)

// Phase is the user-facing state of the session.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseAnalyzing Phase = "analyzing"
	PhaseReady     Phase = "ready"
	PhaseError     Phase = "error"
)

// State is everything the session tracks about the loaded video and
// playback position. It is a value: transitions return a new State and
// never mutate the receiver, so every field observed within one reduce
// is consistent. The discovered frame rate lives here once and drives
// both metadata indexing and detection windowing.
type State struct {
	Phase    Phase
	ErrorMsg string

	Video    *models.Video
	Native   models.Size
	Metadata []string

	FrameRate float64
	Seconds   float64
	Frame     int

	Query string
}

// Initial is the state before any upload.
func Initial() State {
	return State{Phase: PhaseIdle}
}
