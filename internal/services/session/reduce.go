package session

import (
	"overwatch/internal/models"
	"overwatch/internal/services/frameclock"
)

// Event is a session transition trigger.
type Event interface {
	isEvent()
}

// UploadStarted begins a new video session, discarding the previous one.
type UploadStarted struct {
	Filename string
}

// UploadFailed is a terminal validation or transport error; the session
// waits for an explicit dismissal.
type UploadFailed struct {
	Reason string
}

// VideoLoaded means the processed video and its metadata are available.
type VideoLoaded struct {
	Video    models.Video
	Rate     float64
	Native   models.Size
	Metadata []string
}

// TimeUpdated is one playback-time observation.
type TimeUpdated struct {
	Seconds float64
}

// SearchStarted replaces the active query.
type SearchStarted struct {
	Query string
}

// ErrorDismissed returns an errored session to idle.
type ErrorDismissed struct{}

func (UploadStarted) isEvent()  {}
func (UploadFailed) isEvent()   {}
func (VideoLoaded) isEvent()    {}
func (TimeUpdated) isEvent()    {}
func (SearchStarted) isEvent()  {}
func (ErrorDismissed) isEvent() {}

// Reduce applies one event to the state and returns the next state.
// Pure: no side effects, no mutation of s.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case UploadStarted:
		next := Initial()
		next.Phase = PhaseAnalyzing
		return next

	case UploadFailed:
		next := Initial()
		next.Phase = PhaseError
		next.ErrorMsg = ev.Reason
		return next

	case VideoLoaded:
		video := ev.Video
		s.Phase = PhaseReady
		s.ErrorMsg = ""
		s.Video = &video
		s.Native = ev.Native
		s.Metadata = ev.Metadata
		s.FrameRate = frameclock.RateOrDefault(ev.Rate)
		s.Seconds = 0
		s.Frame = 0
		return s

	case TimeUpdated:
		s.Seconds = ev.Seconds
		s.Frame = frameclock.Index(ev.Seconds, s.FrameRate)
		return s

	case SearchStarted:
		s.Query = ev.Query
		return s

	case ErrorDismissed:
		if s.Phase == PhaseError {
			return Initial()
		}
		return s
	}

	return s
}
