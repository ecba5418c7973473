package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overwatch/internal/models"
)

func loadedState() State {
	return Reduce(Reduce(Initial(), UploadStarted{Filename: "clip.mp4"}), VideoLoaded{
		Video:    models.Video{ID: "vid-1", Name: "clip.mp4"},
		Rate:     60,
		Native:   models.Size{Width: 1920, Height: 1080},
		Metadata: []string{"", "A"},
	})
}

func TestReduce_UploadLifecycle(t *testing.T) {
	t.Parallel()

	s := Reduce(Initial(), UploadStarted{Filename: "clip.mp4"})
	assert.Equal(t, PhaseAnalyzing, s.Phase)

	s = Reduce(s, VideoLoaded{Video: models.Video{ID: "vid-1"}, Rate: 30})
	assert.Equal(t, PhaseReady, s.Phase)
	require.NotNil(t, s.Video)
	assert.Equal(t, "vid-1", s.Video.ID)
}

func TestReduce_UploadFailedNeedsDismissal(t *testing.T) {
	t.Parallel()

	s := Reduce(Initial(), UploadStarted{Filename: "clip.mp4"})
	s = Reduce(s, UploadFailed{Reason: "backend unreachable"})

	assert.Equal(t, PhaseError, s.Phase)
	assert.Equal(t, "backend unreachable", s.ErrorMsg)

	// Errors are terminal for the operation: only dismissal resets.
	s = Reduce(s, ErrorDismissed{})
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Empty(t, s.ErrorMsg)
}

func TestReduce_DismissOutsideErrorIsNoOp(t *testing.T) {
	t.Parallel()

	s := loadedState()
	assert.Equal(t, s, Reduce(s, ErrorDismissed{}))
}

func TestReduce_TimeUpdatedUsesDiscoveredRate(t *testing.T) {
	t.Parallel()

	// The discovered rate (60), not the 30fps fallback, drives frame
	// derivation for every consumer.
	s := Reduce(loadedState(), TimeUpdated{Seconds: 0.5})
	assert.Equal(t, 30, s.Frame)
	assert.Equal(t, 0.5, s.Seconds)
}

func TestReduce_ZeroRateFallsBack(t *testing.T) {
	t.Parallel()

	s := Reduce(Initial(), VideoLoaded{Video: models.Video{ID: "v"}, Rate: 0})
	assert.Equal(t, 30.0, s.FrameRate)
}

func TestReduce_NewUploadDiscardsSession(t *testing.T) {
	t.Parallel()

	s := Reduce(loadedState(), SearchStarted{Query: "tank"})
	s = Reduce(s, TimeUpdated{Seconds: 2})

	s = Reduce(s, UploadStarted{Filename: "next.mp4"})
	assert.Equal(t, PhaseAnalyzing, s.Phase)
	assert.Nil(t, s.Video)
	assert.Empty(t, s.Query)
	assert.Zero(t, s.Frame)
	assert.Empty(t, s.Metadata)
}

func TestReduce_IsPure(t *testing.T) {
	t.Parallel()

	before := loadedState()
	snapshot := before
	Reduce(before, TimeUpdated{Seconds: 3})
	Reduce(before, UploadStarted{})

	assert.Equal(t, snapshot, before)
}
