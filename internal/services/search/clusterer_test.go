package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overwatch/internal/models"
)

func events(label string, frames ...int) []models.RawDetection {
	out := make([]models.RawDetection, 0, len(frames))
	for _, f := range frames {
		out = append(out, models.RawDetection{FrameIndex: f, Label: label})
	}
	return out
}

func TestCluster_GapSuppression(t *testing.T) {
	t.Parallel()

	c := NewClusterer(10)
	results := c.Cluster(events("tank", 100, 105, 108, 200, 203))

	want := []models.SearchResult{
		{Label: "tank", FrameIndex: 100},
		{Label: "tank", FrameIndex: 200},
	}
	assert.Empty(t, cmp.Diff(want, results))
}

func TestCluster_GapComparesLastSeenNotLastEmitted(t *testing.T) {
	t.Parallel()

	// 100..150 in steps of 10: every step is within the gap of the
	// previous *seen* event, so the whole run is one cluster even
	// though frame 150 is far from the emitted anchor at 100.
	c := NewClusterer(10)
	results := c.Cluster(events("tank", 100, 110, 120, 130, 140, 150))

	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].FrameIndex)
}

func TestCluster_BoundaryGap(t *testing.T) {
	t.Parallel()

	c := NewClusterer(10)

	// Exactly gap apart is absorbed; gap+1 starts a new cluster.
	results := c.Cluster(events("tank", 100, 110, 121))
	require.Len(t, results, 2)
	assert.Equal(t, 121, results[1].FrameIndex)
}

func TestCluster_PerLabel(t *testing.T) {
	t.Parallel()

	// Adjacent events with different labels stay separate results.
	c := NewClusterer(10)
	_, emitted := c.Add(models.RawDetection{FrameIndex: 100, Label: "tank"})
	assert.True(t, emitted)
	_, emitted = c.Add(models.RawDetection{FrameIndex: 103, Label: "smoke"})
	assert.True(t, emitted)
	_, emitted = c.Add(models.RawDetection{FrameIndex: 106, Label: "tank"})
	assert.False(t, emitted)

	assert.Len(t, c.Results(), 2)
}

func TestCluster_OutOfOrderArrival(t *testing.T) {
	t.Parallel()

	// An earlier frame arriving after a later one reads as a negative
	// difference, which is within the gap: absorbed, arrival order kept.
	c := NewClusterer(10)
	results := c.Cluster(events("tank", 200, 195, 400))

	require.Len(t, results, 2)
	assert.Equal(t, 200, results[0].FrameIndex)
	assert.Equal(t, 400, results[1].FrameIndex)
}

func TestReset_ClearsBeforeFirstNewResult(t *testing.T) {
	t.Parallel()

	c := NewClusterer(10)
	c.Cluster(events("tank", 100, 300))
	require.Len(t, c.Results(), 2)

	c.Reset()
	assert.Empty(t, c.Results())

	// A frame that would have been suppressed by the old query's state
	// is a fresh cluster for the new one.
	_, emitted := c.Add(models.RawDetection{FrameIndex: 301, Label: "tank"})
	assert.True(t, emitted)
	assert.Len(t, c.Results(), 1)
}
