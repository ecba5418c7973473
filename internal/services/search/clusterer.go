// Package search turns the raw detection stream into a deduplicated,
// seekable result list.
package search

import (
	"sync"

	"overwatch/internal/models"
)

// Clusterer suppresses near-duplicate consecutive detections: a burst
// of temporally-adjacent events for one label collapses into a single
// representative result. Events are processed in arrival order and are
// never re-sorted; the gap rule compares against the last seen frame
// for that label, whether or not it was emitted.
//
// Clustering is per label. Two different labels within the gap of each
// other stay separate results instead of silently collapsing.
type Clusterer struct {
	mu        sync.Mutex
	gap       int
	lastFrame map[string]int
	results   []models.SearchResult
}

// NewClusterer creates a clusterer with the given maximum in-cluster
// frame gap.
func NewClusterer(gap int) *Clusterer {
	return &Clusterer{
		gap:       gap,
		lastFrame: make(map[string]int),
	}
}

// Add processes one detection in arrival order. It returns the emitted
// result when the event starts a new cluster, or false when the event
// was absorbed into the previous one.
func (c *Clusterer) Add(d models.RawDetection) (models.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, seen := c.lastFrame[d.Label]
	c.lastFrame[d.Label] = d.FrameIndex

	if seen && d.FrameIndex-last <= c.gap {
		return models.SearchResult{}, false
	}

	result := models.SearchResult{Label: d.Label, FrameIndex: d.FrameIndex}
	c.results = append(c.results, result)
	return result, true
}

// Cluster runs the same suppression over a finished event list.
func (c *Clusterer) Cluster(events []models.RawDetection) []models.SearchResult {
	for _, d := range events {
		c.Add(d)
	}
	return c.Results()
}

// Results returns a copy of the emitted results in arrival order.
func (c *Clusterer) Results() []models.SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.SearchResult, len(c.results))
	copy(out, c.results)
	return out
}

// Reset clears all results and adjacency state before a new query's
// first event is processed.
func (c *Clusterer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastFrame = make(map[string]int)
	c.results = nil
}
