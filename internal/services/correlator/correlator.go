// Package correlator matches the asynchronous detection stream against
// the current playback frame and moves boxes into surface coordinates.
package correlator

import (
	"sync"

	"overwatch/internal/models"
)

// Correlator accumulates detection events for one search and selects
// the ones relevant to the visible frame window. Events arrive in
// backend completion order, not frame order; no sorting is assumed.
//
// An event's box is placed into surface space exactly once: events that
// arrive before the video's native resolution is known stay pending and
// are never emitted half-scaled; they convert in one batch as soon as
// the resolution shows up.
type Correlator struct {
	mu      sync.Mutex
	window  int
	surface models.Size
	native  models.Size
	pending []models.RawDetection
	placed  []models.PlacedDetection
}

// New creates a correlator for the given persistence window (frames a
// detection stays visible after it was reported) and render surface.
func New(window int, surface models.Size) *Correlator {
	return &Correlator{
		window:  window,
		surface: surface,
	}
}

// Add registers one detection event from the live channel.
func (c *Correlator) Add(d models.RawDetection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.native.Known() {
		c.pending = append(c.pending, d)
		return
	}
	c.placed = append(c.placed, models.Place(d, c.native, c.surface))
}

// SetNativeSize records the video's native resolution once it is
// discovered and converts anything that was waiting on it.
func (c *Correlator) SetNativeSize(native models.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !native.Known() {
		return
	}
	c.native = native

	for _, d := range c.pending {
		c.placed = append(c.placed, models.Place(d, c.native, c.surface))
	}
	c.pending = nil
}

// Relevant returns the placed detections to render at the given frame:
// those with 0 <= frame - event.frame < window. Future events are never
// shown, and events still pending rescale are skipped for this tick.
func (c *Correlator) Relevant(frameIdx int) []models.PlacedDetection {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []models.PlacedDetection
	for _, d := range c.placed {
		age := frameIdx - d.FrameIndex
		if age >= 0 && age < c.window {
			out = append(out, d)
		}
	}
	return out
}

// Reset discards all events for a new search or video session.
func (c *Correlator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = nil
	c.placed = nil
}
