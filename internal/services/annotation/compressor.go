// Package annotation folds the dense per-frame metadata stream into a
// sparse, human-readable log of what the viewer has seen.
package annotation

import (
	"sync"

	"overwatch/internal/models"
)

// Compressor deduplicates the per-frame annotation text as playback
// proceeds. Two levels of state drive it: the text last shown for any
// frame, and the text of the last appended log entry. The first stops
// flicker-driven duplicate appends, the second stops a value that
// reappears after an empty gap from being logged twice in a row.
type Compressor struct {
	mu           sync.Mutex
	lastShown    string
	lastAppended string
	entries      []models.LogEntry
}

func NewCompressor() *Compressor {
	return &Compressor{}
}

// Observe processes one playback observation. frames is the per-frame
// metadata sequence; an index beyond it reads as empty text, never an
// error. Returns the appended entry, if this observation produced one.
func (c *Compressor) Observe(frameIdx int, frames []string, seconds float64) (models.LogEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text := ""
	if frameIdx >= 0 && frameIdx < len(frames) {
		text = frames[frameIdx]
	}

	if text == c.lastShown {
		return models.LogEntry{}, false
	}
	c.lastShown = text

	if text == "" || text == c.lastAppended {
		return models.LogEntry{}, false
	}
	c.lastAppended = text

	entry := models.LogEntry{Seconds: seconds, Text: text}
	c.entries = append(c.entries, entry)
	return entry, true
}

// Entries returns a copy of the appended log so far, in append order.
func (c *Compressor) Entries() []models.LogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.LogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Reset clears all state for a new video session.
func (c *Compressor) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastShown = ""
	c.lastAppended = ""
	c.entries = nil
}
