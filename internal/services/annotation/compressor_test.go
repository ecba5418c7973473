package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressor_DedupAcrossEmptyGap(t *testing.T) {
	t.Parallel()

	// A repeat of "A" after an empty gap must not append a second
	// consecutive "A", but a later distinct "B" must still append.
	frames := []string{"", "A", "A", "", "A", "B"}
	c := NewCompressor()

	for i := range frames {
		c.Observe(i, frames, float64(i)/30.0)
	}

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].Text)
	assert.Equal(t, "B", entries[1].Text)
}

func TestCompressor_FirstNonEmptyAppends(t *testing.T) {
	t.Parallel()

	c := NewCompressor()
	entry, appended := c.Observe(1, []string{"", "tank column"}, 0.033)
	require.True(t, appended)
	assert.Equal(t, "tank column", entry.Text)
	assert.InDelta(t, 0.033, entry.Seconds, 1e-9)
}

func TestCompressor_RepeatedObservationIsIdempotent(t *testing.T) {
	t.Parallel()

	// Time updates fire more often than frame boundaries; observing the
	// same frame repeatedly must not duplicate entries.
	frames := []string{"A"}
	c := NewCompressor()
	for i := 0; i < 5; i++ {
		c.Observe(0, frames, 0)
	}
	assert.Len(t, c.Entries(), 1)
}

func TestCompressor_OutOfRangeReadsEmpty(t *testing.T) {
	t.Parallel()

	frames := []string{"A"}
	c := NewCompressor()
	c.Observe(0, frames, 0)

	// Past the end of the metadata: treated as empty, never an error.
	_, appended := c.Observe(500, frames, 16.6)
	assert.False(t, appended)

	// Returning to "A" after the out-of-range gap is still a duplicate.
	_, appended = c.Observe(0, frames, 20.0)
	assert.False(t, appended)
	assert.Len(t, c.Entries(), 1)
}

func TestCompressor_DistinctValuesAlternate(t *testing.T) {
	t.Parallel()

	frames := []string{"A", "B", "A"}
	c := NewCompressor()
	for i := range frames {
		c.Observe(i, frames, float64(i))
	}

	// A -> B -> A are all real transitions and all appended.
	entries := c.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"A", "B", "A"}, []string{entries[0].Text, entries[1].Text, entries[2].Text})
}

func TestCompressor_Reset(t *testing.T) {
	t.Parallel()

	c := NewCompressor()
	c.Observe(0, []string{"A"}, 0)
	c.Reset()

	assert.Empty(t, c.Entries())

	// After reset the same value appends again for the new session.
	_, appended := c.Observe(0, []string{"A"}, 0)
	assert.True(t, appended)
}
