package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHistoryEntry(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	entry := NewHistoryEntry("h-1", "drop_small_sources_data", "min_chants: 2", at)

	assert.Equal(t, "h-1", entry.ID())
	assert.Equal(t, "drop_small_sources_data", entry.Operation())
	assert.Equal(t, "min_chants: 2", entry.Parameters())
	assert.Equal(t, at, entry.RecordedAt())
	assert.Equal(t, "drop_small_sources_data\nmin_chants: 2", entry.String())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.False(t, s.Corpus.Editable)
	assert.False(t, s.Corpus.CheckMissingSources)
	assert.False(t, s.Corpus.CreateMissingSources)
	assert.Equal(t, 3, s.Fetch.Retries)
	assert.Equal(t, 60*time.Second, s.Fetch.Timeout)
	assert.InDelta(t, 2.0, s.Fetch.RequestsPerSecond, 0.0001)
}
