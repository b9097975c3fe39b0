package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRecordAndTotals(t *testing.T) {
	stats := NewStats(t.TempDir())

	stats.RecordText("alice")
	stats.RecordText("alice")
	stats.RecordText("bob")
	stats.RecordError("bob")

	users, texts, errs := stats.Totals()
	assert.Equal(t, 2, users)
	assert.Equal(t, 3, texts)
	assert.Equal(t, 1, errs)
}

func TestStatsPersistence(t *testing.T) {
	dir := t.TempDir()

	first := NewStats(dir)
	first.RecordText("alice")
	first.RecordError("alice")

	second := NewStats(dir)
	require.NoError(t, second.Load())

	users, texts, errs := second.Totals()
	assert.Equal(t, 1, users)
	assert.Equal(t, 1, texts)
	assert.Equal(t, 1, errs)
}

func TestStatsLoadMissingFile(t *testing.T) {
	stats := NewStats(t.TempDir())
	require.NoError(t, stats.Load())

	users, texts, errs := stats.Totals()
	assert.Zero(t, users)
	assert.Zero(t, texts)
	assert.Zero(t, errs)
}
