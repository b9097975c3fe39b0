package wallets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(ids ...string) []Transaction {
	txs := make([]Transaction, len(ids))
	for i, id := range ids {
		txs[i] = Transaction{ID: id, Direction: DirectionIncoming}
	}
	return txs
}

func TestDiffFirstObservationSeedsSilently(t *testing.T) {
	cache := NewWatermarkCache()

	first, fresh := cache.Diff("k", "tx3", page("tx3", "tx2", "tx1"))
	assert.True(t, first)
	assert.Empty(t, fresh)

	// Second call with the same page reports nothing new.
	first, fresh = cache.Diff("k", "tx3", page("tx3", "tx2", "tx1"))
	assert.False(t, first)
	assert.Empty(t, fresh)
}

func TestDiffReportsNewOldestFirst(t *testing.T) {
	cache := NewWatermarkCache()
	cache.Diff("k", "tx3", page("tx3", "tx2", "tx1"))

	_, fresh := cache.Diff("k", "tx5", page("tx5", "tx4", "tx3", "tx2", "tx1"))
	require.Len(t, fresh, 2)
	assert.Equal(t, "tx4", fresh[0].ID)
	assert.Equal(t, "tx5", fresh[1].ID)
}

func TestDiffDoesNotAdvance(t *testing.T) {
	cache := NewWatermarkCache()
	cache.Diff("k", "tx1", page("tx1"))

	// Without Advance, the same new page keeps being reported.
	_, fresh := cache.Diff("k", "tx2", page("tx2", "tx1"))
	require.Len(t, fresh, 1)

	_, fresh = cache.Diff("k", "tx2", page("tx2", "tx1"))
	require.Len(t, fresh, 1)

	cache.Advance("k", "tx2")
	_, fresh = cache.Diff("k", "tx2", page("tx2", "tx1"))
	assert.Empty(t, fresh)
}

func TestDiffWatermarkOutsidePage(t *testing.T) {
	cache := NewWatermarkCache()
	cache.Diff("k", "tx1", page("tx1"))

	// More transactions arrived than the fetch limit covers: the watermark
	// fell off the page and the whole page counts as new.
	_, fresh := cache.Diff("k", "tx9", page("tx9", "tx8", "tx7"))
	require.Len(t, fresh, 3)
	assert.Equal(t, "tx7", fresh[0].ID)
	assert.Equal(t, "tx9", fresh[2].ID)
}

func TestKeysAreIndependent(t *testing.T) {
	cache := NewWatermarkCache()
	cache.Diff("a", "tx1", page("tx1"))

	first, _ := cache.Diff("b", "tx1", page("tx1"))
	assert.True(t, first)
}

func TestForgetResetsBaseline(t *testing.T) {
	cache := NewWatermarkCache()
	cache.Diff("k", "tx1", page("tx1"))
	cache.Forget("k")

	first, fresh := cache.Diff("k", "tx2", page("tx2", "tx1"))
	assert.True(t, first)
	assert.Empty(t, fresh)
}

func TestWatermarkKey(t *testing.T) {
	assert.Equal(t, "42_TON_EQabc", WatermarkKey("42", CoinTON, "EQabc"))
}
