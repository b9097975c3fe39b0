package fs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *WalletStore {
	t.Helper()
	return NewWalletStore(t.TempDir())
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)

	wallets, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, wallets)
}

func TestAddAndList(t *testing.T) {
	store := newTestStore(t)

	added, err := store.Add("100", WalletRecord{Coin: "TON", Address: "EQabc", AddedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.Add("100", WalletRecord{Coin: "BTC", Address: "bc1xyz", AddedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, added)

	records, err := store.List("100")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "TON", records[0].Coin)
	assert.Equal(t, "BTC", records[1].Coin)
}

func TestAddDuplicate(t *testing.T) {
	store := newTestStore(t)

	record := WalletRecord{Coin: "ETH", Address: "0xabc", AddedAt: time.Now()}
	added, err := store.Add("100", record)
	require.NoError(t, err)
	require.True(t, added)

	added, err = store.Add("100", record)
	require.NoError(t, err)
	assert.False(t, added)

	records, err := store.List("100")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSameAddressDifferentCoins(t *testing.T) {
	store := newTestStore(t)

	added, err := store.Add("100", WalletRecord{Coin: "ETH", Address: "0xabc"})
	require.NoError(t, err)
	require.True(t, added)

	// USDT shares the ETH address space, both may be monitored.
	added, err = store.Add("100", WalletRecord{Coin: "USDT", Address: "0xabc"})
	require.NoError(t, err)
	assert.True(t, added)
}

func TestRemoveByIndex(t *testing.T) {
	store := newTestStore(t)

	for _, r := range []WalletRecord{
		{Coin: "TON", Address: "a"},
		{Coin: "BTC", Address: "b"},
		{Coin: "ETH", Address: "c"},
	} {
		_, err := store.Add("100", r)
		require.NoError(t, err)
	}

	removed, err := store.Remove("100", 1)
	require.NoError(t, err)
	assert.Equal(t, "BTC", removed.Coin)

	records, err := store.List("100")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "TON", records[0].Coin)
	assert.Equal(t, "ETH", records[1].Coin)
}

func TestRemoveOutOfRange(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add("100", WalletRecord{Coin: "TON", Address: "a"})
	require.NoError(t, err)

	_, err = store.Remove("100", 5)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Remove("100", -1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Remove("999", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveLastWalletDropsChat(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add("100", WalletRecord{Coin: "TON", Address: "a"})
	require.NoError(t, err)

	_, err = store.Remove("100", 0)
	require.NoError(t, err)

	wallets, err := store.Load()
	require.NoError(t, err)
	_, ok := wallets["100"]
	assert.False(t, ok)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	added := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	original := map[string][]WalletRecord{
		"100": {
			{Coin: "TON", Address: "EQa", AddedAt: added},
			{Coin: "BTC", Address: "bc1b", AddedAt: added},
		},
		"200": {
			{Coin: "ETH", Address: "0xc", AddedAt: added},
		},
	}
	require.NoError(t, store.Save(original))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)

	// Saving what was loaded changes nothing.
	require.NoError(t, store.Save(loaded))
	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, original, reloaded)
}

func TestPersistenceAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first := NewWalletStore(dir)
	_, err := first.Add("100", WalletRecord{Coin: "BTC", Address: "bc1xyz"})
	require.NoError(t, err)

	second := NewWalletStore(dir)
	records, err := second.List("100")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "bc1xyz", records[0].Address)
}

func TestCount(t *testing.T) {
	store := newTestStore(t)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = store.Add("100", WalletRecord{Coin: "TON", Address: "a"})
	require.NoError(t, err)
	_, err = store.Add("200", WalletRecord{Coin: "BTC", Address: "b"})
	require.NoError(t, err)

	count, err = store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
