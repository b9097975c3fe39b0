package bots_monitor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"universal-bot/internal/features/wallets"
	"universal-bot/internal/infra/fs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdapter serves a scripted transaction page per call.
type fakeAdapter struct {
	coin  wallets.Coin
	pages [][]wallets.Transaction
	err   error
	calls int
}

func (a *fakeAdapter) Coin() wallets.Coin { return a.coin }

func (a *fakeAdapter) FetchBalance(ctx context.Context, address string) (float64, error) {
	return 0, nil
}

func (a *fakeAdapter) FetchTransactions(ctx context.Context, address string, limit int) ([]wallets.Transaction, error) {
	if a.err != nil {
		return nil, a.err
	}
	page := a.pages[a.calls]
	if a.calls < len(a.pages)-1 {
		a.calls++
	}
	return page, nil
}

func (a *fakeAdapter) FormatTransaction(tx wallets.Transaction) string {
	if tx.Direction == wallets.DirectionUnknown {
		return ""
	}
	return "notify:" + tx.ID
}

type recordingSink struct {
	sent []string
	err  error
}

func (s *recordingSink) Send(chatID int64, html string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, fmt.Sprintf("%d:%s", chatID, html))
	return nil
}

func tx(id string) wallets.Transaction {
	return wallets.Transaction{ID: id, Timestamp: time.Now(), Direction: wallets.DirectionIncoming}
}

func newTestMonitor(t *testing.T, adapter wallets.ChainAdapter, sink NotificationSink) (*WalletMonitor, *fs.WalletStore) {
	t.Helper()
	store := fs.NewWalletStore(t.TempDir())
	monitor := NewWalletMonitor(store, wallets.NewRegistry(adapter),
		wallets.NewWatermarkCache(), sink, time.Minute, 5)
	return monitor, store
}

func TestFirstCycleSeedsWithoutNotifying(t *testing.T) {
	adapter := &fakeAdapter{coin: wallets.CoinTON, pages: [][]wallets.Transaction{
		{tx("tx2"), tx("tx1")},
	}}
	sink := &recordingSink{}
	monitor, store := newTestMonitor(t, adapter, sink)

	_, err := store.Add("42", fs.WalletRecord{Coin: "TON", Address: "EQa"})
	require.NoError(t, err)

	monitor.RunCycle(context.Background())
	assert.Empty(t, sink.sent)
}

func TestNewTransactionNotifiesOnce(t *testing.T) {
	adapter := &fakeAdapter{coin: wallets.CoinTON, pages: [][]wallets.Transaction{
		{tx("tx2"), tx("tx1")},
		{tx("tx3"), tx("tx2"), tx("tx1")},
	}}
	sink := &recordingSink{}
	monitor, store := newTestMonitor(t, adapter, sink)

	_, err := store.Add("42", fs.WalletRecord{Coin: "TON", Address: "EQa"})
	require.NoError(t, err)

	monitor.RunCycle(context.Background()) // seeds baseline
	monitor.RunCycle(context.Background()) // sees tx3
	require.Equal(t, []string{"42:notify:tx3"}, sink.sent)

	// Watermark advanced, same page again reports nothing.
	monitor.RunCycle(context.Background())
	assert.Len(t, sink.sent, 1)
}

func TestMultipleNewTransactionsDeliveredOldestFirst(t *testing.T) {
	adapter := &fakeAdapter{coin: wallets.CoinTON, pages: [][]wallets.Transaction{
		{tx("tx1")},
		{tx("tx4"), tx("tx3"), tx("tx2"), tx("tx1")},
	}}
	sink := &recordingSink{}
	monitor, store := newTestMonitor(t, adapter, sink)

	_, err := store.Add("42", fs.WalletRecord{Coin: "TON", Address: "EQa"})
	require.NoError(t, err)

	monitor.RunCycle(context.Background())
	monitor.RunCycle(context.Background())

	assert.Equal(t, []string{"42:notify:tx2", "42:notify:tx3", "42:notify:tx4"}, sink.sent)
}

func TestFailingWalletDoesNotBlockOthers(t *testing.T) {
	failing := &fakeAdapter{coin: wallets.CoinETH, err: errors.New("etherscan down")}
	working := &fakeAdapter{coin: wallets.CoinTON, pages: [][]wallets.Transaction{
		{tx("tx1")},
		{tx("tx2"), tx("tx1")},
	}}
	sink := &recordingSink{}

	store := fs.NewWalletStore(t.TempDir())
	monitor := NewWalletMonitor(store, wallets.NewRegistry(failing, working),
		wallets.NewWatermarkCache(), sink, time.Minute, 5)

	_, err := store.Add("42", fs.WalletRecord{Coin: "ETH", Address: "0xa"})
	require.NoError(t, err)
	_, err = store.Add("42", fs.WalletRecord{Coin: "TON", Address: "EQa"})
	require.NoError(t, err)

	monitor.RunCycle(context.Background())
	monitor.RunCycle(context.Background())

	assert.Equal(t, []string{"42:notify:tx2"}, sink.sent)
}

func TestDeliveryFailureStillAdvancesWatermark(t *testing.T) {
	adapter := &fakeAdapter{coin: wallets.CoinTON, pages: [][]wallets.Transaction{
		{tx("tx1")},
		{tx("tx2"), tx("tx1")},
	}}
	sink := &recordingSink{err: errors.New("telegram down")}
	monitor, store := newTestMonitor(t, adapter, sink)

	_, err := store.Add("42", fs.WalletRecord{Coin: "TON", Address: "EQa"})
	require.NoError(t, err)

	monitor.RunCycle(context.Background())
	monitor.RunCycle(context.Background())

	// Delivery is at most once: the failed notification is not retried.
	sink.err = nil
	monitor.RunCycle(context.Background())
	assert.Empty(t, sink.sent)
}

func TestUnknownDirectionHoldsSlotSilently(t *testing.T) {
	unknown := wallets.Transaction{ID: "tx2", Timestamp: time.Now()}
	adapter := &fakeAdapter{coin: wallets.CoinTON, pages: [][]wallets.Transaction{
		{tx("tx1")},
		{unknown, tx("tx1")},
		{tx("tx3"), unknown, tx("tx1")},
	}}
	sink := &recordingSink{}
	monitor, store := newTestMonitor(t, adapter, sink)

	_, err := store.Add("42", fs.WalletRecord{Coin: "TON", Address: "EQa"})
	require.NoError(t, err)

	monitor.RunCycle(context.Background())
	monitor.RunCycle(context.Background())
	assert.Empty(t, sink.sent)

	// tx2 advanced the watermark even though it rendered no message.
	monitor.RunCycle(context.Background())
	assert.Equal(t, []string{"42:notify:tx3"}, sink.sent)
}

func TestRemovedWalletStopsNotifying(t *testing.T) {
	adapter := &fakeAdapter{coin: wallets.CoinTON, pages: [][]wallets.Transaction{
		{tx("tx1")},
		{tx("tx2"), tx("tx1")},
	}}
	sink := &recordingSink{}
	monitor, store := newTestMonitor(t, adapter, sink)

	_, err := store.Add("42", fs.WalletRecord{Coin: "TON", Address: "EQa"})
	require.NoError(t, err)

	monitor.RunCycle(context.Background())

	_, err = store.Remove("42", 0)
	require.NoError(t, err)

	monitor.RunCycle(context.Background())
	assert.Empty(t, sink.sent)
}
