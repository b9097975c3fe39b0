package bots_monitor

// Wallet transaction monitor. Every cycle it reloads the full registry and
// visits each (chat, wallet) pair sequentially: fetch recent transactions,
// diff against the watermark, deliver notifications oldest-first, advance the
// watermark. One wallet's failure is logged and skipped, it never aborts the
// cycle or the process.

import (
	"context"
	"strconv"
	"time"

	"universal-bot/internal/features/wallets"
	"universal-bot/internal/infra/fs"
	log "universal-bot/internal/infra/log"
	"universal-bot/internal/infra/metrics"

	"go.uber.org/zap"
)

type WalletMonitor struct {
	store      *fs.WalletStore
	registry   wallets.Registry
	watermarks *wallets.WatermarkCache
	sink       NotificationSink
	interval   time.Duration
	fetchLimit int
}

func NewWalletMonitor(store *fs.WalletStore, registry wallets.Registry, watermarks *wallets.WatermarkCache, sink NotificationSink, interval time.Duration, fetchLimit int) *WalletMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if fetchLimit <= 0 {
		fetchLimit = 5
	}
	return &WalletMonitor{
		store:      store,
		registry:   registry,
		watermarks: watermarks,
		sink:       sink,
		interval:   interval,
		fetchLimit: fetchLimit,
	}
}

// Run polls until ctx is cancelled. An in-flight cycle finishes its current
// wallet before stopping.
func (m *WalletMonitor) Run(ctx context.Context) {
	log.LogInfo("Starting wallet monitor",
		zap.Duration("interval", m.interval),
		zap.Int("fetchLimit", m.fetchLimit))

	m.RunCycle(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.LogInfo("Wallet monitor stopped")
			return
		case <-ticker.C:
			m.RunCycle(ctx)
		}
	}
}

// RunCycle visits every registered wallet once.
func (m *WalletMonitor) RunCycle(ctx context.Context) {
	registry, err := m.store.Load()
	if err != nil {
		log.LogError("Failed to load wallet registry", zap.Error(err))
		return
	}

	total := 0
	for _, list := range registry {
		total += len(list)
	}
	metrics.WalletsMonitored.Set(float64(total))
	log.LogDebug("Checking wallets", zap.Int("count", total))

	for chatID, list := range registry {
		for _, record := range list {
			if ctx.Err() != nil {
				return
			}
			if err := m.checkWallet(ctx, chatID, record); err != nil {
				metrics.APIErrors.Inc()
				log.LogWarn("Wallet check skipped",
					zap.String("chatID", chatID),
					zap.String("coin", record.Coin),
					zap.String("address", record.Address),
					zap.Error(err))
			}
		}
	}
}

func (m *WalletMonitor) checkWallet(ctx context.Context, chatID string, record fs.WalletRecord) error {
	coin, err := wallets.ParseCoin(record.Coin)
	if err != nil {
		return err
	}
	adapter, ok := m.registry.Lookup(coin)
	if !ok {
		return wallets.ErrMissingCredential
	}

	metrics.TransactionChecks.Inc()
	txs, err := adapter.FetchTransactions(ctx, record.Address, m.fetchLimit)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		return nil
	}

	key := wallets.WatermarkKey(chatID, coin, record.Address)
	first, fresh := m.watermarks.Diff(key, txs[0].ID, txs)
	if first {
		log.LogDebug("Watermark baseline seeded",
			zap.String("key", key), zap.String("latest", txs[0].ID))
		return nil
	}
	if len(fresh) == 0 {
		return nil
	}

	chat, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return err
	}

	for _, tx := range fresh {
		body := adapter.FormatTransaction(tx)
		if body == "" {
			continue
		}
		if err := m.sink.Send(chat, body); err != nil {
			// A failed delivery does not hold the watermark back: the
			// transaction will not be re-notified next cycle.
			log.LogError("Notification delivery failed",
				zap.String("key", key),
				zap.String("tx", tx.ID),
				zap.Error(err))
			continue
		}
		metrics.NotificationsSent.Inc()
	}

	m.watermarks.Advance(key, txs[0].ID)
	return nil
}
