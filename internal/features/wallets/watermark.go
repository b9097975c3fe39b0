package wallets

// WatermarkCache remembers the newest transaction ID already observed per
// wallet and splits a fetched page into seen and unseen. It lives for the
// process lifetime only: after a restart the first poll of every wallet
// re-seeds its baseline, so transactions from the downtime window are
// deliberately not replayed (at-most-once across restarts).

import (
	"fmt"
	"sync"
)

type WatermarkCache struct {
	mu   sync.Mutex
	seen map[string]string
}

func NewWatermarkCache() *WatermarkCache {
	return &WatermarkCache{seen: make(map[string]string)}
}

// WatermarkKey builds the cache key for one monitored wallet.
func WatermarkKey(chatID string, coin Coin, address string) string {
	return fmt.Sprintf("%s_%s_%s", chatID, coin, address)
}

// Diff takes the fetched page newest-first and returns the transactions that
// appeared since the stored watermark, reordered oldest-first so notifications
// go out chronologically.
//
// On the first observation of a key the current latest ID is stored silently
// and no transactions are reported: a freshly added wallet must not replay
// its pre-existing history. On later calls the watermark is NOT advanced
// here; the caller advances it with Advance once it has attempted delivery
// of every reported transaction. If the watermark ID is no longer inside the
// fetched page, the whole page is reported as new.
func (c *WatermarkCache) Diff(key, latestID string, txs []Transaction) (first bool, fresh []Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.seen[key]
	if !ok {
		c.seen[key] = latestID
		return true, nil
	}
	if last == latestID {
		return false, nil
	}

	for _, tx := range txs {
		if tx.ID == last {
			break
		}
		fresh = append(fresh, tx)
	}

	// reverse to oldest-first
	for i, j := 0, len(fresh)-1; i < j; i, j = i+1, j-1 {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	}
	return false, fresh
}

// Advance moves the watermark to latestID.
func (c *WatermarkCache) Advance(key, latestID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen[key] = latestID
}

// Forget drops the watermark for a deleted wallet so a re-added wallet starts
// from a fresh baseline.
func (c *WatermarkCache) Forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.seen, key)
}
