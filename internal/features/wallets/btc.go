package wallets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"universal-bot/internal/clients_api/blockchain"

	logging "universal-bot/internal/infra/log"
	"universal-bot/internal/infra/metrics"

	"go.uber.org/zap"
)

// BTCAdapter monitors Bitcoin wallets through blockchain.info. The endpoint
// is unauthenticated and flaky, so FetchTransactions deliberately degrades to
// an empty list on transient errors instead of failing the monitor cycle.
// A transaction is incoming when any output pays the monitored address; the
// amount is the sum of those outputs. The notification shows the truncated
// transaction hash rather than a counterparty, since a BTC transaction has no
// single counterparty address.
type BTCAdapter struct {
	client *blockchain.Client
}

func NewBTCAdapter(client *blockchain.Client) *BTCAdapter {
	return &BTCAdapter{client: client}
}

func (a *BTCAdapter) Coin() Coin { return CoinBTC }

func (a *BTCAdapter) FetchBalance(ctx context.Context, address string) (float64, error) {
	satoshi, err := a.client.AddressBalance(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}
	return float64(satoshi) / btcDivisor, nil
}

func (a *BTCAdapter) FetchTransactions(ctx context.Context, address string, limit int) ([]Transaction, error) {
	raw, err := a.client.GetRawAddress(ctx, address, limit)
	if err != nil {
		metrics.APIErrors.Inc()
		logging.LogWarn("BTC transaction fetch failed, treating as empty",
			zap.String("address", address), zap.Error(err))
		return nil, nil
	}

	txs := make([]Transaction, 0, len(raw.Txs))
	for _, tx := range raw.Txs {
		txs = append(txs, normalizeBTCTx(tx, address))
	}
	return txs, nil
}

func normalizeBTCTx(tx blockchain.Tx, address string) Transaction {
	var received int64
	for _, out := range tx.Out {
		if out.Addr == address {
			received += out.Value
		}
	}

	normalized := Transaction{
		ID:        tx.Hash,
		Timestamp: time.Unix(tx.Time, 0),
	}
	if received > 0 {
		normalized.Direction = DirectionIncoming
		normalized.Amount = float64(received) / btcDivisor
	} else {
		normalized.Direction = DirectionOutgoing
	}
	return normalized
}

func (a *BTCAdapter) FormatTransaction(tx Transaction) string {
	if tx.Direction == DirectionUnknown {
		return ""
	}

	var msg strings.Builder
	msg.WriteString("🔔 <b>BTC - Новая транзакция!</b>\n\n")
	msg.WriteString(fmt.Sprintf("📅 %s\n", tx.Timestamp.Format("2006-01-02 15:04:05")))

	if tx.Direction == DirectionIncoming {
		msg.WriteString(fmt.Sprintf("📥 <b>Входящий: +%s BTC</b>\n", CoinBTC.FormatAmount(tx.Amount)))
	} else {
		msg.WriteString(fmt.Sprintf("📤 <b>Исходящий: -%s BTC</b>\n", CoinBTC.FormatAmount(tx.Amount)))
	}

	hash := tx.ID
	if len(hash) > 16 {
		hash = hash[:16]
	}
	msg.WriteString(fmt.Sprintf("🔗 <code>%s...</code>\n", hash))

	return msg.String()
}
