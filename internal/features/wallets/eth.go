package wallets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"universal-bot/internal/clients_api/etherscan"
)

// ETHAdapter monitors Ethereum wallets through the Etherscan API. Hex
// addresses are compared case-insensitively. Transient API errors are
// propagated to the monitor's per-wallet guard.
type ETHAdapter struct {
	client *etherscan.Client
}

func NewETHAdapter(client *etherscan.Client) *ETHAdapter {
	return &ETHAdapter{client: client}
}

func (a *ETHAdapter) Coin() Coin { return CoinETH }

func (a *ETHAdapter) FetchBalance(ctx context.Context, address string) (float64, error) {
	if !a.client.HasKey() {
		return 0, fmt.Errorf("%w: ETHERSCAN_TOKEN is not set", ErrMissingCredential)
	}

	raw, err := a.client.Balance(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}

	wei, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: balance %q: %v", ErrMalformedResponse, raw, err)
	}
	return wei / ethDivisor, nil
}

func (a *ETHAdapter) FetchTransactions(ctx context.Context, address string, limit int) ([]Transaction, error) {
	if !a.client.HasKey() {
		return nil, fmt.Errorf("%w: ETHERSCAN_TOKEN is not set", ErrMissingCredential)
	}

	raw, err := a.client.TxList(ctx, address, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}
	return normalizeEtherscanTxs(raw, address, ethDivisor), nil
}

// normalizeEtherscanTxs is shared by the ETH and USDT adapters; only the
// divisor differs between native transfers and the 6-decimal token.
func normalizeEtherscanTxs(raw []etherscan.Tx, address string, divisor float64) []Transaction {
	wallet := strings.ToLower(address)

	txs := make([]Transaction, 0, len(raw))
	for _, tx := range raw {
		ts, _ := strconv.ParseInt(tx.TimeStamp, 10, 64)
		value, _ := strconv.ParseFloat(tx.Value, 64)

		normalized := Transaction{
			ID:        tx.Hash,
			Timestamp: time.Unix(ts, 0),
			Amount:    value / divisor,
		}
		if strings.ToLower(tx.To) == wallet {
			normalized.Direction = DirectionIncoming
			normalized.Counterparty = strings.ToLower(tx.From)
		} else {
			normalized.Direction = DirectionOutgoing
			normalized.Counterparty = strings.ToLower(tx.To)
		}
		txs = append(txs, normalized)
	}
	return txs
}

func (a *ETHAdapter) FormatTransaction(tx Transaction) string {
	return formatTransferMessage(CoinETH, tx)
}
