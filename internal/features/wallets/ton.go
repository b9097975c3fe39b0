package wallets

import (
	"context"
	"fmt"
	"time"

	"universal-bot/internal/clients_api/tonapi"
)

// TONAdapter monitors TON wallets through tonapi.io. Transaction identity is
// the event_id; events whose first action is not a TonTransfer still occupy a
// watermark position but render no notification. Transient API errors are
// propagated to the monitor's per-wallet guard.
type TONAdapter struct {
	client *tonapi.Client
}

func NewTONAdapter(client *tonapi.Client) *TONAdapter {
	return &TONAdapter{client: client}
}

func (a *TONAdapter) Coin() Coin { return CoinTON }

func (a *TONAdapter) FetchBalance(ctx context.Context, address string) (float64, error) {
	if !a.client.HasToken() {
		return 0, fmt.Errorf("%w: TONAPI_TOKEN is not set", ErrMissingCredential)
	}

	account, err := a.client.GetAccount(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}
	return float64(account.Balance) / tonDivisor, nil
}

func (a *TONAdapter) FetchTransactions(ctx context.Context, address string, limit int) ([]Transaction, error) {
	if !a.client.HasToken() {
		return nil, fmt.Errorf("%w: TONAPI_TOKEN is not set", ErrMissingCredential)
	}

	events, err := a.client.GetAccountEvents(ctx, address, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}

	txs := make([]Transaction, 0, len(events.Events))
	for _, event := range events.Events {
		txs = append(txs, normalizeTONEvent(event, address))
	}
	return txs, nil
}

func normalizeTONEvent(event tonapi.Event, address string) Transaction {
	tx := Transaction{
		ID:        event.EventID,
		Timestamp: time.Unix(event.Timestamp, 0),
	}

	if len(event.Actions) == 0 {
		return tx
	}
	action := event.Actions[0]
	if action.Type != "TonTransfer" || action.TonTransfer == nil {
		return tx
	}

	transfer := action.TonTransfer
	tx.Amount = float64(transfer.Amount) / tonDivisor

	// TON addresses are case-sensitive, compared exactly.
	if transfer.Recipient.Address == address {
		tx.Direction = DirectionIncoming
		tx.Counterparty = transfer.Sender.Address
	} else {
		tx.Direction = DirectionOutgoing
		tx.Counterparty = transfer.Recipient.Address
	}
	return tx
}

func (a *TONAdapter) FormatTransaction(tx Transaction) string {
	return formatTransferMessage(CoinTON, tx)
}
