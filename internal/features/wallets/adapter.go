package wallets

// ChainAdapter abstracts one chain's explorer API behind a uniform contract:
// fetch the balance, fetch normalized recent transactions newest-first, and
// render one transaction as a Telegram HTML notification.

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrAPIUnavailable wraps transport or HTTP failures of an explorer API.
	// Callers treat it as "skip this wallet this cycle", never as fatal.
	ErrAPIUnavailable = errors.New("chain api unavailable")

	// ErrMissingCredential means the adapter's API credential is not
	// configured. Surfaced once at startup; per call it behaves like a skip.
	ErrMissingCredential = errors.New("missing api credential")

	// ErrMalformedResponse means the explorer answered with an unexpected
	// payload shape.
	ErrMalformedResponse = errors.New("malformed api response")
)

type Direction int

const (
	// DirectionUnknown marks transactions that pin a watermark position but
	// carry no displayable transfer (e.g. a TON event without a TonTransfer
	// action). FormatTransaction renders them as an empty string.
	DirectionUnknown Direction = iota
	DirectionIncoming
	DirectionOutgoing
)

// Transaction is the normalized, chain-independent view of one transfer.
type Transaction struct {
	ID           string
	Timestamp    time.Time
	Amount       float64 // whole-coin units
	Direction    Direction
	Counterparty string // sender for incoming, recipient for outgoing
}

type ChainAdapter interface {
	Coin() Coin

	// FetchBalance returns the confirmed balance in whole-coin units.
	FetchBalance(ctx context.Context, address string) (float64, error)

	// FetchTransactions returns up to limit normalized transactions for the
	// address, newest first. Adapters differ deliberately on transient
	// failures: BTC degrades to an empty list, the others return an error
	// for the monitor's per-wallet guard.
	FetchTransactions(ctx context.Context, address string, limit int) ([]Transaction, error)

	// FormatTransaction renders the notification body, or "" for
	// transactions that should not produce a message.
	FormatTransaction(tx Transaction) string
}

// Registry maps a coin to its adapter.
type Registry map[Coin]ChainAdapter

func NewRegistry(adapters ...ChainAdapter) Registry {
	r := make(Registry, len(adapters))
	for _, a := range adapters {
		r[a.Coin()] = a
	}
	return r
}

func (r Registry) Lookup(coin Coin) (ChainAdapter, bool) {
	a, ok := r[coin]
	return a, ok
}
