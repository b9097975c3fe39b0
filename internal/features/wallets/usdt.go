package wallets

import (
	"context"
	"fmt"
	"strconv"

	"universal-bot/internal/clients_api/etherscan"
)

// USDTContract is the Tether ERC-20 contract on Ethereum mainnet.
const USDTContract = "0xdac17f958d2ee523a2206206994597c13d831ec7"

// USDTAdapter monitors USDT (ERC-20) wallets via the Etherscan token
// endpoints, sharing the ETH client and its rate limiter.
type USDTAdapter struct {
	client *etherscan.Client
}

func NewUSDTAdapter(client *etherscan.Client) *USDTAdapter {
	return &USDTAdapter{client: client}
}

func (a *USDTAdapter) Coin() Coin { return CoinUSDT }

func (a *USDTAdapter) FetchBalance(ctx context.Context, address string) (float64, error) {
	if !a.client.HasKey() {
		return 0, fmt.Errorf("%w: ETHERSCAN_TOKEN is not set", ErrMissingCredential)
	}

	raw, err := a.client.TokenBalance(ctx, USDTContract, address)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}

	units, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: token balance %q: %v", ErrMalformedResponse, raw, err)
	}
	return units / usdtDivisor, nil
}

func (a *USDTAdapter) FetchTransactions(ctx context.Context, address string, limit int) ([]Transaction, error) {
	if !a.client.HasKey() {
		return nil, fmt.Errorf("%w: ETHERSCAN_TOKEN is not set", ErrMissingCredential)
	}

	raw, err := a.client.TokenTxList(ctx, USDTContract, address, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}
	return normalizeEtherscanTxs(raw, address, usdtDivisor), nil
}

func (a *USDTAdapter) FormatTransaction(tx Transaction) string {
	return formatTransferMessage(CoinUSDT, tx)
}
