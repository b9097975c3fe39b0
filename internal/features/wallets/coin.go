package wallets

import (
	"fmt"
	"strings"
)

// Coin identifies a supported chain.
type Coin string

const (
	CoinTON  Coin = "TON"
	CoinBTC  Coin = "BTC"
	CoinETH  Coin = "ETH"
	CoinUSDT Coin = "USDT"
)

// Divisors from the chain's smallest unit to whole coins: nanotons, satoshis,
// wei and the USDT contract's 6 decimals.
const (
	tonDivisor  = 1e9
	btcDivisor  = 1e8
	ethDivisor  = 1e18
	usdtDivisor = 1e6
)

func ParseCoin(s string) (Coin, error) {
	switch Coin(strings.ToUpper(strings.TrimSpace(s))) {
	case CoinTON:
		return CoinTON, nil
	case CoinBTC:
		return CoinBTC, nil
	case CoinETH:
		return CoinETH, nil
	case CoinUSDT:
		return CoinUSDT, nil
	}
	return "", fmt.Errorf("unsupported coin %q", s)
}

func (c Coin) Emoji() string {
	switch c {
	case CoinTON:
		return "💎"
	case CoinBTC:
		return "₿"
	case CoinETH:
		return "Ξ"
	case CoinUSDT:
		return "💵"
	}
	return "🪙"
}

func (c Coin) DisplayName() string {
	switch c {
	case CoinTON:
		return "TON (The Open Network)"
	case CoinBTC:
		return "Bitcoin"
	case CoinETH:
		return "Ethereum"
	case CoinUSDT:
		return "USDT (ERC-20)"
	}
	return string(c)
}

// FormatAmount renders a whole-coin amount with the chain's display precision.
func (c Coin) FormatAmount(v float64) string {
	switch c {
	case CoinBTC:
		return fmt.Sprintf("%.8f", v)
	case CoinETH:
		return fmt.Sprintf("%.6f", v)
	case CoinUSDT:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.4f", v)
	}
}
