package wallets

// Telegram HTML rendering shared by the chain adapters.

import (
	"fmt"
	"strings"
)

// TruncateAddress shortens long addresses to first8...last8.
func TruncateAddress(addr string) string {
	if len(addr) <= 16 {
		return addr
	}
	return addr[:8] + "..." + addr[len(addr)-8:]
}

// formatTransferMessage builds the standard notification body: header,
// timestamp, direction arrow with a signed amount at the coin's precision,
// and the truncated counterparty.
func formatTransferMessage(coin Coin, tx Transaction) string {
	if tx.Direction == DirectionUnknown {
		return ""
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("🔔 <b>%s - Новая транзакция!</b>\n\n", coin))
	msg.WriteString(fmt.Sprintf("📅 %s\n", tx.Timestamp.Format("2006-01-02 15:04:05")))

	if tx.Direction == DirectionIncoming {
		msg.WriteString(fmt.Sprintf("📥 <b>Входящий: +%s %s</b>\n", coin.FormatAmount(tx.Amount), coin))
		msg.WriteString(fmt.Sprintf("От: <code>%s</code>\n", TruncateAddress(tx.Counterparty)))
	} else {
		msg.WriteString(fmt.Sprintf("📤 <b>Исходящий: -%s %s</b>\n", coin.FormatAmount(tx.Amount), coin))
		msg.WriteString(fmt.Sprintf("Кому: <code>%s</code>\n", TruncateAddress(tx.Counterparty)))
	}

	return msg.String()
}
