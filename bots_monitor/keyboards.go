package bots_monitor

import (
	"fmt"

	"universal-bot/internal/features/wallets"
	"universal-bot/internal/infra/fs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Menu button labels. The handlers match on these exact strings.
const (
	btnProcessText   = "📝 Process Text"
	btnGetID         = "🆔 Get ID"
	btnHelp          = "❓ Help"
	btnCryptoMonitor = "💰 Мониторинг кошельков"

	btnSmartClean = "🧹 Smart Clean"
	btnDedup      = "🔄 Dedup"
	btnBack       = "◀️ Back"

	btnAddWallet    = "➕ Добавить кошелек"
	btnBalance      = "💰 Баланс"
	btnStatus       = "📊 Статус"
	btnDeleteWallet = "🗑 Удалить кошелек"
	btnMainMenu     = "◀️ Главное меню"

	btnCancel = "❌ Cancel"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnProcessText)),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnGetID),
			tgbotapi.NewKeyboardButton(btnHelp),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCryptoMonitor)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func textMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSmartClean)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnDedup)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func cryptoMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddWallet),
			tgbotapi.NewKeyboardButton(btnBalance),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStatus),
			tgbotapi.NewKeyboardButton(btnDeleteWallet),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnMainMenu)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func coinKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("💎 TON", "coin_TON")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("₿ Bitcoin", "coin_BTC")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Ξ Ethereum", "coin_ETH")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("💵 USDT (ERC-20)", "coin_USDT")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "coin_back")),
	)
}

func idMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("👤 My ID", "get_my_id")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📨 From Forward", "get_by_forward")),
	)
}

// deleteKeyboard lists every wallet as an inline button whose callback data
// carries the positional index, which is the deletion handle.
func deleteKeyboard(records []fs.WalletRecord) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(records)+1)
	for i, record := range records {
		coin := wallets.Coin(record.Coin)
		addr := record.Address
		if len(addr) > 14 {
			addr = addr[:8] + "..." + addr[len(addr)-6:]
		}
		label := fmt.Sprintf("%s %s: %s", coin.Emoji(), record.Coin, addr)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("delete_%d", i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "delete_back"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
