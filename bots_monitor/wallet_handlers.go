package bots_monitor

// Handlers for the crypto monitoring menu: adding and deleting wallets,
// balance and status views. The add flow is coin selection via inline
// keyboard followed by a plain-text address message.

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"universal-bot/internal/features/wallets"
	"universal-bot/internal/infra/fs"
	log "universal-bot/internal/infra/log"
	"universal-bot/internal/infra/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func startCryptoMenu(deps *Deps, msg *tgbotapi.Message) {
	deps.Sessions.Reset(msg.From.ID)

	text := "💰 *Мониторинг криптокошельков*\n\n" +
		"Я проверяю кошельки каждые 30 секунд и присылаю уведомления о новых транзакциях.\n\n" +
		"Поддерживаются: TON, BTC, ETH, USDT (ERC-20)"

	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeMarkdown
	out.ReplyMarkup = cryptoMenuKeyboard()
	send(deps, out)
}

func startAddWallet(deps *Deps, msg *tgbotapi.Message) {
	out := tgbotapi.NewMessage(msg.Chat.ID, "Выбери монету:")
	out.ReplyMarkup = coinKeyboard()
	send(deps, out)
}

func callbackCoinSelected(deps *Deps, cb *tgbotapi.CallbackQuery, coinStr string) {
	chatID := cb.Message.Chat.ID

	if coinStr == "back" {
		deps.Sessions.Reset(cb.From.ID)
		out := tgbotapi.NewMessage(chatID, "💰 Меню мониторинга:")
		out.ReplyMarkup = cryptoMenuKeyboard()
		send(deps, out)
		return
	}

	coin, err := wallets.ParseCoin(coinStr)
	if err != nil {
		log.LogWarn("Unknown coin in callback", zap.String("data", coinStr))
		return
	}

	deps.Sessions.Update(cb.From.ID, func(s *Session) {
		s.AwaitingAddress = true
		s.PendingCoin = coin
	})

	text := fmt.Sprintf("%s Введи адрес кошелька %s:", coin.Emoji(), coin.DisplayName())
	out := tgbotapi.NewMessage(chatID, text)
	out.ReplyMarkup = cancelKeyboard()
	send(deps, out)
}

func handleWalletAddress(deps *Deps, msg *tgbotapi.Message) {
	session := deps.Sessions.Get(msg.From.ID)
	coin := session.PendingCoin
	address := msg.Text
	deps.Sessions.Reset(msg.From.ID)

	added, err := deps.Store.Add(formatChatID(msg.Chat.ID), fs.WalletRecord{
		Coin:    string(coin),
		Address: address,
		AddedAt: time.Now(),
	})
	if err != nil {
		log.LogError("Failed to add wallet",
			zap.String("coin", string(coin)),
			zap.String("address", address),
			zap.Error(err))
		out := tgbotapi.NewMessage(msg.Chat.ID, "❌ Не удалось сохранить кошелек, попробуй позже")
		out.ReplyMarkup = cryptoMenuKeyboard()
		send(deps, out)
		return
	}
	if !added {
		out := tgbotapi.NewMessage(msg.Chat.ID, "⚠️ Этот кошелек уже добавлен!")
		out.ReplyMarkup = cryptoMenuKeyboard()
		send(deps, out)
		return
	}

	text := fmt.Sprintf("✅ Кошелек добавлен!\n\n%s %s\n<code>%s</code>\n\nМониторинг запущен 🔔",
		coin.Emoji(), coin.DisplayName(), wallets.TruncateAddress(address))
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeHTML
	out.ReplyMarkup = cryptoMenuKeyboard()
	send(deps, out)
}

func sendBalances(ctx context.Context, deps *Deps, msg *tgbotapi.Message) {
	metrics.BalanceChecks.Inc()

	records, err := deps.Store.List(formatChatID(msg.Chat.ID))
	if err != nil {
		log.LogError("Failed to list wallets", zap.Error(err))
		reply(deps, msg, "❌ Не удалось загрузить кошельки")
		return
	}
	if len(records) == 0 {
		out := tgbotapi.NewMessage(msg.Chat.ID, "У тебя пока нет кошельков. Добавь первый!")
		out.ReplyMarkup = cryptoMenuKeyboard()
		send(deps, out)
		return
	}

	text := "💰 <b>Балансы кошельков:</b>\n\n"
	for _, record := range records {
		coin, err := wallets.ParseCoin(record.Coin)
		if err != nil {
			continue
		}
		text += fmt.Sprintf("%s <b>%s</b>\n<code>%s</code>\n", coin.Emoji(), record.Coin, wallets.TruncateAddress(record.Address))

		adapter, ok := deps.Registry.Lookup(coin)
		if !ok {
			text += "⚠️ Мониторинг для этой монеты не настроен\n\n"
			continue
		}
		balance, err := adapter.FetchBalance(ctx, record.Address)
		if err != nil {
			metrics.APIErrors.Inc()
			log.LogWarn("Balance fetch failed",
				zap.String("coin", record.Coin),
				zap.String("address", record.Address),
				zap.Error(err))
			text += "⚠️ Ошибка получения баланса\n\n"
			continue
		}
		text += fmt.Sprintf("Баланс: <b>%s %s</b>\n\n", coin.FormatAmount(balance), record.Coin)
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeHTML
	send(deps, out)
}

func sendStatus(deps *Deps, msg *tgbotapi.Message) {
	records, err := deps.Store.List(formatChatID(msg.Chat.ID))
	if err != nil {
		log.LogError("Failed to list wallets", zap.Error(err))
		reply(deps, msg, "❌ Не удалось загрузить кошельки")
		return
	}
	if len(records) == 0 {
		out := tgbotapi.NewMessage(msg.Chat.ID, "У тебя пока нет кошельков. Добавь первый!")
		out.ReplyMarkup = cryptoMenuKeyboard()
		send(deps, out)
		return
	}

	text := fmt.Sprintf("📊 <b>Статус мониторинга</b>\n\nКошельков: %d\nПроверка каждые 30 секунд\n\n", len(records))
	for i, record := range records {
		coin, _ := wallets.ParseCoin(record.Coin)
		text += fmt.Sprintf("%d. %s <b>%s</b>\n<code>%s</code>\nДобавлен: %s\n\n",
			i+1, coin.Emoji(), record.Coin,
			wallets.TruncateAddress(record.Address),
			record.AddedAt.Format("2006-01-02"))
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeHTML
	send(deps, out)
}

func sendDeleteMenu(deps *Deps, msg *tgbotapi.Message) {
	records, err := deps.Store.List(formatChatID(msg.Chat.ID))
	if err != nil {
		log.LogError("Failed to list wallets", zap.Error(err))
		reply(deps, msg, "❌ Не удалось загрузить кошельки")
		return
	}
	if len(records) == 0 {
		out := tgbotapi.NewMessage(msg.Chat.ID, "Удалять нечего: список кошельков пуст.")
		out.ReplyMarkup = cryptoMenuKeyboard()
		send(deps, out)
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, "🗑 Выбери кошелек для удаления:")
	out.ReplyMarkup = deleteKeyboard(records)
	send(deps, out)
}

func callbackDeleteWallet(deps *Deps, cb *tgbotapi.CallbackQuery, arg string) {
	chatID := cb.Message.Chat.ID

	if arg == "back" {
		out := tgbotapi.NewMessage(chatID, "💰 Меню мониторинга:")
		out.ReplyMarkup = cryptoMenuKeyboard()
		send(deps, out)
		return
	}

	index, err := strconv.Atoi(arg)
	if err != nil {
		log.LogWarn("Malformed delete callback", zap.String("data", arg))
		return
	}

	removed, err := deps.Store.Remove(formatChatID(chatID), index)
	if err != nil {
		log.LogWarn("Failed to remove wallet",
			zap.Int("index", index),
			zap.Error(err))
		send(deps, tgbotapi.NewMessage(chatID, "⚠️ Кошелек не найден, обнови список"))
		return
	}

	// Drop the watermark so re-adding the same wallet re-seeds its baseline.
	coin, perr := wallets.ParseCoin(removed.Coin)
	if perr == nil {
		deps.Watermarks.Forget(wallets.WatermarkKey(formatChatID(chatID), coin, removed.Address))
	}

	text := fmt.Sprintf("✅ Кошелек удален:\n\n%s %s\n<code>%s</code>",
		coin.Emoji(), removed.Coin, wallets.TruncateAddress(removed.Address))
	out := tgbotapi.NewMessage(chatID, text)
	out.ParseMode = tgbotapi.ModeHTML
	out.ReplyMarkup = cryptoMenuKeyboard()
	send(deps, out)
}

func formatChatID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
