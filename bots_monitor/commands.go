package bots_monitor

// Telegram update loop: commands, menu buttons, inline callbacks and the
// session-driven flows (add wallet, forward-for-ID, text processing).

import (
	"context"
	"fmt"
	"strings"

	"universal-bot/internal/features/wallets"
	"universal-bot/internal/infra/fs"
	log "universal-bot/internal/infra/log"
	"universal-bot/internal/infra/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Deps bundles everything the update handlers need. All state is injected;
// the package keeps no globals.
type Deps struct {
	Bot         *tgbotapi.BotAPI
	Store       *fs.WalletStore
	Registry    wallets.Registry
	Watermarks  *wallets.WatermarkCache
	Sessions    *SessionStore
	Stats       *metrics.Stats
	MaxFileSize int64
}

// RunBot consumes updates until ctx is cancelled.
func RunBot(ctx context.Context, deps *Deps) {
	log.LogInfo("Starting update handler", zap.String("username", deps.Bot.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := deps.Bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			deps.Bot.StopReceivingUpdates()
			log.LogInfo("Update handler stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			handleUpdate(ctx, deps, update)
		}
	}
}

func handleUpdate(ctx context.Context, deps *Deps, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		handleCallback(deps, update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}

	metrics.MessagesReceived.Inc()
	msg := update.Message
	userID := msg.From.ID

	if msg.IsCommand() {
		handleCommand(deps, msg)
		return
	}
	if msg.Sticker != nil {
		reply(deps, msg, fmt.Sprintf("Sticker ID: %s", msg.Sticker.FileID))
		return
	}
	if msg.Document != nil {
		handleDocument(deps, msg)
		return
	}

	// Menu buttons take priority over pending session input, so a user who
	// taps a button mid-flow is never stuck.
	switch msg.Text {
	case btnProcessText:
		startTextMode(deps, msg)
		return
	case btnGetID:
		sendIDMenu(deps, msg)
		return
	case btnHelp:
		sendHelp(deps, msg)
		return
	case btnCryptoMonitor:
		startCryptoMenu(deps, msg)
		return
	case btnAddWallet:
		startAddWallet(deps, msg)
		return
	case btnBalance:
		sendBalances(ctx, deps, msg)
		return
	case btnStatus:
		sendStatus(deps, msg)
		return
	case btnDeleteWallet:
		sendDeleteMenu(deps, msg)
		return
	case btnSmartClean, btnDedup:
		selectTextCommand(deps, msg)
		return
	case btnMainMenu:
		sendWelcome(deps, msg)
		return
	case btnBack:
		handleBack(deps, msg)
		return
	case btnCancel:
		cancelFlow(deps, msg)
		return
	}

	session := deps.Sessions.Get(userID)
	switch {
	case session.AwaitingAddress:
		handleWalletAddress(deps, msg)
	case session.AwaitingForward:
		handleForward(deps, msg)
	default:
		handleUnsupported(deps, msg, session)
	}
}

func handleCommand(deps *Deps, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		metrics.CommandStarts.Inc()
		sendWelcome(deps, msg)
	case "help":
		sendHelp(deps, msg)
	case "stats":
		sendStats(deps, msg)
	case "chatid":
		reply(deps, msg, fmt.Sprintf("Chat ID: %d", msg.Chat.ID))
	case "userid", "id":
		target := msg.From
		if msg.ReplyToMessage != nil {
			target = msg.ReplyToMessage.From
		}
		reply(deps, msg, fmt.Sprintf("User ID: %d", target.ID))
	case "cancel":
		cancelFlow(deps, msg)
	default:
		reply(deps, msg, "Unknown command. Try /help.")
	}
}

func handleCallback(deps *Deps, cb *tgbotapi.CallbackQuery) {
	// Telegram omits Message for inline buttons older than 48 hours; every
	// handler below needs the originating chat, so a stale tap is ignored.
	if cb.Message == nil {
		log.LogWarn("Callback without originating message, ignoring",
			zap.Int64("userID", cb.From.ID),
			zap.String("data", cb.Data))
		return
	}

	// Acknowledge first so the client stops its spinner even if the handler
	// fails later.
	if _, err := deps.Bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.LogWarn("Failed to answer callback query", zap.Error(err))
	}

	data := cb.Data
	switch {
	case data == "get_my_id":
		callbackMyID(deps, cb)
	case data == "get_by_forward":
		callbackAwaitForward(deps, cb)
	case strings.HasPrefix(data, "coin_"):
		callbackCoinSelected(deps, cb, strings.TrimPrefix(data, "coin_"))
	case strings.HasPrefix(data, "delete_"):
		callbackDeleteWallet(deps, cb, strings.TrimPrefix(data, "delete_"))
	}
}

func sendWelcome(deps *Deps, msg *tgbotapi.Message) {
	deps.Sessions.Reset(msg.From.ID)

	text := fmt.Sprintf(
		"🤖 *Универсальный бот* 🤖\n\n"+
			"Привет, %s! Я умею:\n\n"+
			"📝 *Обрабатывать текстовые файлы*\n"+
			"🆔 *Показывать ID* (пересланное сообщение, стикер)\n"+
			"💰 *Мониторить криптокошельки* (TON, BTC, ETH, USDT)\n\n"+
			"Выбери функцию в меню ниже:",
		msg.From.FirstName)

	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeMarkdown
	out.ReplyMarkup = mainMenuKeyboard()
	send(deps, out)
}

func sendHelp(deps *Deps, msg *tgbotapi.Message) {
	text := "📋 *Справка*\n\n" +
		"📝 *Обработка текста:*\n" +
		"• Smart Clean: группировка доменов со счетчиками\n" +
		"• Dedup: удаление дубликатов строк\n" +
		"• Принимаются только .txt файлы\n\n" +
		"🆔 *ID инструменты:*\n" +
		"• Кнопка '🆔 Получить ID' — меню со способами\n" +
		"• Команды: `/chatid`, `/userid` (или `/id`)\n" +
		"• Отправь стикер — бот вернет его Sticker ID\n\n" +
		"💰 *Мониторинг кошельков:*\n" +
		"• Добавь TON/BTC/ETH/USDT кошельки и получай уведомления о новых транзакциях\n\n" +
		"🔄 Переключайся между режимами через главное меню"

	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeMarkdown
	out.ReplyToMessageID = msg.MessageID
	send(deps, out)
}

func sendStats(deps *Deps, msg *tgbotapi.Message) {
	users, texts, errs := deps.Stats.Totals()
	reply(deps, msg, fmt.Sprintf("📊 Статистика\n\nПользователей: %d\nТекстов обработано: %d\nОшибок: %d", users, texts, errs))
}

func handleBack(deps *Deps, msg *tgbotapi.Message) {
	deps.Sessions.Reset(msg.From.ID)
	out := tgbotapi.NewMessage(msg.Chat.ID, "🏠 Главное меню:")
	out.ReplyMarkup = mainMenuKeyboard()
	send(deps, out)
}

func cancelFlow(deps *Deps, msg *tgbotapi.Message) {
	deps.Sessions.Reset(msg.From.ID)
	out := tgbotapi.NewMessage(msg.Chat.ID, "❌ Операция отменена")
	out.ReplyMarkup = mainMenuKeyboard()
	send(deps, out)
}

func handleUnsupported(deps *Deps, msg *tgbotapi.Message, session Session) {
	if session.Mode == ModeText {
		reply(deps, msg, "В режиме обработки текста я принимаю только .txt файлы.")
		return
	}
	reply(deps, msg, "Сначала выбери режим в главном меню.")
}

func reply(deps *Deps, msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	send(deps, out)
}

func send(deps *Deps, c tgbotapi.Chattable) {
	if _, err := deps.Bot.Send(c); err != nil {
		log.LogError("Failed to send message", zap.Error(err))
	}
}
