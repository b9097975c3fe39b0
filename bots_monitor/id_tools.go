package bots_monitor

// ID lookup tools: show the caller's own IDs or extract the origin of a
// forwarded message. Stickers and the /chatid family are handled directly in
// the dispatch.

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func sendIDMenu(deps *Deps, msg *tgbotapi.Message) {
	out := tgbotapi.NewMessage(msg.Chat.ID, "🆔 Как получить ID?")
	out.ReplyMarkup = idMenuKeyboard()
	send(deps, out)
}

func callbackMyID(deps *Deps, cb *tgbotapi.CallbackQuery) {
	text := fmt.Sprintf("👤 Твои данные:\n\nUser ID: <code>%d</code>\nChat ID: <code>%d</code>",
		cb.From.ID, cb.Message.Chat.ID)
	if cb.From.UserName != "" {
		text += fmt.Sprintf("\nUsername: @%s", cb.From.UserName)
	}

	out := tgbotapi.NewMessage(cb.Message.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeHTML
	send(deps, out)
}

func callbackAwaitForward(deps *Deps, cb *tgbotapi.CallbackQuery) {
	deps.Sessions.Update(cb.From.ID, func(s *Session) {
		s.AwaitingForward = true
	})

	out := tgbotapi.NewMessage(cb.Message.Chat.ID,
		"📨 Перешли мне сообщение, и я покажу ID его отправителя.")
	out.ReplyMarkup = cancelKeyboard()
	send(deps, out)
}

func handleForward(deps *Deps, msg *tgbotapi.Message) {
	switch {
	case msg.ForwardFrom != nil:
		deps.Sessions.Reset(msg.From.ID)
		text := fmt.Sprintf("👤 Отправитель:\n\nUser ID: <code>%d</code>\nИмя: %s",
			msg.ForwardFrom.ID, msg.ForwardFrom.FirstName)
		if msg.ForwardFrom.UserName != "" {
			text += fmt.Sprintf("\nUsername: @%s", msg.ForwardFrom.UserName)
		}
		sendForwardResult(deps, msg, text)

	case msg.ForwardFromChat != nil:
		deps.Sessions.Reset(msg.From.ID)
		text := fmt.Sprintf("📢 Канал/чат:\n\nChat ID: <code>%d</code>\nНазвание: %s",
			msg.ForwardFromChat.ID, msg.ForwardFromChat.Title)
		if msg.ForwardFromChat.UserName != "" {
			text += fmt.Sprintf("\nUsername: @%s", msg.ForwardFromChat.UserName)
		}
		sendForwardResult(deps, msg, text)

	case msg.ForwardSenderName != "":
		// Sender hid their account, Telegram exposes only the display name.
		deps.Sessions.Reset(msg.From.ID)
		sendForwardResult(deps, msg, fmt.Sprintf(
			"🔒 Отправитель скрыл свой аккаунт.\n\nИмя: %s\nID недоступен из-за настроек приватности.",
			msg.ForwardSenderName))

	default:
		reply(deps, msg, "Это не пересланное сообщение. Перешли сообщение или нажми ❌ Cancel.")
	}
}

func sendForwardResult(deps *Deps, msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeHTML
	out.ReplyMarkup = mainMenuKeyboard()
	send(deps, out)
}
