package bots_monitor

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// NotificationSink delivers a formatted HTML notification to a chat. The
// wallet monitor depends on this interface so tests can capture messages
// without a live bot.
type NotificationSink interface {
	Send(chatID int64, html string) error
}

// TelegramSink sends through the Bot API with HTML parse mode.
type TelegramSink struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramSink(bot *tgbotapi.BotAPI) *TelegramSink {
	return &TelegramSink{bot: bot}
}

func (s *TelegramSink) Send(chatID int64, html string) error {
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to deliver notification to chat %d: %w", chatID, err)
	}
	return nil
}
