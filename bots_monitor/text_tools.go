package bots_monitor

// Text processing flow: the user picks a processing mode, sends a .txt
// document, the bot downloads it into a temp dir, runs the processor and
// sends the result back as a document.

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"universal-bot/internal/features/textproc"
	log "universal-bot/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	textCommandSmartClean = "smart_clean"
	textCommandDedup      = "dedup"
)

func startTextMode(deps *Deps, msg *tgbotapi.Message) {
	deps.Sessions.Update(msg.From.ID, func(s *Session) {
		*s = Session{Mode: ModeText}
	})

	out := tgbotapi.NewMessage(msg.Chat.ID,
		"📝 Режим обработки текста.\n\nВыбери способ обработки, затем отправь .txt файл:")
	out.ReplyMarkup = textMenuKeyboard()
	send(deps, out)
}

func selectTextCommand(deps *Deps, msg *tgbotapi.Message) {
	command := textCommandSmartClean
	if msg.Text == btnDedup {
		command = textCommandDedup
	}

	deps.Sessions.Update(msg.From.ID, func(s *Session) {
		s.Mode = ModeText
		s.TextCommand = command
	})

	reply(deps, msg, fmt.Sprintf("Режим: %s. Теперь отправь .txt файл.", msg.Text))
}

func handleDocument(deps *Deps, msg *tgbotapi.Message) {
	session := deps.Sessions.Get(msg.From.ID)
	if session.Mode != ModeText {
		reply(deps, msg, "Сначала открой 📝 Process Text в главном меню.")
		return
	}

	doc := msg.Document
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".txt") {
		reply(deps, msg, "⚠️ Принимаются только .txt файлы.")
		return
	}
	if deps.MaxFileSize > 0 && int64(doc.FileSize) > deps.MaxFileSize {
		reply(deps, msg, fmt.Sprintf("⚠️ Файл слишком большой. Максимум: %d МБ.", deps.MaxFileSize/(1<<20)))
		return
	}

	userID := fmt.Sprintf("%d", msg.From.ID)
	result, err := processDocument(deps, msg, session.TextCommand)
	if err != nil {
		deps.Stats.RecordError(userID)
		log.LogError("Document processing failed",
			zap.String("file", doc.FileName),
			zap.String("command", session.TextCommand),
			zap.Error(err))
		reply(deps, msg, "❌ Не удалось обработать файл, попробуй еще раз.")
		return
	}
	defer os.RemoveAll(filepath.Dir(result))

	deps.Stats.RecordText(userID)

	upload := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FilePath(result))
	upload.Caption = "✅ Готово!"
	upload.ReplyToMessageID = msg.MessageID
	if _, err := deps.Bot.Send(upload); err != nil {
		log.LogError("Failed to send processed document", zap.Error(err))
	}
}

// processDocument downloads the attached file and runs the selected
// processor. It returns the result path inside a fresh temp dir; the caller
// removes the dir.
func processDocument(deps *Deps, msg *tgbotapi.Message, command string) (string, error) {
	url, err := deps.Bot.GetFileDirectURL(msg.Document.FileID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file url: %w", err)
	}

	dir, err := os.MkdirTemp("", "textproc-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	srcPath := filepath.Join(dir, "input.txt")
	if err := downloadFile(url, srcPath); err != nil {
		os.RemoveAll(dir)
		return "", err
	}

	dstPath := filepath.Join(dir, "result_"+msg.Document.FileName)
	switch command {
	case textCommandDedup:
		err = textproc.Dedup(srcPath, dstPath)
	case textCommandSmartClean:
		err = textproc.SmartClean(srcPath, dstPath)
	default:
		err = textproc.Clean(srcPath, dstPath)
	}
	if err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	return dstPath, nil
}

func downloadFile(url, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("file download returned status %d", resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}
