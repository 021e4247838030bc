// Package notify отправляет итоги запусков в Telegram.
package notify

import (
	"context"
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"scrapekit/internal/namehits"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier отправляет текстовое сообщение
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Nop ничего не отправляет
type Nop struct{}

// Notify реализует Notifier
func (Nop) Notify(context.Context, string) error { return nil }

// sender часть tgbotapi.BotAPI, которая нужна для отправки
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram отправляет сообщения в один чат
type Telegram struct {
	bot    sender
	chatID int64
	logger *zap.Logger
}

// NewTelegram создает клиента бота и проверяет токен
func NewTelegram(botToken string, chatID int64, logger *zap.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	bot.Debug = false
	logger.Info("Telegram bot created", zap.String("username", bot.Self.UserName))

	return newTelegram(bot, chatID, logger), nil
}

func newTelegram(bot sender, chatID int64, logger *zap.Logger) *Telegram {
	return &Telegram{bot: bot, chatID: chatID, logger: logger}
}

// Notify отправляет HTML-сообщение в чат
func (t *Telegram) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error("Failed to send notification", zap.Int64("chat_id", t.chatID), zap.Error(err))
		return fmt.Errorf("failed to send notification: %w", err)
	}

	t.logger.Debug("Notification sent", zap.Int64("chat_id", t.chatID))
	return nil
}

// HarvestSummary итоги сбора отзывов
type HarvestSummary struct {
	RunID     uuid.UUID
	Terms     int
	Records   int
	NotFound  int
	Reviews   int
	Rows      int
	Files     []string
	Elapsed   time.Duration
	Cancelled bool
}

// FormatHarvest текст сообщения об итогах сбора
func FormatHarvest(s HarvestSummary) string {
	var b strings.Builder

	title := "Сбор отзывов завершен"
	if s.Cancelled {
		title = "Сбор отзывов прерван"
	}
	fmt.Fprintf(&b, "<b>%s</b>\n", title)
	fmt.Fprintf(&b, "Запуск: <code>%s</code>\n", s.RunID)
	fmt.Fprintf(&b, "Запросов: %d, ссылок: %d, не найдено: %d\n", s.Terms, s.Records, s.NotFound)
	fmt.Fprintf(&b, "Отзывов: %d, строк в таблице: %d\n", s.Reviews, s.Rows)
	fmt.Fprintf(&b, "Время: %s", s.Elapsed.Round(time.Second))

	for _, f := range s.Files {
		fmt.Fprintf(&b, "\n📄 %s", html.EscapeString(filepath.Base(f)))
	}
	return b.String()
}

// FormatHits текст сообщения с самыми популярными именами
func FormatHits(ranked []namehits.Result, topN int) string {
	return "<pre>" + html.EscapeString(namehits.Summary(ranked, topN)) + "</pre>"
}
