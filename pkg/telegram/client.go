package telegram

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Publisher emits one chat message per article: a photo with caption when
// image bytes are present, otherwise plain text. The boolean result is the
// only signal the worker needs; failures are logged here.
type Publisher interface {
	Publish(image []byte, caption string) bool
}

type BotClient struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewBotClient authenticates against the Bot API. Missing credentials or an
// unreachable API are returned as errors so main can wire a Disabled
// publisher instead of crashing.
func NewBotClient(token string, chatID int64) (*BotClient, error) {
	return newBotClient(token, chatID, tgbotapi.APIEndpoint)
}

func newBotClient(token string, chatID int64, apiEndpoint string) (*BotClient, error) {
	if token == "" || chatID == 0 {
		return nil, errors.New("telegram bot token and chat id are required")
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, &http.Client{Timeout: 30 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}

	return &BotClient{bot: bot, chatID: chatID}, nil
}

func (c *BotClient) Publish(image []byte, caption string) bool {
	var msg tgbotapi.Chattable
	if len(image) > 0 {
		photo := tgbotapi.NewPhoto(c.chatID, tgbotapi.FileBytes{Name: "news.png", Bytes: image})
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		msg = photo
	} else {
		text := tgbotapi.NewMessage(c.chatID, caption)
		text.ParseMode = tgbotapi.ModeHTML
		msg = text
	}

	if _, err := c.bot.Send(msg); err != nil {
		slog.Error("telegram send failed", "error", err)
		return false
	}
	return true
}

// Disabled stands in when Telegram credentials are missing so the worker can
// keep running for observability. Every publish fails without a network call,
// which also keeps articles unmarked for a later retry.
type Disabled struct{}

func (Disabled) Publish(_ []byte, _ string) bool {
	slog.Error("telegram not configured; cannot post")
	return false
}
