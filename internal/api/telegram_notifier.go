// Package api provides handlers for external APIs and interfaces
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/abelzeko/train-board/internal/entities"
	"github.com/abelzeko/train-board/internal/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram rejects longer message texts
const maxMessageLength = 4096

// TelegramNotifier posts reconstructed journeys to a Telegram chat
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zap.SugaredLogger
}

// NewTelegramNotifier creates a notifier for chatID. endpoint is a Bot API
// format string taking the token and the method; empty means the public API.
func NewTelegramNotifier(botToken string, chatID int64, endpoint string) (*TelegramNotifier, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if chatID == 0 {
		return nil, errors.New("telegram chat id is not set")
	}
	bot, err := tgbotapi.NewBotAPIWithClient(botToken, endpoint, &http.Client{})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		log:    logger.Get(),
	}, nil
}

// SendJourneys formats journeys and sends them, split into as many messages as needed
func (t *TelegramNotifier) SendJourneys(journeys []entities.JourneyRecord) error {
	parts := splitMessage(FormatJourneyMessage(journeys), maxMessageLength)
	t.log.Infof("Sending %d journeys to chat %d as %d messages (bot %s)", len(journeys), t.chatID, len(parts), t.bot.Self.UserName)

	for i, text := range parts {
		msg := tgbotapi.NewMessage(t.chatID, text)
		if _, err := t.bot.Send(msg); err != nil {
			t.log.Errorf("Error sending message %d/%d: %v", i+1, len(parts), err)
			return fmt.Errorf("failed to send message %d/%d: %w", i+1, len(parts), err)
		}
	}
	return nil
}

// FormatJourneyMessage renders journeys for a chat message
func FormatJourneyMessage(journeys []entities.JourneyRecord) string {
	if len(journeys) == 0 {
		return "No matching trains on the configured paths."
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Trains (%d):\n\n", len(journeys))
	for _, j := range journeys {
		fmt.Fprintf(&result, "🚆 %s %s (%s)\n", j.No, j.Carrier, j.Line)
		fmt.Fprintf(&result, "🕒 %s → %s, midway %s\n", j.Departure, j.Arrival, j.Midtime)
		fmt.Fprintf(&result, "📍 %s → %s\n\n", j.From, j.To)
	}
	return strings.TrimRight(result.String(), "\n")
}

// splitMessage cuts text at blank lines so that no part exceeds limit runes.
// A single block longer than limit is cut at the limit.
func splitMessage(text string, limit int) []string {
	var parts []string
	var current strings.Builder
	for _, block := range strings.Split(text, "\n\n") {
		for utf8.RuneCountInString(block) > limit {
			head := string([]rune(block)[:limit])
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			parts = append(parts, head)
			block = string([]rune(block)[limit:])
		}

		if current.Len() > 0 && utf8.RuneCountInString(current.String())+2+utf8.RuneCountInString(block) > limit {
			parts = append(parts, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(block)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
