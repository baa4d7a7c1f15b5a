package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/utils"
)

// Telegram pushes escalation alerts to the kitchen chat.
type Telegram struct {
	bot     *bot.Bot
	chatID  int64
	limiter *rate.Limiter
	logger  *logrus.Logger
}

func NewTelegram(token string, chatID int64, ratePerSecond int, logger *logrus.Logger) (*Telegram, error) {
	if token == "" {
		return nil, fmt.Errorf("missing telegram bot token")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("missing telegram chat id")
	}
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}
	return &Telegram{
		bot:     b,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(float64(ratePerSecond)), ratePerSecond),
		logger:  logger,
	}, nil
}

func (t *Telegram) Notify(ctx context.Context, a Alert) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limit exceeded: %w", err)
	}

	prefix := "⚠️"
	if a.Audible {
		prefix = "🚨"
	}
	text := fmt.Sprintf("%s *%s*\n%s\n\n*Dato:* %s\n*Gjenstår:* %d",
		prefix, a.Zone, a.Message, a.Date, a.Incomplete)

	return utils.Retry(t.logger, 3, time.Second, func() error {
		params := &bot.SendMessageParams{
			ChatID:              t.chatID,
			Text:                text,
			ParseMode:           "Markdown",
			DisableNotification: !a.Audible,
		}
		if _, err := t.bot.SendMessage(ctx, params); err != nil {
			return fmt.Errorf("failed to send telegram message to chat_id %d: %w", t.chatID, err)
		}
		return nil
	})
}
