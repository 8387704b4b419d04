// Package notify posts docket events to a kitchen Telegram chat.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// KitchenBot sends placed and bumped dockets to a single kitchen chat.
// Delivery is best effort: failures are logged, never surfaced to the
// placing operation.
type KitchenBot struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

func New(token string, chatID int64, logger *slog.Logger) (*KitchenBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("kitchen bot: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &KitchenBot{api: api, chatID: chatID, log: logger}, nil
}

func (b *KitchenBot) OrderPlaced(ctx context.Context, tableNumber int, docketID int64, lines []string) {
	text := fmt.Sprintf("🧾 Docket #%d — Table %d\n%s", docketID, tableNumber, strings.Join(lines, "\n"))
	b.send(text)
}

func (b *KitchenBot) OrderBumped(ctx context.Context, orderID int64) {
	b.send(fmt.Sprintf("✅ Order #%d archived", orderID))
}

func (b *KitchenBot) send(text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(b.chatID, text)); err != nil {
		b.log.Warn("kitchen notify failed", "err", err)
	}
}
