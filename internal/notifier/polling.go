package notifier

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// MessageHandler is called for each incoming text message and returns the
// reply for that chat. An empty reply sends nothing.
type MessageHandler func(ctx context.Context, chatID int64, text string) string

// telegramUpdate represents a Telegram update from long polling.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// retryDelay is the pause after a failed poll.
var retryDelay = 5 * time.Second

// StartPolling begins long-polling for messages. Blocks until ctx is cancelled.
// Messages are handled one at a time in arrival order.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler MessageHandler) {
	offset := 0

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("telegram polling stopped")
			return
		default:
		}

		var result struct {
			OK     bool             `json:"ok"`
			Result []telegramUpdate `json:"result"`
		}
		resp, err := t.Client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"offset":  strconv.Itoa(offset),
				"timeout": "30",
			}).
			SetResult(&result).
			Get("/bot" + t.BotToken + "/getUpdates")
		if err == nil && resp.IsError() {
			err = fmt.Errorf("status %d, body: %s", resp.StatusCode(), resp.String())
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn().Err(err).Msg("polling request failed")
			sleep(ctx, retryDelay)
			continue
		}

		for _, update := range result.Result {
			offset = update.UpdateID + 1
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			chatID := update.Message.Chat.ID
			text := strings.TrimSpace(update.Message.Text)
			log.Info().Int64("chat", chatID).Msg("received message")

			if text == "/start" {
				if t.OnStart != nil {
					t.OnStart(chatID)
				}
				if err := t.Send(ctx, chatID, FormatWelcome()); err != nil {
					log.Error().Err(err).Int64("chat", chatID).Msg("send welcome")
				}
				continue
			}

			reply := handler(ctx, chatID, text)
			if reply == "" {
				continue
			}
			for _, part := range FormatReply(reply) {
				if err := t.Send(ctx, chatID, part); err != nil {
					log.Error().Err(err).Int64("chat", chatID).Msg("send reply")
					break
				}
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
