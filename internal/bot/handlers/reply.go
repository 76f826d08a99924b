package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
)

// maxReplyLength keeps replies under the Telegram message size limit, with
// headroom for the transport's own escaping.
const maxReplyLength = 4000

// reply sends a single plain-text message, logging delivery failures.
func reply(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}

// sendLines joins lines into messages no longer than maxReplyLength and sends
// them in order. A single oversized line is sent as its own (truncated by
// Telegram) message rather than dropped.
func sendLines(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, lines []string) {
	var sb strings.Builder
	flush := func() {
		if sb.Len() == 0 {
			return
		}
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: sb.String()})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send reply chunk", "error", err, "chat_id", chatID)
		}
		sb.Reset()
	}

	for _, line := range lines {
		if sb.Len() > 0 && sb.Len()+len(line)+1 > maxReplyLength {
			flush()
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
	}
	flush()
}
