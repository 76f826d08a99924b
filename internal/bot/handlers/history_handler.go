package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewHistoryHandler returns a handler for the /history command.
func NewHistoryHandler(deps HandlerDeps) bot.HandlerFunc {
	return historyHandler{deps}.Handle
}

// historyHandler lists stored messages for a date range, oldest first.
type historyHandler struct {
	deps HandlerDeps
}

func (h historyHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "history")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "History handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	start, end, err := parseDateRange(args)
	if err != nil {
		reply(ctx, b, log, chatID, h.deps.Config.Messages.UsageHistory)
		return
	}
	limit := parseLimit(args, 2, DefaultHistoryLimit)

	messages, err := h.deps.Store.ListMessages(ctx, chatID, start, end, limit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list history", "error", err, "chat_id", chatID)
		reply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	if len(messages) == 0 {
		reply(ctx, b, log, chatID, h.deps.Config.Messages.NoMessages)
		return
	}

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s",
			msg.CreatedAt.UTC().Format("2006-01-02 15:04"), msg.Username, msg.Text))
	}
	sendLines(ctx, b, log, chatID, lines)

	log.InfoContext(ctx, "History listed", "chat_id", chatID, "count", len(messages))
}
