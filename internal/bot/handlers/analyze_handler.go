package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// analyzeTimeout bounds one manual analysis run end to end. Classification is
// sequential, so large ranges take a while; results saved before a timeout
// stay persisted.
const analyzeTimeout = 5 * time.Minute

// NewAnalyzeHandler returns a handler for the /analyze command.
func NewAnalyzeHandler(deps HandlerDeps) bot.HandlerFunc {
	return analyzeHandler{deps}.Handle
}

// analyzeHandler triggers batch classification of stored messages for a date
// range. Requires admin privileges (enforced by middleware).
type analyzeHandler struct {
	deps HandlerDeps
}

func (h analyzeHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "analyze")

	if update.Message == nil || update.Message.From == nil {
		log.ErrorContext(ctx, "Analyze handler called with nil Message or From", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	start, end, err := parseDateRange(args)
	if err != nil {
		reply(ctx, b, log, chatID, h.deps.Config.Messages.UsageAnalyze)
		return
	}
	limit := parseLimit(args, 2, DefaultAnalyzeLimit)

	log.InfoContext(ctx, "Admin requested analysis run",
		"chat_id", chatID, "user_id", update.Message.From.ID, "start", start, "end", end, "limit", limit)

	runCtx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	result, err := h.deps.Analysis.Run(runCtx, chatID, start, end, limit)
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		log.WarnContext(ctx, "Analysis run timed out or was cancelled", "error", err, "chat_id", chatID)
		reply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	case err != nil:
		log.ErrorContext(ctx, "Analysis run failed", "error", err, "chat_id", chatID)
		reply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	if result.Fetched == 0 {
		reply(ctx, b, log, chatID, h.deps.Config.Messages.NothingToAnalyze)
		return
	}

	reply(ctx, b, log, chatID, fmt.Sprintf(h.deps.Config.Messages.AnalyzeCompleteFmt, result.Analyzed, result.Problems))
	log.InfoContext(ctx, "Analysis run reported",
		"chat_id", chatID, "analyzed", result.Analyzed, "problems", result.Problems)
}
